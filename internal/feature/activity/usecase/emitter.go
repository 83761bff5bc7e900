// Package usecase implements the best-effort activity audit emitter.
package usecase

import (
	"context"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"vitality_backend/internal/feature/activity/domain/entity"
)

// writeTimeout bounds the detached store and geolocation calls so a stuck
// collaborator cannot wedge the worker.
const writeTimeout = 10 * time.Second

// ActivityRepository abstracts the append-only persistence of audit entries.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type ActivityRepository interface {
	// Insert persists a new audit entry.
	Insert(ctx context.Context, entry *entity.ActivityLogEntry) error
}

// Location is a coarse geolocation result. Precise coordinates are never
// handled; only city-level identifiers are recorded.
type Location struct {
	Country  string
	Region   string
	City     string
	Timezone string
}

// GeoResolver abstracts the external geolocation lookup.
type GeoResolver interface {
	// Resolve returns the coarse location of a routable IP address.
	Resolve(ctx context.Context, ip string) (*Location, error)
}

// Emitter writes audit entries on a detached worker goroutine. Emit never
// blocks the caller and never surfaces failures: the write happens after the
// response is sent, a full buffer drops the event, and repository or
// geolocation errors are logged and swallowed.
type Emitter struct {
	repo ActivityRepository
	geo  GeoResolver // nil disables enrichment

	ch        chan *entity.ActivityLogEntry
	done      chan struct{}
	wg        sync.WaitGroup
	dropped   atomic.Uint64
	closeOnce sync.Once
}

// NewEmitter creates an Emitter and starts its worker goroutine.
func NewEmitter(repo ActivityRepository, geo GeoResolver, buffer int) *Emitter {
	if buffer <= 0 {
		buffer = 1
	}
	e := &Emitter{
		repo: repo,
		geo:  geo,
		ch:   make(chan *entity.ActivityLogEntry, buffer),
		done: make(chan struct{}),
	}
	e.wg.Add(1)
	go e.run()
	return e
}

// Emit queues an audit event. It returns immediately; when the buffer is full
// the event is counted as dropped instead of delaying the caller.
func (e *Emitter) Emit(eventType, clientIP, title string, metadata map[string]string) {
	entry := &entity.ActivityLogEntry{
		ID:        uuid.NewString(),
		EventType: eventType,
		IPAddress: clientIP,
		Title:     title,
		Metadata:  metadata,
		CreatedAt: time.Now(),
	}

	select {
	case e.ch <- entry:
	case <-e.done:
	default:
		e.dropped.Add(1)
	}
}

// Dropped returns the number of events discarded because the buffer was full.
func (e *Emitter) Dropped() uint64 {
	return e.dropped.Load()
}

// Close drains queued events and stops the worker.
func (e *Emitter) Close() {
	e.closeOnce.Do(func() {
		close(e.done)
		e.wg.Wait()
	})
}

func (e *Emitter) run() {
	defer e.wg.Done()
	for {
		select {
		case entry := <-e.ch:
			e.write(entry)
		case <-e.done:
			for {
				select {
				case entry := <-e.ch:
					e.write(entry)
				default:
					return
				}
			}
		}
	}
}

// write enriches login events with coarse geolocation and persists the entry.
// The context is detached from the originating request: the audit write may
// complete after the response is sent.
func (e *Emitter) write(entry *entity.ActivityLogEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if e.geo != nil && entry.EventType == entity.EventLogin && routableIP(entry.IPAddress) {
		if loc, err := e.geo.Resolve(ctx, entry.IPAddress); err != nil {
			slog.Warn("geolocation lookup failed", "ip", entry.IPAddress, "error", err)
		} else {
			if entry.Metadata == nil {
				entry.Metadata = map[string]string{}
			}
			entry.Metadata["country"] = loc.Country
			entry.Metadata["region"] = loc.Region
			entry.Metadata["city"] = loc.City
			entry.Metadata["timezone"] = loc.Timezone
		}
	}

	if err := e.repo.Insert(ctx, entry); err != nil {
		slog.Warn("activity log write failed", "event_type", entry.EventType, "error", err)
	}
}

// routableIP reports whether the address is a public unicast address worth a
// geolocation lookup. Loopback, private, link-local and unparsable addresses
// are skipped.
func routableIP(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	return !parsed.IsLoopback() &&
		!parsed.IsPrivate() &&
		!parsed.IsLinkLocalUnicast() &&
		!parsed.IsLinkLocalMulticast() &&
		!parsed.IsUnspecified()
}
