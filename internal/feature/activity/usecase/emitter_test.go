package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitality_backend/internal/feature/activity/domain/entity"
)

type recordingRepo struct {
	mu      sync.Mutex
	entries []*entity.ActivityLogEntry
	err     error
	block   chan struct{} // non-nil makes Insert wait until closed
}

func (r *recordingRepo) Insert(_ context.Context, entry *entity.ActivityLogEntry) error {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *recordingRepo) all() []*entity.ActivityLogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.ActivityLogEntry(nil), r.entries...)
}

type stubResolver struct {
	mu    sync.Mutex
	calls []string
	loc   *Location
	err   error
}

func (s *stubResolver) Resolve(_ context.Context, ip string) (*Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, ip)
	return s.loc, s.err
}

func (s *stubResolver) called() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func TestEmitter_Emit(t *testing.T) {
	t.Run("success: events reach the store after Close drains", func(t *testing.T) {
		repo := &recordingRepo{}
		e := NewEmitter(repo, nil, 8)

		e.Emit(entity.EventRegister, "203.0.113.7", "account registered", map[string]string{"email": "a@b.c"})
		e.Emit(entity.EventLogin, "", "user logged in", nil)
		e.Close()

		entries := repo.all()
		require.Len(t, entries, 2)
		assert.Equal(t, entity.EventRegister, entries[0].EventType)
		assert.NotEmpty(t, entries[0].ID)
		assert.Equal(t, "203.0.113.7", entries[0].IPAddress)
	})

	t.Run("store failure never reaches the caller", func(t *testing.T) {
		repo := &recordingRepo{err: errors.New("db down")}
		e := NewEmitter(repo, nil, 8)

		e.Emit(entity.EventLogin, "", "user logged in", nil)
		e.Close()

		assert.Empty(t, repo.all())
	})

	t.Run("full buffer drops instead of blocking", func(t *testing.T) {
		repo := &recordingRepo{block: make(chan struct{})}
		e := NewEmitter(repo, nil, 1)

		// One event sits in the worker, one fills the buffer, the rest drop.
		for i := 0; i < 10; i++ {
			e.Emit(entity.EventLogin, "", "user logged in", nil)
		}
		assert.NotZero(t, e.Dropped(), "overflow must be counted as dropped")

		close(repo.block)
		e.Close()
	})

	t.Run("close is idempotent and emit after close is a no-op", func(t *testing.T) {
		repo := &recordingRepo{}
		e := NewEmitter(repo, nil, 8)

		e.Close()
		e.Close()
		e.Emit(entity.EventLogin, "", "user logged in", nil)

		assert.Empty(t, repo.all())
	})
}

func TestEmitter_Geolocation(t *testing.T) {
	t.Run("login from a public address is enriched", func(t *testing.T) {
		repo := &recordingRepo{}
		geo := &stubResolver{loc: &Location{Country: "Japan", Region: "Tokyo", City: "Tokyo", Timezone: "Asia/Tokyo"}}
		e := NewEmitter(repo, geo, 8)

		e.Emit(entity.EventLogin, "203.0.113.7", "user logged in", nil)
		e.Close()

		entries := repo.all()
		require.Len(t, entries, 1)
		assert.Equal(t, []string{"203.0.113.7"}, geo.called())
		assert.Equal(t, "Japan", entries[0].Metadata["country"])
		assert.Equal(t, "Asia/Tokyo", entries[0].Metadata["timezone"])
	})

	t.Run("non-routable addresses skip the lookup", func(t *testing.T) {
		for _, ip := range []string{"127.0.0.1", "10.0.0.1", "192.168.1.5", "169.254.0.1", "0.0.0.0", "", "not-an-ip"} {
			repo := &recordingRepo{}
			geo := &stubResolver{loc: &Location{Country: "Nowhere"}}
			e := NewEmitter(repo, geo, 8)

			e.Emit(entity.EventLogin, ip, "user logged in", nil)
			e.Close()

			assert.Empty(t, geo.called(), "ip %q should not be resolved", ip)
			require.Len(t, repo.all(), 1, "the entry must still be written for ip %q", ip)
		}
	})

	t.Run("non-login events skip the lookup", func(t *testing.T) {
		repo := &recordingRepo{}
		geo := &stubResolver{loc: &Location{Country: "Japan"}}
		e := NewEmitter(repo, geo, 8)

		e.Emit(entity.EventRegister, "203.0.113.7", "account registered", nil)
		e.Close()

		assert.Empty(t, geo.called())
	})

	t.Run("lookup failure still writes the entry", func(t *testing.T) {
		repo := &recordingRepo{}
		geo := &stubResolver{err: errors.New("timeout")}
		e := NewEmitter(repo, geo, 8)

		e.Emit(entity.EventLogin, "203.0.113.7", "user logged in", nil)
		e.Close()

		entries := repo.all()
		require.Len(t, entries, 1)
		assert.NotContains(t, entries[0].Metadata, "country")
	})
}

func TestRoutableIP(t *testing.T) {
	t.Parallel()

	assert.True(t, routableIP("203.0.113.7"))
	assert.True(t, routableIP("2001:db8::1"))
	assert.False(t, routableIP("127.0.0.1"))
	assert.False(t, routableIP("::1"))
	assert.False(t, routableIP("10.1.2.3"))
	assert.False(t, routableIP("fe80::1"))
	assert.False(t, routableIP(""))
}

func TestEmitter_CloseWaitsForInFlightWrite(t *testing.T) {
	repo := &recordingRepo{block: make(chan struct{})}
	e := NewEmitter(repo, nil, 8)

	e.Emit(entity.EventLogin, "", "user logged in", nil)

	go func() {
		time.Sleep(50 * time.Millisecond)
		close(repo.block)
	}()
	e.Close()

	assert.Len(t, repo.all(), 1, "close must wait for the in-flight write")
}
