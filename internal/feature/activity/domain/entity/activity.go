// Package entity defines the domain entities for the activity feature.
package entity

import "time"

// Event types recorded by the audit trail.
const (
	EventLogin         = "login"
	EventRegister      = "register"
	EventPasswordReset = "password_reset"
)

// ActivityLogEntry is an immutable, append-only audit record of a
// security-relevant action. It is written once and never read back by this
// subsystem.
type ActivityLogEntry struct {
	ID        string            // Row identifier (UUID string)
	EventType string            // One of the Event* constants
	IPAddress string            // Client address the action originated from
	Title     string            // Human-readable summary
	Metadata  map[string]string // Free-form context, optionally geo-enriched
	CreatedAt time.Time         // Write time
}
