// Package events provides read access to the tenant event stream that
// proposal generation is grounded on. Two backends are available: Postgres
// (pgx) for production and SQLite for local development.
package events

import (
	"context"
	"time"
)

// Event is one automation-platform event. Labels and State are the two
// semi-structured payload maps the platform attaches to every event.
type Event struct {
	ID        string         `json:"id"`
	TenantID  string         `json:"tenant_id"`
	SourceID  string         `json:"source_id,omitempty"`
	Type      string         `json:"type"`
	Labels    map[string]any `json:"labels"`
	State     map[string]any `json:"state"`
	Timestamp time.Time      `json:"timestamp"`
}

// RecentEvents is the result of a bounded recent-window query: the rows plus
// the exact total count for the (tenant, source) scope.
type RecentEvents struct {
	Events     []Event
	TotalCount int
}

// Store defines the event persistence interface consumed by the assessor.
type Store interface {
	// QueryRecent returns at most limit events for the tenant (optionally
	// scoped to a source), ordered by timestamp descending, plus the exact
	// total event count for the scope.
	QueryRecent(ctx context.Context, tenantID, sourceID string, limit int) (*RecentEvents, error)

	// InsertEvent stores a single event. Used by local seeding and ingest.
	InsertEvent(ctx context.Context, ev Event) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
