package proposal

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/pulseboard/dashgen/internal/design"
	"github.com/pulseboard/dashgen/internal/events"
)

// memStore implements events.Store over a fixed in-memory window.
type memStore struct {
	recent *events.RecentEvents
	err    error

	mu       sync.Mutex
	inserted []events.Event
}

func (s *memStore) QueryRecent(_ context.Context, _, _ string, limit int) (*events.RecentEvents, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := *s.recent
	if len(out.Events) > limit {
		out.Events = out.Events[:limit]
	}
	return &out, nil
}

func (s *memStore) InsertEvent(_ context.Context, ev events.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserted = append(s.inserted, ev)
	return nil
}

func (s *memStore) Migrate(context.Context) error { return nil }
func (s *memStore) Close() error                  { return nil }

// mockGenerator implements design.Generator, recording every request and
// failing for the proposal indices listed in failIndices.
type mockGenerator struct {
	mu          sync.Mutex
	requests    []design.Request
	failIndices map[int]bool
}

func (g *mockGenerator) Generate(_ context.Context, req design.Request) (*design.Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.requests = append(g.requests, req)
	if g.failIndices[req.ProposalIndex] {
		return nil, errors.New("style provider timed out")
	}
	ds := design.Neutral()
	ds.Name = fmt.Sprintf("Generated %d", req.ProposalIndex)
	ds.Palette.Primary = "#7C3AED"
	return &design.Result{
		DesignSystem: ds,
		Reasoning:    fmt.Sprintf("Styled proposal %d from hint.", req.ProposalIndex),
	}, nil
}

func (g *mockGenerator) hints() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]string, len(g.requests))
	for i, r := range g.requests {
		out[i] = r.Hint
	}
	return out
}

// richWindow builds an 80-event window whose payloads carry status, duration,
// timestamp, and numeric signal across two event types.
func richWindow() *events.RecentEvents {
	evs := make([]events.Event, 0, 50)
	for i := 0; i < 50; i++ {
		evType := "workflow.completed"
		if i%5 == 0 {
			evType = "workflow.failed"
		}
		evs = append(evs, events.Event{
			ID:       fmt.Sprintf("ev-%d", i),
			TenantID: "t1",
			Type:     evType,
			Labels:   map[string]any{"status": "success"},
			State: map[string]any{
				"duration_ms": float64(1200 + i),
				"created_at":  "2026-08-01T10:00:00Z",
				"retries":     float64(i % 3),
			},
		})
	}
	return &events.RecentEvents{Events: evs, TotalCount: 80}
}

// bareWindow builds a 3-event window with no usable payload fields.
func bareWindow() *events.RecentEvents {
	evs := make([]events.Event, 3)
	for i := range evs {
		evs[i] = events.Event{ID: fmt.Sprintf("ev-%d", i), TenantID: "t1", Type: "ping"}
	}
	return &events.RecentEvents{Events: evs, TotalCount: 3}
}

var _ events.Store = (*memStore)(nil)
var _ design.Generator = (*mockGenerator)(nil)
