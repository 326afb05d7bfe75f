package availability

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseboard/dashgen/internal/events"
	"github.com/pulseboard/dashgen/internal/model"
)

// mockStore implements events.Store for testing.
type mockStore struct {
	recent *events.RecentEvents
	err    error
}

func (m *mockStore) QueryRecent(_ context.Context, _, _ string, _ int) (*events.RecentEvents, error) {
	return m.recent, m.err
}

func (m *mockStore) InsertEvent(_ context.Context, _ events.Event) error { return nil }
func (m *mockStore) Migrate(_ context.Context) error                     { return nil }
func (m *mockStore) Close() error                                        { return nil }

func TestInferShape(t *testing.T) {
	tests := []struct {
		field  string
		sample any
		want   model.FieldShape
	}{
		{"status", "success", model.FieldShapeStatus},
		{"run_state", "done", model.FieldShapeStatus},
		{"outcome", "won", model.FieldShapeStatus},
		{"created_at", "2026-08-01T12:00:00Z", model.FieldShapeTimestamp},
		{"start_time", "noon", model.FieldShapeTimestamp},
		{"duration_ms", 1200.0, model.FieldShapeDuration},
		{"execution_time_ms", 42.0, model.FieldShapeDuration},
		{"latency", 10, model.FieldShapeDuration},
		{"id", "abc", model.FieldShapeIdentifier},
		{"contact_id", "c-1", model.FieldShapeIdentifier},
		{"session_uuid", "u-1", model.FieldShapeIdentifier},
		{"retries", 3.0, model.FieldShapeNumeric},
		{"amount", 99, model.FieldShapeNumeric},
		{"notes", "hello", model.FieldShapeText},
		{"payload", map[string]any{}, model.FieldShapeText},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			assert.Equal(t, tt.want, inferShape(tt.field, tt.sample))
		})
	}
}

func TestRichnessThresholds(t *testing.T) {
	tests := []struct {
		usable, types, total int
		want                 model.Richness
	}{
		{10, 3, 100, model.RichnessRich},
		{12, 2, 100, model.RichnessModerate}, // types too low for rich
		{6, 2, 20, model.RichnessModerate},
		{5, 2, 20, model.RichnessSparse},
		{3, 1, 0, model.RichnessSparse},
		{0, 1, 5, model.RichnessSparse},
		{2, 1, 4, model.RichnessMinimal},
		{0, 0, 0, model.RichnessMinimal},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("u%d_t%d_n%d", tt.usable, tt.types, tt.total), func(t *testing.T) {
			assert.Equal(t, tt.want, richness(tt.usable, tt.types, tt.total))
		})
	}
}

func TestProfile(t *testing.T) {
	recent := &events.RecentEvents{
		TotalCount: 80,
		Events: []events.Event{
			{
				Type:   "workflow.completed",
				Labels: map[string]any{"status": "success"},
				State:  map[string]any{"duration_ms": 1200.0, "created_at": "2026-08-01T12:00:00Z"},
			},
			{
				Type:   "workflow.failed",
				Labels: map[string]any{"status": "error", "contact_id": "c-9"},
				State:  map[string]any{"duration_ms": 900.0},
			},
		},
	}

	a := Profile(recent)

	assert.Equal(t, 80, a.TotalEvents)
	assert.Equal(t, []string{"workflow.completed", "workflow.failed"}, a.EventTypes)
	assert.ElementsMatch(t, []string{"status", "duration_ms", "created_at", "contact_id"}, a.AvailableFields)
	assert.Equal(t, model.FieldShapeStatus, a.FieldShapes["status"])
	assert.Equal(t, model.FieldShapeDuration, a.FieldShapes["duration_ms"])
	assert.Equal(t, model.FieldShapeTimestamp, a.FieldShapes["created_at"])
	assert.Equal(t, model.FieldShapeIdentifier, a.FieldShapes["contact_id"])
	assert.Equal(t, 3, a.UsableFieldCount, "identifier excluded from usable count")
	assert.True(t, a.CanSupportTimeseries)
	assert.True(t, a.CanSupportBreakdowns)
}

func TestProfileFirstSeenSampleWins(t *testing.T) {
	recent := &events.RecentEvents{
		TotalCount: 2,
		Events: []events.Event{
			{Type: "a", State: map[string]any{"value": 10.0}},
			{Type: "a", State: map[string]any{"value": "ten"}},
		},
	}

	a := Profile(recent)
	assert.Equal(t, model.FieldShapeNumeric, a.FieldShapes["value"])
}

func TestProfileDeterministic(t *testing.T) {
	recent := &events.RecentEvents{
		TotalCount: 1,
		Events: []events.Event{{
			Type:   "run",
			Labels: map[string]any{"b_field": "x", "a_field": "y", "c_field": "z"},
		}},
	}

	first := Profile(recent)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first.AvailableFields, Profile(recent).AvailableFields)
	}
}

func TestAssessDegradesOnQueryError(t *testing.T) {
	store := &mockStore{err: errors.New("connection refused")}

	a := Assess(context.Background(), store, "tenant-a", "")

	assert.Equal(t, model.RichnessMinimal, a.DataRichness)
	assert.Equal(t, 0, a.TotalEvents)
	assert.Empty(t, a.AvailableFields)
	assert.False(t, a.CanSupportTimeseries)
	assert.False(t, a.CanSupportBreakdowns)
}

func TestAssessEmptyWindowIsMinimal(t *testing.T) {
	store := &mockStore{recent: &events.RecentEvents{}}

	a := Assess(context.Background(), store, "tenant-a", "wf-1")

	require.Equal(t, model.RichnessMinimal, a.DataRichness)
	assert.True(t, a.Minimal())
}
