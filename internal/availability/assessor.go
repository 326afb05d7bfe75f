// Package availability reduces a tenant's recent event window to a compact
// statistical profile: field shapes, event-type set, richness tier, and
// capability flags. The profile is the only artifact downstream reasoning
// ever sees; raw event payloads stay here.
package availability

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/pulseboard/dashgen/internal/events"
	"github.com/pulseboard/dashgen/internal/model"
	"github.com/pulseboard/dashgen/internal/resilience"
)

// maxRecentEvents bounds the window inspected per assessment.
const maxRecentEvents = 50

// Name-based shape vocabularies, checked before value-type inspection.
var (
	statusVocab    = []string{"status", "state", "result", "outcome", "phase", "stage"}
	timestampVocab = []string{"timestamp", "time", "date", "_at"}
	durationVocab  = []string{"duration", "elapsed", "latency", "runtime", "_ms"}
	idVocab        = []string{"uuid", "guid", "token", "hash"}
)

// Assess queries the most recent events for (tenant, source) and reduces
// them to a DataAvailability profile. It never returns an error: on query
// failure it logs and degrades to the zero-signal minimal profile.
func Assess(ctx context.Context, store events.Store, tenantID, sourceID string) model.DataAvailability {
	cfg := resilience.DefaultRetryConfig()
	cfg.OnRetry = resilience.RetryLogger("events", "query_recent")

	recent, err := resilience.DoVal(ctx, cfg, func(ctx context.Context) (*events.RecentEvents, error) {
		return store.QueryRecent(ctx, tenantID, sourceID, maxRecentEvents)
	})
	if err != nil {
		zap.L().Warn("availability: event query failed, degrading to minimal",
			zap.String("tenant_id", tenantID),
			zap.String("source_id", sourceID),
			zap.Error(err),
		)
		return minimalProfile()
	}

	return Profile(recent)
}

// Profile computes the availability profile from an already-fetched window.
func Profile(recent *events.RecentEvents) model.DataAvailability {
	if recent == nil {
		return minimalProfile()
	}

	typeSet := make(map[string]struct{})
	samples := make(map[string]any)
	var fields []string

	for _, ev := range recent.Events {
		if ev.Type != "" {
			typeSet[ev.Type] = struct{}{}
		}

		// Merge both payload maps, keeping the first-seen sample per key.
		// Keys are sorted per event so the inventory order is deterministic.
		for _, key := range sortedKeys(ev.Labels, ev.State) {
			if _, seen := samples[key]; seen {
				continue
			}
			if v, ok := ev.Labels[key]; ok {
				samples[key] = v
			} else {
				samples[key] = ev.State[key]
			}
			fields = append(fields, key)
		}
	}

	shapes := make(map[string]model.FieldShape, len(fields))
	usable := 0
	for _, f := range fields {
		shape := inferShape(f, samples[f])
		shapes[f] = shape
		if shape != model.FieldShapeIdentifier {
			usable++
		}
	}

	eventTypes := make([]string, 0, len(typeSet))
	for t := range typeSet {
		eventTypes = append(eventTypes, t)
	}
	sort.Strings(eventTypes)

	a := model.DataAvailability{
		TotalEvents:      recent.TotalCount,
		EventTypes:       eventTypes,
		AvailableFields:  fields,
		FieldShapes:      shapes,
		UsableFieldCount: usable,
	}
	a.DataRichness = richness(usable, len(eventTypes), recent.TotalCount)
	a.CanSupportTimeseries = a.HasShape(model.FieldShapeTimestamp) || recent.TotalCount >= 5
	a.CanSupportBreakdowns = a.HasShape(model.FieldShapeStatus) || len(eventTypes) > 1
	return a
}

func minimalProfile() model.DataAvailability {
	return model.DataAvailability{
		EventTypes:      []string{},
		AvailableFields: []string{},
		FieldShapes:     map[string]model.FieldShape{},
		DataRichness:    model.RichnessMinimal,
	}
}

func richness(usable, eventTypes, total int) model.Richness {
	switch {
	case usable >= 10 && eventTypes >= 3:
		return model.RichnessRich
	case usable >= 6 && eventTypes >= 2:
		return model.RichnessModerate
	case usable >= 3 || total >= 5:
		return model.RichnessSparse
	default:
		return model.RichnessMinimal
	}
}

// inferShape classifies a field by name first, then by sample value type.
func inferShape(name string, sample any) model.FieldShape {
	lower := strings.ToLower(name)

	if lower == "id" || strings.HasSuffix(lower, "_id") || containsAny(lower, idVocab) {
		return model.FieldShapeIdentifier
	}
	// Duration before timestamp: "execution_time_ms" is a duration even
	// though it matches the timestamp vocabulary on "time".
	if containsAny(lower, durationVocab) {
		return model.FieldShapeDuration
	}
	if containsAny(lower, statusVocab) {
		return model.FieldShapeStatus
	}
	if containsAny(lower, timestampVocab) {
		return model.FieldShapeTimestamp
	}

	switch sample.(type) {
	case float64, float32, int, int32, int64:
		return model.FieldShapeNumeric
	default:
		return model.FieldShapeText
	}
}

func containsAny(s string, vocab []string) bool {
	for _, v := range vocab {
		if strings.Contains(s, v) {
			return true
		}
	}
	return false
}

func sortedKeys(maps ...map[string]any) []string {
	var keys []string
	seen := make(map[string]struct{})
	for _, m := range maps {
		for k := range m {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
