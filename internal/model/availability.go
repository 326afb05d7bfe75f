package model

// FieldShape classifies a field in the tenant's event payloads.
type FieldShape string

// Field shape constants.
const (
	FieldShapeStatus     FieldShape = "status"
	FieldShapeTimestamp  FieldShape = "timestamp"
	FieldShapeDuration   FieldShape = "duration"
	FieldShapeIdentifier FieldShape = "identifier"
	FieldShapeNumeric    FieldShape = "numeric"
	FieldShapeText       FieldShape = "text"
)

// Richness is a 4-level ordinal summarizing how much usable signal
// a tenant's event data contains.
type Richness string

// Richness levels, from least to most signal.
const (
	RichnessMinimal  Richness = "minimal"
	RichnessSparse   Richness = "sparse"
	RichnessModerate Richness = "moderate"
	RichnessRich     Richness = "rich"
)

// DataAvailability is an immutable statistical profile of a tenant's recent
// event window. It is computed fresh per proposal-generation request and
// never persisted. The zero value is the "minimal" degraded profile returned
// when the event store cannot be queried.
type DataAvailability struct {
	TotalEvents          int                   `json:"total_events"`
	EventTypes           []string              `json:"event_types"`
	AvailableFields      []string              `json:"available_fields"`
	FieldShapes          map[string]FieldShape `json:"field_shapes"`
	DataRichness         Richness              `json:"data_richness"`
	CanSupportTimeseries bool                  `json:"can_support_timeseries"`
	CanSupportBreakdowns bool                  `json:"can_support_breakdowns"`
	UsableFieldCount     int                   `json:"usable_field_count"`
}

// Minimal reports whether the profile carries no usable signal.
func (a DataAvailability) Minimal() bool {
	return a.TotalEvents == 0 || a.DataRichness == RichnessMinimal || a.DataRichness == ""
}

// HasShape reports whether any available field has the given shape.
func (a DataAvailability) HasShape(shape FieldShape) bool {
	for _, s := range a.FieldShapes {
		if s == shape {
			return true
		}
	}
	return false
}

// FieldsWithShape returns the available fields with the given shape, in
// AvailableFields order.
func (a DataAvailability) FieldsWithShape(shape FieldShape) []string {
	var out []string
	for _, f := range a.AvailableFields {
		if a.FieldShapes[f] == shape {
			out = append(out, f)
		}
	}
	return out
}
