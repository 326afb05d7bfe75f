package explorer

import (
	"fmt"
	"strings"

	"github.com/pulseboard/dashgen/internal/model"
)

// Summarize renders an availability profile into the deterministic
// natural-language block sent to the reasoning stage. This is the only
// artifact that leaves the process; raw event payloads never do.
// Identifier-shaped fields are omitted.
func Summarize(a model.DataAvailability) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Event window: %d total events across %d event types", a.TotalEvents, len(a.EventTypes))
	if len(a.EventTypes) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(a.EventTypes, ", "))
	}
	b.WriteString(".\n")

	groups := []struct {
		label string
		shape model.FieldShape
	}{
		{"Status fields", model.FieldShapeStatus},
		{"Duration fields", model.FieldShapeDuration},
		{"Timestamp fields", model.FieldShapeTimestamp},
		{"Numeric fields", model.FieldShapeNumeric},
		{"Text fields", model.FieldShapeText},
	}
	for _, g := range groups {
		fields := a.FieldsWithShape(g.shape)
		if len(fields) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s: %s.\n", g.label, strings.Join(fields, ", "))
	}

	fmt.Fprintf(&b, "Data richness: %s. Timeseries capable: %s. Breakdown capable: %s.",
		a.DataRichness, yesNo(a.CanSupportTimeseries), yesNo(a.CanSupportBreakdowns))

	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
