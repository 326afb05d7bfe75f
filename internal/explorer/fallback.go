package explorer

import (
	"fmt"
	"strings"

	"github.com/pulseboard/dashgen/internal/archetype"
	"github.com/pulseboard/dashgen/internal/model"
)

// fallbackPitches is the fixed per-axis pitch copy used when goals are
// built without the reasoning stage.
var fallbackPitches = map[model.EmphasisAxis]string{
	model.AxisDashboard: "An at-a-glance operational board: headline numbers up top, trends and breakdowns below.",
	model.AxisProduct:   "A polished, presentation-ready view that leads with the two numbers that matter most.",
	model.AxisAnalytics: "A detail-first analytical view for digging into distributions and row-level records.",
}

// fallback builds the explorer result deterministically from the archetype
// classifier. It always yields at least one goal and cannot fail.
func (e *Explorer) fallback(a model.DataAvailability, cls archetype.Classification, wctx Context, summary string) Result {
	charts := fallbackChartTypes(a)
	metrics := fallbackFocusMetrics(a)

	count := maxProposals(a)
	if count < 1 {
		count = 1
	}

	name := strings.TrimSpace(wctx.WorkflowName)
	if name == "" {
		name = "Workflow"
	}

	goals := make([]model.ProposalGoal, 0, count)
	for i := 0; i < count; i++ {
		blend := cls.Blends[i]
		goals = append(goals, model.ProposalGoal{
			Title:        fmt.Sprintf(cls.TitleTemplates[i], name),
			Pitch:        fallbackPitches[blend.Dominant()],
			FocusMetrics: metrics,
			ChartTypes:   charts,
			Emphasis:     blend,
		})
	}

	return Result{
		Category:      cls.Archetype,
		Confidence:    cls.Confidence,
		Reasoning:     fmt.Sprintf("Derived from the %s archetype presets and the observed data profile.", cls.Archetype),
		ProposalCount: len(goals),
		Goals:         goals,
		DataSummary:   summary,
		Source:        SourceFallback,
	}
}

// fallbackChartTypes derives chart types from the profile's capability
// flags. Always includes kpi.
func fallbackChartTypes(a model.DataAvailability) []model.ChartType {
	charts := []model.ChartType{model.ChartKPI}
	if a.CanSupportTimeseries {
		charts = append(charts, model.ChartLine)
	}
	if a.CanSupportBreakdowns {
		charts = append(charts, model.ChartBar)
	}
	if a.UsableFieldCount > 3 {
		charts = append(charts, model.ChartTable)
	}
	if a.HasShape(model.FieldShapeStatus) {
		charts = append(charts, model.ChartStatusGrid)
	}
	return charts
}

// fallbackFocusMetrics selects the fields worth surfacing: status, duration,
// numeric, and timestamp shapes, in profile order.
func fallbackFocusMetrics(a model.DataAvailability) []string {
	var metrics []string
	for _, f := range a.AvailableFields {
		switch a.FieldShapes[f] {
		case model.FieldShapeStatus, model.FieldShapeDuration, model.FieldShapeNumeric, model.FieldShapeTimestamp:
			metrics = append(metrics, f)
		}
	}
	return metrics
}
