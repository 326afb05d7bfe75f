// Package wireframe turns an emphasis blend and a set of metric labels into
// a concrete 12-column grid of typed widgets. Building a layout is pure and
// total: identical inputs always yield identical output and there is no
// error path.
package wireframe

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pulseboard/dashgen/internal/model"
)

const gridColumns = 12

var titleCaser = cases.Title(language.English)

// Build synthesizes the wireframe for one proposal. availability may be
// nil; labels then come from the caller-supplied entity names or generic
// placeholders.
func Build(blend model.EmphasisBlend, entityLabels []string, proposalIndex int, availability *model.DataAvailability) model.WireframeLayout {
	labels := deriveLabels(entityLabels, availability)

	switch blend.Dominant() {
	case model.AxisProduct:
		return productLayout(labels, proposalIndex)
	case model.AxisAnalytics:
		return analyticsLayout(labels)
	default:
		return dashboardLayout(labels)
	}
}

// deriveLabels picks up to 4 display labels from detected field shapes in
// priority order, padding to a minimum of 3. Without a usable profile it
// falls back to entity names, then generic placeholders.
func deriveLabels(entityLabels []string, a *model.DataAvailability) []string {
	var labels []string

	if a != nil && a.UsableFieldCount > 0 {
		if a.HasShape(model.FieldShapeStatus) {
			labels = append(labels, "Success Rate")
		}
		if a.HasShape(model.FieldShapeDuration) {
			labels = append(labels, "Avg Duration")
		}
		if a.HasShape(model.FieldShapeTimestamp) {
			labels = append(labels, "Runs Over Time")
		}
		if numeric := a.FieldsWithShape(model.FieldShapeNumeric); len(numeric) > 0 && len(labels) < 4 {
			labels = append(labels, Humanize(numeric[0]))
		}
		if len(labels) > 4 {
			labels = labels[:4]
		}
	} else if len(entityLabels) > 0 {
		labels = append(labels, entityLabels...)
		if len(labels) > 4 {
			labels = labels[:4]
		}
	}

	for len(labels) < 3 {
		labels = append(labels, fmt.Sprintf("Metric %d", len(labels)+1))
	}
	return labels
}

// Humanize converts a snake_case field name into a display label.
func Humanize(field string) string {
	return titleCaser.String(strings.ReplaceAll(field, "_", " "))
}

// dashboardLayout: a KPI strip, a wide trend, a side breakdown, and a
// full-width table.
func dashboardLayout(labels []string) model.WireframeLayout {
	kpis := labels
	if len(kpis) > 4 {
		kpis = kpis[:4]
	}
	w := gridColumns / len(kpis)

	components := make([]model.WireframeComponent, 0, len(kpis)+3)
	for i, label := range kpis {
		components = append(components, model.WireframeComponent{
			ID:     fmt.Sprintf("kpi-%d", i+1),
			Type:   model.ChartKPI,
			Label:  label,
			Layout: model.GridRect{Col: i * w, Row: 0, W: w, H: 1},
		})
	}

	components = append(components,
		model.WireframeComponent{
			ID:     "trend",
			Type:   model.ChartLine,
			Label:  "Activity Over Time",
			Layout: model.GridRect{Col: 0, Row: 1, W: 8, H: 2},
		},
		model.WireframeComponent{
			ID:     "breakdown",
			Type:   model.ChartBar,
			Label:  "Breakdown",
			Layout: model.GridRect{Col: 8, Row: 1, W: 4, H: 2},
		},
		model.WireframeComponent{
			ID:     "detail-table",
			Type:   model.ChartTable,
			Label:  "Recent Activity",
			Layout: model.GridRect{Col: 0, Row: 3, W: 12, H: 2},
		},
	)

	return model.WireframeLayout{Name: "dashboard", Components: components}
}

// productLayout: two hero KPIs, a chart whose type alternates with the
// proposal index, and a status grid.
func productLayout(labels []string, proposalIndex int) model.WireframeLayout {
	chartType := model.ChartLine
	if proposalIndex%2 == 1 {
		chartType = model.ChartBar
	}

	hero2 := "Metric 2"
	if len(labels) > 1 {
		hero2 = labels[1]
	}

	return model.WireframeLayout{
		Name: "product",
		Components: []model.WireframeComponent{
			{
				ID:     "hero-1",
				Type:   model.ChartKPI,
				Label:  labels[0],
				Layout: model.GridRect{Col: 0, Row: 0, W: 6, H: 2},
			},
			{
				ID:     "hero-2",
				Type:   model.ChartKPI,
				Label:  hero2,
				Layout: model.GridRect{Col: 6, Row: 0, W: 6, H: 2},
			},
			{
				ID:     "feature-chart",
				Type:   chartType,
				Label:  "Highlights",
				Layout: model.GridRect{Col: 0, Row: 2, W: 7, H: 2},
			},
			{
				ID:     "status-grid",
				Type:   model.ChartStatusGrid,
				Label:  "Live Status",
				Layout: model.GridRect{Col: 7, Row: 2, W: 5, H: 2},
			},
		},
	}
}

// analyticsLayout: a four-cell KPI strip, paired trend and distribution
// charts, and a full-width detail table.
func analyticsLayout(labels []string) model.WireframeLayout {
	components := make([]model.WireframeComponent, 0, 7)
	for i := 0; i < 4; i++ {
		label := fmt.Sprintf("Metric %d", i+1)
		if i < len(labels) {
			label = labels[i]
		}
		components = append(components, model.WireframeComponent{
			ID:     fmt.Sprintf("kpi-%d", i+1),
			Type:   model.ChartKPI,
			Label:  label,
			Layout: model.GridRect{Col: i * 3, Row: 0, W: 3, H: 1},
		})
	}

	components = append(components,
		model.WireframeComponent{
			ID:     "trend",
			Type:   model.ChartLine,
			Label:  "Activity Over Time",
			Layout: model.GridRect{Col: 0, Row: 1, W: 6, H: 2},
		},
		model.WireframeComponent{
			ID:     "distribution",
			Type:   model.ChartPie,
			Label:  "Distribution",
			Layout: model.GridRect{Col: 6, Row: 1, W: 6, H: 2},
		},
		model.WireframeComponent{
			ID:     "detail-table",
			Type:   model.ChartTable,
			Label:  "All Records",
			Layout: model.GridRect{Col: 0, Row: 3, W: 12, H: 2},
		},
	)

	return model.WireframeLayout{Name: "analytics", Components: components}
}
