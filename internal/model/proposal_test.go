package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmphasisBlendNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   EmphasisBlend
	}{
		{"already normalized", EmphasisBlend{Dashboard: 0.5, Product: 0.3, Analytics: 0.2}},
		{"oversized", EmphasisBlend{Dashboard: 2, Product: 1, Analytics: 1}},
		{"tiny values", EmphasisBlend{Dashboard: 0.001, Product: 0.002, Analytics: 0.003}},
		{"negative clamped", EmphasisBlend{Dashboard: -1, Product: 0.5, Analytics: 0.5}},
		{"all zero", EmphasisBlend{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			assert.True(t, got.Normalized(), "sum = %f", got.Sum())
			assert.GreaterOrEqual(t, got.Dashboard, 0.0)
			assert.GreaterOrEqual(t, got.Product, 0.0)
			assert.GreaterOrEqual(t, got.Analytics, 0.0)
		})
	}
}

func TestEmphasisBlendDominant(t *testing.T) {
	tests := []struct {
		name  string
		blend EmphasisBlend
		want  EmphasisAxis
	}{
		{"dashboard wins", EmphasisBlend{Dashboard: 0.5, Product: 0.3, Analytics: 0.2}, AxisDashboard},
		{"product wins", EmphasisBlend{Dashboard: 0.2, Product: 0.5, Analytics: 0.3}, AxisProduct},
		{"analytics wins", EmphasisBlend{Dashboard: 0.2, Product: 0.3, Analytics: 0.5}, AxisAnalytics},
		{"three-way tie goes dashboard", EmphasisBlend{Dashboard: 0.333, Product: 0.333, Analytics: 0.333}, AxisDashboard},
		{"product/analytics tie goes product", EmphasisBlend{Dashboard: 0.1, Product: 0.45, Analytics: 0.45}, AxisProduct},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.blend.Dominant())
		})
	}
}

func TestValidChartType(t *testing.T) {
	for _, ct := range []string{"kpi", "line_chart", "bar_chart", "pie_chart", "table", "funnel", "timeline", "status_grid"} {
		assert.True(t, ValidChartType(ct), ct)
	}
	for _, ct := range []string{"", "scatter", "KPI", "line", "heatmap"} {
		assert.False(t, ValidChartType(ct), ct)
	}
}

func TestGridRectValid(t *testing.T) {
	assert.True(t, GridRect{Col: 0, Row: 0, W: 12, H: 1}.Valid())
	assert.True(t, GridRect{Col: 8, Row: 1, W: 4, H: 2}.Valid())
	assert.False(t, GridRect{Col: 8, Row: 1, W: 5, H: 2}.Valid(), "overflows 12 columns")
	assert.False(t, GridRect{Col: -1, Row: 0, W: 3, H: 1}.Valid())
	assert.False(t, GridRect{Col: 0, Row: 0, W: 0, H: 1}.Valid())
}

func TestDataAvailabilityShapeHelpers(t *testing.T) {
	a := DataAvailability{
		AvailableFields: []string{"status", "duration_ms", "notes"},
		FieldShapes: map[string]FieldShape{
			"status":      FieldShapeStatus,
			"duration_ms": FieldShapeDuration,
			"notes":       FieldShapeText,
		},
	}

	assert.True(t, a.HasShape(FieldShapeStatus))
	assert.False(t, a.HasShape(FieldShapeTimestamp))
	assert.Equal(t, []string{"duration_ms"}, a.FieldsWithShape(FieldShapeDuration))
}

func TestDataAvailabilityMinimal(t *testing.T) {
	assert.True(t, DataAvailability{}.Minimal())
	assert.True(t, DataAvailability{TotalEvents: 3, DataRichness: RichnessMinimal}.Minimal())
	assert.False(t, DataAvailability{TotalEvents: 20, DataRichness: RichnessSparse}.Minimal())
}
