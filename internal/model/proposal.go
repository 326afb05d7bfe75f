package model

import "math"

// Archetype is a coarse category of automation workflow used to select
// default proposal emphasis.
type Archetype string

// Archetype constants. Declaration order here matches classifier ranking
// order and is the documented tie-break for equal scores.
const (
	ArchetypeOpsMonitoring     Archetype = "ops_monitoring"
	ArchetypeLeadPipeline      Archetype = "lead_pipeline"
	ArchetypeVoiceAnalytics    Archetype = "voice_analytics"
	ArchetypeContentAutomation Archetype = "content_automation"
	ArchetypeDataIntegration   Archetype = "data_integration"
	ArchetypeClientReporting   Archetype = "client_reporting"
	ArchetypeAIAutomation      Archetype = "ai_automation"
	ArchetypeGeneral           Archetype = "general"
)

// EmphasisBlend is a 3-way weighting between dashboard, product, and
// analytics framing for a single proposal. A well-formed blend sums to 1.0.
type EmphasisBlend struct {
	Dashboard float64 `json:"dashboard"`
	Product   float64 `json:"product"`
	Analytics float64 `json:"analytics"`
}

// Sum returns the total weight of the blend.
func (b EmphasisBlend) Sum() float64 {
	return b.Dashboard + b.Product + b.Analytics
}

// Normalize rescales the blend so its components sum to 1.0. Negative
// components are clamped to zero first; an all-zero blend normalizes to an
// even split. Always applied to blends built from untrusted input.
func (b EmphasisBlend) Normalize() EmphasisBlend {
	if b.Dashboard < 0 {
		b.Dashboard = 0
	}
	if b.Product < 0 {
		b.Product = 0
	}
	if b.Analytics < 0 {
		b.Analytics = 0
	}
	sum := b.Sum()
	if sum == 0 {
		third := 1.0 / 3.0
		return EmphasisBlend{Dashboard: third, Product: third, Analytics: third}
	}
	return EmphasisBlend{
		Dashboard: b.Dashboard / sum,
		Product:   b.Product / sum,
		Analytics: b.Analytics / sum,
	}
}

// Normalized reports whether the blend sums to 1.0 within rounding.
func (b EmphasisBlend) Normalized() bool {
	return math.Abs(b.Sum()-1.0) < 0.01
}

// EmphasisAxis names one of the three blend components.
type EmphasisAxis string

// Emphasis axes in tie-break priority order.
const (
	AxisDashboard EmphasisAxis = "dashboard"
	AxisProduct   EmphasisAxis = "product"
	AxisAnalytics EmphasisAxis = "analytics"
)

// Dominant returns the axis with the largest weight. Ties resolve in the
// fixed order dashboard >= product >= analytics.
func (b EmphasisBlend) Dominant() EmphasisAxis {
	if b.Dashboard >= b.Product && b.Dashboard >= b.Analytics {
		return AxisDashboard
	}
	if b.Product >= b.Analytics {
		return AxisProduct
	}
	return AxisAnalytics
}

// ChartType is the closed enumeration of widget types a wireframe may use.
type ChartType string

// Chart type constants.
const (
	ChartKPI        ChartType = "kpi"
	ChartLine       ChartType = "line_chart"
	ChartBar        ChartType = "bar_chart"
	ChartPie        ChartType = "pie_chart"
	ChartTable      ChartType = "table"
	ChartFunnel     ChartType = "funnel"
	ChartTimeline   ChartType = "timeline"
	ChartStatusGrid ChartType = "status_grid"
)

// ValidChartType reports whether s names a member of the chart enumeration.
func ValidChartType(s string) bool {
	switch ChartType(s) {
	case ChartKPI, ChartLine, ChartBar, ChartPie, ChartTable, ChartFunnel, ChartTimeline, ChartStatusGrid:
		return true
	default:
		return false
	}
}

// ProposalGoal is one dashboard direction produced by the goal explorer.
// Every focus metric is guaranteed to exist in the originating availability
// profile (or the synthetic whitelist) by construction.
type ProposalGoal struct {
	Title        string        `json:"title"`
	Pitch        string        `json:"pitch"`
	FocusMetrics []string      `json:"focus_metrics"`
	ChartTypes   []ChartType   `json:"chart_types"`
	Emphasis     EmphasisBlend `json:"emphasis"`
}

// GridRect places a wireframe component on the 12-column grid.
type GridRect struct {
	Col int `json:"col"`
	Row int `json:"row"`
	W   int `json:"w"`
	H   int `json:"h"`
}

// Valid reports whether the rect fits the 12-column convention.
func (r GridRect) Valid() bool {
	return r.Col >= 0 && r.Row >= 0 && r.W > 0 && r.H > 0 && r.Col+r.W <= 12
}

// WireframeComponent is a single typed widget placed on the grid.
type WireframeComponent struct {
	ID     string    `json:"id"`
	Type   ChartType `json:"type"`
	Label  string    `json:"label"`
	Layout GridRect  `json:"layout"`
}

// WireframeLayout is the deterministic grid layout produced for a proposal,
// independent of visual styling.
type WireframeLayout struct {
	Name       string               `json:"name"`
	Components []WireframeComponent `json:"components"`
}

// DesignSystem is the style bundle produced per proposal by the design
// generator collaborator.
type DesignSystem struct {
	Name       string     `json:"name"`
	Palette    Palette    `json:"palette"`
	Typography Typography `json:"typography"`
	Effects    Effects    `json:"effects"`
}

// Palette holds the core dashboard colors as hex strings.
type Palette struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Background string `json:"background"`
	Surface    string `json:"surface"`
	Accent     string `json:"accent"`
	TextColor  string `json:"text"`
}

// Typography holds font choices for the dashboard.
type Typography struct {
	HeadingFont string `json:"heading_font"`
	BodyFont    string `json:"body_font"`
	Scale       string `json:"scale"`
}

// Effects holds surface treatment choices.
type Effects struct {
	Radius  string `json:"radius"`
	Shadow  string `json:"shadow"`
	Density string `json:"density"`
}

// Proposal is the externally visible unit of generation output. Created
// once per run and immutable thereafter.
type Proposal struct {
	Index           int             `json:"index"`
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Pitch           string          `json:"pitch"`
	Archetype       Archetype       `json:"archetype"`
	EmphasisBlend   EmphasisBlend   `json:"emphasis_blend"`
	DesignSystem    DesignSystem    `json:"design_system"`
	WireframeLayout WireframeLayout `json:"wireframe_layout"`
	Reasoning       string          `json:"reasoning"`
}

// PayloadContext describes the workflow the proposals were generated for.
type PayloadContext struct {
	WorkflowName     string            `json:"workflow_name"`
	PlatformType     string            `json:"platform_type"`
	SelectedEntities []string          `json:"selected_entities"`
	Archetype        Archetype         `json:"archetype"`
	DataAvailability *DataAvailability `json:"data_availability,omitempty"`
}

// ProposalsPayload is the payload consumed by the rendering layer.
type ProposalsPayload struct {
	Proposals   []Proposal     `json:"proposals"`
	GeneratedAt string         `json:"generated_at"`
	Context     PayloadContext `json:"context"`
}
