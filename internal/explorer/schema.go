package explorer

import (
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/pulseboard/dashgen/internal/model"
)

// goalsResponse is the exact shape the model must produce. Unknown fields
// are rejected so malformed output fails the attempt instead of leaking
// into the domain model.
type goalsResponse struct {
	Reasoning string        `json:"reasoning"`
	Goals     []goalPayload `json:"goals"`
}

type goalPayload struct {
	Title        string          `json:"title"`
	Pitch        string          `json:"pitch"`
	FocusMetrics []string        `json:"focus_metrics"`
	ChartTypes   []string        `json:"chart_types"`
	Emphasis     emphasisPayload `json:"emphasis"`
}

type emphasisPayload struct {
	Dashboard float64 `json:"dashboard"`
	Product   float64 `json:"product"`
	Analytics float64 `json:"analytics"`
}

// syntheticMetrics are the computed metrics a goal may reference in
// addition to real fields from the availability profile.
var syntheticMetrics = map[string]struct{}{
	"event_count":  {},
	"success_rate": {},
	"error_rate":   {},
	"avg_duration": {},
	"throughput":   {},
}

// parseGoalsResponse extracts and strictly decodes the JSON object in the
// model's text output.
func parseGoalsResponse(text string) (*goalsResponse, error) {
	if text == "" {
		return nil, eris.New("explorer: empty model response")
	}

	// The model may wrap the JSON in prose; take the outermost object.
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, eris.Errorf("explorer: no JSON object in response: %.120s", text)
	}

	dec := json.NewDecoder(strings.NewReader(text[start : end+1]))
	dec.DisallowUnknownFields()

	var resp goalsResponse
	if err := dec.Decode(&resp); err != nil {
		return nil, eris.Wrap(err, "explorer: decode goals response")
	}
	return &resp, nil
}

// validateGoals filters raw goal payloads against the availability profile:
// focus metrics must exist in the real field set (or the synthetic
// whitelist), chart types must belong to the closed enumeration, and the
// emphasis blend is renormalized. Goals without a title are dropped.
func validateGoals(raw []goalPayload, a model.DataAvailability) []model.ProposalGoal {
	fieldSet := make(map[string]struct{}, len(a.AvailableFields))
	for _, f := range a.AvailableFields {
		fieldSet[f] = struct{}{}
	}

	var goals []model.ProposalGoal
	for _, g := range raw {
		if strings.TrimSpace(g.Title) == "" {
			continue
		}

		var metrics []string
		for _, m := range g.FocusMetrics {
			if _, ok := fieldSet[m]; ok {
				metrics = append(metrics, m)
				continue
			}
			if _, ok := syntheticMetrics[m]; ok {
				metrics = append(metrics, m)
			}
			// Anything else is a hallucinated field: dropped, never invented.
		}

		var charts []model.ChartType
		for _, c := range g.ChartTypes {
			if model.ValidChartType(c) {
				charts = append(charts, model.ChartType(c))
			}
		}
		if len(charts) == 0 {
			charts = []model.ChartType{model.ChartKPI}
		}

		goals = append(goals, model.ProposalGoal{
			Title:        strings.TrimSpace(g.Title),
			Pitch:        strings.TrimSpace(g.Pitch),
			FocusMetrics: metrics,
			ChartTypes:   charts,
			Emphasis: model.EmphasisBlend{
				Dashboard: g.Emphasis.Dashboard,
				Product:   g.Emphasis.Product,
				Analytics: g.Emphasis.Analytics,
			}.Normalize(),
		})
	}
	return goals
}
