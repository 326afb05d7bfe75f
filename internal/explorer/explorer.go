// Package explorer is the reasoning stage of proposal generation: it sends
// a summary of the tenant's data profile to a language model, validates the
// returned dashboard goals against the real field set, and falls back to
// the deterministic archetype classifier when every model attempt fails.
package explorer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pulseboard/dashgen/internal/archetype"
	"github.com/pulseboard/dashgen/internal/model"
	"github.com/pulseboard/dashgen/internal/resilience"
	"github.com/pulseboard/dashgen/pkg/anthropic"
)

// Source records which path produced the explorer result.
type Source string

// Result sources.
const (
	SourceLLM      Source = "llm"
	SourceFallback Source = "fallback"
)

// Context is the workflow context the goals are explored for.
type Context struct {
	WorkflowName     string
	PlatformType     string
	SelectedEntities []string
}

// Result is the explorer's output, identical in shape for the model path
// and the fallback path.
type Result struct {
	Category      model.Archetype      `json:"category"`
	Confidence    float64              `json:"confidence"`
	Reasoning     string               `json:"reasoning"`
	ProposalCount int                  `json:"proposal_count"`
	Goals         []model.ProposalGoal `json:"goals"`
	DataSummary   string               `json:"data_summary"`
	ExplorerMs    int64                `json:"explorer_ms"`
	Source        Source               `json:"source"`
}

// Config holds the model cascade settings.
type Config struct {
	// PrimaryModel is tried first; SecondaryModel is the single cheaper
	// fallback. Neither model is ever attempted twice: failures of one
	// provider key are assumed correlated (rate limiting), not transient.
	PrimaryModel   string
	SecondaryModel string

	// AttemptTimeout bounds each model call. Default 45s.
	AttemptTimeout time.Duration

	MaxTokens int64
}

func (c Config) withDefaults() Config {
	if c.AttemptTimeout <= 0 {
		c.AttemptTimeout = 45 * time.Second
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = 2048
	}
	return c
}

// Explorer produces dashboard goals for a workflow's availability profile.
type Explorer struct {
	client anthropic.Client
	cfg    Config
}

// New creates an Explorer. A nil client disables the reasoning stage; every
// exploration then takes the fallback path.
func New(client anthropic.Client, cfg Config) *Explorer {
	return &Explorer{client: client, cfg: cfg.withDefaults()}
}

const systemPrompt = `You are a dashboard planning assistant. Given a statistical profile of a workflow's event data, propose 1-3 distinct dashboard goals that respect what the data can actually support.

Rules:
- Propose at most 1 goal if the profile has fewer than 10 events, at most 2 if fewer than 50 events or sparse richness, at most 3 otherwise.
- focus_metrics may only name fields listed in the profile, or one of: event_count, success_rate, error_rate, avg_duration, throughput.
- chart_types may only use: kpi, line_chart, bar_chart, pie_chart, table, funnel, timeline, status_grid.
- Do not propose line_chart unless the profile is timeseries capable. Do not propose bar_chart or pie_chart breakdowns unless it is breakdown capable.
- emphasis weights (dashboard, product, analytics) should sum to 1.0.

Respond with ONLY valid JSON, no other text:
{"reasoning": "...", "goals": [{"title": "...", "pitch": "...", "focus_metrics": [], "chart_types": [], "emphasis": {"dashboard": 0.5, "product": 0.25, "analytics": 0.25}}]}`

// attempt describes one step of the model cascade. The cascade bound is the
// length of the attempt list, not implicit control flow.
type attempt struct {
	model       string
	timeout     time.Duration
	temperature float64
}

// Explore produces a Result for the availability profile. It never returns
// an error: exhaustion of the model cascade degrades to the deterministic
// classifier fallback, which always yields at least one goal.
func (e *Explorer) Explore(ctx context.Context, a model.DataAvailability, wctx Context) Result {
	start := time.Now()
	cls := archetype.Classify(wctx.WorkflowName, wctx.PlatformType, wctx.SelectedEntities)
	summary := Summarize(a)

	log := zap.L().With(
		zap.String("workflow", wctx.WorkflowName),
		zap.String("archetype", string(cls.Archetype)),
	)

	// No-data fast path: nothing to reason about, skip the model entirely.
	if a.Minimal() || e.client == nil {
		result := e.fallback(a, cls, wctx, summary)
		result.ExplorerMs = time.Since(start).Milliseconds()
		log.Info("goal exploration skipped model",
			zap.Int("total_events", a.TotalEvents),
			zap.String("richness", string(a.DataRichness)),
		)
		return result
	}

	attempts := []attempt{
		{model: e.cfg.PrimaryModel, timeout: e.cfg.AttemptTimeout, temperature: 0.7},
		{model: e.cfg.SecondaryModel, timeout: e.cfg.AttemptTimeout, temperature: 0.5},
	}

	for i, att := range attempts {
		goals, reasoning, err := e.attemptModel(ctx, att, a, wctx, summary)
		if err != nil {
			log.Warn("goal exploration attempt failed",
				zap.Int("attempt", i+1),
				zap.String("model", att.model),
				zap.Bool("timeout", resilience.IsTimeout(err)),
				zap.Error(err),
			)
			continue
		}

		goals = capGoals(goals, a)
		result := Result{
			Category:      cls.Archetype,
			Confidence:    cls.Confidence,
			Reasoning:     reasoning,
			ProposalCount: len(goals),
			Goals:         goals,
			DataSummary:   summary,
			ExplorerMs:    time.Since(start).Milliseconds(),
			Source:        SourceLLM,
		}
		log.Info("goal exploration complete",
			zap.Int("attempt", i+1),
			zap.String("model", att.model),
			zap.Int("goals", len(goals)),
			zap.Int64("explorer_ms", result.ExplorerMs),
		)
		return result
	}

	result := e.fallback(a, cls, wctx, summary)
	result.ExplorerMs = time.Since(start).Milliseconds()
	log.Warn("goal exploration exhausted model cascade, using fallback")
	return result
}

// attemptModel runs one cascade step: a single bounded model call followed
// by strict parsing and grounding validation. Zero surviving goals counts
// as a failure so the cascade moves on instead of returning an empty set.
func (e *Explorer) attemptModel(ctx context.Context, att attempt, a model.DataAvailability, wctx Context, summary string) ([]model.ProposalGoal, string, error) {
	callCtx, cancel := context.WithTimeout(ctx, att.timeout)
	defer cancel()

	userMsg := fmt.Sprintf("Workflow: %s\nPlatform: %s\nEntities: %s\n\nData profile:\n%s",
		wctx.WorkflowName, wctx.PlatformType, joinOr(wctx.SelectedEntities, "none"), summary)

	temp := att.temperature
	resp, err := e.client.CreateMessage(callCtx, anthropic.MessageRequest{
		Model:       att.model,
		MaxTokens:   e.cfg.MaxTokens,
		System:      []anthropic.SystemBlock{{Text: systemPrompt}},
		Messages:    []anthropic.Message{{Role: "user", Content: userMsg}},
		Temperature: &temp,
	})
	if err != nil {
		return nil, "", err
	}
	resp.Usage.LogCost(att.model, "goal_explorer")

	parsed, err := parseGoalsResponse(resp.Text())
	if err != nil {
		return nil, "", err
	}

	goals := validateGoals(parsed.Goals, a)
	if len(goals) == 0 {
		return nil, "", fmt.Errorf("explorer: no valid goals after filtering (model %s)", att.model)
	}
	return goals, parsed.Reasoning, nil
}

// capGoals enforces the proposal-count limit regardless of model
// compliance.
func capGoals(goals []model.ProposalGoal, a model.DataAvailability) []model.ProposalGoal {
	max := maxProposals(a)
	if len(goals) > max {
		goals = goals[:max]
	}
	return goals
}

// maxProposals clamps proposal count by data volume and richness.
func maxProposals(a model.DataAvailability) int {
	switch {
	case a.TotalEvents < 10:
		return 1
	case a.TotalEvents < 50 || a.DataRichness == model.RichnessSparse:
		return 2
	default:
		return 3
	}
}

func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	out := items[0]
	for _, s := range items[1:] {
		out += ", " + s
	}
	return out
}
