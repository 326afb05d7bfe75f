package design

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/pulseboard/dashgen/internal/model"
	"github.com/pulseboard/dashgen/pkg/anthropic"
)

const designSystemPrompt = `You are a dashboard design-system generator. Given a workflow description and an emphasis blend, produce a cohesive visual style.

Respond with ONLY valid JSON, no other text:
{"reasoning": "...", "design_system": {"name": "...", "palette": {"primary": "#RRGGBB", "secondary": "#RRGGBB", "background": "#RRGGBB", "surface": "#RRGGBB", "accent": "#RRGGBB", "text": "#RRGGBB"}, "typography": {"heading_font": "...", "body_font": "...", "scale": "..."}, "effects": {"radius": "...", "shadow": "...", "density": "..."}}}`

// ClaudeGenerator implements Generator with a single bounded model call.
// A rate limiter spaces calls out: the upstream provider silently queues
// rather than rejects once its per-key concurrency ceiling is hit, so
// pacing here is what keeps sequential calls from stalling.
type ClaudeGenerator struct {
	client  anthropic.Client
	model   string
	timeout time.Duration
	limiter *rate.Limiter
}

// NewClaudeGenerator creates a generator using the given model. timeout
// bounds each call; zero means 60s.
func NewClaudeGenerator(client anthropic.Client, modelID string, timeout time.Duration) *ClaudeGenerator {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ClaudeGenerator{
		client:  client,
		model:   modelID,
		timeout: timeout,
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 1),
	}
}

type designResponse struct {
	Reasoning    string             `json:"reasoning"`
	DesignSystem model.DesignSystem `json:"design_system"`
}

func (g *ClaudeGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "design: rate limiter wait")
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	userMsg := fmt.Sprintf("Workflow: %s\nArchetype: %s\nEmphasis: dashboard=%.2f product=%.2f analytics=%.2f\nDirection: %s",
		req.WorkflowName, req.Archetype,
		req.Emphasis.Dashboard, req.Emphasis.Product, req.Emphasis.Analytics,
		req.Hint)

	resp, err := g.client.CreateMessage(callCtx, anthropic.MessageRequest{
		Model:     g.model,
		MaxTokens: 1024,
		System:    []anthropic.SystemBlock{{Text: designSystemPrompt}},
		Messages:  []anthropic.Message{{Role: "user", Content: userMsg}},
	})
	if err != nil {
		return nil, eris.Wrap(err, "design: create message")
	}
	resp.Usage.LogCost(g.model, "design_system")

	parsed, err := parseDesignResponse(resp.Text())
	if err != nil {
		return nil, err
	}

	return &Result{DesignSystem: parsed.DesignSystem, Reasoning: parsed.Reasoning}, nil
}

func parseDesignResponse(text string) (*designResponse, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, eris.Errorf("design: no JSON object in response: %.120s", text)
	}

	dec := json.NewDecoder(strings.NewReader(text[start : end+1]))
	dec.DisallowUnknownFields()

	var resp designResponse
	if err := dec.Decode(&resp); err != nil {
		return nil, eris.Wrap(err, "design: decode response")
	}
	if resp.DesignSystem.Name == "" || resp.DesignSystem.Palette.Primary == "" {
		return nil, eris.New("design: response missing name or primary color")
	}
	return &resp, nil
}
