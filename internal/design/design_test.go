package design

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/pulseboard/dashgen/internal/model"
	"github.com/pulseboard/dashgen/pkg/anthropic"
)

const validDesignJSON = `{
	"reasoning": "Cool blues for an operational board.",
	"design_system": {
		"name": "Midnight Ops",
		"palette": {
			"primary": "#1E3A8A",
			"secondary": "#475569",
			"background": "#0F172A",
			"surface": "#1E293B",
			"accent": "#38BDF8",
			"text": "#F1F5F9"
		},
		"typography": {"heading_font": "Space Grotesk", "body_font": "Inter", "scale": "1.250"},
		"effects": {"radius": "12px", "shadow": "glow", "density": "compact"}
	}
}`

type mockClient struct {
	mu       sync.Mutex
	text     string
	err      error
	requests []anthropic.MessageRequest
}

func (m *mockClient) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: m.text}},
	}, nil
}

func newTestGenerator(client anthropic.Client) *ClaudeGenerator {
	g := NewClaudeGenerator(client, "claude-haiku-4-5-20251001", 0)
	g.limiter = rate.NewLimiter(rate.Inf, 1)
	return g
}

func sampleRequest() Request {
	return Request{
		Hint:          "Dark, information-dense, built for a wall monitor.",
		WorkflowName:  "Lead Qualification Pipeline",
		Archetype:     model.ArchetypeLeadPipeline,
		Emphasis:      model.EmphasisBlend{Dashboard: 0.5, Product: 0.3, Analytics: 0.2},
		ProposalIndex: 0,
	}
}

func TestGenerateParsesDesignSystem(t *testing.T) {
	client := &mockClient{text: "Here you go: " + validDesignJSON}
	g := newTestGenerator(client)

	res, err := g.Generate(context.Background(), sampleRequest())
	require.NoError(t, err)

	assert.Equal(t, "Midnight Ops", res.DesignSystem.Name)
	assert.Equal(t, "#1E3A8A", res.DesignSystem.Palette.Primary)
	assert.Equal(t, "#F1F5F9", res.DesignSystem.Palette.TextColor)
	assert.Equal(t, "Space Grotesk", res.DesignSystem.Typography.HeadingFont)
	assert.Equal(t, "compact", res.DesignSystem.Effects.Density)
	assert.Equal(t, "Cool blues for an operational board.", res.Reasoning)

	require.Len(t, client.requests, 1)
	req := client.requests[0]
	assert.Equal(t, "claude-haiku-4-5-20251001", req.Model)
	assert.Contains(t, req.Messages[0].Content, "Lead Qualification Pipeline")
	assert.Contains(t, req.Messages[0].Content, "wall monitor")
	assert.Contains(t, req.Messages[0].Content, "lead_pipeline")
}

func TestGeneratePropagatesClientError(t *testing.T) {
	client := &mockClient{err: errors.New("overloaded")}
	g := newTestGenerator(client)

	_, err := g.Generate(context.Background(), sampleRequest())
	assert.Error(t, err)
}

func TestGenerateRejectsMalformedResponses(t *testing.T) {
	cases := map[string]string{
		"no json":        "I can't produce that right now.",
		"unknown fields": `{"reasoning": "r", "design_system": {"name": "X", "palette": {"primary": "#000000"}}, "extra": true}`,
		"missing name":   `{"reasoning": "r", "design_system": {"palette": {"primary": "#000000"}}}`,
		"missing color":  `{"reasoning": "r", "design_system": {"name": "X"}}`,
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			g := newTestGenerator(&mockClient{text: text})
			_, err := g.Generate(context.Background(), sampleRequest())
			assert.Error(t, err)
		})
	}
}

func TestGenerateHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := &mockClient{text: validDesignJSON}
	g := NewClaudeGenerator(client, "claude-haiku-4-5-20251001", 0)

	_, err := g.Generate(ctx, sampleRequest())
	assert.Error(t, err, "limiter wait fails on a cancelled context")
	assert.Empty(t, client.requests)
}

func TestNeutralIsWellFormed(t *testing.T) {
	ds := Neutral()
	assert.NotEmpty(t, ds.Name)
	assert.NotEmpty(t, ds.Palette.Primary)
	assert.NotEmpty(t, ds.Typography.HeadingFont)
	assert.NotEmpty(t, ds.Effects.Radius)
}
