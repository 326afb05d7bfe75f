package proposal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseboard/dashgen/internal/design"
	"github.com/pulseboard/dashgen/internal/explorer"
	"github.com/pulseboard/dashgen/internal/model"
)

func newTestEngine(store *memStore, gen design.Generator) *Engine {
	exp := explorer.New(nil, explorer.Config{})
	return NewEngine(store, exp, gen, Config{})
}

func leadPipelineRequest() Request {
	return Request{
		TenantID:         "t1",
		SourceID:         "src-1",
		WorkflowName:     "Lead Qualification Pipeline",
		PlatformType:     "hubspot",
		SelectedEntities: []string{"Leads", "Deals"},
	}
}

func TestGenerateRichLeadPipeline(t *testing.T) {
	gen := &mockGenerator{}
	eng := newTestEngine(&memStore{recent: richWindow()}, gen)

	res := eng.Generate(context.Background(), leadPipelineRequest())

	assert.True(t, res.Success)
	assert.Equal(t, model.ArchetypeLeadPipeline, res.Archetype)
	require.Len(t, res.Proposals, 2, "80 events with sparse richness caps at 2 proposals")

	seenIDs := map[string]bool{}
	for i, p := range res.Proposals {
		assert.Equal(t, i, p.Index)
		assert.NotEmpty(t, p.ID)
		assert.False(t, seenIDs[p.ID], "proposal IDs must be unique")
		seenIDs[p.ID] = true

		assert.NotEmpty(t, p.Title)
		assert.Contains(t, p.Title, "Lead Qualification Pipeline")
		assert.NotEmpty(t, p.Pitch)
		assert.Equal(t, model.ArchetypeLeadPipeline, p.Archetype)
		assert.True(t, p.EmphasisBlend.Normalized())

		var kpis int
		for _, c := range p.WireframeLayout.Components {
			assert.True(t, c.Layout.Valid())
			if c.Type == model.ChartKPI {
				kpis++
			}
		}
		assert.GreaterOrEqual(t, kpis, 1, "every wireframe leads with at least one KPI")
	}

	assert.Equal(t, "Generated 0", res.Proposals[0].DesignSystem.Name)
	assert.Equal(t, "Generated 1", res.Proposals[1].DesignSystem.Name)
	require.Len(t, gen.requests, 2)
	assert.Contains(t, gen.hints()[0], "proposal 1 of 2")
	assert.Contains(t, gen.hints()[1], "proposal 2 of 2")
}

func TestGeneratePayloadShape(t *testing.T) {
	eng := newTestEngine(&memStore{recent: richWindow()}, &mockGenerator{})
	req := leadPipelineRequest()

	res := eng.Generate(context.Background(), req)

	payload := res.Payload
	assert.Equal(t, res.Proposals, payload.Proposals)
	_, err := time.Parse(time.RFC3339, payload.GeneratedAt)
	assert.NoError(t, err, "generated_at is RFC3339")

	assert.Equal(t, req.WorkflowName, payload.Context.WorkflowName)
	assert.Equal(t, req.PlatformType, payload.Context.PlatformType)
	assert.Equal(t, req.SelectedEntities, payload.Context.SelectedEntities)
	assert.Equal(t, model.ArchetypeLeadPipeline, payload.Context.Archetype)
	require.NotNil(t, payload.Context.DataAvailability)
	assert.Equal(t, 80, payload.Context.DataAvailability.TotalEvents)
}

func TestGenerateMinimalWindowYieldsOneProposal(t *testing.T) {
	eng := newTestEngine(&memStore{recent: bareWindow()}, &mockGenerator{})

	res := eng.Generate(context.Background(), Request{
		TenantID:     "t1",
		WorkflowName: "Daily Runner",
	})

	assert.True(t, res.Success)
	require.Len(t, res.Proposals, 1)
	assert.NotEmpty(t, res.Proposals[0].WireframeLayout.Components)
}

func TestGenerateDegradesOnStoreFailure(t *testing.T) {
	eng := newTestEngine(&memStore{err: assert.AnError}, &mockGenerator{})

	res := eng.Generate(context.Background(), leadPipelineRequest())

	assert.True(t, res.Success, "store failure degrades to minimal profile, not an error")
	require.Len(t, res.Proposals, 1)
	require.NotNil(t, res.Payload.Context.DataAvailability)
	assert.Equal(t, model.RichnessMinimal, res.Payload.Context.DataAvailability.DataRichness)
}

func TestGenerateIsolatesDesignFailurePerIndex(t *testing.T) {
	gen := &mockGenerator{failIndices: map[int]bool{1: true}}
	eng := newTestEngine(&memStore{recent: richWindow()}, gen)

	res := eng.Generate(context.Background(), leadPipelineRequest())

	assert.True(t, res.Success)
	require.Len(t, res.Proposals, 2)

	assert.Equal(t, "Generated 0", res.Proposals[0].DesignSystem.Name)
	assert.Equal(t, design.Neutral(), res.Proposals[1].DesignSystem)
	assert.Contains(t, res.Proposals[1].Reasoning, "neutral default")
	assert.NotEmpty(t, res.Proposals[1].Title, "failed index still yields a complete proposal")
}

func TestGenerateNilDesignerFails(t *testing.T) {
	eng := newTestEngine(&memStore{recent: richWindow()}, nil)

	res := eng.Generate(context.Background(), leadPipelineRequest())

	assert.False(t, res.Success)
	assert.Empty(t, res.Proposals)
	assert.Equal(t, model.ArchetypeLeadPipeline, res.Archetype, "classification still reported")
}

func TestGenerateTimingPopulated(t *testing.T) {
	eng := newTestEngine(&memStore{recent: richWindow()}, &mockGenerator{})

	res := eng.Generate(context.Background(), leadPipelineRequest())

	assert.GreaterOrEqual(t, res.Timing.TotalMs, int64(0))
	assert.GreaterOrEqual(t, res.Timing.TotalMs, res.Timing.AssemblyMs)
}
