// Package proposal is the engine entry point: it orchestrates classification,
// availability assessment, goal exploration, design-system generation, and
// wireframe synthesis into a uniformly-shaped proposals payload.
package proposal

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/pulseboard/dashgen/internal/archetype"
	"github.com/pulseboard/dashgen/internal/availability"
	"github.com/pulseboard/dashgen/internal/design"
	"github.com/pulseboard/dashgen/internal/events"
	"github.com/pulseboard/dashgen/internal/explorer"
	"github.com/pulseboard/dashgen/internal/model"
	"github.com/pulseboard/dashgen/internal/wireframe"
)

// Request identifies the workflow to generate proposals for.
type Request struct {
	TenantID         string   `json:"tenant_id"`
	SourceID         string   `json:"source_id"`
	WorkflowName     string   `json:"workflow_name"`
	PlatformType     string   `json:"platform_type"`
	SelectedEntities []string `json:"selected_entities"`
}

// Timing records per-stage durations for observability.
type Timing struct {
	ClassifyMs int64 `json:"classify_ms"`
	ExplorerMs int64 `json:"explorer_ms"`
	AssemblyMs int64 `json:"assembly_ms"`
	TotalMs    int64 `json:"total_ms"`
}

// Result is the engine's output. Success is false only when the design
// generator collaborator is absent; individual proposal failures degrade to
// a neutral design system instead.
type Result struct {
	Success   bool                   `json:"success"`
	Proposals []model.Proposal       `json:"proposals"`
	Payload   model.ProposalsPayload `json:"payload"`
	Archetype model.Archetype        `json:"archetype"`
	Timing    Timing                 `json:"timing"`
}

// Config holds the engine's assembly settings.
type Config struct {
	// DesignTimeout bounds each design-system call. Default 60s.
	DesignTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.DesignTimeout <= 0 {
		c.DesignTimeout = 60 * time.Second
	}
	return c
}

// Engine generates dashboard proposals for a workflow.
type Engine struct {
	store    events.Store
	explorer *explorer.Explorer
	designer design.Generator
	cfg      Config

	// designSem serializes design-system calls. The upstream style provider
	// queues rather than rejects concurrent requests per key, so one
	// in-flight call at a time is the only arrangement that keeps per-call
	// timeouts meaningful.
	designSem *semaphore.Weighted
}

// NewEngine creates an Engine. designer may be nil, in which case every
// generation reports Success=false.
func NewEngine(store events.Store, exp *explorer.Explorer, designer design.Generator, cfg Config) *Engine {
	return &Engine{
		store:     store,
		explorer:  exp,
		designer:  designer,
		cfg:       cfg.withDefaults(),
		designSem: semaphore.NewWeighted(1),
	}
}

// axisHints seed the per-proposal style direction. The proposal index is
// appended so independent proposals diverge visually.
var axisHints = map[model.EmphasisAxis]string{
	model.AxisDashboard: "Confident and operational: strong contrast, data-dense, built for constant monitoring.",
	model.AxisProduct:   "Polished and presentation-ready: generous whitespace, a warm accent, executive-friendly.",
	model.AxisAnalytics: "Muted and analytical: neutral surfaces, restrained color, let the numbers lead.",
}

// Generate runs the full pipeline. It never returns an error: every failure
// mode degrades to a complete, uniformly-shaped result.
func (e *Engine) Generate(ctx context.Context, req Request) Result {
	start := time.Now()
	log := zap.L().With(
		zap.String("tenant_id", req.TenantID),
		zap.String("workflow", req.WorkflowName),
	)

	classifyStart := time.Now()
	cls := archetype.Classify(req.WorkflowName, req.PlatformType, req.SelectedEntities)
	avail := availability.Assess(ctx, e.store, req.TenantID, req.SourceID)
	classifyMs := time.Since(classifyStart).Milliseconds()

	exp := e.explorer.Explore(ctx, avail, explorer.Context{
		WorkflowName:     req.WorkflowName,
		PlatformType:     req.PlatformType,
		SelectedEntities: req.SelectedEntities,
	})

	if e.designer == nil {
		log.Error("proposal generation aborted: no design generator configured")
		return Result{
			Success:   false,
			Archetype: cls.Archetype,
			Timing: Timing{
				ClassifyMs: classifyMs,
				ExplorerMs: exp.ExplorerMs,
				TotalMs:    time.Since(start).Milliseconds(),
			},
		}
	}

	assemblyStart := time.Now()
	proposals := make([]model.Proposal, 0, len(exp.Goals))
	for i, goal := range exp.Goals {
		ds, reasoning := e.generateDesign(ctx, req, exp.Category, goal, i, len(exp.Goals))

		proposals = append(proposals, model.Proposal{
			Index:           i,
			ID:              uuid.NewString(),
			Title:           goal.Title,
			Pitch:           goal.Pitch,
			Archetype:       exp.Category,
			EmphasisBlend:   goal.Emphasis,
			DesignSystem:    ds,
			WireframeLayout: wireframe.Build(goal.Emphasis, req.SelectedEntities, i, &avail),
			Reasoning:       reasoning,
		})
	}
	assemblyMs := time.Since(assemblyStart).Milliseconds()

	payload := model.ProposalsPayload{
		Proposals:   proposals,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Context: model.PayloadContext{
			WorkflowName:     req.WorkflowName,
			PlatformType:     req.PlatformType,
			SelectedEntities: req.SelectedEntities,
			Archetype:        exp.Category,
			DataAvailability: &avail,
		},
	}

	result := Result{
		Success:   true,
		Proposals: proposals,
		Payload:   payload,
		Archetype: exp.Category,
		Timing: Timing{
			ClassifyMs: classifyMs,
			ExplorerMs: exp.ExplorerMs,
			AssemblyMs: assemblyMs,
			TotalMs:    time.Since(start).Milliseconds(),
		},
	}
	log.Info("proposal generation complete",
		zap.String("archetype", string(exp.Category)),
		zap.String("source", string(exp.Source)),
		zap.Int("proposals", len(proposals)),
		zap.Int64("total_ms", result.Timing.TotalMs),
	)
	return result
}

// generateDesign runs one serialized, bounded design-system call. A failure
// for this index yields the neutral default and an explanatory reasoning
// string; siblings are unaffected.
func (e *Engine) generateDesign(ctx context.Context, req Request, arch model.Archetype, goal model.ProposalGoal, index, total int) (model.DesignSystem, string) {
	hint := fmt.Sprintf("%s This is proposal %d of %d; make it visually distinct from the others.",
		axisHints[goal.Emphasis.Dominant()], index+1, total)

	if err := e.designSem.Acquire(ctx, 1); err != nil {
		zap.L().Warn("design generation skipped, using neutral default",
			zap.Int("index", index),
			zap.Error(err),
		)
		return design.Neutral(), "Styling was skipped because generation was cancelled; a neutral default was applied."
	}
	defer e.designSem.Release(1)

	callCtx, cancel := context.WithTimeout(ctx, e.cfg.DesignTimeout)
	defer cancel()

	res, err := e.designer.Generate(callCtx, design.Request{
		Hint:          hint,
		WorkflowName:  req.WorkflowName,
		Archetype:     arch,
		Emphasis:      goal.Emphasis,
		ProposalIndex: index,
	})
	if err != nil {
		zap.L().Warn("design generation failed, using neutral default",
			zap.Int("index", index),
			zap.Error(err),
		)
		return design.Neutral(), "Style generation failed for this proposal; a neutral default design system was applied."
	}
	return res.DesignSystem, res.Reasoning
}
