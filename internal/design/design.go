// Package design generates the per-proposal style bundle (palette,
// typography, effects). The engine depends only on the Generator interface;
// a Claude-backed implementation and a neutral default are provided.
package design

import (
	"context"

	"github.com/pulseboard/dashgen/internal/model"
)

// Request carries the context a generation call is keyed by. Hint is the
// per-proposal feedback string that makes independent style proposals
// diverge.
type Request struct {
	Hint          string
	WorkflowName  string
	Archetype     model.Archetype
	Emphasis      model.EmphasisBlend
	ProposalIndex int
}

// Result is one generated design system plus the generator's reasoning.
type Result struct {
	DesignSystem model.DesignSystem
	Reasoning    string
}

// Generator produces a design system for a proposal. Implementations may
// fail or exceed their deadline; callers must tolerate both.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}

// Neutral returns the default design system substituted when generation
// fails for a proposal slot.
func Neutral() model.DesignSystem {
	return model.DesignSystem{
		Name: "Neutral",
		Palette: model.Palette{
			Primary:    "#2563EB",
			Secondary:  "#64748B",
			Background: "#F8FAFC",
			Surface:    "#FFFFFF",
			Accent:     "#0EA5E9",
			TextColor:  "#0F172A",
		},
		Typography: model.Typography{
			HeadingFont: "Inter",
			BodyFont:    "Inter",
			Scale:       "1.250",
		},
		Effects: model.Effects{
			Radius:  "8px",
			Shadow:  "soft",
			Density: "comfortable",
		},
	}
}
