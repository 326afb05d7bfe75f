package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/pulseboard/dashgen/internal/design"
	"github.com/pulseboard/dashgen/internal/events"
	"github.com/pulseboard/dashgen/internal/explorer"
	"github.com/pulseboard/dashgen/internal/proposal"
	anthropicpkg "github.com/pulseboard/dashgen/pkg/anthropic"
)

// engineEnv holds the initialized store and engine shared by the propose and
// serve commands.
type engineEnv struct {
	Store  events.Store
	Engine *proposal.Engine
}

// Close releases resources held by the environment.
func (e *engineEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

// initStore opens the configured event store backend.
func initStore(ctx context.Context) (events.Store, error) {
	switch cfg.Store.Driver {
	case "postgres":
		st, err := events.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
		if err != nil {
			return nil, eris.Wrap(err, "init postgres store")
		}
		return st, nil
	case "sqlite":
		st, err := events.NewSQLite(cfg.Store.SQLitePath)
		if err != nil {
			return nil, eris.Wrap(err, "init sqlite store")
		}
		return st, nil
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// initEngine sets up the store, the Anthropic client, and the proposal
// engine. Callers should defer env.Close(). Without an API key the engine
// runs model-free: classifier fallback goals and neutral design systems.
func initEngine(ctx context.Context, mode string) (*engineEnv, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	var client anthropicpkg.Client
	var designer design.Generator = neutralGenerator{}
	if cfg.Anthropic.Key != "" {
		client = anthropicpkg.NewClient(cfg.Anthropic.Key)
		designer = design.NewClaudeGenerator(client, cfg.Anthropic.DesignModel,
			time.Duration(cfg.Design.TimeoutSecs)*time.Second)
	} else {
		zap.L().Warn("DASHGEN_ANTHROPIC_KEY not set, running on the deterministic fallback path")
	}

	exp := explorer.New(client, explorer.Config{
		PrimaryModel:   cfg.Anthropic.PrimaryModel,
		SecondaryModel: cfg.Anthropic.SecondaryModel,
		AttemptTimeout: time.Duration(cfg.Explorer.AttemptTimeoutSecs) * time.Second,
		MaxTokens:      cfg.Explorer.MaxTokens,
	})

	eng := proposal.NewEngine(st, exp, designer, proposal.Config{
		DesignTimeout: time.Duration(cfg.Design.TimeoutSecs) * time.Second,
	})

	return &engineEnv{Store: st, Engine: eng}, nil
}

// neutralGenerator satisfies the design collaborator contract without a
// model: every proposal gets the neutral default.
type neutralGenerator struct{}

func (neutralGenerator) Generate(_ context.Context, _ design.Request) (*design.Result, error) {
	return &design.Result{
		DesignSystem: design.Neutral(),
		Reasoning:    "Neutral default styling; no design model is configured.",
	}, nil
}
