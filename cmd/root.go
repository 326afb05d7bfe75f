package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pulseboard/dashgen/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "dashgen",
	Short: "Dashboard proposal generation engine",
	Long:  "Profiles a tenant's automation event stream, classifies the workflow, explores dashboard goals via Claude with a deterministic fallback, and emits styled wireframe proposals.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
