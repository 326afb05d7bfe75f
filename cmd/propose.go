package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pulseboard/dashgen/internal/proposal"
)

var (
	proposeTenant   string
	proposeSource   string
	proposeWorkflow string
	proposePlatform string
	proposeEntities []string
	proposeFormat   string
)

var proposeCmd = &cobra.Command{
	Use:   "propose",
	Short: "Generate dashboard proposals for a workflow",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		env, err := initEngine(ctx, "propose")
		if err != nil {
			return err
		}
		defer env.Close()

		res := env.Engine.Generate(ctx, proposal.Request{
			TenantID:         proposeTenant,
			SourceID:         proposeSource,
			WorkflowName:     proposeWorkflow,
			PlatformType:     proposePlatform,
			SelectedEntities: proposeEntities,
		})

		switch proposeFormat {
		case "json":
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				return eris.Wrap(err, "encode result")
			}
		case "yaml":
			enc := yaml.NewEncoder(os.Stdout)
			enc.SetIndent(2)
			if err := enc.Encode(res); err != nil {
				return eris.Wrap(err, "encode result")
			}
			if err := enc.Close(); err != nil {
				return eris.Wrap(err, "encode result")
			}
		default:
			return eris.Errorf("unknown format %q (want json or yaml)", proposeFormat)
		}

		if !res.Success {
			return fmt.Errorf("proposal generation failed: no design generator configured")
		}
		return nil
	},
}

func init() {
	proposeCmd.Flags().StringVar(&proposeTenant, "tenant", "", "tenant ID (required)")
	proposeCmd.Flags().StringVar(&proposeSource, "source", "", "event source ID (optional, scopes the event window)")
	proposeCmd.Flags().StringVar(&proposeWorkflow, "workflow", "", "workflow name (required)")
	proposeCmd.Flags().StringVar(&proposePlatform, "platform", "", "automation platform type, e.g. n8n, hubspot, vapi")
	proposeCmd.Flags().StringSliceVar(&proposeEntities, "entities", nil, "selected entity names")
	proposeCmd.Flags().StringVar(&proposeFormat, "format", "json", "output format: json or yaml")
	_ = proposeCmd.MarkFlagRequired("tenant")
	_ = proposeCmd.MarkFlagRequired("workflow")
	rootCmd.AddCommand(proposeCmd)
}
