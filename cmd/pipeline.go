package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var pipelineInput string

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Run the full pipeline: explore, clean, hotspots, visualize, recommend",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		input, err := resolveInput(pipelineInput)
		if err != nil {
			return err
		}

		runner, closeStore := newRunner(ctx)
		defer closeStore()

		run, err := runner.Run(ctx, input)
		if err != nil {
			return err
		}

		if run == nil {
			zap.L().Info("pipeline complete", zap.String("input", input))
			return nil
		}

		zap.L().Info("pipeline complete",
			zap.String("run_id", run.ID),
			zap.String("status", string(run.Status)),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	},
}

func init() {
	pipelineCmd.Flags().StringVar(&pipelineInput, "input", "", "raw accidents CSV (default from config)")
	rootCmd.AddCommand(pipelineCmd)
}
