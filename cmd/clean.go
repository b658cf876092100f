package main

import (
	"go.uber.org/zap"

	"github.com/spf13/cobra"

	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/model"
)

var cleanInput string

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Apply cleaning rules and write the cleaned CSV",
	Long:  "Drops rows with missing coordinates, duplicate IDs, out-of-bounds coordinates, invalid severity, or unparseable start times, and fills optional fields.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		input, err := resolveInput(cleanInput)
		if err != nil {
			return err
		}

		runner, closeStore := newRunner(ctx)
		defer closeStore()

		out, err := runner.Single(ctx, model.StageClean, input)
		if err != nil {
			return err
		}

		zap.L().Info("clean complete",
			zap.Int("records_in", out.RecordsIn),
			zap.Int("records_out", out.RecordsOut),
			zap.Strings("artifacts", out.Artifacts),
		)
		return nil
	},
}

func init() {
	cleanCmd.Flags().StringVar(&cleanInput, "input", "", "raw accidents CSV (default from config)")
	rootCmd.AddCommand(cleanCmd)
}
