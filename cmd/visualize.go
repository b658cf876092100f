package main

import (
	"go.uber.org/zap"

	"github.com/spf13/cobra"

	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/model"
	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/pipeline"
)

var visualizeInput string

var visualizeCmd = &cobra.Command{
	Use:   "visualize",
	Short: "Render static and interactive maps",
	Long:  "Renders the density heatmap and severity scatter PNGs and the interactive HTML maps. Cluster plots are included when the input carries a Cluster column.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		runner, closeStore := newRunner(ctx)
		defer closeStore()

		input := visualizeInput
		if input == "" {
			input = runner.ArtifactPath(pipeline.FileClusteredCSV)
		}

		out, err := runner.Single(ctx, model.StageVisualize, input)
		if err != nil {
			return err
		}

		zap.L().Info("visualization complete",
			zap.Int("records", out.RecordsIn),
			zap.Strings("artifacts", out.Artifacts),
		)
		return nil
	},
}

func init() {
	visualizeCmd.Flags().StringVar(&visualizeInput, "input", "", "cleaned or clustered accidents CSV (default <output_dir>/accidents_clustered.csv)")
	rootCmd.AddCommand(visualizeCmd)
}
