package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/model"
	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/pipeline"
)

var (
	recommendInput string
	recommendRules string
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Derive policy recommendations from cross-tabulations",
	Long:  "Cross-tabulates road features, time of day, states, and weather against severity and writes a rule-driven policy report.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if recommendRules != "" {
			cfg.Policy.RulesPath = recommendRules
		}

		runner, closeStore := newRunner(ctx)
		defer closeStore()

		input := recommendInput
		if input == "" {
			input = runner.ArtifactPath(pipeline.FileClusteredCSV)
		}

		out, err := runner.Single(ctx, model.StageRecommend, input)
		if err != nil {
			return err
		}
		if len(out.Artifacts) == 0 {
			return eris.New("recommend: no report written")
		}

		report, err := os.ReadFile(out.Artifacts[0])
		if err != nil {
			return eris.Wrap(err, "recommend: read report")
		}
		fmt.Fprintln(os.Stdout, string(report))
		return nil
	},
}

func init() {
	recommendCmd.Flags().StringVar(&recommendInput, "input", "", "cleaned or clustered accidents CSV (default <output_dir>/accidents_clustered.csv)")
	recommendCmd.Flags().StringVar(&recommendRules, "rules", "", "YAML file overriding recommendation thresholds")
	rootCmd.AddCommand(recommendCmd)
}
