package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/model"
)

var exploreInput string

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Profile the raw accidents export",
	Long:  "Streams the source CSV and reports shape, column types, missing values, severity levels, geographic extent, and date range.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		input, err := resolveInput(exploreInput)
		if err != nil {
			return err
		}

		runner, closeStore := newRunner(ctx)
		defer closeStore()

		out, err := runner.Single(ctx, model.StageExplore, input)
		if err != nil {
			return err
		}

		fmt.Fprintln(os.Stdout, out.Summary.Format())
		return nil
	},
}

// resolveInput falls back to the configured input path.
func resolveInput(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if cfg.Data.Input != "" {
		return cfg.Data.Input, nil
	}
	return "", eris.New("no input file: pass --input or set data.input")
}

func init() {
	exploreCmd.Flags().StringVar(&exploreInput, "input", "", "raw accidents CSV (default from config)")
	rootCmd.AddCommand(exploreCmd)
}
