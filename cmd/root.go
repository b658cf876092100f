package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "hotspot",
	Short: "Road accident hotspot detection pipeline",
	Long:  "Cleans geocoded accident exports, partitions them into spatial hotspots via K-Means, renders static and interactive maps, and derives policy statistics.",
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
