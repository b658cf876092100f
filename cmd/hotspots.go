package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/model"
	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/pipeline"
)

var (
	hotspotsInput string
	hotspotsK     int
)

var hotspotsCmd = &cobra.Command{
	Use:   "hotspots",
	Short: "Cluster cleaned records into spatial hotspots",
	Long:  "Standardizes coordinates, fits K-Means, labels every record with its cluster, and writes the clustered CSV plus per-cluster statistics.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if hotspotsK > 0 {
			cfg.Cluster.K = hotspotsK
		}

		runner, closeStore := newRunner(ctx)
		defer closeStore()

		input := hotspotsInput
		if input == "" {
			input = runner.ArtifactPath(pipeline.FileCleanCSV)
		}

		out, err := runner.Single(ctx, model.StageCluster, input)
		if err != nil {
			return err
		}

		formatHotspots(os.Stdout, out.Hotspots, 10)
		return nil
	},
}

// formatHotspots prints the largest hotspots as an aligned table.
func formatHotspots(w io.Writer, hotspots []model.Hotspot, limit int) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CLUSTER\tCOUNT\tAVG SEV\tMAX SEV\tCENTER LAT\tCENTER LNG")
	for i, h := range hotspots {
		if limit > 0 && i >= limit {
			break
		}
		fmt.Fprintf(tw, "%d\t%d\t%.2f\t%d\t%.4f\t%.4f\n",
			h.Cluster, h.Count, h.AvgSeverity, h.MaxSeverity, h.CenterLat, h.CenterLng)
	}
	tw.Flush()
}

func init() {
	hotspotsCmd.Flags().StringVar(&hotspotsInput, "input", "", "cleaned accidents CSV (default <output_dir>/accidents_clean.csv)")
	hotspotsCmd.Flags().IntVar(&hotspotsK, "k", 0, "number of clusters (default from config)")
	rootCmd.AddCommand(hotspotsCmd)
}
