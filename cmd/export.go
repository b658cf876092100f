package main

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/dataset"
	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/export"
	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/model"
)

var (
	exportFormat string
	exportOut    string
	exportRunID  string
	exportStats  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export hotspot statistics as GeoJSON, shapefile, or XLSX",
	Long:  "Exports hotspot statistics from the run store (latest run by default) or from a stats CSV written by the hotspots stage.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		hotspots, err := loadExportHotspots(ctx)
		if err != nil {
			return err
		}
		if len(hotspots) == 0 {
			return eris.New("export: no hotspots found; run the hotspots stage first")
		}

		out := exportOut
		if out == "" {
			out = defaultExportName(exportFormat)
		}

		switch exportFormat {
		case "geojson":
			err = export.GeoJSON(hotspots, out)
		case "shapefile":
			err = export.Shapefile(hotspots, out)
		case "xlsx":
			err = export.Workbook(hotspots, out)
		default:
			return eris.Errorf("export: unsupported format %q (geojson, shapefile, xlsx)", exportFormat)
		}
		if err != nil {
			return err
		}

		zap.L().Info("export complete",
			zap.String("format", exportFormat),
			zap.String("path", out),
			zap.Int("hotspots", len(hotspots)),
		)
		return nil
	},
}

func defaultExportName(format string) string {
	switch format {
	case "shapefile":
		return "hotspots.shp"
	case "xlsx":
		return "hotspots.xlsx"
	default:
		return "hotspots.geojson"
	}
}

// loadExportHotspots reads from the stats CSV when given, otherwise
// from the store.
func loadExportHotspots(ctx context.Context) ([]model.Hotspot, error) {
	if exportStats != "" {
		return dataset.ReadHotspots(exportStats)
	}

	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	defer st.Close()
	if err := st.Migrate(ctx); err != nil {
		return nil, err
	}

	runID := exportRunID
	if runID == "" {
		run, err := st.LatestRun(ctx)
		if err != nil {
			return nil, err
		}
		if run == nil {
			return nil, eris.New("export: no recorded runs")
		}
		runID = run.ID
	}

	return st.ListHotspots(ctx, runID, 0)
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "geojson", "output format: geojson, shapefile, xlsx")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output path (default hotspots.<ext>)")
	exportCmd.Flags().StringVar(&exportRunID, "run", "", "run ID to export (default latest)")
	exportCmd.Flags().StringVar(&exportStats, "stats", "", "hotspot stats CSV to export instead of the store")
	rootCmd.AddCommand(exportCmd)
}
