package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/dataset"
	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/model"
)

func TestDefaultExportName(t *testing.T) {
	assert.Equal(t, "hotspots.geojson", defaultExportName("geojson"))
	assert.Equal(t, "hotspots.shp", defaultExportName("shapefile"))
	assert.Equal(t, "hotspots.xlsx", defaultExportName("xlsx"))
}

func TestLoadExportHotspots_FromStatsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hotspot_stats.csv")
	want := []model.Hotspot{
		{Cluster: 1, Count: 40, AvgSeverity: 2.3, MaxSeverity: 4, AvgDistance: 0.2,
			CenterLat: 34.0, CenterLng: -118.2, MinLat: 33.9, MaxLat: 34.1, MinLng: -118.3, MaxLng: -118.1},
	}
	require.NoError(t, dataset.WriteHotspots(path, want))

	exportStats = path
	t.Cleanup(func() { exportStats = "" })

	got, err := loadExportHotspots(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, want[0].Cluster, got[0].Cluster)
	assert.Equal(t, want[0].Count, got[0].Count)
	assert.InDelta(t, want[0].AvgSeverity, got[0].AvgSeverity, 1e-9)
}
