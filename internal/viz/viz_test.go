package viz

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/model"
)

func testRecords(n int) []model.Accident {
	out := make([]model.Accident, n)
	for i := range out {
		out[i] = model.Accident{
			ID:       "x",
			Severity: i%4 + 1,
			StartLat: 30 + float64(i%10),
			StartLng: -120 + float64(i%17),
			Cluster:  i % 3,
		}
	}
	return out
}

func TestSample_Deterministic(t *testing.T) {
	records := testRecords(100)

	a := Sample(records, 10, 42)
	b := Sample(records, 10, 42)
	require.Len(t, a, 10)
	assert.Equal(t, a, b)

	c := Sample(records, 10, 7)
	assert.NotEqual(t, a, c)

	// No-op cases return the input unchanged.
	assert.Len(t, Sample(records, 0, 42), 100)
	assert.Len(t, Sample(records, 100, 42), 100)
	assert.Len(t, Sample(records, 500, 42), 100)
}

func TestDensityGrid(t *testing.T) {
	records := []model.Accident{
		{StartLat: 0, StartLng: 0},
		{StartLat: 0, StartLng: 0.1},
		{StartLat: 10, StartLng: 10},
	}
	g := newDensityGrid(records, 10)

	cols, rows := g.Dims()
	assert.Equal(t, 10, cols)
	assert.Equal(t, 10, rows)

	// Two records in the lowest-left cell, one in the top-right.
	assert.Equal(t, 2.0, g.count(0, 0))
	assert.Equal(t, 1.0, g.count(9, 9))
	assert.Equal(t, 0.0, g.count(5, 5))
	assert.Equal(t, 2.0, g.max)

	// Bin centers are inside the data extent.
	assert.InDelta(t, 0.5, g.X(0), 0.001)
	assert.InDelta(t, 9.5, g.Y(9), 0.001)
}

func TestDensityGrid_DegenerateExtent(t *testing.T) {
	records := []model.Accident{
		{StartLat: 40, StartLng: -100},
		{StartLat: 40, StartLng: -100},
	}
	g := newDensityGrid(records, 5)
	assert.Equal(t, 2.0, g.count(0, 0))
}

func TestStaticPlots(t *testing.T) {
	dir := t.TempDir()
	records := testRecords(200)

	require.NoError(t, DensityHeatmap(records, 20, filepath.Join(dir, "density.png")))
	require.NoError(t, SeverityScatter(records, filepath.Join(dir, "severity.png")))
	require.NoError(t, ClusterScatter(records, filepath.Join(dir, "clusters.png")))

	for _, name := range []string{"density.png", "severity.png", "clusters.png"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestInteractiveCharts(t *testing.T) {
	dir := t.TempDir()
	records := testRecords(200)

	heatPath := filepath.Join(dir, "heat.html")
	require.NoError(t, InteractiveHeatmap(records, 20, heatPath))

	clusterPath := filepath.Join(dir, "clusters.html")
	require.NoError(t, InteractiveClusterMap(records, clusterPath))

	heat, err := os.ReadFile(heatPath)
	require.NoError(t, err)
	assert.Contains(t, string(heat), "echarts")

	cl, err := os.ReadFile(clusterPath)
	require.NoError(t, err)
	assert.Contains(t, string(cl), "hotspot 0")
}

func TestRenderAll(t *testing.T) {
	dir := t.TempDir()
	records := testRecords(300)

	artifacts, err := RenderAll(context.Background(), records, true, Options{
		Bins:            10,
		StaticSampleCap: 100,
		HeatSampleCap:   100,
		MarkerSampleCap: 50,
		SampleSeed:      42,
	}, dir)
	require.NoError(t, err)
	assert.Len(t, artifacts, 5)

	for _, p := range artifacts {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestRenderAll_Cancelled(t *testing.T) {
	dir := t.TempDir()
	records := testRecords(300)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RenderAll(ctx, records, true, Options{
		Bins: 10, SampleSeed: 42,
	}, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cancelled")
}

func TestRenderAll_NoClusterColumn(t *testing.T) {
	dir := t.TempDir()
	records := testRecords(50)
	for i := range records {
		records[i].Cluster = -1
	}

	artifacts, err := RenderAll(context.Background(), records, false, Options{
		Bins: 10, SampleSeed: 42,
	}, dir)
	require.NoError(t, err)
	assert.Len(t, artifacts, 3)

	_, err = os.Stat(filepath.Join(dir, FileClusterScatter))
	assert.True(t, os.IsNotExist(err))
}
