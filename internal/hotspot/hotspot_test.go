package hotspot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/model"
)

// blob produces n records scattered tightly around a center point.
func blob(n int, lat, lng float64, sev int) []model.Accident {
	out := make([]model.Accident, n)
	for i := range out {
		jitter := float64(i%7) * 0.001
		out[i] = model.Accident{
			ID:         "x",
			Severity:   sev,
			StartLat:   lat + jitter,
			StartLng:   lng - jitter,
			DistanceMi: 0.5,
			Cluster:    -1,
		}
	}
	return out
}

func TestFitScaler(t *testing.T) {
	records := []model.Accident{
		{StartLat: 10, StartLng: -80},
		{StartLat: 20, StartLng: -90},
	}
	s := FitScaler(records)
	assert.InDelta(t, 15, s.MeanLat, 1e-9)
	assert.InDelta(t, -85, s.MeanLng, 1e-9)
	assert.InDelta(t, 5, s.StdLat, 1e-9)
	assert.InDelta(t, 5, s.StdLng, 1e-9)

	x, y := s.Transform(20, -80)
	assert.InDelta(t, 1, x, 1e-9)
	assert.InDelta(t, 1, y, 1e-9)

	lat, lng := s.Inverse(x, y)
	assert.InDelta(t, 20, lat, 1e-9)
	assert.InDelta(t, -80, lng, 1e-9)
}

func TestFitScaler_ZeroVariance(t *testing.T) {
	records := []model.Accident{
		{StartLat: 40, StartLng: -100},
		{StartLat: 40, StartLng: -100},
	}
	s := FitScaler(records)
	assert.Equal(t, 1.0, s.StdLat)
	assert.Equal(t, 1.0, s.StdLng)

	x, y := s.Transform(40, -100)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)
}

func TestPartition_Validation(t *testing.T) {
	ctx := context.Background()
	records := blob(5, 40, -100, 2)

	_, err := Partition(ctx, records, Config{K: 0})
	require.Error(t, err)

	_, err = Partition(ctx, records, Config{K: 10})
	require.Error(t, err)

	_, err = Partition(ctx, nil, Config{K: 1})
	require.Error(t, err)
}

func TestPartitionAndAssign_SeparatedBlobs(t *testing.T) {
	ctx := context.Background()

	var records []model.Accident
	records = append(records, blob(60, 40.0, -100.0, 2)...)
	records = append(records, blob(60, 25.0, -80.0, 3)...)
	records = append(records, blob(60, 47.0, -122.0, 4)...)

	m, err := Partition(ctx, records, Config{K: 3, DeltaThreshold: 0.01})
	require.NoError(t, err)
	require.Len(t, m.Centers, 3)

	require.NoError(t, m.Assign(ctx, records))

	// Every record is labeled in [0, k).
	labelsPerBlob := make([]map[int]int, 3)
	for b := range labelsPerBlob {
		labelsPerBlob[b] = map[int]int{}
	}
	for i, rec := range records {
		require.GreaterOrEqual(t, rec.Cluster, 0)
		require.Less(t, rec.Cluster, 3)
		labelsPerBlob[i/60][rec.Cluster]++
	}

	// Well-separated blobs land in distinct clusters.
	seen := map[int]bool{}
	for b, labels := range labelsPerBlob {
		require.Len(t, labels, 1, "blob %d split across clusters", b)
		for label := range labels {
			assert.False(t, seen[label], "clusters collided")
			seen[label] = true
		}
	}
}

func TestSummarize_SortAndStats(t *testing.T) {
	records := []model.Accident{
		{Cluster: 1, Severity: 2, DistanceMi: 1.0, StartLat: 40.0, StartLng: -100.0},
		{Cluster: 1, Severity: 4, DistanceMi: 3.0, StartLat: 40.2, StartLng: -100.2},
		{Cluster: 0, Severity: 3, DistanceMi: 0.5, StartLat: 25.0, StartLng: -80.0},
		{Cluster: 2, Severity: 1, DistanceMi: 0.0, StartLat: 47.0, StartLng: -122.0},
		{Cluster: 2, Severity: 1, DistanceMi: 0.0, StartLat: 47.1, StartLng: -122.1},
	}

	stats := Summarize(records, 4)
	require.Len(t, stats, 3) // cluster 3 is empty and omitted

	// Count desc; tie between clusters 1 and 2 broken by ID.
	assert.Equal(t, 1, stats[0].Cluster)
	assert.Equal(t, 2, stats[1].Cluster)
	assert.Equal(t, 0, stats[2].Cluster)

	top := stats[0]
	assert.Equal(t, 2, top.Count)
	assert.InDelta(t, 3.0, top.AvgSeverity, 1e-9)
	assert.Equal(t, 4, top.MaxSeverity)
	assert.InDelta(t, 2.0, top.AvgDistance, 1e-9)
	assert.InDelta(t, 40.1, top.CenterLat, 1e-9)
	assert.InDelta(t, -100.1, top.CenterLng, 1e-9)
	assert.InDelta(t, 40.0, top.MinLat, 1e-9)
	assert.InDelta(t, 40.2, top.MaxLat, 1e-9)
	assert.InDelta(t, -100.2, top.MinLng, 1e-9)
	assert.InDelta(t, -100.0, top.MaxLng, 1e-9)
}

func TestSummarize_IgnoresUnassigned(t *testing.T) {
	records := []model.Accident{
		{Cluster: -1, Severity: 4, StartLat: 40, StartLng: -100},
		{Cluster: 0, Severity: 2, StartLat: 40, StartLng: -100},
	}
	stats := Summarize(records, 1)
	require.Len(t, stats, 1)
	assert.Equal(t, 1, stats[0].Count)
}
