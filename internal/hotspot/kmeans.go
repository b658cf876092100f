// Package hotspot partitions accident records into spatial clusters
// and summarizes per-cluster statistics.
package hotspot

import (
	"context"
	"runtime"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/model"
)

// Config tunes the clustering stage.
type Config struct {
	K              int
	DeltaThreshold float64
}

// Model holds fitted cluster centers in standardized coordinate space
// together with the scaler that produced that space.
type Model struct {
	Centers [][2]float64
	Scaler  Scaler
}

// Partition standardizes record coordinates and fits K-Means with
// cfg.K clusters.
func Partition(ctx context.Context, records []model.Accident, cfg Config) (*Model, error) {
	if cfg.K < 1 {
		return nil, eris.Errorf("hotspot: k must be >= 1, got %d", cfg.K)
	}
	if len(records) == 0 {
		return nil, eris.New("hotspot: no records to cluster")
	}
	if cfg.K > len(records) {
		return nil, eris.Errorf("hotspot: k=%d exceeds record count %d", cfg.K, len(records))
	}
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "hotspot: cancelled")
	}

	scaler := FitScaler(records)

	obs := make(clusters.Observations, len(records))
	for i := range records {
		x, y := scaler.Transform(records[i].StartLat, records[i].StartLng)
		obs[i] = clusters.Coordinates{x, y}
	}

	delta := cfg.DeltaThreshold
	if delta <= 0 {
		delta = 0.01
	}
	km, err := kmeans.NewWithOptions(delta, nil)
	if err != nil {
		return nil, eris.Wrap(err, "hotspot: configure kmeans")
	}

	zap.L().Info("hotspot: fitting kmeans",
		zap.Int("k", cfg.K),
		zap.Int("records", len(records)),
		zap.Float64("delta_threshold", delta),
	)

	fitted, err := km.Partition(obs, cfg.K)
	if err != nil {
		return nil, eris.Wrap(err, "hotspot: partition")
	}

	m := &Model{Scaler: scaler, Centers: make([][2]float64, len(fitted))}
	for i, c := range fitted {
		m.Centers[i] = [2]float64{c.Center[0], c.Center[1]}
	}
	return m, nil
}

// Assign labels every record with the index of its nearest cluster
// center. Chunks are processed in parallel; records are mutated in
// place.
func (m *Model) Assign(ctx context.Context, records []model.Accident) error {
	if len(m.Centers) == 0 {
		return eris.New("hotspot: model has no centers")
	}

	workers := runtime.GOMAXPROCS(0)
	chunk := (len(records) + workers - 1) / workers
	if chunk < 1 {
		chunk = 1
	}

	g, gCtx := errgroup.WithContext(ctx)
	for start := 0; start < len(records); start += chunk {
		end := start + chunk
		if end > len(records) {
			end = len(records)
		}
		part := records[start:end]
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return eris.Wrap(err, "hotspot: assign cancelled")
			}
			for i := range part {
				x, y := m.Scaler.Transform(part[i].StartLat, part[i].StartLng)
				part[i].Cluster = m.nearest(x, y)
			}
			return nil
		})
	}
	return g.Wait()
}

// nearest returns the index of the closest center by squared euclidean
// distance, lowest index winning ties.
func (m *Model) nearest(x, y float64) int {
	best := 0
	bestDist := sqDist(x, y, m.Centers[0])
	for i := 1; i < len(m.Centers); i++ {
		if d := sqDist(x, y, m.Centers[i]); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func sqDist(x, y float64, c [2]float64) float64 {
	dx, dy := x-c[0], y-c[1]
	return dx*dx + dy*dy
}
