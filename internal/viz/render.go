package viz

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/model"
)

// Options tunes rendering and sampling.
type Options struct {
	Bins            int
	StaticSampleCap int
	HeatSampleCap   int
	MarkerSampleCap int
	SampleSeed      int64
}

// Artifact file names, mirroring the pipeline's published outputs.
const (
	FileDensityHeatmap  = "heatmap_density.png"
	FileSeverityScatter = "heatmap_severity.png"
	FileClusterScatter  = "cluster_scatter.png"
	FileHeatmapHTML     = "accident_heatmap.html"
	FileClustersHTML    = "accident_clusters.html"
)

// RenderAll renders every map into outDir concurrently and returns the
// paths written. Cluster plots are skipped when hasCluster is false.
func RenderAll(ctx context.Context, records []model.Accident, hasCluster bool, opts Options, outDir string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, eris.Wrapf(err, "viz: create output dir %s", outDir)
	}

	static := Sample(records, opts.StaticSampleCap, opts.SampleSeed)
	heat := Sample(records, opts.HeatSampleCap, opts.SampleSeed)
	markers := Sample(records, opts.MarkerSampleCap, opts.SampleSeed)
	if len(static) < len(records) {
		zap.L().Info("viz: sampled records for static plots",
			zap.Int("total", len(records)), zap.Int("sampled", len(static)))
	}

	g, gCtx := errgroup.WithContext(ctx)

	var (
		mu        sync.Mutex
		artifacts []string
	)
	track := func(name string, fn func(path string) error) func() error {
		path := filepath.Join(outDir, name)
		return func() error {
			if err := gCtx.Err(); err != nil {
				return eris.Wrap(err, "viz: render cancelled")
			}
			if err := fn(path); err != nil {
				return err
			}
			zap.L().Info("viz: wrote artifact", zap.String("path", path))
			mu.Lock()
			artifacts = append(artifacts, path)
			mu.Unlock()
			return nil
		}
	}
	g.Go(track(FileDensityHeatmap, func(p string) error {
		return DensityHeatmap(static, opts.Bins, p)
	}))
	g.Go(track(FileSeverityScatter, func(p string) error {
		return SeverityScatter(static, p)
	}))
	g.Go(track(FileHeatmapHTML, func(p string) error {
		return InteractiveHeatmap(heat, opts.Bins, p)
	}))
	if hasCluster {
		g.Go(track(FileClusterScatter, func(p string) error {
			return ClusterScatter(static, p)
		}))
		g.Go(track(FileClustersHTML, func(p string) error {
			return InteractiveClusterMap(markers, p)
		}))
	} else {
		zap.L().Warn("viz: no cluster column, skipping cluster plots")
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}
