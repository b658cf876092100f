package pipeline

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rotisserie/eris"

	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/clean"
	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/dataset"
	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/hotspot"
	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/policy"
	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/viz"
)

// Artifact file names written into the output directory.
const (
	FileExploreReport = "exploration_report.txt"
	FileCleanCSV      = "accidents_clean.csv"
	FileClusteredCSV  = "accidents_clustered.csv"
	FileStatsCSV      = "hotspot_stats.csv"
	FilePolicyReport  = "policy_report.txt"
)

// ArtifactPath resolves an artifact name inside the configured output
// directory.
func (r *Runner) ArtifactPath(name string) string {
	return filepath.Join(r.cfg.Data.OutputDir, name)
}

func (r *Runner) ensureOutDir() error {
	if err := os.MkdirAll(r.cfg.Data.OutputDir, 0o755); err != nil {
		return eris.Wrapf(err, "pipeline: create output dir %s", r.cfg.Data.OutputDir)
	}
	return nil
}

// Explore profiles the raw export and writes a text report.
func (r *Runner) Explore(ctx context.Context, input string) (*StageOutcome, error) {
	if err := r.ensureOutDir(); err != nil {
		return nil, err
	}

	sum, err := dataset.Summarize(input, r.cfg.Explore.TopMissing)
	if err != nil {
		return nil, err
	}

	path := r.ArtifactPath(FileExploreReport)
	if err := os.WriteFile(path, []byte(sum.Format()), 0o644); err != nil {
		return nil, eris.Wrapf(err, "pipeline: write %s", path)
	}

	return &StageOutcome{
		RecordsIn:  sum.Rows,
		RecordsOut: sum.Rows,
		Artifacts:  []string{path},
		Summary:    sum,
	}, nil
}

// Clean applies the cleaning rules and writes the cleaned CSV.
func (r *Runner) Clean(ctx context.Context, input string) (*StageOutcome, error) {
	if err := r.ensureOutDir(); err != nil {
		return nil, err
	}

	reader, err := dataset.OpenRaw(input)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	rules := clean.Rules{
		LatMin: r.cfg.Clean.LatMin,
		LatMax: r.cfg.Clean.LatMax,
		LngMin: r.cfg.Clean.LngMin,
		LngMax: r.cfg.Clean.LngMax,
	}
	records, res, err := clean.Clean(ctx, reader, rules)
	if err != nil {
		return nil, err
	}

	p := message.NewPrinter(language.English)
	zap.L().Info("pipeline: cleaning complete",
		zap.String("initial", p.Sprintf("%d", res.Initial)),
		zap.String("after_coords", p.Sprintf("%d", res.AfterCoords)),
		zap.String("after_dedupe", p.Sprintf("%d", res.AfterDedupe)),
		zap.String("after_bounds", p.Sprintf("%d", res.AfterBounds)),
		zap.String("after_severity", p.Sprintf("%d", res.AfterSeverity)),
		zap.String("after_time", p.Sprintf("%d", res.AfterTime)),
		zap.String("final", p.Sprintf("%d", res.Final)),
	)

	path := r.ArtifactPath(FileCleanCSV)
	if err := dataset.WriteAccidents(path, records, false); err != nil {
		return nil, err
	}

	return &StageOutcome{
		RecordsIn:  res.Initial,
		RecordsOut: res.Final,
		Artifacts:  []string{path},
	}, nil
}

// Cluster partitions cleaned records into hotspots, writes the
// clustered CSV and stats CSV, and logs the top hotspots.
func (r *Runner) Cluster(ctx context.Context, input string) (*StageOutcome, error) {
	if err := r.ensureOutDir(); err != nil {
		return nil, err
	}

	records, _, err := dataset.ReadAccidents(input)
	if err != nil {
		return nil, err
	}

	cfg := hotspot.Config{
		K:              r.cfg.Cluster.K,
		DeltaThreshold: r.cfg.Cluster.DeltaThreshold,
	}
	m, err := hotspot.Partition(ctx, records, cfg)
	if err != nil {
		return nil, err
	}
	if err := m.Assign(ctx, records); err != nil {
		return nil, err
	}

	hotspots := hotspot.Summarize(records, cfg.K)
	for i, h := range hotspots {
		if i >= 10 {
			break
		}
		zap.L().Info("pipeline: top hotspot",
			zap.Int("rank", i+1),
			zap.Int("cluster", h.Cluster),
			zap.Int("count", h.Count),
			zap.Float64("avg_severity", h.AvgSeverity),
			zap.Float64("center_lat", h.CenterLat),
			zap.Float64("center_lng", h.CenterLng),
		)
	}

	clusteredPath := r.ArtifactPath(FileClusteredCSV)
	if err := dataset.WriteAccidents(clusteredPath, records, true); err != nil {
		return nil, err
	}
	statsPath := r.ArtifactPath(FileStatsCSV)
	if err := dataset.WriteHotspots(statsPath, hotspots); err != nil {
		return nil, err
	}

	return &StageOutcome{
		RecordsIn:  len(records),
		RecordsOut: len(records),
		Artifacts:  []string{clusteredPath, statsPath},
		Hotspots:   hotspots,
	}, nil
}

// Visualize renders static and interactive maps from a cleaned or
// clustered CSV.
func (r *Runner) Visualize(ctx context.Context, input string) (*StageOutcome, error) {
	records, hasCluster, err := dataset.ReadAccidents(input)
	if err != nil {
		return nil, err
	}

	opts := viz.Options{
		Bins:            r.cfg.Visualize.Bins,
		StaticSampleCap: r.cfg.Visualize.StaticSampleCap,
		HeatSampleCap:   r.cfg.Visualize.HeatSampleCap,
		MarkerSampleCap: r.cfg.Visualize.MarkerSampleCap,
		SampleSeed:      r.cfg.Visualize.SampleSeed,
	}
	artifacts, err := viz.RenderAll(ctx, records, hasCluster, opts, r.cfg.Data.OutputDir)
	if err != nil {
		return nil, err
	}

	return &StageOutcome{
		RecordsIn:  len(records),
		RecordsOut: len(records),
		Artifacts:  artifacts,
	}, nil
}

// Recommend cross-tabulates records and writes the policy report.
func (r *Runner) Recommend(ctx context.Context, input string) (*StageOutcome, error) {
	if err := r.ensureOutDir(); err != nil {
		return nil, err
	}

	records, _, err := dataset.ReadAccidents(input)
	if err != nil {
		return nil, err
	}

	total := len(records)
	if limit := r.cfg.Policy.SampleCap; limit > 0 && total > limit {
		records = viz.Sample(records, limit, r.cfg.Visualize.SampleSeed)
		zap.L().Info("pipeline: sampled records for analysis",
			zap.Int("total", total), zap.Int("sampled", len(records)))
	}

	rules := policy.DefaultRules()
	if r.cfg.Policy.RulesPath != "" {
		rules, err = policy.LoadRules(r.cfg.Policy.RulesPath)
		if err != nil {
			return nil, err
		}
	}

	analysis := policy.Analyze(records)
	recs := policy.Recommend(analysis, rules)

	path := r.ArtifactPath(FilePolicyReport)
	if err := os.WriteFile(path, []byte(policy.FormatReport(analysis, recs)), 0o644); err != nil {
		return nil, eris.Wrapf(err, "pipeline: write %s", path)
	}

	return &StageOutcome{
		RecordsIn:  total,
		RecordsOut: len(records),
		Artifacts:  []string{path},
	}, nil
}
