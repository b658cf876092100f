// Package pipeline orchestrates the batch stages that turn a raw
// accidents export into hotspot maps and policy reports: explore,
// clean, cluster, visualize, recommend. Stage progress is recorded in
// the run store; store failures are advisory and never abort a batch.
package pipeline

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/config"
	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/dataset"
	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/model"
	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/store"
)

// Runner executes pipeline stages against one input dataset. A nil
// store disables run bookkeeping.
type Runner struct {
	cfg   *config.Config
	store store.Store
}

// New creates a Runner.
func New(cfg *config.Config, st store.Store) *Runner {
	return &Runner{cfg: cfg, store: st}
}

// StageOutcome is what a stage hands back to the orchestrator.
type StageOutcome struct {
	RecordsIn  int
	RecordsOut int
	Artifacts  []string

	// Summary is set by the explore stage.
	Summary *dataset.Summary
	// Hotspots is set by the cluster stage, sorted by count desc.
	Hotspots []model.Hotspot
}

// stageFunc runs one stage and reports its outcome.
type stageFunc func(ctx context.Context) (*StageOutcome, error)

// Run executes all five stages in order, chaining each stage's output
// file into the next. It aborts on the first stage failure.
func (r *Runner) Run(ctx context.Context, input string) (*model.Run, error) {
	run := r.createRun(ctx, input)
	r.setRunStatus(ctx, run, model.RunStatusRunning)

	stages := []struct {
		name string
		fn   stageFunc
	}{
		{model.StageExplore, func(ctx context.Context) (*StageOutcome, error) {
			return r.Explore(ctx, input)
		}},
		{model.StageClean, func(ctx context.Context) (*StageOutcome, error) {
			return r.Clean(ctx, input)
		}},
		{model.StageCluster, func(ctx context.Context) (*StageOutcome, error) {
			return r.Cluster(ctx, r.ArtifactPath(FileCleanCSV))
		}},
		{model.StageVisualize, func(ctx context.Context) (*StageOutcome, error) {
			return r.Visualize(ctx, r.ArtifactPath(FileClusteredCSV))
		}},
		{model.StageRecommend, func(ctx context.Context) (*StageOutcome, error) {
			return r.Recommend(ctx, r.ArtifactPath(FileClusteredCSV))
		}},
	}

	for _, st := range stages {
		if _, err := r.trackStage(ctx, run, st.name, st.fn); err != nil {
			r.finishRun(ctx, run, model.RunStatusFailed, err.Error())
			return run, eris.Wrapf(err, "pipeline: stage %s", st.name)
		}
	}

	r.finishRun(ctx, run, model.RunStatusComplete, "")
	return run, nil
}

// Single executes one named stage with run bookkeeping, for the
// per-stage CLI commands.
func (r *Runner) Single(ctx context.Context, name, input string) (*StageOutcome, error) {
	var fn stageFunc
	switch name {
	case model.StageExplore:
		fn = func(ctx context.Context) (*StageOutcome, error) { return r.Explore(ctx, input) }
	case model.StageClean:
		fn = func(ctx context.Context) (*StageOutcome, error) { return r.Clean(ctx, input) }
	case model.StageCluster:
		fn = func(ctx context.Context) (*StageOutcome, error) { return r.Cluster(ctx, input) }
	case model.StageVisualize:
		fn = func(ctx context.Context) (*StageOutcome, error) { return r.Visualize(ctx, input) }
	case model.StageRecommend:
		fn = func(ctx context.Context) (*StageOutcome, error) { return r.Recommend(ctx, input) }
	default:
		return nil, eris.Errorf("pipeline: unknown stage %q", name)
	}

	run := r.createRun(ctx, input)
	r.setRunStatus(ctx, run, model.RunStatusRunning)

	out, err := r.trackStage(ctx, run, name, fn)
	if err != nil {
		r.finishRun(ctx, run, model.RunStatusFailed, err.Error())
		return nil, eris.Wrapf(err, "pipeline: stage %s", name)
	}

	r.finishRun(ctx, run, model.RunStatusComplete, "")
	return out, nil
}

// trackStage runs fn and records the stage's result. The run may be
// nil when store bookkeeping is unavailable.
func (r *Runner) trackStage(ctx context.Context, run *model.Run, name string, fn stageFunc) (*StageOutcome, error) {
	log := zap.L().With(zap.String("stage", name))

	var stage *model.RunStage
	if r.store != nil && run != nil {
		var stageErr error
		stage, stageErr = r.store.CreateStage(ctx, run.ID, name)
		if stageErr != nil {
			log.Warn("pipeline: failed to create stage record", zap.Error(stageErr))
		}
	}

	log.Info("pipeline: stage starting")
	start := time.Now()
	out, fnErr := fn(ctx)
	duration := time.Since(start).Milliseconds()

	result := &model.StageResult{
		Name:     name,
		Duration: duration,
	}
	if out != nil {
		result.RecordsIn = out.RecordsIn
		result.RecordsOut = out.RecordsOut
		result.Artifacts = out.Artifacts
	}

	if fnErr != nil {
		result.Status = model.StageStatusFailed
		result.Error = fnErr.Error()
		log.Error("pipeline: stage failed",
			zap.Int64("duration_ms", duration),
			zap.Error(fnErr),
		)
	} else {
		result.Status = model.StageStatusComplete
		log.Info("pipeline: stage complete",
			zap.Int64("duration_ms", duration),
			zap.Int("records_in", result.RecordsIn),
			zap.Int("records_out", result.RecordsOut),
			zap.Strings("artifacts", result.Artifacts),
		)
	}

	if r.store != nil && stage != nil {
		if err := r.store.CompleteStage(ctx, stage.ID, result); err != nil {
			log.Warn("pipeline: failed to record stage result", zap.Error(err))
		}
	}

	// Cluster results are mirrored into the store for the API and the
	// export command.
	if fnErr == nil && out != nil && len(out.Hotspots) > 0 && r.store != nil && run != nil {
		if err := r.store.ReplaceHotspots(ctx, run.ID, out.Hotspots); err != nil {
			log.Warn("pipeline: failed to persist hotspots", zap.Error(err))
		}
	}

	return out, fnErr
}

func (r *Runner) createRun(ctx context.Context, input string) *model.Run {
	if r.store == nil {
		return nil
	}
	run, err := r.store.CreateRun(ctx, input)
	if err != nil {
		zap.L().Warn("pipeline: failed to create run record", zap.Error(err))
		return nil
	}
	return run
}

func (r *Runner) setRunStatus(ctx context.Context, run *model.Run, status model.RunStatus) {
	if r.store == nil || run == nil {
		return
	}
	if err := r.store.UpdateRunStatus(ctx, run.ID, status); err != nil {
		zap.L().Warn("pipeline: failed to update run status", zap.Error(err))
	}
	run.Status = status
}

func (r *Runner) finishRun(ctx context.Context, run *model.Run, status model.RunStatus, errMsg string) {
	if r.store == nil || run == nil {
		return
	}
	if err := r.store.FinishRun(ctx, run.ID, status, errMsg); err != nil {
		zap.L().Warn("pipeline: failed to finish run", zap.Error(err))
	}
	run.Status = status
	run.Error = errMsg
}
