package store

import (
	"context"

	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/model"
)

// RunFilter specifies criteria for listing runs.
type RunFilter struct {
	Status model.RunStatus `json:"status,omitempty"`
	Limit  int             `json:"limit,omitempty"`
	Offset int             `json:"offset,omitempty"`
}

// Store defines the persistence interface for pipeline run history and
// hotspot statistics.
type Store interface {
	// Runs
	CreateRun(ctx context.Context, input string) (*model.Run, error)
	UpdateRunStatus(ctx context.Context, runID string, status model.RunStatus) error
	FinishRun(ctx context.Context, runID string, status model.RunStatus, errMsg string) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	LatestRun(ctx context.Context) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)

	// Stages
	CreateStage(ctx context.Context, runID string, name string) (*model.RunStage, error)
	CompleteStage(ctx context.Context, stageID string, result *model.StageResult) error
	ListStages(ctx context.Context, runID string) ([]model.RunStage, error)

	// Hotspots
	ReplaceHotspots(ctx context.Context, runID string, hotspots []model.Hotspot) error
	ListHotspots(ctx context.Context, runID string, limit int) ([]model.Hotspot, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
