package model

import "time"

// RunStatus tracks a pipeline run through its lifecycle.
type RunStatus string

const (
	RunStatusQueued   RunStatus = "queued"
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// StageStatus tracks a single pipeline stage.
type StageStatus string

const (
	StageStatusRunning  StageStatus = "running"
	StageStatusComplete StageStatus = "complete"
	StageStatusFailed   StageStatus = "failed"
)

// Stage names in execution order.
const (
	StageExplore   = "explore"
	StageClean     = "clean"
	StageCluster   = "cluster"
	StageVisualize = "visualize"
	StageRecommend = "recommend"
)

// Run is one recorded pipeline invocation.
type Run struct {
	ID        string    `json:"id"`
	Input     string    `json:"input"`
	Status    RunStatus `json:"status"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RunStage is the persisted record of a stage within a run.
type RunStage struct {
	ID        string       `json:"id"`
	RunID     string       `json:"run_id"`
	Name      string       `json:"name"`
	Status    StageStatus  `json:"status"`
	Result    *StageResult `json:"result,omitempty"`
	StartedAt time.Time    `json:"started_at"`
}

// StageResult summarizes a stage's outcome.
type StageResult struct {
	Name       string      `json:"name"`
	Status     StageStatus `json:"status"`
	Duration   int64       `json:"duration_ms"`
	RecordsIn  int         `json:"records_in"`
	RecordsOut int         `json:"records_out"`
	Artifacts  []string    `json:"artifacts,omitempty"`
	Error      string      `json:"error,omitempty"`
}
