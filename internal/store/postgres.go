package store

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses. pgxmock satisfies
// it in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    Pool
	closeFn func()
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}

	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	input      TEXT NOT NULL,
	status     TEXT NOT NULL DEFAULT 'queued',
	error      TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS run_stages (
	id         TEXT PRIMARY KEY,
	run_id     TEXT NOT NULL REFERENCES runs(id),
	name       TEXT NOT NULL,
	status     TEXT NOT NULL DEFAULT 'running',
	result     JSONB,
	started_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS hotspots (
	run_id       TEXT NOT NULL REFERENCES runs(id),
	cluster      INTEGER NOT NULL,
	count        INTEGER NOT NULL,
	avg_severity DOUBLE PRECISION NOT NULL,
	max_severity INTEGER NOT NULL,
	avg_distance DOUBLE PRECISION NOT NULL,
	center_lat   DOUBLE PRECISION NOT NULL,
	center_lng   DOUBLE PRECISION NOT NULL,
	min_lat      DOUBLE PRECISION NOT NULL,
	max_lat      DOUBLE PRECISION NOT NULL,
	min_lng      DOUBLE PRECISION NOT NULL,
	max_lng      DOUBLE PRECISION NOT NULL,
	PRIMARY KEY (run_id, cluster)
);

CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
CREATE INDEX IF NOT EXISTS idx_run_stages_run_id ON run_stages(run_id);
CREATE INDEX IF NOT EXISTS idx_hotspots_run_id ON hotspots(run_id);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) CreateRun(ctx context.Context, input string) (*model.Run, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO runs (id, input, status, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		id, input, string(model.RunStatusQueued), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert run")
	}

	return &model.Run{
		ID:        id,
		Input:     input,
		Status:    model.RunStatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *PostgresStore) UpdateRunStatus(ctx context.Context, runID string, status model.RunStatus) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE runs SET status = $1, updated_at = $2 WHERE id = $3`,
		string(status), time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: update run status %s", runID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("postgres: run %s not found", runID)
	}
	return nil
}

func (s *PostgresStore) FinishRun(ctx context.Context, runID string, status model.RunStatus, errMsg string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE runs SET status = $1, error = $2, updated_at = $3 WHERE id = $4`,
		string(status), errMsg, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: finish run %s", runID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("postgres: run %s not found", runID)
	}
	return nil
}

func (s *PostgresStore) GetRun(ctx context.Context, runID string) (*model.Run, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, input, status, error, created_at, updated_at FROM runs WHERE id = $1`, runID)
	return scanPgRun(row)
}

func (s *PostgresStore) LatestRun(ctx context.Context) (*model.Run, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, input, status, error, created_at, updated_at FROM runs ORDER BY created_at DESC LIMIT 1`)
	run, err := scanPgRun(row)
	if err != nil && eris.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return run, err
}

func scanPgRun(row pgx.Row) (*model.Run, error) {
	var run model.Run
	var status string
	if err := row.Scan(&run.ID, &run.Input, &status, &run.Error, &run.CreatedAt, &run.UpdatedAt); err != nil {
		return nil, eris.Wrap(err, "postgres: get run")
	}
	run.Status = model.RunStatus(status)
	return &run, nil
}

func (s *PostgresStore) ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error) {
	query := `SELECT id, input, status, error, created_at, updated_at FROM runs`
	var args []any
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += ` WHERE status = $1`
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list runs")
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		var run model.Run
		var status string
		if err := rows.Scan(&run.ID, &run.Input, &status, &run.Error, &run.CreatedAt, &run.UpdatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan run")
		}
		run.Status = model.RunStatus(status)
		runs = append(runs, run)
	}
	return runs, eris.Wrap(rows.Err(), "postgres: iterate runs")
}

func (s *PostgresStore) CreateStage(ctx context.Context, runID string, name string) (*model.RunStage, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.pool.Exec(ctx,
		`INSERT INTO run_stages (id, run_id, name, status, started_at) VALUES ($1, $2, $3, $4, $5)`,
		id, runID, name, string(model.StageStatusRunning), now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert stage")
	}

	return &model.RunStage{
		ID:        id,
		RunID:     runID,
		Name:      name,
		Status:    model.StageStatusRunning,
		StartedAt: now,
	}, nil
}

func (s *PostgresStore) CompleteStage(ctx context.Context, stageID string, result *model.StageResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal stage result")
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE run_stages SET status = $1, result = $2 WHERE id = $3`,
		string(result.Status), resultJSON, stageID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: complete stage %s", stageID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("postgres: stage %s not found", stageID)
	}
	return nil
}

func (s *PostgresStore) ListStages(ctx context.Context, runID string) ([]model.RunStage, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, run_id, name, status, result, started_at FROM run_stages WHERE run_id = $1 ORDER BY started_at`,
		runID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list stages")
	}
	defer rows.Close()

	var stages []model.RunStage
	for rows.Next() {
		var st model.RunStage
		var status string
		var resultJSON []byte
		if err := rows.Scan(&st.ID, &st.RunID, &st.Name, &status, &resultJSON, &st.StartedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan stage")
		}
		st.Status = model.StageStatus(status)
		if len(resultJSON) > 0 {
			var result model.StageResult
			if err := json.Unmarshal(resultJSON, &result); err != nil {
				return nil, eris.Wrap(err, "postgres: unmarshal stage result")
			}
			st.Result = &result
		}
		stages = append(stages, st)
	}
	return stages, eris.Wrap(rows.Err(), "postgres: iterate stages")
}

func (s *PostgresStore) ReplaceHotspots(ctx context.Context, runID string, hotspots []model.Hotspot) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: begin hotspot tx")
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM hotspots WHERE run_id = $1`, runID); err != nil {
		return eris.Wrap(err, "postgres: clear hotspots")
	}

	for _, h := range hotspots {
		if _, err := tx.Exec(ctx, `INSERT INTO hotspots
			(run_id, cluster, count, avg_severity, max_severity, avg_distance,
			 center_lat, center_lng, min_lat, max_lat, min_lng, max_lng)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			runID, h.Cluster, h.Count, h.AvgSeverity, h.MaxSeverity, h.AvgDistance,
			h.CenterLat, h.CenterLng, h.MinLat, h.MaxLat, h.MinLng, h.MaxLng,
		); err != nil {
			return eris.Wrapf(err, "postgres: insert hotspot %d", h.Cluster)
		}
	}

	return eris.Wrap(tx.Commit(ctx), "postgres: commit hotspots")
}

func (s *PostgresStore) ListHotspots(ctx context.Context, runID string, limit int) ([]model.Hotspot, error) {
	query := `SELECT cluster, count, avg_severity, max_severity, avg_distance,
		center_lat, center_lng, min_lat, max_lat, min_lng, max_lng
		FROM hotspots WHERE run_id = $1 ORDER BY count DESC, cluster`
	args := []any{runID}
	if limit > 0 {
		args = append(args, limit)
		query += ` LIMIT $2`
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list hotspots")
	}
	defer rows.Close()

	var hotspots []model.Hotspot
	for rows.Next() {
		var h model.Hotspot
		if err := rows.Scan(&h.Cluster, &h.Count, &h.AvgSeverity, &h.MaxSeverity, &h.AvgDistance,
			&h.CenterLat, &h.CenterLng, &h.MinLat, &h.MaxLat, &h.MinLng, &h.MaxLng); err != nil {
			return nil, eris.Wrap(err, "postgres: scan hotspot")
		}
		hotspots = append(hotspots, h)
	}
	return hotspots, eris.Wrap(rows.Err(), "postgres: iterate hotspots")
}
