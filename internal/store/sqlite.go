package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/munimx/Road-Accident-Hotspot-Detection/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	input      TEXT NOT NULL,
	status     TEXT NOT NULL DEFAULT 'queued',
	error      TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT (datetime('now')),
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS run_stages (
	id         TEXT PRIMARY KEY,
	run_id     TEXT NOT NULL REFERENCES runs(id),
	name       TEXT NOT NULL,
	status     TEXT NOT NULL DEFAULT 'running',
	result     TEXT,
	started_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS hotspots (
	run_id       TEXT NOT NULL REFERENCES runs(id),
	cluster      INTEGER NOT NULL,
	count        INTEGER NOT NULL,
	avg_severity REAL NOT NULL,
	max_severity INTEGER NOT NULL,
	avg_distance REAL NOT NULL,
	center_lat   REAL NOT NULL,
	center_lng   REAL NOT NULL,
	min_lat      REAL NOT NULL,
	max_lat      REAL NOT NULL,
	min_lng      REAL NOT NULL,
	max_lng      REAL NOT NULL,
	PRIMARY KEY (run_id, cluster)
);

CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
CREATE INDEX IF NOT EXISTS idx_run_stages_run_id ON run_stages(run_id);
CREATE INDEX IF NOT EXISTS idx_hotspots_run_id ON hotspots(run_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateRun(ctx context.Context, input string) (*model.Run, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, input, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		id, input, string(model.RunStatusQueued), now, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert run")
	}

	return &model.Run{
		ID:        id,
		Input:     input,
		Status:    model.RunStatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *SQLiteStore) UpdateRunStatus(ctx context.Context, runID string, status model.RunStatus) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: update run status %s", runID)
	}
	return checkRowsAffected(res, "run", runID)
}

func (s *SQLiteStore) FinishRun(ctx context.Context, runID string, status model.RunStatus, errMsg string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, error = ?, updated_at = ? WHERE id = ?`,
		string(status), errMsg, time.Now().UTC(), runID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: finish run %s", runID)
	}
	return checkRowsAffected(res, "run", runID)
}

func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*model.Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, input, status, error, created_at, updated_at FROM runs WHERE id = ?`, runID)
	return scanRun(row)
}

func (s *SQLiteStore) LatestRun(ctx context.Context) (*model.Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, input, status, error, created_at, updated_at FROM runs ORDER BY created_at DESC LIMIT 1`)
	run, err := scanRun(row)
	if err != nil && eris.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return run, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*model.Run, error) {
	var run model.Run
	var status string
	if err := row.Scan(&run.ID, &run.Input, &status, &run.Error, &run.CreatedAt, &run.UpdatedAt); err != nil {
		return nil, eris.Wrap(err, "sqlite: get run")
	}
	run.Status = model.RunStatus(status)
	return &run, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error) {
	query := `SELECT id, input, status, error, created_at, updated_at FROM runs`
	var args []any
	if filter.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var runs []model.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: iterate runs")
}

func (s *SQLiteStore) CreateStage(ctx context.Context, runID string, name string) (*model.RunStage, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO run_stages (id, run_id, name, status, started_at) VALUES (?, ?, ?, ?, ?)`,
		id, runID, name, string(model.StageStatusRunning), now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert stage")
	}

	return &model.RunStage{
		ID:        id,
		RunID:     runID,
		Name:      name,
		Status:    model.StageStatusRunning,
		StartedAt: now,
	}, nil
}

func (s *SQLiteStore) CompleteStage(ctx context.Context, stageID string, result *model.StageResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal stage result")
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE run_stages SET status = ?, result = ? WHERE id = ?`,
		string(result.Status), string(resultJSON), stageID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: complete stage %s", stageID)
	}
	return checkRowsAffected(res, "stage", stageID)
}

func (s *SQLiteStore) ListStages(ctx context.Context, runID string) ([]model.RunStage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, name, status, result, started_at FROM run_stages WHERE run_id = ? ORDER BY started_at`,
		runID,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list stages")
	}
	defer rows.Close()

	var stages []model.RunStage
	for rows.Next() {
		var st model.RunStage
		var status string
		var resultJSON sql.NullString
		if err := rows.Scan(&st.ID, &st.RunID, &st.Name, &status, &resultJSON, &st.StartedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan stage")
		}
		st.Status = model.StageStatus(status)
		if resultJSON.Valid && resultJSON.String != "" {
			var result model.StageResult
			if err := json.Unmarshal([]byte(resultJSON.String), &result); err != nil {
				return nil, eris.Wrap(err, "sqlite: unmarshal stage result")
			}
			st.Result = &result
		}
		stages = append(stages, st)
	}
	return stages, eris.Wrap(rows.Err(), "sqlite: iterate stages")
}

func (s *SQLiteStore) ReplaceHotspots(ctx context.Context, runID string, hotspots []model.Hotspot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin hotspot tx")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM hotspots WHERE run_id = ?`, runID); err != nil {
		return eris.Wrap(err, "sqlite: clear hotspots")
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO hotspots
		(run_id, cluster, count, avg_severity, max_severity, avg_distance,
		 center_lat, center_lng, min_lat, max_lat, min_lng, max_lng)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare hotspot insert")
	}
	defer stmt.Close()

	for _, h := range hotspots {
		if _, err := stmt.ExecContext(ctx,
			runID, h.Cluster, h.Count, h.AvgSeverity, h.MaxSeverity, h.AvgDistance,
			h.CenterLat, h.CenterLng, h.MinLat, h.MaxLat, h.MinLng, h.MaxLng,
		); err != nil {
			return eris.Wrapf(err, "sqlite: insert hotspot %d", h.Cluster)
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit hotspots")
}

func (s *SQLiteStore) ListHotspots(ctx context.Context, runID string, limit int) ([]model.Hotspot, error) {
	query := `SELECT cluster, count, avg_severity, max_severity, avg_distance,
		center_lat, center_lng, min_lat, max_lat, min_lng, max_lng
		FROM hotspots WHERE run_id = ? ORDER BY count DESC, cluster`
	args := []any{runID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list hotspots")
	}
	defer rows.Close()

	var hotspots []model.Hotspot
	for rows.Next() {
		var h model.Hotspot
		if err := rows.Scan(&h.Cluster, &h.Count, &h.AvgSeverity, &h.MaxSeverity, &h.AvgDistance,
			&h.CenterLat, &h.CenterLng, &h.MinLat, &h.MaxLat, &h.MinLng, &h.MaxLng); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan hotspot")
		}
		hotspots = append(hotspots, h)
	}
	return hotspots, eris.Wrap(rows.Err(), "sqlite: iterate hotspots")
}

func checkRowsAffected(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "sqlite: rows affected")
	}
	if n == 0 {
		return eris.Errorf("sqlite: %s %s not found", kind, id)
	}
	return nil
}
