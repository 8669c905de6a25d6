package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is one screening invocation, recorded so serve mode can list past
// output locations.
type Run struct {
	ID         string `json:"id"`
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at"`
	Candidates int    `json:"candidates"`
	RunDir     string `json:"run_dir"`
	ScoresPath string `json:"scores_path"`
	Error      string `json:"error"`
}

func BeginRun(ctx context.Context, db *sql.DB) (string, error) {
	id := uuid.NewString()
	_, err := db.ExecContext(ctx, `
INSERT INTO runs(id, started_at) VALUES(?, ?);`,
		id, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("begin run: %w", err)
	}
	return id, nil
}

func FinishRun(ctx context.Context, db *sql.DB, id string, candidates int, runDir, scoresPath, runErr string) error {
	_, err := db.ExecContext(ctx, `
UPDATE runs
SET finished_at = ?, candidates = ?, run_dir = ?, scores_path = ?, error = ?
WHERE id = ?;`,
		time.Now().UTC().Format(time.RFC3339), candidates, runDir, scoresPath, runErr, id)
	if err != nil {
		return fmt.Errorf("finish run %s: %w", id, err)
	}
	return nil
}

func ListRuns(ctx context.Context, db *sql.DB, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.QueryContext(ctx, `
SELECT id, started_at, finished_at, candidates, run_dir, scores_path, error
FROM runs
ORDER BY started_at DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.Candidates, &r.RunDir, &r.ScoresPath, &r.Error); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func GetRun(ctx context.Context, db *sql.DB, id string) (Run, error) {
	var r Run
	err := db.QueryRowContext(ctx, `
SELECT id, started_at, finished_at, candidates, run_dir, scores_path, error
FROM runs WHERE id = ?;`, id).
		Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.Candidates, &r.RunDir, &r.ScoresPath, &r.Error)
	return r, err
}
