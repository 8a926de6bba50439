// Package history persists the outcome of numbering runs in SQLite so later
// invocations can suggest where the counter left off and operators can audit
// past batches.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/kessler/pagemark/internal/models"
)

// Run is one recorded invocation of the batch driver.
type Run struct {
	ID          string
	StartedAt   time.Time
	FinishedAt  time.Time
	Mode        string // "reseed" or "continuous"
	StartNumber int
	NextNumber  int
	Documents   int
	Succeeded   int
	Failed      int
	DurationMs  int64
	InputDir    string
	OutputDir   string
}

// RunDocument is the recorded outcome for one document within a run. Status
// carries the models status string.
type RunDocument struct {
	RunID      string
	Name       string
	OutputPath string
	Pages      int
	FirstLabel int
	LastLabel  int
	Status     string
	Error      string
}

// Stats aggregates the whole history.
type Stats struct {
	Runs          int
	Documents     int
	Succeeded     int
	Failed        int
	PagesNumbered int
	LastRun       time.Time // zero when no runs are recorded
}

// Store manages the SQLite database of past runs.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens the run history database at dbPath, creating the file, its
// parent directory and the schema as needed.
func NewStore(dbPath string) (*Store, error) {
	// Handle in-memory database
	if dbPath == ":memory:" {
		return openAndInitStore(dbPath)
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	return openAndInitStore(dbPath)
}

// openAndInitStore opens the database connection and initializes schema
func openAndInitStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Configure SQLite for concurrent access with retry logic.
	// Set busy_timeout FIRST so subsequent operations wait on locks.
	pragmas := []string{
		"PRAGMA busy_timeout=5000", // Must be first
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}

	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	store := &Store{
		db:     db,
		dbPath: dbPath,
	}

	if err := store.ApplyMigrations(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return store, nil
}

// execWithRetry executes a SQL statement with exponential backoff retry on lock errors.
func execWithRetry(db *sql.DB, sqlStr string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(sqlStr)
		if err == nil {
			return nil
		}

		// Only retry on "database is locked" errors
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}

		lastErr = err
		delay := baseDelay * time.Duration(1<<attempt)
		time.Sleep(delay)
	}
	return lastErr
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// tableExists checks if a table exists in the database
func (s *Store) tableExists(tableName string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`
	err := s.db.QueryRow(query, tableName).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check table existence: %w", err)
	}
	return count > 0, nil
}

// indexExists checks if an index exists in the database
func (s *Store) indexExists(indexName string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name=?`
	err := s.db.QueryRow(query, indexName).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check index existence: %w", err)
	}
	return count > 0, nil
}

// RecordRun stores a run and its per-document rows in one transaction.
// A missing run ID is filled in with a fresh UUID.
func (s *Store) RecordRun(ctx context.Context, run *Run, docs []RunDocument) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	runQuery := `INSERT INTO runs
		(id, started_at, finished_at, mode, start_number, next_number, documents, succeeded, failed, duration_ms, input_dir, output_dir)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if _, err := tx.ExecContext(ctx, runQuery,
		run.ID,
		run.StartedAt,
		run.FinishedAt,
		run.Mode,
		run.StartNumber,
		run.NextNumber,
		run.Documents,
		run.Succeeded,
		run.Failed,
		run.DurationMs,
		run.InputDir,
		run.OutputDir,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	if len(docs) > 0 {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO run_documents
			(run_id, name, output_path, pages, first_label, last_label, status, error)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare document statement: %w", err)
		}
		defer stmt.Close()

		for _, doc := range docs {
			if _, err := stmt.ExecContext(ctx,
				run.ID,
				doc.Name,
				doc.OutputPath,
				doc.Pages,
				doc.FirstLabel,
				doc.LastLabel,
				doc.Status,
				doc.Error,
			); err != nil {
				return fmt.Errorf("insert run document: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run record: %w", err)
	}

	return nil
}

// Recent returns the most recent runs, newest first. A non-positive limit
// returns all runs.
func (s *Store) Recent(ctx context.Context, limit int) ([]*Run, error) {
	query := `SELECT id, started_at, finished_at, mode, start_number, next_number, documents, succeeded, failed, duration_ms, input_dir, output_dir
		FROM runs
		ORDER BY started_at DESC`

	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run := &Run{}
		var inputDir, outputDir sql.NullString
		if err := rows.Scan(
			&run.ID,
			&run.StartedAt,
			&run.FinishedAt,
			&run.Mode,
			&run.StartNumber,
			&run.NextNumber,
			&run.Documents,
			&run.Succeeded,
			&run.Failed,
			&run.DurationMs,
			&inputDir,
			&outputDir,
		); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}

		if inputDir.Valid {
			run.InputDir = inputDir.String
		}
		if outputDir.Valid {
			run.OutputDir = outputDir.String
		}

		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run rows: %w", err)
	}

	return runs, nil
}

// Documents returns the per-document rows of a run in processing order.
func (s *Store) Documents(ctx context.Context, runID string) ([]*RunDocument, error) {
	query := `SELECT run_id, name, output_path, pages, first_label, last_label, status, error
		FROM run_documents
		WHERE run_id = ?
		ORDER BY id ASC`

	rows, err := s.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("query run documents: %w", err)
	}
	defer rows.Close()

	var docs []*RunDocument
	for rows.Next() {
		doc := &RunDocument{}
		var outputPath, errMsg sql.NullString
		if err := rows.Scan(
			&doc.RunID,
			&doc.Name,
			&outputPath,
			&doc.Pages,
			&doc.FirstLabel,
			&doc.LastLabel,
			&doc.Status,
			&errMsg,
		); err != nil {
			return nil, fmt.Errorf("scan run document row: %w", err)
		}

		if outputPath.Valid {
			doc.OutputPath = outputPath.String
		}
		if errMsg.Valid {
			doc.Error = errMsg.String
		}

		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run document rows: %w", err)
	}

	return docs, nil
}

// LastNextNumber returns the counter value after the most recent
// continuous-mode run, which is the natural starting suggestion for the next
// batch. ok is false when no continuous run has been recorded.
func (s *Store) LastNextNumber(ctx context.Context) (next int, ok bool, err error) {
	query := `SELECT next_number FROM runs WHERE mode = ? ORDER BY started_at DESC LIMIT 1`
	err = s.db.QueryRowContext(ctx, query, "continuous").Scan(&next)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("query last next number: %w", err)
	}
	return next, true, nil
}

// GetStats returns aggregate statistics over all recorded runs.
func (s *Store) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	query := `SELECT
		COUNT(*),
		COALESCE(SUM(documents), 0),
		COALESCE(SUM(succeeded), 0),
		COALESCE(SUM(failed), 0)
		FROM runs`
	if err := s.db.QueryRowContext(ctx, query).Scan(
		&stats.Runs,
		&stats.Documents,
		&stats.Succeeded,
		&stats.Failed,
	); err != nil {
		return nil, fmt.Errorf("query run stats: %w", err)
	}

	pagesQuery := `SELECT COALESCE(SUM(pages), 0) FROM run_documents WHERE status = ?`
	if err := s.db.QueryRowContext(ctx, pagesQuery, models.StatusNumbered).Scan(&stats.PagesNumbered); err != nil {
		return nil, fmt.Errorf("query page stats: %w", err)
	}

	// MAX(started_at) loses the column's time type through the driver, so
	// fetch the newest row instead.
	var lastRun time.Time
	err := s.db.QueryRowContext(ctx, `SELECT started_at FROM runs ORDER BY started_at DESC LIMIT 1`).Scan(&lastRun)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("query last run time: %w", err)
	}
	if err == nil {
		stats.LastRun = lastRun
	}

	return stats, nil
}

// Clear deletes every recorded run and its document rows, returning the
// number of runs removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM run_documents`); err != nil {
		return 0, fmt.Errorf("clear run documents: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM runs`)
	if err != nil {
		return 0, fmt.Errorf("clear runs: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit clear: %w", err)
	}

	return deleted, nil
}
