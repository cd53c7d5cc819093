package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"subscan/internal/config"
)

// Job records one extraction run.
type Job struct {
	ID              string
	SourcePath      string
	OutputPath      string
	Status          Status
	Language        string
	FPS             float64
	FrameCount      int
	CueCount        int
	ErrorMessage    string
	ProgressStage   string
	ProgressPercent float64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Store manages job persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the job database and applies the schema.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.Paths.DBPath)
}

// OpenPath opens a job database at an explicit location.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

const jobColumns = `id, source_path, output_path, status, language, fps, frame_count,
    cue_count, error_message, progress_stage, progress_percent, created_at, updated_at`

// NewJob inserts a pending job for a source video.
func (s *Store) NewJob(ctx context.Context, sourcePath, language string, fps float64) (*Job, error) {
	now := time.Now().UTC()
	timestamp := now.Format(time.RFC3339Nano)
	id := uuid.NewString()

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO jobs (
            id, source_path, status, language, fps, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id,
		sourcePath,
		StatusPending,
		nullableString(language),
		fps,
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}

	return s.GetByID(ctx, id)
}

// GetByID fetches a job by identifier. A missing job returns (nil, nil).
func (s *Store) GetByID(ctx context.Context, id string) (*Job, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

// List returns jobs ordered by creation time, optionally filtered by status.
func (s *Store) List(ctx context.Context, statuses ...Status) ([]*Job, error) {
	var (
		rows *sql.Rows
		err  error
	)

	baseQuery := `SELECT ` + jobColumns + ` FROM jobs`
	orderClause := ` ORDER BY created_at`

	if len(statuses) == 0 {
		rows, err = s.db.QueryContext(ctx, baseQuery+orderClause)
	} else {
		placeholders := makePlaceholders(len(statuses))
		args := make([]any, len(statuses))
		for i, status := range statuses {
			args[i] = status
		}
		query := baseQuery + ` WHERE status IN (` + placeholders + `)` + orderClause
		rows, err = s.db.QueryContext(ctx, query, args...)
	}
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// SetStatus transitions a job and records the stage for progress display.
func (s *Store) SetStatus(ctx context.Context, id string, status Status) error {
	return s.exec(ctx, "set status",
		`UPDATE jobs SET status = ?, progress_stage = ?, updated_at = ? WHERE id = ?`,
		status, string(status), now(), id)
}

// SetProgress records stage completion for a running job.
func (s *Store) SetProgress(ctx context.Context, id, stage string, percent float64) error {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return s.exec(ctx, "set progress",
		`UPDATE jobs SET progress_stage = ?, progress_percent = ?, updated_at = ? WHERE id = ?`,
		stage, percent, now(), id)
}

// SetFrameCount records how many frames extraction produced.
func (s *Store) SetFrameCount(ctx context.Context, id string, frames int) error {
	return s.exec(ctx, "set frame count",
		`UPDATE jobs SET frame_count = ?, updated_at = ? WHERE id = ?`,
		frames, now(), id)
}

// Complete marks a job finished and records where the output landed.
func (s *Store) Complete(ctx context.Context, id, outputPath string, cueCount int) error {
	return s.exec(ctx, "complete job",
		`UPDATE jobs SET status = ?, output_path = ?, cue_count = ?,
            progress_stage = ?, progress_percent = 100, error_message = NULL, updated_at = ?
         WHERE id = ?`,
		StatusCompleted, outputPath, cueCount, string(StatusCompleted), now(), id)
}

// Fail marks a job failed with the given message.
func (s *Store) Fail(ctx context.Context, id, message string) error {
	return s.exec(ctx, "fail job",
		`UPDATE jobs SET status = ?, error_message = ?, updated_at = ? WHERE id = ?`,
		StatusFailed, strings.TrimSpace(message), now(), id)
}

// Remove deletes a job by identifier.
func (s *Store) Remove(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("remove job: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// Clear deletes every job and returns the number removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM jobs`)
	if err != nil {
		return 0, fmt.Errorf("clear jobs: %w", err)
	}
	return res.RowsAffected()
}

// Stats returns job counts grouped by status.
func (s *Store) Stats(ctx context.Context) (map[Status]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(1) FROM jobs GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("job stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[Status]int)
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		stats[Status(status)] = count
	}
	return stats, rows.Err()
}

func (s *Store) exec(ctx context.Context, operation, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", operation, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: job not found", operation)
	}
	return nil
}

func scanJob(scanner interface{ Scan(dest ...any) error }) (*Job, error) {
	var (
		id              string
		sourcePath      string
		outputPath      sql.NullString
		statusStr       string
		language        sql.NullString
		fps             float64
		frameCount      int
		cueCount        int
		errorMessage    sql.NullString
		progressStage   sql.NullString
		progressPercent float64
		createdAt       string
		updatedAt       string
	)

	if err := scanner.Scan(
		&id, &sourcePath, &outputPath, &statusStr, &language, &fps, &frameCount,
		&cueCount, &errorMessage, &progressStage, &progressPercent, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	job := &Job{
		ID:              id,
		SourcePath:      sourcePath,
		OutputPath:      outputPath.String,
		Status:          Status(statusStr),
		Language:        language.String,
		FPS:             fps,
		FrameCount:      frameCount,
		CueCount:        cueCount,
		ErrorMessage:    errorMessage.String,
		ProgressStage:   progressStage.String,
		ProgressPercent: progressPercent,
	}
	var err error
	if job.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if job.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return job, nil
}

func parseTimestamp(value string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, value)
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func nullableString(value string) any {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return trimmed
}

func makePlaceholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
