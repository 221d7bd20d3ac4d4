// Package archive persists completed audit results to Postgres. It is an
// optional write-behind log: live sessions never touch it, and a failed insert
// only costs a log line, never the user's report.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/privacybot/core/logger"
	"github.com/m3rciful/privacybot/internal/report"
)

// Result is one finished audit as stored in audit_results.
type Result struct {
	ChatID      int64     `db:"chat_id"`
	Username    string    `db:"username"`
	DisplayName string    `db:"display_name"`
	Score       int       `db:"score"`
	MaxScore    int       `db:"max_score"`
	Level       string    `db:"level"`
	DurationMS  int64     `db:"duration_ms"`
	StartedAt   time.Time `db:"started_at"`
	FinishedAt  time.Time `db:"finished_at"`
}

// Counters summarizes the archive for the admin stats command.
type Counters struct {
	Total int `db:"total"`
	Today int `db:"today"`
}

const insertResult = `
	INSERT INTO audit_results
		(chat_id, username, display_name, score, max_score, level, duration_ms, started_at, finished_at)
	VALUES
		(:chat_id, :username, :display_name, :score, :max_score, :level, :duration_ms, :started_at, :finished_at)`

const selectCounters = `
	SELECT
		COUNT(*) AS total,
		COUNT(*) FILTER (WHERE finished_at >= $1) AS today
	FROM audit_results`

// db is the subset of sqlx.DB the recorder needs; split out so tests can
// record queries without a live Postgres.
type db interface {
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

var _ db = (*sqlx.DB)(nil)

// Recorder writes results and serves counters.
type Recorder struct {
	db db
}

// NewRecorder wraps an open database handle.
func NewRecorder(handle *sqlx.DB) *Recorder {
	return &Recorder{db: handle}
}

// FromReport converts a finished report into an archive row.
func FromReport(rep *report.Report) Result {
	return Result{
		ChatID:      rep.ChatID,
		Username:    rep.Username,
		DisplayName: rep.DisplayName,
		Score:       rep.Score,
		MaxScore:    rep.MaxScore,
		Level:       rep.Level.Name,
		DurationMS:  rep.Duration.Milliseconds(),
		StartedAt:   rep.StartedAt.UTC(),
		FinishedAt:  rep.FinishedAt.UTC(),
	}
}

// Save inserts one result row.
func (r *Recorder) Save(ctx context.Context, res Result) error {
	start := time.Now()
	_, err := r.db.NamedExecContext(ctx, insertResult, res)
	if err != nil {
		return fmt.Errorf("archive: insert result: %w", err)
	}
	logger.Debug(ctx, "archive", "result.saved",
		slog.Int64("chat_id", res.ChatID),
		slog.Int("score", res.Score),
		slog.Duration("duration", logger.Took(start)),
	)
	return nil
}

// CountersAt returns total and since-midnight counters relative to now.
func (r *Recorder) CountersAt(ctx context.Context, now time.Time) (Counters, error) {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var c Counters
	if err := r.db.GetContext(ctx, &c, selectCounters, midnight.UTC()); err != nil {
		return Counters{}, fmt.Errorf("archive: counters: %w", err)
	}
	return c, nil
}
