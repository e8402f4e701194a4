package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/xvierd/tomato/internal/domain"
	"github.com/xvierd/tomato/internal/ports"
)

// sessionLog implements ports.SessionLog using SQLite.
type sessionLog struct {
	db *sql.DB
}

func newSessionLog(db *sql.DB) ports.SessionLog {
	return &sessionLog{db: db}
}

// Record appends a session to the log.
func (l *sessionLog) Record(ctx context.Context, rec domain.SessionRecord) error {
	query := `
		INSERT INTO sessions (
			id, mode, outcome, planned_ms, elapsed_ms, ended_at, git_branch, git_commit
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := l.db.ExecContext(ctx, query,
		rec.ID,
		string(rec.Mode),
		string(rec.Outcome),
		rec.Planned.Milliseconds(),
		rec.Elapsed.Milliseconds(),
		rec.EndedAt.UnixMilli(),
		rec.GitBranch,
		rec.GitCommit,
	)
	if isUniqueConstraintError(err) {
		return fmt.Errorf("%w: %s", ErrDuplicateSession, rec.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to record session: %w", err)
	}

	return nil
}

// Recent returns sessions that ended at or after since, newest first.
func (l *sessionLog) Recent(ctx context.Context, since time.Time) ([]domain.SessionRecord, error) {
	query := `
		SELECT id, mode, outcome, planned_ms, elapsed_ms, ended_at, git_branch, git_commit
		FROM sessions
		WHERE ended_at >= ?
		ORDER BY ended_at DESC, rowid DESC
	`

	rows, err := l.db.QueryContext(ctx, query, since.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to query recent sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []domain.SessionRecord
	for rows.Next() {
		var (
			rec       domain.SessionRecord
			mode      string
			outcome   string
			plannedMs int64
			elapsedMs int64
			endedAtMs int64
		)
		if err := rows.Scan(&rec.ID, &mode, &outcome, &plannedMs, &elapsedMs, &endedAtMs, &rec.GitBranch, &rec.GitCommit); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		rec.Mode = domain.Mode(mode)
		rec.Outcome = domain.SessionOutcome(outcome)
		rec.Planned = time.Duration(plannedMs) * time.Millisecond
		rec.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		rec.EndedAt = time.UnixMilli(endedAtMs)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}

	return records, nil
}

// DailyStats returns aggregated statistics for the day containing date,
// in date's location.
func (l *sessionLog) DailyStats(ctx context.Context, date time.Time) (*domain.DailyStats, error) {
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)

	query := `
		SELECT
			COUNT(CASE WHEN mode = 'focus' AND outcome = 'completed' THEN 1 END),
			COUNT(CASE WHEN mode IN ('short_break', 'long_break') AND outcome = 'completed' THEN 1 END),
			COUNT(CASE WHEN outcome = 'skipped' THEN 1 END),
			COALESCE(SUM(CASE WHEN mode = 'focus' THEN elapsed_ms END), 0)
		FROM sessions
		WHERE ended_at >= ? AND ended_at < ?
	`

	stats := &domain.DailyStats{
		Date: startOfDay,
	}

	var totalFocusMs int64
	err := l.db.QueryRowContext(ctx, query, startOfDay.UnixMilli(), endOfDay.UnixMilli()).Scan(
		&stats.FocusSessions,
		&stats.BreaksTaken,
		&stats.SkippedSessions,
		&totalFocusMs,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily stats: %w", err)
	}

	stats.TotalFocusTime = time.Duration(totalFocusMs) * time.Millisecond

	return stats, nil
}
