package domain

import (
	"time"

	"github.com/google/uuid"
)

// SessionOutcome records how a session ended.
type SessionOutcome string

const (
	OutcomeCompleted SessionOutcome = "completed"
	OutcomeSkipped   SessionOutcome = "skipped"
)

// SessionRecord is one finished or skipped session in the history log.
type SessionRecord struct {
	ID        string
	Mode      Mode
	Planned   time.Duration
	Elapsed   time.Duration
	Outcome   SessionOutcome
	EndedAt   time.Time
	GitBranch string
	GitCommit string
}

// NewSessionRecord creates a history record for a session that just ended.
func NewSessionRecord(m Mode, planned, elapsed time.Duration, outcome SessionOutcome, endedAt time.Time) SessionRecord {
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > planned {
		elapsed = planned
	}
	return SessionRecord{
		ID:      uuid.NewString(),
		Mode:    m,
		Planned: planned,
		Elapsed: elapsed,
		Outcome: outcome,
		EndedAt: endedAt,
	}
}

// SetGitContext stores git information for the session.
func (r *SessionRecord) SetGitContext(branch, commit string) {
	r.GitBranch = branch
	r.GitCommit = commit
}

// DailyStats aggregates history for one day.
type DailyStats struct {
	Date            time.Time
	FocusSessions   int
	BreaksTaken     int
	SkippedSessions int
	TotalFocusTime  time.Duration
}
