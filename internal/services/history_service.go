// Package services contains the application services that sit between the
// timer engine and the storage adapters.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/xvierd/tomato/internal/domain"
	"github.com/xvierd/tomato/internal/ports"
)

// DefaultHistoryWindow bounds how far back Recent looks.
const DefaultHistoryWindow = 7 * 24 * time.Hour

// HistoryService records ended sessions and answers history queries.
// It implements ports.SessionObserver so the engine can report to it.
type HistoryService struct {
	log         ports.SessionLog
	gitDetector ports.GitDetector
	workingDir  string
	logger      *slog.Logger
	now         func() time.Time
}

// Ensure HistoryService implements ports.SessionObserver.
var _ ports.SessionObserver = (*HistoryService)(nil)

// NewHistoryService creates a new history service. gitDetector may be nil.
func NewHistoryService(log ports.SessionLog, gitDetector ports.GitDetector, logger *slog.Logger) *HistoryService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &HistoryService{
		log:         log,
		gitDetector: gitDetector,
		logger:      logger,
		now:         time.Now,
	}
}

// SetWorkingDir sets the directory used for git detection.
func (s *HistoryService) SetWorkingDir(dir string) {
	s.workingDir = dir
}

// SessionEnded stamps the record with git context, if any, and stores it.
// Failures are logged; the timer keeps running regardless.
func (s *HistoryService) SessionEnded(ctx context.Context, rec domain.SessionRecord) {
	if s.gitDetector != nil {
		if info, err := s.gitDetector.Detect(ctx, s.workingDir); err == nil {
			rec.SetGitContext(info.Branch, info.Commit)
		}
	}

	if err := s.log.Record(ctx, rec); err != nil {
		s.logger.Error("failed to record session", "id", rec.ID, "mode", rec.Mode, "error", err)
		return
	}
	s.logger.Info("session ended",
		"mode", rec.Mode,
		"outcome", rec.Outcome,
		"elapsed", rec.Elapsed,
		"branch", rec.GitBranch,
	)
}

// Recent returns up to limit sessions from the last week, newest first.
// A non-positive limit returns everything in the window.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]domain.SessionRecord, error) {
	records, err := s.log.Recent(ctx, s.now().Add(-DefaultHistoryWindow))
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(records) > limit {
		return records[:limit], nil
	}
	return records, nil
}

// Today returns the statistics for the current day.
func (s *HistoryService) Today(ctx context.Context) (*domain.DailyStats, error) {
	return s.log.DailyStats(ctx, s.now())
}
