package service

import (
	"context"
	"errors"
	"fmt"

	"worklog/internal/modules/report/domain"
	reportout "worklog/internal/modules/report/port/out"
	"worklog/internal/platform/clock"
	apperrors "worklog/internal/platform/errors"
	"worklog/internal/platform/tx"
)

type ReportService struct {
	clock    clock.Clock
	calendar domain.Calendar
	source   reportout.SessionSource
	writer   reportout.ReportWriter
	tx       tx.Manager
}

func NewReportService(clock clock.Clock, calendar domain.Calendar, source reportout.SessionSource, writer reportout.ReportWriter, txm tx.Manager) *ReportService {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	return &ReportService{clock: clock, calendar: calendar, source: source, writer: writer, tx: txm}
}

func (s *ReportService) Calendar() domain.Calendar {
	return s.calendar
}

// Snapshot reads closed and active sessions in one transaction and stamps
// the read time, so a logout racing the read is counted exactly once.
func (s *ReportService) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	var snap domain.Snapshot
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		closed, err := s.source.ClosedSessions(ctx)
		if err != nil {
			return err
		}
		active, err := s.source.ActiveSessions(ctx)
		if err != nil {
			return err
		}
		snap = domain.Snapshot{Now: s.clock.Now(), Closed: closed, Active: active}
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrStorageUnavailable) {
			err = fmt.Errorf("read sessions: %w: %w", apperrors.ErrStorageUnavailable, err)
		}
		return domain.Snapshot{}, err
	}
	return snap, nil
}

func (s *ReportService) Aggregate(ctx context.Context, mode domain.Mode) (domain.Result, error) {
	if err := mode.Validate(); err != nil {
		return domain.Result{}, err
	}
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return domain.Result{}, err
	}
	return s.calendar.Aggregate(snap, mode)
}

func (s *ReportService) Summary(ctx context.Context) (domain.Summary, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return domain.Summary{}, err
	}
	return s.calendar.Summarize(snap), nil
}

func (s *ReportService) Export(ctx context.Context, dir string) (domain.Summary, string, bool, error) {
	if s.writer == nil {
		return domain.Summary{}, "", false, fmt.Errorf("report writer is not configured")
	}
	summary, err := s.Summary(ctx)
	if err != nil {
		return domain.Summary{}, "", false, err
	}
	path, replaced, err := s.writer.Write(ctx, dir, summary)
	if err != nil {
		return domain.Summary{}, "", false, err
	}
	return summary, path, replaced, nil
}
