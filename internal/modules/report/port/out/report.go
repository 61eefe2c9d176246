package out

import (
	"context"

	"worklog/internal/modules/report/domain"
)

type SessionSource interface {
	ClosedSessions(ctx context.Context) ([]domain.ClosedRecord, error)
	ActiveSessions(ctx context.Context) ([]domain.ActiveRecord, error)
}

// ReportWriter persists a rendered summary and returns where it went and
// whether an existing report was updated in place.
type ReportWriter interface {
	Write(ctx context.Context, dir string, summary domain.Summary) (string, bool, error)
}
