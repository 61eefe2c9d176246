package out

import (
	"context"

	"worklog/internal/modules/report/domain"
	reportout "worklog/internal/modules/report/port/out"
	sessionin "worklog/internal/modules/session/port/in"
)

type SessionSourceAdapter struct {
	sessions sessionin.Usecase
}

func NewSessionSourceAdapter(sessions sessionin.Usecase) reportout.SessionSource {
	return &SessionSourceAdapter{sessions: sessions}
}

func (a *SessionSourceAdapter) ClosedSessions(ctx context.Context) ([]domain.ClosedRecord, error) {
	sessions, err := a.sessions.ListClosed(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ClosedRecord, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, domain.ClosedRecord{UserID: s.UserID, StartedAt: s.StartedAt, DurationSeconds: s.DurationSeconds})
	}
	return out, nil
}

func (a *SessionSourceAdapter) ActiveSessions(ctx context.Context) ([]domain.ActiveRecord, error) {
	sessions, err := a.sessions.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ActiveRecord, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, domain.ActiveRecord{UserID: s.UserID, StartedAt: s.StartedAt})
	}
	return out, nil
}
