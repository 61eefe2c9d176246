package out

import (
	"context"

	"worklog/internal/modules/session/domain"
)

// SessionStore persists the sessions table. FindActive returns
// apperrors.ErrNoActiveSession when the user has no open row.
type SessionStore interface {
	FindActive(ctx context.Context, userID string) (domain.ActiveSession, error)
	InsertActive(ctx context.Context, session domain.ActiveSession) error
	CloseActive(ctx context.Context, session domain.Session) error
	ListClosed(ctx context.Context) ([]domain.Session, error)
	ListActive(ctx context.Context) ([]domain.ActiveSession, error)
}
