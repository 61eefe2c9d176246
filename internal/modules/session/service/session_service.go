package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"worklog/internal/modules/session/domain"
	sessionout "worklog/internal/modules/session/port/out"
	"worklog/internal/platform/clock"
	apperrors "worklog/internal/platform/errors"
	"worklog/internal/platform/tx"
)

type SessionService struct {
	clock clock.Clock
	store sessionout.SessionStore
	tx    tx.Manager
}

func NewSessionService(clock clock.Clock, store sessionout.SessionStore, txm tx.Manager) *SessionService {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	return &SessionService{clock: clock, store: store, tx: txm}
}

// Open starts a session for userID unless one is already open.
func (s *SessionService) Open(ctx context.Context, userID string) (domain.ActiveSession, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return domain.ActiveSession{}, err
	}
	active := domain.ActiveSession{UserID: userID, StartedAt: s.clock.Now()}
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		_, err := s.store.FindActive(ctx, userID)
		if err == nil {
			return apperrors.ErrActiveSessionExists
		}
		if !errors.Is(err, apperrors.ErrNoActiveSession) {
			return err
		}
		return s.store.InsertActive(ctx, active)
	})
	if err != nil {
		return domain.ActiveSession{}, storageErr("open session", err)
	}
	return active, nil
}

// Close ends the open session for userID and stores its duration.
func (s *SessionService) Close(ctx context.Context, userID string) (domain.Session, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return domain.Session{}, err
	}
	var closed domain.Session
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		active, err := s.store.FindActive(ctx, userID)
		if err != nil {
			return err
		}
		closed = active.Close(s.clock.Now())
		return s.store.CloseActive(ctx, closed)
	})
	if err != nil {
		return domain.Session{}, storageErr("close session", err)
	}
	return closed, nil
}

func (s *SessionService) Active(ctx context.Context, userID string) (domain.ActiveSession, time.Time, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return domain.ActiveSession{}, time.Time{}, err
	}
	active, err := s.store.FindActive(ctx, userID)
	if err != nil {
		return domain.ActiveSession{}, time.Time{}, storageErr("find active session", err)
	}
	return active, s.clock.Now(), nil
}

func (s *SessionService) Closed(ctx context.Context) ([]domain.Session, error) {
	sessions, err := s.store.ListClosed(ctx)
	if err != nil {
		return nil, storageErr("list closed sessions", err)
	}
	return sessions, nil
}

// AllActive returns every open session together with the read time.
func (s *SessionService) AllActive(ctx context.Context) ([]domain.ActiveSession, time.Time, error) {
	sessions, err := s.store.ListActive(ctx)
	if err != nil {
		return nil, time.Time{}, storageErr("list active sessions", err)
	}
	return sessions, s.clock.Now(), nil
}

// storageErr passes ledger outcomes through and marks everything else as a
// storage failure.
func storageErr(op string, err error) error {
	switch {
	case errors.Is(err, apperrors.ErrActiveSessionExists),
		errors.Is(err, apperrors.ErrNoActiveSession),
		errors.Is(err, apperrors.ErrInvalidInput),
		errors.Is(err, apperrors.ErrStorageUnavailable):
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, apperrors.ErrStorageUnavailable, err)
}
