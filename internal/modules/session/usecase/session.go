package usecase

import (
	"context"

	sessiondto "worklog/internal/modules/session/dto"
	sessionin "worklog/internal/modules/session/port/in"
	"worklog/internal/modules/session/service"
)

type Interactor struct {
	svc *service.SessionService
}

func NewInteractor(svc *service.SessionService) sessionin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Login(ctx context.Context, input sessiondto.LoginInput) (sessiondto.LoginOutput, error) {
	active, err := i.svc.Open(ctx, input.UserID)
	if err != nil {
		return sessiondto.LoginOutput{}, err
	}
	return sessiondto.LoginOutput{UserID: active.UserID, StartedAt: active.StartedAt}, nil
}

func (i *Interactor) Logout(ctx context.Context, input sessiondto.LogoutInput) (sessiondto.LogoutOutput, error) {
	closed, err := i.svc.Close(ctx, input.UserID)
	if err != nil {
		return sessiondto.LogoutOutput{}, err
	}
	return sessiondto.LogoutOutput{
		UserID:          closed.UserID,
		StartedAt:       closed.StartedAt,
		EndedAt:         closed.EndedAt,
		DurationSeconds: closed.DurationSeconds,
	}, nil
}

func (i *Interactor) GetActive(ctx context.Context, userID string) (sessiondto.ActiveSessionOutput, error) {
	active, now, err := i.svc.Active(ctx, userID)
	if err != nil {
		return sessiondto.ActiveSessionOutput{}, err
	}
	return sessiondto.ActiveSessionOutput{
		UserID:         active.UserID,
		StartedAt:      active.StartedAt,
		ElapsedSeconds: active.Elapsed(now),
	}, nil
}

func (i *Interactor) ListClosed(ctx context.Context) ([]sessiondto.ClosedSessionOutput, error) {
	sessions, err := i.svc.Closed(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]sessiondto.ClosedSessionOutput, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, sessiondto.ClosedSessionOutput{
			UserID:          s.UserID,
			StartedAt:       s.StartedAt,
			EndedAt:         s.EndedAt,
			DurationSeconds: s.DurationSeconds,
		})
	}
	return out, nil
}

func (i *Interactor) ListActive(ctx context.Context) ([]sessiondto.ActiveSessionOutput, error) {
	sessions, now, err := i.svc.AllActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]sessiondto.ActiveSessionOutput, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, sessiondto.ActiveSessionOutput{
			UserID:         s.UserID,
			StartedAt:      s.StartedAt,
			ElapsedSeconds: s.Elapsed(now),
		})
	}
	return out, nil
}
