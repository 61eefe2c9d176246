package in

import (
	"context"

	"worklog/internal/modules/session/dto"
)

type Usecase interface {
	Login(ctx context.Context, input dto.LoginInput) (dto.LoginOutput, error)
	Logout(ctx context.Context, input dto.LogoutInput) (dto.LogoutOutput, error)
	GetActive(ctx context.Context, userID string) (dto.ActiveSessionOutput, error)
	ListClosed(ctx context.Context) ([]dto.ClosedSessionOutput, error)
	ListActive(ctx context.Context) ([]dto.ActiveSessionOutput, error)
}
