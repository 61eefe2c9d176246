package in

import (
	"context"

	sessiondto "worklog/internal/modules/session/dto"
	sessionin "worklog/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Login(ctx context.Context, userID string) (sessiondto.LoginOutput, error) {
	return h.usecase.Login(ctx, sessiondto.LoginInput{UserID: userID})
}

func (h CLIHandler) Logout(ctx context.Context, userID string) (sessiondto.LogoutOutput, error) {
	return h.usecase.Logout(ctx, sessiondto.LogoutInput{UserID: userID})
}

func (h CLIHandler) GetActive(ctx context.Context, userID string) (sessiondto.ActiveSessionOutput, error) {
	return h.usecase.GetActive(ctx, userID)
}

func (h CLIHandler) ListActive(ctx context.Context) ([]sessiondto.ActiveSessionOutput, error) {
	return h.usecase.ListActive(ctx)
}
