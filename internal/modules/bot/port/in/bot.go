package in

import (
	"context"

	"worklog/internal/modules/bot/dto"
)

// Usecase never fails: errors become reply messages.
type Usecase interface {
	Login(ctx context.Context, input dto.InteractionInput) dto.ReplyOutput
	Logout(ctx context.Context, input dto.InteractionInput) dto.ReplyOutput
	Setup(ctx context.Context) dto.ReplyOutput
}
