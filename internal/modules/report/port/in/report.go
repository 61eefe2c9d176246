package in

import (
	"context"

	"worklog/internal/modules/report/dto"
)

type Usecase interface {
	Aggregate(ctx context.Context, input dto.AggregateInput) (dto.AggregateOutput, error)
	Summary(ctx context.Context) (dto.SummaryOutput, error)
	UserWeekTotal(ctx context.Context, userID string) (dto.UserTotalOutput, error)
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
}
