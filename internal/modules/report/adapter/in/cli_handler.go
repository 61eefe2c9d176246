package in

import (
	"context"

	reportdto "worklog/internal/modules/report/dto"
	reportin "worklog/internal/modules/report/port/in"
)

type CLIHandler struct {
	usecase reportin.Usecase
}

func NewCLIHandler(usecase reportin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Aggregate(ctx context.Context, mode string) (reportdto.AggregateOutput, error) {
	return h.usecase.Aggregate(ctx, reportdto.AggregateInput{Mode: mode})
}

func (h CLIHandler) Summary(ctx context.Context) (reportdto.SummaryOutput, error) {
	return h.usecase.Summary(ctx)
}

func (h CLIHandler) Export(ctx context.Context, dir string) (reportdto.ExportOutput, error) {
	return h.usecase.Export(ctx, reportdto.ExportInput{Dir: dir})
}

func (h CLIHandler) UserWeekTotal(ctx context.Context, userID string) (reportdto.UserTotalOutput, error) {
	return h.usecase.UserWeekTotal(ctx, userID)
}
