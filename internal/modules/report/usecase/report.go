package usecase

import (
	"context"
	"fmt"
	"strings"

	"worklog/internal/modules/report/domain"
	reportdto "worklog/internal/modules/report/dto"
	reportin "worklog/internal/modules/report/port/in"
	"worklog/internal/modules/report/service"
	apperrors "worklog/internal/platform/errors"
)

type Interactor struct {
	svc *service.ReportService
}

func NewInteractor(svc *service.ReportService) reportin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Aggregate(ctx context.Context, input reportdto.AggregateInput) (reportdto.AggregateOutput, error) {
	mode := domain.Mode(strings.ToLower(strings.TrimSpace(input.Mode)))
	if mode == "" {
		mode = domain.ModeCurrentWeek
	}
	res, err := i.svc.Aggregate(ctx, mode)
	if err != nil {
		return reportdto.AggregateOutput{}, err
	}
	cal := i.svc.Calendar()
	out := reportdto.AggregateOutput{
		Mode:  string(res.Mode),
		Now:   res.Now,
		Week:  reportdto.WeekOutput{Start: res.Week, End: cal.WeekEnd(res.Week)},
		Users: toUserOutputs(res.Users),
	}
	if mode == domain.ModeCurrentWeek {
		out.Week.Users = out.Users
	}
	out.Weeks = toWeekOutputs(cal, res.Weeks)
	return out, nil
}

func (i *Interactor) Summary(ctx context.Context) (reportdto.SummaryOutput, error) {
	summary, err := i.svc.Summary(ctx)
	if err != nil {
		return reportdto.SummaryOutput{}, err
	}
	return toSummaryOutput(summary), nil
}

func (i *Interactor) UserWeekTotal(ctx context.Context, userID string) (reportdto.UserTotalOutput, error) {
	if strings.TrimSpace(userID) == "" {
		return reportdto.UserTotalOutput{}, fmt.Errorf("%w: user id is required", apperrors.ErrInvalidInput)
	}
	summary, err := i.svc.Summary(ctx)
	if err != nil {
		return reportdto.UserTotalOutput{}, err
	}
	return toUserOutput(summary.UserWeek(userID)), nil
}

func (i *Interactor) Export(ctx context.Context, input reportdto.ExportInput) (reportdto.ExportOutput, error) {
	summary, path, replaced, err := i.svc.Export(ctx, input.Dir)
	if err != nil {
		return reportdto.ExportOutput{}, err
	}
	return reportdto.ExportOutput{Path: path, Week: summary.Week, Users: len(summary.CurrentWeek), Replaced: replaced}, nil
}

func toSummaryOutput(s domain.Summary) reportdto.SummaryOutput {
	return reportdto.SummaryOutput{
		Now:      s.Now,
		Anchor:   s.Calendar.Anchor,
		Timezone: s.Calendar.Location.String(),
		CurrentWeek: reportdto.WeekOutput{
			Start: s.Week,
			End:   s.Calendar.WeekEnd(s.Week),
			Users: toUserOutputs(s.CurrentWeek),
		},
		AllTime: toUserOutputs(s.AllTime),
		Weeks:   toWeekOutputs(s.Calendar, s.Weeks),
	}
}

func toWeekOutputs(cal domain.Calendar, weeks []domain.WeekTotals) []reportdto.WeekOutput {
	out := make([]reportdto.WeekOutput, 0, len(weeks))
	for _, w := range weeks {
		out = append(out, reportdto.WeekOutput{Start: w.Week, End: cal.WeekEnd(w.Week), Users: toUserOutputs(w.Users)})
	}
	return out
}

func toUserOutputs(totals []domain.UserTotal) []reportdto.UserTotalOutput {
	out := make([]reportdto.UserTotalOutput, 0, len(totals))
	for _, t := range totals {
		out = append(out, toUserOutput(t))
	}
	return out
}

func toUserOutput(t domain.UserTotal) reportdto.UserTotalOutput {
	return reportdto.UserTotalOutput{UserID: t.UserID, Seconds: t.Seconds, Hours: t.Hours(), Active: t.Active}
}
