package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"worklog/internal/modules/bot/domain"
	botdto "worklog/internal/modules/bot/dto"
	botin "worklog/internal/modules/bot/port/in"
	"worklog/internal/modules/bot/service"
	reportdto "worklog/internal/modules/report/dto"
	reportin "worklog/internal/modules/report/port/in"
	sessiondto "worklog/internal/modules/session/dto"
	sessionin "worklog/internal/modules/session/port/in"
	apperrors "worklog/internal/platform/errors"
)

type Interactor struct {
	sessions sessionin.Usecase
	reports  reportin.Usecase
	boards   *service.BoardService
	logger   zerolog.Logger
}

func NewInteractor(sessions sessionin.Usecase, reports reportin.Usecase, boards *service.BoardService, logger zerolog.Logger) botin.Usecase {
	return &Interactor{
		sessions: sessions,
		reports:  reports,
		boards:   boards,
		logger:   logger.With().Str("component", "bot").Logger(),
	}
}

func (i *Interactor) Login(ctx context.Context, input botdto.InteractionInput) botdto.ReplyOutput {
	out, err := i.sessions.Login(ctx, sessiondto.LoginInput{UserID: input.UserID})
	if err != nil {
		return i.failed("login", input.UserID, err)
	}
	i.logger.Info().Str("user_id", out.UserID).Time("started_at", out.StartedAt).Msg("user logged in")

	reply := botdto.ReplyOutput{Message: domain.MsgLoggedIn, OK: true}
	if summary, ok := i.summary(ctx); ok {
		board := i.render(summary)
		reply.Board = &board
	}
	return reply
}

func (i *Interactor) Logout(ctx context.Context, input botdto.InteractionInput) botdto.ReplyOutput {
	out, err := i.sessions.Logout(ctx, sessiondto.LogoutInput{UserID: input.UserID})
	if err != nil {
		return i.failed("logout", input.UserID, err)
	}
	i.logger.Info().
		Str("user_id", out.UserID).
		Float64("duration_seconds", out.DurationSeconds).
		Msg("user logged out")

	summary, ok := i.summary(ctx)
	if !ok {
		// The session is closed either way; only the weekly total is missing.
		return botdto.ReplyOutput{Message: domain.LogoutMessageNoTotal(out.DurationSeconds), OK: true}
	}
	week := 0.0
	for _, u := range summary.CurrentWeek.Users {
		if u.UserID == out.UserID {
			week = u.Seconds
			break
		}
	}
	board := i.render(summary)
	return botdto.ReplyOutput{Message: domain.LogoutMessage(out.DurationSeconds, week), OK: true, Board: &board}
}

func (i *Interactor) Setup(ctx context.Context) botdto.ReplyOutput {
	summary, err := i.reports.Summary(ctx)
	if err != nil {
		i.logger.Error().Err(err).Msg("build board")
		return botdto.ReplyOutput{Message: domain.MessageFor(err)}
	}
	board := i.render(summary)
	return botdto.ReplyOutput{OK: true, Board: &board}
}

func (i *Interactor) summary(ctx context.Context) (reportdto.SummaryOutput, bool) {
	summary, err := i.reports.Summary(ctx)
	if err != nil {
		i.logger.Error().Err(err).Msg("refresh board")
		return reportdto.SummaryOutput{}, false
	}
	return summary, true
}

func (i *Interactor) render(summary reportdto.SummaryOutput) botdto.BoardOutput {
	board := i.boards.Render(summary)
	out := botdto.BoardOutput{Title: board.Title, Description: board.Description, Footer: board.Footer}
	for _, s := range board.Sections {
		out.Sections = append(out.Sections, botdto.SectionOutput{Name: s.Name, Value: s.Value()})
	}
	return out
}

func (i *Interactor) failed(action, userID string, err error) botdto.ReplyOutput {
	event := i.logger.Error()
	if errors.Is(err, apperrors.ErrActiveSessionExists) || errors.Is(err, apperrors.ErrNoActiveSession) {
		event = i.logger.Debug()
	}
	event.Err(err).Str("user_id", userID).Str("action", action).Msg("interaction rejected")
	return botdto.ReplyOutput{Message: domain.MessageFor(err)}
}
