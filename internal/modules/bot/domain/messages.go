package domain

import (
	"errors"
	"fmt"

	apperrors "worklog/internal/platform/errors"
)

const (
	MsgLoggedIn           = "Logged in successfully!"
	MsgAlreadyLoggedIn    = "You are already logged in!"
	MsgNotLoggedIn        = "You are not logged in!"
	MsgStorageUnavailable = "The time log is unavailable right now, please try again in a moment."
	MsgFailed             = "Something went wrong, please try again."
)

func LogoutMessage(sessionSeconds, weekSeconds float64) string {
	return fmt.Sprintf("Logged out. Session duration: %s hours. Total this week: %s hours.",
		FormatHours(sessionSeconds/3600), FormatHours(weekSeconds/3600))
}

// LogoutMessageNoTotal is used when the weekly total cannot be read.
func LogoutMessageNoTotal(sessionSeconds float64) string {
	return fmt.Sprintf("Logged out. Session duration: %s hours. Total this week: unavailable.",
		FormatHours(sessionSeconds/3600))
}

// MessageFor maps a failed login or logout to the reply shown to the user.
func MessageFor(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrActiveSessionExists):
		return MsgAlreadyLoggedIn
	case errors.Is(err, apperrors.ErrNoActiveSession):
		return MsgNotLoggedIn
	case errors.Is(err, apperrors.ErrStorageUnavailable):
		return MsgStorageUnavailable
	default:
		return MsgFailed
	}
}
