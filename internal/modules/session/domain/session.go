package domain

import (
	"fmt"
	"strings"
	"time"

	"worklog/internal/platform/clock"
	apperrors "worklog/internal/platform/errors"
)

// ActiveSession is an open login with no end time yet.
type ActiveSession struct {
	UserID    string
	StartedAt time.Time
}

// Session is a closed login/logout cycle. Closed sessions are never edited.
type Session struct {
	UserID          string
	StartedAt       time.Time
	EndedAt         time.Time
	DurationSeconds float64
}

func ValidateUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id is required", apperrors.ErrInvalidInput)
	}
	return nil
}

// Close ends the session at endedAt.
func (a ActiveSession) Close(endedAt time.Time) Session {
	return Session{
		UserID:          a.UserID,
		StartedAt:       a.StartedAt,
		EndedAt:         endedAt,
		DurationSeconds: clock.Elapsed(a.StartedAt, endedAt),
	}
}

// Elapsed is the in-progress duration at now. It is never stored.
func (a ActiveSession) Elapsed(now time.Time) float64 {
	return clock.Elapsed(a.StartedAt, now)
}
