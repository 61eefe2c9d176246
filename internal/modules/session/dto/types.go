package dto

import "time"

type LoginInput struct {
	UserID string
}

type LoginOutput struct {
	UserID    string
	StartedAt time.Time
}

type LogoutInput struct {
	UserID string
}

type LogoutOutput struct {
	UserID          string
	StartedAt       time.Time
	EndedAt         time.Time
	DurationSeconds float64
}

type ActiveSessionOutput struct {
	UserID         string
	StartedAt      time.Time
	ElapsedSeconds float64
}

type ClosedSessionOutput struct {
	UserID          string
	StartedAt       time.Time
	EndedAt         time.Time
	DurationSeconds float64
}
