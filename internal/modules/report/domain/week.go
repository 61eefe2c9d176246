package domain

import (
	"fmt"
	"time"

	apperrors "worklog/internal/platform/errors"
)

// WeekStart returns local midnight of the most recent anchor weekday at or
// before t, evaluated in loc. Days are calendar days, so a week spanning a
// DST change is 7 calendar days rather than 168 hours.
func WeekStart(t time.Time, anchor time.Weekday, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	delta := (int(local.Weekday()) - int(anchor) + 7) % 7
	return time.Date(local.Year(), local.Month(), local.Day()-delta, 0, 0, 0, 0, loc)
}

func ValidateAnchor(anchor int) error {
	if anchor < 0 || anchor > 6 {
		return fmt.Errorf("%w: anchor weekday %d out of range [0,6]", apperrors.ErrInvalidInput, anchor)
	}
	return nil
}

// Calendar carries the configured rollover day and zone.
type Calendar struct {
	Anchor   time.Weekday
	Location *time.Location
}

func NewCalendar(anchor time.Weekday, loc *time.Location) (Calendar, error) {
	if err := ValidateAnchor(int(anchor)); err != nil {
		return Calendar{}, err
	}
	if loc == nil {
		loc = time.UTC
	}
	return Calendar{Anchor: anchor, Location: loc}, nil
}

func (c Calendar) WeekStart(t time.Time) time.Time {
	return WeekStart(t, c.Anchor, c.Location)
}

// WeekEnd is the start of the following bucket.
func (c Calendar) WeekEnd(start time.Time) time.Time {
	start = start.In(c.location())
	return time.Date(start.Year(), start.Month(), start.Day()+7, 0, 0, 0, 0, c.location())
}

func (c Calendar) location() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}
