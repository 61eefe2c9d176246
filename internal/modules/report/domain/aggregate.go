package domain

import (
	"fmt"
	"sort"
	"time"

	"worklog/internal/platform/clock"
	apperrors "worklog/internal/platform/errors"
)

type Mode string

const (
	ModeCurrentWeek Mode = "week"
	ModeAllTime     Mode = "all"
	ModeWeekly      Mode = "weekly"
)

func (m Mode) Validate() error {
	switch m {
	case ModeCurrentWeek, ModeAllTime, ModeWeekly:
		return nil
	default:
		return fmt.Errorf("%w: unknown aggregation mode %q", apperrors.ErrInvalidInput, m)
	}
}

type ClosedRecord struct {
	UserID          string
	StartedAt       time.Time
	DurationSeconds float64
}

type ActiveRecord struct {
	UserID    string
	StartedAt time.Time
}

// Contribution is one session's share of a (week, user) cell.
type Contribution struct {
	UserID  string
	Week    time.Time
	Seconds float64
	Active  bool
}

type UserTotal struct {
	UserID  string
	Seconds float64
	Active  bool
}

func (u UserTotal) Hours() float64 { return u.Seconds / 3600 }

type WeekTotals struct {
	Week  time.Time
	Users []UserTotal
}

// Snapshot is every session read at one instant.
type Snapshot struct {
	Now    time.Time
	Closed []ClosedRecord
	Active []ActiveRecord
}

// Contributions attributes each session to the bucket of its start time.
// Active sessions contribute their elapsed time at snap.Now.
func (c Calendar) Contributions(snap Snapshot) []Contribution {
	out := make([]Contribution, 0, len(snap.Closed)+len(snap.Active))
	for _, s := range snap.Closed {
		out = append(out, Contribution{UserID: s.UserID, Week: c.WeekStart(s.StartedAt), Seconds: s.DurationSeconds})
	}
	for _, s := range snap.Active {
		out = append(out, Contribution{
			UserID:  s.UserID,
			Week:    c.WeekStart(s.StartedAt),
			Seconds: clock.Elapsed(s.StartedAt, snap.Now),
			Active:  true,
		})
	}
	return out
}

// CurrentWeek sums contributions whose bucket is the bucket of now.
func (c Calendar) CurrentWeek(contribs []Contribution, now time.Time) []UserTotal {
	week := c.WeekStart(now)
	filtered := make([]Contribution, 0, len(contribs))
	for _, ct := range contribs {
		if ct.Week.Equal(week) {
			filtered = append(filtered, ct)
		}
	}
	return AllTime(filtered)
}

// AllTime sums every contribution per user, highest total first.
func AllTime(contribs []Contribution) []UserTotal {
	index := map[string]int{}
	out := make([]UserTotal, 0)
	for _, ct := range contribs {
		i, ok := index[ct.UserID]
		if !ok {
			i = len(out)
			index[ct.UserID] = i
			out = append(out, UserTotal{UserID: ct.UserID})
		}
		out[i].Seconds += ct.Seconds
		out[i].Active = out[i].Active || ct.Active
	}
	sortLeaderboard(out)
	return out
}

// Weekly groups contributions by bucket, oldest bucket first.
func Weekly(contribs []Contribution) []WeekTotals {
	byWeek := map[int64][]Contribution{}
	weeks := make([]time.Time, 0)
	for _, ct := range contribs {
		key := ct.Week.Unix()
		if _, ok := byWeek[key]; !ok {
			weeks = append(weeks, ct.Week)
		}
		byWeek[key] = append(byWeek[key], ct)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].Before(weeks[j]) })
	out := make([]WeekTotals, 0, len(weeks))
	for _, w := range weeks {
		out = append(out, WeekTotals{Week: w, Users: AllTime(byWeek[w.Unix()])})
	}
	return out
}

// Result holds one aggregation mode. Users is set for week/all, Weeks for weekly.
type Result struct {
	Mode  Mode
	Now   time.Time
	Week  time.Time
	Users []UserTotal
	Weeks []WeekTotals
}

func (c Calendar) Aggregate(snap Snapshot, mode Mode) (Result, error) {
	if err := mode.Validate(); err != nil {
		return Result{}, err
	}
	contribs := c.Contributions(snap)
	res := Result{Mode: mode, Now: snap.Now, Week: c.WeekStart(snap.Now)}
	switch mode {
	case ModeCurrentWeek:
		res.Users = c.CurrentWeek(contribs, snap.Now)
	case ModeAllTime:
		res.Users = AllTime(contribs)
	case ModeWeekly:
		res.Weeks = Weekly(contribs)
	}
	return res, nil
}

func sortLeaderboard(totals []UserTotal) {
	sort.SliceStable(totals, func(i, j int) bool {
		if totals[i].Seconds != totals[j].Seconds {
			return totals[i].Seconds > totals[j].Seconds
		}
		return totals[i].UserID < totals[j].UserID
	})
}
