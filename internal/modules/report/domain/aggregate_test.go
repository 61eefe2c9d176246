package domain_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"worklog/internal/modules/report/domain"
	apperrors "worklog/internal/platform/errors"
)

var friday = domain.Calendar{Anchor: time.Friday, Location: time.UTC}

func at(day, hour, minute int) time.Time {
	return time.Date(2026, 10, day, hour, minute, 0, 0, time.UTC)
}

func closed(user string, start time.Time, d time.Duration) domain.ClosedRecord {
	return domain.ClosedRecord{UserID: user, StartedAt: start, DurationSeconds: d.Seconds()}
}

func TestSessionAcrossRolloverBelongsToStartWeek(t *testing.T) {
	t.Parallel()
	// Thursday 22:00 -> Friday 01:00.
	snap := domain.Snapshot{
		Now:    at(16, 12, 0),
		Closed: []domain.ClosedRecord{closed("u", at(15, 22, 0), 3*time.Hour)},
	}
	weekly, err := friday.Aggregate(snap, domain.ModeWeekly)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(weekly.Weeks) != 1 || !weekly.Weeks[0].Week.Equal(at(9, 0, 0)) {
		t.Fatalf("expected bucket of previous friday, got %+v", weekly.Weeks)
	}
	current, err := friday.Aggregate(snap, domain.ModeCurrentWeek)
	if err != nil {
		t.Fatalf("aggregate current: %v", err)
	}
	if len(current.Users) != 0 {
		t.Fatalf("session must not count toward the new week, got %+v", current.Users)
	}
}

func TestLeaderboardOrdersByDescendingTotal(t *testing.T) {
	t.Parallel()
	snap := domain.Snapshot{
		Now: at(20, 18, 0),
		Closed: []domain.ClosedRecord{
			closed("A", at(17, 9, 0), 90*time.Minute),
			closed("B", at(18, 9, 0), 2*time.Hour),
		},
	}
	res, err := friday.Aggregate(snap, domain.ModeCurrentWeek)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if len(res.Users) != 2 || res.Users[0].UserID != "B" || res.Users[1].UserID != "A" {
		t.Fatalf("expected [B, A], got %+v", res.Users)
	}
	if res.Users[0].Hours() != 2.0 || res.Users[1].Hours() != 1.5 {
		t.Fatalf("expected 2.0 and 1.5 hours, got %v and %v", res.Users[0].Hours(), res.Users[1].Hours())
	}
}

func TestLeaderboardTiesBreakByUserID(t *testing.T) {
	t.Parallel()
	totals := domain.AllTime([]domain.Contribution{
		{UserID: "z", Week: at(16, 0, 0), Seconds: 60},
		{UserID: "a", Week: at(16, 0, 0), Seconds: 60},
	})
	if totals[0].UserID != "a" || totals[1].UserID != "z" {
		t.Fatalf("expected ties ordered by user id, got %+v", totals)
	}
}

func TestActiveSessionGrowsBetweenCalls(t *testing.T) {
	t.Parallel()
	start := at(16, 9, 0)
	active := []domain.ActiveRecord{{UserID: "C", StartedAt: start}}
	first, err := friday.Aggregate(domain.Snapshot{Now: at(16, 10, 0), Active: active}, domain.ModeCurrentWeek)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	second, err := friday.Aggregate(domain.Snapshot{Now: at(16, 11, 30), Active: active}, domain.ModeCurrentWeek)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if first.Users[0].Seconds != 3600 || second.Users[0].Seconds != 9000 {
		t.Fatalf("expected 3600 then 9000, got %v then %v", first.Users[0].Seconds, second.Users[0].Seconds)
	}
	if !first.Users[0].Active {
		t.Fatalf("expected active flag on in-progress total")
	}
}

func TestAllTimeEqualsSumOfWeekly(t *testing.T) {
	t.Parallel()
	snap := domain.Snapshot{
		Now: at(28, 12, 0),
		Closed: []domain.ClosedRecord{
			closed("A", at(1, 9, 0), 2*time.Hour),
			closed("A", at(8, 23, 0), 3*time.Hour),
			closed("A", at(9, 1, 0), 45*time.Minute),
			closed("B", at(14, 9, 0), 30*time.Minute),
			closed("B", at(22, 9, 0), 5*time.Hour),
		},
		Active: []domain.ActiveRecord{{UserID: "A", StartedAt: at(28, 10, 0)}},
	}
	all, err := friday.Aggregate(snap, domain.ModeAllTime)
	if err != nil {
		t.Fatalf("aggregate all: %v", err)
	}
	weekly, err := friday.Aggregate(snap, domain.ModeWeekly)
	if err != nil {
		t.Fatalf("aggregate weekly: %v", err)
	}
	sums := map[string]float64{}
	cells := 0
	for i, w := range weekly.Weeks {
		if i > 0 && !weekly.Weeks[i-1].Week.Before(w.Week) {
			t.Fatalf("weeks must be ascending: %v then %v", weekly.Weeks[i-1].Week, w.Week)
		}
		for _, u := range w.Users {
			sums[u.UserID] += u.Seconds
			cells++
		}
	}
	for _, u := range all.Users {
		if math.Abs(sums[u.UserID]-u.Seconds) > 1e-9 {
			t.Fatalf("user %s: all-time %v != weekly sum %v", u.UserID, u.Seconds, sums[u.UserID])
		}
	}
	if want := 2*3600 + 3*3600 + 45*60 + 2*3600; all.Users[0].UserID != "A" || all.Users[0].Seconds != float64(want) {
		t.Fatalf("unexpected all-time totals: %+v", all.Users)
	}
	// Weeks of Sep 25, Oct 2, Oct 9 (A and B), Oct 16 (B), Oct 23 (A active).
	if len(weekly.Weeks) != 5 || cells != 6 {
		t.Fatalf("expected 5 weeks with 6 cells, got %d weeks / %d cells: %+v", len(weekly.Weeks), cells, weekly.Weeks)
	}
}

func TestAggregateRejectsUnknownMode(t *testing.T) {
	t.Parallel()
	if _, err := friday.Aggregate(domain.Snapshot{Now: at(16, 0, 0)}, domain.Mode("daily")); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}
