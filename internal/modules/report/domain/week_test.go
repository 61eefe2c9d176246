package domain_test

import (
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"worklog/internal/modules/report/domain"
	apperrors "worklog/internal/platform/errors"
)

func TestWeekStartProperties(t *testing.T) {
	t.Parallel()
	zones := []*time.Location{time.UTC, time.FixedZone("UTC-7", -7*60*60), time.FixedZone("UTC+5:30", 5*60*60+30*60)}
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, loc := range zones {
		for anchor := time.Sunday; anchor <= time.Saturday; anchor++ {
			for step := 0; step < 24*21; step += 5 {
				ts := base.Add(time.Duration(step)*time.Hour + 17*time.Minute)
				start := domain.WeekStart(ts, anchor, loc)
				if start.After(ts) {
					t.Fatalf("week start %v after %v", start, ts)
				}
				if ts.Sub(start) >= 7*24*time.Hour {
					t.Fatalf("week start %v more than a week before %v", start, ts)
				}
				if start.Weekday() != anchor {
					t.Fatalf("week start %v is %v, want %v", start, start.Weekday(), anchor)
				}
				if h, m, s := start.Clock(); h != 0 || m != 0 || s != 0 || start.Nanosecond() != 0 {
					t.Fatalf("week start %v is not midnight", start)
				}
				if again := domain.WeekStart(start, anchor, loc); !again.Equal(start) {
					t.Fatalf("week start not idempotent: %v -> %v", start, again)
				}
			}
		}
	}
}

func TestWeekStartOnAnchorDayIsSameMidnight(t *testing.T) {
	t.Parallel()
	friday := time.Date(2026, 10, 16, 13, 45, 0, 0, time.UTC)
	got := domain.WeekStart(friday, time.Friday, time.UTC)
	want := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestWeekStartUsesCalendarZone(t *testing.T) {
	t.Parallel()
	// 23:30 UTC Thursday is already Friday in UTC+2.
	ts := time.Date(2026, 10, 15, 23, 30, 0, 0, time.UTC)
	utc := domain.WeekStart(ts, time.Friday, time.UTC)
	plus2 := domain.WeekStart(ts, time.Friday, time.FixedZone("UTC+2", 2*60*60))
	if utc.Day() != 9 {
		t.Fatalf("expected previous friday in utc, got %v", utc)
	}
	if plus2.Day() != 16 {
		t.Fatalf("expected same-day friday in utc+2, got %v", plus2)
	}
}

func TestCalendar(t *testing.T) {
	t.Parallel()
	if _, err := domain.NewCalendar(time.Weekday(7), time.UTC); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid anchor, got %v", err)
	}
	if err := domain.ValidateAnchor(-1); err == nil {
		t.Fatalf("expected negative anchor to fail")
	}
	cal, err := domain.NewCalendar(time.Friday, nil)
	if err != nil {
		t.Fatalf("new calendar: %v", err)
	}
	start := cal.WeekStart(time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC))
	if end := cal.WeekEnd(start); !end.Equal(start.AddDate(0, 0, 7)) {
		t.Fatalf("expected week end seven days later, got %v", end)
	}
}

func TestWeekStartAcrossDST(t *testing.T) {
	t.Parallel()
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("load zone: %v", err)
	}
	cal, err := domain.NewCalendar(time.Friday, berlin)
	if err != nil {
		t.Fatalf("new calendar: %v", err)
	}
	cases := []struct {
		name  string
		ts    time.Time
		start time.Time
		hours time.Duration
	}{
		// Clocks go back on Sunday 2026-10-25.
		{"autumn", time.Date(2026, 10, 26, 12, 0, 0, 0, berlin), time.Date(2026, 10, 23, 0, 0, 0, 0, berlin), 169},
		{"autumn sunday", time.Date(2026, 10, 25, 2, 30, 0, 0, berlin), time.Date(2026, 10, 23, 0, 0, 0, 0, berlin), 169},
		// Clocks go forward on Sunday 2026-03-29.
		{"spring", time.Date(2026, 4, 2, 23, 59, 0, 0, berlin), time.Date(2026, 3, 27, 0, 0, 0, 0, berlin), 167},
		{"spring sunday", time.Date(2026, 3, 29, 3, 30, 0, 0, berlin), time.Date(2026, 3, 27, 0, 0, 0, 0, berlin), 167},
	}
	for _, tc := range cases {
		start := cal.WeekStart(tc.ts)
		if !start.Equal(tc.start) {
			t.Fatalf("%s: week start %v, want %v", tc.name, start, tc.start)
		}
		local := start.In(berlin)
		if h, m, _ := local.Clock(); h != 0 || m != 0 || local.Weekday() != time.Friday {
			t.Fatalf("%s: week start %v is not local Friday midnight", tc.name, local)
		}
		end := cal.WeekEnd(start)
		if want := time.Date(local.Year(), local.Month(), local.Day()+7, 0, 0, 0, 0, berlin); !end.Equal(want) {
			t.Fatalf("%s: week end %v, want %v", tc.name, end, want)
		}
		if got := end.Sub(start); got != tc.hours*time.Hour {
			t.Fatalf("%s: week spans %v, want %dh", tc.name, got, tc.hours)
		}
		if again := cal.WeekStart(start); !again.Equal(start) {
			t.Fatalf("%s: week start not idempotent: %v -> %v", tc.name, start, again)
		}
		if next := cal.WeekStart(end); !next.Equal(end) {
			t.Fatalf("%s: week end %v is not the next week start (%v)", tc.name, end, next)
		}
	}
}
