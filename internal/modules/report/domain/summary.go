package domain

import "time"

// Summary is every aggregation mode computed from one snapshot.
type Summary struct {
	Now         time.Time
	Calendar    Calendar
	Week        time.Time
	CurrentWeek []UserTotal
	AllTime     []UserTotal
	Weeks       []WeekTotals
}

func (c Calendar) Summarize(snap Snapshot) Summary {
	contribs := c.Contributions(snap)
	return Summary{
		Now:         snap.Now,
		Calendar:    c,
		Week:        c.WeekStart(snap.Now),
		CurrentWeek: c.CurrentWeek(contribs, snap.Now),
		AllTime:     AllTime(contribs),
		Weeks:       Weekly(contribs),
	}
}

// UserWeek returns userID's current-week total, zero when absent.
func (s Summary) UserWeek(userID string) UserTotal {
	for _, u := range s.CurrentWeek {
		if u.UserID == userID {
			return u
		}
	}
	return UserTotal{UserID: userID}
}
