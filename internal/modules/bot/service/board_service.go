package service

import (
	"fmt"
	"time"

	"worklog/internal/modules/bot/domain"
	reportdto "worklog/internal/modules/report/dto"
)

type BoardService struct {
	historyWeeks int
}

// maxHistoryWeeks leaves room for the current week and the totals.
const maxHistoryWeeks = domain.MaxSections - 2

func NewBoardService(historyWeeks int) *BoardService {
	historyWeeks = max(0, min(historyWeeks, maxHistoryWeeks))
	return &BoardService{historyWeeks: historyWeeks}
}

// Render lays out the current week, up to historyWeeks earlier weeks (newest
// first) and the overall totals. The oldest history sections are dropped
// until the board fits domain.MaxBoardLen.
func (s *BoardService) Render(summary reportdto.SummaryOutput) domain.Board {
	current := domain.Section{
		Name:  "Weekly Leaderboard (" + weekRange(summary.CurrentWeek) + ")",
		Lines: lines(summary.CurrentWeek.Users),
	}
	total := domain.Section{
		Name:  "Total Overall Time",
		Lines: lines(summary.AllTime),
	}

	history := make([]domain.Section, 0, s.historyWeeks)
	for i := len(summary.Weeks) - 1; i >= 0 && len(history) < s.historyWeeks; i-- {
		w := summary.Weeks[i]
		if !w.Start.Before(summary.CurrentWeek.Start) {
			continue
		}
		history = append(history, domain.Section{
			Name:  "Week of " + weekRange(w),
			Lines: lines(w.Users),
		})
	}

	board := domain.Board{
		Title:       domain.Title,
		Description: domain.Description,
		Footer:      footer(summary),
	}
	for {
		board.Sections = append(append([]domain.Section{current}, history...), total)
		if board.Len() <= domain.MaxBoardLen || len(history) == 0 {
			return board
		}
		history = history[:len(history)-1]
	}
}

func lines(users []reportdto.UserTotalOutput) []domain.Line {
	out := make([]domain.Line, 0, len(users))
	for _, u := range users {
		out = append(out, domain.Line{UserID: u.UserID, Hours: u.Hours, Active: u.Active})
	}
	return out
}

// weekRange prints the inclusive day range of a bucket.
func weekRange(w reportdto.WeekOutput) string {
	last := w.End.AddDate(0, 0, -1)
	return w.Start.Format("Jan 02") + " - " + last.Format("Jan 02")
}

func footer(summary reportdto.SummaryOutput) string {
	zone := summary.Timezone
	if zone == "" {
		zone = time.UTC.String()
	}
	return fmt.Sprintf("Weekly totals reset every %s at midnight (%s).", summary.Anchor, zone)
}
