package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	Title       = "Time Tracking"
	Description = "Click the buttons below to log in or log out."

	// Chat platform embed limits: per field value, whole embed, field count.
	MaxSectionLen = 1024
	MaxBoardLen   = 6000
	MaxSections   = 25
	emptySection  = "No time logged yet."
)

type Line struct {
	UserID string
	Hours  float64
	Active bool
}

func (l Line) String() string {
	s := fmt.Sprintf("<@%s> - %s hours", l.UserID, FormatHours(l.Hours))
	if l.Active {
		s += " (active)"
	}
	return s
}

type Section struct {
	Name  string
	Lines []Line
}

// Value renders the section body, truncated to MaxSectionLen.
func (s Section) Value() string {
	if len(s.Lines) == 0 {
		return emptySection
	}
	var sb strings.Builder
	for i, line := range s.Lines {
		row := fmt.Sprintf("%d. %s\n", i+1, line)
		more := fmt.Sprintf("...and %d more", len(s.Lines)-i)
		limit := MaxSectionLen + 1
		if i < len(s.Lines)-1 {
			limit = MaxSectionLen - len(more)
		}
		if sb.Len()+len(row) > limit {
			sb.WriteString(more)
			return sb.String()
		}
		sb.WriteString(row)
	}
	return strings.TrimRight(sb.String(), "\n")
}

type Board struct {
	Title       string
	Description string
	Sections    []Section
	Footer      string
}

// Len counts every character the chat platform charges against MaxBoardLen.
func (b Board) Len() int {
	n := utf8.RuneCountInString(b.Title) + utf8.RuneCountInString(b.Description) + utf8.RuneCountInString(b.Footer)
	for _, s := range b.Sections {
		n += utf8.RuneCountInString(s.Name) + utf8.RuneCountInString(s.Value())
	}
	return n
}

func FormatHours(hours float64) string {
	return fmt.Sprintf("%.2f", hours)
}
