package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"worklog/internal/modules/report/domain"
	reportout "worklog/internal/modules/report/port/out"
	"worklog/internal/platform/markdown"
	"worklog/internal/platform/slug"
)

const (
	blockStart = "<!-- worklog:totals:start -->"
	blockEnd   = "<!-- worklog:totals:end -->"
)

// MarkdownReportWriter writes one note per week. Re-exporting a week only
// replaces the generated block so hand-written notes around it survive.
type MarkdownReportWriter struct{}

func NewMarkdownReportWriter() reportout.ReportWriter {
	return MarkdownReportWriter{}
}

func (MarkdownReportWriter) Write(_ context.Context, dir string, summary domain.Summary) (string, bool, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", false, fmt.Errorf("create report dir: %w", err)
	}
	name := slug.Make("week of "+summary.Week.Format("2006-01-02")) + ".md"
	path := filepath.Join(dir, name)

	meta := map[string]any{
		"week_start":   summary.Week.Format("2006-01-02"),
		"week_end":     summary.Calendar.WeekEnd(summary.Week).Format("2006-01-02"),
		"anchor":       summary.Calendar.Anchor.String(),
		"timezone":     summary.Calendar.Location.String(),
		"generated_at": summary.Now.Format("2006-01-02T15:04:05Z07:00"),
		"users":        len(summary.CurrentWeek),
	}
	generated := renderTotals(summary)

	body := fmt.Sprintf("# Week of %s\n\n", summary.Week.Format("Jan 02, 2006"))
	replaced := false
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		_, oldBody, splitErr := markdown.SplitFrontmatter(string(existing))
		if splitErr != nil {
			return "", false, splitErr
		}
		body = oldBody
		replaced = true
	case !errors.Is(err, os.ErrNotExist):
		return "", false, fmt.Errorf("read report: %w", err)
	}
	body = markdown.ReplaceManagedBlock(body, blockStart, blockEnd, generated)

	rendered, err := markdown.RenderFrontmatter(meta, body)
	if err != nil {
		return "", false, err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", false, fmt.Errorf("write report: %w", err)
	}
	return path, replaced, nil
}

func renderTotals(summary domain.Summary) string {
	var sb strings.Builder
	sb.WriteString("## This week\n\n")
	writeTable(&sb, summary.CurrentWeek)
	sb.WriteString("\n## Total overall time\n\n")
	writeTable(&sb, summary.AllTime)
	return strings.TrimRight(sb.String(), "\n")
}

func writeTable(sb *strings.Builder, totals []domain.UserTotal) {
	if len(totals) == 0 {
		sb.WriteString("_No time logged._\n")
		return
	}
	sb.WriteString("| # | User | Hours |\n|---|------|------:|\n")
	for i, t := range totals {
		marker := ""
		if t.Active {
			marker = " (active)"
		}
		fmt.Fprintf(sb, "| %d | %s%s | %.2f |\n", i+1, t.UserID, marker, t.Hours())
	}
}
