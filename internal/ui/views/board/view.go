package board

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	reportdto "worklog/internal/modules/report/dto"
	"worklog/internal/ui/theme"
)

const refreshEvery = time.Second

var modes = []string{"week", "all", "weekly"}

var modeLabels = map[string]string{
	"week":   "This week",
	"all":    "All time",
	"weekly": "By week",
}

type ReportPort interface {
	Aggregate(ctx context.Context, mode string) (reportdto.AggregateOutput, error)
}

type LoadedMsg struct {
	Out reportdto.AggregateOutput
	Err error
}

type tickMsg time.Time

type Model struct {
	port   ReportPort
	mode   int
	out    reportdto.AggregateOutput
	err    error
	loaded bool
	width  int
}

func New(port ReportPort) Model {
	return Model{port: port}
}

func (m Model) Mode() string { return modes[m.mode] }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), tick())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.mode = (m.mode + 1) % len(modes)
			m.loaded = false
			return m, m.loadCmd()
		case "shift+tab":
			m.mode = (m.mode + len(modes) - 1) % len(modes)
			m.loaded = false
			return m, m.loadCmd()
		}
	case tickMsg:
		return m, tea.Batch(m.loadCmd(), tick())
	case LoadedMsg:
		if msg.Out.Mode != "" && msg.Out.Mode != m.Mode() {
			// Stale result from before a mode switch.
			return m, nil
		}
		m.out, m.err, m.loaded = msg.Out, msg.Err, true
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("worklog"))
	sb.WriteString("  ")
	sb.WriteString(m.tabs())
	sb.WriteString("\n\n")

	switch {
	case m.err != nil:
		sb.WriteString(theme.Error.Render(m.err.Error()))
	case !m.loaded:
		sb.WriteString(theme.Muted.Render("loading..."))
	default:
		sb.WriteString(Render(m.out))
	}

	sb.WriteString("\n\n")
	sb.WriteString(theme.Muted.Render("tab: mode  q: quit"))
	style := theme.App
	if m.width > 0 {
		style = style.Width(m.width)
	}
	return style.Render(sb.String())
}

func (m Model) tabs() string {
	parts := make([]string, len(modes))
	for i, mode := range modes {
		if i == m.mode {
			parts[i] = theme.TabOn.Render(modeLabels[mode])
		} else {
			parts[i] = theme.TabOff.Render(modeLabels[mode])
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) loadCmd() tea.Cmd {
	port, mode := m.port, m.Mode()
	return func() tea.Msg {
		out, err := port.Aggregate(context.Background(), mode)
		if err == nil {
			out.Mode = mode
		}
		return LoadedMsg{Out: out, Err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Render draws an aggregation result as one or more panes.
func Render(out reportdto.AggregateOutput) string {
	switch out.Mode {
	case "all":
		return pane("Total overall time", out.Users)
	case "weekly":
		if len(out.Weeks) == 0 {
			return theme.Muted.Render("No time logged yet.")
		}
		panes := make([]string, 0, len(out.Weeks))
		for i := len(out.Weeks) - 1; i >= 0; i-- {
			w := out.Weeks[i]
			panes = append(panes, pane("Week of "+weekRange(w), w.Users))
		}
		return lipgloss.JoinVertical(lipgloss.Left, panes...)
	default:
		return pane("Week of "+weekRange(out.Week), out.Users)
	}
}

func pane(title string, users []reportdto.UserTotalOutput) string {
	var sb strings.Builder
	sb.WriteString(theme.Hot.Render(title))
	if len(users) == 0 {
		sb.WriteString("\n")
		sb.WriteString(theme.Muted.Render("No time logged yet."))
		return theme.Pane.Render(sb.String())
	}
	for i, u := range users {
		line := fmt.Sprintf("%2d. %-20s %8.2f h", i+1, u.UserID, u.Hours)
		sb.WriteString("\n")
		if u.Active {
			sb.WriteString(theme.Live.Render(line + "  ● active"))
		} else {
			sb.WriteString(line)
		}
	}
	return theme.Pane.Render(sb.String())
}

func weekRange(w reportdto.WeekOutput) string {
	if w.Start.IsZero() {
		return "-"
	}
	return w.Start.Format("Jan 02") + " - " + w.End.AddDate(0, 0, -1).Format("Jan 02")
}
