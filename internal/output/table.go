package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/weekplan/internal/planning"
	"github.com/twiced-technology-gmbh/weekplan/internal/task"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// DisableColor strips all styling from table output.
func DisableColor() {
	headerStyle = lipgloss.NewStyle()
	dimStyle = lipgloss.NewStyle()
	titleStyle = lipgloss.NewStyle()
	pendingStyle = lipgloss.NewStyle()
	doneStyle = lipgloss.NewStyle()
	warnStyle = lipgloss.NewStyle()
}

// TaskTable renders tasks as a formatted table in store order.
func TaskTable(w io.Writer, tasks []task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks recorded.")
		return
	}

	const pad = 2
	idW, dateW, statusW, titleW := 4, 12, 9, 7
	for _, t := range tasks {
		idW = max(idW, len(strconv.Itoa(t.ID))+pad)
		dateW = max(dateW, len(t.Date)+pad)
		titleW = max(titleW, min(lipgloss.Width(t.Title)+pad, 50)) //nolint:mnd // max title column width
	}

	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %s",
		idW, "ID", dateW, "DATE", statusW, "STATUS", titleW, "TITLE", "BY")
	fmt.Fprintln(w, headerStyle.Render(header))

	for _, t := range tasks {
		by := t.ValidatedBy
		if by == "" {
			by = dimStyle.Render("--")
		}
		row := fmt.Sprintf("%-*d %-*s %s %s %s",
			idW, t.ID,
			dateW, t.Date,
			padRight(statusWord(t), statusW),
			padRight(shorten(t.Title, titleW-pad), titleW),
			by)
		fmt.Fprintln(w, strings.TrimRight(row, " "))
	}
}

// TaskDetail renders a single task with every field.
func TaskDetail(w io.Writer, t task.Task) {
	titleLine := fmt.Sprintf("Task #%d: %s", t.ID, t.Title)
	fmt.Fprintln(w, titleStyle.Render(titleLine))
	fmt.Fprintln(w, strings.Repeat("─", lipgloss.Width(titleLine)))

	printField(w, "Date", t.Date)
	printField(w, "Status", statusWord(t))
	if t.ValidatedBy != "" {
		printField(w, "Done by", t.ValidatedBy)
	}
}

// WeekTable renders a week view as a header line plus a task table.
func WeekTable(w io.Writer, v planning.View) {
	fmt.Fprintln(w, titleStyle.Render(v.Title))
	if v.Empty {
		fmt.Fprintln(w, dimStyle.Render(v.Description))
		return
	}
	for _, f := range v.Fields {
		status := pendingStyle.Render("pending")
		if f.Done {
			status = doneStyle.Render("done")
		}
		fmt.Fprintf(w, "  %s %s\n", padRight(status, 9), f.Name) //nolint:mnd // status column width
	}
}

// Warnings prints load warnings for records that break an invariant.
func Warnings(w io.Writer, warnings []task.Warning) {
	for _, wr := range warnings {
		fmt.Fprintln(w, warnStyle.Render("warning: "+wr.String()))
	}
}

// Messagef prints a simple formatted message line.
func Messagef(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-12s %s\n", label+":", value)
}

func statusWord(t task.Task) string {
	if t.Done {
		return doneStyle.Render("done")
	}
	return pendingStyle.Render("pending")
}

// shorten cuts s to n visible runes, marking the cut.
func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// padRight pads s with spaces to the given visible width, accounting for ANSI
// escape codes that are invisible but consume bytes.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}
