// Package tui implements a terminal browser for the weekly planning.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/twiced-technology-gmbh/weekplan/internal/calendar"
	"github.com/twiced-technology-gmbh/weekplan/internal/planning"
)

// mode represents the current screen state.
type mode int

const (
	modeWeek mode = iota
	modeConfirmRemove
	modeConfirmClear
)

// Week is the top-level bubbletea model.
type Week struct {
	ctx    context.Context //nolint:containedctx // bubbletea models outlive a single call
	svc    *calendar.Service
	caller calendar.Caller
	keys   KeyMap
	help   help.Model

	offset int
	view   planning.View
	cursor int
	mode   mode
	width  int
	height int
	err    error
	notice string

	// Removal confirmation.
	removeID    int
	removeTitle string
	clearCount  int
}

// NewWeek creates a Week model showing the current week. Mutations are
// made on behalf of caller.
func NewWeek(ctx context.Context, svc *calendar.Service, caller calendar.Caller) *Week {
	w := &Week{
		ctx:    ctx,
		svc:    svc,
		caller: caller,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
	w.load()
	return w
}

// Init implements tea.Model.
func (w *Week) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (w *Week) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return w.handleKey(msg)
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
		w.help.Width = msg.Width
		return w, nil
	case ReloadMsg:
		w.load()
		return w, nil
	}
	return w, nil
}

// View implements tea.Model.
func (w *Week) View() string {
	switch w.mode {
	case modeConfirmRemove:
		return w.viewRemoveConfirm()
	case modeConfirmClear:
		return w.viewClearConfirm()
	default:
		return w.viewWeek()
	}
}

func (w *Week) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return w, tea.Quit
	}
	switch w.mode {
	case modeConfirmRemove:
		return w.handleConfirm(msg, w.executeRemove)
	case modeConfirmClear:
		return w.handleConfirm(msg, w.executeClear)
	}

	w.notice = ""
	switch {
	case key.Matches(msg, w.keys.Quit):
		return w, tea.Quit
	case key.Matches(msg, w.keys.Up):
		if w.cursor > 0 {
			w.cursor--
		}
	case key.Matches(msg, w.keys.Down):
		if w.cursor < len(w.view.Fields)-1 {
			w.cursor++
		}
	case key.Matches(msg, w.keys.Prev):
		w.offset--
		w.cursor = 0
		w.load()
	case key.Matches(msg, w.keys.Next):
		w.offset++
		w.cursor = 0
		w.load()
	case key.Matches(msg, w.keys.Today):
		w.offset = 0
		w.cursor = 0
		w.load()
	case key.Matches(msg, w.keys.Reload):
		w.load()
	case key.Matches(msg, w.keys.Done):
		w.markDone()
	case key.Matches(msg, w.keys.Remove):
		if f, ok := w.selected(); ok {
			w.removeID = f.TaskID
			w.removeTitle = f.Name
			w.mode = modeConfirmRemove
		}
	case key.Matches(msg, w.keys.Clear):
		tasks, _, err := w.svc.List(w.ctx)
		if err != nil {
			w.err = err
			break
		}
		if w.clearCount = len(tasks); w.clearCount > 0 {
			w.mode = modeConfirmClear
		}
	case key.Matches(msg, w.keys.Help):
		w.help.ShowAll = !w.help.ShowAll
	}
	return w, nil
}

func (w *Week) handleConfirm(msg tea.KeyMsg, execute func()) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		execute()
		w.mode = modeWeek
	case "n", "N", "esc", "q":
		w.mode = modeWeek
	}
	return w, nil
}

func (w *Week) markDone() {
	f, ok := w.selected()
	if !ok {
		return
	}
	if f.Done {
		w.err = nil
		w.notice = fmt.Sprintf("Task #%d is already completed", f.TaskID)
		return
	}
	t, err := w.svc.MarkDone(w.ctx, w.caller, f.TaskID)
	if err != nil {
		w.err = err
		return
	}
	w.notice = fmt.Sprintf("Task #%d completed: %s", t.ID, t.Title)
	w.load()
}

func (w *Week) executeRemove() {
	t, err := w.svc.Remove(w.ctx, w.caller, w.removeID)
	if err != nil {
		w.err = err
		return
	}
	w.notice = fmt.Sprintf("Task #%d removed: %s", w.removeID, t.Title)
	w.load()
}

func (w *Week) executeClear() {
	n, err := w.svc.Clear(w.ctx, w.caller)
	if err != nil {
		w.err = err
		return
	}
	w.notice = fmt.Sprintf("%d tasks removed", n)
	w.load()
}

// load rebuilds the view for the current offset.
func (w *Week) load() {
	v, err := w.svc.Week(w.ctx, w.offset)
	if err != nil {
		w.err = err
		return
	}
	w.err = nil
	w.view = v
	w.clampCursor()
}

func (w *Week) clampCursor() {
	if w.cursor >= len(w.view.Fields) {
		w.cursor = len(w.view.Fields) - 1
	}
	if w.cursor < 0 {
		w.cursor = 0
	}
}

func (w *Week) selected() (planning.Field, bool) {
	if w.cursor < 0 || w.cursor >= len(w.view.Fields) {
		return planning.Field{}, false
	}
	return w.view.Fields[w.cursor], true
}

// ReloadMsg is sent by the file watcher to trigger a refresh.
type ReloadMsg struct{}

// --- Styles ---

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("166")).
			Padding(0, 1)

	rowStyle       = lipgloss.NewStyle().Padding(0, 1)
	activeRowStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62"))

	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	errorStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2) //nolint:mnd // dialog padding
)

// --- View rendering ---

func (w *Week) viewWeek() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(w.view.Title))
	if w.offset != 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  (%+d)", w.offset)))
	}
	b.WriteString("\n\n")

	if w.view.Empty {
		b.WriteString(dimStyle.Render("  " + w.view.Description))
		b.WriteString("\n")
	}
	for i, f := range w.view.Fields {
		b.WriteString(w.renderRow(f, i == w.cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case w.err != nil:
		b.WriteString(errorStyle.Render(truncate("Error: "+w.err.Error(), w.width)))
		b.WriteString("\n")
	case w.notice != "":
		b.WriteString(noticeStyle.Render(truncate(w.notice, w.width)))
		b.WriteString("\n")
	}
	b.WriteString(w.help.View(w.keys))
	return b.String()
}

func (w *Week) renderRow(f planning.Field, active bool) string {
	status := pendingStyle.Render("○")
	if f.Done {
		status = doneStyle.Render("●")
	}
	line := truncate(f.Name, w.width-6) //nolint:mnd // marker, status and padding
	if f.Done {
		line += " " + dimStyle.Render(strings.TrimPrefix(f.Value, "✅ "))
	}
	if active {
		return activeRowStyle.Render("› " + status + " " + line)
	}
	return rowStyle.Render("  " + status + " " + line)
}

func (w *Week) viewRemoveConfirm() string {
	content := errorStyle.Render("Remove task?") + "\n\n" +
		"  " + w.removeTitle + "\n\n" +
		dimStyle.Render("Remaining tasks are renumbered.") + "\n" +
		dimStyle.Render("y:yes  n:no")
	return dialogStyle.Render(content)
}

func (w *Week) viewClearConfirm() string {
	content := errorStyle.Render("Remove ALL tasks?") + "\n\n" +
		fmt.Sprintf("  %d tasks will be deleted.", w.clearCount) + "\n\n" +
		dimStyle.Render("y:yes  n:no")
	return dialogStyle.Render(content)
}

func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	if maxLen < 4 { //nolint:mnd // minimum length for truncation
		maxLen = 4
	}
	if lipgloss.Width(s) <= maxLen {
		return s
	}
	// Slice by runes to avoid breaking multi-byte UTF-8 characters.
	runes := []rune(s)
	target := min(maxLen-3, len(runes)) //nolint:mnd // room for "..."
	for target > 0 && lipgloss.Width(string(runes[:target])) > maxLen-3 {
		target--
	}
	return string(runes[:target]) + "..."
}
