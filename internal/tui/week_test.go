package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twiced-technology-gmbh/weekplan/internal/calendar"
	"github.com/twiced-technology-gmbh/weekplan/internal/store"
	"github.com/twiced-technology-gmbh/weekplan/internal/task"
)

var local = calendar.Caller{ID: "local", Name: "tester", Admin: true}

func newModel(t *testing.T, tasks ...task.Task) (*Week, *store.TaskStore) {
	t.Helper()
	ts := store.NewTaskStore(store.NewMemoryDocument[[]task.Task]("tasks"))
	require.NoError(t, ts.SaveAll(context.Background(), tasks))
	ps := store.NewPointerStore(store.NewMemoryDocument[*store.Pointer]("channel"))

	svc := calendar.New(ts, ps, nil, calendar.WithLocation(time.UTC))
	svc.SetNow(func() time.Time { return time.Date(2024, time.March, 13, 8, 0, 0, 0, time.UTC) })

	w := NewWeek(context.Background(), svc, local)
	w.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return w, ts
}

func press(w *Week, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		w.Update(msg)
	}
}

func TestWeek_Navigation(t *testing.T) {
	w, _ := newModel(t,
		task.New(1, "now", "13/03/2024"),
		task.New(2, "next", "20/03/2024"),
	)
	require.Len(t, w.view.Fields, 1)
	assert.Contains(t, w.View(), "now")

	press(w, "l")
	assert.Equal(t, 1, w.offset)
	require.Len(t, w.view.Fields, 1)
	assert.Equal(t, 2, w.view.Fields[0].TaskID)

	press(w, "h", "h")
	assert.Equal(t, -1, w.offset)
	assert.True(t, w.view.Empty)
	assert.Contains(t, w.View(), "No tasks planned this week.")

	press(w, "t")
	assert.Equal(t, 0, w.offset)
}

func TestWeek_MarkDoneSelected(t *testing.T) {
	w, ts := newModel(t,
		task.New(1, "first", "12/03/2024"),
		task.New(2, "second", "13/03/2024"),
	)

	press(w, "down", "enter")
	assert.NoError(t, w.err)
	assert.Contains(t, w.notice, "Task #2 completed")

	tasks, _, err := ts.LoadAll(context.Background())
	require.NoError(t, err)
	assert.False(t, tasks[0].Done)
	assert.True(t, tasks[1].Done)
	assert.Equal(t, "tester", tasks[1].ValidatedBy)

	press(w, "x")
	assert.Error(t, w.err, "completing twice is rejected")
}

func TestWeek_MarkDoneOnCompletedRowShowsNotice(t *testing.T) {
	w, ts := newModel(t,
		task.Task{ID: 1, Title: "first", Date: "12/03/2024", Done: true, ValidatedBy: "Bob"},
	)

	press(w, "x")
	assert.NoError(t, w.err)
	assert.Equal(t, "Task #1 is already completed", w.notice)
	assert.Contains(t, w.View(), "Task #1 is already completed")

	tasks, _, err := ts.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bob", tasks[0].ValidatedBy)
}

func TestWeek_RemoveAsksFirst(t *testing.T) {
	w, ts := newModel(t,
		task.New(1, "a", "12/03/2024"),
		task.New(2, "b", "13/03/2024"),
	)

	press(w, "d")
	assert.Equal(t, modeConfirmRemove, w.mode)
	assert.Contains(t, w.View(), "Remove task?")

	press(w, "n")
	assert.Equal(t, modeWeek, w.mode)

	press(w, "d", "y")
	tasks, _, err := ts.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "b", tasks[0].Title)
	assert.Equal(t, 1, tasks[0].ID)
}

func TestWeek_ClearAll(t *testing.T) {
	w, ts := newModel(t, task.New(1, "a", "12/03/2024"), task.New(2, "b", "01/01/2030"))

	press(w, "C")
	assert.Equal(t, modeConfirmClear, w.mode)
	assert.Contains(t, w.View(), "2 tasks will be deleted.")

	press(w, "y")
	tasks, _, err := ts.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tasks)
	assert.True(t, w.view.Empty)
}

func TestWeek_ReloadMsgPicksUpExternalChanges(t *testing.T) {
	w, ts := newModel(t)
	assert.True(t, w.view.Empty)

	require.NoError(t, ts.SaveAll(context.Background(), []task.Task{task.New(1, "external", "14/03/2024")}))
	w.Update(ReloadMsg{})
	require.Len(t, w.view.Fields, 1)
}

func TestWeek_Quit(t *testing.T) {
	w, _ := newModel(t)
	_, cmd := w.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd...", truncate("abcdefghij", 7))
	assert.Equal(t, "anything", truncate("anything", 0))
}
