// Package planning turns a task list into the weekly planning view: the
// rich message content plus the buttons attached to it.
package planning

import (
	"fmt"

	"github.com/twiced-technology-gmbh/weekplan/internal/date"
	"github.com/twiced-technology-gmbh/weekplan/internal/task"
)

// Display strings.
const (
	emptyWeekText = "📭 No tasks planned this week."
	emptyListText = "📭 No tasks recorded."
	listTitle     = "📅 Full schedule"
	prevWeekLabel = "⬅️ Previous week"
	nextWeekLabel = "➡️ Next week"
)

// Embed colours.
const (
	WeekColor = 0xe67e22
	ListColor = 0x3498db
)

// View is a platform-neutral rendering of tasks.
type View struct {
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color"`
	Empty       bool         `json:"empty"`
	Fields      []Field      `json:"fields"`
	Actions     []Action     `json:"actions"`
	Window      *date.Window `json:"window,omitempty"`
	Offset      int          `json:"offset"`
}

// Field is one task line.
type Field struct {
	TaskID int    `json:"task_id"`
	Name   string `json:"name"`
	Value  string `json:"value"`
	Done   bool   `json:"done"`
}

// BuildWeek renders the tasks dated inside w. Tasks keep their store order;
// tasks whose date does not parse are left out.
func BuildWeek(tasks []task.Task, w date.Window, offset int) View {
	v := View{
		Title:  fmt.Sprintf("📅 Tasks for the week (%s → %s)", w.Start.Short(), w.End.Short()),
		Color:  WeekColor,
		Window: &w,
		Offset: offset,
	}

	for _, t := range tasks {
		d, err := t.Day()
		if err != nil || !w.Contains(d) {
			continue
		}
		v.Fields = append(v.Fields, fieldFor(t))
		if !t.Done {
			v.Actions = append(v.Actions, MarkDone(t))
		}
	}

	if len(v.Fields) == 0 {
		v.Empty = true
		v.Description = emptyWeekText
	}

	v.Actions = append(v.Actions,
		Action{Kind: ActionPrevWeek, Offset: offset - 1, Label: prevWeekLabel},
		Action{Kind: ActionNextWeek, Offset: offset + 1, Label: nextWeekLabel},
	)
	return v
}

// BuildList renders every task regardless of date, without actions.
func BuildList(tasks []task.Task) View {
	v := View{Title: listTitle, Color: ListColor}
	for _, t := range tasks {
		v.Fields = append(v.Fields, fieldFor(t))
	}
	if len(v.Fields) == 0 {
		v.Empty = true
		v.Description = emptyListText
	}
	return v
}

// PendingActions returns the mark-done actions of v.
func (v View) PendingActions() []Action {
	var out []Action
	for _, a := range v.Actions {
		if a.Kind == ActionMarkDone {
			out = append(out, a)
		}
	}
	return out
}

// NavigationActions returns the week navigation actions of v.
func (v View) NavigationActions() []Action {
	var out []Action
	for _, a := range v.Actions {
		if a.Kind != ActionMarkDone {
			out = append(out, a)
		}
	}
	return out
}

func fieldFor(t task.Task) Field {
	return Field{
		TaskID: t.ID,
		Name:   fmt.Sprintf("[ID %d] %s – %s", t.ID, t.Date, t.Title),
		Value:  t.Status(),
		Done:   t.Done,
	}
}
