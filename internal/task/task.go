// Package task defines the planned task record and the operations that keep
// a task list consistent: lookup, validation, completion and renumbering.
package task

import (
	"github.com/twiced-technology-gmbh/weekplan/internal/date"
)

// Task is a single dated entry of the calendar.
type Task struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"` // DD/MM/YYYY, kept verbatim
	Done        bool   `json:"done"`
	ValidatedBy string `json:"validated_by,omitempty"`
}

// New creates a pending task with the given identity.
func New(id int, title, day string) Task {
	return Task{ID: id, Title: title, Date: day}
}

// Day parses the task's date. Records edited by hand may carry a date
// that does not parse; callers treat those as belonging to no week.
func (t Task) Day() (date.Date, error) {
	return date.Parse(t.Date)
}

// Status returns the human-readable completion status, annotated with the
// name of whoever completed the task when known.
func (t Task) Status() string {
	if !t.Done {
		return StatusPending
	}
	if t.ValidatedBy != "" {
		return StatusCompleted + " (by " + t.ValidatedBy + ")"
	}
	return StatusCompleted
}

// Status labels shown to users.
const (
	StatusPending   = "❌ Pending"
	StatusCompleted = "✅ Completed"
)
