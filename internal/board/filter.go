// Package board provides collection-level operations on task lists:
// filtering, ordering and the overview summary.
package board

import (
	"strings"

	"github.com/twiced-technology-gmbh/weekplan/internal/clierr"
	"github.com/twiced-technology-gmbh/weekplan/internal/date"
	"github.com/twiced-technology-gmbh/weekplan/internal/task"
)

// Status filter values.
const (
	StatusAny     = ""
	StatusPending = "pending"
	StatusDone    = "done"
)

// FilterOptions defines which tasks to include.
type FilterOptions struct {
	Status   string     // "", "pending" or "done"
	Search   string     // case-insensitive substring match on the title
	From     *date.Date // inclusive lower bound on the task date
	To       *date.Date // inclusive upper bound on the task date
	Assignee string     // only tasks completed by this name
}

// ValidateStatus checks a user-supplied status filter value.
func ValidateStatus(s string) error {
	switch s {
	case StatusAny, StatusPending, StatusDone:
		return nil
	}
	return clierr.Newf(clierr.InvalidInput, "invalid status %q: use pending or done", s).
		WithDetails(map[string]any{"status": s})
}

// Filter returns tasks matching all specified criteria (AND logic), keeping
// their original order. Tasks whose date does not parse never match a date
// bound.
func Filter(tasks []task.Task, opts FilterOptions) []task.Task {
	result := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if matchesFilter(t, opts) {
			result = append(result, t)
		}
	}
	return result
}

func matchesFilter(t task.Task, opts FilterOptions) bool {
	if !matchesStatus(t, opts.Status) {
		return false
	}
	if opts.Search != "" && !strings.Contains(strings.ToLower(t.Title), strings.ToLower(opts.Search)) {
		return false
	}
	if opts.Assignee != "" && !strings.EqualFold(t.ValidatedBy, opts.Assignee) {
		return false
	}
	return matchesRange(t, opts.From, opts.To)
}

func matchesStatus(t task.Task, status string) bool {
	switch status {
	case StatusPending:
		return !t.Done
	case StatusDone:
		return t.Done
	}
	return true
}

func matchesRange(t task.Task, from, to *date.Date) bool {
	if from == nil && to == nil {
		return true
	}
	d, err := t.Day()
	if err != nil {
		return false
	}
	if from != nil && d.Before(from.Time) {
		return false
	}
	if to != nil && d.After(to.Time) {
		return false
	}
	return true
}
