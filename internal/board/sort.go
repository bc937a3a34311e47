package board

import (
	"sort"
	"strings"

	"github.com/twiced-technology-gmbh/weekplan/internal/clierr"
	"github.com/twiced-technology-gmbh/weekplan/internal/task"
)

// Sort fields.
const (
	FieldID    = "id"
	FieldDate  = "date"
	FieldTitle = "title"
)

// ValidSortFields returns the fields accepted by Sort.
func ValidSortFields() []string {
	return []string{FieldID, FieldDate, FieldTitle}
}

// ValidateSortField checks a user-supplied sort field.
func ValidateSortField(field string) error {
	for _, f := range ValidSortFields() {
		if f == field {
			return nil
		}
	}
	return clierr.Newf(clierr.InvalidInput, "invalid sort field %q: use %s", field,
		strings.Join(ValidSortFields(), ", ")).
		WithDetails(map[string]any{"field": field})
}

// Sort orders tasks in place by the given field. Ties keep store order.
// Sorting by date puts unparsable dates last.
func Sort(tasks []task.Task, field string, reverse bool) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if reverse {
			return compareTasks(tasks[j], tasks[i], field)
		}
		return compareTasks(tasks[i], tasks[j], field)
	})
}

func compareTasks(a, b task.Task, field string) bool {
	switch field {
	case FieldDate:
		da, errA := a.Day()
		db, errB := b.Day()
		switch {
		case errA != nil:
			return false
		case errB != nil:
			return true
		}
		return da.Before(db.Time)
	case FieldTitle:
		return strings.ToLower(a.Title) < strings.ToLower(b.Title)
	default:
		return a.ID < b.ID
	}
}
