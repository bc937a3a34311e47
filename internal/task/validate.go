package task

import (
	"fmt"
	"strings"

	"github.com/twiced-technology-gmbh/weekplan/internal/clierr"
	"github.com/twiced-technology-gmbh/weekplan/internal/date"
)

// ValidateDate checks that input is a strict DD/MM/YYYY date.
func ValidateDate(field, input string) error {
	if _, err := date.Parse(input); err != nil {
		return clierr.Newf(clierr.InvalidDate, "invalid %s: use DD/MM/YYYY", field).
			WithDetails(map[string]any{
				"field": field,
				"input": input,
			})
	}
	return nil
}

// ValidateTitle checks that a title is not blank.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return clierr.New(clierr.InvalidInput, "title must not be empty")
	}
	return nil
}

// NotFound returns a CLIError for a missing task.
func NotFound(id int) *clierr.Error {
	return clierr.Newf(clierr.TaskNotFound, "task #%d not found", id).
		WithDetails(map[string]any{"id": id})
}

// InvalidID returns a CLIError for unparsable task ID input.
func InvalidID(input string) *clierr.Error {
	return clierr.Newf(clierr.InvalidTaskID, "invalid task ID %q", input).
		WithDetails(map[string]any{"input": input})
}

// AlreadyDone returns a CLIError for completing a completed task.
func AlreadyDone(t Task) *clierr.Error {
	return clierr.Newf(clierr.StatusConflict, "task #%d is already completed", t.ID).
		WithDetails(map[string]any{
			"id":           t.ID,
			"validated_by": t.ValidatedBy,
		})
}

// Warning describes a stored record that loaded but breaks an invariant.
type Warning struct {
	ID     int    `json:"id"`
	Reason string `json:"reason"`
}

func (w Warning) String() string {
	return fmt.Sprintf("task #%d: %s", w.ID, w.Reason)
}

// Check inspects a loaded task list and reports records that break the
// model's invariants. Records are never dropped: a task with a bad date
// still lists, it just falls in no week.
func Check(tasks []Task) []Warning {
	var warnings []Warning
	seen := make(map[int]bool, len(tasks))
	for _, t := range tasks {
		if t.ID < 1 {
			warnings = append(warnings, Warning{ID: t.ID, Reason: "id must be >= 1"})
		} else if seen[t.ID] {
			warnings = append(warnings, Warning{ID: t.ID, Reason: "duplicate id"})
		}
		seen[t.ID] = true
		if strings.TrimSpace(t.Title) == "" {
			warnings = append(warnings, Warning{ID: t.ID, Reason: "empty title"})
		}
		if !date.Valid(t.Date) {
			warnings = append(warnings, Warning{ID: t.ID, Reason: fmt.Sprintf("unparsable date %q", t.Date)})
		}
		if t.ValidatedBy != "" && !t.Done {
			warnings = append(warnings, Warning{ID: t.ID, Reason: "validated_by set on a pending task"})
		}
	}
	return warnings
}
