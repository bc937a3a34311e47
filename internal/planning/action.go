package planning

import (
	"errors"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/twiced-technology-gmbh/weekplan/internal/task"
)

// ActionKind identifies what an action does when triggered.
type ActionKind string

// Action kinds.
const (
	ActionMarkDone ActionKind = "done"
	ActionPrevWeek ActionKind = "prev"
	ActionNextWeek ActionKind = "next"
)

const idPrefix = "wp"

// ErrUnknownAction is returned by Decode for IDs not produced by Encode.
var ErrUnknownAction = errors.New("unknown action")

// Action describes a button: which operation it triggers and on what.
type Action struct {
	Kind   ActionKind `json:"kind"`
	TaskID int        `json:"task_id,omitempty"`
	Offset int        `json:"offset"`
	Label  string     `json:"label"`
	// Guard fingerprints the task's title at render time. IDs are
	// renumbered on removal, so a button rendered earlier may point at a
	// different task by the time it is clicked.
	Guard string `json:"guard,omitempty"`
}

// MarkDone returns the action completing t.
func MarkDone(t task.Task) Action {
	return Action{
		Kind:   ActionMarkDone,
		TaskID: t.ID,
		Label:  "✅ " + t.Title,
		Guard:  Fingerprint(t),
	}
}

// Fingerprint returns a short stable hash of a task's title.
func Fingerprint(t task.Task) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(t.Title))
	return strconv.FormatUint(uint64(h.Sum32()), 36) //nolint:mnd // base36 keeps custom IDs short
}

// Matches reports whether t is still the task the action was rendered for.
// Actions without a guard match any task.
func (a Action) Matches(t task.Task) bool {
	return a.Guard == "" || a.Guard == Fingerprint(t)
}

// Encode returns a compact identifier for a, suitable as a button custom ID.
// Labels are not encoded.
func (a Action) Encode() string {
	switch a.Kind {
	case ActionMarkDone:
		return fmt.Sprintf("%s:%s:%d:%s", idPrefix, a.Kind, a.TaskID, a.Guard)
	default:
		return fmt.Sprintf("%s:%s:%d", idPrefix, a.Kind, a.Offset)
	}
}

// Decode parses an identifier produced by Encode.
func Decode(id string) (Action, error) {
	parts := strings.Split(id, ":")
	if len(parts) < 3 || parts[0] != idPrefix { //nolint:mnd // prefix, kind, value
		return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, id)
	}

	n, err := strconv.Atoi(parts[2])
	if err != nil {
		return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, id)
	}

	switch kind := ActionKind(parts[1]); kind {
	case ActionMarkDone:
		a := Action{Kind: kind, TaskID: n}
		if len(parts) > 3 { //nolint:mnd // optional guard
			a.Guard = parts[3]
		}
		return a, nil
	case ActionPrevWeek, ActionNextWeek:
		return Action{Kind: kind, Offset: n}, nil
	default:
		return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, id)
	}
}
