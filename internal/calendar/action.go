package calendar

import (
	"context"
	"fmt"

	"github.com/twiced-technology-gmbh/weekplan/internal/planning"
	"github.com/twiced-technology-gmbh/weekplan/internal/task"
)

// Outcome is the result of a triggered action. Exactly one of Task and
// View is set: Task for completions, View for week navigation.
type Outcome struct {
	Kind planning.ActionKind
	Task *task.Task
	View *planning.View
}

// HandleAction runs the operation behind a button. Navigation only builds
// a view and changes nothing; completion is open to any caller.
func (s *Service) HandleAction(ctx context.Context, c Caller, a planning.Action) (Outcome, error) {
	switch a.Kind {
	case planning.ActionMarkDone:
		t, err := s.complete(ctx, c, a)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Kind: a.Kind, Task: &t}, nil
	case planning.ActionPrevWeek, planning.ActionNextWeek:
		v, err := s.Week(ctx, a.Offset)
		if err != nil {
			return Outcome{}, err
		}
		return Outcome{Kind: a.Kind, View: &v}, nil
	default:
		return Outcome{}, fmt.Errorf("%w: %q", planning.ErrUnknownAction, a.Kind)
	}
}
