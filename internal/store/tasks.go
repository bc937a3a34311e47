package store

import (
	"context"

	"github.com/twiced-technology-gmbh/weekplan/internal/task"
)

// TaskStore is the durable, ordered task list.
type TaskStore struct {
	doc Document[[]task.Task]
}

// NewTaskStore wraps a document holding the task list.
func NewTaskStore(doc Document[[]task.Task]) *TaskStore {
	return &TaskStore{doc: doc}
}

// LoadAll returns every stored task in store order, or an empty list when
// nothing was stored yet. Records breaking an invariant are kept and
// reported as warnings; a document that does not decode is an error.
func (s *TaskStore) LoadAll(ctx context.Context) ([]task.Task, []task.Warning, error) {
	tasks, _, err := s.doc.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return tasks, task.Check(tasks), nil
}

// SaveAll replaces the stored list with tasks.
func (s *TaskStore) SaveAll(ctx context.Context, tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	return s.doc.Save(ctx, tasks)
}
