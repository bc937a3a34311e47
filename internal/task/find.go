package task

import (
	"strconv"
	"strings"
)

// IndexOf returns the position of the task with the given ID, or -1.
func IndexOf(tasks []Task, id int) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Find returns a pointer into tasks for the given ID so callers can mutate
// it in place, or a TASK_NOT_FOUND error.
func Find(tasks []Task, id int) (*Task, error) {
	i := IndexOf(tasks, id)
	if i < 0 {
		return nil, NotFound(id)
	}
	return &tasks[i], nil
}

// NextID returns the ID a newly added task receives.
func NextID(tasks []Task) int {
	return len(tasks) + 1
}

// Remove deletes the task with the given ID and renumbers the survivors so
// IDs stay a dense 1..N sequence in their original relative order.
// IDs shown anywhere before the call may now refer to different tasks.
func Remove(tasks []Task, id int) ([]Task, Task, error) {
	i := IndexOf(tasks, id)
	if i < 0 {
		return tasks, Task{}, NotFound(id)
	}
	removed := tasks[i]
	out := make([]Task, 0, len(tasks)-1)
	out = append(out, tasks[:i]...)
	out = append(out, tasks[i+1:]...)
	Renumber(out)
	return out, removed, nil
}

// Renumber assigns IDs 1..N in slice order.
func Renumber(tasks []Task) {
	for i := range tasks {
		tasks[i].ID = i + 1
	}
}

// ParseID parses a user-supplied task ID such as "3" or "#3".
func ParseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if err != nil || id < 1 {
		return 0, InvalidID(s)
	}
	return id, nil
}
