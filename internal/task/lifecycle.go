package task

// MarkDone moves a pending task to done and records who completed it.
// There is no way back to pending.
func MarkDone(t *Task, by string) error {
	if t.Done {
		return AlreadyDone(*t)
	}
	t.Done = true
	t.ValidatedBy = by
	return nil
}

// Edit replaces the title and/or date of a task in either state.
// Nil fields are left untouched; the date must already be validated.
func Edit(t *Task, title, day *string) {
	if title != nil {
		t.Title = *title
	}
	if day != nil {
		t.Date = *day
	}
}
