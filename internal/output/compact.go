package output

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/twiced-technology-gmbh/weekplan/internal/planning"
	"github.com/twiced-technology-gmbh/weekplan/internal/task"
)

// TaskCompact renders tasks in one-line-per-record compact format.
func TaskCompact(w io.Writer, tasks []task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(os.Stderr, "No tasks recorded.")
		return
	}
	for _, t := range tasks {
		fmt.Fprintln(w, formatTaskLine(t))
	}
}

// WeekCompact renders a week view as a range line followed by task lines.
func WeekCompact(w io.Writer, v planning.View, tasks []task.Task) {
	if v.Window != nil {
		fmt.Fprintf(w, "week %s..%s offset:%d\n", v.Window.Start, v.Window.End, v.Offset)
	}
	for _, f := range v.Fields {
		if i := task.IndexOf(tasks, f.TaskID); i >= 0 {
			fmt.Fprintln(w, "  "+formatTaskLine(tasks[i]))
		}
	}
}

// formatTaskLine builds the one-line representation of a task.
func formatTaskLine(t task.Task) string {
	status := "pending"
	if t.Done {
		status = "done"
	}
	line := "#" + strconv.Itoa(t.ID) + " [" + status + "] " + t.Date + " " + t.Title
	if t.ValidatedBy != "" {
		line += " by:" + t.ValidatedBy
	}
	return line
}
