package board

import (
	"github.com/twiced-technology-gmbh/weekplan/internal/date"
	"github.com/twiced-technology-gmbh/weekplan/internal/task"
)

// WeekCount holds the task counts of one week window.
type WeekCount struct {
	Offset  int         `json:"offset"`
	Window  date.Window `json:"window"`
	Pending int         `json:"pending"`
	Done    int         `json:"done"`
}

// Overview is the aggregate calendar summary.
type Overview struct {
	Name      string      `json:"name"`
	Today     date.Date   `json:"today"`
	Total     int         `json:"total"`
	Pending   int         `json:"pending"`
	Done      int         `json:"done"`
	Overdue   int         `json:"overdue"`
	Undated   int         `json:"undated"`
	Weeks     []WeekCount `json:"weeks"`
	Completed []Completer `json:"completed_by,omitempty"`
}

// Completer counts the tasks one person completed.
type Completer struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// summaryWeeks is the number of weeks, starting with the current one,
// broken out in the overview.
const summaryWeeks = 3

// Summary computes the overview of tasks relative to today. A pending task
// dated before today is overdue; a task whose date does not parse is
// counted as undated and falls in no week.
func Summary(name string, tasks []task.Task, today date.Date) Overview {
	o := Overview{Name: name, Today: today, Total: len(tasks)}

	o.Weeks = make([]WeekCount, 0, summaryWeeks)
	for i := range summaryWeeks {
		o.Weeks = append(o.Weeks, WeekCount{Offset: i, Window: date.Week(today, i)})
	}

	byName := make(map[string]int)
	var order []string
	for _, t := range tasks {
		if t.Done {
			o.Done++
			if t.ValidatedBy != "" {
				if _, seen := byName[t.ValidatedBy]; !seen {
					order = append(order, t.ValidatedBy)
				}
				byName[t.ValidatedBy]++
			}
		} else {
			o.Pending++
		}

		d, err := t.Day()
		if err != nil {
			o.Undated++
			continue
		}
		if !t.Done && d.Before(today.Time) {
			o.Overdue++
		}
		for i := range o.Weeks {
			if !o.Weeks[i].Window.Contains(d) {
				continue
			}
			if t.Done {
				o.Weeks[i].Done++
			} else {
				o.Weeks[i].Pending++
			}
		}
	}

	for _, n := range order {
		o.Completed = append(o.Completed, Completer{Name: n, Count: byName[n]})
	}
	return o
}
