package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/twiced-technology-gmbh/weekplan/internal/board"
)

// SummaryTable renders the calendar overview.
func SummaryTable(w io.Writer, o board.Overview) {
	name := o.Name
	if name == "" {
		name = "weekplan"
	}
	fmt.Fprintln(w, titleStyle.Render(name)+dimStyle.Render(" · today "+o.Today.String()))
	printField(w, "Total", strconv.Itoa(o.Total))
	printField(w, "Pending", pendingStyle.Render(strconv.Itoa(o.Pending)))
	printField(w, "Done", doneStyle.Render(strconv.Itoa(o.Done)))
	if o.Overdue > 0 {
		printField(w, "Overdue", warnStyle.Render(strconv.Itoa(o.Overdue)))
	}
	if o.Undated > 0 {
		printField(w, "Undated", warnStyle.Render(strconv.Itoa(o.Undated)))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render(padRight("WEEK", 26)+padRight("PENDING", 9)+"DONE")) //nolint:mnd // column widths
	for _, wk := range o.Weeks {
		label := fmt.Sprintf("%s – %s", wk.Window.Start.Short(), wk.Window.End.Short())
		if wk.Offset == 0 {
			label += " (now)"
		}
		fmt.Fprintln(w, padRight(label, 26)+padRight(strconv.Itoa(wk.Pending), 9)+strconv.Itoa(wk.Done)) //nolint:mnd // column widths
	}

	if len(o.Completed) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, headerStyle.Render("COMPLETED BY"))
		for _, c := range o.Completed {
			printField(w, c.Name, strconv.Itoa(c.Count))
		}
	}
}

// SummaryCompact renders the overview on a single line.
func SummaryCompact(w io.Writer, o board.Overview) {
	fmt.Fprintf(w, "total:%d pending:%d done:%d overdue:%d undated:%d",
		o.Total, o.Pending, o.Done, o.Overdue, o.Undated)
	for _, wk := range o.Weeks {
		fmt.Fprintf(w, " w%+d:%d/%d", wk.Offset, wk.Pending, wk.Done)
	}
	fmt.Fprintln(w)
}
