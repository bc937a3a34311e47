package date

const daysPerWeek = 7

// Window is an inclusive Monday to Sunday range of dates.
type Window struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

// Week returns the window containing ref shifted by offset whole weeks.
// Offset 0 is the week of ref; any offset is valid.
func Week(ref Date, offset int) Window {
	shifted := ref.AddDays(daysPerWeek * offset)
	// time.Weekday counts from Sunday; shift so Monday is 0.
	sinceMonday := (int(shifted.Weekday()) + 6) % daysPerWeek //nolint:mnd // Sunday -> 6
	start := shifted.AddDays(-sinceMonday)
	return Window{Start: start, End: start.AddDays(daysPerWeek - 1)}
}

// Contains reports whether d falls within the window, boundaries included.
func (w Window) Contains(d Date) bool {
	return !d.Before(w.Start.Time) && !d.After(w.End.Time)
}

// Days returns the seven dates of the window in order.
func (w Window) Days() []Date {
	days := make([]Date, 0, daysPerWeek)
	for i := range daysPerWeek {
		days = append(days, w.Start.AddDays(i))
	}
	return days
}
