// Package date provides a calendar Date that parses and prints as DD/MM/YYYY,
// and the Monday to Sunday week windows used to plan tasks.
package date

import (
	"encoding/json"
	"fmt"
	"time"
)

// Layout is the only accepted textual form of a Date.
const Layout = "02/01/2006"

const shortLayout = "02/01"

// Date represents a calendar date without time or timezone.
type Date struct {
	time.Time
}

// New creates a Date from year, month, day.
func New(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns today's date as seen in loc. A nil loc means local time.
func Today(loc *time.Location) Date {
	return Of(time.Now(), loc)
}

// Of returns the calendar date of t as seen in loc. A nil loc means local time.
func Of(t time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	return New(t.Year(), t.Month(), t.Day())
}

// Parse parses a DD/MM/YYYY string into a Date. Both day and month need
// two digits and the year four; out-of-range days such as 30/02 are rejected.
func Parse(s string) (Date, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected DD/MM/YYYY", s)
	}
	return Date{t}, nil
}

// Valid reports whether s is a well-formed DD/MM/YYYY date.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// String returns the date as DD/MM/YYYY.
func (d Date) String() string {
	return d.Format(Layout)
}

// Short returns the date as DD/MM.
func (d Date) Short() string {
	return d.Format(shortLayout)
}

// AddDays returns the date n days after d (before d when n is negative).
func (d Date) AddDays(n int) Date {
	return Date{d.AddDate(0, 0, n)}
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
