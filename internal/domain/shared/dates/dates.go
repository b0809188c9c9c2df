package dates

import (
	"errors"
	"time"
)

var ErrInvalidDay = errors.New("dates: day must be formatted as YYYY-MM-DD")

// Layout is the wire format for calendar days.
const Layout = "2006-01-02"

// Day is a single calendar day in YYYY-MM-DD form. The zero-padded string
// representation sorts lexicographically in temporal order, so Day values
// compare with plain string operators.
type Day string

// Parse validates a YYYY-MM-DD string and returns it as a Day.
func Parse(raw string) (Day, error) {
	if _, err := time.Parse(Layout, raw); err != nil {
		return "", ErrInvalidDay
	}
	return Day(raw), nil
}

// DayOf formats the calendar day of t using t's own location.
func DayOf(t time.Time) Day {
	return Day(t.Format(Layout))
}

func (d Day) IsZero() bool { return d == "" }

func (d Day) String() string { return string(d) }

// Time returns the day at midnight in loc. Invalid days report ok=false.
func (d Day) Time(loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(Layout, string(d), loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func (d Day) Before(other Day) bool { return d < other }

func (d Day) After(other Day) bool { return d > other }

// Within reports whether d falls inside [from, to] inclusive. A zero bound
// leaves that side unbounded.
func (d Day) Within(from, to Day) bool {
	if !from.IsZero() && d < from {
		return false
	}
	if !to.IsZero() && d > to {
		return false
	}
	return true
}

// Span enumerates every calendar day from start to end inclusive, each
// rendered from the local calendar fields of the walked instant. An end
// before start yields nothing.
func Span(start, end time.Time) []Day {
	if start.IsZero() || end.IsZero() || end.Before(start) {
		return nil
	}
	var out []Day
	loc := start.Location()
	y, m, d := start.Date()
	cur := time.Date(y, m, d, 0, 0, 0, 0, loc)
	last := DayOf(end)
	for {
		day := DayOf(cur)
		out = append(out, day)
		if day >= last {
			break
		}
		y, m, d = cur.Date()
		cur = time.Date(y, m, d+1, 0, 0, 0, 0, loc)
	}
	return out
}

// Count returns the inclusive number of calendar days from start to end.
// Invalid days or an end before start count as zero.
func Count(start, end Day) int {
	s, ok := start.Time(time.UTC)
	if !ok {
		return 0
	}
	e, ok := end.Time(time.UTC)
	if !ok || e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// Set is an unordered collection of days.
type Set map[Day]struct{}

func NewSet(days ...Day) Set {
	s := make(Set, len(days))
	for _, d := range days {
		s.Add(d)
	}
	return s
}

func (s Set) Add(d Day) {
	s[d] = struct{}{}
}

func (s Set) Has(d Day) bool {
	_, ok := s[d]
	return ok
}

func (s Set) Len() int { return len(s) }
