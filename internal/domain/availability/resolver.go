package availability

import (
	"sort"
	"time"

	"renteasy/internal/domain/shared/dates"
)

// Status classifies a single calendar day for one item.
type Status string

const (
	StatusBookable     Status = "BOOKABLE"
	StatusPast         Status = "PAST"
	StatusOwnerBlocked Status = "OWNER_BLOCKED"
	StatusBooked       Status = "BOOKED"
)

// Window is one booking's contribution to an item's schedule. Cancelled
// windows never block.
type Window struct {
	Start     time.Time
	End       time.Time
	Cancelled bool
}

// Schedule is the resolved booking calendar for one item: the owner-blocked
// day set merged with the days consumed by live bookings, anchored at a
// reference day. It is a pure value; resolving the same inputs always yields
// the same schedule.
type Schedule struct {
	today        dates.Day
	ownerBlocked dates.Set
	booked       dates.Set
}

// Resolve computes the schedule from an item's owner-blocked date strings
// and its bookings. Blocked entries are taken verbatim when well-formed;
// malformed entries are skipped so one bad record only degrades itself.
// Booking windows are expanded day by day, start through end inclusive,
// using the local calendar fields of each instant; a window whose end
// precedes its start expands to nothing.
func Resolve(blockedDates []string, bookings []Window, now time.Time) Schedule {
	s := Schedule{
		today:        dates.DayOf(now),
		ownerBlocked: make(dates.Set, len(blockedDates)),
		booked:       make(dates.Set),
	}
	for _, raw := range blockedDates {
		day, err := dates.Parse(raw)
		if err != nil {
			continue
		}
		s.ownerBlocked.Add(day)
	}
	for _, w := range bookings {
		if w.Cancelled {
			continue
		}
		for _, day := range dates.Span(w.Start, w.End) {
			s.booked.Add(day)
		}
	}
	return s
}

// Today returns the reference day the schedule was resolved against.
func (s Schedule) Today() dates.Day { return s.today }

// Classify places a candidate day into exactly one bucket. Days before the
// reference day are past regardless of set membership; owner blocks win over
// booked when a day sits in both sets.
func (s Schedule) Classify(d dates.Day) Status {
	switch {
	case d.Before(s.today):
		return StatusPast
	case s.ownerBlocked.Has(d):
		return StatusOwnerBlocked
	case s.booked.Has(d):
		return StatusBooked
	default:
		return StatusBookable
	}
}

// Disabled reports whether d cannot be booked.
func (s Schedule) Disabled(d dates.Day) bool {
	return s.Classify(d) != StatusBookable
}

// CanReserve reports whether every day from start to end inclusive is
// bookable. An invalid range reserves nothing.
func (s Schedule) CanReserve(start, end dates.Day) bool {
	if dates.Count(start, end) == 0 {
		return false
	}
	from, _ := start.Time(time.UTC)
	to, _ := end.Time(time.UTC)
	for _, day := range dates.Span(from, to) {
		if s.Disabled(day) {
			return false
		}
	}
	return true
}

// OwnerBlockedCount is the number of distinct owner-blocked days.
func (s Schedule) OwnerBlockedCount() int { return s.ownerBlocked.Len() }

// BookedCount is the number of distinct booked days. A day that is both
// owner-blocked and booked shows up in both counters; the display line this
// feeds tolerates that.
func (s Schedule) BookedCount() int { return s.booked.Len() }

// OwnerBlockedDays lists the owner-blocked days in ascending order.
func (s Schedule) OwnerBlockedDays() []dates.Day {
	return sortedDays(s.ownerBlocked)
}

// BookedDays lists the booked days in ascending order.
func (s Schedule) BookedDays() []dates.Day {
	return sortedDays(s.booked)
}

func sortedDays(set dates.Set) []dates.Day {
	out := make([]dates.Day, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	sort.Slice(out, func(a, b int) bool { return out[a] < out[b] })
	return out
}
