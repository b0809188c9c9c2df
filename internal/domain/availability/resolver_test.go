package availability

import (
	"testing"
	"time"

	"renteasy/internal/domain/shared/dates"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveClassifiesDays(t *testing.T) {
	now := day(2026, 3, 1)
	schedule := Resolve(
		[]string{"2026-03-10"},
		[]Window{{Start: day(2026, 3, 15), End: day(2026, 3, 17)}},
		now,
	)

	cases := []struct {
		name string
		day  dates.Day
		want Status
	}{
		{name: "owner blocked", day: "2026-03-10", want: StatusOwnerBlocked},
		{name: "booked middle of window", day: "2026-03-16", want: StatusBooked},
		{name: "booked window start", day: "2026-03-15", want: StatusBooked},
		{name: "booked window end inclusive", day: "2026-03-17", want: StatusBooked},
		{name: "free day", day: "2026-03-20", want: StatusBookable},
		{name: "past day", day: "2026-01-01", want: StatusPast},
		{name: "today is bookable", day: "2026-03-01", want: StatusBookable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := schedule.Classify(tc.day); got != tc.want {
				t.Fatalf("Classify(%q) = %q, want %q", tc.day, got, tc.want)
			}
			wantDisabled := tc.want != StatusBookable
			if got := schedule.Disabled(tc.day); got != wantDisabled {
				t.Fatalf("Disabled(%q) = %v, want %v", tc.day, got, wantDisabled)
			}
		})
	}
}

func TestResolvePastWinsOverSetMembership(t *testing.T) {
	now := day(2026, 6, 1)
	schedule := Resolve(
		[]string{"2026-05-10"},
		[]Window{{Start: day(2026, 5, 20), End: day(2026, 5, 21)}},
		now,
	)
	if got := schedule.Classify("2026-05-10"); got != StatusPast {
		t.Fatalf("blocked day behind today = %q, want PAST", got)
	}
	if got := schedule.Classify("2026-05-20"); got != StatusPast {
		t.Fatalf("booked day behind today = %q, want PAST", got)
	}
}

func TestResolveOwnerBlockWinsOverBooked(t *testing.T) {
	now := day(2026, 3, 1)
	schedule := Resolve(
		[]string{"2026-03-16"},
		[]Window{{Start: day(2026, 3, 15), End: day(2026, 3, 17)}},
		now,
	)
	if got := schedule.Classify("2026-03-16"); got != StatusOwnerBlocked {
		t.Fatalf("day in both sets = %q, want OWNER_BLOCKED", got)
	}
	// The day still shows up in both counters.
	if schedule.OwnerBlockedCount() != 1 || schedule.BookedCount() != 3 {
		t.Fatalf("counts = %d/%d, want 1/3", schedule.OwnerBlockedCount(), schedule.BookedCount())
	}
}

func TestResolveInvertedWindowContributesNothing(t *testing.T) {
	schedule := Resolve(nil,
		[]Window{{Start: day(2026, 3, 17), End: day(2026, 3, 15)}},
		day(2026, 3, 1),
	)
	if schedule.BookedCount() != 0 {
		t.Fatalf("inverted window booked %d days, want 0", schedule.BookedCount())
	}
}

func TestResolveSkipsCancelledWindows(t *testing.T) {
	schedule := Resolve(nil,
		[]Window{
			{Start: day(2026, 3, 15), End: day(2026, 3, 17), Cancelled: true},
			{Start: day(2026, 3, 20), End: day(2026, 3, 20)},
		},
		day(2026, 3, 1),
	)
	if schedule.Classify("2026-03-16") != StatusBookable {
		t.Fatal("cancelled booking still blocks its days")
	}
	if schedule.Classify("2026-03-20") != StatusBooked {
		t.Fatal("live booking did not block its day")
	}
}

func TestResolveSkipsMalformedBlockedEntries(t *testing.T) {
	schedule := Resolve(
		[]string{"garbage", "", "2026-03-10", "03/12/2026"},
		nil,
		day(2026, 3, 1),
	)
	if schedule.OwnerBlockedCount() != 1 {
		t.Fatalf("OwnerBlockedCount = %d, want 1", schedule.OwnerBlockedCount())
	}
	if schedule.Classify("2026-03-10") != StatusOwnerBlocked {
		t.Fatal("well-formed entry lost alongside the malformed ones")
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	blocked := []string{"2026-03-10", "2026-03-11"}
	bookings := []Window{{Start: day(2026, 3, 15), End: day(2026, 3, 18)}}
	now := day(2026, 3, 5)

	a := Resolve(blocked, bookings, now)
	b := Resolve(blocked, bookings, now)
	probe := []dates.Day{"2026-03-04", "2026-03-10", "2026-03-16", "2026-03-25"}
	for _, d := range probe {
		if a.Classify(d) != b.Classify(d) {
			t.Fatalf("resolving the same inputs twice disagreed on %q", d)
		}
	}
}

func TestCanReserve(t *testing.T) {
	now := day(2026, 3, 1)
	schedule := Resolve(
		[]string{"2026-03-10"},
		[]Window{{Start: day(2026, 3, 15), End: day(2026, 3, 17)}},
		now,
	)

	cases := []struct {
		name  string
		start dates.Day
		end   dates.Day
		want  bool
	}{
		{name: "free stretch", start: "2026-03-20", end: "2026-03-24", want: true},
		{name: "touches owner block", start: "2026-03-09", end: "2026-03-11", want: false},
		{name: "touches booking edge", start: "2026-03-17", end: "2026-03-19", want: false},
		{name: "ends right before booking", start: "2026-03-12", end: "2026-03-14", want: true},
		{name: "inverted range", start: "2026-03-21", end: "2026-03-20", want: false},
		{name: "past range", start: "2026-02-01", end: "2026-02-02", want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := schedule.CanReserve(tc.start, tc.end); got != tc.want {
				t.Fatalf("CanReserve(%q, %q) = %v, want %v", tc.start, tc.end, got, tc.want)
			}
		})
	}
}

func TestDaysListingsAreSorted(t *testing.T) {
	schedule := Resolve(
		[]string{"2026-03-12", "2026-03-10", "2026-03-11"},
		[]Window{{Start: day(2026, 3, 20), End: day(2026, 3, 22)}},
		day(2026, 3, 1),
	)
	blocked := schedule.OwnerBlockedDays()
	for i := 1; i < len(blocked); i++ {
		if blocked[i-1] >= blocked[i] {
			t.Fatalf("OwnerBlockedDays not ascending: %v", blocked)
		}
	}
	booked := schedule.BookedDays()
	for i := 1; i < len(booked); i++ {
		if booked[i-1] >= booked[i] {
			t.Fatalf("BookedDays not ascending: %v", booked)
		}
	}
}
