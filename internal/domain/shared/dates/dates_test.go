package dates

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "valid", raw: "2026-03-10"},
		{name: "month boundary", raw: "2026-12-31"},
		{name: "empty", raw: "", wantErr: true},
		{name: "not a date", raw: "not-a-date", wantErr: true},
		{name: "wrong layout", raw: "10-03-2026", wantErr: true},
		{name: "trailing time", raw: "2026-03-10T00:00:00Z", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			day, err := Parse(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got %q", tc.raw, day)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tc.raw, err)
			}
			if string(day) != tc.raw {
				t.Fatalf("Parse(%q) = %q, want identity", tc.raw, day)
			}
		})
	}
}

func TestSpanInclusive(t *testing.T) {
	start := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
	end := time.Date(2026, 3, 17, 9, 0, 0, 0, time.UTC)
	got := Span(start, end)
	want := []Day{"2026-03-15", "2026-03-16", "2026-03-17"}
	if len(got) != len(want) {
		t.Fatalf("Span returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Span[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSpanCrossesMonth(t *testing.T) {
	start := time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)
	got := Span(start, end)
	want := []Day{"2026-01-30", "2026-01-31", "2026-02-01", "2026-02-02"}
	if len(got) != len(want) {
		t.Fatalf("Span returned %d days %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Span[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSpanInvertedYieldsNothing(t *testing.T) {
	start := time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	if got := Span(start, end); got != nil {
		t.Fatalf("Span with end before start = %v, want nil", got)
	}
}

func TestSpanSingleDay(t *testing.T) {
	day := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	got := Span(day, day)
	if len(got) != 1 || got[0] != "2026-03-15" {
		t.Fatalf("Span over one day = %v", got)
	}
}

func TestCount(t *testing.T) {
	cases := []struct {
		name  string
		start Day
		end   Day
		want  int
	}{
		{name: "single day", start: "2026-03-15", end: "2026-03-15", want: 1},
		{name: "three days", start: "2026-03-15", end: "2026-03-17", want: 3},
		{name: "inverted", start: "2026-03-17", end: "2026-03-15", want: 0},
		{name: "malformed start", start: "garbage", end: "2026-03-15", want: 0},
		{name: "malformed end", start: "2026-03-15", end: "garbage", want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Count(tc.start, tc.end); got != tc.want {
				t.Fatalf("Count(%q, %q) = %d, want %d", tc.start, tc.end, got, tc.want)
			}
		})
	}
}

func TestWithin(t *testing.T) {
	cases := []struct {
		name string
		day  Day
		from Day
		to   Day
		want bool
	}{
		{name: "inside", day: "2026-01-15", from: "2026-01-01", to: "2026-01-31", want: true},
		{name: "on lower bound", day: "2026-01-01", from: "2026-01-01", to: "2026-01-31", want: true},
		{name: "on upper bound", day: "2026-01-31", from: "2026-01-01", to: "2026-01-31", want: true},
		{name: "before window", day: "2025-12-31", from: "2026-01-01", to: "2026-01-31", want: false},
		{name: "after window", day: "2026-02-01", from: "2026-01-01", to: "2026-01-31", want: false},
		{name: "open lower", day: "1999-01-01", from: "", to: "2026-01-31", want: true},
		{name: "open upper", day: "2999-01-01", from: "2026-01-01", to: "", want: true},
		{name: "fully open", day: "2026-06-01", from: "", to: "", want: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.day.Within(tc.from, tc.to); got != tc.want {
				t.Fatalf("%q.Within(%q, %q) = %v, want %v", tc.day, tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestDayOfUsesLocalCalendarFields(t *testing.T) {
	loc := time.FixedZone("UTC+13", 13*3600)
	// 01:30 on the 16th in UTC+13 is still the 15th in UTC; the formatted day
	// must follow the instant's own zone, not UTC.
	local := time.Date(2026, 3, 16, 1, 30, 0, 0, loc)
	if got := DayOf(local); got != "2026-03-16" {
		t.Fatalf("DayOf = %q, want 2026-03-16", got)
	}
	if got := DayOf(local.UTC()); got != "2026-03-15" {
		t.Fatalf("DayOf(UTC view) = %q, want 2026-03-15", got)
	}
}

func TestSetOperations(t *testing.T) {
	s := NewSet("2026-03-10", "2026-03-10", "2026-03-11")
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	if !s.Has("2026-03-10") || s.Has("2026-03-12") {
		t.Fatal("Has answered wrong membership")
	}
}
