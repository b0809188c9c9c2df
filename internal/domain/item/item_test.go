package item

import (
	"errors"
	"testing"
	"time"

	"renteasy/internal/domain/shared/dates"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func validParams() CreateParams {
	return CreateParams{
		ID:               "item-1",
		Owner:            "user-1",
		Name:             "Cordless drill",
		Category:         "tools",
		PricePerDayCents: 900,
		Now:              testNow,
	}
}

func TestNewDefaults(t *testing.T) {
	it, err := New(validParams())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !it.Available {
		t.Fatal("new items should start available")
	}
	if it.MinRentalDays != 1 || it.MaxRentalDays != 30 {
		t.Fatalf("rental period defaults = %d/%d, want 1/30", it.MinRentalDays, it.MaxRentalDays)
	}
	if len(it.BlockedDates) != 0 {
		t.Fatalf("new item has blocked dates: %v", it.BlockedDates)
	}
}

func TestNewValidation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*CreateParams)
		wantErr error
	}{
		{name: "missing name", mutate: func(p *CreateParams) { p.Name = "  " }, wantErr: ErrNameRequired},
		{name: "missing category", mutate: func(p *CreateParams) { p.Category = "" }, wantErr: ErrCategoryRequired},
		{name: "missing owner", mutate: func(p *CreateParams) { p.Owner = "" }, wantErr: ErrOwnerRequired},
		{name: "negative price", mutate: func(p *CreateParams) { p.PricePerDayCents = -1 }, wantErr: ErrNegativePrice},
		{name: "inverted rental period", mutate: func(p *CreateParams) { p.MinRentalDays, p.MaxRentalDays = 10, 5 }, wantErr: ErrRentalPeriod},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := validParams()
			tc.mutate(&params)
			if _, err := New(params); !errors.Is(err, tc.wantErr) {
				t.Fatalf("New() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestSetBlockedDates(t *testing.T) {
	it, _ := New(validParams())

	t.Run("dedupes and sorts", func(t *testing.T) {
		err := it.SetBlockedDates([]string{"2026-03-12", "2026-03-10", "2026-03-12", " 2026-03-11 "}, testNow)
		if err != nil {
			t.Fatalf("SetBlockedDates: %v", err)
		}
		want := []dates.Day{"2026-03-10", "2026-03-11", "2026-03-12"}
		if len(it.BlockedDates) != len(want) {
			t.Fatalf("BlockedDates = %v, want %v", it.BlockedDates, want)
		}
		for i := range want {
			if it.BlockedDates[i] != want[i] {
				t.Fatalf("BlockedDates = %v, want %v", it.BlockedDates, want)
			}
		}
	})

	t.Run("one malformed entry rejects the whole list", func(t *testing.T) {
		before := append([]dates.Day(nil), it.BlockedDates...)
		err := it.SetBlockedDates([]string{"2026-04-01", "not-a-date"}, testNow)
		if !errors.Is(err, dates.ErrInvalidDay) {
			t.Fatalf("SetBlockedDates error = %v, want ErrInvalidDay", err)
		}
		if len(it.BlockedDates) != len(before) {
			t.Fatal("failed update mutated the stored list")
		}
	})

	t.Run("empty list clears", func(t *testing.T) {
		if err := it.SetBlockedDates(nil, testNow); err != nil {
			t.Fatalf("SetBlockedDates(nil): %v", err)
		}
		if len(it.BlockedDates) != 0 {
			t.Fatalf("BlockedDates = %v, want empty", it.BlockedDates)
		}
	})
}

func TestSetAvailabilityRecordsOnlyChanges(t *testing.T) {
	it, _ := New(validParams())
	it.ClearEvents()

	it.SetAvailability(true, testNow) // no-op
	if len(it.PendingEvents()) != 0 {
		t.Fatal("no-op availability toggle recorded an event")
	}
	it.SetAvailability(false, testNow)
	evs := it.PendingEvents()
	if len(evs) != 1 || evs[0].EventName() != "item.availability_toggled" {
		t.Fatalf("events = %v, want one item.availability_toggled", evs)
	}
}

func TestBoostActive(t *testing.T) {
	it, _ := New(validParams())
	until := testNow.Add(48 * time.Hour)
	it.Boost(until, testNow)

	if !it.BoostActive(testNow.Add(time.Hour)) {
		t.Fatal("boost inactive inside its window")
	}
	if it.BoostActive(until.Add(time.Minute)) {
		t.Fatal("boost active past its window")
	}
}

func TestSearchParamsBoostedFilterHonorsExpiry(t *testing.T) {
	it, _ := New(validParams())
	it.Boost(testNow.Add(48*time.Hour), testNow)

	active := SearchParams{OnlyBoosted: true, Now: testNow.Add(time.Hour)}.Normalized()
	if !active.Matches(it) {
		t.Fatal("item with a live boost excluded from boosted results")
	}

	expired := SearchParams{OnlyBoosted: true, Now: testNow.Add(72 * time.Hour)}.Normalized()
	if expired.Matches(it) {
		t.Fatal("item with an expired boost still in boosted results")
	}
}

func TestSearchParamsNormalized(t *testing.T) {
	p := SearchParams{
		Category:      "  Tools ",
		Query:         " DRILL ",
		PriceMinCents: -5,
		PriceMaxCents: 100,
		Limit:         0,
		Offset:        -3,
		Sort:          "shiny",
	}
	n := p.Normalized()
	if n.Category != "tools" || n.Query != "drill" {
		t.Fatalf("text filters not normalized: %+v", n)
	}
	if n.PriceMinCents != 0 {
		t.Fatalf("PriceMinCents = %d, want 0", n.PriceMinCents)
	}
	if n.Limit != defaultSearchLimit || n.Offset != 0 {
		t.Fatalf("paging = %d/%d, want %d/0", n.Limit, n.Offset, defaultSearchLimit)
	}
	if n.Sort != SortByNewest {
		t.Fatalf("Sort = %q, want newest fallback", n.Sort)
	}

	capped := SearchParams{Limit: 10 * maxSearchLimit}.Normalized()
	if capped.Limit != maxSearchLimit {
		t.Fatalf("Limit = %d, want cap %d", capped.Limit, maxSearchLimit)
	}
}

func TestSearchParamsMatches(t *testing.T) {
	it, _ := New(CreateParams{
		ID:               "item-2",
		Owner:            "user-2",
		Name:             "Sony A7 III",
		Description:      "Full frame camera",
		Category:         "electronics",
		Subcategory:      "cameras",
		PricePerDayCents: 3500,
		Location:         "Madrid",
		Now:              testNow,
	})

	cases := []struct {
		name   string
		params SearchParams
		want   bool
	}{
		{name: "empty filter matches", params: SearchParams{}, want: true},
		{name: "category case-insensitive", params: SearchParams{Category: "Electronics"}, want: true},
		{name: "wrong category", params: SearchParams{Category: "tools"}, want: false},
		{name: "query hits description", params: SearchParams{Query: "full frame"}, want: true},
		{name: "query misses", params: SearchParams{Query: "drone"}, want: false},
		{name: "price band", params: SearchParams{PriceMinCents: 3000, PriceMaxCents: 4000}, want: true},
		{name: "too expensive", params: SearchParams{PriceMaxCents: 1000}, want: false},
		{name: "location substring", params: SearchParams{Location: "madrid"}, want: true},
		{name: "boosted only", params: SearchParams{OnlyBoosted: true}, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.params.Normalized().Matches(it); got != tc.want {
				t.Fatalf("Matches = %v, want %v", got, tc.want)
			}
		})
	}
}
