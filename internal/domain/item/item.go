package item

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"renteasy/internal/domain/shared/dates"
	"renteasy/internal/domain/shared/events"
)

var (
	ErrNameRequired     = errors.New("item: name is required")
	ErrCategoryRequired = errors.New("item: category is required")
	ErrOwnerRequired    = errors.New("item: owner id is required")
	ErrNegativePrice    = errors.New("item: price per day must be non-negative")
	ErrRentalPeriod     = errors.New("item: minimum rental days must be <= maximum")
	ErrItemNotFound     = errors.New("item: not found")
)

type ItemID string
type OwnerID string

// Item is a rentable catalog entry. BlockedDates holds the calendar days the
// owner has manually excluded from booking; the original model called this
// field availableDates with inverted semantics, the name here is the honest
// one.
type Item struct {
	ID               ItemID
	Owner            OwnerID
	Name             string
	Description      string
	Category         string
	Subcategory      string
	PricePerDayCents int64
	ImageURL         string
	AdditionalImages []string
	Available        bool
	BlockedDates     []dates.Day
	OwnerPhone       string
	Location         string
	MinRentalDays    int
	MaxRentalDays    int
	Views            int64
	Boosted          bool
	BoostedUntil     time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Version          int64
	events.Recorder
}

type Repository interface {
	ByID(ctx context.Context, id ItemID) (*Item, error)
	Save(ctx context.Context, item *Item) error
	Search(ctx context.Context, params SearchParams) (SearchResult, error)
}

type CreateParams struct {
	ID               ItemID
	Owner            OwnerID
	Name             string
	Description      string
	Category         string
	Subcategory      string
	PricePerDayCents int64
	ImageURL         string
	AdditionalImages []string
	OwnerPhone       string
	Location         string
	MinRentalDays    int
	MaxRentalDays    int
	Now              time.Time
}

func New(params CreateParams) (*Item, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, ErrNameRequired
	}
	if strings.TrimSpace(params.Category) == "" {
		return nil, ErrCategoryRequired
	}
	if params.Owner == "" {
		return nil, ErrOwnerRequired
	}
	if params.PricePerDayCents < 0 {
		return nil, ErrNegativePrice
	}
	minDays := params.MinRentalDays
	if minDays <= 0 {
		minDays = 1
	}
	maxDays := params.MaxRentalDays
	if maxDays <= 0 {
		maxDays = 30
	}
	if minDays > maxDays {
		return nil, ErrRentalPeriod
	}
	now := params.Now.UTC()
	it := &Item{
		ID:               params.ID,
		Owner:            params.Owner,
		Name:             strings.TrimSpace(params.Name),
		Description:      params.Description,
		Category:         params.Category,
		Subcategory:      params.Subcategory,
		PricePerDayCents: params.PricePerDayCents,
		ImageURL:         params.ImageURL,
		AdditionalImages: append([]string(nil), params.AdditionalImages...),
		Available:        true,
		OwnerPhone:       params.OwnerPhone,
		Location:         params.Location,
		MinRentalDays:    minDays,
		MaxRentalDays:    maxDays,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	it.Record(ItemCreated{ItemID: it.ID, Owner: it.Owner, Name: it.Name, At: now})
	return it, nil
}

type UpdateParams struct {
	Name             string
	Description      string
	Category         string
	Subcategory      string
	PricePerDayCents int64
	ImageURL         string
	AdditionalImages []string
	OwnerPhone       string
	Location         string
	MinRentalDays    int
	MaxRentalDays    int
}

func (i *Item) Update(params UpdateParams, now time.Time) error {
	if strings.TrimSpace(params.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(params.Category) == "" {
		return ErrCategoryRequired
	}
	if params.PricePerDayCents < 0 {
		return ErrNegativePrice
	}
	if params.MinRentalDays > 0 && params.MaxRentalDays > 0 && params.MinRentalDays > params.MaxRentalDays {
		return ErrRentalPeriod
	}
	i.Name = strings.TrimSpace(params.Name)
	i.Description = params.Description
	i.Category = params.Category
	i.Subcategory = params.Subcategory
	i.PricePerDayCents = params.PricePerDayCents
	i.ImageURL = params.ImageURL
	i.AdditionalImages = append([]string(nil), params.AdditionalImages...)
	i.OwnerPhone = params.OwnerPhone
	i.Location = params.Location
	if params.MinRentalDays > 0 {
		i.MinRentalDays = params.MinRentalDays
	}
	if params.MaxRentalDays > 0 {
		i.MaxRentalDays = params.MaxRentalDays
	}
	i.UpdatedAt = now.UTC()
	i.Record(ItemUpdated{ItemID: i.ID, At: i.UpdatedAt})
	return nil
}

// SetBlockedDates replaces the owner-blocked day list. Inputs are validated,
// deduplicated and stored sorted; a single malformed entry rejects the whole
// command so owners see the mistake instead of silently losing a date.
func (i *Item) SetBlockedDates(raw []string, now time.Time) error {
	seen := make(dates.Set, len(raw))
	days := make([]dates.Day, 0, len(raw))
	for _, entry := range raw {
		day, err := dates.Parse(strings.TrimSpace(entry))
		if err != nil {
			return err
		}
		if seen.Has(day) {
			continue
		}
		seen.Add(day)
		days = append(days, day)
	}
	sort.Slice(days, func(a, b int) bool { return days[a] < days[b] })
	i.BlockedDates = days
	i.UpdatedAt = now.UTC()
	i.Record(BlockedDatesChanged{ItemID: i.ID, Count: len(days), At: i.UpdatedAt})
	return nil
}

func (i *Item) SetAvailability(available bool, now time.Time) {
	if i.Available == available {
		return
	}
	i.Available = available
	i.UpdatedAt = now.UTC()
	i.Record(AvailabilityToggled{ItemID: i.ID, Available: available, At: i.UpdatedAt})
}

func (i *Item) Boost(until time.Time, now time.Time) {
	i.Boosted = true
	i.BoostedUntil = until.UTC()
	i.UpdatedAt = now.UTC()
	i.Record(ItemBoosted{ItemID: i.ID, Until: i.BoostedUntil, At: i.UpdatedAt})
}

// BoostActive reports whether the boost window still covers now.
func (i *Item) BoostActive(now time.Time) bool {
	return i.Boosted && (i.BoostedUntil.IsZero() || now.Before(i.BoostedUntil))
}

func (i *Item) RecordView() {
	i.Views++
}

// BlockedDateStrings returns the owner-blocked days in wire form.
func (i *Item) BlockedDateStrings() []string {
	out := make([]string, 0, len(i.BlockedDates))
	for _, d := range i.BlockedDates {
		out = append(out, string(d))
	}
	return out
}
