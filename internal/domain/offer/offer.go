package offer

import (
	"context"
	"errors"
	"strings"
	"time"

	"renteasy/internal/domain/shared/dates"
	"renteasy/internal/domain/shared/events"
)

var (
	ErrTitleRequired  = errors.New("offer: title is required")
	ErrDiscountRange  = errors.New("offer: discount must be between 1 and 100 percent")
	ErrNoItems        = errors.New("offer: at least one applicable item is required")
	ErrWindowInverted = errors.New("offer: valid-from must not be after valid-to")
	ErrOfferNotFound  = errors.New("offer: not found")
	ErrUnknownStatus  = errors.New("offer: unknown status")
)

type OfferID string

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// ParseStatus normalizes a wire status. A missing value means active, which
// matches how historically stored offers without the field behaved.
func ParseStatus(raw string) Status {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(StatusActive):
		return StatusActive
	default:
		return StatusInactive
	}
}

// Offer is a promotional discount over a set of catalog items, live inside
// an inclusive calendar-day window. A zero bound leaves that side open.
type Offer struct {
	ID              OfferID
	Title           string
	Description     string
	DiscountPercent int
	ValidFrom       dates.Day
	ValidTo         dates.Day
	ApplicableItems []string
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Version         int64
	events.Recorder
}

type Repository interface {
	ByID(ctx context.Context, id OfferID) (*Offer, error)
	Save(ctx context.Context, o *Offer) error
	List(ctx context.Context) ([]*Offer, error)
}

type CreateParams struct {
	ID              OfferID
	Title           string
	Description     string
	DiscountPercent int
	ValidFrom       dates.Day
	ValidTo         dates.Day
	ApplicableItems []string
	Now             time.Time
}

func New(params CreateParams) (*Offer, error) {
	if strings.TrimSpace(params.Title) == "" {
		return nil, ErrTitleRequired
	}
	if params.DiscountPercent < 1 || params.DiscountPercent > 100 {
		return nil, ErrDiscountRange
	}
	if len(params.ApplicableItems) == 0 {
		return nil, ErrNoItems
	}
	if !params.ValidFrom.IsZero() && !params.ValidTo.IsZero() && params.ValidFrom.After(params.ValidTo) {
		return nil, ErrWindowInverted
	}
	now := params.Now.UTC()
	o := &Offer{
		ID:              params.ID,
		Title:           strings.TrimSpace(params.Title),
		Description:     params.Description,
		DiscountPercent: params.DiscountPercent,
		ValidFrom:       params.ValidFrom,
		ValidTo:         params.ValidTo,
		ApplicableItems: append([]string(nil), params.ApplicableItems...),
		Status:          StatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	o.Record(OfferCreated{OfferID: o.ID, Title: o.Title, DiscountPercent: o.DiscountPercent, At: now})
	return o, nil
}

func (o *Offer) SetStatus(raw string, now time.Time) error {
	var next Status
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(StatusActive):
		next = StatusActive
	case string(StatusInactive):
		next = StatusInactive
	default:
		return ErrUnknownStatus
	}
	if o.Status == next {
		return nil
	}
	o.Status = next
	o.UpdatedAt = now.UTC()
	o.Record(OfferStatusChanged{OfferID: o.ID, Status: next, At: o.UpdatedAt})
	return nil
}

// AppliesTo reports whether the offer covers the given item.
func (o *Offer) AppliesTo(itemID string) bool {
	for _, id := range o.ApplicableItems {
		if id == itemID {
			return true
		}
	}
	return false
}

// LiveOn reports whether the offer is active and its validity window covers
// the given calendar day.
func (o *Offer) LiveOn(day dates.Day) bool {
	return o.Status == StatusActive && day.Within(o.ValidFrom, o.ValidTo)
}

// NormalizeBound turns a stored validity bound into a Day, treating
// malformed or empty input as unbounded rather than failing the record.
func NormalizeBound(raw string) dates.Day {
	day, err := dates.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return day
}

// NormalizeCreatedAt parses a stored creation timestamp, falling back to the
// epoch so a corrupt record simply loses precedence instead of aborting
// resolution.
func NormalizeCreatedAt(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	if t, err := time.Parse(dates.Layout, raw); err == nil {
		return t
	}
	return time.Unix(0, 0).UTC()
}
