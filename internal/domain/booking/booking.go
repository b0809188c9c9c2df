package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"renteasy/internal/domain/item"
	"renteasy/internal/domain/shared/dates"
	"renteasy/internal/domain/shared/events"
)

var (
	ErrRenterRequired  = errors.New("booking: renter id is required")
	ErrItemRequired    = errors.New("booking: item id is required")
	ErrInvalidRange    = errors.New("booking: end date must not precede start date")
	ErrStartInPast     = errors.New("booking: start date is in the past")
	ErrInvalidState    = errors.New("booking: invalid status transition")
	ErrBookingNotFound = errors.New("booking: not found")
)

type BookingID string

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// ParseStatus maps a wire value onto a known status, case-insensitively.
func ParseStatus(raw string) (Status, bool) {
	switch Status(strings.ToUpper(strings.TrimSpace(raw))) {
	case StatusPending:
		return StatusPending, true
	case StatusConfirmed:
		return StatusConfirmed, true
	case StatusCompleted:
		return StatusCompleted, true
	case StatusCancelled:
		return StatusCancelled, true
	}
	return "", false
}

// Booking reserves an item for an inclusive range of calendar days.
type Booking struct {
	ID                  BookingID
	ItemID              item.ItemID
	RenterID            string
	Start               dates.Day
	End                 dates.Day
	RentalDays          int
	TotalPriceCents     int64
	Status              Status
	DeliveryAddress     string
	SpecialInstructions string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Version             int64
	events.Recorder
}

type Repository interface {
	ByID(ctx context.Context, id BookingID) (*Booking, error)
	Save(ctx context.Context, b *Booking) error
	ListByItem(ctx context.Context, itemID item.ItemID) ([]*Booking, error)
	ListByRenter(ctx context.Context, renterID string) ([]*Booking, error)
}

type CreateParams struct {
	ID                  BookingID
	ItemID              item.ItemID
	RenterID            string
	Start               dates.Day
	End                 dates.Day
	TotalPriceCents     int64
	DeliveryAddress     string
	SpecialInstructions string
	Now                 time.Time
}

func New(params CreateParams) (*Booking, error) {
	if params.ItemID == "" {
		return nil, ErrItemRequired
	}
	if params.RenterID == "" {
		return nil, ErrRenterRequired
	}
	days := dates.Count(params.Start, params.End)
	if days == 0 {
		return nil, ErrInvalidRange
	}
	if params.Start.Before(dates.DayOf(params.Now)) {
		return nil, ErrStartInPast
	}
	now := params.Now.UTC()
	b := &Booking{
		ID:                  params.ID,
		ItemID:              params.ItemID,
		RenterID:            params.RenterID,
		Start:               params.Start,
		End:                 params.End,
		RentalDays:          days,
		TotalPriceCents:     params.TotalPriceCents,
		Status:              StatusPending,
		DeliveryAddress:     params.DeliveryAddress,
		SpecialInstructions: params.SpecialInstructions,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	b.Record(BookingRequested{BookingID: b.ID, ItemID: b.ItemID, RenterID: b.RenterID, Start: b.Start, End: b.End, TotalCents: b.TotalPriceCents, At: now})
	return b, nil
}

// Blocks reports whether this booking still consumes its calendar days.
func (b *Booking) Blocks() bool {
	return b.Status != StatusCancelled
}

func (b *Booking) Confirm(now time.Time) error {
	if b.Status != StatusPending {
		return ErrInvalidState
	}
	b.Status = StatusConfirmed
	b.UpdatedAt = now.UTC()
	b.Record(BookingConfirmed{BookingID: b.ID, ItemID: b.ItemID, RenterID: b.RenterID, Start: b.Start, End: b.End, At: b.UpdatedAt})
	return nil
}

func (b *Booking) Complete(now time.Time) error {
	if b.Status != StatusConfirmed {
		return ErrInvalidState
	}
	b.Status = StatusCompleted
	b.UpdatedAt = now.UTC()
	b.Record(BookingCompleted{BookingID: b.ID, ItemID: b.ItemID, At: b.UpdatedAt})
	return nil
}

func (b *Booking) Cancel(reason string, now time.Time) error {
	if b.Status != StatusPending && b.Status != StatusConfirmed {
		return ErrInvalidState
	}
	b.Status = StatusCancelled
	b.UpdatedAt = now.UTC()
	b.Record(BookingCancelled{BookingID: b.ID, ItemID: b.ItemID, Reason: reason, At: b.UpdatedAt})
	return nil
}
