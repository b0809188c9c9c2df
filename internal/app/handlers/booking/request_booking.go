package booking

import (
	"context"
	"errors"
	"time"

	"renteasy/internal/app/commands"
	"renteasy/internal/app/handlers/support"
	"renteasy/internal/app/middleware"
	"renteasy/internal/app/outbox"
	"renteasy/internal/app/uow"
	"renteasy/internal/domain/availability"
	domainbooking "renteasy/internal/domain/booking"
	domainitem "renteasy/internal/domain/item"
	domainoffer "renteasy/internal/domain/offer"
	"renteasy/internal/domain/shared/dates"
)

const requestBookingKey = "booking.request"

var (
	ErrItemUnavailable = errors.New("booking: item is not available for booking")
	ErrDatesConflict   = errors.New("booking: requested dates are blocked or already booked")
)

type RequestBookingCommand struct {
	CommandID           string
	ItemID              string
	RenterID            string
	StartDate           string
	EndDate             string
	DeliveryAddress     string
	SpecialInstructions string
	IdempotencyKeyV     string
}

func (c RequestBookingCommand) Key() string { return requestBookingKey }

func (c RequestBookingCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c RequestBookingCommand) ResultPrototype() any { return &RequestBookingResult{} }

type RequestBookingResult struct {
	BookingID       string `json:"booking_id"`
	RentalDays      int    `json:"rental_days"`
	TotalPriceCents int64  `json:"total_price_cents"`
	AppliedOfferID  string `json:"applied_offer_id,omitempty"`
}

type RequestBookingHandler struct {
	UoWFactory uow.Factory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Now        func() time.Time
}

func (h *RequestBookingHandler) Handle(ctx context.Context, cmd RequestBookingCommand) (*RequestBookingResult, error) {
	unit, ctx, done, err := support.BeginUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}

	start, err := dates.Parse(cmd.StartDate)
	if err != nil {
		return nil, done(err)
	}
	end, err := dates.Parse(cmd.EndDate)
	if err != nil {
		return nil, done(err)
	}
	now := h.now()

	it, err := unit.Items().ByID(ctx, domainitem.ItemID(cmd.ItemID))
	if err != nil {
		return nil, done(err)
	}
	if !it.Available {
		return nil, done(ErrItemUnavailable)
	}

	existing, err := unit.Bookings().ListByItem(ctx, it.ID)
	if err != nil {
		return nil, done(err)
	}
	schedule := availability.Resolve(it.BlockedDateStrings(), Windows(existing), now)
	if !schedule.CanReserve(start, end) {
		return nil, done(ErrDatesConflict)
	}

	total := int64(dates.Count(start, end)) * it.PricePerDayCents
	appliedOffer := ""
	offers, err := unit.Offers().List(ctx)
	if err != nil {
		return nil, done(err)
	}
	if active, found := domainoffer.ActiveForItem(offers, string(it.ID), now); found {
		total = active.DiscountedTotalCents(total)
		appliedOffer = string(active.ID)
	}

	b, err := domainbooking.New(domainbooking.CreateParams{
		ID:                  domainbooking.BookingID(cmd.CommandID),
		ItemID:              it.ID,
		RenterID:            cmd.RenterID,
		Start:               start,
		End:                 end,
		TotalPriceCents:     total,
		DeliveryAddress:     cmd.DeliveryAddress,
		SpecialInstructions: cmd.SpecialInstructions,
		Now:                 now,
	})
	if err != nil {
		return nil, done(err)
	}

	if err := unit.Bookings().Save(ctx, b); err != nil {
		return nil, done(err)
	}

	evs := b.PendingEvents()
	b.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.encoder(), evs); err != nil {
		return nil, done(err)
	}

	if err := done(nil); err != nil {
		return nil, err
	}

	return &RequestBookingResult{
		BookingID:       string(b.ID),
		RentalDays:      b.RentalDays,
		TotalPriceCents: b.TotalPriceCents,
		AppliedOfferID:  appliedOffer,
	}, nil
}

func (h *RequestBookingHandler) encoder() outbox.EventEncoder {
	if h.Encoder != nil {
		return h.Encoder
	}
	return outbox.JSONEventEncoder{}
}

func (h *RequestBookingHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// Windows converts stored bookings into resolver inputs.
func Windows(bookings []*domainbooking.Booking) []availability.Window {
	out := make([]availability.Window, 0, len(bookings))
	for _, b := range bookings {
		if b == nil {
			continue
		}
		start, okStart := b.Start.Time(time.UTC)
		end, okEnd := b.End.Time(time.UTC)
		if !okStart || !okEnd {
			continue
		}
		out = append(out, availability.Window{
			Start:     start,
			End:       end,
			Cancelled: !b.Blocks(),
		})
	}
	return out
}

var _ commands.Handler[RequestBookingCommand, *RequestBookingResult] = (*RequestBookingHandler)(nil)
var _ middleware.IdempotentCommand = (*RequestBookingCommand)(nil)
