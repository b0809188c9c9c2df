package booking

import (
	"context"
	"errors"
	"time"

	"renteasy/internal/app/commands"
	"renteasy/internal/app/handlers/support"
	"renteasy/internal/app/outbox"
	"renteasy/internal/app/uow"
	domainbooking "renteasy/internal/domain/booking"
)

const updateStatusKey = "booking.update_status"

var ErrUnknownStatus = errors.New("booking: unknown status")

type UpdateStatusCommand struct {
	BookingID string
	Status    string
	Reason    string
}

func (c UpdateStatusCommand) Key() string { return updateStatusKey }

type UpdateStatusResult struct {
	BookingID string `json:"booking_id"`
	Status    string `json:"status"`
}

type UpdateStatusHandler struct {
	UoWFactory uow.Factory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Now        func() time.Time
}

func (h *UpdateStatusHandler) Handle(ctx context.Context, cmd UpdateStatusCommand) (*UpdateStatusResult, error) {
	target, ok := domainbooking.ParseStatus(cmd.Status)
	if !ok {
		return nil, ErrUnknownStatus
	}

	unit, ctx, done, err := support.BeginUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}

	b, err := unit.Bookings().ByID(ctx, domainbooking.BookingID(cmd.BookingID))
	if err != nil {
		return nil, done(err)
	}

	now := h.now()
	switch target {
	case domainbooking.StatusConfirmed:
		err = b.Confirm(now)
	case domainbooking.StatusCompleted:
		err = b.Complete(now)
	case domainbooking.StatusCancelled:
		err = b.Cancel(cmd.Reason, now)
	default:
		err = domainbooking.ErrInvalidState
	}
	if err != nil {
		return nil, done(err)
	}

	if err := unit.Bookings().Save(ctx, b); err != nil {
		return nil, done(err)
	}
	evs := b.PendingEvents()
	b.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, evs); err != nil {
		return nil, done(err)
	}
	if err := done(nil); err != nil {
		return nil, err
	}
	return &UpdateStatusResult{BookingID: string(b.ID), Status: string(b.Status)}, nil
}

func (h *UpdateStatusHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

var _ commands.Handler[UpdateStatusCommand, *UpdateStatusResult] = (*UpdateStatusHandler)(nil)
