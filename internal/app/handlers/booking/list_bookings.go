package booking

import (
	"context"

	"renteasy/internal/app/dto"
	"renteasy/internal/app/handlers/support"
	"renteasy/internal/app/queries"
	"renteasy/internal/app/uow"
	domainitem "renteasy/internal/domain/item"
)

const (
	listByItemKey = "booking.list_by_item"
	listByUserKey = "booking.list_by_user"
)

// ListItemBookingsQuery returns the consumed windows for one item without
// renter identity. The availability widget reads this.
type ListItemBookingsQuery struct {
	ItemID string
}

func (q ListItemBookingsQuery) Key() string { return listByItemKey }

type ListItemBookingsHandler struct {
	UoWFactory uow.Factory
}

func (h *ListItemBookingsHandler) Handle(ctx context.Context, q ListItemBookingsQuery) (dto.ItemBookingCollection, error) {
	unit, ctx, release, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.ItemBookingCollection{}, err
	}
	defer release()

	bookings, err := unit.Bookings().ListByItem(ctx, domainitem.ItemID(q.ItemID))
	if err != nil {
		return dto.ItemBookingCollection{}, err
	}
	return dto.MapItemBookingCollection(bookings), nil
}

type ListUserBookingsQuery struct {
	RenterID string
}

func (q ListUserBookingsQuery) Key() string { return listByUserKey }

type ListUserBookingsHandler struct {
	UoWFactory uow.Factory
}

func (h *ListUserBookingsHandler) Handle(ctx context.Context, q ListUserBookingsQuery) (dto.BookingCollection, error) {
	unit, ctx, release, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.BookingCollection{}, err
	}
	defer release()

	bookings, err := unit.Bookings().ListByRenter(ctx, q.RenterID)
	if err != nil {
		return dto.BookingCollection{}, err
	}
	return dto.MapBookingCollection(bookings), nil
}

var (
	_ queries.Handler[ListItemBookingsQuery, dto.ItemBookingCollection] = (*ListItemBookingsHandler)(nil)
	_ queries.Handler[ListUserBookingsQuery, dto.BookingCollection]     = (*ListUserBookingsHandler)(nil)
)
