package availability

import (
	"context"
	"time"

	"renteasy/internal/app/dto"
	bookinghandlers "renteasy/internal/app/handlers/booking"
	"renteasy/internal/app/handlers/support"
	"renteasy/internal/app/queries"
	"renteasy/internal/app/uow"
	domainavailability "renteasy/internal/domain/availability"
	domainitem "renteasy/internal/domain/item"
)

const getScheduleKey = "item.schedule"

// GetScheduleQuery resolves one item's booking calendar: owner-blocked days
// merged with the days consumed by live bookings.
type GetScheduleQuery struct {
	ItemID string
}

func (q GetScheduleQuery) Key() string { return getScheduleKey }

type GetScheduleHandler struct {
	UoWFactory uow.Factory
	Now        func() time.Time
}

func (h *GetScheduleHandler) Handle(ctx context.Context, q GetScheduleQuery) (dto.Schedule, error) {
	unit, ctx, release, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.Schedule{}, err
	}
	defer release()

	it, err := unit.Items().ByID(ctx, domainitem.ItemID(q.ItemID))
	if err != nil {
		return dto.Schedule{}, err
	}
	bookings, err := unit.Bookings().ListByItem(ctx, it.ID)
	if err != nil {
		return dto.Schedule{}, err
	}

	schedule := domainavailability.Resolve(it.BlockedDateStrings(), bookinghandlers.Windows(bookings), h.now())
	return dto.MapSchedule(string(it.ID), schedule), nil
}

func (h *GetScheduleHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

var _ queries.Handler[GetScheduleQuery, dto.Schedule] = (*GetScheduleHandler)(nil)
