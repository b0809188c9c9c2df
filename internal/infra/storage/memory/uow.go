package memory

import (
	"context"
	"errors"

	"renteasy/internal/app/uow"
	domainbooking "renteasy/internal/domain/booking"
	domainitem "renteasy/internal/domain/item"
	domainoffer "renteasy/internal/domain/offer"
)

// Factory wires in-memory repositories into a unit-of-work boundary.
type Factory struct {
	ItemsRepo   domainitem.Repository
	BookingRepo domainbooking.Repository
	OfferRepo   domainoffer.Repository
}

// ErrFactoryMisconfigured indicates missing repositories.
var ErrFactoryMisconfigured = errors.New("memory: unit of work factory misconfigured")

// Begin starts a lightweight transaction boundary. No isolation is provided
// but the abstraction matches the application ports.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.ItemsRepo == nil || f.BookingRepo == nil || f.OfferRepo == nil {
		return nil, ErrFactoryMisconfigured
	}
	return &Unit{
		items:    f.ItemsRepo,
		bookings: f.BookingRepo,
		offers:   f.OfferRepo,
	}, nil
}

// Unit is a lightweight uow.UnitOfWork backed by in-memory stores.
type Unit struct {
	items    domainitem.Repository
	bookings domainbooking.Repository
	offers   domainoffer.Repository
}

func (u *Unit) Items() domainitem.Repository {
	return u.items
}

func (u *Unit) Bookings() domainbooking.Repository {
	return u.bookings
}

func (u *Unit) Offers() domainoffer.Repository {
	return u.offers
}

func (u *Unit) Commit(ctx context.Context) error {
	return nil
}

func (u *Unit) Rollback(ctx context.Context) error {
	return nil
}

var _ uow.Factory = Factory{}
