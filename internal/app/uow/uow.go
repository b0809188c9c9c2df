package uow

import (
	"context"

	domainbooking "renteasy/internal/domain/booking"
	domainitem "renteasy/internal/domain/item"
	domainoffer "renteasy/internal/domain/offer"
)

// UnitOfWork coordinates repositories inside a transaction boundary.
type UnitOfWork interface {
	Items() domainitem.Repository
	Bookings() domainbooking.Repository
	Offers() domainoffer.Repository

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Factory starts unit of work instances.
type Factory interface {
	Begin(ctx context.Context, opts TxOptions) (UnitOfWork, error)
}

// TxOptions configure transaction boundaries.
type TxOptions struct {
	ReadOnly bool
}
