package offers

import (
	"context"
	"time"

	"renteasy/internal/app/dto"
	"renteasy/internal/app/handlers/support"
	"renteasy/internal/app/queries"
	"renteasy/internal/app/uow"
	domainoffer "renteasy/internal/domain/offer"
)

const (
	listOffersKey    = "offer.list"
	activeForItemKey = "offer.active_for_item"
)

type ListOffersQuery struct{}

func (q ListOffersQuery) Key() string { return listOffersKey }

type ListOffersHandler struct {
	UoWFactory uow.Factory
}

func (h *ListOffersHandler) Handle(ctx context.Context, _ ListOffersQuery) (dto.OfferCollection, error) {
	unit, ctx, release, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.OfferCollection{}, err
	}
	defer release()

	offers, err := unit.Offers().List(ctx)
	if err != nil {
		return dto.OfferCollection{}, err
	}
	return dto.MapOfferCollection(offers), nil
}

// GetActiveOfferQuery resolves the single winning offer for an item right
// now, or none.
type GetActiveOfferQuery struct {
	ItemID string
}

func (q GetActiveOfferQuery) Key() string { return activeForItemKey }

type GetActiveOfferHandler struct {
	UoWFactory uow.Factory
	Now        func() time.Time
}

func (h *GetActiveOfferHandler) Handle(ctx context.Context, q GetActiveOfferQuery) (dto.ActiveOffer, error) {
	unit, ctx, release, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.ActiveOffer{}, err
	}
	defer release()

	offers, err := unit.Offers().List(ctx)
	if err != nil {
		return dto.ActiveOffer{}, err
	}
	now := time.Now()
	if h.Now != nil {
		now = h.Now()
	}
	winner, found := domainoffer.ActiveForItem(offers, q.ItemID, now)
	return dto.MapActiveOffer(winner, found), nil
}

var (
	_ queries.Handler[ListOffersQuery, dto.OfferCollection] = (*ListOffersHandler)(nil)
	_ queries.Handler[GetActiveOfferQuery, dto.ActiveOffer] = (*GetActiveOfferHandler)(nil)
)
