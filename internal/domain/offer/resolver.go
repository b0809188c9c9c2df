package offer

import (
	"time"

	"renteasy/internal/domain/shared/dates"
)

// ActiveForItem selects the single offer shown for an item at the given
// instant: active status, item covered, and the local calendar day of now
// inside the validity window. When several qualify the most recently created
// one wins; ties keep the earliest listed. Returns false when none qualify.
func ActiveForItem(offers []*Offer, itemID string, now time.Time) (*Offer, bool) {
	today := dates.DayOf(now)
	var winner *Offer
	for _, o := range offers {
		if o == nil || !o.AppliesTo(itemID) || !o.LiveOn(today) {
			continue
		}
		if winner == nil || o.CreatedAt.After(winner.CreatedAt) {
			winner = o
		}
	}
	return winner, winner != nil
}

// DiscountedTotalCents applies the offer's percentage discount to an amount,
// rounding down to whole cents.
func (o *Offer) DiscountedTotalCents(amountCents int64) int64 {
	if o == nil || o.DiscountPercent <= 0 {
		return amountCents
	}
	discount := amountCents * int64(o.DiscountPercent) / 100
	return amountCents - discount
}
