package offer

import "time"

type OfferCreated struct {
	OfferID         OfferID
	Title           string
	DiscountPercent int
	At              time.Time
}

func (e OfferCreated) EventName() string     { return "offer.created" }
func (e OfferCreated) AggregateID() string   { return string(e.OfferID) }
func (e OfferCreated) OccurredAt() time.Time { return e.At }

type OfferStatusChanged struct {
	OfferID OfferID
	Status  Status
	At      time.Time
}

func (e OfferStatusChanged) EventName() string     { return "offer.status_changed" }
func (e OfferStatusChanged) AggregateID() string   { return string(e.OfferID) }
func (e OfferStatusChanged) OccurredAt() time.Time { return e.At }
