package dto

import (
	"time"

	domainoffer "renteasy/internal/domain/offer"
)

type OfferView struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DiscountPercent int       `json:"discount_percentage"`
	ValidFrom       string    `json:"valid_from,omitempty"`
	ValidTo         string    `json:"valid_to,omitempty"`
	ApplicableItems []string  `json:"applicable_items"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

type OfferCollection struct {
	Items []OfferView `json:"items"`
}

// ActiveOffer is the single-winner answer for one item at one instant.
type ActiveOffer struct {
	Offer *OfferView `json:"offer"`
}

func MapOfferView(o *domainoffer.Offer) OfferView {
	if o == nil {
		return OfferView{}
	}
	return OfferView{
		ID:              string(o.ID),
		Title:           o.Title,
		Description:     o.Description,
		DiscountPercent: o.DiscountPercent,
		ValidFrom:       string(o.ValidFrom),
		ValidTo:         string(o.ValidTo),
		ApplicableItems: append([]string(nil), o.ApplicableItems...),
		Status:          string(o.Status),
		CreatedAt:       o.CreatedAt,
	}
}

func MapOfferCollection(offers []*domainoffer.Offer) OfferCollection {
	out := OfferCollection{Items: make([]OfferView, 0, len(offers))}
	for _, o := range offers {
		out.Items = append(out.Items, MapOfferView(o))
	}
	return out
}

func MapActiveOffer(o *domainoffer.Offer, found bool) ActiveOffer {
	if !found || o == nil {
		return ActiveOffer{}
	}
	view := MapOfferView(o)
	return ActiveOffer{Offer: &view}
}
