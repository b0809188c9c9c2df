package dto

import (
	"time"

	domainitem "renteasy/internal/domain/item"
)

// ItemSummary is the catalog-card shape of an item.
type ItemSummary struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Category         string `json:"category"`
	Subcategory      string `json:"subcategory,omitempty"`
	PricePerDayCents int64  `json:"price_per_day_cents"`
	ImageURL         string `json:"image_url,omitempty"`
	Location         string `json:"location,omitempty"`
	Available        bool   `json:"available"`
	Boosted          bool   `json:"boosted"`
	Views            int64  `json:"views"`
}

// ItemDetail is the full public shape of an item, blocked days included so
// the caller can feed the availability widget without a second request.
type ItemDetail struct {
	ID               string    `json:"id"`
	Owner            string    `json:"owner_id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Category         string    `json:"category"`
	Subcategory      string    `json:"subcategory,omitempty"`
	PricePerDayCents int64     `json:"price_per_day_cents"`
	ImageURL         string    `json:"image_url,omitempty"`
	AdditionalImages []string  `json:"additional_images,omitempty"`
	Available        bool      `json:"available"`
	BlockedDates     []string  `json:"blocked_dates"`
	OwnerPhone       string    `json:"owner_phone,omitempty"`
	Location         string    `json:"location,omitempty"`
	MinRentalDays    int       `json:"min_rental_days"`
	MaxRentalDays    int       `json:"max_rental_days"`
	Views            int64     `json:"views"`
	Boosted          bool      `json:"boosted"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Catalog is one page of search results.
type Catalog struct {
	Items  []ItemSummary `json:"items"`
	Total  int           `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

func MapItemSummary(it *domainitem.Item) ItemSummary {
	if it == nil {
		return ItemSummary{}
	}
	return ItemSummary{
		ID:               string(it.ID),
		Name:             it.Name,
		Category:         it.Category,
		Subcategory:      it.Subcategory,
		PricePerDayCents: it.PricePerDayCents,
		ImageURL:         it.ImageURL,
		Location:         it.Location,
		Available:        it.Available,
		Boosted:          it.Boosted,
		Views:            it.Views,
	}
}

func MapItemDetail(it *domainitem.Item) ItemDetail {
	if it == nil {
		return ItemDetail{}
	}
	return ItemDetail{
		ID:               string(it.ID),
		Owner:            string(it.Owner),
		Name:             it.Name,
		Description:      it.Description,
		Category:         it.Category,
		Subcategory:      it.Subcategory,
		PricePerDayCents: it.PricePerDayCents,
		ImageURL:         it.ImageURL,
		AdditionalImages: append([]string(nil), it.AdditionalImages...),
		Available:        it.Available,
		BlockedDates:     it.BlockedDateStrings(),
		OwnerPhone:       it.OwnerPhone,
		Location:         it.Location,
		MinRentalDays:    it.MinRentalDays,
		MaxRentalDays:    it.MaxRentalDays,
		Views:            it.Views,
		Boosted:          it.Boosted,
		CreatedAt:        it.CreatedAt,
		UpdatedAt:        it.UpdatedAt,
	}
}

func MapCatalog(items []*domainitem.Item, total, limit, offset int) Catalog {
	out := Catalog{
		Items:  make([]ItemSummary, 0, len(items)),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
	for _, it := range items {
		out.Items = append(out.Items, MapItemSummary(it))
	}
	return out
}
