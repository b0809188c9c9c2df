package dto

import (
	"time"

	domainbooking "renteasy/internal/domain/booking"
)

// BookingSummary is the public shape of a booking. Start and end are
// inclusive calendar days.
type BookingSummary struct {
	ID              string    `json:"id"`
	ItemID          string    `json:"item_id"`
	RenterID        string    `json:"renter_id,omitempty"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	RentalDays      int       `json:"rental_days"`
	TotalPriceCents int64     `json:"total_price_cents"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// BookingCollection wraps a list of bookings.
type BookingCollection struct {
	Items []BookingSummary `json:"items"`
}

// ItemBookingWindow is the anonymous per-item shape served to the
// availability widget: no renter identity, just the consumed window.
type ItemBookingWindow struct {
	ID        string `json:"id"`
	ItemID    string `json:"item_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
}

type ItemBookingCollection struct {
	Items []ItemBookingWindow `json:"items"`
}

func MapBookingSummary(b *domainbooking.Booking) BookingSummary {
	if b == nil {
		return BookingSummary{}
	}
	return BookingSummary{
		ID:              string(b.ID),
		ItemID:          string(b.ItemID),
		RenterID:        b.RenterID,
		StartDate:       string(b.Start),
		EndDate:         string(b.End),
		RentalDays:      b.RentalDays,
		TotalPriceCents: b.TotalPriceCents,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt,
	}
}

func MapBookingCollection(bookings []*domainbooking.Booking) BookingCollection {
	out := BookingCollection{Items: make([]BookingSummary, 0, len(bookings))}
	for _, b := range bookings {
		out.Items = append(out.Items, MapBookingSummary(b))
	}
	return out
}

func MapItemBookingWindow(b *domainbooking.Booking) ItemBookingWindow {
	if b == nil {
		return ItemBookingWindow{}
	}
	return ItemBookingWindow{
		ID:        string(b.ID),
		ItemID:    string(b.ItemID),
		StartDate: string(b.Start),
		EndDate:   string(b.End),
		Status:    string(b.Status),
	}
}

func MapItemBookingCollection(bookings []*domainbooking.Booking) ItemBookingCollection {
	out := ItemBookingCollection{Items: make([]ItemBookingWindow, 0, len(bookings))}
	for _, b := range bookings {
		out.Items = append(out.Items, MapItemBookingWindow(b))
	}
	return out
}
