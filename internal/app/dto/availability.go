package dto

import (
	"renteasy/internal/domain/availability"
	"renteasy/internal/domain/shared/dates"
)

// Schedule is the resolved availability calendar for one item.
type Schedule struct {
	ItemID            string   `json:"item_id"`
	Today             string   `json:"today"`
	OwnerBlockedDates []string `json:"owner_blocked_dates"`
	BookedDates       []string `json:"booked_dates"`
	OwnerBlockedCount int      `json:"owner_blocked_count"`
	BookedCount       int      `json:"booked_count"`
}

func MapSchedule(itemID string, s availability.Schedule) Schedule {
	return Schedule{
		ItemID:            itemID,
		Today:             string(s.Today()),
		OwnerBlockedDates: dayStrings(s.OwnerBlockedDays()),
		BookedDates:       dayStrings(s.BookedDays()),
		OwnerBlockedCount: s.OwnerBlockedCount(),
		BookedCount:       s.BookedCount(),
	}
}

func dayStrings(days []dates.Day) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, string(d))
	}
	return out
}
