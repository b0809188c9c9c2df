package item

import "time"

type ItemCreated struct {
	ItemID ItemID
	Owner  OwnerID
	Name   string
	At     time.Time
}

func (e ItemCreated) EventName() string     { return "item.created" }
func (e ItemCreated) AggregateID() string   { return string(e.ItemID) }
func (e ItemCreated) OccurredAt() time.Time { return e.At }

type ItemUpdated struct {
	ItemID ItemID
	At     time.Time
}

func (e ItemUpdated) EventName() string     { return "item.updated" }
func (e ItemUpdated) AggregateID() string   { return string(e.ItemID) }
func (e ItemUpdated) OccurredAt() time.Time { return e.At }

type BlockedDatesChanged struct {
	ItemID ItemID
	Count  int
	At     time.Time
}

func (e BlockedDatesChanged) EventName() string     { return "item.blocked_dates_changed" }
func (e BlockedDatesChanged) AggregateID() string   { return string(e.ItemID) }
func (e BlockedDatesChanged) OccurredAt() time.Time { return e.At }

type AvailabilityToggled struct {
	ItemID    ItemID
	Available bool
	At        time.Time
}

func (e AvailabilityToggled) EventName() string     { return "item.availability_toggled" }
func (e AvailabilityToggled) AggregateID() string   { return string(e.ItemID) }
func (e AvailabilityToggled) OccurredAt() time.Time { return e.At }

type ItemBoosted struct {
	ItemID ItemID
	Until  time.Time
	At     time.Time
}

func (e ItemBoosted) EventName() string     { return "item.boosted" }
func (e ItemBoosted) AggregateID() string   { return string(e.ItemID) }
func (e ItemBoosted) OccurredAt() time.Time { return e.At }
