package items

import (
	"context"
	"time"

	"renteasy/internal/app/commands"
	"renteasy/internal/app/handlers/support"
	"renteasy/internal/app/outbox"
	"renteasy/internal/app/uow"
	domainitem "renteasy/internal/domain/item"
)

const (
	createItemKey      = "item.create"
	updateItemKey      = "item.update"
	setBlockedDatesKey = "item.set_blocked_dates"
	boostItemKey       = "item.boost"
	trackViewKey       = "item.track_view"

	defaultBoostDays = 7
)

type CreateItemCommand struct {
	CommandID        string
	Owner            string
	Name             string
	Description      string
	Category         string
	Subcategory      string
	PricePerDayCents int64
	ImageURL         string
	AdditionalImages []string
	OwnerPhone       string
	Location         string
	MinRentalDays    int
	MaxRentalDays    int
}

func (c CreateItemCommand) Key() string { return createItemKey }

type CreateItemResult struct {
	ItemID string `json:"item_id"`
}

type CreateItemHandler struct {
	UoWFactory uow.Factory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *CreateItemHandler) Handle(ctx context.Context, cmd CreateItemCommand) (*CreateItemResult, error) {
	unit, ctx, done, err := support.BeginUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}

	it, err := domainitem.New(domainitem.CreateParams{
		ID:               domainitem.ItemID(cmd.CommandID),
		Owner:            domainitem.OwnerID(cmd.Owner),
		Name:             cmd.Name,
		Description:      cmd.Description,
		Category:         cmd.Category,
		Subcategory:      cmd.Subcategory,
		PricePerDayCents: cmd.PricePerDayCents,
		ImageURL:         cmd.ImageURL,
		AdditionalImages: cmd.AdditionalImages,
		OwnerPhone:       cmd.OwnerPhone,
		Location:         cmd.Location,
		MinRentalDays:    cmd.MinRentalDays,
		MaxRentalDays:    cmd.MaxRentalDays,
		Now:              time.Now(),
	})
	if err != nil {
		return nil, done(err)
	}
	if err := unit.Items().Save(ctx, it); err != nil {
		return nil, done(err)
	}
	evs := it.PendingEvents()
	it.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, evs); err != nil {
		return nil, done(err)
	}
	if err := done(nil); err != nil {
		return nil, err
	}
	return &CreateItemResult{ItemID: string(it.ID)}, nil
}

type UpdateItemCommand struct {
	ItemID           string
	Name             string
	Description      string
	Category         string
	Subcategory      string
	PricePerDayCents int64
	ImageURL         string
	AdditionalImages []string
	OwnerPhone       string
	Location         string
	MinRentalDays    int
	MaxRentalDays    int
	Available        *bool
}

func (c UpdateItemCommand) Key() string { return updateItemKey }

type UpdateItemResult struct {
	ItemID string `json:"item_id"`
}

type UpdateItemHandler struct {
	UoWFactory uow.Factory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *UpdateItemHandler) Handle(ctx context.Context, cmd UpdateItemCommand) (*UpdateItemResult, error) {
	unit, ctx, done, err := support.BeginUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}

	it, err := unit.Items().ByID(ctx, domainitem.ItemID(cmd.ItemID))
	if err != nil {
		return nil, done(err)
	}
	now := time.Now()
	if err := it.Update(domainitem.UpdateParams{
		Name:             cmd.Name,
		Description:      cmd.Description,
		Category:         cmd.Category,
		Subcategory:      cmd.Subcategory,
		PricePerDayCents: cmd.PricePerDayCents,
		ImageURL:         cmd.ImageURL,
		AdditionalImages: cmd.AdditionalImages,
		OwnerPhone:       cmd.OwnerPhone,
		Location:         cmd.Location,
		MinRentalDays:    cmd.MinRentalDays,
		MaxRentalDays:    cmd.MaxRentalDays,
	}, now); err != nil {
		return nil, done(err)
	}
	if cmd.Available != nil {
		it.SetAvailability(*cmd.Available, now)
	}
	if err := unit.Items().Save(ctx, it); err != nil {
		return nil, done(err)
	}
	evs := it.PendingEvents()
	it.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, evs); err != nil {
		return nil, done(err)
	}
	if err := done(nil); err != nil {
		return nil, err
	}
	return &UpdateItemResult{ItemID: string(it.ID)}, nil
}

type SetBlockedDatesCommand struct {
	ItemID       string
	BlockedDates []string
}

func (c SetBlockedDatesCommand) Key() string { return setBlockedDatesKey }

type SetBlockedDatesResult struct {
	ItemID       string `json:"item_id"`
	BlockedCount int    `json:"blocked_count"`
}

type SetBlockedDatesHandler struct {
	UoWFactory uow.Factory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *SetBlockedDatesHandler) Handle(ctx context.Context, cmd SetBlockedDatesCommand) (*SetBlockedDatesResult, error) {
	unit, ctx, done, err := support.BeginUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}

	it, err := unit.Items().ByID(ctx, domainitem.ItemID(cmd.ItemID))
	if err != nil {
		return nil, done(err)
	}
	if err := it.SetBlockedDates(cmd.BlockedDates, time.Now()); err != nil {
		return nil, done(err)
	}
	if err := unit.Items().Save(ctx, it); err != nil {
		return nil, done(err)
	}
	evs := it.PendingEvents()
	it.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, evs); err != nil {
		return nil, done(err)
	}
	if err := done(nil); err != nil {
		return nil, err
	}
	return &SetBlockedDatesResult{ItemID: string(it.ID), BlockedCount: len(it.BlockedDates)}, nil
}

// BoostItemCommand promotes an item in catalog results for a number of days.
type BoostItemCommand struct {
	ItemID string
	Days   int
}

func (c BoostItemCommand) Key() string { return boostItemKey }

type BoostItemResult struct {
	ItemID       string    `json:"item_id"`
	BoostedUntil time.Time `json:"boosted_until"`
}

type BoostItemHandler struct {
	UoWFactory uow.Factory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Now        func() time.Time
}

func (h *BoostItemHandler) Handle(ctx context.Context, cmd BoostItemCommand) (*BoostItemResult, error) {
	unit, ctx, done, err := support.BeginUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}

	it, err := unit.Items().ByID(ctx, domainitem.ItemID(cmd.ItemID))
	if err != nil {
		return nil, done(err)
	}
	days := cmd.Days
	if days <= 0 {
		days = defaultBoostDays
	}
	now := h.now()
	it.Boost(now.AddDate(0, 0, days), now)
	if err := unit.Items().Save(ctx, it); err != nil {
		return nil, done(err)
	}
	evs := it.PendingEvents()
	it.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, evs); err != nil {
		return nil, done(err)
	}
	if err := done(nil); err != nil {
		return nil, err
	}
	return &BoostItemResult{ItemID: string(it.ID), BoostedUntil: it.BoostedUntil}, nil
}

func (h *BoostItemHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// TrackViewCommand bumps an item's view counter. Best effort: callers fire
// it after serving the detail page and ignore failures.
type TrackViewCommand struct {
	ItemID string
}

func (c TrackViewCommand) Key() string { return trackViewKey }

type TrackViewHandler struct {
	UoWFactory uow.Factory
}

func (h *TrackViewHandler) Handle(ctx context.Context, cmd TrackViewCommand) (struct{}, error) {
	unit, ctx, done, err := support.BeginUnit(ctx, h.UoWFactory)
	if err != nil {
		return struct{}{}, err
	}

	it, err := unit.Items().ByID(ctx, domainitem.ItemID(cmd.ItemID))
	if err != nil {
		return struct{}{}, done(err)
	}
	it.RecordView()
	if err := unit.Items().Save(ctx, it); err != nil {
		return struct{}{}, done(err)
	}
	return struct{}{}, done(nil)
}

var (
	_ commands.Handler[CreateItemCommand, *CreateItemResult]           = (*CreateItemHandler)(nil)
	_ commands.Handler[UpdateItemCommand, *UpdateItemResult]           = (*UpdateItemHandler)(nil)
	_ commands.Handler[SetBlockedDatesCommand, *SetBlockedDatesResult] = (*SetBlockedDatesHandler)(nil)
	_ commands.Handler[BoostItemCommand, *BoostItemResult]             = (*BoostItemHandler)(nil)
	_ commands.Handler[TrackViewCommand, struct{}]                     = (*TrackViewHandler)(nil)
)
