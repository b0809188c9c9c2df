package offers

import (
	"context"
	"time"

	"renteasy/internal/app/commands"
	"renteasy/internal/app/handlers/support"
	"renteasy/internal/app/outbox"
	"renteasy/internal/app/uow"
	domainoffer "renteasy/internal/domain/offer"
)

const (
	createOfferKey    = "offer.create"
	setOfferStatusKey = "offer.set_status"
)

type CreateOfferCommand struct {
	CommandID       string
	Title           string
	Description     string
	DiscountPercent int
	ValidFrom       string
	ValidTo         string
	ApplicableItems []string
}

func (c CreateOfferCommand) Key() string { return createOfferKey }

type CreateOfferResult struct {
	OfferID string `json:"offer_id"`
}

type CreateOfferHandler struct {
	UoWFactory uow.Factory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *CreateOfferHandler) Handle(ctx context.Context, cmd CreateOfferCommand) (*CreateOfferResult, error) {
	unit, ctx, done, err := support.BeginUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}

	o, err := domainoffer.New(domainoffer.CreateParams{
		ID:              domainoffer.OfferID(cmd.CommandID),
		Title:           cmd.Title,
		Description:     cmd.Description,
		DiscountPercent: cmd.DiscountPercent,
		ValidFrom:       domainoffer.NormalizeBound(cmd.ValidFrom),
		ValidTo:         domainoffer.NormalizeBound(cmd.ValidTo),
		ApplicableItems: cmd.ApplicableItems,
		Now:             time.Now(),
	})
	if err != nil {
		return nil, done(err)
	}
	if err := unit.Offers().Save(ctx, o); err != nil {
		return nil, done(err)
	}
	evs := o.PendingEvents()
	o.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, evs); err != nil {
		return nil, done(err)
	}
	if err := done(nil); err != nil {
		return nil, err
	}
	return &CreateOfferResult{OfferID: string(o.ID)}, nil
}

type SetOfferStatusCommand struct {
	OfferID string
	Status  string
}

func (c SetOfferStatusCommand) Key() string { return setOfferStatusKey }

type SetOfferStatusResult struct {
	OfferID string `json:"offer_id"`
	Status  string `json:"status"`
}

type SetOfferStatusHandler struct {
	UoWFactory uow.Factory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
}

func (h *SetOfferStatusHandler) Handle(ctx context.Context, cmd SetOfferStatusCommand) (*SetOfferStatusResult, error) {
	unit, ctx, done, err := support.BeginUnit(ctx, h.UoWFactory)
	if err != nil {
		return nil, err
	}

	o, err := unit.Offers().ByID(ctx, domainoffer.OfferID(cmd.OfferID))
	if err != nil {
		return nil, done(err)
	}
	if err := o.SetStatus(cmd.Status, time.Now()); err != nil {
		return nil, done(err)
	}
	if err := unit.Offers().Save(ctx, o); err != nil {
		return nil, done(err)
	}
	evs := o.PendingEvents()
	o.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, evs); err != nil {
		return nil, done(err)
	}
	if err := done(nil); err != nil {
		return nil, err
	}
	return &SetOfferStatusResult{OfferID: string(o.ID), Status: string(o.Status)}, nil
}

var (
	_ commands.Handler[CreateOfferCommand, *CreateOfferResult]       = (*CreateOfferHandler)(nil)
	_ commands.Handler[SetOfferStatusCommand, *SetOfferStatusResult] = (*SetOfferStatusHandler)(nil)
)
