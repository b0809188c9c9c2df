package items

import (
	"context"
	"errors"
	"testing"
	"time"

	"renteasy/internal/app/outbox"
	domainitem "renteasy/internal/domain/item"
	"renteasy/internal/infra/storage/memory"
)

var boostTestNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newBoostFixture(t *testing.T) (*BoostItemHandler, *memory.ItemRepository) {
	t.Helper()
	items := memory.NewItemRepository()
	factory := memory.Factory{
		ItemsRepo:   items,
		BookingRepo: memory.NewBookingRepository(),
		OfferRepo:   memory.NewOfferRepository(),
	}
	handler := &BoostItemHandler{
		UoWFactory: factory,
		Outbox:     memory.NewOutbox(),
		Encoder:    outbox.JSONEventEncoder{},
		Now:        func() time.Time { return boostTestNow },
	}
	return handler, items
}

func seedBoostItem(t *testing.T, items *memory.ItemRepository) *domainitem.Item {
	t.Helper()
	it, err := domainitem.New(domainitem.CreateParams{
		ID:               "item-1",
		Owner:            "owner-1",
		Name:             "Camera",
		Category:         "electronics",
		PricePerDayCents: 1000,
		Now:              boostTestNow,
	})
	if err != nil {
		t.Fatalf("seed item: %v", err)
	}
	it.ClearEvents()
	if err := items.Save(context.Background(), it); err != nil {
		t.Fatalf("save item: %v", err)
	}
	return it
}

func TestBoostItem(t *testing.T) {
	handler, items := newBoostFixture(t)
	seedBoostItem(t, items)

	result, err := handler.Handle(context.Background(), BoostItemCommand{ItemID: "item-1", Days: 3})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	want := boostTestNow.AddDate(0, 0, 3)
	if !result.BoostedUntil.Equal(want) {
		t.Fatalf("BoostedUntil = %v, want %v", result.BoostedUntil, want)
	}

	stored, err := items.ByID(context.Background(), "item-1")
	if err != nil {
		t.Fatalf("reload item: %v", err)
	}
	if !stored.Boosted || !stored.BoostActive(boostTestNow.Add(time.Hour)) {
		t.Fatal("stored item not boosted")
	}
	if stored.BoostActive(want.Add(time.Minute)) {
		t.Fatal("boost active past its window")
	}
}

func TestBoostItemDefaultsDuration(t *testing.T) {
	handler, items := newBoostFixture(t)
	seedBoostItem(t, items)

	result, err := handler.Handle(context.Background(), BoostItemCommand{ItemID: "item-1"})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	want := boostTestNow.AddDate(0, 0, defaultBoostDays)
	if !result.BoostedUntil.Equal(want) {
		t.Fatalf("BoostedUntil = %v, want default %v", result.BoostedUntil, want)
	}
}

func TestBoostItemUnknownItem(t *testing.T) {
	handler, _ := newBoostFixture(t)
	if _, err := handler.Handle(context.Background(), BoostItemCommand{ItemID: "ghost"}); !errors.Is(err, domainitem.ErrItemNotFound) {
		t.Fatalf("Handle error = %v, want ErrItemNotFound", err)
	}
}
