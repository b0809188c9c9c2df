package ginserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"renteasy/internal/app/commands"
	availabilityapp "renteasy/internal/app/handlers/availability"
	bookingapp "renteasy/internal/app/handlers/booking"
	itemsapp "renteasy/internal/app/handlers/items"
	offersapp "renteasy/internal/app/handlers/offers"
	"renteasy/internal/app/middleware"
	"renteasy/internal/app/outbox"
	"renteasy/internal/app/queries"
	"renteasy/internal/infra/config"
	"renteasy/internal/infra/obs"
	"renteasy/internal/infra/storage/memory"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	itemsRepo := memory.NewItemRepository()
	bookingRepo := memory.NewBookingRepository()
	offerRepo := memory.NewOfferRepository()
	uowFactory := memory.Factory{ItemsRepo: itemsRepo, BookingRepo: bookingRepo, OfferRepo: offerRepo}
	outboxStore := memory.NewOutbox()
	idStore := memory.NewIdempotencyStore()
	encoder := outbox.JSONEventEncoder{}

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, itemsapp.CreateItemCommand{}.Key(), &itemsapp.CreateItemHandler{UoWFactory: uowFactory, Outbox: outboxStore, Encoder: encoder})
	commands.RegisterHandler(commandBus, itemsapp.UpdateItemCommand{}.Key(), &itemsapp.UpdateItemHandler{UoWFactory: uowFactory, Outbox: outboxStore, Encoder: encoder})
	commands.RegisterHandler(commandBus, itemsapp.SetBlockedDatesCommand{}.Key(), &itemsapp.SetBlockedDatesHandler{UoWFactory: uowFactory, Outbox: outboxStore, Encoder: encoder})
	commands.RegisterHandler(commandBus, itemsapp.BoostItemCommand{}.Key(), &itemsapp.BoostItemHandler{UoWFactory: uowFactory, Outbox: outboxStore, Encoder: encoder})
	commands.RegisterHandler(commandBus, itemsapp.TrackViewCommand{}.Key(), &itemsapp.TrackViewHandler{UoWFactory: uowFactory})
	commands.RegisterHandler(commandBus, bookingapp.RequestBookingCommand{}.Key(), &bookingapp.RequestBookingHandler{UoWFactory: uowFactory, Outbox: outboxStore, Encoder: encoder})
	commands.RegisterHandler(commandBus, bookingapp.UpdateStatusCommand{}.Key(), &bookingapp.UpdateStatusHandler{UoWFactory: uowFactory, Outbox: outboxStore, Encoder: encoder})
	commands.RegisterHandler(commandBus, offersapp.CreateOfferCommand{}.Key(), &offersapp.CreateOfferHandler{UoWFactory: uowFactory, Outbox: outboxStore, Encoder: encoder})
	commands.RegisterHandler(commandBus, offersapp.SetOfferStatusCommand{}.Key(), &offersapp.SetOfferStatusHandler{UoWFactory: uowFactory, Outbox: outboxStore, Encoder: encoder})

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, itemsapp.SearchCatalogQuery{}.Key(), &itemsapp.SearchCatalogHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, itemsapp.GetItemQuery{}.Key(), &itemsapp.GetItemHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, availabilityapp.GetScheduleQuery{}.Key(), &availabilityapp.GetScheduleHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, bookingapp.ListItemBookingsQuery{}.Key(), &bookingapp.ListItemBookingsHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, bookingapp.ListUserBookingsQuery{}.Key(), &bookingapp.ListUserBookingsHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, offersapp.ListOffersQuery{}.Key(), &offersapp.ListOffersHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, offersapp.GetActiveOfferQuery{}.Key(), &offersapp.GetActiveOfferHandler{UoWFactory: uowFactory})

	commandBusMW := middleware.ChainCommands(
		commandBus,
		middleware.Idempotency(idStore, nil),
		middleware.Transaction(uowFactory, nil),
		middleware.OutboxFlush(outboxStore),
	)
	queryBusMW := middleware.ChainQueries(queryBus)

	cfg := config.Config{Env: "test", HTTPAddr: ":0"}
	server := NewServer(cfg, obs.Middleware{}, obs.HealthHandlers{}, Handlers{
		Item:    ItemHandler{Commands: commandBusMW, Queries: queryBusMW},
		Booking: BookingHandler{Commands: commandBusMW, Queries: queryBusMW},
		Offer:   OfferHandler{Commands: commandBusMW, Queries: queryBusMW},
	})
	return server.Handler
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func createItem(t *testing.T, h http.Handler) string {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/v1/items", map[string]any{
		"owner":               "user-1",
		"name":                "Camera",
		"category":            "electronics",
		"price_per_day_cents": 1000,
	}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create item status = %d body=%s", rec.Code, rec.Body.String())
	}
	var out struct {
		ItemID string `json:"item_id"`
	}
	decode(t, rec, &out)
	return out.ItemID
}

func TestHealthEndpoints(t *testing.T) {
	h := newTestServer(t)
	for _, path := range []string{"/livez", "/readyz"} {
		rec := doJSON(t, h, http.MethodGet, path, nil, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s = %d", path, rec.Code)
		}
	}
}

func TestItemLifecycle(t *testing.T) {
	h := newTestServer(t)
	itemID := createItem(t, h)

	rec := doJSON(t, h, http.MethodGet, "/api/v1/items/"+itemID, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get item = %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPut, "/api/v1/items/"+itemID+"/blocked-dates", map[string]any{
		"blocked_dates": []string{"2031-05-20", "2031-05-21"},
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("set blocked dates = %d body=%s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/items/"+itemID+"/availability", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("availability = %d", rec.Code)
	}
	var schedule struct {
		ItemID            string   `json:"item_id"`
		OwnerBlockedDates []string `json:"owner_blocked_dates"`
		BookedDates       []string `json:"booked_dates"`
	}
	decode(t, rec, &schedule)
	if len(schedule.OwnerBlockedDates) != 2 {
		t.Fatalf("owner blocked dates = %v, want 2 entries", schedule.OwnerBlockedDates)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/items?category=electronics", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("catalog = %d", rec.Code)
	}
	var catalog struct {
		Total int `json:"total"`
	}
	decode(t, rec, &catalog)
	if catalog.Total != 1 {
		t.Fatalf("catalog total = %d, want 1", catalog.Total)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/items/does-not-exist", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing item = %d, want 404", rec.Code)
	}
}

func TestItemBoost(t *testing.T) {
	h := newTestServer(t)
	boosted := createItem(t, h)
	createItem(t, h)

	rec := doJSON(t, h, http.MethodGet, "/api/v1/items?boosted=true", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("catalog = %d", rec.Code)
	}
	var before struct {
		Total int `json:"total"`
	}
	decode(t, rec, &before)
	if before.Total != 0 {
		t.Fatalf("boosted total before boost = %d, want 0", before.Total)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/v1/items/"+boosted+"/boost", map[string]any{"days": 3}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("boost = %d body=%s", rec.Code, rec.Body.String())
	}
	var result struct {
		ItemID       string `json:"item_id"`
		BoostedUntil string `json:"boosted_until"`
	}
	decode(t, rec, &result)
	if result.ItemID != boosted || result.BoostedUntil == "" {
		t.Fatalf("boost result = %+v", result)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/items?boosted=true", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("catalog = %d", rec.Code)
	}
	var after struct {
		Total int `json:"total"`
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	}
	decode(t, rec, &after)
	if after.Total != 1 || len(after.Items) != 1 || after.Items[0].ID != boosted {
		t.Fatalf("boosted catalog = %+v, want only %s", after, boosted)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/v1/items/missing/boost", map[string]any{"days": 1}, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("boost missing item = %d, want 404", rec.Code)
	}
}

func TestBookingFlow(t *testing.T) {
	h := newTestServer(t)
	itemID := createItem(t, h)

	body := map[string]any{
		"item_id":    itemID,
		"renter_id":  "renter-1",
		"start_date": "2031-05-10",
		"end_date":   "2031-05-12",
	}
	rec := doJSON(t, h, http.MethodPost, "/api/v1/bookings", body, map[string]string{"Idempotency-Key": "key-1"})
	if rec.Code != http.StatusAccepted {
		t.Fatalf("create booking = %d body=%s", rec.Code, rec.Body.String())
	}
	var first struct {
		BookingID       string `json:"booking_id"`
		RentalDays      int    `json:"rental_days"`
		TotalPriceCents int64  `json:"total_price_cents"`
	}
	decode(t, rec, &first)
	if first.RentalDays != 3 || first.TotalPriceCents != 3000 {
		t.Fatalf("quote = %d days / %d cents, want 3 / 3000", first.RentalDays, first.TotalPriceCents)
	}

	// Same Idempotency-Key replays the stored result instead of re-booking.
	rec = doJSON(t, h, http.MethodPost, "/api/v1/bookings", body, map[string]string{"Idempotency-Key": "key-1"})
	if rec.Code != http.StatusAccepted {
		t.Fatalf("replay = %d body=%s", rec.Code, rec.Body.String())
	}
	var replay struct {
		BookingID string `json:"booking_id"`
	}
	decode(t, rec, &replay)
	if replay.BookingID != first.BookingID {
		t.Fatalf("replay booking id = %q, want %q", replay.BookingID, first.BookingID)
	}

	// A different key conflicts on the now-consumed days.
	rec = doJSON(t, h, http.MethodPost, "/api/v1/bookings", body, map[string]string{"Idempotency-Key": "key-2"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("conflicting booking = %d, want 400", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/v1/bookings/"+first.BookingID+"/status", map[string]any{"status": "confirmed"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("confirm = %d body=%s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodPost, "/api/v1/bookings/"+first.BookingID+"/status", map[string]any{"status": "completed"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("complete = %d body=%s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodPost, "/api/v1/bookings/"+first.BookingID+"/status", map[string]any{"status": "cancelled"}, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("cancel completed = %d, want 409", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/bookings/item/"+itemID, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list by item = %d", rec.Code)
	}
	var itemBookings struct {
		Items []map[string]any `json:"items"`
	}
	decode(t, rec, &itemBookings)
	if len(itemBookings.Items) != 1 {
		t.Fatalf("item bookings = %d, want 1", len(itemBookings.Items))
	}
	if _, leaked := itemBookings.Items[0]["renter_id"]; leaked {
		t.Fatal("per-item booking window leaks renter identity")
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/bookings/user/renter-1", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list by user = %d", rec.Code)
	}
	var userBookings struct {
		Items []struct {
			RenterID string `json:"renter_id"`
		} `json:"items"`
	}
	decode(t, rec, &userBookings)
	if len(userBookings.Items) != 1 || userBookings.Items[0].RenterID != "renter-1" {
		t.Fatalf("user bookings = %+v, want one for renter-1", userBookings.Items)
	}
}

func TestActiveOfferEndpoint(t *testing.T) {
	h := newTestServer(t)
	itemID := createItem(t, h)

	rec := doJSON(t, h, http.MethodGet, "/api/v1/items/"+itemID+"/active-offer", nil, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("no offer = %d, want 204", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/v1/offers", map[string]any{
		"title":               "Open-ended deal",
		"discount_percentage": 15,
		"applicable_items":    []string{itemID},
	}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create offer = %d body=%s", rec.Code, rec.Body.String())
	}
	var created struct {
		OfferID string `json:"offer_id"`
	}
	decode(t, rec, &created)

	rec = doJSON(t, h, http.MethodGet, "/api/v1/items/"+itemID+"/active-offer", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("active offer = %d, want 200", rec.Code)
	}
	var offer struct {
		ID              string `json:"id"`
		DiscountPercent int    `json:"discount_percentage"`
	}
	decode(t, rec, &offer)
	if offer.ID != created.OfferID || offer.DiscountPercent != 15 {
		t.Fatalf("active offer = %+v, want %s at 15%%", offer, created.OfferID)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/v1/offers/"+created.OfferID+"/status", map[string]any{"status": "inactive"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("deactivate offer = %d body=%s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/items/"+itemID+"/active-offer", nil, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("deactivated offer still served: %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/offers", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list offers = %d", rec.Code)
	}
	var list struct {
		Items []struct {
			Status string `json:"status"`
		} `json:"items"`
	}
	decode(t, rec, &list)
	if len(list.Items) != 1 || list.Items[0].Status != "inactive" {
		t.Fatalf("offers = %+v, want one inactive", list.Items)
	}
}
