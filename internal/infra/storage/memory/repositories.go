package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	domainbooking "renteasy/internal/domain/booking"
	domainitem "renteasy/internal/domain/item"
	domainoffer "renteasy/internal/domain/offer"
)

// ItemRepository is an in-memory catalog store used for tests and the
// storage-less dev mode.
type ItemRepository struct {
	mu    sync.RWMutex
	items map[domainitem.ItemID]*domainitem.Item
}

// NewItemRepository builds an empty repository.
func NewItemRepository() *ItemRepository {
	return &ItemRepository{items: make(map[domainitem.ItemID]*domainitem.Item)}
}

// ByID returns an item or domainitem.ErrItemNotFound.
func (r *ItemRepository) ByID(ctx context.Context, id domainitem.ItemID) (*domainitem.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	it, ok := r.items[id]
	if !ok {
		return nil, domainitem.ErrItemNotFound
	}
	return it, nil
}

// Save stores/updates an item entry.
func (r *ItemRepository) Save(ctx context.Context, it *domainitem.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	it.Version++
	r.items[it.ID] = it
	return nil
}

// Search returns the catalog page that satisfies the provided filters.
func (r *ItemRepository) Search(ctx context.Context, params domainitem.SearchParams) (domainitem.SearchResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	opts := params.Normalized()
	matches := make([]*domainitem.Item, 0, len(r.items))
	for _, it := range r.items {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return domainitem.SearchResult{}, ctx.Err()
			default:
			}
		}
		if opts.Matches(it) {
			matches = append(matches, it)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		switch opts.Sort {
		case domainitem.SortByPriceAsc:
			if matches[i].PricePerDayCents == matches[j].PricePerDayCents {
				return matches[i].CreatedAt.After(matches[j].CreatedAt)
			}
			return matches[i].PricePerDayCents < matches[j].PricePerDayCents
		case domainitem.SortByPriceDesc:
			if matches[i].PricePerDayCents == matches[j].PricePerDayCents {
				return matches[i].CreatedAt.After(matches[j].CreatedAt)
			}
			return matches[i].PricePerDayCents > matches[j].PricePerDayCents
		case domainitem.SortByPopular:
			if matches[i].Views == matches[j].Views {
				return matches[i].CreatedAt.After(matches[j].CreatedAt)
			}
			return matches[i].Views > matches[j].Views
		default:
			if matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
				return matches[i].PricePerDayCents < matches[j].PricePerDayCents
			}
			return matches[i].CreatedAt.After(matches[j].CreatedAt)
		}
	})

	total := len(matches)
	start := opts.Offset
	if start > total {
		start = total
	}
	end := start + opts.Limit
	if end > total {
		end = total
	}

	return domainitem.SearchResult{
		Items: matches[start:end],
		Total: total,
	}, nil
}

// BookingRepository stores bookings in memory.
type BookingRepository struct {
	mu    sync.RWMutex
	items map[domainbooking.BookingID]*domainbooking.Booking
}

// NewBookingRepository builds an empty booking repo.
func NewBookingRepository() *BookingRepository {
	return &BookingRepository{items: make(map[domainbooking.BookingID]*domainbooking.Booking)}
}

// ByID fetches a booking.
func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.items[id]
	if !ok {
		return nil, domainbooking.ErrBookingNotFound
	}
	return b, nil
}

// Save stores the current booking state.
func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.Version++
	r.items[b.ID] = b
	return nil
}

func (r *BookingRepository) ListByItem(ctx context.Context, itemID domainitem.ItemID) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matches := make([]*domainbooking.Booking, 0)
	for _, b := range r.items {
		if b.ItemID == itemID {
			matches = append(matches, b)
		}
	}
	sortByCreated(matches)
	return matches, nil
}

func (r *BookingRepository) ListByRenter(ctx context.Context, renterID string) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id := strings.TrimSpace(renterID)
	matches := make([]*domainbooking.Booking, 0)
	for _, b := range r.items {
		if b.RenterID == id {
			matches = append(matches, b)
		}
	}
	sortByCreated(matches)
	return matches, nil
}

func sortByCreated(bookings []*domainbooking.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].CreatedAt.Equal(bookings[j].CreatedAt) {
			return bookings[i].ID < bookings[j].ID
		}
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
}

// OfferRepository stores promotional offers in memory.
type OfferRepository struct {
	mu    sync.RWMutex
	items map[domainoffer.OfferID]*domainoffer.Offer
}

// NewOfferRepository builds an empty offer repo.
func NewOfferRepository() *OfferRepository {
	return &OfferRepository{items: make(map[domainoffer.OfferID]*domainoffer.Offer)}
}

func (r *OfferRepository) ByID(ctx context.Context, id domainoffer.OfferID) (*domainoffer.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.items[id]
	if !ok {
		return nil, domainoffer.ErrOfferNotFound
	}
	return o, nil
}

func (r *OfferRepository) Save(ctx context.Context, o *domainoffer.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.Version++
	r.items[o.ID] = o
	return nil
}

// List returns every stored offer in insertion-independent but stable order.
func (r *OfferRepository) List(ctx context.Context) ([]*domainoffer.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainoffer.Offer, 0, len(r.items))
	for _, o := range r.items {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

var (
	_ domainitem.Repository    = (*ItemRepository)(nil)
	_ domainbooking.Repository = (*BookingRepository)(nil)
	_ domainoffer.Repository   = (*OfferRepository)(nil)
)
