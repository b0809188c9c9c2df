package item

import (
	"strings"
	"time"
)

// CatalogSort defines a supported catalog ordering.
type CatalogSort string

const (
	SortByPriceAsc  CatalogSort = "price_asc"
	SortByPriceDesc CatalogSort = "price_desc"
	SortByNewest    CatalogSort = "newest"
	SortByPopular   CatalogSort = "popular"

	defaultSearchLimit = 24
	maxSearchLimit     = 60
)

// SearchParams describe catalog filters and paging options.
type SearchParams struct {
	Owner         OwnerID
	Category      string
	Subcategory   string
	Query         string
	Location      string
	PriceMinCents int64
	PriceMaxCents int64
	OnlyAvailable bool
	OnlyBoosted   bool
	Sort          CatalogSort
	Limit         int
	Offset        int
	Now           time.Time
}

// SearchResult carries one catalog page plus the unpaged match count.
type SearchResult struct {
	Items []*Item
	Total int
}

// Normalized returns a sanitized copy of params.
func (p SearchParams) Normalized() SearchParams {
	n := p
	n.Category = strings.TrimSpace(strings.ToLower(n.Category))
	n.Subcategory = strings.TrimSpace(strings.ToLower(n.Subcategory))
	n.Query = strings.TrimSpace(strings.ToLower(n.Query))
	n.Location = strings.TrimSpace(strings.ToLower(n.Location))
	if n.PriceMinCents < 0 {
		n.PriceMinCents = 0
	}
	if n.PriceMaxCents > 0 && n.PriceMaxCents < n.PriceMinCents {
		n.PriceMaxCents = 0
	}
	if n.Limit <= 0 {
		n.Limit = defaultSearchLimit
	}
	if n.Limit > maxSearchLimit {
		n.Limit = maxSearchLimit
	}
	if n.Offset < 0 {
		n.Offset = 0
	}
	if n.Now.IsZero() {
		n.Now = time.Now().UTC()
	}
	switch n.Sort {
	case SortByPriceAsc, SortByPriceDesc, SortByNewest, SortByPopular:
	default:
		n.Sort = SortByNewest
	}
	return n
}

// Matches applies the normalized filters to a single item.
func (p SearchParams) Matches(it *Item) bool {
	if it == nil {
		return false
	}
	if p.OnlyAvailable && !it.Available {
		return false
	}
	if p.OnlyBoosted && !it.BoostActive(p.Now) {
		return false
	}
	if p.Owner != "" && it.Owner != p.Owner {
		return false
	}
	if p.Category != "" && !strings.EqualFold(it.Category, p.Category) {
		return false
	}
	if p.Subcategory != "" && !strings.EqualFold(it.Subcategory, p.Subcategory) {
		return false
	}
	if p.Location != "" && !strings.Contains(strings.ToLower(it.Location), p.Location) {
		return false
	}
	if p.PriceMinCents > 0 && it.PricePerDayCents < p.PriceMinCents {
		return false
	}
	if p.PriceMaxCents > 0 && it.PricePerDayCents > p.PriceMaxCents {
		return false
	}
	if p.Query != "" {
		name := strings.ToLower(it.Name)
		desc := strings.ToLower(it.Description)
		if !strings.Contains(name, p.Query) && !strings.Contains(desc, p.Query) {
			return false
		}
	}
	return true
}
