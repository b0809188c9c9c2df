package items

import (
	"context"

	"renteasy/internal/app/dto"
	"renteasy/internal/app/handlers/support"
	"renteasy/internal/app/queries"
	"renteasy/internal/app/uow"
	domainitem "renteasy/internal/domain/item"
)

const searchCatalogKey = "catalog.search"

type SearchCatalogQuery struct {
	Owner         string
	Category      string
	Subcategory   string
	Query         string
	Location      string
	PriceMinCents int64
	PriceMaxCents int64
	OnlyAvailable bool
	OnlyBoosted   bool
	Sort          string
	Limit         int
	Offset        int
}

func (q SearchCatalogQuery) Key() string { return searchCatalogKey }

type SearchCatalogHandler struct {
	UoWFactory uow.Factory
}

func (h *SearchCatalogHandler) Handle(ctx context.Context, q SearchCatalogQuery) (dto.Catalog, error) {
	unit, ctx, release, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.Catalog{}, err
	}
	defer release()

	params := domainitem.SearchParams{
		Owner:         domainitem.OwnerID(q.Owner),
		Category:      q.Category,
		Subcategory:   q.Subcategory,
		Query:         q.Query,
		Location:      q.Location,
		PriceMinCents: q.PriceMinCents,
		PriceMaxCents: q.PriceMaxCents,
		OnlyAvailable: q.OnlyAvailable,
		OnlyBoosted:   q.OnlyBoosted,
		Sort:          domainitem.CatalogSort(q.Sort),
		Limit:         q.Limit,
		Offset:        q.Offset,
	}.Normalized()

	result, err := unit.Items().Search(ctx, params)
	if err != nil {
		return dto.Catalog{}, err
	}
	return dto.MapCatalog(result.Items, result.Total, params.Limit, params.Offset), nil
}

var _ queries.Handler[SearchCatalogQuery, dto.Catalog] = (*SearchCatalogHandler)(nil)
