package items

import (
	"context"

	"renteasy/internal/app/dto"
	"renteasy/internal/app/handlers/support"
	"renteasy/internal/app/queries"
	"renteasy/internal/app/uow"
	domainitem "renteasy/internal/domain/item"
)

const getItemKey = "item.get"

type GetItemQuery struct {
	ItemID string
}

func (q GetItemQuery) Key() string { return getItemKey }

type GetItemHandler struct {
	UoWFactory uow.Factory
}

func (h *GetItemHandler) Handle(ctx context.Context, q GetItemQuery) (dto.ItemDetail, error) {
	unit, ctx, release, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.ItemDetail{}, err
	}
	defer release()

	it, err := unit.Items().ByID(ctx, domainitem.ItemID(q.ItemID))
	if err != nil {
		return dto.ItemDetail{}, err
	}
	return dto.MapItemDetail(it), nil
}

var _ queries.Handler[GetItemQuery, dto.ItemDetail] = (*GetItemHandler)(nil)
