package ginserver

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"renteasy/internal/app/commands"
	"renteasy/internal/app/dto"
	AvailabilityApp "renteasy/internal/app/handlers/availability"
	ItemsApp "renteasy/internal/app/handlers/items"
	OffersApp "renteasy/internal/app/handlers/offers"
	"renteasy/internal/app/queries"
)

type ItemHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

func (h ItemHandler) Catalog(c *gin.Context) {
	query := ItemsApp.SearchCatalogQuery{
		Owner:         c.Query("owner"),
		Category:      c.Query("category"),
		Subcategory:   c.Query("subcategory"),
		Query:         c.Query("q"),
		Location:      c.Query("location"),
		PriceMinCents: queryInt64(c, "price_min_cents"),
		PriceMaxCents: queryInt64(c, "price_max_cents"),
		OnlyAvailable: c.Query("available") == "true",
		OnlyBoosted:   c.Query("boosted") == "true",
		Sort:          c.Query("sort"),
		Limit:         queryInt(c, "limit"),
		Offset:        queryInt(c, "offset"),
	}
	result, err := queries.Ask[ItemsApp.SearchCatalogQuery, dto.Catalog](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type createItemRequest struct {
	Owner            string   `json:"owner"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Category         string   `json:"category"`
	Subcategory      string   `json:"subcategory"`
	PricePerDayCents int64    `json:"price_per_day_cents"`
	ImageURL         string   `json:"image_url"`
	AdditionalImages []string `json:"additional_images"`
	OwnerPhone       string   `json:"owner_phone"`
	Location         string   `json:"location"`
	MinRentalDays    int      `json:"min_rental_days"`
	MaxRentalDays    int      `json:"max_rental_days"`
}

func (h ItemHandler) Create(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := ItemsApp.CreateItemCommand{
		CommandID:        generateCommandID(),
		Owner:            req.Owner,
		Name:             req.Name,
		Description:      req.Description,
		Category:         req.Category,
		Subcategory:      req.Subcategory,
		PricePerDayCents: req.PricePerDayCents,
		ImageURL:         req.ImageURL,
		AdditionalImages: req.AdditionalImages,
		OwnerPhone:       req.OwnerPhone,
		Location:         req.Location,
		MinRentalDays:    req.MinRentalDays,
		MaxRentalDays:    req.MaxRentalDays,
	}
	result, err := commands.Dispatch[ItemsApp.CreateItemCommand, *ItemsApp.CreateItemResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h ItemHandler) Get(c *gin.Context) {
	id := c.Param("id")
	result, err := queries.Ask[ItemsApp.GetItemQuery, dto.ItemDetail](c.Request.Context(), h.Queries, ItemsApp.GetItemQuery{ItemID: id})
	if err != nil {
		respondError(c, err)
		return
	}
	// view tracking is best effort
	_, _ = commands.Dispatch[ItemsApp.TrackViewCommand, struct{}](c.Request.Context(), h.Commands, ItemsApp.TrackViewCommand{ItemID: id})
	c.JSON(http.StatusOK, result)
}

type updateItemRequest struct {
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Category         string   `json:"category"`
	Subcategory      string   `json:"subcategory"`
	PricePerDayCents int64    `json:"price_per_day_cents"`
	ImageURL         string   `json:"image_url"`
	AdditionalImages []string `json:"additional_images"`
	OwnerPhone       string   `json:"owner_phone"`
	Location         string   `json:"location"`
	MinRentalDays    int      `json:"min_rental_days"`
	MaxRentalDays    int      `json:"max_rental_days"`
	Available        *bool    `json:"available"`
}

func (h ItemHandler) Update(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := ItemsApp.UpdateItemCommand{
		ItemID:           c.Param("id"),
		Name:             req.Name,
		Description:      req.Description,
		Category:         req.Category,
		Subcategory:      req.Subcategory,
		PricePerDayCents: req.PricePerDayCents,
		ImageURL:         req.ImageURL,
		AdditionalImages: req.AdditionalImages,
		OwnerPhone:       req.OwnerPhone,
		Location:         req.Location,
		MinRentalDays:    req.MinRentalDays,
		MaxRentalDays:    req.MaxRentalDays,
		Available:        req.Available,
	}
	result, err := commands.Dispatch[ItemsApp.UpdateItemCommand, *ItemsApp.UpdateItemResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type setBlockedDatesRequest struct {
	BlockedDates []string `json:"blocked_dates"`
}

func (h ItemHandler) SetBlockedDates(c *gin.Context) {
	var req setBlockedDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := ItemsApp.SetBlockedDatesCommand{
		ItemID:       c.Param("id"),
		BlockedDates: req.BlockedDates,
	}
	result, err := commands.Dispatch[ItemsApp.SetBlockedDatesCommand, *ItemsApp.SetBlockedDatesResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type boostItemRequest struct {
	Days int `json:"days"`
}

func (h ItemHandler) Boost(c *gin.Context) {
	var req boostItemRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := ItemsApp.BoostItemCommand{
		ItemID: c.Param("id"),
		Days:   req.Days,
	}
	result, err := commands.Dispatch[ItemsApp.BoostItemCommand, *ItemsApp.BoostItemResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ItemHandler) Availability(c *gin.Context) {
	query := AvailabilityApp.GetScheduleQuery{ItemID: c.Param("id")}
	result, err := queries.Ask[AvailabilityApp.GetScheduleQuery, dto.Schedule](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ItemHandler) ActiveOffer(c *gin.Context) {
	query := OffersApp.GetActiveOfferQuery{ItemID: c.Param("id")}
	result, err := queries.Ask[OffersApp.GetActiveOfferQuery, dto.ActiveOffer](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, err)
		return
	}
	if result.Offer == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, result.Offer)
}

func queryInt(c *gin.Context, key string) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return v
}

func queryInt64(c *gin.Context, key string) int64 {
	v, err := strconv.ParseInt(c.Query(key), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func generateCommandID() string {
	return uuid.NewString()
}

var _ ItemHTTP = ItemHandler{}
