package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"renteasy/internal/app/commands"
	"renteasy/internal/app/dto"
	OffersApp "renteasy/internal/app/handlers/offers"
	"renteasy/internal/app/queries"
)

type OfferHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

func (h OfferHandler) List(c *gin.Context) {
	result, err := queries.Ask[OffersApp.ListOffersQuery, dto.OfferCollection](c.Request.Context(), h.Queries, OffersApp.ListOffersQuery{})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type createOfferRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	DiscountPercent int      `json:"discount_percentage"`
	ValidFrom       string   `json:"valid_from"`
	ValidTo         string   `json:"valid_to"`
	ApplicableItems []string `json:"applicable_items"`
}

func (h OfferHandler) Create(c *gin.Context) {
	var req createOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := OffersApp.CreateOfferCommand{
		CommandID:       generateCommandID(),
		Title:           req.Title,
		Description:     req.Description,
		DiscountPercent: req.DiscountPercent,
		ValidFrom:       req.ValidFrom,
		ValidTo:         req.ValidTo,
		ApplicableItems: req.ApplicableItems,
	}
	result, err := commands.Dispatch[OffersApp.CreateOfferCommand, *OffersApp.CreateOfferResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

type setOfferStatusRequest struct {
	Status string `json:"status"`
}

func (h OfferHandler) SetStatus(c *gin.Context) {
	var req setOfferStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := OffersApp.SetOfferStatusCommand{
		OfferID: c.Param("id"),
		Status:  req.Status,
	}
	result, err := commands.Dispatch[OffersApp.SetOfferStatusCommand, *OffersApp.SetOfferStatusResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ OfferHTTP = OfferHandler{}
