package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"renteasy/internal/app/commands"
	"renteasy/internal/app/dto"
	BookingApp "renteasy/internal/app/handlers/booking"
	"renteasy/internal/app/queries"
)

type BookingHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type createBookingRequest struct {
	ItemID              string `json:"item_id"`
	RenterID            string `json:"renter_id"`
	StartDate           string `json:"start_date"`
	EndDate             string `json:"end_date"`
	DeliveryAddress     string `json:"delivery_address"`
	SpecialInstructions string `json:"special_instructions"`
}

func (h BookingHandler) Create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := BookingApp.RequestBookingCommand{
		CommandID:           generateCommandID(),
		ItemID:              req.ItemID,
		RenterID:            req.RenterID,
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
		DeliveryAddress:     req.DeliveryAddress,
		SpecialInstructions: req.SpecialInstructions,
		IdempotencyKeyV:     c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[BookingApp.RequestBookingCommand, *BookingApp.RequestBookingResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, result)
}

type updateBookingStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

func (h BookingHandler) UpdateStatus(c *gin.Context) {
	var req updateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := BookingApp.UpdateStatusCommand{
		BookingID: c.Param("id"),
		Status:    req.Status,
		Reason:    req.Reason,
	}
	result, err := commands.Dispatch[BookingApp.UpdateStatusCommand, *BookingApp.UpdateStatusResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h BookingHandler) ListByItem(c *gin.Context) {
	query := BookingApp.ListItemBookingsQuery{ItemID: c.Param("id")}
	result, err := queries.Ask[BookingApp.ListItemBookingsQuery, dto.ItemBookingCollection](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h BookingHandler) ListByUser(c *gin.Context) {
	query := BookingApp.ListUserBookingsQuery{RenterID: c.Param("id")}
	result, err := queries.Ask[BookingApp.ListUserBookingsQuery, dto.BookingCollection](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ BookingHTTP = BookingHandler{}
