package ginserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	domainbooking "renteasy/internal/domain/booking"
	domainitem "renteasy/internal/domain/item"
	domainoffer "renteasy/internal/domain/offer"
	"renteasy/internal/infra/config"
	"renteasy/internal/infra/obs"
)

type ItemHTTP interface {
	Catalog(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	SetBlockedDates(c *gin.Context)
	Boost(c *gin.Context)
	Availability(c *gin.Context)
	ActiveOffer(c *gin.Context)
}

type BookingHTTP interface {
	Create(c *gin.Context)
	UpdateStatus(c *gin.Context)
	ListByItem(c *gin.Context)
	ListByUser(c *gin.Context)
}

type OfferHTTP interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	SetStatus(c *gin.Context)
}

type Handlers struct {
	Item    ItemHTTP
	Booking BookingHTTP
	Offer   OfferHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "Idempotency-Key"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Item != nil {
		api.GET("/items", h.Item.Catalog)
		api.POST("/items", h.Item.Create)
		api.GET("/items/:id", h.Item.Get)
		api.PUT("/items/:id", h.Item.Update)
		api.PUT("/items/:id/blocked-dates", h.Item.SetBlockedDates)
		api.POST("/items/:id/boost", h.Item.Boost)
		api.GET("/items/:id/availability", h.Item.Availability)
		api.GET("/items/:id/active-offer", h.Item.ActiveOffer)
	}
	if h.Booking != nil {
		api.POST("/bookings", h.Booking.Create)
		api.POST("/bookings/:id/status", h.Booking.UpdateStatus)
		api.GET("/bookings/item/:id", h.Booking.ListByItem)
		api.GET("/bookings/user/:id", h.Booking.ListByUser)
	}
	if h.Offer != nil {
		api.GET("/offers", h.Offer.List)
		api.POST("/offers", h.Offer.Create)
		api.POST("/offers/:id/status", h.Offer.SetStatus)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainitem.ErrItemNotFound),
		errors.Is(err, domainbooking.ErrBookingNotFound),
		errors.Is(err, domainoffer.ErrOfferNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domainbooking.ErrInvalidState):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
