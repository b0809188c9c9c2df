package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"

	"renteasy/internal/app/commands"
	availabilityapp "renteasy/internal/app/handlers/availability"
	bookingapp "renteasy/internal/app/handlers/booking"
	itemsapp "renteasy/internal/app/handlers/items"
	offersapp "renteasy/internal/app/handlers/offers"
	"renteasy/internal/app/middleware"
	"renteasy/internal/app/outbox"
	"renteasy/internal/app/queries"
	"renteasy/internal/app/uow"
	domainitem "renteasy/internal/domain/item"
	domainoffer "renteasy/internal/domain/offer"
	"renteasy/internal/infra/broker/kafka"
	"renteasy/internal/infra/config"
	mongodb "renteasy/internal/infra/db/mongo"
	ginserver "renteasy/internal/infra/http/gin"
	"renteasy/internal/infra/obs"
	infraoutbox "renteasy/internal/infra/outbox"
	"renteasy/internal/infra/storage/memory"
	redisstore "renteasy/internal/infra/storage/redis"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	app, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: app.ready,
	}, app.handlers)

	if app.worker != nil {
		go func() {
			if err := app.worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", app.storageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers    ginserver.Handlers
	worker      *infraoutbox.Worker
	storageMode string
	ready       func() error
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (application, error) {
	var (
		uowFactory  uow.Factory
		outboxStore outbox.Outbox
		worker      *infraoutbox.Worker
		storageMode string
		ready       = func() error { return nil }
	)

	if cfg.MongoURI != "" {
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return application{}, fmt.Errorf("mongo connect: %w", err)
		}
		store := infraoutbox.NewStore(client.DB)
		uowFactory = mongodb.Factory{
			DB:          client.DB,
			ItemsRepo:   mongodb.NewItemRepository(client.DB),
			BookingRepo: mongodb.NewBookingRepository(client.DB),
			OfferRepo:   mongodb.NewOfferRepository(client.DB),
		}
		outboxStore = store
		storageMode = "mongo"
		ready = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}

		if len(cfg.KafkaBrokers) > 0 {
			producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
			if err != nil {
				return application{}, fmt.Errorf("kafka producer: %w", err)
			}
			worker = &infraoutbox.Worker{
				Store:       store,
				Producer:    producer,
				Interval:    cfg.OutboxPollInterval,
				TopicPrefix: cfg.KafkaTopicPrefix,
				Backoff:     cfg.RetryBackoff,
				Logger:      logger,
			}
		} else {
			logger.Info("kafka not configured, outbox worker disabled")
		}
	} else {
		itemsRepo := memory.NewItemRepository()
		bookingRepo := memory.NewBookingRepository()
		offerRepo := memory.NewOfferRepository()
		uowFactory = memory.Factory{
			ItemsRepo:   itemsRepo,
			BookingRepo: bookingRepo,
			OfferRepo:   offerRepo,
		}
		outboxStore = memory.NewOutbox()
		storageMode = "memory"

		path := getenv("FIXTURES_PATH", filepath.Join("data", "fixtures.json"))
		if err := loadFixtures(ctx, path, itemsRepo, offerRepo, logger); err != nil {
			logger.Warn("fixtures load failed", "error", err, "path", path)
		}
	}

	var idStore middleware.IdempotencyStore
	if cfg.RedisAddr != "" {
		client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		idStore = redisstore.NewIdempotencyStore(client, cfg.IdempotencyTTL)
	} else {
		idStore = memory.NewIdempotencyStore()
	}

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

	commandBusWithMiddleware := middleware.ChainCommands(
		commandBus,
		middleware.Idempotency(idStore, nil),
		middleware.Transaction(uowFactory, nil),
		middleware.OutboxFlush(outboxStore),
	)
	queryBusWithMiddleware := middleware.ChainQueries(queryBus)

	return application{
		handlers: ginserver.Handlers{
			Item:    ginserver.ItemHandler{Commands: commandBusWithMiddleware, Queries: queryBusWithMiddleware},
			Booking: ginserver.BookingHandler{Commands: commandBusWithMiddleware, Queries: queryBusWithMiddleware},
			Offer:   ginserver.OfferHandler{Commands: commandBusWithMiddleware, Queries: queryBusWithMiddleware},
		},
		worker:      worker,
		storageMode: storageMode,
		ready:       ready,
	}, nil
}

type fixtureFile struct {
	Items  []itemFixture  `json:"items"`
	Offers []offerFixture `json:"offers"`
}

type itemFixture struct {
	ID               string   `json:"id"`
	Owner            string   `json:"owner"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	Category         string   `json:"category"`
	Subcategory      string   `json:"subcategory"`
	PricePerDayCents int64    `json:"price_per_day_cents"`
	ImageURL         string   `json:"image_url"`
	AdditionalImages []string `json:"additional_images"`
	BlockedDates     []string `json:"blocked_dates"`
	OwnerPhone       string   `json:"owner_phone"`
	Location         string   `json:"location"`
	MinRentalDays    int      `json:"min_rental_days"`
	MaxRentalDays    int      `json:"max_rental_days"`
}

type offerFixture struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	DiscountPercent int      `json:"discount_percentage"`
	ValidFrom       string   `json:"valid_from"`
	ValidTo         string   `json:"valid_to"`
	ApplicableItems []string `json:"applicable_items"`
	Status          string   `json:"status"`
}

func loadFixtures(ctx context.Context, path string, items domainitem.Repository, offers domainoffer.Repository, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("fixtures file not found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("read fixtures: %w", err)
	}
	var file fixtureFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("decode fixtures: %w", err)
	}

	now := time.Now()
	for _, fx := range file.Items {
		it, err := domainitem.New(domainitem.CreateParams{
			ID:               domainitem.ItemID(fx.ID),
			Owner:            domainitem.OwnerID(fx.Owner),
			Name:             fx.Name,
			Description:      fx.Description,
			Category:         fx.Category,
			Subcategory:      fx.Subcategory,
			PricePerDayCents: fx.PricePerDayCents,
			ImageURL:         fx.ImageURL,
			AdditionalImages: fx.AdditionalImages,
			OwnerPhone:       fx.OwnerPhone,
			Location:         fx.Location,
			MinRentalDays:    fx.MinRentalDays,
			MaxRentalDays:    fx.MaxRentalDays,
			Now:              now,
		})
		if err != nil {
			logger.Error("item fixture invalid", "item_id", fx.ID, "error", err)
			continue
		}
		if len(fx.BlockedDates) > 0 {
			if err := it.SetBlockedDates(fx.BlockedDates, now); err != nil {
				logger.Error("item fixture blocked dates invalid", "item_id", fx.ID, "error", err)
				continue
			}
		}
		it.ClearEvents()
		if err := items.Save(ctx, it); err != nil {
			logger.Error("cannot store fixture item", "item_id", fx.ID, "error", err)
			continue
		}
		logger.Info("item fixture imported", "item_id", it.ID)
	}

	for _, fx := range file.Offers {
		o, err := domainoffer.New(domainoffer.CreateParams{
			ID:              domainoffer.OfferID(fx.ID),
			Title:           fx.Title,
			Description:     fx.Description,
			DiscountPercent: fx.DiscountPercent,
			ValidFrom:       domainoffer.NormalizeBound(fx.ValidFrom),
			ValidTo:         domainoffer.NormalizeBound(fx.ValidTo),
			ApplicableItems: fx.ApplicableItems,
			Now:             now,
		})
		if err != nil {
			logger.Error("offer fixture invalid", "offer_id", fx.ID, "error", err)
			continue
		}
		if fx.Status != "" {
			if err := o.SetStatus(fx.Status, now); err != nil {
				logger.Error("offer fixture status invalid", "offer_id", fx.ID, "error", err)
			}
		}
		o.ClearEvents()
		if err := offers.Save(ctx, o); err != nil {
			logger.Error("cannot store fixture offer", "offer_id", fx.ID, "error", err)
			continue
		}
		logger.Info("offer fixture imported", "offer_id", o.ID)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
