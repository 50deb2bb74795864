package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tripwatch-service/internal/infrastructure/config"
	"tripwatch-service/internal/infrastructure/oauth"
	"tripwatch-service/internal/infrastructure/persistence"
	"tripwatch-service/internal/infrastructure/router"
	"tripwatch-service/internal/interface/calendar"
	"tripwatch-service/internal/interface/flightstatus"
	"tripwatch-service/internal/interface/httpapi"
	"tripwatch-service/internal/interface/llm"
	"tripwatch-service/internal/interface/repository"
	"tripwatch-service/internal/usecase"
	"tripwatch-service/pkg/logger"
	"tripwatch-service/pkg/metrics"

	goredis "github.com/redis/go-redis/v9"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Tripwatch Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}
	if err := gormDB.AutoMigrate(
		&repository.Flights{},
		&repository.Hotels{},
		&repository.FlightWatch{},
		&repository.GoogleTokens{},
	); err != nil {
		log.Fatal("Failed to migrate schema", "error", err)
	}

	redisClient := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})

	appMetrics := metrics.NewMetrics("tripwatch")

	// Set up repositories
	flightRecordRepo := repository.NewGormFlightRecordRepository(gormDB)
	hotelRecordRepo := repository.NewGormHotelRecordRepository(gormDB)
	watchRepo := repository.NewGormWatchRepository(gormDB)
	tokenRepo := repository.NewGormTokenRepository(gormDB)
	documentRepo := repository.NewMongoDocumentRepository(db)
	sessionRepo := repository.NewRedisSessionRepository(redisClient, log, cfg.SessionTTL, cfg.SessionMaxTurns)
	notifier := repository.NewWhatsappRepository(cfg.WhatsAppEndpoint, cfg.WhatsAppToken, cfg.WhatsAppCompanyID, cfg.WhatsAppAgentID, log)
	statusRepo := flightstatus.NewAviationstackClient(cfg.AviationstackURL, cfg.AviationstackKey, cfg.AviationstackTimeout, log)

	// Set up Google Calendar sync
	googleOAuth := oauth.NewGoogleOAuth(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI, log)
	calendarRepo := calendar.NewGoogleCalendarRepository(googleOAuth, tokenRepo, log)

	// Set up extraction pipeline
	var model llms.Model
	if cfg.OpenAIKey != "" {
		model, err = openai.New(openai.WithToken(cfg.OpenAIKey), openai.WithModel(cfg.OpenAIModel))
		if err != nil {
			log.Fatal("Failed to create completion client", "error", err)
		}
	} else {
		log.Warn("OPENAI_API_KEY not set; extraction runs heuristic-only")
	}
	extractor := llm.NewExtractor(model, cfg.AITextBudget, cfg.AITimeout, log)

	indexer := usecase.NewBookingIndexer(flightRecordRepo, hotelRecordRepo, calendarRepo, appMetrics, log, cfg.HomeAirport)

	docRouter := router.NewDocumentRouter(log)
	docRouter.Register(usecase.NewPDFHandler(extractor, indexer, cfg.PDFMaxPages, log))
	docRouter.Register(usecase.NewImageHandler(extractor, indexer, log))
	docRouter.Register(usecase.NewTextHandler(extractor, indexer, log))

	processor := usecase.NewDocumentProcessor(documentRepo, docRouter, appMetrics, log)

	// Set up watch engine and schedulable services
	engine := usecase.NewWatchEngine(watchRepo, statusRepo, notifier, appMetrics, log, cfg.NotifyCCWaids, cfg.LocalTZ)
	reminders := usecase.NewReminderService(flightRecordRepo, hotelRecordRepo, notifier, appMetrics, log, cfg.LocalTZ)
	dispatcher := usecase.NewActionDispatcher(flightRecordRepo, watchRepo, sessionRepo, engine, log, cfg.LookaheadDays, cfg.LocalTZ)

	handlers := httpapi.NewHandlers(
		processor,
		dispatcher,
		engine,
		reminders,
		httpapi.StatusCounters{
			Documents: documentRepo,
			Flights:   flightRecordRepo,
			Hotels:    hotelRecordRepo,
			Watches:   watchRepo,
		},
		googleOAuth,
		tokenRepo,
		log,
		cfg.CronSecret,
		cfg.AppVersion,
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handlers.NewMux(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel()

	if err := redisClient.Close(); err != nil {
		log.Error("Redis close error", "error", err)
	}
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}
	log.Info("Tripwatch Service stopped")
	log.Sync()
}
