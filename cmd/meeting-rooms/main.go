package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/julienschmidt/httprouter"

	"roomsvc/internal/meetingrooms/handler"
	"roomsvc/internal/meetingrooms/repository"
	"roomsvc/internal/meetingrooms/service"
	"roomsvc/internal/meetingrooms/validator"
	"roomsvc/pkg/config"
	"roomsvc/pkg/db/postgres"
	"roomsvc/pkg/kafka"
	kafka_config "roomsvc/pkg/kafka/config"
	"roomsvc/pkg/middleware"
)

const ServiceName = "meeting-rooms"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting Meeting Rooms service")

	db := connectPostgres(cfg)
	defer db.Close()

	producer := initProducer(cfg)
	if producer != nil {
		defer producer.Close()
	}

	roomService := initServices(cfg, db, producer)

	server, stopMiddleware := setupHTTPServer(cfg, roomService, db)
	defer stopMiddleware()

	run(cfg, server)
}

func connectPostgres(cfg *config.Config) *sqlx.DB {
	db, err := postgres.Connect(context.Background(), postgres.Options{
		URL:          cfg.DatabaseURL,
		ConnTimeout:  cfg.DatabaseConnTimeout,
		MaxOpenConns: cfg.DatabaseMaxOpenConns,
		MaxIdleConns: cfg.DatabaseMaxIdleConns,
	})
	if err != nil {
		cfg.Log.Fatal("Failed to connect to Postgres", "error", err)
	}

	cfg.Log.Info("Successfully connected to Postgres")
	return db
}

func initProducer(cfg *config.Config) *kafka.Producer {
	if !cfg.EventsEnabled {
		cfg.Log.Info("Lifecycle event publishing disabled")
		return nil
	}

	producer, err := kafka.NewProducer(kafka_config.Load(), cfg.EventsTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	cfg.Log.Info("Lifecycle event publishing enabled", "topic", cfg.EventsTopic)
	return producer
}

func initServices(cfg *config.Config, db *sqlx.DB, producer *kafka.Producer) service.MeetingRoomService {
	roomValidator := validator.NewMeetingRoomValidator()
	roomRepo := repository.NewPostgresMeetingRoomRepository(db)
	reservationRepo := repository.NewPostgresReservationRepository(db)

	var publisher service.EventPublisher
	if producer != nil {
		publisher = producer
	}

	roomService := service.NewMeetingRoomService(
		roomRepo,
		reservationRepo,
		roomValidator,
		publisher,
		cfg,
	)

	cfg.Log.Info("Meeting room service initialized")
	return roomService
}

func setupHTTPServer(cfg *config.Config, roomService service.MeetingRoomService, db *sqlx.DB) (*http.Server, func()) {
	healthRouter := httprouter.New()
	healthHandler := handler.NewHealthHandler(db, cfg.Log)
	healthHandler.RegisterRoutes(healthRouter)

	var healthHTTPHandler http.Handler = healthRouter
	healthHTTPHandler = middleware.RequestLogging(cfg.Log)(healthHTTPHandler)
	healthHTTPHandler = middleware.Recovery(cfg.Log)(healthHTTPHandler)
	cfg.Log.Info("Health endpoints configured with minimal middleware (Recovery + Logging only)")

	roomRouter := httprouter.New()
	roomHandler := handler.NewMeetingRoomHandler(roomService, cfg.Log)
	roomHandler.RegisterRoutes(roomRouter)

	idempotencyStore := middleware.NewInMemoryIdempotencyStore(cfg.IdempotencyTTL)
	rateLimiter := middleware.NewClientRateLimiter(
		cfg.RateLimitRequests,
		cfg.RateLimitWindow,
		middleware.DefaultClientExtractor,
		cfg.Log,
	)

	// Middleware order: Recovery → Logging → MaxSize → ContentType → RateLimit → Timeout → Idempotency → Router
	var roomHTTPHandler http.Handler = roomRouter
	roomHTTPHandler = middleware.Idempotency(idempotencyStore, "Idempotency-Key")(roomHTTPHandler)
	roomHTTPHandler = middleware.RequestTimeout(cfg.RequestTimeout)(roomHTTPHandler)
	roomHTTPHandler = middleware.ClientRateLimit(rateLimiter)(roomHTTPHandler)
	roomHTTPHandler = middleware.ContentTypeValidation(cfg.Log)(roomHTTPHandler)
	roomHTTPHandler = middleware.MaxRequestSize(int64(cfg.MaxRequestSize))(roomHTTPHandler)
	roomHTTPHandler = middleware.RequestLogging(cfg.Log)(roomHTTPHandler)
	roomHTTPHandler = middleware.Recovery(cfg.Log)(roomHTTPHandler)
	cfg.Log.Info("Meeting room endpoints configured with full middleware stack")

	mux := http.NewServeMux()
	mux.Handle("/health", healthHTTPHandler)
	mux.Handle("/ready", healthHTTPHandler)
	mux.Handle("/", roomHTTPHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	cfg.Log.Info("HTTP server configured", "port", cfg.Port)

	stop := func() {
		idempotencyStore.Stop()
		rateLimiter.Stop()
	}
	return server, stop
}

func run(cfg *config.Config, server *http.Server) {
	serverErrors := make(chan error, 1)

	go func() {
		cfg.Log.Info("Starting HTTP server", "address", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		cfg.Log.Fatal("HTTP server failed", "error", err)

	case sig := <-shutdown:
		cfg.Log.Info("Shutdown signal received", "signal", sig)
		gracefulShutdown(cfg, server)
	}
}

func gracefulShutdown(cfg *config.Config, server *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		cfg.Log.Error("Server shutdown failed", "error", err)
		if err := server.Close(); err != nil {
			cfg.Log.Fatal("Could not stop server gracefully", "error", err)
		}
	}

	cfg.Log.Info("Server stopped gracefully")
}
