package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"

	"booking-desk/internal/booking"
	"booking-desk/internal/booking/booking_api"
	"booking-desk/internal/booking/db"
	"booking-desk/internal/config"
	"booking-desk/internal/database/migrations"
	"booking-desk/internal/kafka"
	"booking-desk/internal/logger"
)

func openDatabase(cfg config.DatabaseConfig, logger *logger.Logger) *bun.DB {
	bunDB, err := db.Open(cfg.Path, cfg.BusyTimeout)
	if err != nil {
		logger.Fatal("DATABASE", fmt.Sprintf("Failed to open SQLite: %v", err))
	}
	logger.Info("DATABASE", fmt.Sprintf("SQLite connection successful (%s)", cfg.Path))
	return bunDB
}

func setupPublisher(cfg config.KafkaConfig, logger *logger.Logger) booking.EventPublisher {
	if !cfg.Enabled || cfg.MockMode {
		logger.Info("KAFKA", "Kafka disabled or in mock mode, events will be logged only")
		return kafka.NewMockProducer(logger)
	}

	if err := kafka.EnsureTopicsExist(cfg.Brokers, []string{cfg.Topic}); err != nil {
		logger.Warn("KAFKA", fmt.Sprintf("Failed to ensure topic %s: %v", cfg.Topic, err))
	}
	logger.Info("KAFKA", fmt.Sprintf("Producer ready on topic %s", cfg.Topic))
	return kafka.NewProducer(cfg.Brokers, cfg.Topic)
}

func requestLogger(logger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.LogAPI(r.Method, r.URL.Path, "handled", time.Since(start).String())
		})
	}
}

func main() {
	logger := logger.NewLogger()
	defer logger.Close()

	logger.Info("APP", "Starting Booking Desk service")

	if err := godotenv.Load(); err != nil {
		logger.Info("CONFIG", "No .env file found, using environment")
	}
	cfg := config.Load()

	bunDB := openDatabase(cfg.Database, logger)
	defer bunDB.Close()

	runner := migrations.NewRunner(bunDB, cfg.Database.MigrationsDir)
	if err := runner.RunMigrations(); err != nil {
		logger.Fatal("DATABASE", fmt.Sprintf("Migrations failed: %v", err))
	}
	logger.Info("DATABASE", "Schema migrations applied")

	publisher := setupPublisher(cfg.Kafka, logger)

	service := booking.NewService(&db.DB{Bun: bunDB}, publisher, logger)
	handler := &booking_api.Handler{Service: service, Log: logger}

	r := chi.NewRouter()
	r.Use(requestLogger(logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/bookings", func(r chi.Router) {
		r.Get("/", handler.ListBookings)
		r.Post("/", handler.CreateBooking)
		r.Get("/{date}", handler.GetBooking)
		r.Delete("/{date}", handler.DeleteBooking)
	})

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("APP", fmt.Sprintf("Booking Desk listening on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("APP", fmt.Sprintf("HTTP error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(ctxShutdown)
	logger.Info("APP", "Booking Desk shutdown complete")
}
