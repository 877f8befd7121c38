package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"

	"github.com/neomorfeo/servio/internal/adapter/fsm"
	"github.com/neomorfeo/servio/internal/adapter/otel"
	"github.com/neomorfeo/servio/internal/adapter/river"
	"github.com/neomorfeo/servio/internal/adapter/sqlite"
	"github.com/neomorfeo/servio/internal/app"

	handler "github.com/neomorfeo/servio/internal/adapter/http"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("servio: %v", err)
	}
}

func run() error {
	ctx := context.Background()

	port := envOrDefault("PORT", "8080")
	dbPath := envOrDefault("DATABASE_PATH", "servio.db")
	authToken := envOrDefault("AUTH_TOKEN", "dev-token")

	delay, err := time.ParseDuration(envOrDefault("PROVISION_DELAY", "10s"))
	if err != nil {
		return fmt.Errorf("parsing PROVISION_DELAY: %w", err)
	}

	// --- Observability ---
	providers, err := otel.Setup(ctx, otel.ConfigFromEnv())
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	// --- Adapters (out) ---
	db, err := otel.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}

	repo, err := sqlite.NewFromDB(db)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer repo.Close()

	tracedRepo := otel.NewTracingRepository(repo)

	provisioner := app.NewProvisioner(tracedRepo, fsm.New(), delay)

	client, err := river.Setup(ctx, db, provisioner)
	if err != nil {
		return fmt.Errorf("river: %w", err)
	}
	if err := client.Start(ctx); err != nil {
		return fmt.Errorf("starting river: %w", err)
	}

	dispatcher := otel.NewTracingDispatcher(river.NewDispatcher(client))

	// --- Application ---
	svc := app.NewServerService(tracedRepo, dispatcher)

	// --- Adapters (in) ---
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(otelchi.Middleware("servio", otelchi.WithChiRoutes(router)))

	api := humachi.New(router, huma.DefaultConfig("servio", "0.1.0"))
	handler.Register(api, svc, authToken)

	// --- Server ---
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown.
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("servio listening on :%s", port)
		log.Printf("API docs: http://localhost:%s/docs", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server: %w", err)
	case <-done:
	}
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}

	// In-flight provisioning is abandoned at its last committed status;
	// there is no durability guarantee for unfinished sequences.
	if err := client.Stop(shutdownCtx); err != nil {
		log.Printf("river stop: %v", err)
	}

	log.Println("stopped")
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
