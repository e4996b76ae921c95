// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Shivanand-hulikatti/campus-events/internal/config"
	"github.com/Shivanand-hulikatti/campus-events/internal/database"
	"github.com/Shivanand-hulikatti/campus-events/internal/handler"
	"github.com/Shivanand-hulikatti/campus-events/internal/repository"
	"github.com/Shivanand-hulikatti/campus-events/internal/service"
	"github.com/Shivanand-hulikatti/campus-events/internal/token"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.Load()
	ctx := context.Background()

	// ── 1. Choose the store ───────────────────────────────────────────────
	var (
		userRepo  repository.UserRepository
		eventRepo repository.EventRepository
	)
	if cfg.MemoryStore {
		log.Warn().Msg("running with in-memory store; all data is lost on restart")
		users := repository.NewMemoryUserRepository()
		userRepo = users
		eventRepo = repository.NewMemoryEventRepository(users)
	} else {
		pool, err := database.NewPool(ctx, cfg.DSN())
		if err != nil {
			log.Fatal().Err(err).Msg("database connection failed")
		}
		defer pool.Close()

		if err := database.Migrate(cfg.DSN()); err != nil {
			log.Fatal().Err(err).Msg("migration failed")
		}
		log.Info().Msg("connected to postgres, migrations applied")

		userRepo = repository.NewPostgresUserRepository(pool)
		eventRepo = repository.NewPostgresEventRepository(pool)
	}

	// ── 2. Wire up layers ────────────────────────────────────────────────
	tokens := token.NewService([]byte(cfg.JWTSecret), cfg.TokenTTL)
	authSvc := service.NewAuthService(userRepo, tokens)
	eventSvc := service.NewEventService(eventRepo)
	h := handler.New(authSvc, eventSvc, log)

	r := handler.NewRouter(h, tokens, log)

	// ── 3. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Run in background goroutine so we can listen for shutdown signal.
	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
