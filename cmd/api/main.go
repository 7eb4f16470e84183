// Command api runs the form submission HTTP service.
//
// Startup wires the application explicitly: configuration, logging,
// database migrations, the server container, then the repository,
// service, handler and middleware layers, and finally the router.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avelune/formgate/internal/config"
	"github.com/avelune/formgate/internal/database"
	"github.com/avelune/formgate/internal/handler"
	"github.com/avelune/formgate/internal/logger"
	"github.com/avelune/formgate/internal/middleware"
	"github.com/avelune/formgate/internal/repository"
	"github.com/avelune/formgate/internal/router"
	"github.com/avelune/formgate/internal/server"
	"github.com/avelune/formgate/internal/service"
)

// shutdownTimeout bounds graceful shutdown: in-flight requests get
// this long to drain before the process exits.
const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Load logs the details itself; nothing is wired yet, so
		// there is nothing to clean up.
		os.Exit(1)
	}

	loggerService, err := logger.NewLoggerService(cfg)
	if err != nil {
		os.Exit(1)
	}

	log := logger.New(cfg, loggerService)

	ctx := context.Background()

	if err := database.Migrate(ctx, log, cfg); err != nil {
		log.Fatal().Err(err).Msg("Database migration failed")
	}

	s, err := server.New(cfg, log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize server")
	}

	repos := repository.NewRepositories(s)

	services, err := service.NewServices(s, repos)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize services")
	}

	handlers := handler.NewHandlers(s, services)
	middlewares := middleware.NewMiddlewares(s)

	e := router.New(handlers, middlewares)
	s.SetupHTTPServer(e)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Shutdown finished with errors")
		os.Exit(1)
	}

	log.Info().Msg("Shutdown complete")
}
