package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/astro-web3/dashboard-authgate/internal/config"
	httptransport "github.com/astro-web3/dashboard-authgate/internal/transport/http"
	"github.com/astro-web3/dashboard-authgate/pkg/logger"
	"github.com/astro-web3/dashboard-authgate/pkg/otel"
)

const shutdownTimeoutSeconds = 10

func main() {
	cfg := config.MustLoad()

	srv, err := httptransport.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	ctx := context.Background()

	serverErrChan := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "starting http server",
			slog.String("addr", cfg.Server.Addr),
			slog.String("mode", cfg.Server.Mode),
			slog.String("identity_source", cfg.Auth.Identity.Source),
		)
		if listenErr := srv.ListenAndServe(); listenErr != nil &&
			!errors.Is(listenErr, http.ErrServerClosed) {
			serverErrChan <- listenErr
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.InfoContext(ctx, "shutting down server", slog.String("signal", sig.String()))
	case serverErr := <-serverErrChan:
		logger.ErrorContext(ctx, "server error, shutting down", slog.Any("error", serverErr))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, shutdownTimeoutSeconds*time.Second)
	defer shutdownCancel()

	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.ErrorContext(ctx, "server forced to shutdown", slog.Any("error", shutdownErr))
	} else {
		logger.InfoContext(ctx, "server stopped gracefully")
	}

	if shutdownErr := otel.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.ErrorContext(ctx, "failed to shutdown tracer provider", slog.Any("error", shutdownErr))
	}
}
