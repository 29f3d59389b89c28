package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"datasight/internal"
	"datasight/internal/api"
	"datasight/internal/config"
	"datasight/internal/container"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := internal.NewLogger(internal.ParseLogLevel(cfg.Log.Level))
	if cfg.Log.JSON {
		logger = internal.NewJSONLogger(internal.ParseLogLevel(cfg.Log.Level))
	}
	defer logger.Sync()

	c, err := container.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to build container: %w", err)
	}

	server := api.NewServer(c.Pipeline, c.Reader, logger, api.WithUsage(c.Usage))
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("[API] listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("[API] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
