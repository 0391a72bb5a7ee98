package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mytheresa/go-assortment/app/config"
	"github.com/mytheresa/go-assortment/app/database"
	"github.com/mytheresa/go-assortment/app/logging"
	"github.com/mytheresa/go-assortment/app/server"
	"github.com/mytheresa/go-assortment/models"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logging.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer log.Sync()

	db, closeDB, err := database.New(cfg.Database, log)
	if err != nil {
		return err
	}
	defer closeDB()

	if cfg.Database.AutoMigrate {
		if err := models.Migrate(db); err != nil {
			return err
		}
		log.Info("database schema migrated")
	}

	srv := server.New(server.NewRouter(db, log), cfg.HTTP)

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server started", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		log.Error("HTTP server failed", zap.Error(err))
		return err
	case <-ctx.Done():
		log.Info("received shutdown signal, stopping gracefully")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
		return err
	}
	log.Info("HTTP server stopped")
	return nil
}
