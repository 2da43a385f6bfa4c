// Package main starts the HTTP server of the POS administration service.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/avolkov/pos-admin/internal/config"
	"github.com/avolkov/pos-admin/internal/handler"
	"github.com/avolkov/pos-admin/internal/middleware"
	"github.com/avolkov/pos-admin/internal/repository"
	"github.com/avolkov/pos-admin/internal/service"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	repo, err := repository.NewPostgresRepository(cfg.DatabaseURI)
	if err != nil {
		sugar.Fatalw("database initialization error", "error", err.Error())
	}
	defer repo.Close()

	svc := service.NewService(repo, cfg.SessionTTL)
	defer svc.Close()

	if cfg.AdminPassword != "" {
		seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err := svc.EnsureAdmin(seedCtx, cfg.AdminUsername, cfg.AdminPassword)
		cancel()
		if err != nil {
			sugar.Fatalw("admin bootstrap error", "error", err.Error())
		}
	} else {
		sugar.Warn("ADMIN_PASSWORD not set, skipping admin bootstrap")
	}

	authMiddleware := middleware.NewAuthMiddleware(svc)
	h := handler.NewHandler(svc, logger, authMiddleware)

	r := h.SetupRouter()

	server := &http.Server{
		Addr:    cfg.RunAddress,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sugar.Infow("starting pos-admin server", "addr", cfg.RunAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}
