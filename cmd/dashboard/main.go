package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/sbdiallo/stockboard/internal/config"
	"github.com/sbdiallo/stockboard/internal/server/webui"
	"github.com/sbdiallo/stockboard/pkg/clients/inventory"
	"github.com/sbdiallo/stockboard/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	apiClient := inventory.NewClient(cfg.API)

	sessions := webui.NewSessionManager(func(token string) inventory.Client {
		return apiClient.WithToken(token)
	}, baseLogger.Named("sessions"))

	handler := webui.NewDashboardHandler(sessions, apiClient, baseLogger.Named("handlers.dashboard"))
	engine := webui.NewRouter(handler, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Dashboard.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("dashboard starting", zap.String("port", cfg.Dashboard.Port), zap.String("api", cfg.API.BaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
