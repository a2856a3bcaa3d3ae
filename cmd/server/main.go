package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/sbdiallo/stockboard/internal/auth"
	"github.com/sbdiallo/stockboard/internal/config"
	"github.com/sbdiallo/stockboard/internal/repository/mongodb"
	"github.com/sbdiallo/stockboard/internal/repository/sheets"
	"github.com/sbdiallo/stockboard/internal/scheduler"
	"github.com/sbdiallo/stockboard/internal/server/handlers"
	"github.com/sbdiallo/stockboard/internal/server/router"
	reportingsvc "github.com/sbdiallo/stockboard/internal/service/reporting"
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

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	var exporter sheets.Exporter
	if cfg.SheetsEnabled() {
		sheetsExporter, err := sheets.NewGoogleSheetExporter(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		exporter = sheetsExporter
		baseLogger.Info("sheets snapshot export enabled")
	} else {
		baseLogger.Warn("sheets credentials missing, snapshot export disabled")
	}

	reportingSvc := reportingsvc.NewService(mongoRepo, exporter, baseLogger.Named("svc.reporting"))

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	itemsHandler := handlers.NewItemsHandler(mongoRepo, baseLogger.Named("handlers.items"))
	statsHandler := handlers.NewStatsHandler(mongoRepo, baseLogger.Named("handlers.stats"))
	authHandler := handlers.NewAuthHandler(mongoRepo, jwtManager, baseLogger.Named("handlers.auth"))
	engine := router.New(itemsHandler, statsHandler, authHandler, jwtManager, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(cfg.Reporting, reportingSvc, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("inventory api starting", zap.String("port", cfg.Server.Port))
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
