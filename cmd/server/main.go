package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/resaletracker/internal/bootstrap"
	"github.com/mamadbah2/resaletracker/internal/config"
	"github.com/mamadbah2/resaletracker/internal/repository/sheets"
	"github.com/mamadbah2/resaletracker/internal/scheduler"
	"github.com/mamadbah2/resaletracker/internal/server/handlers"
	"github.com/mamadbah2/resaletracker/internal/server/router"
	commandsvc "github.com/mamadbah2/resaletracker/internal/service/commands"
	reportingsvc "github.com/mamadbah2/resaletracker/internal/service/reporting"
	"github.com/mamadbah2/resaletracker/pkg/clients/notifier"
	"github.com/mamadbah2/resaletracker/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level, cfg.Log.Format))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	store, closeStore, err := bootstrap.OpenStore(context.Background(), cfg.Store, baseLogger.Named("repo.store"))
	if err != nil {
		baseLogger.Fatal("failed to init record store", zap.Error(err))
	}
	defer func() {
		if err := closeStore(context.Background()); err != nil {
			baseLogger.Error("failed to close record store", zap.Error(err))
		}
	}()

	ledgerSvc, err := bootstrap.NewLedger(store, cfg, baseLogger.Named("svc.ledger"))
	if err != nil {
		baseLogger.Fatal("failed to init ledger", zap.Error(err))
	}

	var sheetsRepo sheets.Repository
	if cfg.Sheets.Enabled() {
		sheetsRepo, err = sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		baseLogger.Info("sheets export enabled", zap.String("range", cfg.Sheets.ExportRange))
	}

	reportingSvc := reportingsvc.NewService(ledgerSvc, sheetsRepo, cfg.Reporting.Currency, cfg.Sheets.ExportRange, baseLogger.Named("svc.reporting"))

	var notify notifier.Client
	if cfg.Reporting.WebhookURL != "" {
		notify = notifier.NewWebhookClient(cfg.Reporting.WebhookURL)
		baseLogger.Info("report webhook enabled")
	} else {
		baseLogger.Warn("report webhook missing, weekly summaries are only logged")
	}

	sched, err := scheduler.NewScheduler(cfg.Reporting, reportingSvc, notify, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	articleHandler := handlers.NewArticleHandler(ledgerSvc, baseLogger.Named("handlers.articles"))
	analyticsHandler := handlers.NewAnalyticsHandler(ledgerSvc, sched, baseLogger.Named("handlers.analytics"))
	commandDispatcher := commandsvc.NewService(ledgerSvc, reportingSvc, baseLogger.Named("svc.commands"))
	commandHandler := handlers.NewCommandHandler(commandDispatcher, baseLogger.Named("handlers.commands"))
	engine := router.New(articleHandler, analyticsHandler, commandHandler, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
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
