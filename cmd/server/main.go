package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/lindqvistmarin/slipway/internal/config"
	"github.com/lindqvistmarin/slipway/internal/repository/mongodb"
	"github.com/lindqvistmarin/slipway/internal/repository/sheets"
	"github.com/lindqvistmarin/slipway/internal/scheduler"
	"github.com/lindqvistmarin/slipway/internal/server/handlers"
	"github.com/lindqvistmarin/slipway/internal/server/router"
	billingsvc "github.com/lindqvistmarin/slipway/internal/service/billing"
	exportsvc "github.com/lindqvistmarin/slipway/internal/service/export"
	fleetsvc "github.com/lindqvistmarin/slipway/internal/service/fleet"
	notessvc "github.com/lindqvistmarin/slipway/internal/service/notes"
	"github.com/lindqvistmarin/slipway/pkg/clients/notify"
	"github.com/lindqvistmarin/slipway/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.Debug))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	repo, err := mongodb.NewMongoRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	var notifier notify.Client
	if cfg.Notify.WebhookURL != "" {
		notifier = notify.NewClient(cfg.Notify)
		baseLogger.Info("ops webhook notifications enabled")
	} else {
		baseLogger.Warn("NOTIFY_WEBHOOK_URL missing, webhook notifications disabled")
	}

	var exportService *exportsvc.Service
	if cfg.LedgerEnabled() {
		ledger, err := sheets.NewLedgerSheetRepository(context.Background(), cfg.Ledger, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init ledger sheet repository", zap.Error(err))
		}
		exportService = exportsvc.NewService(ledger, repo, baseLogger.Named("svc.export"))
		baseLogger.Info("bookkeeping ledger export enabled")
	} else {
		baseLogger.Warn("ledger credentials missing, bookkeeping export disabled")
	}

	fleetService := fleetsvc.NewService(repo, baseLogger.Named("svc.fleet"))
	billingService := billingsvc.NewService(repo, baseLogger.Named("svc.billing"))
	notesService := notessvc.NewService(repo, notifier, baseLogger.Named("svc.notes"))

	engine := router.New(router.Handlers{
		Boats:    handlers.NewBoatHandler(fleetService, baseLogger.Named("handlers.boats")),
		Services: handlers.NewServiceHandler(fleetService, baseLogger.Named("handlers.services")),
		Invoices: handlers.NewInvoiceHandler(billingService, baseLogger.Named("handlers.invoices")),
		Notes:    handlers.NewNoteHandler(notesService, baseLogger.Named("handlers.notes")),
		Public:   handlers.NewPublicHandler(fleetService, notesService, cfg.Public.BaseURL, baseLogger.Named("handlers.public")),
	}, baseLogger.Named("router"), cfg.Server.Debug)

	sched := scheduler.NewScheduler(cfg.Jobs, exportService, billingService, notifier, baseLogger.Named("scheduler"))
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
