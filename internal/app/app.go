package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"arbscanner/internal/adapters"
	"arbscanner/internal/adapters/cache"
	"arbscanner/internal/adapters/exchanges"
	"arbscanner/internal/adapters/httpclient"
	"arbscanner/internal/adapters/notifier"
	"arbscanner/internal/adapters/postgres"
	"arbscanner/internal/api"
	"arbscanner/internal/arbitrage"
	"arbscanner/internal/arbitrage/handler"
	"arbscanner/internal/config"
	"arbscanner/internal/platform/db"
	httpserver "arbscanner/internal/platform/http"
	"arbscanner/internal/platform/logging"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts HTTP server and scheduler
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	logCloser := logging.Setup(appCfg.Logging)
	defer func() { _ = logCloser.Close() }()
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect, schema check)
	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// DB pool
	pool, err := db.CreatePoolAndPing(startupCtx, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return err
	}
	defer pool.Close()
	logrus.Info("✅ Postgres connection successful")

	recreated, err := postgres.EnsureSchema(startupCtx, pool)
	if err != nil {
		logrus.WithError(err).Error("Failed to prepare schema")
		return err
	}
	logrus.WithField("recreated", recreated).Info("✅ Schema is up to date")

	// Exchanges
	providers, err := exchanges.DefaultRegistry().Select(appCfg.Arbitrage.Exchanges)
	if err != nil {
		return fmt.Errorf("invalid exchange list: %w", err)
	}

	// Base HTTP client (configurable timeout)
	httpTimeout := time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	baseHTTPClient := &http.Client{Timeout: httpTimeout}

	// Adapters
	quoteClient := httpclient.NewQuoteClient(baseHTTPClient)
	resultRepo := postgres.NewResultRepository(pool)
	resultCache, err := cache.NewResultCache(appCfg.Cache.MaxItems)
	if err != nil {
		return fmt.Errorf("failed to create result cache: %w", err)
	}
	defer resultCache.Close()

	var alertNotifier adapters.Notifier
	if appCfg.Alert.Enabled() {
		alertNotifier = notifier.NewTelegramNotifier(baseHTTPClient, "", appCfg.Alert.TelegramToken, appCfg.Alert.TelegramChatID)
		logrus.Info("✅ Telegram alerts enabled")
	} else {
		logrus.Warn("Telegram token or chat id missing, alerts will only be logged")
	}

	// Core
	clock := clockwork.NewRealClock()
	dispatcher := arbitrage.NewDispatcher(
		arbitrage.NewAlertState(),
		alertNotifier,
		clock,
		appCfg.Arbitrage.ProfitThresholdPct,
		appCfg.Alert.Cooldown(),
		appCfg.Alert.DashboardURL,
	)
	cycle := arbitrage.NewCycle(
		appCfg.Arbitrage.Assets,
		providers,
		arbitrage.NewFetcher(quoteClient),
		arbitrage.NewCalculator(appCfg.Arbitrage.FeePerTradePct),
		resultRepo,
		resultCache,
		dispatcher,
		clock,
	)

	scheduler := arbitrage.NewScheduler(cycle, appCfg.Scheduler.Interval())
	// Ensure scheduler stops before DB pool closes
	defer func() {
		if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
		}
	}()
	// Start scheduler tied to root context
	if startErr := scheduler.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start scheduler")
		return startErr
	}
	logrus.WithFields(logrus.Fields{
		"assets":    appCfg.Arbitrage.Assets,
		"exchanges": appCfg.Arbitrage.Exchanges,
		"interval":  appCfg.Scheduler.Interval(),
	}).Info("✅ Scheduler activation successful")

	// Handlers and router
	resultsHandler := handler.NewResultsHandler(
		arbitrage.NewValidator(appCfg.Arbitrage.Assets, appCfg.Arbitrage.Exchanges),
		arbitrage.NewService(resultRepo, resultCache),
		handler.Settings{
			FeePerTradePct:     appCfg.Arbitrage.FeePerTradePct,
			ProfitThresholdPct: appCfg.Arbitrage.ProfitThresholdPct,
			CycleIntervalSec:   appCfg.Scheduler.IntervalSec,
		},
	)
	router := api.NewRouter(resultsHandler)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		// Cancel the root context to stop scheduler and other in-flight work
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}
