package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"fxconvert/internal/adapters"
	"fxconvert/internal/adapters/cache"
	"fxconvert/internal/adapters/forex"
	"fxconvert/internal/adapters/postgres"
	"fxconvert/internal/adapters/sqlite"
	"fxconvert/internal/api"
	"fxconvert/internal/config"
	"fxconvert/internal/conversion"
	"fxconvert/internal/conversion/handler"
	"fxconvert/internal/platform/db"
	httpserver "fxconvert/internal/platform/http"
	"fxconvert/internal/reason"

	"github.com/sirupsen/logrus"
)

type Options struct {
	// MigrateOnStart applies pending postgres migrations before serving.
	MigrateOnStart bool
}

type stores struct {
	conversions adapters.ConversionRepository
	reasons     adapters.ReasonRepository
	close       func()
}

// ConfigureLogger points logrus at stdout with the configured level, info when unparsable.
func ConfigureLogger(level string) {
	logrus.SetOutput(os.Stdout)
	if parsedLvl, err := logrus.ParseLevel(level); err != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
}

// Run wires the application components and blocks until ctx is canceled or the server fails.
func Run(ctx context.Context, appCfg *config.AppConfig, opts Options) error {
	if err := appCfg.Validate(); err != nil {
		return err
	}

	// Bounded context for startup operations (DB connect, first reason load)
	startupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	st, err := openStores(startupCtx, appCfg, opts)
	if err != nil {
		logrus.WithError(err).Error("Error opening conversion store")
		return err
	}
	defer st.close()

	reasonCache, err := cache.NewReasonCache(appCfg.Reasons.CacheSize)
	if err != nil {
		return err
	}
	defer reasonCache.Close()

	refresher := reason.NewRefresher(st.reasons, reasonCache, time.Duration(appCfg.Reasons.RefreshIntervalSec)*time.Second)
	// Ensure refresher stops before the store closes
	defer func() {
		if sdErr := refresher.Shutdown(); sdErr != nil {
			logrus.Errorf("Reason refresher shutdown error: %v", sdErr)
		}
	}()
	if startErr := refresher.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start reason refresher")
		return startErr
	}
	logrus.Info("✅ Reason catalogue loaded")

	httpTimeout := appCfg.HTTPClient.Timeout()
	if httpTimeout <= 0 {
		httpTimeout = 10 * time.Second
	}
	rateClient := forex.NewClient(&http.Client{Timeout: httpTimeout}, appCfg.Forex)

	engine := conversion.NewEngine(rateClient, conversion.Policy{ReasonRequired: appCfg.Conversion.ReasonRequired})
	service := conversion.NewService(engine, rateClient, st.conversions, st.reasons, reasonCache)
	router := api.NewRouter(handler.NewHandler(service), appCfg.HTTPServer.RequestTimeout())

	logrus.WithFields(logrus.Fields{
		"store":           appCfg.Store.Driver,
		"reason_required": appCfg.Conversion.ReasonRequired,
		"forex_base_url":  appCfg.Forex.BaseURL,
	}).Info("Starting http server")
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

func openStores(ctx context.Context, appCfg *config.AppConfig, opts Options) (stores, error) {
	switch appCfg.Store.Driver {
	case config.StoreDriverSQLite:
		s, err := sqlite.Open(ctx, appCfg.Store.SQLitePath)
		if err != nil {
			return stores{}, err
		}
		logrus.Infof("✅ SQLite store opened at %s", appCfg.Store.SQLitePath)
		return stores{
			conversions: s,
			reasons:     s,
			close: func() {
				if closeErr := s.Close(); closeErr != nil {
					logrus.Errorf("SQLite close error: %v", closeErr)
				}
			},
		}, nil

	case config.StoreDriverPostgres:
		if opts.MigrateOnStart {
			if err := db.MigrateUp(ctx, appCfg.DbServer.GetConnectionStr()); err != nil {
				return stores{}, fmt.Errorf("apply migrations failed: %w", err)
			}
			logrus.Info("✅ Migrations applied")
		}
		pool, err := db.Connect(ctx, appCfg.DbServer)
		if err != nil {
			return stores{}, err
		}
		logrus.Info("✅ Postgres connection successful")
		return stores{
			conversions: postgres.NewConversionRepository(pool),
			reasons:     postgres.NewReasonRepository(pool),
			close:       pool.Close,
		}, nil

	default:
		return stores{}, fmt.Errorf("unsupported store driver %q", appCfg.Store.Driver)
	}
}
