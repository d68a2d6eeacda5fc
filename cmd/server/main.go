package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	ledgerhandler "notadesk/internal/ledger/handler"
	"notadesk/internal/ledger/service"
	"notadesk/internal/ledger/store"
	"notadesk/internal/orgunit"
	"notadesk/internal/platform/config"
	"notadesk/internal/platform/httpserver"
	"notadesk/internal/platform/logger"
	"notadesk/internal/platform/metrics"
	"notadesk/internal/report"
	httptransport "notadesk/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	catalog, err := orgunit.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		log.Error("loading org unit catalog", "error", err.Error())
		os.Exit(1)
	}
	registry, err := orgunit.New(catalog)
	if err != nil {
		log.Error("building org unit registry", "error", err.Error())
		os.Exit(1)
	}

	var snapshots store.SnapshotStore
	if cfg.DBPath != "" {
		sqlStore, err := store.NewSQLiteSnapshotStore(cfg.DBPath)
		if err != nil {
			log.Error("opening snapshot database", "path", cfg.DBPath, "error", err.Error())
			os.Exit(1)
		}
		defer sqlStore.Close()
		snapshots = sqlStore
		log.Info("snapshot persistence enabled", "path", cfg.DBPath)
	} else {
		snapshots = store.NewInMemorySnapshotStore()
		log.Warn("no NOTADESK_DB_PATH set, session state will not survive restarts")
	}

	m := metrics.New()
	ledger, err := service.New(snapshots, registry,
		service.WithLogger(log),
		service.WithMetrics(m),
	)
	if err != nil {
		log.Error("restoring ledger state", "error", err.Error())
		os.Exit(1)
	}

	router := httptransport.NewRouter(log, cfg.RequestTimeout,
		ledgerhandler.New(ledger, log, cfg.ERP),
		report.NewHandler(ledger),
		orgunit.NewHandler(registry),
	)

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting notadesk", "addr", cfg.Addr, "documents", len(ledger.All()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped", "error", err.Error())
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
