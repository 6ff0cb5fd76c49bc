package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mohitk/splitledger/internal/api"
	"github.com/mohitk/splitledger/internal/config"
	"github.com/mohitk/splitledger/internal/money"
	"github.com/mohitk/splitledger/internal/service"
	"github.com/mohitk/splitledger/internal/storage/sqlite"
	"github.com/mohitk/splitledger/pkg/logging"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default config.yaml)")
	jsonLogs := flag.Bool("json-logs", false, "emit JSON logs instead of colored output")
	flag.Parse()

	if *jsonLogs {
		logging.SetupJSON()
	} else {
		logging.Setup()
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("storage initialized", "database", cfg.Database.Path)

	currency := money.Currency{
		Code:     cfg.Currency.Code,
		Symbol:   cfg.Currency.Symbol,
		Exponent: cfg.Currency.Exponent,
	}

	ledgerSvc := service.NewLedgerService(store, currency)
	debtSvc := service.NewDebtService(store)

	mux := http.NewServeMux()
	api.New(ledgerSvc, debtSvc, currency).Routes(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	slog.Info("server starting", "address", addr, "currency", currency.Code)
	if err := http.ListenAndServe(addr, api.Middleware(mux)); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
