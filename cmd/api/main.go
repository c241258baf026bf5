package main

import (
	"log"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"tablero/adapters/postgres"
	"tablero/app"
	"tablero/internal"
	"tablero/internal/config"
	"tablero/internal/datacache"
	"tablero/ui"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration: %v", err)
	}
	logger := internal.NewDefaultLogger("tablero")

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("connecting to database: %v", err)
	}
	defer db.Close()

	if err := postgres.Migrate(db); err != nil {
		log.Fatalf("migrating database: %v", err)
	}

	orders := postgres.NewOrderRepository(db)
	items := postgres.NewLineItemRepository(db)
	customers := postgres.NewCustomerRepository(db)
	inventory := postgres.NewInventoryRepository(db)
	datasets := postgres.NewDatasetRepository(db)

	cache := datacache.New(cfg.Cache.MaxEntries, cfg.Cache.TTL)
	analysis := app.NewAnalysisService(datasets, cache, logger.With("analysis"))
	overview := app.NewOverviewService(orders, items, customers, logger.With("overview"))
	sales := app.NewSaleSaga(inventory, orders, items, cfg.Commerce.DefaultOrderStatus, logger.With("sales"))

	server := ui.NewServer(analysis, overview, sales, logger.With("http"))

	addr := ":" + cfg.Server.Port
	logger.Info("listening on %s", addr)
	if err := http.ListenAndServe(addr, server); err != nil {
		log.Fatalf("http server: %v", err)
	}
}
