package main

import (
	"context"
	"flag"
	"log"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"tablero/adapters/excel"
	"tablero/adapters/postgres"
	"tablero/app"
	"tablero/domain/core"
	"tablero/internal"
	"tablero/internal/config"
)

func main() {
	var (
		file    = flag.String("file", "", "path to the .xlsx or .csv file to ingest")
		dataset = flag.String("dataset", "", "dataset id to write")
		name    = flag.String("name", "", "dataset display name (defaults to the file name)")
	)
	flag.Parse()
	if *file == "" || *dataset == "" {
		log.Fatal("usage: ingest -file <path> -dataset <id> [-name <name>]")
	}
	if *name == "" {
		*name = filepath.Base(*file)
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("connecting to database: %v", err)
	}
	defer db.Close()

	if err := postgres.Migrate(db); err != nil {
		log.Fatalf("migrating database: %v", err)
	}

	id, err := core.ParseDatasetID(*dataset)
	if err != nil {
		log.Fatalf("dataset id: %v", err)
	}

	logger := internal.NewDefaultLogger("ingest")
	svc := app.NewIngestionService(postgres.NewDatasetRepository(db), nil, logger)
	count, err := svc.Ingest(context.Background(), id, *name, excel.NewDataReader(*file))
	if err != nil {
		log.Fatalf("ingesting %s: %v", *file, err)
	}
	logger.Info("done, %d rows stored in dataset %s", count, *dataset)
}
