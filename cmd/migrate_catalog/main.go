// Migración maestra: Postgres legacy -> serving store.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/rokola-web/catalog-api/pkg/catalog/config"
	"github.com/rokola-web/catalog-api/pkg/catalog/database"
	"github.com/rokola-web/catalog-api/pkg/catalogimport"
)

func main() {
	batchSize := flag.Int("batch-size", 100, "rows per upsert batch")
	dryRun := flag.Bool("dry-run", false, "read and normalize without writing to the serving store")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf(".env not loaded: %v", err)
	}
	cfg := config.FromEnv()

	src, err := openLegacy()
	if err != nil {
		log.Fatalf("conexión al Postgres legacy falló: %v", err)
	}
	defer src.Close()

	dst, err := database.Connect(storeDSN())
	if err != nil {
		log.Fatalf("conexión al serving store falló: %v", err)
	}

	res, err := catalogimport.Import(context.Background(), &catalogimport.SQLSource{DB: src}, dst, catalogimport.Options{
		Table:     cfg.Table,
		BatchSize: *batchSize,
		DryRun:    *dryRun,
	})
	if err != nil {
		log.Fatalf("migración falló: %v", err)
	}
	if err := database.EnsureIndexes(dst, cfg.Table, cfg.ArtistIndex, cfg.TitleIndex); err != nil {
		log.Fatalf("creación de índices falló: %v", err)
	}

	log.Printf("sincronización exitosa: %d de %d registros", res.Imported, res.Total)
}

func openLegacy() (*sql.DB, error) {
	host := os.Getenv("LEGACY_DB_HOST")
	pass := os.Getenv("LEGACY_DB_PASSWORD")
	if host == "" {
		return nil, fmt.Errorf("missing LEGACY_DB_HOST")
	}
	dsn := fmt.Sprintf("host=%s port=5432 user=postgres password=%s dbname=postgres sslmode=require", host, pass)
	return sql.Open("postgres", dsn)
}

func storeDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s",
		os.Getenv("DB_USERNAME"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOSTNAME"), os.Getenv("DB_DBNAME"))
}
