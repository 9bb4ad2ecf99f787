package main

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"

	catalog "github.com/rokola-web/catalog-api/pkg/catalog"
	"github.com/rokola-web/catalog-api/pkg/catalog/config"
	"github.com/rokola-web/catalog-api/pkg/catalog/database"
	"github.com/rokola-web/catalog-api/pkg/catalog/handler"
	"github.com/rokola-web/catalog-api/pkg/catalog/repositories"
	"github.com/rokola-web/catalog-api/pkg/catalog/services"
	"github.com/rokola-web/catalog-api/pkg/catalog/token"
	"github.com/rokola-web/catalog-api/pkg/jobs"
)

func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()

	db, err := database.Connect(storeDSN())
	if err != nil {
		log.Fatalf("[FATAL] sin conexión al catálogo: %v", err)
	}
	if err := database.EnsureIndexes(db, cfg.Table, cfg.ArtistIndex, cfg.TitleIndex); err != nil {
		log.Printf("[WARN] índices no verificados: %v", err)
	}

	songRepo := repositories.NewSongRepository(db, cfg.Table, cfg.ScanPageSize)
	codec := token.NewCodec(cfg.TokenSecret, cfg.TokenTTL)
	searchService := services.NewSearchService(songRepo, codec, cfg.ScanMaxResults, cfg.ScanMaxPages)
	songsController := handler.NewSongsController(searchService)
	jobs.ScheduleDailyIndexAudit(context.Background(), songRepo, cfg.AuditProbeArtist)

	// Start server
	router := catalog.NewRouter(songsController)

	log.Printf("Server is running on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, router))
}

func storeDSN() string {
	u := &url.URL{
		Scheme: "postgres",
		Host:   os.Getenv("DB_HOSTNAME"),
		Path:   os.Getenv("DB_DBNAME"),
	}
	u.User = url.UserPassword(os.Getenv("DB_USERNAME"), os.Getenv("DB_PASSWORD"))

	q := u.Query()
	if schema := strings.TrimSpace(os.Getenv("DB_SCHEMA")); schema != "" {
		q.Set("search_path", schema)
	}
	u.RawQuery = q.Encode()
	return u.String()
}
