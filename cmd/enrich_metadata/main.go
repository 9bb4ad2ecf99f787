// Enriquecimiento de metadatos vía Last.fm para canciones huérfanas de
// género. Secuencial a propósito: la API de Last.fm castiga las ráfagas.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/rokola-web/catalog-api/pkg/catalog/config"
	"github.com/rokola-web/catalog-api/pkg/catalog/database"
	"github.com/rokola-web/catalog-api/pkg/catalog/models"
	"github.com/rokola-web/catalog-api/pkg/lastfm"
)

func main() {
	limit := flag.Int("limit", 500, "max rows to process per run")
	pause := flag.Duration("pause", 200*time.Millisecond, "delay between Last.fm calls")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf(".env not loaded: %v", err)
	}
	cfg := config.FromEnv()

	apiKey := os.Getenv("LASTFM_API_KEY")
	if apiKey == "" {
		log.Fatal("missing LASTFM_API_KEY")
	}

	db, err := database.Connect(storeDSN())
	if err != nil {
		log.Fatalf("sin conexión al catálogo: %v", err)
	}

	var songs []models.Song
	err = db.Table(cfg.Table).
		Where("(genre IS NULL OR genre = '' OR genre = 'General') AND artist <> ''").
		Limit(*limit).
		Find(&songs).Error
	if err != nil {
		log.Fatalf("lectura del catálogo falló: %v", err)
	}
	log.Printf("en cola: %d canciones huérfanas de género", len(songs))

	client := lastfm.NewClient(apiKey, nil)
	ctx := context.Background()

	processed, rescued := 0, 0
	for _, song := range songs {
		info, err := client.GetTrackInfo(ctx, song.Artist, song.CleanTitle)
		if err != nil {
			log.Printf("⚠️ %s - %s: %v", song.Artist, song.CleanTitle, err)
			time.Sleep(*pause)
			continue
		}

		// Plan B: género del artista
		if info.Genre == "" {
			if genre, err := client.GetArtistTopGenre(ctx, song.Artist); err == nil && genre != "" {
				info.Genre = genre
				rescued++
			}
		}

		if !info.Found && info.Genre == "" {
			log.Printf("❌ %s - %s (sin datos)", song.Artist, song.CleanTitle)
			time.Sleep(*pause)
			continue
		}

		// COALESCE a mano: solo pisamos lo que venga con contenido.
		updates := map[string]any{}
		if info.MBID != "" {
			updates["lastfm_mbid"] = info.MBID
		}
		if info.Album != "" && song.Album == "" {
			updates["album"] = info.Album
		}
		if info.Image != "" && song.CoverImage == "" {
			updates["cover_image"] = info.Image
		}
		if info.Genre != "" {
			updates["genre"] = info.Genre
		}
		if info.Summary != "" && song.Summary == "" {
			updates["music_summary"] = info.Summary
		}
		if info.DurationMs > song.DurationMs {
			updates["duration_ms"] = info.DurationMs
		}
		if len(updates) > 0 {
			if err := db.Table(cfg.Table).Where("id = ?", song.Id).Updates(updates).Error; err != nil {
				log.Fatalf("update %s falló: %v", song.Id, err)
			}
			log.Printf("✅ %s - %s [%s]", song.Artist, song.CleanTitle, info.Genre)
			processed++
		}

		time.Sleep(*pause)
	}

	log.Printf("resumen: %d procesadas, %d rescatadas por tags de artista", processed, rescued)
}

func storeDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s",
		os.Getenv("DB_USERNAME"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOSTNAME"), os.Getenv("DB_DBNAME"))
}
