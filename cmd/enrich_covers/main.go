// Caza híbrida de carátulas (iTunes + Deezer) para los registros que aún
// no tienen cover_image.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sync/atomic"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/rokola-web/catalog-api/pkg/catalog/config"
	"github.com/rokola-web/catalog-api/pkg/catalog/database"
	"github.com/rokola-web/catalog-api/pkg/catalog/models"
	"github.com/rokola-web/catalog-api/pkg/coverart"
)

func main() {
	workers := flag.Int64("workers", 4, "concurrent lookups against iTunes/Deezer")
	limit := flag.Int("limit", 0, "max rows to process (0 = all)")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf(".env not loaded: %v", err)
	}
	cfg := config.FromEnv()

	db, err := database.Connect(storeDSN())
	if err != nil {
		log.Fatalf("sin conexión al catálogo: %v", err)
	}

	var songs []models.Song
	q := db.Table(cfg.Table).Where("cover_image IS NULL OR cover_image = ''")
	if *limit > 0 {
		q = q.Limit(*limit)
	}
	if err := q.Find(&songs).Error; err != nil {
		log.Fatalf("lectura del catálogo falló: %v", err)
	}
	if len(songs) == 0 {
		log.Println("no queda nada sin carátula")
		return
	}
	log.Printf("misión: encontrar %d carátulas", len(songs))

	hunter := coverart.NewHunter(nil)
	sem := semaphore.NewWeighted(*workers)
	g, ctx := errgroup.WithContext(context.Background())

	var found atomic.Int64
	for _, song := range songs {
		song := song
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)

			coverURL, via := hunter.Hunt(ctx, song.Artist, song.CleanTitle)
			if coverURL == "" {
				log.Printf("❌ %s - %s (no hallada)", song.Artist, song.CleanTitle)
				return nil
			}
			err := db.Table(cfg.Table).Where("id = ?", song.Id).
				Update("cover_image", coverURL).Error
			if err != nil {
				return fmt.Errorf("update %s: %w", song.Id, err)
			}
			log.Printf("✅ %s - %s (vía: %s)", song.Artist, song.CleanTitle, via)
			found.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("caza interrumpida: %v", err)
	}
	log.Printf("fin: %d carátulas nuevas de %d", found.Load(), len(songs))
}

func storeDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s",
		os.Getenv("DB_USERNAME"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOSTNAME"), os.Getenv("DB_DBNAME"))
}
