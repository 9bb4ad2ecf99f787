package jobs

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
	"github.com/rokola-web/catalog-api/pkg/catalog/repositories"
	"github.com/rokola-web/catalog-api/pkg/tools"
)

// ScheduleDailyIndexAudit probes the artist index once a day with a prefix
// query for a known artist. A healthy index answers in one cheap query; a
// renamed or dropped index would otherwise only show up as every free-text
// request degrading to the scan path.
func ScheduleDailyIndexAudit(ctx context.Context, repo repositories.SongRepository, probeArtist string) *cron.Cron {
	c := cron.New()
	_, _ = c.AddFunc("@daily", func() {
		tools.Dispatch(context.Background(), "index_audit", func(ctx context.Context) error {
			return AuditArtistIndex(ctx, repo, probeArtist)
		})
	})
	c.Start()

	go func() {
		<-ctx.Done()
		c.Stop()
	}()
	return c
}

// AuditArtistIndex runs a single probe and logs the verdict.
func AuditArtistIndex(ctx context.Context, repo repositories.SongRepository, probeArtist string) error {
	items, err := repo.FindByArtistPrefix(ctx, probeArtist)
	if err != nil {
		return fmt.Errorf("el índice de artista no responde: %w", err)
	}
	if len(items) == 0 {
		log.Printf("[WARN] auditoría: 0 resultados para el artista de prueba %q (¿falta sincronizar?)", probeArtist)
		return nil
	}
	log.Printf("auditoría: índice de artista OK, %d canciones para %q", len(items), probeArtist)
	return nil
}
