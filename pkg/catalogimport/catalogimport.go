// Package catalogimport syncs the legacy Postgres table into the serving
// store. It is the producer of every invariant the serving API relies on:
// well-formed records, the artist/title index columns, and above all the
// search_keywords bag that the bounded scan matches against.
package catalogimport

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rokola-web/catalog-api/pkg/catalog/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LegacySong is one row of the master query against musica_startup.
type LegacySong struct {
	Id             sql.NullString
	DriveFileId    sql.NullString
	CleanTitle     sql.NullString
	Artist         sql.NullString
	Album          sql.NullString
	Genre          sql.NullString
	DurationMs     sql.NullInt64
	CoverImage     sql.NullString
	WebViewLink    sql.NullString
	Summary        sql.NullString
	Origin         sql.NullString
	Curator        sql.NullString
	LastfmMbid     sql.NullString
	Nationality    sql.NullString
	RealName       sql.NullString
	ReleaseYear    sql.NullInt64
	Country        sql.NullString
	Style          sql.NullString
	RecordLabel    sql.NullString
	OriginalFormat sql.NullString
	DiscogsId      sql.NullInt64
}

// Source yields the legacy rows to import.
type Source interface {
	FetchSongs(ctx context.Context) ([]LegacySong, error)
}

type Options struct {
	Table     string
	BatchSize int
	DryRun    bool
}

type Result struct {
	Total    int
	Imported int
}

// Import reads the legacy catalog, normalizes every row and upserts the
// result into the serving store in batches.
func Import(ctx context.Context, src Source, dst *gorm.DB, opts Options) (Result, error) {
	if opts.Table == "" {
		opts.Table = "musica_startup"
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 100
	}

	rows, err := src.FetchSongs(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("lectura del catálogo legacy falló: %w", err)
	}
	res := Result{Total: len(rows)}
	log.Printf("paquete de datos preparado: %d registros", res.Total)

	songs := make([]models.Song, 0, len(rows))
	for _, row := range rows {
		songs = append(songs, Normalize(row))
	}

	if opts.DryRun {
		return res, nil
	}

	if err := dst.WithContext(ctx).Table(opts.Table).AutoMigrate(&models.Song{}); err != nil {
		return res, fmt.Errorf("migración de esquema falló: %w", err)
	}
	err = dst.WithContext(ctx).Table(opts.Table).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		CreateInBatches(songs, opts.BatchSize).Error
	if err != nil {
		return res, fmt.Errorf("carga al store falló: %w", err)
	}
	res.Imported = len(songs)
	return res, nil
}

// Normalize fills the defaults the serving side expects and derives the
// keyword bag. Rows that arrive without an id get a fresh one.
func Normalize(row LegacySong) models.Song {
	song := models.Song{
		Id:             strings.TrimSpace(row.Id.String),
		DriveFileId:    row.DriveFileId.String,
		CleanTitle:     fallback(row.CleanTitle.String, "Desconocido"),
		Artist:         fallback(row.Artist.String, "Varios"),
		Album:          row.Album.String,
		Genre:          fallback(row.Genre.String, "General"),
		DurationMs:     row.DurationMs.Int64,
		CoverImage:     row.CoverImage.String,
		WebViewLink:    row.WebViewLink.String,
		Summary:        fallback(row.Summary.String, "Sin descripción disponible."),
		Origin:         row.Origin.String,
		Curator:        row.Curator.String,
		LastfmMbid:     row.LastfmMbid.String,
		Nationality:    fallback(row.Nationality.String, "No especificada"),
		Country:        row.Country.String,
		Style:          row.Style.String,
		RecordLabel:    row.RecordLabel.String,
		OriginalFormat: row.OriginalFormat.String,
	}
	song.RealName = fallback(row.RealName.String, song.Artist)
	if song.Id == "" {
		song.Id = uuid.NewString()
	}
	if row.ReleaseYear.Valid {
		year := int(row.ReleaseYear.Int64)
		song.ReleaseYear = &year
	}
	if row.DiscogsId.Valid {
		id := row.DiscogsId.Int64
		song.DiscogsId = &id
	}

	song.SearchKeywords = BuildSearchKeywords(song)
	return song
}

// BuildSearchKeywords derives the lower-cased bag of terms a record can be
// found by. The serving side treats this as opaque: whatever ends up here
// is what the conjunctive substring filter sees.
func BuildSearchKeywords(song models.Song) string {
	parts := []string{
		song.CleanTitle,
		song.Artist,
		song.Album,
		song.Nationality,
		song.RealName,
	}
	if song.ReleaseYear != nil {
		parts = append(parts, strconv.Itoa(*song.ReleaseYear))
	}
	parts = append(parts, song.Style, song.Country)

	kept := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" && p != "No especificada" {
			kept = append(kept, p)
		}
	}
	return strings.ToLower(strings.Join(kept, " "))
}

func fallback(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
