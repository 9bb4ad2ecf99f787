package services

import (
	"context"
	"log"
	"strings"

	"github.com/rokola-web/catalog-api/pkg/catalog/helpers/apperr"
	"github.com/rokola-web/catalog-api/pkg/catalog/helpers/util"
	"github.com/rokola-web/catalog-api/pkg/catalog/models"
	"github.com/rokola-web/catalog-api/pkg/catalog/repositories"
	"github.com/rokola-web/catalog-api/pkg/catalog/token"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SearchService implements the query planner: pick the cheapest strategy
// that can answer the request, fall back to the bounded scan only when no
// index path applies.
type SearchService struct {
	repo       repositories.SongRepository
	codec      *token.Codec
	maxResults int
	maxPages   int
}

func NewSearchService(repo repositories.SongRepository, codec *token.Codec, maxResults, maxPages int) *SearchService {
	if maxResults <= 0 {
		maxResults = 50
	}
	if maxPages <= 0 {
		maxPages = 5
	}
	return &SearchService{
		repo:       repo,
		codec:      codec,
		maxResults: maxResults,
		maxPages:   maxPages,
	}
}

// Search resolves one request. Parameters are mutually exclusive intents,
// checked in priority order; `id` is terminal even when empty-handed.
// A parameter with an empty value counts as absent: `?id=&q=salsa` runs
// the free-text path, and `?id=` alone is a 400, not a lookup.
func (s *SearchService) Search(ctx context.Context, p *models.SearchSongsParams) (*models.SearchResult, error) {
	switch {
	case p.Id != "":
		return s.byID(ctx, p.Id)
	case p.Artist != "":
		return s.byArtist(ctx, p.Artist)
	case p.SongName != "":
		return s.byTitle(ctx, p.SongName)
	case p.Q != "":
		return s.freeText(ctx, p.Q)
	}
	return nil, apperr.NewBadRequest("Parámetro no soportado. Usa ?q=, ?id= o ?artist=")
}

func (s *SearchService) byID(ctx context.Context, id string) (*models.SearchResult, error) {
	song, err := s.repo.GetSongByID(ctx, id)
	if err != nil {
		return nil, apperr.NewInternalServerError(err.Error())
	}
	if song == nil {
		return nil, apperr.NewNotFound("ID no encontrado")
	}
	return models.SingleResult(util.ToSafeSong(*song, s.codec)), nil
}

func (s *SearchService) byArtist(ctx context.Context, artist string) (*models.SearchResult, error) {
	songs, err := s.repo.FindAllByArtist(ctx, artist)
	if err != nil {
		return nil, apperr.NewInternalServerError(err.Error())
	}
	return models.ListResult(util.ToSafeSongs(songs, s.codec)), nil
}

func (s *SearchService) byTitle(ctx context.Context, title string) (*models.SearchResult, error) {
	songs, err := s.repo.FindByTitle(ctx, title)
	if err != nil {
		return nil, apperr.NewInternalServerError(err.Error())
	}
	return models.ListResult(util.ToSafeSongs(songs, s.codec)), nil
}

// freeText is the two-stage strategy: first the cheap artist-prefix guess
// against the index, then the bounded full scan.
func (s *SearchService) freeText(ctx context.Context, q string) (*models.SearchResult, error) {
	raw := strings.TrimSpace(q)
	lowered := strings.ToLower(raw)
	if lowered == "" {
		return nil, apperr.NewBadRequest("Consulta vacía")
	}

	// Estrategia A: atajo por artista. An index query is O(matching rows),
	// the scan is O(table), so this always goes first. A failure here is
	// the one adapter error that does not abort the request: it degrades
	// to "no shortcut" and the scan takes over.
	// cases.Caser is stateful, so it cannot live on the shared service
	guess := cases.Title(language.Und).String(raw)
	if shortcut, err := s.repo.FindByArtistPrefix(ctx, guess); err != nil {
		log.Printf("[WARN] atajo begins_with falló para %q, seguimos con scan: %v", guess, err)
	} else if len(shortcut) > 0 {
		return models.ListResult(util.ToSafeSongs(shortcut, s.codec)), nil
	}

	// Estrategia B: scan profundo con paginación acotada.
	words := strings.Fields(lowered)
	if len(words) == 0 {
		return nil, apperr.NewBadRequest("Consulta vacía")
	}
	songs, err := s.boundedScan(ctx, words)
	if err != nil {
		return nil, apperr.NewInternalServerError(err.Error())
	}
	return models.ListResult(util.ToSafeSongs(songs, s.codec)), nil
}

// boundedScan accumulates matches across scan pages until the scan is
// exhausted, the result cap is hit, or the page cap is hit. The caps double
// as the request's timeout: there is no other clock on this path.
func (s *SearchService) boundedScan(ctx context.Context, keywords []string) ([]models.Song, error) {
	var data []models.Song
	cursor := ""
	for pages := 0; pages < s.maxPages; pages++ {
		items, next, err := s.repo.ScanPage(ctx, keywords, cursor)
		if err != nil {
			// sin reintentos: un fallo del store tumba la petición entera
			return nil, err
		}
		data = append(data, items...)
		if next == "" || len(data) >= s.maxResults {
			break
		}
		cursor = next
	}
	if len(data) > s.maxResults {
		data = data[:s.maxResults]
	}
	return data, nil
}
