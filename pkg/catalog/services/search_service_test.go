package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rokola-web/catalog-api/pkg/catalog/helpers/apperr"
	"github.com/rokola-web/catalog-api/pkg/catalog/models"
	"github.com/rokola-web/catalog-api/pkg/catalog/services"
	"github.com/rokola-web/catalog-api/pkg/catalog/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRepo implements repositories.SongRepository for testing
type stubRepo struct {
	getByID      func(ctx context.Context, id string) (*models.Song, error)
	allByArtist  func(ctx context.Context, artist string) ([]models.Song, error)
	byTitle      func(ctx context.Context, title string) ([]models.Song, error)
	artistPrefix func(ctx context.Context, prefix string) ([]models.Song, error)
	scanPage     func(ctx context.Context, keywords []string, cursor string) ([]models.Song, string, error)
}

func (s *stubRepo) GetSongByID(ctx context.Context, id string) (*models.Song, error) {
	return s.getByID(ctx, id)
}
func (s *stubRepo) FindAllByArtist(ctx context.Context, artist string) ([]models.Song, error) {
	return s.allByArtist(ctx, artist)
}
func (s *stubRepo) FindByTitle(ctx context.Context, title string) ([]models.Song, error) {
	return s.byTitle(ctx, title)
}
func (s *stubRepo) FindByArtistPrefix(ctx context.Context, prefix string) ([]models.Song, error) {
	if s.artistPrefix != nil {
		return s.artistPrefix(ctx, prefix)
	}
	return nil, nil
}
func (s *stubRepo) ScanPage(ctx context.Context, keywords []string, cursor string) ([]models.Song, string, error) {
	return s.scanPage(ctx, keywords, cursor)
}

func newService(repo *stubRepo, maxResults, maxPages int) *services.SearchService {
	codec := token.NewCodec("logoscontexto", 900*time.Second)
	return services.NewSearchService(repo, codec, maxResults, maxPages)
}

func TestSearch_IdPathWinsOverFreeText(t *testing.T) {
	repo := &stubRepo{
		getByID: func(ctx context.Context, id string) (*models.Song, error) {
			assert.Equal(t, "42", id)
			return &models.Song{Id: "42", DriveFileId: "drive-42"}, nil
		},
		scanPage: func(ctx context.Context, keywords []string, cursor string) ([]models.Song, string, error) {
			t.Fatal("scan must not run when id is present")
			return nil, "", nil
		},
	}
	svc := newService(repo, 50, 5)

	res, err := svc.Search(context.Background(), &models.SearchSongsParams{Id: "42", Q: "foo"})
	require.NoError(t, err)
	require.NotNil(t, res.Single)
	assert.Equal(t, "42", res.Single.Id)
	assert.NotEmpty(t, res.Single.DriveToken)
}

func TestSearch_EmptyParamCountsAsAbsent(t *testing.T) {
	repo := &stubRepo{
		getByID: func(ctx context.Context, id string) (*models.Song, error) {
			t.Fatal("an empty id must not trigger a lookup")
			return nil, nil
		},
		scanPage: func(ctx context.Context, keywords []string, cursor string) ([]models.Song, string, error) {
			return []models.Song{{Id: "m1", SearchKeywords: "cumbia"}}, "", nil
		},
	}
	svc := newService(repo, 50, 5)

	// ?id=&q=cumbia: el id vacío cede el turno al texto libre
	res, err := svc.Search(context.Background(), &models.SearchSongsParams{Id: "", Q: "cumbia"})
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)

	// ?id= a solas es un 400, no una búsqueda
	_, err = svc.Search(context.Background(), &models.SearchSongsParams{Id: ""})
	var apiErr apperr.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
}

func TestSearch_IdNotFound(t *testing.T) {
	repo := &stubRepo{
		getByID: func(ctx context.Context, id string) (*models.Song, error) { return nil, nil },
	}
	svc := newService(repo, 50, 5)

	_, err := svc.Search(context.Background(), &models.SearchSongsParams{Id: "missing"})
	var apiErr apperr.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
}

func TestSearch_NoParams(t *testing.T) {
	svc := newService(&stubRepo{}, 50, 5)

	_, err := svc.Search(context.Background(), &models.SearchSongsParams{})
	var apiErr apperr.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
}

func TestSearch_EmptyFreeText(t *testing.T) {
	svc := newService(&stubRepo{}, 50, 5)

	_, err := svc.Search(context.Background(), &models.SearchSongsParams{Q: "   "})
	var apiErr apperr.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
}

func TestSearch_ShortcutHitSkipsScan(t *testing.T) {
	catalog := []models.Song{
		{Id: "s1", Artist: "Shakira", CleanTitle: "Ojos Así", DriveFileId: "d1"},
		{Id: "s2", Artist: "Shakira", CleanTitle: "Inevitable", DriveFileId: "d2"},
	}
	repo := &stubRepo{
		artistPrefix: func(ctx context.Context, prefix string) ([]models.Song, error) {
			assert.Equal(t, "Shakira", prefix) // title-cased guess
			return catalog, nil
		},
		scanPage: func(ctx context.Context, keywords []string, cursor string) ([]models.Song, string, error) {
			t.Fatal("scan must not run when the shortcut hits")
			return nil, "", nil
		},
	}
	svc := newService(repo, 50, 5)

	res, err := svc.Search(context.Background(), &models.SearchSongsParams{Q: "shakira"})
	require.NoError(t, err)
	require.Len(t, res.Items, 2)
	for _, item := range res.Items {
		assert.NotEmpty(t, item.DriveToken)
	}
}

func TestSearch_ShortcutErrorFallsThroughToScan(t *testing.T) {
	scanned := false
	repo := &stubRepo{
		artistPrefix: func(ctx context.Context, prefix string) ([]models.Song, error) {
			return nil, errors.New("Requested index not found")
		},
		scanPage: func(ctx context.Context, keywords []string, cursor string) ([]models.Song, string, error) {
			scanned = true
			assert.Equal(t, []string{"salsa", "clasica"}, keywords)
			return []models.Song{{Id: "m1", SearchKeywords: "salsa clasica cuba"}}, "", nil
		},
	}
	svc := newService(repo, 50, 5)

	res, err := svc.Search(context.Background(), &models.SearchSongsParams{Q: "Salsa Clasica"})
	require.NoError(t, err)
	assert.True(t, scanned)
	assert.Len(t, res.Items, 1)
}

func TestSearch_ScanNoMatchesIsEmptyList(t *testing.T) {
	repo := &stubRepo{
		artistPrefix: func(ctx context.Context, prefix string) ([]models.Song, error) { return nil, nil },
		scanPage: func(ctx context.Context, keywords []string, cursor string) ([]models.Song, string, error) {
			return nil, "", nil
		},
	}
	svc := newService(repo, 50, 5)

	res, err := svc.Search(context.Background(), &models.SearchSongsParams{Q: "xyz123notfound"})
	require.NoError(t, err)
	assert.Nil(t, res.Single)
	assert.Empty(t, res.Items)
}

func TestSearch_ScanAdapterErrorIs500(t *testing.T) {
	repo := &stubRepo{
		artistPrefix: func(ctx context.Context, prefix string) ([]models.Song, error) { return nil, nil },
		scanPage: func(ctx context.Context, keywords []string, cursor string) ([]models.Song, string, error) {
			return nil, "", errors.New("store exploded")
		},
	}
	svc := newService(repo, 50, 5)

	_, err := svc.Search(context.Background(), &models.SearchSongsParams{Q: "cumbia"})
	var apiErr apperr.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.Status)
	assert.Contains(t, apiErr.Message, "store exploded")
}

func TestSearch_ScanStopsAtResultCap(t *testing.T) {
	// every page yields 4 matches and a cursor; cap at 10 results
	pagesRead := 0
	repo := &stubRepo{
		artistPrefix: func(ctx context.Context, prefix string) ([]models.Song, error) { return nil, nil },
		scanPage: func(ctx context.Context, keywords []string, cursor string) ([]models.Song, string, error) {
			pagesRead++
			page := make([]models.Song, 4)
			for i := range page {
				page[i] = models.Song{Id: strings.Repeat("x", pagesRead) + string(rune('a'+i))}
			}
			return page, "next", nil
		},
	}
	svc := newService(repo, 10, 100)

	res, err := svc.Search(context.Background(), &models.SearchSongsParams{Q: "salsa"})
	require.NoError(t, err)
	assert.Len(t, res.Items, 10)
	assert.Equal(t, 3, pagesRead)
}

func TestSearch_ScanStopsAtPageCap(t *testing.T) {
	pagesRead := 0
	repo := &stubRepo{
		artistPrefix: func(ctx context.Context, prefix string) ([]models.Song, error) { return nil, nil },
		scanPage: func(ctx context.Context, keywords []string, cursor string) ([]models.Song, string, error) {
			pagesRead++
			// matches keep trickling in but the cursor never runs out
			return []models.Song{{Id: string(rune('a' + pagesRead))}}, "next", nil
		},
	}
	svc := newService(repo, 50, 5)

	res, err := svc.Search(context.Background(), &models.SearchSongsParams{Q: "salsa"})
	require.NoError(t, err)
	assert.Equal(t, 5, pagesRead)
	assert.Len(t, res.Items, 5)
}

func TestSearch_ArtistPathExhaustsIndex(t *testing.T) {
	repo := &stubRepo{
		allByArtist: func(ctx context.Context, artist string) ([]models.Song, error) {
			assert.Equal(t, "Piero", artist)
			return []models.Song{{Id: "p1"}, {Id: "p2"}, {Id: "p3"}}, nil
		},
	}
	svc := newService(repo, 50, 5)

	res, err := svc.Search(context.Background(), &models.SearchSongsParams{Artist: "Piero"})
	require.NoError(t, err)
	assert.Len(t, res.Items, 3)
	// sin drive_file_id no hay token
	for _, item := range res.Items {
		assert.Empty(t, item.DriveToken)
	}
}

func TestSearch_TitlePath(t *testing.T) {
	repo := &stubRepo{
		byTitle: func(ctx context.Context, title string) ([]models.Song, error) {
			assert.Equal(t, "Mi Viejo", title)
			return []models.Song{{Id: "p1", CleanTitle: "Mi Viejo"}}, nil
		},
	}
	svc := newService(repo, 50, 5)

	res, err := svc.Search(context.Background(), &models.SearchSongsParams{SongName: "Mi Viejo"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Mi Viejo", res.Items[0].CleanTitle)
}
