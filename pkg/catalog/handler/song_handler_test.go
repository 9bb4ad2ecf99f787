package handler

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rokola-web/catalog-api/pkg/catalog/models"
	"github.com/rokola-web/catalog-api/pkg/catalog/services"
	"github.com/rokola-web/catalog-api/pkg/catalog/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRepo mocks SongRepository for controller tests
type stubRepo struct {
	getByID func(ctx context.Context, id string) (*models.Song, error)
}

func (s *stubRepo) GetSongByID(ctx context.Context, id string) (*models.Song, error) {
	return s.getByID(ctx, id)
}
func (s *stubRepo) FindAllByArtist(ctx context.Context, artist string) ([]models.Song, error) {
	return nil, nil
}
func (s *stubRepo) FindByTitle(ctx context.Context, title string) ([]models.Song, error) {
	return nil, nil
}
func (s *stubRepo) FindByArtistPrefix(ctx context.Context, prefix string) ([]models.Song, error) {
	return nil, nil
}
func (s *stubRepo) ScanPage(ctx context.Context, keywords []string, cursor string) ([]models.Song, string, error) {
	return nil, "", nil
}

func TestSearchSongs_Handler(t *testing.T) {
	repo := &stubRepo{
		getByID: func(ctx context.Context, id string) (*models.Song, error) {
			return &models.Song{Id: id, CleanTitle: "Mi Viejo", DriveFileId: "d1"}, nil
		},
	}
	codec := token.NewCodec("secreto", 900*time.Second)
	svc := services.NewSearchService(repo, codec, 50, 5)
	ctrl := NewSongsController(svc)

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest("GET", "/v1/songs?id=id1", nil)

	resp, err := ctrl.SearchSongs(ctx, &models.SearchSongsParams{Id: "id1"})
	require.NoError(t, err)
	require.NotNil(t, resp)
	require.NotNil(t, resp.Single)
	assert.Equal(t, "id1", resp.Single.Id)
	assert.NotEmpty(t, resp.Single.DriveToken)
}

func TestSearchSongs_Handler_NoParams(t *testing.T) {
	codec := token.NewCodec("secreto", 900*time.Second)
	svc := services.NewSearchService(&stubRepo{}, codec, 50, 5)
	ctrl := NewSongsController(svc)

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest("GET", "/v1/songs", nil)

	resp, err := ctrl.SearchSongs(ctx, &models.SearchSongsParams{})
	assert.Error(t, err)
	assert.Nil(t, resp)
}
