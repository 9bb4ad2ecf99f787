package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rokola-web/catalog-api/pkg/catalog/models"
	"github.com/rokola-web/catalog-api/pkg/catalog/services"
)

// SongsController binds HTTP requests to the SearchService
type SongsController struct {
	Service *services.SearchService
}

// NewSongsController creates a new controller
func NewSongsController(s *services.SearchService) *SongsController {
	return &SongsController{Service: s}
}

// SearchSongs handles GET /songs
func (c *SongsController) SearchSongs(ctx *gin.Context, params *models.SearchSongsParams) (*models.SearchResult, error) {
	return c.Service.Search(ctx.Request.Context(), params)
}
