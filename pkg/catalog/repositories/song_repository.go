package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/rokola-web/catalog-api/pkg/catalog/models"
	"gorm.io/gorm"
)

// escapeLike neutralizes LIKE metacharacters so user tokens match
// literally: "mi_cancion" must not match "mixcancion".
var escapeLike = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace

// SongRepository is the read-only port onto the catalog store. The store is
// populated by the migration/enrichment tooling; the API never writes
// through this interface.
//
// ScanPage and FindByArtistPrefix mirror the store's native access paths:
// two secondary indexes (artist: equality + prefix, title: equality) and a
// cursor-paginated table scan with a server-side keyword filter.
type SongRepository interface {
	GetSongByID(ctx context.Context, id string) (*models.Song, error)

	// FindAllByArtist queries the artist index for equality and follows
	// continuation cursors until the index is exhausted.
	FindAllByArtist(ctx context.Context, artist string) ([]models.Song, error)

	// FindByTitle queries the title index for an exact match.
	FindByTitle(ctx context.Context, title string) ([]models.Song, error)

	// FindByArtistPrefix issues a single-page prefix query against the
	// artist index. Deliberately unpaginated: it backs the shortcut stage,
	// which only needs "at least one hit".
	FindByArtistPrefix(ctx context.Context, prefix string) ([]models.Song, error)

	// ScanPage reads one page of the table scan. Every keyword must occur
	// as a substring of search_keywords (filter applied by the store, not
	// post hoc). An empty cursor starts the scan; an empty next cursor
	// means the scan is exhausted.
	ScanPage(ctx context.Context, keywords []string, cursor string) (items []models.Song, next string, err error)
}

type songRepository struct {
	db       *gorm.DB
	table    string
	pageSize int
}

// NewSongRepository wraps a gorm handle. The table name is configuration,
// not a constant, because the two deployments of this catalog never agreed
// on one.
func NewSongRepository(db *gorm.DB, table string, pageSize int) SongRepository {
	if table == "" {
		table = "musica_startup"
	}
	if pageSize <= 0 {
		pageSize = 200
	}
	return &songRepository{db: db, table: table, pageSize: pageSize}
}

func (r *songRepository) GetSongByID(ctx context.Context, id string) (*models.Song, error) {
	var song models.Song
	err := r.db.WithContext(ctx).Table(r.table).Where("id = ?", id).Take(&song).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &song, nil
}

func (r *songRepository) FindAllByArtist(ctx context.Context, artist string) ([]models.Song, error) {
	items := []models.Song{}
	cursor := ""
	for {
		var page []models.Song
		q := r.db.WithContext(ctx).Table(r.table).Where("artist = ?", artist)
		if cursor != "" {
			q = q.Where("id > ?", cursor)
		}
		if err := q.Order("id").Limit(r.pageSize).Find(&page).Error; err != nil {
			return nil, err
		}
		items = append(items, page...)
		if len(page) < r.pageSize {
			return items, nil
		}
		cursor = page[len(page)-1].Id
	}
}

func (r *songRepository) FindByTitle(ctx context.Context, title string) ([]models.Song, error) {
	var items []models.Song
	err := r.db.WithContext(ctx).Table(r.table).
		Where("clean_title = ?", title).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *songRepository) FindByArtistPrefix(ctx context.Context, prefix string) ([]models.Song, error) {
	var items []models.Song
	err := r.db.WithContext(ctx).Table(r.table).
		Where(`artist LIKE ? ESCAPE '\'`, escapeLike(prefix)+"%").
		Order("artist").
		Limit(r.pageSize).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *songRepository) ScanPage(ctx context.Context, keywords []string, cursor string) ([]models.Song, string, error) {
	q := r.db.WithContext(ctx).Table(r.table)
	for _, w := range keywords {
		q = q.Where(`search_keywords LIKE ? ESCAPE '\'`, "%"+escapeLike(w)+"%")
	}
	if cursor != "" {
		q = q.Where("id > ?", cursor)
	}

	var page []models.Song
	if err := q.Order("id").Limit(r.pageSize).Find(&page).Error; err != nil {
		return nil, "", err
	}
	next := ""
	if len(page) == r.pageSize {
		next = page[len(page)-1].Id
	}
	return page, next, nil
}
