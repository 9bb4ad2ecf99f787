/*
 * Rokola catalog API
 *
 * API de consulta del catálogo musical de la Rokola (rokola-web)
 */

package models

import "encoding/json"

// Song is the raw catalog record as stored in the serving store. It is
// written exclusively by the ingestion tooling (cmd/migrate_catalog and the
// enrichment commands); the API only reads it.
type Song struct {
	Id string `json:"id" gorm:"column:id;primaryKey"`

	// DriveFileId and WebViewLink never leave the system in the clear,
	// see SafeSong.
	DriveFileId string `json:"drive_file_id,omitempty" gorm:"column:drive_file_id"`
	WebViewLink string `json:"web_view_link,omitempty" gorm:"column:web_view_link"`

	CleanTitle string `json:"clean_title,omitempty" gorm:"column:clean_title"`
	Artist     string `json:"artist,omitempty" gorm:"column:artist"`
	Album      string `json:"album,omitempty" gorm:"column:album"`
	Genre      string `json:"genre,omitempty" gorm:"column:genre"`
	DurationMs int64  `json:"duration_ms" gorm:"column:duration_ms"`
	CoverImage string `json:"cover_image,omitempty" gorm:"column:cover_image"`
	Summary    string `json:"music_summary,omitempty" gorm:"column:music_summary"`

	// Provenance / curation
	Origin  string `json:"origin,omitempty" gorm:"column:origin"`
	Curator string `json:"curator,omitempty" gorm:"column:curator"`

	// Identidad (LastFM)
	LastfmMbid  string `json:"lastfm_mbid,omitempty" gorm:"column:lastfm_mbid"`
	Nationality string `json:"nationality,omitempty" gorm:"column:nationality"`
	RealName    string `json:"real_name,omitempty" gorm:"column:real_name"`

	// Edición y coleccionismo (Discogs)
	ReleaseYear    *int   `json:"release_year,omitempty" gorm:"column:release_year"`
	Country        string `json:"country,omitempty" gorm:"column:country"`
	Style          string `json:"style,omitempty" gorm:"column:style"`
	RecordLabel    string `json:"record_label,omitempty" gorm:"column:record_label"`
	OriginalFormat string `json:"original_format,omitempty" gorm:"column:original_format"`
	DiscogsId      *int64 `json:"discogs_id,omitempty" gorm:"column:discogs_id"`

	// SearchKeywords is the lower-cased bag of terms the bounded scan
	// matches against. Derived by the ingestion pipeline, never recomputed
	// here.
	SearchKeywords string `json:"search_keywords,omitempty" gorm:"column:search_keywords"`
}

// SafeSong es la vista externa de un Song: sin drive_file_id, sin
// web_view_link, sin search_keywords. En su lugar viaja un drive_token.
type SafeSong struct {
	Id             string `json:"id"`
	DriveToken     string `json:"drive_token,omitempty"`
	CleanTitle     string `json:"clean_title,omitempty"`
	Artist         string `json:"artist,omitempty"`
	Album          string `json:"album,omitempty"`
	Genre          string `json:"genre,omitempty"`
	DurationMs     int64  `json:"duration_ms"`
	CoverImage     string `json:"cover_image,omitempty"`
	Summary        string `json:"music_summary,omitempty"`
	Origin         string `json:"origin,omitempty"`
	Curator        string `json:"curator,omitempty"`
	LastfmMbid     string `json:"lastfm_mbid,omitempty"`
	Nationality    string `json:"nationality,omitempty"`
	RealName       string `json:"real_name,omitempty"`
	ReleaseYear    *int   `json:"release_year,omitempty"`
	Country        string `json:"country,omitempty"`
	Style          string `json:"style,omitempty"`
	RecordLabel    string `json:"record_label,omitempty"`
	OriginalFormat string `json:"original_format,omitempty"`
	DiscogsId      *int64 `json:"discogs_id,omitempty"`
}

// SearchResult carries the response of the search endpoint. The id path
// answers with a single object, every other path with an array; the custom
// marshaller keeps that contract in one place.
type SearchResult struct {
	Single *SafeSong  `json:"-"`
	Items  []SafeSong `json:"-"`
}

func SingleResult(s SafeSong) *SearchResult {
	return &SearchResult{Single: &s}
}

func ListResult(items []SafeSong) *SearchResult {
	return &SearchResult{Items: items}
}

func (r SearchResult) MarshalJSON() ([]byte, error) {
	if r.Single != nil {
		return json.Marshal(r.Single)
	}
	items := r.Items
	if items == nil {
		// siempre una lista vacía, nunca null
		items = []SafeSong{}
	}
	return json.Marshal(items)
}
