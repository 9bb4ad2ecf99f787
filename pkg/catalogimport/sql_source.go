package catalogimport

import (
	"context"
	"database/sql"
)

// masterQuery is the full projection of the legacy table. Only rows with a
// playable resource are worth serving.
const masterQuery = `
	SELECT
		id::text,
		drive_file_id,
		clean_title,
		artist,
		album,
		genre,
		duration_ms,
		cover_image,
		web_view_link,
		music_summary,
		origin,
		curator,
		lastfm_mbid,
		nationality,
		real_name,
		release_year,
		country,
		style,
		record_label,
		original_format,
		discogs_id
	FROM musica_startup
	WHERE drive_file_id IS NOT NULL`

// SQLSource reads the legacy catalog over database/sql (lib/pq).
type SQLSource struct {
	DB *sql.DB
}

func (s *SQLSource) FetchSongs(ctx context.Context) ([]LegacySong, error) {
	rows, err := s.DB.QueryContext(ctx, masterQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LegacySong
	for rows.Next() {
		var r LegacySong
		if err := rows.Scan(
			&r.Id, &r.DriveFileId, &r.CleanTitle, &r.Artist, &r.Album,
			&r.Genre, &r.DurationMs, &r.CoverImage, &r.WebViewLink,
			&r.Summary, &r.Origin, &r.Curator, &r.LastfmMbid,
			&r.Nationality, &r.RealName, &r.ReleaseYear, &r.Country,
			&r.Style, &r.RecordLabel, &r.OriginalFormat, &r.DiscogsId,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
