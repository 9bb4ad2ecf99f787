package util

import (
	"github.com/rokola-web/catalog-api/pkg/catalog/models"
	"github.com/rokola-web/catalog-api/pkg/catalog/token"
)

// ToSafeSong converts a raw catalog record into its external view. The raw
// drive id and the direct view link never survive the conversion, on any
// code path; the caller gets a time-boxed drive_token instead (only when
// the record actually has a playable resource).
func ToSafeSong(song models.Song, codec *token.Codec) models.SafeSong {
	safe := models.SafeSong{
		Id:             song.Id,
		CleanTitle:     song.CleanTitle,
		Artist:         song.Artist,
		Album:          song.Album,
		Genre:          song.Genre,
		DurationMs:     song.DurationMs,
		CoverImage:     song.CoverImage,
		Summary:        song.Summary,
		Origin:         song.Origin,
		Curator:        song.Curator,
		LastfmMbid:     song.LastfmMbid,
		Nationality:    song.Nationality,
		RealName:       song.RealName,
		ReleaseYear:    song.ReleaseYear,
		Country:        song.Country,
		Style:          song.Style,
		RecordLabel:    song.RecordLabel,
		OriginalFormat: song.OriginalFormat,
		DiscogsId:      song.DiscogsId,
	}
	if song.DriveFileId != "" {
		safe.DriveToken = codec.Encode(song.DriveFileId)
	}
	return safe
}

// ToSafeSongs limpia una lista completa antes de responder.
func ToSafeSongs(songs []models.Song, codec *token.Codec) []models.SafeSong {
	out := make([]models.SafeSong, len(songs))
	for i, s := range songs {
		out[i] = ToSafeSong(s, codec)
	}
	return out
}
