package models

// SearchSongsParams are the recognized query parameters of GET /v1/songs.
// At most one intent is honored per request, in this priority order.
type SearchSongsParams struct {
	Id       string `query:"id"`
	Artist   string `query:"artist"`
	SongName string `query:"song_name"`
	Q        string `query:"q"`
}
