// Package coverart resolves album covers through the hybrid
// iTunes + Deezer strategy: try both with the raw artist/title, retry with
// cleaned-up text, and as a last resort search by title alone.
package coverart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	defaultITunesURL = "https://itunes.apple.com/search"
	defaultDeezerURL = "https://api.deezer.com/search"
)

var (
	bracketed   = regexp.MustCompile(`[\(\[\{].*?[\)\]\}]`)
	leadingJunk = regexp.MustCompile(`^[^a-zA-Z0-9]+`)
)

// CleanText strips bracketed noise ("(Remastered 2004)", "[Live]") and
// leading separators from rip-style file names.
func CleanText(s string) string {
	s = bracketed.ReplaceAllString(s, "")
	s = leadingJunk.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

type Hunter struct {
	client    *http.Client
	itunesURL string
	deezerURL string
}

func NewHunter(client *http.Client) *Hunter {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &Hunter{client: client, itunesURL: defaultITunesURL, deezerURL: defaultDeezerURL}
}

// NewHunterWithEndpoints exists for tests.
func NewHunterWithEndpoints(client *http.Client, itunesURL, deezerURL string) *Hunter {
	h := NewHunter(client)
	h.itunesURL = itunesURL
	h.deezerURL = deezerURL
	return h
}

// Hunt runs the six-step strategy and returns the cover URL plus the step
// that found it. Lookup failures are treated as "not found": cover hunting
// is best effort by nature.
func (h *Hunter) Hunt(ctx context.Context, artist, title string) (coverURL, via string) {
	artistClean := CleanText(artist)
	titleClean := CleanText(title)

	if u := h.requestITunes(ctx, artist+" "+title); u != "" {
		return u, "iTunes Normal"
	}
	if u := h.requestDeezer(ctx, artist+" "+title); u != "" {
		return u, "Deezer Normal"
	}

	if artist != artistClean || title != titleClean {
		if u := h.requestITunes(ctx, artistClean+" "+titleClean); u != "" {
			return u, "iTunes Limpio"
		}
		if u := h.requestDeezer(ctx, artistClean+" "+titleClean); u != "" {
			return u, "Deezer Limpio"
		}
	}

	if len(titleClean) > 3 {
		if u := h.requestITunes(ctx, titleClean); u != "" {
			return u, "iTunes Título"
		}
		if u := h.requestDeezer(ctx, titleClean); u != "" {
			return u, "Deezer Título"
		}
	}

	return "", ""
}

func (h *Hunter) requestITunes(ctx context.Context, term string) string {
	var body struct {
		ResultCount int `json:"resultCount"`
		Results     []struct {
			ArtworkUrl100 string `json:"artworkUrl100"`
		} `json:"results"`
	}
	params := url.Values{"term": {term}, "media": {"music"}, "entity": {"song"}, "limit": {"1"}}
	if !h.getJSON(ctx, h.itunesURL, params, &body) {
		return ""
	}
	if body.ResultCount == 0 || len(body.Results) == 0 {
		return ""
	}
	artwork := body.Results[0].ArtworkUrl100
	if artwork == "" {
		return ""
	}
	// la miniatura de 100px viene gratis en 600px con el mismo path
	return strings.Replace(artwork, "100x100", "600x600", 1)
}

func (h *Hunter) requestDeezer(ctx context.Context, term string) string {
	var body struct {
		Data []struct {
			Album struct {
				CoverXL     string `json:"cover_xl"`
				CoverBig    string `json:"cover_big"`
				CoverMedium string `json:"cover_medium"`
			} `json:"album"`
		} `json:"data"`
	}
	params := url.Values{"q": {term}, "limit": {"1"}}
	if !h.getJSON(ctx, h.deezerURL, params, &body) {
		return ""
	}
	if len(body.Data) == 0 {
		return ""
	}
	album := body.Data[0].Album
	switch {
	case album.CoverXL != "":
		return album.CoverXL
	case album.CoverBig != "":
		return album.CoverBig
	default:
		return album.CoverMedium
	}
}

func (h *Hunter) getJSON(ctx context.Context, endpoint string, params url.Values, out any) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return false
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false
	}
	return json.NewDecoder(resp.Body).Decode(out) == nil
}
