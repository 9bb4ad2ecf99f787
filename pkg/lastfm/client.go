// Package lastfm is the thin client the metadata enrichment uses:
// track.getInfo for album/cover/genre/summary, with artist.getTopTags as
// the fallback when the track itself carries no usable genre tag.
package lastfm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const defaultBaseURL = "http://ws.audioscrobbler.com/2.0/"

// Tags que no dicen nada sobre el género real.
var tagBlacklist = map[string]bool{
	"seen live": true, "favorites": true, "my favorites": true,
	"albums i own": true, "spanish": true, "latino": true,
	"female vocalists": true, "male vocalists": true,
	"singer-songwriter": true, "under 2000 listeners": true,
	"all": true, "00s": true,
}

var anchorTag = regexp.MustCompile(`<a href=.*?>.*?</a>`)

type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewClient(apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{apiKey: apiKey, baseURL: defaultBaseURL, http: httpClient}
}

// NewClientWithBaseURL exists for tests.
func NewClientWithBaseURL(apiKey, baseURL string, httpClient *http.Client) *Client {
	c := NewClient(apiKey, httpClient)
	c.baseURL = baseURL
	return c
}

// TrackInfo is what the enrichment keeps from a track.getInfo answer.
type TrackInfo struct {
	Found      bool
	MBID       string
	Album      string
	Image      string
	Genre      string
	Summary    string
	DurationMs int64
}

type tag struct {
	Name string `json:"name"`
}

// GetTrackInfo consulta track.getInfo con autocorrección.
func (c *Client) GetTrackInfo(ctx context.Context, artist, track string) (TrackInfo, error) {
	params := url.Values{
		"method":      {"track.getInfo"},
		"api_key":     {c.apiKey},
		"artist":      {artist},
		"track":       {track},
		"autocorrect": {"1"},
		"lang":        {"es"},
		"format":      {"json"},
	}

	var body struct {
		Track *struct {
			MBID     string `json:"mbid"`
			Duration string `json:"duration"`
			Album    *struct {
				Title string `json:"title"`
				Image []struct {
					Size string `json:"size"`
					Text string `json:"#text"`
				} `json:"image"`
			} `json:"album"`
			Wiki *struct {
				Summary string `json:"summary"`
			} `json:"wiki"`
			TopTags *struct {
				Tag []tag `json:"tag"`
			} `json:"toptags"`
		} `json:"track"`
	}
	if err := c.getJSON(ctx, params, &body); err != nil {
		return TrackInfo{}, err
	}
	if body.Track == nil {
		return TrackInfo{}, nil
	}

	t := body.Track
	info := TrackInfo{Found: true, MBID: t.MBID}
	if ms, err := strconv.ParseInt(t.Duration, 10, 64); err == nil {
		info.DurationMs = ms
	}
	if t.Album != nil {
		info.Album = t.Album.Title
		for _, img := range t.Album.Image {
			if img.Size == "extralarge" {
				info.Image = img.Text
				break
			}
		}
	}
	if t.Wiki != nil {
		info.Summary = CleanSummary(t.Wiki.Summary)
	}
	if t.TopTags != nil {
		info.Genre = BestTag(t.TopTags.Tag)
	}
	return info, nil
}

// GetArtistTopGenre es el plan B: si la canción no trae género, usamos el
// del artista.
func (c *Client) GetArtistTopGenre(ctx context.Context, artist string) (string, error) {
	params := url.Values{
		"method":  {"artist.getTopTags"},
		"artist":  {artist},
		"api_key": {c.apiKey},
		"format":  {"json"},
	}
	var body struct {
		TopTags *struct {
			Tag []tag `json:"tag"`
		} `json:"toptags"`
	}
	if err := c.getJSON(ctx, params, &body); err != nil {
		return "", err
	}
	if body.TopTags == nil {
		return "", nil
	}
	return BestTag(body.TopTags.Tag), nil
}

// BestTag picks the first tag that is not blacklisted noise, title-cased
// ("salsa" -> "Salsa").
func BestTag(tags []tag) string {
	for _, t := range tags {
		name := strings.ToLower(t.Name)
		if len(name) > 2 && !tagBlacklist[name] {
			return cases.Title(language.Und).String(name)
		}
	}
	return ""
}

// CleanSummary removes the "read more" HTML anchors Last.fm embeds.
func CleanSummary(s string) string {
	return strings.TrimSpace(anchorTag.ReplaceAllString(s, ""))
}

func (c *Client) getJSON(ctx context.Context, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("lastfm: status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
