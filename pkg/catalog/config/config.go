// Package config reads the runtime configuration from the environment.
// The token TTL, the scan caps and the index/table names are deliberately
// configurable: the two deployments of this catalog disagreed on all of
// them (900s vs 3600s TTL, ArtistIndex vs BusquedaGlobal, 5 vs 10 pages).
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultTable      = "musica_startup"
	defaultArtistIdx  = "ArtistIndex"
	defaultTitleIdx   = "TitleIndex"
	defaultTokenTTL   = 900 * time.Second
	defaultMaxResults = 50
	defaultMaxPages   = 5
	defaultPageSize   = 200
)

type Config struct {
	Port string

	// Catalog store
	Table       string
	ArtistIndex string
	TitleIndex  string

	// Token codec
	TokenSecret string
	TokenTTL    time.Duration

	// Bounded scan
	ScanMaxResults int
	ScanMaxPages   int
	ScanPageSize   int

	// Daily index audit
	AuditProbeArtist string
}

func FromEnv() Config {
	return Config{
		Port:             envOr("PORT", "1337"),
		Table:            envOr("CATALOG_TABLE", defaultTable),
		ArtistIndex:      envOr("ARTIST_INDEX", defaultArtistIdx),
		TitleIndex:       envOr("TITLE_INDEX", defaultTitleIdx),
		TokenSecret:      envOr("TOKEN_SECRET", "logoscontexto"),
		TokenTTL:         time.Duration(envInt("TOKEN_TTL_SECONDS", int(defaultTokenTTL/time.Second))) * time.Second,
		ScanMaxResults:   envInt("SCAN_MAX_RESULTS", defaultMaxResults),
		ScanMaxPages:     envInt("SCAN_MAX_PAGES", defaultMaxPages),
		ScanPageSize:     envInt("SCAN_PAGE_SIZE", defaultPageSize),
		AuditProbeArtist: envOr("AUDIT_PROBE_ARTIST", "Piero"),
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
