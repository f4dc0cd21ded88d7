// Package config handles application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Defaults for optional configuration values.
const (
	DefaultMaxItemsPerFeed = 10
	DefaultDigestTitle     = "Service Design Digest"
)

// Config holds the application configuration.
type Config struct {
	RSSSourcesFile  string
	SeedURLsFile    string
	DatabasePath    string
	DigestsDir      string
	MaxItemsPerFeed int
	DigestTitle     string
	LogLevel        string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		RSSSourcesFile:  envOrDefault("RSS_SOURCES_FILE", "./sources/rss_sources.txt"),
		SeedURLsFile:    envOrDefault("SEED_URLS_FILE", "./sources/seed_urls.txt"),
		DatabasePath:    envOrDefault("DATABASE_PATH", "./data/seen.db"),
		DigestsDir:      envOrDefault("DIGESTS_DIR", "./digests"),
		MaxItemsPerFeed: DefaultMaxItemsPerFeed,
		DigestTitle:     envOrDefault("DIGEST_TITLE", DefaultDigestTitle),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
	}

	if raw := os.Getenv("MAX_ITEMS_PER_FEED"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid MAX_ITEMS_PER_FEED %q: must be a positive integer", raw)
		}
		cfg.MaxItemsPerFeed = n
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
