// Package config loads and validates environment variables at startup.
// Fail-fast: if a variable is malformed, the process exits.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"jobmate/board-service/internal/listing"
)

// DefaultAPIURL is the published job postings endpoint the board reads.
const DefaultAPIURL = "https://jobmate.traffit.com/public/job_posts/published"

// Config holds all runtime configuration for the board service.
type Config struct {
	Port                 string
	APIURL               string
	RedisURL             string // optional; empty disables event publishing
	RefreshIntervalHours int    // 0 disables periodic refresh
	FetchTimeout         time.Duration
	Locale               string
	DateLayout           string // derived from Locale
	Location             *time.Location
}

// Load reads environment variables and returns a validated Config.
func Load() (*Config, error) {
	apiURL := getEnv("BOARD_API_URL", DefaultAPIURL)
	u, err := url.Parse(apiURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("BOARD_API_URL must be an absolute http(s) URL, got %q", apiURL)
	}

	interval, err := getEnvNonNegative("REFRESH_INTERVAL_HOURS")
	if err != nil {
		return nil, err
	}

	timeoutSecs, err := getEnvNonNegative("FETCH_TIMEOUT_SECONDS")
	if err != nil {
		return nil, err
	}

	locale := getEnv("BOARD_LOCALE", "en-US")
	layout, err := listing.DateLayoutFor(locale)
	if err != nil {
		return nil, fmt.Errorf("BOARD_LOCALE: %w", err)
	}

	loc := time.Local
	if tz := os.Getenv("BOARD_TIMEZONE"); tz != "" {
		loc, err = time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("BOARD_TIMEZONE: %w", err)
		}
	}

	return &Config{
		Port:                 getEnv("BOARD_PORT", "8083"),
		APIURL:               apiURL,
		RedisURL:             os.Getenv("REDIS_URL"),
		RefreshIntervalHours: interval,
		FetchTimeout:         time.Duration(timeoutSecs) * time.Second,
		Locale:               locale,
		DateLayout:           layout,
		Location:             loc,
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvNonNegative(key string) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", key, s)
	}
	return v, nil
}
