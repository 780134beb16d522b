package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Environment string
	// Remote collaborator endpoints
	APIBaseURL string
	EventsURL  string // websocket push-event channel
	APIToken   string // opaque bearer token, managed by the auth collaborator
	// Engine timing
	RequestTimeout        time.Duration
	SearchDebounce        time.Duration
	CompletionReloadDelay time.Duration
	// Document list paging
	PageSize int
	// Logging
	LogDir string // empty = stdout only
	Debug  bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Environment:           env,
		APIBaseURL:            getEnv("LIBRIS_API_URL", "http://localhost:8080/api"),
		EventsURL:             getEnv("LIBRIS_EVENTS_URL", "ws://localhost:8080/api/events"),
		APIToken:              getEnv("LIBRIS_API_TOKEN", ""),
		RequestTimeout:        getDuration("LIBRIS_REQUEST_TIMEOUT", 30*time.Second),
		SearchDebounce:        getDuration("LIBRIS_SEARCH_DEBOUNCE", 300*time.Millisecond),
		CompletionReloadDelay: getDuration("LIBRIS_RELOAD_DELAY", 1500*time.Millisecond),
		PageSize:              getInt("LIBRIS_PAGE_SIZE", DefaultPageSize),
		LogDir:                getEnv("LIBRIS_LOG_DIR", ""),
		// Debug defaults to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
