// Package config reads partybox settings from the environment and an
// optional .env file.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/samdwyer/partybox/internal/round"
)

// Config holds runtime options.
type Config struct {
	// GeminiAPIKey enables the AI word category. Empty means every
	// generative request falls back.
	GeminiAPIKey string
	GeminiModel  string

	// Seed for random number generation. A seed of 0 means a time-based seed.
	Seed int64

	// LogFile receives the log. "-" discards it; the terminal belongs to the UI.
	LogFile  string
	LogLevel string

	// Tick is the wall-clock length of one timer second (shorter in demos).
	Tick time.Duration

	HoneycombAPIKey  string
	HoneycombDataset string
}

// Load reads .env (if present) and the process environment.
func Load() Config {
	_ = godotenv.Load()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("API_KEY")
	}

	return Config{
		GeminiAPIKey:     apiKey,
		GeminiModel:      getenv("GEMINI_MODEL", "gemini-2.5-flash"),
		Seed:             parseInt64(os.Getenv("PARTYBOX_SEED"), 0),
		LogFile:          getenv("PARTYBOX_LOG_FILE", "partybox.log"),
		LogLevel:         getenv("PARTYBOX_LOG_LEVEL", "info"),
		Tick:             parseDuration(os.Getenv("PARTYBOX_TICK"), round.TickInterval),
		HoneycombAPIKey:  os.Getenv("HONEYCOMB_PARTYBOX_API_KEY"),
		HoneycombDataset: getenv("HONEYCOMB_PARTYBOX_DATASET", "partybox"),
	}
}

// TelemetryEnabled reports whether spans should be exported.
func (c Config) TelemetryEnabled() bool {
	return c.HoneycombAPIKey != ""
}

// SeedOrNow returns Seed, or the current time when Seed is 0.
func (c Config) SeedOrNow() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt64(s string, def int64) int64 {
	if s == "" {
		return def
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
