// Package config loads application settings from the environment.
package config

import (
	"os"
	"time"

	"github.com/spf13/cast"
)

type Config struct {
	AppEnv    string
	LogLevel  string
	LogFormat string

	// RateSheetURL is an xlsx export of the rate workbook. It takes
	// precedence over RateSheetPath.
	RateSheetURL  string
	RateSheetPath string

	RateRefreshInterval time.Duration
	RateFetchTimeout    time.Duration

	SeedDemoRates bool
}

func Load() Config {
	appEnv := getEnv("APP_ENV", "dev")
	return Config{
		AppEnv:              appEnv,
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", defaultLogFormat(appEnv)),
		RateSheetURL:        getEnv("RATE_SHEET_URL", ""),
		RateSheetPath:       getEnv("RATE_SHEET_PATH", ""),
		RateRefreshInterval: getEnvDuration("RATE_REFRESH_INTERVAL", 30*time.Minute),
		RateFetchTimeout:    getEnvDuration("RATE_FETCH_TIMEOUT", 30*time.Second),
		SeedDemoRates:       getEnvBool("SEED_DEMO_RATES", appEnv == "dev"),
	}
}

// Development reports whether the app runs in a local environment.
func (c Config) Development() bool {
	return c.AppEnv == "dev"
}

func defaultLogFormat(appEnv string) string {
	if appEnv == "dev" {
		return "console"
	}
	return "json"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvDuration accepts Go durations ("45s", "1h") or a bare number of
// nanoseconds, and falls back to def on a malformed or non-positive value.
func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := cast.ToDurationE(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return def
	}
	return b
}
