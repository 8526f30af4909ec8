package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const dotEnvFile = ".env"

type Config struct {
	Port        string
	LogLevel    string
	DatabaseURL string

	MetricsEnabled bool
	MetricsToken   string

	// ReviewRateLimit is the number of review submissions allowed per
	// client IP per minute.
	ReviewRateLimit int
	// TrustProxy keys the rate limit on X-Forwarded-For. Only safe behind
	// a proxy that sets the header itself.
	TrustProxy      bool
	ShutdownTimeout time.Duration

	// DotEnvLoaded reports whether values were read from a .env file.
	DotEnvLoaded bool
}

func (c Config) Addr() string { return ":" + c.Port }

// Load reads .env when present and then the process environment.
// Variables already set in the environment win over .env.
func Load() (Config, error) {
	loaded := false
	if _, err := os.Stat(dotEnvFile); err == nil {
		if err := godotenv.Load(dotEnvFile); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", dotEnvFile, err)
		}
		loaded = true
	}

	cfg := Config{
		Port:         getEnv("PORT", "8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		MetricsToken: getEnv("METRICS_TOKEN", ""),
		DotEnvLoaded: loaded,
	}

	var errs []error
	var err error
	if cfg.MetricsEnabled, err = getBool("METRICS_ENABLED", false); err != nil {
		errs = append(errs, err)
	}
	if cfg.TrustProxy, err = getBool("TRUST_PROXY", false); err != nil {
		errs = append(errs, err)
	}
	if cfg.ReviewRateLimit, err = getInt("REVIEW_RATE_LIMIT", 10); err != nil {
		errs = append(errs, err)
	}
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}

	if cfg.ReviewRateLimit < 1 {
		return Config{}, fmt.Errorf("REVIEW_RATE_LIMIT must be positive, got %d", cfg.ReviewRateLimit)
	}
	if cfg.MetricsEnabled && cfg.MetricsToken == "" {
		return Config{}, errors.New("METRICS_TOKEN is required when METRICS_ENABLED is set")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getBool(key string, fallback bool) (bool, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %w", key, err)
	}
	return b, nil
}

func getInt(key string, fallback int) (int, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
