// Package config provides configuration management for scoutle.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Config holds all configuration values for the application.
type Config struct {
	// Riot API
	RiotAPIKey            string
	RiotHostTemplate      string // fmt template taking the platform or routing host, e.g. "https://%s.api.riotgames.com"
	Region                string
	RateLimitDelay        time.Duration
	CacheTTL              time.Duration
	DefaultMatchCount     int
	MaxMatchesAnalyze     int
	MaxConcurrentRequests int

	// Scrapers
	OPGGBaseURLs      []string
	LolalyticsBaseURL string
	ScrapeDelay       time.Duration
	UserAgent         string

	// Redis
	RedisURL       string
	RedisKeyPrefix string

	// Manual matches
	ManualMatchesFile string

	// Data Dragon
	DDragonVersion string
	DDragonBaseURL string

	// Paths
	DataDir string

	// Server
	ListenAddr string

	LogLevel string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	var errs []string

	cfg := &Config{
		RiotAPIKey:            os.Getenv("RIOT_API_KEY"),
		RiotHostTemplate:      getEnvOrDefault("RIOT_HOST_TEMPLATE", "https://%s.api.riotgames.com"),
		Region:                strings.ToLower(getEnvOrDefault("SCOUTLE_REGION", "euw")),
		RateLimitDelay:        getDurationOrDefault("RIOT_RATE_LIMIT_DELAY", 100*time.Millisecond, &errs),
		CacheTTL:              getDurationOrDefault("RIOT_CACHE_TTL", 300*time.Second, &errs),
		DefaultMatchCount:     getIntOrDefault("DEFAULT_MATCH_COUNT", 20, &errs),
		MaxMatchesAnalyze:     getIntOrDefault("MAX_MATCHES_ANALYZE", 10, &errs),
		MaxConcurrentRequests: getIntOrDefault("MAX_CONCURRENT_REQUESTS", 5, &errs),

		OPGGBaseURLs:      splitList(getEnvOrDefault("OPGG_BASE_URLS", "https://op.gg,https://www.op.gg")),
		LolalyticsBaseURL: strings.TrimRight(getEnvOrDefault("LOLALYTICS_BASE_URL", "https://lolalytics.com"), "/"),
		ScrapeDelay:       getDurationOrDefault("SCRAPE_DELAY", 2*time.Second, &errs),
		UserAgent: getEnvOrDefault("SCRAPER_USER_AGENT",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),

		RedisURL:       os.Getenv("REDIS_URL"),
		RedisKeyPrefix: getEnvOrDefault("REDIS_KEY_PREFIX", "scoutle:"),

		ManualMatchesFile: getEnvOrDefault("MANUAL_MATCHES_FILE", "manual_matches.json"),

		DDragonVersion: getEnvOrDefault("DDRAGON_VERSION", "14.23.1"),
		DDragonBaseURL: strings.TrimRight(getEnvOrDefault("DDRAGON_BASE_URL", "https://ddragon.leagueoflegends.com"), "/"),

		DataDir:    getEnvOrDefault("DATA_DIR", "data"),
		ListenAddr: getEnvOrDefault("LISTEN_ADDR", ":8080"),
		LogLevel:   getEnvOrDefault("LOG_LEVEL", "info"),
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid environment: %s", strings.Join(errs, "; "))
	}

	return cfg, nil
}

// Validate checks if all configuration values are usable. A missing Riot
// API key is reported by HasRiotKey instead; callers fall back to op.gg.
func (c *Config) Validate() error {
	var errs []string

	if _, ok := LookupRegion(c.Region); !ok {
		errs = append(errs, fmt.Sprintf("SCOUTLE_REGION %q is not a known region", c.Region))
	}

	if !strings.Contains(c.RiotHostTemplate, "%s") {
		errs = append(errs, "RIOT_HOST_TEMPLATE must contain %s")
	}

	if c.RateLimitDelay < 0 {
		errs = append(errs, "RIOT_RATE_LIMIT_DELAY must not be negative")
	}

	if c.DefaultMatchCount < 1 || c.DefaultMatchCount > 100 {
		errs = append(errs, "DEFAULT_MATCH_COUNT must be between 1 and 100")
	}

	if c.MaxMatchesAnalyze < 1 {
		errs = append(errs, "MAX_MATCHES_ANALYZE must be positive")
	}

	if c.MaxConcurrentRequests < 1 {
		errs = append(errs, "MAX_CONCURRENT_REQUESTS must be positive")
	}

	if len(c.OPGGBaseURLs) == 0 {
		errs = append(errs, "OPGG_BASE_URLS is empty")
	}

	if c.ManualMatchesFile == "" {
		errs = append(errs, "MANUAL_MATCHES_FILE is empty")
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL %q is invalid", c.LogLevel))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errs, "; "))
	}

	return nil
}

// ErrInvalidConfig is wrapped by Validate failures.
var ErrInvalidConfig = errors.New("configuration validation failed")

// HasRiotKey reports whether Riot API calls can be made.
func (c *Config) HasRiotKey() bool {
	return strings.TrimSpace(c.RiotAPIKey) != ""
}

// ChampionDataPath returns the full path to a local copy of champion.json.
func (c *Config) ChampionDataPath() string {
	return filepath.Join(c.DataDir, "champion.json")
}

// ChampionDataURL returns the Data Dragon champion.json URL.
func (c *Config) ChampionDataURL() string {
	return fmt.Sprintf("%s/cdn/%s/data/en_US/champion.json", c.DDragonBaseURL, c.DDragonVersion)
}

// getEnvOrDefault returns the environment variable value or a default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int, errs *[]string) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("%s must be an integer", key))
		return defaultValue
	}
	return n
}

// getDurationOrDefault accepts Go durations ("250ms") or plain seconds ("0.1").
func getDurationOrDefault(key string, defaultValue time.Duration, errs *[]string) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.ParseFloat(value, 64); err == nil {
		return time.Duration(secs * float64(time.Second))
	}
	*errs = append(*errs, fmt.Sprintf("%s must be a duration", key))
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimRight(strings.TrimSpace(part), "/")
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
