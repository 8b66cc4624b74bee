package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/alexanderramin/degreeplan/internal/planner"
)

// Cache backends.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// Config holds all application configuration.
type Config struct {
	DBPath         string
	LogLevel       string
	LogFormat      string
	CacheBackend   string
	RedisURL       string
	CatalogTTL     time.Duration
	ProfileTTL     time.Duration
	HTTPAddr       string
	GinMode        string
	RequestTimeout time.Duration

	MaxCredits            float64
	MaxCreditsEngineering float64
	MaxCreditsSummer      float64
	RecommendedYears      int
	AbsoluteMaxYears      int
	EngineeringMajors     []string
}

// Load reads configuration from environment variables with defaults.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	defaults := planner.DefaultPolicy()
	return &Config{
		DBPath:         getEnv("DEGREEPLAN_DB", defaultDBPath()),
		LogLevel:       getEnv("DEGREEPLAN_LOG_LEVEL", "info"),
		LogFormat:      getEnv("DEGREEPLAN_LOG_FORMAT", "pretty"),
		CacheBackend:   strings.ToLower(getEnv("DEGREEPLAN_CACHE", CacheMemory)),
		RedisURL:       getEnv("DEGREEPLAN_REDIS_URL", "redis://localhost:6379/0"),
		CatalogTTL:     getEnvDuration("DEGREEPLAN_CATALOG_TTL", 24*time.Hour),
		ProfileTTL:     getEnvDuration("DEGREEPLAN_PROFILE_TTL", 5*time.Minute),
		HTTPAddr:       getEnv("DEGREEPLAN_HTTP_ADDR", ":8080"),
		GinMode:        getEnv("DEGREEPLAN_GIN_MODE", "release"),
		RequestTimeout: getEnvDuration("DEGREEPLAN_REQUEST_TIMEOUT", 10*time.Second),

		MaxCredits:            getEnvFloat("DEGREEPLAN_MAX_CREDITS", defaults.MaxCredits),
		MaxCreditsEngineering: getEnvFloat("DEGREEPLAN_MAX_CREDITS_ENGINEERING", defaults.MaxCreditsEngineering),
		MaxCreditsSummer:      getEnvFloat("DEGREEPLAN_MAX_CREDITS_SUMMER", defaults.MaxCreditsSummer),
		RecommendedYears:      getEnvInt("DEGREEPLAN_RECOMMENDED_YEARS", defaults.RecommendedYears),
		AbsoluteMaxYears:      getEnvInt("DEGREEPLAN_ABSOLUTE_MAX_YEARS", defaults.AbsoluteMaxYears),
		EngineeringMajors:     parseList(getEnv("DEGREEPLAN_ENGINEERING_MAJORS", strings.Join(defaults.EngineeringMajors, ","))),
	}
}

// Policy is the planning policy with configured overrides applied.
func (c *Config) Policy() planner.Policy {
	p := planner.DefaultPolicy()
	p.MaxCredits = c.MaxCredits
	p.MaxCreditsEngineering = c.MaxCreditsEngineering
	p.MaxCreditsSummer = c.MaxCreditsSummer
	p.RecommendedYears = c.RecommendedYears
	p.AbsoluteMaxYears = max(c.AbsoluteMaxYears, c.RecommendedYears)
	p.EngineeringMajors = c.EngineeringMajors
	return p
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "degreeplan.db"
	}
	return filepath.Join(home, ".degreeplan", "degreeplan.db")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		return fallback
	}
	return f
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

// parseList splits a comma-separated list into upper-cased, trimmed entries.
func parseList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.ToUpper(strings.TrimSpace(p)); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
