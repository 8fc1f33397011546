package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application-level configuration
type Config struct {
	// Environment
	AppEnv string

	// Data layout
	DataDir   string
	OutputDir string

	// Scraper
	MapsBaseURL    string
	Headless       bool
	MaxReviews     int
	PageTimeout    time.Duration
	SettleDelay    time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration
	ScrapeDelayMs  int // milliseconds between hotels
	DebugArtifacts bool

	// Summarizer
	GeminiAPIKey     string
	GeminiModel      string
	GeminiBaseURL    string
	PromptProvider   string
	SummaryRateLimit float64 // calls per second to the text model

	// Cache / storage
	RedisAddr   string
	RedisPass   string
	RedisDB     int
	CacheTTLSec int
	DatabaseURL string
}

// Load reads configuration from environment variables or falls back to defaults
func Load() *Config {
	return &Config{
		AppEnv:           getEnv("APP_ENV", "prod"),
		DataDir:          getEnv("DATA_DIR", "data"),
		OutputDir:        getEnv("OUTPUT_DIR", "outputs"),
		MapsBaseURL:      getEnv("MAPS_BASE_URL", "https://www.google.com/maps/search/"),
		Headless:         getEnvBool("HEADLESS", true),
		MaxReviews:       getEnvInt("MAX_REVIEWS", 30),
		PageTimeout:      time.Duration(getEnvInt("PAGE_TIMEOUT_SEC", 45)) * time.Second,
		SettleDelay:      time.Duration(getEnvInt("SETTLE_DELAY_MS", 2000)) * time.Millisecond,
		RetryAttempts:    getEnvInt("MAX_RETRIES", 3),
		RetryDelay:       time.Duration(getEnvInt("RETRY_DELAY_MS", 2000)) * time.Millisecond,
		ScrapeDelayMs:    getEnvInt("SCRAPE_DELAY_MS", 1000),
		DebugArtifacts:   getEnvBool("SCRAPE_DEBUG", false),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiBaseURL:    getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		PromptProvider:   getEnv("PROMPT_PROVIDER", "gemini"),
		SummaryRateLimit: getEnvFloat("SUMMARY_RATE_LIMIT", 1.0),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisPass:        getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		CacheTTLSec:      getEnvInt("CACHE_TTL_SECONDS", 0),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
