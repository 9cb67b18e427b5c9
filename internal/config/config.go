package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const devSecret = "dev_secret_change_me"

// Config holds all application configuration
type Config struct {
	Port         string
	LogLevel     string
	LogFormat    string // "json" or "console"
	DatabaseDSN  string
	Secret       string
	ClientOrigin string
	Production   bool

	AnswersFile string
	AllowedFile string
	StrictWords bool // reject guesses missing from the allowed list

	MaxGuesses   int
	MaxMistakes  int
	PuzzleEpoch  time.Time
	ChallengeTTL time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "5175"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
		DatabaseDSN:  getEnv("DATABASE_DSN", ":memory:"),
		Secret:       getEnv("FRIENDLE_SECRET", devSecret),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		Production:   getEnv("APP_ENV", "development") == "production",
		AnswersFile:  os.Getenv("WORDS_ANSWERS_FILE"),
		AllowedFile:  os.Getenv("WORDS_ALLOWED_FILE"),
	}

	var err error
	if cfg.StrictWords, err = strconv.ParseBool(getEnv("STRICT_WORDS", "false")); err != nil {
		return nil, fmt.Errorf("STRICT_WORDS: %w", err)
	}
	if cfg.MaxGuesses, err = positiveInt("MAX_GUESSES", 6); err != nil {
		return nil, err
	}
	if cfg.MaxMistakes, err = positiveInt("MAX_MISTAKES", 4); err != nil {
		return nil, err
	}
	days, err := positiveInt("CHALLENGE_EXPIRES_DAYS", 7)
	if err != nil {
		return nil, err
	}
	cfg.ChallengeTTL = time.Duration(days) * 24 * time.Hour

	if cfg.PuzzleEpoch, err = time.Parse("2006-01-02", getEnv("PUZZLE_EPOCH", "2025-01-01")); err != nil {
		return nil, fmt.Errorf("PUZZLE_EPOCH: %w", err)
	}

	switch strings.ToLower(cfg.LogFormat) {
	case "json", "console":
	default:
		return nil, fmt.Errorf("LOG_FORMAT must be json or console, got %q", cfg.LogFormat)
	}

	// Validate required fields
	if cfg.Production && cfg.Secret == devSecret {
		return nil, fmt.Errorf("FRIENDLE_SECRET is required in production")
	}

	return cfg, nil
}

// Addr returns the listen address for Port.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func positiveInt(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", key, n)
	}
	return n, nil
}
