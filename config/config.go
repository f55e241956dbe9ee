package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"

	"survivorpool/database"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// Pool rules
	StartingLives     int     // Lives each entrant starts the season with
	MaxFavoriteSpread float64 // Largest favorite (in points) that may be picked
	EntryFee          int64   // Buy-in per entrant, used for payment summaries

	// Pool timezone (deadlines and manual pick timestamps are interpreted here)
	PoolTimezone string

	// NATS configuration
	NATSServers string // NATS server addresses (comma-separated); empty disables publishing

	// Autopick sweep interval in minutes
	AutopickSweepMinutes int

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// Location resolves the pool timezone. Falls back to UTC on a bad name so a
// misconfigured deployment locks picks rather than crashing.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.PoolTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// load loads configuration from environment variables
func load() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	config := &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		// Pool rule defaults
		StartingLives:     2,
		MaxFavoriteSpread: 16,
		EntryFee:          25,

		PoolTimezone: getEnvWithDefault("POOL_TIMEZONE", "America/Chicago"),

		NATSServers: os.Getenv("NATS_SERVERS"),

		AutopickSweepMinutes: 30,

		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if lives := os.Getenv("STARTING_LIVES"); lives != "" {
		if parsed, err := strconv.Atoi(lives); err == nil && parsed > 0 {
			config.StartingLives = parsed
		}
	}
	if cap := os.Getenv("MAX_FAVORITE_SPREAD"); cap != "" {
		if parsed, err := strconv.ParseFloat(cap, 64); err == nil && parsed > 0 {
			config.MaxFavoriteSpread = parsed
		}
	}
	if fee := os.Getenv("ENTRY_FEE"); fee != "" {
		if parsed, err := strconv.ParseInt(fee, 10, 64); err == nil && parsed >= 0 {
			config.EntryFee = parsed
		}
	}
	if sweep := os.Getenv("AUTOPICK_SWEEP_MINUTES"); sweep != "" {
		if parsed, err := strconv.Atoi(sweep); err == nil && parsed > 0 {
			config.AutopickSweepMinutes = parsed
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:       "test",
		StartingLives:     2,
		MaxFavoriteSpread: 16,
		EntryFee:          25,
		PoolTimezone:      "America/Chicago",
	}
}
