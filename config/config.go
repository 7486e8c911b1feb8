package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration parameters.
type Config struct {
	DatabaseURL        string
	ServerPort         int
	PollInterval       int // seconds between poller passes
	ResultsProviderURL string
}

// Load reads the configuration from environment variables, optionally
// seeded from a local .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	providerURL := os.Getenv("RESULTS_PROVIDER_URL")
	if providerURL == "" {
		return nil, fmt.Errorf("RESULTS_PROVIDER_URL environment variable is not set")
	}

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	intervalStr := os.Getenv("POLL_INTERVAL_SECONDS")
	if intervalStr == "" {
		intervalStr = "60"
	}
	interval, err := strconv.Atoi(intervalStr)
	if err != nil || interval < 1 {
		return nil, fmt.Errorf("invalid POLL_INTERVAL_SECONDS environment variable: %q", intervalStr)
	}

	return &Config{
		DatabaseURL:        dbURL,
		ServerPort:         port,
		PollInterval:       interval,
		ResultsProviderURL: providerURL,
	}, nil
}
