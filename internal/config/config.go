package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	NSE       NSEConfig
	Yahoo     YahooConfig
	Scheduler SchedulerConfig
	Admin     AdminConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// NSEConfig holds bhavcopy provider configuration
type NSEConfig struct {
	BaseURL      string
	LookbackDays int
	Timeout      time.Duration
}

// YahooConfig holds Yahoo fallback provider configuration
type YahooConfig struct {
	BaseURL    string
	WindowDays int
	Timeout    time.Duration
}

// SchedulerConfig holds the daily price refresh schedule
type SchedulerConfig struct {
	Enabled bool
	Spec    string
}

// AdminConfig holds administrative endpoint configuration
type AdminConfig struct {
	APIKey string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/returns_engine.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		NSE: NSEConfig{
			BaseURL:      getEnv("NSE_BASE_URL", "https://archives.nseindia.com"),
			LookbackDays: getEnvInt("NSE_LOOKBACK_DAYS", 10),
			Timeout:      getEnvDuration("NSE_TIMEOUT", 30*time.Second),
		},
		Yahoo: YahooConfig{
			BaseURL:    getEnv("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"),
			WindowDays: getEnvInt("YAHOO_WINDOW_DAYS", 10),
			Timeout:    getEnvDuration("YAHOO_TIMEOUT", 30*time.Second),
		},
		Scheduler: SchedulerConfig{
			Enabled: getEnvBool("PRICE_REFRESH_ENABLED", false),
			// After NSE publishes the end-of-day file, weekdays only.
			Spec: getEnv("PRICE_REFRESH_SCHEDULE", "30 19 * * 1-5"),
		},
		Admin: AdminConfig{
			APIKey: getEnv("INTERNAL_API_KEY", ""),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := strings.ToLower(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value == "1" || value == "true" || value == "yes"
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
