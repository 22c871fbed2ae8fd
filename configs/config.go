package configs

import (
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Market   MarketConfig
	Logger   LoggerConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL string
}

// AuthConfig holds JWT signing configuration
type AuthConfig struct {
	JWTSecret          string
	AccessTokenMinutes int
	RefreshTokenDays   int
}

// MarketConfig selects and configures the market data provider. The provider
// is chosen here, at construction time, never from ambient process state at
// call time.
type MarketConfig struct {
	Provider      string
	FinnhubAPIKey string
	FinnhubURL    string
	WatchSymbols  []string
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("GO_ENV", "development"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Auth: AuthConfig{
			JWTSecret:          getEnv("JWT_SECRET", "CHANGE_ME_SUPER_SECRET"),
			AccessTokenMinutes: getEnvInt("ACCESS_TOKEN_MINUTES", 15),
			RefreshTokenDays:   getEnvInt("REFRESH_TOKEN_DAYS", 14),
		},
		Market: MarketConfig{
			Provider:      getEnv("MARKET_PROVIDER", "finnhub"),
			FinnhubAPIKey: getEnv("FINNHUB_API_KEY", ""),
			FinnhubURL:    getEnv("FINNHUB_BASE_URL", "https://finnhub.io/api/v1"),
			WatchSymbols:  getEnvList("MARKET_WATCH_SYMBOLS"),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvList parses a comma-separated environment variable
func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}
