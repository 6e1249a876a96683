package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	BaseCurrency        string
	RateProviderURL     string
	RefreshInterval     time.Duration
	StaleThreshold      time.Duration
	FetchTimeout        time.Duration
	OnlineCheckInterval time.Duration

	RateLimit string // ulule/limiter format, e.g. "100-M"
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("BASE_CURRENCY", "USD")
	viper.SetDefault("RATE_PROVIDER_URL", "")
	viper.SetDefault("RATE_REFRESH_INTERVAL", "5m")
	viper.SetDefault("RATE_STALE_THRESHOLD", "24h")
	viper.SetDefault("RATE_FETCH_TIMEOUT", "10s")
	viper.SetDefault("RATE_ONLINE_CHECK_INTERVAL", "30s")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL not set. Running with in-memory rate history and audit storage.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.BaseCurrency = viper.GetString("BASE_CURRENCY")
	cfg.RateProviderURL = viper.GetString("RATE_PROVIDER_URL")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	cfg.RefreshInterval = parseDurationOrDefault("RATE_REFRESH_INTERVAL", 5*time.Minute)
	cfg.StaleThreshold = parseDurationOrDefault("RATE_STALE_THRESHOLD", 24*time.Hour)
	cfg.FetchTimeout = parseDurationOrDefault("RATE_FETCH_TIMEOUT", 10*time.Second)
	cfg.OnlineCheckInterval = parseDurationOrDefault("RATE_ONLINE_CHECK_INTERVAL", 30*time.Second)

	return cfg, nil
}

func parseDurationOrDefault(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		}
		return fallback
	}
	return d
}
