// Package config centralizes environment configuration. Everything is read
// through viper so defaults and environment variables compose the same way
// in main and in tests.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config is the resolved runtime configuration.
type Config struct {
	AppPort     string
	Environment string // "development" or "production"
	FrontendURL string

	JWTSecret     string
	TokenDuration time.Duration

	AdminEmail        string
	AdminPasswordHash string

	SheetsID            string
	ServiceAccountEmail string
	ServiceAccountKey   string

	// DatabaseDSN switches the user store from the in-memory fallback to a
	// GORM-backed database. DatabaseDriver is "sqlite" or "postgres".
	DatabaseDSN    string
	DatabaseDriver string

	RabbitMQURL string

	// AllowUnpersistedEnquiries keeps the dev affordance of accepting
	// enquiries without a configured store. It is forced off in production.
	AllowUnpersistedEnquiries bool
}

// Load reads configuration from the environment with development defaults.
func Load() *Config {
	v := viper.New()
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("FRONTEND_URL", "http://localhost:5173")
	v.SetDefault("JWT_SECRET", "dev-secret-change-in-production")
	v.SetDefault("JWT_EXPIRES_IN", "168h") // 7 days
	v.SetDefault("ADMIN_EMAIL", "admin@fireguard.com")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("ALLOW_UNPERSISTED_ENQUIRIES", true)
	v.AutomaticEnv()

	cfg := &Config{
		AppPort:     v.GetString("APP_PORT"),
		Environment: v.GetString("APP_ENV"),
		FrontendURL: v.GetString("FRONTEND_URL"),

		JWTSecret:     v.GetString("JWT_SECRET"),
		TokenDuration: v.GetDuration("JWT_EXPIRES_IN"),

		AdminEmail:        v.GetString("ADMIN_EMAIL"),
		AdminPasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),

		SheetsID:            v.GetString("GOOGLE_SHEETS_ID"),
		ServiceAccountEmail: v.GetString("GOOGLE_SERVICE_ACCOUNT_EMAIL"),
		ServiceAccountKey:   v.GetString("GOOGLE_PRIVATE_KEY"),

		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		DatabaseDriver: v.GetString("DATABASE_DRIVER"),

		RabbitMQURL: v.GetString("RABBITMQ_URL"),

		AllowUnpersistedEnquiries: v.GetBool("ALLOW_UNPERSISTED_ENQUIRIES"),
	}

	if cfg.TokenDuration <= 0 {
		cfg.TokenDuration = 7 * 24 * time.Hour
	}
	if cfg.IsProduction() {
		// Silent "success" without persistence would be data loss in
		// production, not a convenience.
		cfg.AllowUnpersistedEnquiries = false
	}
	return cfg
}

// IsProduction reports whether the app runs with production behavior
// (generic error bodies, no dev admin password, no unpersisted enquiries).
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
