package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the whole application configuration, populated once from
// environment variables and passed into handlers through the container.
// Handlers never read the environment themselves.
type Config struct {
	App     AppConfig
	Redis   RedisConfig
	MinIO   MinIOConfig
	Admin   AdminConfig
	Content ContentConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// AdminConfig carries the static secrets that gate mutating routes.
// The admin token model (single shared secret, compared verbatim) is a
// compatibility requirement of the upstream platform.
type AdminConfig struct {
	AdminToken       string // bearer/cookie secret for admin routes
	RevalidateSecret string // shared secret for revalidation + sync webhooks
	CronSecret       string // shared secret for scheduled triggers
}

// ContentConfig points at the external content surfaces.
type ContentConfig struct {
	SheetCSVURL     string // published spreadsheet CSV export, optional
	FrontendBaseURL string // rendering layer, target of revalidation calls
	SiteBaseURL     string // public site root, used by the sitemap
}

// Load reads config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Blogpress API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "blogpress"),
			UseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",
		},
		Admin: AdminConfig{
			AdminToken:       getEnv("ADMIN_TOKEN", ""),
			RevalidateSecret: getEnv("REVALIDATE_SECRET", ""),
			CronSecret:       getEnv("CRON_SECRET", ""),
		},
		Content: ContentConfig{
			SheetCSVURL:     getEnv("SHEET_CSV_URL", ""),
			FrontendBaseURL: getEnv("FRONTEND_BASE_URL", "http://localhost:3000"),
			SiteBaseURL:     getEnv("SITE_BASE_URL", "http://localhost:3000"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks production-critical values. Missing route-level secrets are
// deliberately not fatal here: a route whose secret is unset fails that route,
// not the whole process.
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.Admin.AdminToken == "" {
			return fmt.Errorf("ADMIN_TOKEN must be set in production")
		}
		if c.Content.FrontendBaseURL == "" {
			return fmt.Errorf("FRONTEND_BASE_URL must be set in production")
		}
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
