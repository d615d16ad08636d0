package config

import (
	"os"
	"strconv"
)

// CMSConfig holds connection settings for the hosted headless CMS.
// ReadToken is optional for public datasets; WriteToken enables
// contactSubmission mutations and is optional.
type CMSConfig struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	APIHost    string
	ReadToken  string
	WriteToken string
	UseCDN     bool
}

// DatabaseConfig holds PostgreSQL database connection settings.
// The database is optional; when Host is empty the submission archive is disabled.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// RedisConfig holds render-cache settings. When Addr is empty the cache
// falls back to an in-process implementation.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTLSec   int
}

// MinIOConfig holds object storage settings for the asset mirror.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MailConfig holds the notification email settings. Notification is
// skipped unless APIKey and To are both set.
type MailConfig struct {
	APIKey string
	From   string
	To     string
}

// SecretsConfig holds the shared secrets guarding the revalidation
// webhook, preview mode, and the submissions listing.
type SecretsConfig struct {
	Revalidate string
	Preview    string
	AdminToken string
}

// RateLimitConfig controls the contact-form rate limiter.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// AppConfig is the centralized configuration struct for the application.
// It is populated once from environment variables at startup and passed
// by injection; no package performs ambient environment lookups after Load.
type AppConfig struct {
	Port      string
	SiteURL   string
	CMS       CMSConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	MinIO     MinIOConfig
	Mail      MailConfig
	Secrets   SecretsConfig
	RateLimit RateLimitConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Port:    getEnv("PORT", "8080"), // default only for non-sensitive value
		SiteURL: getEnv("SITE_URL", "http://localhost:3000"),
		CMS: CMSConfig{
			ProjectID:  getEnv("CMS_PROJECT_ID", ""),
			Dataset:    getEnv("CMS_DATASET", "production"),
			APIVersion: getEnv("CMS_API_VERSION", "2024-01-01"),
			APIHost:    getEnv("CMS_API_HOST", "sanity.io"),
			ReadToken:  getEnv("CMS_READ_TOKEN", ""),
			WriteToken: getEnv("CMS_WRITE_TOKEN", ""),
			UseCDN:     getEnvBool("CMS_USE_CDN", true),
		},
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTLSec:   getEnvInt("PAGE_CACHE_TTL_SEC", 3600),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Mail: MailConfig{
			APIKey: getEnv("MAIL_API_KEY", ""),
			From:   getEnv("MAIL_FROM", "website@meridian.example"),
			To:     getEnv("MAIL_TO", ""),
		},
		Secrets: SecretsConfig{
			Revalidate: getEnv("REVALIDATE_SECRET", ""),
			Preview:    getEnv("PREVIEW_SECRET", ""),
			AdminToken: getEnv("ADMIN_TOKEN", ""),
		},
		RateLimit: RateLimitConfig{
			RPS:   getEnvFloat("CONTACT_RATE_RPS", 1),
			Burst: getEnvInt("CONTACT_RATE_BURST", 5),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
