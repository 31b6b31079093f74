package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"wordsteady/internal/content"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	DatabaseType    string // sqlite, postgres, mysql
	DatabasePath    string // sqlite file
	DatabaseURL     string // postgres/mysql DSN
	StaticFilesPath string
	TemplatesPath   string
	MigrationsPath  string

	// Content source: "file", "http" or "s3"
	ContentSource string
	ContentDir    string
	ContentURL    string
	ContentBucket string
	ContentPrefix string
	AWSRegion     string

	SessionSecret  string
	LearnerTTL     time.Duration
	Timezone       string
	LogLevel       string
	LogFile        string
	AudioEnabled   bool
	PurgeAfterDays int
	RateLimit      int // POSTs per minute per client
}

// Load reads configuration from environment variables with sensible
// defaults. A .env file in the working directory is applied first when
// present; variables already set in the environment win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		DatabaseType:    getEnv("DB_TYPE", "sqlite"),
		DatabasePath:    getEnv("DB_PATH", "./wordsteady.db"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		StaticFilesPath: getEnv("STATIC_PATH", "./static"),
		TemplatesPath:   getEnv("TEMPLATES_PATH", "./internal/templates"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", ""), // empty: compiled-in migrations

		ContentSource: getEnv("CONTENT_SOURCE", "file"),
		ContentDir:    getEnv("CONTENT_DIR", "./data"),
		ContentURL:    getEnv("CONTENT_URL", ""),
		ContentBucket: getEnv("CONTENT_BUCKET", ""),
		ContentPrefix: getEnv("CONTENT_PREFIX", ""),
		AWSRegion:     getEnv("AWS_REGION", "us-east-1"),

		SessionSecret:  getEnv("SESSION_SECRET", ""),
		LearnerTTL:     getEnvDuration("LEARNER_TTL", 365*24*time.Hour),
		Timezone:       getEnv("TZ", "Local"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFile:        getEnv("LOG_FILE", ""),
		AudioEnabled:   getEnvBool("AUDIO_ENABLED", false),
		PurgeAfterDays: getEnvInt("PURGE_AFTER_DAYS", 7),
		RateLimit:      getEnvInt("RATE_LIMIT", 120),
	}
}

// Location resolves Timezone, the zone whose calendar day keys sessions
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// ContentSourceOptions maps the content settings onto a source
func (c *Config) ContentSourceOptions() content.SourceOptions {
	return content.SourceOptions{
		Kind:   c.ContentSource,
		Dir:    c.ContentDir,
		URL:    c.ContentURL,
		Bucket: c.ContentBucket,
		Prefix: c.ContentPrefix,
		Region: c.AWSRegion,
	}
}

// Validate reports settings that cannot work together
func (c *Config) Validate() error {
	switch c.DatabaseType {
	case "sqlite", "sqlite3":
	case "postgres", "postgresql", "mysql":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for %s", c.DatabaseType)
		}
	default:
		return fmt.Errorf("unsupported DB_TYPE %q", c.DatabaseType)
	}

	switch c.ContentSource {
	case "file":
	case "http":
		if c.ContentURL == "" {
			return fmt.Errorf("CONTENT_URL is required for the http content source")
		}
	case "s3":
		if c.ContentBucket == "" {
			return fmt.Errorf("CONTENT_BUCKET is required for the s3 content source")
		}
	default:
		return fmt.Errorf("unsupported CONTENT_SOURCE %q", c.ContentSource)
	}

	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
