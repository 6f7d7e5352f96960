package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// DatabaseConfig holds PostgreSQL database connection settings.
// URL, when set, is used verbatim and the individual components are ignored.
type DatabaseConfig struct {
	URL                string
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
	// ConnectAttempts bounds the startup pings made while the server comes up.
	ConnectAttempts int
}

// RemoteConfig holds settings for the remote document service.
// The service is S3-compatible: SiteURL is its base URL, Username and Password
// are the access and secret keys.
type RemoteConfig struct {
	SiteURL    string
	Username   string
	Password   string
	RootFolder string
	Bucket     string
	TimeoutSec int
}

// Enabled reports whether every credential needed to reach the remote service is present.
func (c RemoteConfig) Enabled() bool {
	return c.SiteURL != "" && c.Username != "" && c.Password != ""
}

// Timeout is the per-call deadline applied to remote operations.
func (c RemoteConfig) Timeout() time.Duration {
	if c.TimeoutSec <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSec) * time.Second
}

// StorageConfig describes the local filesystem store.
type StorageConfig struct {
	LocalPath string
	// ServeLocal mounts GET /storage/* over LocalPath.
	ServeLocal bool
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level  string
	Format string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Env              string
	Port             string
	CaseNumberPrefix string
	MaxUploadBytes   int64
	Database         DatabaseConfig
	Remote           RemoteConfig
	Storage          StorageConfig
	Log              LogConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Env:              getEnv("APP_ENV", EnvDevelopment),
		Port:             getEnv("PORT", "8080"),
		CaseNumberPrefix: getEnv("CASE_NUMBER_PREFIX", "CDC-PR"),
		MaxUploadBytes:   getEnvInt64("MAX_UPLOAD_BYTES", 100<<20),
		Database: DatabaseConfig{
			URL:                getEnv("DATABASE_URL", ""),
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
			ConnectAttempts:    getEnvInt("DB_CONNECT_ATTEMPTS", 3),
		},
		Remote: RemoteConfig{
			SiteURL:    getEnv("REMOTE_SITE_URL", ""),
			Username:   getEnv("REMOTE_USERNAME", ""),
			Password:   getEnv("REMOTE_PASSWORD", ""),
			RootFolder: getEnv("REMOTE_ROOT_FOLDER", "CDC-PR-Cases"),
			Bucket:     getEnv("REMOTE_BUCKET", "procurement"),
			TimeoutSec: getEnvInt("REMOTE_TIMEOUT_SEC", 10),
		},
		Storage: StorageConfig{
			LocalPath:  getEnv("LOCAL_STORAGE_PATH", "./instance/storage"),
			ServeLocal: getEnvBool("SERVE_LOCAL_STORAGE", true),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}

// Validate checks the settings the API cannot start without.
func (c *AppConfig) Validate() error {
	if c.CaseNumberPrefix == "" {
		return fmt.Errorf("CASE_NUMBER_PREFIX must not be empty")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if c.Storage.LocalPath == "" {
		return fmt.Errorf("LOCAL_STORAGE_PATH must not be empty")
	}
	return nil
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

func getEnvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			return i
		}
	}
	return def
}
