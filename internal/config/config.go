package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string `yaml:"host"`
	Port               string `yaml:"port"`
	User               string `yaml:"user"`
	Password           string `yaml:"password"`
	Name               string `yaml:"name"`
	SSLMode            string `yaml:"sslMode"`
	MaxOpenConns       int    `yaml:"maxOpenConns"`
	MaxIdleConns       int    `yaml:"maxIdleConns"`
	ConnMaxLifetimeSec int    `yaml:"connMaxLifetimeSec"`
	AutoMigrate        bool   `yaml:"autoMigrate"` // apply migrations when the server starts
}

// GoogleConfig holds the OAuth client used to act on users' Drives.
type GoogleConfig struct {
	ClientID     string `yaml:"clientId"`
	ClientSecret string `yaml:"clientSecret"`
	RedirectURL  string `yaml:"redirectUrl"`
}

// SessionConfig controls the bearer tokens handed out after login.
// A zero TTL issues tokens that never expire.
type SessionConfig struct {
	Secret string        `yaml:"secret"`
	TTL    time.Duration `yaml:"ttl"`
}

// AppConfig is the centralized configuration struct for the application.
// Values come from an optional YAML file (CONFIG_FILE) and are then
// overridden by environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost       string         `yaml:"appHost"`
	Port          string         `yaml:"port"`
	PublicBaseURL string         `yaml:"publicBaseUrl"` // base of presigned URLs; request host when empty
	LogLevel      string         `yaml:"logLevel"`
	LogFormat     string         `yaml:"logFormat"` // "json" or "console"
	UploadMaxMB   int            `yaml:"uploadMaxMb"`
	PresignTTL    time.Duration  `yaml:"presignTtl"`
	Database      DatabaseConfig `yaml:"database"`
	Google        GoogleConfig   `yaml:"google"`
	Session       SessionConfig  `yaml:"session"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *AppConfig {
	return &AppConfig{
		AppHost:     "localhost:8000",
		Port:        "8000",
		LogLevel:    "info",
		LogFormat:   "json",
		UploadMaxMB: 100,
		PresignTTL:  5 * 365 * 24 * time.Hour,
		Database: DatabaseConfig{
			Port:               "5432",
			SSLMode:            "disable",
			MaxOpenConns:       10,
			MaxIdleConns:       5,
			ConnMaxLifetimeSec: 300,
			AutoMigrate:        true,
		},
		Session: SessionConfig{
			TTL: 30 * 24 * time.Hour,
		},
	}
}

// Load reads the YAML file named by CONFIG_FILE (if any) and applies
// environment overrides. A .env file can be auto-loaded by importing:
// _ "github.com/joho/godotenv/autoload"
func Load() (*AppConfig, error) {
	cfg := Defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}
	applyEnv(cfg)
	return cfg, nil
}

func loadFile(path string, cfg *AppConfig) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *AppConfig) {
	cfg.AppHost = getEnv("APP_HOST", cfg.AppHost)
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.PublicBaseURL = getEnv("PUBLIC_BASE_URL", cfg.PublicBaseURL)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnv("LOG_FORMAT", cfg.LogFormat)
	cfg.UploadMaxMB = getEnvInt("UPLOAD_MAX_MB", cfg.UploadMaxMB)
	cfg.PresignTTL = getEnvDuration("PRESIGN_TTL", cfg.PresignTTL)

	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnv("DB_PORT", cfg.Database.Port)
	cfg.Database.User = getEnv("DB_USER", cfg.Database.User)
	cfg.Database.Password = getEnv("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.Name = getEnv("DB_NAME", cfg.Database.Name)
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", cfg.Database.SSLMode)
	cfg.Database.MaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", cfg.Database.MaxOpenConns)
	cfg.Database.MaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", cfg.Database.MaxIdleConns)
	cfg.Database.ConnMaxLifetimeSec = getEnvInt("DB_CONN_MAX_LIFETIME_SEC", cfg.Database.ConnMaxLifetimeSec)
	cfg.Database.AutoMigrate = getEnvBool("DB_AUTO_MIGRATE", cfg.Database.AutoMigrate)

	cfg.Google.ClientID = getEnv("GOOGLE_CLIENT_ID", cfg.Google.ClientID)
	cfg.Google.ClientSecret = getEnv("GOOGLE_CLIENT_SECRET", cfg.Google.ClientSecret)
	cfg.Google.RedirectURL = getEnv("GOOGLE_REDIRECT_URI", cfg.Google.RedirectURL)

	cfg.Session.Secret = getEnv("SESSION_SECRET", cfg.Session.Secret)
	cfg.Session.TTL = getEnvDuration("SESSION_TTL", cfg.Session.TTL)
}

// Validate reports settings the server cannot start without.
func (c *AppConfig) Validate() error {
	var errs []error
	if c.Google.ClientID == "" || c.Google.ClientSecret == "" || c.Google.RedirectURL == "" {
		errs = append(errs, errors.New("GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET and GOOGLE_REDIRECT_URI are required"))
	}
	if c.Session.Secret == "" {
		errs = append(errs, errors.New("SESSION_SECRET is required"))
	}
	if c.Session.TTL < 0 || c.PresignTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be >= 0 and PRESIGN_TTL > 0"))
	}
	return errors.Join(errs...)
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

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}
