package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	S3     S3Config
	OCR    OCRConfig
	Email  EmailConfig
	Log    LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
	// BaseURL is the externally reachable address used to build the
	// approve/reject links embedded in notification emails.
	BaseURL string `mapstructure:"base_url"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// OCRConfig holds settings for the external recognition binaries.
type OCRConfig struct {
	Magick    string `mapstructure:"magick"`
	Tesseract string `mapstructure:"tesseract"`
	Language  string `mapstructure:"language"`
	PSM       int    `mapstructure:"psm"`
	WorkDir   string `mapstructure:"work_dir"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	Reviewer    string `mapstructure:"reviewer"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the RECIBO_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("RECIBO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.base_url", "http://localhost:8080")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "recibo")
	v.SetDefault("db.password", "recibo_secret")
	v.SetDefault("db.name", "recibo_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 5)

	// S3 defaults
	v.SetDefault("s3.region", "eu-west-1")
	v.SetDefault("s3.bucket", "recibo-receipts")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")
	v.SetDefault("s3.max_file_size_mb", 20)
	v.SetDefault("s3.presign_expiry", 900)

	// OCR defaults
	v.SetDefault("ocr.magick", "magick")
	v.SetDefault("ocr.tesseract", "tesseract")
	v.SetDefault("ocr.language", "spa")
	v.SetDefault("ocr.psm", 6)
	v.SetDefault("ocr.work_dir", "")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "eu-west-1")
	v.SetDefault("email.from_address", "noreply@recibo.local")
	v.SetDefault("email.from_name", "Recibo")
	v.SetDefault("email.reviewer", "")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "RECIBO_SERVER_PORT",
		"server.read_timeout":  "RECIBO_SERVER_READ_TIMEOUT",
		"server.write_timeout": "RECIBO_SERVER_WRITE_TIMEOUT",
		"server.environment":   "RECIBO_SERVER_ENVIRONMENT",
		"server.base_url":      "RECIBO_SERVER_BASE_URL",
		"db.host":              "RECIBO_DB_HOST",
		"db.port":              "RECIBO_DB_PORT",
		"db.user":              "RECIBO_DB_USER",
		"db.password":          "RECIBO_DB_PASSWORD",
		"db.name":              "RECIBO_DB_NAME",
		"db.sslmode":           "RECIBO_DB_SSLMODE",
		"db.max_open":          "RECIBO_DB_MAX_OPEN",
		"db.max_idle":          "RECIBO_DB_MAX_IDLE",
		"s3.region":            "RECIBO_S3_REGION",
		"s3.bucket":            "RECIBO_S3_BUCKET",
		"s3.endpoint":          "RECIBO_S3_ENDPOINT",
		"s3.access_key":        "RECIBO_S3_ACCESS_KEY",
		"s3.secret_key":        "RECIBO_S3_SECRET_KEY",
		"s3.max_file_size_mb":  "RECIBO_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":    "RECIBO_S3_PRESIGN_EXPIRY",
		"ocr.magick":           "RECIBO_OCR_MAGICK",
		"ocr.tesseract":        "RECIBO_OCR_TESSERACT",
		"ocr.language":         "RECIBO_OCR_LANGUAGE",
		"ocr.psm":              "RECIBO_OCR_PSM",
		"ocr.work_dir":         "RECIBO_OCR_WORK_DIR",
		"email.provider":       "RECIBO_EMAIL_PROVIDER",
		"email.region":         "RECIBO_EMAIL_REGION",
		"email.from_address":   "RECIBO_EMAIL_FROM_ADDRESS",
		"email.from_name":      "RECIBO_EMAIL_FROM_NAME",
		"email.reviewer":       "RECIBO_EMAIL_REVIEWER",
		"log.level":            "RECIBO_LOG_LEVEL",
		"log.format":           "RECIBO_LOG_FORMAT",
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding env %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}
