package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	S3     S3Config
	Engine EngineConfig
	Batch  BatchConfig
	Log    LogConfig
	CORS   CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
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

// S3Config holds object storage settings for persisted document bytes.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// EngineConfig holds settings for the external OCR/comparison engine.
// Both capabilities live behind one base URL; clients append their path.
type EngineConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// Timeout returns the engine call timeout as a duration.
func (e *EngineConfig) Timeout() time.Duration {
	if e.TimeoutSecs <= 0 {
		return 60 * time.Second
	}
	return time.Duration(e.TimeoutSecs) * time.Second
}

// BatchConfig holds batch extraction settings.
type BatchConfig struct {
	Concurrency     int   `mapstructure:"concurrency"`
	SkipUnsupported bool  `mapstructure:"skip_unsupported"`
	MaxFileSizeMB   int64 `mapstructure:"max_file_size_mb"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the DOCR_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DOCR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "docr")
	v.SetDefault("db.password", "docr_secret")
	v.SetDefault("db.name", "docr_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "docr-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 3600)

	// Engine defaults
	v.SetDefault("engine.base_url", "http://localhost:5000")
	v.SetDefault("engine.timeout_secs", 60)

	// Batch defaults
	v.SetDefault("batch.concurrency", 4)
	v.SetDefault("batch.skip_unsupported", false)
	v.SetDefault("batch.max_file_size_mb", 50)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:5173,http://127.0.0.1:5173,http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":            "DOCR_SERVER_PORT",
		"server.read_timeout":    "DOCR_SERVER_READ_TIMEOUT",
		"server.write_timeout":   "DOCR_SERVER_WRITE_TIMEOUT",
		"server.environment":     "DOCR_SERVER_ENVIRONMENT",
		"db.host":                "DOCR_DB_HOST",
		"db.port":                "DOCR_DB_PORT",
		"db.user":                "DOCR_DB_USER",
		"db.password":            "DOCR_DB_PASSWORD",
		"db.name":                "DOCR_DB_NAME",
		"db.sslmode":             "DOCR_DB_SSLMODE",
		"db.max_open":            "DOCR_DB_MAX_OPEN",
		"db.max_idle":            "DOCR_DB_MAX_IDLE",
		"s3.region":              "DOCR_S3_REGION",
		"s3.bucket":              "DOCR_S3_BUCKET",
		"s3.endpoint":            "DOCR_S3_ENDPOINT",
		"s3.access_key":          "DOCR_S3_ACCESS_KEY",
		"s3.secret_key":          "DOCR_S3_SECRET_KEY",
		"s3.presign_expiry":      "DOCR_S3_PRESIGN_EXPIRY",
		"engine.base_url":        "DOCR_ENGINE_BASE_URL",
		"engine.timeout_secs":    "DOCR_ENGINE_TIMEOUT_SECS",
		"batch.concurrency":      "DOCR_BATCH_CONCURRENCY",
		"batch.skip_unsupported": "DOCR_BATCH_SKIP_UNSUPPORTED",
		"batch.max_file_size_mb": "DOCR_BATCH_MAX_FILE_SIZE_MB",
		"log.level":              "DOCR_LOG_LEVEL",
		"log.format":             "DOCR_LOG_FORMAT",
		"cors.allowed_origins":   "DOCR_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if DOCR_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DOCR_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Engine = EngineConfig{
		BaseURL:     strings.TrimRight(v.GetString("engine.base_url"), "/"),
		TimeoutSecs: v.GetInt("engine.timeout_secs"),
	}
	cfg.Batch = BatchConfig{
		Concurrency:     v.GetInt("batch.concurrency"),
		SkipUnsupported: v.GetBool("batch.skip_unsupported"),
		MaxFileSizeMB:   v.GetInt64("batch.max_file_size_mb"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	return cfg, nil
}
