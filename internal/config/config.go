package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxConns        int    `yaml:"max_conns" env:"DB_MAX_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	Session struct {
		MaxAge        string `yaml:"max_age" env:"SESSION_MAX_AGE"`
		SweepInterval string `yaml:"sweep_interval" env:"SESSION_SWEEP_INTERVAL"`
		SecureCookies bool   `yaml:"secure_cookies" env:"SESSION_SECURE_COOKIES"`
	} `yaml:"session"`

	Media struct {
		Endpoint  string `yaml:"endpoint" env:"MEDIA_ENDPOINT"`
		AccessKey string `yaml:"access_key" env:"MEDIA_ACCESS_KEY"`
		SecretKey string `yaml:"secret_key" env:"MEDIA_SECRET_KEY"`
		Bucket    string `yaml:"bucket" env:"MEDIA_BUCKET"`
	} `yaml:"media"`

	Upload struct {
		PhotoMaxMB int `yaml:"photo_max_mb" env:"UPLOAD_PHOTO_MAX_MB"`
		FileMaxMB  int `yaml:"file_max_mb" env:"UPLOAD_FILE_MAX_MB"`
	} `yaml:"upload"`

	CORS struct {
		// Comma-separated list of origins allowed to send credentials.
		AllowedOrigins string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS"`
	} `yaml:"cors"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// The config file is optional; defaults plus environment cover a full
	// deployment.
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Environment variables win over the file.
	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "lectern"
	config.Database.SSLMode = "disable"
	config.Database.MaxConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.Session.MaxAge = "24h"
	config.Session.SweepInterval = "10m"
	config.Session.SecureCookies = false

	config.Upload.PhotoMaxMB = 5
	config.Upload.FileMaxMB = 50

	config.CORS.AllowedOrigins = "http://localhost:5173"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if config.Database.DBName == "" {
		return fmt.Errorf("database name is required")
	}

	if config.Media.Bucket == "" {
		return fmt.Errorf("media bucket is required")
	}
	if config.Media.Endpoint == "" {
		return fmt.Errorf("media endpoint is required")
	}

	if _, err := time.ParseDuration(config.Session.MaxAge); err != nil {
		return fmt.Errorf("invalid session max age format: %w", err)
	}
	if _, err := time.ParseDuration(config.Session.SweepInterval); err != nil {
		return fmt.Errorf("invalid session sweep interval format: %w", err)
	}

	if config.Upload.PhotoMaxMB < 1 {
		return fmt.Errorf("photo size limit must be at least 1 MB")
	}
	if config.Upload.FileMaxMB < 1 {
		return fmt.Errorf("file size limit must be at least 1 MB")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// AllowedOriginList splits the configured CORS origins.
func (c *Config) AllowedOriginList() []string {
	parts := strings.Split(c.CORS.AllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
