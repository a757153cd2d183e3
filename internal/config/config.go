package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/crushconfessions/crushconfessions-backend/pkg/logger"
	"gopkg.in/yaml.v3"
)

// Config holds all runtime configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	CORS     CORSConfig     `yaml:"cors"`
	App      AppConfig      `yaml:"app"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Port int    `yaml:"port"`
	Env  string `yaml:"env"`
}

// DatabaseConfig MySQL settings
type DatabaseConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	User            string `yaml:"user"`
	Password        string `yaml:"password"`
	Name            string `yaml:"name"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"`
}

// GetDSN builds the MySQL connection string
func (d DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

// RedisConfig Redis settings
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// JWTConfig token settings. ExpiresIn and RefreshIn are in minutes.
type JWTConfig struct {
	Secret    string `yaml:"secret"`
	ExpiresIn int    `yaml:"expires_in"`
	RefreshIn int    `yaml:"refresh_in"`
}

// CORSConfig CORS settings
type CORSConfig struct {
	AllowOrigins string `yaml:"allow_origins"`
}

// AppConfig application-level settings
type AppConfig struct {
	// Only emails under this domain may register or be targeted
	EmailDomain string `yaml:"email_domain"`
	// Seconds before a typing indicator goes stale
	TypingTTLSeconds int `yaml:"typing_ttl_seconds"`
}

// Load reads a yaml config file and applies environment variable overrides.
// Env vars win over file values so deployments can keep secrets out of yaml.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		logger.Info("Config file %s not found, using defaults + env", path)
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required (set JWT_SECRET or jwt.secret)")
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080, Env: "local"},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            3306,
			User:            "root",
			Name:            "crushconfessions",
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: 3600,
		},
		Redis: RedisConfig{Host: "localhost", Port: 6379, PoolSize: 10},
		JWT:   JWTConfig{ExpiresIn: 15, RefreshIn: 1440},
		CORS:  CORSConfig{AllowOrigins: "http://localhost:3000"},
		App: AppConfig{
			EmailDomain:      "@umt.edu.pk",
			TypingTTLSeconds: 3,
		},
	}
}

func applyEnvOverrides(cfg *Config) {
	setString(&cfg.Server.Env, "APP_ENV")
	setInt(&cfg.Server.Port, "PORT")
	setString(&cfg.Database.Host, "DB_HOST")
	setInt(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Name, "DB_NAME")
	setBool(&cfg.Redis.Enabled, "REDIS_ENABLED")
	setString(&cfg.Redis.Host, "REDIS_HOST")
	setInt(&cfg.Redis.Port, "REDIS_PORT")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setString(&cfg.JWT.Secret, "JWT_SECRET")
	setString(&cfg.CORS.AllowOrigins, "CORS_ALLOW_ORIGINS")
	setString(&cfg.App.EmailDomain, "EMAIL_DOMAIN")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// IsDevelopment reports whether the server runs in a development environment
func (c *Config) IsDevelopment() bool {
	switch c.Server.Env {
	case "local", "dev", "development":
		return true
	}
	return false
}

// LogResolved logs the effective configuration without secrets
func LogResolved(cfg *Config) {
	logger.Info("config: env=%s port=%d db=%s@%s:%d/%s redis=%s:%d email_domain=%s",
		cfg.Server.Env, cfg.Server.Port,
		cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Name,
		cfg.Redis.Host, cfg.Redis.Port, cfg.App.EmailDomain)
}
