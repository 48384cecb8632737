// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port      int `yaml:"port"`       // public OpenAI-compatible API
	AdminPort int `yaml:"admin_port"` // admin API + /metrics
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"` // credential cache TTL
}

type UpstreamConfig struct {
	BaseURL        string        `yaml:"base_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	PollInterval   time.Duration `yaml:"poll_interval"`
	PollAttempts   int           `yaml:"poll_attempts"`
	DefaultModel   string        `yaml:"default_model"`
}

type StorageConfig struct {
	Bucket    string        `yaml:"bucket"`
	Region    string        `yaml:"region"`
	Endpoint  string        `yaml:"endpoint"` // optional S3-compatible endpoint
	AccessKey string        `yaml:"access_key"`
	SecretKey string        `yaml:"secret_key"`
	SignTTL   time.Duration `yaml:"sign_ttl"`
}

type AdminConfig struct {
	Password   string        `yaml:"password"`
	JWTSecret  string        `yaml:"jwt_secret"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

type AlertsConfig struct {
	TelegramToken  string `yaml:"telegram_token"`
	TelegramChatID int64  `yaml:"telegram_chat_id"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Storage  StorageConfig  `yaml:"storage"`
	Admin    AdminConfig    `yaml:"admin"`
	Alerts   AlertsConfig   `yaml:"alerts"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.AdminPort == 0 {
		cfg.Server.AdminPort = 9090
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Redis.TTL <= 0 {
		cfg.Redis.TTL = time.Hour
	}
	if cfg.Upstream.RequestTimeout <= 0 {
		cfg.Upstream.RequestTimeout = 30 * time.Second
	}
	if cfg.Upstream.PollInterval <= 0 {
		cfg.Upstream.PollInterval = 2 * time.Second
	}
	if cfg.Upstream.PollAttempts <= 0 {
		cfg.Upstream.PollAttempts = 60
	}
	if cfg.Storage.SignTTL <= 0 {
		cfg.Storage.SignTTL = 120 * time.Second
	}
	if cfg.Admin.SessionTTL <= 0 {
		cfg.Admin.SessionTTL = 30 * time.Minute
	}

	// Minimal validation
	if cfg.Database.URL == "" {
		return nil, errors.New("database.url is required")
	}
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required")
	}
	if cfg.Upstream.BaseURL == "" {
		return nil, errors.New("upstream.base_url is required")
	}
	if cfg.Storage.Bucket == "" {
		return nil, errors.New("storage.bucket is required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
