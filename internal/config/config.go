package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env        string `env:"ENV" env-default:"local"`
	LogLevel   string `env:"LOG_LEVEL" env-default:"info"`
	HTTPServer HTTPServer
	Upstream   Upstream
	DB         DB
}

type HTTPServer struct {
	Port            string        `env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type Upstream struct {
	BaseURL string        `env:"UPSTREAM_BASE_URL" env-required:"true"`
	APIKey  string        `env:"UPSTREAM_API_KEY" env-default:"secret-key"`
	Timeout time.Duration `env:"UPSTREAM_TIMEOUT" env-default:"4s"`
}

type DB struct {
	URL               string `env:"DB_URL" env-required:"true"`
	User              string `env:"DB_USER" env-required:"true"`
	Password          string `env:"DB_PASSWORD" env-required:"true"`
	InsertConcurrency int    `env:"INSERT_CONCURRENCY" env-default:"4"`
}

// Load reads .env (when present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return cfg, nil
}

// DSN folds the credentials into the connection URL.
func (d DB) DSN() (string, error) {
	u, err := url.Parse(d.URL)
	if err != nil {
		return "", fmt.Errorf("parse DB_URL: %w", err)
	}
	u.User = url.UserPassword(d.User, d.Password)
	return u.String(), nil
}

// PoolSize leaves room for both legs' insert fan-out plus a fallback
// read per leg, so inserts and reads cannot deadlock on the pool.
func (d DB) PoolSize() int32 {
	n := d.InsertConcurrency
	if n <= 0 {
		n = 4
	}
	return int32(2*n + 2)
}
