package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Server struct {
	ListenAddress string        `yaml:"listen_address"`
	ReadTimeout   time.Duration `yaml:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout"`
	IdleTimeout   time.Duration `yaml:"idle_timeout"`
}

type RESTBackend struct {
	BaseURL    string        `yaml:"base_url"`    // https://<project>.supabase.co
	ServiceKey string        `yaml:"service_key"` // service role key, never the anon key
	Timeout    time.Duration `yaml:"timeout"`
	UserAgent  string        `yaml:"user_agent"`
	MaxRetries int           `yaml:"max_retries"`
	Backoff    time.Duration `yaml:"backoff"`
	MaxBackoff time.Duration `yaml:"max_backoff"`
}

type PostgresBackend struct {
	DSN          string `yaml:"dsn"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

type Backend struct {
	Type     string          `yaml:"type"` // "rest" | "postgres"
	REST     RESTBackend     `yaml:"rest"`
	Postgres PostgresBackend `yaml:"postgres"`
}

type Auth struct {
	JWTSecret string `yaml:"jwt_secret"` // shared HS256 secret of the auth provider
}

type View struct {
	PageSize    int `yaml:"page_size"`    // requests list page size
	RecentLimit int `yaml:"recent_limit"` // default size of the recent-activity feed
}

type Config struct {
	Server  Server  `yaml:"server"`
	Backend Backend `yaml:"backend"`
	Auth    Auth    `yaml:"auth"`
	View    View    `yaml:"view"`
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	// Defaults
	if c.Server.ListenAddress == "" {
		c.Server.ListenAddress = ":8087"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 5 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.Backend.Type == "" {
		c.Backend.Type = "rest"
	}
	if c.Backend.REST.Timeout == 0 {
		c.Backend.REST.Timeout = 15 * time.Second
	}
	if c.Backend.REST.MaxRetries == 0 {
		c.Backend.REST.MaxRetries = 3
	}
	if c.Backend.REST.Backoff == 0 {
		c.Backend.REST.Backoff = 500 * time.Millisecond
	}
	if c.Backend.REST.MaxBackoff == 0 {
		c.Backend.REST.MaxBackoff = 5 * time.Second
	}
	if c.Backend.Postgres.MaxOpenConns == 0 {
		c.Backend.Postgres.MaxOpenConns = 8
	}
	if c.View.PageSize == 0 {
		c.View.PageSize = 6
	}
	if c.View.RecentLimit == 0 {
		c.View.RecentLimit = 5
	}
	// Validation
	switch c.Backend.Type {
	case "rest":
		if c.Backend.REST.BaseURL == "" {
			return nil, errors.New("backend.rest.base_url is required")
		}
	case "postgres":
		if c.Backend.Postgres.DSN == "" {
			return nil, errors.New("backend.postgres.dsn is required")
		}
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", c.Backend.Type)
	}
	if c.Auth.JWTSecret == "" {
		return nil, errors.New("auth.jwt_secret is required")
	}
	return &c, nil
}
