package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment selects logging format and template behaviour
type Environment string

const (
	Live Environment = "live"
	Dev  Environment = "dev"
)

// EnvPrefix is the prefix of environment overrides. A double underscore
// descends into a section: PORTFOLIO_SMTP__HOST sets smtp.host.
const EnvPrefix = "PORTFOLIO_"

// Config holds all application configuration
type Config struct {
	Env             Environment `koanf:"env" yaml:"env"`
	ServerAddr      string      `koanf:"addr" yaml:"addr"`
	ContentPath     string      `koanf:"content" yaml:"content"`
	StaticDir       string      `koanf:"static_dir" yaml:"static_dir"`
	DatabasePath    string      `koanf:"database" yaml:"database"`
	LogLevel        string      `koanf:"log_level" yaml:"log_level"`
	LiveTemplates   string      `koanf:"live_templates" yaml:"live_templates"`
	ScrollThreshold int         `koanf:"scroll_threshold" yaml:"scroll_threshold"`
	TrackVisitors   bool        `koanf:"track_visitors" yaml:"track_visitors"`
	VisitorSalt     string      `koanf:"visitor_salt" yaml:"visitor_salt"`
	VisitRetention  int         `koanf:"visit_retention_days" yaml:"visit_retention_days"`
	CORSOrigins     []string    `koanf:"cors_origins" yaml:"cors_origins"`
	SMTP            SMTPConfig  `koanf:"smtp" yaml:"smtp"`
}

// SMTPConfig holds settings for forwarding contact messages by mail.
// Mail is disabled when Host or User is empty.
type SMTPConfig struct {
	Host     string `koanf:"host" yaml:"host"`
	Port     int    `koanf:"port" yaml:"port"`
	User     string `koanf:"user" yaml:"user"`
	Password string `koanf:"password" yaml:"password"`
	To       string `koanf:"to" yaml:"to"`
}

// Enabled reports whether enough is configured to send mail
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.User != "" && s.To != ""
}

// Addr is the host:port of the SMTP server
func (s SMTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		Env:             Dev,
		ServerAddr:      ":8080",
		StaticDir:       "static",
		DatabasePath:    "data/portfolio.db",
		LogLevel:        "info",
		ScrollThreshold: 50,
		TrackVisitors:   true,
		VisitRetention:  90,
		CORSOrigins:     []string{"*"},
		SMTP: SMTPConfig{
			Host: "smtp.gmail.com",
			Port: 587,
		},
	}
}

// Load reads the YAML file at path if it exists, then overlays PORTFOLIO_*
// environment variables. PORT, as set by most hosting platforms, overrides
// the listen address.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.ServerAddr = ":" + port
	}

	return cfg, cfg.Validate()
}

// Validate checks that the configuration contains usable values
func (c *Config) Validate() error {
	if c.Env != Live && c.Env != Dev {
		return fmt.Errorf("invalid env %q: must be live or dev", c.Env)
	}
	if c.ServerAddr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.ScrollThreshold < 0 {
		return fmt.Errorf("scroll_threshold must be non-negative")
	}
	if c.VisitRetention < 0 {
		return fmt.Errorf("visit_retention_days must be non-negative")
	}
	if c.SMTP.Enabled() && c.SMTP.Port <= 0 {
		return fmt.Errorf("smtp.port must be positive")
	}
	return nil
}

// IsDev reports whether the site runs in development mode
func (c *Config) IsDev() bool {
	return c.Env == Dev
}
