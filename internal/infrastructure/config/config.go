package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Boot      BootConfig
	Shell     ShellConfig
	Catalog   CatalogConfig
	Persona   PersonaConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port        string   `envconfig:"PORT" default:"8000"`
	Host        string   `envconfig:"HOST" default:"0.0.0.0"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// BootConfig holds boot sequence timing.
type BootConfig struct {
	LogoDelay time.Duration `envconfig:"BOOT_LOGO_DELAY" default:"2s"`
	Skip      bool          `envconfig:"BOOT_SKIP" default:"false"`
}

// ShellConfig holds window layout parameters.
type ShellConfig struct {
	TopBarHeight int `envconfig:"SHELL_TOP_BAR_HEIGHT" default:"28"`
	CascadeBase  int `envconfig:"SHELL_CASCADE_BASE" default:"100"`
	CascadeStep  int `envconfig:"SHELL_CASCADE_STEP" default:"30"`
	ZBase        int `envconfig:"SHELL_Z_BASE" default:"100"`
	// MaxSessions caps live sessions; zero is unlimited
	MaxSessions int `envconfig:"SHELL_MAX_SESSIONS" default:"0"`
}

// CatalogConfig points at optional app and desktop item definitions.
type CatalogConfig struct {
	Dir string `envconfig:"CATALOG_DIR"`
}

// PersonaConfig holds persona store client configuration.
type PersonaConfig struct {
	URL     string        `envconfig:"PERSONA_STORE_URL"`
	Timeout time.Duration `envconfig:"PERSONA_STORE_TIMEOUT" default:"2s"`
	Retries int           `envconfig:"PERSONA_STORE_RETRIES" default:"2"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Validate rejects values the shell cannot lay out with.
func (c *Config) Validate() error {
	switch {
	case c.Shell.TopBarHeight < 0:
		return fmt.Errorf("invalid config: SHELL_TOP_BAR_HEIGHT must be >= 0, got %d", c.Shell.TopBarHeight)
	case c.Shell.CascadeStep < 0:
		return fmt.Errorf("invalid config: SHELL_CASCADE_STEP must be >= 0, got %d", c.Shell.CascadeStep)
	case c.Shell.MaxSessions < 0:
		return fmt.Errorf("invalid config: SHELL_MAX_SESSIONS must be >= 0, got %d", c.Shell.MaxSessions)
	case c.Boot.LogoDelay < 0:
		return fmt.Errorf("invalid config: BOOT_LOGO_DELAY must be >= 0, got %s", c.Boot.LogoDelay)
	}
	return nil
}

// Addr returns host:port for the HTTP listener.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        "8000",
			Host:        "0.0.0.0",
			CORSOrigins: []string{"*"},
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Boot: BootConfig{
			LogoDelay: 2 * time.Second,
		},
		Shell: ShellConfig{
			TopBarHeight: 28,
			CascadeBase:  100,
			CascadeStep:  30,
			ZBase:        100,
		},
		Persona: PersonaConfig{
			Timeout: 2 * time.Second,
			Retries: 2,
		},
	}
}
