package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"resume-builder/internal/logger"
)

// Config is the application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Renderer RendererConfig `yaml:"renderer"`
	Export   ExportConfig   `yaml:"export"`
	Logger   logger.Config  `yaml:"logger"`
}

type ServerConfig struct {
	Port      int `yaml:"port"`
	BodyLimit int `yaml:"body_limit"` // bytes
}

// DatabaseConfig selects the document store. An empty URL keeps documents
// in memory.
type DatabaseConfig struct {
	URL     string `yaml:"url"`
	Migrate bool   `yaml:"migrate"`
}

type RendererConfig struct {
	ChromePath string        `yaml:"chrome_path"`
	Timeout    time.Duration `yaml:"timeout"`
}

// ExportConfig tunes the print snapshot: how long the preview state settles
// before the snapshot, and how long to wait for completion before reverting.
type ExportConfig struct {
	SettleDelay time.Duration `yaml:"settle_delay"`
	Watchdog    time.Duration `yaml:"watchdog"`
}

// Default returns a configuration with every field set.
func Default() *Config {
	return &Config{
		Server:   ServerConfig{Port: 3000, BodyLimit: 4 << 20},
		Database: DatabaseConfig{Migrate: true},
		Renderer: RendererConfig{Timeout: 60 * time.Second},
		Export:   ExportConfig{SettleDelay: 150 * time.Millisecond, Watchdog: 10 * time.Second},
		Logger:   logger.Config{Level: "info", Format: "json"},
	}
}

// Load reads the YAML file at path over the defaults and applies environment
// overrides, including variables from a .env file in the working directory.
// An empty path uses defaults and environment only.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = p
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	} else if v := os.Getenv("JOBS_DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("CHROME_PATH"); v != "" {
		c.Renderer.ChromePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logger.Level = v
	}
	return nil
}

func (c *Config) fillDefaults() {
	d := Default()
	if c.Server.Port <= 0 {
		c.Server.Port = d.Server.Port
	}
	if c.Server.BodyLimit <= 0 {
		c.Server.BodyLimit = d.Server.BodyLimit
	}
	if c.Renderer.Timeout <= 0 {
		c.Renderer.Timeout = d.Renderer.Timeout
	}
	if c.Export.SettleDelay < 0 {
		c.Export.SettleDelay = 0
	}
	if c.Export.Watchdog <= 0 {
		c.Export.Watchdog = d.Export.Watchdog
	}
	if c.Logger.Level == "" {
		c.Logger.Level = d.Logger.Level
	}
	if c.Logger.Format == "" {
		c.Logger.Format = d.Logger.Format
	}
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.Server.Port)
}
