package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

const EnvPrefix = "RESPONSIVE_"

var ErrInvalid = errors.New("invalid config")

// Load reads path over the defaults, then applies RESPONSIVE_* environment
// overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("stat config: %w", err)
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func LoadFromDir(dir string) (*Config, error) {
	return Load(filepath.Join(dir, FileName))
}

// Validate fills unset values with defaults and rejects the rest.
func (c *Config) Validate() error {
	def := DefaultConfig()

	if c.Viewport.Width < 0 || c.Viewport.Height < 0 {
		return fmt.Errorf("%w: viewport size must not be negative (%dx%d)", ErrInvalid, c.Viewport.Width, c.Viewport.Height)
	}
	if c.Viewport.Width == 0 {
		c.Viewport.Width = def.Viewport.Width
	}
	if c.Viewport.Height == 0 {
		c.Viewport.Height = def.Viewport.Height
	}

	if c.Terminal.CellWidth < 0 || c.Terminal.CellHeight < 0 {
		return fmt.Errorf("%w: terminal cell size must not be negative", ErrInvalid)
	}
	if c.Terminal.CellWidth == 0 {
		c.Terminal.CellWidth = def.Terminal.CellWidth
	}
	if c.Terminal.CellHeight == 0 {
		c.Terminal.CellHeight = def.Terminal.CellHeight
	}
	if c.Terminal.PollInterval <= 0 {
		c.Terminal.PollInterval = def.Terminal.PollInterval
	}
	if c.Terminal.Debounce < 0 {
		return fmt.Errorf("%w: terminal debounce must not be negative", ErrInvalid)
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server port %d out of range", ErrInvalid, c.Server.Port)
	}
	if c.Server.Port == 0 {
		c.Server.Port = def.Server.Port
	}
	if c.Server.Host == "" {
		c.Server.Host = def.Server.Host
	}
	if c.Server.Path == "" {
		c.Server.Path = def.Server.Path
	}
	if c.Server.Path[0] != '/' {
		c.Server.Path = "/" + c.Server.Path
	}

	switch c.Output.Format {
	case FormatText, FormatJSON, FormatYAML, FormatTOML:
	case "":
		c.Output.Format = FormatText
	default:
		return fmt.Errorf("%w: output format %q (must be text, json, yaml, or toml)", ErrInvalid, c.Output.Format)
	}

	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Write encodes c as TOML at path.
func Write(path string, c *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
