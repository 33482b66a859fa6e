package config

import (
	"time"

	"github.com/withgalaxy/responsive/pkg/mediaquery"
)

type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
	FormatTOML OutputFormat = "toml"
)

const FileName = "responsive.toml"

type Config struct {
	Viewport ViewportConfig `toml:"viewport" envPrefix:"VIEWPORT_"`
	Terminal TerminalConfig `toml:"terminal" envPrefix:"TERMINAL_"`
	Server   ServerConfig   `toml:"server" envPrefix:"SERVER_"`
	Output   OutputConfig   `toml:"output" envPrefix:"OUTPUT_"`
}

// ViewportConfig is the viewport assumed when nothing reports a real one,
// such as during server-side rendering.
type ViewportConfig struct {
	Width  int `toml:"width" env:"WIDTH"`
	Height int `toml:"height" env:"HEIGHT"`
}

type TerminalConfig struct {
	CellWidth    int `toml:"cellWidth" env:"CELL_WIDTH"`
	CellHeight   int `toml:"cellHeight" env:"CELL_HEIGHT"`
	PollInterval int `toml:"pollInterval" env:"POLL_INTERVAL"`
	Debounce     int `toml:"debounce" env:"DEBOUNCE"`
}

type ServerConfig struct {
	Host         string   `toml:"host" env:"HOST"`
	Port         int      `toml:"port" env:"PORT"`
	Path         string   `toml:"path" env:"PATH"`
	AllowOrigins []string `toml:"allowOrigins" env:"ALLOW_ORIGINS"`
}

type OutputConfig struct {
	Format OutputFormat `toml:"format" env:"FORMAT"`
}

func DefaultConfig() *Config {
	return &Config{
		Viewport: ViewportConfig{
			Width:  1024,
			Height: 768,
		},
		Terminal: TerminalConfig{
			CellWidth:    8,
			CellHeight:   16,
			PollInterval: 250,
			Debounce:     100,
		},
		Server: ServerConfig{
			Host:         "localhost",
			Port:         4323,
			Path:         "/__responsive",
			AllowOrigins: []string{},
		},
		Output: OutputConfig{
			Format: FormatText,
		},
	}
}

func (v ViewportConfig) Size() mediaquery.Viewport {
	return mediaquery.Viewport{Width: v.Width, Height: v.Height}
}

// Scale converts a terminal size in cells to CSS pixels.
func (t TerminalConfig) Scale(cols, rows int) mediaquery.Viewport {
	return mediaquery.Viewport{Width: cols * t.CellWidth, Height: rows * t.CellHeight}
}

func (t TerminalConfig) PollEvery() time.Duration {
	return time.Duration(t.PollInterval) * time.Millisecond
}

func (t TerminalConfig) DebounceFor() time.Duration {
	return time.Duration(t.Debounce) * time.Millisecond
}
