package config

import (
	"path/filepath"
)

// Destination kinds accepted in configuration files.
const (
	DestinationScene = "scene"
	DestinationURL   = "url"
	DestinationText  = "text"
)

// Config is the host configuration shared by the CLI, the interactive viewer
// and the preview server.
type Config struct {
	Log          LogConfig     `yaml:"log" toml:"log"`
	Render       RenderConfig  `yaml:"render" toml:"render"`
	Images       ImagesConfig  `yaml:"images" toml:"images"`
	Server       ServerConfig  `yaml:"server" toml:"server"`
	Destinations []Destination `yaml:"destinations" toml:"destinations" validate:"dive"`

	dir string
}

// LogConfig controls logging.
type LogConfig struct {
	Level         string `yaml:"level" toml:"level" validate:"omitempty,log_level"`
	HumanReadable bool   `yaml:"human_readable" toml:"human_readable"`
}

// RenderConfig controls how document points map onto terminal cells.
type RenderConfig struct {
	ColumnPoints   float64 `yaml:"column_points" toml:"column_points" validate:"gt=0"`
	RowPoints      float64 `yaml:"row_points" toml:"row_points" validate:"gt=0"`
	DefaultPadding float64 `yaml:"default_padding" toml:"default_padding" validate:"gte=0"`
	DefaultSpacing float64 `yaml:"default_spacing" toml:"default_spacing" validate:"gte=0"`
	Width          int     `yaml:"width" toml:"width" validate:"gte=0"`
}

// ImagesConfig controls image loading.
type ImagesConfig struct {
	Enabled   bool   `yaml:"enabled" toml:"enabled"`
	AssetsDir string `yaml:"assets_dir" toml:"assets_dir"`
	MaxBytes  int64  `yaml:"max_bytes" toml:"max_bytes" validate:"gt=0"`
}

// ServerConfig controls the preview server.
type ServerConfig struct {
	Addr         string `yaml:"addr" toml:"addr" validate:"required,hostname_port"`
	MaxBodyBytes int64  `yaml:"max_body_bytes" toml:"max_body_bytes" validate:"gt=0"`
}

// Destination registers a navigation target under Key.
type Destination struct {
	Key   string `yaml:"key" toml:"key" validate:"required"`
	Kind  string `yaml:"kind" toml:"kind" validate:"required,destination_kind"`
	Path  string `yaml:"path" toml:"path"`
	URL   string `yaml:"url" toml:"url"`
	Text  string `yaml:"text" toml:"text"`
	Title string `yaml:"title" toml:"title"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Render: RenderConfig{
			ColumnPoints:   8,
			RowPoints:      16,
			DefaultPadding: 16,
		},
		Images: ImagesConfig{Enabled: true, MaxBytes: 16 << 20},
		Server: ServerConfig{Addr: "127.0.0.1:8080", MaxBodyBytes: 1 << 20},
	}
}

// Resolve returns path relative to the directory of the loaded file.
// Absolute paths are returned unchanged.
func (c *Config) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || c.dir == "" {
		return path
	}
	return filepath.Join(c.dir, path)
}
