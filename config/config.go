// Package config holds the viewer settings and reads them from TOML or YAML
// files. Values missing from a file keep their defaults.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var ErrUnknownFormat = errors.New("unknown config format")

type Config struct {
	Window   Window   `toml:"window" yaml:"window"`
	Assets   Assets   `toml:"assets" yaml:"assets"`
	Render   Render   `toml:"render" yaml:"render"`
	Controls Controls `toml:"controls" yaml:"controls"`
	Log      Log      `toml:"log" yaml:"log"`
	Preset   Preset   `toml:"preset" yaml:"preset"`
}

type Window struct {
	Width   int    `toml:"width" yaml:"width"`
	Height  int    `toml:"height" yaml:"height"`
	Title   string `toml:"title" yaml:"title"`
	VSync   bool   `toml:"vsync" yaml:"vsync"`
	Samples int    `toml:"samples" yaml:"samples"`
}

type Assets struct {
	Model  string   `toml:"model" yaml:"model"`
	EnvMap string   `toml:"envmap" yaml:"envmap"`
	Faces  []string `toml:"faces" yaml:"faces"`
}

type Render struct {
	MaxPixelRatio float32 `toml:"max_pixel_ratio" yaml:"max_pixel_ratio"`
	ShadowMapSize int     `toml:"shadow_map_size" yaml:"shadow_map_size"`
	// ClearColor is a hex RGB value such as 0x000000.
	ClearColor uint32 `toml:"clear_color" yaml:"clear_color"`
	Shadows    bool   `toml:"shadows" yaml:"shadows"`
}

type Controls struct {
	Damping   bool    `toml:"damping" yaml:"damping"`
	Frequency float64 `toml:"frequency" yaml:"frequency"`
	FPS       int     `toml:"fps" yaml:"fps"`
	ClickSlop float64 `toml:"click_slop" yaml:"click_slop"`
}

type Log struct {
	Level string `toml:"level" yaml:"level"`
}

type Preset struct {
	Path  string `toml:"path" yaml:"path"`
	Watch bool   `toml:"watch" yaml:"watch"`
}

func Default() *Config {
	return &Config{
		Window: Window{
			Width:   1280,
			Height:  720,
			Title:   "Logo Scene",
			VSync:   true,
			Samples: 4,
		},
		Assets: Assets{
			Model:  "models/celtiberian-logo.glb",
			EnvMap: "textures/environmentMaps/0",
			Faces:  []string{"px.png", "nx.png", "py.png", "ny.png", "pz.png", "nz.png"},
		},
		Render: Render{
			MaxPixelRatio: 2,
			ShadowMapSize: 1024,
			ClearColor:    0x000000,
		},
		Controls: Controls{
			Damping:   true,
			Frequency: 4,
			FPS:       60,
			ClickSlop: 4,
		},
		Log: Log{Level: "info"},
	}
}

type decoder interface {
	Decode(v any) error
}

func decoderFor(path string, r io.Reader) (decoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.NewDecoder(r), nil
	case ".yaml", ".yml":
		return yaml.NewDecoder(r), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// Load reads path over Default. The format follows the file extension.
func Load(path string) (*Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec, err := decoderFor(path, bufio.NewReader(f))
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate reports settings no component can run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if len(c.Assets.Faces) != 6 {
		errs = append(errs, fmt.Errorf("envmap needs 6 faces, got %d", len(c.Assets.Faces)))
	}
	if c.Render.MaxPixelRatio <= 0 {
		errs = append(errs, fmt.Errorf("max_pixel_ratio %v must be positive", c.Render.MaxPixelRatio))
	}
	if c.Render.ShadowMapSize <= 0 {
		errs = append(errs, fmt.Errorf("shadow_map_size %d must be positive", c.Render.ShadowMapSize))
	}
	if c.Controls.FPS <= 0 {
		errs = append(errs, fmt.Errorf("controls fps %d must be positive", c.Controls.FPS))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ParseLevel maps a level name to a slog level. The empty string is info.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return l, nil
}
