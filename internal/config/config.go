package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/telop/internal/telop"
)

type contextKey string

const configKey contextKey = "config"

type Config struct {
	EffectSec float64 `yaml:"effect_sec"`
	Easing    string  `yaml:"easing"`

	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	FPS        int     `yaml:"fps"`
	Workers    int     `yaml:"workers"`
	Preset     string  `yaml:"preset"`
	FontScale  int     `yaml:"font_scale"`
	Margin     int     `yaml:"margin"`
	TextColor  string  `yaml:"text_color"`
	BoxColor   string  `yaml:"box_color"`
	BoxAlpha   float64 `yaml:"box_alpha"`
	Background string  `yaml:"background"`

	VideoEncoder string `yaml:"video_encoder"`
	Quality      int    `yaml:"quality"`

	ScriptDir string `yaml:"script_dir"`
	Listen    string `yaml:"listen"`
}

// SegmentParams are the per-render parameters handed to the renderer and encoder.
type SegmentParams struct {
	Width, Height int
	FPS           int
	Duration      float64
	EffectSec     float64
	Easing        string
}

// Segment derives render parameters for a timeline of the given duration.
func (c *Config) Segment(duration float64) SegmentParams {
	return SegmentParams{
		Width:     c.Width,
		Height:    c.Height,
		FPS:       c.FPS,
		Duration:  duration,
		EffectSec: c.EffectSec,
		Easing:    c.Easing,
	}
}

func Default() *Config {
	return &Config{
		EffectSec: telop.DefaultEffectSec,
		Easing:    "linear",
		Width:     1280,
		Height:    720,
		FPS:       30,
		FontScale: 3,
		Margin:    48,
		TextColor: "#FFFFFF",
		BoxColor:  "#000000",
		BoxAlpha:  0.5,
		ScriptDir: "scripts",
		Listen:    ":8080",
	}
}

// ApplyPreset overrides the frame size for a named aspect preset.
func (c *Config) ApplyPreset() error {
	switch c.Preset {
	case "":
	case "16:9":
		c.Width, c.Height = 1280, 720
	case "9:16":
		c.Width, c.Height = 720, 1280
	case "4:5":
		c.Width, c.Height = 1080, 1350
	default:
		return fmt.Errorf("unknown preset %q", c.Preset)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid frame size %dx%d", c.Width, c.Height)
	}
	if c.Width%2 != 0 || c.Height%2 != 0 {
		return fmt.Errorf("frame size %dx%d must be even for yuv420p", c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("invalid fps %d", c.FPS)
	}
	if c.FontScale <= 0 {
		return fmt.Errorf("invalid font scale %d", c.FontScale)
	}
	return nil
}

// Load reads the configuration from path, falling back to ./telop.yaml and
// then to defaults when no file exists.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfigFile()
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.ApplyPreset(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func findConfigFile() string {
	candidates := []string{
		"./telop.yaml",
		"./telop.yml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".telop", "config.yaml"))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext returns the stored config, or defaults when none was stored.
func FromContext(ctx context.Context) *Config {
	if cfg, ok := ctx.Value(configKey).(*Config); ok {
		return cfg
	}
	return Default()
}
