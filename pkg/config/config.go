// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/user/glassbanner/pkg/adapters/staticlayout"
	"github.com/user/glassbanner/pkg/orchestrator"
	"github.com/user/glassbanner/pkg/pipeline"
)

// Size limits applied to fixed banner dimensions.
const (
	MinWidth  = 500
	MaxWidth  = 10000
	MinHeight = 140
	MaxHeight = 1000
)

// Config represents the full configuration for glassbanner.
type Config struct {
	// Input/Output
	Image     string `yaml:"image" toml:"image"`
	Output    string `yaml:"output" toml:"output"`
	OutputDir string `yaml:"output_dir" toml:"output_dir"`

	// Content
	Text      string `yaml:"text" toml:"text"`
	TextColor string `yaml:"text_color" toml:"text_color"`
	TintColor string `yaml:"tint_color" toml:"tint_color"`
	Font      string `yaml:"font" toml:"font"` // TTF/OTF file; empty uses the embedded bold face

	// Size, 0 = auto
	Width  int `yaml:"width" toml:"width"`
	Height int `yaml:"height" toml:"height"`

	// Crop
	Focal FocalConfig `yaml:"focal" toml:"focal"`

	// NoiseSeed fixes the card noise; 0 draws a fresh pattern per export.
	NoiseSeed int64 `yaml:"noise_seed" toml:"noise_seed"`

	// Preview
	Preview PreviewConfig `yaml:"preview" toml:"preview"`

	// Composite
	Workers int `yaml:"workers" toml:"workers"`

	// Debug
	Debug    bool   `yaml:"debug" toml:"debug"`
	DebugDir string `yaml:"debug_dir" toml:"debug_dir"`
}

// FocalConfig is the crop focal point in percent.
type FocalConfig struct {
	X float64 `yaml:"x" toml:"x"`
	Y float64 `yaml:"y" toml:"y"`
}

// PreviewConfig describes how the live preview is measured.
type PreviewConfig struct {
	Browser       bool    `yaml:"browser" toml:"browser"` // Measure in headless Chrome instead of the static box model
	Headless      bool    `yaml:"headless" toml:"headless"`
	ChromePath    string  `yaml:"chrome_path" toml:"chrome_path"`
	ViewportWidth float64 `yaml:"viewport_width" toml:"viewport_width"`
	CardInset     float64 `yaml:"card_inset" toml:"card_inset"`
	CardRadius    float64 `yaml:"card_radius" toml:"card_radius"`
	FontSize      float64 `yaml:"font_size" toml:"font_size"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	style := staticlayout.DefaultStyle()
	return Config{
		// Content
		Text:      "Sample Banner Text",
		TextColor: "#FFFFFF",
		TintColor: "#FFFFFF",

		// Size
		Height: 320,

		// Crop
		Focal: FocalConfig{X: 50, Y: 50},

		// Preview
		Preview: PreviewConfig{
			Headless:      true,
			ViewportWidth: style.ViewportWidth,
			CardInset:     style.CardInset,
			CardRadius:    style.CardRadius,
			FontSize:      style.FontSize,
		},

		// Composite
		Workers: 4,

		// Debug
		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML or TOML file on top of the
// defaults. Files ending in .toml are read as TOML, everything else as YAML.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	return cfg, nil
}

// ParseColor parses "#rgb", "#rrggbb", "rgb(r, g, b)" or "rgba(r, g, b, a)".
// Anything else yields white; alpha is ignored.
func ParseColor(s string) pipeline.RGB {
	s = strings.ToLower(strings.TrimSpace(s))

	switch {
	case strings.HasPrefix(s, "#"):
		if c, ok := parseHex(s[1:]); ok {
			return c
		}
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		if c, ok := parseFunc(s[len("rgba("):len(s)-1], 4); ok {
			return c
		}
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		if c, ok := parseFunc(s[len("rgb("):len(s)-1], 3); ok {
			return c
		}
	}
	return pipeline.White
}

func parseHex(hex string) (pipeline.RGB, bool) {
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return pipeline.RGB{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return pipeline.RGB{}, false
	}
	return pipeline.RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, true
}

func parseFunc(args string, n int) (pipeline.RGB, bool) {
	parts := strings.Split(args, ",")
	if len(parts) != n {
		return pipeline.RGB{}, false
	}

	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil || v < 0 || v > 255 {
			return pipeline.RGB{}, false
		}
		ch[i] = uint8(math.Round(v))
	}
	if n == 4 {
		if _, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64); err != nil {
			return pipeline.RGB{}, false
		}
	}
	return pipeline.RGB{R: ch[0], G: ch[1], B: ch[2]}, true
}

// ClampWidth limits a fixed width to [MinWidth, MaxWidth]. Zero or less
// means auto and is returned as 0.
func ClampWidth(w int) int {
	return clampSize(w, MinWidth, MaxWidth)
}

// ClampHeight limits a fixed height to [MinHeight, MaxHeight]. Zero or less
// means auto and is returned as 0.
func ClampHeight(h int) int {
	return clampSize(h, MinHeight, MaxHeight)
}

func clampSize(v, lo, hi int) int {
	switch {
	case v <= 0:
		return 0
	case v < lo:
		return lo
	case v > hi:
		return hi
	default:
		return v
	}
}

// PreviewStyle returns the preview stylesheet described by the config.
func (c Config) PreviewStyle() staticlayout.Style {
	style := staticlayout.DefaultStyle()
	if c.Preview.ViewportWidth > 0 {
		style.ViewportWidth = c.Preview.ViewportWidth
	}
	if c.Preview.CardInset > 0 {
		style.CardInset = c.Preview.CardInset
	}
	if c.Preview.CardRadius > 0 {
		style.CardRadius = c.Preview.CardRadius
	}
	if c.Preview.FontSize > 0 {
		style.FontSize = c.Preview.FontSize
	}
	return style
}

// ToRenderConfig builds the immutable render snapshot for one export.
func (c Config) ToRenderConfig() pipeline.RenderConfig {
	return pipeline.RenderConfig{
		Text:        c.Text,
		TextColor:   ParseColor(c.TextColor),
		TintColor:   ParseColor(c.TintColor),
		FixedWidth:  ClampWidth(c.Width),
		FixedHeight: ClampHeight(c.Height),
		Focal:       pipeline.Focal{X: c.Focal.X, Y: c.Focal.Y}.Clamped(),
		NoiseSeed:   c.NoiseSeed,
	}
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	return orchestrator.Config{
		ImagePath:  c.Image,
		OutputPath: c.Output,
		OutputDir:  c.OutputDir,
		Render:     c.ToRenderConfig(),
	}
}
