// Package glassbanner provides a high-level API for exporting frosted-glass
// banner images.
package glassbanner

import (
	"github.com/user/glassbanner/pkg/config"
)

// ConfigBuilder provides a fluent interface for building config.Config.
type ConfigBuilder struct {
	config config.Config
}

// NewConfigBuilder creates a new ConfigBuilder starting from config.Defaults.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{config: config.Defaults()}
}

// FromConfig creates a ConfigBuilder starting from an existing config, for
// example one loaded from a file.
func FromConfig(cfg config.Config) *ConfigBuilder {
	return &ConfigBuilder{config: cfg}
}

// Build returns the final Config, applying constraints.
// Fixed sizes are clamped to the supported range; 0 keeps a side automatic.
func (b *ConfigBuilder) Build() config.Config {
	cfg := b.config

	cfg.Width = config.ClampWidth(cfg.Width)
	cfg.Height = config.ClampHeight(cfg.Height)

	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	return cfg
}

// WithImage sets the background image path.
func (b *ConfigBuilder) WithImage(path string) *ConfigBuilder {
	b.config.Image = path
	return b
}

// WithOutput sets an explicit output file path.
func (b *ConfigBuilder) WithOutput(path string) *ConfigBuilder {
	b.config.Output = path
	return b
}

// WithOutputDir sets the directory for generated file names.
func (b *ConfigBuilder) WithOutputDir(dir string) *ConfigBuilder {
	b.config.OutputDir = dir
	return b
}

// WithText sets the caption. Line breaks start new lines.
func (b *ConfigBuilder) WithText(text string) *ConfigBuilder {
	b.config.Text = text
	return b
}

// WithTextColor sets the caption colour (hex, rgb() or rgba()).
func (b *ConfigBuilder) WithTextColor(c string) *ConfigBuilder {
	b.config.TextColor = c
	return b
}

// WithTintColor sets the card tint (hex, rgb() or rgba()).
func (b *ConfigBuilder) WithTintColor(c string) *ConfigBuilder {
	b.config.TintColor = c
	return b
}

// WithFont sets a TTF/OTF file used instead of the embedded bold face.
func (b *ConfigBuilder) WithFont(path string) *ConfigBuilder {
	b.config.Font = path
	return b
}

// WithWidth fixes the banner width. Use 0 for auto.
func (b *ConfigBuilder) WithWidth(width int) *ConfigBuilder {
	b.config.Width = width
	return b
}

// WithHeight fixes the banner height. Use 0 for auto.
func (b *ConfigBuilder) WithHeight(height int) *ConfigBuilder {
	b.config.Height = height
	return b
}

// WithSize fixes both banner dimensions.
func (b *ConfigBuilder) WithSize(width, height int) *ConfigBuilder {
	b.config.Width = width
	b.config.Height = height
	return b
}

// WithFocal sets the crop focal point in percent.
func (b *ConfigBuilder) WithFocal(x, y float64) *ConfigBuilder {
	b.config.Focal = config.FocalConfig{X: x, Y: y}
	return b
}

// WithNoiseSeed fixes the card noise pattern. 0 draws a fresh one per export.
func (b *ConfigBuilder) WithNoiseSeed(seed int64) *ConfigBuilder {
	b.config.NoiseSeed = seed
	return b
}

// WithBrowserPreview measures the preview in headless Chrome.
func (b *ConfigBuilder) WithBrowserPreview(enabled bool) *ConfigBuilder {
	b.config.Preview.Browser = enabled
	return b
}

// WithChromePath sets the Chrome executable used for browser previews.
func (b *ConfigBuilder) WithChromePath(path string) *ConfigBuilder {
	b.config.Preview.ChromePath = path
	return b
}

// WithHeadless toggles headless mode for browser previews.
func (b *ConfigBuilder) WithHeadless(headless bool) *ConfigBuilder {
	b.config.Preview.Headless = headless
	return b
}

// WithWorkers sets the number of compositing workers.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.config.Workers = n
	return b
}

// WithDebug enables debug output to dir.
func (b *ConfigBuilder) WithDebug(dir string) *ConfigBuilder {
	b.config.Debug = true
	if dir != "" {
		b.config.DebugDir = dir
	}
	return b
}
