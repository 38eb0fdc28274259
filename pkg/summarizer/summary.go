// Package summarizer provides summary generation for export results.
package summarizer

import (
	"fmt"
	"time"

	"github.com/user/glassbanner/pkg/orchestrator"
	"github.com/user/glassbanner/pkg/pipeline"
)

// Summary contains all data collected during one export.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Output file
	Output OutputInfo

	// Caption and colours
	Content ContentInfo

	// Preview to export mapping
	Geometry GeometryInfo

	// Rendered effects
	Effects EffectsInfo
}

// OutputInfo describes the written PNG.
type OutputInfo struct {
	Path       string
	Width      int
	Height     int
	FileSize   int64
	DurationMs int64
}

// ContentInfo describes what was drawn on the card.
type ContentInfo struct {
	Text      string
	Lines     int
	TextColor string // #rrggbb
	TintColor string // #rrggbb
}

// GeometryInfo describes how the preview was mapped to the export.
type GeometryInfo struct {
	SourceWidth   int
	SourceHeight  int
	PreviewWidth  float64
	PreviewHeight float64
	Scale         float64
	Card          pipeline.LayoutRect
	CardRadius    float64
	FontSize      float64
	BlurRadius    float64
	FocalX        float64
	FocalY        float64
}

// EffectsInfo records which effects made it into the export.
type EffectsInfo struct {
	Blurred bool // False when the backdrop blur was unavailable
	Layers  int
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// FromRunResult builds a Summary from an orchestrator result.
func FromRunResult(r orchestrator.RunResult) *Summary {
	g := r.Geometry
	return NewBuilder().
		WithGeneratedAt(r.Generated).
		WithOutput(OutputInfo{
			Path:       r.OutputPath,
			Width:      g.Target.Width,
			Height:     g.Target.Height,
			FileSize:   r.FileSize,
			DurationMs: r.Duration.Milliseconds(),
		}).
		WithContent(ContentInfo{
			Text:      r.Text,
			Lines:     r.CaptionLines,
			TextColor: Hex(r.TextColor),
			TintColor: Hex(r.TintColor),
		}).
		WithGeometry(GeometryInfo{
			SourceWidth:   r.Natural.Width,
			SourceHeight:  r.Natural.Height,
			PreviewWidth:  r.Preview.Banner.Width,
			PreviewHeight: r.Preview.Banner.Height,
			Scale:         g.Scale,
			Card:          g.Card,
			CardRadius:    g.CardRadius,
			FontSize:      g.FontSize,
			BlurRadius:    g.BlurRadius,
			FocalX:        r.Focal.X,
			FocalY:        r.Focal.Y,
		}).
		WithEffects(EffectsInfo{Blurred: r.Blurred, Layers: r.LayerCount}).
		Build()
}

// Hex formats c as #rrggbb.
func Hex(c pipeline.RGB) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithGeneratedAt overrides the timestamp. A zero time keeps the current one.
func (b *Builder) WithGeneratedAt(t time.Time) *Builder {
	if !t.IsZero() {
		b.summary.GeneratedAt = t
	}
	return b
}

// WithOutput sets output file information.
func (b *Builder) WithOutput(output OutputInfo) *Builder {
	b.summary.Output = output
	return b
}

// WithContent sets caption information.
func (b *Builder) WithContent(content ContentInfo) *Builder {
	b.summary.Content = content
	return b
}

// WithGeometry sets geometry information.
func (b *Builder) WithGeometry(geometry GeometryInfo) *Builder {
	b.summary.Geometry = geometry
	return b
}

// WithEffects sets effect information.
func (b *Builder) WithEffects(effects EffectsInfo) *Builder {
	b.summary.Effects = effects
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
