package pipeline

import (
	"image"
	"math"

	"github.com/user/glassbanner/pkg/raster"
)

// =============================================================================
// Common Types
// =============================================================================

// Dimension represents width and height in pixels.
type Dimension struct {
	Width  int
	Height int
}

// LayoutRect is a rectangle in pixels relative to a single origin, either the
// live preview or the export canvas. Values from different origins must never
// be mixed without going through Scale.
type LayoutRect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Scale multiplies every component by sx horizontally and sy vertically.
func (r LayoutRect) Scale(sx, sy float64) LayoutRect {
	return LayoutRect{X: r.X * sx, Y: r.Y * sy, Width: r.Width * sx, Height: r.Height * sy}
}

// Outer returns the smallest pixel rectangle containing r.
func (r LayoutRect) Outer() image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X)),
		int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.Width)),
		int(math.Ceil(r.Y+r.Height)),
	)
}

// Offset returns r moved by (-p.X, -p.Y), i.e. relative to p.
func (r LayoutRect) Offset(p image.Point) LayoutRect {
	return LayoutRect{X: r.X - float64(p.X), Y: r.Y - float64(p.Y), Width: r.Width, Height: r.Height}
}

// RGB is an opaque sRGB colour.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// White is the fallback colour for unparseable inputs.
var White = RGB{R: 255, G: 255, B: 255}

// Focal is the crop focal point as percentages of the overflow, each in [0,100].
type Focal struct {
	X float64
	Y float64
}

// DefaultFocal centers the crop.
func DefaultFocal() Focal {
	return Focal{X: 50, Y: 50}
}

// Clamped returns the focal point limited to [0,100] on both axes.
// Non-finite components fall back to the centre.
func (f Focal) Clamped() Focal {
	return Focal{X: clampPercent(f.X), Y: clampPercent(f.Y)}
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 50
	}
	return math.Max(0, math.Min(100, v))
}

// RenderConfig is the immutable snapshot of everything one export needs.
// It is built fresh for each export and never mutated by the pipeline.
type RenderConfig struct {
	Text      string // Caption, may contain explicit line breaks
	TextColor RGB
	TintColor RGB

	// Target size; zero means "derive from the image aspect ratio".
	FixedWidth  int
	FixedHeight int

	Focal Focal

	// NoiseSeed seeds the card noise texture. Zero draws a fresh seed per render.
	NoiseSeed int64
}

// =============================================================================
// Preview Types
// =============================================================================

// PreviewRequest describes the live preview to be measured.
type PreviewRequest struct {
	Width     float64   // Fixed preview box width in CSS pixels; 0 = auto
	Height    float64   // Fixed preview box height in CSS pixels; 0 = auto
	Natural   Dimension // Natural size of the background, drives auto height
	Text      string
	TextColor RGB
	TintColor RGB
	Focal     Focal
	ImageData []byte // Encoded background, used by browser-backed meters
}

// PreviewLayout is the measured live preview, in preview coordinates.
type PreviewLayout struct {
	Banner     LayoutRect // Preview box; X and Y are always zero
	Card       LayoutRect // Card relative to the preview box
	CardRadius float64    // Computed border-radius
	FontSize   float64    // Computed caption font-size
}

// =============================================================================
// Geometry Stage Types
// =============================================================================

// GeometryInput contains parameters for geometry resolution.
type GeometryInput struct {
	Preview     PreviewLayout
	Natural     Dimension // Natural size of the decoded background
	FixedWidth  int       // 0 = unset
	FixedHeight int       // 0 = unset
}

// Geometry is the resolved export geometry, in export coordinates.
type Geometry struct {
	Target     Dimension
	Scale      float64 // Export pixels per preview pixel
	Canvas     LayoutRect
	Card       LayoutRect
	CardRadius float64
	FontSize   float64
	BlurRadius float64
}

// GlassPanelSpec describes the frosted card in export space.
type GlassPanelSpec struct {
	Card       LayoutRect
	Radius     float64
	Tint       RGB
	BlurRadius float64
	Padding    int // Bleed around the card sampled for the blur
}

// PanelSpec derives the glass panel description for the given tint.
func (g Geometry) PanelSpec(tint RGB) GlassPanelSpec {
	return GlassPanelSpec{
		Card:       g.Card,
		Radius:     g.CardRadius,
		Tint:       tint,
		BlurRadius: g.BlurRadius,
		Padding:    int(math.Ceil(g.BlurRadius * 2)),
	}
}

// =============================================================================
// Crop Stage Types
// =============================================================================

// CropInput contains parameters for the cover crop.
type CropInput struct {
	Image  image.Image
	Target Dimension
	Focal  Focal
}

// CropResult contains the placed background.
type CropResult struct {
	// Placement is where the whole scaled image lands on the export canvas.
	// X and Y are zero or negative.
	Placement LayoutRect

	// Window is the visible part of the image in natural image coordinates.
	Window LayoutRect

	// Background is the export-sized canvas with the image drawn on it.
	Background *image.RGBA
}

// =============================================================================
// Layer Types
// =============================================================================

// Layer is a raster produced by a stage and drawn by the compositor.
type Layer struct {
	Name    string
	Image   *image.NRGBA
	At      image.Point  // Top-left in export coordinates
	Clip    *image.Alpha // Optional, same size as Image
	Mode    raster.BlendMode
	Opacity float64
}

// =============================================================================
// Glass Stage Types
// =============================================================================

// GlassInput contains parameters for the glass panel.
type GlassInput struct {
	Background *image.RGBA
	Spec       GlassPanelSpec
	Scale      float64
	NoiseSeed  int64
}

// GlassResult contains the glass panel layers.
type GlassResult struct {
	Shadows      []Layer
	ShadowRepeat int // How often the whole shadow sequence is drawn
	Panel        Layer
	Highlights   Layer
	Noise        Layer
	Blurred      bool // False when the blur effect was unavailable
}

// Layers returns the glass layers in drawing order. The shadow sequence is
// repeated as a group, so passes stay interleaved.
func (r GlassResult) Layers() []Layer {
	repeat := r.ShadowRepeat
	if repeat < 1 {
		repeat = 1
	}
	layers := make([]Layer, 0, len(r.Shadows)*repeat+3)
	for i := 0; i < repeat; i++ {
		layers = append(layers, r.Shadows...)
	}
	return append(layers, r.Panel, r.Highlights, r.Noise)
}

// =============================================================================
// Caption Stage Types
// =============================================================================

// CaptionInput contains parameters for caption rendering.
type CaptionInput struct {
	Text       string
	Color      RGB
	Card       LayoutRect
	CardRadius float64
	FontSize   float64
	Scale      float64
}

// CaptionResult contains the caption layers in drawing order.
type CaptionResult struct {
	Layers   []Layer
	Lines    int
	Baseline float64 // First baseline in export coordinates
}

// =============================================================================
// Composite Stage Types
// =============================================================================

// CompositeInput contains the background and layers to flatten.
type CompositeInput struct {
	Background *image.RGBA
	Layers     []Layer
}

// CompositeResult contains the flattened banner.
type CompositeResult struct {
	Image *image.RGBA
	PNG   []byte
}
