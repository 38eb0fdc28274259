// Package caption implements the caption text stage.
package caption

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"golang.org/x/image/font"

	"github.com/user/glassbanner/pkg/pipeline"
	"github.com/user/glassbanner/pkg/ports"
	"github.com/user/glassbanner/pkg/raster"
	"github.com/user/glassbanner/pkg/stages/glass"
)

// LineHeight is the line height as a multiple of the font size.
const LineHeight = 1.2

// MainOpacity is the opacity of the final multiply fill.
const MainOpacity = 0.8

// Pass is one shadowed fill of the caption, in preview pixels.
type Pass struct {
	Name    string
	OffsetY float64
	Blur    float64
	Opacity float64
	Shade   func(pipeline.RGB) pipeline.RGB
}

// Passes are the shadowed fills drawn before the main fill.
var Passes = []Pass{
	{Name: "a", OffsetY: -2, Blur: 5, Opacity: 0.25, Shade: func(c pipeline.RGB) pipeline.RGB { return c }},
	{Name: "b", OffsetY: -1, Blur: 0.5, Opacity: 0.34, Shade: Darken},
	{Name: "c", OffsetY: 1, Blur: 2, Opacity: 1, Shade: Lighten},
}

// Darken scales a colour toward black by 0.2/0.34.
func Darken(c pipeline.RGB) pipeline.RGB {
	f := func(v uint8) uint8 { return uint8(math.Round(float64(v) * 0.2 / 0.34)) }
	return pipeline.RGB{R: f(c.R), G: f(c.G), B: f(c.B)}
}

// Lighten mixes 20% of a colour with 80% white.
func Lighten(c pipeline.RGB) pipeline.RGB {
	f := func(v uint8) uint8 { return uint8(math.Round(float64(v)*0.2 + 255*0.8)) }
	return pipeline.RGB{R: f(c.R), G: f(c.G), B: f(c.B)}
}

// Stage renders the caption layers, clipped to the card.
type Stage struct {
	renderer ports.Renderer
	fonts    ports.FontProvider
	blurrer  ports.Blurrer
	logger   ports.Logger
}

// NewStage creates a new caption stage.
func NewStage(renderer ports.Renderer, fonts ports.FontProvider, blurrer ports.Blurrer, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		fonts:    fonts,
		blurrer:  blurrer,
		logger:   logger.WithComponent(ports.ComponentCaption),
	}
}

// Execute renders the caption.
func (s *Stage) Execute(ctx context.Context, input pipeline.CaptionInput) (pipeline.CaptionResult, error) {
	lines := SplitLines(input.Text)
	if len(lines) == 0 {
		s.logger.Debug("Empty caption, nothing to draw")
		return pipeline.CaptionResult{}, nil
	}

	outer := input.Card.Outer()
	if outer.Empty() {
		return pipeline.CaptionResult{}, fmt.Errorf("empty card %+v: %w", input.Card, pipeline.ErrInvalidPreview)
	}

	face, err := s.fonts.Face(input.FontSize)
	if err != nil {
		return pipeline.CaptionResult{}, fmt.Errorf("load font: %w", err)
	}

	local := input.Card.Offset(outer.Min)
	size := outer.Size()
	ascent := InkAscent(face, lines)
	baselines := Baselines(len(lines), ascent, input.FontSize*LineHeight, local)
	cx := local.X + local.Width/2

	s.logger.Debug("Caption %d line(s) at %.1f px, first baseline %.1f", len(lines), input.FontSize, baselines[0])

	clip := glass.CardMask(s.renderer, size, local, glass.ClampRadius(input.CardRadius, input.Card))
	glyphs := s.glyphMask(face, size, lines, cx, baselines, 0)

	layers := make([]pipeline.Layer, 0, 2*len(Passes)+1)
	for _, pass := range Passes {
		offset := pass.OffsetY * input.Scale
		shadow := s.glyphMask(face, size, lines, cx, baselines, offset)
		if blurred, err := s.blurrer.Blur(shadow, pass.Blur*input.Scale); err == nil {
			shadow = raster.AlphaChannel(blurred)
		} else {
			s.logger.Debug("Caption shadow %s drawn without blur: %v", pass.Name, err)
		}

		shade := pass.Shade(input.Color)
		layers = append(layers,
			pipeline.Layer{
				Name:    "caption-shadow-" + pass.Name,
				Image:   raster.Colorize(shadow, shade.R, shade.G, shade.B, pass.Opacity),
				At:      outer.Min,
				Clip:    clip,
				Mode:    raster.BlendNormal,
				Opacity: 1,
			},
			pipeline.Layer{
				Name:    "caption-fill-" + pass.Name,
				Image:   raster.Colorize(glyphs, input.Color.R, input.Color.G, input.Color.B, 1),
				At:      outer.Min,
				Clip:    clip,
				Mode:    raster.BlendNormal,
				Opacity: 1,
			},
		)
	}

	layers = append(layers, pipeline.Layer{
		Name:    "caption-main",
		Image:   raster.Colorize(glyphs, input.Color.R, input.Color.G, input.Color.B, 1),
		At:      outer.Min,
		Clip:    clip,
		Mode:    raster.BlendMultiply,
		Opacity: MainOpacity,
	})

	return pipeline.CaptionResult{
		Layers:   layers,
		Lines:    len(lines),
		Baseline: baselines[0] + float64(outer.Min.Y),
	}, nil
}

// glyphMask rasterizes every line centered on cx, shifted down by dy.
func (s *Stage) glyphMask(face font.Face, size image.Point, lines []string, cx float64, baselines []float64, dy float64) *image.Alpha {
	canvas := s.renderer.CreateCanvas(size.X, size.Y, nil)
	canvas.SetFontFace(face)
	for i, line := range lines {
		canvas.DrawText(line, cx, baselines[i]+dy, color.White)
	}
	return canvas.AsMask()
}

// SplitLines splits a caption on explicit line breaks. A caption with no
// visible characters has no lines.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// InkAscent returns the tallest glyph extent above the baseline over all
// lines. It falls back to the face ascent when no line has ink.
func InkAscent(face font.Face, lines []string) float64 {
	ascent := 0.0
	for _, line := range lines {
		bounds, _ := font.BoundString(face, line)
		if a := -float64(bounds.Min.Y) / 64; a > ascent {
			ascent = a
		}
	}
	if ascent <= 0 {
		ascent = float64(face.Metrics().Ascent) / 64
	}
	return ascent
}

// Baselines returns the alphabetic baseline of each line so the block from
// the first line's ink top to the last baseline is centered in the card.
func Baselines(n int, ascent, lineHeight float64, card pipeline.LayoutRect) []float64 {
	block := ascent + float64(n-1)*lineHeight
	first := card.Y + card.Height/2 - block/2 + ascent
	out := make([]float64, n)
	for i := range out {
		out[i] = first + float64(i)*lineHeight
	}
	return out
}
