// Package glass implements the frosted glass card stage.
package glass

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand"
	"time"

	"github.com/disintegration/imaging"

	"github.com/user/glassbanner/pkg/pipeline"
	"github.com/user/glassbanner/pkg/ports"
	"github.com/user/glassbanner/pkg/raster"
)

// Shadow is one drop-shadow pass, in preview pixels.
type Shadow struct {
	OffsetY float64
	Blur    float64
	Opacity float64
}

// Shadows are the card's drop-shadow passes, drawn beneath the card.
var Shadows = []Shadow{
	{OffsetY: 2, Blur: 4, Opacity: 0.10},
	{OffsetY: 8, Blur: 16, Opacity: 0.20},
	{OffsetY: 16, Blur: 48, Opacity: 0.30},
}

const (
	// ShadowRepeat is how often the shadow passes are drawn.
	ShadowRepeat = 3

	// Saturation is the backdrop saturate() factor.
	Saturation = 1.8

	// TintStart and TintEnd are the tint opacities at the top-left and
	// bottom-right corners of the card.
	TintStart = 0.30
	TintEnd   = 0.18

	// BorderOpacity is the opacity of the 1px inset border.
	BorderOpacity = 0.12

	// HighlightHeight is the height of the top highlight in preview pixels.
	HighlightHeight = 12.0
	// HighlightOpacity is the opacity at the top edge of the highlight.
	HighlightOpacity = 0.24

	// NoiseOpacity is the opacity of the overlay noise texture.
	NoiseOpacity = 0.15

	shadowFillOpacity = 0.02
)

var (
	shadowColor    = pipeline.RGB{R: 10, G: 10, B: 10}
	highlightColor = pipeline.RGB{R: 250, G: 250, B: 250}
)

// Stage builds the shadow, panel, highlight and noise layers of the card.
type Stage struct {
	renderer ports.Renderer
	blurrer  ports.Blurrer
	logger   ports.Logger
}

// NewStage creates a new glass stage.
func NewStage(renderer ports.Renderer, blurrer ports.Blurrer, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		blurrer:  blurrer,
		logger:   logger.WithComponent(ports.ComponentGlass),
	}
}

// Execute renders the glass card over the given background.
func (s *Stage) Execute(ctx context.Context, input pipeline.GlassInput) (pipeline.GlassResult, error) {
	spec := input.Spec
	outer := spec.Card.Outer()
	if outer.Empty() {
		return pipeline.GlassResult{}, fmt.Errorf("empty card %+v: %w", spec.Card, pipeline.ErrInvalidPreview)
	}

	local := spec.Card.Offset(outer.Min)
	radius := ClampRadius(spec.Radius, spec.Card)
	size := outer.Size()

	s.logger.Debug("Glass panel %dx%d, blur %.1f px, padding %d px", size.X, size.Y, spec.BlurRadius, spec.Padding)

	mask := CardMask(s.renderer, size, local, radius)

	backdrop, blurred := s.backdrop(input.Background, outer, spec)
	panel := s.tint(backdrop, local, spec.Tint)

	shadows, ok := s.shadows(outer, local, radius, input.Scale)
	if !ok {
		blurred = false
	}

	seed := input.NoiseSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	noise := raster.NoiseField(size.X, size.Y, rand.New(rand.NewSource(seed)))

	return pipeline.GlassResult{
		Shadows:      shadows,
		ShadowRepeat: ShadowRepeat,
		Panel: pipeline.Layer{
			Name:    "panel",
			Image:   panel,
			At:      outer.Min,
			Clip:    mask,
			Mode:    raster.BlendNormal,
			Opacity: 1,
		},
		Highlights: pipeline.Layer{
			Name:    "highlights",
			Image:   s.highlights(size, local, radius, input.Scale),
			At:      outer.Min,
			Mode:    raster.BlendNormal,
			Opacity: 1,
		},
		Noise: pipeline.Layer{
			Name:    "noise",
			Image:   noise,
			At:      outer.Min,
			Clip:    mask,
			Mode:    raster.BlendOverlay,
			Opacity: NoiseOpacity,
		},
		Blurred: blurred,
	}, nil
}

// ClampRadius limits a corner radius to half the shorter side of r.
func ClampRadius(radius float64, r pipeline.LayoutRect) float64 {
	limit := math.Min(r.Width, r.Height) / 2
	return math.Max(0, math.Min(radius, limit))
}

// CardMask rasterizes the rounded card shape with anti-aliased edges.
func CardMask(renderer ports.Renderer, size image.Point, local pipeline.LayoutRect, radius float64) *image.Alpha {
	canvas := renderer.CreateCanvas(size.X, size.Y, nil)
	canvas.FillRoundedRect(local.X, local.Y, local.Width, local.Height, radius, color.White)
	return canvas.AsMask()
}

// backdrop samples the padded background around the card, blurs and
// saturates it, and returns the part under the card.
func (s *Stage) backdrop(bg *image.RGBA, outer image.Rectangle, spec pipeline.GlassPanelSpec) (*image.NRGBA, bool) {
	empty := imaging.New(outer.Dx(), outer.Dy(), color.NRGBA{})

	region := outer.Inset(-spec.Padding).Intersect(bg.Bounds())
	if region.Empty() {
		return empty, true
	}
	src := imaging.Crop(bg, region)

	blurred := true
	out, err := s.blurrer.Blur(src, spec.BlurRadius)
	if err != nil {
		if errors.Is(err, pipeline.ErrEffectUnavailable) {
			s.logger.Debug("Blur unavailable, rendering the card without blur")
		} else {
			s.logger.Warn("Blur failed, rendering the card without blur: %v", err)
		}
		out = src
		blurred = false
	}

	raster.Apply(out, raster.Saturate(Saturation))

	return imaging.Paste(empty, out, region.Min.Sub(outer.Min)), blurred
}

// tint lays the diagonal tint gradient over the backdrop.
func (s *Stage) tint(backdrop *image.NRGBA, local pipeline.LayoutRect, tint pipeline.RGB) *image.NRGBA {
	b := backdrop.Bounds()
	canvas := s.renderer.CreateCanvas(b.Dx(), b.Dy(), nil)
	canvas.DrawImage(backdrop, 0, 0)
	canvas.FillGradientRect(local.X, local.Y, local.Width, local.Height, ports.Gradient{
		X0: local.X,
		Y0: local.Y,
		X1: local.X + local.Width,
		Y1: local.Y + local.Height,
		Stops: []ports.GradientStop{
			{Offset: 0, Color: nrgba(tint, TintStart)},
			{Offset: 1, Color: nrgba(tint, TintEnd)},
		},
	})
	return imaging.Clone(canvas.ToImage())
}

// shadows builds one layer per pass. Each layer holds the blurred shadow of
// the card silhouette followed by the faint white card fill.
func (s *Stage) shadows(outer image.Rectangle, local pipeline.LayoutRect, radius, scale float64) ([]pipeline.Layer, bool) {
	layers := make([]pipeline.Layer, 0, len(Shadows))
	ok := true

	for i, pass := range Shadows {
		offset := pass.OffsetY * scale
		blur := pass.Blur * scale

		// Three sigma (sigma = blur/2) plus the offset fits the whole shadow.
		margin := int(math.Ceil(blur*1.5+math.Abs(offset))) + 1
		w := outer.Dx() + 2*margin
		h := outer.Dy() + 2*margin
		x := local.X + float64(margin)
		y := local.Y + float64(margin)

		silhouette := s.renderer.CreateCanvas(w, h, nil)
		silhouette.FillRoundedRect(x, y+offset, local.Width, local.Height, radius, color.White)
		shape := silhouette.AsMask()

		if blurredShape, err := s.blurrer.Blur(shape, blur); err == nil {
			shape = raster.AlphaChannel(blurredShape)
		} else {
			ok = false
		}

		canvas := s.renderer.CreateCanvas(w, h, nil)
		canvas.DrawImage(raster.Colorize(shape, shadowColor.R, shadowColor.G, shadowColor.B, pass.Opacity), 0, 0)
		canvas.FillRoundedRect(x, y, local.Width, local.Height, radius, nrgba(pipeline.White, shadowFillOpacity))

		layers = append(layers, pipeline.Layer{
			Name:    fmt.Sprintf("shadow-%d", i+1),
			Image:   imaging.Clone(canvas.ToImage()),
			At:      outer.Min.Sub(image.Pt(margin, margin)),
			Mode:    raster.BlendNormal,
			Opacity: 1,
		})
	}
	return layers, ok
}

// highlights draws the inset border and the top highlight, clipped to the card.
func (s *Stage) highlights(size image.Point, local pipeline.LayoutRect, radius, scale float64) *image.NRGBA {
	canvas := s.renderer.CreateCanvas(size.X, size.Y, nil)
	canvas.ClipRoundedRect(local.X, local.Y, local.Width, local.Height, radius)

	canvas.StrokeRoundedRect(local.X+0.5, local.Y+0.5, local.Width-1, local.Height-1, radius,
		nrgba(highlightColor, BorderOpacity), 1)

	h := HighlightHeight * scale
	canvas.FillGradientRect(local.X, local.Y, local.Width, h, ports.Gradient{
		X0: local.X,
		Y0: local.Y,
		X1: local.X,
		Y1: local.Y + h,
		Stops: []ports.GradientStop{
			{Offset: 0, Color: nrgba(highlightColor, HighlightOpacity)},
			{Offset: 1, Color: nrgba(highlightColor, 0)},
		},
	})

	canvas.ResetClip()
	return imaging.Clone(canvas.ToImage())
}

func nrgba(c pipeline.RGB, opacity float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(opacity * 255))}
}
