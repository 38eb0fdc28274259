// Package staticlayout measures the preview by evaluating its CSS box model
// in Go, without a browser.
package staticlayout

import (
	"context"

	"github.com/user/glassbanner/pkg/pipeline"
	"github.com/user/glassbanner/pkg/ports"
)

// Style holds the preview stylesheet values the export depends on.
// The preview HTML document renders from the same values.
type Style struct {
	ViewportWidth float64 // Width of the preview box when no width is fixed
	EmptyHeight   float64 // Height of the preview box while no image is loaded
	CardInset     float64 // Distance from the preview edge to the card on every side
	CardRadius    float64 // border-radius of the card
	FontSize      float64 // font-size of the caption
	FontWeight    int     // font-weight of the caption
}

// DefaultStyle returns the stock preview stylesheet.
func DefaultStyle() Style {
	return Style{
		ViewportWidth: 1000,
		EmptyHeight:   320,
		CardInset:     24,
		CardRadius:    16,
		FontSize:      48,
		FontWeight:    700,
	}
}

// Meter implements ports.LayoutMeter from a Style.
type Meter struct {
	style Style
}

// New creates a meter for the given style.
func New(style Style) *Meter {
	return &Meter{style: style}
}

// Style returns the stylesheet the meter evaluates.
func (p *Meter) Style() Style {
	return p.style
}

// Measure lays out the preview box and the card inside it.
func (p *Meter) Measure(ctx context.Context, req pipeline.PreviewRequest) (pipeline.PreviewLayout, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.PreviewLayout{}, err
	}

	w, h := p.BoxSize(req)
	if w <= 0 || h <= 0 {
		return pipeline.PreviewLayout{}, pipeline.ErrInvalidPreview
	}

	inset := p.style.CardInset
	return pipeline.PreviewLayout{
		Banner: pipeline.LayoutRect{Width: w, Height: h},
		Card: pipeline.LayoutRect{
			X:      inset,
			Y:      inset,
			Width:  w - 2*inset,
			Height: h - 2*inset,
		},
		CardRadius: p.style.CardRadius,
		FontSize:   p.style.FontSize,
	}, nil
}

// BoxSize returns the preview box size: a fixed side is used as given, an
// auto width fills the viewport and an auto height follows the image aspect.
func (p *Meter) BoxSize(req pipeline.PreviewRequest) (width, height float64) {
	width = req.Width
	if width <= 0 {
		width = p.style.ViewportWidth
	}

	height = req.Height
	if height <= 0 {
		if req.Natural.Width > 0 && req.Natural.Height > 0 {
			height = width * float64(req.Natural.Height) / float64(req.Natural.Width)
		} else {
			height = p.style.EmptyHeight
		}
	}
	return width, height
}

// Ensure Meter implements ports.LayoutMeter
var _ ports.LayoutMeter = (*Meter)(nil)
