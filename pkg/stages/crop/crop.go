// Package crop implements the cover-crop background stage.
package crop

import (
	"context"
	"image"
	"math"

	"github.com/user/glassbanner/pkg/pipeline"
	"github.com/user/glassbanner/pkg/ports"
)

// Stage scales the background to cover the export canvas around a focal point.
type Stage struct {
	renderer ports.Renderer
	logger   ports.Logger
}

// NewStage creates a new crop stage.
func NewStage(renderer ports.Renderer, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		logger:   logger.WithComponent(ports.ComponentCrop),
	}
}

// Execute places the image and draws it onto an export-sized canvas.
func (s *Stage) Execute(ctx context.Context, input pipeline.CropInput) (pipeline.CropResult, error) {
	b := input.Image.Bounds()
	natural := pipeline.Dimension{Width: b.Dx(), Height: b.Dy()}
	if natural.Width <= 0 || natural.Height <= 0 {
		return pipeline.CropResult{}, pipeline.ErrImageNotLoaded
	}

	placement, window := Project(natural, input.Target, input.Focal)
	s.logger.Debug("Cover placement %.1f,%.1f size %.1fx%.1f", placement.X, placement.Y, placement.Width, placement.Height)

	bg := image.NewRGBA(image.Rect(0, 0, input.Target.Width, input.Target.Height))
	s.renderer.DrawScaled(bg, input.Image, placement.X, placement.Y, placement.Width, placement.Height)

	return pipeline.CropResult{
		Placement:  placement,
		Window:     window,
		Background: bg,
	}, nil
}

// Project computes a cover placement of an image of size natural on a canvas
// of size target. The focal percentages choose how much of the overflow is
// cut from the left and top: 0 keeps the left/top edge, 100 the right/bottom.
//
// placement is in canvas coordinates; window is the visible part of the
// image in natural image coordinates.
func Project(natural, target pipeline.Dimension, focal pipeline.Focal) (placement, window pipeline.LayoutRect) {
	iw, ih := float64(natural.Width), float64(natural.Height)
	tw, th := float64(target.Width), float64(target.Height)
	f := focal.Clamped()

	s := math.Max(tw/iw, th/ih)
	dw, dh := iw*s, ih*s
	ox, oy := dw-tw, dh-th

	placement = pipeline.LayoutRect{
		X:      -ox * f.X / 100,
		Y:      -oy * f.Y / 100,
		Width:  dw,
		Height: dh,
	}
	window = pipeline.LayoutRect{
		X:      -placement.X / s,
		Y:      -placement.Y / s,
		Width:  tw / s,
		Height: th / s,
	}
	return placement, window
}
