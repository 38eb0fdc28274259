// Package geometry implements the export geometry resolution stage.
package geometry

import (
	"context"
	"math"

	"github.com/user/glassbanner/pkg/pipeline"
	"github.com/user/glassbanner/pkg/ports"
)

// PreviewBlurRadius is the backdrop blur of the card in preview pixels.
const PreviewBlurRadius = 12.0

// Stage resolves the export size and re-derives the preview card at that size.
type Stage struct {
	logger ports.Logger
}

// NewStage creates a new geometry stage.
func NewStage(logger ports.Logger) *Stage {
	return &Stage{logger: logger.WithComponent(ports.ComponentGeometry)}
}

// Execute resolves the geometry for the given preview and image.
func (s *Stage) Execute(ctx context.Context, input pipeline.GeometryInput) (pipeline.Geometry, error) {
	g, err := Resolve(input)
	if err != nil {
		return pipeline.Geometry{}, err
	}
	s.logger.Debug("Resolved %dx%d at scale %.3f", g.Target.Width, g.Target.Height, g.Scale)
	return g, nil
}

// Resolve performs the geometry calculation.
// This is exposed as a standalone function for testing and reuse.
//
// Target size:
//   - both fixed: used as given
//   - one fixed: the natural width (preview wider than image) or natural
//     height anchors the size and the other side follows the preview aspect
//   - neither fixed: natural resolution
//
// Every linear measurement from the preview is multiplied by
// scale = targetWidth / previewWidth exactly once.
func Resolve(input pipeline.GeometryInput) (pipeline.Geometry, error) {
	nat := input.Natural
	if nat.Width <= 0 || nat.Height <= 0 {
		return pipeline.Geometry{}, pipeline.ErrImageNotLoaded
	}
	banner := input.Preview.Banner
	if banner.Width <= 0 || banner.Height <= 0 {
		return pipeline.Geometry{}, pipeline.ErrInvalidPreview
	}

	target := TargetSize(banner.Width, banner.Height, nat, input.FixedWidth, input.FixedHeight)
	tw, th := float64(target.Width), float64(target.Height)
	scale := tw / banner.Width

	// Card position and size use per-axis ratios so a fixed size with a
	// different aspect still maps the card proportionally.
	card := input.Preview.Card.Scale(tw/banner.Width, th/banner.Height)

	return pipeline.Geometry{
		Target:     target,
		Scale:      scale,
		Canvas:     pipeline.LayoutRect{Width: tw, Height: th},
		Card:       card,
		CardRadius: input.Preview.CardRadius * scale,
		FontSize:   input.Preview.FontSize * scale,
		BlurRadius: PreviewBlurRadius * scale,
	}, nil
}

// TargetSize picks the export dimensions.
func TargetSize(previewW, previewH float64, nat pipeline.Dimension, fixedW, fixedH int) pipeline.Dimension {
	switch {
	case fixedW > 0 && fixedH > 0:
		return pipeline.Dimension{Width: fixedW, Height: fixedH}
	case fixedW > 0 || fixedH > 0:
		previewAspect := previewW / previewH
		imageAspect := float64(nat.Width) / float64(nat.Height)
		if previewAspect > imageAspect {
			return pipeline.Dimension{
				Width:  nat.Width,
				Height: int(math.Round(float64(nat.Width) / previewAspect)),
			}
		}
		return pipeline.Dimension{
			Width:  int(math.Round(float64(nat.Height) * previewAspect)),
			Height: nat.Height,
		}
	default:
		return nat
	}
}
