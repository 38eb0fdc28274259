package ports

import (
	"context"
	"image"

	"github.com/user/glassbanner/pkg/pipeline"
)

// LayoutMeter measures the live preview for a given request.
type LayoutMeter interface {
	// Measure lays out the preview and returns its card geometry and
	// computed styles in preview coordinates.
	Measure(ctx context.Context, req pipeline.PreviewRequest) (pipeline.PreviewLayout, error)
}

// PreviewCapturer renders the live preview to an image.
type PreviewCapturer interface {
	// CapturePreview returns a screenshot of the preview box.
	CapturePreview(ctx context.Context, req pipeline.PreviewRequest) (image.Image, error)
}
