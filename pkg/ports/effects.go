package ports

import (
	"image"

	"golang.org/x/image/font"
)

// Blurrer applies a blur comparable to a canvas or CSS blur of the given radius.
// Implementations that cannot blur return pipeline.ErrEffectUnavailable.
type Blurrer interface {
	Blur(img image.Image, radius float64) (*image.NRGBA, error)
}

// FontProvider supplies the caption face at a pixel size.
type FontProvider interface {
	Face(size float64) (font.Face, error)
}

// Notifier surfaces a single user-facing message for a failed export.
type Notifier interface {
	Notify(msg string)
}
