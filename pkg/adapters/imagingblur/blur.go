// Package imagingblur provides a Gaussian blur implementation using the imaging library.
package imagingblur

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/user/glassbanner/pkg/ports"
)

// Blurrer implements ports.Blurrer with imaging.Blur.
type Blurrer struct{}

// New creates a new Blurrer.
func New() *Blurrer {
	return &Blurrer{}
}

// Blur returns a blurred copy of img. A canvas or CSS blur radius r is
// approximated by a Gaussian with sigma r/2. The result has origin (0,0).
func (b *Blurrer) Blur(img image.Image, radius float64) (*image.NRGBA, error) {
	if radius <= 0 {
		return imaging.Clone(img), nil
	}
	return imaging.Blur(img, Sigma(radius)), nil
}

// Sigma converts a blur radius into a Gaussian standard deviation.
func Sigma(radius float64) float64 {
	return radius / 2
}

// Ensure Blurrer implements ports.Blurrer
var _ ports.Blurrer = (*Blurrer)(nil)
