package raster

import (
	"image"
	"math/rand"
)

// NoiseField returns an opaque grayscale noise layer of the given size with an
// independent uniform draw per pixel.
func NoiseField(width, height int, rng *rand.Rand) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(out.Pix); i += 4 {
		v := uint8(rng.Float64() * 255)
		out.Pix[i] = v
		out.Pix[i+1] = v
		out.Pix[i+2] = v
		out.Pix[i+3] = 255
	}
	return out
}
