// Package raster provides pure per-pixel transforms and blend formulas
// over standard library image buffers.
package raster

import (
	"image"
)

// Luminance weights used by the saturation transform.
const (
	lumaR = 0.2989
	lumaG = 0.5870
	lumaB = 0.1140
)

// PixelFunc maps one straight-alpha RGB triple to another.
type PixelFunc func(r, g, b uint8) (uint8, uint8, uint8)

// Apply runs fn over every pixel of img in place. Alpha is left untouched.
func Apply(img *image.NRGBA, fn PixelFunc) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x++ {
			img.Pix[i], img.Pix[i+1], img.Pix[i+2] = fn(img.Pix[i], img.Pix[i+1], img.Pix[i+2])
			i += 4
		}
	}
}

// Saturate returns a PixelFunc that scales each channel's distance from the
// pixel luminance by factor (1.8 for a 180% boost).
func Saturate(factor float64) PixelFunc {
	return func(r, g, b uint8) (uint8, uint8, uint8) {
		fr, fg, fb := float64(r), float64(g), float64(b)
		l := Luminance(r, g, b)
		return clampByte(l + factor*(fr-l)),
			clampByte(l + factor*(fg-l)),
			clampByte(l + factor*(fb-l))
	}
}

// Luminance returns the weighted luminance of an RGB triple.
func Luminance(r, g, b uint8) float64 {
	return lumaR*float64(r) + lumaG*float64(g) + lumaB*float64(b)
}

// Colorize builds a straight-alpha layer of a single colour whose alpha is
// mask * opacity. The result has the mask's size with origin (0,0).
func Colorize(mask *image.Alpha, r, g, b uint8, opacity float64) *image.NRGBA {
	mb := mask.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, mb.Dx(), mb.Dy()))
	for y := 0; y < mb.Dy(); y++ {
		mi := mask.PixOffset(mb.Min.X, mb.Min.Y+y)
		oi := out.PixOffset(0, y)
		for x := 0; x < mb.Dx(); x++ {
			a := mask.Pix[mi+x]
			if a != 0 {
				out.Pix[oi] = r
				out.Pix[oi+1] = g
				out.Pix[oi+2] = b
				out.Pix[oi+3] = clampByte(float64(a) * opacity)
			}
			oi += 4
		}
	}
	return out
}

// AlphaChannel copies the alpha channel of img into a mask with origin (0,0).
func AlphaChannel(img *image.NRGBA) *image.Alpha {
	b := img.Bounds()
	out := image.NewAlpha(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		si := img.PixOffset(b.Min.X, b.Min.Y+y)
		oi := out.PixOffset(0, y)
		for x := 0; x < b.Dx(); x++ {
			out.Pix[oi+x] = img.Pix[si+3]
			si += 4
		}
	}
	return out
}

// clampByte rounds v to the nearest integer in [0, 255].
func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
