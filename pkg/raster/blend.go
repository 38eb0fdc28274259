package raster

import (
	"image"
)

// BlendMode selects the per-channel formula used when a layer is drawn over
// the pixels beneath it.
type BlendMode int

const (
	// BlendNormal is plain source-over.
	BlendNormal BlendMode = iota
	// BlendMultiply darkens: s * b.
	BlendMultiply
	// BlendOverlay multiplies or screens depending on the backdrop:
	// 2sb when b < 0.5, otherwise 1 - 2(1-s)(1-b).
	BlendOverlay
)

// String returns the CSS name of the blend mode.
func (m BlendMode) String() string {
	switch m {
	case BlendMultiply:
		return "multiply"
	case BlendOverlay:
		return "overlay"
	default:
		return "normal"
	}
}

// Channel combines a source channel s with a backdrop channel b, both in [0,1].
func (m BlendMode) Channel(s, b float64) float64 {
	switch m {
	case BlendMultiply:
		return s * b
	case BlendOverlay:
		if b < 0.5 {
			return 2 * s * b
		}
		return 1 - 2*(1-s)*(1-b)
	default:
		return s
	}
}

// Composite draws src onto dst with its top-left corner at `at`, using mode
// and a global opacity. When clip is non-nil it must have src's size and
// further scales the source alpha per pixel.
//
// dst is premultiplied (as produced by gg and image/draw), src is straight
// alpha. The blend follows the separable blend model: the blended colour is
// B(s, b) where the backdrop is opaque and fades to s where it is not.
func Composite(dst *image.RGBA, at image.Point, src *image.NRGBA, clip *image.Alpha, mode BlendMode, opacity float64) {
	if opacity <= 0 {
		return
	}
	sb := src.Bounds()
	area := image.Rect(at.X, at.Y, at.X+sb.Dx(), at.Y+sb.Dy()).Intersect(dst.Bounds())
	if area.Empty() {
		return
	}

	var cb image.Rectangle
	if clip != nil {
		cb = clip.Bounds()
	}

	for y := area.Min.Y; y < area.Max.Y; y++ {
		sy := y - at.Y
		for x := area.Min.X; x < area.Max.X; x++ {
			sx := x - at.X
			si := src.PixOffset(sb.Min.X+sx, sb.Min.Y+sy)
			sa := float64(src.Pix[si+3]) / 255 * opacity
			if clip != nil {
				sa *= float64(clip.Pix[clip.PixOffset(cb.Min.X+sx, cb.Min.Y+sy)]) / 255
			}
			if sa <= 0 {
				continue
			}

			di := dst.PixOffset(x, y)
			da := float64(dst.Pix[di+3]) / 255
			for c := 0; c < 3; c++ {
				s := float64(src.Pix[si+c]) / 255
				dp := float64(dst.Pix[di+c]) / 255
				b := 0.0
				if da > 0 {
					b = dp / da
				}
				mixed := (1-da)*s + da*mode.Channel(s, b)
				dst.Pix[di+c] = clampByte((sa*mixed + (1-sa)*dp) * 255)
			}
			dst.Pix[di+3] = clampByte((sa + da*(1-sa)) * 255)
		}
	}
}
