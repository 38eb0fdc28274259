package ports

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
)

// Renderer abstracts image decoding, encoding and drawing surfaces.
type Renderer interface {
	// CreateCanvas creates a new drawing canvas with the specified dimensions and background color.
	CreateCanvas(width, height int, bg color.Color) Canvas

	// DecodeImage decodes image data, detecting the format from its header.
	DecodeImage(data []byte) (image.Image, error)

	// EncodePNG encodes an image as PNG.
	EncodePNG(img image.Image) ([]byte, error)

	// DrawScaled draws src onto dst so that src's bounds map to the rectangle
	// (x, y, width, height), which may extend past dst.
	DrawScaled(dst *image.RGBA, src image.Image, x, y, width, height float64)
}

// Canvas provides the vector drawing operations used to build card layers.
// Coordinates are in canvas pixels with the origin at the top-left corner.
type Canvas interface {
	// ClipRoundedRect restricts subsequent drawing to a rounded rectangle.
	ClipRoundedRect(x, y, w, h, radius float64)

	// ResetClip removes any clip.
	ResetClip()

	// FillRoundedRect draws a filled rounded rectangle.
	FillRoundedRect(x, y, w, h, radius float64, c color.Color)

	// StrokeRoundedRect draws a rounded rectangle outline.
	StrokeRoundedRect(x, y, w, h, radius float64, c color.Color, width float64)

	// FillGradientRect fills a rectangle with a linear gradient.
	FillGradientRect(x, y, w, h float64, g Gradient)

	// DrawImage draws an image at the specified position.
	DrawImage(img image.Image, x, y int)

	// SetFontFace selects the face used by DrawText.
	SetFontFace(face font.Face)

	// DrawText draws a single line centered horizontally on x with its
	// alphabetic baseline at y.
	DrawText(text string, x, y float64, c color.Color)

	// ToImage returns the canvas as an image.Image.
	ToImage() image.Image

	// AsMask returns the canvas alpha channel.
	AsMask() *image.Alpha
}

// Gradient is a linear gradient from (X0,Y0) to (X1,Y1).
type Gradient struct {
	X0, Y0 float64
	X1, Y1 float64
	Stops  []GradientStop
}

// GradientStop is a colour at an offset in [0,1] along a gradient.
type GradientStop struct {
	Offset float64
	Color  color.Color
}
