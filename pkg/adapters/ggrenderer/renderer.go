// Package ggrenderer provides a renderer implementation using the gg library.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"github.com/fogleman/gg"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/user/glassbanner/pkg/ports"
)

// Renderer implements ports.Renderer using the gg library.
type Renderer struct{}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{}
}

// CreateCanvas creates a new drawing canvas.
func (r *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	dc := gg.NewContext(width, height)
	if bg != nil {
		dc.SetColor(bg)
		dc.Clear()
	}
	return &Canvas{dc: dc}
}

// DecodeImage decodes image data into an image.Image.
// JPEG, PNG, GIF, WebP, BMP and TIFF are recognised from the data header.
func (r *Renderer) DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return img, nil
}

// EncodePNG encodes an image as PNG with best compression.
func (r *Renderer) EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// DrawScaled draws src scaled into the rectangle (x, y, width, height) of dst.
// Sub-pixel placement is kept by using an affine transform instead of an
// integer destination rectangle.
func (r *Renderer) DrawScaled(dst *image.RGBA, src image.Image, x, y, width, height float64) {
	sb := src.Bounds()
	if sb.Empty() || width <= 0 || height <= 0 {
		return
	}
	sx := width / float64(sb.Dx())
	sy := height / float64(sb.Dy())
	m := f64.Aff3{
		sx, 0, x - sx*float64(sb.Min.X),
		0, sy, y - sy*float64(sb.Min.Y),
	}
	draw.CatmullRom.Transform(dst, m, src, sb, draw.Over, nil)
}

// Ensure Renderer implements ports.Renderer
var _ ports.Renderer = (*Renderer)(nil)

// Canvas implements ports.Canvas using gg.Context.
type Canvas struct {
	dc *gg.Context
}

// ClipRoundedRect restricts drawing to a rounded rectangle.
func (c *Canvas) ClipRoundedRect(x, y, w, h, radius float64) {
	c.dc.DrawRoundedRectangle(x, y, w, h, radius)
	c.dc.Clip()
}

// ResetClip removes the clip.
func (c *Canvas) ResetClip() {
	c.dc.ResetClip()
}

// FillRoundedRect draws a filled rounded rectangle.
func (c *Canvas) FillRoundedRect(x, y, w, h, radius float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawRoundedRectangle(x, y, w, h, radius)
	c.dc.Fill()
}

// StrokeRoundedRect draws a rounded rectangle outline.
func (c *Canvas) StrokeRoundedRect(x, y, w, h, radius float64, col color.Color, width float64) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(width)
	c.dc.DrawRoundedRectangle(x, y, w, h, radius)
	c.dc.Stroke()
}

// FillGradientRect fills a rectangle with a linear gradient.
func (c *Canvas) FillGradientRect(x, y, w, h float64, g ports.Gradient) {
	grad := gg.NewLinearGradient(g.X0, g.Y0, g.X1, g.Y1)
	for _, stop := range g.Stops {
		grad.AddColorStop(stop.Offset, stop.Color)
	}
	c.dc.SetFillStyle(grad)
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.Fill()
}

// DrawImage draws an image at the specified position.
func (c *Canvas) DrawImage(img image.Image, x, y int) {
	c.dc.DrawImage(img, x, y)
}

// SetFontFace selects the text face.
func (c *Canvas) SetFontFace(face font.Face) {
	c.dc.SetFontFace(face)
}

// DrawText draws text centered on x with its baseline at y.
func (c *Canvas) DrawText(text string, x, y float64, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawStringAnchored(text, x, y, 0.5, 0)
}

// ToImage returns the canvas as an image.Image.
func (c *Canvas) ToImage() image.Image {
	return c.dc.Image()
}

// AsMask returns the canvas alpha channel.
func (c *Canvas) AsMask() *image.Alpha {
	return c.dc.AsMask()
}

// Ensure Canvas implements ports.Canvas
var _ ports.Canvas = (*Canvas)(nil)
