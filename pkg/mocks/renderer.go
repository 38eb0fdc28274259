package mocks

import (
	"image"
	"image/color"

	"golang.org/x/image/font"

	"github.com/user/glassbanner/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	CreateCanvasFunc func(width, height int, bg color.Color) ports.Canvas
	DecodeImageFunc  func(data []byte) (image.Image, error)
	EncodePNGFunc    func(img image.Image) ([]byte, error)
	DrawScaledFunc   func(dst *image.RGBA, src image.Image, x, y, width, height float64)
}

func (m *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	if m.CreateCanvasFunc != nil {
		return m.CreateCanvasFunc(width, height, bg)
	}
	return &Canvas{width: width, height: height}
}

func (m *Renderer) DecodeImage(data []byte) (image.Image, error) {
	if m.DecodeImageFunc != nil {
		return m.DecodeImageFunc(data)
	}
	return image.NewRGBA(image.Rect(0, 0, 100, 100)), nil
}

func (m *Renderer) EncodePNG(img image.Image) ([]byte, error) {
	if m.EncodePNGFunc != nil {
		return m.EncodePNGFunc(img)
	}
	return []byte{}, nil
}

func (m *Renderer) DrawScaled(dst *image.RGBA, src image.Image, x, y, width, height float64) {
	if m.DrawScaledFunc != nil {
		m.DrawScaledFunc(dst, src, x, y, width, height)
	}
}

var _ ports.Renderer = (*Renderer)(nil)

// Canvas is a mock implementation of ports.Canvas.
// It records drawn text so tests can check line splitting.
type Canvas struct {
	width  int
	height int
	img    *image.RGBA

	Texts []string
}

func (m *Canvas) ClipRoundedRect(x, y, w, h, radius float64) {}

func (m *Canvas) ResetClip() {}

func (m *Canvas) FillRoundedRect(x, y, w, h, radius float64, c color.Color) {}

func (m *Canvas) StrokeRoundedRect(x, y, w, h, radius float64, c color.Color, width float64) {}

func (m *Canvas) FillGradientRect(x, y, w, h float64, g ports.Gradient) {}

func (m *Canvas) DrawImage(img image.Image, x, y int) {}

func (m *Canvas) SetFontFace(face font.Face) {}

func (m *Canvas) DrawText(text string, x, y float64, c color.Color) {
	m.Texts = append(m.Texts, text)
}

func (m *Canvas) ToImage() image.Image {
	if m.img != nil {
		return m.img
	}
	return image.NewRGBA(image.Rect(0, 0, m.width, m.height))
}

func (m *Canvas) AsMask() *image.Alpha {
	return image.NewAlpha(image.Rect(0, 0, m.width, m.height))
}

var _ ports.Canvas = (*Canvas)(nil)
