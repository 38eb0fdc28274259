package mocks

import (
	"context"
	"image"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/user/glassbanner/pkg/pipeline"
	"github.com/user/glassbanner/pkg/ports"
)

// Blurrer is a mock implementation of ports.Blurrer.
// By default it returns an unblurred copy and counts calls.
type Blurrer struct {
	mu    sync.Mutex
	Calls []float64

	BlurFunc func(img image.Image, radius float64) (*image.NRGBA, error)
}

func (m *Blurrer) Blur(img image.Image, radius float64) (*image.NRGBA, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, radius)
	m.mu.Unlock()
	if m.BlurFunc != nil {
		return m.BlurFunc(img, radius)
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out, nil
}

var _ ports.Blurrer = (*Blurrer)(nil)

// UnavailableBlurrer always reports that blurring is not possible.
type UnavailableBlurrer struct{}

func (UnavailableBlurrer) Blur(img image.Image, radius float64) (*image.NRGBA, error) {
	return nil, pipeline.ErrEffectUnavailable
}

var _ ports.Blurrer = UnavailableBlurrer{}

// FontProvider is a mock implementation of ports.FontProvider.
// It returns the fixed-size basicfont face regardless of the size asked for.
type FontProvider struct {
	Sizes []float64
	Err   error
}

func (m *FontProvider) Face(size float64) (font.Face, error) {
	m.Sizes = append(m.Sizes, size)
	if m.Err != nil {
		return nil, m.Err
	}
	return basicfont.Face7x13, nil
}

var _ ports.FontProvider = (*FontProvider)(nil)

// Notifier is a mock implementation of ports.Notifier.
type Notifier struct {
	mu       sync.Mutex
	Messages []string
}

func (m *Notifier) Notify(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, msg)
}

// Count returns the number of notices.
func (m *Notifier) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Messages)
}

var _ ports.Notifier = (*Notifier)(nil)

// LayoutMeter is a mock implementation of ports.LayoutMeter.
type LayoutMeter struct {
	Layout    pipeline.PreviewLayout
	Err       error
	Requests  []pipeline.PreviewRequest
	MeasureFn func(ctx context.Context, req pipeline.PreviewRequest) (pipeline.PreviewLayout, error)
}

func (m *LayoutMeter) Measure(ctx context.Context, req pipeline.PreviewRequest) (pipeline.PreviewLayout, error) {
	m.Requests = append(m.Requests, req)
	if m.MeasureFn != nil {
		return m.MeasureFn(ctx, req)
	}
	return m.Layout, m.Err
}

var _ ports.LayoutMeter = (*LayoutMeter)(nil)
