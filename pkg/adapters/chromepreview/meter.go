// Package chromepreview measures and captures the live preview in headless
// Chrome, so the export can follow the browser's own layout.
package chromepreview

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"

	"github.com/user/glassbanner/pkg/adapters/chromebrowser"
	"github.com/user/glassbanner/pkg/adapters/staticlayout"
	"github.com/user/glassbanner/pkg/pipeline"
	"github.com/user/glassbanner/pkg/ports"
	"github.com/user/glassbanner/pkg/stages/geometry"
)

// measureScript reads the laid-out preview once web fonts are ready.
const measureScript = `document.fonts.ready.then(() => {
  const box = document.querySelector('.banner').getBoundingClientRect();
  const card = document.querySelector('.card');
  const rect = card.getBoundingClientRect();
  const caption = document.querySelector('.caption');
  return {
    boxWidth: box.width,
    boxHeight: box.height,
    cardX: rect.left - box.left,
    cardY: rect.top - box.top,
    cardWidth: rect.width,
    cardHeight: rect.height,
    radius: parseFloat(getComputedStyle(card).borderTopLeftRadius) || 0,
    fontSize: parseFloat(getComputedStyle(caption).fontSize) || 0
  };
})`

// Metrics is the raw measurement returned by the page.
type Metrics struct {
	BoxWidth   float64 `json:"boxWidth"`
	BoxHeight  float64 `json:"boxHeight"`
	CardX      float64 `json:"cardX"`
	CardY      float64 `json:"cardY"`
	CardWidth  float64 `json:"cardWidth"`
	CardHeight float64 `json:"cardHeight"`
	Radius     float64 `json:"radius"`
	FontSize   float64 `json:"fontSize"`
}

// Layout converts the metrics to a preview layout.
func (m Metrics) Layout() (pipeline.PreviewLayout, error) {
	if m.BoxWidth <= 0 || m.BoxHeight <= 0 || m.CardWidth <= 0 || m.CardHeight <= 0 {
		return pipeline.PreviewLayout{}, fmt.Errorf("%w: box %.1fx%.1f, card %.1fx%.1f",
			pipeline.ErrInvalidPreview, m.BoxWidth, m.BoxHeight, m.CardWidth, m.CardHeight)
	}
	return pipeline.PreviewLayout{
		Banner:     pipeline.LayoutRect{Width: m.BoxWidth, Height: m.BoxHeight},
		Card:       pipeline.LayoutRect{X: m.CardX, Y: m.CardY, Width: m.CardWidth, Height: m.CardHeight},
		CardRadius: m.Radius,
		FontSize:   m.FontSize,
	}, nil
}

// Meter implements ports.LayoutMeter and ports.PreviewCapturer with Chrome.
// Every call launches a fresh browser.
type Meter struct {
	style   staticlayout.Style
	options chromebrowser.Options
	logger  ports.Logger
}

// New creates a Chrome-backed meter.
func New(style staticlayout.Style, options chromebrowser.Options, logger ports.Logger) *Meter {
	return &Meter{
		style:   style,
		options: options,
		logger:  logger.WithComponent(ports.ComponentPreview),
	}
}

// Measure lays out the preview in Chrome and reads back the card geometry.
func (p *Meter) Measure(ctx context.Context, req pipeline.PreviewRequest) (pipeline.PreviewLayout, error) {
	var m Metrics
	err := p.withPage(ctx, req, func(b *chromebrowser.Browser) error {
		return b.Run(chromedp.Evaluate(measureScript, &m, awaitPromise))
	})
	if err != nil {
		return pipeline.PreviewLayout{}, err
	}

	p.logger.Debug("Preview card %.1fx%.1f at %.1f,%.1f", m.CardWidth, m.CardHeight, m.CardX, m.CardY)
	return m.Layout()
}

// CapturePreview screenshots the preview box.
func (p *Meter) CapturePreview(ctx context.Context, req pipeline.PreviewRequest) (image.Image, error) {
	var buf []byte
	err := p.withPage(ctx, req, func(b *chromebrowser.Browser) error {
		return b.Run(chromedp.Screenshot(".banner", &buf, chromedp.ByQuery, chromedp.NodeVisible))
	})
	if err != nil {
		return nil, err
	}

	img, err := png.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}
	return img, nil
}

func (p *Meter) withPage(ctx context.Context, req pipeline.PreviewRequest, fn func(*chromebrowser.Browser) error) error {
	vars := NewDocumentVars(req, p.style, geometry.PreviewBlurRadius)
	html, err := RenderDocument(vars)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp("", "glassbanner-preview-*.html")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(html); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	opts := p.options
	opts.WindowWidth = int(vars.BoxWidth + 0.5)
	opts.WindowHeight = int(vars.BoxHeight + 0.5)

	p.logger.Debug("Launching browser for preview measurement")
	browser := chromebrowser.New()
	if err := browser.Launch(ctx, opts); err != nil {
		p.logger.Error("Failed to launch browser: %s", err)
		return err
	}
	defer func() {
		browser.Close()
		p.logger.Debug("Browser closed")
	}()

	if err := browser.Run(
		chromedp.EmulateViewport(int64(opts.WindowWidth), int64(opts.WindowHeight)),
		chromedp.Navigate("file://"+tmp.Name()),
		chromedp.WaitReady(".card", chromedp.ByQuery),
	); err != nil {
		return fmt.Errorf("load preview: %w", err)
	}
	return fn(browser)
}

func awaitPromise(p *runtime.EvaluateParams) *runtime.EvaluateParams {
	return p.WithAwaitPromise(true)
}

// Ensure Meter implements the preview ports
var (
	_ ports.LayoutMeter     = (*Meter)(nil)
	_ ports.PreviewCapturer = (*Meter)(nil)
)
