// Package chromebrowser manages a headless Chrome session using chromedp.
package chromebrowser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// ErrNotLaunched is returned when actions run before Launch.
var ErrNotLaunched = errors.New("browser not launched")

// Options configures the browser process.
type Options struct {
	Headless     bool
	ChromePath   string // Empty falls back to CHROME_PATH, then system defaults
	WindowWidth  int
	WindowHeight int
}

// Browser is a single chromedp browser tab.
type Browser struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	ctx         context.Context
	cancel      context.CancelFunc
}

// New creates a new Browser.
func New() *Browser {
	return &Browser{}
}

// Launch starts the browser with the given options.
func (b *Browser) Launch(ctx context.Context, opts Options) error {
	chromePath := ResolveChromePath(opts.ChromePath)
	if chromePath == "" {
		return fmt.Errorf("chrome not found: please install Chrome/Chromium, set CHROME_PATH environment variable, or use --chrome-path option")
	}

	b.allocCtx, b.allocCancel = chromedp.NewExecAllocator(ctx, allocatorOptions(opts, chromePath)...)
	b.ctx, b.cancel = chromedp.NewContext(b.allocCtx)

	// Start the process now so launch failures surface here.
	if err := chromedp.Run(b.ctx); err != nil {
		b.Close()
		return fmt.Errorf("start browser: %w", err)
	}
	return nil
}

func allocatorOptions(opts Options, chromePath string) []chromedp.ExecAllocatorOption {
	chromedpOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.ExecPath(chromePath),
	}

	if opts.Headless {
		chromedpOpts = append(chromedpOpts, chromedp.Flag("headless", "new"))
	}

	if opts.WindowWidth > 0 && opts.WindowHeight > 0 {
		chromedpOpts = append(chromedpOpts, chromedp.WindowSize(opts.WindowWidth, opts.WindowHeight))
	}

	// backdrop-filter needs the compositor, so keep GPU emulation on and
	// only drop the sandboxes that fail inside containers.
	return append(chromedpOpts,
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("disable-namespace-sandbox", true),
		chromedp.Flag("no-zygote", true),
	)
}

// Run executes chromedp actions in the browser tab.
func (b *Browser) Run(actions ...chromedp.Action) error {
	if b.ctx == nil {
		return ErrNotLaunched
	}
	return chromedp.Run(b.ctx, actions...)
}

// Close shuts down the browser.
func (b *Browser) Close() error {
	if b.cancel != nil {
		b.cancel()
	}

	// Give Chrome a moment to shut down gracefully, then force kill
	time.Sleep(100 * time.Millisecond)

	if b.allocCancel != nil {
		b.allocCancel()
	}
	b.ctx = nil
	return nil
}
