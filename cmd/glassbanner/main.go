// Package main provides the CLI entry point for glassbanner.
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/glassbanner/pkg/adapters/logger"
	"github.com/user/glassbanner/pkg/adapters/notice"
	"github.com/user/glassbanner/pkg/adapters/osfilesystem"
	"github.com/user/glassbanner/pkg/config"
	"github.com/user/glassbanner/pkg/glassbanner"
	"github.com/user/glassbanner/pkg/ports"
	"github.com/user/glassbanner/pkg/summarizer"
)

var version = "dev"

// errNotified marks failures the user has already been told about.
var errNotified = errors.New("notified")

func main() {
	if err := newApp().Run(os.Args); err != nil {
		if !errors.Is(err, errNotified) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:        "glassbanner",
		Usage:       l10n.T("Compose frosted-glass banner images"),
		Description: l10n.T("glassbanner crops a background photo and renders a frosted-glass caption card on top of it."),
		Version:     version,
		Commands: []*cli.Command{
			exportCommand(),
			previewCommand(),
			versionCommand(),
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:        "export",
		Usage:       l10n.T("Export a banner as PNG"),
		Description: l10n.T("Render the banner at full resolution and save it as a PNG file."),
		ArgsUsage:   "IMAGE",
		Flags:       append(commonFlags(), exportFlags()...),
		Action:      runExport,
	}
}

func previewCommand() *cli.Command {
	return &cli.Command{
		Name:        "preview",
		Usage:       l10n.T("Screenshot the live preview"),
		Description: l10n.T("Render the preview page in headless Chrome and save a screenshot of the banner box."),
		ArgsUsage:   "IMAGE",
		Flags: append(commonFlags(), &cli.StringFlag{
			Name:     "output",
			Aliases:  []string{"o"},
			Usage:    l10n.T("Screenshot PNG file path (required)"),
			Required: true,
			Category: l10n.T("Output"),
		}),
		Action: runPreview,
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: l10n.T("Show version information"),
		Action: func(c *cli.Context) error {
			fmt.Fprintln(c.App.Writer, l10n.F("glassbanner version %s", version))
			return nil
		},
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: l10n.T("Configuration file (YAML or TOML)"), Category: l10n.T("Configuration")},

		// Content
		&cli.StringFlag{Name: "text", Aliases: []string{"t"}, Usage: l10n.T("Caption text, \\n starts a new line"), Category: l10n.T("Content")},
		&cli.StringFlag{Name: "text-color", Usage: l10n.T("Caption color (#rgb, #rrggbb, rgb() or rgba())"), Category: l10n.T("Content")},
		&cli.StringFlag{Name: "tint", Usage: l10n.T("Card tint color (#rgb, #rrggbb, rgb() or rgba())"), Category: l10n.T("Content")},
		&cli.StringFlag{Name: "font", Usage: l10n.T("TTF or OTF font file for the caption"), Category: l10n.T("Content")},

		// Size and crop
		&cli.IntFlag{Name: "width", Aliases: []string{"W"}, Usage: l10n.T("Fixed banner width (500-10000, 0 = auto)"), Category: l10n.T("Size and Crop")},
		&cli.IntFlag{Name: "height", Aliases: []string{"H"}, Usage: l10n.T("Fixed banner height (140-1000, 0 = auto, default: 320)"), Category: l10n.T("Size and Crop")},
		&cli.Float64Flag{Name: "focal-x", Usage: l10n.T("Horizontal focal point in percent"), Category: l10n.T("Size and Crop")},
		&cli.Float64Flag{Name: "focal-y", Usage: l10n.T("Vertical focal point in percent"), Category: l10n.T("Size and Crop")},

		// Browser
		&cli.BoolFlag{Name: "browser", Usage: l10n.T("Measure the preview in headless Chrome"), Category: l10n.T("Browser")},
		&cli.StringFlag{Name: "chrome-path", Usage: l10n.T("Path to Chrome executable"), EnvVars: []string{"CHROME_PATH"}, Category: l10n.T("Browser")},
		&cli.BoolFlag{Name: "no-headless", Usage: l10n.T("Run browser in non-headless mode"), Category: l10n.T("Browser")},

		// Logging
		&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Value: "info", Usage: l10n.T("Log level (debug, info, warn, error)"), Category: l10n.T("Logging")},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: l10n.T("Suppress all log output"), Category: l10n.T("Logging")},
	}
}

func exportFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: l10n.T("Output PNG file path"), Category: l10n.T("Output")},
		&cli.StringFlag{Name: "output-dir", Usage: l10n.T("Directory for the generated file name"), Category: l10n.T("Output")},
		&cli.StringFlag{Name: "summary", Aliases: []string{"s"}, Usage: l10n.T("Output export summary to file (Markdown format)"), Category: l10n.T("Output")},

		&cli.Int64Flag{Name: "seed", Usage: l10n.T("Noise seed for reproducible output (0 = random)"), Category: l10n.T("Rendering")},
		&cli.IntFlag{Name: "workers", Usage: l10n.T("Compositing workers (default: number of CPUs)"), Category: l10n.T("Rendering")},

		&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: l10n.T("Enable debug output"), Category: l10n.T("Debug")},
		&cli.StringFlag{Name: "debug-dir", Value: "./debug", Usage: l10n.T("Directory for debug output"), Category: l10n.T("Debug")},
	}
}

// buildConfig layers the config file and explicitly set flags over the
// defaults.
func buildConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	cfg.Workers = runtime.NumCPU()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	b := glassbanner.FromConfig(cfg)
	if c.Args().Present() {
		b.WithImage(c.Args().First())
	}
	if c.IsSet("text") {
		b.WithText(unescapeText(c.String("text")))
	}
	if c.IsSet("text-color") {
		b.WithTextColor(c.String("text-color"))
	}
	if c.IsSet("tint") {
		b.WithTintColor(c.String("tint"))
	}
	if c.IsSet("font") {
		b.WithFont(c.String("font"))
	}
	if c.IsSet("width") {
		b.WithWidth(c.Int("width"))
	}
	if c.IsSet("height") {
		b.WithHeight(c.Int("height"))
	}
	if c.IsSet("focal-x") || c.IsSet("focal-y") {
		x, y := cfg.Focal.X, cfg.Focal.Y
		if c.IsSet("focal-x") {
			x = c.Float64("focal-x")
		}
		if c.IsSet("focal-y") {
			y = c.Float64("focal-y")
		}
		b.WithFocal(x, y)
	}
	if c.Bool("browser") {
		b.WithBrowserPreview(true)
	}
	if c.IsSet("chrome-path") {
		b.WithChromePath(c.String("chrome-path"))
	}
	if c.Bool("no-headless") {
		b.WithHeadless(false)
	}

	// Export-only flags; lookups on flags a command lacks are no-ops.
	if c.IsSet("output") {
		b.WithOutput(c.String("output"))
	}
	if c.IsSet("output-dir") {
		b.WithOutputDir(c.String("output-dir"))
	}
	if c.IsSet("seed") {
		b.WithNoiseSeed(c.Int64("seed"))
	}
	if c.IsSet("workers") {
		b.WithWorkers(c.Int("workers"))
	}
	if c.Bool("debug") {
		b.WithDebug(c.String("debug-dir"))
	}

	return b.Build(), nil
}

// unescapeText turns the two-character sequence \n into a line break so
// captions can be given on one shell line.
func unescapeText(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}

func newLogger(c *cli.Context) ports.Logger {
	if c.Bool("quiet") {
		return logger.NewNoop()
	}
	return logger.NewConsole(ports.ParseLogLevel(c.String("log-level")))
}

// signalContext cancels the returned context on SIGINT or SIGTERM.
func signalContext(log ports.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			log.Warn(l10n.T("Interrupted, shutting down..."))
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}

func runExport(c *cli.Context) error {
	cfg, err := buildConfig(c)
	if err != nil {
		return err
	}

	log := newLogger(c)
	ctx, cancel := signalContext(log)
	defer cancel()

	fs := osfilesystem.New()
	deps := glassbanner.Deps{
		Logger:   log,
		Notifier: notice.NewWithWriter(c.App.ErrWriter),
		FS:       fs,
	}

	log.Info(l10n.F("Exporting %s...", cfg.Image))

	result, err := glassbanner.Export(ctx, cfg, deps)
	if err != nil {
		return fmt.Errorf("%w: %w", errNotified, err)
	}

	if path := c.String("summary"); path != "" {
		w := summarizer.NewWriter(summarizer.NewMarkdownFormatter(summarizer.WithTranslator(l10n.T)), fs)
		if err := w.Write(path, summarizer.FromRunResult(result)); err != nil {
			log.Warn(l10n.F("Failed to write summary: %s", err))
		} else {
			log.Info(l10n.F("Summary saved to %s", path))
		}
	}

	fmt.Fprintln(c.App.Writer, result.OutputPath)
	return nil
}

func runPreview(c *cli.Context) error {
	cfg, err := buildConfig(c)
	if err != nil {
		return err
	}

	log := newLogger(c)
	ctx, cancel := signalContext(log)
	defer cancel()

	fs := osfilesystem.New()
	img, err := glassbanner.Preview(ctx, cfg, glassbanner.Deps{Logger: log, FS: fs})
	if err != nil {
		log.Error(l10n.F("Preview failed: %v", err))
		return err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	if err := fs.WriteFile(c.String("output"), buf.Bytes()); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}

	log.Info(l10n.F("Preview saved to %s", c.String("output")))
	return nil
}
