package glassbanner

import (
	"context"
	"fmt"
	"image"

	"github.com/ideamans/go-l10n"

	"github.com/user/glassbanner/pkg/adapters/chromebrowser"
	"github.com/user/glassbanner/pkg/adapters/chromepreview"
	"github.com/user/glassbanner/pkg/adapters/filesink"
	"github.com/user/glassbanner/pkg/adapters/fontface"
	"github.com/user/glassbanner/pkg/adapters/ggrenderer"
	"github.com/user/glassbanner/pkg/adapters/imagingblur"
	"github.com/user/glassbanner/pkg/adapters/logger"
	"github.com/user/glassbanner/pkg/adapters/notice"
	"github.com/user/glassbanner/pkg/adapters/nullsink"
	"github.com/user/glassbanner/pkg/adapters/osfilesystem"
	"github.com/user/glassbanner/pkg/adapters/staticlayout"
	"github.com/user/glassbanner/pkg/config"
	"github.com/user/glassbanner/pkg/orchestrator"
	"github.com/user/glassbanner/pkg/pipeline"
	"github.com/user/glassbanner/pkg/ports"
	"github.com/user/glassbanner/pkg/stages/caption"
	"github.com/user/glassbanner/pkg/stages/composite"
	"github.com/user/glassbanner/pkg/stages/crop"
	"github.com/user/glassbanner/pkg/stages/geometry"
	"github.com/user/glassbanner/pkg/stages/glass"
)

// Deps holds the collaborators that callers may replace.
// Nil fields get the console defaults.
type Deps struct {
	Logger   ports.Logger
	Notifier ports.Notifier
	FS       ports.FileSystem
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = logger.NewNoop()
	}
	if d.Notifier == nil {
		d.Notifier = notice.New()
	}
	if d.FS == nil {
		d.FS = osfilesystem.New()
	}
	return d
}

// NewOrchestrator wires every adapter and stage for cfg.
func NewOrchestrator(cfg config.Config, deps Deps) (*orchestrator.Orchestrator, error) {
	deps = deps.withDefaults()
	log := deps.Logger

	renderer := ggrenderer.New()
	blurrer := imagingblur.New()

	var fonts ports.FontProvider = fontface.New()
	if cfg.Font != "" {
		p, err := fontface.FromFile(deps.FS, cfg.Font)
		if err != nil {
			return nil, fmt.Errorf("load font: %w", err)
		}
		fonts = p
	}

	var sink ports.DebugSink
	if cfg.Debug {
		if err := deps.FS.MkdirAll(cfg.DebugDir); err != nil {
			return nil, fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cfg.DebugDir, deps.FS, renderer)
	} else {
		sink = nullsink.New()
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	stages := orchestrator.Stages{
		Geometry:  geometry.NewStage(log),
		Crop:      crop.NewStage(renderer, log),
		Glass:     glass.NewStage(renderer, blurrer, log),
		Caption:   caption.NewStage(renderer, fonts, blurrer, log),
		Composite: composite.NewStage(renderer, sink, log, workers),
	}

	return orchestrator.New(stages, newMeter(cfg, log), renderer, deps.FS, sink, deps.Notifier, log), nil
}

func newMeter(cfg config.Config, log ports.Logger) ports.LayoutMeter {
	if cfg.Preview.Browser {
		return chromepreview.New(cfg.PreviewStyle(), browserOptions(cfg), log)
	}
	return staticlayout.New(cfg.PreviewStyle())
}

func browserOptions(cfg config.Config) chromebrowser.Options {
	return chromebrowser.Options{
		Headless:   cfg.Preview.Headless,
		ChromePath: cfg.Preview.ChromePath,
	}
}

// Export renders cfg to a PNG file and returns the run result. Every failure,
// including one while wiring the pipeline, reaches the Notifier exactly once.
func Export(ctx context.Context, cfg config.Config, deps Deps) (orchestrator.RunResult, error) {
	deps = deps.withDefaults()
	orch, err := NewOrchestrator(cfg, deps)
	if err != nil {
		deps.Logger.Error("Export aborted: %v", err)
		deps.Notifier.Notify(l10n.F("The banner could not be exported: %s", err))
		return orchestrator.RunResult{}, err
	}
	return orch.Run(ctx, cfg.ToOrchestratorConfig())
}

// Preview screenshots the live preview of cfg in headless Chrome.
func Preview(ctx context.Context, cfg config.Config, deps Deps) (image.Image, error) {
	deps = deps.withDefaults()
	if cfg.Image == "" {
		return nil, pipeline.ErrMissingAsset
	}

	data, err := deps.FS.ReadFile(cfg.Image)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pipeline.ErrAssetLoad, err)
	}
	img, err := ggrenderer.New().DecodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pipeline.ErrAssetLoad, err)
	}

	natural := pipeline.Dimension{Width: img.Bounds().Dx(), Height: img.Bounds().Dy()}
	meter := chromepreview.New(cfg.PreviewStyle(), browserOptions(cfg), deps.Logger)
	return meter.CapturePreview(ctx, orchestrator.PreviewRequest(cfg.ToRenderConfig(), natural, data))
}
