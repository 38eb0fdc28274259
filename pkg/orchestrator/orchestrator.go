// Package orchestrator coordinates all pipeline stages for one export.
package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/user/glassbanner/pkg/pipeline"
	"github.com/user/glassbanner/pkg/ports"
)

// Config contains all configuration for one export.
type Config struct {
	// Input
	ImagePath string // Read through the FileSystem when ImageData is empty
	ImageData []byte

	// Output
	OutputPath string // Explicit file path; empty derives one in OutputDir
	OutputDir  string

	Render pipeline.RenderConfig
}

// Stages bundles the five pipeline stages in execution order.
type Stages struct {
	Geometry  pipeline.Stage[pipeline.GeometryInput, pipeline.Geometry]
	Crop      pipeline.Stage[pipeline.CropInput, pipeline.CropResult]
	Glass     pipeline.Stage[pipeline.GlassInput, pipeline.GlassResult]
	Caption   pipeline.Stage[pipeline.CaptionInput, pipeline.CaptionResult]
	Composite pipeline.Stage[pipeline.CompositeInput, pipeline.CompositeResult]
}

// Orchestrator coordinates the execution of all pipeline stages.
// Concurrent Run calls are serialized.
type Orchestrator struct {
	mu sync.Mutex

	stages   Stages
	meter    ports.LayoutMeter
	renderer ports.Renderer
	fs       ports.FileSystem
	sink     ports.DebugSink
	notifier ports.Notifier
	logger   ports.Logger
	now      func() time.Time
}

// New creates a new Orchestrator.
func New(
	stages Stages,
	meter ports.LayoutMeter,
	renderer ports.Renderer,
	fs ports.FileSystem,
	sink ports.DebugSink,
	notifier ports.Notifier,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		stages:   stages,
		meter:    meter,
		renderer: renderer,
		fs:       fs,
		sink:     sink,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock replaces the clock used for file names and timings.
func (o *Orchestrator) WithClock(now func() time.Time) *Orchestrator {
	o.now = now
	return o
}

// Run executes the complete pipeline. Any fatal error produces exactly one
// notice and no output file.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	result, err := o.run(ctx, config)
	if err != nil {
		o.notify(err)
		return RunResult{}, err
	}
	return result, nil
}

func (o *Orchestrator) run(ctx context.Context, config Config) (RunResult, error) {
	started := o.now()
	render := config.Render

	// 1. Load and decode the background
	data, err := o.loadAsset(config)
	if err != nil {
		return RunResult{}, err
	}
	img, err := o.renderer.DecodeImage(data)
	if err != nil {
		return RunResult{}, fmt.Errorf("%w: %v", pipeline.ErrAssetLoad, err)
	}
	natural := pipeline.Dimension{Width: img.Bounds().Dx(), Height: img.Bounds().Dy()}
	if natural.Width <= 0 || natural.Height <= 0 {
		return RunResult{}, pipeline.ErrImageNotLoaded
	}
	o.logger.Info(l10n.F("Background decoded: %dx%d", natural.Width, natural.Height))

	// 2. Measure the live preview
	if err := ctx.Err(); err != nil {
		return RunResult{}, err
	}
	preview, err := o.meter.Measure(ctx, PreviewRequest(render, natural, data))
	if err != nil {
		return RunResult{}, fmt.Errorf("preview: %w", err)
	}
	o.logger.Info(l10n.F("Preview measured: box %.0fx%.0f", preview.Banner.Width, preview.Banner.Height))
	o.saveJSON(preview, o.sink.SavePreviewJSON)

	// 3. Resolve export geometry
	if err := ctx.Err(); err != nil {
		return RunResult{}, err
	}
	geom, err := o.stages.Geometry.Execute(ctx, pipeline.GeometryInput{
		Preview:     preview,
		Natural:     natural,
		FixedWidth:  render.FixedWidth,
		FixedHeight: render.FixedHeight,
	})
	if err != nil {
		return RunResult{}, fmt.Errorf("geometry stage: %w", err)
	}
	o.saveJSON(geom, o.sink.SaveGeometryJSON)

	// 4. Cover-crop the background
	if err := ctx.Err(); err != nil {
		return RunResult{}, err
	}
	crop, err := o.stages.Crop.Execute(ctx, pipeline.CropInput{
		Image:  img,
		Target: geom.Target,
		Focal:  render.Focal,
	})
	if err != nil {
		return RunResult{}, fmt.Errorf("crop stage: %w", err)
	}
	if o.sink.Enabled() {
		o.warnOnSinkError(o.sink.SaveBackground(crop.Background))
	}

	// 5. Glass panel
	if err := ctx.Err(); err != nil {
		return RunResult{}, err
	}
	glass, err := o.stages.Glass.Execute(ctx, pipeline.GlassInput{
		Background: crop.Background,
		Spec:       geom.PanelSpec(render.TintColor),
		Scale:      geom.Scale,
		NoiseSeed:  render.NoiseSeed,
	})
	if err != nil {
		return RunResult{}, fmt.Errorf("glass stage: %w", err)
	}

	// 6. Caption
	if err := ctx.Err(); err != nil {
		return RunResult{}, err
	}
	caption, err := o.stages.Caption.Execute(ctx, pipeline.CaptionInput{
		Text:       render.Text,
		Color:      render.TextColor,
		Card:       geom.Card,
		CardRadius: geom.CardRadius,
		FontSize:   geom.FontSize,
		Scale:      geom.Scale,
	})
	if err != nil {
		return RunResult{}, fmt.Errorf("caption stage: %w", err)
	}

	// 7. Composite and encode
	if err := ctx.Err(); err != nil {
		return RunResult{}, err
	}
	layers := append(glass.Layers(), caption.Layers...)
	composite, err := o.stages.Composite.Execute(ctx, pipeline.CompositeInput{
		Background: crop.Background,
		Layers:     layers,
	})
	if err != nil {
		return RunResult{}, fmt.Errorf("composite stage: %w", err)
	}

	// 8. Write output file
	if err := ctx.Err(); err != nil {
		return RunResult{}, err
	}
	outputPath := config.OutputPath
	if outputPath == "" {
		outputPath = filepath.Join(config.OutputDir, FileName(geom.Target, started))
	}
	if err := o.fs.WriteFile(outputPath, composite.PNG); err != nil {
		o.logger.Error(l10n.F("Failed to write output: %s", err))
		return RunResult{}, fmt.Errorf("write output: %w", err)
	}

	elapsed := o.now().Sub(started)
	o.logger.Info(l10n.F("Export saved to %s", outputPath))
	o.logger.Info(l10n.F("Export completed in %d ms", elapsed.Milliseconds()))

	return RunResult{
		OutputPath:   outputPath,
		Generated:    started,
		Duration:     elapsed,
		Natural:      natural,
		Preview:      preview,
		Geometry:     geom,
		Focal:        render.Focal.Clamped(),
		Text:         render.Text,
		TextColor:    render.TextColor,
		TintColor:    render.TintColor,
		CaptionLines: caption.Lines,
		LayerCount:   len(layers),
		Blurred:      glass.Blurred,
		FileSize:     int64(len(composite.PNG)),
	}, nil
}

func (o *Orchestrator) loadAsset(config Config) ([]byte, error) {
	if len(config.ImageData) > 0 {
		return config.ImageData, nil
	}
	if config.ImagePath == "" {
		return nil, pipeline.ErrMissingAsset
	}
	data, err := o.fs.ReadFile(config.ImagePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pipeline.ErrAssetLoad, err)
	}
	if len(data) == 0 {
		return nil, pipeline.ErrMissingAsset
	}
	return data, nil
}

// PreviewRequest describes the preview matching a render config. Fixed
// sizes become the preview box size.
func PreviewRequest(render pipeline.RenderConfig, natural pipeline.Dimension, data []byte) pipeline.PreviewRequest {
	return pipeline.PreviewRequest{
		Width:     float64(render.FixedWidth),
		Height:    float64(render.FixedHeight),
		Natural:   natural,
		Text:      render.Text,
		TextColor: render.TextColor,
		TintColor: render.TintColor,
		Focal:     render.Focal,
		ImageData: data,
	}
}

// notify turns a fatal error into a single user notice. Cancellation is
// requested by the user and stays silent.
func (o *Orchestrator) notify(err error) {
	o.logger.Error(l10n.F("Export aborted: %v", err))
	switch {
	case errors.Is(err, context.Canceled):
		return
	case errors.Is(err, pipeline.ErrMissingAsset):
		o.notifier.Notify(l10n.T("Please select a background image first."))
	case errors.Is(err, pipeline.ErrAssetLoad), errors.Is(err, pipeline.ErrImageNotLoaded):
		o.notifier.Notify(l10n.T("The background image could not be loaded."))
	default:
		o.notifier.Notify(l10n.F("The banner could not be exported: %s", err))
	}
}

func (o *Orchestrator) saveJSON(v interface{}, save func([]byte) error) {
	if !o.sink.Enabled() {
		return
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		o.warnOnSinkError(err)
		return
	}
	o.warnOnSinkError(save(data))
}

func (o *Orchestrator) warnOnSinkError(err error) {
	if err != nil {
		o.logger.Warn(l10n.F("Failed to save debug output: %v", err))
	}
}

// FileName returns the default artifact name banner_{W}x{H}_{YYYY-MM-DD}.png.
func FileName(target pipeline.Dimension, t time.Time) string {
	return fmt.Sprintf("banner_%dx%d_%s.png", target.Width, target.Height, t.Format("2006-01-02"))
}

// RunResult contains the results of an export for summary generation.
type RunResult struct {
	OutputPath string
	Generated  time.Time
	Duration   time.Duration

	// Geometry information
	Natural  pipeline.Dimension
	Preview  pipeline.PreviewLayout
	Geometry pipeline.Geometry
	Focal    pipeline.Focal

	// Content
	Text      string
	TextColor pipeline.RGB
	TintColor pipeline.RGB

	// Rendering
	CaptionLines int
	LayerCount   int
	Blurred      bool // False when the card was rendered without backdrop blur
	FileSize     int64
}
