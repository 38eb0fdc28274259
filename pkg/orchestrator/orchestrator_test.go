package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/user/glassbanner/pkg/adapters/fontface"
	"github.com/user/glassbanner/pkg/adapters/ggrenderer"
	"github.com/user/glassbanner/pkg/adapters/imagingblur"
	"github.com/user/glassbanner/pkg/adapters/logger"
	"github.com/user/glassbanner/pkg/adapters/staticlayout"
	"github.com/user/glassbanner/pkg/mocks"
	"github.com/user/glassbanner/pkg/pipeline"
	"github.com/user/glassbanner/pkg/ports"
	"github.com/user/glassbanner/pkg/stages/caption"
	"github.com/user/glassbanner/pkg/stages/composite"
	"github.com/user/glassbanner/pkg/stages/crop"
	"github.com/user/glassbanner/pkg/stages/geometry"
	"github.com/user/glassbanner/pkg/stages/glass"
)

var fixedNow = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

type testEnv struct {
	fs       *mocks.FileSystem
	sink     *mocks.DebugSink
	notifier *mocks.Notifier
	orch     *Orchestrator
}

func newTestEnv(t *testing.T, meter ports.LayoutMeter, debug bool) *testEnv {
	t.Helper()

	log := logger.NewNoop()
	renderer := ggrenderer.New()
	blurrer := imagingblur.New()
	env := &testEnv{
		fs:       mocks.NewFileSystem(),
		sink:     mocks.NewDebugSink(debug),
		notifier: &mocks.Notifier{},
	}
	if meter == nil {
		meter = staticlayout.New(staticlayout.DefaultStyle())
	}

	stages := Stages{
		Geometry:  geometry.NewStage(log),
		Crop:      crop.NewStage(renderer, log),
		Glass:     glass.NewStage(renderer, blurrer, log),
		Caption:   caption.NewStage(renderer, fontface.New(), blurrer, log),
		Composite: composite.NewStage(renderer, env.sink, log, 4),
	}
	env.orch = New(stages, meter, renderer, env.fs, env.sink, env.notifier, log).
		WithClock(func() time.Time { return fixedNow })
	return env
}

// photo returns a PNG with a diagonal gradient.
func photo(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 128, A: 255})
		}
	}
	data, err := ggrenderer.New().EncodePNG(img)
	if err != nil {
		t.Fatalf("encode photo: %v", err)
	}
	return data
}

func TestOrchestrator_Run(t *testing.T) {
	env := newTestEnv(t, nil, false)

	result, err := env.orch.Run(context.Background(), Config{
		ImageData: photo(t, 800, 400),
		OutputDir: "out",
		Render: pipeline.RenderConfig{
			Text:        "Sample\nBanner Text",
			TextColor:   pipeline.RGB{R: 20, G: 20, B: 20},
			TintColor:   pipeline.White,
			FixedWidth:  1600,
			FixedHeight: 360,
			Focal:       pipeline.DefaultFocal(),
			NoiseSeed:   7,
		},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	wantPath := filepath.Join("out", "banner_1600x360_2026-10-18.png")
	if result.OutputPath != wantPath {
		t.Errorf("expected output %s, got %s", wantPath, result.OutputPath)
	}

	data, ok := env.fs.GetFile(wantPath)
	if !ok {
		t.Fatal("expected output file to be written")
	}
	img, err := ggrenderer.New().DecodeImage(data)
	if err != nil {
		t.Fatalf("output is not a valid image: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 1600 || b.Dy() != 360 {
		t.Errorf("expected 1600x360, got %dx%d", b.Dx(), b.Dy())
	}

	if result.CaptionLines != 2 {
		t.Errorf("expected 2 caption lines, got %d", result.CaptionLines)
	}
	if !result.Blurred {
		t.Error("expected the card to be blurred")
	}
	if result.Geometry.Scale != 1 {
		t.Errorf("expected scale 1, got %v", result.Geometry.Scale)
	}
	if result.FileSize != int64(len(data)) {
		t.Errorf("expected file size %d, got %d", len(data), result.FileSize)
	}
	if env.notifier.Count() != 0 {
		t.Errorf("expected no notices, got %v", env.notifier.Messages)
	}
}

func TestOrchestrator_Run_ExplicitOutputPath(t *testing.T) {
	env := newTestEnv(t, nil, false)

	_, err := env.orch.Run(context.Background(), Config{
		ImageData:  photo(t, 300, 150),
		OutputPath: "exports/custom.png",
		Render: pipeline.RenderConfig{
			Text:        "Hi",
			FixedWidth:  600,
			FixedHeight: 200,
			Focal:       pipeline.DefaultFocal(),
			NoiseSeed:   1,
		},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if _, ok := env.fs.GetFile("exports/custom.png"); !ok {
		t.Error("expected output at the explicit path")
	}
	if paths := env.fs.Paths(); len(paths) != 1 {
		t.Errorf("expected exactly one file, got %v", paths)
	}
}

func TestOrchestrator_Run_ImagePath(t *testing.T) {
	env := newTestEnv(t, nil, false)
	env.fs.WriteFile("photo.png", photo(t, 400, 200))

	result, err := env.orch.Run(context.Background(), Config{
		ImagePath: "photo.png",
		Render: pipeline.RenderConfig{
			Text:      "From disk",
			Focal:     pipeline.DefaultFocal(),
			NoiseSeed: 1,
		},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// No fixed size: the target follows the natural image size.
	if result.Geometry.Target.Width != 400 || result.Geometry.Target.Height != 200 {
		t.Errorf("expected 400x200, got %+v", result.Geometry.Target)
	}
	if result.OutputPath != "banner_400x200_2026-10-18.png" {
		t.Errorf("unexpected output path %s", result.OutputPath)
	}
}

func TestOrchestrator_Run_Failures(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "no background image",
			config:  Config{OutputDir: "out"},
			wantErr: pipeline.ErrMissingAsset,
		},
		{
			name:    "missing image file",
			config:  Config{ImagePath: "nope.png"},
			wantErr: pipeline.ErrAssetLoad,
		},
		{
			name:    "undecodable image",
			config:  Config{ImageData: []byte("definitely not an image")},
			wantErr: pipeline.ErrAssetLoad,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, nil, false)
			tt.config.Render = pipeline.RenderConfig{Text: "x", Focal: pipeline.DefaultFocal()}

			_, err := env.orch.Run(context.Background(), tt.config)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if env.notifier.Count() != 1 {
				t.Errorf("expected exactly one notice, got %v", env.notifier.Messages)
			}
			if n := len(env.fs.GetAllFiles()); n != 0 {
				t.Errorf("expected no files, got %d", n)
			}
		})
	}
}

func TestOrchestrator_Run_MeasureError(t *testing.T) {
	meter := &mocks.LayoutMeter{Err: pipeline.ErrInvalidPreview}
	env := newTestEnv(t, meter, false)

	_, err := env.orch.Run(context.Background(), Config{
		ImageData: photo(t, 100, 50),
		Render:    pipeline.RenderConfig{Focal: pipeline.DefaultFocal()},
	})
	if !errors.Is(err, pipeline.ErrInvalidPreview) {
		t.Fatalf("expected ErrInvalidPreview, got %v", err)
	}
	if env.notifier.Count() != 1 {
		t.Errorf("expected one notice, got %d", env.notifier.Count())
	}
}

func TestOrchestrator_Run_PreviewRequest(t *testing.T) {
	meter := &mocks.LayoutMeter{Err: errors.New("stop")}
	env := newTestEnv(t, meter, false)

	env.orch.Run(context.Background(), Config{
		ImageData: photo(t, 120, 60),
		Render: pipeline.RenderConfig{
			Text:       "Caption",
			TintColor:  pipeline.RGB{R: 1, G: 2, B: 3},
			FixedWidth: 900,
			Focal:      pipeline.Focal{X: 10, Y: 90},
		},
	})

	if len(meter.Requests) != 1 {
		t.Fatalf("expected one measurement, got %d", len(meter.Requests))
	}
	req := meter.Requests[0]
	if req.Width != 900 || req.Height != 0 {
		t.Errorf("expected fixed width 900 and auto height, got %vx%v", req.Width, req.Height)
	}
	if req.Natural != (pipeline.Dimension{Width: 120, Height: 60}) {
		t.Errorf("unexpected natural size %+v", req.Natural)
	}
	if req.Text != "Caption" || req.TintColor.B != 3 || req.Focal.X != 10 {
		t.Errorf("request does not mirror the render config: %+v", req)
	}
	if len(req.ImageData) == 0 {
		t.Error("expected image data to be forwarded")
	}
}

func TestOrchestrator_Run_Cancelled(t *testing.T) {
	env := newTestEnv(t, nil, false)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := env.orch.Run(ctx, Config{
		ImageData: photo(t, 100, 50),
		Render:    pipeline.RenderConfig{Focal: pipeline.DefaultFocal()},
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if env.notifier.Count() != 0 {
		t.Error("expected cancellation to stay silent")
	}
	if n := len(env.fs.GetAllFiles()); n != 0 {
		t.Errorf("expected no files, got %d", n)
	}
}

func TestOrchestrator_Run_WriteError(t *testing.T) {
	env := newTestEnv(t, nil, false)
	env.fs.WriteFileFunc = func(path string, data []byte) error {
		return errors.New("disk full")
	}

	_, err := env.orch.Run(context.Background(), Config{
		ImageData: photo(t, 200, 100),
		Render:    pipeline.RenderConfig{Focal: pipeline.DefaultFocal(), NoiseSeed: 1},
	})
	if err == nil {
		t.Fatal("expected write error")
	}
	if env.notifier.Count() != 1 {
		t.Errorf("expected one notice, got %d", env.notifier.Count())
	}
}

func TestOrchestrator_Run_Deterministic(t *testing.T) {
	config := Config{
		ImageData:  photo(t, 320, 160),
		OutputPath: "a.png",
		Render: pipeline.RenderConfig{
			Text:        "Same\nEvery Time",
			TextColor:   pipeline.White,
			TintColor:   pipeline.RGB{R: 40, G: 90, B: 200},
			FixedWidth:  640,
			FixedHeight: 240,
			Focal:       pipeline.Focal{X: 20, Y: 80},
			NoiseSeed:   99,
		},
	}

	first := newTestEnv(t, nil, false)
	if _, err := first.orch.Run(context.Background(), config); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second := newTestEnv(t, nil, false)
	if _, err := second.orch.Run(context.Background(), config); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	a, _ := first.fs.GetFile("a.png")
	b, _ := second.fs.GetFile("a.png")
	if !bytes.Equal(a, b) {
		t.Error("expected identical output for the same inputs and noise seed")
	}
}

func TestOrchestrator_Run_DebugSink(t *testing.T) {
	env := newTestEnv(t, nil, true)

	result, err := env.orch.Run(context.Background(), Config{
		ImageData: photo(t, 400, 200),
		Render: pipeline.RenderConfig{
			Text:      "Debug",
			Focal:     pipeline.DefaultFocal(),
			NoiseSeed: 3,
		},
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(env.sink.PreviewJSON) == 0 {
		t.Error("expected preview JSON")
	}
	if len(env.sink.GeometryJSON) == 0 {
		t.Error("expected geometry JSON")
	}
	if env.sink.Background == nil {
		t.Error("expected background image")
	}
	if len(env.sink.Layers) != result.LayerCount {
		t.Errorf("expected %d saved layers, got %d", result.LayerCount, len(env.sink.Layers))
	}
}

func TestOrchestrator_Run_Serialized(t *testing.T) {
	var active, peak int32
	inner := staticlayout.New(staticlayout.DefaultStyle())
	meter := &mocks.LayoutMeter{
		MeasureFn: func(ctx context.Context, req pipeline.PreviewRequest) (pipeline.PreviewLayout, error) {
			n := atomic.AddInt32(&active, 1)
			defer atomic.AddInt32(&active, -1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			return inner.Measure(ctx, req)
		},
	}
	env := newTestEnv(t, meter, false)
	data := photo(t, 200, 100)

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			env.orch.Run(context.Background(), Config{
				ImageData: data,
				Render:    pipeline.RenderConfig{Text: "x", Focal: pipeline.DefaultFocal(), NoiseSeed: 1},
			})
		}()
	}
	wg.Wait()

	if peak != 1 {
		t.Errorf("expected runs to be serialized, peak concurrency %d", peak)
	}
}

func TestFileName(t *testing.T) {
	got := FileName(pipeline.Dimension{Width: 1200, Height: 600}, fixedNow)
	if got != "banner_1200x600_2026-10-18.png" {
		t.Errorf("unexpected file name %s", got)
	}
}
