package composite

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"testing"

	"github.com/user/glassbanner/pkg/adapters/ggrenderer"
	"github.com/user/glassbanner/pkg/adapters/logger"
	"github.com/user/glassbanner/pkg/mocks"
	"github.com/user/glassbanner/pkg/pipeline"
	"github.com/user/glassbanner/pkg/raster"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func background(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestStage_Execute(t *testing.T) {
	sink := mocks.NewDebugSink(true)
	stage := NewStage(ggrenderer.New(), sink, logger.NewNoop(), 4)

	bg := background(200, 100, color.RGBA{R: 200, G: 200, B: 200, A: 255})
	input := pipeline.CompositeInput{
		Background: bg,
		Layers: []pipeline.Layer{
			{Name: "white", Image: solid(50, 50, color.NRGBA{R: 255, G: 255, B: 255, A: 255}), At: image.Pt(10, 10), Mode: raster.BlendNormal, Opacity: 1},
			{Name: "gray", Image: solid(50, 50, color.NRGBA{R: 128, G: 128, B: 128, A: 255}), At: image.Pt(30, 30), Mode: raster.BlendMultiply, Opacity: 1},
		},
	}

	result, err := stage.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Image.Bounds() != image.Rect(0, 0, 200, 100) {
		t.Fatalf("expected 200x100 output, got %v", result.Image.Bounds())
	}

	tests := []struct {
		name string
		x, y int
		want uint8
	}{
		{"untouched", 5, 5, 200},
		{"white only", 15, 15, 255},
		{"white then multiply", 40, 40, 128},
		{"multiply over background", 70, 70, 100},
	}
	for _, tt := range tests {
		if got := result.Image.RGBAAt(tt.x, tt.y).R; got != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.name, tt.want, got)
		}
	}

	// The background itself is left alone.
	if bg.RGBAAt(15, 15).R != 200 {
		t.Error("expected input background to be unchanged")
	}

	decoded, err := png.Decode(bytes.NewReader(result.PNG))
	if err != nil {
		t.Fatalf("expected valid PNG: %v", err)
	}
	if decoded.Bounds().Dx() != 200 || decoded.Bounds().Dy() != 100 {
		t.Errorf("PNG size: got %v", decoded.Bounds())
	}

	if sink.LayerNames[0] != "white" || sink.LayerNames[1] != "gray" {
		t.Errorf("expected debug layers to be saved in order, got %v", sink.LayerNames)
	}
}

func TestStage_Execute_WorkersAgree(t *testing.T) {
	bg := background(300, 257, color.RGBA{R: 30, G: 90, B: 150, A: 255})
	layer := pipeline.Layer{
		Name:    "noise",
		Image:   raster.NoiseField(280, 240, rand.New(rand.NewSource(3))),
		At:      image.Pt(7, 9),
		Mode:    raster.BlendOverlay,
		Opacity: 0.15,
	}
	input := pipeline.CompositeInput{Background: bg, Layers: []pipeline.Layer{layer}}

	single, err := NewStage(ggrenderer.New(), &mocks.NullSink{}, logger.NewNoop(), 1).Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parallel, err := NewStage(ggrenderer.New(), &mocks.NullSink{}, logger.NewNoop(), 8).Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bytes.Equal(single.Image.Pix, parallel.Image.Pix) {
		t.Error("banded composition must match single-threaded composition")
	}
}

func TestStage_Execute_ClipMismatch(t *testing.T) {
	stage := NewStage(ggrenderer.New(), &mocks.NullSink{}, logger.NewNoop(), 1)

	_, err := stage.Execute(context.Background(), pipeline.CompositeInput{
		Background: background(10, 10, color.RGBA{A: 255}),
		Layers: []pipeline.Layer{{
			Name:    "bad",
			Image:   solid(4, 4, color.NRGBA{A: 255}),
			Clip:    image.NewAlpha(image.Rect(0, 0, 3, 3)),
			Opacity: 1,
		}},
	})
	if err == nil {
		t.Error("expected error for mismatched clip")
	}
}

func TestStage_Execute_Cancelled(t *testing.T) {
	stage := NewStage(ggrenderer.New(), &mocks.NullSink{}, logger.NewNoop(), 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := stage.Execute(ctx, pipeline.CompositeInput{
		Background: background(10, 10, color.RGBA{A: 255}),
		Layers:     []pipeline.Layer{{Name: "a", Image: solid(2, 2, color.NRGBA{A: 255}), Opacity: 1}},
	})
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestBands(t *testing.T) {
	tests := []struct {
		name string
		area image.Rectangle
		n    int
		want int
	}{
		{"small area stays whole", image.Rect(0, 0, 100, 40), 8, 1},
		{"split by workers", image.Rect(0, 10, 100, 330), 4, 4},
		{"limited by band height", image.Rect(0, 0, 100, 100), 8, 3},
		{"zero workers", image.Rect(0, 0, 100, 500), 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bands := Bands(tt.area, tt.n)
			if len(bands) != tt.want {
				t.Fatalf("expected %d bands, got %d", tt.want, len(bands))
			}
			covered := 0
			for i, b := range bands {
				covered += b.Dy()
				if i > 0 && b.Min.Y != bands[i-1].Max.Y {
					t.Errorf("band %d does not follow band %d", i, i-1)
				}
			}
			if covered != tt.area.Dy() {
				t.Errorf("bands cover %d rows, want %d", covered, tt.area.Dy())
			}
		})
	}
}
