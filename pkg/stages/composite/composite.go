// Package composite implements the final layer composition stage.
package composite

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"runtime"
	"sync"

	"github.com/user/glassbanner/pkg/pipeline"
	"github.com/user/glassbanner/pkg/ports"
	"github.com/user/glassbanner/pkg/raster"
)

// minBandHeight keeps bands large enough that scheduling stays cheap.
const minBandHeight = 32

// Stage flattens the background and all layers into the banner and encodes it.
type Stage struct {
	renderer   ports.Renderer
	sink       ports.DebugSink
	logger     ports.Logger
	numWorkers int
}

// NewStage creates a new composite stage.
func NewStage(renderer ports.Renderer, sink ports.DebugSink, logger ports.Logger, numWorkers int) *Stage {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &Stage{
		renderer:   renderer,
		sink:       sink,
		logger:     logger.WithComponent(ports.ComponentComposite),
		numWorkers: numWorkers,
	}
}

// Execute draws the layers in order over a copy of the background.
// Layers are drawn one after another; each layer is blended in horizontal
// bands by a worker pool.
func (s *Stage) Execute(ctx context.Context, input pipeline.CompositeInput) (pipeline.CompositeResult, error) {
	if input.Background == nil {
		return pipeline.CompositeResult{}, fmt.Errorf("no background")
	}

	b := input.Background.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), input.Background, b.Min, draw.Src)

	s.logger.Debug("Compositing %d layers with %d workers", len(input.Layers), s.numWorkers)

	for i, layer := range input.Layers {
		if err := ctx.Err(); err != nil {
			return pipeline.CompositeResult{}, err
		}
		if layer.Image == nil {
			continue
		}
		if layer.Clip != nil && layer.Clip.Bounds().Size() != layer.Image.Bounds().Size() {
			return pipeline.CompositeResult{}, fmt.Errorf("layer %s: clip %v does not match image %v",
				layer.Name, layer.Clip.Bounds().Size(), layer.Image.Bounds().Size())
		}

		s.draw(out, layer)

		if s.sink.Enabled() {
			s.sink.SaveLayer(i, layer.Name, layer.Image)
		}
	}

	data, err := s.renderer.EncodePNG(out)
	if err != nil {
		return pipeline.CompositeResult{}, fmt.Errorf("encode banner: %w", err)
	}

	s.logger.Debug("Composition completed: %dx%d, %d bytes", b.Dx(), b.Dy(), len(data))
	return pipeline.CompositeResult{Image: out, PNG: data}, nil
}

// draw blends one layer into dst, splitting the covered rows into bands.
func (s *Stage) draw(dst *image.RGBA, layer pipeline.Layer) {
	area := image.Rectangle{Min: layer.At, Max: layer.At.Add(layer.Image.Bounds().Size())}.Intersect(dst.Bounds())
	if area.Empty() {
		return
	}

	bands := Bands(area, s.numWorkers)
	if len(bands) == 1 {
		raster.Composite(dst, layer.At, layer.Image, layer.Clip, layer.Mode, layer.Opacity)
		return
	}

	jobs := make(chan image.Rectangle, len(bands))
	for _, band := range bands {
		jobs <- band
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < s.numWorkers && w < len(bands); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for band := range jobs {
				sub := dst.SubImage(band).(*image.RGBA)
				raster.Composite(sub, layer.At, layer.Image, layer.Clip, layer.Mode, layer.Opacity)
			}
		}()
	}
	wg.Wait()
}

// Bands splits area into at most n horizontal strips of similar height.
func Bands(area image.Rectangle, n int) []image.Rectangle {
	h := area.Dy()
	if n < 1 {
		n = 1
	}
	if limit := h / minBandHeight; n > limit {
		n = limit
	}
	if n <= 1 {
		return []image.Rectangle{area}
	}

	bands := make([]image.Rectangle, 0, n)
	step := (h + n - 1) / n
	for y := area.Min.Y; y < area.Max.Y; y += step {
		end := y + step
		if end > area.Max.Y {
			end = area.Max.Y
		}
		bands = append(bands, image.Rect(area.Min.X, y, area.Max.X, end))
	}
	return bands
}
