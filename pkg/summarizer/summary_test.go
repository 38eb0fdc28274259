package summarizer

import (
	"testing"
	"time"

	"github.com/user/glassbanner/pkg/orchestrator"
	"github.com/user/glassbanner/pkg/pipeline"
)

func TestNewSummary(t *testing.T) {
	before := time.Now()
	summary := NewSummary()
	after := time.Now()

	if summary.GeneratedAt.Before(before) || summary.GeneratedAt.After(after) {
		t.Errorf("GeneratedAt should be between %v and %v, got %v",
			before, after, summary.GeneratedAt)
	}
}

func TestBuilder_WithGeneratedAt(t *testing.T) {
	at := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	if got := NewBuilder().WithGeneratedAt(at).Build().GeneratedAt; !got.Equal(at) {
		t.Errorf("expected %v, got %v", at, got)
	}
	if got := NewBuilder().WithGeneratedAt(time.Time{}).Build().GeneratedAt; got.IsZero() {
		t.Error("expected zero time to keep the current timestamp")
	}
}

func TestBuilder_Sections(t *testing.T) {
	summary := NewBuilder().
		WithOutput(OutputInfo{Path: "out.png", Width: 1200, Height: 600}).
		WithContent(ContentInfo{Text: "Hi", Lines: 1}).
		WithGeometry(GeometryInfo{Scale: 1.2}).
		WithEffects(EffectsInfo{Blurred: true, Layers: 19}).
		Build()

	if summary.Output.Path != "out.png" || summary.Output.Width != 1200 {
		t.Errorf("unexpected output %+v", summary.Output)
	}
	if summary.Content.Lines != 1 {
		t.Errorf("unexpected content %+v", summary.Content)
	}
	if summary.Geometry.Scale != 1.2 {
		t.Errorf("unexpected geometry %+v", summary.Geometry)
	}
	if !summary.Effects.Blurred || summary.Effects.Layers != 19 {
		t.Errorf("unexpected effects %+v", summary.Effects)
	}
}

func TestFromRunResult(t *testing.T) {
	generated := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	result := orchestrator.RunResult{
		OutputPath: "banner_1200x600_2026-10-18.png",
		Generated:  generated,
		Duration:   150 * time.Millisecond,
		Natural:    pipeline.Dimension{Width: 1200, Height: 800},
		Preview: pipeline.PreviewLayout{
			Banner: pipeline.LayoutRect{Width: 1000, Height: 500},
		},
		Geometry: pipeline.Geometry{
			Target:     pipeline.Dimension{Width: 1200, Height: 600},
			Scale:      1.2,
			Card:       pipeline.LayoutRect{X: 28.8, Y: 28.8, Width: 1142.4, Height: 542.4},
			CardRadius: 19.2,
			FontSize:   57.6,
			BlurRadius: 14.4,
		},
		Focal:        pipeline.DefaultFocal(),
		Text:         "Sample",
		TextColor:    pipeline.White,
		TintColor:    pipeline.RGB{R: 0x33, G: 0x66, B: 0x99},
		CaptionLines: 1,
		LayerCount:   19,
		Blurred:      true,
		FileSize:     2048,
	}

	s := FromRunResult(result)

	if !s.GeneratedAt.Equal(generated) {
		t.Errorf("unexpected timestamp %v", s.GeneratedAt)
	}
	if s.Output.Width != 1200 || s.Output.Height != 600 || s.Output.DurationMs != 150 {
		t.Errorf("unexpected output %+v", s.Output)
	}
	if s.Content.TextColor != "#ffffff" || s.Content.TintColor != "#336699" {
		t.Errorf("unexpected colours %+v", s.Content)
	}
	if s.Geometry.SourceWidth != 1200 || s.Geometry.PreviewWidth != 1000 || s.Geometry.Scale != 1.2 {
		t.Errorf("unexpected geometry %+v", s.Geometry)
	}
	if s.Geometry.FocalX != 50 || s.Geometry.FocalY != 50 {
		t.Errorf("unexpected focal point %+v", s.Geometry)
	}
	if !s.Effects.Blurred || s.Effects.Layers != 19 {
		t.Errorf("unexpected effects %+v", s.Effects)
	}
}

func TestHex(t *testing.T) {
	if got := Hex(pipeline.RGB{R: 1, G: 171, B: 255}); got != "#01abff" {
		t.Errorf("got %s", got)
	}
}
