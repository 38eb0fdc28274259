package summarizer

import (
	"strings"
	"testing"
	"time"

	"github.com/user/glassbanner/pkg/pipeline"
)

func sampleSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Output: OutputInfo{
			Path:       "exports/banner_1600x360_2024-01-15.png",
			Width:      1600,
			Height:     360,
			FileSize:   1024 * 1024,
			DurationMs: 420,
		},
		Content: ContentInfo{
			Text:      "Sample\nBanner Text",
			Lines:     2,
			TextColor: "#ffffff",
			TintColor: "#ffffff",
		},
		Geometry: GeometryInfo{
			SourceWidth:   1920,
			SourceHeight:  1080,
			PreviewWidth:  1600,
			PreviewHeight: 360,
			Scale:         1,
			Card:          pipeline.LayoutRect{X: 24, Y: 24, Width: 1552, Height: 312},
			CardRadius:    16,
			FontSize:      48,
			BlurRadius:    12,
			FocalX:        50,
			FocalY:        50,
		},
		Effects: EffectsInfo{Blurred: true, Layers: 19},
	}
}

func TestMarkdownFormatter_Format_Basic(t *testing.T) {
	result := NewMarkdownFormatter().Format(sampleSummary())

	checks := []string{
		"# Export Summary",
		"2024-01-15 10:30:00",
		"banner_1600x360_2024-01-15.png",
		"1600x360",
		"1.00 MB",
		"420 ms",
		"Sample / Banner Text",
		"1920x1080",
		"1.000",
		"24.0,24.0 1552.0x312.0",
		"12.0 px",
		"50% / 50%",
		"Applied",
		"| Layers | 19 |",
	}

	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q", check)
		}
	}
}

func TestMarkdownFormatter_Format_BlurUnavailable(t *testing.T) {
	s := sampleSummary()
	s.Effects.Blurred = false

	result := NewMarkdownFormatter().Format(s)

	if !strings.Contains(result, "| Backdrop Blur | Unavailable |") {
		t.Error("expected degraded blur to be reported")
	}
}

func TestMarkdownFormatter_EscapesPipes(t *testing.T) {
	s := sampleSummary()
	s.Content.Text = "A | B"

	result := NewMarkdownFormatter().Format(s)

	if !strings.Contains(result, `A \| B`) {
		t.Error("expected pipe in caption to be escaped")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 * 1024 * 1024, "3.00 MB"},
	}

	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %s, want %s", tt.n, got, tt.want)
		}
	}
}

func TestMarkdownFormatter_WithTranslator(t *testing.T) {
	translator := func(key string) string {
		translations := map[string]string{
			"Export Summary": "書き出しサマリー",
			"Caption":        "キャプション",
			"Applied":        "適用",
		}
		if v, ok := translations[key]; ok {
			return v
		}
		return key
	}

	result := NewMarkdownFormatter(WithTranslator(translator)).Format(sampleSummary())

	for _, want := range []string{"# 書き出しサマリー", "| キャプション |", "| 適用 |"} {
		if !strings.Contains(result, want) {
			t.Errorf("expected translated output to contain %q", want)
		}
	}
	if strings.Contains(result, "Export Summary") {
		t.Error("expected untranslated heading to be replaced")
	}
}

func TestFormatFunc(t *testing.T) {
	var f Formatter = FormatFunc(func(s *Summary) string { return s.Output.Path })

	if got := f.Format(sampleSummary()); got != "exports/banner_1600x360_2024-01-15.png" {
		t.Errorf("got %s", got)
	}
}
