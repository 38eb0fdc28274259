package summarizer

import (
	"fmt"
	"strings"
)

// Translator maps a label to its localized form.
type Translator func(key string) string

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator localizes headings and labels.
func WithTranslator(t Translator) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.t = t
	}
}

// MarkdownFormatter renders a Summary as Markdown tables.
type MarkdownFormatter struct {
	t Translator
}

// NewMarkdownFormatter creates a formatter. Labels stay in English unless a
// translator is given.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{t: func(key string) string { return key }}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements the Formatter interface.
func (f *MarkdownFormatter) Format(s *Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", f.t("Export Summary"))
	fmt.Fprintf(&b, "%s: %s\n\n", f.t("Generated"), s.GeneratedAt.Format("2006-01-02 15:04:05"))

	f.section(&b, "Output", [][2]string{
		{"File", s.Output.Path},
		{"Banner Size", fmt.Sprintf("%dx%d", s.Output.Width, s.Output.Height)},
		{"File Size", formatBytes(s.Output.FileSize)},
		{"Render Time", fmt.Sprintf("%d ms", s.Output.DurationMs)},
	})

	f.section(&b, "Content", [][2]string{
		{"Caption", strings.ReplaceAll(s.Content.Text, "\n", " / ")},
		{"Lines", fmt.Sprintf("%d", s.Content.Lines)},
		{"Text Color", s.Content.TextColor},
		{"Tint Color", s.Content.TintColor},
	})

	g := s.Geometry
	f.section(&b, "Geometry", [][2]string{
		{"Source Image", fmt.Sprintf("%dx%d", g.SourceWidth, g.SourceHeight)},
		{"Preview Size", fmt.Sprintf("%.0fx%.0f", g.PreviewWidth, g.PreviewHeight)},
		{"Scale", fmt.Sprintf("%.3f", g.Scale)},
		{"Card", fmt.Sprintf("%.1f,%.1f %.1fx%.1f", g.Card.X, g.Card.Y, g.Card.Width, g.Card.Height)},
		{"Card Radius", fmt.Sprintf("%.1f px", g.CardRadius)},
		{"Font Size", fmt.Sprintf("%.1f px", g.FontSize)},
		{"Blur Radius", fmt.Sprintf("%.1f px", g.BlurRadius)},
		{"Focal Point", fmt.Sprintf("%.0f%% / %.0f%%", g.FocalX, g.FocalY)},
	})

	blur := f.t("Applied")
	if !s.Effects.Blurred {
		blur = f.t("Unavailable")
	}
	f.section(&b, "Effects", [][2]string{
		{"Backdrop Blur", blur},
		{"Layers", fmt.Sprintf("%d", s.Effects.Layers)},
	})

	fmt.Fprintf(&b, "---\n%s glassbanner\n", f.t("Generated by"))
	return b.String()
}

func (f *MarkdownFormatter) section(b *strings.Builder, title string, rows [][2]string) {
	fmt.Fprintf(b, "## %s\n\n", f.t(title))
	fmt.Fprintf(b, "| %s | %s |\n|------|-------|\n", f.t("Item"), f.t("Value"))
	for _, row := range rows {
		fmt.Fprintf(b, "| %s | %s |\n", f.t(row[0]), escapeCell(row[1]))
	}
	b.WriteString("\n")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func formatBytes(n int64) string {
	switch {
	case n >= 1024*1024:
		return fmt.Sprintf("%.2f MB", float64(n)/1024/1024)
	case n >= 1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%d B", n)
	}
}

var _ Formatter = (*MarkdownFormatter)(nil)
