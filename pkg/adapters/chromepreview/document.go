package chromepreview

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"net/http"

	"github.com/user/glassbanner/pkg/adapters/staticlayout"
	"github.com/user/glassbanner/pkg/pipeline"
)

// DocumentVars contains variables for the preview HTML document.
type DocumentVars struct {
	BoxWidth   float64
	BoxHeight  float64
	Background template.URL
	FocalX     float64
	FocalY     float64
	CardInset  float64
	CardRadius float64
	TintStart  template.CSS
	TintEnd    template.CSS
	BlurRadius float64
	FontSize   float64
	FontWeight int
	TextColor  template.CSS
	Caption    string
}

// NewDocumentVars derives template variables from a preview request.
func NewDocumentVars(req pipeline.PreviewRequest, style staticlayout.Style, blurRadius float64) DocumentVars {
	w, h := staticlayout.New(style).BoxSize(req)
	focal := req.Focal.Clamped()

	vars := DocumentVars{
		BoxWidth:   w,
		BoxHeight:  h,
		FocalX:     focal.X,
		FocalY:     focal.Y,
		CardInset:  style.CardInset,
		CardRadius: style.CardRadius,
		TintStart:  rgba(req.TintColor, 0.25),
		TintEnd:    rgba(req.TintColor, 0.15),
		BlurRadius: blurRadius,
		FontSize:   style.FontSize,
		FontWeight: style.FontWeight,
		TextColor:  template.CSS(fmt.Sprintf("rgb(%d, %d, %d)", req.TextColor.R, req.TextColor.G, req.TextColor.B)),
		Caption:    req.Text,
	}
	if len(req.ImageData) > 0 {
		mime := http.DetectContentType(req.ImageData)
		vars.Background = template.URL("data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(req.ImageData))
	}
	return vars
}

func rgba(c pipeline.RGB, alpha float64) template.CSS {
	return template.CSS(fmt.Sprintf("rgba(%d, %d, %d, %.2f)", c.R, c.G, c.B, alpha))
}

// RenderDocument renders the preview HTML with the given variables.
func RenderDocument(vars DocumentVars) (string, error) {
	tmpl, err := template.New("preview").Parse(documentTemplate)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}

// documentTemplate is the live preview: a cover-cropped background with the
// frosted card inset on every side and the caption centered inside it.
const documentTemplate = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <style>
      * {
        margin: 0;
        padding: 0;
        box-sizing: border-box;
      }
      body {
        font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif;
        background: transparent;
      }
      .banner {
        position: relative;
        overflow: hidden;
        width: {{.BoxWidth}}px;
        height: {{.BoxHeight}}px;
        background-color: #e5e5e5;
        {{- if .Background}}
        background-image: url("{{.Background}}");
        background-size: cover;
        background-position: {{.FocalX}}% {{.FocalY}}%;
        {{- end}}
      }
      .card {
        position: absolute;
        inset: {{.CardInset}}px;
        display: flex;
        align-items: center;
        justify-content: center;
        border-radius: {{.CardRadius}}px;
        border: 1px solid rgba(255, 255, 255, 0.3);
        background: linear-gradient(135deg, {{.TintStart}}, {{.TintEnd}});
        backdrop-filter: blur({{.BlurRadius}}px) saturate(180%);
        box-shadow: 0 2px 4px rgba(10, 10, 10, 0.1), 0 8px 16px rgba(10, 10, 10, 0.2), 0 16px 48px rgba(10, 10, 10, 0.3);
      }
      .caption {
        font-size: {{.FontSize}}px;
        font-weight: {{.FontWeight}};
        line-height: 1.2;
        text-align: center;
        white-space: pre-line;
        color: {{.TextColor}};
      }
    </style>
  </head>
  <body>
    <div class="banner">
      <div class="card">
        <div class="caption">{{.Caption}}</div>
      </div>
    </div>
  </body>
</html>`
