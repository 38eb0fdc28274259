// Package fontface provides caption font faces backed by OpenType fonts.
package fontface

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"

	"github.com/user/glassbanner/pkg/ports"
)

// dpi makes one point equal one pixel, matching CSS px font sizes.
const dpi = 72

// Provider implements ports.FontProvider for a single parsed font.
// Faces are cached per pixel size.
type Provider struct {
	font *opentype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

// New returns a provider for the embedded Go Bold face, the closest match to
// the preview's 700-weight sans-serif caption.
func New() *Provider {
	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		// The embedded font is a compile-time asset.
		panic(fmt.Sprintf("fontface: parse embedded font: %v", err))
	}
	return &Provider{font: f, faces: make(map[float64]font.Face)}
}

// FromFile loads a TrueType or OpenType font through fs.
func FromFile(fs ports.FileSystem, path string) (*Provider, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	return &Provider{font: f, faces: make(map[float64]font.Face)}, nil
}

// Face returns the face at size pixels.
func (p *Provider) Face(size float64) (font.Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid font size %v", size)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if face, ok := p.faces[size]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(p.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	p.faces[size] = face
	return face, nil
}

// Ensure Provider implements ports.FontProvider
var _ ports.FontProvider = (*Provider)(nil)
