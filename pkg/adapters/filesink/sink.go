// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/glassbanner/pkg/ports"
)

// Sink saves debug output to files.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SavePreviewJSON saves the measured preview layout as JSON.
func (s *Sink) SavePreviewJSON(data []byte) error {
	path := filepath.Join(s.baseDir, "preview.json")
	return s.fs.WriteFile(path, data)
}

// SaveGeometryJSON saves the resolved export geometry as JSON.
func (s *Sink) SaveGeometryJSON(data []byte) error {
	path := filepath.Join(s.baseDir, "geometry.json")
	return s.fs.WriteFile(path, data)
}

// SaveBackground saves the cover-cropped background.
func (s *Sink) SaveBackground(img image.Image) error {
	data, err := s.renderer.EncodePNG(img)
	if err != nil {
		return fmt.Errorf("encode background: %w", err)
	}
	path := filepath.Join(s.baseDir, "background.png")
	return s.fs.WriteFile(path, data)
}

// SaveLayer saves one render layer.
func (s *Sink) SaveLayer(index int, name string, img image.Image) error {
	dir := filepath.Join(s.baseDir, "layers")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	data, err := s.renderer.EncodePNG(img)
	if err != nil {
		return fmt.Errorf("encode layer %s: %w", name, err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%02d-%s.png", index, name))
	return s.fs.WriteFile(path, data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
