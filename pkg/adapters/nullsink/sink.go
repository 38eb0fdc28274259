// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"image"

	"github.com/user/glassbanner/pkg/ports"
)

// Sink is a no-op implementation of ports.DebugSink.
// It discards all debug output.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SavePreviewJSON does nothing.
func (s *Sink) SavePreviewJSON(data []byte) error {
	return nil
}

// SaveGeometryJSON does nothing.
func (s *Sink) SaveGeometryJSON(data []byte) error {
	return nil
}

// SaveBackground does nothing.
func (s *Sink) SaveBackground(img image.Image) error {
	return nil
}

// SaveLayer does nothing.
func (s *Sink) SaveLayer(index int, name string, img image.Image) error {
	return nil
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
