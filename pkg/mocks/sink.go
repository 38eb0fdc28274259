package mocks

import (
	"image"
	"sync"

	"github.com/user/glassbanner/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	PreviewJSON  []byte
	GeometryJSON []byte
	Background   image.Image
	Layers       map[int]image.Image
	LayerNames   map[int]string
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled:    enabled,
		Layers:     make(map[int]image.Image),
		LayerNames: make(map[int]string),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SavePreviewJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PreviewJSON = data
	return nil
}

func (m *DebugSink) SaveGeometryJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GeometryJSON = data
	return nil
}

func (m *DebugSink) SaveBackground(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Background = img
	return nil
}

func (m *DebugSink) SaveLayer(index int, name string, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Layers[index] = img
	m.LayerNames[index] = name
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)

// NullSink is a no-op implementation of ports.DebugSink.
type NullSink struct{}

func (m *NullSink) Enabled() bool                                           { return false }
func (m *NullSink) SavePreviewJSON(data []byte) error                       { return nil }
func (m *NullSink) SaveGeometryJSON(data []byte) error                      { return nil }
func (m *NullSink) SaveBackground(img image.Image) error                    { return nil }
func (m *NullSink) SaveLayer(index int, name string, img image.Image) error { return nil }

var _ ports.DebugSink = (*NullSink)(nil)
