package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
// It allows saving intermediate render layers for debugging purposes.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SavePreviewJSON saves the measured preview layout as JSON.
	SavePreviewJSON(data []byte) error

	// SaveGeometryJSON saves the resolved export geometry as JSON.
	SaveGeometryJSON(data []byte) error

	// SaveBackground saves the cover-cropped background.
	SaveBackground(img image.Image) error

	// SaveLayer saves one named render layer.
	SaveLayer(index int, name string, img image.Image) error
}
