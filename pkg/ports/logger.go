// Package ports defines the Logger interface used across the export pipeline.
package ports

import "strings"

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	// LevelDebug carries per-stage details such as crop placement and blur radius.
	LevelDebug LogLevel = iota
	// LevelInfo carries export progress reported by the orchestrator.
	LevelInfo
	// LevelWarn reports a degraded export, for example a missing preview measurement.
	LevelWarn
	// LevelError reports a failure that aborts the export.
	LevelError
	// LevelQuiet suppresses all log output.
	LevelQuiet
)

// Component names passed to Logger.WithComponent by the pipeline stages.
const (
	ComponentGeometry  = "geometry"
	ComponentCrop      = "crop"
	ComponentGlass     = "glass"
	ComponentCaption   = "caption"
	ComponentComposite = "composite"
	ComponentPreview   = "preview"
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelQuiet:
		return "quiet"
	default:
		return "unknown"
	}
}

// ParseLogLevel parses a --log-level value. Matching ignores case and
// surrounding spaces, "warning" is accepted for warn, and anything
// unrecognised falls back to info.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "quiet":
		return LevelQuiet
	default:
		return LevelInfo
	}
}

// Logger abstracts logging for the export pipeline. Messages are go-l10n
// keys, so implementations translate msg before formatting it with args.
type Logger interface {
	// Debug logs stage internals.
	Debug(msg string, args ...interface{})

	// Info logs export progress.
	Info(msg string, args ...interface{})

	// Warn logs a problem the export recovered from.
	Warn(msg string, args ...interface{})

	// Error logs a problem that aborted the export.
	Error(msg string, args ...interface{})

	// WithComponent returns a Logger that tags messages with a stage name.
	// Calling it on a tagged logger nests the names, e.g. "preview/chrome".
	WithComponent(component string) Logger
}

// JoinComponent nests child under parent with a slash. An empty side is
// dropped.
func JoinComponent(parent, child string) string {
	switch {
	case parent == "":
		return child
	case child == "":
		return parent
	default:
		return parent + "/" + child
	}
}
