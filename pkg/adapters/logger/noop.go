package logger

import "github.com/user/glassbanner/pkg/ports"

// NoopLogger backs --quiet. Notices still reach the user through the
// Notifier; only pipeline progress is dropped.
type NoopLogger struct{}

// NewNoop creates a logger that discards everything.
func NewNoop() *NoopLogger {
	return &NoopLogger{}
}

func (l *NoopLogger) Debug(msg string, args ...interface{}) {}
func (l *NoopLogger) Info(msg string, args ...interface{})  {}
func (l *NoopLogger) Warn(msg string, args ...interface{})  {}
func (l *NoopLogger) Error(msg string, args ...interface{}) {}

// WithComponent returns l; stage tags have nothing to prefix.
func (l *NoopLogger) WithComponent(component string) ports.Logger {
	return l
}
