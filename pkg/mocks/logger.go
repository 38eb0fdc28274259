package mocks

import (
	"fmt"
	"strings"
	"sync"

	"github.com/user/glassbanner/pkg/ports"
)

// LogEntry is one message captured by Logger, formatted but untranslated.
type LogEntry struct {
	Level     ports.LogLevel
	Component string
	Message   string
}

// Logger records every message for assertions. Component loggers share the
// parent's record.
type Logger struct {
	component string
	log       *logRecord
}

type logRecord struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewLogger creates an empty recording Logger.
func NewLogger() *Logger {
	return &Logger{log: &logRecord{}}
}

func (m *Logger) Debug(msg string, args ...interface{}) { m.add(ports.LevelDebug, msg, args) }
func (m *Logger) Info(msg string, args ...interface{})  { m.add(ports.LevelInfo, msg, args) }
func (m *Logger) Warn(msg string, args ...interface{})  { m.add(ports.LevelWarn, msg, args) }
func (m *Logger) Error(msg string, args ...interface{}) { m.add(ports.LevelError, msg, args) }

func (m *Logger) WithComponent(component string) ports.Logger {
	return &Logger{component: ports.JoinComponent(m.component, component), log: m.log}
}

func (m *Logger) add(level ports.LogLevel, msg string, args []interface{}) {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	m.log.mu.Lock()
	defer m.log.mu.Unlock()
	m.log.entries = append(m.log.entries, LogEntry{Level: level, Component: m.component, Message: msg})
}

// Entries returns a copy of the recorded messages.
func (m *Logger) Entries() []LogEntry {
	m.log.mu.Lock()
	defer m.log.mu.Unlock()
	return append([]LogEntry(nil), m.log.entries...)
}

// Contains reports whether a message at level contains substr.
func (m *Logger) Contains(level ports.LogLevel, substr string) bool {
	for _, e := range m.Entries() {
		if e.Level == level && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

var _ ports.Logger = (*Logger)(nil)
