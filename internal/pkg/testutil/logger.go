package testutil

import (
	"sync"

	"personal-notes-be/internal/pkg/logger"
)

type LogEntry struct {
	Level   string
	Module  string
	Message string
	Details map[string]interface{}
}

// RecordingLogger keeps every entry in memory so tests can assert on it.
type RecordingLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

var _ logger.ILogger = (*RecordingLogger)(nil)

func NewRecordingLogger() *RecordingLogger {
	return &RecordingLogger{}
}

func (l *RecordingLogger) record(level, module, message string, details map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Level: level, Module: module, Message: message, Details: details})
}

func (l *RecordingLogger) Debug(module, message string, details map[string]interface{}) {
	l.record("DEBUG", module, message, details)
}

func (l *RecordingLogger) Info(module, message string, details map[string]interface{}) {
	l.record("INFO", module, message, details)
}

func (l *RecordingLogger) Warn(module, message string, details map[string]interface{}) {
	l.record("WARN", module, message, details)
}

func (l *RecordingLogger) Error(module, message string, details map[string]interface{}) {
	l.record("ERROR", module, message, details)
}

func (l *RecordingLogger) Sync() error { return nil }

func (l *RecordingLogger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
