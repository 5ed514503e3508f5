package mocks

import (
	"fmt"
	"sync"
)

// MockLogger records formatted messages per level.
type MockLogger struct {
	mu       sync.Mutex
	Messages map[string][]string
}

func (m *MockLogger) record(level, format string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Messages == nil {
		m.Messages = make(map[string][]string)
	}
	m.Messages[level] = append(m.Messages[level], fmt.Sprintf(format, args...))
}

func (m *MockLogger) Debug(format string, args ...any) { m.record("debug", format, args...) }
func (m *MockLogger) Info(format string, args ...any)  { m.record("info", format, args...) }
func (m *MockLogger) Warn(format string, args ...any)  { m.record("warn", format, args...) }
func (m *MockLogger) Error(format string, args ...any) { m.record("error", format, args...) }
func (m *MockLogger) Fatal(format string, args ...any) { m.record("fatal", format, args...) }

// Logged returns the messages of one level.
func (m *MockLogger) Logged(level string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Messages[level]...)
}
