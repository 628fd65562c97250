// Package debug records an ordered trace of pipeline passes for
// inspection in tests and bug reports.
package debug

import (
	"encoding/json"
	"fmt"
	"os"
)

// Entry is one recorded pipeline step.
type Entry struct {
	// Seq is the position of the entry in the log, starting at 0.
	Seq int `json:"seq"`
	// Pass is the pass kind ("event", "lifecycle", "layout", "paint"),
	// or "log" for free-form messages.
	Pass string `json:"pass"`
	// WidgetID is the id of the widget the pass entered, or 0.
	WidgetID uint64 `json:"widgetId,omitempty"`
	// Widget is the concrete widget type name, or empty.
	Widget string `json:"widget,omitempty"`
	// Message is the free-form payload for "log" entries.
	Message string `json:"message,omitempty"`
}

// Logger accumulates pass entries. It is only ever touched from the
// dispatch thread, so it needs no locking. A disabled logger drops
// everything, which keeps pass drivers free of logging branches.
type Logger struct {
	enabled bool
	entries []Entry
}

// NewLogger creates a logger. Pass enabled=false to make all recording
// calls no-ops.
func NewLogger(enabled bool) *Logger {
	return &Logger{enabled: enabled}
}

// Enabled reports whether the logger records entries.
func (l *Logger) Enabled() bool {
	return l.enabled
}

// PushPass records that a pass entered a widget.
func (l *Logger) PushPass(pass string, widgetID uint64, widgetType string) {
	if !l.enabled {
		return
	}
	l.entries = append(l.entries, Entry{
		Seq:      len(l.entries),
		Pass:     pass,
		WidgetID: widgetID,
		Widget:   widgetType,
	})
}

// PushLog records a free-form message.
func (l *Logger) PushLog(message string) {
	if !l.enabled {
		return
	}
	l.entries = append(l.entries, Entry{
		Seq:     len(l.entries),
		Pass:    "log",
		Message: message,
	})
}

// Entries returns a copy of the recorded entries.
func (l *Logger) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// WriteToFile dumps the log as indented JSON.
func (l *Logger) WriteToFile(path string) error {
	data, err := json.MarshalIndent(l.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal debug log: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
