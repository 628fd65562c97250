// Package errors provides structured error handling for the Mason toolkit.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindExtEvent indicates a cross-thread submission failure.
	KindExtEvent
	// KindBackground indicates a failure inside background computation.
	KindBackground
	// KindRender indicates a rendering error.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindPassInvariant indicates a widget broke a pass-pipeline invariant.
	KindPassInvariant
)

func (k ErrorKind) String() string {
	switch k {
	case KindExtEvent:
		return "extevent"
	case KindBackground:
		return "background"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	case KindPassInvariant:
		return "pass-invariant"
	default:
		return "unknown"
	}
}

// MasonError represents a structured error in the Mason toolkit.
type MasonError struct {
	// Op is the operation that failed (e.g., "core.ComputeInBackground").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *MasonError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *MasonError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "core.WidgetPod.OnEvent").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// InvariantError represents a widget that broke a pass invariant, such
// as a pass-entry method that never marked itself visited. This is a
// programmer error in the widget, not a runtime condition.
type InvariantError struct {
	// Widget is the type name of the offending widget.
	Widget string
	// Pass is the pass kind being driven ("event", "lifecycle", ...).
	Pass string
	// Detail describes the broken invariant.
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s pass on %s: %s", e.Pass, e.Widget, e.Detail)
}

// ErrorHandler receives errors reported by the Mason toolkit.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *MasonError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleInvariant is called when a widget breaks a pass invariant.
	HandleInvariant(err *InvariantError)
}
