// Package logging routes formatted UI output to a replaceable destination.
//
// A Handle holds the active Sink behind an atomic pointer, so a sink can be
// swapped while other goroutines are emitting: every emission observes either
// the old sink or the new one, never a mix. The package-level functions
// operate on a process-wide default handle; tests that want isolation create
// their own Handle instead.
package logging

import (
	"sync/atomic"
)

// Sink receives formatted output.
type Sink interface {
	// Emit writes a block: the message followed by trailing separation.
	Emit(message string)
	// EmitLine writes the message followed by a single newline.
	EmitLine(message string)
}

// sinkBox lets an interface value live behind atomic.Pointer.
type sinkBox struct {
	sink Sink
}

// Handle is a shared, swappable reference to the active Sink.
// The zero value is ready to use and has no sink installed.
type Handle struct {
	current  atomic.Pointer[sinkBox]
	disabled atomic.Bool
}

// NewHandle creates a handle with s installed. s may be nil.
func NewHandle(s Sink) *Handle {
	h := &Handle{}
	h.Set(s)
	return h
}

// Set replaces the active sink. Passing nil removes it.
func (h *Handle) Set(s Sink) {
	if s == nil {
		h.current.Store(nil)
		return
	}
	h.current.Store(&sinkBox{sink: s})
}

// Reset removes the active sink; subsequent emissions are dropped.
func (h *Handle) Reset() {
	h.current.Store(nil)
}

// Sink returns the active sink, or nil if none is installed.
func (h *Handle) Sink() Sink {
	if box := h.current.Load(); box != nil {
		return box.sink
	}
	return nil
}

// Enable turns emission on (the default).
func (h *Handle) Enable() { h.disabled.Store(false) }

// Disable drops every emission until Enable is called. The sink is kept.
func (h *Handle) Disable() { h.disabled.Store(true) }

// Enabled reports whether emissions are delivered.
func (h *Handle) Enabled() bool { return !h.disabled.Load() }

// Event routes message through the active sink's Emit.
func (h *Handle) Event(message string) {
	if h.disabled.Load() {
		return
	}
	if s := h.Sink(); s != nil {
		s.Emit(message)
	}
}

// EventLine routes message through the active sink's EmitLine.
func (h *Handle) EventLine(message string) {
	if h.disabled.Load() {
		return
	}
	if s := h.Sink(); s != nil {
		s.EmitLine(message)
	}
}

var defaultHandle = &Handle{}

// Default returns the process-wide handle used by the package functions.
func Default() *Handle {
	return defaultHandle
}

// SetSink replaces the process-wide sink.
func SetSink(s Sink) { defaultHandle.Set(s) }

// ResetSink removes the process-wide sink.
func ResetSink() { defaultHandle.Reset() }

// CurrentSink returns the process-wide sink, or nil.
func CurrentSink() Sink { return defaultHandle.Sink() }

// LogEvent emits a block through the process-wide sink.
func LogEvent(message string) { defaultHandle.Event(message) }

// LogEventLine emits a line through the process-wide sink.
func LogEventLine(message string) { defaultHandle.EventLine(message) }

// Enable turns process-wide emission on.
func Enable() { defaultHandle.Enable() }

// Disable turns process-wide emission off.
func Disable() { defaultHandle.Disable() }

// Enabled reports whether process-wide emission is on.
func Enabled() bool { return defaultHandle.Enabled() }
