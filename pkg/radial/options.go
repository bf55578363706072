package radial

import (
	"log/slog"

	"github.com/mchmarny/radial-menu/pkg/event"
	"github.com/mchmarny/radial-menu/pkg/menu"
	"github.com/mchmarny/radial-menu/pkg/metric"
)

// Option is a functional option for configuring the Engine.
type Option func(*Engine)

// WithID sets the instance id. If not specified a random UUID is used.
func WithID(id string) Option {
	return func(e *Engine) { e.id = id }
}

// WithRenderer sets the rendering adapter.
// If not specified, nothing is drawn and every transition completes immediately.
// A renderer that can miss completions needs WithScheduler for the fallback timer.
func WithRenderer(r Renderer) Option {
	return func(e *Engine) { e.renderer = r }
}

// WithScheduler sets the scheduler used for transition fallback timers.
// It must run callbacks on the goroutine that drives the engine.
// If not specified, fallbacks are disabled and only renderer completions settle transitions.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) { e.scheduler = s }
}

// WithEventSource subscribes the engine's input dispatcher to src.
func WithEventSource(src event.Source) Option {
	return func(e *Engine) { e.source = src }
}

// WithLogger sets the logger. If not specified, slog.Default() is used.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithCounter sets the counter incremented for every navigation event.
func WithCounter(c metric.IncrementalCounter) Option {
	return func(e *Engine) { e.counter = c }
}

// WithOnSelect sets the callback fired with a copy of an activated leaf item.
func WithOnSelect(fn func(item menu.Item)) Option {
	return func(e *Engine) { e.onSelect = fn }
}

// WithCloseOnClick overrides the configured close-after-selection policy.
func WithCloseOnClick(enabled bool) Option {
	return func(e *Engine) { e.closeOnClick = enabled }
}

// WithCloseOnClickHook enables close-after-selection and calls fn with the
// selected item right before closing.
func WithCloseOnClickHook(fn func(item menu.Item)) Option {
	return func(e *Engine) {
		e.closeOnClick = true
		e.closeOnClickHook = fn
	}
}

// WithCloseOnClickOutside overrides the configured click-outside policy.
func WithCloseOnClickOutside(enabled bool) Option {
	return func(e *Engine) { e.closeOnClickOutside = enabled }
}

// WithCloseOnClickOutsideHook enables click-outside closing and calls fn before closing.
func WithCloseOnClickOutsideHook(fn func(e *Engine)) Option {
	return func(e *Engine) {
		e.closeOnClickOutside = true
		e.closeOnClickOutsideHook = fn
	}
}

// WithOnClose sets a callback fired once each time the menu has fully closed.
func WithOnClose(fn func()) Option {
	return func(e *Engine) { e.onClose = fn }
}

// WithOnStateChange sets a callback fired on every state change.
func WithOnStateChange(fn func(from, to State)) Option {
	return func(e *Engine) { e.onStateChange = fn }
}
