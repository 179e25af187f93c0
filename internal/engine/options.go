package engine

import (
	"github.com/dshills/keyline/internal/engine/buffer"
	"github.com/dshills/keyline/internal/engine/history"
	"github.com/dshills/keyline/internal/engine/macro"
	"github.com/dshills/keyline/internal/event"
	"github.com/dshills/keyline/internal/logging"
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithInitialContent sets the initial content of the engine.
// It is ignored when WithBuffer is also given.
func WithInitialContent(content string) Option {
	return func(e *Engine) {
		e.initContent = content
	}
}

// WithBuffer makes the engine drive an existing buffer.
func WithBuffer(b *buffer.Buffer) Option {
	return func(e *Engine) {
		e.buf = b
	}
}

// WithHistoryLimit bounds the undo history.
func WithHistoryLimit(l history.Limit) Option {
	return func(e *Engine) {
		e.limit = l
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithEventBus publishes content changes on bus.
func WithEventBus(bus *event.Bus) Option {
	return func(e *Engine) {
		e.bus = bus
	}
}

// WithMacroRecorder shares a macro recorder, for example one loaded from
// disk.
func WithMacroRecorder(r *macro.Recorder) Option {
	return func(e *Engine) {
		if r != nil {
			e.macros = r
		}
	}
}
