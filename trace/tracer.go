package trace

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"mtl/types"
)

// Field names used in trace events
const (
	EVENT_FIELD = "event"
	TAG_FIELD   = "tag"
	DEPTH_FIELD = "depth"
	FLOW_FIELD  = "flow"
	CODE_FIELD  = "code"
	LINE_FIELD  = "line"
)

// Tracer provides execution tracing for debugging
type Tracer struct {
	enabled bool
	filters []string
	logger  zerolog.Logger
}

// Global tracer instance
var globalTracer *Tracer

// Init initializes the global tracer. Events are written as JSON lines
// to writer (stderr when nil). filters are glob patterns matched
// against frame tags; an empty list traces every frame.
func Init(enabled bool, filters []string, writer io.Writer) {
	if writer == nil {
		writer = os.Stderr
	}
	globalTracer = &Tracer{
		enabled: enabled,
		filters: filters,
		logger:  zerolog.New(writer).Level(zerolog.DebugLevel),
	}
}

// Disable turns the global tracer off
func Disable() {
	globalTracer = nil
}

// IsEnabled returns whether tracing is enabled
func IsEnabled() bool {
	if globalTracer == nil {
		return false
	}
	return globalTracer.enabled
}

// matchesFilter checks if a frame tag matches any of the filter patterns
func (t *Tracer) matchesFilter(tag string) bool {
	if len(t.filters) == 0 {
		return true // No filters = trace everything
	}

	for _, pattern := range t.filters {
		if matched, _ := filepath.Match(pattern, tag); matched {
			return true
		}
	}
	return false
}

// ScopePush logs a frame being pushed; depth is the stack size afterwards
func (t *Tracer) ScopePush(tag string, depth int) {
	if !t.enabled || !t.matchesFilter(tag) {
		return
	}
	t.logger.Debug().
		Str(EVENT_FIELD, "push").
		Str(TAG_FIELD, tag).
		Int(DEPTH_FIELD, depth).
		Send()
}

// ScopePop logs a frame being popped; depth is the stack size before the pop
func (t *Tracer) ScopePop(tag string, depth int) {
	if !t.enabled || !t.matchesFilter(tag) {
		return
	}
	t.logger.Debug().
		Str(EVENT_FIELD, "pop").
		Str(TAG_FIELD, tag).
		Int(DEPTH_FIELD, depth).
		Send()
}

// Signal logs a control signal leaving the construct tagged tag.
// action is "caught" when the construct absorbs it and "propagated"
// when it passes it on.
func (t *Tracer) Signal(flow types.ControlFlow, tag string, action string) {
	if !t.enabled || !t.matchesFilter(tag) {
		return
	}
	t.logger.Debug().
		Str(EVENT_FIELD, action).
		Str(FLOW_FIELD, flow.String()).
		Str(TAG_FIELD, tag).
		Send()
}

// Exception logs a runtime error reaching the program boundary
func (t *Tracer) Exception(code types.ErrorCode, msg string, line int) {
	if !t.enabled {
		return
	}
	t.logger.Warn().
		Str(EVENT_FIELD, "error").
		Str(CODE_FIELD, code.String()).
		Int(LINE_FIELD, line).
		Msg(msg)
}

// Global convenience functions

// ScopePush logs a frame push using the global tracer
func ScopePush(tag string, depth int) {
	if globalTracer != nil {
		globalTracer.ScopePush(tag, depth)
	}
}

// ScopePop logs a frame pop using the global tracer
func ScopePop(tag string, depth int) {
	if globalTracer != nil {
		globalTracer.ScopePop(tag, depth)
	}
}

// Signal logs a control signal using the global tracer
func Signal(flow types.ControlFlow, tag string, action string) {
	if globalTracer != nil {
		globalTracer.Signal(flow, tag, action)
	}
}

// Exception logs a runtime error using the global tracer
func Exception(code types.ErrorCode, msg string, line int) {
	if globalTracer != nil {
		globalTracer.Exception(code, msg, line)
	}
}
