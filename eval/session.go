package eval

import (
	"fmt"
	"io"

	"mtl/parser"
	"mtl/types"
)

// Session evaluates successive inputs against one Global frame, so
// variables survive from one REPL line to the next
type Session struct {
	eval  *Evaluator
	ticks int64
}

// NewSession creates a session printing to out. ticks bounds each input;
// ticks <= 0 means unlimited.
func NewSession(out io.Writer, ticks int64) *Session {
	return &Session{
		eval:  NewEvaluatorWithOutput(out),
		ticks: ticks,
	}
}

// Exec parses and evaluates one input
func (s *Session) Exec(source string) (types.Value, error) {
	prog, err := parser.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return s.eval.Run(prog, types.NewTaskContextWithTicks(s.ticks))
}

// Lookup returns a variable of the Global frame
func (s *Session) Lookup(name string) (types.Value, bool) {
	return s.eval.Scopes().Get(name)
}

// Names lists the variables defined so far
func (s *Session) Names() []string {
	return s.eval.Scopes().Names()
}
