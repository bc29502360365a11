package eval

import (
	"fmt"
	"io"

	"mtl/parser"
	"mtl/trace"
	"mtl/types"
)

// Run evaluates prog in a fresh Global frame, printing to out.
// It returns the payload of a top-level return, or nil when the program
// ran to its end.
func Run(prog *parser.Program, out io.Writer, ctx *types.TaskContext) (types.Value, error) {
	return NewEvaluatorWithOutput(out).Run(prog, ctx)
}

// Run evaluates prog against the evaluator's scope stack
func (e *Evaluator) Run(prog *parser.Program, ctx *types.TaskContext) (types.Value, error) {
	e.errPos = nil
	result := e.Eval(prog, ctx)

	switch result.Flow {
	case types.FlowException:
		rerr := e.runtimeError(result)
		trace.Exception(rerr.Code, rerr.Error(), rerr.Pos.Line)
		return nil, rerr
	case types.FlowReturn:
		return result.Val, nil
	default:
		return nil, nil
	}
}

// EvalProgram is a convenience function to evaluate a program from source
func (e *Evaluator) EvalProgram(source string) (types.Value, error) {
	prog, err := parser.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return e.Run(prog, types.NewTaskContext())
}
