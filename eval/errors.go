package eval

import (
	"errors"
	"fmt"

	"mtl/parser"
	"mtl/types"
)

// RuntimeError is an evaluation error that terminated a program
type RuntimeError struct {
	Code types.ErrorCode
	Msg  string
	Pos  parser.Position
}

// Error implements the error interface
func (e *RuntimeError) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Code.Message()
	}
	return fmt.Sprintf("line %d, column %d: %s: %s", e.Pos.Line, e.Pos.Column, e.Code, msg)
}

// ErrorCode extracts the error code from a runtime error
func ErrorCode(err error) (types.ErrorCode, bool) {
	var rerr *RuntimeError
	if errors.As(err, &rerr) {
		return rerr.Code, true
	}
	return types.E_NONE, false
}

// runtimeError converts an exception Result into a RuntimeError at the
// position it was raised
func (e *Evaluator) runtimeError(result types.Result) *RuntimeError {
	rerr := &RuntimeError{Code: result.Error, Msg: result.Msg}
	if e.errPos != nil {
		rerr.Pos = *e.errPos
	}
	return rerr
}
