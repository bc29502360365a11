package parser

import (
	"errors"
	"fmt"
	"strings"
)

// Error is a syntax error with its source position
type Error struct {
	Pos Position
	Msg string

	// Incomplete is set when the input ended before the construct did,
	// e.g. an unclosed block. The REPL keeps reading lines while the
	// error is incomplete.
	Incomplete bool
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// IsIncomplete reports whether err is a parse error caused by input
// ending too early
func IsIncomplete(err error) bool {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Incomplete
	}
	return false
}

// errorf builds a parse error at the current token
func (p *Parser) errorf(format string, args ...interface{}) *Error {
	incomplete := p.current.Type == TOKEN_EOF ||
		(p.current.Type == TOKEN_ILLEGAL && strings.HasPrefix(p.current.Value, `"`))
	return &Error{
		Pos:        p.current.Position,
		Msg:        fmt.Sprintf(format, args...),
		Incomplete: incomplete,
	}
}

// describe renders a token for error messages
func describe(tok Token) string {
	switch tok.Type {
	case TOKEN_EOF:
		return "end of input"
	case TOKEN_IDENTIFIER:
		return fmt.Sprintf("identifier %q", tok.Value)
	case TOKEN_INT, TOKEN_FLOAT, TOKEN_STRING:
		return fmt.Sprintf("literal %s", tok.Value)
	case TOKEN_ILLEGAL:
		if strings.HasPrefix(tok.Value, `"`) {
			return "unterminated string"
		}
		return fmt.Sprintf("illegal character %q", tok.Value)
	default:
		return fmt.Sprintf("'%s'", tok.Type)
	}
}
