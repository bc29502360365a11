package eval

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mtl/parser"
	"mtl/types"
)

// runProgram parses and runs src, returning what it printed
func runProgram(t *testing.T, src string) (string, types.Value, error) {
	t.Helper()
	prog, err := parser.Parse(src)
	require.NoError(t, err)

	var out bytes.Buffer
	val, err := Run(prog, &out, types.NewTaskContext())
	return out.String(), val, err
}

// requireOutput runs src and checks its printed output
func requireOutput(t *testing.T, src, expected string) {
	t.Helper()
	out, _, err := runProgram(t, src)
	require.NoError(t, err)
	assert.Equal(t, expected, out)
}

// requireCode runs src and checks that it fails with code
func requireCode(t *testing.T, src string, code types.ErrorCode) *RuntimeError {
	t.Helper()
	_, _, err := runProgram(t, src)
	require.Error(t, err)
	var rerr *RuntimeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, code, rerr.Code, "error was: %v", err)
	return rerr
}

func TestEvalExpressions(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{"int arithmetic", "print 1 + 2 * 3;", "7\n"},
		{"grouping", "print (1 + 2) * 3;", "9\n"},
		{"true division", "print 7 / 2, 6 / 3;", "3.5 2.0\n"},
		{"float literal", "print 2.5, 1e3;", "2.5 1000.0\n"},
		{"unary minus", "print -3 - -2;", "-1\n"},
		{"concat", `print "ab" + "cd";`, "abcd\n"},
		{"print joins with spaces", `print 1, 2.5, "s";`, "1 2.5 s\n"},
		{"relations", `print 1 < 2, 2.5 >= 3, "a" < "b", [1, 2] == [1, 2], [1, 2] != [1, 3];`, "1 0 1 1 1\n"},
		{"matrix literal", "print [1, 2; 3, 4];", "[[1 2]\n [3 4]]\n"},
		{"nested literal", "print [[1, 2], [3, 4]];", "[[1 2]\n [3 4]]\n"},
		{"transpose", "print [1, 2, 3]';", "[[1]\n [2]\n [3]]\n"},
		{"negate matrix", "print -[1, -2];", "[[-1  2]]\n"},
		{"scalar broadcast", "print 2 * [1, 2], [2, 4] / 2;", "[[2 4]] [[1.0 2.0]]\n"},
		{"dotted scalars", "print 1 .+ 2, 3 .* 4;", "3 12\n"},
		{"dotted matrices", "print [1, 2] .* [3, 4], [1, 2] .- [1, 1];", "[[3 8]] [[0 1]]\n"},
		{"algebraic product", "print [1, 2] * [3; 4];", "[[11]]\n"},
		{"square zeros", "print zeros(2);", "[[0.0 0.0]\n [0.0 0.0]]\n"},
		{"ones rectangle", "print ones(1, 3);", "[[1.0 1.0 1.0]]\n"},
		{"eye", "print eye(2);", "[[1.0 0.0]\n [0.0 1.0]]\n"},
		{"access", "A = [1, 2; 3, 4]; print A[1, 0];", "3\n"},
		{"access float matrix", "A = eye(2); print A[1, 1];", "1.0\n"},
		{"computed indices", "A = [1, 2; 3, 4]; i = 0; print A[i + 1, i];", "3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireOutput(t, tt.src, tt.expected)
		})
	}
}

func TestEvalExpressionErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code types.ErrorCode
	}{
		{"undefined variable", "print y;", types.E_VARNF},
		{"string arithmetic", `print "a" - "b";`, types.E_TYPE},
		{"divide by zero", "print 1 / 0;", types.E_DIV},
		{"elementwise zero cell", "print [1, 2] ./ [1, 0];", types.E_DIV},
		{"shape mismatch", "print [1, 2] + [1, 2, 3];", types.E_SHAPE},
		{"product inner dims", "print [1, 2] * [1, 2];", types.E_SHAPE},
		{"matrix slash", "print [1, 2] / [1, 2];", types.E_TYPE},
		{"matrix ordering", "print [1, 2] < [3, 4];", types.E_TYPE},
		{"ragged literal", "print [1, 2; 3];", types.E_SHAPE},
		{"string cell", `print [1, "a"];`, types.E_TYPE},
		{"transpose scalar", "print 3';", types.E_TYPE},
		{"zero dimension", "print zeros(0, 2);", types.E_INVARG},
		{"float dimension", "print eye(1.5);", types.E_INVARG},
		{"cell count overflow", "A = zeros(4294967296, 4294967296); print A[5, 5];", types.E_INVARG},
		{"oversized identity", "print eye(100000);", types.E_INVARG},
		{"row out of range", "A = [1, 2]; print A[1, 0];", types.E_RANGE},
		{"negative column", "A = [1, 2]; print A[0, -1];", types.E_RANGE},
		{"float index", "A = [1, 2]; print A[0.0, 0];", types.E_TYPE},
		{"index a scalar", "x = 1; print x[0, 0];", types.E_TYPE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireCode(t, tt.src, tt.code)
		})
	}
}

func TestRuntimeErrorPosition(t *testing.T) {
	rerr := requireCode(t, "x = 1;\nprint x + y;", types.E_VARNF)
	assert.Equal(t, 2, rerr.Pos.Line)
	assert.Contains(t, rerr.Error(), "undefined variable y")
	assert.Contains(t, rerr.Error(), "E_VARNF")

	code, ok := ErrorCode(rerr)
	assert.True(t, ok)
	assert.Equal(t, types.E_VARNF, code)
}

func TestEvalProgramParseError(t *testing.T) {
	e := NewEvaluatorWithOutput(&bytes.Buffer{})
	_, err := e.EvalProgram("x = ;")
	require.Error(t, err)

	var perr *parser.Error
	assert.ErrorAs(t, err, &perr)
	_, isRuntime := ErrorCode(err)
	assert.False(t, isRuntime)
}
