package eval

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mtl/parser"
	"mtl/trace"
	"mtl/types"
)

func TestEndToEndScenarios(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{
			"sum",
			"x = 2; y = 3; print(x + y)",
			"5\n",
		},
		{
			"ones times identity",
			"A = ones(2,2); B = eye(2); print(A * B)",
			"[[1.0 1.0]\n [1.0 1.0]]\n",
		},
		{
			"while counts to three",
			"i = 0; while (i != 3) { print(i); i += 1; }",
			"0\n1\n2\n",
		},
		{
			"for with continue",
			"for i = 0, 3 { if (i == 1) { continue; } print(i); }",
			"0\n2\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireOutput(t, tt.src, tt.expected)
		})
	}
}

func TestOnesTimesIdentityEqualsOnes(t *testing.T) {
	requireOutput(t, "A = ones(2,2); B = eye(2); print(A * B == A)", "1\n")
}

func TestAssignment(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{"compound operators", "x = 10; x += 5; x -= 3; x *= 2; print x; x /= 4; print x;", "24\n6.0\n"},
		{"compound on matrix", "A = [1, 2]; A *= 3; print A;", "[[3 6]]\n"},
		{"indexed assign", "A = zeros(2, 3); A[1, 2] = 5; print A[1, 2];", "5.0\n"},
		{"indexed compound", "A = [1, 2; 3, 4]; A[0, 1] += 10; print A;", "[[ 1 12]\n [ 3  4]]\n"},
		{"independent indices", "A = zeros(2, 3); i = 1; j = 2; A[i, j] += 7; print A[1, 2], A[1, 1], A[2 - 1, 2];", "7.0 0.0 7.0\n"},
		{"float cell demotes", "A = [1, 2]; A[0, 0] = 0.5; print A;", "[[0.5 2.0]]\n"},
		{"float cell makes float matrix", "A = [1, 2]; A[0, 0] = 3.0; print A;", "[[3.0 2.0]]\n"},
		{"compound divide makes float matrix", "A = [1, 2]; A[0, 0] /= 1; print A; print A[0, 1];", "[[1.0 2.0]]\n2.0\n"},
		{"int cell keeps ints", "A = [1, 2]; A[0, 0] += 5; print A;", "[[6 2]]\n"},
		{"max int64 literal stays positive", "A = [9223372036854775807]; print A[0, 0] > 0;", "1\n"},
		{"large int literal reads back as float", "A = [9007199254740993]; print A[0, 0];", "9.007199254740992e+15\n"},
		{"copy on assign", "A = [1, 2]; B = A; B[0, 0] = 9; print A; print B;", "[[1 2]]\n[[9 2]]\n"},
		{"copy survives compound", "A = [1, 2]; B = A; A += 1; print B;", "[[1 2]]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireOutput(t, tt.src, tt.expected)
		})
	}
}

func TestAssignmentErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code types.ErrorCode
	}{
		{"compound on unbound", "x += 1;", types.E_VARNF},
		{"indexed on unbound", "A[0, 0] = 1;", types.E_VARNF},
		{"indexed on scalar", "x = 1; x[0, 0] = 1;", types.E_TYPE},
		{"indexed out of range", "A = [1, 2]; A[0, 2] = 1;", types.E_RANGE},
		{"matrix into cell", "A = [1, 2]; A[0, 0] = [1];", types.E_TYPE},
		{"string into cell", `A = [1, 2]; A[0, 0] = "s";`, types.E_TYPE},
		{"divide cell by zero", "A = [1, 2]; A[0, 1] /= 0;", types.E_DIV},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireCode(t, tt.src, tt.code)
		})
	}
}

func TestScoping(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{"loop variable shadows outer", "x = 10; for x = 0:3 { y = x; } print x;", "10\n"},
		{"set rebinds outer", "x = 1; if (1) { x = 2; } print x;", "2\n"},
		{"bare scope shares frame", "{ w = 3; } print w;", "3\n"},
		{"else branch", "if (0) { print 1; } else { print 2; }", "2\n"},
		{"else if chain", "x = 2; if (x == 1) print 1; else if (x == 2) print 2; else print 3;", "2\n"},
		{"nested loop variables", "for i = 0:2 { for i = 5:7 { print i; } print i; }", "5\n6\n0\n5\n6\n1\n"},
		{"while frame persists across iterations", "i = 0; while (i < 2) { if (i == 0) { k = 1; } i += 1; } print i;", "2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireOutput(t, tt.src, tt.expected)
		})
	}
}

func TestBlockBindingsDieWithFrame(t *testing.T) {
	requireCode(t, "if (1) { z = 1; } print z;", types.E_VARNF)
	requireCode(t, "for i = 0:1 { } print i;", types.E_VARNF)
	requireCode(t, "n = 0; while (n < 1) { n += 1; q = n; } print q;", types.E_VARNF)
}

func TestLoops(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{"while continue", "i = 0; while (i < 5) { i += 1; if (i == 2) { continue; } print i; }", "1\n3\n4\n5\n"},
		{"while break", "i = 0; while (1) { if (i == 2) { break; } print i; i += 1; } print 99;", "0\n1\n99\n"},
		{"inner break only", "for i = 0:2 { for j = 0:5 { if (j == 1) { break; } print i, j; } }", "0 0\n1 0\n"},
		{"empty for range", "for i = 3:3 { print i; } print 0;", "0\n"},
		{"body rebinds loop variable", "for i = 0:5 { i = 4; print i; }", "4\n"},
		{"limit evaluated once", "n = 3; for i = 0:n { n = 100; print i; }", "0\n1\n2\n"},
		{"matrix condition", "if ([1]) print 1; if ([0.0]) print 2;", "1\n"},
		{"float condition", "if (0.0) print 1; else print 2;", "2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireOutput(t, tt.src, tt.expected)
		})
	}
}

func TestConditionErrors(t *testing.T) {
	requireCode(t, `if ("s") print 1;`, types.E_BOOL)
	requireCode(t, "while ([1, 2]) { }", types.E_BOOL)
	requireCode(t, `for i = 0:"s" { }`, types.E_TYPE)
}

func TestReturn(t *testing.T) {
	out, val, err := runProgram(t, "x = 1; return x + 1; print 99;")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, types.NewInt(2), val)

	out, val, err = runProgram(t, "for i = 0:10 { while (1) { if (i == 3) { return [i]; } break; } print i; }")
	require.NoError(t, err)
	assert.Equal(t, "0\n1\n2\n", out)
	assert.Equal(t, "[[3]]", val.String())

	_, val, err = runProgram(t, "return;")
	require.NoError(t, err)
	assert.Nil(t, val)

	_, val, err = runProgram(t, "x = 1;")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestMisplacedControlFlow(t *testing.T) {
	rerr := requireCode(t, "x = 1;\nbreak;", types.E_CTRL)
	assert.Equal(t, 2, rerr.Pos.Line)
	assert.Contains(t, rerr.Msg, "break")

	rerr = requireCode(t, "if (1) { continue; }", types.E_CTRL)
	assert.Contains(t, rerr.Msg, "continue")
}

func TestFramesPoppedOnEveryExit(t *testing.T) {
	programs := []string{
		"while (1) { if (1) { break; } }",
		"for i = 0:3 { if (i == 1) { continue; } }",
		"for i = 0:3 { while (1) { return i; } }",
		"if (1) { while (1) { x = 1 / 0; } }",
		"if (0) { } else { for i = 0:2 { y = undefined; } }",
		"if (1) { break; }",
	}

	for _, src := range programs {
		t.Run(src, func(t *testing.T) {
			prog, err := parser.Parse(src)
			require.NoError(t, err)

			e := NewEvaluatorWithOutput(&bytes.Buffer{})
			_, _ = e.Run(prog, types.NewTaskContext())
			assert.Equal(t, 1, e.Scopes().Depth())
			assert.Equal(t, TagGlobal, e.Scopes().Top())
		})
	}
}

// traceEvents runs src with tracing on and returns the logged events
func traceEvents(t *testing.T, src string, filters ...string) []map[string]interface{} {
	t.Helper()
	var buf bytes.Buffer
	trace.Init(true, filters, &buf)
	defer trace.Disable()

	_, _, err := runProgram(t, src)
	require.NoError(t, err)

	var events []map[string]interface{}
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var ev map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &ev))
		events = append(events, ev)
	}
	return events
}

func TestBreakPopsIfThenWhile(t *testing.T) {
	events := traceEvents(t, "while (1) { if (1) { break; } } print 1;")

	var pops []string
	for _, ev := range events {
		if ev[trace.EVENT_FIELD] == "pop" {
			pops = append(pops, ev[trace.TAG_FIELD].(string))
		}
	}
	assert.Equal(t, []string{TagIf, TagWhile}, pops)
}

func TestTraceSignalEvents(t *testing.T) {
	events := traceEvents(t, "for i = 0:2 { if (i == 0) { continue; } }", "*Loop", "If")

	var signals []string
	for _, ev := range events {
		if flow, ok := ev[trace.FLOW_FIELD]; ok {
			signals = append(signals, ev[trace.EVENT_FIELD].(string)+" "+flow.(string)+" "+ev[trace.TAG_FIELD].(string))
		}
	}
	assert.Equal(t, []string{"propagated continue If", "caught continue ForLoop"}, signals)
}

func TestTickBudget(t *testing.T) {
	prog, err := parser.Parse("i = 0; while (1) { i += 1; }")
	require.NoError(t, err)

	e := NewEvaluatorWithOutput(&bytes.Buffer{})
	_, err = e.Run(prog, types.NewTaskContextWithTicks(500))
	require.Error(t, err)

	code, ok := ErrorCode(err)
	require.True(t, ok)
	assert.Equal(t, types.E_MAXTICKS, code)
	assert.Equal(t, 1, e.Scopes().Depth())

	v, ok := e.Scopes().Get("i")
	require.True(t, ok)
	assert.Greater(t, v.(types.IntValue).Val, int64(0))
}
