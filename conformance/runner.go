package conformance

import (
	"bytes"
	"fmt"
	"strings"

	"mtl/eval"
	"mtl/types"
)

// TestResult represents the outcome of running a single test
type TestResult struct {
	Test       LoadedTest
	Passed     bool
	Skipped    bool
	SkipReason string
	Error      error
}

// Runner executes conformance tests. Every test runs in a fresh session.
type Runner struct{}

// NewRunner creates a new test runner
func NewRunner() *Runner {
	return &Runner{}
}

// outcome is what running a test's code produced
type outcome struct {
	output string
	value  types.Value
	err    error
}

// runSetupBlock executes a setup block in the test's session
func (r *Runner) runSetupBlock(block *SetupBlock, session *eval.Session) error {
	if block == nil || block.Code == "" {
		return nil
	}
	if _, err := session.Exec(block.Code); err != nil {
		return fmt.Errorf("setup error: %w", err)
	}
	return nil
}

// Run executes a single test case
func (r *Runner) Run(test LoadedTest) TestResult {
	// Check if test should be skipped
	if skipped, reason := test.Test.IsSkipped(); skipped {
		return TestResult{
			Test:       test,
			Skipped:    true,
			SkipReason: reason,
		}
	}

	if test.Test.Code == "" {
		return TestResult{
			Test:       test,
			Skipped:    true,
			SkipReason: "no code",
		}
	}

	var out bytes.Buffer
	session := eval.NewSession(&out, test.Test.Ticks)

	// Suite setup, then test-specific setup
	if err := r.runSetupBlock(test.Suite.Setup, session); err != nil {
		return TestResult{Test: test, Error: fmt.Errorf("suite setup failed: %w", err)}
	}
	if err := r.runSetupBlock(test.Test.Setup, session); err != nil {
		return TestResult{Test: test, Error: fmt.Errorf("test setup failed: %w", err)}
	}
	out.Reset()

	value, err := session.Exec(test.Test.Code)
	passed, checkErr := r.checkExpectation(test.Test, outcome{output: out.String(), value: value, err: err})
	return TestResult{
		Test:   test,
		Passed: passed,
		Error:  checkErr,
	}
}

// RunAll executes all loaded tests
func (r *Runner) RunAll(tests []LoadedTest) []TestResult {
	results := make([]TestResult, len(tests))
	for i, test := range tests {
		results[i] = r.Run(test)
	}
	return results
}

// SummaryStats computes statistics from test results
type SummaryStats struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
}

// ComputeStats generates statistics from test results
func ComputeStats(results []TestResult) SummaryStats {
	stats := SummaryStats{Total: len(results)}
	for _, r := range results {
		if r.Skipped {
			stats.Skipped++
		} else if r.Passed {
			stats.Passed++
		} else {
			stats.Failed++
		}
	}
	return stats
}

// FormatStats returns a human-readable summary
func FormatStats(stats SummaryStats) string {
	return fmt.Sprintf("%d passed, %d failed, %d skipped (%d total)",
		stats.Passed, stats.Failed, stats.Skipped, stats.Total)
}

// checkExpectation checks if the result matches the expected outcome
func (r *Runner) checkExpectation(test TestCase, got outcome) (bool, error) {
	expect := test.Expect

	if expect.Output == nil && expect.Value == nil && expect.Error == "" && expect.Type == "" {
		return false, fmt.Errorf("no expectation specified")
	}

	// Printed output is checked first; a failing program may print before it fails
	if expect.Output != nil && got.output != *expect.Output {
		return false, fmt.Errorf("expected output %q, got %q", *expect.Output, got.output)
	}

	// Check for expected error
	if expect.Error != "" {
		expectedErr, ok := types.ErrorFromString(strings.ToUpper(expect.Error))
		if !ok {
			return false, fmt.Errorf("unknown error code: %s", expect.Error)
		}

		if got.err == nil {
			return false, fmt.Errorf("expected error %s, got value: %v", expect.Error, got.value)
		}

		code, isRuntime := eval.ErrorCode(got.err)
		if !isRuntime {
			return false, fmt.Errorf("expected error %s, got %v", expect.Error, got.err)
		}
		if code != expectedErr {
			return false, fmt.Errorf("expected error %s, got %s", expect.Error, code)
		}

		return true, nil
	}

	// Check for normal result
	if got.err != nil {
		return false, fmt.Errorf("unexpected error: %w", got.err)
	}

	// Check expected value
	if expect.Value != nil {
		expectedVal, err := convertYAMLValue(expect.Value)
		if err != nil {
			return false, fmt.Errorf("failed to convert expected value: %w", err)
		}

		if got.value == nil {
			return false, fmt.Errorf("expected %v, got no value", expectedVal)
		}

		if !got.value.Equal(expectedVal) {
			return false, fmt.Errorf("expected %v, got %v", expectedVal, got.value)
		}
	}

	// Check expected type
	if expect.Type != "" {
		if got.value == nil {
			return false, fmt.Errorf("expected type %s, got no value", expect.Type)
		}
		if got.value.Type().String() != strings.ToUpper(expect.Type) {
			return false, fmt.Errorf("expected type %s, got %s", expect.Type, got.value.Type())
		}
	}

	return true, nil
}

// convertYAMLValue converts a YAML value to a Value.
// A list of equally long number lists becomes a matrix.
func convertYAMLValue(v interface{}) (types.Value, error) {
	switch val := v.(type) {
	case int:
		return types.NewInt(int64(val)), nil
	case int64:
		return types.NewInt(val), nil
	case float64:
		return types.NewFloat(val), nil
	case string:
		return types.NewStr(val), nil
	case []interface{}:
		return convertYAMLMatrix(val)
	default:
		return nil, fmt.Errorf("unsupported YAML type: %T", v)
	}
}

// convertYAMLMatrix converts [[1, 2], [3, 4]] to a matrix
func convertYAMLMatrix(rows []interface{}) (types.Value, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty matrix")
	}

	var data []float64
	cols := -1
	integral := true
	for _, row := range rows {
		cells, ok := row.([]interface{})
		if !ok {
			return nil, fmt.Errorf("matrix rows must be lists, got %T", row)
		}
		if cols == -1 {
			cols = len(cells)
		}
		if len(cells) != cols || cols == 0 {
			return nil, fmt.Errorf("matrix rows must share one non-zero length")
		}
		for _, cell := range cells {
			switch c := cell.(type) {
			case int:
				data = append(data, float64(c))
			case float64:
				data = append(data, c)
				integral = false
			default:
				return nil, fmt.Errorf("matrix cells must be numbers, got %T", cell)
			}
		}
	}
	return types.NewMatrix(len(rows), cols, data, integral), nil
}
