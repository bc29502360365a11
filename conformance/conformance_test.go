package conformance

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mtl/types"
)

func TestConformance(t *testing.T) {
	// Load all test cases
	tests, err := LoadAllTests()
	require.NoError(t, err)
	require.NotEmpty(t, tests, "no tests loaded")

	runner := NewRunner()
	results := runner.RunAll(tests)
	stats := ComputeStats(results)

	// Group results by file for organized output
	fileGroups := make(map[string][]TestResult)
	for _, result := range results {
		fileGroups[result.Test.File] = append(fileGroups[result.Test.File], result)
	}

	// Run each test file as a subtest
	for file, fileResults := range fileGroups {
		fileResults := fileResults
		t.Run(file, func(t *testing.T) {
			for _, result := range fileResults {
				result := result
				t.Run(result.Test.Test.Name, func(t *testing.T) {
					if result.Skipped {
						t.Skipf("Skipped: %s", result.SkipReason)
					} else if !result.Passed {
						if result.Error != nil {
							t.Errorf("Test failed: %v", result.Error)
						} else {
							t.Error("Test failed")
						}
					}
				})
			}
		})
	}

	t.Logf("\n=== Summary ===\n%s", FormatStats(stats))
	assert.Zero(t, stats.Failed)
}

func TestLoadAllTests(t *testing.T) {
	tests, err := LoadAllTests()
	require.NoError(t, err)

	t.Logf("Loaded %d test cases from conformance suite", len(tests))
	require.NotEmpty(t, tests)

	files := make(map[string]bool)
	for i, test := range tests {
		files[test.File] = true

		// Each test must have a name, code and an expectation
		assert.NotEmpty(t, test.Test.Name, "test %d in %s has no name", i, test.File)
		assert.NotEmpty(t, test.Test.Code, "test %s in %s has no code", test.Test.Name, test.File)
		expect := test.Test.Expect
		if expect.Output == nil && expect.Value == nil && expect.Error == "" && expect.Type == "" {
			t.Errorf("Test %s in %s has no expectation", test.Test.Name, test.File)
		}
	}
	t.Logf("Found %d test files", len(files))
	assert.GreaterOrEqual(t, len(files), 5)
}

func TestLoadDirRejectsBrokenYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("tests: [\n"), 0o644))

	_, err := LoadDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.yaml")
}

func TestLoadDirIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not yaml"), 0o644))
	suite := "name: tiny\ntests:\n  - name: one\n    code: \"return 1;\"\n    expect:\n      value: 1\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tiny.yaml"), []byte(suite), 0o644))

	tests, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, tests, 1)
	assert.Equal(t, "tiny.yaml", tests[0].File)
	assert.Equal(t, "tiny", tests[0].Suite.Name)
}

func TestRunnerSetupOutputIsDiscarded(t *testing.T) {
	output := "7\n"
	test := LoadedTest{
		Suite: TestSuite{Setup: &SetupBlock{Code: "a = 3; print \"suite\";"}},
		Test: TestCase{
			Name:   "setup",
			Setup:  &SetupBlock{Code: "b = 4;"},
			Code:   "print a + b;",
			Expect: Expectation{Output: &output},
		},
	}

	result := NewRunner().Run(test)
	require.NoError(t, result.Error)
	assert.True(t, result.Passed)
}

func TestRunnerReportsMismatch(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		expect Expectation
	}{
		{"wrong value", "return 2;", Expectation{Value: 3}},
		{"wrong type", "return 2;", Expectation{Type: "FLOAT"}},
		{"wrong error", "return 1 / 0;", Expectation{Error: "E_TYPE"}},
		{"missing error", "return 1;", Expectation{Error: "E_DIV"}},
		{"unexpected error", "return x;", Expectation{Value: 1}},
		{"unknown code", "return 1 / 0;", Expectation{Error: "E_NOPE"}},
		{"no expectation", "return 1;", Expectation{}},
	}

	runner := NewRunner()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := runner.Run(LoadedTest{Test: TestCase{Name: tt.name, Code: tt.code, Expect: tt.expect}})
			assert.False(t, result.Passed)
			assert.Error(t, result.Error)
		})
	}
}

func TestRunnerSkips(t *testing.T) {
	runner := NewRunner()

	result := runner.Run(LoadedTest{Test: TestCase{Name: "skip", Skip: "not yet", Code: "return 1;"}})
	assert.True(t, result.Skipped)
	assert.Equal(t, "not yet", result.SkipReason)

	result = runner.Run(LoadedTest{Test: TestCase{Name: "empty"}})
	assert.True(t, result.Skipped)
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats([]TestResult{
		{Passed: true},
		{Passed: true},
		{Skipped: true},
		{Error: fmt.Errorf("boom")},
	})
	assert.Equal(t, SummaryStats{Total: 4, Passed: 2, Failed: 1, Skipped: 1}, stats)
	assert.Equal(t, "2 passed, 1 failed, 1 skipped (4 total)", FormatStats(stats))
}

func TestConvertYAMLValue(t *testing.T) {
	v, err := convertYAMLValue([]interface{}{
		[]interface{}{1, 2},
		[]interface{}{3, 4},
	})
	require.NoError(t, err)
	m, ok := v.(types.MatrixValue)
	require.True(t, ok)
	assert.True(t, m.Integral())
	assert.True(t, m.Equal(types.NewMatrix(2, 2, []float64{1, 2, 3, 4}, true)))

	v, err = convertYAMLValue([]interface{}{[]interface{}{1, 2.5}})
	require.NoError(t, err)
	assert.False(t, v.(types.MatrixValue).Integral())

	_, err = convertYAMLValue([]interface{}{[]interface{}{1, 2}, []interface{}{3}})
	assert.Error(t, err)

	_, err = convertYAMLValue(true)
	assert.Error(t, err)
}

// BenchmarkLoadAllTests measures test loading performance
func BenchmarkLoadAllTests(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := LoadAllTests(); err != nil {
			b.Fatal(err)
		}
	}
}
