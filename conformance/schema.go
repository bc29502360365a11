package conformance

// TestSuite represents a complete YAML test file
type TestSuite struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Setup       *SetupBlock `yaml:"setup,omitempty"`
	Tests       []TestCase  `yaml:"tests"`
}

// SetupBlock contains code run before a test in the same session.
// Its output is not part of the test's output.
type SetupBlock struct {
	Code string `yaml:"code"`
}

// TestCase represents a single test within a suite
type TestCase struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Skip        interface{} `yaml:"skip,omitempty"`  // bool or string
	Ticks       int64       `yaml:"ticks,omitempty"` // per-test tick budget, 0 = unlimited
	Code        string      `yaml:"code"`            // program source
	Setup       *SetupBlock `yaml:"setup,omitempty"`
	Expect      Expectation `yaml:"expect"`
}

// Expectation defines what result is expected from a test.
// Output and Error may be combined: a failing program can print before
// it fails.
type Expectation struct {
	Output *string     `yaml:"output,omitempty"` // exact printed text
	Value  interface{} `yaml:"value,omitempty"`  // return payload; a list of lists is a matrix
	Error  string      `yaml:"error,omitempty"`  // E_TYPE, E_DIV, etc.
	Type   string      `yaml:"type,omitempty"`   // INT, FLOAT, STR, MATRIX
}

// IsSkipped returns true if this test should be skipped
func (tc *TestCase) IsSkipped() (bool, string) {
	if tc.Skip == nil {
		return false, ""
	}

	switch v := tc.Skip.(type) {
	case bool:
		if v {
			return true, "skipped"
		}
		return false, ""
	case string:
		return true, v
	default:
		return false, ""
	}
}
