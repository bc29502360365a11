package conformance

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// TestPath is the directory holding the YAML suites (relative to conformance/)
const TestPath = "testdata"

// LoadedTest represents a test with its source file path
type LoadedTest struct {
	File  string
	Suite TestSuite
	Test  TestCase
}

// LoadAllTests walks the conformance test directory and loads all test cases
func LoadAllTests() ([]LoadedTest, error) {
	// Try multiple path resolutions since tests run from different locations
	testDir := ""
	candidates := []string{
		TestPath,                               // running from conformance/
		filepath.Join("conformance", TestPath), // running from the module root
	}

	for _, candidate := range candidates {
		abs, err := filepath.Abs(candidate)
		if err == nil {
			if _, err := os.Stat(abs); err == nil {
				testDir = abs
				break
			}
		}
	}

	if testDir == "" {
		return nil, fmt.Errorf("could not find conformance test directory (tried %v)", candidates)
	}

	return LoadDir(testDir)
}

// LoadDir loads every .yaml suite under dir
func LoadDir(testDir string) ([]LoadedTest, error) {
	var loaded []LoadedTest

	err := filepath.Walk(testDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Only process .yaml files
		if info.IsDir() || filepath.Ext(path) != ".yaml" {
			return nil
		}

		tests, err := loadTestFile(path)
		if err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}

		// Get relative path for cleaner test names
		relPath, _ := filepath.Rel(testDir, path)

		for _, test := range tests {
			test.File = relPath
			loaded = append(loaded, test)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return loaded, nil
}

// loadTestFile parses a single YAML file and returns all test cases
func loadTestFile(path string) ([]LoadedTest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var suite TestSuite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, err
	}

	var tests []LoadedTest
	for _, test := range suite.Tests {
		tests = append(tests, LoadedTest{
			Suite: suite,
			Test:  test,
		})
	}

	return tests, nil
}
