package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when -config is not given
const DefaultPath = "mtl.yaml"

// Config holds the CLI settings read from mtl.yaml
type Config struct {
	Trace TraceConfig `yaml:"trace"`
	Ticks int64       `yaml:"ticks"` // per-run tick budget, 0 = unlimited
	REPL  REPLConfig  `yaml:"repl"`
}

// TraceConfig controls the execution tracer
type TraceConfig struct {
	Enabled bool     `yaml:"enabled"`
	Filters []string `yaml:"filters"` // glob patterns on frame tags
}

// REPLConfig controls the interactive prompt
type REPLConfig struct {
	History string `yaml:"history"` // history file; relative paths are under $HOME
	Prompt  string `yaml:"prompt"`
}

// Default returns the settings used when no config file exists
func Default() *Config {
	return &Config{
		REPL: REPLConfig{
			History: ".mtl_history",
			Prompt:  "mtl> ",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error
// unless required is set.
func Load(path string, required bool) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the interpreter cannot honor
func (c *Config) Validate() error {
	if c.Ticks < 0 {
		return fmt.Errorf("ticks must not be negative, got %d", c.Ticks)
	}
	for _, f := range c.Trace.Filters {
		if strings.TrimSpace(f) == "" {
			return errors.New("trace filters must not be empty")
		}
	}
	return nil
}

// SetFilters replaces the trace filters with a comma separated list
func (c *Config) SetFilters(list string) {
	c.Trace.Filters = nil
	for _, f := range strings.Split(list, ",") {
		if f = strings.TrimSpace(f); f != "" {
			c.Trace.Filters = append(c.Trace.Filters, f)
		}
	}
}
