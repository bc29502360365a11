package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"mtl/config"
	"mtl/eval"
	"mtl/parser"
	"mtl/trace"
	"mtl/types"
)

func main() {
	configPath := flag.String("config", "", "Config file path (default mtl.yaml if present)")
	evalSource := flag.String("e", "", "Evaluate a program given on the command line")
	ticks := flag.Int64("ticks", 0, "Tick budget per run, 0 = unlimited")

	// Trace flags
	traceEnabled := flag.Bool("trace", false, "Enable execution tracing")
	traceFilter := flag.String("trace-filter", "", "Trace filter patterns on frame tags (glob, comma separated, e.g. '*Loop,If')")

	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	path, required := config.DefaultPath, false
	if *configPath != "" {
		path, required = *configPath, true
	}
	cfg, err := config.Load(path, required)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	// Flags given explicitly override the file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "ticks":
			cfg.Ticks = *ticks
		case "trace":
			cfg.Trace.Enabled = *traceEnabled
		case "trace-filter":
			cfg.SetFilters(*traceFilter)
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid settings")
	}

	// Initialize tracer
	if cfg.Trace.Enabled {
		trace.Init(true, cfg.Trace.Filters, os.Stderr)
		log.Debug().Strs("filters", cfg.Trace.Filters).Msg("Tracing enabled")
	} else {
		trace.Init(false, nil, nil)
	}

	switch {
	case *evalSource != "":
		os.Exit(runSource(*evalSource, cfg.Ticks))
	case flag.NArg() > 0:
		file := flag.Arg(0)
		src, err := os.ReadFile(file)
		if err != nil {
			log.Error().Err(err).Str("file", file).Msg("Cannot read program")
			os.Exit(1)
		}
		os.Exit(runSource(string(src), cfg.Ticks))
	default:
		os.Exit(repl(cfg))
	}
}

// runSource parses and evaluates a whole program, printing to stdout.
// A top-level return value is printed after the program's own output.
func runSource(src string, ticks int64) int {
	prog, err := parser.Parse(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, red(fmt.Sprintf("parse error: %v", err)))
		return 2
	}

	val, err := eval.Run(prog, os.Stdout, types.NewTaskContextWithTicks(ticks))
	if err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		return 1
	}
	if val != nil {
		fmt.Println(val.String())
	}
	return 0
}
