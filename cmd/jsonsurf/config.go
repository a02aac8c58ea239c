package main

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/liberborn/JsonSurfer/internal/exit"
)

var (
	ErrNoArguments = errors.New("no arguments provided")
	ErrNoInputFile = errors.New("no input file specified")
	ErrNoBindings  = errors.New("no -bindings manifest specified")
)

// Config is the complete configuration for the jsonsurf CLI.
type Config struct {
	InputFile   string
	BindingFile string
	Debug       bool
	RateLimit   float64 // Matches per second, shared across every sink (0 = unlimited)
}

// Usage returns the CLI's help text.
func Usage() string {
	return `jsonsurf - stream a JSON document through a manifest of JSONPath bindings

Usage:
  jsonsurf [flags] <input-file>

Flags:
  -bindings string   Path to a YAML binding manifest (required)
  -rate float        Cap matches per second across every sink (0 = unlimited)
  -debug             Enable debug logging of every match

Example:
  jsonsurf -bindings=bindings.yaml data.json
`
}

// Parse parses command-line arguments and returns a validated Config.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrNoArguments, Usage())
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)

	var (
		bindings  = fs.String("bindings", "", "Path to a YAML binding manifest")
		rateLimit = fs.Float64("rate", 0, "Cap matches per second across every sink (0 for unlimited)")
		debug     = fs.Bool("debug", false, "Enable debug logging of every match")
	)

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Errorf("Error: failed to parse arguments: %v\n\n%s", err, Usage())
	}

	if *bindings == "" {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrNoBindings, Usage())
	}

	files := fs.Args()
	if len(files) == 0 {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrNoInputFile, Usage())
	}
	if len(files) > 1 {
		return nil, exit.Errorf("Error: jsonsurf reads exactly one input file, got %d\n\n%s", len(files), Usage())
	}

	return &Config{
		InputFile:   files[0],
		BindingFile: *bindings,
		Debug:       *debug,
		RateLimit:   *rateLimit,
	}, nil
}

func (c *Config) String() string {
	return fmt.Sprintf("Config{InputFile: %s, BindingFile: %s, Debug: %v, RateLimit: %v}",
		c.InputFile, c.BindingFile, c.Debug, c.RateLimit)
}
