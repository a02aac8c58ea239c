package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	jsonsurfer "github.com/liberborn/JsonSurfer"
	"github.com/liberborn/JsonSurfer/internal/manifest"
)

// runStream builds the Context from cfg's manifest and streams cfg's input
// file through it, printing a per-binding summary for count sinks once the
// document ends.
func runStream(cfg *Config, log *logrus.Logger) error {
	manifestFile, err := os.Open(cfg.BindingFile)
	if err != nil {
		return fmt.Errorf("open bindings manifest: %w", err)
	}
	defer manifestFile.Close()

	m, err := manifest.Parse(manifestFile)
	if err != nil {
		return err
	}

	input, err := os.Open(cfg.InputFile)
	if err != nil {
		return fmt.Errorf("open input file: %w", err)
	}
	defer input.Close()

	counts := make(map[string]int)
	var gate jsonsurfer.Listener
	if cfg.RateLimit > 0 {
		// One limiter shared by every sink caps the combined match rate.
		gate = jsonsurfer.Throttle(jsonsurfer.Func(func(any, jsonsurfer.ParsingContext) error { return nil }), cfg.RateLimit)
	}
	builder := jsonsurfer.NewBuilder()
	for _, b := range m.Bindings {
		l := newListener(b, os.Stdout, debugLogger(log, cfg.Debug), counts)
		if gate != nil {
			next := l
			l = jsonsurfer.Func(func(value any, ctx jsonsurfer.ParsingContext) error {
				if err := gate.OnValue(value, ctx); err != nil {
					return err
				}
				return next.OnValue(value, ctx)
			})
		}
		builder = builder.Bind(b.Path, l)
		if b.SkipOverlapped {
			// SkipOverlappedPath is a context-wide setting (spec.md §6), so
			// any one binding requesting it turns it on for every binding.
			builder = builder.SkipOverlappedPath()
		}
	}

	ctx, err := builder.Build()
	if err != nil {
		return fmt.Errorf("build bindings: %w", err)
	}

	if err := ctx.Parse(input); err != nil {
		return fmt.Errorf("parse %s: %w", cfg.InputFile, err)
	}

	for _, b := range m.Bindings {
		if b.Sink == manifest.SinkCount {
			fmt.Fprintf(os.Stdout, "%s\t%d\n", b.Path, counts[b.Path])
		}
	}
	return nil
}

func debugLogger(log *logrus.Logger, enabled bool) *logrus.Logger {
	if !enabled {
		return nil
	}
	return log
}
