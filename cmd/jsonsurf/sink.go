package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	jsonsurfer "github.com/liberborn/JsonSurfer"
	"github.com/liberborn/JsonSurfer/internal/manifest"
)

// newListener builds the jsonsurfer.Listener a manifest binding routes its
// matches through: a JSON-encoding writer, a counter, or a no-op, optionally
// wrapped in a rate limiter and a debug logger.
func newListener(b manifest.Binding, out io.Writer, log *logrus.Logger, counts map[string]int) jsonsurfer.Listener {
	var l jsonsurfer.Listener
	switch b.Sink {
	case manifest.SinkStdout:
		l = jsonsurfer.Func(func(value any, ctx jsonsurfer.ParsingContext) error {
			enc, err := json.Marshal(value)
			if err != nil {
				return fmt.Errorf("encode match at %s: %w", ctx.JSONPath(), err)
			}
			_, err = fmt.Fprintf(out, "%s\t%s\n", ctx.JSONPath(), enc)
			return err
		})
	case manifest.SinkCount:
		l = jsonsurfer.Func(func(value any, ctx jsonsurfer.ParsingContext) error {
			counts[b.Path]++
			return nil
		})
	case manifest.SinkDiscard:
		l = jsonsurfer.Func(func(value any, ctx jsonsurfer.ParsingContext) error {
			return nil
		})
	default:
		// Validate already rejected any other sink.
		l = jsonsurfer.Func(func(value any, ctx jsonsurfer.ParsingContext) error { return nil })
	}

	if b.RateLimit > 0 {
		l = jsonsurfer.Throttle(l, b.RateLimit)
	}
	if log != nil {
		l = withDebugLog(l, b.Path, log)
	}
	return l
}

// withDebugLog wraps next so every invocation emits a structured debug
// record before the underlying listener runs.
func withDebugLog(next jsonsurfer.Listener, path string, log *logrus.Logger) jsonsurfer.Listener {
	return jsonsurfer.Func(func(value any, ctx jsonsurfer.ParsingContext) error {
		log.WithFields(logrus.Fields{
			"path":         ctx.JSONPath(),
			"binding":      path,
			"collector_id": ctx.CollectorID(),
		}).Debug("match")
		return next.OnValue(value, ctx)
	})
}
