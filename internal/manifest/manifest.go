// Package manifest decodes the YAML file that tells cmd/jsonsurf which
// JSONPath bindings to install and which sink each one writes matches to.
//
// Ported from jacoelho/rq's internal/rq/yaml/yaml.go: the same struct-tag
// decoding style against github.com/goccy/go-yaml, trimmed from rq's full
// HTTP-step schema down to the handful of fields a binding manifest needs.
package manifest

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// Sink names a built-in output target for matched values. cmd/jsonsurf maps
// these to concrete writers; the manifest format stays decoupled from any
// particular destination.
type Sink string

const (
	// SinkStdout writes one line per match to standard output: the match's
	// JSONPath, a tab, and the JSON-encoded value.
	SinkStdout Sink = "stdout"
	// SinkCount only tallies matches per binding and reports the count
	// when the stream ends, discarding the values themselves.
	SinkCount Sink = "count"
	// SinkDiscard runs the binding for its side effects (useful together
	// with RateLimit to load-test a listener) without recording anything.
	SinkDiscard Sink = "discard"
)

// Binding is one path-to-sink entry in a manifest file.
type Binding struct {
	// Path is the JSONPath expression compiled by internal/pathcompile.
	Path string `yaml:"path"`
	// Sink selects where matched values are routed.
	Sink Sink `yaml:"sink"`
	// SkipOverlapped maps to Builder.SkipOverlappedPath, which is a
	// context-wide setting: setting it on any one binding turns it on for
	// every binding in the manifest.
	SkipOverlapped bool `yaml:"skip_overlapped,omitempty"`
	// RateLimit caps this binding's matches per second (0 = unlimited),
	// wired through internal/listener.Throttle.
	RateLimit float64 `yaml:"rate_limit,omitempty"`
}

// Manifest is the top-level decoded document.
type Manifest struct {
	Bindings []Binding `yaml:"bindings"`
}

// Parse decodes a binding manifest from r.
func Parse(r io.Reader) (*Manifest, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("manifest: read: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(buf, &m); err != nil {
		return nil, fmt.Errorf("manifest: decode YAML: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate rejects a manifest with no bindings or a binding missing its
// path, and normalizes an unset sink to SinkStdout.
func (m *Manifest) Validate() error {
	if len(m.Bindings) == 0 {
		return fmt.Errorf("manifest: no bindings declared")
	}
	for i := range m.Bindings {
		b := &m.Bindings[i]
		if b.Path == "" {
			return fmt.Errorf("manifest: binding %d is missing a path", i)
		}
		switch b.Sink {
		case "":
			b.Sink = SinkStdout
		case SinkStdout, SinkCount, SinkDiscard:
		default:
			return fmt.Errorf("manifest: binding %d: unknown sink %q", i, b.Sink)
		}
	}
	return nil
}
