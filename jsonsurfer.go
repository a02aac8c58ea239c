// Package jsonsurfer is a streaming JSONPath matcher: it drives a single
// SAX-style pass over a JSON document and invokes registered listeners the
// moment a bound path matches, without ever buffering the whole document in
// memory (spec.md §1).
//
// This package is a thin façade over internal/surfer, the way jacoelho/rq's
// cmd/rq/main.go is a thin façade over internal/rq/execute: the matching
// core, the binding index, and the collector/dispatcher stack all live
// under internal/ and are not meant to be imported directly.
package jsonsurfer

import (
	"io"

	"github.com/liberborn/JsonSurfer/internal/binding"
	"github.com/liberborn/JsonSurfer/internal/listener"
	"github.com/liberborn/JsonSurfer/internal/pathcompile"
	"github.com/liberborn/JsonSurfer/internal/provider"
	"github.com/liberborn/JsonSurfer/internal/saxjson"
	"github.com/liberborn/JsonSurfer/internal/surfer"
)

// Re-exported sentinel errors (spec.md §1.1's "core package exports").
var (
	ErrBuilderFrozen       = binding.ErrBuilderFrozen
	ErrUnsupportedOperator = pathcompile.ErrNotSupported
	ErrSyntax              = pathcompile.ErrSyntax
	ErrListenerFailure     = listener.ErrListenerFailure
	ErrProviderFailure     = listener.ErrProviderFailure
)

// Re-exported collaborator contracts, so callers never need to import
// internal packages to implement a Listener or a Provider.
type (
	// Listener receives one fully-assembled value per match.
	Listener = listener.Listener
	// Func adapts a plain function to Listener.
	Func = listener.Func
	// TypedListener receives the value after CastFunc has run.
	TypedListener[T any] = listener.TypedListener[T]
	// TypedFunc adapts a plain function to TypedListener.
	TypedFunc[T any] = listener.TypedFunc[T]
	// CastFunc converts an assembled, opaque value into T.
	CastFunc[T any] = listener.CastFunc[T]
	// ParsingContext exposes live parser state to a listener while it runs.
	ParsingContext = listener.ParsingContext
	// ErrorStrategy decides what happens when a listener or provider fails.
	ErrorStrategy = listener.ErrorStrategy
	// Action tells the caller what to do after a listener/provider failure.
	Action = listener.Action
	// Provider builds an opaque value incrementally as a collector records.
	Provider = provider.Provider
)

// Error-handling actions and strategies.
const (
	ActionContinue = listener.ActionContinue
	ActionStop     = listener.ActionStop
	ActionFatal    = listener.ActionFatal
)

var (
	ContinueOnError = listener.ContinueOnError
	StopOnError     = listener.StopOnError
	FatalOnError    = listener.FatalOnError
)

// Default is the standard-library value builder: objects become
// map[string]any, arrays become []any.
var Default Provider = provider.Default{}

// Gabs assembles values like Default, then wraps the finished root with
// gabs.Wrap, giving listeners the dotted-path query surface from
// github.com/Jeffail/gabs/v2 over every matched sub-tree.
var Gabs Provider = provider.Gabs{}

// Throttle wraps a Listener so it fires at most eventsPerSecond times per
// second, blocking the parser's own goroutine until admitted.
func Throttle(next Listener, eventsPerSecond float64) Listener {
	return listener.Throttle(next, eventsPerSecond)
}

// Typed wraps a TypedListener behind the plain Listener interface.
func Typed[T any](cast CastFunc[T], typed TypedListener[T]) Listener {
	return listener.Typed(cast, typed)
}

// Cast is the CastFunc usable with any Provider: it marshals the assembled
// value (unwrapping a Gabs container first, if present) and unmarshals it
// into T via encoding/json.
func Cast[T any](value any) (T, error) {
	return provider.Cast[T](value)
}

// Builder configures path-to-listener bindings and collaborators before
// freezing everything into a single-use Context via Build.
type Builder struct {
	inner *surfer.Builder
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{inner: surfer.NewBuilder()}
}

// Bind compiles path (spec.md §1's JSONPath subset) and registers listeners
// against every expression it denotes. The first compile or bind error is
// sticky and surfaces from Build.
func (b *Builder) Bind(path string, listeners ...Listener) *Builder {
	b.inner.Bind(path, listeners...)
	return b
}

// BindTyped registers typed listeners against path, casting the assembled
// value with cast before each listener runs.
func BindTyped[T any](b *Builder, path string, cast CastFunc[T], typed ...TypedListener[T]) *Builder {
	surfer.BindTyped(b.inner, path, cast, typed...)
	return b
}

// SkipOverlappedPath suppresses nested matches while an outer match is
// still recording.
func (b *Builder) SkipOverlappedPath() *Builder {
	b.inner.SkipOverlappedPath()
	return b
}

// WithJSONProvider installs the value builder collectors use to assemble
// matched sub-trees. Default is the Default provider if never called.
func (b *Builder) WithJSONProvider(p Provider) *Builder {
	b.inner.WithJSONProvider(p)
	return b
}

// WithErrorStrategy installs the listener/provider failure policy. Default
// is ContinueOnError if never called.
func (b *Builder) WithErrorStrategy(s ErrorStrategy) *Builder {
	b.inner.WithErrorStrategy(s)
	return b
}

// Build freezes the accumulated bindings into a single-use Context.
func (b *Builder) Build() (*Context, error) {
	ctx, err := b.inner.Build()
	if err != nil {
		return nil, err
	}
	return &Context{inner: ctx}, nil
}

// Context is a single-use, single-threaded SAX sink: build one via Builder,
// drive exactly one document through it with Parse, then discard it.
type Context struct {
	inner *surfer.Context
}

// Parse decodes r as a single JSON value, invoking every matched listener
// synchronously as the corresponding sub-tree completes.
func (c *Context) Parse(r io.Reader) error {
	return saxjson.Emit(r, c.inner)
}
