package surfer

import (
	"github.com/liberborn/JsonSurfer/internal/binding"
	"github.com/liberborn/JsonSurfer/internal/collector"
	"github.com/liberborn/JsonSurfer/internal/listener"
	"github.com/liberborn/JsonSurfer/internal/pathcompile"
	"github.com/liberborn/JsonSurfer/internal/pathexpr"
	"github.com/liberborn/JsonSurfer/internal/provider"
)

// Builder is the fluent configurator from spec.md §6: Bind registers
// listeners against one or more compiled paths, the With* setters install
// collaborators, and Build freezes everything into a ready Context.
type Builder struct {
	bindings *binding.Builder

	provider           provider.Provider
	strategy           listener.ErrorStrategy
	skipOverlappedPath bool

	err error
}

// NewBuilder returns an empty Builder with no bindings and no collaborators
// set; Build fills in defaults for anything left unset.
func NewBuilder() *Builder {
	return &Builder{bindings: binding.NewBuilder()}
}

// Bind compiles path and registers listeners against every expression it
// denotes (more than one for a union bracket like "[0,2]"; see
// pathcompile.Compile). The first compile or bind error is sticky and
// surfaces from Build.
func (b *Builder) Bind(path string, listeners ...listener.Listener) *Builder {
	if b.err != nil {
		return b
	}
	exprs, err := pathcompile.Compile(path)
	if err != nil {
		b.err = err
		return b
	}
	for _, expr := range exprs {
		if err := b.bindings.Bind(expr, listeners...); err != nil {
			b.err = err
			return b
		}
	}
	return b
}

// BindExpr registers listeners against an already-compiled expression,
// bypassing pathcompile. Useful for callers that build expressions
// programmatically rather than from path text.
func (b *Builder) BindExpr(expr *pathexpr.Expression, listeners ...listener.Listener) *Builder {
	if b.err != nil {
		return b
	}
	if err := b.bindings.Bind(expr, listeners...); err != nil {
		b.err = err
	}
	return b
}

// BindTyped registers typed listeners against path, casting the assembled
// value with cast before each listener runs (spec.md supplemental feature:
// a thin adapter over listener.Typed).
func BindTyped[T any](b *Builder, path string, cast listener.CastFunc[T], typed ...listener.TypedListener[T]) *Builder {
	listeners := make([]listener.Listener, len(typed))
	for i, t := range typed {
		listeners[i] = listener.Typed(cast, t)
	}
	return b.Bind(path, listeners...)
}

// SkipOverlappedPath suppresses nested matches while an outer match is
// still recording (spec.md §6): while any collector is active, no binding
// (definite or indefinite) is matched at all.
func (b *Builder) SkipOverlappedPath() *Builder {
	b.skipOverlappedPath = true
	return b
}

// WithJSONProvider installs the value builder collectors use to assemble
// matched sub-trees. Default is provider.Default{} if never called.
func (b *Builder) WithJSONProvider(p provider.Provider) *Builder {
	b.provider = p
	return b
}

// WithErrorStrategy installs the listener/provider failure policy.
// Default is listener.ContinueOnError if never called.
func (b *Builder) WithErrorStrategy(s listener.ErrorStrategy) *Builder {
	b.strategy = s
	return b
}

// Build freezes the accumulated bindings into an Index and returns a ready
// Context. Build returns the first error encountered by Bind/BindExpr, if
// any; a Builder must not be reused after Build.
func (b *Builder) Build() (*Context, error) {
	if b.err != nil {
		return nil, b.err
	}

	p := b.provider
	if p == nil {
		p = provider.Default{}
	}
	strategy := b.strategy
	if strategy == nil {
		strategy = listener.ContinueOnError
	}

	return &Context{
		index:              b.bindings.Build(),
		dispatcher:         collector.New(),
		provider:           p,
		strategy:           strategy,
		skipOverlappedPath: b.skipOverlappedPath,
	}, nil
}
