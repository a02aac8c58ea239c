// Package listener defines the observer contract invoked when a registered
// JSONPath binding matches, plus the typed-listener adapter from
// spec.md §9 ("the 'typed listener' wrapper applies the value builder's
// cast on the assembled value and forwards to the user listener").
//
// Ported from org.jsfr.json.JsonPathListener / TypedJsonPathListener and
// ParsingContext in original_source/jsurfer-simple.
package listener

import "fmt"

// ParsingContext exposes live parser state to a listener while it runs,
// matching SurfingContext's public ParsingContext surface (spec.md §6):
// the canonical path of the match, the current object key (if any), and
// cooperative-cancellation controls.
type ParsingContext interface {
	JSONPath() string
	Key() (string, bool)
	StopParsing()
	IsStopped() bool
	// CollectorID is the id of the collector currently assembling this
	// match, or "" for a primitive matched as an array element or as the
	// document root (delivered without a collector). An object entry's
	// value always has a collector, even when it is a scalar. See
	// internal/collector.
	CollectorID() string
}

// Listener receives one fully-assembled value per match. Implementations
// must not retain the ParsingContext beyond the call.
type Listener interface {
	OnValue(value any, ctx ParsingContext) error
}

// Func adapts a plain function to Listener.
type Func func(value any, ctx ParsingContext) error

func (f Func) OnValue(value any, ctx ParsingContext) error { return f(value, ctx) }

// TypedListener is the generic counterpart of Listener: it receives the
// value after the configured cast has run.
type TypedListener[T any] interface {
	OnTypedValue(value T, ctx ParsingContext) error
}

// TypedFunc adapts a plain function to TypedListener.
type TypedFunc[T any] func(value T, ctx ParsingContext) error

func (f TypedFunc[T]) OnTypedValue(value T, ctx ParsingContext) error { return f(value, ctx) }

// CastFunc converts an assembled, opaque value into T. It is supplied by
// whichever value-builder provider is in use (internal/provider), since
// only the provider knows how its opaque values are represented.
type CastFunc[T any] func(value any) (T, error)

// Typed wraps a TypedListener behind the plain Listener interface, running
// cast first. This adapter is intentionally outside the matching hot path:
// it only ever runs once per completed match.
func Typed[T any](cast CastFunc[T], typed TypedListener[T]) Listener {
	return Func(func(value any, ctx ParsingContext) error {
		casted, err := cast(value)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrProviderFailure, err)
		}
		return typed.OnTypedValue(casted, ctx)
	})
}
