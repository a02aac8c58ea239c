package listener

import "errors"

// ErrListenerFailure wraps a panic recovered from Listener.OnValue
// (spec.md §7); an error the listener returns is handed to the
// ErrorStrategy as is, without this wrapper. Neither is propagated to the
// parser; ErrorStrategy decides what happens next.
var ErrListenerFailure = errors.New("listener: failure")

// ErrProviderFailure wraps a value-builder failure, such as a failed
// CastFunc in Typed. Routed through ErrorStrategy identically to a listener
// failure (spec.md §7).
var ErrProviderFailure = errors.New("listener: provider failure")
