package listener

// Action tells the caller what to do after a listener or provider failure.
type Action uint8

const (
	// ActionContinue swallows the error and keeps parsing (spec.md §7:
	// "a single listener or provider failure must not corrupt the
	// position stack or the collector stack").
	ActionContinue Action = iota
	// ActionStop calls StopParsing on the current ParsingContext.
	ActionStop
	// ActionFatal re-raises the error as unrecoverable; callers that want
	// fail-fast behavior (e.g. a CLI in strict mode) use this.
	ActionFatal
)

// ErrorStrategy decides what happens when a listener (ErrListenerFailure)
// or a provider (ErrProviderFailure) fails. Ported from
// ErrorHandlingStrategy, referenced but not defined in
// original_source/jsurfer-simple's SurfingContext; spec.md §7 requires one
// to be installed.
type ErrorStrategy interface {
	HandleListenerError(err error, ctx ParsingContext) Action
}

// StrategyFunc adapts a function to ErrorStrategy.
type StrategyFunc func(err error, ctx ParsingContext) Action

func (f StrategyFunc) HandleListenerError(err error, ctx ParsingContext) Action { return f(err, ctx) }

// ContinueOnError is the default strategy: log nothing, keep parsing.
var ContinueOnError ErrorStrategy = StrategyFunc(func(error, ParsingContext) Action {
	return ActionContinue
})

// StopOnError halts parsing the first time any listener or provider fails.
var StopOnError ErrorStrategy = StrategyFunc(func(err error, ctx ParsingContext) Action {
	return ActionStop
})

// FatalOnError panics on the first failure. Intended for callers (e.g. a
// strict-mode CLI) that would rather crash loudly than silently drop data.
var FatalOnError ErrorStrategy = StrategyFunc(func(err error, ctx ParsingContext) Action {
	return ActionFatal
})
