// Package surfer implements the SurfingContext (spec.md §3/§4.5/§4.6): the
// central state machine that consumes SAX events, advances the live parse
// position, queries the binding index, and hands matched sub-trees to the
// collector dispatcher.
//
// Ported from org.jsfr.json.SurfingContext in
// original_source/jsurfer-simple/src/main/java/org/jsfr/json/SurfingContext.java,
// generalized the way jacoelho/rq's streamContext (internal/jsonpath/jsonpath.go)
// drives its own token loop off explicit stack state rather than recursion.
package surfer

import (
	"fmt"

	"github.com/liberborn/JsonSurfer/internal/binding"
	"github.com/liberborn/JsonSurfer/internal/collector"
	"github.com/liberborn/JsonSurfer/internal/listener"
	"github.com/liberborn/JsonSurfer/internal/pathexpr"
	"github.com/liberborn/JsonSurfer/internal/pathop"
	"github.com/liberborn/JsonSurfer/internal/position"
	"github.com/liberborn/JsonSurfer/internal/provider"
)

// Context is a single-use, single-threaded SAX sink (spec.md §5: "explicitly
// not thread-safe; concurrent calls are a programming error"). Build one via
// Builder, feed it exactly one parser pass, then discard it.
type Context struct {
	pos        *position.Position
	index      *binding.Index
	dispatcher *collector.Dispatcher
	provider   provider.Provider
	strategy   listener.ErrorStrategy

	skipOverlappedPath bool
	stopped            bool
}

// JSONPath returns the canonical dot-and-bracket path of the current
// position (spec.md §6: "$.a.b[3].c").
func (c *Context) JSONPath() string { return c.pos.String() }

// Key returns the current object key and true if the innermost frame is an
// object entry, or ("", false) otherwise.
func (c *Context) Key() (string, bool) {
	if c.pos.PeekKind() != pathop.KindObject {
		return "", false
	}
	return c.pos.Key(), true
}

// StopParsing latches cancellation: every subsequent event becomes a no-op
// except document teardown (spec.md §5). Idempotent.
func (c *Context) StopParsing() { c.stopped = true }

// IsStopped reports whether StopParsing has been called.
func (c *Context) IsStopped() bool { return c.stopped }

var _ collector.SurfaceContext = (*Context)(nil)
var _ listener.ParsingContext = contextWithZeroCollector{}

// contextWithZeroCollector answers CollectorID with the empty string: it is
// the ParsingContext observed by listeners of a primitive matched as an
// array element or as the document root, which is delivered directly
// without a Collector (spec.md §4.5 step 3). An object entry's value is
// matched at its key and always goes through a Collector, even a scalar.
type contextWithZeroCollector struct{ *Context }

func (contextWithZeroCollector) CollectorID() string { return "" }

// StartJSON resets position tracking. A Context may only be driven through
// one full document; calling StartJSON again on a used Context is a
// programming error the same way reusing a SurfingContext is in the source.
func (c *Context) StartJSON() {
	c.pos = position.New()
}

// EndJSON releases the position and collector stacks (spec.md §5's resource
// lifecycle: "endJSON releases the position, the lookup tables, and drops
// all collectors").
func (c *Context) EndJSON() {
	c.pos = nil
	c.dispatcher = collector.New()
}

func (c *Context) StartObject() {
	if c.stopped {
		return
	}
	c.matchBeforeContainerOpen()
	c.dispatcher.StartObject()
}

func (c *Context) EndObject() {
	if c.stopped {
		return
	}
	c.pos.PopObjectIfTop()
	c.dispatcher.EndObject()
}

func (c *Context) StartObjectEntry(key string) {
	if c.stopped {
		return
	}
	c.pos.PushChild(key)
	c.dispatcher.StartObjectEntry(key)
	c.doMatching(false, nil)
}

func (c *Context) StartArray() {
	if c.stopped {
		return
	}
	c.matchBeforeContainerOpen()
	c.pos.PushArray()
	c.dispatcher.StartArray()
}

func (c *Context) EndArray() {
	if c.stopped {
		return
	}
	c.pos.PopArray()
	c.dispatcher.EndArray()
}

// Primitive implements spec.md §4.5's rule: "if parent frame is ARRAY,
// increment index and run primitive matching (carrying v); else if parent
// is OBJECT, pop the entry frame". An OBJECT parent was already matched
// when its own startObjectEntry ran (the entry's value, whatever it turns
// out to be, matches there); matching again here would double-fire any
// binding on it. A ROOT parent (a bare scalar document) has no earlier
// event to have matched it, so matching runs here instead, symmetric with
// the startObject/startArray ROOT case in matchBeforeContainerOpen.
func (c *Context) Primitive(value any) {
	if c.stopped {
		return
	}
	switch c.pos.PeekKind() {
	case pathop.KindArray:
		c.pos.IncrementArrayIndex()
		c.doMatching(true, value)
	case pathop.KindObject:
		c.pos.PopObjectIfTop()
	default:
		c.doMatching(true, value)
	}
	c.dispatcher.Primitive(value)
}

// matchBeforeContainerOpen implements spec.md §4.5's rule shared by
// startObject and startArray: "if parent frame is ARRAY, increment its
// index and run matching first (the object itself may be a matched
// element)". It also covers the ROOT parent case (the container is the
// whole document), which the prose is silent on but which the Primitive
// handler's symmetric ROOT branch requires for consistency: a binding on
// "$" must fire whether the document root is a scalar, object, or array.
// An OBJECT parent (the container is a named entry's value) was already
// matched when its enclosing startObjectEntry ran, so this is a no-op
// there.
func (c *Context) matchBeforeContainerOpen() {
	switch c.pos.PeekKind() {
	case pathop.KindArray:
		c.pos.IncrementArrayIndex()
		c.doMatching(false, nil)
	case pathop.KindObject:
		return
	default:
		c.doMatching(false, nil)
	}
}

// doMatching is the procedure from spec.md §4.5.
func (c *Context) doMatching(onPrimitive bool, primitiveValue any) {
	if c.skipOverlappedPath && !c.dispatcher.IsEmpty() {
		return
	}

	var structural []listener.Listener
	matchFn := func(e *pathexpr.Expression) bool { return e.Match(c.pos.Frames()) }

	c.index.Lookup(c.pos.Depth(), matchFn, func(b *binding.Binding) {
		if !onPrimitive {
			structural = append(structural, b.Listeners...)
			return
		}
		zeroCtx := contextWithZeroCollector{c}
		for _, l := range b.Listeners {
			if c.stopped {
				break
			}
			if err := invoke(l, primitiveValue, zeroCtx); err != nil {
				c.handleFailure(err, zeroCtx)
			}
		}
	})

	if len(structural) > 0 {
		key, hasKey := c.Key()
		col := collector.NewCollector(c.provider, structural, c.strategy, c, c.JSONPath(), key, hasKey)
		c.dispatcher.Add(col)
	}
}

func (c *Context) handleFailure(err error, ctx listener.ParsingContext) {
	switch c.strategy.HandleListenerError(err, ctx) {
	case listener.ActionStop:
		c.StopParsing()
	case listener.ActionFatal:
		panic(fmt.Errorf("jsonsurfer: fatal listener error: %w", err))
	}
}

func invoke(l listener.Listener, value any, ctx listener.ParsingContext) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", listener.ErrListenerFailure, r)
		}
	}()
	return l.OnValue(value, ctx)
}
