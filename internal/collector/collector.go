// Package collector implements the Collector and Dispatcher (spec.md
// §3/§4.6): the sub-tree builder registered when a structural binding
// matches, and the stack of currently-active collectors that broadcasts
// every SAX event to each of them.
//
// Ported from JsonCollector and ContentDispatcher in
// original_source/jsurfer-simple/src/main/java/org/jsfr/json/SurfingContext.java
// (referenced from SurfingContext, not itself included in the retained
// excerpt, so the field layout below follows the behavior spec.md §4.6
// describes rather than Java source directly), using this module's
// generic stack.Stack for each Collector's open-container frames the same
// way internal/position uses it for the live parse position.
package collector

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/liberborn/JsonSurfer/internal/listener"
	"github.com/liberborn/JsonSurfer/internal/provider"
	"github.com/liberborn/JsonSurfer/internal/stack"
)

type openFrame struct {
	container     any
	isArray       bool
	pendingKey    string
	hasPendingKey bool
}

// SurfaceContext is the slice of listener.ParsingContext a Collector needs
// from its enclosing SurfingContext: only cooperative cancellation.
// JSONPath and Key are deliberately excluded here: per spec.md §4.3/§4.5,
// endObject/endArray/primitive pop position *before* forwarding to the
// collector stack, so by the time a collector completes the live position
// has usually already moved past the matched value. A Collector instead
// snapshots its matched path and key once, at registration time, and
// answers from that snapshot for its whole life (spec.md §8 property 3:
// "getJsonPath() equals the canonical path of the matched value").
type SurfaceContext interface {
	StopParsing()
	IsStopped() bool
}

// Collector assembles one matched sub-tree and fires its listeners, in
// registration order, the moment its own nesting closes. It implements
// listener.ParsingContext itself (see CollectorID) so listeners observe the
// right correlation id without any shared mutable state.
type Collector struct {
	id        string
	provider  provider.Provider
	listeners []listener.Listener
	strategy  listener.ErrorStrategy
	ctx       SurfaceContext

	path   string
	key    string
	hasKey bool

	frames *stack.Stack[openFrame]
	depth  int
	done   bool
}

// NewCollector registers a fresh collector for a structural match. ctx is
// the enclosing SurfingContext's cancellation surface, reused by every
// collector. path and key/hasKey are the matched position's JSONPath and
// key, captured once at match time since the live position will have
// moved on by the time this collector completes.
func NewCollector(p provider.Provider, listeners []listener.Listener, strategy listener.ErrorStrategy, ctx SurfaceContext, path string, key string, hasKey bool) *Collector {
	return &Collector{
		id:        uuid.New().String(),
		provider:  p,
		listeners: listeners,
		strategy:  strategy,
		ctx:       ctx,
		path:      path,
		key:       key,
		hasKey:    hasKey,
		frames:    stack.NewWithCapacity[openFrame](8),
	}
}

// ID is the collector's correlation id (spec.md §9's provision for
// surfacing a per-collector identity to logging).
func (c *Collector) ID() string { return c.id }

// JSONPath and Key answer from the snapshot taken when this collector was
// registered; StopParsing and IsStopped delegate to the enclosing
// SurfingContext; CollectorID answers with this collector's own id. Taken
// together these make *Collector itself a listener.ParsingContext.
func (c *Collector) JSONPath() string    { return c.path }
func (c *Collector) Key() (string, bool) { return c.key, c.hasKey }
func (c *Collector) StopParsing()        { c.ctx.StopParsing() }
func (c *Collector) IsStopped() bool     { return c.ctx.IsStopped() }
func (c *Collector) CollectorID() string { return c.id }

// Done reports whether this collector has fired its listeners and should
// be removed from the Dispatcher.
func (c *Collector) Done() bool { return c.done }

func (c *Collector) StartObject() { c.open(c.provider.CreateObject(), false) }
func (c *Collector) StartArray()  { c.open(c.provider.CreateArray(), true) }

func (c *Collector) open(container any, isArray bool) {
	if c.done {
		return
	}
	c.depth++
	c.frames.Push(openFrame{container: container, isArray: isArray})
}

func (c *Collector) EndObject() { c.close() }
func (c *Collector) EndArray()  { c.close() }

func (c *Collector) close() {
	if c.done {
		return
	}
	closed, ok := c.frames.Pop()
	if !ok {
		return
	}
	c.depth--
	c.attach(closed.container)
}

// StartObjectEntry records the key the next value (primitive or container)
// belongs to; it never changes depth.
func (c *Collector) StartObjectEntry(key string) {
	if c.done {
		return
	}
	if top := c.frames.PeekRef(); top != nil {
		top.pendingKey = key
		top.hasPendingKey = true
	}
}

// Primitive attaches a scalar value to whatever container is currently
// open. Primitives never change depth.
func (c *Collector) Primitive(value any) {
	if c.done {
		return
	}
	v := c.provider.Primitive(value)
	if value == nil {
		v = c.provider.PrimitiveNull()
	}
	c.attach(v)
}

func (c *Collector) attach(value any) {
	if c.frames.IsEmpty() {
		c.complete(value)
		return
	}
	top := c.frames.PeekRef()
	if top.isArray {
		top.container = c.provider.ConsumeArrayElement(top.container, value)
		return
	}
	if !top.hasPendingKey {
		return
	}
	top.container = c.provider.ConsumeObjectEntry(top.container, top.pendingKey, value)
	top.hasPendingKey = false
}

func (c *Collector) complete(root any) {
	final := c.provider.Finalize(root)
	c.done = true

	for _, l := range c.listeners {
		if c.ctx.IsStopped() {
			break
		}
		if err := c.invoke(l, final); err != nil {
			switch c.strategy.HandleListenerError(err, c) {
			case listener.ActionStop:
				c.ctx.StopParsing()
			case listener.ActionFatal:
				panic(fmt.Errorf("jsonsurfer: fatal listener error: %w", err))
			}
		}
	}
}

func (c *Collector) invoke(l listener.Listener, value any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", listener.ErrListenerFailure, r)
		}
	}()
	return l.OnValue(value, c)
}
