// Package position implements CurrentPosition (spec.md §3/§4.3): the
// mutable stack of pathop.Frame values that tracks the parser's live
// location in the document as SAX events arrive.
//
// Ported from JsonPosition in original_source/jsurfer-simple (referenced,
// not included, by SurfingContext.java) and from the frame-stack idiom in
// jacoelho/rq's streamContext.pathStack (internal/jsonpath/jsonpath.go),
// reusing this module's generic stack.Stack for the backing storage.
package position

import (
	"strconv"
	"strings"

	"github.com/liberborn/JsonSurfer/internal/pathop"
	"github.com/liberborn/JsonSurfer/internal/stack"
)

// Position tracks the parser's current location as a stack of frames.
// Frame 0 is always the synthetic Root frame.
type Position struct {
	frames *stack.Stack[pathop.Frame]
}

// New starts a position with only the root frame pushed, mirroring
// JsonPosition.start() / SurfingContext.startJSON().
func New() *Position {
	p := &Position{frames: stack.NewWithCapacity[pathop.Frame](16)}
	p.frames.Push(pathop.Frame{Kind: pathop.KindRoot})
	return p
}

// PushChild enters a named object entry. spec.md §4.3: "An OBJECT frame
// represents 'inside this named entry'; it is pushed on
// startObjectEntry(key)".
func (p *Position) PushChild(key string) {
	p.frames.Push(pathop.Frame{Kind: pathop.KindObject, Key: key})
}

// PushArray enters an array container with its index counter unset.
func (p *Position) PushArray() {
	p.frames.Push(pathop.Frame{Kind: pathop.KindArray, Index: -1})
}

// PopObjectIfTop pops the current frame if it is an OBJECT frame, used by
// endObject and by the primitive handler when a scalar closes an entry.
func (p *Position) PopObjectIfTop() {
	if p.PeekKind() == pathop.KindObject {
		p.frames.Pop()
	}
}

// PopArray pops the ARRAY frame that endArray closes, then pops one more
// frame if that exposes an enclosing OBJECT entry frame. This is the
// "double-pop" rule from spec.md §9's open question, resolved as specified:
// an array nested inside a named entry pops both the array and the entry
// on array close.
func (p *Position) PopArray() {
	p.frames.Pop()
	p.PopObjectIfTop()
}

// IncrementArrayIndex advances the running index of the top ARRAY frame.
// Must run before matching on every element start (object, array, or
// primitive) per spec.md §9: "If this ordering is changed, $[0] will never
// fire."
func (p *Position) IncrementArrayIndex() {
	if ref := p.frames.PeekRef(); ref != nil && ref.Kind == pathop.KindArray {
		ref.Index++
	}
}

// Peek returns the innermost frame.
func (p *Position) Peek() pathop.Frame {
	f, _ := p.frames.Peek()
	return f
}

// PeekKind is a convenience accessor equivalent to Peek().Kind.
func (p *Position) PeekKind() pathop.FrameKind {
	return p.Peek().Kind
}

// Key returns the current object key if the innermost frame is OBJECT, or
// "" otherwise. SurfingContext.getKey() returns null in that case; callers
// distinguish via PeekKind.
func (p *Position) Key() string {
	f := p.Peek()
	if f.Kind == pathop.KindObject {
		return f.Key
	}
	return ""
}

// Depth is the number of live frames, including the root frame.
func (p *Position) Depth() int {
	return p.frames.Size()
}

// Frames exposes the live frame slice (bottom-to-top) for the matcher.
// Callers must not retain the slice across further mutation of Position.
func (p *Position) Frames() []pathop.Frame {
	return p.frames.ToSlice()
}

// String renders the canonical dot-and-bracket JSONPath for the current
// position, e.g. "$.a.b[3].c", matching SurfingContext.getJsonPath().
func (p *Position) String() string {
	var b strings.Builder
	b.WriteByte('$')
	frames := p.frames.ToSlice()
	for _, f := range frames[1:] {
		switch f.Kind {
		case pathop.KindObject:
			b.WriteByte('.')
			b.WriteString(f.Key)
		case pathop.KindArray:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(f.Index))
			b.WriteByte(']')
		}
	}
	return b.String()
}
