// Package binding implements the BindingIndex (spec.md §3/§4.4): the
// two-tier lookup table of (expression, listeners) pairs partitioned into a
// depth-indexed table for definite paths and a depth-sorted slice for
// indefinite paths.
//
// Ported from SurfingContext.Builder's definiteBindings/indefiniteBindings
// maps and the frozen definitePathLookup/indefinitePathLookup arrays in
// original_source/jsurfer-simple/src/main/java/org/jsfr/json/SurfingContext.java.
package binding

import (
	"errors"
	"slices"

	"github.com/liberborn/JsonSurfer/internal/listener"
	"github.com/liberborn/JsonSurfer/internal/pathexpr"
)

// ErrBuilderFrozen is returned when a Builder is mutated after Build.
var ErrBuilderFrozen = errors.New("binding: builder already built")

// Binding pairs a compiled expression with the listeners to notify.
type Binding struct {
	Expression *pathexpr.Expression
	Listeners  []listener.Listener
}

type indefiniteBinding struct {
	Binding
	minimumPathDepth int
}

// Index is the frozen, query-ready form of a BindingIndex. It is built once
// via Builder and is safe for concurrent read-only lookups thereafter (the
// surrounding SurfingContext is still single-producer, but the index itself
// never mutates after Build).
type Index struct {
	definite   [][]Binding // definite[depth-minDepth] -> bindings at that depth
	minDepth   int
	maxDepth   int
	indefinite []indefiniteBinding // sorted ascending by minimumPathDepth
}

// Lookup returns every binding (both tiers) whose expression accepts the
// frame set currently at depth currentDepth, running Expression.Match only
// for bindings the depth bounds cannot already rule out.
func (idx *Index) Lookup(currentDepth int, matches func(e *pathexpr.Expression) bool, fn func(b *Binding)) {
	for i := range idx.indefinite {
		ib := &idx.indefinite[i]
		if ib.minimumPathDepth > currentDepth {
			// Sorted ascending: every later entry also needs more depth.
			break
		}
		if matches(ib.Expression) {
			fn(&ib.Binding)
		}
	}

	if idx.definite == nil || currentDepth < idx.minDepth || currentDepth > idx.maxDepth {
		return
	}
	for i := range idx.definite[currentDepth-idx.minDepth] {
		b := &idx.definite[currentDepth-idx.minDepth][i]
		if matches(b.Expression) {
			fn(b)
		}
	}
}

// Builder accumulates bindings before freezing them into an Index.
type Builder struct {
	built      bool
	definite   map[int][]Binding
	indefinite []indefiniteBinding
	minDepth   int
	maxDepth   int
}

// NewBuilder returns an empty, mutable Builder.
func NewBuilder() *Builder {
	return &Builder{
		definite: make(map[int][]Binding),
		minDepth: int(^uint(0) >> 1), // max int, narrowed down as bindings arrive
		maxDepth: -1,
	}
}

// Bind registers one (expression, listeners) pair, filing it into the
// definite or indefinite tier based on Expression.IsDefinite.
func (b *Builder) Bind(expr *pathexpr.Expression, listeners ...listener.Listener) error {
	if b.built {
		return ErrBuilderFrozen
	}

	binding := Binding{Expression: expr, Listeners: append([]listener.Listener(nil), listeners...)}

	if !expr.IsDefinite() {
		b.indefinite = append(b.indefinite, indefiniteBinding{
			Binding:          binding,
			minimumPathDepth: expr.MinimumPathDepth(),
		})
		return nil
	}

	depth := expr.PathDepth()
	if depth < b.minDepth {
		b.minDepth = depth
	}
	if depth > b.maxDepth {
		b.maxDepth = depth
	}
	b.definite[depth] = append(b.definite[depth], binding)
	return nil
}

// Build freezes the builder into a queryable Index. Each call returns a
// fresh Index built from the same committed bindings; further Bind calls
// after Build fail with ErrBuilderFrozen.
func (b *Builder) Build() *Index {
	b.built = true

	idx := &Index{minDepth: b.minDepth, maxDepth: b.maxDepth}

	if len(b.indefinite) > 0 {
		idx.indefinite = append([]indefiniteBinding(nil), b.indefinite...)
		slices.SortFunc(idx.indefinite, func(a, c indefiniteBinding) int {
			return a.minimumPathDepth - c.minimumPathDepth
		})
	}

	if len(b.definite) > 0 {
		idx.definite = make([][]Binding, b.maxDepth-b.minDepth+1)
		for depth, bindings := range b.definite {
			idx.definite[depth-b.minDepth] = bindings
		}
	}

	return idx
}
