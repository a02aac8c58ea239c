// Package pathexpr implements PathExpression (spec.md §3/§4.2): an ordered
// sequence of pathop.Operator values together with the derived attributes
// the binding index needs (IsDefinite, PathDepth, MinimumPathDepth) and the
// whole-expression matcher.
//
// The matcher is the greedy-first-fit, no-backtrack walk given verbatim in
// spec.md §4.2. This is a deliberate simplification of the two-pointer
// walk in jacoelho/rq's internal/jsonpath/matcher.go, whose matchDeepSegment
// retries later candidate frames when a later segment fails to match (real
// backtracking). The operator set in scope here (no filters) never makes
// that backtracking observable, so it is dropped in favor of O(depth) work
// per deep scan, as spec.md §4.2 requires.
package pathexpr

import "github.com/liberborn/JsonSurfer/internal/pathop"

// Expression is an immutable compiled JSONPath.
type Expression struct {
	ops []pathop.Operator

	isDefinite       bool
	pathDepth        int
	minimumPathDepth int
}

// New builds an Expression from an ordered operator sequence and computes
// its derived attributes once, at construction time.
func New(ops []pathop.Operator) *Expression {
	e := &Expression{ops: append([]pathop.Operator(nil), ops...)}

	e.isDefinite = true
	for _, op := range e.ops {
		switch op.(type) {
		case pathop.Wildcard, pathop.DeepScan, pathop.ArraySlice:
			// A slice never "pins a single index", even a unit-width one,
			// per spec.md §3: only ArrayIndex counts as definite.
			e.isDefinite = false
		}
		if _, ok := op.(pathop.DeepScan); !ok {
			e.pathDepth++
			e.minimumPathDepth++
		}
	}
	return e
}

// Ops exposes the underlying operator sequence, read-only by convention.
func (e *Expression) Ops() []pathop.Operator { return e.ops }

// IsDefinite reports whether this expression matches at most one position
// in any document: no Wildcard, no DeepScan, and every array operator pins
// a single index (only ArrayIndex does; any ArraySlice, even a unit-width
// one, makes the expression indefinite).
func (e *Expression) IsDefinite() bool { return e.isDefinite }

// PathDepth is the operator count excluding DeepScan. Only meaningful for
// definite expressions; it indexes the BindingIndex's dense definite table.
func (e *Expression) PathDepth() int { return e.pathDepth }

// MinimumPathDepth is the count of non-DeepScan operators: the smallest
// live position depth at which this expression could possibly match.
func (e *Expression) MinimumPathDepth() int { return e.minimumPathDepth }

// Match runs the two-pointer walk from spec.md §4.2 against the given live
// position frames (bottom-to-top, frame 0 is the synthetic root).
func (e *Expression) Match(frames []pathop.Frame) bool {
	i, j := 0, 0
	depth := len(frames)

	for i < len(e.ops) && j < depth {
		op := e.ops[i]
		if _, ok := op.(pathop.DeepScan); ok {
			if i == len(e.ops)-1 {
				// Trailing ".." matches every frame beneath the one the
				// preceding operators matched, but not that frame itself.
				return true
			}
			i++
			next := e.ops[i]
			for j < depth && !next.Match(frames, j) {
				j++
			}
			if j == depth {
				return false
			}
			i++
			j++
			continue
		}

		if !op.Match(frames, j) {
			return false
		}
		i++
		j++
	}

	return i == len(e.ops) && j == depth
}
