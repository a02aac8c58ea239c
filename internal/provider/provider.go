// Package provider implements the pluggable value-builder contract
// consumed by internal/collector (spec.md §6): the handful of primitive
// operations needed to assemble an opaque object/array/primitive value
// while a sub-tree collector is recording.
//
// Ported from JsonProvider.java / JacksonProvider.java in
// original_source/jsurfer-simple, which bind a Jackson ObjectMapper as the
// default backend. The Go default backend here is the standard library's
// own any-typed map[string]any/[]any representation (the same shape
// jacoelho/rq's decodeObjectSubtree/decodeArraySubtree in
// internal/jsonpath/jsonpath.go assembles), kept as Provider so a listener
// can swap in a different assembled representation — see Gabs.
package provider

// Provider builds an opaque value incrementally as a collector receives
// events, and finalizes it once the collector's sub-tree closes. All
// providers must be side-effect-free apart from the structures they build
// (spec.md §6).
type Provider interface {
	CreateObject() any
	CreateArray() any
	IsObject(v any) bool
	IsArray(v any) bool

	// ConsumeObjectEntry returns the (possibly new) object after storing
	// value under key. Implementations backed by a growable slice-like
	// structure may need to return a different reference than obj.
	ConsumeObjectEntry(obj any, key string, value any) any
	// ConsumeArrayElement returns the (possibly new) array after
	// appending value; append can reallocate, so the caller must store
	// whatever is returned as the live container going forward.
	ConsumeArrayElement(arr any, value any) any

	Primitive(v any) any
	PrimitiveNull() any

	// Finalize transforms a completed root value before it is handed to
	// listeners. The default provider returns root unchanged; other
	// providers (Gabs) use this hook to wrap it in a richer type.
	Finalize(root any) any
}

// Default is the standard-library value builder: objects become
// map[string]any, arrays become []any, primitives pass through unchanged
// (bool, json.Number/float64/int64, string, nil).
type Default struct{}

func (Default) CreateObject() any { return map[string]any{} }
func (Default) CreateArray() any  { return []any{} }

func (Default) IsObject(v any) bool {
	_, ok := v.(map[string]any)
	return ok
}

func (Default) IsArray(v any) bool {
	_, ok := v.([]any)
	return ok
}

func (Default) ConsumeObjectEntry(obj any, key string, value any) any {
	m := obj.(map[string]any)
	m[key] = value
	return m
}

func (Default) ConsumeArrayElement(arr any, value any) any {
	s := arr.([]any)
	return append(s, value)
}

func (Default) Primitive(v any) any   { return v }
func (Default) PrimitiveNull() any    { return nil }
func (Default) Finalize(root any) any { return root }
