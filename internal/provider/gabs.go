package provider

import "github.com/Jeffail/gabs/v2"

// Gabs assembles values exactly like Default (map[string]any/[]any), then
// wraps the finished root with gabs.Wrap in Finalize, so listeners bound
// through this provider receive a *gabs.Container and get its dotted-path
// query surface on the matched sub-tree for free — grounded on
// _examples/dhawalhost-nqjson, whose benchmark suite exercises
// gabs.ParseJSON over the same container type. Intermediate assembly
// stays on the plain Default representation because gabs.Container isn't
// a convenient incremental builder; only the completed root is wrapped.
type Gabs struct {
	Default
}

func (Gabs) Finalize(root any) any {
	return gabs.Wrap(root)
}
