package provider

import (
	"encoding/json"
	"fmt"

	"github.com/Jeffail/gabs/v2"
)

// Cast implements the value-builder contract's cast(value, targetType)
// operation (spec.md §6) for typed listener bindings (spec.md §9). It
// unwraps a *gabs.Container produced by Gabs.Finalize back to its plain
// data, then round-trips through encoding/json to decode into T. This is
// the thin, off-hot-path adapter spec.md §9 describes.
func Cast[T any](value any) (T, error) {
	var zero T

	if c, ok := value.(*gabs.Container); ok {
		value = c.Data()
	}

	buf, err := json.Marshal(value)
	if err != nil {
		return zero, fmt.Errorf("provider: marshal assembled value: %w", err)
	}

	var out T
	if err := json.Unmarshal(buf, &out); err != nil {
		return zero, fmt.Errorf("provider: cast assembled value to %T: %w", out, err)
	}
	return out, nil
}
