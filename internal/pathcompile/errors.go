package pathcompile

import "errors"

var (
	// ErrSyntax indicates a JSONPath expression syntax error during compilation.
	ErrSyntax = errors.New("pathcompile: syntax error")

	// ErrNotSupported indicates a JSONPath feature recognized by the grammar
	// but outside this matcher's supported operator set (spec.md §1: filter
	// and script expressions, negative indices).
	ErrNotSupported = errors.New("pathcompile: feature not supported")
)
