// Package pathcompile compiles textual JSONPath expressions into the
// pathop.Operator sequences pathexpr.Expression consumes. It is the
// external collaborator spec.md §1 calls out as out of scope for the
// matching core: the core never parses text, only operators.
//
// Supported grammar:
//   - Root `$`
//   - Child `.key` and bracketed name `['key']`/`["key"]`
//   - Wildcard `.*` and `[*]`
//   - Descendant `..`
//   - Array index `[n]`, slice `[lo:hi]`, and union of indices `[a,b,c]`
//     (expanded into one separate expression per union member per
//     spec.md S4 — see Compile)
//
// Filter expressions (`[?(...)]`), scripts, and negative indices are
// unsupported in streaming mode and raise ErrNotSupported.
package pathcompile
