package pathcompile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/liberborn/JsonSurfer/internal/pathexpr"
	"github.com/liberborn/JsonSurfer/internal/pathop"
)

// segment is one `.foo`, `..foo`, `[n]`, `[*]`, `[lo:hi]`, or `[a,b,c]`
// chunk of the textual expression, parsed before being lowered to
// pathop.Operator values.
type segment struct {
	deep bool // true for a preceding '..'
	ops  []pathop.Operator
}

// Compile parses a JSONPath string and returns the operator sequences it
// denotes. Most expressions lower to exactly one sequence; an index union
// like "[0,2]" expands into one sequence per union member (spec.md S4:
// "$.x[0,2]" fires once per member, not once with an OR-match), so the
// result is a slice and callers bind every entry to the same listeners.
func Compile(expr string) ([]*pathexpr.Expression, error) {
	segs, err := parse(expr)
	if err != nil {
		return nil, err
	}

	sequences := [][]pathop.Operator{{}}
	for _, seg := range segs {
		sequences = expand(sequences, seg)
	}

	out := make([]*pathexpr.Expression, len(sequences))
	for i, ops := range sequences {
		out[i] = pathexpr.New(ops)
	}
	return out, nil
}

// expand appends seg's operators to every sequence built so far, taking
// the cross product when seg carries more than one operator (a union).
func expand(sequences [][]pathop.Operator, seg segment) [][]pathop.Operator {
	next := make([][]pathop.Operator, 0, len(sequences)*len(seg.ops))
	for _, prefix := range sequences {
		for _, op := range seg.ops {
			if seg.deep {
				combined := append(append([]pathop.Operator{}, prefix...), pathop.DeepScan{}, op)
				next = append(next, combined)
				continue
			}
			combined := append(append([]pathop.Operator{}, prefix...), op)
			next = append(next, combined)
		}
	}
	return next
}

func parse(expr string) ([]segment, error) {
	if err := validate(expr); err != nil {
		return nil, err
	}

	segs := []segment{{ops: []pathop.Operator{pathop.Root{}}}}
	if expr == "$" {
		return segs, nil
	}

	i := 1
	for i < len(expr) {
		seg, next, err := parseSegment(expr, i)
		if err != nil {
			return nil, err
		}
		segs = append(segs, seg)
		i = next
	}
	return segs, nil
}

func validate(expr string) error {
	if expr == "" {
		return fmt.Errorf("%w: expression cannot be empty", ErrSyntax)
	}
	if expr[0] != '$' || (len(expr) > 1 && expr[1] != '.' && expr[1] != '[') {
		return fmt.Errorf("%w: expression must start with '$', '$.', or '$['", ErrSyntax)
	}
	return nil
}

func parseSegment(expr string, i int) (segment, int, error) {
	if i >= len(expr) {
		return segment{}, i, fmt.Errorf("%w: unexpected end of expression", ErrSyntax)
	}
	switch expr[i] {
	case '.':
		return parseDotSegment(expr, i)
	case '[':
		return parseBracketSegment(expr, i)
	default:
		return segment{}, i, fmt.Errorf("%w: unexpected token %q at position %d", ErrSyntax, expr[i], i)
	}
}

func parseDotSegment(expr string, i int) (segment, int, error) {
	seg := segment{}

	if i+1 < len(expr) && expr[i+1] == '.' {
		seg.deep = true
		i += 2
	} else {
		i++
	}
	if i >= len(expr) {
		return segment{}, i, fmt.Errorf("%w: path cannot end with '.' or '..'", ErrSyntax)
	}

	if expr[i] == '*' {
		seg.ops = []pathop.Operator{pathop.Wildcard{}}
		return seg, i + 1, nil
	}
	if expr[i] == '[' {
		// ".." directly followed by a bracket selector, e.g. "$..[0]".
		bracket, next, err := parseBracketSegment(expr, i)
		if err != nil {
			return segment{}, i, err
		}
		bracket.deep = seg.deep
		return bracket, next, nil
	}

	name, next, err := parseName(expr, i)
	if err != nil {
		return segment{}, i, err
	}
	seg.ops = []pathop.Operator{pathop.Child{Key: name}}
	return seg, next, nil
}

func parseName(expr string, i int) (string, int, error) {
	start := i
	for i < len(expr) && idRune(expr[i]) {
		i++
	}
	if start == i {
		return "", i, fmt.Errorf("%w: name selector cannot be empty after '.'", ErrSyntax)
	}
	return expr[start:i], i, nil
}

func idRune(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b == '_' || b == '-'
}

func parseBracketSegment(expr string, i int) (segment, int, error) {
	i++ // consume '['
	if i >= len(expr) {
		return segment{}, i, fmt.Errorf("%w: unterminated bracket selector, missing ']'", ErrSyntax)
	}
	if i+1 < len(expr) && expr[i] == '?' && expr[i+1] == '(' {
		return segment{}, i, fmt.Errorf("%w: filter expressions", ErrNotSupported)
	}

	end := strings.IndexByte(expr[i:], ']')
	if end == -1 {
		return segment{}, i, fmt.Errorf("%w: unterminated bracket selector", ErrSyntax)
	}
	content := expr[i : i+end]
	next := i + end + 1

	if strings.TrimSpace(content) == "" {
		return segment{}, next, fmt.Errorf("%w: empty bracket selector '[]'", ErrSyntax)
	}

	seg := segment{}
	for _, part := range strings.Split(content, ",") {
		op, err := parseBracketPart(strings.TrimSpace(part))
		if err != nil {
			return segment{}, next, err
		}
		seg.ops = append(seg.ops, op)
	}
	return seg, next, nil
}

func parseBracketPart(part string) (pathop.Operator, error) {
	if part == "" {
		return nil, fmt.Errorf("%w: empty part in bracket selector", ErrSyntax)
	}
	if part == "*" {
		return pathop.Wildcard{}, nil
	}
	if isQuotedName(part) {
		return pathop.Child{Key: part[1 : len(part)-1]}, nil
	}
	if strings.Contains(part, ":") {
		return parseSlice(part)
	}
	if idx, err := strconv.Atoi(part); err == nil {
		if idx < 0 {
			return nil, fmt.Errorf("%w: negative array index (%d) in streaming mode", ErrNotSupported, idx)
		}
		return pathop.ArrayIndex{I: idx}, nil
	}
	return nil, fmt.Errorf("%w: invalid bracket content '%s'", ErrSyntax, part)
}

func isQuotedName(s string) bool {
	return (len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'') ||
		(len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"')
}

func parseSlice(p string) (pathop.Operator, error) {
	bounds := strings.Split(p, ":")
	if len(bounds) > 2 {
		return nil, fmt.Errorf("%w: strided slices are not supported in '%s'", ErrNotSupported, p)
	}

	lo := 0
	hi := 1 << 30 // effectively unbounded

	if trimmed := strings.TrimSpace(bounds[0]); trimmed != "" {
		v, err := strconv.Atoi(trimmed)
		if err != nil {
			return nil, fmt.Errorf("%w: slice start '%s' is not a number", ErrSyntax, trimmed)
		}
		lo = v
	}
	if len(bounds) > 1 {
		if trimmed := strings.TrimSpace(bounds[1]); trimmed != "" {
			v, err := strconv.Atoi(trimmed)
			if err != nil {
				return nil, fmt.Errorf("%w: slice end '%s' is not a number", ErrSyntax, trimmed)
			}
			hi = v
		}
	}
	if lo < 0 || hi < 0 {
		return nil, fmt.Errorf("%w: negative slice bounds in '%s'", ErrNotSupported, p)
	}
	return pathop.ArraySlice{Lo: lo, Hi: hi}, nil
}
