package pathcompile

import (
	"errors"
	"testing"

	"github.com/liberborn/JsonSurfer/internal/pathop"
)

func mustCompileOne(t *testing.T, expr string) []pathop.Operator {
	t.Helper()
	exprs, err := Compile(expr)
	if err != nil {
		t.Fatalf("Compile(%q) error = %v", expr, err)
	}
	if len(exprs) != 1 {
		t.Fatalf("Compile(%q) returned %d expressions, want 1", expr, len(exprs))
	}
	return exprs[0].Ops()
}

func TestCompileRoot(t *testing.T) {
	ops := mustCompileOne(t, "$")
	if len(ops) != 1 {
		t.Fatalf("ops = %v, want [Root]", ops)
	}
	if _, ok := ops[0].(pathop.Root); !ok {
		t.Errorf("ops[0] = %T, want pathop.Root", ops[0])
	}
}

func TestCompileChildChain(t *testing.T) {
	ops := mustCompileOne(t, "$.a.b")
	want := []pathop.Operator{pathop.Root{}, pathop.Child{Key: "a"}, pathop.Child{Key: "b"}}
	if len(ops) != len(want) {
		t.Fatalf("ops = %v, want %v", ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Errorf("ops[%d] = %v, want %v", i, ops[i], want[i])
		}
	}
}

func TestCompileWildcard(t *testing.T) {
	ops := mustCompileOne(t, "$.store.book[*].author")
	if _, ok := ops[3].(pathop.Wildcard); !ok {
		t.Errorf("ops[3] = %T, want pathop.Wildcard", ops[3])
	}
}

func TestCompileDeepScan(t *testing.T) {
	ops := mustCompileOne(t, "$..author")
	want := []pathop.Operator{pathop.Root{}, pathop.DeepScan{}, pathop.Child{Key: "author"}}
	if len(ops) != len(want) {
		t.Fatalf("ops = %v, want %v", ops, want)
	}
}

func TestCompileArrayIndexAndSlice(t *testing.T) {
	ops := mustCompileOne(t, "$.x[1]")
	if idx, ok := ops[2].(pathop.ArrayIndex); !ok || idx.I != 1 {
		t.Errorf("ops[2] = %v, want ArrayIndex{1}", ops[2])
	}

	ops = mustCompileOne(t, "$.x[1:3]")
	if s, ok := ops[2].(pathop.ArraySlice); !ok || s.Lo != 1 || s.Hi != 3 {
		t.Errorf("ops[2] = %v, want ArraySlice{1,3}", ops[2])
	}
}

func TestCompileUnionExpandsToMultipleExpressions(t *testing.T) {
	// spec.md S4: "$.x[0,2]" fires once per union member.
	exprs, err := Compile("$.x[0,2]")
	if err != nil {
		t.Fatalf("Compile error = %v", err)
	}
	if len(exprs) != 2 {
		t.Fatalf("got %d expressions, want 2", len(exprs))
	}
	first, second := exprs[0].Ops(), exprs[1].Ops()
	idx0, ok0 := first[2].(pathop.ArrayIndex)
	idx1, ok1 := second[2].(pathop.ArrayIndex)
	if !ok0 || !ok1 || idx0.I != 0 || idx1.I != 2 {
		t.Errorf("got indices %v, %v, want 0 and 2", first[2], second[2])
	}
}

func TestCompileQuotedName(t *testing.T) {
	ops := mustCompileOne(t, `$['store']['book']`)
	if c, ok := ops[1].(pathop.Child); !ok || c.Key != "store" {
		t.Errorf("ops[1] = %v, want Child{store}", ops[1])
	}
}

func TestCompileRejectsFilterExpressions(t *testing.T) {
	_, err := Compile("$.store.book[?(@.isbn)]")
	if !errors.Is(err, ErrNotSupported) {
		t.Errorf("err = %v, want ErrNotSupported", err)
	}
}

func TestCompileRejectsNegativeIndex(t *testing.T) {
	_, err := Compile("$.x[-1]")
	if !errors.Is(err, ErrNotSupported) {
		t.Errorf("err = %v, want ErrNotSupported", err)
	}
}

func TestCompileRejectsMalformedExpression(t *testing.T) {
	for _, expr := range []string{"", "a.b", "$.", "$["} {
		if _, err := Compile(expr); !errors.Is(err, ErrSyntax) {
			t.Errorf("Compile(%q) err = %v, want ErrSyntax", expr, err)
		}
	}
}

func TestCompileIsDefiniteDerivation(t *testing.T) {
	exprs, err := Compile("$.x[1]")
	if err != nil {
		t.Fatal(err)
	}
	if !exprs[0].IsDefinite() {
		t.Error("$.x[1] should be definite")
	}

	exprs, err = Compile("$..author")
	if err != nil {
		t.Fatal(err)
	}
	if exprs[0].IsDefinite() {
		t.Error("$..author should be indefinite")
	}
}
