package jsonsurfer

import (
	"strings"
	"testing"
)

func TestParseInvokesBoundListener(t *testing.T) {
	var got []any
	b := NewBuilder().Bind("$.store.book[0].author", Func(func(value any, ctx ParsingContext) error {
		got = append(got, value)
		return nil
	}))

	ctx, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	doc := `{"store":{"book":[{"author":"Herbert"},{"author":"Asimov"}]}}`
	if err := ctx.Parse(strings.NewReader(doc)); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(got) != 1 || got[0] != "Herbert" {
		t.Errorf("got = %v, want [Herbert]", got)
	}
}

func TestBuildSurfacesCompileError(t *testing.T) {
	_, err := NewBuilder().Bind("not-a-path").Build()
	if err == nil {
		t.Fatal("Build() should surface a compile error for a malformed path")
	}
}

func TestBuildSurfacesUnsupportedOperator(t *testing.T) {
	_, err := NewBuilder().Bind("$.a[-1]").Build()
	if err == nil {
		t.Fatal("Build() should reject a negative array index")
	}
}

type record struct {
	Name string
}

func TestBindTypedCastsAssembledValue(t *testing.T) {
	var got []string
	cast := func(value any) (record, error) {
		m := value.(map[string]any)
		return record{Name: m["name"].(string)}, nil
	}
	b := BindTyped(NewBuilder(), "$.items[*]", cast, TypedFunc[record](func(r record, ctx ParsingContext) error {
		got = append(got, r.Name)
		return nil
	}))

	ctx, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	doc := `{"items":[{"name":"a"},{"name":"b"}]}`
	if err := ctx.Parse(strings.NewReader(doc)); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("got = %v, want [a b]", got)
	}
}

func TestParseBindsBareRootPath(t *testing.T) {
	var got []any
	b := NewBuilder().Bind("$", Func(func(value any, ctx ParsingContext) error {
		got = append(got, value)
		return nil
	}))

	ctx, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if err := ctx.Parse(strings.NewReader(`{"a":1}`)); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("got = %v, want exactly 1 match on $", got)
	}
	obj, ok := got[0].(map[string]any)
	if !ok {
		t.Fatalf("got[0] = %#v, want map[string]any", got[0])
	}
	if _, ok := obj["a"]; !ok {
		t.Errorf("got[0] = %#v, missing key a", obj)
	}
}

func TestWithJSONProviderGabs(t *testing.T) {
	var value any
	b := NewBuilder().
		WithJSONProvider(Gabs).
		Bind("$.a", Func(func(v any, ctx ParsingContext) error {
			value = v
			return nil
		}))

	ctx, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if err := ctx.Parse(strings.NewReader(`{"a":{"b":1}}`)); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if value == nil {
		t.Fatal("listener never fired")
	}
}
