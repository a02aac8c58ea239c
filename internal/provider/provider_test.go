package provider

import "testing"

func TestDefaultAssembly(t *testing.T) {
	var p Provider = Default{}

	obj := p.CreateObject()
	obj = p.ConsumeObjectEntry(obj, "a", 1)
	obj = p.ConsumeObjectEntry(obj, "b", "two")

	if !p.IsObject(obj) {
		t.Fatal("CreateObject result should satisfy IsObject")
	}
	m := obj.(map[string]any)
	if m["a"] != 1 || m["b"] != "two" {
		t.Errorf("unexpected object contents: %+v", m)
	}

	arr := p.CreateArray()
	arr = p.ConsumeArrayElement(arr, 1)
	arr = p.ConsumeArrayElement(arr, 2)
	arr = p.ConsumeArrayElement(arr, 3)

	if !p.IsArray(arr) {
		t.Fatal("CreateArray result should satisfy IsArray")
	}
	s := arr.([]any)
	if len(s) != 3 || s[0] != 1 || s[2] != 3 {
		t.Errorf("unexpected array contents: %+v", s)
	}

	if p.Finalize(obj) == nil && obj != nil {
		t.Error("Finalize should not drop a non-nil root")
	}
	if p.PrimitiveNull() != nil {
		t.Error("PrimitiveNull() should be nil for the default provider")
	}
}

func TestGabsFinalizeWraps(t *testing.T) {
	var p Provider = Gabs{}

	obj := p.CreateObject()
	obj = p.ConsumeObjectEntry(obj, "name", "alice")

	final := p.Finalize(obj)

	casted, err := Cast[struct {
		Name string `json:"name"`
	}](final)
	if err != nil {
		t.Fatalf("Cast: %v", err)
	}
	if casted.Name != "alice" {
		t.Errorf("casted.Name = %q, want alice", casted.Name)
	}
}

func TestCastFromDefaultProvider(t *testing.T) {
	type payload struct {
		Count int      `json:"count"`
		Tags  []string `json:"tags"`
	}

	value := map[string]any{
		"count": 3,
		"tags":  []any{"x", "y"},
	}

	got, err := Cast[payload](value)
	if err != nil {
		t.Fatalf("Cast: %v", err)
	}
	if got.Count != 3 || len(got.Tags) != 2 || got.Tags[1] != "y" {
		t.Errorf("got %+v", got)
	}
}
