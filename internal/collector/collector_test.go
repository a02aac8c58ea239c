package collector

import (
	"errors"
	"testing"

	"github.com/liberborn/JsonSurfer/internal/listener"
	"github.com/liberborn/JsonSurfer/internal/provider"
)

type fakeCtx struct {
	stopped bool
}

func (f *fakeCtx) StopParsing() { f.stopped = true }
func (f *fakeCtx) IsStopped() bool { return f.stopped }

func captureListener(out *[]any) listener.Listener {
	return listener.Func(func(value any, ctx listener.ParsingContext) error {
		*out = append(*out, value)
		return nil
	})
}

func TestCollectorAssemblesObject(t *testing.T) {
	var fired []any
	ctx := &fakeCtx{}
	c := NewCollector(provider.Default{}, []listener.Listener{captureListener(&fired)}, listener.ContinueOnError, ctx, "$", "", false)

	// {"v": 2}
	c.StartObject()
	c.StartObjectEntry("v")
	c.Primitive(2)
	c.EndObject()

	if !c.Done() {
		t.Fatal("collector should be done after its root object closes")
	}
	if len(fired) != 1 {
		t.Fatalf("fired = %d listener invocations, want 1", len(fired))
	}
	obj, ok := fired[0].(map[string]any)
	if !ok {
		t.Fatalf("fired value = %#v, want map[string]any", fired[0])
	}
	if obj["v"] != 2 {
		t.Errorf("obj[\"v\"] = %v, want 2", obj["v"])
	}
}

func TestCollectorAssemblesNestedArrayInsideObject(t *testing.T) {
	var fired []any
	c := NewCollector(provider.Default{}, []listener.Listener{captureListener(&fired)}, listener.ContinueOnError, &fakeCtx{}, "$", "", false)

	// {"tags": ["a", "b"]}
	c.StartObject()
	c.StartObjectEntry("tags")
	c.StartArray()
	c.Primitive("a")
	c.Primitive("b")
	c.EndArray()
	c.EndObject()

	obj := fired[0].(map[string]any)
	tags := obj["tags"].([]any)
	if len(tags) != 2 || tags[0] != "a" || tags[1] != "b" {
		t.Errorf("tags = %#v", tags)
	}
}

func TestCollectorArrayRoot(t *testing.T) {
	var fired []any
	c := NewCollector(provider.Default{}, []listener.Listener{captureListener(&fired)}, listener.ContinueOnError, &fakeCtx{}, "$", "", false)

	c.StartArray()
	c.Primitive(1)
	c.Primitive(2)
	c.Primitive(3)
	c.EndArray()

	arr := fired[0].([]any)
	if len(arr) != 3 || arr[2] != 3 {
		t.Errorf("arr = %#v", arr)
	}
}

func TestCollectorFiresListenersInRegistrationOrder(t *testing.T) {
	var order []int
	l1 := listener.Func(func(value any, ctx listener.ParsingContext) error {
		order = append(order, 1)
		return nil
	})
	l2 := listener.Func(func(value any, ctx listener.ParsingContext) error {
		order = append(order, 2)
		return nil
	})

	c := NewCollector(provider.Default{}, []listener.Listener{l1, l2}, listener.ContinueOnError, &fakeCtx{}, "$", "", false)
	c.StartObject()
	c.EndObject()

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("order = %v, want [1 2]", order)
	}
}

func TestCollectorErrorStrategyStop(t *testing.T) {
	ctx := &fakeCtx{}
	failing := listener.Func(func(value any, c listener.ParsingContext) error {
		return errors.New("boom")
	})
	never := listener.Func(func(value any, c listener.ParsingContext) error {
		t.Error("second listener should not run once StopOnError has stopped parsing")
		return nil
	})

	c := NewCollector(provider.Default{}, []listener.Listener{failing, never}, listener.StopOnError, ctx, "$", "", false)
	c.StartObject()
	c.EndObject()

	if !ctx.stopped {
		t.Error("StopOnError should call StopParsing on listener failure")
	}
}

func TestCollectorIgnoresEventsAfterDone(t *testing.T) {
	var fired []any
	c := NewCollector(provider.Default{}, []listener.Listener{captureListener(&fired)}, listener.ContinueOnError, &fakeCtx{}, "$", "", false)
	c.StartObject()
	c.EndObject()

	// Spurious extra events after completion must be no-ops.
	c.StartObject()
	c.Primitive("x")
	c.EndObject()

	if len(fired) != 1 {
		t.Errorf("fired = %d, want exactly 1 (no re-fire after completion)", len(fired))
	}
}
