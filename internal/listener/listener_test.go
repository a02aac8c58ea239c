package listener

import (
	"errors"
	"testing"
	"time"
)

type fakeCtx struct {
	path    string
	key     string
	hasKey  bool
	stopped bool
}

func (f *fakeCtx) JSONPath() string { return f.path }
func (f *fakeCtx) Key() (string, bool) {
	return f.key, f.hasKey
}
func (f *fakeCtx) StopParsing()      { f.stopped = true }
func (f *fakeCtx) IsStopped() bool   { return f.stopped }
func (f *fakeCtx) CollectorID() string { return "" }

func TestFuncAdapter(t *testing.T) {
	var got any
	l := Func(func(value any, ctx ParsingContext) error {
		got = value
		return nil
	})

	if err := l.OnValue(42, &fakeCtx{}); err != nil {
		t.Fatalf("OnValue returned error: %v", err)
	}
	if got != 42 {
		t.Errorf("got %v, want 42", got)
	}
}

func TestTypedAdapterSuccess(t *testing.T) {
	var got int
	typed := TypedFunc[int](func(value int, ctx ParsingContext) error {
		got = value
		return nil
	})
	cast := func(v any) (int, error) {
		f, ok := v.(float64)
		if !ok {
			return 0, errors.New("not a float64")
		}
		return int(f), nil
	}

	l := Typed(cast, typed)
	if err := l.OnValue(float64(7), &fakeCtx{}); err != nil {
		t.Fatalf("OnValue returned error: %v", err)
	}
	if got != 7 {
		t.Errorf("got %d, want 7", got)
	}
}

func TestTypedAdapterCastFailure(t *testing.T) {
	called := false
	typed := TypedFunc[int](func(value int, ctx ParsingContext) error {
		called = true
		return nil
	})
	cast := func(v any) (int, error) { return 0, errors.New("boom") }

	l := Typed(cast, typed)
	if err := l.OnValue("not an int", &fakeCtx{}); err == nil {
		t.Error("expected cast failure to propagate")
	}
	if called {
		t.Error("typed listener should not run when cast fails")
	}
}

func TestThrottleZeroOrNegativeIsNoop(t *testing.T) {
	calls := 0
	base := Func(func(value any, ctx ParsingContext) error {
		calls++
		return nil
	})

	l := Throttle(base, 0)
	for i := 0; i < 5; i++ {
		_ = l.OnValue(i, &fakeCtx{})
	}
	if calls != 5 {
		t.Errorf("calls = %d, want 5", calls)
	}
}

func TestThrottleLimitsRate(t *testing.T) {
	var calls []time.Time
	base := Func(func(value any, ctx ParsingContext) error {
		calls = append(calls, time.Now())
		return nil
	})

	l := Throttle(base, 100) // 100/s -> ~10ms between calls after burst of 1
	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := l.OnValue(i, &fakeCtx{}); err != nil {
			t.Fatalf("OnValue: %v", err)
		}
	}
	if len(calls) != 3 {
		t.Fatalf("calls = %d, want 3", len(calls))
	}
	if time.Since(start) < 15*time.Millisecond {
		t.Error("expected throttling to introduce measurable delay across 3 calls at 100/s with burst 1")
	}
}
