package value_test

import (
	"testing"

	"github.com/wippyai/hostbind/memrt"
	"github.com/wippyai/hostbind/value"
)

func TestOwned_TakeMovesHandle(t *testing.T) {
	rt := memrt.New()
	defer rt.Close()

	h := rt.Number(1)
	o := value.Own(rt, h)
	if !o.Held() || o.Handle() != h {
		t.Fatal("Own should hold the handle")
	}

	got := o.Take()
	if got != h {
		t.Fatalf("Take returned %d, want %d", got, h)
	}
	if o.Held() || o.Handle() != 0 {
		t.Fatal("Owned should be empty after Take")
	}

	o.Release()
	if rt.RefCount(h) != 1 {
		t.Fatalf("Release after Take must not touch the handle, refs=%d", rt.RefCount(h))
	}
	rt.Release(got)

	if rt.Violations() != 0 {
		t.Fatalf("unexpected violations: %d", rt.Violations())
	}
}

func TestOwned_ReleaseOnce(t *testing.T) {
	rt := memrt.New()
	defer rt.Close()

	h := rt.String("x")
	o := value.Own(rt, h)
	o.Release()
	o.Release()

	if rt.RefCount(h) != 0 {
		t.Fatal("handle should be freed")
	}
	if rt.Violations() != 0 {
		t.Fatalf("second Release must be a no-op, violations=%d", rt.Violations())
	}
}

func TestOwned_Nil(t *testing.T) {
	var o *value.Owned
	if o.Held() || o.Handle() != 0 || o.Take() != 0 {
		t.Fatal("nil Owned should behave as empty")
	}
	o.Release()
}

func TestClassify(t *testing.T) {
	rt := memrt.New()
	defer rt.Close()

	tests := []struct {
		name   string
		h      value.Handle
		failed bool
		ok     bool
	}{
		{"true", rt.Boolean(true), false, true},
		{"false", rt.Boolean(false), false, false},
		{"exception", rt.Error(memrt.TypeError, "x"), true, false},
		{"non-boolean", rt.Number(1), true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := value.Classify(rt, tt.h)
			if c.Failed() != tt.failed {
				t.Errorf("Failed() = %v, want %v", c.Failed(), tt.failed)
			}
			if c.Bool() != tt.ok {
				t.Errorf("Bool() = %v, want %v", c.Bool(), tt.ok)
			}
			if c.Handle() != tt.h {
				t.Error("Classify must not replace the handle")
			}
			rt.Release(tt.h)
		})
	}
}
