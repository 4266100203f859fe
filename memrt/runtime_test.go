package memrt

import (
	"testing"

	"github.com/wippyai/hostbind/value"
)

func newRuntime(t *testing.T) *Runtime {
	t.Helper()
	rt := New()
	t.Cleanup(func() { rt.Close() })
	return rt
}

func TestRuntime_Primitives(t *testing.T) {
	rt := newRuntime(t)

	u := rt.Undefined()
	if rt.KindOf(u) != KindUndefined {
		t.Errorf("expected undefined, got %s", rt.KindOf(u))
	}

	tr := rt.Boolean(true)
	if !rt.IsBoolean(tr) || !rt.IsTrue(tr) {
		t.Error("Boolean(true) should be a true boolean")
	}
	fa := rt.Boolean(false)
	if !rt.IsBoolean(fa) || rt.IsTrue(fa) {
		t.Error("Boolean(false) should be a false boolean")
	}

	n := rt.Number(2.5)
	if f, ok := rt.ToNumber(n); !ok || f != 2.5 {
		t.Errorf("expected 2.5, got %v (ok=%v)", f, ok)
	}

	s := rt.String("hello")
	if text, ok := rt.ToString(s); !ok || text != "hello" {
		t.Errorf("expected hello, got %q", text)
	}

	for _, h := range []value.Handle{u, tr, fa, n, s} {
		rt.Release(h)
	}
	if rt.Violations() != 0 {
		t.Errorf("unexpected violations: %d", rt.Violations())
	}
}

func TestRuntime_StringRejectsNUL(t *testing.T) {
	rt := newRuntime(t)

	h := rt.String("a\x00b")
	if !rt.IsException(h) {
		t.Fatal("expected exception for embedded NUL")
	}
	rt.Release(h)

	h = rt.String("\xff")
	if !rt.IsException(h) {
		t.Fatal("expected exception for invalid UTF-8")
	}
	rt.Release(h)
}

func TestRuntime_ExceptionText(t *testing.T) {
	rt := newRuntime(t)

	e := rt.Error(TypeError, "bad thing")
	defer rt.Release(e)

	if !rt.IsException(e) {
		t.Fatal("expected exception")
	}
	if rt.IsBoolean(e) {
		t.Fatal("exception must not be boolean")
	}
	text, ok := rt.ToString(e)
	if !ok || text != "TypeError: bad thing" {
		t.Fatalf("unexpected exception text %q", text)
	}
}

func TestRuntime_ReleaseAccounting(t *testing.T) {
	rt := newRuntime(t)
	base := rt.Live()

	n := rt.Number(1)
	c := rt.Copy(n)
	if c != n {
		t.Fatal("Copy should return the same handle")
	}
	if rt.RefCount(n) != 2 {
		t.Fatalf("expected 2 refs, got %d", rt.RefCount(n))
	}

	rt.Release(n)
	rt.Release(c)
	if rt.Live() != base {
		t.Fatalf("expected %d live cells, got %d", base, rt.Live())
	}

	rt.Release(n)
	if rt.Violations() != 1 {
		t.Fatalf("expected 1 violation, got %d", rt.Violations())
	}

	e := rt.Copy(n)
	if !rt.IsException(e) {
		t.Fatal("copy of dead handle should be an exception")
	}
	rt.Release(e)
	if rt.Violations() != 2 {
		t.Fatalf("expected 2 violations, got %d", rt.Violations())
	}
}

func TestRuntime_SingletonsSurviveRelease(t *testing.T) {
	rt := newRuntime(t)

	for i := 0; i < 3; i++ {
		rt.Release(rt.Undefined())
		rt.Release(rt.Boolean(true))
	}

	u := rt.Undefined()
	defer rt.Release(u)
	if rt.KindOf(u) != KindUndefined {
		t.Fatal("undefined singleton was freed")
	}
	if rt.Violations() != 0 {
		t.Fatalf("unexpected violations: %d", rt.Violations())
	}
}

func TestRuntime_Equal(t *testing.T) {
	rt := newRuntime(t)

	a := rt.Number(3)
	b := rt.Number(3)
	c := rt.String("3")
	o1 := rt.Object()
	o2 := rt.Object()
	defer func() {
		for _, h := range []value.Handle{a, b, c, o1, o2} {
			rt.Release(h)
		}
	}()

	if !rt.Equal(a, b) {
		t.Error("equal numbers should be equal")
	}
	if rt.Equal(a, c) {
		t.Error("number and string must differ")
	}
	if rt.Equal(o1, o2) {
		t.Error("distinct objects must differ")
	}
	if !rt.Equal(o1, o1) {
		t.Error("object must equal itself")
	}
}

func TestRuntime_Describe(t *testing.T) {
	rt := newRuntime(t)

	tests := []struct {
		make func() value.Handle
		want string
	}{
		{func() value.Handle { return rt.Number(42) }, "42"},
		{func() value.Handle { return rt.String("hi") }, `"hi"`},
		{func() value.Handle { return rt.Boolean(false) }, "false"},
		{func() value.Handle { return rt.Undefined() }, "undefined"},
		{func() value.Handle { return rt.Object() }, "[object 0 keys]"},
		{func() value.Handle { return rt.Error(TypeError, "x") }, "TypeError: x"},
	}

	for _, tt := range tests {
		h := tt.make()
		if got := rt.Describe(h); got != tt.want {
			t.Errorf("Describe = %q, want %q", got, tt.want)
		}
		rt.Release(h)
	}
}
