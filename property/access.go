package property

import (
	"github.com/wippyai/hostbind/value"
)

// Set sets target[name] = v and returns the runtime's result: boolean true
// on success, an exception otherwise. v stays owned by the caller; the
// returned handle must be released.
func Set(rt value.API, target value.Handle, name string, v value.Handle) value.Handle {
	n := rt.String(name)
	if rt.IsException(n) {
		return n
	}
	res := rt.ObjectSet(target, n, v)
	rt.Release(n)
	return res
}

// Get returns target[name] or an exception. The caller owns the result.
func Get(rt value.API, target value.Handle, name string) value.Handle {
	n := rt.String(name)
	if rt.IsException(n) {
		return n
	}
	res := rt.ObjectGet(target, n)
	rt.Release(n)
	return res
}

// Has reports whether target has name. A failed check reads as false, so an
// absent property and a lookup error are indistinguishable here.
func Has(rt value.API, target value.Handle, name string) bool {
	n := rt.String(name)
	if rt.IsException(n) {
		rt.Release(n)
		return false
	}
	res := rt.ObjectHas(target, n)
	rt.Release(n)

	has := !rt.IsException(res) && rt.IsTrue(res)
	rt.Release(res)
	return has
}

// RegisterFunction installs fn as target[name] and returns the raw set
// result, which the caller must release. Pass the runtime's global object as
// target to register a global function.
func RegisterFunction(rt value.API, target value.Handle, name string, fn value.NativeFunc) value.Handle {
	f := rt.Function(fn)
	res := Set(rt, target, name, f)
	rt.Release(f)
	return res
}
