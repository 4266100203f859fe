// Package memrt is an in-memory scripting runtime implementing value.API.
//
// It models just enough of an object runtime to host property registration:
// reference-counted cells for undefined, booleans, numbers, strings, objects,
// native functions and exceptions, plus a global object per Runtime.
//
//	rt := memrt.New()
//	defer rt.Close()
//
//	global := rt.Global()
//	defer rt.Release(global)
//
// Objects retain every value stored in them and release those values when
// the object's last reference goes away. Property writes fail with a
// TypeError exception when the target is not an object, the property is
// read-only (DefineReadOnly), or the object is not extensible
// (PreventExtensions). Revoke makes every property operation on an object
// fail, including existence checks.
//
// Releasing a handle that is already dead never panics. It is counted in
// Violations and logged at warn level through Logger, which makes the
// runtime useful for checking ownership discipline in tests.
package memrt
