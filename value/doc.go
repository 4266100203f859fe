// Package value defines the host-side view of an embedded scripting runtime's
// value API.
//
// Every value the runtime hands out is a reference-counted Handle. Whoever
// obtains a handle owns one reference and must release it exactly once. The
// runtime itself is a black box reached through the API interface; an
// in-memory implementation lives in package memrt.
//
// # Ownership
//
// Owned wraps a handle that has exactly one owner at a time:
//
//	v := value.Own(rt, rt.Number(42))
//	defer v.Release() // no-op once the handle has been moved out
//
//	h := v.Take() // ownership moves to the caller of Take
//
// After Take or Release the Owned is empty; further Release calls do nothing.
//
// # Completions
//
// Property operations answer through a single handle that is either a boolean
// or an exception. Classify turns that into an explicit variant before any
// branching happens:
//
//	c := value.Classify(rt, rt.ObjectSet(obj, name, v))
//	if c.Failed() {
//	    // c.Handle() is the exception, still owned by the caller
//	}
package value
