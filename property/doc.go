// Package property installs named properties onto runtime objects.
//
// The central operation is Register, which walks an entry table in order and
// sets each (name, value) pair on a target object. It stops at the first
// failed set and reports how far it got in a Result:
//
//	entries := property.Table{
//	    property.NewEntry(rt, "version", rt.String("1.0")),
//	    property.NewEntry(rt, "limit", rt.Number(64)),
//	}
//
//	res := property.Register(rt, target, entries)
//	defer res.Release(rt)
//	if res.Failed() {
//	    property.ReleaseUnregistered(entries, res)
//	    return res.Err(rt, entries)
//	}
//
// # Ownership
//
// Each entry value is a *value.Owned. Register releases the value of every
// entry it installs; entries from Result.Registered onward still belong to
// the caller, and ReleaseUnregistered releases exactly those. The outcome
// handle in Result is always owned by the caller.
//
// Install bundles the sequence above into a single call returning an error.
//
// # Single-name helpers
//
// Set, Get and Has wrap the runtime's property operations for a Go string
// name, creating and releasing the transient name value. Has folds lookup
// exceptions into false.
//
// Nothing in this package logs or retries: every failure is returned to the
// caller as a handle or an error.
package property
