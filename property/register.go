package property

import (
	"github.com/wippyai/hostbind/errors"
	"github.com/wippyai/hostbind/value"
)

// Result records how far Register got.
//
// Registered is the number of leading entries whose values were consumed.
// Outcome is undefined after a complete registration, or the non-boolean
// result of the failed set otherwise. The caller owns Outcome.
type Result struct {
	Outcome    value.Handle
	Registered uint32
	failed     bool
}

// Failed reports whether registration stopped before the end of the table.
func (r Result) Failed() bool {
	return r.failed
}

// Err converts a failed result into an error naming the entry that failed.
// Returns nil for a successful result. Outcome is not released.
func (r Result) Err(rt value.API, entries Table) error {
	if !r.failed {
		return nil
	}
	name := ""
	if int(r.Registered) < len(entries) {
		name = entries[r.Registered].Name
	}
	if !rt.IsException(r.Outcome) {
		return errors.New(errors.PhaseRegister, errors.KindTypeMismatch).
			Property(name, int(r.Registered)).
			Detail("set did not complete with a boolean").
			Build()
	}
	msg, _ := rt.ToString(r.Outcome)
	return errors.Exception(errors.PhaseRegister, name, int(r.Registered), msg)
}

// Release releases the outcome handle.
func (r Result) Release(rt value.API) {
	if r.Outcome != 0 {
		rt.Release(r.Outcome)
	}
}

// Register sets every entry on target in table order, stopping at the first
// set that does not complete with a boolean.
//
// On success the value of each installed entry is released, since the
// target now holds its own reference. On failure the failing entry and all
// later ones keep their values; pass the result to ReleaseUnregistered to
// free them.
func Register(rt value.API, target value.Handle, entries Table) Result {
	if entries == nil {
		return Result{Outcome: rt.Undefined()}
	}

	var idx uint32
	for i := range entries {
		e := &entries[i]

		name := rt.String(e.Name)
		if rt.IsException(name) {
			return Result{Outcome: name, Registered: idx, failed: true}
		}
		res := rt.ObjectSet(target, name, e.Value.Handle())
		rt.Release(name)

		if value.Classify(rt, res).Failed() {
			return Result{Outcome: res, Registered: idx, failed: true}
		}

		rt.Release(res)
		e.Value.Release()
		idx++
	}

	return Result{Outcome: rt.Undefined(), Registered: idx}
}

// ReleaseUnregistered releases the values of entries that a previous
// Register call did not consume. It is a no-op after a complete
// registration and for a nil table.
func ReleaseUnregistered(entries Table, result Result) {
	if entries == nil {
		return
	}
	for i := int(result.Registered); i < len(entries); i++ {
		entries[i].Value.Release()
	}
}

// Install registers entries on target and cleans up after a failure.
// Every handle involved is released before it returns.
func Install(rt value.API, target value.Handle, entries Table) error {
	res := Register(rt, target, entries)
	defer res.Release(rt)

	if !res.Failed() {
		return nil
	}
	ReleaseUnregistered(entries, res)
	return res.Err(rt, entries)
}
