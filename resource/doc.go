// Package resource provides the reference-counted handle table backing the
// in-memory runtime.
//
// Every runtime value lives in a slot addressed by a Handle. A slot starts
// with one reference; Retain adds one, Release drops one, and the slot is
// freed when the count reaches zero.
//
//	table := resource.NewTable()
//
//	h := table.Insert(KindString, "hello") // refs = 1
//	table.Retain(h)                        // refs = 2
//	table.Release(h)                       // refs = 1
//	dropped, _ := table.Release(h)         // dropped == true
//
// # Stale Handles
//
// Slots are never recycled. Releasing or retaining a handle whose slot has
// already been freed returns ErrStale instead of touching an unrelated value,
// which makes double releases observable.
//
// # Observers
//
// Register observers to track lifecycle events:
//
//	table.Subscribe(obs) // obs.OnResourceEvent(Event) for every transition
//
// Values implementing Dropper are notified when their slot is freed. Drop is
// called without the table lock held, so a Dropper may release handles it
// references.
package resource
