package value

// Completion is the tagged form of a runtime result that carries either a
// boolean or an exception in one handle.
type Completion struct {
	h      Handle
	failed bool
	ok     bool
}

// Classify inspects h once and returns its variant. Ownership of h is not
// affected; the Completion only borrows it.
func Classify(rt API, h Handle) Completion {
	if rt.IsException(h) || !rt.IsBoolean(h) {
		return Completion{h: h, failed: true}
	}
	return Completion{h: h, ok: rt.IsTrue(h)}
}

// Failed reports whether the completion is a Failure.
func (c Completion) Failed() bool {
	return c.failed
}

// Bool returns the boolean carried by a Success. False for a Failure.
func (c Completion) Bool() bool {
	return !c.failed && c.ok
}

// Handle returns the underlying handle.
func (c Completion) Handle() Handle {
	return c.h
}
