package value

// Owned is a handle with a single owner. Moving the handle out with Take
// empties the Owned, so it can be released at most once.
type Owned struct {
	rt API
	h  Handle
}

// Own takes ownership of h. The caller must not release h directly afterwards.
func Own(rt API, h Handle) *Owned {
	return &Owned{rt: rt, h: h}
}

// Handle returns the held handle without moving it, or 0 if empty.
// The result is borrowed.
func (o *Owned) Handle() Handle {
	if o == nil {
		return 0
	}
	return o.h
}

// Held reports whether the Owned still holds a handle.
func (o *Owned) Held() bool {
	return o != nil && o.h != 0
}

// Take moves the handle out. The caller becomes responsible for releasing it.
func (o *Owned) Take() Handle {
	if o == nil {
		return 0
	}
	h := o.h
	o.h = 0
	return h
}

// Release releases the handle if still held.
func (o *Owned) Release() {
	if o == nil || o.h == 0 {
		return
	}
	h := o.h
	o.h = 0
	o.rt.Release(h)
}
