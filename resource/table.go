package resource

import (
	"errors"
	"sync"
)

var (
	ErrClosed  = errors.New("resource table closed")
	ErrInvalid = errors.New("invalid handle")
	ErrStale   = errors.New("handle already released")
)

type slot struct {
	value  any
	typeID uint32
	refs   uint32
	valid  bool
}

// Table is a reference-counted slot table.
type Table struct {
	slots     []slot
	observers []Observer
	live      int
	mu        sync.RWMutex
	obsMu     sync.RWMutex
	closed    bool
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		slots: make([]slot, 0, 64),
	}
}

// Insert stores a value with one reference and returns its handle.
// Returns 0 once the table is closed.
func (t *Table) Insert(typeID uint32, value any) Handle {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return 0
	}
	t.slots = append(t.slots, slot{
		value:  value,
		typeID: typeID,
		refs:   1,
		valid:  true,
	})
	t.live++
	h := Handle(len(t.slots))
	t.mu.Unlock()

	t.notify(Event{
		Type:   EventCreated,
		Handle: h,
		TypeID: typeID,
		Refs:   1,
		Value:  value,
	})
	return h
}

// Retain adds a reference to a live slot.
func (t *Table) Retain(h Handle) error {
	t.mu.Lock()
	s, err := t.lookup(h)
	if err != nil {
		t.mu.Unlock()
		t.notifyStale(h, err)
		return err
	}
	s.refs++
	ev := Event{Type: EventRetained, Handle: h, TypeID: s.typeID, Refs: s.refs, Value: s.value}
	t.mu.Unlock()

	t.notify(ev)
	return nil
}

// Release drops a reference and reports whether the slot was freed.
func (t *Table) Release(h Handle) (bool, error) {
	t.mu.Lock()
	s, err := t.lookup(h)
	if err != nil {
		t.mu.Unlock()
		t.notifyStale(h, err)
		return false, err
	}

	s.refs--
	if s.refs > 0 {
		ev := Event{Type: EventReleased, Handle: h, TypeID: s.typeID, Refs: s.refs, Value: s.value}
		t.mu.Unlock()
		t.notify(ev)
		return false, nil
	}

	value, typeID := s.value, s.typeID
	s.value = nil
	s.valid = false
	t.live--
	t.mu.Unlock()

	if d, ok := value.(Dropper); ok {
		d.Drop()
	}

	t.notify(Event{
		Type:   EventDropped,
		Handle: h,
		TypeID: typeID,
		Value:  value,
	})
	return true, nil
}

// Get retrieves a value by handle.
func (t *Table) Get(h Handle) (any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s, err := t.lookup(h)
	if err != nil {
		return nil, false
	}
	return s.value, true
}

// GetTyped retrieves a value only if it matches the expected type.
func (t *Table) GetTyped(h Handle, typeID uint32) (any, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s, err := t.lookup(h)
	if err != nil || s.typeID != typeID {
		return nil, false
	}
	return s.value, true
}

// TypeID returns the type ID for a handle.
func (t *Table) TypeID(h Handle) (uint32, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s, err := t.lookup(h)
	if err != nil {
		return 0, false
	}
	return s.typeID, true
}

// RefCount returns the number of outstanding references, 0 for a freed slot.
func (t *Table) RefCount(h Handle) uint32 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s, err := t.lookup(h)
	if err != nil {
		return 0
	}
	return s.refs
}

// Len returns the number of live slots.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.live
}

// Each iterates over all live slots in handle order.
func (t *Table) Each(fn func(Handle, uint32, any) bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for i, s := range t.slots {
		if s.valid {
			if !fn(Handle(i+1), s.typeID, s.value) {
				break
			}
		}
	}
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *Table) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Close frees every live slot regardless of its reference count and stops
// accepting inserts. Droppers are not invoked: their references point into
// the same table.
func (t *Table) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true

	for i := range t.slots {
		t.slots[i].valid = false
		t.slots[i].value = nil
	}
	t.live = 0
	return nil
}

// lookup must be called with mu held.
func (t *Table) lookup(h Handle) (*slot, error) {
	if h == 0 || int(h) > len(t.slots) {
		return nil, ErrInvalid
	}
	s := &t.slots[h-1]
	if !s.valid {
		return nil, ErrStale
	}
	return s, nil
}

func (t *Table) notifyStale(h Handle, err error) {
	if err != ErrStale {
		return
	}
	t.notify(Event{Type: EventStale, Handle: h})
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnResourceEvent(e)
	}
}
