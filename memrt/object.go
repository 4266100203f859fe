package memrt

import (
	"github.com/wippyai/hostbind/resource"
	"github.com/wippyai/hostbind/value"
)

// object backs both plain objects and function objects. Each property slot
// holds its own reference to the stored value.
type object struct {
	rt       *Runtime
	fn       value.NativeFunc
	props    map[string]value.Handle
	readonly map[string]bool
	order    []string
	sealed   bool
	revoked  bool
}

func newObject(rt *Runtime, fn value.NativeFunc) *object {
	return &object{
		rt:    rt,
		fn:    fn,
		props: make(map[string]value.Handle),
	}
}

// Drop releases every property value when the object itself is freed.
func (o *object) Drop() {
	for _, key := range o.order {
		o.rt.Release(o.props[key])
	}
	o.props = nil
	o.order = nil
}

func (o *object) store(key string, h value.Handle) {
	if old, ok := o.props[key]; ok {
		o.props[key] = h
		o.rt.Release(old)
		return
	}
	o.props[key] = h
	o.order = append(o.order, key)
}

// target resolves obj to a live, unrevoked object, or returns an exception.
func (rt *Runtime) target(obj value.Handle, op string) (*object, value.Handle) {
	v, ok := rt.table.Get(resource.Handle(obj))
	o, isObj := v.(*object)
	if !ok || !isObj {
		return nil, rt.Error(TypeError, "cannot "+op+" property of non-object")
	}
	if o.revoked {
		return nil, rt.Error(TypeError, "cannot "+op+" property of revoked object")
	}
	return o, 0
}

// key resolves a name handle to its text, or returns an exception.
func (rt *Runtime) key(name value.Handle) (string, value.Handle) {
	v, ok := rt.table.GetTyped(resource.Handle(name), uint32(KindString))
	if !ok {
		return "", rt.Error(TypeError, "property name must be a string")
	}
	return v.(string), 0
}

// ObjectSet sets obj[name] = val, retaining val on success.
func (rt *Runtime) ObjectSet(obj, name, val value.Handle) value.Handle {
	o, exc := rt.target(obj, "set")
	if exc != 0 {
		return exc
	}
	key, exc := rt.key(name)
	if exc != 0 {
		return exc
	}
	if o.readonly[key] {
		return rt.Error(TypeError, "cannot assign to read only property '"+key+"'")
	}
	if _, exists := o.props[key]; !exists && o.sealed {
		return rt.Error(TypeError, "cannot add property '"+key+"', object is not extensible")
	}
	if rt.KindOf(val) == KindInvalid {
		return rt.Error(ReferenceError, "value for '"+key+"' has been released")
	}

	o.store(key, rt.shared(val))
	return rt.Boolean(true)
}

// ObjectGet returns obj[name], undefined when absent.
func (rt *Runtime) ObjectGet(obj, name value.Handle) value.Handle {
	o, exc := rt.target(obj, "get")
	if exc != 0 {
		return exc
	}
	key, exc := rt.key(name)
	if exc != 0 {
		return exc
	}
	h, ok := o.props[key]
	if !ok {
		return rt.Undefined()
	}
	return rt.shared(h)
}

// ObjectHas reports whether obj has an own property name.
func (rt *Runtime) ObjectHas(obj, name value.Handle) value.Handle {
	o, exc := rt.target(obj, "check")
	if exc != 0 {
		return exc
	}
	key, exc := rt.key(name)
	if exc != 0 {
		return exc
	}
	_, ok := o.props[key]
	return rt.Boolean(ok)
}

// DefineReadOnly installs a property that later sets reject. Returns true
// or an exception, like ObjectSet.
func (rt *Runtime) DefineReadOnly(obj value.Handle, key string, val value.Handle) value.Handle {
	name := rt.String(key)
	if rt.IsException(name) {
		return name
	}
	defer rt.Release(name)

	res := rt.ObjectSet(obj, name, val)
	if rt.IsException(res) {
		return res
	}
	o, _ := rt.table.Get(resource.Handle(obj))
	ob := o.(*object)
	if ob.readonly == nil {
		ob.readonly = make(map[string]bool)
	}
	ob.readonly[key] = true
	return res
}

// PreventExtensions makes obj reject new properties. Existing writable
// properties can still be overwritten.
func (rt *Runtime) PreventExtensions(obj value.Handle) bool {
	v, ok := rt.table.Get(resource.Handle(obj))
	o, isObj := v.(*object)
	if !ok || !isObj {
		return false
	}
	o.sealed = true
	return true
}

// Revoke makes every property operation on obj raise a TypeError.
func (rt *Runtime) Revoke(obj value.Handle) bool {
	v, ok := rt.table.Get(resource.Handle(obj))
	o, isObj := v.(*object)
	if !ok || !isObj {
		return false
	}
	o.revoked = true
	return true
}

// Keys returns own property names in insertion order.
func (rt *Runtime) Keys(obj value.Handle) []string {
	v, ok := rt.table.Get(resource.Handle(obj))
	o, isObj := v.(*object)
	if !ok || !isObj {
		return nil
	}
	keys := make([]string, len(o.order))
	copy(keys, o.order)
	return keys
}

// Call invokes a function value. this and args are borrowed; the result is
// owned by the caller.
func (rt *Runtime) Call(fn, this value.Handle, args ...value.Handle) value.Handle {
	v, ok := rt.table.GetTyped(resource.Handle(fn), uint32(KindFunction))
	if !ok {
		return rt.Error(TypeError, "value is not a function")
	}
	res := v.(*object).fn(rt, this, args)
	if res == 0 {
		return rt.Undefined()
	}
	return res
}
