package value

// Handle is an opaque reference to a runtime value.
// Handle 0 is reserved and never refers to a live value.
type Handle uint32

// NativeFunc is a host function callable from script code. The returned
// handle is owned by the runtime after the call; this and args are borrowed.
type NativeFunc func(rt API, this Handle, args []Handle) Handle

// API is the value interface consumed from the scripting runtime.
//
// All operations are synchronous and never panic on script-level failures:
// a failure is reported as an exception handle in the result slot. Every
// handle returned by API is owned by the caller.
type API interface {
	// Undefined returns the runtime's neutral "no error" value.
	Undefined() Handle

	// Boolean returns a boolean value.
	Boolean(b bool) Handle

	// Number returns a numeric value.
	Number(f float64) Handle

	// String creates a string value from UTF-8 text. Text must not contain NUL.
	String(text string) Handle

	// Object creates an empty plain object.
	Object() Handle

	// Error creates an exception value with the given error name and message.
	Error(name, message string) Handle

	// Function wraps a native function.
	Function(fn NativeFunc) Handle

	// Global returns the global object of the realm the API is bound to.
	Global() Handle

	// Copy returns an additional reference to h.
	Copy(h Handle) Handle

	// Release drops one reference. Must be called exactly once per owned handle.
	Release(h Handle)

	// ObjectSet sets obj[name] = val. Returns boolean true on success,
	// an exception otherwise. name and val are borrowed.
	ObjectSet(obj, name, val Handle) Handle

	// ObjectGet returns obj[name] or an exception.
	ObjectGet(obj, name Handle) Handle

	// ObjectHas returns a boolean telling whether obj has name, or an exception.
	ObjectHas(obj, name Handle) Handle

	// IsException reports whether h is an exception.
	IsException(h Handle) bool

	// IsBoolean reports whether h is a boolean.
	IsBoolean(h Handle) bool

	// IsTrue reports whether h is the boolean true.
	IsTrue(h Handle) bool

	// ToNumber returns the numeric value of h.
	ToNumber(h Handle) (float64, bool)

	// ToString returns the text of a string value, or the message of an exception.
	ToString(h Handle) (string, bool)
}
