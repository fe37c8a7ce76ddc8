package combo

type fieldMode uint8

const (
	unset fieldMode = iota
	uncontrolled
	controlled
)

// Field is one state field of a widget, either uncontrolled (the widget owns
// the value) or controlled (the host owns it and the widget reads it through
// an accessor). The zero value is an unset field, which the widget replaces
// with an uncontrolled field holding the default.
type Field[V any] struct {
	mode  fieldMode
	value V
	get   func() V
}

// Uncontrolled returns a field owned by the widget, starting at initial.
func Uncontrolled[V any](initial V) Field[V] {
	return Field[V]{mode: uncontrolled, value: initial}
}

// Controlled returns a field whose authoritative value is returned by get.
// The widget never changes it; it only reports proposed changes.
func Controlled[V any](get func() V) Field[V] {
	return Field[V]{mode: controlled, get: get}
}

// IsControlled reports whether the field is controlled.
func (f *Field[V]) IsControlled() bool { return f.mode == controlled }

// Get returns the current value of the field.
func (f *Field[V]) Get() V {
	if f.mode == controlled {
		return f.get()
	}
	return f.value
}

// Stores v if the field is uncontrolled.
func (f *Field[V]) set(v V) {
	if f.mode != controlled {
		f.value = v
	}
}

// Returns f, or an uncontrolled field holding def if f is unset.
func (f Field[V]) orDefault(def V) Field[V] {
	if f.mode == unset {
		return Uncontrolled(def)
	}
	return f
}
