package combo

import (
	"errors"
	"fmt"
)

// Usage errors. They are returned to the host synchronously and never change
// the state of a widget.
var (
	ErrIndexOutOfRange   = errors.New("item index out of range")
	ErrDuplicateOverride = errors.New("an override reducer is already registered")
	ErrDuplicateKey      = errors.New("duplicate item key")
	ErrReentrantDispatch = errors.New("dispatch from within a change notification")
	ErrForeignAction     = errors.New("action carries an item of a different type")
	ErrWrongVariant      = errors.New("element does not exist in this variant")
)

// IndexError is returned when props are requested for an item that is not
// in the current list.
type IndexError struct {
	Index int
	Len   int
}

func (err IndexError) Error() string {
	return fmt.Sprintf("%v: index %d, %d items", ErrIndexOutOfRange, err.Index, err.Len)
}

// Is makes IndexError match ErrIndexOutOfRange.
func (err IndexError) Is(target error) bool { return target == ErrIndexOutOfRange }

// KeyError is returned when two items in the same list have the same key.
type KeyError struct {
	Key    string
	First  int
	Second int
}

func (err KeyError) Error() string {
	return fmt.Sprintf("%v %q at indices %d and %d", ErrDuplicateKey, err.Key, err.First, err.Second)
}

// Is makes KeyError match ErrDuplicateKey.
func (err KeyError) Is(target error) bool { return target == ErrDuplicateKey }
