// Package nav computes highlight movements within an ordered list of items.
//
// All functions are pure. They take the number of items and a predicate
// reporting whether the item at an index is disabled; a nil predicate means
// no item is disabled. Index -1 means "nothing highlighted".
package nav

// Direction is the direction of a one-step movement.
type Direction int8

const (
	// Forward moves towards the end of the list.
	Forward Direction = 1
	// Backward moves towards the start of the list.
	Backward Direction = -1
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Disabled reports whether the item at index i is disabled.
type Disabled func(i int) bool

// NoneDisabled is a Disabled predicate that never reports an item as
// disabled.
func NoneDisabled(int) bool { return false }

func (f Disabled) at(i int) bool { return f != nil && f(i) }

// Next moves the highlight one step from current in the given direction,
// skipping disabled items.
//
// When circular is true, movement wraps around the ends of the list;
// otherwise it stops at them, keeping current. Starting from -1 (or from an
// index that is no longer valid), Forward starts at the first item and
// Backward at the last. At most n indices are probed; if none of them is
// enabled, current is returned unchanged. If n is 0, the result is always -1.
func Next(current int, dir Direction, n int, disabled Disabled, circular bool) int {
	if n <= 0 {
		return -1
	}
	if dir != Backward {
		dir = Forward
	}
	i := current
	if i < 0 || i >= n {
		// Entering the list from outside; the first probe lands on an end.
		if dir == Forward {
			i = -1
		} else {
			i = n
		}
		circular = false
	}
	for probes := 0; probes < n; probes++ {
		i += int(dir)
		if i < 0 || i >= n {
			if !circular {
				return current
			}
			i = (i + n) % n
		}
		if !disabled.at(i) {
			return i
		}
	}
	return current
}

// First returns the index of the first enabled item, or -1 if there is none.
func First(n int, disabled Disabled) int {
	return Next(-1, Forward, n, disabled, false)
}

// Last returns the index of the last enabled item, or -1 if there is none.
func Last(n int, disabled Disabled) int {
	return Next(-1, Backward, n, disabled, false)
}

// Page moves the highlight by delta items without wrapping. The target is
// clamped into the list; if it is disabled, the nearest enabled item in the
// direction of movement is taken, then the nearest one in the opposite
// direction. If nothing is enabled, current is returned unchanged.
func Page(current, delta, n int, disabled Disabled) int {
	if n <= 0 {
		return -1
	}
	target := current + delta
	if current < 0 || current >= n {
		// Entering from outside: count from just beyond the matching end.
		if delta < 0 {
			target = n + delta
		} else {
			target = delta - 1
		}
	}
	target = min(max(target, 0), n-1)
	if !disabled.at(target) {
		return target
	}
	dir := Forward
	if delta < 0 {
		dir = Backward
	}
	if i := Next(target, dir, n, disabled, false); i != target {
		return i
	}
	if i := Next(target, -dir, n, disabled, false); i != target {
		return i
	}
	return current
}

// Clamp returns i if it is a valid index into a list of n items, and -1
// otherwise.
func Clamp(i, n int) int {
	if i < 0 || i >= n {
		return -1
	}
	return i
}
