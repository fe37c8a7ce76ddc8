// Package ids generates the element identifiers that tie the parts of a
// widget together for assistive technologies.
//
// A [Registry] is scoped to whatever owns it (typically one page or one
// terminal session); there is no process-wide counter. Identifiers are
// derived from a prefix, so the same sequence of calls always yields the same
// identifiers.
package ids

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
)

// ErrDuplicatePrefix is returned when a prefix is claimed twice from the same
// Registry.
var ErrDuplicatePrefix = errors.New("duplicate id prefix")

// IDs holds the identifiers of one widget instance.
type IDs struct {
	Root         string
	Label        string
	Input        string
	ToggleButton string
	Menu         string
	// ItemPrefix is the prefix of item ids; see Item.
	ItemPrefix string
	// If non-nil, used by Item instead of ItemPrefix.
	itemFn func(int) string
}

// Item returns the id of the item at index i.
func (ids IDs) Item(i int) string {
	if ids.itemFn != nil {
		return ids.itemFn(i)
	}
	return ids.ItemPrefix + strconv.Itoa(i)
}

// Overrides replaces individual identifiers of an IDs. Empty fields keep the
// derived identifiers.
type Overrides struct {
	Label        string
	Input        string
	ToggleButton string
	Menu         string
	// Item, if non-nil, computes item ids.
	Item func(i int) string
}

// Apply returns a copy of ids with the non-empty overrides applied.
func (o Overrides) Apply(ids IDs) IDs {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&ids.Label, o.Label)
	set(&ids.Input, o.Input)
	set(&ids.ToggleButton, o.ToggleButton)
	set(&ids.Menu, o.Menu)
	if o.Item != nil {
		ids.itemFn = o.Item
	}
	return ids
}

// Derive returns the identifiers for a widget whose root id is prefix.
func Derive(prefix string) IDs {
	return IDs{
		Root:         prefix,
		Label:        prefix + "-label",
		Input:        prefix + "-input",
		ToggleButton: prefix + "-toggle-button",
		Menu:         prefix + "-menu",
		ItemPrefix:   prefix + "-item-",
	}
}

// Registry hands out unique identifier sets.
type Registry struct {
	base    string
	mutex   sync.Mutex
	next    int
	claimed map[string]struct{}
}

// DefaultBase is the base used by a Registry created with an empty base.
const DefaultBase = "selectkit"

// NewRegistry creates a Registry. Identifiers made by Next start with base.
func NewRegistry(base string) *Registry {
	if base == "" {
		base = DefaultBase
	}
	return &Registry{base: base, claimed: make(map[string]struct{})}
}

// Next returns a fresh identifier set named <base>-<n>, where n counts up
// from 0 and skips prefixes that have been claimed explicitly.
func (r *Registry) Next() IDs {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	for {
		prefix := r.base + "-" + strconv.Itoa(r.next)
		r.next++
		if _, ok := r.claimed[prefix]; !ok {
			r.claimed[prefix] = struct{}{}
			return Derive(prefix)
		}
	}
}

// Claim returns the identifier set for prefix. It fails if the prefix has
// already been handed out by this Registry.
func (r *Registry) Claim(prefix string) (IDs, error) {
	if prefix == "" {
		return r.Next(), nil
	}
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if _, ok := r.claimed[prefix]; ok {
		return IDs{}, fmt.Errorf("%w: %q", ErrDuplicatePrefix, prefix)
	}
	r.claimed[prefix] = struct{}{}
	return Derive(prefix), nil
}

// Release makes prefix available again, typically when the widget owning it
// goes away.
func (r *Registry) Release(prefix string) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	delete(r.claimed, prefix)
}
