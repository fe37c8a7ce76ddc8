package combo

// Selection is an optional item. The zero value means nothing is selected.
type Selection[T comparable] struct {
	Item T
	OK   bool
}

// Selected returns a Selection holding item.
func Selected[T comparable](item T) Selection[T] {
	return Selection[T]{Item: item, OK: true}
}

// State is the state of a widget.
type State[T comparable] struct {
	// Whether the menu is shown.
	IsOpen bool
	// Index of the highlighted item in the current items, or -1 if no item
	// is highlighted. Only meaningful while the menu is open, but kept while
	// it is closed.
	HighlightedIndex int
	// The committed selection.
	SelectedItem Selection[T]
	// Content of the text input. Always empty in the Select variant.
	InputValue string
}

// Changes is a partial State. A nil field is left untouched when the
// changes are committed.
type Changes[T comparable] struct {
	IsOpen           *bool
	HighlightedIndex *int
	SelectedItem     *Selection[T]
	InputValue       *string
}

// WithIsOpen returns a copy of c that sets IsOpen to v.
func (c Changes[T]) WithIsOpen(v bool) Changes[T] {
	c.IsOpen = &v
	return c
}

// WithHighlightedIndex returns a copy of c that sets HighlightedIndex to v.
func (c Changes[T]) WithHighlightedIndex(v int) Changes[T] {
	c.HighlightedIndex = &v
	return c
}

// WithSelectedItem returns a copy of c that sets SelectedItem to v.
func (c Changes[T]) WithSelectedItem(v Selection[T]) Changes[T] {
	c.SelectedItem = &v
	return c
}

// WithInputValue returns a copy of c that sets InputValue to v.
func (c Changes[T]) WithInputValue(v string) Changes[T] {
	c.InputValue = &v
	return c
}

// Empty reports whether c touches no field.
func (c Changes[T]) Empty() bool {
	return c.IsOpen == nil && c.HighlightedIndex == nil &&
		c.SelectedItem == nil && c.InputValue == nil
}

// Apply returns s with all fields touched by c replaced.
func (c Changes[T]) Apply(s State[T]) State[T] {
	if c.IsOpen != nil {
		s.IsOpen = *c.IsOpen
	}
	if c.HighlightedIndex != nil {
		s.HighlightedIndex = *c.HighlightedIndex
	}
	if c.SelectedItem != nil {
		s.SelectedItem = *c.SelectedItem
	}
	if c.InputValue != nil {
		s.InputValue = *c.InputValue
	}
	return s
}

// FieldChange describes the change of one state field.
type FieldChange[V any] struct {
	// The value before the transition.
	Old V
	// The value the transition proposed. For a controlled field, this is
	// not necessarily the value the widget will report.
	New V
	// The kind of action that caused the transition.
	Kind Kind
}

// StateChange describes a committed transition.
type StateChange[T comparable] struct {
	Kind Kind
	// Only the fields whose proposed value differs from the old value.
	Changes Changes[T]
}

// InconsistentState describes a controlled value the widget cannot use
// as is.
type InconsistentState struct {
	Field string
	Value int
	Len   int
}
