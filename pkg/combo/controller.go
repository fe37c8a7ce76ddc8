package combo

// Hooks are the change notifications of a widget. All of them are optional.
//
// Hooks are called synchronously while a transition is being committed and
// must not dispatch actions to the same widget; such calls fail with
// ErrReentrantDispatch.
type Hooks[T comparable] struct {
	OnIsOpenChange           func(FieldChange[bool])
	OnHighlightedIndexChange func(FieldChange[int])
	OnSelectedItemChange     func(FieldChange[Selection[T]])
	OnInputValueChange       func(FieldChange[string])
	// Called once per transition that changed at least one field, after all
	// the per-field hooks.
	OnStateChange func(StateChange[T])
	// Called when a controlled value cannot be used as is, such as a
	// highlighted index outside the current items.
	OnInconsistentState func(InconsistentState)
}

// Controller owns the state fields of a widget and commits changes to them.
type Controller[T comparable] struct {
	isOpen           Field[bool]
	highlightedIndex Field[int]
	selectedItem     Field[Selection[T]]
	inputValue       Field[string]

	hooks Hooks[T]
	// Set while a commit is in progress.
	busy bool
}

// NewController creates a Controller from the four fields. The fields must
// not be unset.
func NewController[T comparable](isOpen Field[bool], highlightedIndex Field[int], selectedItem Field[Selection[T]], inputValue Field[string], hooks Hooks[T]) *Controller[T] {
	return &Controller[T]{
		isOpen: isOpen, highlightedIndex: highlightedIndex,
		selectedItem: selectedItem, inputValue: inputValue,
		hooks: hooks}
}

// State returns the current values of all fields, reading controlled fields
// from the host.
func (c *Controller[T]) State() State[T] {
	return State[T]{
		IsOpen:           c.isOpen.Get(),
		HighlightedIndex: c.highlightedIndex.Get(),
		SelectedItem:     c.selectedItem.Get(),
		InputValue:       c.inputValue.Get(),
	}
}

// Busy reports whether a commit is in progress.
func (c *Controller[T]) Busy() bool { return c.busy }

// Commit applies ch field by field and fires the change notifications.
//
// A field is changed, and notified, only if ch touches it with a value
// different from the current one. Uncontrolled fields take the new value;
// controlled fields keep reporting the host's value, but their hooks still
// receive the proposed value. It returns the state after the commit.
func (c *Controller[T]) Commit(kind Kind, ch Changes[T]) (State[T], error) {
	if c.busy {
		return c.State(), ErrReentrantDispatch
	}
	c.busy = true
	defer func() { c.busy = false }()

	old := c.State()
	var changed Changes[T]
	if ch.IsOpen != nil && *ch.IsOpen != old.IsOpen {
		changed = changed.WithIsOpen(*ch.IsOpen)
		c.isOpen.set(*ch.IsOpen)
	}
	if ch.HighlightedIndex != nil && *ch.HighlightedIndex != old.HighlightedIndex {
		changed = changed.WithHighlightedIndex(*ch.HighlightedIndex)
		c.highlightedIndex.set(*ch.HighlightedIndex)
	}
	if ch.SelectedItem != nil && *ch.SelectedItem != old.SelectedItem {
		changed = changed.WithSelectedItem(*ch.SelectedItem)
		c.selectedItem.set(*ch.SelectedItem)
	}
	if ch.InputValue != nil && *ch.InputValue != old.InputValue {
		changed = changed.WithInputValue(*ch.InputValue)
		c.inputValue.set(*ch.InputValue)
	}
	if changed.Empty() {
		return c.State(), nil
	}

	h := &c.hooks
	if changed.IsOpen != nil && h.OnIsOpenChange != nil {
		h.OnIsOpenChange(FieldChange[bool]{old.IsOpen, *changed.IsOpen, kind})
	}
	if changed.HighlightedIndex != nil && h.OnHighlightedIndexChange != nil {
		h.OnHighlightedIndexChange(FieldChange[int]{old.HighlightedIndex, *changed.HighlightedIndex, kind})
	}
	if changed.SelectedItem != nil && h.OnSelectedItemChange != nil {
		h.OnSelectedItemChange(FieldChange[Selection[T]]{old.SelectedItem, *changed.SelectedItem, kind})
	}
	if changed.InputValue != nil && h.OnInputValueChange != nil {
		h.OnInputValueChange(FieldChange[string]{old.InputValue, *changed.InputValue, kind})
	}
	if h.OnStateChange != nil {
		h.OnStateChange(StateChange[T]{Kind: kind, Changes: changed})
	}
	return c.State(), nil
}

// Clears an uncontrolled highlighted index. Used when the items change under
// the widget; controlled indices are left to the host.
func (c *Controller[T]) resetStaleHighlight() {
	c.highlightedIndex.set(-1)
}

func (c *Controller[T]) highlightControlled() bool {
	return c.highlightedIndex.IsControlled()
}
