package combo

import (
	"fmt"

	"github.com/elves/selectkit/pkg/nav"
)

// Env is everything apart from the state and the action that a reducer
// needs to compute a transition. It is a snapshot; reducers must not retain
// it.
type Env[T comparable] struct {
	Variant Variant
	Items   []T
	// ToString converts an item to the text shown in the input. If nil,
	// fmt.Sprint is used.
	ToString func(T) string
	// IsItemDisabled reports whether an item can be highlighted or selected.
	// If nil, no item is disabled.
	IsItemDisabled func(item T, index int) bool
	Options        Options
	// The state FunctionReset restores.
	Initial State[T]
}

func (env Env[T]) text(sel Selection[T]) string {
	if !sel.OK {
		return ""
	}
	if env.ToString == nil {
		return fmt.Sprint(sel.Item)
	}
	return env.ToString(sel.Item)
}

func (env Env[T]) disabled() nav.Disabled {
	if env.IsItemDisabled == nil {
		return nil
	}
	return func(i int) bool { return env.IsItemDisabled(env.Items[i], i) }
}

func (env Env[T]) isDisabled(i int) bool {
	return env.IsItemDisabled != nil && env.IsItemDisabled(env.Items[i], i)
}

// Returns whether i refers to an item that can be highlighted or selected.
func (env Env[T]) usable(i int) bool {
	return 0 <= i && i < len(env.Items) && !env.isDisabled(i)
}

// Returns the index of sel in the items, or -1.
func (env Env[T]) indexOf(sel Selection[T]) int {
	if !sel.OK {
		return -1
	}
	for i, item := range env.Items {
		if item == sel.Item {
			return i
		}
	}
	return -1
}

// Sets the input value, but only in the variant that has an input.
func (env Env[T]) withInput(c Changes[T], text string) Changes[T] {
	if env.Variant == Select {
		return c
	}
	return c.WithInputValue(text)
}

// Returns the highlight to use when the menu opens: the selected item if it
// is in the list and enabled, otherwise depending on dir the first or last
// enabled item, or -1 if dir is 0.
func (env Env[T]) highlightOnOpen(s State[T], dir nav.Direction) int {
	if i := env.indexOf(s.SelectedItem); env.usable(i) {
		return i
	}
	switch dir {
	case nav.Forward:
		return nav.First(len(env.Items), env.disabled())
	case nav.Backward:
		return nav.Last(len(env.Items), env.disabled())
	}
	return -1
}

func (env Env[T]) open(s State[T], dir nav.Direction) Changes[T] {
	return Changes[T]{}.WithIsOpen(true).
		WithHighlightedIndex(env.highlightOnOpen(s, dir))
}

func (env Env[T]) close() Changes[T] {
	return Changes[T]{}.WithIsOpen(false).WithHighlightedIndex(-1)
}

// Selects the item at index i. The caller must check that i is usable.
func (env Env[T]) selectIndex(i int, closeMenu bool) Changes[T] {
	sel := Selected(env.Items[i])
	c := Changes[T]{}.WithSelectedItem(sel).WithHighlightedIndex(-1)
	if closeMenu {
		c = c.WithIsOpen(false)
	}
	return env.withInput(c, env.text(sel))
}

func (env Env[T]) step(s State[T], dir nav.Direction) Changes[T] {
	return Changes[T]{}.WithHighlightedIndex(nav.Next(
		s.HighlightedIndex, dir, len(env.Items), env.disabled(),
		env.Options.CircularNavigation))
}

func (env Env[T]) page(s State[T], dir nav.Direction) Changes[T] {
	delta := env.Options.pageSize() * int(dir)
	return Changes[T]{}.WithHighlightedIndex(
		nav.Page(s.HighlightedIndex, delta, len(env.Items), env.disabled()))
}

// Handles arrow keys on both the input and the toggle button. When alt is
// true and the menu is open, ArrowUp commits the highlighted item; when alt
// is true and the menu is closed, ArrowDown opens it without highlighting
// anything unless there is a selection.
func (env Env[T]) arrow(s State[T], dir nav.Direction, alt bool) Changes[T] {
	if !s.IsOpen {
		if alt && dir == nav.Forward && !s.SelectedItem.OK {
			return Changes[T]{}.WithIsOpen(true).WithHighlightedIndex(-1)
		}
		return env.open(s, dir)
	}
	if alt && dir == nav.Backward {
		if env.usable(s.HighlightedIndex) {
			return env.selectIndex(s.HighlightedIndex, true)
		}
		return env.close()
	}
	return env.step(s, dir)
}

func (env Env[T]) edge(s State[T], first bool) Changes[T] {
	n, disabled := len(env.Items), env.disabled()
	i := nav.Last(n, disabled)
	if first {
		i = nav.First(n, disabled)
	}
	c := Changes[T]{}.WithHighlightedIndex(i)
	if !s.IsOpen {
		c = c.WithIsOpen(true)
	}
	return c
}

func (env Env[T]) enter(s State[T]) Changes[T] {
	if env.usable(s.HighlightedIndex) {
		return env.selectIndex(s.HighlightedIndex, env.Options.CloseOnSelect)
	}
	if env.Options.EnterPolicy == EnterClose {
		return env.close()
	}
	return Changes[T]{}
}

func (env Env[T]) escape(s State[T]) Changes[T] {
	clearing := env.Options.EscapePolicy == EscapeClear
	if !s.IsOpen {
		if !clearing {
			return Changes[T]{}
		}
		return env.withInput(
			Changes[T]{}.WithSelectedItem(Selection[T]{}), "")
	}
	c := env.close()
	if s.SelectedItem.OK || clearing {
		c = env.withInput(c, env.text(s.SelectedItem))
	}
	return c
}

func (env Env[T]) blur(s State[T], selectItem bool) Changes[T] {
	if s.IsOpen && selectItem && env.Options.CommitOnBlur &&
		env.usable(s.HighlightedIndex) {
		return env.selectIndex(s.HighlightedIndex, true)
	}
	return env.close()
}

func (env Env[T]) toggle(s State[T]) Changes[T] {
	if s.IsOpen {
		return env.close()
	}
	return env.open(s, 0)
}

// Reduce is the default reducer. It returns the changes realizing the
// canonical behavior of action a in state s, touching only the fields that
// need to change. It never modifies its arguments.
//
// State.HighlightedIndex is assumed to be either -1 or valid for env.Items;
// Widget guarantees this before calling the reducer.
func Reduce[T comparable](env Env[T], s State[T], a Action) Changes[T] {
	var c Changes[T]
	switch a := a.(type) {
	case ItemClick:
		if !env.usable(a.Index) {
			return c
		}
		return env.selectIndex(a.Index, env.Options.CloseOnSelect)
	case ItemMouseMove:
		if !s.IsOpen || !env.usable(a.Index) {
			return c
		}
		return c.WithHighlightedIndex(a.Index)
	case MenuMouseLeave:
		return c.WithHighlightedIndex(-1)
	case ToggleButtonClick, InputClick, FunctionToggleMenu:
		return env.toggle(s)

	case InputKeyDownArrowDown:
		return env.arrow(s, nav.Forward, a.AltKey)
	case InputKeyDownArrowUp:
		return env.arrow(s, nav.Backward, a.AltKey)
	case ToggleButtonKeyDownArrowDown:
		return env.arrow(s, nav.Forward, false)
	case ToggleButtonKeyDownArrowUp:
		return env.arrow(s, nav.Backward, false)

	case InputKeyDownHome:
		if !s.IsOpen {
			return c
		}
		return env.edge(s, true)
	case InputKeyDownEnd:
		if !s.IsOpen {
			return c
		}
		return env.edge(s, false)
	case ToggleButtonKeyDownHome:
		return env.edge(s, true)
	case ToggleButtonKeyDownEnd:
		return env.edge(s, false)

	case InputKeyDownPageUp, ToggleButtonKeyDownPageUp:
		if !s.IsOpen {
			return c
		}
		return env.page(s, nav.Backward)
	case InputKeyDownPageDown, ToggleButtonKeyDownPageDown:
		if !s.IsOpen {
			return c
		}
		return env.page(s, nav.Forward)

	case InputKeyDownEnter:
		if !s.IsOpen {
			return c
		}
		return env.enter(s)
	case ToggleButtonKeyDownEnter, ToggleButtonKeyDownSpaceButton:
		if !s.IsOpen {
			return env.open(s, 0)
		}
		return env.enter(s)

	case InputKeyDownEscape, ToggleButtonKeyDownEscape:
		return env.escape(s)

	case InputChange:
		return env.withInput(c.WithIsOpen(true).WithHighlightedIndex(-1), a.Text)
	case InputBlur:
		return env.blur(s, a.SelectItem)
	case ToggleButtonBlur:
		return env.blur(s, a.SelectItem)
	case InputFocus:
		if !env.Options.OpenOnFocus || s.IsOpen {
			return c
		}
		return env.open(s, 0)

	case ControlledSelectedItemUpdated:
		return env.withInput(c, env.text(s.SelectedItem))

	case FunctionOpenMenu:
		if s.IsOpen {
			return c.WithIsOpen(true)
		}
		return env.open(s, 0)
	case FunctionCloseMenu:
		return env.close()
	case FunctionSetHighlightedIndex:
		return c.WithHighlightedIndex(nav.Clamp(a.Index, len(env.Items)))
	case FunctionSelectItem[T]:
		return env.withInput(c.WithSelectedItem(a.Item), env.text(a.Item))
	case FunctionSetInputValue:
		return env.withInput(c, a.Text)
	case FunctionReset:
		initial := env.Initial
		c = c.WithIsOpen(initial.IsOpen).
			WithHighlightedIndex(nav.Clamp(initial.HighlightedIndex, len(env.Items))).
			WithSelectedItem(initial.SelectedItem)
		return env.withInput(c, initial.InputValue)
	}
	return c
}
