package combo

import (
	"strconv"
)

// EventType enumerates the element events the prop builders handle.
type EventType uint8

// Possible values of EventType.
const (
	Click EventType = iota
	MouseMove
	MouseDown
	MouseUp
	MouseLeave
	KeyDown
	// Input is fired when the text of the input changes; Event.Text holds
	// the new text.
	Input
	Focus
	Blur
)

var eventTypeNames = [...]string{
	Click: "click", MouseMove: "mousemove", MouseDown: "mousedown",
	MouseUp: "mouseup", MouseLeave: "mouseleave", KeyDown: "keydown",
	Input: "input", Focus: "focus", Blur: "blur",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "event(?)"
}

// Names of the keys the widget reacts to, as found in Event.Key.
const (
	KeyArrowDown = "ArrowDown"
	KeyArrowUp   = "ArrowUp"
	KeyHome      = "Home"
	KeyEnd       = "End"
	KeyPageUp    = "PageUp"
	KeyPageDown  = "PageDown"
	KeyEnter     = "Enter"
	KeyEscape    = "Escape"
	KeySpace     = " "
)

// Event is an element event delivered by the renderer.
type Event struct {
	Type EventType
	// For KeyDown.
	Key    string
	AltKey bool
	// For Input.
	Text string
}

// Reaction is returned by handlers to tell the renderer whether the event
// has been used. The renderer should apply its default behavior, such as
// moving the caret, only to unused events.
type Reaction uint8

const (
	Unused Reaction = iota
	Consumed
)

func (r Reaction) String() string {
	if r == Consumed {
		return "consumed"
	}
	return "unused"
}

// Handler handles an event.
type Handler func(Event) Reaction

// Attrs are element attributes, such as ARIA attributes.
type Attrs map[string]string

// Props is the bundle of attributes and event handlers for one element.
type Props struct {
	Attrs    Attrs
	Handlers map[EventType]Handler
}

// Handle calls the handler for e, if any.
func (p Props) Handle(e Event) Reaction {
	if h := p.Handlers[e.Type]; h != nil {
		return h(e)
	}
	return Unused
}

// Returns a handler that dispatches the action returned by f. If f returns
// nil, the event is unused.
func (w *Widget[T]) handler(f func(Event) Action) Handler {
	return func(e Event) Reaction {
		a := f(e)
		if a == nil {
			return Unused
		}
		if err := w.dispatch(a); err != nil {
			logDispatchError(a, err)
			return Unused
		}
		return Consumed
	}
}

func always(a Action) func(Event) Action {
	return func(Event) Action { return a }
}

func boolAttr(b bool) string { return strconv.FormatBool(b) }

// Returns the active descendant id, which is only set while the menu is open
// and an item is highlighted.
func (w *Widget[T]) activeDescendant(s State[T]) string {
	if s.IsOpen && s.HighlightedIndex >= 0 {
		return w.ids.Item(s.HighlightedIndex)
	}
	return ""
}

// LabelProps returns the props of the label element.
func (w *Widget[T]) LabelProps() Props {
	target := w.ids.Input
	if w.variant == Select {
		target = w.ids.ToggleButton
	}
	return Props{Attrs: Attrs{"id": w.ids.Label, "for": target}}
}

// RootProps returns the props of the element containing the whole widget.
// Its mouseup handler ends a press that started inside the widget. A
// release outside the widget is reported with [Widget.PointerUpOutside].
func (w *Widget[T]) RootProps() Props {
	return Props{
		Attrs: Attrs{"id": w.ids.Root},
		Handlers: map[EventType]Handler{
			MouseUp: func(Event) Reaction {
				w.endPress()
				return Unused
			},
		},
	}
}

// MenuProps returns the props of the menu (the listbox).
func (w *Widget[T]) MenuProps() Props {
	return Props{
		Attrs: Attrs{
			"id":              w.ids.Menu,
			"role":            "listbox",
			"aria-labelledby": w.ids.Label,
		},
		Handlers: map[EventType]Handler{
			MouseLeave: w.handler(always(MenuMouseLeave{})),
			MouseDown:  w.pressInside,
		},
	}
}

// Handles a mouse press inside the widget, which moves focus away from the
// input or toggle button without leaving the widget.
func (w *Widget[T]) pressInside(Event) Reaction {
	w.mouseDown = true
	w.cancelBlur()
	return Unused
}

// ToggleButtonProps returns the props of the toggle button. In the Select
// variant the toggle button is the focusable element carrying the combobox
// role and keyboard handling.
func (w *Widget[T]) ToggleButtonProps() Props {
	s := w.State()
	p := Props{
		Attrs: Attrs{
			"id":            w.ids.ToggleButton,
			"aria-controls": w.ids.Menu,
			"aria-expanded": boolAttr(s.IsOpen),
		},
		Handlers: map[EventType]Handler{
			Click: w.handler(always(ToggleButtonClick{})),
			Focus: func(Event) Reaction {
				w.cancelBlur()
				return Unused
			},
		},
	}
	if w.variant == Combobox {
		p.Attrs["tabindex"] = "-1"
		return p
	}
	p.Attrs["role"] = "combobox"
	p.Attrs["tabindex"] = "0"
	p.Attrs["aria-haspopup"] = "listbox"
	p.Attrs["aria-labelledby"] = w.ids.Label
	if id := w.activeDescendant(s); id != "" {
		p.Attrs["aria-activedescendant"] = id
	}
	p.Handlers[KeyDown] = w.handler(w.toggleButtonKeyAction)
	p.Handlers[Blur] = func(Event) Reaction {
		w.beginBlur(w.blurAction(true))
		return Unused
	}
	return p
}

func (w *Widget[T]) toggleButtonKeyAction(e Event) Action {
	s := w.State()
	switch e.Key {
	case KeyArrowDown:
		return ToggleButtonKeyDownArrowDown{}
	case KeyArrowUp:
		return ToggleButtonKeyDownArrowUp{}
	case KeyHome:
		return ToggleButtonKeyDownHome{}
	case KeyEnd:
		return ToggleButtonKeyDownEnd{}
	case KeyPageUp:
		if s.IsOpen {
			return ToggleButtonKeyDownPageUp{}
		}
	case KeyPageDown:
		if s.IsOpen {
			return ToggleButtonKeyDownPageDown{}
		}
	case KeyEnter:
		return ToggleButtonKeyDownEnter{}
	case KeySpace:
		return ToggleButtonKeyDownSpaceButton{}
	case KeyEscape:
		if s.IsOpen || w.options.EscapePolicy == EscapeClear {
			return ToggleButtonKeyDownEscape{}
		}
	}
	return nil
}

// InputProps returns the props of the text input. It fails with
// ErrWrongVariant in the Select variant.
func (w *Widget[T]) InputProps() (Props, error) {
	if w.variant != Combobox {
		return Props{}, ErrWrongVariant
	}
	s := w.State()
	p := Props{
		Attrs: Attrs{
			"id":                w.ids.Input,
			"role":              "combobox",
			"aria-autocomplete": "list",
			"aria-controls":     w.ids.Menu,
			"aria-expanded":     boolAttr(s.IsOpen),
			"aria-labelledby":   w.ids.Label,
			"autocomplete":      "off",
			"value":             s.InputValue,
		},
		Handlers: map[EventType]Handler{
			KeyDown: w.handler(w.inputKeyAction),
			Input: w.handler(func(e Event) Action {
				return InputChange{Text: e.Text}
			}),
			Click: w.handler(always(InputClick{})),
			Focus: func(Event) Reaction {
				w.cancelBlur()
				if err := w.dispatch(InputFocus{}); err != nil {
					logDispatchError(InputFocus{}, err)
				}
				return Unused
			},
			Blur: func(Event) Reaction {
				w.beginBlur(w.blurAction(true))
				return Unused
			},
		},
	}
	if id := w.activeDescendant(s); id != "" {
		p.Attrs["aria-activedescendant"] = id
	}
	return p, nil
}

func (w *Widget[T]) inputKeyAction(e Event) Action {
	s := w.State()
	switch e.Key {
	case KeyArrowDown:
		return InputKeyDownArrowDown{AltKey: e.AltKey}
	case KeyArrowUp:
		return InputKeyDownArrowUp{AltKey: e.AltKey}
	}
	if !s.IsOpen {
		// Closed: leave Home, End and friends to the text input.
		if e.Key == KeyEscape && w.options.EscapePolicy == EscapeClear {
			return InputKeyDownEscape{}
		}
		return nil
	}
	switch e.Key {
	case KeyHome:
		return InputKeyDownHome{}
	case KeyEnd:
		return InputKeyDownEnd{}
	case KeyPageUp:
		return InputKeyDownPageUp{}
	case KeyPageDown:
		return InputKeyDownPageDown{}
	case KeyEnter:
		return InputKeyDownEnter{}
	case KeyEscape:
		return InputKeyDownEscape{}
	}
	return nil
}

// ItemProps returns the props of the item at index i. It fails with an
// IndexError if i is not an index into the current items.
func (w *Widget[T]) ItemProps(i int) (Props, error) {
	if i < 0 || i >= len(w.items) {
		return Props{}, IndexError{Index: i, Len: len(w.items)}
	}
	s := w.State()
	item := w.items[i]
	disabled := w.isItemDisabled != nil && w.isItemDisabled(item, i)
	highlighted := s.IsOpen && i == s.HighlightedIndex
	p := Props{
		Attrs: Attrs{
			"id":               w.ids.Item(i),
			"role":             "option",
			"aria-selected":    boolAttr(s.SelectedItem.OK && s.SelectedItem.Item == item),
			"data-key":         w.key(item, i),
			"data-highlighted": boolAttr(highlighted),
		},
	}
	if disabled {
		p.Attrs["aria-disabled"] = "true"
		return p, nil
	}
	p.Handlers = map[EventType]Handler{
		MouseMove: func(Event) Reaction {
			if highlighted {
				return Unused
			}
			return w.handler(always(ItemMouseMove{Index: i}))(Event{})
		},
		MouseDown: w.pressInside,
		Click: func(e Event) Reaction {
			w.mouseDown = false
			w.cancelBlur()
			return w.handler(always(ItemClick{Index: i}))(e)
		},
	}
	return p, nil
}
