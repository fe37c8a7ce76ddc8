package combo_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	. "github.com/elves/selectkit/pkg/combo"
)

func withPrefix(s *Spec[string]) { s.IDPrefix = "fruit" }

func TestInputProps(t *testing.T) {
	f := setup(t, withPrefix)
	want := Attrs{
		"id":                "fruit-input",
		"role":              "combobox",
		"aria-autocomplete": "list",
		"aria-controls":     "fruit-menu",
		"aria-expanded":     "false",
		"aria-labelledby":   "fruit-label",
		"autocomplete":      "off",
		"value":             "",
	}
	if diff := cmp.Diff(want, f.Focusable().Attrs); diff != "" {
		t.Errorf("closed input attrs (-want +got):\n%s", diff)
	}

	f.Press(KeyArrowDown, KeyArrowDown)
	want["aria-expanded"] = "true"
	want["aria-activedescendant"] = "fruit-item-1"
	if diff := cmp.Diff(want, f.Focusable().Attrs); diff != "" {
		t.Errorf("open input attrs (-want +got):\n%s", diff)
	}
}

func TestInputProps_KeysLeftToInputWhenClosed(t *testing.T) {
	f := setup(t)
	for _, key := range []string{KeyHome, KeyEnd, KeyPageUp, KeyPageDown, KeyEnter, KeyEscape, "a"} {
		if r := f.Press(key); r != Unused {
			t.Errorf("%q on closed input was %v, want unused", key, r)
		}
	}
	f.TestKinds()
}

func TestInputProps_EscapeClearOnClosed(t *testing.T) {
	opts := DefaultOptions()
	opts.EscapePolicy = EscapeClear
	f := setup(t, func(s *Spec[string]) {
		s.Options = &opts
		s.SelectedItem = Uncontrolled(Selected("apple"))
	})
	if r := f.Press(KeyEscape); r != Consumed {
		t.Errorf("Escape was %v, want consumed", r)
	}
	f.TestState(S{HighlightedIndex: -1})
}

func TestInputProps_AltArrows(t *testing.T) {
	f := setup(t)
	f.PressAlt(KeyArrowDown)
	f.TestState(S{IsOpen: true, HighlightedIndex: -1})
	f.Press(KeyArrowDown)
	f.PressAlt(KeyArrowUp)
	f.TestState(S{HighlightedIndex: -1, SelectedItem: Selected("apple"), InputValue: "apple"})
}

func TestInputProps_WrongVariant(t *testing.T) {
	f := setup(t, func(s *Spec[string]) { s.Variant = Select })
	if _, err := f.W.InputProps(); !errors.Is(err, ErrWrongVariant) {
		t.Errorf("InputProps returned %v, want ErrWrongVariant", err)
	}
}

func TestItemProps(t *testing.T) {
	f := setup(t, withPrefix, func(s *Spec[string]) {
		s.SelectedItem = Uncontrolled(Selected("cherry"))
		s.IsItemDisabled = func(item string, _ int) bool { return item == "apple" }
	})
	f.Press(KeyArrowDown)
	f.TestState(S{IsOpen: true, HighlightedIndex: 2, SelectedItem: Selected("cherry"), InputValue: "cherry"})

	tests := []struct {
		i        int
		want     Attrs
		handlers bool
	}{
		{0, Attrs{"id": "fruit-item-0", "role": "option", "aria-selected": "false",
			"data-key": "apple", "data-highlighted": "false", "aria-disabled": "true"}, false},
		{1, Attrs{"id": "fruit-item-1", "role": "option", "aria-selected": "false",
			"data-key": "banana", "data-highlighted": "false"}, true},
		{2, Attrs{"id": "fruit-item-2", "role": "option", "aria-selected": "true",
			"data-key": "cherry", "data-highlighted": "true"}, true},
	}
	for _, test := range tests {
		p := f.Item(test.i)
		if diff := cmp.Diff(test.want, p.Attrs); diff != "" {
			t.Errorf("item %d attrs (-want +got):\n%s", test.i, diff)
		}
		if got := p.Handlers != nil; got != test.handlers {
			t.Errorf("item %d has handlers: %v, want %v", test.i, got, test.handlers)
		}
	}

	// Clicking a disabled item does nothing.
	if r := f.Click(func() Props { return f.Item(0) }); r != Unused {
		t.Errorf("click on disabled item was %v", r)
	}
	f.Send(func() Props { return f.Item(1) }, Event{Type: MouseMove})
	f.TestState(S{IsOpen: true, HighlightedIndex: 1, SelectedItem: Selected("cherry"), InputValue: "cherry"})
	// Moving over the highlighted item again is not a transition.
	if r := f.Send(func() Props { return f.Item(1) }, Event{Type: MouseMove}); r != Unused {
		t.Errorf("mousemove on highlighted item was %v", r)
	}
	f.TestKinds(KindInputKeyDownArrowDown, KindItemMouseMove)
}

func TestItemProps_OutOfRange(t *testing.T) {
	f := setup(t)
	for _, i := range []int{-1, 3} {
		_, err := f.W.ItemProps(i)
		if !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("ItemProps(%d) returned %v, want ErrIndexOutOfRange", i, err)
		}
		var indexErr IndexError
		if !errors.As(err, &indexErr) || indexErr != (IndexError{Index: i, Len: 3}) {
			t.Errorf("ItemProps(%d) returned %#v", i, err)
		}
	}
}

func TestLabelAndMenuProps(t *testing.T) {
	f := setup(t, withPrefix)
	if diff := cmp.Diff(Attrs{"id": "fruit-label", "for": "fruit-input"}, f.W.LabelProps().Attrs); diff != "" {
		t.Errorf("label attrs (-want +got):\n%s", diff)
	}
	wantMenu := Attrs{"id": "fruit-menu", "role": "listbox", "aria-labelledby": "fruit-label"}
	if diff := cmp.Diff(wantMenu, f.W.MenuProps().Attrs); diff != "" {
		t.Errorf("menu attrs (-want +got):\n%s", diff)
	}
	if got := f.W.ToggleButtonProps().Attrs["tabindex"]; got != "-1" {
		t.Errorf("combobox toggle button tabindex = %q, want -1", got)
	}
}

func TestSelectVariant(t *testing.T) {
	f := setup(t, withPrefix, func(s *Spec[string]) { s.Variant = Select })

	if got := f.W.LabelProps().Attrs["for"]; got != "fruit-toggle-button" {
		t.Errorf("label for = %q", got)
	}
	want := Attrs{
		"id":              "fruit-toggle-button",
		"role":            "combobox",
		"tabindex":        "0",
		"aria-haspopup":   "listbox",
		"aria-controls":   "fruit-menu",
		"aria-expanded":   "false",
		"aria-labelledby": "fruit-label",
	}
	if diff := cmp.Diff(want, f.Focusable().Attrs); diff != "" {
		t.Errorf("toggle button attrs (-want +got):\n%s", diff)
	}

	f.Press(KeyEnd)
	f.TestState(S{IsOpen: true, HighlightedIndex: 2})
	want["aria-expanded"] = "true"
	want["aria-activedescendant"] = "fruit-item-2"
	if diff := cmp.Diff(want, f.Focusable().Attrs); diff != "" {
		t.Errorf("open toggle button attrs (-want +got):\n%s", diff)
	}

	f.Press(KeyArrowUp, KeySpace)
	f.TestState(S{HighlightedIndex: -1, SelectedItem: Selected("banana")})
	f.Press(KeyEnter)
	f.TestState(S{IsOpen: true, HighlightedIndex: 1, SelectedItem: Selected("banana")})
	f.Press(KeyEscape)
	f.TestState(S{HighlightedIndex: -1, SelectedItem: Selected("banana")})
}

func TestBlur_CommitsHighlighted(t *testing.T) {
	f := setup(t)
	f.Press(KeyArrowDown, KeyArrowDown)
	f.Send(f.Focusable, Event{Type: Blur})
	if !f.W.BlurPending() {
		t.Fatalf("no blur pending after blur event")
	}
	f.TestState(S{IsOpen: true, HighlightedIndex: 1})

	f.RunScheduled()
	f.TestState(S{HighlightedIndex: -1, SelectedItem: Selected("banana"), InputValue: "banana"})
	f.TestKinds(KindInputKeyDownArrowDown, KindInputKeyDownArrowDown, KindInputBlur)
}

func TestBlur_CancelledByFocus(t *testing.T) {
	f := setup(t)
	f.Press(KeyArrowDown)
	f.Send(f.Focusable, Event{Type: Blur})
	f.Send(f.W.ToggleButtonProps, Event{Type: Focus})
	f.RunScheduled()
	f.TestState(S{IsOpen: true, HighlightedIndex: 0})
}

func TestBlur_ClickOnItem(t *testing.T) {
	f := setup(t)
	f.Press(KeyArrowDown)
	// The order in which a browser delivers a click on an item while the
	// input has focus.
	f.Send(func() Props { return f.Item(2) }, Event{Type: MouseDown})
	f.Send(f.Focusable, Event{Type: Blur})
	f.Send(f.W.RootProps, Event{Type: MouseUp})
	f.Click(func() Props { return f.Item(2) })
	f.RunScheduled()

	f.TestState(S{HighlightedIndex: -1, SelectedItem: Selected("cherry"), InputValue: "cherry"})
	f.TestKinds(KindInputKeyDownArrowDown, KindItemClick)
}

func TestBlur_PressMenuReleaseOutside(t *testing.T) {
	f := setup(t)
	f.Press(KeyArrowDown)
	f.Send(f.W.MenuProps, Event{Type: MouseDown})
	f.Send(f.Focusable, Event{Type: Blur})
	f.RunScheduled()
	f.TestState(S{IsOpen: true, HighlightedIndex: 0})

	if err := f.W.PointerUpOutside(); err != nil {
		t.Fatal(err)
	}
	// Releasing outside closes the menu without picking the highlighted item.
	f.TestState(S{HighlightedIndex: -1})
	f.TestKinds(KindInputKeyDownArrowDown, KindInputBlur)
	if f.W.BlurPending() {
		t.Errorf("blur still pending")
	}
}

func TestBlur_PressMenuReleaseInside(t *testing.T) {
	f := setup(t)
	f.Press(KeyArrowDown)
	f.Send(f.W.MenuProps, Event{Type: MouseDown})
	f.Send(f.Focusable, Event{Type: Blur})
	f.Send(f.W.RootProps, Event{Type: MouseUp})
	if !f.W.BlurPending() {
		t.Fatalf("no blur pending after the press ended")
	}

	f.RunScheduled()
	f.TestState(S{HighlightedIndex: -1})
	f.TestKinds(KindInputKeyDownArrowDown, KindInputBlur)
}

func TestBlur_PressMenuThenRefocus(t *testing.T) {
	f := setup(t)
	f.Press(KeyArrowDown)
	f.Send(f.W.MenuProps, Event{Type: MouseDown})
	f.Send(f.Focusable, Event{Type: Blur})
	f.Send(f.Focusable, Event{Type: Focus})
	f.Send(f.W.RootProps, Event{Type: MouseUp})
	f.RunScheduled()
	f.TestState(S{IsOpen: true, HighlightedIndex: 0})
}

func TestPointerUpOutside_ClosedMenu(t *testing.T) {
	f := setup(t)
	if err := f.W.PointerUpOutside(); err != nil {
		t.Fatal(err)
	}
	f.TestState(S{HighlightedIndex: -1})
	f.TestKinds()
}

func TestPointerUpOutside_Select(t *testing.T) {
	f := setup(t, func(s *Spec[string]) { s.Variant = Select })
	f.Click(f.W.ToggleButtonProps)
	f.Press(KeyArrowDown)
	if err := f.W.PointerUpOutside(); err != nil {
		t.Fatal(err)
	}
	f.TestState(S{HighlightedIndex: -1})
	f.TestKinds(KindToggleButtonClick, KindToggleButtonKeyDownArrowDown, KindToggleButtonBlur)
}

func TestBlur_ClosedMenu(t *testing.T) {
	f := setup(t)
	f.Type("x")
	f.Send(f.Focusable, Event{Type: Blur})
	f.RunScheduled()
	f.TestState(S{HighlightedIndex: -1, InputValue: "x"})
}

func TestStatusMessage(t *testing.T) {
	f := setup(t)
	msg := func() string { return f.W.StatusMessage() }

	tests := []struct {
		name string
		do   func()
		want string
	}{
		{"closed", func() {}, ""},
		{"open", func() { f.Press(KeyArrowDown) },
			"3 results are available, use up and down arrow keys to navigate. Press Enter key to select."},
		{"unchanged count", func() { f.Press(KeyArrowDown) }, ""},
		{"filtered", func() { f.W.SetItems([]string{"banana"}) },
			"1 result is available, use up and down arrow keys to navigate. Press Enter key to select."},
		{"no results", func() { f.W.SetItems(nil) }, "No results are available."},
		{"selected", func() {
			f.W.SetItems(fruits)
			f.W.SelectItem("banana")
			f.W.CloseMenu()
		}, "banana has been selected."},
	}
	for _, test := range tests {
		test.do()
		if got := msg(); got != test.want {
			t.Errorf("after %s: got %q, want %q", test.name, got, test.want)
		}
		if got := msg(); got != test.want {
			t.Errorf("after %s, asked again: got %q, want %q", test.name, got, test.want)
		}
	}
}
