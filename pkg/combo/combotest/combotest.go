// Package combotest provides facilities for testing code built on combo
// widgets.
//
// A [Fixture] wraps a widget, records every committed transition and
// collects scheduled blur confirmations so that tests decide when they run:
//
//	f := combotest.Setup(t, combo.Spec[string]{Items: fruits})
//	f.Click(f.W.ToggleButtonProps)
//	f.Press(combo.KeyArrowDown)
//	f.TestState(combo.State[string]{IsOpen: true, HighlightedIndex: 0})
package combotest

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/elves/selectkit/pkg/combo"
)

// Fixture drives a widget in a test.
type Fixture[T comparable] struct {
	t *testing.T
	// The widget under test.
	W *combo.Widget[T]
	// All transitions committed since Setup, in order.
	Transitions []combo.StateChange[T]
	scheduled   []func()
}

// Setup creates a widget from spec. Transitions are recorded in addition to
// calling spec.Hooks.OnStateChange; spec.Scheduler is replaced by one that
// queues the function until RunScheduled is called.
func Setup[T comparable](t *testing.T, spec combo.Spec[T]) *Fixture[T] {
	t.Helper()
	f := &Fixture[T]{t: t}
	onStateChange := spec.Hooks.OnStateChange
	spec.Hooks.OnStateChange = func(sc combo.StateChange[T]) {
		f.Transitions = append(f.Transitions, sc)
		if onStateChange != nil {
			onStateChange(sc)
		}
	}
	spec.Scheduler = func(fn func()) { f.scheduled = append(f.scheduled, fn) }
	w, err := combo.New(spec)
	if err != nil {
		t.Fatalf("combo.New: %v", err)
	}
	t.Cleanup(w.Release)
	f.W = w
	return f
}

// Dispatch dispatches actions in order, failing the test on error.
func (f *Fixture[T]) Dispatch(actions ...combo.Action) {
	f.t.Helper()
	for _, a := range actions {
		if _, err := f.W.Dispatch(a); err != nil {
			f.t.Fatalf("Dispatch(%v): %v", a.Kind(), err)
		}
	}
}

// Focusable returns the props of the element that receives keyboard events:
// the input of a combobox or the toggle button of a select.
func (f *Fixture[T]) Focusable() combo.Props {
	f.t.Helper()
	if f.W.Variant() == combo.Select {
		return f.W.ToggleButtonProps()
	}
	p, err := f.W.InputProps()
	if err != nil {
		f.t.Fatal(err)
	}
	return p
}

// Press sends KeyDown events for each key to the focusable element and
// returns the reaction to the last one.
func (f *Fixture[T]) Press(keys ...string) combo.Reaction {
	f.t.Helper()
	var r combo.Reaction
	for _, key := range keys {
		r = f.Focusable().Handle(combo.Event{Type: combo.KeyDown, Key: key})
	}
	return r
}

// PressAlt sends a KeyDown event with the Alt modifier.
func (f *Fixture[T]) PressAlt(key string) combo.Reaction {
	f.t.Helper()
	return f.Focusable().Handle(combo.Event{Type: combo.KeyDown, Key: key, AltKey: true})
}

// Type sends an Input event as if the user had changed the input text to
// text.
func (f *Fixture[T]) Type(text string) combo.Reaction {
	f.t.Helper()
	return f.Focusable().Handle(combo.Event{Type: combo.Input, Text: text})
}

// Send sends an event to the element whose props are returned by props.
func (f *Fixture[T]) Send(props func() combo.Props, e combo.Event) combo.Reaction {
	return props().Handle(e)
}

// Click clicks the element whose props are returned by props.
func (f *Fixture[T]) Click(props func() combo.Props) combo.Reaction {
	return props().Handle(combo.Event{Type: combo.Click})
}

// Item returns the props of item i, failing the test on error.
func (f *Fixture[T]) Item(i int) combo.Props {
	f.t.Helper()
	p, err := f.W.ItemProps(i)
	if err != nil {
		f.t.Fatal(err)
	}
	return p
}

// RunScheduled runs the functions scheduled so far, such as blur
// confirmations.
func (f *Fixture[T]) RunScheduled() {
	fns := f.scheduled
	f.scheduled = nil
	for _, fn := range fns {
		fn()
	}
}

// TestState checks the state of the widget.
func (f *Fixture[T]) TestState(want combo.State[T]) {
	f.t.Helper()
	if diff := cmp.Diff(want, f.W.State()); diff != "" {
		f.t.Errorf("state (-want +got):\n%s", diff)
	}
}

// TestKinds checks the kinds of the recorded transitions.
func (f *Fixture[T]) TestKinds(want ...combo.Kind) {
	f.t.Helper()
	var got []combo.Kind
	for _, sc := range f.Transitions {
		got = append(got, sc.Kind)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		f.t.Errorf("transition kinds (-want +got):\n%s", diff)
	}
}
