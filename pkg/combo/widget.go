// Package combo implements the behavior of selection widgets - a combobox
// with a text input and a select-style dropdown - independent of how they
// are rendered.
//
// A [Widget] holds the state of one widget instance. Every change goes
// through the same path: an [Action] is reduced to proposed [Changes] by
// [Reduce], optionally replaced by an [Overrider], and committed field by
// field by a [Controller], which notifies the host through [Hooks].
//
// Renderers obtain element attributes and event handlers from the prop
// builders ([Widget.InputProps], [Widget.ItemProps] and so on) and
// re-render after each handled event.
//
// A Widget is not safe for concurrent use. All calls, including hook
// invocations, happen synchronously on the caller's goroutine.
package combo

import (
	"fmt"

	"github.com/elves/selectkit/pkg/ids"
	"github.com/elves/selectkit/pkg/logutil"
	"github.com/elves/selectkit/pkg/nav"
)

var logger = logutil.GetLogger("[combo] ")

// Spec specifies the configuration and initial state of a Widget.
type Spec[T comparable] struct {
	Variant Variant
	// The initial items. Use Widget.SetItems to change them.
	Items []T
	// ToString converts an item to text. If nil, fmt.Sprint is used.
	ToString func(T) string
	// Key returns a stable key for an item, unique within a list. If nil,
	// ToString is used.
	Key func(item T, index int) string
	// IsItemDisabled reports whether an item can be highlighted or selected.
	IsItemDisabled func(item T, index int) bool

	// State fields. Unset fields default to uncontrolled fields with a
	// closed menu, no highlight, no selection and, for InputValue, the text
	// of the initial selection.
	IsOpen           Field[bool]
	HighlightedIndex Field[int]
	SelectedItem     Field[Selection[T]]
	InputValue       Field[string]

	// If nil, DefaultOptions() is used.
	Options *Options
	// An optional override reducer.
	Override Overrider[T]
	Hooks    Hooks[T]

	// Registry to obtain element ids from. If nil, a registry private to
	// the widget is used.
	Registry *ids.Registry
	// If non-empty, used as the id prefix; otherwise the registry picks one.
	IDPrefix    string
	IDOverrides ids.Overrides
	// Scheduler runs the confirmation of a blur. If nil, it runs
	// immediately.
	Scheduler Scheduler
}

// Widget is the state machine of one selection widget.
type Widget[T comparable] struct {
	variant        Variant
	items          []T
	toString       func(T) string
	key            func(T, int) string
	isItemDisabled func(T, int) bool
	options        Options
	initial        State[T]

	ctrl     *Controller[T]
	pipeline Pipeline[T]
	hooks    Hooks[T]

	registry *ids.Registry
	ids      ids.IDs

	scheduler   Scheduler
	pendingBlur *pendingBlur
	// Blur that happened while a press inside the widget was in progress.
	heldBlur  Action
	mouseDown bool

	// Last controlled selection seen by SyncControlled.
	lastSelected Selection[T]
	// Last inconsistency reported, to avoid repeating the report on every
	// read.
	lastInconsistent InconsistentState
	// Result count announced by the last status message.
	lastResultCount int
	// The last status message and what it was computed from.
	status statusCache[T]
}

// New creates a Widget from the given spec.
func New[T comparable](spec Spec[T]) (*Widget[T], error) {
	w := &Widget[T]{
		variant:         spec.Variant,
		toString:        spec.ToString,
		key:             spec.Key,
		isItemDisabled:  spec.IsItemDisabled,
		hooks:           spec.Hooks,
		scheduler:       spec.Scheduler,
		lastResultCount: -1,
	}
	if w.toString == nil {
		w.toString = func(item T) string { return fmt.Sprint(item) }
	}
	if w.key == nil {
		w.key = func(item T, _ int) string { return w.toString(item) }
	}
	if w.scheduler == nil {
		w.scheduler = Immediate
	}
	if spec.Options == nil {
		w.options = DefaultOptions()
	} else {
		w.options = *spec.Options
	}
	if err := w.checkKeys(spec.Items); err != nil {
		return nil, err
	}
	w.items = spec.Items

	for _, f := range []struct {
		name    string
		missing bool
	}{
		{"IsOpen", spec.IsOpen.mode == controlled && spec.IsOpen.get == nil},
		{"HighlightedIndex", spec.HighlightedIndex.mode == controlled && spec.HighlightedIndex.get == nil},
		{"SelectedItem", spec.SelectedItem.mode == controlled && spec.SelectedItem.get == nil},
		{"InputValue", spec.InputValue.mode == controlled && spec.InputValue.get == nil},
	} {
		if f.missing {
			return nil, fmt.Errorf("controlled field %s has no accessor", f.name)
		}
	}

	selectedItem := spec.SelectedItem.orDefault(Selection[T]{})
	initialInput := ""
	if sel := selectedItem.Get(); sel.OK && spec.Variant == Combobox {
		initialInput = w.toString(sel.Item)
	}
	if spec.Variant == Select {
		// There is no input; pin its value.
		spec.InputValue = Uncontrolled("")
	}
	w.ctrl = NewController(
		spec.IsOpen.orDefault(false),
		spec.HighlightedIndex.orDefault(-1),
		selectedItem,
		spec.InputValue.orDefault(initialInput),
		w.hooks)
	w.initial = w.ctrl.State()
	w.initial.HighlightedIndex = nav.Clamp(w.initial.HighlightedIndex, len(w.items))
	w.lastSelected = w.initial.SelectedItem
	w.pipeline.Override = spec.Override

	w.registry = spec.Registry
	if w.registry == nil {
		w.registry = ids.NewRegistry("")
	}
	idset, err := w.registry.Claim(spec.IDPrefix)
	if err != nil {
		return nil, err
	}
	w.ids = spec.IDOverrides.Apply(idset)
	return w, nil
}

// Release gives the widget's id prefix back to its registry. The widget must
// not be used afterwards.
func (w *Widget[T]) Release() { w.registry.Release(w.ids.Root) }

// Variant returns the variant of the widget.
func (w *Widget[T]) Variant() Variant { return w.variant }

// IDs returns the element ids of the widget.
func (w *Widget[T]) IDs() ids.IDs { return w.ids }

// Options returns the options of the widget.
func (w *Widget[T]) Options() Options { return w.options }

// Items returns the current items. The caller must not modify the result.
func (w *Widget[T]) Items() []T { return w.items }

// ToString returns the text of item.
func (w *Widget[T]) ToString(item T) string { return w.toString(item) }

// SetItems replaces the items, typically after the host has filtered them.
// It fails without changing anything if two items have the same key. An
// uncontrolled highlighted index that no longer fits is cleared.
//
// SetItems does not dispatch, so unlike the other methods it may be called
// from a hook, such as OnInputValueChange filtering the items for the new
// text. The transition being committed keeps the state the reducer computed
// from the old items; the new items apply from the next read on.
func (w *Widget[T]) SetItems(items []T) error {
	if err := w.checkKeys(items); err != nil {
		return err
	}
	w.items = items
	if !w.ctrl.highlightControlled() {
		if hl := w.ctrl.State().HighlightedIndex; nav.Clamp(hl, len(items)) != hl {
			w.ctrl.resetStaleHighlight()
		}
	}
	return nil
}

// Validate checks the current items for duplicate keys.
func (w *Widget[T]) Validate() error { return w.checkKeys(w.items) }

func (w *Widget[T]) checkKeys(items []T) error {
	seen := make(map[string]int, len(items))
	for i, item := range items {
		k := w.key(item, i)
		if j, ok := seen[k]; ok {
			return KeyError{Key: k, First: j, Second: i}
		}
		seen[k] = i
	}
	return nil
}

// State returns a snapshot of the current state. A highlighted index that
// does not fit the current items is reported as -1.
func (w *Widget[T]) State() State[T] {
	s := w.ctrl.State()
	if hl := nav.Clamp(s.HighlightedIndex, len(w.items)); hl != s.HighlightedIndex {
		if w.ctrl.highlightControlled() {
			w.reportInconsistent(InconsistentState{
				Field: "HighlightedIndex", Value: s.HighlightedIndex, Len: len(w.items)})
		}
		s.HighlightedIndex = hl
	} else {
		w.lastInconsistent = InconsistentState{}
	}
	return s
}

func (w *Widget[T]) reportInconsistent(is InconsistentState) {
	if is == w.lastInconsistent {
		return
	}
	w.lastInconsistent = is
	logger.Printf("controlled %s %d out of range for %d items", is.Field, is.Value, is.Len)
	if w.hooks.OnInconsistentState != nil {
		w.hooks.OnInconsistentState(is)
	}
}

func (w *Widget[T]) env() Env[T] {
	return Env[T]{
		Variant:        w.variant,
		Items:          w.items,
		ToString:       w.toString,
		IsItemDisabled: w.isItemDisabled,
		Options:        w.options,
		Initial:        w.initial,
	}
}

// SetOverride registers the override reducer. Only one override can be
// registered at a time; registering another one fails with
// ErrDuplicateOverride.
func (w *Widget[T]) SetOverride(o Overrider[T]) error {
	if w.pipeline.Override != nil {
		return ErrDuplicateOverride
	}
	w.pipeline.Override = o
	return nil
}

// ClearOverride removes the override reducer, if any.
func (w *Widget[T]) ClearOverride() { w.pipeline.Override = nil }

// Dispatch runs action a through the reducer pipeline and commits the
// result. It returns the state after the transition.
//
// It must not be called from within a hook; such calls return
// ErrReentrantDispatch without doing anything.
func (w *Widget[T]) Dispatch(a Action) (State[T], error) {
	if a.Kind() == KindFunctionSelectItem {
		if _, ok := a.(FunctionSelectItem[T]); !ok {
			return w.State(), ErrForeignAction
		}
	}
	if w.ctrl.Busy() {
		return w.State(), ErrReentrantDispatch
	}
	changes := w.pipeline.Run(w.env(), w.State(), a)
	if _, err := w.ctrl.Commit(a.Kind(), changes); err != nil {
		return w.State(), err
	}
	return w.State(), nil
}

func (w *Widget[T]) dispatch(a Action) error {
	_, err := w.Dispatch(a)
	return err
}

// OpenMenu opens the menu.
func (w *Widget[T]) OpenMenu() error { return w.dispatch(FunctionOpenMenu{}) }

// CloseMenu closes the menu.
func (w *Widget[T]) CloseMenu() error { return w.dispatch(FunctionCloseMenu{}) }

// ToggleMenu opens the menu if it is closed and closes it otherwise.
func (w *Widget[T]) ToggleMenu() error { return w.dispatch(FunctionToggleMenu{}) }

// SetHighlightedIndex highlights the item at index i; -1 or an index outside
// the items clears the highlight.
func (w *Widget[T]) SetHighlightedIndex(i int) error {
	return w.dispatch(FunctionSetHighlightedIndex{Index: i})
}

// SelectItem selects item, which does not need to be in the current items.
func (w *Widget[T]) SelectItem(item T) error {
	return w.dispatch(FunctionSelectItem[T]{Item: Selected(item)})
}

// ClearSelection clears the selection.
func (w *Widget[T]) ClearSelection() error {
	return w.dispatch(FunctionSelectItem[T]{})
}

// SetInputValue sets the text of the input.
func (w *Widget[T]) SetInputValue(text string) error {
	return w.dispatch(FunctionSetInputValue{Text: text})
}

// Reset restores all fields to their initial values. Controlled fields are
// only notified.
func (w *Widget[T]) Reset() error { return w.dispatch(FunctionReset{}) }

// SyncControlled lets the input text follow a controlled selection that the
// host has changed since the last call. It does nothing if the selection is
// uncontrolled or unchanged.
func (w *Widget[T]) SyncControlled() error {
	if !w.ctrl.selectedItem.IsControlled() {
		return nil
	}
	sel := w.ctrl.selectedItem.Get()
	if sel == w.lastSelected {
		return nil
	}
	if w.ctrl.Busy() {
		return ErrReentrantDispatch
	}
	w.lastSelected = sel
	return w.dispatch(ControlledSelectedItemUpdated{})
}

// Logs an error from dispatching inside an event handler, where there is no
// caller to return it to.
func logDispatchError(a Action, err error) {
	logger.Printf("dropped %v: %v", a.Kind(), err)
}
