package combo_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	. "github.com/elves/selectkit/pkg/combo"
	"github.com/elves/selectkit/pkg/combo/combotest"
	"github.com/elves/selectkit/pkg/ids"
)

var fruits = []string{"apple", "banana", "cherry"}

func setup(t *testing.T, modify ...func(*Spec[string])) *combotest.Fixture[string] {
	t.Helper()
	spec := Spec[string]{Items: fruits}
	for _, f := range modify {
		f(&spec)
	}
	return combotest.Setup(t, spec)
}

func TestEndToEnd(t *testing.T) {
	f := setup(t)

	f.Click(f.W.ToggleButtonProps)
	f.TestState(S{IsOpen: true, HighlightedIndex: -1})
	f.Press(KeyArrowDown)
	f.TestState(S{IsOpen: true, HighlightedIndex: 0})
	f.Press(KeyArrowDown)
	f.TestState(S{IsOpen: true, HighlightedIndex: 1})
	if r := f.Press(KeyEnter); r != Consumed {
		t.Errorf("Enter was %v, want consumed", r)
	}
	f.TestState(S{HighlightedIndex: -1, SelectedItem: Selected("banana"), InputValue: "banana"})

	f.TestKinds(KindToggleButtonClick, KindInputKeyDownArrowDown,
		KindInputKeyDownArrowDown, KindInputKeyDownEnter)
}

func TestTypingThenPicking(t *testing.T) {
	f := setup(t)
	f.Type("b")
	f.TestState(S{IsOpen: true, HighlightedIndex: -1, InputValue: "b"})

	// The host filters.
	if err := f.W.SetItems([]string{"banana"}); err != nil {
		t.Fatal(err)
	}
	f.Press(KeyArrowDown)
	f.Press(KeyEnter)
	f.TestState(S{HighlightedIndex: -1, SelectedItem: Selected("banana"), InputValue: "banana"})
}

func TestItemClick_SelectsAndCloses(t *testing.T) {
	for _, hl := range []int{-1, 0, 2} {
		f := setup(t, func(s *Spec[string]) {
			s.IsOpen = Uncontrolled(true)
			s.HighlightedIndex = Uncontrolled(hl)
		})
		f.Click(func() Props { return f.Item(1) })
		f.TestState(S{HighlightedIndex: -1, SelectedItem: Selected("banana"), InputValue: "banana"})
	}
}

func TestMenuMouseLeave_Idempotent(t *testing.T) {
	f := setup(t, func(s *Spec[string]) {
		s.IsOpen = Uncontrolled(true)
		s.HighlightedIndex = Uncontrolled(2)
	})
	f.Send(f.W.MenuProps, Event{Type: MouseLeave})
	once := f.W.State()
	f.Send(f.W.MenuProps, Event{Type: MouseLeave})
	if twice := f.W.State(); twice != once {
		t.Errorf("second MenuMouseLeave changed state from %+v to %+v", once, twice)
	}
	if len(f.Transitions) != 1 {
		t.Errorf("got %d transitions, want 1", len(f.Transitions))
	}
}

func TestOverride_Precedence(t *testing.T) {
	override := OverrideFunc[string](func(s S, kind Kind, proposed Changes[string]) Changes[string] {
		if kind == KindInputChange {
			return Changes[string]{}.WithInputValue("X")
		}
		return proposed
	})
	f := setup(t, func(s *Spec[string]) { s.Override = override })

	f.Type("ban")
	f.TestState(S{HighlightedIndex: -1, InputValue: "X"})

	// Other kinds pass through.
	f.Press(KeyArrowDown)
	f.TestState(S{IsOpen: true, HighlightedIndex: 0, InputValue: "X"})
}

func TestOverride_SeesKindAndState(t *testing.T) {
	var gotKind Kind
	var gotState S
	f := setup(t)
	err := f.W.SetOverride(OverrideFunc[string](func(s S, kind Kind, proposed Changes[string]) Changes[string] {
		gotKind, gotState = kind, s
		return proposed
	}))
	if err != nil {
		t.Fatal(err)
	}
	f.Dispatch(ItemMouseMove{Index: 1})
	if gotKind != KindItemMouseMove || gotState != (S{HighlightedIndex: -1}) {
		t.Errorf("override saw %v %+v", gotKind, gotState)
	}
}

func TestOverride_Duplicate(t *testing.T) {
	f := setup(t, func(s *Spec[string]) {
		s.Override = OverrideFunc[string](func(_ S, _ Kind, c Changes[string]) Changes[string] { return c })
	})
	err := f.W.SetOverride(OverrideFunc[string](func(_ S, _ Kind, c Changes[string]) Changes[string] { return c }))
	if !errors.Is(err, ErrDuplicateOverride) {
		t.Errorf("SetOverride returned %v, want ErrDuplicateOverride", err)
	}
	f.W.ClearOverride()
	if err := f.W.SetOverride(OverrideFunc[string](func(_ S, _ Kind, c Changes[string]) Changes[string] { return c })); err != nil {
		t.Errorf("SetOverride after ClearOverride: %v", err)
	}
}

func TestOverride_CanDropTransition(t *testing.T) {
	f := setup(t, func(s *Spec[string]) {
		s.Override = OverrideFunc[string](func(s S, kind Kind, c Changes[string]) Changes[string] {
			if kind == KindToggleButtonClick {
				return Changes[string]{}
			}
			return c
		})
	})
	f.Click(f.W.ToggleButtonProps)
	f.TestState(S{HighlightedIndex: -1})
	f.TestKinds()
}

func TestControlledSelectedItem_Isolation(t *testing.T) {
	var changes []FieldChange[Selection[string]]
	f := setup(t, func(s *Spec[string]) {
		s.SelectedItem = Controlled(func() Selection[string] { return Selected("Z") })
		s.IsOpen = Uncontrolled(true)
		s.Hooks.OnSelectedItemChange = func(c FieldChange[Selection[string]]) {
			changes = append(changes, c)
		}
	})
	f.Dispatch(ItemClick{Index: 0})

	want := []FieldChange[Selection[string]]{
		{Old: Selected("Z"), New: Selected("apple"), Kind: KindItemClick},
	}
	if diff := cmp.Diff(want, changes); diff != "" {
		t.Errorf("selection notifications (-want +got):\n%s", diff)
	}
	if got := f.W.State().SelectedItem; got != Selected("Z") {
		t.Errorf("SelectedItem = %v, want the controlled Z", got)
	}
	// Uncontrolled fields did change.
	if s := f.W.State(); s.IsOpen || s.InputValue != "apple" {
		t.Errorf("uncontrolled fields not updated: %+v", s)
	}
}

func TestControlledIsOpen_ReportsButKeepsHostValue(t *testing.T) {
	hostOpen := false
	var proposals []bool
	f := setup(t, func(s *Spec[string]) {
		s.IsOpen = Controlled(func() bool { return hostOpen })
		s.Hooks.OnIsOpenChange = func(c FieldChange[bool]) {
			proposals = append(proposals, c.New)
		}
	})
	f.Click(f.W.ToggleButtonProps)
	f.TestState(S{HighlightedIndex: -1})

	// The host accepts.
	hostOpen = true
	f.TestState(S{IsOpen: true, HighlightedIndex: -1})
	f.Click(f.W.ToggleButtonProps)

	if diff := cmp.Diff([]bool{true, false}, proposals); diff != "" {
		t.Errorf("proposals (-want +got):\n%s", diff)
	}
}

func TestControlled_MissingAccessor(t *testing.T) {
	_, err := New(Spec[string]{InputValue: Controlled[string](nil)})
	if err == nil {
		t.Errorf("New accepted a controlled field without accessor")
	}
}

func TestSyncControlled(t *testing.T) {
	host := Selected("apple")
	f := setup(t, func(s *Spec[string]) {
		s.SelectedItem = Controlled(func() Selection[string] { return host })
	})
	f.TestState(S{HighlightedIndex: -1, SelectedItem: Selected("apple"), InputValue: "apple"})

	if err := f.W.SyncControlled(); err != nil {
		t.Fatal(err)
	}
	f.TestKinds()

	host = Selected("cherry")
	if err := f.W.SyncControlled(); err != nil {
		t.Fatal(err)
	}
	f.TestState(S{HighlightedIndex: -1, SelectedItem: Selected("cherry"), InputValue: "cherry"})
	f.TestKinds(KindControlledSelectedItemUpdated)
}

func TestNotifications(t *testing.T) {
	var log []string
	f := setup(t, func(s *Spec[string]) {
		s.Hooks = Hooks[string]{
			OnIsOpenChange:           func(c FieldChange[bool]) { log = append(log, "open") },
			OnHighlightedIndexChange: func(c FieldChange[int]) { log = append(log, "highlight") },
			OnSelectedItemChange:     func(c FieldChange[Selection[string]]) { log = append(log, "selected") },
			OnInputValueChange:       func(c FieldChange[string]) { log = append(log, "input:"+c.Old+">"+c.New) },
			OnStateChange:            func(c StateChange[string]) { log = append(log, "state:"+c.Kind.String()) },
		}
	})

	f.Dispatch(FunctionSetInputValue{Text: "a"})
	// Nothing changes: no notification at all.
	f.Dispatch(FunctionSetInputValue{Text: "a"})
	f.Dispatch(ItemClick{Index: 0})

	want := []string{
		"input:>a", "state:FunctionSetInputValue",
		// ItemClick proposes isOpen=false and highlight=-1, which are
		// already the values.
		"selected", "input:a>apple", "state:ItemClick",
	}
	if diff := cmp.Diff(want, log); diff != "" {
		t.Errorf("notifications (-want +got):\n%s", diff)
	}

	wantChanges := Changes[string]{}.WithSelectedItem(Selected("apple")).WithInputValue("apple")
	if diff := cmp.Diff(wantChanges, f.Transitions[len(f.Transitions)-1].Changes); diff != "" {
		t.Errorf("aggregate changes (-want +got):\n%s", diff)
	}
}

func TestReentrantDispatch(t *testing.T) {
	var w *Widget[string]
	var nestedErr error
	f := setup(t, func(s *Spec[string]) {
		s.Hooks.OnIsOpenChange = func(FieldChange[bool]) {
			_, nestedErr = w.Dispatch(FunctionCloseMenu{})
		}
	})
	w = f.W
	f.Dispatch(FunctionOpenMenu{})
	if !errors.Is(nestedErr, ErrReentrantDispatch) {
		t.Errorf("nested Dispatch returned %v, want ErrReentrantDispatch", nestedErr)
	}
	f.TestState(S{IsOpen: true, HighlightedIndex: -1})
}

func TestReset(t *testing.T) {
	f := setup(t, func(s *Spec[string]) {
		s.SelectedItem = Uncontrolled(Selected("cherry"))
	})
	f.TestState(S{HighlightedIndex: -1, SelectedItem: Selected("cherry"), InputValue: "cherry"})

	f.Type("x")
	f.Press(KeyArrowDown)
	if err := f.W.Reset(); err != nil {
		t.Fatal(err)
	}
	f.TestState(S{HighlightedIndex: -1, SelectedItem: Selected("cherry"), InputValue: "cherry"})
}

func TestReset_LeavesControlledFields(t *testing.T) {
	f := setup(t, func(s *Spec[string]) {
		s.InputValue = Controlled(func() string { return "host" })
	})
	f.Dispatch(FunctionOpenMenu{})
	if err := f.W.Reset(); err != nil {
		t.Fatal(err)
	}
	f.TestState(S{HighlightedIndex: -1, InputValue: "host"})
}

func TestImperativeAPI(t *testing.T) {
	f := setup(t)
	w := f.W
	steps := []struct {
		name string
		do   func() error
		want S
	}{
		{"OpenMenu", w.OpenMenu, S{IsOpen: true, HighlightedIndex: -1}},
		{"SetHighlightedIndex", func() error { return w.SetHighlightedIndex(2) },
			S{IsOpen: true, HighlightedIndex: 2}},
		{"CloseMenu", w.CloseMenu, S{HighlightedIndex: -1}},
		{"SelectItem", func() error { return w.SelectItem("banana") },
			S{HighlightedIndex: -1, SelectedItem: Selected("banana"), InputValue: "banana"}},
		{"ToggleMenu", w.ToggleMenu,
			S{IsOpen: true, HighlightedIndex: 1, SelectedItem: Selected("banana"), InputValue: "banana"}},
		{"SetInputValue", func() error { return w.SetInputValue("ba") },
			S{IsOpen: true, HighlightedIndex: 1, SelectedItem: Selected("banana"), InputValue: "ba"}},
		{"ClearSelection", w.ClearSelection, S{IsOpen: true, HighlightedIndex: 1}},
	}
	for _, step := range steps {
		if err := step.do(); err != nil {
			t.Fatalf("%s: %v", step.name, err)
		}
		if diff := cmp.Diff(step.want, w.State()); diff != "" {
			t.Errorf("after %s (-want +got):\n%s", step.name, diff)
		}
	}
}

func TestEmptyList(t *testing.T) {
	f := setup(t, func(s *Spec[string]) { s.Items = nil })
	f.Press(KeyArrowDown)
	f.TestState(S{IsOpen: true, HighlightedIndex: -1})
	f.Press(KeyArrowDown, KeyArrowUp, KeyHome, KeyEnd, KeyPageUp, KeyPageDown)
	f.TestState(S{IsOpen: true, HighlightedIndex: -1})
	f.Press(KeyEnter)
	f.TestState(S{IsOpen: true, HighlightedIndex: -1})
}

func TestSetItems_ShrinkClearsHighlight(t *testing.T) {
	f := setup(t)
	f.Press(KeyArrowUp)
	f.TestState(S{IsOpen: true, HighlightedIndex: 2})

	if err := f.W.SetItems(fruits[:1]); err != nil {
		t.Fatal(err)
	}
	f.TestState(S{IsOpen: true, HighlightedIndex: -1})
	// Growing back does not resurrect the old highlight.
	if err := f.W.SetItems(fruits); err != nil {
		t.Fatal(err)
	}
	f.TestState(S{IsOpen: true, HighlightedIndex: -1})
}

func TestSetItems_FromHook(t *testing.T) {
	var f *combotest.Fixture[string]
	f = setup(t, func(s *Spec[string]) {
		s.Hooks.OnInputValueChange = func(c FieldChange[string]) {
			var visible []string
			for _, item := range fruits {
				if strings.Contains(item, c.New) {
					visible = append(visible, item)
				}
			}
			if err := f.W.SetItems(visible); err != nil {
				t.Errorf("SetItems: %v", err)
			}
		}
	})

	f.Press(KeyArrowUp)
	f.Type("an")
	f.TestState(S{IsOpen: true, HighlightedIndex: -1, InputValue: "an"})
	if diff := cmp.Diff([]string{"banana"}, f.W.Items()); diff != "" {
		t.Errorf("items (-want +got):\n%s", diff)
	}

	f.Press(KeyArrowDown, KeyEnter)
	f.TestState(S{HighlightedIndex: -1, SelectedItem: Selected("banana"), InputValue: "banana"})
}

func TestSetItems_DuplicateKeys(t *testing.T) {
	f := setup(t)
	err := f.W.SetItems([]string{"a", "b", "a"})
	if !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("SetItems returned %v, want ErrDuplicateKey", err)
	}
	var keyErr KeyError
	if !errors.As(err, &keyErr) || keyErr != (KeyError{Key: "a", First: 0, Second: 2}) {
		t.Errorf("got %#v", err)
	}
	if diff := cmp.Diff(fruits, f.W.Items()); diff != "" {
		t.Errorf("items changed after failed SetItems (-want +got):\n%s", diff)
	}

	_, err = New(Spec[string]{Items: []string{"x", "x"}})
	if !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("New returned %v, want ErrDuplicateKey", err)
	}
}

func TestControlledHighlight_OutOfRange(t *testing.T) {
	var reports []InconsistentState
	f := setup(t, func(s *Spec[string]) {
		s.IsOpen = Uncontrolled(true)
		s.HighlightedIndex = Controlled(func() int { return 7 })
		s.Hooks.OnInconsistentState = func(is InconsistentState) { reports = append(reports, is) }
	})
	f.TestState(S{IsOpen: true, HighlightedIndex: -1})
	f.TestState(S{IsOpen: true, HighlightedIndex: -1})

	want := []InconsistentState{{Field: "HighlightedIndex", Value: 7, Len: 3}}
	if diff := cmp.Diff(want, reports); diff != "" {
		t.Errorf("reports (-want +got):\n%s", diff)
	}
	// Navigation treats the index as -1.
	f.Press(KeyArrowDown)
	if f.Transitions[0].Changes.HighlightedIndex == nil || *f.Transitions[0].Changes.HighlightedIndex != 0 {
		t.Errorf("ArrowDown proposed %+v, want highlight 0", f.Transitions[0].Changes)
	}
}

func TestControlledHighlight_ReportedAgainAfterRecovery(t *testing.T) {
	var reports []InconsistentState
	hl := 7
	f := setup(t, func(s *Spec[string]) {
		s.IsOpen = Uncontrolled(true)
		s.HighlightedIndex = Controlled(func() int { return hl })
		s.Hooks.OnInconsistentState = func(is InconsistentState) { reports = append(reports, is) }
	})
	f.TestState(S{IsOpen: true, HighlightedIndex: -1})
	hl = 1
	f.TestState(S{IsOpen: true, HighlightedIndex: 1})
	hl = 7
	f.TestState(S{IsOpen: true, HighlightedIndex: -1})
	f.TestState(S{IsOpen: true, HighlightedIndex: -1})

	report := InconsistentState{Field: "HighlightedIndex", Value: 7, Len: 3}
	if diff := cmp.Diff([]InconsistentState{report, report}, reports); diff != "" {
		t.Errorf("reports (-want +got):\n%s", diff)
	}
}

func TestForeignAction(t *testing.T) {
	f := setup(t)
	_, err := f.W.Dispatch(FunctionSelectItem[int]{Item: Selected(1)})
	if !errors.Is(err, ErrForeignAction) {
		t.Errorf("Dispatch returned %v, want ErrForeignAction", err)
	}
}

func TestIDs(t *testing.T) {
	reg := ids.NewRegistry("page")
	w1 := must(New(Spec[string]{Registry: reg}))
	w2 := must(New(Spec[string]{Registry: reg}))
	if w1.IDs().Root == w2.IDs().Root {
		t.Errorf("two widgets share root id %q", w1.IDs().Root)
	}
	_, err := New(Spec[string]{Registry: reg, IDPrefix: w1.IDs().Root})
	if !errors.Is(err, ids.ErrDuplicatePrefix) {
		t.Errorf("New with claimed prefix returned %v", err)
	}
	w1.Release()
	if _, err := New(Spec[string]{Registry: reg, IDPrefix: w1.IDs().Root}); err != nil {
		t.Errorf("New after Release: %v", err)
	}

	w3 := must(New(Spec[string]{IDPrefix: "fruit", IDOverrides: ids.Overrides{Menu: "fruit-list"}}))
	if w3.IDs().Menu != "fruit-list" || w3.IDs().Input != "fruit-input" {
		t.Errorf("ids = %+v", w3.IDs())
	}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
