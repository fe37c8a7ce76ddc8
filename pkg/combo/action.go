package combo

// Kind enumerates the kinds of actions.
type Kind uint8

// Possible values of Kind. The names of the Input* and ToggleButton* kinds
// follow the element and the event that produce them.
const (
	KindItemClick Kind = iota
	KindItemMouseMove
	KindMenuMouseLeave
	KindToggleButtonClick
	KindInputKeyDownArrowDown
	KindInputKeyDownArrowUp
	KindInputKeyDownHome
	KindInputKeyDownEnd
	KindInputKeyDownPageUp
	KindInputKeyDownPageDown
	KindInputKeyDownEnter
	KindInputKeyDownEscape
	KindInputChange
	KindInputBlur
	KindInputFocus
	KindInputClick
	KindToggleButtonKeyDownArrowDown
	KindToggleButtonKeyDownArrowUp
	KindToggleButtonKeyDownHome
	KindToggleButtonKeyDownEnd
	KindToggleButtonKeyDownPageUp
	KindToggleButtonKeyDownPageDown
	KindToggleButtonKeyDownEnter
	KindToggleButtonKeyDownSpaceButton
	KindToggleButtonKeyDownEscape
	KindToggleButtonBlur
	KindControlledSelectedItemUpdated
	KindFunctionOpenMenu
	KindFunctionCloseMenu
	KindFunctionToggleMenu
	KindFunctionSetHighlightedIndex
	KindFunctionSelectItem
	KindFunctionSetInputValue
	KindFunctionReset
)

var kindNames = [...]string{
	KindItemClick:                      "ItemClick",
	KindItemMouseMove:                  "ItemMouseMove",
	KindMenuMouseLeave:                 "MenuMouseLeave",
	KindToggleButtonClick:              "ToggleButtonClick",
	KindInputKeyDownArrowDown:          "InputKeyDownArrowDown",
	KindInputKeyDownArrowUp:            "InputKeyDownArrowUp",
	KindInputKeyDownHome:               "InputKeyDownHome",
	KindInputKeyDownEnd:                "InputKeyDownEnd",
	KindInputKeyDownPageUp:             "InputKeyDownPageUp",
	KindInputKeyDownPageDown:           "InputKeyDownPageDown",
	KindInputKeyDownEnter:              "InputKeyDownEnter",
	KindInputKeyDownEscape:             "InputKeyDownEscape",
	KindInputChange:                    "InputChange",
	KindInputBlur:                      "InputBlur",
	KindInputFocus:                     "InputFocus",
	KindInputClick:                     "InputClick",
	KindToggleButtonKeyDownArrowDown:   "ToggleButtonKeyDownArrowDown",
	KindToggleButtonKeyDownArrowUp:     "ToggleButtonKeyDownArrowUp",
	KindToggleButtonKeyDownHome:        "ToggleButtonKeyDownHome",
	KindToggleButtonKeyDownEnd:         "ToggleButtonKeyDownEnd",
	KindToggleButtonKeyDownPageUp:      "ToggleButtonKeyDownPageUp",
	KindToggleButtonKeyDownPageDown:    "ToggleButtonKeyDownPageDown",
	KindToggleButtonKeyDownEnter:       "ToggleButtonKeyDownEnter",
	KindToggleButtonKeyDownSpaceButton: "ToggleButtonKeyDownSpaceButton",
	KindToggleButtonKeyDownEscape:      "ToggleButtonKeyDownEscape",
	KindToggleButtonBlur:               "ToggleButtonBlur",
	KindControlledSelectedItemUpdated:  "ControlledSelectedItemUpdated",
	KindFunctionOpenMenu:               "FunctionOpenMenu",
	KindFunctionCloseMenu:              "FunctionCloseMenu",
	KindFunctionToggleMenu:             "FunctionToggleMenu",
	KindFunctionSetHighlightedIndex:    "FunctionSetHighlightedIndex",
	KindFunctionSelectItem:             "FunctionSelectItem",
	KindFunctionSetInputValue:          "FunctionSetInputValue",
	KindFunctionReset:                  "FunctionReset",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Action is an event the widget reacts to. The set of actions is closed:
// only the types in this package implement it.
type Action interface {
	Kind() Kind
	isAction()
}

// Embedded in all action types to seal the Action interface.
type action struct{}

func (action) isAction() {}

// Mouse and menu actions.
type (
	// ItemClick is dispatched when the item at Index is clicked.
	ItemClick struct {
		action
		Index int
	}
	// ItemMouseMove is dispatched when the pointer moves over the item at
	// Index.
	ItemMouseMove struct {
		action
		Index int
	}
	// MenuMouseLeave is dispatched when the pointer leaves the menu.
	MenuMouseLeave    struct{ action }
	ToggleButtonClick struct{ action }
)

// Actions from the text input.
type (
	InputKeyDownArrowDown struct {
		action
		AltKey bool
	}
	InputKeyDownArrowUp struct {
		action
		AltKey bool
	}
	InputKeyDownHome     struct{ action }
	InputKeyDownEnd      struct{ action }
	InputKeyDownPageUp   struct{ action }
	InputKeyDownPageDown struct{ action }
	InputKeyDownEnter    struct{ action }
	InputKeyDownEscape   struct{ action }
	// InputChange is dispatched when the user edits the text input.
	InputChange struct {
		action
		Text string
	}
	// InputBlur is dispatched once focus has really left the widget.
	// SelectItem is false when the blur should not commit the highlighted
	// item.
	InputBlur struct {
		action
		SelectItem bool
	}
	InputFocus struct{ action }
	InputClick struct{ action }
)

// Actions from the toggle button when it is focusable (the Select variant).
type (
	ToggleButtonKeyDownArrowDown   struct{ action }
	ToggleButtonKeyDownArrowUp     struct{ action }
	ToggleButtonKeyDownHome        struct{ action }
	ToggleButtonKeyDownEnd         struct{ action }
	ToggleButtonKeyDownPageUp      struct{ action }
	ToggleButtonKeyDownPageDown    struct{ action }
	ToggleButtonKeyDownEnter       struct{ action }
	ToggleButtonKeyDownSpaceButton struct{ action }
	ToggleButtonKeyDownEscape      struct{ action }
	ToggleButtonBlur               struct {
		action
		SelectItem bool
	}
)

// ControlledSelectedItemUpdated is dispatched when the host has changed a
// controlled selection, so that the input text can follow.
type ControlledSelectedItemUpdated struct{ action }

// Actions of the imperative API.
type (
	FunctionOpenMenu            struct{ action }
	FunctionCloseMenu           struct{ action }
	FunctionToggleMenu          struct{ action }
	FunctionSetHighlightedIndex struct {
		action
		Index int
	}
	FunctionSelectItem[T comparable] struct {
		action
		Item Selection[T]
	}
	FunctionSetInputValue struct {
		action
		Text string
	}
	FunctionReset struct{ action }
)

func (ItemClick) Kind() Kind                      { return KindItemClick }
func (ItemMouseMove) Kind() Kind                  { return KindItemMouseMove }
func (MenuMouseLeave) Kind() Kind                 { return KindMenuMouseLeave }
func (ToggleButtonClick) Kind() Kind              { return KindToggleButtonClick }
func (InputKeyDownArrowDown) Kind() Kind          { return KindInputKeyDownArrowDown }
func (InputKeyDownArrowUp) Kind() Kind            { return KindInputKeyDownArrowUp }
func (InputKeyDownHome) Kind() Kind               { return KindInputKeyDownHome }
func (InputKeyDownEnd) Kind() Kind                { return KindInputKeyDownEnd }
func (InputKeyDownPageUp) Kind() Kind             { return KindInputKeyDownPageUp }
func (InputKeyDownPageDown) Kind() Kind           { return KindInputKeyDownPageDown }
func (InputKeyDownEnter) Kind() Kind              { return KindInputKeyDownEnter }
func (InputKeyDownEscape) Kind() Kind             { return KindInputKeyDownEscape }
func (InputChange) Kind() Kind                    { return KindInputChange }
func (InputBlur) Kind() Kind                      { return KindInputBlur }
func (InputFocus) Kind() Kind                     { return KindInputFocus }
func (InputClick) Kind() Kind                     { return KindInputClick }
func (ToggleButtonKeyDownArrowDown) Kind() Kind   { return KindToggleButtonKeyDownArrowDown }
func (ToggleButtonKeyDownArrowUp) Kind() Kind     { return KindToggleButtonKeyDownArrowUp }
func (ToggleButtonKeyDownHome) Kind() Kind        { return KindToggleButtonKeyDownHome }
func (ToggleButtonKeyDownEnd) Kind() Kind         { return KindToggleButtonKeyDownEnd }
func (ToggleButtonKeyDownPageUp) Kind() Kind      { return KindToggleButtonKeyDownPageUp }
func (ToggleButtonKeyDownPageDown) Kind() Kind    { return KindToggleButtonKeyDownPageDown }
func (ToggleButtonKeyDownEnter) Kind() Kind       { return KindToggleButtonKeyDownEnter }
func (ToggleButtonKeyDownSpaceButton) Kind() Kind { return KindToggleButtonKeyDownSpaceButton }
func (ToggleButtonKeyDownEscape) Kind() Kind      { return KindToggleButtonKeyDownEscape }
func (ToggleButtonBlur) Kind() Kind               { return KindToggleButtonBlur }
func (ControlledSelectedItemUpdated) Kind() Kind  { return KindControlledSelectedItemUpdated }
func (FunctionOpenMenu) Kind() Kind               { return KindFunctionOpenMenu }
func (FunctionCloseMenu) Kind() Kind              { return KindFunctionCloseMenu }
func (FunctionToggleMenu) Kind() Kind             { return KindFunctionToggleMenu }
func (FunctionSetHighlightedIndex) Kind() Kind    { return KindFunctionSetHighlightedIndex }
func (FunctionSelectItem[T]) Kind() Kind          { return KindFunctionSelectItem }
func (FunctionSetInputValue) Kind() Kind          { return KindFunctionSetInputValue }
func (FunctionReset) Kind() Kind                  { return KindFunctionReset }
