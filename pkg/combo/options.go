package combo

// Variant selects which elements a widget has.
type Variant uint8

const (
	// Combobox has a text input; keyboard interaction happens on the input.
	Combobox Variant = iota
	// Select has no text input; keyboard interaction happens on the toggle
	// button.
	Select
)

func (v Variant) String() string {
	if v == Select {
		return "select"
	}
	return "combobox"
}

// EnterPolicy decides what Enter does when the menu is open but no item is
// highlighted.
type EnterPolicy uint8

const (
	// EnterNoop leaves the state alone.
	EnterNoop EnterPolicy = iota
	// EnterClose closes the menu.
	EnterClose
)

// EscapePolicy decides what Escape does when there is no selection to revert
// the input to, or when the menu is already closed.
type EscapePolicy uint8

const (
	// EscapeNoop leaves the input text and the selection alone.
	EscapeNoop EscapePolicy = iota
	// EscapeClear clears the input text when the menu is open and nothing is
	// selected, and clears both the selection and the input text when the
	// menu is closed.
	EscapeClear
)

// DefaultPageSize is the number of items PageUp and PageDown move by when
// Options.PageSize is not positive.
const DefaultPageSize = 10

// Options configures the behavior of a widget.
type Options struct {
	// Open the menu when the input receives focus.
	OpenOnFocus bool
	// Close the menu when an item is selected by click or Enter.
	CloseOnSelect bool
	// Wrap around the ends of the list when moving the highlight with arrow
	// keys.
	CircularNavigation bool
	// Select the highlighted item when focus leaves the widget.
	CommitOnBlur bool
	EnterPolicy  EnterPolicy
	EscapePolicy EscapePolicy
	// Number of items PageUp and PageDown move by.
	PageSize int
}

// DefaultOptions returns the options used when a Spec carries none.
func DefaultOptions() Options {
	return Options{
		CloseOnSelect:      true,
		CircularNavigation: true,
		CommitOnBlur:       true,
		PageSize:           DefaultPageSize,
	}
}

func (o Options) pageSize() int {
	if o.PageSize > 0 {
		return o.PageSize
	}
	return DefaultPageSize
}
