package picker

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/elves/selectkit/pkg/combo"
	"github.com/elves/selectkit/pkg/term"
)

// A session holds the widget of one Run and everything needed to feed it
// keys and render it, independent of the terminal.
type session struct {
	w       *combo.Widget[string]
	all     []string
	index   map[string]int
	cfg     Config
	visible []string
	// Index of the first visible menu row.
	offset int
}

func newSession(cfg Config) (*session, error) {
	s := &session{cfg: cfg, index: make(map[string]int, len(cfg.Items))}
	for i, item := range cfg.Items {
		if _, dup := s.index[item]; dup {
			continue
		}
		s.index[item] = i
		s.all = append(s.all, item)
	}
	s.visible = s.all

	opts := cfg.Options
	spec := combo.Spec[string]{
		Items:   s.all,
		Options: &opts,
		Hooks: combo.Hooks[string]{
			OnInputValueChange: func(c combo.FieldChange[string]) { s.filter(c.New) },
		},
	}
	if cfg.IsDisabled != nil {
		spec.IsItemDisabled = func(item string, _ int) bool { return cfg.IsDisabled(item) }
	}
	w, err := combo.New(spec)
	if err != nil {
		return nil, err
	}
	s.w = w
	return s, nil
}

// Narrows the items to those containing query, ignoring case. Called while
// a transition is being committed, so it must not dispatch.
func (s *session) filter(query string) {
	var visible []string
	if query == "" {
		visible = s.all
	} else {
		q := strings.ToLower(query)
		for _, item := range s.all {
			if strings.Contains(strings.ToLower(item), q) {
				visible = append(visible, item)
			}
		}
	}
	if err := s.w.SetItems(visible); err != nil {
		// Items are deduplicated in newSession.
		logger.Println("SetItems:", err)
		return
	}
	s.visible = visible
	s.offset = 0
}

func (s *session) focus() {
	p, err := s.w.InputProps()
	if err != nil {
		logger.Println(err)
		return
	}
	p.Handle(combo.Event{Type: combo.Focus})
}

// Handles one key. It returns done = true when the user has made a choice,
// and ErrAborted when the user gives up.
func (s *session) handleKey(k term.Key) (res Result, done bool, err error) {
	input, err := s.w.InputProps()
	if err != nil {
		return Result{}, false, err
	}
	st := s.w.State()

	switch {
	case k.Ctrl && (k.Name == "c" || k.Name == "d"):
		return Result{}, false, ErrAborted
	case k.Ctrl && k.Name == "u":
		input.Handle(combo.Event{Type: combo.Input, Text: ""})
	case k.IsText():
		input.Handle(combo.Event{Type: combo.Input, Text: st.InputValue + k.Name})
	case k.Name == term.Backspace && !k.Alt:
		if r := []rune(st.InputValue); len(r) > 0 {
			input.Handle(combo.Event{Type: combo.Input, Text: string(r[:len(r)-1])})
		}
	case k.Name == term.Escape && !st.IsOpen:
		if s.w.Options().EscapePolicy == combo.EscapeClear &&
			(st.SelectedItem.OK || st.InputValue != "") {
			input.Handle(combo.Event{Type: combo.KeyDown, Key: combo.KeyEscape})
		} else {
			return Result{}, false, ErrAborted
		}
	case k.Name == term.Enter && !st.IsOpen:
		if st.SelectedItem.OK {
			return s.result(st.SelectedItem.Item), true, nil
		}
	case k.Name == term.Enter:
		input.Handle(combo.Event{Type: combo.KeyDown, Key: combo.KeyEnter})
		if after := s.w.State(); st.HighlightedIndex >= 0 && after.SelectedItem.OK {
			return s.result(after.SelectedItem.Item), true, nil
		}
	case k.Name == term.Tab && st.IsOpen:
		// Completes the input with the highlighted item.
		input.Handle(combo.Event{Type: combo.KeyDown, Key: combo.KeyArrowUp, AltKey: true})
	default:
		input.Handle(combo.Event{Type: combo.KeyDown, Key: k.Name, AltKey: k.Alt})
	}
	return Result{}, false, nil
}

func (s *session) result(item string) Result {
	return Result{Item: item, Index: s.index[item]}
}

// Styles of menu rows.
const (
	styleHighlighted = "\033[7m"
	styleDisabled    = "\033[2m"
	styleReset       = "\033[m"
)

// Renders the prompt line, the menu if open and the status line into lines
// at most width columns wide, and returns the cursor position.
func (s *session) render(width int) ([]string, term.Pos) {
	st := s.w.State()
	promptLine := s.cfg.Prompt + st.InputValue
	lines := []string{runewidth.Truncate(promptLine, width, "")}
	dot := term.Pos{Line: 0, Col: min(runewidth.StringWidth(promptLine), width)}

	if st.IsOpen {
		rows := s.scroll(st.HighlightedIndex)
		for i := s.offset; i < s.offset+rows; i++ {
			lines = append(lines, s.renderRow(i, st, width))
		}
	}
	if msg := s.w.StatusMessage(); msg != "" {
		lines = append(lines, styleDisabled+runewidth.Truncate(msg, width, "…")+styleReset)
	}
	return lines, dot
}

// Adjusts the offset so that the highlighted row is visible, and returns the
// number of rows to show.
func (s *session) scroll(highlighted int) int {
	rows := min(len(s.visible), s.cfg.MaxRows)
	if highlighted >= 0 {
		if highlighted < s.offset {
			s.offset = highlighted
		} else if highlighted >= s.offset+rows {
			s.offset = highlighted - rows + 1
		}
	}
	s.offset = max(min(s.offset, len(s.visible)-rows), 0)
	return rows
}

func (s *session) renderRow(i int, st combo.State[string], width int) string {
	item := s.visible[i]
	marker := "  "
	if st.SelectedItem.OK && st.SelectedItem.Item == item {
		marker = "* "
	}
	text := runewidth.Truncate(marker+item, width, "…")
	p, err := s.w.ItemProps(i)
	switch {
	case err != nil:
		return text
	case p.Attrs["aria-disabled"] == "true":
		return styleDisabled + text + styleReset
	case p.Attrs["data-highlighted"] == "true":
		return styleHighlighted + runewidth.FillRight(text, width) + styleReset
	}
	return text
}
