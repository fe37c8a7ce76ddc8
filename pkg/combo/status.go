package combo

import "fmt"

// StatusMessage returns the text a live region should announce for state s,
// given the number of results now and when the last message was produced.
// It returns "" when nothing needs announcing.
func StatusMessage[T comparable](s State[T], resultCount, previousResultCount int, toString func(T) string) string {
	if !s.IsOpen {
		if s.SelectedItem.OK {
			return toString(s.SelectedItem.Item) + " has been selected."
		}
		return ""
	}
	if resultCount == 0 {
		return "No results are available."
	}
	if resultCount != previousResultCount {
		verb := "s are"
		if resultCount == 1 {
			verb = " is"
		}
		return fmt.Sprintf("%d result%s available, use up and down arrow keys to navigate. Press Enter key to select.", resultCount, verb)
	}
	return ""
}

type statusCache[T comparable] struct {
	valid bool
	state State[T]
	count int
	msg   string
}

// StatusMessage returns the live region text for the current state, keeping
// track of the result count it last announced. Calling it again before the
// state or the items change returns the same message, so it can be used
// from several places of one render.
func (w *Widget[T]) StatusMessage() string {
	s := w.State()
	if c := w.status; c.valid && c.state == s && c.count == len(w.items) {
		return c.msg
	}
	msg := StatusMessage(s, len(w.items), w.lastResultCount, w.toString)
	if s.IsOpen {
		w.lastResultCount = len(w.items)
	} else {
		w.lastResultCount = -1
	}
	w.status = statusCache[T]{valid: true, state: s, count: len(w.items), msg: msg}
	return msg
}
