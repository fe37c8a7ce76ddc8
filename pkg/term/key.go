package term

import "strings"

// Names of function keys, as found in Key.Name. Other keys are named by the
// character they produce.
const (
	ArrowUp    = "ArrowUp"
	ArrowDown  = "ArrowDown"
	ArrowLeft  = "ArrowLeft"
	ArrowRight = "ArrowRight"
	Home       = "Home"
	End        = "End"
	PageUp     = "PageUp"
	PageDown   = "PageDown"
	Insert     = "Insert"
	Delete     = "Delete"
	Enter      = "Enter"
	Escape     = "Escape"
	Backspace  = "Backspace"
	Tab        = "Tab"
	F1         = "F1"
	F2         = "F2"
	F3         = "F3"
	F4         = "F4"
	F5         = "F5"
	F6         = "F6"
	F7         = "F7"
	F8         = "F8"
	F9         = "F9"
	F10        = "F10"
	F11        = "F11"
	F12        = "F12"
)

// Key is a key press decoded from terminal input.
type Key struct {
	Name  string
	Alt   bool
	Ctrl  bool
	Shift bool
}

// K constructs a Key from a name and optional modifiers, given as "Alt",
// "Ctrl" or "Shift".
func K(name string, mods ...string) Key {
	k := Key{Name: name}
	for _, mod := range mods {
		switch mod {
		case "Alt":
			k.Alt = true
		case "Ctrl":
			k.Ctrl = true
		case "Shift":
			k.Shift = true
		}
	}
	return k
}

// IsText reports whether the key inserts its name as text: it is a single
// printable character without the Alt or Ctrl modifier.
func (k Key) IsText() bool {
	if k.Alt || k.Ctrl {
		return false
	}
	r := []rune(k.Name)
	return len(r) == 1 && r[0] >= 0x20 && r[0] != 0x7f
}

func (k Key) String() string {
	var sb strings.Builder
	if k.Ctrl {
		sb.WriteString("Ctrl-")
	}
	if k.Alt {
		sb.WriteString("Alt-")
	}
	if k.Shift {
		sb.WriteString("Shift-")
	}
	sb.WriteString(k.Name)
	return sb.String()
}
