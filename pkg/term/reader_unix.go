//go:build unix

package term

import (
	"time"
	"unicode/utf8"
)

// Used by readRune in readKey to signal end of current sequence.
const runeEndOfSeq rune = -1

// Timeout for bytes in escape sequences. Modern terminal emulators send escape
// sequences very fast, so 10ms is more than sufficient. SSH connections on a
// slow link might be problematic though.
var keySeqTimeout = 10 * time.Millisecond

// Reads one UTF-8 encoded rune.
func readRune(rd byteReaderWithTimeout, timeout time.Duration) (rune, error) {
	leader, err := rd.ReadByteWithTimeout(timeout)
	if err != nil {
		return -1, err
	}
	var r rune
	pending := 0
	switch {
	case leader>>7 == 0:
		r = rune(leader)
	case leader>>5 == 0x6:
		r = rune(leader & 0x1f)
		pending = 1
	case leader>>4 == 0xe:
		r = rune(leader & 0xf)
		pending = 2
	case leader>>3 == 0x1e:
		r = rune(leader & 0x7)
		pending = 3
	default:
		return utf8.RuneError, nil
	}
	for i := 0; i < pending; i++ {
		b, err := rd.ReadByteWithTimeout(timeout)
		if err != nil {
			return -1, err
		}
		r = r<<6 + rune(b&0x3f)
	}
	return r, nil
}

func readKey(rd byteReaderWithTimeout) (key Key, err error) {
	var r rune
	r, err = readRune(rd, -1)
	if err != nil {
		return
	}

	currentSeq := string(r)
	// Attempts to read a rune within a timeout of keySeqTimeout. It returns
	// runeEndOfSeq if there is any error; the caller should terminate the
	// current sequence when it sees that value.
	readRune := func() rune {
		r, e := readRune(rd, keySeqTimeout)
		if e != nil {
			return runeEndOfSeq
		}
		currentSeq += string(r)
		return r
	}
	badSeq := func(msg string) {
		err = seqError{msg, currentSeq}
	}

	if r != 0x1b {
		return ctrlModify(r), nil
	}

	r2 := readRune()
	// rxvt and derivatives prepend another ESC to a CSI-style or G3-style
	// sequence to signal Alt.
	hasTwoLeadingESC := false
	if r2 == 0x1b {
		hasTwoLeadingESC = true
		r2 = readRune()
	}
	switch r2 {
	case runeEndOfSeq:
		if hasTwoLeadingESC {
			return K(Escape, "Alt"), nil
		}
		// Nothing follows: a lone Escape.
		return K(Escape), nil
	case '[':
		// CSI style function key sequence.
		r = readRune()
		if r == runeEndOfSeq {
			return K("[", "Alt"), nil
		}
		var nums []int
	CSISeq:
		for {
			switch {
			case r == ';':
				nums = append(nums, 0)
			case '0' <= r && r <= '9':
				if len(nums) == 0 {
					nums = append(nums, 0)
				}
				cur := len(nums) - 1
				nums[cur] = nums[cur]*10 + int(r-'0')
			case r == runeEndOfSeq:
				badSeq("incomplete CSI")
				return
			default: // Treat as a terminator.
				break CSISeq
			}
			r = readRune()
		}
		k, ok := parseCSI(nums, r)
		if !ok {
			badSeq("bad CSI")
			return
		}
		if hasTwoLeadingESC {
			k.Alt = true
		}
		return k, nil
	case 'O':
		// G3 style function key sequence: read one rune.
		r = readRune()
		if r == runeEndOfSeq {
			// Nothing follows after 'O'. Taken as Alt-O.
			return K("O", "Alt"), nil
		}
		name, ok := g3Seq[r]
		if !ok {
			badSeq("bad G3")
			return
		}
		return Key{Name: name, Alt: hasTwoLeadingESC}, nil
	default:
		// Something other than '[' or 'O' follows. Taken as an Alt-modified
		// key, possibly also modified by Ctrl.
		k := ctrlModify(r2)
		k.Alt = true
		return k, nil
	}
}

// Determines whether a rune corresponds to a Ctrl-modified key and returns the
// Key the rune represents.
func ctrlModify(r rune) Key {
	switch r {
	case '\r', '\n':
		return K(Enter)
	case '\t':
		return K(Tab)
	case 0x7f, 0x08:
		return K(Backspace)
	case 0x0:
		return K("`", "Ctrl") // ^@
	case 0x1e:
		return K("6", "Ctrl") // ^^
	case 0x1f:
		return K("/", "Ctrl") // ^_
	}
	switch {
	case 0x1 <= r && r <= 0x1a:
		return K(string(r+0x60), "Ctrl")
	case 0x1b <= r && r <= 0x1d:
		return K(string(r+0x40), "Ctrl")
	}
	return K(string(r))
}

// G3-style key sequences: \eO followed by exactly one character.
var g3Seq = map[rune]string{
	'A': ArrowUp, 'B': ArrowDown, 'C': ArrowRight, 'D': ArrowLeft,
	'H': Home, 'F': End,
	'P': F1, 'Q': F2, 'R': F3, 'S': F4,
}

// CSI-style key sequences identified by the last rune. For instance, \e[A is
// ArrowUp. When modified, two numerical arguments are added, the first always
// being 1 and the second identifying the modifier. For instance, \e[1;5A is
// Ctrl-ArrowUp.
var csiSeqByLast = map[rune]Key{
	'A': K(ArrowUp), 'B': K(ArrowDown), 'C': K(ArrowRight), 'D': K(ArrowLeft),
	// urxvt
	'a': K(ArrowUp, "Shift"), 'b': K(ArrowDown, "Shift"),
	'c': K(ArrowRight, "Shift"), 'd': K(ArrowLeft, "Shift"),
	'H': K(Home), 'F': K(End),
	'Z': K(Tab, "Shift"),
}

// CSI-style key sequences ending with '~' with one or two numerical
// arguments. The first argument identifies the key, and the optional second
// argument identifies the modifier. For instance, \e[3~ is Delete, and
// \e[3;5~ is Ctrl-Delete.
var csiSeqTilde = map[int]string{
	1: Home, 4: End, 7: Home, 8: End,
	2: Insert, 3: Delete,
	5: PageUp, 6: PageDown,
	11: F1, 12: F2, 13: F3, 14: F4,
	15: F5, 17: F6, 18: F7, 19: F8,
	20: F9, 21: F10, 23: F11, 24: F12,
}

func parseCSI(nums []int, last rune) (Key, bool) {
	if k, ok := csiSeqByLast[last]; ok {
		switch {
		case len(nums) == 0:
			// Unmodified: \e[A (ArrowUp)
			return k, true
		case len(nums) == 2 && nums[0] == 1:
			// Modified: \e[1;5A (Ctrl-ArrowUp)
			return xtermModify(k, nums[1])
		}
		return Key{}, false
	}

	switch last {
	case '~':
		if len(nums) == 1 || len(nums) == 2 {
			if name, ok := csiSeqTilde[nums[0]]; ok {
				if len(nums) == 1 {
					return K(name), true
				}
				return xtermModify(K(name), nums[1])
			}
		}
	case '$', '^', '@':
		// urxvt encodes modifiers in the last rune.
		if len(nums) == 1 {
			if name, ok := csiSeqTilde[nums[0]]; ok {
				k := K(name)
				k.Shift = last == '$' || last == '@'
				k.Ctrl = last == '^' || last == '@'
				return k, true
			}
		}
	}
	return Key{}, false
}

func xtermModify(k Key, mod int) (Key, bool) {
	if mod < 0 || mod > 16 {
		return Key{}, false
	}
	if mod == 0 {
		return k, true
	}
	modFlags := mod - 1
	k.Shift = k.Shift || modFlags&0x1 != 0
	// Meta (0x8) is conflated with Alt.
	k.Alt = modFlags&0x2 != 0 || modFlags&0x8 != 0
	k.Ctrl = modFlags&0x4 != 0
	return k, true
}
