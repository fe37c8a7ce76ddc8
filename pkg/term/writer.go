package term

import (
	"bytes"
	"fmt"
	"io"

	"github.com/elves/selectkit/pkg/logutil"
)

var logger = logutil.GetLogger("[term] ")

var logWriterDetail = false

const (
	hideCursor = "\033[?25l"
	showCursor = "\033[?25h"
)

// Pos is a position in a block of lines.
type Pos struct {
	Line, Col int
}

// Writer redraws a block of lines at the cursor position, replacing the block
// written by the previous call. Lines must fit the terminal width; the
// caller is responsible for truncating them.
type Writer struct {
	file io.Writer
	// Number of lines and cursor position of the block on the screen.
	lines int
	dot   Pos
}

// NewWriter returns a Writer that writes VT100 sequences to the given
// io.Writer.
func NewWriter(f io.Writer) *Writer {
	return &Writer{file: f}
}

// deltaPos calculates the escape sequence needed to move the cursor from one
// position to another. It use relative movements to move to the destination
// line and absolute movement to move to the destination column.
func deltaPos(from, to Pos) []byte {
	buf := new(bytes.Buffer)
	if from.Line < to.Line {
		fmt.Fprintf(buf, "\033[%dB", to.Line-from.Line)
	} else if from.Line > to.Line {
		fmt.Fprintf(buf, "\033[%dA", from.Line-to.Line)
	}
	buf.WriteString("\r")
	if to.Col > 0 {
		fmt.Fprintf(buf, "\033[%dC", to.Col)
	}
	return buf.Bytes()
}

// Render replaces the block on the screen with lines and puts the cursor at
// dot, which is relative to the first line.
func (w *Writer) Render(lines []string, dot Pos) error {
	output := new(bytes.Buffer)
	// Hide cursor at the beginning to minimize flickering.
	output.WriteString(hideCursor)
	w.rewind(output)
	// Erase the old block.
	output.WriteString("\033[J")

	for i, line := range lines {
		if i > 0 {
			output.WriteString("\n")
		}
		output.WriteString(line)
	}
	end := Pos{Line: max(len(lines)-1, 0)}
	output.Write(deltaPos(end, dot))
	output.WriteString(showCursor)

	if logWriterDetail {
		logger.Printf("going to write %q", output.String())
	}
	if _, err := w.file.Write(output.Bytes()); err != nil {
		return err
	}
	w.lines, w.dot = len(lines), dot
	return nil
}

// Clear erases the block and leaves the cursor where it started.
func (w *Writer) Clear() error {
	output := new(bytes.Buffer)
	w.rewind(output)
	output.WriteString("\033[J")
	if _, err := w.file.Write(output.Bytes()); err != nil {
		return err
	}
	w.lines, w.dot = 0, Pos{}
	return nil
}

// Moves the cursor back to the start of the block.
func (w *Writer) rewind(output *bytes.Buffer) {
	if w.dot.Line > 0 {
		fmt.Fprintf(output, "\033[%dA", w.dot.Line)
	}
	output.WriteString("\r")
}
