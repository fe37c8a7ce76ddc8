// Package term decodes key presses from a terminal and redraws a block of
// lines on it.
package term

import (
	"errors"
	"fmt"
	"os"
)

// ErrStopped is returned by Reader when Close is called during a ReadKey
// call.
var ErrStopped = errors.New("stopped")

var errTimeout = errors.New("timed out")

type seqError struct {
	msg string
	seq string
}

func (err seqError) Error() string {
	return fmt.Sprintf("%s: %q", err.msg, err.seq)
}

// Reader reads key presses from a terminal.
type Reader struct {
	fr fileReader
}

// NewReader creates a new Reader on the given terminal file.
func NewReader(f *os.File) (*Reader, error) {
	fr, err := newFileReader(f)
	if err != nil {
		return nil, err
	}
	return &Reader{fr}, nil
}

// ReadKey reads a single key press.
func (rd *Reader) ReadKey() (Key, error) {
	return readKey(rd.fr)
}

// Close releases resources associated with the Reader. An outstanding
// ReadKey call is aborted and returns ErrStopped.
func (rd *Reader) Close() {
	rd.fr.Stop()
	rd.fr.Close()
}

// IsReadErrorRecoverable returns whether an error returned by Reader is
// recoverable.
func IsReadErrorRecoverable(err error) bool {
	var seqErr seqError
	if errors.As(err, &seqErr) {
		return true
	}
	return errors.Is(err, errTimeout)
}
