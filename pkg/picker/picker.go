// Package picker runs a combobox on a terminal: the user types to narrow a
// list of items, moves through the menu with the keyboard and picks one.
package picker

import (
	"context"
	"errors"
	"os"

	"github.com/elves/selectkit/pkg/combo"
	"github.com/elves/selectkit/pkg/logutil"
	"github.com/elves/selectkit/pkg/sys"
	"github.com/elves/selectkit/pkg/sys/eunix"
	"github.com/elves/selectkit/pkg/term"
)

var logger = logutil.GetLogger("[picker] ")

var (
	// ErrAborted is returned by Run when the user quits without picking.
	ErrAborted = errors.New("aborted")
	// ErrNotTerminal is returned by Run when Config.TTY is not a terminal.
	ErrNotTerminal = errors.New("not a terminal")
	// ErrNoItems is returned by Run when there is nothing to pick from.
	ErrNoItems = errors.New("no items")
)

// Config configures Run.
type Config struct {
	// Items to pick from. Repeated items are shown once.
	Items []string
	// IsDisabled, if not nil, reports items that are shown but cannot be
	// picked.
	IsDisabled func(item string) bool
	// The terminal to read keys from and draw on.
	TTY     *os.File
	Options combo.Options
	Prompt  string
	// Maximum number of menu rows; must be positive.
	MaxRows int
}

// Result is the outcome of a successful Run.
type Result struct {
	Item string
	// Index of Item in Config.Items.
	Index int
}

const defaultWidth = 80

type keyOrError struct {
	key term.Key
	err error
}

// Run runs the picker until the user picks an item, aborts, or ctx is done.
// The terminal is restored and the drawn lines erased before it returns.
func Run(ctx context.Context, cfg Config) (Result, error) {
	if len(cfg.Items) == 0 {
		return Result{}, ErrNoItems
	}
	if cfg.TTY == nil || !sys.IsATTY(cfg.TTY.Fd()) {
		return Result{}, ErrNotTerminal
	}
	if cfg.MaxRows <= 0 {
		cfg.MaxRows = 10
	}
	s, err := newSession(cfg)
	if err != nil {
		return Result{}, err
	}
	defer s.w.Release()

	restore, err := eunix.SetupRaw(int(cfg.TTY.Fd()))
	if err != nil {
		return Result{}, err
	}
	defer func() {
		if err := restore(); err != nil {
			logger.Println("restore terminal:", err)
		}
	}()

	reader, err := term.NewReader(cfg.TTY)
	if err != nil {
		return Result{}, err
	}
	writer := term.NewWriter(cfg.TTY)
	defer writer.Clear()

	sigCh, stopSigs := sys.NotifySignals(sys.SIGWINCH)
	defer stopSigs()

	keys := make(chan keyOrError)
	stopKeys := make(chan struct{})
	go func() {
		for {
			k, err := reader.ReadKey()
			if err != nil && term.IsReadErrorRecoverable(err) {
				logger.Println("ignoring:", err)
				continue
			}
			select {
			case keys <- keyOrError{k, err}:
			case <-stopKeys:
				return
			}
			if err != nil {
				return
			}
		}
	}()
	defer func() {
		close(stopKeys)
		reader.Close()
	}()

	redraw := func() {
		width := defaultWidth
		if _, cols := sys.WinSize(cfg.TTY); cols > 0 {
			width = cols
		}
		lines, dot := s.render(width)
		if err := writer.Render(lines, dot); err != nil {
			logger.Println("render:", err)
		}
	}

	s.focus()
	redraw()
	for {
		select {
		case <-ctx.Done():
			return Result{}, ctx.Err()
		case <-sigCh:
			redraw()
		case ke := <-keys:
			if ke.err != nil {
				return Result{}, ke.err
			}
			res, done, err := s.handleKey(ke.key)
			if err != nil {
				return Result{}, err
			}
			if done {
				return res, nil
			}
			redraw()
		}
	}
}
