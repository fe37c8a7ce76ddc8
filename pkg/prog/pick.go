package prog

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/elves/selectkit/pkg/config"
	"github.com/elves/selectkit/pkg/picker"
	"github.com/elves/selectkit/pkg/store"
)

// Exit status of pick when the user quits without picking.
const exitAborted = 1

type pickFlags struct {
	config    string
	db        string
	list      string
	tty       string
	prompt    string
	maxRows   int
	noHistory bool
}

func newPickCommand(fds [3]*os.File) *cobra.Command {
	var f pickFlags
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Read items from stdin, one per line, and pick one on the terminal",
		Long: `Read items from stdin, one per line, and pick one on the terminal.

Typing narrows the menu down to items containing the input. The picked item
is written to stdout and recorded, so that frequently picked items are listed
first next time. Quitting without a pick exits with 1.`,
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fl := cmd.Flags()
			if fl.Changed("max-rows") && f.maxRows <= 0 {
				return BadUsage("--max-rows must be positive")
			}
			return runPick(cmd.Context(), fds, &f, fl.Changed)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.config, "config", "",
		"Path to the configuration file (default $XDG_CONFIG_HOME/selectkit/config.yaml)")
	fl.StringVar(&f.tty, "tty", "/dev/tty", "Terminal to show the menu on")
	fl.StringVar(&f.prompt, "prompt", "", "Prompt shown before the input, overriding the configuration")
	fl.IntVar(&f.maxRows, "max-rows", 0, "Maximum number of menu rows, overriding the configuration")
	fl.BoolVar(&f.noHistory, "no-history", false, "Neither read nor record picks")
	addStoreFlags(cmd, &f.db, &f.list)
	cmd.MarkFlagsMutuallyExclusive("no-history", "db")
	return cmd
}

func runPick(ctx context.Context, fds [3]*os.File, f *pickFlags, changed func(string) bool) error {
	items, err := readItems(fds[0])
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return picker.ErrNoItems
	}
	cfg, err := loadConfig(f.config)
	if err != nil {
		return err
	}
	if changed("prompt") {
		cfg.Prompt = f.prompt
	}
	if changed("max-rows") {
		cfg.MaxRows = f.maxRows
	}

	tty, err := os.OpenFile(f.tty, os.O_RDWR, 0)
	if err != nil {
		return err
	}
	defer tty.Close()

	var st store.DBStore
	if !f.noHistory {
		st, err = openStore(f.db)
		if err != nil {
			return err
		}
		defer st.Close()
		picks, err := st.Picks(f.list)
		if err != nil {
			logger.Println("read picks:", err)
		} else {
			items = picker.OrderByHistory(items, picks)
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	res, err := picker.Run(ctx, picker.Config{
		Items:   items,
		TTY:     tty,
		Options: cfg.Options,
		Prompt:  cfg.Prompt,
		MaxRows: cfg.MaxRows,
	})
	switch {
	case errors.Is(err, picker.ErrAborted), errors.Is(err, context.Canceled):
		return Exit(exitAborted)
	case err != nil:
		return err
	}

	fmt.Fprintln(fds[1], res.Item)
	if st != nil {
		if err := st.AddPick(f.list, res.Item); err != nil {
			logger.Println("record pick:", err)
		}
	}
	return nil
}

// Reads the non-empty lines of r.
func readItems(r io.Reader) ([]string, error) {
	var items []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSuffix(sc.Text(), "\r"); line != "" {
			items = append(items, line)
		}
	}
	return items, sc.Err()
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.LoadDefault()
	}
	return config.Load(path)
}
