// Package prog builds the selectkit command tree and maps the errors of its
// commands to exit statuses.
package prog

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/elves/selectkit/pkg/buildinfo"
	"github.com/elves/selectkit/pkg/logutil"
)

var logger = logutil.GetLogger("[prog] ")

// Run parses args, runs the selected command and returns the exit status of
// the program. The first element of args is the program name.
func Run(fds [3]*os.File, args []string) int {
	var logFile string
	root := newRootCommand(fds, &logFile)
	root.SetArgs(args[1:])
	cmd, err := root.ExecuteC()
	if logFile != "" {
		// Closes the log file.
		logutil.SetOutput(io.Discard)
	}
	if err == nil {
		return 0
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(fds[2], msg)
	}
	var (
		bu badUsageError
		ee exitError
	)
	switch {
	case errors.As(err, &bu):
		if cmd != nil {
			fmt.Fprint(fds[2], cmd.UsageString())
		}
	case errors.As(err, &ee):
		return ee.exit
	}
	return 2
}

func newRootCommand(fds [3]*os.File, logFile *string) *cobra.Command {
	root := &cobra.Command{
		Use:           "selectkit",
		Short:         "Pick one line of stdin on the terminal",
		Version:       buildinfo.Value.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if *logFile == "" {
				return
			}
			if err := logutil.SetOutputFile(*logFile); err != nil {
				fmt.Fprintln(fds[2], "Warning: cannot open log file:", err)
			}
		},
	}
	root.SetIn(fds[0])
	root.SetOut(fds[1])
	root.SetErr(fds[2])
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return BadUsage(err.Error())
	})
	root.PersistentFlags().StringVar(logFile, "log", "",
		"Path to a file to write debug logs to")

	root.AddCommand(
		newPickCommand(fds),
		newHistoryCommand(fds),
		newVersionCommand(fds),
	)
	return root
}

// BadUsage returns a special error that may be returned by a command. It
// causes Run to print out a message, the usage of the command and exit with 2.
func BadUsage(msg string) error { return badUsageError{msg} }

type badUsageError struct{ msg string }

func (e badUsageError) Error() string { return e.msg }

// Exit returns a special error that may be returned by a command. It causes
// Run to exit with the given code without printing any error messages.
// Exit(0) returns nil.
func Exit(exit int) error {
	if exit == 0 {
		return nil
	}
	return exitError{exit}
}

type exitError struct{ exit int }

func (e exitError) Error() string { return "" }

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return BadUsage(fmt.Sprintf("%s takes no arguments, got %q", cmd.Name(), args))
	}
	return nil
}
