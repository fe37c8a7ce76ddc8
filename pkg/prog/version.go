package prog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/elves/selectkit/pkg/buildinfo"
)

func newVersionCommand(fds [3]*os.File) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show build information",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOut {
				return json.NewEncoder(fds[1]).Encode(buildinfo.Value)
			}
			fmt.Fprintln(fds[1], "Version:", buildinfo.Value.Version)
			fmt.Fprintln(fds[1], "Go version:", buildinfo.Value.GoVersion)
			fmt.Fprintln(fds[1], "Reproducible build:", buildinfo.Value.Reproducible)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Show the information in JSON")
	return cmd
}
