package prog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/elves/selectkit/pkg/store"
	"github.com/elves/selectkit/pkg/store/storedefs"
)

const defaultList = "default"

func addStoreFlags(cmd *cobra.Command, db, list *string) {
	fl := cmd.Flags()
	fl.StringVar(db, "db", "",
		"Path to the database of picks (default $XDG_CACHE_HOME/selectkit/db)")
	fl.StringVar(list, "list", defaultList,
		"Name under which picks are recorded; use one per kind of input")
}

func newHistoryCommand(fds [3]*os.File) *cobra.Command {
	var db, list, del string
	var lists bool
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or edit recorded picks",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(db)
			if err != nil {
				return err
			}
			defer st.Close()
			switch {
			case lists:
				names, err := st.Lists()
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(fds[1], name)
				}
			case del != "":
				err := st.DelPick(list, del)
				if errors.Is(err, storedefs.ErrNoPick) {
					return fmt.Errorf("%q in list %q: %w", del, list, err)
				}
				return err
			default:
				picks, err := st.Picks(list)
				if err != nil {
					return err
				}
				if len(picks) > 0 {
					writePicks(fds[1], picks)
				}
			}
			return nil
		},
	}
	fl := cmd.Flags()
	fl.BoolVar(&lists, "lists", false, "Show the names of lists with recorded picks")
	fl.StringVar(&del, "delete", "", "Forget the given item")
	addStoreFlags(cmd, &db, &list)
	cmd.MarkFlagsMutuallyExclusive("lists", "delete")
	return cmd
}

func writePicks(w io.Writer, picks []storedefs.Pick) {
	data := make([][]string, len(picks))
	for i, p := range picks {
		data[i] = []string{p.Item, strconv.FormatFloat(p.Score, 'f', 3, 64)}
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ITEM", "SCORE"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()
}

// Opens the store at path, or at the default location if path is empty.
func openStore(path string) (store.DBStore, error) {
	if path == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return nil, fmt.Errorf("cannot find a place for the database, use --db: %w", err)
		}
		dir = filepath.Join(dir, "selectkit")
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "db")
	}
	logger.Println("opening database", path)
	return store.NewStore(path)
}
