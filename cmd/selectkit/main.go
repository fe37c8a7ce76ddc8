// Selectkit reads lines from stdin and lets the user pick one on the
// terminal with an accessible combobox: type to narrow the menu, move with
// the arrow keys, press Enter to pick. The picked line is written to stdout.
package main

import (
	"os"

	"github.com/elves/selectkit/pkg/prog"
)

func main() {
	os.Exit(prog.Run([3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args))
}
