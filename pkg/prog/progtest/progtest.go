// Package progtest runs [prog.Run] in tests with pipes connected to its
// standard streams.
package progtest

import (
	"io"
	"os"
	"testing"

	"github.com/elves/selectkit/pkg/must"
	"github.com/elves/selectkit/pkg/prog"
)

// Result is the outcome of running the program.
type Result struct {
	Stdout string
	Stderr string
	Exit   int
}

// Run runs the program with the given stdin and arguments, not including the
// program name. Output is read while the program runs, so it may write more
// than a pipe can buffer.
func Run(t *testing.T, stdin string, args ...string) Result {
	t.Helper()
	r0, w0 := must.Pipe()
	r1, w1 := must.Pipe()
	r2, w2 := must.Pipe()
	t.Cleanup(func() {
		r0.Close()
		r1.Close()
		r2.Close()
	})

	go func() {
		w0.WriteString(stdin)
		w0.Close()
	}()
	stdout := readAllAsync(r1)
	stderr := readAllAsync(r2)

	exit := prog.Run([3]*os.File{r0, w1, w2}, append([]string{"selectkit"}, args...))
	w1.Close()
	w2.Close()
	return Result{Stdout: <-stdout, Stderr: <-stderr, Exit: exit}
}

func readAllAsync(r io.Reader) <-chan string {
	ch := make(chan string, 1)
	go func() {
		ch <- string(must.OK1(io.ReadAll(r)))
	}()
	return ch
}
