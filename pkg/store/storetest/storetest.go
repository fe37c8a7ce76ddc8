// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/elves/selectkit/pkg/store/storedefs"
)

var (
	picksToAdd = []string{"vim", "emacs", "vim", "nano", "vim", "emacs"}
	// Each pick contributes 10*0.986^n, where n is the number of picks made
	// after it: vim scores about 28.8, emacs 19.5 and nano 9.72.
	wantOrder = []string{"vim", "emacs", "nano"}
)

// TestPicks tests the pick history functionality of a Store.
func TestPicks(t *testing.T, store storedefs.Store) {
	picks, err := store.Picks("editors")
	if err != nil || len(picks) != 0 {
		t.Errorf("Picks() on empty list -> (%v, %v), want (empty, nil)", picks, err)
	}

	for _, item := range picksToAdd {
		if err := store.AddPick("editors", item); err != nil {
			t.Errorf("AddPick(%q) -> %v, want nil", item, err)
		}
	}
	// Another list does not affect the scores.
	if err := store.AddPick("shells", "elvish"); err != nil {
		t.Errorf("AddPick on another list -> %v", err)
	}

	picks, err = store.Picks("editors")
	if err != nil {
		t.Fatalf("Picks() -> error %v", err)
	}
	if diff := cmp.Diff(wantOrder, items(picks)); diff != "" {
		t.Errorf("Picks() order (-want +got):\n%s", diff)
	}
	if s := picks[2].Score; s < 9.72 || s > 9.73 {
		t.Errorf("score of nano = %v, want about 9.722", s)
	}

	lists, err := store.Lists()
	if diff := cmp.Diff([]string{"editors", "shells"}, lists); err != nil || diff != "" {
		t.Errorf("Lists() -> error %v, diff (-want +got):\n%s", err, diff)
	}

	if err := store.DelPick("editors", "emacs"); err != nil {
		t.Errorf("DelPick() -> %v, want nil", err)
	}
	picks, _ = store.Picks("editors")
	if diff := cmp.Diff([]string{"vim", "nano"}, items(picks)); diff != "" {
		t.Errorf("Picks() after DelPick (-want +got):\n%s", diff)
	}

	for _, args := range [][2]string{{"editors", "emacs"}, {"no-such-list", "x"}} {
		if err := store.DelPick(args[0], args[1]); !errors.Is(err, storedefs.ErrNoPick) {
			t.Errorf("DelPick(%q, %q) -> %v, want ErrNoPick", args[0], args[1], err)
		}
	}
}

func items(picks []storedefs.Pick) []string {
	var names []string
	for _, p := range picks {
		names = append(names, p.Item)
	}
	return names
}
