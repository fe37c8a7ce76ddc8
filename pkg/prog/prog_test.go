package prog_test

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/elves/selectkit/pkg/buildinfo"
	"github.com/elves/selectkit/pkg/must"
	"github.com/elves/selectkit/pkg/prog/progtest"
	"github.com/elves/selectkit/pkg/store"
)

var run = progtest.Run

func TestVersion(t *testing.T) {
	r := run(t, "", "version")
	if r.Exit != 0 || !strings.Contains(r.Stdout, "Version: "+buildinfo.Value.Version+"\n") {
		t.Errorf("version -> %+v", r)
	}

	r = run(t, "", "version", "--json")
	var got buildinfo.Type
	must.OK(json.Unmarshal([]byte(r.Stdout), &got))
	if diff := cmp.Diff(buildinfo.Value, got); diff != "" {
		t.Errorf("version --json (-want +got):\n%s", diff)
	}
}

func TestBadUsage(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		stderr string
	}{
		{"unknown flag", []string{"pick", "--bogus"}, "unknown flag: --bogus\n"},
		{"extra arguments", []string{"history", "foo"}, `history takes no arguments, got ["foo"]` + "\n"},
		{"non-positive max rows", []string{"pick", "--max-rows", "0"}, "--max-rows must be positive\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := run(t, "a\n", test.args...)
			if r.Exit != 2 {
				t.Errorf("exit = %d, want 2", r.Exit)
			}
			if !strings.HasPrefix(r.Stderr, test.stderr) || !strings.Contains(r.Stderr, "Usage:") {
				t.Errorf("stderr = %q, want message %q followed by usage", r.Stderr, test.stderr)
			}
		})
	}
}

func TestMutuallyExclusiveFlags(t *testing.T) {
	r := run(t, "", "history", "--lists", "--delete", "x")
	if r.Exit != 2 || !strings.Contains(r.Stderr, "lists") {
		t.Errorf("-> %+v", r)
	}
}

func TestPick_NoItems(t *testing.T) {
	r := run(t, "\n\n", "pick", "--no-history")
	if r.Exit != 2 || r.Stderr != "no items\n" {
		t.Errorf("-> %+v", r)
	}
}

func TestPick_NotTerminal(t *testing.T) {
	dir := t.TempDir()
	notTTY := filepath.Join(dir, "file")
	cfg := filepath.Join(dir, "config.yaml")
	must.WriteFile(notTTY, "")
	must.WriteFile(cfg, "")

	r := run(t, "a\n", "pick", "--no-history", "--config", cfg, "--tty", notTTY)
	if r.Exit != 2 || r.Stderr != "not a terminal\n" {
		t.Errorf("-> %+v", r)
	}
}

func TestPick_BadConfig(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	must.WriteFile(cfg, "page-size: 0\n")

	r := run(t, "a\n", "pick", "--no-history", "--config", cfg)
	if r.Exit != 2 || !strings.HasPrefix(r.Stderr, cfg+": ") {
		t.Errorf("-> %+v", r)
	}
}

func TestHistory(t *testing.T) {
	db := filepath.Join(t.TempDir(), "db")
	st := must.OK1(store.NewStore(db))
	must.OK(st.AddPick("editors", "vim"))
	must.OK(st.AddPick("editors", "vim"))
	must.OK(st.AddPick("editors", "nano"))
	must.OK(st.AddPick("shells", "elvish"))
	must.OK(st.Close())

	tests := []struct {
		name   string
		args   []string
		exit   int
		stdout string
		stderr string
	}{
		{name: "lists", args: []string{"--lists"}, stdout: "editors\nshells\n"},
		{name: "empty list", args: []string{"--list", "nothing"}},
		{name: "delete", args: []string{"--list", "shells", "--delete", "elvish"}},
		{name: "lists after delete", args: []string{"--lists"}, stdout: "editors\n"},
		{
			name:   "delete missing",
			args:   []string{"--list", "shells", "--delete", "elvish"},
			exit:   2,
			stderr: `"elvish" in list "shells": no such pick` + "\n",
		},
	}
	r := run(t, "", "history", "--db", db, "--list", "editors")
	// vim: (10*0.986+10)*0.986
	wantTable := [][]string{{"ITEM", "SCORE"}, {"vim", "19.582"}, {"nano", "10.000"}}
	if diff := cmp.Diff(wantTable, fields(r.Stdout)); r.Exit != 0 || diff != "" {
		t.Errorf("history --list editors -> %+v, table (-want +got):\n%s", r, diff)
	}

	for _, test := range tests {
		r := run(t, "", append([]string{"history", "--db", db}, test.args...)...)
		want := progtest.Result{Stdout: test.stdout, Stderr: test.stderr, Exit: test.exit}
		if diff := cmp.Diff(want, r); diff != "" {
			t.Errorf("%s (-want +got):\n%s", test.name, diff)
		}
	}
}

func fields(s string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		rows = append(rows, strings.Fields(line))
	}
	return rows
}
