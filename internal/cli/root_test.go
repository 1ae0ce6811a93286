package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tidytree/pkg/buildinfo"
	"github.com/matzehuels/tidytree/pkg/cache"
	"github.com/matzehuels/tidytree/pkg/export"
)

func TestRootCommandStructure(t *testing.T) {
	c := New(&bytes.Buffer{}, log.InfoLevel)
	root := c.RootCommand()

	if root.Use != "tidytree" {
		t.Errorf("root.Use = %q, want tidytree", root.Use)
	}

	want := map[string]bool{
		"layout":     false,
		"render":     false,
		"inspect":    false,
		"cache":      false,
		"completion": false,
	}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(&bytes.Buffer{}, log.InfoLevel)
	c.SetLogLevel(log.DebugLevel)
	if c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
}

func TestNewRunnerScopesKeysByVersion(t *testing.T) {
	c := New(&bytes.Buffer{}, log.InfoLevel)
	runner, err := c.newRunner(true)
	if err != nil {
		t.Fatalf("newRunner() error = %v", err)
	}
	defer runner.Close()

	key := runner.Keyer.LayoutKey("h", cache.LayoutKeyOpts{})
	if !strings.HasPrefix(key, buildinfo.Version+":") {
		t.Errorf("LayoutKey() = %q, want %q prefix", key, buildinfo.Version+":")
	}
}

func TestBuildNodeRows(t *testing.T) {
	l := export.Layout{Blocks: []export.Block{
		{ID: 0, Parent: -1, Label: "root", X: 0, Y: 0, Width: 2, Height: 1},
		{ID: 1, Parent: 0, Label: "a", X: -1.5, Y: 2, Width: 2, Height: 1},
		{ID: 2, Parent: 0, Label: "b", X: 1.5, Y: 2, Width: 2, Height: 1},
		{ID: 3, Parent: 2, Label: "", X: 1.5, Y: 4, Width: 2, Height: 1},
	}}

	rows := buildNodeRows(l)
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}
	if rows[0].depth != 0 || rows[1].depth != 1 || rows[3].depth != 2 {
		t.Errorf("depths = %d,%d,%d,%d, want 0,1,1,2", rows[0].depth, rows[1].depth, rows[2].depth, rows[3].depth)
	}
	if rows[3].label != "#3" {
		t.Errorf("unlabeled block shown as %q, want #3", rows[3].label)
	}
	// Leaf counts roll up: root covers both leaves, b covers one.
	if rows[0].leaves != 2 || rows[2].leaves != 1 {
		t.Errorf("leaves = %d and %d, want 2 and 1", rows[0].leaves, rows[2].leaves)
	}
}
