package export

import (
	"path/filepath"
	"testing"

	"github.com/matzehuels/tidytree/pkg/errors"
	"github.com/matzehuels/tidytree/pkg/layout"
	"github.com/matzehuels/tidytree/pkg/tree"
)

func computed(t *testing.T) (Layout, layout.Options) {
	t.Helper()
	root := &tree.Node{
		Label: "r", Width: 2, Height: 1,
		Meta: tree.Metadata{"kind": "root"},
		Children: []*tree.Node{
			{Label: "a", Width: 2, Height: 1},
			{Label: "b", Width: 2, Height: 1, Children: []*tree.Node{
				{Label: "b1", Width: 2, Height: 1},
			}},
		},
	}
	opts := layout.Options{PeerMargin: 1, ParentChildMargin: 1}
	res, err := layout.Compute(root, opts)
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	return FromResult(res, opts), opts
}

func TestFromResult(t *testing.T) {
	l, opts := computed(t)

	if len(l.Blocks) != 4 {
		t.Fatalf("got %d blocks, want 4", len(l.Blocks))
	}
	if len(l.Links) != 3 {
		t.Fatalf("got %d links, want 3", len(l.Links))
	}
	if l.PeerMargin != opts.PeerMargin || l.ParentChildMargin != opts.ParentChildMargin {
		t.Error("settings not recorded")
	}

	root := l.Blocks[0]
	if root.Label != "r" || root.Parent != -1 {
		t.Errorf("block 0 = %+v, want root with parent -1", root)
	}
	if root.Meta["kind"] != "root" {
		t.Error("node metadata not carried into block")
	}
	for _, b := range l.Blocks[1:] {
		if b.Parent < 0 || b.Parent >= b.ID {
			t.Errorf("block %d has parent %d, want an earlier block", b.ID, b.Parent)
		}
	}
	if l.Width <= 0 || l.Height <= 0 {
		t.Errorf("bounding box %vx%v, want positive extents", l.Width, l.Height)
	}
}

func TestRoundTrip(t *testing.T) {
	l, _ := computed(t)

	data, err := Marshal(l)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if len(got.Blocks) != len(l.Blocks) || len(got.Links) != len(l.Links) {
		t.Fatalf("round trip changed shape: %d/%d blocks, %d/%d links",
			len(got.Blocks), len(l.Blocks), len(got.Links), len(l.Links))
	}
	for i := range l.Blocks {
		if got.Blocks[i].X != l.Blocks[i].X || got.Blocks[i].Y != l.Blocks[i].Y {
			t.Errorf("block %d moved in round trip", i)
		}
	}
}

func TestUnmarshalRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"garbage":          `{"blocks": "nope"}`,
		"no blocks":        `{"blocks": []}`,
		"id mismatch":      `{"blocks": [{"id": 3, "parent": -1}]}`,
		"dangling parent":  `{"blocks": [{"id": 0, "parent": -1}, {"id": 1, "parent": 9}]}`,
		"forward parent":   `{"blocks": [{"id": 0, "parent": 1}, {"id": 1, "parent": -1}]}`,
		"two roots":        `{"blocks": [{"id": 0, "parent": -1}, {"id": 1, "parent": -1}]}`,
		"link out of range": `{
			"blocks": [{"id": 0, "parent": -1}],
			"links": [{"from": 0, "to": 5}]
		}`,
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Unmarshal([]byte(data))
			if err == nil {
				t.Fatal("Unmarshal() succeeded, want error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidFormat)
			}
		})
	}
}

func TestFileRoundTrip(t *testing.T) {
	l, _ := computed(t)
	path := filepath.Join(t.TempDir(), "layout.json")

	if err := WriteFile(l, path); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(got.Blocks) != len(l.Blocks) {
		t.Errorf("got %d blocks, want %d", len(got.Blocks), len(l.Blocks))
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}
