// Package export defines the stable serialization format for computed
// layouts. A Layout is a flat, index-linked snapshot of a layout.Result
// together with the settings that produced it, suitable for caching,
// file interchange, and feeding renderers.
package export

import (
	"encoding/json"
	"os"

	"github.com/matzehuels/tidytree/pkg/errors"
	"github.com/matzehuels/tidytree/pkg/layout"
	"github.com/matzehuels/tidytree/pkg/tree"
)

// =============================================================================
// Layout - Serialized Placement Format
// =============================================================================

// Layout is the wire form of a computed layout.
//
// Blocks appear in document order (pre-order, children left to right) and
// are linked by index: Block.Parent refers to another block's position in
// the Blocks slice, -1 for the root. Links carry ready-to-draw edge
// endpoints so renderers need no placement logic of their own.
type Layout struct {
	// Settings the layout was computed with.
	Layered           bool    `json:"layered,omitempty"`
	ParentChildMargin float64 `json:"parent_child_margin"`
	PeerMargin        float64 `json:"peer_margin"`

	// Tight bounding box of all blocks.
	MinX   float64 `json:"min_x"`
	MinY   float64 `json:"min_y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Blocks []Block `json:"blocks"`
	Links  []Link  `json:"links,omitempty"`
}

// Block is one positioned node. X is the horizontal center, Y the top edge.
type Block struct {
	ID     int     `json:"id"`
	Parent int     `json:"parent"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Meta tree.Metadata `json:"meta,omitempty"`
}

// Link is a parent-to-child edge, attached at the parent's bottom center
// and the child's top center.
type Link struct {
	From int `json:"from"`
	To   int `json:"to"`

	FromX float64 `json:"from_x"`
	FromY float64 `json:"from_y"`
	ToX   float64 `json:"to_x"`
	ToY   float64 `json:"to_y"`
}

// FromResult snapshots a computed layout into its wire form. The options
// must be the ones the layout was computed with; they are recorded verbatim.
func FromResult(res *layout.Result, opts layout.Options) Layout {
	l := Layout{
		Layered:           opts.Layered,
		ParentChildMargin: opts.ParentChildMargin,
		PeerMargin:        opts.PeerMargin,
		Blocks:            make([]Block, 0, len(res.Nodes)),
	}

	minX, minY, maxX, maxY := res.Bounds()
	l.MinX, l.MinY = minX, minY
	l.Width, l.Height = maxX-minX, maxY-minY

	index := make(map[*layout.PlacedNode]int, len(res.Nodes))
	for i, n := range res.Nodes {
		index[n] = i
		b := Block{
			ID:     i,
			Parent: -1,
			Label:  n.Label,
			X:      n.X,
			Y:      n.Y,
			Width:  n.Width,
			Height: n.Height,
		}
		if n.Source != nil {
			b.Meta = n.Source.Meta
		}
		l.Blocks = append(l.Blocks, b)
	}
	for _, n := range res.Nodes {
		for _, c := range n.Children {
			l.Blocks[index[c]].Parent = index[n]
		}
	}

	for _, e := range res.Links() {
		l.Links = append(l.Links, Link{
			From:  index[e.Parent],
			To:    index[e.Child],
			FromX: e.FromX,
			FromY: e.FromY,
			ToX:   e.ToX,
			ToY:   e.ToY,
		})
	}
	return l
}

// =============================================================================
// Serialization API
// =============================================================================

// Marshal serializes a Layout to pretty-printed JSON bytes.
func Marshal(l Layout) ([]byte, error) {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal layout")
	}
	return data, nil
}

// Unmarshal deserializes JSON bytes into a Layout and validates its
// structural integrity.
func Unmarshal(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal layout")
	}
	if err := l.validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

func (l *Layout) validate() error {
	if len(l.Blocks) == 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "layout must contain blocks")
	}
	n := len(l.Blocks)
	roots := 0
	for i, b := range l.Blocks {
		if b.ID != i {
			return errors.New(errors.ErrCodeInvalidFormat, "block %d carries id %d; ids must match positions", i, b.ID)
		}
		if b.Parent == -1 {
			roots++
			continue
		}
		if b.Parent < 0 || b.Parent >= n {
			return errors.New(errors.ErrCodeInvalidFormat, "block %d references parent %d, outside [0, %d)", i, b.Parent, n)
		}
		if b.Parent >= i {
			return errors.New(errors.ErrCodeInvalidFormat, "block %d references parent %d; parents must precede children", i, b.Parent)
		}
	}
	if roots != 1 {
		return errors.New(errors.ErrCodeInvalidFormat, "layout has %d roots, want exactly 1", roots)
	}
	for _, e := range l.Links {
		if e.From < 0 || e.From >= n || e.To < 0 || e.To >= n {
			return errors.New(errors.ErrCodeInvalidFormat, "link %d->%d references blocks outside [0, %d)", e.From, e.To, n)
		}
	}
	return nil
}

// WriteFile writes a Layout to a JSON file.
func WriteFile(l Layout, path string) error {
	data, err := Marshal(l)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}

// ReadFile reads a Layout from a JSON file.
func ReadFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		code := errors.ErrCodeInternal
		if os.IsNotExist(err) {
			code = errors.ErrCodeFileNotFound
		}
		return Layout{}, errors.Wrap(code, err, "read %s", path)
	}
	return Unmarshal(data)
}
