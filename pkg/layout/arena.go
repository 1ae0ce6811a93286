package layout

import (
	"math"

	"github.com/matzehuels/tidytree/pkg/errors"
	"github.com/matzehuels/tidytree/pkg/tree"
)

// absent marks an unset node reference.
const absent int32 = -1

// arenaNode holds the mutable layout state for one input node. All
// cross-references are indices into the arena's dense slice, assigned in
// document order (pre-order, children left to right).
//
// Horizontal state is kept relative until the second walk:
//
//   - relX is the node's center relative to its parent's subtree frame.
//   - mod shifts the node's entire subtree; absolute positions are obtained
//     by summing mod along the root-to-node path.
//   - threadLeft/threadRight continue a contour walk into a neighboring
//     subtree when this node's own contour runs out at a leaf; the paired
//     modThread values carry the modifier-sum difference across the jump.
//   - extremeLeft/extremeRight index the bottom node of this subtree's
//     left/right contour, with modExtreme holding the modifier sum
//     accumulated from this node down to that extreme.
//   - shift/change are deferred sibling-spacing corrections, distributed to
//     children in one pass during the second walk.
type arenaNode struct {
	width, height float64

	children []int32

	// Vertical position, final as soon as y-assignment runs.
	y float64

	// Horizontal bookkeeping, written during the first walk.
	relX          float64
	mod           float64
	shift, change float64

	threadLeft, threadRight       int32
	modThreadLeft, modThreadRight float64

	extremeLeft, extremeRight       int32
	modExtremeLeft, modExtremeRight float64

	// Absolute center, written only during the second walk.
	x float64

	src *tree.Node
}

// arena is the flat store of layout state, owned exclusively by one layout
// computation. Index 0 is always the root.
type arena struct {
	nodes []arenaNode

	// scratch absorbs reads and writes through out-of-range indices, so a
	// bookkeeping defect degrades to a wrong layout instead of a panic.
	scratch arenaNode
}

// buildArena flattens the input tree into an arena, sizing every node
// through the configured Sizer and validating the results.
func buildArena(root *tree.Node, sizer Sizer) (*arena, error) {
	a := &arena{nodes: make([]arenaNode, 0, tree.Count(root))}
	if _, err := a.add(root, sizer); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *arena) add(n *tree.Node, sizer Sizer) (int32, error) {
	id := int32(len(a.nodes))
	a.nodes = append(a.nodes, arenaNode{})

	w, h := sizer(n)
	if err := checkSize(n, w, h); err != nil {
		return absent, err
	}

	var kids []int32
	if len(n.Children) > 0 {
		kids = make([]int32, 0, len(n.Children))
		for _, c := range n.Children {
			cid, err := a.add(c, sizer)
			if err != nil {
				return absent, err
			}
			kids = append(kids, cid)
		}
	}

	// Re-index after recursion: the slice may have been reallocated.
	nd := &a.nodes[id]
	nd.width, nd.height = w, h
	nd.children = kids
	nd.threadLeft, nd.threadRight = absent, absent
	nd.extremeLeft, nd.extremeRight = absent, absent
	nd.src = n
	return id, nil
}

// at returns the node for id, or the scratch node when id is out of range.
func (a *arena) at(id int32) *arenaNode {
	if id < 0 || int(id) >= len(a.nodes) {
		a.scratch = arenaNode{threadLeft: absent, threadRight: absent, extremeLeft: absent, extremeRight: absent}
		return &a.scratch
	}
	return &a.nodes[id]
}

// bottom returns the y coordinate of the node's lower edge.
func (a *arena) bottom(id int32) float64 {
	n := a.at(id)
	return n.y + n.height
}

func (a *arena) len() int { return len(a.nodes) }

func checkSize(n *tree.Node, w, h float64) error {
	if math.IsNaN(w) || math.IsNaN(h) || math.IsInf(w, 0) || math.IsInf(h, 0) || w < 0 || h < 0 {
		return errors.New(errors.ErrCodeInvalidSize, "node %q sized %vx%v; sizes must be finite and non-negative", n.Label, w, h)
	}
	return nil
}
