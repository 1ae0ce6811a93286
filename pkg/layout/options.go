package layout

import (
	"math"

	"github.com/matzehuels/tidytree/pkg/errors"
	"github.com/matzehuels/tidytree/pkg/tree"
)

// Sizer supplies the rectangular footprint for an input node.
// The layout engine calls it exactly once per node while building its arena.
// Returned sizes must be finite and non-negative; violations are reported as
// INVALID_SIZE errors before any placement happens.
type Sizer func(n *tree.Node) (width, height float64)

// NodeSize is the default Sizer. It reads the Width and Height fields
// carried on the node itself.
func NodeSize(n *tree.Node) (width, height float64) {
	return n.Width, n.Height
}

// Options configures a layout computation.
// The zero value is valid: cumulative y-assignment, zero margins, sizes read
// from the nodes.
type Options struct {
	// Layered aligns all nodes of the same depth on a shared row baseline.
	// When false, y accumulates per path: each node sits directly below its
	// parent regardless of what happens in other branches.
	Layered bool

	// ParentChildMargin is the minimum vertical gap between a node's bottom
	// edge and the top edge of its children.
	ParentChildMargin float64

	// PeerMargin is the minimum horizontal gap enforced between the facing
	// contours of adjacent sibling subtrees.
	PeerMargin float64

	// Sizer overrides how node footprints are obtained. Nil means NodeSize.
	Sizer Sizer
}

// Validate checks margins and fills in defaults. Compute calls it
// automatically; it is exported for callers that want to fail fast before
// loading input.
func (o *Options) Validate() error {
	if o.Sizer == nil {
		o.Sizer = NodeSize
	}
	for _, m := range []struct {
		name  string
		value float64
	}{
		{"ParentChildMargin", o.ParentChildMargin},
		{"PeerMargin", o.PeerMargin},
	} {
		if math.IsNaN(m.value) || math.IsInf(m.value, 0) {
			return errors.New(errors.ErrCodeInvalidOption, "%s must be finite, got %v", m.name, m.value)
		}
		if m.value < 0 {
			return errors.New(errors.ErrCodeInvalidOption, "%s must be non-negative, got %v", m.name, m.value)
		}
	}
	return nil
}
