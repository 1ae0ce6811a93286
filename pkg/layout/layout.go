package layout

import (
	"github.com/matzehuels/tidytree/pkg/errors"
	"github.com/matzehuels/tidytree/pkg/tree"
)

// Compute lays out the tree rooted at root and returns the absolute
// placement of every node. The input tree is validated and never modified;
// all working state lives in an arena private to this call, so concurrent
// Compute calls on shared trees are safe.
func Compute(root *tree.Node, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := tree.Validate(root); err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "layout input rejected")
	}

	a, err := buildArena(root, opts.Sizer)
	if err != nil {
		return nil, err
	}

	if opts.Layered {
		a.assignLayeredY(opts.ParentChildMargin)
	} else {
		a.assignCumulativeY(0, 0, opts.ParentChildMargin)
	}

	a.firstWalk(0, opts.PeerMargin)
	a.secondWalk(0, 0)

	return buildResult(a), nil
}
