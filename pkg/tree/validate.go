package tree

import (
	"math"

	"github.com/matzehuels/tidytree/pkg/errors"
)

// Validate checks that the structure rooted at n is a genuine tree.
//
// It verifies three constraints:
//
//  1. The root is non-nil and no child pointer is nil
//  2. No node is reachable twice (no shared subtrees, no cycles)
//  3. Every node's footprint is well-formed (finite, non-negative)
//
// The layout engine itself does not detect malformed input - a cyclic
// "tree" would make it loop forever - so callers building trees from
// untrusted data should validate first.
//
// Returns a structured error with code NOT_A_TREE or INVALID_SIZE.
func Validate(n *Node) error {
	if n == nil {
		return errors.New(errors.ErrCodeNotATree, "root node is nil")
	}
	seen := make(map[*Node]bool)
	return validate(n, seen)
}

func validate(n *Node, seen map[*Node]bool) error {
	if seen[n] {
		return errors.New(errors.ErrCodeNotATree, "node %q reachable twice (shared subtree or cycle)", n.Label)
	}
	seen[n] = true

	if err := checkSize(n.Label, n.Width, n.Height); err != nil {
		return err
	}

	for i, c := range n.Children {
		if c == nil {
			return errors.New(errors.ErrCodeNotATree, "node %q has nil child at index %d", n.Label, i)
		}
		if err := validate(c, seen); err != nil {
			return err
		}
	}
	return nil
}

func checkSize(label string, w, h float64) error {
	if math.IsNaN(w) || math.IsNaN(h) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return errors.New(errors.ErrCodeInvalidSize, "node %q has non-finite size %vx%v", label, w, h)
	}
	if w < 0 || h < 0 {
		return errors.New(errors.ErrCodeInvalidSize, "node %q has negative size %vx%v", label, w, h)
	}
	return nil
}
