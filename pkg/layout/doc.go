// Package layout computes tidy, non-overlapping 2-D placements for trees of
// rectangular nodes in linear time.
//
// The algorithm walks the tree twice. A post-order first walk places every
// node relative to its parent: each child subtree is pushed right just far
// enough that its left contour clears the right contour of the previously
// placed siblings, and the parent is centered over its first and last child.
// A pre-order second walk then resolves absolute coordinates by summing the
// deferred offsets along each root-to-node path.
//
// Two tricks keep the total work linear. Contour walks follow thread
// pointers that stitch separate subtrees into one virtual outline, so a walk
// skips across regions that earlier comparisons already resolved. And when a
// subtree is pushed right, the intermediate siblings between it and the
// collision point are not moved eagerly; the shift is recorded as a per-node
// acceleration and distributed in one O(1) pass per node during the second
// walk.
//
// # Usage
//
//	root := &tree.Node{Label: "root", Width: 2, Height: 1, Children: ...}
//	result, err := layout.Compute(root, layout.Options{
//	    PeerMargin:        10,
//	    ParentChildMargin: 20,
//	})
//	if err != nil {
//	    return err
//	}
//	for _, link := range result.Links() {
//	    // draw an edge from (link.FromX, link.FromY) to (link.ToX, link.ToY)
//	}
//
// Coordinates follow the convention of [Result]: X is a node's horizontal
// center, Y its top edge, with the root centered at X = 0.
package layout
