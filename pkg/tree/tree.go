// Package tree defines the input model for tidy tree layout.
//
// A tree is built from [Node] values owned by the caller. Nodes carry a display
// label, a rectangular footprint (width, height), optional metadata, and an
// ordered list of children. The layout engine reads the structure but never
// mutates it; all mutable layout state lives in the engine's own arena.
package tree

// Metadata stores arbitrary key-value pairs attached to nodes.
// Metadata is carried through layout untouched and round-trips through the
// JSON serialization format.
type Metadata map[string]any

// Node is a single vertex of an input tree.
//
// Width and Height describe the node's rectangular footprint in user units.
// Children are ordered left to right; the layout preserves this order.
// The zero value is a zero-sized childless node.
type Node struct {
	Label    string
	Width    float64
	Height   float64
	Meta     Metadata
	Children []*Node
}

// AddChild appends children to the node and returns the node for chaining.
func (n *Node) AddChild(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Count returns the number of nodes in the tree rooted at n.
// Returns 0 for a nil root.
func Count(n *Node) int {
	if n == nil {
		return 0
	}
	total := 1
	for _, c := range n.Children {
		total += Count(c)
	}
	return total
}

// Depth returns the number of levels in the tree rooted at n.
// A single node has depth 1; a nil root has depth 0.
func Depth(n *Node) int {
	if n == nil {
		return 0
	}
	max := 0
	for _, c := range n.Children {
		if d := Depth(c); d > max {
			max = d
		}
	}
	return max + 1
}

// Walk visits every node of the tree in pre-order (parents before children,
// children left to right) and calls fn with the node and its depth (root = 0).
// If fn returns false, the walk skips that node's subtree.
func Walk(n *Node, fn func(n *Node, depth int) bool) {
	walk(n, 0, fn)
}

func walk(n *Node, depth int, fn func(n *Node, depth int) bool) {
	if n == nil || !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		walk(c, depth+1, fn)
	}
}
