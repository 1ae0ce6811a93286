package layout

import "github.com/matzehuels/tidytree/pkg/tree"

// PlacedNode is the final placement of one input node. X is the node's
// horizontal center and Y its top edge; the root is centered at X = 0 with
// Y = 0. Children mirror the input tree's order.
type PlacedNode struct {
	Source *tree.Node

	Label  string
	X, Y   float64
	Width  float64
	Height float64

	Children []*PlacedNode
}

// Left returns the x coordinate of the node's left edge.
func (p *PlacedNode) Left() float64 { return p.X - p.Width/2 }

// Right returns the x coordinate of the node's right edge.
func (p *PlacedNode) Right() float64 { return p.X + p.Width/2 }

// Bottom returns the y coordinate of the node's lower edge.
func (p *PlacedNode) Bottom() float64 { return p.Y + p.Height }

// Link is a parent-to-child edge with ready-to-draw attachment points:
// the parent's bottom center and the child's top center.
type Link struct {
	Parent *PlacedNode
	Child  *PlacedNode

	FromX, FromY float64
	ToX, ToY     float64
}

// Result holds a completed layout.
type Result struct {
	Root *PlacedNode

	// Nodes lists every placement in document order (pre-order, children
	// left to right), matching the traversal order of the input tree.
	Nodes []*PlacedNode
}

// Links enumerates every parent-to-child edge in document order.
func (r *Result) Links() []Link {
	links := make([]Link, 0, len(r.Nodes)-1)
	for _, p := range r.Nodes {
		for _, c := range p.Children {
			links = append(links, Link{
				Parent: p,
				Child:  c,
				FromX:  p.X,
				FromY:  p.Bottom(),
				ToX:    c.X,
				ToY:    c.Y,
			})
		}
	}
	return links
}

// Bounds returns the tight bounding box of all node rectangles.
func (r *Result) Bounds() (minX, minY, maxX, maxY float64) {
	if len(r.Nodes) == 0 {
		return 0, 0, 0, 0
	}
	first := r.Nodes[0]
	minX, minY = first.Left(), first.Y
	maxX, maxY = first.Right(), first.Bottom()
	for _, n := range r.Nodes[1:] {
		if l := n.Left(); l < minX {
			minX = l
		}
		if n.Y < minY {
			minY = n.Y
		}
		if rg := n.Right(); rg > maxX {
			maxX = rg
		}
		if b := n.Bottom(); b > maxY {
			maxY = b
		}
	}
	return minX, minY, maxX, maxY
}

// buildResult converts the arena's solved state into the public tree shape.
func buildResult(a *arena) *Result {
	res := &Result{Nodes: make([]*PlacedNode, 0, a.len())}
	res.Root = res.build(a, 0)
	return res
}

func (r *Result) build(a *arena, id int32) *PlacedNode {
	n := a.at(id)
	p := &PlacedNode{
		Source: n.src,
		Label:  n.src.Label,
		X:      n.x,
		Y:      n.y,
		Width:  n.width,
		Height: n.height,
	}
	r.Nodes = append(r.Nodes, p)
	if len(n.children) > 0 {
		p.Children = make([]*PlacedNode, 0, len(n.children))
		for _, c := range n.children {
			p.Children = append(p.Children, r.build(a, c))
		}
	}
	return p
}
