package layout

// firstWalk lays out the subtree rooted at id in its own relative frame.
// Children are laid out recursively, then pushed apart left to right; the
// root is centered over the span of its first and last child, and the
// subtree's extremes are recorded for the contour walks of later siblings.
func (a *arena) firstWalk(id int32, peerMargin float64) {
	n := a.at(id)
	if len(n.children) == 0 {
		a.setExtremes(id)
		return
	}

	a.firstWalk(n.children[0], peerMargin)
	low := pushContour(a.bottom(a.at(n.children[0]).extremeLeft), 0, nil)
	for i := 1; i < len(n.children); i++ {
		a.firstWalk(n.children[i], peerMargin)
		a.separate(n, i, low, peerMargin)
		low = pushContour(a.bottom(a.at(n.children[i]).extremeRight), i, low)
	}

	a.positionRoot(n)
	a.setExtremes(id)
}

// positionRoot centers n over its children: halfway between the centers of
// its first and last child, expressed in n's own frame. The matching
// negative mod keeps the children where separate left them once absolute
// sums run through n.
func (a *arena) positionRoot(n *arenaNode) {
	first := a.at(n.children[0])
	last := a.at(n.children[len(n.children)-1])
	n.relX = (first.relX + first.mod + last.relX + last.mod) / 2
	n.mod = -n.relX
}

// setExtremes records the bottom of the subtree's left and right contours.
// A leaf is its own extreme on both sides. An internal node inherits the
// left extreme from its first child and the right extreme from its last,
// folding its own mod into the stored modifier sums so they remain
// anchored at this subtree's frame.
func (a *arena) setExtremes(id int32) {
	n := a.at(id)
	if len(n.children) == 0 {
		n.extremeLeft, n.extremeRight = id, id
		n.modExtremeLeft, n.modExtremeRight = n.mod, n.mod
		return
	}
	first := a.at(n.children[0])
	n.extremeLeft = first.extremeLeft
	n.modExtremeLeft = n.mod + first.modExtremeLeft

	last := a.at(n.children[len(n.children)-1])
	n.extremeRight = last.extremeRight
	n.modExtremeRight = n.mod + last.modExtremeRight
}

// secondWalk resolves absolute centers by accumulating modifiers down each
// root-to-node path, folding in the deferred sibling-spacing corrections as
// it descends.
func (a *arena) secondWalk(id int32, modsum float64) {
	n := a.at(id)
	modsum += n.mod
	n.x = n.relX + modsum
	a.addChildSpacing(n)
	for _, c := range n.children {
		a.secondWalk(c, modsum)
	}
}

// addChildSpacing applies the shift/change deltas recorded by
// distributeExtra to n's children in a single left-to-right pass. Each
// child's shift raises the running acceleration d; d plus the child's own
// change accumulates into the modifier delta applied from that child on.
// The deltas are consumed here and zeroed, since mod now carries them.
func (a *arena) addChildSpacing(n *arenaNode) {
	var d, modsumdelta float64
	for _, cid := range n.children {
		c := a.at(cid)
		d += c.shift
		modsumdelta += d + c.change
		c.mod += modsumdelta
		c.shift, c.change = 0, 0
	}
}
