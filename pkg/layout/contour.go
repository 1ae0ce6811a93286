package layout

// This file implements the collision-avoidance core: walking the facing
// contours of two adjacent subtree blocks to find the minimum horizontal
// separation, threading resolved regions so later walks skip across them,
// and recording lazy shifts for the siblings in between.
//
// Contour cursors carry a running modifier sum. The invariant throughout is
// that a cursor standing on node v holds ms = the sum of mod values on the
// path from the separating parent's child down to v, v's own mod included,
// so that v's center in the parent frame is ms + v.relX.

// contourList tracks which child subtree owns the placed block's lower
// fringe per depth band. The head covers the shallowest band; following
// next moves to bands owned by earlier, deeper children. moveSubtree needs
// the owning child's index to know across how many siblings a shift must be
// spread.
type contourList struct {
	lowY  float64
	index int
	next  *contourList
}

// pushContour records that child i's subtree reaches down to lowY,
// shadowing any earlier children that do not reach below it.
func pushContour(lowY float64, i int, head *contourList) *contourList {
	for head != nil && lowY >= head.lowY {
		head = head.next
	}
	return &contourList{lowY: lowY, index: i, next: head}
}

// separate pushes child i of parent p right until its left contour clears
// the right contour of the block formed by children 0..i-1, keeping at
// least peerMargin between facing boundary points.
func (a *arena) separate(p *arenaNode, i int, low *contourList, peerMargin float64) {
	// Left cursor: right contour of the placed block, entered at the
	// previous sibling. Right cursor: left contour of child i.
	sr := p.children[i-1]
	mssr := a.at(sr).mod
	cl := p.children[i]
	mscl := a.at(cl).mod

	for sr != absent && cl != absent {
		if low != nil && a.bottom(sr) > low.lowY {
			low = low.next
		}

		srn, cln := a.at(sr), a.at(cl)
		dist := (mssr + srn.relX + srn.width/2 + peerMargin) - (mscl + cln.relX - cln.width/2)
		if dist > 0 {
			a.moveSubtree(p, i, ownerIndex(low, i), dist)
			mscl += dist
		}

		// Advance whichever subtree is vertically shallower; equal depths
		// advance both cursors together.
		sy, cy := a.bottom(sr), a.bottom(cl)
		if sy <= cy {
			sr, mssr = a.nextRightContour(sr, mssr)
		}
		if sy >= cy {
			cl, mscl = a.nextLeftContour(cl, mscl)
		}
	}

	// One side ran out: stitch a thread from the finished side's extreme to
	// the survivor so future walks jump straight across this block.
	switch {
	case sr == absent && cl != absent:
		a.setLeftThread(p, i, cl, mscl)
	case sr != absent && cl == absent:
		a.setRightThread(p, i, sr, mssr)
	}
}

// ownerIndex resolves the sibling index owning the current contour depth.
// Falls back to the adjacent sibling when the list is exhausted.
func ownerIndex(low *contourList, i int) int {
	if low == nil {
		return i - 1
	}
	return low.index
}

// moveSubtree shifts child i's whole subtree right by dist. The shift is
// applied directly to child i; the siblings between the collision owner si
// and i are corrected lazily via distributeExtra.
func (a *arena) moveSubtree(p *arenaNode, i, si int, dist float64) {
	c := a.at(p.children[i])
	c.mod += dist
	c.modExtremeLeft += dist
	c.modExtremeRight += dist
	a.distributeExtra(p, i, si, dist)
}

// distributeExtra records that the dist applied to child i should be spread
// evenly across the siblings strictly between si and i. Nothing is moved
// here; addChildSpacing folds the recorded deltas into each child's mod in
// one pass during the second walk. Eagerly moving every intermediate
// sibling instead would cost O(n²) on wide trees.
func (a *arena) distributeExtra(p *arenaNode, i, si int, dist float64) {
	if si == i-1 {
		return
	}
	nr := float64(i - si)
	a.at(p.children[si+1]).shift += dist / nr
	c := a.at(p.children[i])
	c.shift -= dist / nr
	c.change -= dist - dist/nr
}

// nextLeftContour advances a cursor one step down the left contour:
// into the first child, or across a thread when the subtree runs out.
func (a *arena) nextLeftContour(id int32, ms float64) (int32, float64) {
	n := a.at(id)
	if len(n.children) > 0 {
		c := n.children[0]
		return c, ms + a.at(c).mod
	}
	if n.threadLeft != absent {
		return n.threadLeft, ms + n.modThreadLeft
	}
	return absent, ms
}

// nextRightContour advances a cursor one step down the right contour:
// into the last child, or across a thread when the subtree runs out.
func (a *arena) nextRightContour(id int32, ms float64) (int32, float64) {
	n := a.at(id)
	if len(n.children) > 0 {
		c := n.children[len(n.children)-1]
		return c, ms + a.at(c).mod
	}
	if n.threadRight != absent {
		return n.threadRight, ms + n.modThreadRight
	}
	return absent, ms
}

// setLeftThread stitches the combined block's left contour: the block was
// shallower than child i, so its bottom-left extreme continues into cl,
// the surviving node of child i's left contour. The stored modifier is the
// difference between the two cursor sums, making a future jump land with
// the correct running sum. The first child then adopts child i's extreme,
// since the combined block now reaches that deep on the left.
func (a *arena) setLeftThread(p *arenaNode, i int, cl int32, mscl float64) {
	first := a.at(p.children[0])
	li := a.at(first.extremeLeft)
	li.threadLeft = cl
	li.modThreadLeft = mscl - first.modExtremeLeft

	ci := a.at(p.children[i])
	first.extremeLeft = ci.extremeLeft
	first.modExtremeLeft = ci.modExtremeLeft
}

// setRightThread mirrors setLeftThread for the right contour: child i was
// shallower than the block, so its bottom-right extreme continues into sr,
// and child i adopts the block's right extreme (kept on child i-1).
func (a *arena) setRightThread(p *arenaNode, i int, sr int32, mssr float64) {
	ci := a.at(p.children[i])
	ri := a.at(ci.extremeRight)
	ri.threadRight = sr
	ri.modThreadRight = mssr - ci.modExtremeRight

	prev := a.at(p.children[i-1])
	ci.extremeRight = prev.extremeRight
	ci.modExtremeRight = prev.modExtremeRight
}
