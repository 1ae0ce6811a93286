package layout

// assignCumulativeY walks the tree depth-first, placing every node directly
// below its parent: y = parent.y + parent.height + margin. The root sits at
// y = 0. Row alignment is not enforced; siblings whose ancestor chains have
// different heights end up at different baselines.
func (a *arena) assignCumulativeY(id int32, y, margin float64) {
	n := a.at(id)
	n.y = y
	childY := y + n.height + margin
	for _, c := range n.children {
		a.assignCumulativeY(c, childY, margin)
	}
}

// assignLayeredY aligns all nodes of equal depth on a shared baseline.
// Depth is structural: always parent depth + 1, starting at 0 for the root.
// Each row starts margin below the tallest node of the previous row.
func (a *arena) assignLayeredY(margin float64) {
	if a.len() == 0 {
		return
	}

	depths := make([]int, a.len())
	maxDepth := 0

	// Breadth-first depth assignment. Children always follow their parent
	// in the queue, so depths are final when read.
	queue := make([]int32, 0, a.len())
	queue = append(queue, 0)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		d := depths[id]
		if d > maxDepth {
			maxDepth = d
		}
		for _, c := range a.at(id).children {
			depths[c] = d + 1
			queue = append(queue, c)
		}
	}

	// Tallest footprint per row.
	rowHeight := make([]float64, maxDepth+1)
	for id := range a.nodes {
		d := depths[id]
		if h := a.nodes[id].height; h > rowHeight[d] {
			rowHeight[d] = h
		}
	}

	// Baseline per row: previous baseline + tallest previous node + margin.
	rowY := make([]float64, maxDepth+1)
	for d := 1; d <= maxDepth; d++ {
		rowY[d] = rowY[d-1] + rowHeight[d-1] + margin
	}

	for id := range a.nodes {
		a.nodes[id].y = rowY[depths[id]]
	}
}
