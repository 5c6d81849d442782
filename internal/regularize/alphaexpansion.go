package regularize

// AlphaExpansion runs α-expansion over a pairwise Markov random field:
// given an L×n unary cost matrix, a (possibly asymmetric, possibly
// duplicated) edge list over n nodes with a uniform Potts smoothness
// weight, and an initial label vector, it mutates labels in place by
// repeatedly cycling over every candidate label α and solving a binary
// min-cut sub-problem, stopping once a full cycle makes no improvement.
// Each step's min-cut construction follows the standard submodular
// expansion-move graph of Boykov, Veksler & Zabih (2001): a direct edge
// for pairs that currently agree, and a 3-edge auxiliary-node gadget for
// pairs that currently disagree.
func AlphaExpansion(unary [][]float64, edges []tileEdge, weight float64, numClasses int, labels []int) {
	n := len(labels)
	if n == 0 || numClasses <= 1 {
		return
	}

	for {
		improvedThisCycle := false
		for alpha := 0; alpha < numClasses; alpha++ {
			if expandOnce(unary, edges, weight, alpha, labels) {
				improvedThisCycle = true
			}
		}
		if !improvedThisCycle {
			return
		}
	}
}

// expandOnce solves one binary min-cut for a single candidate label alpha
// and applies the resulting move; it reports whether any node actually
// changed label. The cut is read as the set of nodes reachable from the
// source, the smallest source side of any minimum cut, so a node switches
// to alpha only when the move strictly lowers the energy: ties keep the
// old label.
func expandOnce(unary [][]float64, edges []tileEdge, weight float64, alpha int, labels []int) bool {
	n := len(labels)

	// Node ids: 0..n-1 are the data nodes, n is source (S, "switch to
	// alpha"), n+1 is sink (T, "keep old label"); auxiliary nodes for
	// disagreeing pairs are appended starting at n+2.
	source, sink := n, n+1
	nextAux := n + 2

	// First pass: count auxiliary nodes needed so the graph can be sized
	// up front.
	auxNeeded := 0
	for _, e := range edges {
		if labels[e.a] != labels[e.b] {
			auxNeeded++
		}
	}

	g := newFlowGraph(nextAux + auxNeeded)

	for p := 0; p < n; p++ {
		if labels[p] == alpha {
			// No real choice: route the data cost directly, skip the
			// terminal contest.
			g.addEdge(source, p, unary[alpha][p])
			g.addEdge(p, sink, unary[alpha][p])
			continue
		}
		g.addEdge(source, p, unary[labels[p]][p]) // cost of keeping old label, paid if p ends on T-side
		g.addEdge(p, sink, unary[alpha][p])       // cost of switching to alpha, paid if p ends on S-side
	}

	auxID := nextAux
	for _, e := range edges {
		la, lb := labels[e.a], labels[e.b]
		if la == lb {
			if la == alpha {
				continue // both already alpha: expansion cannot change their agreement
			}
			g.addEdge(e.a, e.b, weight)
			g.addEdge(e.b, e.a, weight)
			continue
		}
		a := auxID
		auxID++
		g.addEdge(source, a, weight)
		g.addEdge(a, e.a, weight)
		g.addEdge(a, e.b, weight)
	}

	g.maxFlow(source, sink)
	onSource := g.sourceSide(source)

	changed := false
	for p := 0; p < n; p++ {
		if !onSource[p] {
			continue // stays at its old label
		}
		if labels[p] != alpha {
			labels[p] = alpha
			changed = true
		}
	}
	return changed
}
