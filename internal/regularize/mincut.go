package regularize

// mincut is a small directed max-flow/min-cut solver over an explicit
// adjacency-list graph with integer node ids. No library in the retrieved
// reference corpus implements graph-cut/min-cut/alpha-expansion (confirmed
// by search), so this solver is written directly against the textbook
// Ford-Fulkerson/Edmonds-Karp formulation (BFS shortest augmenting path) —
// the one substantial component of this package with no third-party
// grounding, noted as such in the design ledger.

type edge struct {
	to      int
	cap     float64
	flow    float64
	reverse int // index, in the OTHER endpoint's adjacency list, of the paired reverse edge
}

// flowGraph is a node-indexed adjacency list of directed edges with
// residual capacities, used to run one binary min-cut per α-expansion step.
type flowGraph struct {
	adj   [][]edge
	nodes int
}

func newFlowGraph(nodes int) *flowGraph {
	return &flowGraph{adj: make([][]edge, nodes), nodes: nodes}
}

// addEdge inserts a directed edge u->v with the given capacity, plus its
// zero-capacity reverse edge used for residual flow cancellation.
func (g *flowGraph) addEdge(u, v int, cap float64) {
	if cap <= 0 {
		return
	}
	g.adj[u] = append(g.adj[u], edge{to: v, cap: cap, reverse: len(g.adj[v])})
	g.adj[v] = append(g.adj[v], edge{to: u, cap: 0, reverse: len(g.adj[u]) - 1})
}

// maxFlow runs Edmonds-Karp (BFS shortest augmenting path) from s to t and
// returns the total flow pushed; residual capacities are left in g for the
// caller to read the resulting min cut from.
func (g *flowGraph) maxFlow(s, t int) float64 {
	total := 0.0
	for {
		parentEdge := make([]int, g.nodes) // index into adj[node] of the edge used to reach node, -1 if unreached
		parentNode := make([]int, g.nodes)
		for i := range parentEdge {
			parentEdge[i] = -1
			parentNode[i] = -1
		}
		parentNode[s] = s

		queue := []int{s}
		for len(queue) > 0 && parentEdge[t] == -1 {
			u := queue[0]
			queue = queue[1:]
			for ei := range g.adj[u] {
				e := &g.adj[u][ei]
				if e.cap-e.flow <= 1e-12 {
					continue
				}
				if parentNode[e.to] != -1 {
					continue
				}
				parentNode[e.to] = u
				parentEdge[e.to] = ei
				queue = append(queue, e.to)
			}
		}
		if parentEdge[t] == -1 {
			break
		}

		// bottleneck along s..t
		bottleneck := maxFloat
		for v := t; v != s; {
			u := parentNode[v]
			e := &g.adj[u][parentEdge[v]]
			if rem := e.cap - e.flow; rem < bottleneck {
				bottleneck = rem
			}
			v = u
		}

		for v := t; v != s; {
			u := parentNode[v]
			ei := parentEdge[v]
			g.adj[u][ei].flow += bottleneck
			rev := g.adj[u][ei].reverse
			g.adj[v][rev].flow -= bottleneck
			v = u
		}
		total += bottleneck
	}
	return total
}

// sourceSide returns, for every node, whether it is reachable from s in the
// residual graph after maxFlow has run — the standard min-cut readout.
func (g *flowGraph) sourceSide(s int) []bool {
	onSource := make([]bool, g.nodes)
	onSource[s] = true
	queue := []int{s}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, e := range g.adj[u] {
			if e.cap-e.flow <= 1e-12 {
				continue
			}
			if onSource[e.to] {
				continue
			}
			onSource[e.to] = true
			queue = append(queue, e.to)
		}
	}
	return onSource
}

const maxFloat = 1.7976931348623157e+308
