package regularize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlowGraph_MaxFlow_SimpleDiamond(t *testing.T) {
	// s -> a -> t, s -> b -> t, each edge capacity 1: max flow is 2.
	g := newFlowGraph(4)
	s, a, b, tSink := 0, 1, 2, 3
	g.addEdge(s, a, 1)
	g.addEdge(a, tSink, 1)
	g.addEdge(s, b, 1)
	g.addEdge(b, tSink, 1)

	flow := g.maxFlow(s, tSink)
	assert.Equal(t, 2.0, flow)
}

func TestFlowGraph_MaxFlow_BottleneckEdge(t *testing.T) {
	g := newFlowGraph(3)
	s, mid, tSink := 0, 1, 2
	g.addEdge(s, mid, 10)
	g.addEdge(mid, tSink, 3)

	flow := g.maxFlow(s, tSink)
	assert.Equal(t, 3.0, flow)
}

func TestFlowGraph_SourceSide_MatchesCutCapacity(t *testing.T) {
	g := newFlowGraph(3)
	s, mid, tSink := 0, 1, 2
	g.addEdge(s, mid, 5)
	g.addEdge(mid, tSink, 2)

	g.maxFlow(s, tSink)
	onSource := g.sourceSide(s)
	assert.True(t, onSource[s])
	assert.True(t, onSource[mid]) // residual s->mid capacity remains (5-2=3)
	assert.False(t, onSource[tSink])
}

func TestFlowGraph_AddEdge_IgnoresNonPositiveCapacity(t *testing.T) {
	g := newFlowGraph(2)
	g.addEdge(0, 1, 0)
	assert.Empty(t, g.adj[0])
}
