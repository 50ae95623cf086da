package reach

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ttpr0/go-expansion/costing"
	"github.com/ttpr0/go-expansion/geo"
	"github.com/ttpr0/go-expansion/graph"
	"github.com/ttpr0/go-expansion/structs"
)

//*******************************************
// test graph
//*******************************************

// line graph a - b - c - d with bidirectional access
func build_line_graph() (*graph.GraphStore, []structs.GraphId) {
	builder := graph.NewGraphBuilder()
	a := builder.AddNode(1, 0, geo.MakeCoord(7.00, 49.0))
	b := builder.AddNode(1, 0, geo.MakeCoord(7.01, 49.0))
	c := builder.AddNode(1, 0, geo.MakeCoord(7.02, 49.0))
	d := builder.AddNode(1, 0, geo.MakeCoord(7.03, 49.0))
	opts := graph.EdgeOptions{Length: 1, Speed: 50, Use: graph.USE_ROAD, AccessAB: graph.ACCESS_ALL, AccessBA: graph.ACCESS_ALL}
	ab, _ := builder.AddEdgePair(a, b, opts)
	builder.AddEdgePair(b, c, opts)
	builder.AddEdgePair(c, d, opts)
	store := builder.Build()
	return store, []structs.GraphId{builder.EdgeId(ab)}
}

func auto_cost() costing.DynamicCost {
	return costing.NewAutoCost(costing.AutoOptions{})
}

//*******************************************
// simple reach
//*******************************************

func TestSimpleReachOutbound(t *testing.T) {
	store, edges := build_line_graph()
	reader := graph.NewGraphReader(store)

	reach := SimpleReach(edges[0], 10, reader, auto_cost(), OUTBOUND)
	// every node is reachable from b over the bidirectional edges
	assert.Equal(t, uint32(4), reach.Outbound)
	assert.Equal(t, uint32(0), reach.Inbound)
}

func TestSimpleReachBounded(t *testing.T) {
	store, edges := build_line_graph()
	reader := graph.NewGraphReader(store)

	reach := SimpleReach(edges[0], 2, reader, auto_cost(), OUTBOUND)
	assert.Equal(t, uint32(2), reach.Outbound)
}

func TestSimpleReachBothDirections(t *testing.T) {
	store, edges := build_line_graph()
	reader := graph.NewGraphReader(store)

	both := SimpleReach(edges[0], 10, reader, auto_cost(), OUTBOUND|INBOUND)
	outbound := SimpleReach(edges[0], 10, reader, auto_cost(), OUTBOUND)
	inbound := SimpleReach(edges[0], 10, reader, auto_cost(), INBOUND)

	// a combined run equals the two single-direction runs
	assert.Equal(t, outbound.Outbound, both.Outbound)
	assert.Equal(t, inbound.Inbound, both.Inbound)
	assert.Equal(t, uint32(0), outbound.Inbound)
	assert.Equal(t, uint32(0), inbound.Outbound)
}

func TestSimpleReachZeroBound(t *testing.T) {
	// max_reach 0 short-circuits before any tile access
	reader := graph.NewGraphReader(&graph.GraphStore{})
	reach := SimpleReach(structs.MakeGraphId(1, 0, 0), 0, reader, nil, OUTBOUND|INBOUND)
	assert.Equal(t, DirectedReach{}, reach)
}

func TestSimpleReachCountsTransitionsOnce(t *testing.T) {
	// b has a counterpart on level 1; the duplicate must not inflate
	// the progress measure
	builder := graph.NewGraphBuilder()
	a := builder.AddNode(1, 0, geo.MakeCoord(7.00, 49.0))
	b := builder.AddNode(1, 0, geo.MakeCoord(7.01, 49.0))
	c := builder.AddNode(1, 0, geo.MakeCoord(7.02, 49.0))
	b_up := builder.AddNode(1, 1, geo.MakeCoord(7.01, 49.0))
	opts := graph.EdgeOptions{Length: 1, Use: graph.USE_ROAD, AccessAB: graph.ACCESS_ALL, AccessBA: graph.ACCESS_ALL}
	ab, _ := builder.AddEdgePair(a, b, opts)
	builder.AddEdgePair(b, c, opts)
	builder.AddTransition(b, b_up)
	builder.AddTransition(b_up, b)
	store := builder.Build()

	reader := graph.NewGraphReader(store)
	reach := SimpleReach(builder.EdgeId(ab), 10, reader, auto_cost(), OUTBOUND)
	// physical junctions a, b, c; the level-1 duplicate of b is not counted
	assert.Equal(t, uint32(3), reach.Outbound)
}

//*******************************************
// cost-aware reach
//*******************************************

func TestReachCostAware(t *testing.T) {
	store, edges := build_line_graph()
	reader := graph.NewGraphReader(store)

	analyzer := NewReach(reader)
	reach := analyzer.Compute(edges[0], 10, auto_cost(), OUTBOUND|INBOUND)

	// all six directed edges are labeled in either direction
	assert.Equal(t, uint32(6), reach.Outbound)
	assert.Equal(t, uint32(6), reach.Inbound)
}

func TestReachCostAwarePrunes(t *testing.T) {
	store, edges := build_line_graph()
	reader := graph.NewGraphReader(store)

	analyzer := NewReach(reader)
	reach := analyzer.Compute(edges[0], 3, auto_cost(), OUTBOUND|INBOUND)

	require.LessOrEqual(t, reach.Outbound, uint32(3))
	require.LessOrEqual(t, reach.Inbound, uint32(3))
}

func TestReachDirectionMask(t *testing.T) {
	store, edges := build_line_graph()
	reader := graph.NewGraphReader(store)

	analyzer := NewReach(reader)
	outbound := analyzer.Compute(edges[0], 10, auto_cost(), OUTBOUND)
	assert.Greater(t, outbound.Outbound, uint32(0))
	assert.Equal(t, uint32(0), outbound.Inbound)

	inbound := analyzer.Compute(edges[0], 10, auto_cost(), INBOUND)
	assert.Equal(t, uint32(0), inbound.Outbound)
	assert.Greater(t, inbound.Inbound, uint32(0))

	neither := analyzer.Compute(edges[0], 10, auto_cost(), 0)
	assert.Equal(t, DirectedReach{}, neither)
}

func TestReachZeroBound(t *testing.T) {
	store, edges := build_line_graph()
	reader := graph.NewGraphReader(store)

	analyzer := NewReach(reader)
	reach := analyzer.Compute(edges[0], 0, auto_cost(), OUTBOUND|INBOUND)
	assert.Equal(t, DirectedReach{}, reach)
}
