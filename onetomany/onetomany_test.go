package onetomany

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ttpr0/go-expansion/costing"
	"github.com/ttpr0/go-expansion/geo"
	"github.com/ttpr0/go-expansion/graph"
	"github.com/ttpr0/go-expansion/structs"
	"github.com/ttpr0/go-expansion/util"
)

//*******************************************
// test graph
//*******************************************

// line graph a - b - c - d; edge lengths chosen so that driving one
// edge takes roughly 72 seconds
func build_line_graph() (*graph.GraphStore, []structs.GraphId) {
	builder := graph.NewGraphBuilder()
	a := builder.AddNode(1, 0, geo.MakeCoord(7.00, 49.0))
	b := builder.AddNode(1, 0, geo.MakeCoord(7.01, 49.0))
	c := builder.AddNode(1, 0, geo.MakeCoord(7.02, 49.0))
	d := builder.AddNode(1, 0, geo.MakeCoord(7.03, 49.0))
	opts := graph.EdgeOptions{Length: 1000, Speed: 50, Use: graph.USE_ROAD, AccessAB: graph.ACCESS_ALL, AccessBA: graph.ACCESS_ALL}
	ab, _ := builder.AddEdgePair(a, b, opts)
	bc, _ := builder.AddEdgePair(b, c, opts)
	cd, _ := builder.AddEdgePair(c, d, opts)
	store := builder.Build()
	return store, []structs.GraphId{builder.EdgeId(ab), builder.EdgeId(bc), builder.EdgeId(cd)}
}

func mode_costing() [costing.MAX_TRAVEL_MODE]costing.DynamicCost {
	var mc [costing.MAX_TRAVEL_MODE]costing.DynamicCost
	mc[costing.DRIVE] = costing.NewAutoCost(costing.AutoOptions{})
	return mc
}

func location(edge structs.GraphId, percent float32) *graph.Location {
	return &graph.Location{
		PathEdges: util.List[graph.PathEdge]{{
			EdgeId:       edge,
			PercentAlong: percent,
		}},
	}
}

//*******************************************
// isochrone
//*******************************************

func TestIsochroneRange(t *testing.T) {
	store, edges := build_line_graph()
	reader := graph.NewGraphReader(store)
	iso := NewIsochrone(reader)

	// one edge takes 72s; a 200s range covers b and c but not d
	points := iso.Compute([]*graph.Location{location(edges[0], 0)}, 200, costing.DRIVE, mode_costing())
	require.Greater(t, len(points), 0)
	for _, point := range points {
		assert.LessOrEqual(t, point.Secs, float32(200))
	}
	// node b is sampled at ~72s
	found := false
	for _, point := range points {
		if point.Secs > 71 && point.Secs < 73 {
			found = true
		}
	}
	assert.True(t, found)
}

func TestIsochroneRepeatable(t *testing.T) {
	store, edges := build_line_graph()
	reader := graph.NewGraphReader(store)
	iso := NewIsochrone(reader)

	first := iso.Compute([]*graph.Location{location(edges[0], 0)}, 500, costing.DRIVE, mode_costing())
	second := iso.Compute([]*graph.Location{location(edges[0], 0)}, 500, costing.DRIVE, mode_costing())
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i], second[i])
	}
}

//*******************************************
// matrix
//*******************************************

func TestMatrixDurations(t *testing.T) {
	store, edges := build_line_graph()
	reader := graph.NewGraphReader(store)
	matrix := NewMatrix(reader)

	sources := []*graph.Location{location(edges[0], 0)}
	targets := []*graph.Location{location(edges[0], 0), location(edges[2], 0)}
	result := matrix.Compute(sources, targets, 3600, costing.DRIVE, mode_costing())

	require.Equal(t, 1, result.Rows())
	require.Equal(t, 2, result.Cols())
	// the source edge settles at ~72s, the far edge after three edges
	assert.InDelta(t, 72, result.Get(0, 0), 2)
	assert.InDelta(t, 216, result.Get(0, 1), 4)
}

func TestMatrixUnreachable(t *testing.T) {
	store, edges := build_line_graph()

	// the target edge lives in a tile that is not part of the dataset
	missing_edge := structs.MakeGraphId(9, 0, 0)

	reader := graph.NewGraphReader(store)
	matrix := NewMatrix(reader)
	sources := []*graph.Location{location(edges[0], 0)}
	targets := []*graph.Location{location(missing_edge, 0)}
	result := matrix.Compute(sources, targets, 600, costing.DRIVE, mode_costing())

	assert.Equal(t, float32(-1), result.Get(0, 0))
}
