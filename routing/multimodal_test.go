package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ttpr0/go-expansion/costing"
	"github.com/ttpr0/go-expansion/geo"
	"github.com/ttpr0/go-expansion/graph"
	"github.com/ttpr0/go-expansion/structs"
	. "github.com/ttpr0/go-expansion/util"
)

//*******************************************
// multimodal traversal
//*******************************************

// street node o, platform p, platform q, street node r; a transit
// line runs p -> q with a scheduled departure
func build_transit_graph(departure_time int32) (*graph.GraphStore, structs.GraphId, structs.GraphId, structs.GraphId) {
	builder := graph.NewGraphBuilder()
	o := builder.AddNode(1, 0, geo.MakeCoord(7.000, 49.0))
	p := builder.AddNode(1, 0, geo.MakeCoord(7.001, 49.0))
	q := builder.AddNode(1, 0, geo.MakeCoord(7.010, 49.0))
	r := builder.AddNode(1, 0, geo.MakeCoord(7.011, 49.0))
	for _, node := range []structs.GraphId{o, p, q, r} {
		builder.SetNodeTimezone(node, 1)
	}
	builder.SetNodeType(p, graph.NODE_TRANSIT_PLATFORM)
	builder.SetNodeType(q, graph.NODE_TRANSIT_PLATFORM)

	walk := graph.EdgeOptions{Length: 10, Use: graph.USE_ROAD, AccessAB: graph.ACCESS_PEDESTRIAN, AccessBA: graph.ACCESS_PEDESTRIAN}
	op, _ := builder.AddEdgePair(o, p, walk)
	builder.AddEdgePair(q, r, walk)
	transit := graph.EdgeOptions{Length: 800, Use: graph.USE_TRANSIT_LINE, AccessAB: graph.ACCESS_TRANSIT, LineId: 7}
	pq, _ := builder.AddEdgePair(p, q, transit)
	builder.AddDeparture(1, 0, graph.TransitDeparture{
		LineId:        7,
		TripId:        1,
		RouteId:       1,
		DepartureTime: departure_time,
		TravelTime:    600,
		DaysOfWeek:    0x7F,
	})
	store := builder.Build()
	return store, builder.EdgeId(op), builder.EdgeId(pq), q
}

func multimodal_costing() [costing.MAX_TRAVEL_MODE]costing.DynamicCost {
	var mode_costing [costing.MAX_TRAVEL_MODE]costing.DynamicCost
	mode_costing[costing.DRIVE] = costing.NewAutoCost(costing.AutoOptions{})
	mode_costing[costing.PEDESTRIAN] = costing.NewPedestrianCost(costing.PedestrianOptions{})
	mode_costing[costing.BICYCLE] = costing.NewPedestrianCost(costing.PedestrianOptions{})
	mode_costing[costing.PUBLIC_TRANSIT] = costing.NewTransitCost(costing.TransitOptions{})
	return mode_costing
}

func TestMultiModalBoardsTransit(t *testing.T) {
	// 08:00 on a wednesday, departure 120s later
	store, op, pq, _ := build_transit_graph(28920)
	reader := graph.NewGraphReader(store)
	dijkstras := NewDijkstras(reader, nil)

	location := &graph.Location{
		DateTime: "2024-06-05T08:00",
		PathEdges: List[graph.PathEdge]{{
			EdgeId: op,
		}},
	}
	dijkstras.ComputeMultiModal([]*graph.Location{location}, costing.PEDESTRIAN, multimodal_costing())

	labels := dijkstras.MMEdgeLabels()
	require.Greater(t, labels.Length(), 1)

	// the transit-line label waits for the departure and switches mode
	var transit_label *costing.MMEdgeLabel
	for i := 0; i < labels.Length(); i++ {
		if labels[i].EdgeId == pq {
			transit_label = &labels[i]
		}
	}
	require.NotNil(t, transit_label)
	assert.Equal(t, costing.PUBLIC_TRANSIT, transit_label.Mode)
	assert.Equal(t, int32(1), transit_label.TripId)
	assert.True(t, transit_label.HasTransit)
	assert.GreaterOrEqual(t, transit_label.Cost.Secs, float32(60))

	// disembarking resets the mode and the walking distance
	var walk_label *costing.MMEdgeLabel
	for i := 0; i < labels.Length(); i++ {
		if labels[i].Predecessor != structs.INVALID_LABEL && labels[labels[i].Predecessor].EdgeId == pq {
			walk_label = &labels[i]
		}
	}
	require.NotNil(t, walk_label)
	assert.Equal(t, costing.PEDESTRIAN, walk_label.Mode)
	assert.Equal(t, uint32(10), walk_label.PathDistance)
}

func TestMultiModalRequiresDateTime(t *testing.T) {
	store, op, _, _ := build_transit_graph(28920)
	reader := graph.NewGraphReader(store)
	dijkstras := NewDijkstras(reader, nil)

	location := &graph.Location{
		PathEdges: List[graph.PathEdge]{{
			EdgeId: op,
		}},
	}
	dijkstras.ComputeMultiModal([]*graph.Location{location}, costing.PEDESTRIAN, multimodal_costing())

	// only the seed label exists; the traversal does not run
	assert.LessOrEqual(t, dijkstras.MMEdgeLabels().Length(), 1)
}

func TestMultiModalMissedLastDeparture(t *testing.T) {
	// departure before the origin time, the line cannot be boarded
	store, op, pq, _ := build_transit_graph(3600)
	reader := graph.NewGraphReader(store)
	dijkstras := NewDijkstras(reader, nil)

	location := &graph.Location{
		DateTime: "2024-06-05T08:00",
		PathEdges: List[graph.PathEdge]{{
			EdgeId: op,
		}},
	}
	dijkstras.ComputeMultiModal([]*graph.Location{location}, costing.PEDESTRIAN, multimodal_costing())

	labels := dijkstras.MMEdgeLabels()
	for i := 0; i < labels.Length(); i++ {
		assert.NotEqual(t, pq, labels[i].EdgeId)
	}
}

func TestOperatorIdMapping(t *testing.T) {
	builder := graph.NewGraphBuilder()
	builder.AddNode(1, 0, geo.MakeCoord(7.0, 49.0))
	builder.AddName(1, 0, "")
	agency_a := builder.AddName(1, 0, "agency one")
	agency_b := builder.AddName(1, 0, "agency two")
	builder.AddRoute(1, 0, graph.TransitRoute{RouteId: 1, OperatorOffset: agency_a})
	builder.AddRoute(1, 0, graph.TransitRoute{RouteId: 2, OperatorOffset: agency_b})
	builder.AddRoute(1, 0, graph.TransitRoute{RouteId: 3})
	store := builder.Build()
	tile, _ := store.GetTile(structs.MakeGraphId(1, 0, 0))

	dijkstras := NewDijkstras(graph.NewGraphReader(store), nil)

	first := dijkstras.get_operator_id(tile, 1)
	assert.Equal(t, uint32(1), first)
	// stable across lookups
	assert.Equal(t, first, dijkstras.get_operator_id(tile, 1))
	// a different operator gets the next id
	assert.Equal(t, uint32(2), dijkstras.get_operator_id(tile, 2))
	// routes without an operator map to zero
	assert.Equal(t, uint32(0), dijkstras.get_operator_id(tile, 3))
	assert.Equal(t, uint32(0), dijkstras.get_operator_id(tile, 99))
}
