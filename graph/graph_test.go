package graph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ttpr0/go-expansion/geo"
	"github.com/ttpr0/go-expansion/structs"
)

// builds a line graph a - b - c with b and c in a second tile
func build_test_store(t *testing.T) (*GraphStore, []structs.GraphId, []structs.GraphId) {
	builder := NewGraphBuilder()
	a := builder.AddNode(1, 0, geo.MakeCoord(7.00, 49.00))
	b := builder.AddNode(2, 0, geo.MakeCoord(7.01, 49.00))
	c := builder.AddNode(2, 0, geo.MakeCoord(7.02, 49.00))
	opts := EdgeOptions{
		Length:   800,
		Speed:    50,
		Use:      USE_ROAD,
		AccessAB: ACCESS_ALL,
		AccessBA: ACCESS_ALL,
	}
	ab, ba := builder.AddEdgePair(a, b, opts)
	bc, cb := builder.AddEdgePair(b, c, opts)
	store := builder.Build()
	edges := []structs.GraphId{builder.EdgeId(ab), builder.EdgeId(ba), builder.EdgeId(bc), builder.EdgeId(cb)}
	return store, []structs.GraphId{a, b, c}, edges
}

func TestBuilderLayout(t *testing.T) {
	store, nodes, edges := build_test_store(t)

	if store.TileCount() != 2 {
		t.Fatalf("store.TileCount() = %v; want 2", store.TileCount())
	}
	if store.NodeCount() != 3 {
		t.Errorf("store.NodeCount() = %v; want 3", store.NodeCount())
	}
	if store.EdgeCount() != 4 {
		t.Errorf("store.EdgeCount() = %v; want 4", store.EdgeCount())
	}

	reader := NewGraphReader(store)
	tile := reader.GetGraphTile(nodes[1])
	info := tile.GetNode(nodes[1])
	if info.EdgeCount != 2 {
		t.Errorf("node b EdgeCount = %v; want 2", info.EdgeCount)
	}
	out := tile.GetDirectedEdges(nodes[1])
	if len(out) != 2 {
		t.Fatalf("len(GetDirectedEdges(b)) = %v; want 2", len(out))
	}

	// edge a->b ends at b
	ab_tile := reader.GetGraphTile(edges[0])
	if ab_tile.GetDirectedEdge(edges[0]).EndNode != nodes[1] {
		t.Errorf("edge ab EndNode = %v; want %v", ab_tile.GetDirectedEdge(edges[0]).EndNode, nodes[1])
	}
}

func TestOpposingEdges(t *testing.T) {
	store, _, edges := build_test_store(t)
	reader := NewGraphReader(store)

	opp, ok := reader.GetOpposingEdgeId(edges[0])
	if !ok {
		t.Fatalf("GetOpposingEdgeId(ab) failed")
	}
	if opp != edges[1] {
		t.Errorf("opposing of ab = %v; want %v", opp, edges[1])
	}
	opp, ok = reader.GetOpposingEdgeId(edges[3])
	if !ok {
		t.Fatalf("GetOpposingEdgeId(cb) failed")
	}
	if opp != edges[2] {
		t.Errorf("opposing of cb = %v; want %v", opp, edges[2])
	}
}

func TestMissingTile(t *testing.T) {
	store, _, _ := build_test_store(t)
	reader := NewGraphReader(store)

	missing := structs.MakeGraphId(999, 0, 0)
	if tile := reader.GetGraphTile(missing); tile != nil {
		t.Errorf("GetGraphTile(missing) = %v; want nil", tile)
	}
	if tile := reader.GetGraphTile(structs.INVALID_GRAPHID); tile != nil {
		t.Errorf("GetGraphTile(invalid) = %v; want nil", tile)
	}
}

func TestTransitions(t *testing.T) {
	builder := NewGraphBuilder()
	local := builder.AddNode(1, 0, geo.MakeCoord(7.0, 49.0))
	highway := builder.AddNode(1, 1, geo.MakeCoord(7.0, 49.0))
	other := builder.AddNode(1, 0, geo.MakeCoord(7.01, 49.0))
	builder.AddEdgePair(local, other, EdgeOptions{Length: 100, AccessAB: ACCESS_ALL, AccessBA: ACCESS_ALL})
	builder.AddTransition(local, highway)
	builder.AddTransition(highway, local)
	store := builder.Build()

	reader := NewGraphReader(store)
	tile := reader.GetGraphTile(local)
	info := tile.GetNode(local)
	if info.TransitionCount != 1 {
		t.Fatalf("TransitionCount = %v; want 1", info.TransitionCount)
	}
	trans := tile.GetNodeTransitions(info)
	if trans[0].EndNode != highway {
		t.Errorf("transition target = %v; want %v", trans[0].EndNode, highway)
	}
}

func TestNextDeparture(t *testing.T) {
	builder := NewGraphBuilder()
	builder.AddNode(1, 0, geo.MakeCoord(7.0, 49.0))
	builder.AddDeparture(1, 0, TransitDeparture{LineId: 7, TripId: 1, DepartureTime: 3600, TravelTime: 600, DaysOfWeek: 0x7F})
	builder.AddDeparture(1, 0, TransitDeparture{LineId: 7, TripId: 2, DepartureTime: 1800, TravelTime: 600, DaysOfWeek: 0x02})
	store := builder.Build()
	tile, _ := store.GetTile(structs.MakeGraphId(1, 0, 0))

	// earliest valid departure after 1000s on a monday
	dep, ok := tile.GetNextDeparture(7, 1000, 0, 0x02, false, false, false)
	if !ok || dep.TripId != 2 {
		t.Errorf("GetNextDeparture = %v %v; want trip 2", dep, ok)
	}
	// sunday only matches the all-week trip
	dep, ok = tile.GetNextDeparture(7, 1000, 0, 0x01, false, false, false)
	if !ok || dep.TripId != 1 {
		t.Errorf("GetNextDeparture = %v %v; want trip 1", dep, ok)
	}
	// no departures left in the day
	_, ok = tile.GetNextDeparture(7, 4000, 0, 0x7F, false, false, false)
	if ok {
		t.Errorf("GetNextDeparture after end of day should fail")
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store, nodes, edges := build_test_store(t)

	file := filepath.Join(t.TempDir(), "graph.bin")
	Store(store, file)
	loaded := Load(file)
	defer os.Remove(file)

	if loaded.TileCount() != store.TileCount() {
		t.Fatalf("loaded.TileCount() = %v; want %v", loaded.TileCount(), store.TileCount())
	}
	if loaded.NodeCount() != store.NodeCount() || loaded.EdgeCount() != store.EdgeCount() {
		t.Errorf("loaded counts = %v/%v; want %v/%v", loaded.NodeCount(), loaded.EdgeCount(), store.NodeCount(), store.EdgeCount())
	}
	reader := NewGraphReader(loaded)
	tile := reader.GetGraphTile(edges[0])
	if tile.GetDirectedEdge(edges[0]).EndNode != nodes[1] {
		t.Errorf("loaded edge ab EndNode = %v; want %v", tile.GetDirectedEdge(edges[0]).EndNode, nodes[1])
	}
	opp, ok := reader.GetOpposingEdgeId(edges[2])
	if !ok || opp != edges[3] {
		t.Errorf("loaded opposing of bc = %v %v; want %v", opp, ok, edges[3])
	}
}

func TestSnapIndex(t *testing.T) {
	store, _, edges := build_test_store(t)
	index := BuildSnapIndex(store)

	// point next to the middle of edge a-b
	location := index.Snap(geo.MakeCoord(7.005, 49.0001), 200, 4)
	if location.PathEdges.Length() == 0 {
		t.Fatalf("Snap found no candidates")
	}
	found_ab := false
	for _, pe := range location.PathEdges {
		if pe.EdgeId == edges[0] {
			found_ab = true
			if pe.PercentAlong < 0.4 || pe.PercentAlong > 0.6 {
				t.Errorf("PercentAlong = %v; want ~0.5", pe.PercentAlong)
			}
			if pe.BeginNode || pe.EndNode {
				t.Errorf("mid-edge snap flagged as node: %+v", pe)
			}
		}
	}
	if !found_ab {
		t.Errorf("Snap did not return edge ab")
	}

	// far away point finds nothing
	location = index.Snap(geo.MakeCoord(8.0, 50.0), 100, 4)
	if location.PathEdges.Length() != 0 {
		t.Errorf("Snap far away = %v candidates; want 0", location.PathEdges.Length())
	}
}
