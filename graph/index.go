package graph

import (
	"sort"

	"github.com/tidwall/rtree"

	"github.com/ttpr0/go-expansion/geo"
	"github.com/ttpr0/go-expansion/structs"
	. "github.com/ttpr0/go-expansion/util"
)

//*******************************************
// snap index
//*******************************************

// SnapIndex matches raw input coordinates to candidate path-edges
// using an r-tree over edge segments.
type SnapIndex struct {
	tree  rtree.RTreeG[structs.GraphId]
	store *GraphStore
}

func BuildSnapIndex(store *GraphStore) *SnapIndex {
	index := &SnapIndex{
		store: store,
	}
	reader := NewGraphReader(store)
	for _, tile_id := range store.TileIds() {
		tile, _ := store.GetTile(tile_id)
		for i := 0; i < tile.NodeCount(); i++ {
			node_id := structs.MakeGraphId(tile_id.TileId(), tile_id.Level(), int32(i))
			info := tile.GetNode(node_id)
			edge_id := structs.MakeGraphId(tile_id.TileId(), tile_id.Level(), info.EdgeIndex)
			for e := int16(0); e < info.EdgeCount; e++ {
				edge := tile.GetDirectedEdge(edge_id)
				if edge.IsShortcut() || edge.Use != USE_ROAD {
					edge_id = edge_id.Offset(1)
					continue
				}
				endtile := reader.GetGraphTile(edge.EndNode)
				if endtile == nil {
					edge_id = edge_id.Offset(1)
					continue
				}
				from := info.Loc
				to := endtile.GetNodeLL(edge.EndNode)
				min := [2]float64{minf(from[0], to[0]), minf(from[1], to[1])}
				max := [2]float64{maxf(from[0], to[0]), maxf(from[1], to[1])}
				index.tree.Insert(min, max, edge_id)
				edge_id = edge_id.Offset(1)
			}
		}
	}
	return index
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Snaps a point to the closest edges within radius (meters), keeping
// at most max_results candidates. Returns a location ready to be used
// as a traversal origin or destination.
func (self *SnapIndex) Snap(point geo.Coord, radius float64, max_results int) Location {
	bound := geo.BoundingBox(point, radius)
	reader := NewGraphReader(self.store)

	candidates := NewList[PathEdge](10)
	self.tree.Search([2]float64{bound.Min[0], bound.Min[1]}, [2]float64{bound.Max[0], bound.Max[1]}, func(min, max [2]float64, edge_id structs.GraphId) bool {
		tile := reader.GetGraphTile(edge_id)
		edge := tile.GetDirectedEdge(edge_id)
		begin, ok := begin_node_ll(reader, edge_id)
		if !ok {
			return true
		}
		endtile := reader.GetGraphTile(edge.EndNode)
		end := endtile.GetNodeLL(edge.EndNode)

		percent, closest := project_onto(point, begin, end)
		dist := geo.Dist(point, closest)
		if dist > radius {
			return true
		}
		candidates.Add(PathEdge{
			EdgeId:       edge_id,
			LL:           closest,
			Distance:     float32(dist),
			PercentAlong: percent,
			BeginNode:    percent == 0,
			EndNode:      percent == 1,
		})
		return true
	})

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Distance < candidates[j].Distance
	})
	if candidates.Length() > max_results {
		candidates = candidates[:max_results]
	}
	return Location{
		LL:        point,
		PathEdges: candidates,
	}
}

// begin node of an edge is the end node of its opposing edge
func begin_node_ll(reader *GraphReader, edge_id structs.GraphId) (geo.Coord, bool) {
	opp_id, ok := reader.GetOpposingEdgeId(edge_id)
	if !ok {
		return geo.Coord{}, false
	}
	opp_tile := reader.GetGraphTile(opp_id)
	opp := opp_tile.GetDirectedEdge(opp_id)
	begin_tile := reader.GetGraphTile(opp.EndNode)
	if begin_tile == nil {
		return geo.Coord{}, false
	}
	return begin_tile.GetNodeLL(opp.EndNode), true
}

// Projects a point onto the segment a-b; returns the clamped fraction
// along the segment and the closest point.
func project_onto(point, a, b geo.Coord) (float32, geo.Coord) {
	dx := b[0] - a[0]
	dy := b[1] - a[1]
	len2 := dx*dx + dy*dy
	if len2 == 0 {
		return 0, a
	}
	t := ((point[0]-a[0])*dx + (point[1]-a[1])*dy) / len2
	if t <= 0 {
		return 0, a
	}
	if t >= 1 {
		return 1, b
	}
	return float32(t), geo.Coord{a[0] + t*dx, a[1] + t*dy}
}
