package reach

import (
	"github.com/ttpr0/go-expansion/costing"
	"github.com/ttpr0/go-expansion/geo"
	"github.com/ttpr0/go-expansion/graph"
	"github.com/ttpr0/go-expansion/routing"
	"github.com/ttpr0/go-expansion/structs"
	. "github.com/ttpr0/go-expansion/util"
)

//*******************************************
// reach
//*******************************************

// direction bitmask
const (
	OUTBOUND uint8 = 1
	INBOUND  uint8 = 2
)

// DirectedReach counts the unique nodes reachable leaving an edge
// (outbound) and able to reach it (inbound), capped at the requested
// bound. Used to rank ambiguous snap candidates.
type DirectedReach struct {
	Outbound uint32 `json:"outbound"`
	Inbound  uint32 `json:"inbound"`
}

//*******************************************
// simple reach (topology only)
//*******************************************

// SimpleReach estimates reach by plain breadth-first expansion over
// the topology, ignoring costs and one-shot restrictions.
//
// Queued nodes are inserted together with their cross-level
// transition targets; the transitions counter keeps the progress
// measure counting physical junctions instead of per-level records.
func SimpleReach(edgeid structs.GraphId, max_reach uint32, reader *graph.GraphReader, tc costing.DynamicCost, direction uint8) DirectedReach {
	reach := DirectedReach{}
	if max_reach == 0 {
		return reach
	}

	node_filter := costing.PassThroughNodeFilter
	edge_filter := costing.PassThroughEdgeFilter
	if tc != nil {
		node_filter = tc.GetNodeFilter()
		edge_filter = tc.GetEdgeFilter()
	}

	tile := reader.GetGraphTile(edgeid)
	if tile == nil {
		return reach
	}
	edge := tile.GetDirectedEdge(edgeid)

	queue := NewDict[structs.GraphId, bool](int(max_reach))
	done := NewDict[structs.GraphId, bool](int(max_reach))
	transitions := 0

	enqueue := func(node_id structs.GraphId) {
		// skip settled or invalid nodes
		if !node_id.IsValid() || done.ContainsKey(node_id) {
			return
		}
		node_tile := reader.GetGraphTile(node_id)
		if node_tile == nil {
			return
		}
		node := node_tile.GetNode(node_id)
		if node_filter(node) {
			return
		}
		queue[node_id] = true
		// duplicates on the other levels count once via the counter
		for _, transition := range node_tile.GetNodeTransitions(node) {
			queue[transition.EndNode] = true
		}
		transitions += int(node.TransitionCount)
	}

	pop := func() structs.GraphId {
		for node_id := range queue {
			queue.Delete(node_id)
			done[node_id] = true
			return node_id
		}
		return structs.INVALID_GRAPHID
	}

	progress := func() int {
		return queue.Length() + done.Length() - transitions
	}

	// outbound: forward expansion from the edge's end node
	if direction&OUTBOUND != 0 && edge_filter(edge) > 0 {
		enqueue(edge.EndNode)
	}
	for direction&OUTBOUND != 0 && progress() < int(max_reach) && queue.Length() > 0 {
		node_id := pop()
		node_tile := reader.GetGraphTile(node_id)
		if node_tile == nil {
			continue
		}
		edges := node_tile.GetDirectedEdges(node_id)
		for i := range edges {
			if edge_filter(&edges[i]) > 0 {
				enqueue(edges[i].EndNode)
			}
		}
	}
	reach.Outbound = clamp_reach(progress(), max_reach)

	// inbound: reverse expansion over the opposing edges
	queue = NewDict[structs.GraphId, bool](int(max_reach))
	done = NewDict[structs.GraphId, bool](int(max_reach))
	transitions = 0
	if direction&INBOUND != 0 && edge_filter(edge) > 0 {
		if begin, ok := begin_node(reader, edge); ok {
			enqueue(begin)
		}
	}
	for direction&INBOUND != 0 && progress() < int(max_reach) && queue.Length() > 0 {
		node_id := pop()
		node_tile := reader.GetGraphTile(node_id)
		if node_tile == nil {
			continue
		}
		edges := node_tile.GetDirectedEdges(node_id)
		for i := range edges {
			e := &edges[i]
			end_tile := reader.GetGraphTile(e.EndNode)
			if end_tile == nil {
				continue
			}
			end_node := end_tile.GetNode(e.EndNode)
			opp_edge := end_tile.GetDirectedEdgeByIndex(end_node.EdgeIndex + e.OppIndex)
			// NOTE: enqueues the edge's end node rather than the opposing
			// edge's begin node; kept as the established behavior
			if edge_filter(opp_edge) > 0 {
				enqueue(e.EndNode)
			}
		}
	}
	reach.Inbound = clamp_reach(progress(), max_reach)

	return reach
}

func clamp_reach(progress int, max_reach uint32) uint32 {
	if progress < 0 {
		return 0
	}
	if uint32(progress) > max_reach {
		return max_reach
	}
	return uint32(progress)
}

// begin node of an edge is the end node of its opposing edge
func begin_node(reader *graph.GraphReader, edge *graph.DirectedEdge) (structs.GraphId, bool) {
	tile := reader.GetGraphTile(edge.EndNode)
	if tile == nil {
		return structs.INVALID_GRAPHID, false
	}
	node := tile.GetNode(edge.EndNode)
	opp_edge := tile.GetDirectedEdgeByIndex(node.EdgeIndex + edge.OppIndex)
	return opp_edge.EndNode, true
}

//*******************************************
// cost-aware reach
//*******************************************

// Reach runs the expansion engine forward and reverse from a seed
// edge, pruning once the label count hits the bound. It is its own
// expansion policy.
type Reach struct {
	dijkstras *routing.Dijkstras
	reader    *graph.GraphReader
	max_reach uint32
}

func NewReach(reader *graph.GraphReader) *Reach {
	reach := &Reach{
		reader: reader,
	}
	reach.dijkstras = routing.NewDijkstras(reader, reach)
	return reach
}

func (self *Reach) ExpandingNode(pred *costing.EdgeLabel, prev_pred *costing.EdgeLabel, node_ll geo.Coord) {
}

// Advises pruning once enough labels exist to answer the query.
func (self *Reach) ShouldExpand(pred *costing.EdgeLabel, typ routing.RoutingType) routing.ExpansionRecommendation {
	if uint32(self.dijkstras.BDEdgeLabels().Length()) < self.max_reach {
		return routing.CONTINUE_EXPANSION
	}
	return routing.PRUNE_EXPANSION
}

func (self *Reach) GetExpansionHints() (int32, int32) {
	return int32(self.max_reach) * 2, int32(self.max_reach) * 2
}

func (self *Reach) Clear() {
	self.dijkstras.Clear()
}

// Computes cost-aware reach for a seed edge in the requested
// directions.
func (self *Reach) Compute(edgeid structs.GraphId, max_reach uint32, tc costing.DynamicCost, direction uint8) DirectedReach {
	reach := DirectedReach{}
	if max_reach == 0 {
		return reach
	}
	self.max_reach = max_reach

	// mock up a location at the edge's end node
	node, ok := self.reader.GetEndNode(edgeid)
	if !ok {
		return reach
	}
	location := &graph.Location{
		LL: node.Loc,
		PathEdges: List[graph.PathEdge]{{
			EdgeId:       edgeid,
			LL:           node.Loc,
			Distance:     0,
			PercentAlong: 0,
			BeginNode:    false,
			EndNode:      false,
		}},
	}
	locations := []*graph.Location{location}

	var mode_costing [costing.MAX_TRAVEL_MODE]costing.DynamicCost
	mode_costing[tc.TravelMode()] = tc

	if direction&OUTBOUND != 0 {
		self.Clear()
		self.dijkstras.Compute(locations, tc.TravelMode(), mode_costing)
		reach.Outbound = clamp_reach(self.dijkstras.BDEdgeLabels().Length(), max_reach)
		self.Clear()
	}

	if direction&INBOUND != 0 {
		self.dijkstras.ComputeReverse(locations, tc.TravelMode(), mode_costing)
		reach.Inbound = clamp_reach(self.dijkstras.BDEdgeLabels().Length(), max_reach)
		self.Clear()
	}

	return reach
}
