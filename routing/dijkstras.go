package routing

import (
	"golang.org/x/exp/slog"

	"github.com/ttpr0/go-expansion/costing"
	"github.com/ttpr0/go-expansion/datetime"
	"github.com/ttpr0/go-expansion/graph"
	"github.com/ttpr0/go-expansion/structs"
	. "github.com/ttpr0/go-expansion/util"
)

//*******************************************
// expansion engine
//*******************************************

// Dijkstras is a label-setting traversal over the tiled graph. It is
// steered by an expansion policy and scores edges through the costing
// collaborator. One instance drives one traversal at a time; Clear
// resets it for reuse.
//
// Not thread safe, use one instance per thread.
type Dijkstras struct {
	policy IExpansionPolicy
	reader *graph.GraphReader

	bdedgelabels  List[costing.BDEdgeLabel]
	mmedgelabels  List[costing.MMEdgeLabel]
	adjacencylist *DoubleBucketQueue
	edgestatus    EdgeStatus

	mode        costing.TravelMode
	access_mode graph.Access
	costing_    costing.DynamicCost

	has_date_time  bool
	start_tz_index int16

	// multimodal state
	start_time_sod        int32
	origin_date_time      string
	max_transfer_distance uint32
	date_set              bool
	date_before_tile      bool
	date                  int32
	day                   uint32
	dow                   uint8
	operators             Dict[string, uint32]
	processed_tiles       Dict[int32, bool]
}

func NewDijkstras(reader *graph.GraphReader, policy IExpansionPolicy) *Dijkstras {
	if policy == nil {
		policy = &DefaultPolicy{}
	}
	return &Dijkstras{
		policy:          policy,
		reader:          reader,
		edgestatus:      NewEdgeStatus(),
		operators:       NewDict[string, uint32](10),
		processed_tiles: NewDict[int32, bool](10),
	}
}

// Clears the state generated during a traversal. Mandatory between
// reuses of the same instance.
func (self *Dijkstras) Clear() {
	self.bdedgelabels = nil
	self.mmedgelabels = nil
	self.adjacencylist = nil
	self.edgestatus.Clear()
	self.has_date_time = false
	self.start_tz_index = 0
}

// Labels written by Compute and ComputeReverse.
func (self *Dijkstras) BDEdgeLabels() List[costing.BDEdgeLabel] {
	return self.bdedgelabels
}

// Labels written by ComputeMultiModal.
func (self *Dijkstras) MMEdgeLabels() List[costing.MMEdgeLabel] {
	return self.mmedgelabels
}

func (self *Dijkstras) EdgeStatusOf(edge structs.GraphId) EdgeStatusInfo {
	return self.edgestatus.Get(edge)
}

// Allocates the bucket queue and reserves the bidirectional label
// store from the policy hints.
func (self *Dijkstras) init_bd(bucket_size float32) {
	bucket_count, reservation := self.policy.GetExpansionHints()
	self.bdedgelabels = NewList[costing.BDEdgeLabel](int(reservation))
	key := func(index uint32) float32 { return self.bdedgelabels[index].SortCost }
	self.adjacencylist = NewDoubleBucketQueue(0.0, float32(bucket_count)*bucket_size, bucket_size, key)
}

func (self *Dijkstras) init_mm(bucket_size float32) {
	bucket_count, reservation := self.policy.GetExpansionHints()
	self.mmedgelabels = NewList[costing.MMEdgeLabel](int(reservation))
	key := func(index uint32) float32 { return self.mmedgelabels[index].SortCost }
	self.adjacencylist = NewDoubleBucketQueue(0.0, float32(bucket_count)*bucket_size, bucket_size, key)
}

//*******************************************
// time handling
//*******************************************

// Initializes the time of the expansion if the first location carries
// a date-time. Returns the start time (seconds from epoch) and the
// start seconds-of-week. Rewrites every location date-time into the
// local timezone at one of its snapped edges.
func (self *Dijkstras) SetTime(locations []*graph.Location, node structs.GraphId) (int64, int32) {
	self.has_date_time = false
	if len(locations) == 0 || !locations[0].HasDateTime() || !node.IsValid() {
		return 0, 0
	}

	// timezone at the seed end node
	self.start_tz_index = self.reader.GetTimezone(node)
	if self.start_tz_index == 0 {
		slog.Error("Could not get the timezone at the destination location")
	}

	date_time := locations[0].DateTime
	start_time := datetime.SecondsSinceEpoch(date_time, datetime.FromIndex(self.start_tz_index))
	start_seconds_of_week := datetime.DayOfWeek(date_time)*structs.SECONDS_PER_DAY + datetime.SecondsFromMidnight(date_time)
	self.has_date_time = true

	// rewrite location date-times in their local timezones
	for _, location := range locations {
		if !location.HasDateTime() {
			continue
		}
		for _, path_edge := range location.PathEdges {
			tile := self.reader.GetGraphTile(path_edge.EdgeId)
			if tile == nil {
				continue
			}
			node_id := tile.GetDirectedEdge(path_edge.EdgeId).EndNode
			node_tile := self.reader.GetGraphTile(node_id)
			if node_tile == nil {
				continue
			}
			tz := datetime.FromIndex(node_tile.GetNode(node_id).Timezone)
			if location.DateTime == "current" {
				location.DateTime = datetime.CurrentISODateTime(tz)
			} else {
				location.DateTime = datetime.SecondsToDate(datetime.SecondsSinceEpoch(location.DateTime, tz), tz)
			}
			break
		}
	}

	return start_time, start_seconds_of_week
}

//*******************************************
// forward traversal
//*******************************************

// Compute runs the forward traversal from a set of origin locations.
func (self *Dijkstras) Compute(locations []*graph.Location, mode costing.TravelMode, mode_costing [costing.MAX_TRAVEL_MODE]costing.DynamicCost) {
	self.mode = mode
	self.costing_ = mode_costing[mode]
	self.access_mode = self.costing_.AccessMode()

	self.init_bd(self.costing_.UnitSize())
	self.set_origin_locations(locations, self.costing_)

	var node_id structs.GraphId = structs.INVALID_GRAPHID
	if self.bdedgelabels.Length() > 0 {
		node_id = self.bdedgelabels[0].EndNode
	}
	start_time, start_seconds_of_week := self.SetTime(locations, node_id)

	for {
		// an invalid label index means there is nothing left to expand
		predindex := self.adjacencylist.Pop()
		if predindex == structs.INVALID_LABEL {
			break
		}

		// copy the label before expansion; appends may relocate the store
		pred := self.bdedgelabels[predindex]
		self.edgestatus.Update(pred.EdgeId, PERMANENT)

		localtime := start_time + int64(pred.Cost.Secs)
		seconds_of_week := datetime.NormalizeSecondsOfWeek(start_seconds_of_week + int32(pred.Cost.Secs))

		decision := self.policy.ShouldExpand(&pred.EdgeLabel, ROUTING_FORWARD)
		if decision == STOP_EXPANSION {
			break
		}
		if decision == PRUNE_EXPANSION {
			continue
		}
		self.expand_forward(pred.EndNode, pred, predindex, false, localtime, seconds_of_week)
	}
}

func (self *Dijkstras) expand_forward(node structs.GraphId, pred costing.BDEdgeLabel, pred_idx uint32, from_transition bool, localtime int64, seconds_of_week int32) {
	// tiles can be missing with regional datasets
	tile := self.reader.GetGraphTile(node)
	if tile == nil {
		return
	}
	nodeinfo := tile.GetNode(node)

	if !from_transition {
		var prev_pred *costing.EdgeLabel
		if pred.Predecessor != structs.INVALID_LABEL {
			prev_pred = &self.bdedgelabels[pred.Predecessor].EdgeLabel
		}
		self.policy.ExpandingNode(&pred.EdgeLabel, prev_pred, tile.GetNodeLL(node))
	}

	if !self.costing_.AllowedNode(nodeinfo) {
		return
	}

	// rebase wall time if the timezone changes along the way
	if nodeinfo.Timezone != self.start_tz_index && self.has_date_time {
		tz_diff := datetime.TimezoneDiff(localtime, datetime.FromIndex(self.start_tz_index), datetime.FromIndex(nodeinfo.Timezone))
		localtime += int64(tz_diff)
		seconds_of_week = datetime.NormalizeSecondsOfWeek(seconds_of_week + tz_diff)
	}

	edgeid := structs.MakeGraphId(node.TileId(), node.Level(), nodeinfo.EdgeIndex)
	for i := int16(0); i < nodeinfo.EdgeCount; i, edgeid = i+1, edgeid.Offset(1) {
		directededge := tile.GetDirectedEdge(edgeid)
		es := self.edgestatus.GetOrCreate(edgeid, tile)

		// shortcuts are never taken; settled edges are done
		if directededge.IsShortcut() || es.Set == PERMANENT || directededge.ForwardAccess&self.access_mode == 0 {
			continue
		}

		has_time_restrictions := false
		if self.has_date_time {
			if !self.costing_.Allowed(directededge, &pred.EdgeLabel, tile, edgeid, localtime, nodeinfo.Timezone, &has_time_restrictions) ||
				self.costing_.Restricted(directededge, &pred.EdgeLabel, self.bdedgelabels, tile, edgeid, true, localtime, nodeinfo.Timezone) {
				continue
			}
		} else {
			if !self.costing_.Allowed(directededge, &pred.EdgeLabel, tile, edgeid, 0, 0, &has_time_restrictions) ||
				self.costing_.Restricted(directededge, &pred.EdgeLabel, self.bdedgelabels, tile, edgeid, true, 0, 0) {
				continue
			}
		}

		sow := structs.CONSTRAINED_FLOW_SECOND_OF_DAY
		if self.has_date_time {
			sow = seconds_of_week
		}
		transition_cost := self.costing_.TransitionCost(directededge, nodeinfo, &pred.EdgeLabel)
		newcost := pred.Cost.Add(self.costing_.EdgeCost(directededge, tile, sow)).Add(transition_cost)

		// relax a temporary label; the sort cost is decremented by the
		// real-cost difference to preserve any heuristic term
		if es.Set == TEMPORARY {
			lab := &self.bdedgelabels[es.Index]
			if newcost.Cost < lab.Cost.Cost {
				newsortcost := lab.SortCost - (lab.Cost.Cost - newcost.Cost)
				self.adjacencylist.Decrease(es.Index, newsortcost)
				lab.Update(pred_idx, newcost, newsortcost, transition_cost, has_time_restrictions)
			}
			continue
		}

		// only needed to connect with a reverse path
		oppedgeid, _ := self.reader.GetOpposingEdgeId(edgeid)

		idx := uint32(self.bdedgelabels.Length())
		es.Set = TEMPORARY
		es.Index = idx
		self.bdedgelabels.Add(costing.MakeBDEdgeLabel(pred_idx, edgeid, oppedgeid, directededge, newcost, newcost.Cost, self.mode, transition_cost, has_time_restrictions))
		self.adjacencylist.Add(idx)
	}

	// expand the edges leaving the counterpart nodes on other levels
	if !from_transition && nodeinfo.TransitionCount > 0 {
		transitions := tile.GetNodeTransitions(nodeinfo)
		for i := range transitions {
			self.expand_forward(transitions[i].EndNode, pred, pred_idx, true, localtime, seconds_of_week)
		}
	}
}

//*******************************************
// reverse traversal
//*******************************************

// ComputeReverse runs the reverse traversal from a set of destination
// locations.
func (self *Dijkstras) ComputeReverse(locations []*graph.Location, mode costing.TravelMode, mode_costing [costing.MAX_TRAVEL_MODE]costing.DynamicCost) {
	self.mode = mode
	self.costing_ = mode_costing[mode]
	self.access_mode = self.costing_.AccessMode()

	self.init_bd(self.costing_.UnitSize())
	self.set_destination_locations(locations, self.costing_)

	var node_id structs.GraphId = structs.INVALID_GRAPHID
	if self.bdedgelabels.Length() > 0 {
		node_id = self.bdedgelabels[0].EndNode
	}
	start_time, start_seconds_of_week := self.SetTime(locations, node_id)

	for {
		predindex := self.adjacencylist.Pop()
		if predindex == structs.INVALID_LABEL {
			break
		}

		// copy the label before expansion; appends may relocate the store
		pred := self.bdedgelabels[predindex]
		self.edgestatus.Update(pred.EdgeId, PERMANENT)

		// opposing predecessor edge, correct across transitions
		opp_tile := self.reader.GetGraphTile(pred.OppEdgeId)
		if opp_tile == nil {
			continue
		}
		opp_pred_edge := opp_tile.GetDirectedEdge(pred.OppEdgeId)

		localtime := start_time + int64(pred.Cost.Secs)
		seconds_of_week := datetime.NormalizeSecondsOfWeek(start_seconds_of_week - int32(pred.Cost.Secs))

		decision := self.policy.ShouldExpand(&pred.EdgeLabel, ROUTING_FORWARD)
		if decision == STOP_EXPANSION {
			break
		}
		if decision == PRUNE_EXPANSION {
			continue
		}
		self.expand_reverse(pred.EndNode, pred, predindex, opp_pred_edge, false, localtime, seconds_of_week)
	}
}

func (self *Dijkstras) expand_reverse(node structs.GraphId, pred costing.BDEdgeLabel, pred_idx uint32, opp_pred_edge *graph.DirectedEdge, from_transition bool, localtime int64, seconds_of_week int32) {
	tile := self.reader.GetGraphTile(node)
	if tile == nil {
		return
	}
	nodeinfo := tile.GetNode(node)

	if !from_transition {
		var prev_pred *costing.EdgeLabel
		if pred.Predecessor != structs.INVALID_LABEL {
			prev_pred = &self.bdedgelabels[pred.Predecessor].EdgeLabel
		}
		self.policy.ExpandingNode(&pred.EdgeLabel, prev_pred, tile.GetNodeLL(node))
	}

	if !self.costing_.AllowedNode(nodeinfo) {
		return
	}

	if nodeinfo.Timezone != self.start_tz_index && self.has_date_time {
		tz_diff := datetime.TimezoneDiff(localtime, datetime.FromIndex(self.start_tz_index), datetime.FromIndex(nodeinfo.Timezone))
		localtime += int64(tz_diff)
		seconds_of_week = datetime.NormalizeSecondsOfWeek(seconds_of_week + tz_diff)
	}

	edgeid := structs.MakeGraphId(node.TileId(), node.Level(), nodeinfo.EdgeIndex)
	for i := int16(0); i < nodeinfo.EdgeCount; i, edgeid = i+1, edgeid.Offset(1) {
		directededge := tile.GetDirectedEdge(edgeid)
		es := self.edgestatus.GetOrCreate(edgeid, tile)

		if directededge.ReverseAccess&self.access_mode == 0 || directededge.IsShortcut() || es.Set == PERMANENT {
			continue
		}

		// the reverse expansion is scored on the opposing edge
		opp_edge_id, ok := self.reader.GetOpposingEdgeId(edgeid)
		if !ok {
			continue
		}
		opp_tile := self.reader.GetGraphTile(opp_edge_id)
		if opp_tile == nil {
			continue
		}
		opp_edge := opp_tile.GetDirectedEdge(opp_edge_id)

		has_time_restrictions := false
		if self.has_date_time {
			if !self.costing_.AllowedReverse(directededge, &pred.EdgeLabel, opp_edge, opp_tile, opp_edge_id, localtime, nodeinfo.Timezone, &has_time_restrictions) ||
				self.costing_.Restricted(directededge, &pred.EdgeLabel, self.bdedgelabels, tile, edgeid, false, localtime, nodeinfo.Timezone) {
				continue
			}
		} else {
			if !self.costing_.AllowedReverse(directededge, &pred.EdgeLabel, opp_edge, opp_tile, opp_edge_id, 0, 0, &has_time_restrictions) ||
				self.costing_.Restricted(directededge, &pred.EdgeLabel, self.bdedgelabels, tile, edgeid, false, 0, 0) {
				continue
			}
		}

		sow := structs.CONSTRAINED_FLOW_SECOND_OF_DAY
		if self.has_date_time {
			sow = seconds_of_week
		}
		transition_cost := self.costing_.TransitionCostReverse(directededge.LocalEdgeIdx, nodeinfo, opp_edge, opp_pred_edge)
		newcost := pred.Cost.Add(self.costing_.EdgeCost(opp_edge, opp_tile, sow))
		newcost.Cost += transition_cost.Cost

		if es.Set == TEMPORARY {
			lab := &self.bdedgelabels[es.Index]
			if newcost.Cost < lab.Cost.Cost {
				newsortcost := lab.SortCost - (lab.Cost.Cost - newcost.Cost)
				self.adjacencylist.Decrease(es.Index, newsortcost)
				lab.Update(pred_idx, newcost, newsortcost, transition_cost, has_time_restrictions)
			}
			continue
		}

		idx := uint32(self.bdedgelabels.Length())
		es.Set = TEMPORARY
		es.Index = idx
		self.bdedgelabels.Add(costing.MakeBDEdgeLabel(pred_idx, edgeid, opp_edge_id, directededge, newcost, newcost.Cost, self.mode, transition_cost, has_time_restrictions))
		self.adjacencylist.Add(idx)
	}

	if !from_transition && nodeinfo.TransitionCount > 0 {
		transitions := tile.GetNodeTransitions(nodeinfo)
		for i := range transitions {
			self.expand_reverse(transitions[i].EndNode, pred, pred_idx, opp_pred_edge, true, localtime, seconds_of_week)
		}
	}
}

//*******************************************
// seeding
//*******************************************

// Adds the snapped edges of each origin location to the adjacency
// list.
func (self *Dijkstras) set_origin_locations(locations []*graph.Location, tc costing.DynamicCost) {
	for _, location := range locations {
		// only skip inbound edges if there are other candidates
		has_other_edges := false
		for _, path_edge := range location.PathEdges {
			has_other_edges = has_other_edges || !path_edge.EndNode
		}

		for _, path_edge := range location.PathEdges {
			// an origin at a node contributes no inbound stub
			if has_other_edges && path_edge.EndNode {
				continue
			}

			edgeid := path_edge.EdgeId
			if self.costing_.AvoidAsOriginEdge(edgeid, path_edge.PercentAlong) {
				continue
			}

			tile := self.reader.GetGraphTile(edgeid)
			if tile == nil {
				continue
			}
			directededge := tile.GetDirectedEdge(edgeid)

			opp_edge_id, ok := self.reader.GetOpposingEdgeId(edgeid)
			if !ok {
				continue
			}

			cost := tc.EdgeCost(directededge, tile, structs.CONSTRAINED_FLOW_SECOND_OF_DAY).Mul(1.0 - path_edge.PercentAlong)
			// penalize the snap distance with a slow-walk equivalence
			cost.Cost += path_edge.Distance * structs.SNAP_SCORE_FACTOR

			idx := uint32(self.bdedgelabels.Length())
			label := costing.MakeBDEdgeLabel(structs.INVALID_LABEL, edgeid, opp_edge_id, directededge, cost, cost.Cost, self.mode, structs.Cost{}, false)
			label.SetOrigin()
			self.bdedgelabels.Add(label)
			self.adjacencylist.Add(idx)
			self.edgestatus.Set(edgeid, TEMPORARY, idx, tile)
		}
	}
}

// Adds the snapped edges of each destination location to the adjacency
// list. The label is registered under the opposing edge so that the
// expansion proceeds off its end node against the edge directions.
func (self *Dijkstras) set_destination_locations(locations []*graph.Location, tc costing.DynamicCost) {
	for _, location := range locations {
		// only skip outbound edges if there are other candidates
		has_other_edges := false
		for _, path_edge := range location.PathEdges {
			has_other_edges = has_other_edges || !path_edge.BeginNode
		}

		for _, path_edge := range location.PathEdges {
			// a destination at a node contributes no outbound stub
			if has_other_edges && path_edge.BeginNode {
				continue
			}

			edgeid := path_edge.EdgeId
			if self.costing_.AvoidAsDestinationEdge(edgeid, path_edge.PercentAlong) {
				continue
			}

			tile := self.reader.GetGraphTile(edgeid)
			if tile == nil {
				continue
			}
			directededge := tile.GetDirectedEdge(edgeid)

			opp_edge_id, ok := self.reader.GetOpposingEdgeId(edgeid)
			if !ok {
				continue
			}
			opp_tile := self.reader.GetGraphTile(opp_edge_id)
			if opp_tile == nil {
				continue
			}
			opp_dir_edge := opp_tile.GetDirectedEdge(opp_edge_id)

			cost := tc.EdgeCost(directededge, tile, structs.CONSTRAINED_FLOW_SECOND_OF_DAY).Mul(path_edge.PercentAlong)
			cost.Cost += path_edge.Distance * structs.SNAP_SCORE_FACTOR

			idx := uint32(self.bdedgelabels.Length())
			self.bdedgelabels.Add(costing.MakeBDEdgeLabel(structs.INVALID_LABEL, opp_edge_id, edgeid, opp_dir_edge, cost, cost.Cost, self.mode, structs.Cost{}, false))
			self.adjacencylist.Add(idx)
			self.edgestatus.Set(opp_edge_id, TEMPORARY, idx, opp_tile)
		}
	}
}
