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
// multimodal traversal
//*******************************************

// ComputeMultiModal runs the forward multimodal traversal (pedestrian
// plus scheduled public transit) from a set of origin locations. The
// origin must carry a date-time; without one only the origin seed labels
// are written and no expansion runs.
func (self *Dijkstras) ComputeMultiModal(locations []*graph.Location, mode costing.TravelMode, mode_costing [costing.MAX_TRAVEL_MODE]costing.DynamicCost) {
	// pedestrian costing connects the street network with the stops
	pc := mode_costing[costing.PEDESTRIAN]
	pc.SetAllowTransitConnections(true)
	pc.UseMaxMultiModalDistance()

	self.mode = mode
	self.costing_ = mode_costing[mode]
	tc := mode_costing[costing.PUBLIC_TRANSIT]

	self.max_transfer_distance = 99999

	self.init_mm(mode_costing[mode].UnitSize())
	self.set_origin_locations_multimodal(locations, mode_costing[mode])

	if len(locations) == 0 || !locations[0].HasDateTime() {
		slog.Error("No date time set on the origin location")
		return
	}

	self.date_set = false
	self.date_before_tile = false
	self.start_tz_index = 0
	if self.mmedgelabels.Length() > 0 {
		self.start_tz_index = self.reader.GetTimezone(self.mmedgelabels[0].EndNode)
	}
	if self.start_tz_index == 0 {
		slog.Error("Could not get the timezone at the origin location")
	}
	self.origin_date_time = locations[0].DateTime
	self.start_time_sod = datetime.SecondsFromMidnight(locations[0].DateTime)

	self.operators = NewDict[string, uint32](10)
	self.processed_tiles = NewDict[int32, bool](10)

	for {
		predindex := self.adjacencylist.Pop()
		if predindex == structs.INVALID_LABEL {
			break
		}

		// copy the label before expansion; appends may relocate the store
		pred := self.mmedgelabels[predindex]
		self.edgestatus.Update(pred.EdgeId, PERMANENT)

		decision := self.policy.ShouldExpand(&pred.EdgeLabel, ROUTING_MULTIMODAL)
		if decision == STOP_EXPANSION {
			break
		}
		if decision == PRUNE_EXPANSION {
			continue
		}
		self.expand_forward_multimodal(pred.EndNode, pred, predindex, false, pc, tc, mode_costing)
	}
}

func (self *Dijkstras) expand_forward_multimodal(node structs.GraphId, pred costing.MMEdgeLabel, pred_idx uint32, from_transition bool, pc, tc costing.DynamicCost, mode_costing [costing.MAX_TRAVEL_MODE]costing.DynamicCost) {
	tile := self.reader.GetGraphTile(node)
	if tile == nil {
		return
	}
	nodeinfo := tile.GetNode(node)

	if !from_transition {
		var prev_pred *costing.EdgeLabel
		if pred.Predecessor != structs.INVALID_LABEL {
			prev_pred = &self.mmedgelabels[pred.Predecessor].EdgeLabel
		}
		self.policy.ExpandingNode(&pred.EdgeLabel, prev_pred, tile.GetNodeLL(node))
	}

	if !mode_costing[self.mode].AllowedNode(nodeinfo) {
		return
	}

	// local wall time in seconds from midnight
	localtime := self.start_time_sod + int32(pred.Cost.Secs)
	if nodeinfo.Timezone != self.start_tz_index {
		localtime += datetime.TimezoneDiff(int64(localtime), datetime.FromIndex(self.start_tz_index), datetime.FromIndex(nodeinfo.Timezone))
	}

	// default transfer penalty applies unless trip or block continue
	transfer_cost := tc.DefaultTransferCost()

	self.mode = pred.Mode
	has_transit := pred.HasTransit
	prior_stop := pred.PriorStopId
	operator_id := pred.TransitOperator
	if nodeinfo.Type == graph.NODE_TRANSIT_PLATFORM {
		// transfer penalty when changing stations on foot
		if self.mode == costing.PEDESTRIAN && prior_stop.IsValid() && has_transit {
			transfer_cost = tc.TransferCost()
		}

		if !self.processed_tiles.ContainsKey(tile.Id().TileId()) {
			tc.AddToExcludeList(tile)
			self.processed_tiles[tile.Id().TileId()] = true
		}
		if tc.IsExcludedNode(tile, nodeinfo) {
			return
		}

		// boarding a stop on foot costs the transfer time up front
		if self.mode == costing.PEDESTRIAN {
			localtime += int32(transfer_cost.Secs)
		}

		prior_stop = node

		// the timetable day is fixed lazily at the first platform from
		// the origin date and the tile creation date
		if !self.date_set {
			self.date = datetime.DaysFromPivotDate(self.origin_date_time)
			self.dow = datetime.DayOfWeekMask(self.origin_date_time)
			date_created := tile.Header().DateCreated
			if self.date < date_created {
				self.date_before_tile = true
			} else {
				self.day = uint32(self.date - date_created)
			}
			self.date_set = true
		}
	}

	mode_change := false

	edgeid := structs.MakeGraphId(node.TileId(), node.Level(), nodeinfo.EdgeIndex)
	for i := int16(0); i < nodeinfo.EdgeCount; i, edgeid = i+1, edgeid.Offset(1) {
		directededge := tile.GetDirectedEdge(edgeid)
		es := self.edgestatus.GetOrCreate(edgeid, tile)

		if directededge.IsShortcut() || es.Set == PERMANENT {
			continue
		}

		newcost := pred.Cost
		walking_distance := pred.PathDistance

		tripid := int32(0)
		blockid := int32(0)
		has_time_restrictions := false
		if directededge.IsTransitLine() {
			if !tc.Allowed(directededge, &pred.EdgeLabel, tile, edgeid, 0, 0, &has_time_restrictions) {
				continue
			}
			if tc.IsExcludedEdge(tile, directededge) {
				continue
			}

			departure, ok := tile.GetNextDeparture(directededge.LineId, localtime, self.day, self.dow, self.date_before_tile, tc.Wheelchair(), tc.Bicycle())
			if !ok {
				// no departures left on this line
				continue
			}

			mode_change = self.mode == costing.PEDESTRIAN
			tripid = departure.TripId
			blockid = departure.BlockId
			has_transit = true

			if tripid == pred.TripId || (blockid != 0 && blockid == pred.BlockId) {
				// staying on the trip or block is free of charge
				operator_id = pred.TransitOperator
			} else {
				if pred.TripId > 0 {
					// in-station transfer from another transit edge: add a
					// small transfer time and retry the departure lookup if
					// the current one cannot be made
					if localtime+30 > departure.DepartureTime {
						departure, ok = tile.GetNextDeparture(directededge.LineId, localtime+30, self.day, self.dow, self.date_before_tile, tc.Wheelchair(), tc.Bicycle())
						if !ok {
							continue
						}
					}
				}

				operator_id = self.get_operator_id(tile, departure.RouteId)

				// transfer penalty, or the operator change penalty when
				// switching between operators
				if pred.TransitOperator > 0 && pred.TransitOperator != operator_id {
					newcost.Cost += tc.OperatorChangePenalty()
				} else {
					newcost.Cost += transfer_cost.Cost
				}
			}

			self.mode = costing.PUBLIC_TRANSIT
			newcost = newcost.Add(tc.EdgeCostDeparture(directededge, departure, localtime))
		} else {
			// disembark and continue on foot
			if self.mode == costing.PUBLIC_TRANSIT {
				self.mode = costing.PEDESTRIAN
				walking_distance = 0
				mode_change = true
			}

			if !mode_costing[self.mode].Allowed(directededge, &pred.EdgeLabel, tile, edgeid, 0, 0, &has_time_restrictions) {
				continue
			}

			c := mode_costing[self.mode].EdgeCost(directededge, tile, structs.CONSTRAINED_FLOW_SECOND_OF_DAY)
			c.Cost *= mode_costing[self.mode].GetModeFactor()
			newcost = newcost.Add(c)

			if self.mode == costing.PEDESTRIAN {
				walking_distance += uint32(directededge.Length)

				// entering a station and leaving it without boarding is
				// not a path
				if nodeinfo.Type == graph.NODE_TRANSIT_EGRESS && pred.Use == graph.USE_EGRESS_CONNECTION && directededge.Use == graph.USE_EGRESS_CONNECTION {
					continue
				}
			}
		}

		// mode changes carry no transition cost; the wait time is the cost
		transition_cost := structs.Cost{}
		if !mode_change {
			transition_cost = mode_costing[self.mode].TransitionCost(directededge, nodeinfo, &pred.EdgeLabel)
		}
		newcost = newcost.Add(transition_cost)

		// never enter the same station twice in a row
		if directededge.Use == graph.USE_TRANSIT_CONNECTION && directededge.EndNode == pred.PriorStopId {
			continue
		}

		// cap the walking distance between stops
		if directededge.Use == graph.USE_TRANSIT_CONNECTION && pred.PriorStopId.IsValid() && walking_distance > self.max_transfer_distance {
			continue
		}

		// the label is built ahead of the status checks; the policy sees
		// every candidate
		edge_label := costing.MakeMMEdgeLabel(pred_idx, edgeid, directededge, newcost, newcost.Cost, self.mode, walking_distance, tripid, prior_stop, blockid, operator_id, has_transit, transition_cost, has_time_restrictions)

		maybe_expand := self.policy.ShouldExpand(&edge_label.EdgeLabel, ROUTING_MULTIMODAL)
		if maybe_expand == PRUNE_EXPANSION || maybe_expand == STOP_EXPANSION {
			continue
		}

		if es.Set == TEMPORARY {
			lab := &self.mmedgelabels[es.Index]
			if newcost.Cost < lab.Cost.Cost {
				newsortcost := lab.SortCost - (lab.Cost.Cost - newcost.Cost)
				self.adjacencylist.Decrease(es.Index, newsortcost)
				lab.Update(pred_idx, newcost, newsortcost, walking_distance, tripid, blockid, transition_cost, has_time_restrictions)
			}
			continue
		}

		idx := uint32(self.mmedgelabels.Length())
		es.Set = TEMPORARY
		es.Index = idx
		self.mmedgelabels.Add(edge_label)
		self.adjacencylist.Add(idx)
	}

	if !from_transition && nodeinfo.TransitionCount > 0 {
		transitions := tile.GetNodeTransitions(nodeinfo)
		for i := range transitions {
			self.expand_forward_multimodal(transitions[i].EndNode, pred, pred_idx, true, pc, tc, mode_costing)
		}
	}
}

// Maps a transit operator name to a stable small integer id.
func (self *Dijkstras) get_operator_id(tile *graph.Tile, routeid int32) uint32 {
	route, ok := tile.GetTransitRoute(routeid)
	if !ok || route.OperatorOffset <= 0 {
		return 0
	}
	name := tile.GetName(route.OperatorOffset)
	if id, ok := self.operators[name]; ok {
		return id
	}
	id := uint32(len(self.operators) + 1)
	self.operators[name] = id
	return id
}

// Adds the snapped edges of each origin location to the adjacency
// list. Multimodal origin labels are not registered with the edge
// status.
func (self *Dijkstras) set_origin_locations_multimodal(locations []*graph.Location, tc costing.DynamicCost) {
	for _, location := range locations {
		has_other_edges := false
		for _, path_edge := range location.PathEdges {
			has_other_edges = has_other_edges || !path_edge.EndNode
		}

		for _, path_edge := range location.PathEdges {
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

			// without the end-node tile this origin cannot be expanded
			endtile := self.reader.GetGraphTile(directededge.EndNode)
			if endtile == nil {
				continue
			}

			cost := tc.EdgeCost(directededge, endtile, structs.CONSTRAINED_FLOW_SECOND_OF_DAY).Mul(1.0 - path_edge.PercentAlong)
			cost.Cost += path_edge.Distance * structs.SNAP_SCORE_FACTOR

			idx := uint32(self.mmedgelabels.Length())
			d := uint32(directededge.Length * (1.0 - path_edge.PercentAlong))
			label := costing.MakeMMEdgeLabel(structs.INVALID_LABEL, edgeid, directededge, cost, cost.Cost, self.mode, d, 0, structs.INVALID_GRAPHID, 0, 0, false, structs.Cost{}, false)
			label.SetOrigin()
			self.mmedgelabels.Add(label)
			self.adjacencylist.Add(idx)
		}
	}
}
