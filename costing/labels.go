package costing

import (
	"github.com/ttpr0/go-expansion/graph"
	"github.com/ttpr0/go-expansion/structs"
)

//*******************************************
// edge labels
//*******************************************

// EdgeLabel is the common prefix of all label flavors. Labels are
// addressed by dense indices into an append-only store; fields may be
// updated in place but a label is never relocated.
type EdgeLabel struct {
	Predecessor         uint32
	EdgeId              structs.GraphId
	EndNode             structs.GraphId
	Mode                TravelMode
	Use                 graph.Use
	Cost                structs.Cost
	SortCost            float32
	PathDistance        uint32
	HasTimeRestrictions bool
	Origin              bool
}

func (self *EdgeLabel) SetOrigin() {
	self.Origin = true
}

// BDEdgeLabel additionally carries the opposing edge id and the
// transition cost, allowing a reverse expansion to be connected with a
// forward one.
type BDEdgeLabel struct {
	EdgeLabel
	OppEdgeId      structs.GraphId
	TransitionCost structs.Cost
}

func MakeBDEdgeLabel(predecessor uint32, edgeid, opp_edgeid structs.GraphId, edge *graph.DirectedEdge, cost structs.Cost, sortcost float32, mode TravelMode, transition_cost structs.Cost, has_time_restrictions bool) BDEdgeLabel {
	return BDEdgeLabel{
		EdgeLabel: EdgeLabel{
			Predecessor:         predecessor,
			EdgeId:              edgeid,
			EndNode:             edge.EndNode,
			Mode:                mode,
			Use:                 edge.Use,
			Cost:                cost,
			SortCost:            sortcost,
			HasTimeRestrictions: has_time_restrictions,
		},
		OppEdgeId:      opp_edgeid,
		TransitionCost: transition_cost,
	}
}

// Updates the label in place when a cheaper path to its edge is found.
func (self *BDEdgeLabel) Update(predecessor uint32, cost structs.Cost, sortcost float32, transition_cost structs.Cost, has_time_restrictions bool) {
	self.Predecessor = predecessor
	self.Cost = cost
	self.SortCost = sortcost
	self.TransitionCost = transition_cost
	self.HasTimeRestrictions = has_time_restrictions
}

// MMEdgeLabel carries the multimodal state: transit trip bookkeeping
// and the walking distance accumulated since the last disembark.
type MMEdgeLabel struct {
	EdgeLabel
	TripId          int32
	PriorStopId     structs.GraphId
	BlockId         int32
	TransitOperator uint32
	HasTransit      bool
	TransitionCost  structs.Cost
}

func MakeMMEdgeLabel(predecessor uint32, edgeid structs.GraphId, edge *graph.DirectedEdge, cost structs.Cost, sortcost float32, mode TravelMode, path_distance uint32, tripid int32, prior_stopid structs.GraphId, blockid int32, transit_operator uint32, has_transit bool, transition_cost structs.Cost, has_time_restrictions bool) MMEdgeLabel {
	return MMEdgeLabel{
		EdgeLabel: EdgeLabel{
			Predecessor:         predecessor,
			EdgeId:              edgeid,
			EndNode:             edge.EndNode,
			Mode:                mode,
			Use:                 edge.Use,
			Cost:                cost,
			SortCost:            sortcost,
			PathDistance:        path_distance,
			HasTimeRestrictions: has_time_restrictions,
		},
		TripId:          tripid,
		PriorStopId:     prior_stopid,
		BlockId:         blockid,
		TransitOperator: transit_operator,
		HasTransit:      has_transit,
		TransitionCost:  transition_cost,
	}
}

// Updates the label in place when a cheaper path to its edge is found.
// Trip and block ids are replaced along with the costs.
func (self *MMEdgeLabel) Update(predecessor uint32, cost structs.Cost, sortcost float32, path_distance uint32, tripid int32, blockid int32, transition_cost structs.Cost, has_time_restrictions bool) {
	self.Predecessor = predecessor
	self.Cost = cost
	self.SortCost = sortcost
	self.PathDistance = path_distance
	self.TripId = tripid
	self.BlockId = blockid
	self.TransitionCost = transition_cost
	self.HasTimeRestrictions = has_time_restrictions
}
