package costing

import (
	"github.com/ttpr0/go-expansion/graph"
	"github.com/ttpr0/go-expansion/structs"
)

//*******************************************
// pedestrian costing
//*******************************************

type PedestrianOptions struct {
	// walking speed in kph
	Speed float32 `yaml:"speed"`
	// maximum walking distance in meters for a regular traversal
	MaxDistance uint32 `yaml:"max-distance"`
	// maximum walking distance when used inside a multimodal traversal
	MaxMultiModalDistance uint32 `yaml:"max-multimodal-distance"`
}

// PedestrianCost scores edges for walking. In multimodal traversals it
// additionally validates the accumulated walking distance.
type PedestrianCost struct {
	BaseCost
	speed                     float32
	max_distance              uint32
	max_multimodal_distance   uint32
	use_multimodal_distance   bool
	allow_transit_connections bool
}

func NewPedestrianCost(opts PedestrianOptions) *PedestrianCost {
	speed := opts.Speed
	if speed == 0 {
		speed = 5.1
	}
	max_distance := opts.MaxDistance
	if max_distance == 0 {
		max_distance = 100000
	}
	max_mm := opts.MaxMultiModalDistance
	if max_mm == 0 {
		max_mm = 2000
	}
	return &PedestrianCost{
		BaseCost:                new_base_cost(graph.ACCESS_PEDESTRIAN, PEDESTRIAN),
		speed:                   speed,
		max_distance:            max_distance,
		max_multimodal_distance: max_mm,
	}
}

func (self *PedestrianCost) SetAllowTransitConnections(allow bool) {
	self.allow_transit_connections = allow
}
func (self *PedestrianCost) UseMaxMultiModalDistance() {
	self.use_multimodal_distance = true
}

func (self *PedestrianCost) max_walking_distance() uint32 {
	if self.use_multimodal_distance {
		return self.max_multimodal_distance
	}
	return self.max_distance
}

func (self *PedestrianCost) Allowed(edge *graph.DirectedEdge, pred *EdgeLabel, tile *graph.Tile, edgeid structs.GraphId, localtime int64, timezone int16, has_time_restrictions *bool) bool {
	if edge.ForwardAccess&self.access == 0 {
		return false
	}
	switch edge.Use {
	case graph.USE_TRANSIT_CONNECTION, graph.USE_EGRESS_CONNECTION, graph.USE_PLATFORM_CONNECTION:
		if !self.allow_transit_connections {
			return false
		}
	}
	if pred.PathDistance+uint32(edge.Length) > self.max_walking_distance() {
		return false
	}
	*has_time_restrictions = self.has_restrictions(edgeid)
	return true
}

func (self *PedestrianCost) AllowedReverse(edge *graph.DirectedEdge, pred *EdgeLabel, opp_edge *graph.DirectedEdge, opp_tile *graph.Tile, opp_edgeid structs.GraphId, localtime int64, timezone int16, has_time_restrictions *bool) bool {
	if edge.ReverseAccess&self.access == 0 {
		return false
	}
	*has_time_restrictions = self.has_restrictions(opp_edgeid)
	return true
}

func (self *PedestrianCost) EdgeCost(edge *graph.DirectedEdge, tile *graph.Tile, seconds_of_week int32) structs.Cost {
	secs := edge.Length / (self.speed * KPH_TO_MPS)
	return structs.MakeCost(secs, secs)
}

func (self *PedestrianCost) TransitionCost(edge *graph.DirectedEdge, node *graph.NodeInfo, pred *EdgeLabel) structs.Cost {
	return structs.Cost{}
}

func (self *PedestrianCost) TransitionCostReverse(localedgeidx int16, node *graph.NodeInfo, opp_edge *graph.DirectedEdge, opp_pred_edge *graph.DirectedEdge) structs.Cost {
	return structs.Cost{}
}
