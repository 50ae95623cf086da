package costing

import (
	"time"

	"github.com/ttpr0/go-expansion/datetime"
	"github.com/ttpr0/go-expansion/graph"
	"github.com/ttpr0/go-expansion/structs"
	. "github.com/ttpr0/go-expansion/util"
)

//*******************************************
// shared costing base
//*******************************************

// BaseCost carries the state and behavior shared by all costing
// models: access mask, periodic time restrictions and user avoid
// edges. The transit-specific interface methods are no-ops here.
type BaseCost struct {
	access graph.Access
	mode   TravelMode

	restrictions Dict[structs.GraphId, []RestrictionWindow]
	avoid_edges  Dict[structs.GraphId, bool]
}

func new_base_cost(access graph.Access, mode TravelMode) BaseCost {
	return BaseCost{
		access:       access,
		mode:         mode,
		restrictions: NewDict[structs.GraphId, []RestrictionWindow](10),
		avoid_edges:  NewDict[structs.GraphId, bool](10),
	}
}

func (self *BaseCost) AccessMode() graph.Access {
	return self.access
}
func (self *BaseCost) TravelMode() TravelMode {
	return self.mode
}
func (self *BaseCost) UnitSize() float32 {
	return 1.0
}

func (self *BaseCost) GetNodeFilter() NodeFilter {
	access := self.access
	return func(node *graph.NodeInfo) bool {
		return node.Access&access == 0
	}
}
func (self *BaseCost) GetEdgeFilter() EdgeFilter {
	access := self.access
	return func(edge *graph.DirectedEdge) float32 {
		if edge.IsShortcut() || edge.ForwardAccess&access == 0 {
			return 0.0
		}
		return 1.0
	}
}

func (self *BaseCost) AllowedNode(node *graph.NodeInfo) bool {
	return node.Access&self.access != 0
}

// Registers a periodic restriction window for an edge.
func (self *BaseCost) AddTimeRestriction(edgeid structs.GraphId, window RestrictionWindow) {
	self.restrictions[edgeid] = append(self.restrictions[edgeid], window)
}

// Marks an edge to be avoided as origin or destination.
func (self *BaseCost) AddAvoidEdge(edgeid structs.GraphId) {
	self.avoid_edges[edgeid] = true
}

func (self *BaseCost) has_restrictions(edgeid structs.GraphId) bool {
	_, ok := self.restrictions[edgeid]
	return ok
}

// Evaluates the restriction windows of an edge at a local instant.
func (self *BaseCost) restricted_at(edgeid structs.GraphId, localtime int64, timezone int16) bool {
	windows, ok := self.restrictions[edgeid]
	if !ok {
		return false
	}
	tz := datetime.FromIndex(timezone)
	if tz == nil {
		tz = time.UTC
	}
	t := time.Unix(localtime, 0).In(tz)
	sow := int32(t.Weekday())*structs.SECONDS_PER_DAY + int32(t.Hour()*3600+t.Minute()*60+t.Second())
	for _, window := range windows {
		if window.Contains(sow) {
			return true
		}
	}
	return false
}

func (self *BaseCost) Restricted(edge *graph.DirectedEdge, pred *EdgeLabel, labels []BDEdgeLabel, tile *graph.Tile, edgeid structs.GraphId, forward bool, localtime int64, timezone int16) bool {
	if localtime == 0 {
		return false
	}
	return self.restricted_at(edgeid, localtime, timezone)
}

func (self *BaseCost) AvoidAsOriginEdge(edgeid structs.GraphId, percent_along float32) bool {
	return self.avoid_edges.ContainsKey(edgeid)
}
func (self *BaseCost) AvoidAsDestinationEdge(edgeid structs.GraphId, percent_along float32) bool {
	return self.avoid_edges.ContainsKey(edgeid)
}

//*******************************************
// transit no-ops
//*******************************************

func (self *BaseCost) DefaultTransferCost() structs.Cost {
	return structs.Cost{}
}
func (self *BaseCost) TransferCost() structs.Cost {
	return structs.Cost{}
}
func (self *BaseCost) OperatorChangePenalty() float32 {
	return 300
}
func (self *BaseCost) EdgeCostDeparture(edge *graph.DirectedEdge, departure graph.TransitDeparture, curr_time int32) structs.Cost {
	return structs.Cost{}
}
func (self *BaseCost) IsExcludedNode(tile *graph.Tile, node *graph.NodeInfo) bool {
	return false
}
func (self *BaseCost) IsExcludedEdge(tile *graph.Tile, edge *graph.DirectedEdge) bool {
	return false
}
func (self *BaseCost) AddToExcludeList(tile *graph.Tile) {
}
func (self *BaseCost) Wheelchair() bool {
	return false
}
func (self *BaseCost) Bicycle() bool {
	return false
}
func (self *BaseCost) GetModeFactor() float32 {
	return 1.0
}
func (self *BaseCost) SetAllowTransitConnections(allow bool) {
}
func (self *BaseCost) UseMaxMultiModalDistance() {
}
