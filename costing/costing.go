package costing

import (
	"github.com/ttpr0/go-expansion/graph"
	"github.com/ttpr0/go-expansion/structs"
)

//*******************************************
// travel modes
//*******************************************

type TravelMode byte

const (
	DRIVE          TravelMode = 0
	PEDESTRIAN     TravelMode = 1
	BICYCLE        TravelMode = 2
	PUBLIC_TRANSIT TravelMode = 3

	MAX_TRAVEL_MODE = 4
)

func (self TravelMode) String() string {
	switch self {
	case DRIVE:
		return "drive"
	case PEDESTRIAN:
		return "pedestrian"
	case BICYCLE:
		return "bicycle"
	case PUBLIC_TRANSIT:
		return "public-transit"
	default:
		panic("unknown travel mode")
	}
}

//*******************************************
// filters
//*******************************************

// NodeFilter returns true if a node should be filtered out.
type NodeFilter func(node *graph.NodeInfo) bool

// EdgeFilter returns a positive value if an edge is usable.
type EdgeFilter func(edge *graph.DirectedEdge) float32

func PassThroughNodeFilter(node *graph.NodeInfo) bool {
	return false
}
func PassThroughEdgeFilter(edge *graph.DirectedEdge) float32 {
	return 1.0
}

//*******************************************
// costing interface
//*******************************************

// DynamicCost scores edges and transitions for one travel mode.
//
// The transit-specific methods have no-op implementations on BaseCost
// for the road modes.
type DynamicCost interface {
	AccessMode() graph.Access
	TravelMode() TravelMode

	// cost quantum used to size the bucket queue, roughly one second
	UnitSize() float32

	GetNodeFilter() NodeFilter
	GetEdgeFilter() EdgeFilter

	// node access
	AllowedNode(node *graph.NodeInfo) bool

	// edge access by mode; has_time_restrictions reports whether the edge
	// carries restriction windows, which Restricted evaluates against localtime
	Allowed(edge *graph.DirectedEdge, pred *EdgeLabel, tile *graph.Tile, edgeid structs.GraphId, localtime int64, timezone int16, has_time_restrictions *bool) bool
	AllowedReverse(edge *graph.DirectedEdge, pred *EdgeLabel, opp_edge *graph.DirectedEdge, opp_tile *graph.Tile, opp_edgeid structs.GraphId, localtime int64, timezone int16, has_time_restrictions *bool) bool

	// time-dependent restriction check along the current path
	Restricted(edge *graph.DirectedEdge, pred *EdgeLabel, labels []BDEdgeLabel, tile *graph.Tile, edgeid structs.GraphId, forward bool, localtime int64, timezone int16) bool

	// cost to traverse an edge; seconds_of_week selects time-dependent
	// speeds where available
	EdgeCost(edge *graph.DirectedEdge, tile *graph.Tile, seconds_of_week int32) structs.Cost

	// cost of transitioning between the predecessor and an edge
	TransitionCost(edge *graph.DirectedEdge, node *graph.NodeInfo, pred *EdgeLabel) structs.Cost
	TransitionCostReverse(localedgeidx int16, node *graph.NodeInfo, opp_edge *graph.DirectedEdge, opp_pred_edge *graph.DirectedEdge) structs.Cost

	// origin/destination snap filters
	AvoidAsOriginEdge(edgeid structs.GraphId, percent_along float32) bool
	AvoidAsDestinationEdge(edgeid structs.GraphId, percent_along float32) bool

	// transit-specific
	DefaultTransferCost() structs.Cost
	TransferCost() structs.Cost
	OperatorChangePenalty() float32
	EdgeCostDeparture(edge *graph.DirectedEdge, departure graph.TransitDeparture, curr_time int32) structs.Cost
	IsExcludedNode(tile *graph.Tile, node *graph.NodeInfo) bool
	IsExcludedEdge(tile *graph.Tile, edge *graph.DirectedEdge) bool
	AddToExcludeList(tile *graph.Tile)
	Wheelchair() bool
	Bicycle() bool
	GetModeFactor() float32
	SetAllowTransitConnections(allow bool)
	UseMaxMultiModalDistance()
}

//*******************************************
// time restrictions
//*******************************************

// RestrictionWindow is a periodic seconds-of-week interval during
// which an edge may not be entered.
type RestrictionWindow struct {
	BeginSOW int32
	EndSOW   int32
}

func (self RestrictionWindow) Contains(sow int32) bool {
	if self.BeginSOW <= self.EndSOW {
		return sow >= self.BeginSOW && sow <= self.EndSOW
	}
	// window wraps around the week boundary
	return sow >= self.BeginSOW || sow <= self.EndSOW
}
