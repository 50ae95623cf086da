package costing

import (
	"github.com/ttpr0/go-expansion/graph"
	"github.com/ttpr0/go-expansion/structs"
	. "github.com/ttpr0/go-expansion/util"
)

//*******************************************
// public-transit costing
//*******************************************

type TransitOptions struct {
	// cost of transferring between stations
	TransferCost float32 `yaml:"transfer-cost"`
	// penalty applied when the transit operator changes between trips
	OperatorChangePenalty float32 `yaml:"operator-change-penalty"`
	// factor weighting transit legs against the other modes
	ModeFactor float32 `yaml:"mode-factor"`

	Wheelchair bool `yaml:"wheelchair"`
	Bicycle    bool `yaml:"bicycle"`

	// transit lines excluded from routing
	ExcludeLines []int32 `yaml:"exclude-lines"`
	// stop names excluded from routing
	ExcludeStops []string `yaml:"exclude-stops"`
}

// TransitCost scores scheduled transit-line edges.
type TransitCost struct {
	BaseCost
	transfer_cost           float32
	operator_change_penalty float32
	mode_factor             float32
	wheelchair              bool
	bicycle                 bool
	exclude_lines           Dict[int32, bool]
	exclude_stops           Dict[string, bool]
}

func NewTransitCost(opts TransitOptions) *TransitCost {
	mode_factor := opts.ModeFactor
	if mode_factor == 0 {
		mode_factor = 1.0
	}
	operator_change_penalty := opts.OperatorChangePenalty
	if operator_change_penalty == 0 {
		operator_change_penalty = 300
	}
	exclude_lines := NewDict[int32, bool](len(opts.ExcludeLines))
	for _, line := range opts.ExcludeLines {
		exclude_lines[line] = true
	}
	exclude_stops := NewDict[string, bool](len(opts.ExcludeStops))
	for _, stop := range opts.ExcludeStops {
		exclude_stops[stop] = true
	}
	return &TransitCost{
		BaseCost:                new_base_cost(graph.ACCESS_TRANSIT, PUBLIC_TRANSIT),
		transfer_cost:           opts.TransferCost,
		operator_change_penalty: operator_change_penalty,
		mode_factor:             mode_factor,
		wheelchair:              opts.Wheelchair,
		bicycle:                 opts.Bicycle,
		exclude_lines:           exclude_lines,
		exclude_stops:           exclude_stops,
	}
}

func (self *TransitCost) Allowed(edge *graph.DirectedEdge, pred *EdgeLabel, tile *graph.Tile, edgeid structs.GraphId, localtime int64, timezone int16, has_time_restrictions *bool) bool {
	return edge.ForwardAccess&self.access != 0
}

func (self *TransitCost) AllowedReverse(edge *graph.DirectedEdge, pred *EdgeLabel, opp_edge *graph.DirectedEdge, opp_tile *graph.Tile, opp_edgeid structs.GraphId, localtime int64, timezone int16, has_time_restrictions *bool) bool {
	return edge.ReverseAccess&self.access != 0
}

func (self *TransitCost) EdgeCost(edge *graph.DirectedEdge, tile *graph.Tile, seconds_of_week int32) structs.Cost {
	// transit-line edges are scored against a concrete departure
	return structs.Cost{}
}

// Cost of riding an edge on a departure boarded at curr_time: the wait
// for the departure plus the scheduled travel time.
func (self *TransitCost) EdgeCostDeparture(edge *graph.DirectedEdge, departure graph.TransitDeparture, curr_time int32) structs.Cost {
	wait := departure.DepartureTime - curr_time
	if wait < 0 {
		wait = 0
	}
	secs := float32(wait + departure.TravelTime)
	return structs.MakeCost(secs, secs)
}

func (self *TransitCost) TransitionCost(edge *graph.DirectedEdge, node *graph.NodeInfo, pred *EdgeLabel) structs.Cost {
	return structs.Cost{}
}
func (self *TransitCost) TransitionCostReverse(localedgeidx int16, node *graph.NodeInfo, opp_edge *graph.DirectedEdge, opp_pred_edge *graph.DirectedEdge) structs.Cost {
	return structs.Cost{}
}

func (self *TransitCost) DefaultTransferCost() structs.Cost {
	return structs.Cost{}
}
func (self *TransitCost) TransferCost() structs.Cost {
	return structs.MakeCost(self.transfer_cost, self.transfer_cost)
}
func (self *TransitCost) OperatorChangePenalty() float32 {
	return self.operator_change_penalty
}

func (self *TransitCost) IsExcludedNode(tile *graph.Tile, node *graph.NodeInfo) bool {
	if self.exclude_stops.Length() == 0 || node.Name < 0 {
		return false
	}
	return self.exclude_stops.ContainsKey(tile.GetName(node.Name))
}
func (self *TransitCost) IsExcludedEdge(tile *graph.Tile, edge *graph.DirectedEdge) bool {
	return self.exclude_lines.ContainsKey(edge.LineId)
}

func (self *TransitCost) Wheelchair() bool {
	return self.wheelchair
}
func (self *TransitCost) Bicycle() bool {
	return self.bicycle
}
func (self *TransitCost) GetModeFactor() float32 {
	return self.mode_factor
}
