package costing

import (
	"github.com/ttpr0/go-expansion/graph"
	"github.com/ttpr0/go-expansion/structs"
)

//*******************************************
// auto costing
//*******************************************

const KPH_TO_MPS = 1.0 / 3.6

type AutoOptions struct {
	// added seconds when turning between different roads at a junction
	TurnPenalty float32 `yaml:"turn-penalty"`
	// cost multiplier applied to ferry edges
	FerryFactor float32 `yaml:"ferry-factor"`
}

// AutoCost scores edges for car routing from length and speed.
type AutoCost struct {
	BaseCost
	turn_penalty float32
	ferry_factor float32
}

func NewAutoCost(opts AutoOptions) *AutoCost {
	ferry_factor := opts.FerryFactor
	if ferry_factor == 0 {
		ferry_factor = 1.0
	}
	return &AutoCost{
		BaseCost:     new_base_cost(graph.ACCESS_AUTO, DRIVE),
		turn_penalty: opts.TurnPenalty,
		ferry_factor: ferry_factor,
	}
}

func (self *AutoCost) Allowed(edge *graph.DirectedEdge, pred *EdgeLabel, tile *graph.Tile, edgeid structs.GraphId, localtime int64, timezone int16, has_time_restrictions *bool) bool {
	if edge.ForwardAccess&self.access == 0 {
		return false
	}
	*has_time_restrictions = self.has_restrictions(edgeid)
	return true
}

func (self *AutoCost) AllowedReverse(edge *graph.DirectedEdge, pred *EdgeLabel, opp_edge *graph.DirectedEdge, opp_tile *graph.Tile, opp_edgeid structs.GraphId, localtime int64, timezone int16, has_time_restrictions *bool) bool {
	if edge.ReverseAccess&self.access == 0 {
		return false
	}
	*has_time_restrictions = self.has_restrictions(opp_edgeid)
	return true
}

func (self *AutoCost) EdgeCost(edge *graph.DirectedEdge, tile *graph.Tile, seconds_of_week int32) structs.Cost {
	speed := float32(edge.Speed)
	if speed <= 0 {
		speed = 30
	}
	secs := edge.Length / (speed * KPH_TO_MPS)
	cost := secs
	if edge.Use == graph.USE_FERRY {
		cost *= self.ferry_factor
	}
	return structs.MakeCost(secs, cost)
}

func (self *AutoCost) TransitionCost(edge *graph.DirectedEdge, node *graph.NodeInfo, pred *EdgeLabel) structs.Cost {
	if self.turn_penalty == 0 {
		return structs.Cost{}
	}
	if pred.Use != edge.Use {
		return structs.MakeCost(self.turn_penalty, self.turn_penalty)
	}
	return structs.Cost{}
}

func (self *AutoCost) TransitionCostReverse(localedgeidx int16, node *graph.NodeInfo, opp_edge *graph.DirectedEdge, opp_pred_edge *graph.DirectedEdge) structs.Cost {
	if self.turn_penalty == 0 || opp_pred_edge == nil {
		return structs.Cost{}
	}
	if opp_edge.Use != opp_pred_edge.Use {
		return structs.MakeCost(self.turn_penalty, self.turn_penalty)
	}
	return structs.Cost{}
}
