package routing

import (
	"github.com/ttpr0/go-expansion/costing"
	"github.com/ttpr0/go-expansion/geo"
)

//*******************************************
// expansion policy
//*******************************************

type ExpansionRecommendation byte

const (
	CONTINUE_EXPANSION ExpansionRecommendation = 0
	PRUNE_EXPANSION    ExpansionRecommendation = 1
	STOP_EXPANSION     ExpansionRecommendation = 2
)

type RoutingType byte

const (
	ROUTING_FORWARD    RoutingType = 0
	ROUTING_MULTIMODAL RoutingType = 1
)

// IExpansionPolicy lets consumers steer a traversal. Isochrones,
// matrices and reach are sibling implementations of this capability.
type IExpansionPolicy interface {
	// Called once per settled node before its edges are considered.
	ExpandingNode(pred *costing.EdgeLabel, prev_pred *costing.EdgeLabel, node_ll geo.Coord)

	// Consulted after every pop; additionally consulted per candidate
	// label in the multimodal expansion.
	ShouldExpand(pred *costing.EdgeLabel, typ RoutingType) ExpansionRecommendation

	// Pre-sizing hints: bucket count and edge-label reservation.
	GetExpansionHints() (int32, int32)
}

//*******************************************
// default policy
//*******************************************

// DefaultPolicy expands exhaustively.
type DefaultPolicy struct{}

func (self *DefaultPolicy) ExpandingNode(pred *costing.EdgeLabel, prev_pred *costing.EdgeLabel, node_ll geo.Coord) {
}
func (self *DefaultPolicy) ShouldExpand(pred *costing.EdgeLabel, typ RoutingType) ExpansionRecommendation {
	return CONTINUE_EXPANSION
}
func (self *DefaultPolicy) GetExpansionHints() (int32, int32) {
	return 20000, 500000
}
