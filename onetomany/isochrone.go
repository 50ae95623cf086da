package onetomany

import (
	"github.com/ttpr0/go-expansion/costing"
	"github.com/ttpr0/go-expansion/geo"
	"github.com/ttpr0/go-expansion/graph"
	"github.com/ttpr0/go-expansion/routing"
)

//*******************************************
// isochrone consumer
//*******************************************

// IsoPoint is a sampled node with the seconds needed to reach it.
type IsoPoint struct {
	LL   geo.Coord `json:"ll"`
	Secs float32   `json:"secs"`
}

// Isochrone collects the nodes reachable within a time range by
// steering a forward traversal. It is its own expansion policy: nodes
// are sampled in the per-node hook and the expansion stops once the
// settled cost passes the range.
type Isochrone struct {
	dijkstras   *routing.Dijkstras
	max_seconds float32
	points      []IsoPoint
}

func NewIsochrone(reader *graph.GraphReader) *Isochrone {
	iso := &Isochrone{}
	iso.dijkstras = routing.NewDijkstras(reader, iso)
	return iso
}

func (self *Isochrone) ExpandingNode(pred *costing.EdgeLabel, prev_pred *costing.EdgeLabel, node_ll geo.Coord) {
	if pred.Cost.Secs <= self.max_seconds {
		self.points = append(self.points, IsoPoint{LL: node_ll, Secs: pred.Cost.Secs})
	}
}

func (self *Isochrone) ShouldExpand(pred *costing.EdgeLabel, typ routing.RoutingType) routing.ExpansionRecommendation {
	// settlement is monotone in sort cost, nothing cheaper follows
	if pred.SortCost > self.max_seconds {
		return routing.STOP_EXPANSION
	}
	if pred.Cost.Secs > self.max_seconds {
		return routing.PRUNE_EXPANSION
	}
	return routing.CONTINUE_EXPANSION
}

func (self *Isochrone) GetExpansionHints() (int32, int32) {
	bucket_count := int32(self.max_seconds) + 1
	return bucket_count, bucket_count * 10
}

// Computes the reachable nodes within max_seconds from the origin
// locations.
func (self *Isochrone) Compute(locations []*graph.Location, max_seconds float32, mode costing.TravelMode, mode_costing [costing.MAX_TRAVEL_MODE]costing.DynamicCost) []IsoPoint {
	self.max_seconds = max_seconds
	self.points = nil
	self.dijkstras.Clear()
	self.dijkstras.Compute(locations, mode, mode_costing)
	points := self.points
	self.dijkstras.Clear()
	return points
}
