package graph

import (
	"github.com/ttpr0/go-expansion/geo"
	"github.com/ttpr0/go-expansion/structs"
	. "github.com/ttpr0/go-expansion/util"
)

//*******************************************
// locations
//*******************************************

// PathEdge is a candidate edge a raw input location was snapped to.
type PathEdge struct {
	EdgeId       structs.GraphId `json:"edge_id"`
	LL           geo.Coord       `json:"ll"`
	Distance     float32         `json:"distance"`
	PercentAlong float32         `json:"percent_along"`
	BeginNode    bool            `json:"begin_node"`
	EndNode      bool            `json:"end_node"`
}

// Location is an origin or destination of a traversal together with
// its snap candidates.
type Location struct {
	LL        geo.Coord      `json:"ll"`
	DateTime  string         `json:"date_time,omitempty"`
	PathEdges List[PathEdge] `json:"path_edges"`
}

func (self *Location) HasDateTime() bool {
	return self.DateTime != ""
}
