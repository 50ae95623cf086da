package graph

import (
	"github.com/ttpr0/go-expansion/geo"
	"github.com/ttpr0/go-expansion/structs"
	. "github.com/ttpr0/go-expansion/util"
)

//*******************************************
// tile structs
//*******************************************

// NodeInfo describes a junction within a tile.
type NodeInfo struct {
	Loc             geo.Coord
	EdgeIndex       int32
	EdgeCount       int16
	TransitionIndex int32
	TransitionCount int16
	Timezone        int16
	Type            NodeType
	Access          Access
	// offset into the tile name pool, -1 if unnamed
	Name int32
}

// DirectedEdge is one direction of a road segment. Every segment is
// stored as two directed edges; one-ways are expressed through the
// access masks.
type DirectedEdge struct {
	EndNode       structs.GraphId
	OppIndex      int32
	ForwardAccess Access
	ReverseAccess Access
	Shortcut      bool
	LocalEdgeIdx  int16
	Length        float32
	Speed         int16
	Use           Use
	Class         RoadClass
	LineId        int32
}

func (self *DirectedEdge) IsShortcut() bool {
	return self.Shortcut
}
func (self *DirectedEdge) IsTransitLine() bool {
	return self.Use == USE_TRANSIT_LINE
}

// NodeTransition links a node to its counterpart on another hierarchy
// level.
type NodeTransition struct {
	EndNode structs.GraphId
}

// TransitDeparture is a single scheduled departure on a transit line
// edge. Departure times are seconds from midnight.
type TransitDeparture struct {
	LineId        int32
	TripId        int32
	BlockId       int32
	RouteId       int32
	DepartureTime int32
	TravelTime    int32
	DaysOfWeek    uint8
	Wheelchair    bool
	Bicycle       bool
}

type TransitRoute struct {
	RouteId        int32
	OperatorOffset int32
}

type TileHeader struct {
	BaseLL geo.Coord
	// days from the schedule pivot date at which the timetable of this
	// tile was created
	DateCreated int32
}

//*******************************************
// tile
//*******************************************

// Tile is a geographically bounded slab of the graph, one hierarchy
// level deep. Node and edge slot-indices address the arrays below.
type Tile struct {
	id          structs.GraphId
	header      TileHeader
	nodes       Array[NodeInfo]
	edges       Array[DirectedEdge]
	transitions Array[NodeTransition]
	departures  Dict[int32, Array[TransitDeparture]]
	routes      Dict[int32, TransitRoute]
	names       Array[string]
}

func (self *Tile) Id() structs.GraphId {
	return self.id
}
func (self *Tile) Header() TileHeader {
	return self.header
}
func (self *Tile) NodeCount() int {
	return self.nodes.Length()
}
func (self *Tile) EdgeCount() int {
	return self.edges.Length()
}

func (self *Tile) GetNode(node structs.GraphId) *NodeInfo {
	return &self.nodes[node.Index()]
}
func (self *Tile) GetDirectedEdge(edge structs.GraphId) *DirectedEdge {
	return &self.edges[edge.Index()]
}
func (self *Tile) GetDirectedEdgeByIndex(index int32) *DirectedEdge {
	return &self.edges[index]
}

// Returns the outgoing edge slice of a node.
func (self *Tile) GetDirectedEdges(node structs.GraphId) []DirectedEdge {
	info := self.GetNode(node)
	return self.edges[info.EdgeIndex : info.EdgeIndex+int32(info.EdgeCount)]
}

func (self *Tile) GetTransition(index int32) *NodeTransition {
	return &self.transitions[index]
}

// Returns the cross-level transitions of a node.
func (self *Tile) GetNodeTransitions(info *NodeInfo) []NodeTransition {
	return self.transitions[info.TransitionIndex : info.TransitionIndex+int32(info.TransitionCount)]
}

func (self *Tile) GetNodeLL(node structs.GraphId) geo.Coord {
	return self.nodes[node.Index()].Loc
}

func (self *Tile) GetTransitRoute(route int32) (TransitRoute, bool) {
	r, ok := self.routes[route]
	return r, ok
}
func (self *Tile) GetName(offset int32) string {
	if offset < 0 || int(offset) >= self.names.Length() {
		return ""
	}
	return self.names[offset]
}

// Returns the first departure on a line at or after current_time
// (seconds from midnight) valid on the given day-of-week mask. With
// date_before_tile set the timetable predates the request date and
// service-day checks are skipped.
func (self *Tile) GetNextDeparture(lineid int32, current_time int32, day uint32, dow uint8, date_before_tile bool, wheelchair bool, bicycle bool) (TransitDeparture, bool) {
	deps, ok := self.departures[lineid]
	if !ok {
		return TransitDeparture{}, false
	}
	for _, dep := range deps {
		if dep.DepartureTime < current_time {
			continue
		}
		if !date_before_tile && dep.DaysOfWeek&dow == 0 {
			continue
		}
		if wheelchair && !dep.Wheelchair {
			continue
		}
		if bicycle && !dep.Bicycle {
			continue
		}
		return dep, true
	}
	return TransitDeparture{}, false
}
