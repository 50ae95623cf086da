package routing

import (
	"github.com/ttpr0/go-expansion/graph"
	"github.com/ttpr0/go-expansion/structs"
	. "github.com/ttpr0/go-expansion/util"
)

//*******************************************
// edge status
//*******************************************

type EdgeSet byte

const (
	UNREACHED EdgeSet = 0
	TEMPORARY EdgeSet = 1
	PERMANENT EdgeSet = 2
)

type EdgeStatusInfo struct {
	Set   EdgeSet
	Index uint32
}

// EdgeStatus tracks the traversal state of every touched edge. Storage
// is sparse, keyed per tile, so memory stays proportional to the
// frontier instead of the dataset.
type EdgeStatus struct {
	tiles Dict[structs.GraphId, Dict[structs.GraphId, *EdgeStatusInfo]]
}

func NewEdgeStatus() EdgeStatus {
	return EdgeStatus{
		tiles: NewDict[structs.GraphId, Dict[structs.GraphId, *EdgeStatusInfo]](10),
	}
}

// Returns a mutable entry for an edge, creating an unreached one on
// first access. The tile is a pre-sizing hint only.
func (self *EdgeStatus) GetOrCreate(edge structs.GraphId, tile *graph.Tile) *EdgeStatusInfo {
	edges, ok := self.tiles[edge.Tile()]
	if !ok {
		size := 10
		if tile != nil {
			size = tile.EdgeCount()
		}
		edges = NewDict[structs.GraphId, *EdgeStatusInfo](size)
		self.tiles[edge.Tile()] = edges
	}
	info, ok := edges[edge]
	if !ok {
		info = &EdgeStatusInfo{}
		edges[edge] = info
	}
	return info
}

// Returns the current entry of an edge, unreached if never touched.
func (self *EdgeStatus) Get(edge structs.GraphId) EdgeStatusInfo {
	if edges, ok := self.tiles[edge.Tile()]; ok {
		if info, ok := edges[edge]; ok {
			return *info
		}
	}
	return EdgeStatusInfo{}
}

func (self *EdgeStatus) Set(edge structs.GraphId, set EdgeSet, index uint32, tile *graph.Tile) {
	info := self.GetOrCreate(edge, tile)
	info.Set = set
	info.Index = index
}

// Updates the state of an edge, creating the entry if it was never
// tracked (multimodal origins are seeded without a status).
func (self *EdgeStatus) Update(edge structs.GraphId, set EdgeSet) {
	self.GetOrCreate(edge, nil).Set = set
}

func (self *EdgeStatus) Clear() {
	self.tiles = NewDict[structs.GraphId, Dict[structs.GraphId, *EdgeStatusInfo]](10)
}
