package structs

import (
	"fmt"
)

//*******************************************
// graph identifiers
//*******************************************

// GraphId is a packed 64-bit identifier addressing a node or a directed
// edge inside the tiled hierarchy.
//
// layout (lsb first): 8 bit hierarchy-level | 24 bit tile-id | 32 bit slot-index
type GraphId uint64

const INVALID_GRAPHID GraphId = 0xFFFFFFFFFFFFFFFF

func MakeGraphId(tile int32, level uint8, index int32) GraphId {
	return GraphId(uint64(level) | uint64(uint32(tile)&0xFFFFFF)<<8 | uint64(uint32(index))<<32)
}

func (self GraphId) Level() uint8 {
	return uint8(self & 0xFF)
}
func (self GraphId) TileId() int32 {
	return int32((self >> 8) & 0xFFFFFF)
}
func (self GraphId) Index() int32 {
	return int32(self >> 32)
}
func (self GraphId) IsValid() bool {
	return self != INVALID_GRAPHID
}

// Returns the id of the tile containing this node or edge (slot-index
// zeroed out).
func (self GraphId) Tile() GraphId {
	return self & 0xFFFFFFFF
}

// Returns a GraphId addressing slot-index+offset within the same tile.
func (self GraphId) Offset(offset int32) GraphId {
	return MakeGraphId(self.TileId(), self.Level(), self.Index()+offset)
}

func (self GraphId) String() string {
	if !self.IsValid() {
		return "invalid"
	}
	return fmt.Sprintf("%d/%d/%d", self.Level(), self.TileId(), self.Index())
}

//*******************************************
// cost
//*******************************************

// Cost carries elapsed seconds and the weight used for sorting and
// comparisons. The two diverge once penalties are applied.
type Cost struct {
	Secs float32
	Cost float32
}

func MakeCost(secs, cost float32) Cost {
	return Cost{Secs: secs, Cost: cost}
}

func (self Cost) Add(other Cost) Cost {
	return Cost{Secs: self.Secs + other.Secs, Cost: self.Cost + other.Cost}
}
func (self Cost) Mul(factor float32) Cost {
	return Cost{Secs: self.Secs * factor, Cost: self.Cost * factor}
}

//*******************************************
// constants
//*******************************************

const (
	// sentinel for "no predecessor" label references
	INVALID_LABEL uint32 = 0xFFFFFFFF

	SECONDS_PER_DAY  int32 = 86400
	SECONDS_PER_WEEK int32 = 604800

	// second-of-day used for constrained-flow speeds when no date-time
	// is set on the expansion
	CONSTRAINED_FLOW_SECOND_OF_DAY int32 = 25200

	// cost penalty per meter of snap distance between the raw input
	// location and its matched edge (slow-walk equivalence)
	SNAP_SCORE_FACTOR float32 = 0.005
)
