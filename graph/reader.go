package graph

import (
	"github.com/ttpr0/go-expansion/structs"
	. "github.com/ttpr0/go-expansion/util"
)

//*******************************************
// graph store
//*******************************************

// GraphStore owns the tile set. Tiles are immutable once built; the
// pointers handed out stay valid for the lifetime of the store.
type GraphStore struct {
	tiles    Dict[structs.GraphId, *Tile]
	tile_ids List[structs.GraphId]
}

func (self *GraphStore) TileIds() List[structs.GraphId] {
	return self.tile_ids
}
func (self *GraphStore) GetTile(id structs.GraphId) (*Tile, bool) {
	tile, ok := self.tiles[id.Tile()]
	return tile, ok
}
func (self *GraphStore) TileCount() int {
	return self.tile_ids.Length()
}

// Node and edge counts over all tiles.
func (self *GraphStore) NodeCount() int {
	count := 0
	for _, id := range self.tile_ids {
		count += self.tiles[id].NodeCount()
	}
	return count
}
func (self *GraphStore) EdgeCount() int {
	count := 0
	for _, id := range self.tile_ids {
		count += self.tiles[id].EdgeCount()
	}
	return count
}

//*******************************************
// graph reader
//*******************************************

// GraphReader resolves tiles and cross-tile relations for a traversal.
// Not thread safe, use one instance per traversal.
type GraphReader struct {
	store *GraphStore
	last  *Tile
}

func NewGraphReader(store *GraphStore) *GraphReader {
	return &GraphReader{
		store: store,
	}
}

// Returns the tile containing the given node or edge, nil if the tile
// is not part of the dataset (regional holes).
func (self *GraphReader) GetGraphTile(id structs.GraphId) *Tile {
	if !id.IsValid() {
		return nil
	}
	base := id.Tile()
	if self.last != nil && self.last.id == base {
		return self.last
	}
	tile, ok := self.store.tiles[base]
	if !ok {
		return nil
	}
	self.last = tile
	return tile
}

// Returns the id of the edge running opposite to the given edge.
func (self *GraphReader) GetOpposingEdgeId(edge structs.GraphId) (structs.GraphId, bool) {
	tile := self.GetGraphTile(edge)
	if tile == nil {
		return structs.INVALID_GRAPHID, false
	}
	directededge := tile.GetDirectedEdge(edge)
	endtile := self.GetGraphTile(directededge.EndNode)
	if endtile == nil {
		return structs.INVALID_GRAPHID, false
	}
	endnode := endtile.GetNode(directededge.EndNode)
	opp := structs.MakeGraphId(directededge.EndNode.TileId(), directededge.EndNode.Level(), endnode.EdgeIndex+directededge.OppIndex)
	return opp, true
}

// Returns the node info at the end of an edge.
func (self *GraphReader) GetEndNode(edge structs.GraphId) (*NodeInfo, bool) {
	tile := self.GetGraphTile(edge)
	if tile == nil {
		return nil, false
	}
	endnode := tile.GetDirectedEdge(edge).EndNode
	endtile := self.GetGraphTile(endnode)
	if endtile == nil {
		return nil, false
	}
	return endtile.GetNode(endnode), true
}

// Returns the timezone index at a node, 0 if the node cannot be
// resolved.
func (self *GraphReader) GetTimezone(node structs.GraphId) int16 {
	tile := self.GetGraphTile(node)
	if tile == nil {
		return 0
	}
	return tile.GetNode(node).Timezone
}
