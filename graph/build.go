package graph

import (
	"sort"

	"github.com/ttpr0/go-expansion/geo"
	"github.com/ttpr0/go-expansion/structs"
	. "github.com/ttpr0/go-expansion/util"
)

//*******************************************
// graph builder
//*******************************************

// EdgeOptions parameterizes an edge pair added to the builder. Access
// masks are given per travel direction between the two nodes.
type EdgeOptions struct {
	Length   float32
	Speed    int16
	Use      Use
	Class    RoadClass
	AccessAB Access
	AccessBA Access
	LineId   int32
	Shortcut bool
}

type build_node struct {
	id          structs.GraphId
	loc         geo.Coord
	timezone    int16
	typ         NodeType
	access      Access
	name        int32
	edges       List[int32]
	transitions List[structs.GraphId]
}

type build_edge struct {
	from structs.GraphId
	to   structs.GraphId
	opp  int32

	forward_access Access
	reverse_access Access
	length         float32
	speed          int16
	use            Use
	class          RoadClass
	lineid         int32
	shortcut       bool

	// assigned during Build
	final structs.GraphId
}

type build_tile struct {
	id         structs.GraphId
	base       geo.Coord
	date       int32
	nodes      List[*build_node]
	departures Dict[int32, List[TransitDeparture]]
	routes     Dict[int32, TransitRoute]
	names      List[string]
}

// GraphBuilder assembles an immutable GraphStore. Used by the osm
// importer and by tests to create synthetic graphs.
type GraphBuilder struct {
	tiles Dict[structs.GraphId, *build_tile]
	edges List[*build_edge]
}

func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{
		tiles: NewDict[structs.GraphId, *build_tile](10),
		edges: NewList[*build_edge](100),
	}
}

func (self *GraphBuilder) add_tile(tileid int32, level uint8) *build_tile {
	base := structs.MakeGraphId(tileid, level, 0)
	tile, ok := self.tiles[base]
	if !ok {
		tile = &build_tile{
			id:         base,
			departures: NewDict[int32, List[TransitDeparture]](4),
			routes:     NewDict[int32, TransitRoute](4),
			nodes:      NewList[*build_node](10),
			names:      NewList[string](4),
		}
		self.tiles[base] = tile
	}
	return tile
}

func (self *GraphBuilder) AddNode(tileid int32, level uint8, loc geo.Coord) structs.GraphId {
	tile := self.add_tile(tileid, level)
	id := structs.MakeGraphId(tileid, level, int32(tile.nodes.Length()))
	tile.nodes.Add(&build_node{
		id:     id,
		loc:    loc,
		access: ACCESS_ALL,
		name:   -1,
	})
	return id
}

func (self *GraphBuilder) SetNodeTimezone(node structs.GraphId, timezone int16) {
	self.get_node(node).timezone = timezone
}
func (self *GraphBuilder) SetNodeType(node structs.GraphId, typ NodeType) {
	self.get_node(node).typ = typ
}
func (self *GraphBuilder) SetNodeAccess(node structs.GraphId, access Access) {
	self.get_node(node).access = access
}
func (self *GraphBuilder) SetNodeName(node structs.GraphId, name int32) {
	self.get_node(node).name = name
}

func (self *GraphBuilder) get_node(node structs.GraphId) *build_node {
	tile, ok := self.tiles[node.Tile()]
	if !ok {
		panic("builder: unknown tile: " + node.String())
	}
	return tile.nodes[node.Index()]
}

// Adds both directed edges of a segment between a and b. Returns the
// ids of the a->b and the b->a edge.
func (self *GraphBuilder) AddEdgePair(a, b structs.GraphId, opts EdgeOptions) (structs.GraphId, structs.GraphId) {
	ab := &build_edge{
		from:           a,
		to:             b,
		forward_access: opts.AccessAB,
		reverse_access: opts.AccessBA,
		length:         opts.Length,
		speed:          opts.Speed,
		use:            opts.Use,
		class:          opts.Class,
		lineid:         opts.LineId,
		shortcut:       opts.Shortcut,
	}
	ba := &build_edge{
		from:           b,
		to:             a,
		forward_access: opts.AccessBA,
		reverse_access: opts.AccessAB,
		length:         opts.Length,
		speed:          opts.Speed,
		use:            opts.Use,
		class:          opts.Class,
		lineid:         opts.LineId,
		shortcut:       opts.Shortcut,
	}
	index_ab := int32(self.edges.Length())
	self.edges.Add(ab)
	index_ba := int32(self.edges.Length())
	self.edges.Add(ba)
	ab.opp = index_ba
	ba.opp = index_ab
	self.get_node(a).edges.Add(index_ab)
	self.get_node(b).edges.Add(index_ba)

	// final ids are assigned in Build; return stable placeholders
	return self.build_pending(index_ab), self.build_pending(index_ba)
}

// pending edge ids encode the builder-internal edge index; they are
// remapped to tile-local ids by Build and resolved via EdgeId.
func (self *GraphBuilder) build_pending(index int32) structs.GraphId {
	return structs.MakeGraphId(0, 0xFF, index)
}

// Resolves a pending edge id returned by AddEdgePair to the final
// graph id. Only valid after Build has been called.
func (self *GraphBuilder) EdgeId(pending structs.GraphId) structs.GraphId {
	if pending.Level() != 0xFF {
		return pending
	}
	return self.edges[pending.Index()].final
}

// Adds a directed cross-level transition from one node to another.
func (self *GraphBuilder) AddTransition(from, to structs.GraphId) {
	self.get_node(from).transitions.Add(to)
}

func (self *GraphBuilder) AddDeparture(tileid int32, level uint8, dep TransitDeparture) {
	tile := self.add_tile(tileid, level)
	deps := tile.departures[dep.LineId]
	if deps == nil {
		deps = NewList[TransitDeparture](4)
	}
	deps.Add(dep)
	tile.departures[dep.LineId] = deps
}

func (self *GraphBuilder) AddRoute(tileid int32, level uint8, route TransitRoute) {
	tile := self.add_tile(tileid, level)
	tile.routes[route.RouteId] = route
}

// Adds a name to the tile's name pool and returns its offset.
func (self *GraphBuilder) AddName(tileid int32, level uint8, name string) int32 {
	tile := self.add_tile(tileid, level)
	tile.names.Add(name)
	return int32(tile.names.Length() - 1)
}

func (self *GraphBuilder) SetTileBase(tileid int32, level uint8, base geo.Coord) {
	self.add_tile(tileid, level).base = base
}
func (self *GraphBuilder) SetTileDate(tileid int32, level uint8, date int32) {
	self.add_tile(tileid, level).date = date
}

// Lays out the collected nodes and edges into immutable tiles. Edge
// slices are grouped per source node, opposing-edge offsets and
// transition slices are resolved.
func (self *GraphBuilder) Build() *GraphStore {
	store := &GraphStore{
		tiles:    NewDict[structs.GraphId, *Tile](self.tiles.Length()),
		tile_ids: NewList[structs.GraphId](self.tiles.Length()),
	}

	// first pass: lay out edge slices and assign final edge ids
	for base, bt := range self.tiles {
		edge_index := int32(0)
		for _, node := range bt.nodes {
			for _, ei := range node.edges {
				edge := self.edges[ei]
				edge.final = structs.MakeGraphId(base.TileId(), base.Level(), edge_index)
				edge_index += 1
			}
		}
	}

	// second pass: materialize tiles
	for base, bt := range self.tiles {
		nodes := NewArray[NodeInfo](bt.nodes.Length())
		edges := NewList[DirectedEdge](0)
		transitions := NewList[NodeTransition](0)
		for i, node := range bt.nodes {
			info := NodeInfo{
				Loc:             node.loc,
				EdgeIndex:       int32(edges.Length()),
				EdgeCount:       int16(node.edges.Length()),
				TransitionIndex: int32(transitions.Length()),
				TransitionCount: int16(node.transitions.Length()),
				Timezone:        node.timezone,
				Type:            node.typ,
				Access:          node.access,
				Name:            node.name,
			}
			for local, ei := range node.edges {
				edge := self.edges[ei]
				opp := self.edges[edge.opp]
				opp_node := self.get_node(opp.from)
				opp_local := int32(-1)
				for j, oei := range opp_node.edges {
					if oei == edge.opp {
						opp_local = int32(j)
						break
					}
				}
				edges.Add(DirectedEdge{
					EndNode:       edge.to,
					OppIndex:      opp_local,
					ForwardAccess: edge.forward_access,
					ReverseAccess: edge.reverse_access,
					Shortcut:      edge.shortcut,
					LocalEdgeIdx:  int16(local),
					Length:        edge.length,
					Speed:         edge.speed,
					Use:           edge.use,
					Class:         edge.class,
					LineId:        edge.lineid,
				})
			}
			for _, target := range node.transitions {
				transitions.Add(NodeTransition{EndNode: target})
			}
			nodes[i] = info
		}

		departures := NewDict[int32, Array[TransitDeparture]](bt.departures.Length())
		for lineid, deps := range bt.departures {
			sorted := Array[TransitDeparture](deps)
			sort.Slice(sorted, func(i, j int) bool {
				return sorted[i].DepartureTime < sorted[j].DepartureTime
			})
			departures[lineid] = sorted
		}

		tile := &Tile{
			id:          base,
			header:      TileHeader{BaseLL: bt.base, DateCreated: bt.date},
			nodes:       nodes,
			edges:       Array[DirectedEdge](edges),
			transitions: Array[NodeTransition](transitions),
			departures:  departures,
			routes:      bt.routes,
			names:       Array[string](bt.names),
		}
		store.tiles[base] = tile
		store.tile_ids.Add(base)
	}
	sort.Slice(store.tile_ids, func(i, j int) bool {
		return store.tile_ids[i] < store.tile_ids[j]
	})

	return store
}
