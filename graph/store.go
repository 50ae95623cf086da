package graph

import (
	"os"
	"sort"

	"github.com/ttpr0/go-expansion/structs"
	. "github.com/ttpr0/go-expansion/util"
)

//*******************************************
// graph store io
//*******************************************

// Stores the tile set to a single binary file.
func Store(store *GraphStore, file string) {
	writer := NewBufferWriter()

	Write(writer, int32(store.tile_ids.Length()))
	for _, tile_id := range store.tile_ids {
		tile := store.tiles[tile_id]
		Write(writer, uint64(tile.id))
		Write(writer, tile.header)
		WriteArray(writer, tile.nodes)
		WriteArray(writer, tile.edges)
		WriteArray(writer, tile.transitions)

		lineids := NewList[int32](tile.departures.Length())
		for lineid := range tile.departures {
			lineids.Add(lineid)
		}
		sort.Slice(lineids, func(i, j int) bool { return lineids[i] < lineids[j] })
		Write(writer, int32(lineids.Length()))
		for _, lineid := range lineids {
			Write(writer, lineid)
			WriteArray(writer, tile.departures[lineid])
		}

		routeids := NewList[int32](tile.routes.Length())
		for routeid := range tile.routes {
			routeids.Add(routeid)
		}
		sort.Slice(routeids, func(i, j int) bool { return routeids[i] < routeids[j] })
		Write(writer, int32(routeids.Length()))
		for _, routeid := range routeids {
			Write(writer, tile.routes[routeid])
		}

		Write(writer, int32(tile.names.Length()))
		for _, name := range tile.names {
			WriteString(writer, name)
		}
	}

	outfile, err := os.Create(file)
	if err != nil {
		panic("failed to create graph file: " + err.Error())
	}
	defer outfile.Close()
	outfile.Write(writer.Bytes())
}

// Loads a tile set written by Store.
func Load(file string) *GraphStore {
	data, err := os.ReadFile(file)
	if err != nil {
		panic("failed to read graph file: " + err.Error())
	}
	reader := NewBufferReader(data)

	store := &GraphStore{
		tiles:    NewDict[structs.GraphId, *Tile](10),
		tile_ids: NewList[structs.GraphId](10),
	}
	tile_count := Read[int32](reader)
	for t := int32(0); t < tile_count; t++ {
		tile := &Tile{}
		tile.id = structs.GraphId(Read[uint64](reader))
		tile.header = Read[TileHeader](reader)
		tile.nodes = ReadArray[NodeInfo](reader)
		tile.edges = ReadArray[DirectedEdge](reader)
		tile.transitions = ReadArray[NodeTransition](reader)

		line_count := Read[int32](reader)
		tile.departures = NewDict[int32, Array[TransitDeparture]](int(line_count))
		for i := int32(0); i < line_count; i++ {
			lineid := Read[int32](reader)
			tile.departures[lineid] = ReadArray[TransitDeparture](reader)
		}

		route_count := Read[int32](reader)
		tile.routes = NewDict[int32, TransitRoute](int(route_count))
		for i := int32(0); i < route_count; i++ {
			route := Read[TransitRoute](reader)
			tile.routes[route.RouteId] = route
		}

		name_count := Read[int32](reader)
		tile.names = NewArray[string](int(name_count))
		for i := int32(0); i < name_count; i++ {
			tile.names[i] = ReadString(reader)
		}

		store.tiles[tile.id] = tile
		store.tile_ids.Add(tile.id)
	}
	return store
}
