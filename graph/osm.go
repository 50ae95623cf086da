package graph

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"golang.org/x/exp/slog"

	"github.com/ttpr0/go-expansion/geo"
	"github.com/ttpr0/go-expansion/structs"
	. "github.com/ttpr0/go-expansion/util"
)

//*******************************************
// osm import
//*******************************************

// Tile grid size in degrees. Nodes are assigned to tiles by location.
const TILE_SIZE = 0.25

func TileIdFromCoord(loc geo.Coord) int32 {
	col := int32((loc[0] + 180.0) / TILE_SIZE)
	row := int32((loc[1] + 90.0) / TILE_SIZE)
	return row*1440 + col
}

var highway_speeds = Dict[string, int16]{
	"motorway": 100, "motorway_link": 60,
	"trunk": 85, "trunk_link": 60,
	"primary": 65, "primary_link": 50,
	"secondary": 60, "secondary_link": 50,
	"tertiary": 50, "tertiary_link": 40,
	"residential": 30, "living_street": 10,
	"service": 20, "track": 15,
	"unclassified": 30, "road": 30,
}

var highway_classes = Dict[string, RoadClass]{
	"motorway": CLASS_MOTORWAY, "motorway_link": CLASS_MOTORWAY,
	"trunk": CLASS_TRUNK, "trunk_link": CLASS_TRUNK,
	"primary": CLASS_PRIMARY, "primary_link": CLASS_PRIMARY,
	"secondary": CLASS_SECONDARY, "secondary_link": CLASS_SECONDARY,
	"tertiary": CLASS_TERTIARY, "tertiary_link": CLASS_TERTIARY,
	"residential": CLASS_RESIDENTIAL, "living_street": CLASS_RESIDENTIAL,
	"service": CLASS_SERVICE, "track": CLASS_SERVICE,
	"unclassified": CLASS_OTHER, "road": CLASS_OTHER,
}

type osm_temp_node struct {
	point geo.Coord
	count int32
}

// ImportOSM reads an OSM pbf extract and assembles a single-level
// in-memory tile set. All nodes are stamped with the given timezone
// index.
func ImportOSM(pbf_file string, timezone int16) *GraphStore {
	osm_nodes := NewDict[int64, osm_temp_node](10000)

	file, err := os.Open(pbf_file)
	if err != nil {
		panic(err)
	}
	defer file.Close()

	// pass 1: mark way nodes and count usages to find junctions
	scanner := osmpbf.New(context.Background(), file, runtime.GOMAXPROCS(-1))
	scan_init_ways(scanner, osm_nodes)
	scanner.Close()
	file.Seek(0, 0)

	// pass 2: collect node coordinates
	scanner = osmpbf.New(context.Background(), file, runtime.GOMAXPROCS(-1))
	scan_nodes(scanner, osm_nodes)
	scanner.Close()
	file.Seek(0, 0)

	// pass 3: split ways at junctions into edges
	builder := NewGraphBuilder()
	node_mapping := NewDict[int64, structs.GraphId](10000)
	scanner = osmpbf.New(context.Background(), file, runtime.GOMAXPROCS(-1))
	scan_ways(scanner, osm_nodes, builder, node_mapping, timezone)
	scanner.Close()

	store := builder.Build()
	slog.Info(fmt.Sprintf("imported osm graph: %v tiles, %v nodes, %v edges", store.TileCount(), store.NodeCount(), store.EdgeCount()))
	return store
}

func is_valid_highway(tags Dict[string, string]) bool {
	return tags.ContainsKey("highway") && highway_speeds.ContainsKey(tags.Get("highway"))
}

func scan_init_ways(scanner *osmpbf.Scanner, osm_nodes Dict[int64, osm_temp_node]) {
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}
		tags := Dict[string, string](way.TagMap())
		if !is_valid_highway(tags) {
			continue
		}
		refs := way.Nodes.NodeIDs()
		l := len(refs)
		for i := 0; i < l; i++ {
			ref := refs[i].FeatureID().Ref()
			node := osm_nodes[ref]
			node.count += 1
			// way endpoints always become graph nodes
			if i == 0 || i == l-1 {
				node.count += 1
			}
			osm_nodes[ref] = node
		}
	}
}

func scan_nodes(scanner *osmpbf.Scanner, osm_nodes Dict[int64, osm_temp_node]) {
	scanner.SkipWays = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		object, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		id := object.FeatureID().Ref()
		if !osm_nodes.ContainsKey(id) {
			continue
		}
		node := osm_nodes[id]
		node.point = geo.MakeCoord(object.Lon, object.Lat)
		osm_nodes[id] = node
	}
}

func scan_ways(scanner *osmpbf.Scanner, osm_nodes Dict[int64, osm_temp_node], builder *GraphBuilder, node_mapping Dict[int64, structs.GraphId], timezone int16) {
	get_node := func(ref int64) structs.GraphId {
		if id, ok := node_mapping[ref]; ok {
			return id
		}
		point := osm_nodes[ref].point
		id := builder.AddNode(TileIdFromCoord(point), 0, point)
		builder.SetNodeTimezone(id, timezone)
		node_mapping[ref] = id
		return id
	}

	scanner.SkipNodes = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}
		tags := Dict[string, string](way.TagMap())
		if !is_valid_highway(tags) {
			continue
		}
		highway := tags.Get("highway")
		speed := highway_speeds.Get(highway)
		class := highway_classes.Get(highway)
		oneway := tags.Get("oneway") == "yes" || highway == "motorway" || tags.Get("junction") == "roundabout"

		access_fwd := ACCESS_AUTO | ACCESS_PEDESTRIAN | ACCESS_BICYCLE | ACCESS_BUS
		access_bwd := access_fwd
		if oneway {
			access_bwd = ACCESS_PEDESTRIAN
		}

		refs := way.Nodes.NodeIDs()
		l := len(refs)
		start := refs[0].FeatureID().Ref()
		length := float32(0)
		prev := osm_nodes[start].point
		for i := 1; i < l; i++ {
			ref := refs[i].FeatureID().Ref()
			node := osm_nodes[ref]
			length += float32(geo.Dist(prev, node.point))
			prev = node.point
			if node.count > 1 {
				a := get_node(start)
				b := get_node(ref)
				builder.AddEdgePair(a, b, EdgeOptions{
					Length:   length,
					Speed:    speed,
					Use:      USE_ROAD,
					Class:    class,
					AccessAB: access_fwd,
					AccessBA: access_bwd,
				})
				start = ref
				length = 0
			}
		}
	}
}
