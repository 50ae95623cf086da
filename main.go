package main

import (
	"fmt"
	"os"

	"golang.org/x/exp/slog"

	"github.com/ttpr0/go-expansion/costing"
	"github.com/ttpr0/go-expansion/datetime"
	"github.com/ttpr0/go-expansion/geo"
	"github.com/ttpr0/go-expansion/graph"
	"github.com/ttpr0/go-expansion/onetomany"
	"github.com/ttpr0/go-expansion/reach"
	. "github.com/ttpr0/go-expansion/util"
)

func main() {
	slog.SetDefault(slog.New(NewLogHandler(os.Stdout, nil)))

	if len(os.Args) < 2 {
		fmt.Println("usage: go-expansion <import|isochrone|matrix|reach> [args]")
		return
	}
	config := ReadConfig("./config.yaml")

	switch os.Args[1] {
	case "import":
		run_import(config)
	case "isochrone":
		run_isochrone(config, os.Args[2:])
	case "matrix":
		run_matrix(config, os.Args[2:])
	case "reach":
		run_reach(config, os.Args[2:])
	default:
		fmt.Println("unknown command:", os.Args[1])
	}
}

//**********************************************************
// commands
//**********************************************************

// parse an osm extract into the tiled graph and store it
func run_import(config Config) {
	timezone := datetime.TimezoneIndex(config.Graph.Timezone)
	if timezone == 0 {
		slog.Warn("unknown timezone in config: " + config.Graph.Timezone)
	}
	store := graph.ImportOSM(config.Graph.OSM, timezone)
	graph.Store(store, config.Graph.File)

	summary := graph.Summarize(store)
	slog.Info(fmt.Sprintf("graph summary: %v tiles, %v nodes, %v edges, %.1f km roads", summary.Tiles, summary.Nodes, summary.Edges, summary.TotalLength))
	WriteJSONToFile(summary, config.Graph.File+".summary.json")
}

type location_row struct {
	Name string  `csv:"name"`
	Lon  float64 `csv:"lon"`
	Lat  float64 `csv:"lat"`
}

func load_locations(config Config, file string, index *graph.SnapIndex) ([]string, []*graph.Location) {
	radius := config.Snap.Radius
	if radius == 0 {
		radius = 300
	}
	max_candidates := config.Snap.MaxCandidates
	if max_candidates == 0 {
		max_candidates = 4
	}

	names := NewList[string](10)
	locations := NewList[*graph.Location](10)
	for row := range ReadCSVFromFile[location_row](file, ';') {
		location := index.Snap(geo.MakeCoord(row.Lon, row.Lat), radius, max_candidates)
		if location.PathEdges.Length() == 0 {
			slog.Warn("location could not be snapped: " + row.Name)
			continue
		}
		names.Add(row.Name)
		locations.Add(&location)
	}
	return names, locations
}

// one-to-many isochrone samples from the first location of a csv file
func run_isochrone(config Config, args []string) {
	if len(args) < 2 {
		fmt.Println("usage: go-expansion isochrone <locations.csv> <out.json>")
		return
	}
	store := graph.Load(config.Graph.File)
	index := graph.BuildSnapIndex(store)
	_, locations := load_locations(config, args[0], index)
	if len(locations) == 0 {
		slog.Error("no usable locations")
		return
	}
	mode_costing := BuildModeCosting(config)

	max_seconds := config.Services.Isochrone.MaxSeconds
	if max_seconds == 0 {
		max_seconds = 900
	}
	iso := onetomany.NewIsochrone(graph.NewGraphReader(store))
	points := iso.Compute(locations[:1], max_seconds, costing.DRIVE, mode_costing)
	WriteJSONToFile(points, args[1])
	slog.Info(fmt.Sprintf("isochrone finished with %v samples", len(points)))
}

// travel-time matrix between all locations of a csv file
func run_matrix(config Config, args []string) {
	if len(args) < 2 {
		fmt.Println("usage: go-expansion matrix <locations.csv> <out.json>")
		return
	}
	store := graph.Load(config.Graph.File)
	index := graph.BuildSnapIndex(store)
	names, locations := load_locations(config, args[0], index)
	if len(locations) == 0 {
		slog.Error("no usable locations")
		return
	}
	mode_costing := BuildModeCosting(config)

	max_seconds := config.Services.Matrix.MaxSeconds
	if max_seconds == 0 {
		max_seconds = 3600
	}
	matrix := onetomany.NewMatrix(graph.NewGraphReader(store))
	result := matrix.Compute(locations, locations, max_seconds, costing.DRIVE, mode_costing)

	type matrix_result struct {
		Names   []string    `json:"names"`
		Seconds [][]float32 `json:"seconds"`
	}
	out := matrix_result{Names: names}
	for r := 0; r < result.Rows(); r++ {
		row := make([]float32, result.Cols())
		for c := 0; c < result.Cols(); c++ {
			row[c] = result.Get(r, c)
		}
		out.Seconds = append(out.Seconds, row)
	}
	WriteJSONToFile(out, args[1])
	slog.Info("matrix finished")
}

// reach scores for the snap candidates of every location
func run_reach(config Config, args []string) {
	if len(args) < 2 {
		fmt.Println("usage: go-expansion reach <locations.csv> <out.json>")
		return
	}
	store := graph.Load(config.Graph.File)
	index := graph.BuildSnapIndex(store)
	names, locations := load_locations(config, args[0], index)
	mode_costing := BuildModeCosting(config)
	tc := mode_costing[costing.DRIVE]
	reader := graph.NewGraphReader(store)

	max_reach := config.Services.Reach.MaxReach
	if max_reach == 0 {
		max_reach = 50
	}

	type edge_reach struct {
		Name  string              `json:"name"`
		Edge  string              `json:"edge"`
		Reach reach.DirectedReach `json:"reach"`
	}
	results := NewList[edge_reach](10)
	analyzer := reach.NewReach(reader)
	for i, location := range locations {
		for _, path_edge := range location.PathEdges {
			var r reach.DirectedReach
			if config.Services.Reach.CostAware {
				r = analyzer.Compute(path_edge.EdgeId, max_reach, tc, reach.OUTBOUND|reach.INBOUND)
			} else {
				r = reach.SimpleReach(path_edge.EdgeId, max_reach, reader, tc, reach.OUTBOUND|reach.INBOUND)
			}
			results.Add(edge_reach{Name: names[i], Edge: path_edge.EdgeId.String(), Reach: r})
		}
	}
	WriteJSONToFile(results, args[1])
	slog.Info(fmt.Sprintf("reach finished for %v candidates", results.Length()))
}
