package graph

import (
	. "github.com/ttpr0/go-expansion/util"
)

//*******************************************
// graph summary
//*******************************************

// GraphSummary aggregates basic statistics over a tile set.
type GraphSummary struct {
	Tiles int `json:"tiles"`
	Nodes int `json:"nodes"`
	Edges int `json:"edges"`

	// one-directional length per road class in km
	ClassLengths Dict[string, float64] `json:"class_lengths"`
	// total one-directional road length in km
	TotalLength float64 `json:"total_length"`

	TransitLines int `json:"transit_lines"`
	Transitions  int `json:"transitions"`
	Shortcuts    int `json:"shortcuts"`
}

var class_names = map[RoadClass]string{
	CLASS_MOTORWAY:    "motorway",
	CLASS_TRUNK:       "trunk",
	CLASS_PRIMARY:     "primary",
	CLASS_SECONDARY:   "secondary",
	CLASS_TERTIARY:    "tertiary",
	CLASS_RESIDENTIAL: "residential",
	CLASS_SERVICE:     "service",
	CLASS_OTHER:       "other",
}

// Summarize walks all tiles and aggregates counts and lengths. Edge
// lengths are halved since every segment is stored twice.
func Summarize(store *GraphStore) GraphSummary {
	summary := GraphSummary{
		Tiles:        store.TileCount(),
		ClassLengths: NewDict[string, float64](8),
	}
	lines := NewDict[int32, bool](10)
	for _, tile_id := range store.TileIds() {
		tile, _ := store.GetTile(tile_id)
		summary.Nodes += tile.NodeCount()
		summary.Edges += tile.EdgeCount()
		summary.Transitions += tile.transitions.Length()
		for i := range tile.edges {
			edge := &tile.edges[i]
			if edge.IsShortcut() {
				summary.Shortcuts += 1
				continue
			}
			if edge.IsTransitLine() {
				lines[edge.LineId] = true
				continue
			}
			km := float64(edge.Length) / 2000.0
			summary.ClassLengths[class_names[edge.Class]] += km
			summary.TotalLength += km
		}
	}
	summary.TransitLines = lines.Length()
	return summary
}
