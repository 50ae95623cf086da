package onetomany

import (
	"github.com/ttpr0/go-expansion/costing"
	"github.com/ttpr0/go-expansion/geo"
	"github.com/ttpr0/go-expansion/graph"
	"github.com/ttpr0/go-expansion/routing"
	"github.com/ttpr0/go-expansion/structs"
	"github.com/ttpr0/go-expansion/util"
)

//*******************************************
// time-distance matrix consumer
//*******************************************

type target_flag struct {
	secs float32
}

// Matrix computes source-by-target travel-time matrices by running
// one forward traversal per source and watching the settled labels
// for target edges.
type Matrix struct {
	dijkstras *routing.Dijkstras

	target_edges util.Dict[structs.GraphId, util.List[int32]]
	found        util.Flags[target_flag]
	remaining    int
	max_seconds  float32
}

func NewMatrix(reader *graph.GraphReader) *Matrix {
	matrix := &Matrix{}
	matrix.dijkstras = routing.NewDijkstras(reader, matrix)
	return matrix
}

func (self *Matrix) ExpandingNode(pred *costing.EdgeLabel, prev_pred *costing.EdgeLabel, node_ll geo.Coord) {
}

func (self *Matrix) ShouldExpand(pred *costing.EdgeLabel, typ routing.RoutingType) routing.ExpansionRecommendation {
	// record the first settlement of any target edge
	if targets, ok := self.target_edges[pred.EdgeId]; ok {
		for _, target := range targets {
			flag := self.found.Get(target)
			if flag.secs < 0 {
				flag.secs = pred.Cost.Secs
				self.remaining -= 1
			}
		}
	}
	if self.remaining <= 0 {
		return routing.STOP_EXPANSION
	}
	if pred.SortCost > self.max_seconds {
		return routing.STOP_EXPANSION
	}
	return routing.CONTINUE_EXPANSION
}

func (self *Matrix) GetExpansionHints() (int32, int32) {
	bucket_count := int32(self.max_seconds) + 1
	return bucket_count, bucket_count * 10
}

// Computes the travel-time matrix between the source and target
// locations. Unreached cells hold -1.
func (self *Matrix) Compute(sources []*graph.Location, targets []*graph.Location, max_seconds float32, mode costing.TravelMode, mode_costing [costing.MAX_TRAVEL_MODE]costing.DynamicCost) Matrix2D {
	self.max_seconds = max_seconds

	// index every snapped target edge
	self.target_edges = util.NewDict[structs.GraphId, util.List[int32]](len(targets))
	for i, target := range targets {
		for _, path_edge := range target.PathEdges {
			edges := self.target_edges[path_edge.EdgeId]
			if edges == nil {
				edges = util.NewList[int32](2)
			}
			edges.Add(int32(i))
			self.target_edges[path_edge.EdgeId] = edges
		}
	}

	result := NewMatrix2D(len(sources), len(targets))
	for s, source := range sources {
		self.found = util.NewFlags[target_flag](int32(len(targets)), target_flag{secs: -1})
		self.remaining = len(targets)
		self.dijkstras.Clear()
		self.dijkstras.Compute([]*graph.Location{source}, mode, mode_costing)
		for t := 0; t < len(targets); t++ {
			result.Set(s, t, self.found.Get(int32(t)).secs)
		}
		self.dijkstras.Clear()
	}
	return result
}

//*******************************************
// result matrix
//*******************************************

type Matrix2D struct {
	values util.Matrix[float32]
}

func NewMatrix2D(rows, cols int) Matrix2D {
	m := Matrix2D{
		values: util.NewMatrix[float32](rows, cols),
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			m.values.Set(r, c, -1)
		}
	}
	return m
}

func (self *Matrix2D) Get(row, col int) float32 {
	return self.values.Get(row, col)
}
func (self *Matrix2D) Set(row, col int, value float32) {
	self.values.Set(row, col, value)
}
func (self *Matrix2D) Rows() int {
	return self.values.Rows()
}
func (self *Matrix2D) Cols() int {
	return self.values.Cols()
}
