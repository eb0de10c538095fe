package metrics

import (
	"gonum.org/v1/gonum/floats"
)

// DefaultBins is the bin count used when a metric does not override it.
// The bucketing method itself is a package-level strategy: metrics call
// BinValues/BinPairs, so swapping the binning scheme swaps it everywhere.
const DefaultBins = 10

// Histogram is a fixed-width binned summary of one value series.
// Edges has len(Counts)+1 entries; both are empty for empty input.
type Histogram struct {
	Edges  []float64 `json:"edges"`
	Counts []int     `json:"counts"`
}

// Total returns the number of values captured by the histogram
func (h Histogram) Total() int {
	total := 0
	for _, c := range h.Counts {
		total += c
	}
	return total
}

// Grid is a 2-D binned summary of a paired series. Counts is indexed
// [x][y]; all slices are empty for empty input.
type Grid struct {
	XEdges []float64 `json:"x_edges"`
	YEdges []float64 `json:"y_edges"`
	Counts [][]int   `json:"counts"`
}

// BinValues buckets values into a fixed-width histogram. Empty input yields
// an empty histogram, not an error.
func BinValues(values []float64, bins int) Histogram {
	if bins <= 0 {
		bins = DefaultBins
	}
	if len(values) == 0 {
		return Histogram{Edges: []float64{}, Counts: []int{}}
	}
	edges := binEdges(floats.Min(values), floats.Max(values), bins)
	counts := make([]int, bins)
	for _, v := range values {
		counts[bucketIndex(edges, v)]++
	}
	return Histogram{Edges: edges, Counts: counts}
}

// BinPairs buckets an (x, y) paired series into a fixed-width 2-D grid.
// Both slices must be row-aligned; empty input yields an empty grid.
func BinPairs(xs, ys []float64, bins int) Grid {
	if bins <= 0 {
		bins = DefaultBins
	}
	if len(xs) == 0 || len(ys) == 0 {
		return Grid{XEdges: []float64{}, YEdges: []float64{}, Counts: [][]int{}}
	}
	xEdges := binEdges(floats.Min(xs), floats.Max(xs), bins)
	yEdges := binEdges(floats.Min(ys), floats.Max(ys), bins)
	counts := make([][]int, bins)
	for i := range counts {
		counts[i] = make([]int, bins)
	}
	for i := range xs {
		counts[bucketIndex(xEdges, xs[i])][bucketIndex(yEdges, ys[i])]++
	}
	return Grid{XEdges: xEdges, YEdges: yEdges, Counts: counts}
}

// binEdges spreads bins+1 edges evenly over [min, max]. A degenerate range
// (min == max) still produces distinct edges so every value lands in a bin.
func binEdges(min, max float64, bins int) []float64 {
	if min == max {
		max = min + 1
	}
	edges := make([]float64, bins+1)
	width := (max - min) / float64(bins)
	for i := range edges {
		edges[i] = min + float64(i)*width
	}
	edges[bins] = max
	return edges
}

// bucketIndex places v into a bucket; the final edge is inclusive
func bucketIndex(edges []float64, v float64) int {
	last := len(edges) - 2
	for i := 0; i < last; i++ {
		if v < edges[i+1] {
			return i
		}
	}
	return last
}
