package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinValuesCountsEveryValue(t *testing.T) {
	values := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	h := BinValues(values, 5)

	require.Len(t, h.Edges, 6)
	require.Len(t, h.Counts, 5)
	assert.Equal(t, len(values), h.Total())
	assert.Equal(t, 0.0, h.Edges[0])
	assert.Equal(t, 10.0, h.Edges[5])
}

func TestBinValuesLastEdgeInclusive(t *testing.T) {
	h := BinValues([]float64{0, 10}, 2)
	// the maximum lands in the last bucket, not past it
	assert.Equal(t, []int{1, 1}, h.Counts)
}

func TestBinValuesEmptyInput(t *testing.T) {
	h := BinValues(nil, 5)
	assert.Empty(t, h.Edges)
	assert.Empty(t, h.Counts)
	assert.Equal(t, 0, h.Total())
}

func TestBinValuesDegenerateRange(t *testing.T) {
	h := BinValues([]float64{3, 3, 3}, 4)
	assert.Equal(t, 3, h.Total())
}

func TestBinValuesDefaultBins(t *testing.T) {
	h := BinValues([]float64{1, 2, 3}, 0)
	assert.Len(t, h.Counts, DefaultBins)
}

func TestBinPairsGridShape(t *testing.T) {
	xs := []float64{0, 1, 2, 3}
	ys := []float64{10, 11, 12, 13}
	g := BinPairs(xs, ys, 2)

	require.Len(t, g.Counts, 2)
	require.Len(t, g.Counts[0], 2)
	total := 0
	for _, row := range g.Counts {
		for _, c := range row {
			total += c
		}
	}
	assert.Equal(t, 4, total)
}

func TestBinPairsEmptyInput(t *testing.T) {
	g := BinPairs(nil, nil, 3)
	assert.Empty(t, g.XEdges)
	assert.Empty(t, g.Counts)
}
