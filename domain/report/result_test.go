package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabreport/domain/core"
)

type rawShape struct {
	Values []float64
}

type aggShape struct {
	Counts []int
}

func TestRawVariantExcludesAggBranch(t *testing.T) {
	v := RawVariant[rawShape, aggShape](rawShape{Values: []float64{1, 2}})

	assert.Equal(t, RepresentationRaw, v.Representation())

	raw, err := v.RawData()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, raw.Values)

	_, err = v.AggData()
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrMissingRepresentation)
}

func TestAggVariantExcludesRawBranch(t *testing.T) {
	v := AggVariant[rawShape, aggShape](aggShape{Counts: []int{3}})

	assert.Equal(t, RepresentationAggregated, v.Representation())

	agg, err := v.AggData()
	require.NoError(t, err)
	assert.Equal(t, []int{3}, agg.Counts)

	_, err = v.RawData()
	assert.ErrorIs(t, err, core.ErrMissingRepresentation)
}

func TestPairReferenceMirrorsKind(t *testing.T) {
	ref := rawShape{Values: []float64{9}}
	p := RawPair[rawShape, aggShape](rawShape{Values: []float64{1}}, &ref)

	require.True(t, p.HasReference())
	assert.Equal(t, RepresentationRaw, p.Representation())
	assert.Equal(t, RepresentationRaw, p.Reference.Representation())
}

func TestPairWithoutReference(t *testing.T) {
	p := AggPair[rawShape, aggShape](aggShape{Counts: []int{1}}, nil)
	assert.False(t, p.HasReference())
	assert.Equal(t, RepresentationAggregated, p.Representation())
}
