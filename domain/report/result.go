package report

import (
	"tabreport/domain/core"
)

// Representation discriminates the two mutually exclusive result shapes
type Representation string

const (
	RepresentationRaw        Representation = "raw"
	RepresentationAggregated Representation = "aggregated"
)

// Result is produced by exactly one metric after execution and is immutable
// afterward. Representation reports which branch of the raw/aggregated
// duality was populated for the run.
type Result interface {
	Representation() Representation
}

// Variant is the tagged raw/aggregated union applied to one dataset side.
// Exactly one of Raw and Agg is populated, selected once at computation
// time; reading the other branch is a contract violation.
type Variant[R, A any] struct {
	Kind Representation `json:"kind"`
	Raw  *R             `json:"raw,omitempty"`
	Agg  *A             `json:"aggregated,omitempty"`
}

// RawVariant creates a raw-populated variant
func RawVariant[R, A any](data R) Variant[R, A] {
	return Variant[R, A]{Kind: RepresentationRaw, Raw: &data}
}

// AggVariant creates an aggregated-populated variant
func AggVariant[R, A any](data A) Variant[R, A] {
	return Variant[R, A]{Kind: RepresentationAggregated, Agg: &data}
}

// Representation returns the populated branch's discriminant
func (v Variant[R, A]) Representation() Representation {
	return v.Kind
}

// RawData returns the raw branch, or ErrMissingRepresentation when the
// variant was computed aggregated.
func (v Variant[R, A]) RawData() (*R, error) {
	if v.Kind != RepresentationRaw || v.Raw == nil {
		return nil, core.NewMissingRepresentationError(string(RepresentationRaw))
	}
	return v.Raw, nil
}

// AggData returns the aggregated branch, or ErrMissingRepresentation when
// the variant was computed raw.
func (v Variant[R, A]) AggData() (*A, error) {
	if v.Kind != RepresentationAggregated || v.Agg == nil {
		return nil, core.NewMissingRepresentationError(string(RepresentationAggregated))
	}
	return v.Agg, nil
}

// Pair carries the variant for the current dataset and, when a reference
// dataset was supplied, a reference variant of the same kind.
type Pair[R, A any] struct {
	Current   Variant[R, A]  `json:"current"`
	Reference *Variant[R, A] `json:"reference,omitempty"`
}

// RawPair builds a raw result pair; pass nil reference when absent
func RawPair[R, A any](current R, reference *R) Pair[R, A] {
	p := Pair[R, A]{Current: RawVariant[R, A](current)}
	if reference != nil {
		v := RawVariant[R, A](*reference)
		p.Reference = &v
	}
	return p
}

// AggPair builds an aggregated result pair; pass nil reference when absent
func AggPair[R, A any](current A, reference *A) Pair[R, A] {
	p := Pair[R, A]{Current: AggVariant[R, A](current)}
	if reference != nil {
		v := AggVariant[R, A](*reference)
		p.Reference = &v
	}
	return p
}

// Representation returns the populated branch of the current side; the
// reference side always mirrors it.
func (p Pair[R, A]) Representation() Representation {
	return p.Current.Kind
}

// HasReference reports whether the reference side is populated
func (p Pair[R, A]) HasReference() bool {
	return p.Reference != nil
}
