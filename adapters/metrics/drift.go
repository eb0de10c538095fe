package metrics

import (
	"gonum.org/v1/gonum/stat"

	"tabreport/domain/core"
	"tabreport/domain/report"
	"tabreport/domain/table"
)

// ColumnDriftID is the stable type tag for the drift metric
const ColumnDriftID = "column_drift"

// DriftShift are the scalar drift statistics for one column
type DriftShift struct {
	CurrentMean   float64 `json:"current_mean"`
	ReferenceMean float64 `json:"reference_mean"`
	// MeanShift is the mean difference in reference standard deviations
	MeanShift float64 `json:"mean_shift"`
	Drifted   bool    `json:"drifted"`
}

// DriftSeries is the raw representation: both cleaned value series
type DriftSeries struct {
	Current   []float64 `json:"current"`
	Reference []float64 `json:"reference"`
}

// DriftHistograms is the aggregated representation: a histogram per side
type DriftHistograms struct {
	Current   Histogram `json:"current"`
	Reference Histogram `json:"reference"`
}

// ColumnDriftResult combines the scalar shift with the bulk variant. Drift
// is inherently two-sided, so both series live in the current variant and
// the Pair's reference side stays empty.
type ColumnDriftResult struct {
	Column string     `json:"column"`
	Shift  DriftShift `json:"shift"`

	Series report.Pair[DriftSeries, DriftHistograms] `json:"series"`
}

// Representation reports the populated branch of the bulk series
func (r *ColumnDriftResult) Representation() report.Representation {
	return r.Series.Representation()
}

// ColumnDrift scores the distribution shift of one numeric column between
// the reference baseline and the current dataset. Threshold is in
// reference standard deviations; zero means the default.
type ColumnDrift struct {
	Column    string         `json:"column"`
	Threshold float64        `json:"threshold,omitempty"`
	Opts      report.Options `json:"options"`
	Bins      int            `json:"bins,omitempty"`
}

// defaultDriftThreshold flags a column when its mean moved by more than
// half a reference standard deviation.
const defaultDriftThreshold = 0.5

// NewColumnDrift creates the metric for one column
func NewColumnDrift(column string, opts report.Options) *ColumnDrift {
	return &ColumnDrift{Column: column, Opts: opts}
}

func (m *ColumnDrift) ID() string              { return ColumnDriftID }
func (m *ColumnDrift) Options() report.Options { return m.Opts }

func (m *ColumnDrift) Calculate(data report.InputData) (report.Result, error) {
	if !data.HasReference() {
		return nil, core.NewInvalidColumnsError(m.ID(), "reference dataset is required for drift")
	}
	current, err := m.cleanValues(data.Current)
	if err != nil {
		return nil, err
	}
	reference, err := m.cleanValues(data.Reference)
	if err != nil {
		return nil, err
	}

	res := &ColumnDriftResult{
		Column: m.Column,
		Shift:  m.shift(current, reference),
	}
	if !m.Opts.AggData {
		res.Series = report.RawPair[DriftSeries, DriftHistograms](
			DriftSeries{Current: current, Reference: reference}, nil)
		return res, nil
	}
	res.Series = report.AggPair[DriftSeries, DriftHistograms](DriftHistograms{
		Current:   BinValues(current, m.Bins),
		Reference: BinValues(reference, m.Bins),
	}, nil)
	return res, nil
}

func (m *ColumnDrift) cleanValues(t *table.Table) ([]float64, error) {
	if !t.HasColumn(m.Column) {
		return nil, errMissingFeature(m.ID(), m.Column)
	}
	filtered := table.FilterFinite(t, m.Column)
	values, ok := filtered.Floats(m.Column)
	if !ok {
		return nil, errMissingFeature(m.ID(), m.Column)
	}
	return values, nil
}

func (m *ColumnDrift) shift(current, reference []float64) DriftShift {
	threshold := m.Threshold
	if threshold <= 0 {
		threshold = defaultDriftThreshold
	}
	shift := DriftShift{}
	if len(current) > 0 {
		shift.CurrentMean = stat.Mean(current, nil)
	}
	if len(reference) > 0 {
		shift.ReferenceMean = stat.Mean(reference, nil)
	}
	if len(reference) > 1 {
		refStd := stat.StdDev(reference, nil)
		if refStd > 0 {
			shift.MeanShift = (shift.CurrentMean - shift.ReferenceMean) / refStd
		}
	}
	shift.Drifted = shift.MeanShift > threshold || shift.MeanShift < -threshold
	return shift
}
