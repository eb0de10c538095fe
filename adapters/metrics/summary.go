package metrics

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"tabreport/domain/report"
	"tabreport/domain/table"
)

// ColumnSummaryID is the stable type tag for the per-column summary metric
const ColumnSummaryID = "column_summary"

// SummaryStats are the scalar descriptive statistics of one column. They
// are small enough to carry in both representations; only the bulk series
// is subject to the raw/aggregated split.
type SummaryStats struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Q25      float64 `json:"q25"`
	Q75      float64 `json:"q75"`
	Outliers int     `json:"outliers"`
	IsNormal bool    `json:"is_normal"`
	ShapiroP float64 `json:"shapiro_p"`
}

// ValueSeries is the raw representation: the cleaned column values
type ValueSeries struct {
	Values []float64 `json:"values"`
}

// ColumnSummaryResult combines scalar statistics with the bulk series
// variant for one column.
type ColumnSummaryResult struct {
	Column    string        `json:"column"`
	Current   SummaryStats  `json:"current"`
	Reference *SummaryStats `json:"reference,omitempty"`

	Series report.Pair[ValueSeries, Histogram] `json:"series"`
}

// Representation reports the populated branch of the bulk series
func (r *ColumnSummaryResult) Representation() report.Representation {
	return r.Series.Representation()
}

// ColumnSummary computes descriptive statistics for one numeric column
type ColumnSummary struct {
	Column string         `json:"column"`
	Opts   report.Options `json:"options"`
	Bins   int            `json:"bins,omitempty"`
}

// NewColumnSummary creates the metric for one column
func NewColumnSummary(column string, opts report.Options) *ColumnSummary {
	return &ColumnSummary{Column: column, Opts: opts}
}

func (m *ColumnSummary) ID() string              { return ColumnSummaryID }
func (m *ColumnSummary) Options() report.Options { return m.Opts }

func (m *ColumnSummary) Calculate(data report.InputData) (report.Result, error) {
	current, err := m.cleanValues(data.Current, data.Definition.Datetime)
	if err != nil {
		return nil, err
	}
	res := &ColumnSummaryResult{
		Column:  m.Column,
		Current: Describe(current),
	}

	var reference []float64
	if data.HasReference() && data.Reference.HasColumn(m.Column) {
		reference, err = m.cleanValues(data.Reference, data.Definition.Datetime)
		if err != nil {
			return nil, err
		}
		refStats := Describe(reference)
		res.Reference = &refStats
	}

	if !m.Opts.AggData {
		var refSeries *ValueSeries
		if res.Reference != nil {
			refSeries = &ValueSeries{Values: reference}
		}
		res.Series = report.RawPair[ValueSeries, Histogram](ValueSeries{Values: current}, refSeries)
		return res, nil
	}

	var refHist *Histogram
	if res.Reference != nil {
		h := BinValues(reference, m.Bins)
		refHist = &h
	}
	res.Series = report.AggPair[ValueSeries, Histogram](BinValues(current, m.Bins), refHist)
	return res, nil
}

func (m *ColumnSummary) cleanValues(t *table.Table, datetime string) ([]float64, error) {
	if !t.HasColumn(m.Column) {
		return nil, errMissingFeature(m.ID(), m.Column)
	}
	plot := table.OrderForPlot(t, datetime, m.Column)
	values, ok := plot.Floats(m.Column)
	if !ok {
		return nil, errMissingFeature(m.ID(), m.Column)
	}
	return values, nil
}

// Describe computes summary statistics over already-cleaned values.
// Well-defined on empty input: a zeroed summary.
func Describe(values []float64) SummaryStats {
	if len(values) == 0 {
		return SummaryStats{}
	}
	mean, _ := stats.Mean(values)
	stdDev, _ := stats.StandardDeviation(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)
	median, _ := stats.Median(values)
	q25, _ := stats.Percentile(values, 25)
	q75, _ := stats.Percentile(values, 75)

	isNormal, shapiroP := testNormality(values, mean, stdDev)

	return SummaryStats{
		Count:    len(values),
		Mean:     mean,
		StdDev:   stdDev,
		Min:      min,
		Max:      max,
		Median:   median,
		Q25:      q25,
		Q75:      q75,
		Outliers: countOutliers(values, q25, q75),
		IsNormal: isNormal,
		ShapiroP: shapiroP,
	}
}

// countOutliers identifies outliers using the IQR method
func countOutliers(values []float64, q25, q75 float64) int {
	iqr := q75 - q25
	lower := q25 - 1.5*iqr
	upper := q75 + 1.5*iqr
	count := 0
	for _, v := range values {
		if v < lower || v > upper {
			count++
		}
	}
	return count
}

// testNormality runs a simplified skewness/kurtosis normality check with an
// approximate p-value from a chi-squared distribution.
func testNormality(values []float64, mean, stdDev float64) (bool, float64) {
	if len(values) < 3 || stdDev == 0 {
		return false, 1.0
	}
	skewness := sampleSkewness(values, mean, stdDev)
	kurtosis := sampleKurtosis(values, mean, stdDev)

	testStat := math.Abs(skewness) + math.Abs(kurtosis-3)/2
	chiDist := distuv.ChiSquared{K: 2}
	pValue := 1 - chiDist.CDF(testStat*testStat)
	return pValue > 0.05, pValue
}

// sampleSkewness computes the adjusted Fisher-Pearson coefficient
func sampleSkewness(values []float64, mean, stdDev float64) float64 {
	if len(values) < 3 {
		return 0
	}
	n := float64(len(values))
	sum := 0.0
	for _, v := range values {
		d := (v - mean) / stdDev
		sum += d * d * d
	}
	return (sum / n) * math.Sqrt(n*(n-1)) / (n - 2)
}

// sampleKurtosis computes bias-corrected sample kurtosis (not excess)
func sampleKurtosis(values []float64, mean, stdDev float64) float64 {
	if len(values) < 4 {
		return 0
	}
	n := float64(len(values))
	sum := 0.0
	for _, v := range values {
		d := (v - mean) / stdDev
		sum += d * d * d * d
	}
	excess := sum/n - 3
	correction := (n - 1) / ((n - 2) * (n - 3))
	return excess*correction + 6/(n+1) + 3
}
