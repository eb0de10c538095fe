package report

// Options are per-metric computation options, resolved once at metric
// construction from report-level defaults plus per-metric overrides. They
// are not reevaluated after a run starts.
type Options struct {
	// AggData selects the aggregated result representation instead of the
	// raw per-row one. Large datasets should run with AggData set.
	AggData bool `json:"agg_data"`
}

// DefaultOptions returns the options applied when a metric has no override
func DefaultOptions() Options {
	return Options{AggData: false}
}
