package table

// ColumnMapping declares the semantic roles of dataset columns. Empty
// fields fall back to conventional column names ("target", "prediction",
// "datetime") when such columns exist in the data.
type ColumnMapping struct {
	Target              string   `json:"target,omitempty"`
	Prediction          []string `json:"prediction,omitempty"`
	Datetime            string   `json:"datetime,omitempty"`
	RowID               string   `json:"row_id,omitempty"`
	NumericalFeatures   []string `json:"numerical_features,omitempty"`
	CategoricalFeatures []string `json:"categorical_features,omitempty"`
}

// Conventional column names used when the mapping leaves a role empty
const (
	defaultTargetColumn     = "target"
	defaultPredictionColumn = "prediction"
	defaultDatetimeColumn   = "datetime"
)

// UtilityColumns are the resolved role-bearing columns of a dataset
type UtilityColumns struct {
	Target     string   `json:"target,omitempty"`
	Prediction []string `json:"prediction,omitempty"`
	Datetime   string   `json:"datetime,omitempty"`
	RowID      string   `json:"row_id,omitempty"`
}

// ColumnsInfo is the result of resolving a ColumnMapping against a table
type ColumnsInfo struct {
	Utility     UtilityColumns `json:"utility"`
	Numerical   []string       `json:"numerical,omitempty"`
	Categorical []string       `json:"categorical,omitempty"`
}

// SinglePrediction returns the prediction column when exactly one is
// resolved. ok is false for zero or multiple prediction columns.
func (c ColumnsInfo) SinglePrediction() (string, bool) {
	if len(c.Utility.Prediction) == 1 {
		return c.Utility.Prediction[0], true
	}
	return "", false
}

// ProcessColumns resolves column roles for a table. Mapped columns that are
// absent from the table resolve to empty; features not listed in the
// mapping are inferred from column kinds, excluding utility columns.
func ProcessColumns(t *Table, mapping ColumnMapping) ColumnsInfo {
	info := ColumnsInfo{}
	info.Utility.Target = resolveRole(t, mapping.Target, defaultTargetColumn)
	info.Utility.Datetime = resolveRole(t, mapping.Datetime, defaultDatetimeColumn)
	if t.HasColumn(mapping.RowID) {
		info.Utility.RowID = mapping.RowID
	}

	if len(mapping.Prediction) > 0 {
		for _, name := range mapping.Prediction {
			if t.HasColumn(name) {
				info.Utility.Prediction = append(info.Utility.Prediction, name)
			}
		}
	} else if t.HasColumn(defaultPredictionColumn) {
		info.Utility.Prediction = []string{defaultPredictionColumn}
	}

	utility := map[string]bool{
		info.Utility.Target:   true,
		info.Utility.Datetime: true,
		info.Utility.RowID:    true,
	}
	for _, p := range info.Utility.Prediction {
		utility[p] = true
	}

	if len(mapping.NumericalFeatures) > 0 {
		info.Numerical = presentColumns(t, mapping.NumericalFeatures)
	} else {
		for _, col := range t.Columns {
			if col.Kind == KindNumeric && !utility[col.Name] {
				info.Numerical = append(info.Numerical, col.Name)
			}
		}
	}

	if len(mapping.CategoricalFeatures) > 0 {
		info.Categorical = presentColumns(t, mapping.CategoricalFeatures)
	} else {
		for _, col := range t.Columns {
			if col.Kind == KindString && !utility[col.Name] {
				info.Categorical = append(info.Categorical, col.Name)
			}
		}
	}

	return info
}

func resolveRole(t *Table, mapped, fallback string) string {
	if mapped != "" {
		if t.HasColumn(mapped) {
			return mapped
		}
		return ""
	}
	if t.HasColumn(fallback) {
		return fallback
	}
	return ""
}

func presentColumns(t *Table, names []string) []string {
	var present []string
	for _, name := range names {
		if t.HasColumn(name) {
			present = append(present, name)
		}
	}
	return present
}
