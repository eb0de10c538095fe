package table

// Role classifies a column's function within a run
type Role string

const (
	RoleTarget     Role = "target"
	RolePrediction Role = "prediction"
	RoleDatetime   Role = "datetime"
	RoleRowID      Role = "row_id"
	RoleFeature    Role = "feature"
)

// ColumnDef describes one column known to a run
type ColumnDef struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
	Role Role   `json:"role"`
}

// DataDefinition is derived once per run from both datasets and the column
// mapping, and reused for additional-feature computation.
type DataDefinition struct {
	Columns    []ColumnDef `json:"columns"`
	Target     string      `json:"target,omitempty"`
	Prediction []string    `json:"prediction,omitempty"`
	Datetime   string      `json:"datetime,omitempty"`
}

// Get returns the definition for a named column
func (d DataDefinition) Get(name string) (ColumnDef, bool) {
	for _, col := range d.Columns {
		if col.Name == name {
			return col, true
		}
	}
	return ColumnDef{}, false
}

// CreateDataDefinition derives a DataDefinition from the reference and
// current tables plus the column mapping. The current table is
// authoritative; reference-only columns are appended after it.
func CreateDataDefinition(reference, current *Table, mapping ColumnMapping) DataDefinition {
	info := ProcessColumns(current, mapping)

	roles := map[string]Role{}
	if info.Utility.Target != "" {
		roles[info.Utility.Target] = RoleTarget
	}
	if info.Utility.Datetime != "" {
		roles[info.Utility.Datetime] = RoleDatetime
	}
	if info.Utility.RowID != "" {
		roles[info.Utility.RowID] = RoleRowID
	}
	for _, p := range info.Utility.Prediction {
		roles[p] = RolePrediction
	}

	def := DataDefinition{
		Target:     info.Utility.Target,
		Prediction: info.Utility.Prediction,
		Datetime:   info.Utility.Datetime,
	}

	seen := map[string]bool{}
	appendColumns := func(t *Table) {
		if t == nil {
			return
		}
		for _, col := range t.Columns {
			if seen[col.Name] {
				continue
			}
			seen[col.Name] = true
			role, ok := roles[col.Name]
			if !ok {
				role = RoleFeature
			}
			def.Columns = append(def.Columns, ColumnDef{Name: col.Name, Kind: col.Kind, Role: role})
		}
	}
	appendColumns(current)
	appendColumns(reference)

	return def
}
