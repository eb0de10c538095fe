package ports

import (
	"tabreport/domain/table"
)

// DatasetReader loads a tabular dataset from an external source
type DatasetReader interface {
	ReadTable(path string) (*table.Table, error)
}
