package features

import (
	"github.com/Kaushal-001/Telco-Customer-Churn/pkg/io"
)

// Split partitions dataset columns by the encoding each one needs. Order
// within each slice follows dataset column order, which keeps every
// downstream step deterministic for a given input schema.
type Split struct {
	Numeric    []string
	Binary     []string
	Multi      []string
	Degenerate []string
}

// Classify inspects every non-target column and assigns it to a partition.
// Numeric columns pass through untouched. Text columns are split on the
// number of distinct non-missing values: exactly two means binary, more
// means multi-category, fewer means the column is degenerate and carries no
// information to encode.
func Classify(ds *io.Dataset, target string) Split {
	var split Split
	for _, name := range ds.Names() {
		if name == target {
			continue
		}
		col, _ := ds.Column(name)
		if col.IsNumeric() {
			split.Numeric = append(split.Numeric, name)
			continue
		}
		switch n := len(col.Distinct()); {
		case n == 2:
			split.Binary = append(split.Binary, name)
		case n > 2:
			split.Multi = append(split.Multi, name)
		default:
			split.Degenerate = append(split.Degenerate, name)
		}
	}
	return split
}
