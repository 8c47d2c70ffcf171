package features

import (
	"github.com/Kaushal-001/Telco-Customer-Churn/pkg/io"
)

// NormalizeDtypes rewrites Bool columns as Int{0, 1} so the encoded dataset
// carries a uniform numeric representation. Calling it again is a no-op.
func NormalizeDtypes(ds *io.Dataset) {
	for _, name := range ds.Names() {
		col, _ := ds.Column(name)
		if col.Kind != io.Bool {
			continue
		}
		ints := make([]int64, col.Len())
		for i, v := range col.Bools {
			if v {
				ints[i] = 1
			}
		}
		col.Kind = io.Int
		col.Ints = ints
		col.Bools = nil
	}
}
