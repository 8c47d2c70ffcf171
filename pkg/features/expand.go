package features

import (
	"fmt"
	"strings"

	"github.com/Kaushal-001/Telco-Customer-Churn/pkg/io"
)

// MultiExpansion records how one multi-category column was expanded: the
// dropped reference level and the categories that became indicator columns.
type MultiExpansion struct {
	Column     string   `json:"column"`
	Reference  string   `json:"reference"`
	Categories []string `json:"categories"`
}

// ExpandMulti replaces each named column with k-1 indicator columns, one per
// category beyond the lexicographically first, which becomes the implicit
// reference level. Indicators are named <column>_<category> and appended
// after the surviving columns in source-column order. A row whose value is
// missing gets zeros across all of its column's indicators.
func ExpandMulti(ds *io.Dataset, names []string) ([]MultiExpansion, error) {
	var expansions []MultiExpansion
	var indicators []*io.Column
	for _, name := range names {
		col, ok := ds.Column(name)
		if !ok {
			return nil, fmt.Errorf("cannot expand missing column %s", name)
		}
		cats := col.Distinct()
		if len(cats) < 2 {
			continue
		}
		expansions = append(expansions, MultiExpansion{
			Column:     name,
			Reference:  cats[0],
			Categories: cats[1:],
		})
		for _, cat := range cats[1:] {
			values := make([]bool, col.Len())
			for i := 0; i < col.Len(); i++ {
				if col.Null[i] {
					continue
				}
				values[i] = strings.TrimSpace(col.Text[i]) == cat
			}
			indicators = append(indicators, io.NewBoolColumn(name+"_"+cat, values))
		}
	}
	for _, name := range names {
		ds.Drop(name)
	}
	for _, indicator := range indicators {
		if err := ds.Append(indicator); err != nil {
			return nil, fmt.Errorf("error expanding categories: %w", err)
		}
	}
	return expansions, nil
}
