package features

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Kaushal-001/Telco-Customer-Churn/pkg/io"
)

// ErrAmbiguousEncoding reports a column routed to binary encoding whose
// values do not form a recognizable two-value set.
var ErrAmbiguousEncoding = errors.New("ambiguous binary encoding")

// BinaryMapping records how one binary column was encoded so the same
// value-to-integer assignment can be reproduced and audited.
type BinaryMapping struct {
	Column string           `json:"column"`
	Rule   string           `json:"rule"`
	Values map[string]int64 `json:"values"`
}

// binaryRule maps a two-value set to integers, or declines. Rules are tried
// in order and the first match wins.
type binaryRule struct {
	name  string
	apply func(a, b string) (map[string]int64, bool)
}

var binaryRules = []binaryRule{
	{name: "yes-no", apply: foldedPair("Yes", "No")},
	{name: "male-female", apply: foldedPair("Male", "Female")},
	{name: "lexicographic", apply: func(a, b string) (map[string]int64, bool) {
		if a < b {
			return map[string]int64{a: 0, b: 1}, true
		}
		return map[string]int64{a: 1, b: 0}, true
	}},
}

// foldedPair matches a value set against a positive/negative pair under
// case folding. Exactly one value must fold to each side.
func foldedPair(pos, neg string) func(a, b string) (map[string]int64, bool) {
	return func(a, b string) (map[string]int64, bool) {
		switch {
		case strings.EqualFold(a, pos) && strings.EqualFold(b, neg):
			return map[string]int64{a: 1, b: 0}, true
		case strings.EqualFold(b, pos) && strings.EqualFold(a, neg):
			return map[string]int64{a: 0, b: 1}, true
		}
		return nil, false
	}
}

// EncodeBinary rewrites a two-valued text column as Int in place and returns
// the mapping that was applied. Missing entries stay missing. A value set
// that is not exactly two distinct values fails with ErrAmbiguousEncoding
// rather than guessing.
func EncodeBinary(col *io.Column) (BinaryMapping, error) {
	values := col.Distinct()
	if len(values) != 2 {
		return BinaryMapping{}, fmt.Errorf("%w: column %s has %d distinct values %v, need exactly 2",
			ErrAmbiguousEncoding, col.Name, len(values), values)
	}
	sort.Strings(values)
	if strings.EqualFold(values[0], values[1]) {
		return BinaryMapping{}, fmt.Errorf("%w: column %s values %q and %q normalize to the same token",
			ErrAmbiguousEncoding, col.Name, values[0], values[1])
	}

	var mapping BinaryMapping
	for _, rule := range binaryRules {
		assignment, ok := rule.apply(values[0], values[1])
		if !ok {
			continue
		}
		mapping = BinaryMapping{Column: col.Name, Rule: rule.name, Values: assignment}
		break
	}

	n := col.Len()
	ints := make([]int64, n)
	null := make([]bool, n)
	for i := 0; i < n; i++ {
		if col.Null[i] {
			null[i] = true
			continue
		}
		ints[i] = mapping.Values[strings.TrimSpace(col.Text[i])]
	}
	col.Kind = io.Int
	col.Ints = ints
	col.Null = null
	col.Text = nil
	return mapping, nil
}
