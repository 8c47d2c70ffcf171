package features

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Kaushal-001/Telco-Customer-Churn/pkg/io"
)

// ErrTargetMissing reports input data that lacks the configured target
// column when one is required.
var ErrTargetMissing = errors.New("target column missing")

// Result describes what Build did to a dataset: how columns were
// partitioned and the exact encodings applied. Training persists parts of
// it as run artifacts for audit.
type Result struct {
	Split      Split
	Binary     []BinaryMapping
	Expansions []MultiExpansion
}

// Build runs the full encoding pass over a cleaned dataset in place:
// classify columns, encode two-valued text columns to {0, 1}, expand
// multi-category columns to k-1 indicators and normalize dtypes. Training
// and scoring both go through this same call.
func Build(ds *io.Dataset, target string) (*Result, error) {
	split := Classify(ds, target)
	log.Debug().
		Int("numeric", len(split.Numeric)).
		Int("binary", len(split.Binary)).
		Int("multi", len(split.Multi)).
		Int("degenerate", len(split.Degenerate)).
		Msg("classified columns")
	for _, name := range split.Degenerate {
		log.Warn().Str("column", name).Msg("column has fewer than two distinct values, leaving as is")
	}

	result := &Result{Split: split}
	for _, name := range split.Binary {
		col, _ := ds.Column(name)
		mapping, err := EncodeBinary(col)
		if err != nil {
			return nil, fmt.Errorf("error encoding column %s: %w", name, err)
		}
		result.Binary = append(result.Binary, mapping)
	}

	expansions, err := ExpandMulti(ds, split.Multi)
	if err != nil {
		return nil, err
	}
	result.Expansions = expansions

	NormalizeDtypes(ds)
	log.Info().Int("columns", ds.NumColumns()).Msg("encoded feature columns")
	return result, nil
}
