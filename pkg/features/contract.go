package features

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Kaushal-001/Telco-Customer-Churn/pkg/io"
)

// ErrContractMismatch reports a feature contract that is missing, unreadable
// or inconsistent with the model it is supposed to describe.
var ErrContractMismatch = errors.New("feature contract mismatch")

// Contract freezes the encoded feature schema a model was trained on: the
// exact column names in their exact order, plus the target they predict.
// Serving replays it so the model sees the same columns in the same slots
// regardless of what the scoring file happens to contain.
type Contract struct {
	Features []string `json:"feature_columns"`
	Target   string   `json:"target"`
}

// DeriveContract captures the current non-target columns of an encoded
// dataset, in dataset order.
func DeriveContract(ds *io.Dataset, target string) Contract {
	c := Contract{Target: target}
	for _, name := range ds.Names() {
		if name != target {
			c.Features = append(c.Features, name)
		}
	}
	return c
}

// Equal reports whether two contracts describe the same schema, order
// included.
func (c Contract) Equal(other Contract) bool {
	if c.Target != other.Target || len(c.Features) != len(other.Features) {
		return false
	}
	for i, f := range c.Features {
		if other.Features[i] != f {
			return false
		}
	}
	return true
}

// Store persists contracts under a directory, one JSON file per contract
// name plus a plain-text column list for quick inspection.
type Store struct {
	Dir string
}

func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

func (s *Store) contractPath(name string) string {
	return filepath.Join(s.Dir, name+".contract.json")
}

func (s *Store) featuresPath(name string) string {
	return filepath.Join(s.Dir, name+".features.txt")
}

// Record writes the contract to disk. Both files are written to a temporary
// file first and renamed into place; a serving run never observes a partial
// contract.
func (s *Store) Record(name string, c Contract) error {
	if err := validateContract(c); err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("error creating contract directory %s: %w", s.Dir, err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding contract %s: %w", name, err)
	}
	if err := writeFileAtomic(s.contractPath(name), append(data, '\n')); err != nil {
		return err
	}
	listing := strings.Join(c.Features, "\n") + "\n"
	if err := writeFileAtomic(s.featuresPath(name), []byte(listing)); err != nil {
		return err
	}
	log.Info().Str("contract", name).Int("features", len(c.Features)).
		Str("path", s.contractPath(name)).Msg("recorded feature contract")
	return nil
}

// Load reads a previously recorded contract. Every failure mode maps to
// ErrContractMismatch: absent, unreadable and invalid are all the same to a
// serving run.
func (s *Store) Load(name string) (Contract, error) {
	path := s.contractPath(name)
	data, err := os.ReadFile(path)
	if err != nil {
		return Contract{}, fmt.Errorf("%w: cannot read %s: %v", ErrContractMismatch, path, err)
	}
	var c Contract
	if err := json.Unmarshal(data, &c); err != nil {
		return Contract{}, fmt.Errorf("%w: cannot parse %s: %v", ErrContractMismatch, path, err)
	}
	if err := validateContract(c); err != nil {
		return Contract{}, err
	}
	return c, nil
}

func validateContract(c Contract) error {
	if c.Target == "" {
		return fmt.Errorf("%w: contract names no target column", ErrContractMismatch)
	}
	if len(c.Features) == 0 {
		return fmt.Errorf("%w: contract lists no feature columns", ErrContractMismatch)
	}
	seen := make(map[string]bool, len(c.Features))
	for _, f := range c.Features {
		if seen[f] {
			return fmt.Errorf("%w: contract lists column %s twice", ErrContractMismatch, f)
		}
		seen[f] = true
	}
	return nil
}

// Align rebuilds a dataset to match the contract exactly. Contract columns
// come out in contract order; columns the data lacks are filled with zeros
// and columns the contract does not know are dropped. The input is not
// modified.
func Align(ds *io.Dataset, c Contract) (*io.Dataset, error) {
	dropped := 0
	filled := 0
	for _, name := range ds.Names() {
		if !containsString(c.Features, name) {
			dropped++
		}
	}
	columns := make([]*io.Column, 0, len(c.Features))
	for _, name := range c.Features {
		if col, ok := ds.Column(name); ok {
			columns = append(columns, col.Clone())
			continue
		}
		columns = append(columns, io.NewIntColumn(name, make([]int64, ds.NumRows())))
		filled++
	}
	aligned, err := io.NewDataset(columns...)
	if err != nil {
		return nil, fmt.Errorf("error aligning to contract: %w", err)
	}
	if filled > 0 || dropped > 0 {
		log.Info().Int("zero_filled", filled).Int("dropped", dropped).
			Msg("aligned dataset to feature contract")
	}
	return aligned, nil
}

func containsString(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

// writeFileAtomic writes data to path via a temporary file in the same
// directory followed by a rename.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("error creating temporary file in %s: %w", dir, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("error replacing %s: %w", path, err)
	}
	return nil
}
