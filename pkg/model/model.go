package model

import (
	"encoding/gob"
	"fmt"
	"io"

	"github.com/Kaushal-001/Telco-Customer-Churn/pkg/features"
)

// Bundle is everything a scoring run needs in one file: the trained
// classifier, the feature contract its inputs must match, the class names
// in label order and the decision threshold chosen at training time.
type Bundle struct {
	Contract   features.Contract
	Classifier *Classifier
	Classes    []string
	Threshold  float64
}

func SaveBundle(bundle *Bundle, writer io.Writer) error {
	encoder := gob.NewEncoder(writer)
	if err := encoder.Encode(bundle); err != nil {
		return fmt.Errorf("error encoding model: %w", err)
	}
	return nil
}

func LoadBundle(input io.Reader) (*Bundle, error) {
	decoder := gob.NewDecoder(input)
	bundle := Bundle{}
	if err := decoder.Decode(&bundle); err != nil {
		return nil, fmt.Errorf("error decoding model: %w", err)
	}
	return &bundle, nil
}
