package pkg

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/Kaushal-001/Telco-Customer-Churn/pkg/io"
)

func logDataErrors(errors []io.DataError) {
	for _, err := range errors {
		log.Error().Msgf("Error parsing data at line %d: %s", err.Line, err.Message)
	}
}

// labelVector extracts {0, 1} class labels from an encoded target column.
func labelVector(col *io.Column) ([]int, error) {
	if col.Kind != io.Int {
		return nil, fmt.Errorf("target column %s is not label encoded", col.Name)
	}
	labels := make([]int, col.Len())
	for i := range labels {
		if col.Null[i] {
			return nil, fmt.Errorf("target column %s has unlabeled rows", col.Name)
		}
		v := col.Ints[i]
		if v != 0 && v != 1 {
			return nil, fmt.Errorf("target column %s holds label %d outside {0, 1}", col.Name, v)
		}
		labels[i] = int(v)
	}
	return labels, nil
}

// splitStratified partitions row indices into train and test sets, sampling
// the test fraction per class so both splits keep the class balance of the
// input. Row order within each split is shuffled. The same seed always
// yields the same split.
func splitStratified(labels []int, testFraction float64, seed uint64) (trainRows, testRows []int) {
	byClass := map[int][]int{}
	for row, label := range labels {
		byClass[label] = append(byClass[label], row)
	}
	rng := rand.New(rand.NewSource(int64(seed)))
	for _, label := range sortedKeys(byClass) {
		rows := byClass[label]
		rng.Shuffle(len(rows), func(i, j int) {
			rows[i], rows[j] = rows[j], rows[i]
		})
		nTest := int(float64(len(rows))*testFraction + 0.5)
		if nTest >= len(rows) {
			nTest = len(rows) - 1
		}
		if nTest < 0 {
			nTest = 0
		}
		testRows = append(testRows, rows[:nTest]...)
		trainRows = append(trainRows, rows[nTest:]...)
	}
	rng.Shuffle(len(trainRows), func(i, j int) {
		trainRows[i], trainRows[j] = trainRows[j], trainRows[i]
	})
	rng.Shuffle(len(testRows), func(i, j int) {
		testRows[i], testRows[j] = testRows[j], testRows[i]
	})
	return trainRows, testRows
}

func sortedKeys(m map[int][]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
