package core

import (
	"fmt"

	"github.com/sanonone/kektorknn/pkg/core/distance"
	"github.com/sanonone/kektorknn/pkg/core/types"
)

// Predict classifies raw, unnormalized features against a raw dataset.
// Normalization keeps no state, so the query is rescaled together with a copy
// of ds and then classified against the rescaled copy. ds is not modified.
func Predict(ds types.Dataset, features []float64, k int, metric distance.Metric) (int, error) {
	if len(ds) == 0 {
		return 0, fmt.Errorf("%w: reference set is empty", types.ErrInvalidInput)
	}
	if len(features) != ds.Arity() {
		return 0, fmt.Errorf("%w: query has %d features, dataset has %d", types.ErrInvalidInput, len(features), ds.Arity())
	}
	fn, err := distance.Get(metric)
	if err != nil {
		return 0, err
	}

	work := append(ds.Clone(), types.Sample{Features: append([]float64(nil), features...)})
	if err := Normalize(work); err != nil {
		return 0, err
	}
	n := len(work) - 1
	return Classify(work[n], work[:n], k, fn)
}
