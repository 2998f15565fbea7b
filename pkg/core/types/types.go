// Package types holds the data model shared by the k-NN core, its loaders and
// its front ends: labeled samples, datasets and evaluation reports.
package types

import "errors"

var (
	// ErrInvalidInput reports data the core cannot compute on: an empty
	// dataset or reference set, or feature vectors of different lengths.
	ErrInvalidInput = errors.New("invalid input")
	// ErrConfiguration reports an unusable run setting, such as k < 1 or an
	// unknown metric selector.
	ErrConfiguration = errors.New("configuration error")
)

// Sample is one labeled data point.
// Features are rescaled once, in place, by normalization and never touched again.
type Sample struct {
	Features []float64
	Label    int
}

// Dataset is an ordered collection of samples sharing the same feature arity.
type Dataset []Sample

// Arity returns the feature count of the first sample, or 0 for an empty dataset.
func (d Dataset) Arity() int {
	if len(d) == 0 {
		return 0
	}
	return len(d[0].Features)
}

// Clone returns a deep copy, so callers can normalize without touching the original.
func (d Dataset) Clone() Dataset {
	out := make(Dataset, len(d))
	for i, s := range d {
		f := make([]float64, len(s.Features))
		copy(f, s.Features)
		out[i] = Sample{Features: f, Label: s.Label}
	}
	return out
}

// Prediction is the outcome of classifying one held-out sample.
type Prediction struct {
	Index     int `json:"index"`
	Actual    int `json:"actual"`
	Predicted int `json:"predicted"`
}

// Correct reports whether the predicted label matches the true one.
func (p Prediction) Correct() bool { return p.Actual == p.Predicted }

// Report is the result of one leave-one-out evaluation.
type Report struct {
	RunID       string       `json:"run_id,omitempty"`
	Metric      string       `json:"metric"`
	K           int          `json:"k"`
	Total       int          `json:"total"`
	Correct     int          `json:"correct"`
	Accuracy    float64      `json:"accuracy"` // percentage in [0, 100]
	Predictions []Prediction `json:"predictions,omitempty"`
}

// Confusion counts predictions per (actual, predicted) label pair.
func (r Report) Confusion() map[int]map[int]int {
	m := make(map[int]map[int]int)
	for _, p := range r.Predictions {
		row, ok := m[p.Actual]
		if !ok {
			row = make(map[int]int)
			m[p.Actual] = row
		}
		row[p.Predicted]++
	}
	return m
}
