package core

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/sanonone/kektorknn/pkg/core/types"
)

// Normalize rescales every feature column of ds into [0, 1], in place, using
// the column's observed minimum and maximum. A constant column maps to 0.
//
// The min/max pairs are not retained: normalization is a one-shot batch
// transform over the whole dataset.
func Normalize(ds types.Dataset) error {
	if len(ds) == 0 {
		return fmt.Errorf("%w: cannot normalize an empty dataset", types.ErrInvalidInput)
	}
	arity := ds.Arity()
	for i, s := range ds {
		if len(s.Features) != arity {
			return fmt.Errorf("%w: sample %d has %d features, expected %d", types.ErrInvalidInput, i, len(s.Features), arity)
		}
	}

	mins := make([]float64, arity)
	maxs := make([]float64, arity)
	col := make([]float64, len(ds))
	for j := 0; j < arity; j++ {
		for i, s := range ds {
			col[i] = s.Features[j]
		}
		mins[j] = floats.Min(col)
		maxs[j] = floats.Max(col)
	}

	for _, s := range ds {
		for j, v := range s.Features {
			span := maxs[j] - mins[j]
			if span == 0 {
				s.Features[j] = 0
				continue
			}
			s.Features[j] = (v - mins[j]) / span
		}
	}
	return nil
}
