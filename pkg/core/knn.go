// Package core implements k-nearest-neighbor classification over labeled
// samples: min-max normalization, neighbor search under a pluggable distance
// metric, majority voting and leave-one-out evaluation.
//
// All functions are pure over their explicit parameters, apart from Normalize
// which rescales the dataset in place.
package core

import (
	"fmt"

	"github.com/tidwall/btree"

	"github.com/sanonone/kektorknn/pkg/core/distance"
	"github.com/sanonone/kektorknn/pkg/core/types"
)

// Neighbor is one reference sample ranked against a query.
type Neighbor struct {
	Index    int // position in the reference set
	Label    int
	Distance float64
}

// neighborLess orders by distance, then by reference position, which is the
// order a stable sort over the reference set would produce.
func neighborLess(a, b Neighbor) bool {
	if a.Distance < b.Distance {
		return true
	}
	if a.Distance > b.Distance {
		return false
	}
	return a.Index < b.Index
}

// Neighbors returns the k references closest to query, nearest first.
// When k exceeds the number of references every reference is returned.
func Neighbors(query types.Sample, refs []types.Sample, k int, metric distance.Func) ([]Neighbor, error) {
	if len(refs) == 0 {
		return nil, fmt.Errorf("%w: reference set is empty", types.ErrInvalidInput)
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be at least 1, got %d", types.ErrConfiguration, k)
	}
	if metric == nil {
		return nil, fmt.Errorf("%w: no distance metric given", types.ErrConfiguration)
	}
	k = min(k, len(refs))

	// Bounded window: keep at most k items, evicting the farthest.
	window := btree.NewBTreeG[Neighbor](neighborLess)
	for i, r := range refs {
		d, err := metric(query.Features, r.Features)
		if err != nil {
			return nil, fmt.Errorf("reference %d: %w", i, err)
		}
		window.Set(Neighbor{Index: i, Label: r.Label, Distance: d})
		if window.Len() > k {
			window.PopMax()
		}
	}

	out := make([]Neighbor, 0, k)
	window.Scan(func(n Neighbor) bool {
		out = append(out, n)
		return true
	})
	return out, nil
}

// Vote returns the majority label among neighbors, which must be ordered
// nearest first. Ties go to the label whose nearest member comes first.
func Vote(neighbors []Neighbor) int {
	counts := make(map[int]int, len(neighbors))
	for _, n := range neighbors {
		counts[n.Label]++
	}
	best, bestCount := 0, 0
	for _, n := range neighbors {
		if c := counts[n.Label]; c > bestCount {
			best, bestCount = n.Label, c
		}
	}
	return best
}

// Classify predicts the label of query as the majority label among its k
// nearest references under metric.
func Classify(query types.Sample, refs []types.Sample, k int, metric distance.Func) (int, error) {
	neighbors, err := Neighbors(query, refs, k, metric)
	if err != nil {
		return 0, err
	}
	return Vote(neighbors), nil
}
