// Package distance provides the family of distance metrics used to rank
// neighbors: Euclidean, Manhattan, Chebyshev, Minkowski (p=3) and a clamped
// logarithmic distance.
//
// Metrics are selected by a stable identifier, either a name ("manhattan") or
// the console code shown next to it ("2"). Callers resolve an identifier once
// with Parse and fetch the implementation with Get; the k-NN core only ever
// sees a Func.
package distance

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/sanonone/kektorknn/pkg/core/types"
)

// Metric identifies one of the supported distance functions.
type Metric string

const (
	// Euclidean is sqrt(sum((a_i - b_i)^2)).
	Euclidean Metric = "euclidean"
	// Manhattan is sum(|a_i - b_i|).
	Manhattan Metric = "manhattan"
	// Chebyshev is max(|a_i - b_i|).
	Chebyshev Metric = "chebyshev"
	// Minkowski is (sum(|a_i - b_i|^p))^(1/p) with p = MinkowskiP.
	Minkowski Metric = "minkowski"
	// Logarithmic is sum(|ln(max(a_i, eps)) - ln(max(b_i, eps))|) with eps = LogEpsilon.
	Logarithmic Metric = "logarithmic"
)

const (
	// MinkowskiP is the fixed order of the Minkowski metric.
	MinkowskiP = 3.0
	// LogEpsilon clamps features before taking the logarithm, so zeros
	// produced by normalization stay finite.
	LogEpsilon = 0.00001
)

// Func computes the distance between two feature vectors of equal length.
type Func func(a, b []float64) (float64, error)

// order fixes the console codes: the metric at position i has code i+1.
var order = []Metric{Euclidean, Manhattan, Chebyshev, Minkowski, Logarithmic}

var funcs = map[Metric]Func{
	Euclidean:   euclidean,
	Manhattan:   manhattan,
	Chebyshev:   chebyshev,
	Minkowski:   minkowski,
	Logarithmic: logarithmic,
}

// All returns every supported metric in console-code order.
func All() []Metric {
	out := make([]Metric, len(order))
	copy(out, order)
	return out
}

// Code returns the console code of m, or 0 if m is not supported.
func (m Metric) Code() int {
	for i, o := range order {
		if o == m {
			return i + 1
		}
	}
	return 0
}

func (m Metric) String() string { return string(m) }

// Parse resolves a metric name or console code. Matching is case-insensitive
// and ignores surrounding spaces.
func Parse(s string) (Metric, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if code, err := strconv.Atoi(s); err == nil {
		if code < 1 || code > len(order) {
			return "", fmt.Errorf("%w: metric code %d out of range 1-%d", types.ErrConfiguration, code, len(order))
		}
		return order[code-1], nil
	}
	m := Metric(s)
	if _, ok := funcs[m]; !ok {
		return "", fmt.Errorf("%w: unknown metric '%s'", types.ErrConfiguration, s)
	}
	return m, nil
}

// Get returns the implementation of metric, or ErrConfiguration if it is not supported.
func Get(metric Metric) (Func, error) {
	fn, ok := funcs[metric]
	if !ok {
		return nil, fmt.Errorf("%w: metric '%s' not supported", types.ErrConfiguration, metric)
	}
	return fn, nil
}

func checkLength(name string, a, b []float64) error {
	if len(a) != len(b) {
		return fmt.Errorf("%w: %s: vectors must have the same length (%d != %d)", types.ErrInvalidInput, name, len(a), len(b))
	}
	return nil
}

// floats.Distance panics on mismatched lengths, so every wrapper checks first.

func euclidean(a, b []float64) (float64, error) {
	if err := checkLength("euclidean", a, b); err != nil {
		return 0, err
	}
	return floats.Distance(a, b, 2), nil
}

func manhattan(a, b []float64) (float64, error) {
	if err := checkLength("manhattan", a, b); err != nil {
		return 0, err
	}
	return floats.Distance(a, b, 1), nil
}

func chebyshev(a, b []float64) (float64, error) {
	if err := checkLength("chebyshev", a, b); err != nil {
		return 0, err
	}
	return floats.Distance(a, b, math.Inf(1)), nil
}

func minkowski(a, b []float64) (float64, error) {
	if err := checkLength("minkowski", a, b); err != nil {
		return 0, err
	}
	return floats.Distance(a, b, MinkowskiP), nil
}

func logarithmic(a, b []float64) (float64, error) {
	if err := checkLength("logarithmic", a, b); err != nil {
		return 0, err
	}
	var sum float64
	for i := range a {
		sum += math.Abs(math.Log(math.Max(a[i], LogEpsilon)) - math.Log(math.Max(b[i], LogEpsilon)))
	}
	return sum, nil
}
