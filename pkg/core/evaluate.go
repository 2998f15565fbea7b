package core

import (
	"fmt"

	"github.com/sanonone/kektorknn/pkg/core/distance"
	"github.com/sanonone/kektorknn/pkg/core/types"
)

// Evaluate runs leave-one-out validation: every sample is classified against
// all the others and the share of correct predictions is reported as a
// percentage. The result depends only on (ds, k, metric).
//
// ds is read, never modified; normalize it beforehand if needed. A dataset with
// a single sample fails, since its query would have no references.
func Evaluate(ds types.Dataset, k int, metric distance.Metric) (types.Report, error) {
	if len(ds) == 0 {
		return types.Report{}, fmt.Errorf("%w: cannot evaluate an empty dataset", types.ErrInvalidInput)
	}
	fn, err := distance.Get(metric)
	if err != nil {
		return types.Report{}, err
	}

	report := types.Report{
		Metric:      metric.String(),
		K:           k,
		Total:       len(ds),
		Predictions: make([]types.Prediction, 0, len(ds)),
	}

	refs := make([]types.Sample, 0, len(ds)-1)
	for i, query := range ds {
		refs = append(refs[:0], ds[:i]...)
		refs = append(refs, ds[i+1:]...)

		predicted, err := Classify(query, refs, k, fn)
		if err != nil {
			return types.Report{}, fmt.Errorf("sample %d: %w", i, err)
		}
		p := types.Prediction{Index: i, Actual: query.Label, Predicted: predicted}
		if p.Correct() {
			report.Correct++
		}
		report.Predictions = append(report.Predictions, p)
	}

	report.Accuracy = float64(report.Correct) / float64(report.Total) * 100
	return report, nil
}

// Sweep evaluates ds once per metric, in the given order, stopping at the first failure.
func Sweep(ds types.Dataset, k int, metrics []distance.Metric) ([]types.Report, error) {
	reports := make([]types.Report, 0, len(metrics))
	for _, m := range metrics {
		r, err := Evaluate(ds, k, m)
		if err != nil {
			return nil, fmt.Errorf("metric %s: %w", m, err)
		}
		reports = append(reports, r)
	}
	return reports, nil
}
