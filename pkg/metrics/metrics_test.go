package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/sanonone/kektorknn/pkg/core/types"
)

func TestObserveEvaluation(t *testing.T) {
	ObserveEvaluation("manhattan", 7, 2*time.Millisecond, types.Report{Accuracy: 95.5}, nil)

	if got := testutil.ToFloat64(Accuracy.WithLabelValues("manhattan", "7")); got != 95.5 {
		t.Errorf("accuracy gauge = %g, want 95.5", got)
	}
	if got := testutil.ToFloat64(EvaluationsTotal.WithLabelValues("manhattan", "7", "ok")); got != 1 {
		t.Errorf("ok counter = %g, want 1", got)
	}

	ObserveEvaluation("manhattan", 7, 0, types.Report{}, errors.New("boom"))
	if got := testutil.ToFloat64(EvaluationsTotal.WithLabelValues("manhattan", "7", "error")); got != 1 {
		t.Errorf("error counter = %g, want 1", got)
	}
	if got := testutil.ToFloat64(Accuracy.WithLabelValues("manhattan", "7")); got != 95.5 {
		t.Errorf("failed run changed accuracy gauge to %g", got)
	}
}
