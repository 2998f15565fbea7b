package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/sanonone/kektorknn/pkg/config"
	"github.com/sanonone/kektorknn/pkg/core/types"
	"github.com/sanonone/kektorknn/pkg/loader"
)

func stubLoader(calls *[]loader.Options) LoadFunc {
	return func(ctx context.Context, path string, opts loader.Options) (types.Dataset, error) {
		*calls = append(*calls, opts)
		if path != "clusters.txt" {
			return nil, errors.New("not found")
		}
		return types.Dataset{
			{Features: []float64{0, 0}, Label: 0},
			{Features: []float64{0, 1}, Label: 0},
			{Features: []float64{10, 10}, Label: 1},
			{Features: []float64{10, 11}, Label: 1},
		}, nil
	}
}

func TestServiceEvaluate(t *testing.T) {
	var calls []loader.Options
	svc := NewService(config.DefaultConfig(), stubLoader(&calls))

	_, res, err := svc.Evaluate(context.Background(), nil, EvaluateArgs{Path: "clusters.txt", K: 1, Features: 2, Predictions: true})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if len(res.Reports) != 1 || res.Reports[0].Accuracy != 100 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Reports[0].RunID == "" || len(res.Reports[0].Predictions) != 4 {
		t.Errorf("missing run id or predictions: %+v", res.Reports[0])
	}
	if calls[0].Features != 2 {
		t.Errorf("loader got features %d, want 2", calls[0].Features)
	}

	_, res, err = svc.Evaluate(context.Background(), nil, EvaluateArgs{Path: "clusters.txt", K: 3, Features: 2, Sweep: true})
	if err != nil {
		t.Fatalf("Evaluate sweep failed: %v", err)
	}
	if len(res.Reports) != 5 {
		t.Fatalf("got %d reports, want 5", len(res.Reports))
	}
	if res.Reports[0].Accuracy != 0 || res.Reports[0].Predictions != nil {
		t.Errorf("unexpected first report: %+v", res.Reports[0])
	}
}

func TestServiceErrors(t *testing.T) {
	var calls []loader.Options
	svc := NewService(config.DefaultConfig(), stubLoader(&calls))

	if _, _, err := svc.Evaluate(context.Background(), nil, EvaluateArgs{Path: "clusters.txt", Metric: "cosine"}); !errors.Is(err, types.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
	if _, _, err := svc.Evaluate(context.Background(), nil, EvaluateArgs{Path: "missing.txt"}); err == nil {
		t.Error("expected loader error")
	}
	if len(calls) != 1 {
		t.Errorf("loader called %d times, want 1", len(calls))
	}
}

func TestServiceClassify(t *testing.T) {
	var calls []loader.Options
	svc := NewService(config.DefaultConfig(), stubLoader(&calls))

	_, res, err := svc.Classify(context.Background(), nil, ClassifyArgs{Path: "clusters.txt", Query: []float64{9, 9}, K: 1, Metric: "2", Features: 2})
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if res.Label != 1 || res.Metric != "manhattan" {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestServiceListMetrics(t *testing.T) {
	svc := NewService(config.DefaultConfig(), nil)
	_, res, err := svc.ListMetrics(context.Background(), nil, ListMetricsArgs{})
	if err != nil {
		t.Fatalf("ListMetrics failed: %v", err)
	}
	if len(res.Metrics) != 5 || res.Metrics[4].Name != "logarithmic" || res.Metrics[4].Code != 5 {
		t.Errorf("unexpected metrics: %+v", res.Metrics)
	}
}

func TestNewMCPServer(t *testing.T) {
	if NewMCPServer(config.DefaultConfig()) == nil {
		t.Fatal("expected server")
	}
}
