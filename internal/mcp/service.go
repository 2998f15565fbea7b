package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sanonone/kektorknn/pkg/config"
	"github.com/sanonone/kektorknn/pkg/core"
	"github.com/sanonone/kektorknn/pkg/core/distance"
	"github.com/sanonone/kektorknn/pkg/core/types"
	"github.com/sanonone/kektorknn/pkg/loader"
	"github.com/sanonone/kektorknn/pkg/metrics"
)

// LoadFunc loads a dataset; loader.Open in production.
type LoadFunc func(ctx context.Context, path string, opts loader.Options) (types.Dataset, error)

type Service struct {
	cfg  config.Config
	load LoadFunc
}

func NewService(cfg config.Config, load LoadFunc) *Service {
	if load == nil {
		load = loader.Open
	}
	return &Service{cfg: cfg, load: load}
}

// settings merges per-call overrides into the server config and validates the result.
func (s *Service) settings(k int, metric string, features int) (config.Config, distance.Metric, error) {
	cfg := s.cfg
	if k != 0 {
		cfg.K = k
	}
	if metric != "" {
		cfg.Metric = metric
	}
	if features != 0 {
		cfg.Features = features
	}
	m, err := cfg.Validate()
	return cfg, m, err
}

// --- Tool Handlers ---

func (s *Service) Evaluate(ctx context.Context, req *mcp.CallToolRequest, args EvaluateArgs) (*mcp.CallToolResult, EvaluateResult, error) {
	cfg, m, err := s.settings(args.K, args.Metric, args.Features)
	if err != nil {
		return nil, EvaluateResult{}, err
	}

	ds, err := s.load(ctx, args.Path, cfg.LoaderOptions())
	if err != nil {
		return nil, EvaluateResult{}, err
	}
	if err := core.Normalize(ds); err != nil {
		return nil, EvaluateResult{}, err
	}
	metrics.LoadedSamples.Set(float64(len(ds)))

	selected := []distance.Metric{m}
	if args.Sweep {
		selected = distance.All()
	}

	runID := uuid.New().String()
	result := EvaluateResult{Samples: len(ds)}
	for _, sm := range selected {
		start := time.Now()
		report, err := core.Evaluate(ds, cfg.K, sm)
		metrics.ObserveEvaluation(sm.String(), cfg.K, time.Since(start), report, err)
		if err != nil {
			return nil, EvaluateResult{}, fmt.Errorf("metric %s: %w", sm, err)
		}
		report.RunID = runID
		if !args.Predictions {
			report.Predictions = nil
		}
		result.Reports = append(result.Reports, report)
	}

	slog.Info("[MCP] Evaluation done", "run_id", runID, "path", args.Path, "k", cfg.K, "metrics", len(selected))
	return nil, result, nil
}

func (s *Service) Classify(ctx context.Context, req *mcp.CallToolRequest, args ClassifyArgs) (*mcp.CallToolResult, ClassifyResult, error) {
	cfg, m, err := s.settings(args.K, args.Metric, args.Features)
	if err != nil {
		return nil, ClassifyResult{}, err
	}
	if cfg.Features == 0 {
		cfg.Features = len(args.Query)
	}

	ds, err := s.load(ctx, args.Path, cfg.LoaderOptions())
	if err != nil {
		return nil, ClassifyResult{}, err
	}
	label, err := core.Predict(ds, args.Query, cfg.K, m)
	if err != nil {
		return nil, ClassifyResult{}, err
	}
	return nil, ClassifyResult{Label: label, Metric: m.String(), K: cfg.K}, nil
}

func (s *Service) ListMetrics(ctx context.Context, req *mcp.CallToolRequest, args ListMetricsArgs) (*mcp.CallToolResult, ListMetricsResult, error) {
	var out ListMetricsResult
	for _, m := range distance.All() {
		out.Metrics = append(out.Metrics, MetricInfo{Name: m.String(), Code: m.Code()})
	}
	return nil, out, nil
}
