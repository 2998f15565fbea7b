package mcp

import "github.com/sanonone/kektorknn/pkg/core/types"

// --- Tool Arguments ---

type EvaluateArgs struct {
	Path        string `json:"path" jsonschema:"Dataset location: local file, .sz file or s3://bucket/key"`
	K           int    `json:"k,omitempty" jsonschema:"Number of neighbors (default from server config)"`
	Metric      string `json:"metric,omitempty" jsonschema:"Metric name or code 1-5 (default from server config)"`
	Features    int    `json:"features,omitempty" jsonschema:"Feature arity (default from server config)"`
	Sweep       bool   `json:"sweep,omitempty" jsonschema:"Evaluate every metric with the same k"`
	Predictions bool   `json:"predictions,omitempty" jsonschema:"Include per-sample predictions in the result"`
}

type EvaluateResult struct {
	Samples int            `json:"samples"`
	Reports []types.Report `json:"reports"`
}

type ClassifyArgs struct {
	Path     string    `json:"path" jsonschema:"Dataset location used as the reference set"`
	Query    []float64 `json:"query" jsonschema:"Raw feature values of the sample to classify"`
	K        int       `json:"k,omitempty" jsonschema:"Number of neighbors (default from server config)"`
	Metric   string    `json:"metric,omitempty" jsonschema:"Metric name or code 1-5 (default from server config)"`
	Features int       `json:"features,omitempty" jsonschema:"Feature arity (default from server config)"`
}

type ClassifyResult struct {
	Label  int    `json:"label"`
	Metric string `json:"metric"`
	K      int    `json:"k"`
}

type ListMetricsArgs struct{}

type MetricInfo struct {
	Name string `json:"name"`
	Code int    `json:"code"`
}

type ListMetricsResult struct {
	Metrics []MetricInfo `json:"metrics"`
}
