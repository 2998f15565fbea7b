// Package mcp exposes the k-NN evaluator as Model Context Protocol tools.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sanonone/kektorknn/pkg/config"
)

// Version is reported to MCP clients.
const Version = "0.1.0"

func NewMCPServer(cfg config.Config) *mcp.Server {
	service := NewService(cfg, nil)

	s := mcp.NewServer(&mcp.Implementation{
		Name:    "KektorKNN",
		Version: Version,
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "evaluate",
		Description: "Run leave-one-out k-NN validation on a labeled dataset and report the accuracy percentage.",
	}, service.Evaluate)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "classify",
		Description: "Classify one raw feature vector against a labeled dataset with k-NN.",
	}, service.Classify)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "list_metrics",
		Description: "List the supported distance metrics with their numeric codes.",
	}, service.ListMetrics)

	return s
}
