package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/klauspost/cpuid/v2"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sanonone/kektorknn/internal/cli"
	kmcp "github.com/sanonone/kektorknn/internal/mcp"
	"github.com/sanonone/kektorknn/internal/server"
	"github.com/sanonone/kektorknn/pkg/config"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML configuration file")
	dataPath := flag.String("data", "", "Dataset path: local file, .sz file or s3://bucket/key (prompted if empty)")
	k := flag.Int("k", 3, "Number of neighbors")
	metric := flag.String("metric", "euclidean", "Distance metric: euclidean|manhattan|chebyshev|minkowski|logarithmic or 1-5")
	features := flag.Int("features", 4, "Feature arity per row (0 infers it from the data)")
	sweep := flag.Bool("sweep", false, "Evaluate every metric with the same k")
	printSamples := flag.Bool("print-samples", false, "Print every loaded sample")
	metricsAddr := flag.String("metrics-addr", "", "Address for the Prometheus /metrics endpoint (e.g. :9093)")
	serveMCP := flag.Bool("mcp", false, "Serve the evaluator as MCP tools over stdio instead of running once")
	verbose := flag.Bool("verbose", false, "Enable debug logging")

	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Explicit flags win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "data":
			cfg.DataPath = *dataPath
		case "k":
			cfg.K = *k
		case "metric":
			cfg.Metric = *metric
		case "features":
			cfg.Features = *features
		case "sweep":
			cfg.Sweep = *sweep
		case "print-samples":
			cfg.PrintSamples = *printSamples
		case "metrics-addr":
			cfg.MetricsAddr = *metricsAddr
		}
	})

	slog.Info("KektorKNN compute engine",
		"cpu", cpuid.CPU.BrandName,
		"logical_cores", cpuid.CPU.LogicalCores,
		"avx2", cpuid.CPU.Has(cpuid.AVX2))

	if cfg.MetricsAddr != "" {
		metricsSrv := server.NewServer(cfg.MetricsAddr)
		metricsSrv.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			metricsSrv.Shutdown(shutdownCtx)
		}()
	}

	// Cancelled on Ctrl+C or SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *serveMCP {
		if _, err := cfg.Validate(); err != nil {
			log.Fatalf("Invalid configuration: %v", err)
		}
		srv := kmcp.NewMCPServer(cfg)
		if err := srv.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
			log.Fatalf("MCP server failed: %v", err)
		}
		return
	}

	if err := cli.Run(ctx, cfg, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("Evaluation failed: %v", err)
	}
}
