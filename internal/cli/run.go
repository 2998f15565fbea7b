// Package cli drives one console evaluation run: it resolves the dataset path,
// loads and normalizes the samples, runs leave-one-out validation and prints
// the results.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sanonone/kektorknn/pkg/config"
	"github.com/sanonone/kektorknn/pkg/core"
	"github.com/sanonone/kektorknn/pkg/core/distance"
	"github.com/sanonone/kektorknn/pkg/core/types"
	"github.com/sanonone/kektorknn/pkg/loader"
	"github.com/sanonone/kektorknn/pkg/metrics"
)

// Run executes one evaluation described by cfg. When cfg has no dataset path
// the user is prompted for one on in. Results are written to out.
func Run(ctx context.Context, cfg config.Config, in io.Reader, out io.Writer) error {
	metric, err := cfg.Validate()
	if err != nil {
		return err
	}

	path := cfg.DataPath
	if path == "" {
		if path, err = promptPath(in, out); err != nil {
			return err
		}
	}

	runID := uuid.New().String()
	logger := slog.With("run_id", runID)
	logger.Info("Starting evaluation", "path", path, "k", cfg.K, "metric", metric, "sweep", cfg.Sweep)

	ds, err := loader.Open(ctx, path, cfg.LoaderOptions())
	if err != nil {
		return err
	}
	if cfg.PrintSamples {
		PrintSamples(out, ds)
	}
	fmt.Fprintf(out, "loaded %d samples\n", len(ds))
	metrics.LoadedSamples.Set(float64(len(ds)))

	if err := core.Normalize(ds); err != nil {
		return err
	}

	selected := []distance.Metric{metric}
	if cfg.Sweep {
		selected = distance.All()
	}

	for _, m := range selected {
		start := time.Now()
		report, err := core.Evaluate(ds, cfg.K, m)
		elapsed := time.Since(start)
		metrics.ObserveEvaluation(m.String(), cfg.K, elapsed, report, err)
		if err != nil {
			return fmt.Errorf("metric %s: %w", m, err)
		}
		report.RunID = runID
		logger.Debug("Evaluation finished", "metric", m, "accuracy", report.Accuracy, "elapsed", elapsed)

		PrintReport(out, report)
		if !cfg.Sweep {
			PrintConfusion(out, report)
		}
	}
	return nil
}

func promptPath(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Enter dataset path: ")
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read dataset path: %w", err)
		}
		return "", fmt.Errorf("%w: no dataset path given", types.ErrConfiguration)
	}
	path := strings.TrimSpace(scanner.Text())
	if path == "" {
		return "", fmt.Errorf("%w: no dataset path given", types.ErrConfiguration)
	}
	return path, nil
}

func formatFeatures(f []float64) string {
	parts := make([]string, len(f))
	for i, v := range f {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ", ")
}

// PrintSamples writes one line per sample.
func PrintSamples(out io.Writer, ds types.Dataset) {
	for _, s := range ds {
		fmt.Fprintf(out, "features: %s | class: %d\n", formatFeatures(s.Features), s.Label)
	}
}

// PrintReport writes the one-line summary of an evaluation.
func PrintReport(out io.Writer, r types.Report) {
	code := distance.Metric(r.Metric).Code()
	fmt.Fprintf(out, "metric=%s (%d) k=%d accuracy=%.2f%% (%d/%d)\n", r.Metric, code, r.K, r.Accuracy, r.Correct, r.Total)
}

// PrintConfusion writes actual/predicted counts, one row per true label.
func PrintConfusion(out io.Writer, r types.Report) {
	confusion := r.Confusion()
	labels := make(map[int]struct{})
	for actual, row := range confusion {
		labels[actual] = struct{}{}
		for predicted := range row {
			labels[predicted] = struct{}{}
		}
	}
	sorted := make([]int, 0, len(labels))
	for l := range labels {
		sorted = append(sorted, l)
	}
	sort.Ints(sorted)

	var b strings.Builder
	b.WriteString("actual\\predicted")
	for _, l := range sorted {
		fmt.Fprintf(&b, "\t%d", l)
	}
	b.WriteByte('\n')
	for _, actual := range sorted {
		if _, ok := confusion[actual]; !ok {
			continue
		}
		fmt.Fprintf(&b, "%d", actual)
		for _, predicted := range sorted {
			fmt.Fprintf(&b, "\t%d", confusion[actual][predicted])
		}
		b.WriteByte('\n')
	}
	io.WriteString(out, b.String())
}
