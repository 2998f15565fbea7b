// Package loader turns dataset files into labeled samples.
//
// A dataset is plain text, one sample per line: the feature values separated by
// spaces or tabs (repeated separators collapse), followed by an integer class
// label. Lines with too few tokens are skipped; tokens past the label are
// ignored. Sources may be local files, snappy-compressed files (".sz") or S3
// objects ("s3://bucket/key").
package loader

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/sanonone/kektorknn/pkg/core/types"
)

// DefaultFeatures is the arity of the reference (iris) dataset.
const DefaultFeatures = 4

func isSeparator(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r'
}

// Parse reads samples with the given feature arity from r. An arity of 0 is
// inferred from the first line carrying at least two tokens.
//
// A line whose features or label do not parse as numbers fails the whole read
// with ErrInvalidInput naming the line.
func Parse(r io.Reader, features int) (types.Dataset, error) {
	if features < 0 {
		return nil, fmt.Errorf("%w: feature count must not be negative, got %d", types.ErrConfiguration, features)
	}

	var ds types.Dataset
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	skipped := 0
	for scanner.Scan() {
		lineNo++
		parts := strings.FieldsFunc(scanner.Text(), isSeparator)

		if features == 0 && len(parts) >= 2 {
			features = len(parts) - 1
			slog.Debug("[LOADER] Inferred feature count", "features", features, "line", lineNo)
		}
		if features == 0 || len(parts) < features+1 {
			if len(parts) > 0 {
				skipped++
			}
			continue
		}

		attrs := make([]float64, features)
		for i := 0; i < features; i++ {
			v, err := strconv.ParseFloat(parts[i], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: feature %d: %q is not a number", types.ErrInvalidInput, lineNo, i+1, parts[i])
			}
			attrs[i] = v
		}
		label, err := strconv.Atoi(parts[features])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: class label %q is not an integer", types.ErrInvalidInput, lineNo, parts[features])
		}
		ds = append(ds, types.Sample{Features: attrs, Label: label})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	if skipped > 0 {
		slog.Debug("[LOADER] Skipped short lines", "count", skipped)
	}
	return ds, nil
}
