package loader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/golang/snappy"

	"github.com/sanonone/kektorknn/pkg/core/types"
)

// Options control where and how a dataset is read.
type Options struct {
	// Features is the feature arity; 0 infers it from the data.
	Features int
	// S3 configures the client built for s3:// paths when Client is nil.
	S3 S3Config
	// Client overrides the S3 client.
	Client ObjectGetter
}

// Open loads the dataset at path. Paths starting with "s3://" are fetched from
// S3; paths ending in ".sz" are decoded as snappy streams.
func Open(ctx context.Context, path string, opts Options) (types.Dataset, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: no dataset path given", types.ErrConfiguration)
	}

	var (
		rc  io.ReadCloser
		err error
	)
	if isS3Path(path) {
		client := opts.Client
		if client == nil {
			if client, err = NewS3Client(ctx, opts.S3); err != nil {
				return nil, err
			}
		}
		rc, err = openS3(ctx, client, path)
	} else {
		rc, err = os.Open(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}
	defer rc.Close()

	var r io.Reader = rc
	if strings.HasSuffix(path, ".sz") {
		r = snappy.NewReader(rc)
	}

	ds, err := Parse(r, opts.Features)
	if err != nil {
		return nil, fmt.Errorf("dataset %s: %w", path, err)
	}
	slog.Info("[LOADER] Dataset loaded", "path", path, "samples", len(ds), "features", ds.Arity())
	return ds, nil
}
