package loader

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/golang/snappy"

	"github.com/sanonone/kektorknn/pkg/core/types"
)

type fakeS3 struct {
	objects map[string]string
	bucket  string
	key     string
}

func (f *fakeS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.bucket = aws.ToString(params.Bucket)
	f.key = aws.ToString(params.Key)
	body, ok := f.objects[f.bucket+"/"+f.key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestOpenLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iris.txt")
	if err := os.WriteFile(path, []byte(irisSample), 0o644); err != nil {
		t.Fatal(err)
	}
	ds, err := Open(context.Background(), path, Options{Features: 4})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if len(ds) != 4 {
		t.Errorf("got %d samples, want 4", len(ds))
	}
}

func TestOpenSnappyFile(t *testing.T) {
	var buf bytes.Buffer
	w := snappy.NewBufferedWriter(&buf)
	if _, err := w.Write([]byte(irisSample)); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "iris.txt.sz")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	ds, err := Open(context.Background(), path, Options{Features: 4})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if len(ds) != 4 || ds[3].Label != 3 {
		t.Errorf("unexpected dataset: %+v", ds)
	}
}

func TestOpenS3(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{"datasets/iris/iris.txt": irisSample}}

	ds, err := Open(context.Background(), "s3://datasets/iris/iris.txt", Options{Features: 4, Client: fake})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if fake.bucket != "datasets" || fake.key != "iris/iris.txt" {
		t.Errorf("fetched %s/%s, want datasets/iris/iris.txt", fake.bucket, fake.key)
	}
	if len(ds) != 4 {
		t.Errorf("got %d samples, want 4", len(ds))
	}

	if _, err := Open(context.Background(), "s3://datasets/missing.txt", Options{Client: fake}); err == nil {
		t.Error("expected error for missing object")
	}
	if _, err := Open(context.Background(), "s3://datasets", Options{Client: fake}); err == nil {
		t.Error("expected error for path without key")
	}
}

func TestOpenErrors(t *testing.T) {
	if _, err := Open(context.Background(), "  ", Options{}); !errors.Is(err, types.ErrConfiguration) {
		t.Errorf("empty path: expected ErrConfiguration, got %v", err)
	}
	if _, err := Open(context.Background(), filepath.Join(t.TempDir(), "nope.txt"), Options{}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: expected os.ErrNotExist, got %v", err)
	}
}
