package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bornholm/mdstore/internal/filesystem/backend"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

func TestMount(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "markdown_files")

	b, err := backend.New("local://" + dir)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	err = b.Mount(context.Background(), func(ctx context.Context, fs afero.Fs) error {
		return afero.WriteFile(fs, "hello.md", []byte("# Hello"), 0o644)
	})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	data, err := os.ReadFile(filepath.Join(dir, "hello.md"))
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "# Hello", string(data); e != g {
		t.Errorf("data: expected '%s', got '%s'", e, g)
	}
}

func TestMountMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")

	b, err := backend.New("local://" + dir + "?create=false")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	err = b.Mount(context.Background(), func(ctx context.Context, fs afero.Fs) error {
		return nil
	})
	if err == nil {
		t.Fatalf("expected an error")
	}
}
