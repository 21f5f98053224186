package memory

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

func TestMountSharesFiles(t *testing.T) {
	b := New()
	ctx := context.Background()

	err := b.Mount(ctx, func(ctx context.Context, fs afero.Fs) error {
		return afero.WriteFile(fs, "hello.md", []byte("# Hello"), 0o644)
	})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	err = b.Mount(ctx, func(ctx context.Context, fs afero.Fs) error {
		data, err := afero.ReadFile(fs, "hello.md")
		if err != nil {
			return errors.WithStack(err)
		}

		if e, g := "# Hello", string(data); e != g {
			t.Errorf("data: expected '%s', got '%s'", e, g)
		}

		return nil
	})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}
}
