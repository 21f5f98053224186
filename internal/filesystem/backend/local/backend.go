package local

import (
	"context"
	"os"

	"github.com/bornholm/mdstore/internal/filesystem"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

type Backend struct {
	basePath string
	create   bool
}

// Mount implements filesystem.Backend.
func (b *Backend) Mount(ctx context.Context, fn func(ctx context.Context, fs afero.Fs) error) error {
	if b.create {
		if err := os.MkdirAll(b.basePath, 0o755); err != nil {
			return errors.Wrapf(err, "could not create directory '%s'", b.basePath)
		}
	}

	stat, err := os.Stat(b.basePath)
	if err != nil {
		return errors.WithStack(err)
	}

	if !stat.IsDir() {
		return errors.Errorf("'%s' is not a directory", b.basePath)
	}

	fs := afero.NewBasePathFs(afero.NewOsFs(), b.basePath)

	if err := fn(ctx, fs); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func New(basePath string, create bool) *Backend {
	return &Backend{
		basePath: basePath,
		create:   create,
	}
}

var _ filesystem.Backend = &Backend{}
