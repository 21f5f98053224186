package memory

import (
	"context"
	"net/url"

	"github.com/bornholm/mdstore/internal/filesystem"
	"github.com/bornholm/mdstore/internal/filesystem/backend"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

func init() {
	backend.RegisterBackendFactory("memory", FromDSN)
}

// Backend keeps files in memory. Every mount of the same backend shares the
// same files.
type Backend struct {
	fs afero.Fs
}

// Mount implements filesystem.Backend.
func (b *Backend) Mount(ctx context.Context, fn func(ctx context.Context, fs afero.Fs) error) error {
	if err := fn(ctx, b.fs); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func New() *Backend {
	return &Backend{
		fs: afero.NewMemMapFs(),
	}
}

func FromDSN(dsn *url.URL) (filesystem.Backend, error) {
	return New(), nil
}

var _ filesystem.Backend = &Backend{}
