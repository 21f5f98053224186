package setup

import (
	"context"

	"github.com/bornholm/mdstore/internal/config"
	"github.com/bornholm/mdstore/internal/filesystem"
	"github.com/bornholm/mdstore/internal/filesystem/backend"
	"github.com/pkg/errors"

	// Filesystem backends
	_ "github.com/bornholm/mdstore/internal/filesystem/backend/local"
	_ "github.com/bornholm/mdstore/internal/filesystem/backend/memory"
	_ "github.com/bornholm/mdstore/internal/filesystem/backend/sftp"
)

// NewFilesystemBackendFromConfig creates the backend holding the served
// files.
func NewFilesystemBackendFromConfig(ctx context.Context, conf *config.Config) (filesystem.Backend, error) {
	b, err := backend.New(conf.Storage.Filesystem)
	if err != nil {
		return nil, errors.Wrapf(err, "could not create filesystem backend from dsn '%s'", conf.Storage.Filesystem)
	}

	return b, nil
}
