package filesystem

import (
	"context"

	"github.com/spf13/afero"
)

// Backend gives access to a filesystem for the duration of fn. The filesystem
// must not be used once fn has returned.
type Backend interface {
	Mount(ctx context.Context, fn func(ctx context.Context, fs afero.Fs) error) error
}
