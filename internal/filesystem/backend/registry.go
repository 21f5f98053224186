package backend

import (
	"maps"
	"net/url"
	"slices"
	"strings"
	"sync"

	"github.com/bornholm/mdstore/internal/filesystem"
	"github.com/pkg/errors"
)

var (
	factoriesMutex   sync.RWMutex
	backendFactories = make(map[string]BackendFactory, 0)
)

type BackendFactory func(dsn *url.URL) (filesystem.Backend, error)

func RegisterBackendFactory(scheme string, factory BackendFactory) {
	factoriesMutex.Lock()
	defer factoriesMutex.Unlock()
	backendFactories[scheme] = factory
}

// Schemes returns the sorted list of the registered dsn schemes.
func Schemes() []string {
	factoriesMutex.RLock()
	defer factoriesMutex.RUnlock()
	return slices.Sorted(maps.Keys(backendFactories))
}

// New creates the filesystem backend described by the given dsn, ie
// local://./markdown_files or sftp://user@host/markdown_files?hostKey=...
func New(dsn string) (filesystem.Backend, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	factoriesMutex.RLock()
	factory, exists := backendFactories[u.Scheme]
	factoriesMutex.RUnlock()

	if !exists {
		return nil, errors.Wrapf(ErrSchemeNotRegistered, "no backend associated with scheme '%s' (available: %s)", u.Scheme, strings.Join(Schemes(), ", "))
	}

	b, err := factory(u)
	if err != nil {
		return nil, errors.Wrapf(err, "could not create '%s' backend", u.Scheme)
	}

	return b, nil
}
