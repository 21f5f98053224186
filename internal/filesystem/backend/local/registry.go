package local

import (
	"net/url"
	"strings"

	"github.com/bornholm/mdstore/internal/filesystem"
	"github.com/bornholm/mdstore/internal/filesystem/backend"
)

const paramCreate = "create"

func init() {
	backend.RegisterBackendFactory("local", FromDSN)
}

// FromDSN creates a backend from an url like local://./markdown_files.
// The directory is created unless the create=false parameter is given.
func FromDSN(dsn *url.URL) (filesystem.Backend, error) {
	basePath := dsn.Host + "/" + strings.TrimPrefix(dsn.Path, "/")
	if dsn.Host == "" {
		basePath = dsn.Path
	}

	create := dsn.Query().Get(paramCreate) != "false"

	return New(basePath, create), nil
}
