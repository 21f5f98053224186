package client

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// ErrEmptyFilename is returned by the file operations when no filename is
// given. An empty filename would address the collection itself.
var ErrEmptyFilename = errors.New("empty filename")

// HTTPError is returned when the server answers with a non 2xx status.
type HTTPError struct {
	StatusCode int
	Status     string
	// Body holds the beginning of the response body, for diagnostic purpose.
	Body string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected response code %d (%s)", e.StatusCode, e.Status)
}

// IsNotFound reports whether err is an HTTPError with a 404 status.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}
