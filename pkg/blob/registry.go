package blob

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/bornholm/mdstore/internal/metrics"
	"github.com/pkg/errors"
	"github.com/rs/xid"
)

const Scheme = "blob"

var (
	ErrNotFound   = errors.New("not found")
	ErrInvalidURL = errors.New("invalid object url")
)

// Registry holds the blobs referenced by object urls. Blobs stay alive until
// their url is revoked: the registry never reclaims them on its own.
type Registry struct {
	origin string
	mutex  sync.RWMutex
	blobs  map[string]*Blob
}

func NewRegistry(funcs ...OptionFunc) *Registry {
	opts := NewOptions(funcs...)
	return &Registry{
		origin: opts.Origin,
		blobs:  make(map[string]*Blob),
	}
}

// CreateObjectURL registers the blob and returns a handle on it.
// The caller owns the handle and must revoke it.
func (r *Registry) CreateObjectURL(b *Blob) *ObjectURL {
	id := xid.New().String()

	r.mutex.Lock()
	r.blobs[id] = b
	r.mutex.Unlock()

	metrics.BlobsLive.Inc()
	metrics.BlobsBytes.Add(float64(b.Size()))

	slog.Debug("object url created", slog.String("id", id), slog.String("type", b.Type()), slog.Int64("size", b.Size()))

	return &ObjectURL{
		registry: r,
		id:       id,
		raw:      r.format(id),
	}
}

// Resolve returns the blob referenced by the given object url.
func (r *Registry) Resolve(rawURL string) (*Blob, error) {
	id, err := r.parse(rawURL)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return r.Get(id)
}

// Get returns the blob registered under the given identifier.
func (r *Registry) Get(id string) (*Blob, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	b, exists := r.blobs[id]
	if !exists {
		return nil, errors.WithStack(ErrNotFound)
	}

	return b, nil
}

// Revoke releases the blob referenced by the given object url. It reports
// whether something was released.
func (r *Registry) Revoke(rawURL string) bool {
	id, err := r.parse(rawURL)
	if err != nil {
		return false
	}

	return r.revoke(id)
}

// RevokeAll releases every registered blob and returns how many were released.
func (r *Registry) RevokeAll() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	total := len(r.blobs)

	for id, b := range r.blobs {
		delete(r.blobs, id)
		metrics.BlobsLive.Dec()
		metrics.BlobsBytes.Sub(float64(b.Size()))
	}

	return total
}

// Len returns the number of live object urls.
func (r *Registry) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.blobs)
}

// Size returns the total size in bytes of the live blobs.
func (r *Registry) Size() int64 {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var total int64
	for _, b := range r.blobs {
		total += b.Size()
	}

	return total
}

func (r *Registry) revoke(id string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	b, exists := r.blobs[id]
	if !exists {
		return false
	}

	delete(r.blobs, id)

	metrics.BlobsLive.Dec()
	metrics.BlobsBytes.Sub(float64(b.Size()))

	slog.Debug("object url revoked", slog.String("id", id))

	return true
}

func (r *Registry) format(id string) string {
	return fmt.Sprintf("%s:%s/%s", Scheme, r.origin, id)
}

func (r *Registry) parse(rawURL string) (string, error) {
	prefix := fmt.Sprintf("%s:%s/", Scheme, r.origin)

	id, found := strings.CutPrefix(rawURL, prefix)
	if !found || id == "" || strings.Contains(id, "/") {
		return "", errors.Wrapf(ErrInvalidURL, "'%s' does not belong to origin '%s'", rawURL, r.origin)
	}

	return id, nil
}
