package blob

import (
	"log/slog"
	"net/http"

	"github.com/pkg/errors"
)

// Handler exposes the blobs of a registry over http so that a viewer can
// dereference an object url with GET /{blobID}.
type Handler struct {
	registry *Registry
	mux      *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(registry *Registry) *Handler {
	h := &Handler{
		registry: registry,
		mux:      &http.ServeMux{},
	}

	h.mux.HandleFunc("GET /{blobID}", h.handleGetBlob)

	return h
}

func (h *Handler) handleGetBlob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	blobID := r.PathValue("blobID")

	b, err := h.registry.Get(blobID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}

		slog.ErrorContext(ctx, "could not retrieve blob", slog.Any("error", errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", b.Type())
	w.Header().Set("Cache-Control", "no-store")

	http.ServeContent(w, r, blobID, b.CreatedAt(), b.Reader())
}

var _ http.Handler = &Handler{}
