package api

import (
	"net/http"

	"github.com/bornholm/mdstore/internal/filestore"
)

type Handler struct {
	store *filestore.Store
	mux   *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func NewHandler(store *filestore.Store) *Handler {
	h := &Handler{
		store: store,
		mux:   &http.ServeMux{},
	}

	h.mux.HandleFunc("GET /{$}", h.handleListFiles)
	h.mux.HandleFunc("GET /{filename}", h.handleGetFile)
	h.mux.HandleFunc("PUT /{filename}", h.handleSaveFile)
	h.mux.HandleFunc("DELETE /{filename}", h.handleDeleteFile)

	return h
}

var _ http.Handler = &Handler{}
