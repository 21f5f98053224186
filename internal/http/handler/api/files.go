package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/mdstore/internal/filestore"
	"github.com/bornholm/mdstore/internal/metrics"
	"github.com/pkg/errors"
)

const maxBodySize = 32 << 20

type ListFilesResponse struct {
	Files []string `json:"files"`
}

type GetFileResponse struct {
	Content string `json:"content"`
}

type SaveFileRequest struct {
	Content *string `json:"content"`
}

func (h *Handler) handleListFiles(w http.ResponseWriter, r *http.Request) {
	files, err := h.store.List(r.Context())
	if err != nil {
		writeError(w, r, metrics.OperationList, errors.WithStack(err))
		return
	}

	observe(metrics.OperationList, http.StatusOK)

	writeJSON(w, r, http.StatusOK, ListFilesResponse{Files: files})
}

func (h *Handler) handleGetFile(w http.ResponseWriter, r *http.Request) {
	filename := r.PathValue("filename")
	ctx := slogx.WithAttrs(r.Context(), slog.String("filename", filename))

	if err := filestore.ValidateName(filename); err != nil {
		writeError(w, r, metrics.OperationRead, errors.WithStack(err))
		return
	}

	if h.store.Kind(filename) == filestore.KindRaw {
		file, stat, err := h.store.Open(ctx, filename)
		if err != nil {
			writeError(w, r, metrics.OperationRead, errors.WithStack(err))
			return
		}

		defer file.Close()

		contentType := mime.TypeByExtension(filepath.Ext(filename))
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": filename}))

		observe(metrics.OperationRead, http.StatusOK)

		http.ServeContent(w, r, filename, stat.ModTime(), file)

		return
	}

	content, err := h.store.ReadText(ctx, filename)
	if err != nil {
		writeError(w, r, metrics.OperationRead, errors.WithStack(err))
		return
	}

	observe(metrics.OperationRead, http.StatusOK)

	writeJSON(w, r, http.StatusOK, GetFileResponse{Content: content})
}

func (h *Handler) handleSaveFile(w http.ResponseWriter, r *http.Request) {
	filename := r.PathValue("filename")
	ctx := slogx.WithAttrs(r.Context(), slog.String("filename", filename))

	var req SaveFileRequest

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodySize))
	if err := decoder.Decode(&req); err != nil || req.Content == nil {
		slog.DebugContext(ctx, "invalid request body", slog.Any("error", err))
		observe(metrics.OperationWrite, http.StatusUnprocessableEntity)
		writeJSON(w, r, http.StatusUnprocessableEntity, ErrorResponse{Detail: "Request body must be a json object with a 'content' string"})
		return
	}

	if err := h.store.Save(ctx, filename, *req.Content); err != nil {
		writeError(w, r, metrics.OperationWrite, errors.WithStack(err))
		return
	}

	observe(metrics.OperationWrite, http.StatusOK)

	writeJSON(w, r, http.StatusOK, SuccessResponse{Success: true})
}

func (h *Handler) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	filename := r.PathValue("filename")
	ctx := slogx.WithAttrs(r.Context(), slog.String("filename", filename))

	if err := h.store.Delete(ctx, filename); err != nil {
		writeError(w, r, metrics.OperationDelete, errors.WithStack(err))
		return
	}

	observe(metrics.OperationDelete, http.StatusOK)

	writeJSON(w, r, http.StatusOK, SuccessResponse{Success: true})
}
