package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/mdstore/internal/filestore"
	"github.com/bornholm/mdstore/internal/metrics"
	"github.com/pkg/errors"
)

type ErrorResponse struct {
	Detail string `json:"detail"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", " ")

	if err := encoder.Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "could not encode response", slogx.Error(errors.WithStack(err)))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	status := http.StatusInternalServerError
	detail := http.StatusText(status)

	switch {
	case errors.Is(err, filestore.ErrNotFound):
		status = http.StatusNotFound
		detail = "File not found"

	case errors.Is(err, filestore.ErrNotAllowed), errors.Is(err, filestore.ErrInvalidName):
		status = http.StatusBadRequest
		detail = err.Error()

	default:
		slog.ErrorContext(r.Context(), "could not process request", slog.String("operation", operation), slogx.Error(errors.WithStack(err)))
	}

	observe(operation, status)

	writeJSON(w, r, status, ErrorResponse{Detail: detail})
}

func observe(operation string, status int) {
	metrics.FileOperations.With(map[string]string{
		metrics.LabelOperation: operation,
		metrics.LabelStatus:    strconv.Itoa(status),
	}).Inc()
}
