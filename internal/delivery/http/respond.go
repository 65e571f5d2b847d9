package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/PrintfAman/nexo/internal/entity"
)

// Error kinds reported in ErrorResponse.Error.
const (
	errInvalidInput   = "invalid_input"
	errNotFound       = "not_found"
	errConflict       = "conflict"
	errStorageFailure = "storage_failure"
	errUnavailable    = "unavailable"
)

// timeoutMessage is sent when a handler runs past its deadline. The handler
// is not rolled back, so a checkout may still have been placed.
const timeoutMessage = "request timed out; retry checkout with the same Idempotency-Key to get its receipt"

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "err", err)
	}
}

func timeoutBody() string {
	b, err := json.Marshal(ErrorResponse{Error: errUnavailable, Message: timeoutMessage})
	if err != nil {
		panic(err)
	}
	return string(b)
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, ErrorResponse{Error: kind, Message: message})
}

// writeServiceError maps a core error onto a status code and error kind.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := slog.With(
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
		"err", err,
	)

	switch {
	case errors.Is(err, entity.ErrInvalidInput):
		log.Warn("Rejected request")
		writeError(w, http.StatusBadRequest, errInvalidInput, err.Error())
	case errors.Is(err, entity.ErrNotFound):
		log.Warn("Resource not found")
		writeError(w, http.StatusNotFound, errNotFound, err.Error())
	case errors.Is(err, entity.ErrConflict):
		log.Warn("Request conflict")
		writeError(w, http.StatusConflict, errConflict, err.Error())
	default:
		log.Error("Request failed")
		writeError(w, http.StatusInternalServerError, errStorageFailure, "internal server error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		slog.Warn("Invalid request body", "path", r.URL.Path, "err", err)
		writeError(w, http.StatusBadRequest, errInvalidInput, "invalid request body")
		return false
	}
	return true
}

func urlParam(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}

// parseID reads a positive integer path parameter. It writes a 400 response
// and returns false if the parameter is malformed.
func parseID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(urlParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		slog.Warn("Invalid path parameter", "name", name, "value", urlParam(r, name))
		writeError(w, http.StatusBadRequest, errInvalidInput, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}
