package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/israil64/laptop-galaxy/internal/storage"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeMessage sends the {"message": ...} body every endpoint uses for both
// confirmations and errors. Storage failures never reach the client in
// detail; callers pass a generic message instead.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// storageError maps a persistence failure to the outward taxonomy: a missing
// update target is 404, anything else is a generic 500.
func storageError(w http.ResponseWriter, err error, notFoundMsg string) {
	if errors.Is(err, storage.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, notFoundMsg)
		return
	}
	slog.Error("Storage operation failed", "error", err)
	writeMessage(w, http.StatusInternalServerError, "Internal server error")
}

// decodeBody decodes a JSON request body into v. Patch targets set strict to
// reject unknown fields instead of silently merging them.
func decodeBody(r *http.Request, v any, strict bool) error {
	dec := json.NewDecoder(r.Body)
	if strict {
		dec.DisallowUnknownFields()
	}
	return dec.Decode(v)
}
