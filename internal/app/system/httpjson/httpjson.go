// Package httpjson writes JSON responses and decodes JSON request bodies
// for the REST features.
package httpjson

import (
	"encoding/json"
	"net/http"

	"github.com/perceptai/perceptai/internal/app/system/apierr"
	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies; payloads here are small JSON documents.
const maxBodyBytes = 1 << 20 // 1 MiB

// Write encodes v as JSON with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK encodes v as JSON with status 200.
func OK(w http.ResponseWriter, v any) {
	Write(w, http.StatusOK, v)
}

// Created encodes v as JSON with status 201.
func Created(w http.ResponseWriter, v any) {
	Write(w, http.StatusCreated, v)
}

// errorBody is the uniform error response shape.
type errorBody struct {
	Error string `json:"error"`
}

// Error renders err through the apierr taxonomy. Storage-class errors are
// logged with their wrapped cause; the response carries only the
// caller-facing message.
func Error(w http.ResponseWriter, logger *zap.Logger, err error) {
	if apierr.KindOf(err) == apierr.KindStorage && logger != nil {
		logger.Error("request failed", zap.Error(err))
	}
	Write(w, apierr.StatusOf(err), errorBody{Error: apierr.MessageOf(err)})
}

// Message renders a {"message": ...} body with status 200, the shape the
// frontend expects from mutation endpoints that return no entity.
func Message(w http.ResponseWriter, msg string) {
	OK(w, map[string]string{"message": msg})
}

// Decode reads a JSON request body into dst. A malformed body yields a
// validation error.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return apierr.Validation("invalid JSON request body")
	}
	return nil
}
