// Package httputil provides shared HTTP utilities for consistent response handling.
package httputil

import (
	"encoding/json"
	"net/http"
)

// Content types written by this package.
const (
	ContentTypeJSON = "application/json"
	ContentTypeText = "text/plain; charset=utf-8"
)

// WriteJSON writes data as two-space indented JSON with the given status code.
// It sets the Content-Type header to application/json.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	if data == nil {
		w.Header().Set("Content-Type", ContentTypeJSON)
		w.WriteHeader(status)
		return
	}
	body, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		WriteText(w, http.StatusInternalServerError, "failed to encode response")
		return
	}
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// WriteText writes a plain text response with the given status code.
func WriteText(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", ContentTypeText)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(message))
}

// WriteOK writes a 200 OK response with data.
func WriteOK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, data)
}

// WriteBadRequest writes a 400 Bad Request text response.
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteText(w, http.StatusBadRequest, message)
}

// WriteNotFound writes a 404 Not Found text response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteText(w, http.StatusNotFound, message)
}

// WriteInternalError writes a 500 Internal Server Error text response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteText(w, http.StatusInternalServerError, message)
}
