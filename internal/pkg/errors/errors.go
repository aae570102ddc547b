package errors

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of every failed JSON request.
type ErrorResponse struct {
	Error string `json:"error"`
}

const (
	MsgUnauthorized = "Unauthorized"
	MsgInvalidToken = "Invalid token"
	MsgInvalidBody  = "Invalid request body"
	MsgInternal     = "Internal server error"
	MsgRateLimited  = "Rate limit exceeded"
)

func WriteError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

func Internal(w http.ResponseWriter) {
	WriteError(w, http.StatusInternalServerError, MsgInternal)
}
