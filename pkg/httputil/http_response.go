// Package httputil holds the JSON writers every route handler answers
// through, so status codes and body shapes stay uniform across the surface.
package httputil

import (
	"net/http"

	"github.com/bytedance/sonic"
)

// ErrorResponse is the error body of every failed request. Details carries
// the underlying error only when the handler decides the caller may see it.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func WriteErrorResponse(w http.ResponseWriter, statusCode int, message string, details error) {
	body := ErrorResponse{
		Code:    statusCode,
		Message: message,
	}
	if details != nil {
		body.Details = details.Error()
	}
	WriteJSONResponse(w, statusCode, body)
}

func WriteJSONResponse(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if body != nil {
		sonic.ConfigDefault.NewEncoder(w).Encode(body)
	}
}
