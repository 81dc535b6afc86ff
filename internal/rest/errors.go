// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-webcrypto.
//
// go-webcrypto is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package rest

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/jeremyhahn/go-webcrypto/pkg/webcrypto"
)

// Common errors
var (
	ErrInvalidRequest    = errors.New("invalid request")
	ErrRequestTooLarge   = errors.New("request too large")
	ErrInternalError     = errors.New("internal server error")
	ErrRegistryRequired  = errors.New("rest: registry is required")
	ErrConfigRequired    = errors.New("rest: config is required")
	ErrServiceNotStarted = errors.New("service not started")
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Code    int    `json:"code"`
	Param   string `json:"param,omitempty"`
}

// writeErrorWithMessage writes an error response with a custom message.
func writeErrorWithMessage(w http.ResponseWriter, err error, message string, statusCode int) {
	writeJSON(w, ErrorResponse{
		Error:   err.Error(),
		Message: message,
		Code:    statusCode,
	}, statusCode)
}

// mapErrorToStatusCode maps errors to HTTP status codes.
func mapErrorToStatusCode(err error) int {
	var verr *webcrypto.Error
	switch {
	case errors.As(err, &verr):
		if verr.Kind == webcrypto.KindAlgorithmNotSupported {
			return http.StatusNotFound
		}
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrRequestTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// handleError maps err to a status code and writes the error response.
// Validation errors are reported with their kind, code and parameter.
func handleError(w http.ResponseWriter, err error) {
	statusCode := mapErrorToStatusCode(err)

	var verr *webcrypto.Error
	if errors.As(err, &verr) {
		writeJSON(w, ErrorResponse{
			Error:   verr.Kind.String(),
			Message: verr.Message,
			Kind:    verr.Kind.String(),
			Code:    verr.Code,
			Param:   verr.Param,
		}, statusCode)
		return
	}
	if statusCode == http.StatusInternalServerError {
		writeErrorWithMessage(w, ErrInternalError, err.Error(), statusCode)
		return
	}
	writeErrorWithMessage(w, err, "", statusCode)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Failed to encode JSON response: %v", err)
	}
}
