package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/simaogato/cashflow-backend/internal/domain"
)

// Error codes carried in the "error" field of failure bodies
const (
	codeInvalidAmount       = "InvalidAmount"
	codeInvalidEntry        = "InvalidEntry"
	codeNotFound            = "NotFound"
	codeInsufficientBalance = "InsufficientBalance"
	codePartialApply        = "PartialApplyFailure"
	codeStoreUnavailable    = "StoreUnavailable"
	codeBadRequest          = "BadRequest"
	codeForbidden           = "Forbidden"
	codeInternal            = "Internal"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeJSON writes a success response
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr writes a failure body with an explicit code
func writeErr(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: code, Message: message})
}

// writeDomainErr maps an engine or query error to its HTTP status
func writeDomainErr(w http.ResponseWriter, err error) {
	status, code := mapError(err)
	writeErr(w, status, code, err.Error())
}

func mapError(err error) (int, string) {
	switch {
	// checked first: a partial apply also wraps the store failure behind it
	case errors.Is(err, domain.ErrPartialApply):
		return http.StatusInternalServerError, codePartialApply
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, codeInvalidAmount
	case errors.Is(err, domain.ErrInvalidEntry):
		return http.StatusBadRequest, codeInvalidEntry
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusBadRequest, codeInsufficientBalance
	case errors.Is(err, domain.ErrStoreUnavailable),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, codeStoreUnavailable
	default:
		return http.StatusInternalServerError, codeInternal
	}
}
