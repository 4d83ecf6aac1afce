package utils

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope every endpoint answers with. Status is false for
// any 4xx or 5xx answer.
type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

func ResponseJSON(w http.ResponseWriter, code int, status bool, message string, data, errors any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(Response{
		Status:  status,
		Message: message,
		Data:    data,
		Errors:  errors,
	})
}

func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusOK, true, message, data, nil)
}

func ResponseCreated(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusCreated, true, message, data, nil)
}

// responseFailure writes a failed envelope; errors carries per-field detail.
func responseFailure(w http.ResponseWriter, code int, message string, errors any) {
	ResponseJSON(w, code, false, message, nil, errors)
}

func ResponseBadRequest(w http.ResponseWriter, message string, errors any) {
	responseFailure(w, http.StatusBadRequest, message, errors)
}

func ResponseConflict(w http.ResponseWriter, message string, errors any) {
	responseFailure(w, http.StatusConflict, message, errors)
}

func ResponseUnauthorized(w http.ResponseWriter, message string) {
	responseFailure(w, http.StatusUnauthorized, message, nil)
}

func ResponseForbidden(w http.ResponseWriter, message string) {
	responseFailure(w, http.StatusForbidden, message, nil)
}

func ResponseNotFound(w http.ResponseWriter, message string) {
	responseFailure(w, http.StatusNotFound, message, nil)
}

func ResponseInternalError(w http.ResponseWriter, message string) {
	responseFailure(w, http.StatusInternalServerError, message, nil)
}

// ResponseUnavailable reports a dependency outage (database, cache, blob store).
func ResponseUnavailable(w http.ResponseWriter, message string) {
	responseFailure(w, http.StatusServiceUnavailable, message, nil)
}
