package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Shubh-Pi/Transaction-management/internal/errs"
	"github.com/Shubh-Pi/Transaction-management/internal/infrastructure/logger"
)

// ErrorResponse is the wire shape for every error response. Message is
// only populated for internal errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// DeletePersonResponse represents the response for the person delete endpoint
type DeletePersonResponse struct {
	Success             bool   `json:"success"`
	Message             string `json:"message"`
	DeletedTransactions int    `json:"deletedTransactions"`
}

// DeleteTransactionResponse represents the response for the transaction delete endpoint
type DeleteTransactionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// writeJSON writes body as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// writeError maps an error onto the wire contract: a client error keeps
// its status and message, anything else becomes a 500 whose message is
// forwarded to the caller.
func writeError(w http.ResponseWriter, log logger.Logger, requestID string, err error) {
	var apiErr *errs.Error
	if errors.As(err, &apiErr) {
		writeJSON(w, apiErr.Status, ErrorResponse{Error: apiErr.Message})
		return
	}

	log.Error("Request failed", map[string]interface{}{
		"request_id": requestID,
		"error":      err.Error(),
	})
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "Internal server error",
		Message: err.Error(),
	})
}
