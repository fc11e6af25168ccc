package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Shubh-Pi/Transaction-management/internal/application/service"
	"github.com/Shubh-Pi/Transaction-management/internal/domain/entity"
	"github.com/Shubh-Pi/Transaction-management/internal/errs"
	"github.com/Shubh-Pi/Transaction-management/internal/infrastructure/logger"
	"github.com/Shubh-Pi/Transaction-management/internal/infrastructure/middleware"
	"github.com/gorilla/mux"
)

// TransactionHandler handles HTTP requests for transactions
type TransactionHandler struct {
	service *service.TransactionService
	logger  logger.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(service *service.TransactionService, log logger.Logger) *TransactionHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &TransactionHandler{
		service: service,
		logger:  log,
	}
}

// ListTransactions handles listing every stored transaction
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	txs, err := h.service.ListTransactions(r.Context())
	if err != nil {
		writeError(w, h.logger, requestID, err)
		return
	}

	writeJSON(w, http.StatusOK, txs)
}

// CreateTransaction handles the creation of a new transaction
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var tx entity.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		h.logger.Warn("Invalid request body", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		writeError(w, h.logger, requestID, errs.NewBadRequest("Invalid JSON format"))
		return
	}

	created, err := h.service.CreateTransaction(r.Context(), tx)
	if err != nil {
		writeError(w, h.logger, requestID, err)
		return
	}

	writeJSON(w, http.StatusOK, created)
}

// UpdateTransaction handles a partial update of a stored transaction
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := mux.Vars(r)["id"]

	var patch entity.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.logger.Warn("Invalid request body", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		writeError(w, h.logger, requestID, errs.NewBadRequest("Invalid JSON format"))
		return
	}

	updated, err := h.service.UpdateTransaction(r.Context(), id, patch)
	if err != nil {
		writeError(w, h.logger, requestID, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteTransaction handles deletion of a single transaction
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := mux.Vars(r)["id"]

	if err := h.service.DeleteTransaction(r.Context(), id); err != nil {
		writeError(w, h.logger, requestID, err)
		return
	}

	writeJSON(w, http.StatusOK, DeleteTransactionResponse{
		Success: true,
		Message: "Transaction deleted",
	})
}

// missingID answers an update or delete that carries no id segment
func (h *TransactionHandler) missingID(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	writeError(w, h.logger, requestID, errs.NewBadRequest("Transaction ID missing"))
}

// RegisterRoutes registers the transaction handler routes
func (h *TransactionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/transactions", h.ListTransactions).Methods("GET")
	router.HandleFunc("/api/transactions", h.CreateTransaction).Methods("POST")
	router.HandleFunc("/api/transactions", h.missingID).Methods("PATCH", "DELETE")
	router.HandleFunc("/api/transactions/", h.missingID).Methods("PATCH", "DELETE")
	router.HandleFunc("/api/transactions/{id}", h.UpdateTransaction).Methods("PATCH")
	router.HandleFunc("/api/transactions/{id}", h.DeleteTransaction).Methods("DELETE")
}
