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

// PersonHandler handles HTTP requests for persons
type PersonHandler struct {
	service *service.PersonService
	logger  logger.Logger
}

// NewPersonHandler creates a new person handler
func NewPersonHandler(service *service.PersonService, log logger.Logger) *PersonHandler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &PersonHandler{
		service: service,
		logger:  log,
	}
}

// ListPersons handles listing every stored person
func (h *PersonHandler) ListPersons(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	persons, err := h.service.ListPersons(r.Context())
	if err != nil {
		writeError(w, h.logger, requestID, err)
		return
	}

	writeJSON(w, http.StatusOK, persons)
}

// CreatePerson handles the creation of a new person
func (h *PersonHandler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var person entity.Person
	if err := json.NewDecoder(r.Body).Decode(&person); err != nil {
		h.logger.Warn("Invalid request body", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		writeError(w, h.logger, requestID, errs.NewBadRequest("Invalid JSON format"))
		return
	}

	created, err := h.service.CreatePerson(r.Context(), person)
	if err != nil {
		writeError(w, h.logger, requestID, err)
		return
	}

	writeJSON(w, http.StatusOK, created)
}

// DeletePerson handles cascading deletion of a person and its transactions
func (h *PersonHandler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	id := mux.Vars(r)["id"]

	deleted, err := h.service.DeletePerson(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, requestID, err)
		return
	}

	writeJSON(w, http.StatusOK, DeletePersonResponse{
		Success:             true,
		Message:             "Person and all associated transactions deleted",
		DeletedTransactions: deleted,
	})
}

// missingID answers a delete that carries no id segment
func (h *PersonHandler) missingID(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	writeError(w, h.logger, requestID, errs.NewBadRequest("Person ID missing"))
}

// RegisterRoutes registers the person handler routes
func (h *PersonHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/persons", h.ListPersons).Methods("GET")
	router.HandleFunc("/api/persons", h.CreatePerson).Methods("POST")
	router.HandleFunc("/api/persons", h.missingID).Methods("DELETE")
	router.HandleFunc("/api/persons/", h.missingID).Methods("DELETE")
	router.HandleFunc("/api/persons/{id}", h.DeletePerson).Methods("DELETE")
}
