package handler

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter creates the API router with the 404/405 contract wired in:
// unrecognized paths answer {"error":"Not found"} and recognized paths
// with an unsupported verb answer {"error":"Method Not Allowed"}.
func NewRouter() *mux.Router {
	router := mux.NewRouter()

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "Not found"})
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "Method Not Allowed"})
	})

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	return router
}
