package daemon

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (a *API) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/health", a.Health).Methods(http.MethodGet)
	router.HandleFunc("/v1/notes", a.ListNotes).Methods(http.MethodGet)
	router.HandleFunc("/v1/notes", a.CreateNote).Methods(http.MethodPost)
	router.HandleFunc("/v1/notes/{id}", a.UpdateNote).Methods(http.MethodPut)
	router.HandleFunc("/v1/notes/{id}", a.DeleteNote).Methods(http.MethodDelete)
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	})
	return router
}
