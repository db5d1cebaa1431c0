package daemon

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"pinboard/internal/types"
)

func (a *API) ListNotes(w http.ResponseWriter, r *http.Request) {
	service := NewNoteService(a.Notes)
	notes, err := service.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notes": notes})
}

func (a *API) CreateNote(w http.ResponseWriter, r *http.Request) {
	service := NewNoteService(a.Notes)
	var req types.Note
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}
	note, err := service.Create(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

func (a *API) UpdateNote(w http.ResponseWriter, r *http.Request) {
	service := NewNoteService(a.Notes)
	id := strings.TrimSpace(mux.Vars(r)["id"])
	var req types.Note
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return
	}
	note, err := service.Update(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (a *API) DeleteNote(w http.ResponseWriter, r *http.Request) {
	service := NewNoteService(a.Notes)
	id := strings.TrimSpace(mux.Vars(r)["id"])
	if err := service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
