package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pinboard/internal/types"
)

func newNotesTestServer(t *testing.T) (*httptest.Server, *Client) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "version": "test", "pid": 42})
	})
	mux.HandleFunc("/v1/notes", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
			return
		}
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(map[string]any{"notes": []*types.Note{
				{ID: "n1", Color: types.ColorYellow, Text: "one"},
				{ID: "n2", Color: types.ColorBlue, Text: "two"},
			}})
		case http.MethodPost:
			var note types.Note
			_ = json.NewDecoder(r.Body).Decode(&note)
			note.ID = "created-id"
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(note)
		}
	})
	mux.HandleFunc("/v1/notes/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
			return
		}
		switch r.Method {
		case http.MethodPut:
			var note types.Note
			_ = json.NewDecoder(r.Body).Decode(&note)
			note.ID = "n1"
			_ = json.NewEncoder(w).Encode(note)
		case http.MethodDelete:
			if r.URL.Path == "/v1/notes/missing" {
				w.WriteHeader(http.StatusNotFound)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "note not found"})
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
		}
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, NewWithBaseURL(server.URL, "secret")
}

func TestClientHealth(t *testing.T) {
	_, c := newNotesTestServer(t)
	resp, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if !resp.OK || resp.Version != "test" || resp.PID != 42 {
		t.Fatalf("unexpected health response: %+v", resp)
	}
}

func TestClientListNotes(t *testing.T) {
	_, c := newNotesTestServer(t)
	notes, err := c.ListNotes(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(notes) != 2 || notes[0].ID != "n1" || notes[1].ID != "n2" {
		t.Fatalf("unexpected notes: %+v", notes)
	}
}

func TestClientCreateNote(t *testing.T) {
	_, c := newNotesTestServer(t)
	created, err := c.CreateNote(context.Background(), &types.Note{
		Color: types.ColorGreen,
		Size:  types.Size{Width: 24, Height: 7},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != "created-id" || created.Color != types.ColorGreen {
		t.Fatalf("unexpected created note: %+v", created)
	}
}

func TestClientUpdateNoteRequiresID(t *testing.T) {
	_, c := newNotesTestServer(t)
	if _, err := c.UpdateNote(context.Background(), &types.Note{}); err == nil {
		t.Fatalf("expected error for missing id")
	}
}

func TestClientDeleteNoteNotFound(t *testing.T) {
	_, c := newNotesTestServer(t)
	err := c.DeleteNote(context.Background(), "missing")
	apiErr := asAPIError(err)
	if apiErr == nil {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Message != "note not found" {
		t.Fatalf("unexpected api error: %+v", apiErr)
	}
}

func TestClientWrongToken(t *testing.T) {
	server, _ := newNotesTestServer(t)
	c := NewWithBaseURL(server.URL, "wrong")
	_, err := c.ListNotes(context.Background())
	apiErr := asAPIError(err)
	if apiErr == nil || apiErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 api error, got %v", err)
	}
}
