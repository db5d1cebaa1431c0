package daemon

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"pinboard/internal/store"
	"pinboard/internal/types"
)

func newNotesTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	notes := store.NewFileNoteStore(filepath.Join(t.TempDir(), "notes.json"))
	api := &API{Version: "test", Notes: notes}
	server := httptest.NewServer(TokenAuthMiddleware("token", api.Router()))
	t.Cleanup(server.Close)
	return server
}

func authedRequest(t *testing.T, method, url string, payload any) *http.Request {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestNotesEndpointsCRUD(t *testing.T) {
	server := newNotesTestServer(t)

	createResp, err := http.DefaultClient.Do(authedRequest(t, http.MethodPost, server.URL+"/v1/notes", types.Note{
		Color:    types.ColorPink,
		Position: types.Position{X: 12, Y: 4},
		Size:     types.Size{Width: 24, Height: 7},
		ZIndex:   1,
		Text:     "call dentist",
	}))
	if err != nil {
		t.Fatalf("create note: %v", err)
	}
	defer createResp.Body.Close()
	if createResp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", createResp.StatusCode)
	}
	var created types.Note
	if err := json.NewDecoder(createResp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected note id")
	}
	if created.Color != types.ColorPink {
		t.Fatalf("expected pink note, got %s", created.Color)
	}

	listResp, err := http.DefaultClient.Do(authedRequest(t, http.MethodGet, server.URL+"/v1/notes", nil))
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	defer listResp.Body.Close()
	if listResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", listResp.StatusCode)
	}
	var listPayload struct {
		Notes []*types.Note `json:"notes"`
	}
	if err := json.NewDecoder(listResp.Body).Decode(&listPayload); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listPayload.Notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(listPayload.Notes))
	}

	updateResp, err := http.DefaultClient.Do(authedRequest(t, http.MethodPut, server.URL+"/v1/notes/"+created.ID, types.Note{
		Color:    types.ColorPink,
		Position: types.Position{X: 20, Y: 8},
		Size:     types.Size{Width: 30, Height: 9},
		ZIndex:   4,
		Text:     "call dentist tomorrow",
	}))
	if err != nil {
		t.Fatalf("update note: %v", err)
	}
	defer updateResp.Body.Close()
	if updateResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", updateResp.StatusCode)
	}
	var updated types.Note
	if err := json.NewDecoder(updateResp.Body).Decode(&updated); err != nil {
		t.Fatalf("decode update: %v", err)
	}
	if updated.Text != "call dentist tomorrow" || updated.ZIndex != 4 {
		t.Fatalf("unexpected updated note: %+v", updated)
	}
	if updated.Position != (types.Position{X: 20, Y: 8}) {
		t.Fatalf("unexpected updated position: %+v", updated.Position)
	}

	deleteResp, err := http.DefaultClient.Do(authedRequest(t, http.MethodDelete, server.URL+"/v1/notes/"+created.ID, nil))
	if err != nil {
		t.Fatalf("delete note: %v", err)
	}
	defer deleteResp.Body.Close()
	if deleteResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", deleteResp.StatusCode)
	}

	missingResp, err := http.DefaultClient.Do(authedRequest(t, http.MethodDelete, server.URL+"/v1/notes/"+created.ID, nil))
	if err != nil {
		t.Fatalf("delete missing note: %v", err)
	}
	defer missingResp.Body.Close()
	if missingResp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", missingResp.StatusCode)
	}
}

func TestNotesEndpointUpdateUnknownID(t *testing.T) {
	server := newNotesTestServer(t)

	resp, err := http.DefaultClient.Do(authedRequest(t, http.MethodPut, server.URL+"/v1/notes/no-such-note", types.Note{
		Color: types.ColorBlue,
		Size:  types.Size{Width: 10, Height: 4},
	}))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	var payload errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if payload.Error == "" {
		t.Fatalf("expected error message")
	}
}

func TestNotesEndpointRejectsInvalidPayloads(t *testing.T) {
	server := newNotesTestServer(t)

	cases := []struct {
		name string
		note types.Note
	}{
		{name: "bad-color", note: types.Note{Color: "magenta", Size: types.Size{Width: 10, Height: 4}}},
		{name: "zero-width", note: types.Note{Color: types.ColorBlue, Size: types.Size{Width: 0, Height: 4}}},
		{name: "zero-height", note: types.Note{Color: types.ColorBlue, Size: types.Size{Width: 10, Height: 0}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := http.DefaultClient.Do(authedRequest(t, http.MethodPost, server.URL+"/v1/notes", tc.note))
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.StatusCode)
			}
		})
	}
}

func TestNotesEndpointClampsNegativePosition(t *testing.T) {
	server := newNotesTestServer(t)

	resp, err := http.DefaultClient.Do(authedRequest(t, http.MethodPost, server.URL+"/v1/notes", types.Note{
		Color:    types.ColorGreen,
		Position: types.Position{X: -3, Y: -9},
		Size:     types.Size{Width: 10, Height: 4},
	}))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var created types.Note
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Position != (types.Position{X: 0, Y: 0}) {
		t.Fatalf("expected clamped position, got %+v", created.Position)
	}
}

func TestHealthEndpointNoAuth(t *testing.T) {
	server := newNotesTestServer(t)

	resp, err := http.Get(server.URL + "/health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var payload struct {
		OK      bool   `json:"ok"`
		Version string `json:"version"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if !payload.OK || payload.Version != "test" {
		t.Fatalf("unexpected health payload: %+v", payload)
	}
}
