package client

import "pinboard/internal/types"

type HealthResponse struct {
	OK      bool   `json:"ok"`
	Version string `json:"version"`
	PID     int    `json:"pid"`
}

type NotesResponse struct {
	Notes []*types.Note `json:"notes"`
}
