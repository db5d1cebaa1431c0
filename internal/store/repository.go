package store

import (
	"fmt"

	"pinboard/internal/config"
)

// Repository couples a NoteStore with its backend lifecycle.
type Repository struct {
	Notes   NoteStore
	backend string
	closer  func() error
}

// Open builds the note store named by the configuration.
func Open(cfg config.Config) (*Repository, error) {
	path, err := cfg.StoragePath()
	if err != nil {
		return nil, err
	}
	backend := cfg.StorageBackend()
	switch backend {
	case config.BackendBolt:
		s, err := NewBoltNoteStore(path)
		if err != nil {
			return nil, err
		}
		return &Repository{Notes: s, backend: backend, closer: s.Close}, nil
	case config.BackendSQLite:
		s, err := NewSQLiteNoteStore(path)
		if err != nil {
			return nil, err
		}
		return &Repository{Notes: s, backend: backend, closer: s.Close}, nil
	case config.BackendFile:
		return &Repository{Notes: NewFileNoteStore(path), backend: backend}, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

func (r *Repository) Backend() string {
	if r == nil {
		return ""
	}
	return r.backend
}

func (r *Repository) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	return r.closer()
}
