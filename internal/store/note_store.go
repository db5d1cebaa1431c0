package store

import (
	"context"
	"errors"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"pinboard/internal/types"
)

var ErrNoteNotFound = errors.New("note not found")

const noteSchemaVersion = 1

// NoteStore is the persistence contract shared by every backend. Upsert
// stores the full snapshot: a note with an unknown or empty id is created
// (id assigned here), an existing id is replaced wholesale except for
// created_at.
type NoteStore interface {
	List(ctx context.Context) ([]*types.Note, error)
	Get(ctx context.Context, id string) (*types.Note, bool, error)
	Upsert(ctx context.Context, note *types.Note) (*types.Note, error)
	Delete(ctx context.Context, id string) error
}

type FileNoteStore struct {
	path string
	mu   sync.Mutex
}

type noteFile struct {
	Version int           `json:"version"`
	Notes   []*types.Note `json:"notes"`
}

func NewFileNoteStore(path string) *FileNoteStore {
	return &FileNoteStore{path: path}
}

func (s *FileNoteStore) List(ctx context.Context) ([]*types.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		if errors.Is(err, ErrNoteNotFound) {
			return []*types.Note{}, nil
		}
		return nil, err
	}

	out := make([]*types.Note, 0, len(file.Notes))
	for _, note := range file.Notes {
		out = append(out, note.Clone())
	}
	sortNotesByZ(out)
	return out, nil
}

func (s *FileNoteStore) Get(ctx context.Context, id string) (*types.Note, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		if errors.Is(err, ErrNoteNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	for _, note := range file.Notes {
		if note.ID == id {
			return note.Clone(), true, nil
		}
	}
	return nil, false, nil
}

func (s *FileNoteStore) Upsert(ctx context.Context, note *types.Note) (*types.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if note == nil {
		return nil, errors.New("note is required")
	}

	file, err := s.load()
	if err != nil && !errors.Is(err, ErrNoteNotFound) {
		return nil, err
	}
	if file == nil {
		file = newNoteFile()
	}

	normalized := normalizeNote(note, nil)
	updated := false
	for i, existing := range file.Notes {
		if existing.ID != normalized.ID {
			continue
		}
		normalized = normalizeNote(note, existing)
		file.Notes[i] = normalized
		updated = true
		break
	}
	if !updated {
		file.Notes = append(file.Notes, normalized)
	}

	if err := s.save(file); err != nil {
		return nil, err
	}
	return normalized.Clone(), nil
}

func (s *FileNoteStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}
	filtered := file.Notes[:0]
	found := false
	for _, note := range file.Notes {
		if note.ID == id {
			found = true
			continue
		}
		filtered = append(filtered, note)
	}
	file.Notes = filtered
	if !found {
		return ErrNoteNotFound
	}
	return s.save(file)
}

func (s *FileNoteStore) load() (*noteFile, error) {
	file := newNoteFile()
	if err := readJSON(s.path, file); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	if file.Version == 0 {
		file.Version = noteSchemaVersion
	}
	if file.Notes == nil {
		file.Notes = []*types.Note{}
	}
	return file, nil
}

func (s *FileNoteStore) save(file *noteFile) error {
	file.Version = noteSchemaVersion
	return writeJSONAtomic(s.path, file)
}

func newNoteFile() *noteFile {
	return &noteFile{Version: noteSchemaVersion, Notes: []*types.Note{}}
}

// normalizeNote applies store-level invariants to a full snapshot: id and
// created_at survive from the existing record, position never goes
// negative, updated_at always advances.
func normalizeNote(note *types.Note, existing *types.Note) *types.Note {
	normalized := *note
	if strings.TrimSpace(normalized.ID) == "" {
		normalized.ID = newNoteID()
	}
	normalized.Position = normalized.Position.Clamped()
	if normalized.ZIndex < 0 {
		normalized.ZIndex = 0
	}
	now := time.Now().UTC()
	if existing != nil {
		normalized.ID = existing.ID
		normalized.CreatedAt = existing.CreatedAt
		normalized.UpdatedAt = now
	} else {
		if normalized.CreatedAt.IsZero() {
			normalized.CreatedAt = now
		}
		if normalized.UpdatedAt.IsZero() {
			normalized.UpdatedAt = now
		}
	}
	return &normalized
}

func sortNotesByZ(notes []*types.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].ZIndex == notes[j].ZIndex {
			return notes[i].CreatedAt.Before(notes[j].CreatedAt)
		}
		return notes[i].ZIndex < notes[j].ZIndex
	})
}

func newNoteID() string {
	return uuid.NewString()
}
