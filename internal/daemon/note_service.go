package daemon

import (
	"context"
	"errors"
	"strings"

	"pinboard/internal/store"
	"pinboard/internal/types"
)

// NoteService validates note payloads before they reach the store.
// Updates are full snapshots: the client always sends the complete
// note state, never a partial patch.
type NoteService struct {
	notes store.NoteStore
}

func NewNoteService(notes store.NoteStore) *NoteService {
	return &NoteService{notes: notes}
}

func (s *NoteService) List(ctx context.Context) ([]*types.Note, error) {
	if s.notes == nil {
		return nil, unavailableError("note store not available", nil)
	}
	notes, err := s.notes.List(ctx)
	if err != nil {
		return nil, unavailableError(err.Error(), err)
	}
	return notes, nil
}

func (s *NoteService) Create(ctx context.Context, note *types.Note) (*types.Note, error) {
	if s.notes == nil {
		return nil, unavailableError("note store not available", nil)
	}
	if note == nil {
		return nil, invalidError("note payload is required", nil)
	}
	normalized, err := normalizeAndValidate(note)
	if err != nil {
		return nil, err
	}
	normalized.ID = ""
	created, upsertErr := s.notes.Upsert(ctx, normalized)
	if upsertErr != nil {
		return nil, unavailableError(upsertErr.Error(), upsertErr)
	}
	return created, nil
}

func (s *NoteService) Update(ctx context.Context, id string, snapshot *types.Note) (*types.Note, error) {
	if s.notes == nil {
		return nil, unavailableError("note store not available", nil)
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, invalidError("note id is required", nil)
	}
	if snapshot == nil {
		return nil, invalidError("note payload is required", nil)
	}

	existing, ok, err := s.notes.Get(ctx, id)
	if err != nil {
		return nil, unavailableError(err.Error(), err)
	}
	if !ok || existing == nil {
		return nil, notFoundError("note not found", store.ErrNoteNotFound)
	}

	normalized, validateErr := normalizeAndValidate(snapshot)
	if validateErr != nil {
		return nil, validateErr
	}
	normalized.ID = id
	// Color is fixed at creation time.
	normalized.Color = existing.Color
	updated, upsertErr := s.notes.Upsert(ctx, normalized)
	if upsertErr != nil {
		return nil, unavailableError(upsertErr.Error(), upsertErr)
	}
	return updated, nil
}

func (s *NoteService) Delete(ctx context.Context, id string) error {
	if s.notes == nil {
		return unavailableError("note store not available", nil)
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return invalidError("note id is required", nil)
	}
	if err := s.notes.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNoteNotFound) {
			return notFoundError("note not found", err)
		}
		return unavailableError(err.Error(), err)
	}
	return nil
}

func normalizeAndValidate(note *types.Note) (*types.Note, error) {
	normalized := note.Clone()
	normalized.ID = strings.TrimSpace(normalized.ID)
	normalized.Color = types.Color(strings.ToLower(strings.TrimSpace(string(normalized.Color))))

	if normalized.Color == "" {
		normalized.Color = types.ColorYellow
	}
	if !types.IsValidColor(normalized.Color) {
		return nil, invalidError("invalid note color", nil)
	}
	if normalized.Size.Width <= 0 || normalized.Size.Height <= 0 {
		return nil, invalidError("note size must be positive", nil)
	}
	normalized.Position = normalized.Position.Clamped()
	if normalized.ZIndex < 0 {
		normalized.ZIndex = 0
	}
	return normalized, nil
}
