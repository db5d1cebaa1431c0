package board

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pinboard/internal/types"
)

// NoteAPI is the slice of the daemon client the board needs.
type NoteAPI interface {
	ListNotes(ctx context.Context) ([]*types.Note, error)
	CreateNote(ctx context.Context, note *types.Note) (*types.Note, error)
	UpdateNote(ctx context.Context, note *types.Note) (*types.Note, error)
	DeleteNote(ctx context.Context, id string) error
}

func fetchNotesCmd(api NoteAPI) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Second)
		defer cancel()
		notes, err := api.ListNotes(ctx)
		return notesMsg{notes: notes, err: err}
	}
}

func createNoteCmd(api NoteAPI, note *types.Note) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Second)
		defer cancel()
		created, err := api.CreateNote(ctx, note)
		return noteCreatedMsg{note: created, err: err}
	}
}

// saveNoteCmd pushes the full note snapshot to the daemon.
func saveNoteCmd(api NoteAPI, note *types.Note) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Second)
		defer cancel()
		_, err := api.UpdateNote(ctx, note)
		return noteSavedMsg{id: note.ID, err: err}
	}
}

func deleteNoteCmd(api NoteAPI, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 4*time.Second)
		defer cancel()
		err := api.DeleteNote(ctx, id)
		return noteDeletedMsg{id: id, err: err}
	}
}

func saveDebounceCmd(id string, seq int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return saveDebounceMsg{id: id, seq: seq}
	})
}
