package board

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"pinboard/internal/types"
)

// noteEditor holds the textarea shown in place of a note's text while
// the note is being edited inline.
type noteEditor struct {
	noteID string
	input  textarea.Model
}

func newNoteEditor(note *types.Note) *noteEditor {
	input := textarea.New()
	input.ShowLineNumbers = false
	input.Prompt = ""
	input.CharLimit = 0
	input.SetWidth(editorWidth(note.Size))
	input.SetHeight(editorHeight(note.Size))
	input.SetValue(note.Text)
	input.Focus()
	return &noteEditor{noteID: note.ID, input: input}
}

func (e *noteEditor) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return cmd
}

func (e *noteEditor) Value() string {
	return e.input.Value()
}

func (e *noteEditor) Resize(size types.Size) {
	e.input.SetWidth(editorWidth(size))
	e.input.SetHeight(editorHeight(size))
}

func editorWidth(size types.Size) int {
	width := size.Width - 2
	if width < 1 {
		width = 1
	}
	return width
}

func editorHeight(size types.Size) int {
	height := size.Height - 2
	if height < 1 {
		height = 1
	}
	return height
}
