package board

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pinboard/internal/config"
	"pinboard/internal/logging"
	"pinboard/internal/types"
)

const (
	doubleClickWindow   = 400 * time.Millisecond
	deleteConfirmWindow = 2 * time.Second

	// New notes cascade diagonally and wrap after this many steps.
	createCascadeSteps = 8
)

type clickInfo struct {
	id string
	at time.Time
}

type Model struct {
	api    NoteAPI
	cfg    config.Config
	logger logging.Logger

	width  int
	height int

	widgets    []*noteWidget
	z          zCounter
	selectedID string

	drag      *dragState
	editor    *noteEditor
	lastClick clickInfo

	pendingDeleteID string
	pendingDeleteAt time.Time

	resizeObs *resizeObserver

	status  string
	created int
	closed  bool

	now func() time.Time
}

func NewModel(api NoteAPI, cfg config.Config, logger logging.Logger) *Model {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Model{
		api:       api,
		cfg:       cfg,
		logger:    logger,
		resizeObs: newResizeObserver(),
		now:       time.Now,
	}
}

func Run(api NoteAPI, cfg config.Config, logger logging.Logger) error {
	model := NewModel(api, cfg, logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return fetchNotesCmd(m.api)
}

// ResizeObserver exposes size-change subscriptions for notes on the
// board.
func (m *Model) ResizeObserver() *resizeObserver {
	return m.resizeObs
}

// Teardown drops every pending debounced save and releases the active
// drag and editor. Nothing scheduled before this point will reach the
// daemon afterwards.
func (m *Model) Teardown() {
	m.closed = true
	m.drag = nil
	m.editor = nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case notesMsg:
		if msg.err != nil {
			m.logger.Warn("notes_fetch_failed", logging.F("error", msg.err))
			m.status = "load failed: " + msg.err.Error()
			return m, nil
		}
		m.setNotes(msg.notes)
		return m, nil
	case noteCreatedMsg:
		if msg.err != nil {
			m.logger.Warn("note_create_failed", logging.F("error", msg.err))
			m.status = "create failed: " + msg.err.Error()
			return m, nil
		}
		w := &noteWidget{note: msg.note}
		m.widgets = append(m.widgets, w)
		m.z.Observe(msg.note.ZIndex)
		m.selectedID = msg.note.ID
		m.status = ""
		return m, nil
	case noteSavedMsg:
		// Failed saves are logged and dropped. The board keeps its
		// local state; there is no retry and no rollback.
		if msg.err != nil {
			m.logger.Warn("note_save_failed",
				logging.F("note_id", msg.id),
				logging.F("error", msg.err),
			)
			m.status = "save failed"
		}
		return m, nil
	case noteDeletedMsg:
		if msg.err != nil {
			m.logger.Warn("note_delete_failed",
				logging.F("note_id", msg.id),
				logging.F("error", msg.err),
			)
		}
		return m, nil
	case saveDebounceMsg:
		return m, m.handleSaveDebounce(msg)
	case clipboardResultMsg:
		if msg.err != nil {
			m.status = "copy failed: " + msg.err.Error()
		} else {
			m.status = "copied"
		}
		return m, nil
	}
	if m.editor != nil {
		return m, m.editor.Update(msg)
	}
	return m, nil
}

func (m *Model) handleSaveDebounce(msg saveDebounceMsg) tea.Cmd {
	if m.closed {
		return nil
	}
	w := m.widgetByID(msg.id)
	if w == nil || msg.seq != w.saveSeq {
		return nil
	}
	return saveNoteCmd(m.api, w.note.Clone())
}

// scheduleSave restarts the note's debounce window. Earlier windows
// that have not fired yet become stale and never send.
func (m *Model) scheduleSave(w *noteWidget) tea.Cmd {
	if w == nil || w.note.ID == "" {
		return nil
	}
	w.saveSeq++
	return saveDebounceCmd(w.note.ID, w.saveSeq, m.cfg.SaveDelay())
}

func (m *Model) bringToFront(w *noteWidget) tea.Cmd {
	if m.isTopmost(w) {
		return nil
	}
	w.note.ZIndex = m.z.Next()
	return m.scheduleSave(w)
}

func (m *Model) isTopmost(w *noteWidget) bool {
	for _, other := range m.widgets {
		if other != w && other.note.ZIndex >= w.note.ZIndex {
			return false
		}
	}
	return true
}

func (m *Model) setNotes(notes []*types.Note) {
	m.widgets = m.widgets[:0]
	for _, note := range notes {
		m.widgets = append(m.widgets, &noteWidget{note: note})
		m.z.Observe(note.ZIndex)
	}
	if m.widgetByID(m.selectedID) == nil {
		m.selectedID = ""
	}
	m.status = ""
}

func (m *Model) widgetByID(id string) *noteWidget {
	if id == "" {
		return nil
	}
	for _, w := range m.widgets {
		if w.note.ID == id {
			return w
		}
	}
	return nil
}

func (m *Model) selectedWidget() *noteWidget {
	return m.widgetByID(m.selectedID)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.editor != nil {
		switch msg.String() {
		case "esc":
			return m.commitEditor()
		case "ctrl+c":
			return m.quit()
		default:
			return m.editor.Update(msg)
		}
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m.quit()
	case "n":
		return m.createNote()
	case "d":
		return m.deleteSelected()
	case "enter":
		if w := m.selectedWidget(); w != nil {
			return m.startEditing(w)
		}
		return nil
	case "tab":
		return m.cycleSelection(1)
	case "shift+tab":
		return m.cycleSelection(-1)
	case "up", "down", "left", "right":
		return m.moveSelected(msg.String())
	case "shift+up", "shift+down", "shift+left", "shift+right":
		return m.resizeSelected(msg.String())
	case "y":
		if w := m.selectedWidget(); w != nil {
			return yankCmd(w.note.Text)
		}
		return nil
	case "r":
		return fetchNotesCmd(m.api)
	}
	return nil
}

func (m *Model) quit() tea.Cmd {
	m.Teardown()
	return tea.Quit
}

func (m *Model) createNote() tea.Cmd {
	palette := types.Palette()
	offset := m.created % createCascadeSteps
	color := palette[m.created%len(palette)]
	m.created++
	note := &types.Note{
		Color: color,
		Position: types.Position{
			X: 2 + offset*3,
			Y: 1 + offset,
		},
		Size: types.Size{
			Width:  m.cfg.DefaultNoteWidth(),
			Height: m.cfg.DefaultNoteHeight(),
		},
		ZIndex: m.z.Next(),
	}
	return createNoteCmd(m.api, note)
}

func (m *Model) deleteSelected() tea.Cmd {
	w := m.selectedWidget()
	if w == nil {
		return nil
	}
	now := m.now()
	if m.pendingDeleteID != w.note.ID || now.Sub(m.pendingDeleteAt) > deleteConfirmWindow {
		m.pendingDeleteID = w.note.ID
		m.pendingDeleteAt = now
		m.status = "press d again to delete"
		return nil
	}
	m.pendingDeleteID = ""
	m.status = ""
	if m.editor != nil && m.editor.noteID == w.note.ID {
		m.editor = nil
	}
	if m.drag != nil && m.drag.id == w.note.ID {
		m.drag = nil
	}
	m.removeWidget(w.note.ID)
	m.selectedID = ""
	return deleteNoteCmd(m.api, w.note.ID)
}

func (m *Model) removeWidget(id string) {
	for i, w := range m.widgets {
		if w.note.ID == id {
			m.widgets = append(m.widgets[:i], m.widgets[i+1:]...)
			return
		}
	}
}

// cycleSelection moves the selection through the stack and raises the
// newly selected note, so the selected note is always on top.
func (m *Model) cycleSelection(step int) tea.Cmd {
	widgets := m.widgetsByZAscending()
	if len(widgets) == 0 {
		return nil
	}
	current := -1
	for i, w := range widgets {
		if w.note.ID == m.selectedID {
			current = i
			break
		}
	}
	next := (current + step + len(widgets)) % len(widgets)
	m.selectedID = widgets[next].note.ID
	return m.bringToFront(widgets[next])
}

func (m *Model) moveSelected(key string) tea.Cmd {
	w := m.selectedWidget()
	if w == nil {
		return nil
	}
	pos := w.note.Position
	switch key {
	case "up":
		pos.Y--
	case "down":
		pos.Y++
	case "left":
		pos.X--
	case "right":
		pos.X++
	}
	pos = pos.Clamped()
	if pos == w.note.Position {
		return nil
	}
	w.note.Position = pos
	return m.scheduleSave(w)
}

func (m *Model) resizeSelected(key string) tea.Cmd {
	w := m.selectedWidget()
	if w == nil {
		return nil
	}
	size := w.note.Size
	switch key {
	case "shift+up":
		size.Height--
	case "shift+down":
		size.Height++
	case "shift+left":
		size.Width--
	case "shift+right":
		size.Width++
	}
	size = size.Min(minNoteWidth, minNoteHeight)
	if size == w.note.Size {
		return nil
	}
	m.applyResize(w, size)
	return m.scheduleSave(w)
}

func (m *Model) applyResize(w *noteWidget, size types.Size) {
	w.note.Size = size
	if m.editor != nil && m.editor.noteID == w.note.ID {
		m.editor.Resize(size)
	}
	m.resizeObs.publish(w.note.ID, size)
}

func (m *Model) startEditing(w *noteWidget) tea.Cmd {
	cmd := m.commitEditor()
	m.drag = nil
	m.selectedID = w.note.ID
	m.editor = newNoteEditor(w.note)
	return cmd
}

// commitEditor writes the editor text back onto the note and schedules
// a save when the text changed.
func (m *Model) commitEditor() tea.Cmd {
	if m.editor == nil {
		return nil
	}
	w := m.widgetByID(m.editor.noteID)
	text := m.editor.Value()
	m.editor = nil
	if w == nil || w.note.Text == text {
		return nil
	}
	w.note.Text = text
	return m.scheduleSave(w)
}
