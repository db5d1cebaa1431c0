package board

import (
	tea "github.com/charmbracelet/bubbletea"

	"pinboard/internal/types"
)

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	p := types.Position{X: msg.X, Y: msg.Y - boardTop}
	if cmd, handled := m.reduceDragMouse(msg, p); handled {
		return cmd
	}
	if cmd, handled := m.reduceNoteLeftPressMouse(msg, p); handled {
		return cmd
	}
	return nil
}

// reduceDragMouse consumes every pointer event while a drag is live,
// so nothing underneath reacts until the button is released.
func (m *Model) reduceDragMouse(msg tea.MouseMsg, p types.Position) (tea.Cmd, bool) {
	if m.drag == nil {
		return nil, false
	}
	w := m.widgetByID(m.drag.id)
	if w == nil {
		m.drag = nil
		return nil, true
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		return m.applyDragTo(w, p), true
	case tea.MouseActionRelease:
		cmd := m.applyDragTo(w, p)
		m.drag = nil
		return cmd, true
	default:
		return nil, true
	}
}

func (m *Model) applyDragTo(w *noteWidget, p types.Position) tea.Cmd {
	switch m.drag.kind {
	case dragResize:
		size := sizeFor(w.note.Position, p)
		if size == w.note.Size {
			return nil
		}
		m.drag.moved = true
		m.applyResize(w, size)
		return m.scheduleSave(w)
	default:
		pos := m.drag.positionFor(p)
		if pos == w.note.Position {
			return nil
		}
		m.drag.moved = true
		w.note.Position = pos
		return m.scheduleSave(w)
	}
}

func (m *Model) reduceNoteLeftPressMouse(msg tea.MouseMsg, p types.Position) (tea.Cmd, bool) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil, false
	}

	hit := m.widgetAt(p)

	// Clicking anywhere outside the edited note blurs the editor and
	// commits its text.
	var blurCmd tea.Cmd
	if m.editor != nil && (hit == nil || hit.note.ID != m.editor.noteID) {
		blurCmd = m.commitEditor()
	}

	if hit == nil {
		m.selectedID = ""
		m.lastClick = clickInfo{}
		return blurCmd, true
	}

	if m.editor != nil && m.editor.noteID == hit.note.ID {
		return blurCmd, true
	}

	now := m.now()
	if m.lastClick.id == hit.note.ID && now.Sub(m.lastClick.at) <= doubleClickWindow {
		m.lastClick = clickInfo{}
		return tea.Batch(blurCmd, m.startEditing(hit)), true
	}
	m.lastClick = clickInfo{id: hit.note.ID, at: now}

	m.selectedID = hit.note.ID
	frontCmd := m.bringToFront(hit)
	if hit.onResizeHandle(p) {
		m.drag = beginResizeDrag(hit.note.ID)
	} else {
		m.drag = beginMoveDrag(hit.note.ID, hit.note.Position, p)
	}
	return tea.Batch(blurCmd, frontCmd), true
}

// widgetAt returns the topmost note under p.
func (m *Model) widgetAt(p types.Position) *noteWidget {
	var top *noteWidget
	for _, w := range m.widgets {
		if !w.contains(p) {
			continue
		}
		if top == nil || w.note.ZIndex >= top.note.ZIndex {
			top = w
		}
	}
	return top
}
