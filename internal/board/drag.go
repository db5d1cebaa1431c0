package board

import "pinboard/internal/types"

type dragKind uint8

const (
	dragMove dragKind = iota
	dragResize
)

// dragState is live while a pointer button is held on a note. The
// offset keeps the grab point fixed under the pointer while moving.
type dragState struct {
	kind    dragKind
	id      string
	offsetX int
	offsetY int
	moved   bool
}

func beginMoveDrag(id string, note types.Position, pointer types.Position) *dragState {
	return &dragState{
		kind:    dragMove,
		id:      id,
		offsetX: pointer.X - note.X,
		offsetY: pointer.Y - note.Y,
	}
}

func beginResizeDrag(id string) *dragState {
	return &dragState{kind: dragResize, id: id}
}

// positionFor translates a pointer location into the note's new
// origin. Coordinates never go negative; the board has no fixed
// right or bottom edge.
func (d *dragState) positionFor(pointer types.Position) types.Position {
	return types.Position{
		X: pointer.X - d.offsetX,
		Y: pointer.Y - d.offsetY,
	}.Clamped()
}

// sizeFor derives a note size from the pointer dragging the
// bottom-right handle.
func sizeFor(origin types.Position, pointer types.Position) types.Size {
	return types.Size{
		Width:  pointer.X - origin.X + 1,
		Height: pointer.Y - origin.Y + 1,
	}.Min(minNoteWidth, minNoteHeight)
}

const (
	minNoteWidth  = 8
	minNoteHeight = 3
)
