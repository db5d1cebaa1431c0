package board

import "pinboard/internal/types"

// noteWidget pairs a note with its pending-save sequence. Every
// scheduled save bumps saveSeq; a debounce message carrying an older
// sequence is stale and gets dropped, which is how an in-flight save
// window restarts instead of firing twice.
type noteWidget struct {
	note    *types.Note
	saveSeq int
}

func (w *noteWidget) contains(p types.Position) bool {
	return p.X >= w.note.Position.X &&
		p.X < w.note.Position.X+w.note.Size.Width &&
		p.Y >= w.note.Position.Y &&
		p.Y < w.note.Position.Y+w.note.Size.Height
}

// onResizeHandle reports whether p is over the bottom-right resize
// corner of the note.
func (w *noteWidget) onResizeHandle(p types.Position) bool {
	return p.X == w.note.Position.X+w.note.Size.Width-1 &&
		p.Y == w.note.Position.Y+w.note.Size.Height-1
}
