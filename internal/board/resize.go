package board

import (
	"sync"

	"pinboard/internal/types"
)

// resizeObserver notifies subscribers when a note's size changes.
// Subscriptions are keyed by note id; an empty id subscribes to every
// note on the board.
type resizeObserver struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]resizeSubscription
}

type resizeSubscription struct {
	noteID string
	fn     func(noteID string, size types.Size)
}

func newResizeObserver() *resizeObserver {
	return &resizeObserver{subs: map[int]resizeSubscription{}}
}

// Observe registers fn and returns a handle for Unobserve.
func (o *resizeObserver) Observe(noteID string, fn func(noteID string, size types.Size)) int {
	if fn == nil {
		return 0
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.nextID++
	o.subs[o.nextID] = resizeSubscription{noteID: noteID, fn: fn}
	return o.nextID
}

func (o *resizeObserver) Unobserve(handle int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.subs, handle)
}

func (o *resizeObserver) publish(noteID string, size types.Size) {
	o.mu.Lock()
	fns := make([]func(string, types.Size), 0, len(o.subs))
	for _, sub := range o.subs {
		if sub.noteID == "" || sub.noteID == noteID {
			fns = append(fns, sub.fn)
		}
	}
	o.mu.Unlock()
	for _, fn := range fns {
		fn(noteID, size)
	}
}
