package board

import "pinboard/internal/types"

type notesMsg struct {
	notes []*types.Note
	err   error
}

type noteCreatedMsg struct {
	note *types.Note
	err  error
}

type noteSavedMsg struct {
	id  string
	err error
}

type noteDeletedMsg struct {
	id  string
	err error
}

type saveDebounceMsg struct {
	id  string
	seq int
}

type clipboardResultMsg struct {
	err error
}
