package daemon

import (
	"pinboard/internal/logging"
	"pinboard/internal/store"
)

type API struct {
	Version string
	Notes   store.NoteStore
	Logger  logging.Logger
}
