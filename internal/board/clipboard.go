package board

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

var clipboardWriteAll = clipboard.WriteAll

func yankCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return clipboardResultMsg{err: clipboardWriteAll(text)}
	}
}
