package board

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"pinboard/internal/types"
)

const (
	boardTop     = 1
	resizeHandle = "◢"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	noteColorCodes = map[types.Color]lipgloss.Color{
		types.ColorYellow: lipgloss.Color("11"),
		types.ColorPink:   lipgloss.Color("13"),
		types.ColorBlue:   lipgloss.Color("12"),
		types.ColorGreen:  lipgloss.Color("10"),
		types.ColorOrange: lipgloss.Color("208"),
	}
)

func (m *Model) View() string {
	if m.width <= 0 || m.height <= boardTop {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderBoard())
	return b.String()
}

func (m *Model) renderHeader() string {
	left := " pinboard "
	right := ""
	if m.status != "" {
		right = statusStyle.Render(m.status) + " "
	}
	gap := m.width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 0 {
		gap = 0
	}
	line := left + strings.Repeat(" ", gap) + right
	return headerStyle.Width(m.width).Render(ansi.Truncate(line, m.width, ""))
}

func (m *Model) renderBoard() string {
	canvas := newBoardCanvas(m.width, m.height-boardTop)
	for _, w := range m.widgetsByZAscending() {
		block := m.renderNoteBlock(w)
		canvas.overlayBlock(block, w.note.Position.Y, w.note.Position.X)
		canvas.overlayLine(
			w.note.Position.Y+w.note.Size.Height-1,
			w.note.Position.X+w.note.Size.Width-1,
			noteStyle(w.note.Color).Render(resizeHandle),
		)
	}
	return canvas.String()
}

func (m *Model) renderNoteBlock(w *noteWidget) string {
	style := noteStyle(w.note.Color).
		Width(w.note.Size.Width).
		Height(w.note.Size.Height).
		MaxWidth(w.note.Size.Width).
		MaxHeight(w.note.Size.Height).
		Padding(0, 1)
	if w.note.ID == m.selectedID {
		style = style.Bold(true)
	}
	content := w.note.Text
	if m.editor != nil && m.editor.noteID == w.note.ID {
		content = m.editor.input.View()
	}
	return style.Render(content)
}

func noteStyle(color types.Color) lipgloss.Style {
	code, ok := noteColorCodes[color]
	if !ok {
		code = noteColorCodes[types.ColorYellow]
	}
	return lipgloss.NewStyle().Background(code).Foreground(lipgloss.Color("0"))
}

func (m *Model) widgetsByZAscending() []*noteWidget {
	widgets := append([]*noteWidget(nil), m.widgets...)
	sort.SliceStable(widgets, func(i, j int) bool {
		return widgets[i].note.ZIndex < widgets[j].note.ZIndex
	})
	return widgets
}

// boardCanvas composites styled note blocks over a blank board. Cell
// positions are ANSI-aware so colored blocks overlay cleanly.
type boardCanvas struct {
	width int
	lines []string
}

func newBoardCanvas(width, height int) *boardCanvas {
	lines := make([]string, height)
	blank := strings.Repeat(" ", width)
	for i := range lines {
		lines[i] = blank
	}
	return &boardCanvas{width: width, lines: lines}
}

func (c *boardCanvas) overlayBlock(block string, row, col int) {
	for i, line := range strings.Split(block, "\n") {
		c.overlayLine(row+i, col, line)
	}
}

func (c *boardCanvas) overlayLine(row, col int, content string) {
	if row < 0 || row >= len(c.lines) || col >= c.width || content == "" {
		return
	}
	if col < 0 {
		content = ansi.TruncateLeft(content, -col, "")
		col = 0
	}
	contentWidth := ansi.StringWidth(content)
	if contentWidth == 0 {
		return
	}
	if col+contentWidth > c.width {
		content = ansi.Truncate(content, c.width-col, "")
		contentWidth = c.width - col
	}
	base := c.lines[row]
	left := ansi.Truncate(base, col, "")
	if pad := col - ansi.StringWidth(left); pad > 0 {
		left += strings.Repeat(" ", pad)
	}
	right := ansi.TruncateLeft(base, col+contentWidth, "")
	c.lines[row] = left + content + right
}

func (c *boardCanvas) String() string {
	return strings.Join(c.lines, "\n")
}
