package types

import "time"

type Color string

const (
	ColorYellow Color = "yellow"
	ColorPink   Color = "pink"
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorOrange Color = "orange"
)

// Palette returns the fixed note colors in creation-cycle order.
func Palette() []Color {
	return []Color{ColorYellow, ColorPink, ColorBlue, ColorGreen, ColorOrange}
}

func IsValidColor(color Color) bool {
	switch color {
	case ColorYellow, ColorPink, ColorBlue, ColorGreen, ColorOrange:
		return true
	default:
		return false
	}
}

// Position is a note's top-left corner in board cells. Both axes clamp to
// zero; there is no right or bottom bound.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) Clamped() Position {
	if p.X < 0 {
		p.X = 0
	}
	if p.Y < 0 {
		p.Y = 0
	}
	return p
}

type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Min returns s with each dimension raised to at least the given floor.
func (s Size) Min(width, height int) Size {
	if s.Width < width {
		s.Width = width
	}
	if s.Height < height {
		s.Height = height
	}
	return s
}

type Note struct {
	ID        string    `json:"id"`
	Color     Color     `json:"color"`
	Position  Position  `json:"position"`
	Size      Size      `json:"size"`
	ZIndex    int       `json:"z_index"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (n *Note) Clone() *Note {
	if n == nil {
		return nil
	}
	clone := *n
	return &clone
}
