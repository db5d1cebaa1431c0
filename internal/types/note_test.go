package types

import "testing"

func TestPositionClamped(t *testing.T) {
	cases := []struct {
		in   Position
		want Position
	}{
		{Position{X: 10, Y: 5}, Position{X: 10, Y: 5}},
		{Position{X: -1, Y: 5}, Position{X: 0, Y: 5}},
		{Position{X: 10, Y: -3}, Position{X: 10, Y: 0}},
		{Position{X: -10, Y: -10}, Position{X: 0, Y: 0}},
		{Position{}, Position{}},
	}
	for _, tc := range cases {
		if got := tc.in.Clamped(); got != tc.want {
			t.Fatalf("Clamped(%+v) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestSizeMin(t *testing.T) {
	if got := (Size{Width: 4, Height: 1}).Min(8, 3); got != (Size{Width: 8, Height: 3}) {
		t.Fatalf("expected floor applied, got %+v", got)
	}
	if got := (Size{Width: 20, Height: 10}).Min(8, 3); got != (Size{Width: 20, Height: 10}) {
		t.Fatalf("expected size unchanged, got %+v", got)
	}
}

func TestPaletteColorsValid(t *testing.T) {
	palette := Palette()
	if len(palette) == 0 {
		t.Fatalf("expected non-empty palette")
	}
	for _, color := range palette {
		if !IsValidColor(color) {
			t.Fatalf("palette color %q not valid", color)
		}
	}
	if IsValidColor("magenta") {
		t.Fatalf("expected magenta to be rejected")
	}
}

func TestNoteClone(t *testing.T) {
	note := &Note{ID: "n1", Text: "hello", Position: Position{X: 2, Y: 3}}
	clone := note.Clone()
	clone.Text = "changed"
	clone.Position.X = 99
	if note.Text != "hello" || note.Position.X != 2 {
		t.Fatalf("clone mutated original: %+v", note)
	}
	var nilNote *Note
	if nilNote.Clone() != nil {
		t.Fatalf("expected nil clone for nil note")
	}
}
