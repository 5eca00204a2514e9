package viz

import (
	"strings"
	"testing"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(0, 0)
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("got %U, want U+2801", c.Grid[0][0])
	}
	c.Set(1, 0)
	if c.Grid[0][0] != 0x2809 {
		t.Errorf("got %U, want U+2809", c.Grid[0][0])
	}
	c.Set(0, 3)
	if c.Grid[0][0]&0x40 == 0 {
		t.Error("bottom-left dot not set")
	}
}

func TestCanvasBounds(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(4, 0)
	c.Set(0, 8)
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				t.Fatalf("out-of-bounds set modified the grid: %U", r)
			}
		}
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(0, 0)
	c.Clear()
	if c.Grid[0][0] != 0x2800 {
		t.Errorf("got %U after clear", c.Grid[0][0])
	}
}

func TestDrawLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawLine(0, 0, 7, 0)
	for col := 0; col < 4; col++ {
		if c.Grid[0][col]&0x9 != 0x9 {
			t.Errorf("column %d missing top row dots: %U", col, c.Grid[0][col])
		}
	}
}

func TestDrawDashedLine(t *testing.T) {
	c := NewCanvas(4, 1)
	c.DrawDashedLine(0, 0, 7, 0, 2)
	set := 0
	for x := 0; x < 8; x++ {
		if c.Grid[0][x/2]&rune(pixelMap[0][x%2]) != 0 {
			set++
		}
	}
	if set != 4 {
		t.Errorf("dashed line set %d of 8 pixels, want 4", set)
	}
}

func TestFillCircle(t *testing.T) {
	c := NewCanvas(8, 4)
	c.FillCircle(8, 8, 3)
	if c.Grid[2][4]&rune(pixelMap[0][0]) == 0 {
		t.Error("circle center not set")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	out := c.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0] != "⠀⠀⠀" {
		t.Errorf("unexpected empty row %q", lines[0])
	}
}
