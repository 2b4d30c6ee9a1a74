package tui

import (
	"math"
	"strings"

	"shapecanvas/internal/action"
	"shapecanvas/internal/canvas"
	"shapecanvas/internal/geom"
	"shapecanvas/internal/shape"
)

// minGridGap is the smallest on-screen grid spacing, in micro pixels, that
// is still drawn.
const minGridGap = 4

// cellPoint is the screen point at the center of a map cell. Screen space is
// the braille micro grid: two columns and four rows per cell.
func cellPoint(cx, cy int) geom.Point {
	return geom.Point{X: float64(cx*2) + 0.5, Y: float64(cy*4) + 1.5}
}

func (m Model) renderCanvas(w, h int) string {
	view := m.ctl.View
	base := newBrailleBuf(w, h)
	sel := newBrailleBuf(w, h)
	if m.board.snap {
		drawGrid(base, view, m.board.grid)
	}

	selected, hasSel := m.ctl.Selected()
	var texts []*shape.Text
	for _, s := range m.board.shapes {
		if shape.AttrsOf(s).State == shape.StateHidden {
			continue
		}
		buf := base
		if hasSel && s.Identity() == selected.Identity() {
			buf = sel
		}
		pts, closed := geom.Outline(s)
		if len(pts) == 0 {
			continue
		}
		screen := make([]geom.Point, len(pts))
		for i, p := range pts {
			screen[i] = view.ToScreen(p)
		}
		buf.drawPath(screen, closed)
		if t, ok := s.(*shape.Text); ok {
			texts = append(texts, t)
		}
	}

	cells := base.cells()
	for y := range cells {
		for x := range cells[y] {
			if mask := sel.m[y][x]; mask != 0 {
				cells[y][x] = selectedStyle.Render(string(rune(0x2800 + int(mask|base.m[y][x]))))
			}
		}
	}
	for _, t := range texts {
		placeText(cells, view, t)
	}
	for _, hd := range m.ctl.Handles() {
		place(cells, hd.Screen, handleGlyph(hd))
	}

	lines := make([]string, h)
	for y := range cells {
		lines[y] = strings.Join(cells[y], "")
	}
	return strings.Join(lines, "\n")
}

func drawGrid(b *brailleBuf, view geom.View, grid float64) {
	gap := grid * view.Scale
	if gap < minGridGap || !view.Valid() {
		return
	}
	// first grid line at or after the screen origin
	origin := view.ToWorld(geom.Point{})
	x0 := math.Ceil(origin.X/grid) * grid
	y0 := math.Ceil(origin.Y/grid) * grid
	for wy := y0; ; wy += grid {
		sy := wy*view.Scale + view.Y
		if sy >= float64(b.h*4) {
			break
		}
		for wx := x0; ; wx += grid {
			sx := wx*view.Scale + view.X
			if sx >= float64(b.w*2) {
				break
			}
			x, y := micro(geom.Point{X: sx, Y: sy})
			b.setPixel(x, y)
		}
	}
}

// placeText writes the text lines of t from the top-left of its box. Text is
// drawn unrotated; the braille box shows its orientation.
func placeText(cells [][]string, view geom.View, t *shape.Text) {
	box, ok := geom.TextBox(t)
	if !ok {
		return
	}
	cx, cy := cellOf(view.ToScreen(box.Min()))
	for i, line := range strings.Split(t.Text, "\n") {
		y := cy + i
		if y < 0 || y >= len(cells) {
			continue
		}
		for j, r := range []rune(line) {
			if x := cx + j; x >= 0 && x < len(cells[y]) {
				cells[y][x] = string(r)
			}
		}
	}
}

func cellOf(p geom.Point) (int, int) {
	x, y := micro(p)
	return floorDiv(x, 2), floorDiv(y, 4)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

func place(cells [][]string, p geom.Point, glyph string) {
	x, y := cellOf(p)
	if y < 0 || y >= len(cells) || x < 0 || x >= len(cells[y]) {
		return
	}
	cells[y][x] = glyph
}

func handleGlyph(h canvas.HandleInfo) string {
	switch {
	case h.ID.IsBox():
		return handleStyle.Render("■")
	case h.ID == action.HandleRotate:
		return gripStyle.Render("◯")
	case h.ID == action.HandleVertex:
		return handleStyle.Render("•")
	case h.ID == action.HandleStart || h.ID == action.HandleEnd:
		return handleStyle.Render("●")
	}
	return gripStyle.Render("◆")
}
