// Package railtext is the character-grid back-end: it implements
// railmetric.Drawer[int] by stamping box-drawing glyphs onto a 2D rune
// grid, merging strokes where they cross.
package railtext

import (
	"strings"
)

// connection bits describe which of the four cardinal directions a grid
// cell's line glyph connects to; resolveGlyph looks up the accumulated
// mask to pick the correct box-drawing character, merging crossings (a
// '─' meeting a '│' becomes '┼', and so on) the same way a hand-drawn
// ASCII diagram would.
type connection int

const (
	connUp connection = 1 << iota
	connDown
	connLeft
	connRight
)

var glyphForConnections = map[connection]rune{
	connLeft | connRight:                     '─',
	connUp | connDown:                        '│',
	connDown | connRight:                     '┌',
	connDown | connLeft:                      '┐',
	connUp | connRight:                       '└',
	connUp | connLeft:                        '┘',
	connUp | connDown | connRight:            '├',
	connUp | connDown | connLeft:             '┤',
	connDown | connLeft | connRight:          '┬',
	connUp | connLeft | connRight:            '┴',
	connUp | connDown | connLeft | connRight: '┼',
	connLeft:                                 '╴',
	connRight:                                '╶',
	connUp:                                   '╵',
	connDown:                                 '╷',
}

type point struct{ x, y int }

// Grid is a 2D canvas of runes, sized lazily: cells outside the advisory
// width/height a caller supplied when constructing it still accept
// writes, since a single overlong element is allowed to overflow the
// advisory width.
type Grid struct {
	lines  map[point]connection
	glyphs map[point]rune
	width  int
	height int
}

// NewGrid allocates a grid advertised at width x height cells; the grid
// grows past this as cells beyond it are written, and String prints the
// grown size.
func NewGrid(width, height int) *Grid {
	return &Grid{
		lines:  make(map[point]connection),
		glyphs: make(map[point]rune),
		width:  width,
		height: height,
	}
}

func (g *Grid) grow(x, y int) {
	if x+1 > g.width {
		g.width = x + 1
	}
	if y+1 > g.height {
		g.height = y + 1
	}
}

// setGlyph stamps an explicit character (text, arrowheads, corners) that
// overrides any line-merge resolution at this cell.
func (g *Grid) setGlyph(x, y int, r rune) {
	g.grow(x, y)
	g.glyphs[point{x, y}] = r
}

// addConnection merges a directional bit into a cell's accumulated line
// mask, the same way a real ASCII railroad diagram artist would redraw a
// junction when two strokes cross.
func (g *Grid) addConnection(x, y int, c connection) {
	g.grow(x, y)
	p := point{x, y}
	if _, hasGlyph := g.glyphs[p]; hasGlyph {
		return
	}
	g.lines[p] |= c
}

// HLine draws a horizontal stroke from x1 to x2 (inclusive) at row y.
func (g *Grid) HLine(x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		mask := connLeft | connRight
		if x == x1 {
			mask = connRight
		}
		if x == x2 {
			mask = connLeft
		}
		if x1 == x2 {
			mask = connLeft | connRight
		}
		g.addConnection(x, y, mask)
	}
}

// VLine draws a vertical stroke from y1 to y2 (inclusive) at column x.
func (g *Grid) VLine(x, y1, y2 int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		mask := connUp | connDown
		if y == y1 {
			mask = connDown
		}
		if y == y2 {
			mask = connUp
		}
		if y1 == y2 {
			mask = connUp | connDown
		}
		g.addConnection(x, y, mask)
	}
}

// Box stamps a rectangle's border. A rounded box (a Terminal pill) gets
// the ╭╮╰╯ corner glyphs so it reads differently from a NonTerminal's
// square ┌┐└┘ corners.
func (g *Grid) Box(x, y, w, h int, rounded bool) {
	x2, y2 := x+w-1, y+h-1
	if rounded {
		g.setGlyph(x, y, '╭')
		g.setGlyph(x2, y, '╮')
		g.setGlyph(x, y2, '╰')
		g.setGlyph(x2, y2, '╯')
	} else {
		g.setGlyph(x, y, '┌')
		g.setGlyph(x2, y, '┐')
		g.setGlyph(x, y2, '└')
		g.setGlyph(x2, y2, '┘')
	}
	if x2 > x+1 {
		g.HLine(x+1, x2-1, y)
		g.HLine(x+1, x2-1, y2)
	}
	if y2 > y+1 {
		g.VLine(x, y+1, y2-1)
		g.VLine(x2, y+1, y2-1)
	}
}

// Text stamps one glyph per rune starting at (x,y).
func (g *Grid) Text(x, y int, s string) {
	for i, r := range []rune(s) {
		g.setGlyph(x+i, y, r)
	}
}

func (g *Grid) resolve(x, y int) rune {
	p := point{x, y}
	if r, ok := g.glyphs[p]; ok {
		return r
	}
	if mask, ok := g.lines[p]; ok {
		if r, ok := glyphForConnections[mask]; ok {
			return r
		}
		return '+'
	}
	return ' '
}

// String renders the grid as newline-joined rows.
func (g *Grid) String() string {
	var b strings.Builder
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			b.WriteRune(g.resolve(x, y))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
