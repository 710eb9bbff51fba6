package railtext

import (
	"github.com/go-railroad/diagram/railmetric"
)

// gridDrawer adapts Grid to railmetric.Drawer[int]. An arc collapses to a
// single corner cell: rather than stamping a fixed glyph, it merges the
// corner's two connection bits into the cell's line mask, so a bend
// landing on a through-line resolves to a ├/┬-style junction the same way
// two crossing strokes do.
type gridDrawer struct {
	grid       *Grid
	debug      bool
	paths      []string
	arrowStyle railmetric.ArrowStyle
}

func newGridDrawer(width, height int, debug bool) *gridDrawer {
	return &gridDrawer{grid: NewGrid(width, height), debug: debug}
}

// Arrow stamps a single directional glyph; every non-none arrow style
// collapses to the same ◂/▸ pair on a character grid.
func (d *gridDrawer) Arrow(x, y int, leftward bool) {
	if d.arrowStyle == railmetric.ArrowNone {
		return
	}
	glyph := '▸'
	if leftward {
		glyph = '◂'
	}
	d.grid.setGlyph(x, y, glyph)
}

func (d *gridDrawer) Line(x1, y1, x2, y2 int) {
	if y1 == y2 {
		d.grid.HLine(x1, x2, y1)
	} else if x1 == x2 {
		d.grid.VLine(x1, y1, y2)
	} else {
		// Diagonal lines never occur in this layout; draw the horizontal
		// and vertical legs of an L instead of silently dropping it.
		d.grid.HLine(x1, x2, y1)
		d.grid.VLine(x2, y1, y2)
	}
}

// Arc decodes the orientation convention raillayout's elbow helper
// encodes into the angle arguments — end > start connects downward,
// sweep connects rightward — and merges those two bits at the corner
// cell.
func (d *gridDrawer) Arc(cx, cy, r int, start, end float64, sweep bool) {
	vert := connUp
	if end > start {
		vert = connDown
	}
	horiz := connLeft
	if sweep {
		horiz = connRight
	}
	d.grid.addConnection(cx, cy, vert|horiz)
}

func (d *gridDrawer) Box(x, y, w, h, r int, cssClass, href, title string) {
	if w < 2 || h < 1 {
		return
	}
	d.grid.Box(x, y, w, h, r > 0)
}

func (d *gridDrawer) Text(x, y, w, h int, s, cssClass, href, title string) {
	runes := []rune(s)
	offset := (w - len(runes)) / 2
	if offset < 0 {
		offset = 0
	}
	d.grid.Text(x+offset, y+h/2, s)
}

func (d *gridDrawer) GroupCaption(x, y int, s string, href, title string) {
	d.grid.Text(x, y, s)
}

func (d *gridDrawer) EndMarker(x, y, up, down int, class railmetric.EndClass, start bool) {
	glyph := '◂'
	if !start {
		glyph = '▸'
	}
	if class == railmetric.EndSimple {
		d.grid.VLine(x, y-up, y+down)
		return
	}
	d.grid.setGlyph(x, y, glyph)
}

func (d *gridDrawer) Debug(id string) {
	if !d.debug {
		return
	}
	d.paths = append(d.paths, id)
}
