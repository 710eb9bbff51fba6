// Package railvector is the vector (SVG) back-end: it implements
// railmetric.Drawer[float64] by accumulating XML element strings, then
// assembles them into a complete, styled SVG document.
package railvector

import (
	"fmt"
	"html"
	"strings"

	"github.com/go-railroad/diagram/railmetric"
)

// canvas accumulates SVG element markup in document order and, when path
// tracking is on, a parallel slice tagging each element with the stable
// path identifier raillayout threads through placement. Tracking is on
// for debug output (the ids are emitted as data attributes) and for
// depth tinting (the ids key the post-pass, but are not emitted).
type canvas struct {
	elements []string
	debug    bool
	track    bool
	// index into elements the next Debug call annotates
	lastDebugTarget int
	debugIDs        []string

	arrowStyle railmetric.ArrowStyle
	arrowLen   float64
	arrowCross float64
}

func newCanvas(debug bool) *canvas {
	return &canvas{debug: debug, track: debug}
}

func (c *canvas) emit(s string) {
	c.elements = append(c.elements, s)
}

func (c *canvas) Line(x1, y1, x2, y2 float64) {
	c.emit(fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s" class="rr-line"/>`,
		f(x1), f(y1), f(x2), f(y2)))
}

// Arc draws one quarter-circle bend whose elbow (the corner the two rail
// directions would meet at if drawn square) is (cx, cy). The layout pass
// encodes orientation in the angle arguments: end > start means the bend
// connects downward, sweep means it connects rightward; the actual arc
// runs between the two tangent points one radius along each arm.
func (c *canvas) Arc(cx, cy, r float64, start, end float64, sweep bool) {
	down := end > start
	right := sweep

	vy := -r
	if down {
		vy = r
	}
	hx := -r
	if right {
		hx = r
	}

	// Path from the horizontal arm's tangent point to the vertical
	// arm's, bowing toward the elbow. The SVG sweep flag follows from
	// the orientation: the two "same-diagonal" corners (┌ and ┘) bend
	// counterclockwise, the other two clockwise.
	x1, y1 := cx+hx, cy
	x2, y2 := cx, cy+vy
	sweepFlag := 1
	if down == right {
		sweepFlag = 0
	}
	c.emit(fmt.Sprintf(`<path d="M %s %s A %s %s 0 0 %d %s %s" class="rr-arc"/>`,
		f(x1), f(y1), f(r), f(r), sweepFlag, f(x2), f(y2)))
}

func (c *canvas) Box(x, y, w, h, r float64, cssClass, href, title string) {
	box := fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s" rx="%s" class="%s"/>`,
		f(x), f(y), f(w), f(h), f(r), boxClass(cssClass))
	c.emit(wrapHref(box, href, title))
}

func (c *canvas) Text(x, y, w, h float64, s, cssClass, href, title string) {
	text := fmt.Sprintf(`<text x="%s" y="%s" class="%s">%s</text>`,
		f(x+w/2), f(y+h/2), textClass(cssClass), html.EscapeString(s))
	c.emit(wrapHref(text, href, title))
}

func (c *canvas) GroupCaption(x, y float64, s string, href, title string) {
	text := fmt.Sprintf(`<text x="%s" y="%s" class="rr-group-caption">%s</text>`, f(x), f(y), html.EscapeString(s))
	c.emit(wrapHref(text, href, title))
}

func (c *canvas) EndMarker(x, y, up, down float64, class railmetric.EndClass, start bool) {
	top, bottom := y-up, y+down
	if class == railmetric.EndSimple {
		c.emit(fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s" class="rr-end-simple"/>`, f(x), f(top), f(x), f(bottom)))
		return
	}
	offset := 3.0
	if start {
		offset = -3.0
	}
	c.emit(fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s" class="rr-end-complex"/>`, f(x), f(top), f(x), f(bottom)))
	c.emit(fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s" class="rr-end-complex"/>`, f(x+offset), f(top), f(x+offset), f(bottom)))
}

// Arrow draws an arrowhead with its tip at (x, y). The shape follows the
// profile's arrow style; the barbs reach arrowLen back along the rail and
// arrowCross off it.
func (c *canvas) Arrow(x, y float64, leftward bool) {
	if c.arrowStyle == railmetric.ArrowNone || c.arrowLen <= 0 {
		return
	}
	back := c.arrowLen
	if leftward {
		back = -back
	}
	bx := x - back // barb-side X: behind the tip relative to travel
	cross := c.arrowCross

	switch c.arrowStyle {
	case railmetric.ArrowTriangle:
		c.emit(fmt.Sprintf(`<path d="M %s %s L %s %s L %s %s Z" class="rr-arrow"/>`,
			f(x), f(y), f(bx), f(y-cross), f(bx), f(y+cross)))
	case railmetric.ArrowStealth:
		notch := x - back*0.6
		c.emit(fmt.Sprintf(`<path d="M %s %s L %s %s L %s %s L %s %s Z" class="rr-arrow"/>`,
			f(x), f(y), f(bx), f(y-cross), f(notch), f(y), f(bx), f(y+cross)))
	case railmetric.ArrowBarb:
		c.emit(fmt.Sprintf(`<path d="M %s %s L %s %s L %s %s" class="rr-arrow-open"/>`,
			f(bx), f(y-cross), f(x), f(y), f(bx), f(y+cross)))
	case railmetric.ArrowHarpoon:
		c.emit(fmt.Sprintf(`<path d="M %s %s L %s %s" class="rr-arrow-open"/>`,
			f(bx), f(y+cross), f(x), f(y)))
	case railmetric.ArrowHarpoonUp:
		c.emit(fmt.Sprintf(`<path d="M %s %s L %s %s" class="rr-arrow-open"/>`,
			f(bx), f(y-cross), f(x), f(y)))
	}
}

func (c *canvas) Debug(id string) {
	if !c.track {
		return
	}
	for c.lastDebugTarget < len(c.elements) {
		c.debugIDs = append(c.debugIDs, id)
		c.lastDebugTarget++
	}
}

// String joins the accumulated elements; with debug tracking on, each
// element is wrapped in a group carrying the stable path identifier of
// the tree node that emitted it, for an external inspector to correlate.
func (c *canvas) String() string {
	if !c.debug {
		return strings.Join(c.elements, "\n")
	}
	out := make([]string, len(c.elements))
	for i, el := range c.elements {
		if i < len(c.debugIDs) {
			out[i] = fmt.Sprintf(`<g data-rr-path="%s">%s</g>`, c.debugIDs[i], el)
		} else {
			out[i] = el
		}
	}
	return strings.Join(out, "\n")
}

func f(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

func boxClass(cssClass string) string {
	if cssClass == "" {
		return "rr-box"
	}
	return "rr-box " + cssClass
}

func textClass(cssClass string) string {
	if cssClass == "" {
		return "rr-text"
	}
	return "rr-text " + cssClass
}

func wrapHref(inner, href, title string) string {
	if href == "" {
		return inner
	}
	titleAttr := ""
	if title != "" {
		titleAttr = fmt.Sprintf(` aria-label="%s"`, html.EscapeString(title))
	}
	return fmt.Sprintf(`<a href="%s"%s>%s</a>`, html.EscapeString(href), titleAttr, inner)
}
