// Package railmetric defines the metric profile: the abstract capability
// set (spacing constants, per-kind constants, injected text measurement
// and href resolution, and a drawing surface) that parameterizes the
// layout pipeline in package raillayout. A Metric is generic over its
// coordinate unit so the same layout algorithms drive both the
// floating-point vector back-end and the integer character-grid
// back-end: a type parameter constrained to the built-in numeric kinds
// that support +, *, and ordering natively.
package railmetric

import "github.com/go-railroad/diagram/raildiagram"

// Number is the constraint a Metric's coordinate unit must satisfy:
// float64 for the vector back-end, int for the character-grid back-end.
type Number interface {
	~int | ~float64
}

// FromInt converts an embedder-supplied integer width (the return type
// of TextMeasure.Measure) into the profile's native unit.
func FromInt[U Number](n int) U {
	return U(n)
}

// EndClass is the visual style of a diagram's start/end markers.
type EndClass int

const (
	EndComplex EndClass = iota // stylized double-ended marker
	EndSimple                  // single perpendicular tick
)

// ArrowStyle names the arrowhead shape used on connectors, vector-only.
type ArrowStyle int

const (
	ArrowNone ArrowStyle = iota
	ArrowTriangle
	ArrowStealth
	ArrowBarb
	ArrowHarpoon
	ArrowHarpoonUp
)

// TextMeasure is an injected capability: given a string and the kind of
// node it will be drawn in, return its width in the profile's native unit.
// Implementations must not fail softly; a returned error is wrapped into
// a raildiagram.EmbedderError by the caller and aborts the render.
type TextMeasure interface {
	Measure(kind raildiagram.Kind, text string) (int, error)
}

// HrefResolver is an injected capability turning a node's kind, text,
// and resolver payload into a URL and optional title.
type HrefResolver interface {
	Resolve(kind raildiagram.Kind, text string, payload any) (href, title string, err error)
}

// NopHrefResolver never resolves a hyperlink.
type NopHrefResolver struct{}

func (NopHrefResolver) Resolve(raildiagram.Kind, string, any) (string, string, error) {
	return "", "", nil
}

// Drawer is the drawing-surface half of a metric profile: the primitives
// the placement+emission pass calls, in document order, to realize a laid
// out diagram. Both back-ends (railvector, railtext) implement Drawer for
// their own unit type.
type Drawer[U Number] interface {
	// Line draws a straight connector segment.
	Line(x1, y1, x2, y2 U)
	// Arc draws one quarter-circle bend of radius r whose elbow (the
	// corner the two rail directions would meet at if drawn square) is
	// (cx,cy). The angles encode orientation: end > start means the bend
	// connects downward, sweep means it connects rightward.
	Arc(cx, cy, r U, start, end float64, sweep bool)
	// Box draws a (possibly rounded) rectangle, optionally wrapped in a
	// hyperlink.
	Box(x, y, w, h, r U, cssClass, href, title string)
	// Text draws a string centered in the given box, optionally wrapped in
	// a hyperlink.
	Text(x, y, w, h U, s string, cssClass, href, title string)
	// GroupCaption draws a Group's caption text at an absolute position.
	GroupCaption(x, y U, s string, href, title string)
	// Arrow stamps a direction-of-travel arrowhead on an already-drawn
	// rail at (x, y). A no-op when the profile's ArrowStyle is ArrowNone.
	Arrow(x, y U, leftward bool)
	// EndMarker draws the diagram's start or end marker at (x,y), spanning
	// up above and down below it, in the style named by class.
	EndMarker(x, y, up, down U, class EndClass, start bool)
	// Debug annotates the shape(s) just emitted with a stable path-derived
	// identifier, when debug output is enabled; a no-op otherwise.
	Debug(id string)
}

// Metric bundles every spacing constant, per-kind constant, and injected
// capability a layout pass needs. Construct one with DefaultVector or
// DefaultText and then override fields from a railroad.Settings.
type Metric[U Number] struct {
	// GlyphHeight is the nominal height of one line of box content,
	// before padding; box kinds take half of it plus their vertical
	// padding as their up, and the same amount as their down (in an
	// integer unit the half rounds down), and compare it against their
	// radius to decide whether a rounded end needs extra horizontal
	// allowance.
	GlyphHeight U

	// Shared spacing.
	HorizontalSeparation          U
	VerticalChoiceSeparation      U
	VerticalChoiceSeparationOuter U
	VerticalSeqSeparation         U
	VerticalSeqSeparationOuter    U
	ArcRadius                     U
	ArcMargin                     U
	ArrowLength                   U
	ArrowCrossLength              U
	EndClass                      EndClass
	Reverse                       bool
	MaxWidth                      U

	// Per-kind box constants.
	TerminalHPad, TerminalVPad, TerminalRadius          U
	NonTerminalHPad, NonTerminalVPad, NonTerminalRadius U
	CommentHPad, CommentVPad, CommentRadius             U

	// Group constants.
	GroupVPad, GroupHPad                     U
	GroupVMargin, GroupHMargin               U
	GroupRadius                              U
	GroupCaptionXOffset, GroupCaptionYOffset U

	ArrowStyle ArrowStyle

	TextMeasure  TextMeasure
	HrefResolver HrefResolver
	Drawer       Drawer[U]
}

// BoxMetrics returns the (hpad, vpad, radius) triple for a terminal-shaped
// node kind (Terminal, NonTerminal, Comment).
func (m Metric[U]) BoxMetrics(kind raildiagram.Kind) (hpad, vpad, radius U) {
	switch kind {
	case raildiagram.KindNonTerminal:
		return m.NonTerminalHPad, m.NonTerminalVPad, m.NonTerminalRadius
	case raildiagram.KindComment:
		return m.CommentHPad, m.CommentVPad, m.CommentRadius
	default:
		return m.TerminalHPad, m.TerminalVPad, m.TerminalRadius
	}
}

// Max returns the greater of two values of a Number type.
func Max[U Number](a, b U) U {
	if a > b {
		return a
	}
	return b
}

// Sum adds a slice of values of a Number type.
func Sum[U Number](vs []U) U {
	var total U
	for _, v := range vs {
		total += v
	}
	return total
}
