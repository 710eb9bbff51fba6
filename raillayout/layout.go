package raillayout

import (
	"github.com/go-railroad/diagram/raildiagram"
	"github.com/go-railroad/diagram/railmetric"
)

// Result is the outcome of running the measurement, wrapping, and
// optimization passes: a laid-out tree plus the root's bounding box.
// Emit adds a start/end marker span on each side of Width, so the
// emitted document is wider than Width.
type Result[U railmetric.Number] struct {
	Root   LNode[U]
	Width  U
	Height U
}

// Layout runs the measurement, wrapping, and optimization passes
// (validation happens first; placement and emission happen in Render).
// Callers who only need the bounding box (to size a document before
// emitting into it) can call this without immediately rendering.
func Layout[U railmetric.Number](tree raildiagram.Node, m railmetric.Metric[U]) (*Result[U], error) {
	if err := raildiagram.Validate(tree); err != nil {
		return nil, err
	}
	measured, err := Measure(tree, m)
	if err != nil {
		return nil, err
	}
	optimized := Optimize(measured, m)
	rec := optimized.Rec()
	return &Result[U]{Root: optimized, Width: rec.Width, Height: rec.Height()}, nil
}

// Render runs the full pipeline and drives m.Drawer to emit the complete
// drawing, including the root's start/end markers. It returns the total
// document size the caller's back-end should size its canvas/grid to.
func Render[U railmetric.Number](tree raildiagram.Node, m railmetric.Metric[U]) (width, height U, err error) {
	result, err := Layout(tree, m)
	if err != nil {
		return width, height, err
	}
	return Emit(result, m)
}

// Emit is Render's emission half: it drives m.Drawer over an
// already-laid-out result. Back-ends that need to inspect the laid tree
// between layout and emission (to size a grid, or to precompute per-node
// styling) call Layout and Emit separately.
func Emit[U railmetric.Number](result *Result[U], m railmetric.Metric[U]) (width, height U, err error) {
	rec := result.Root.Rec()
	markerSpan := m.ArrowLength
	if markerSpan == 0 {
		markerSpan = m.HorizontalSeparation
	}
	x0 := markerSpan

	// The markers are short perpendicular ticks on the rail, not
	// full-height rules; GlyphHeight bounds their vertical reach.
	tick := m.GlyphHeight / 2

	entryY := rec.Up
	exitY := entryY + rec.ExitY
	leftY, rightY := entryY, exitY
	leftStart, rightStart := true, false
	if m.Reverse {
		// Mirrored emission: the diagram is entered from the right, so
		// the start marker (and the entry line) land on the right edge.
		leftY, rightY = exitY, entryY
		leftStart, rightStart = false, true
	}

	m.Drawer.EndMarker(0, leftY, tick, tick, m.EndClass, leftStart)
	m.Drawer.Line(0, leftY, x0, leftY)
	if err := Place(result.Root, m, x0, entryY); err != nil {
		return width, height, err
	}
	m.Drawer.Line(x0+rec.Width, rightY, x0+rec.Width+markerSpan, rightY)
	m.Drawer.EndMarker(x0+rec.Width+markerSpan, rightY, tick, tick, m.EndClass, rightStart)

	return x0 + rec.Width + markerSpan, rec.Height(), nil
}
