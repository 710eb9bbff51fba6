// Package raillayout implements the five-pass layout pipeline: it turns a
// validated raildiagram.Node tree into an absolutely positioned drawing,
// driving a railmetric.Metric's drawing primitives in document order. The
// pipeline is generic over the metric's coordinate unit so the identical
// algorithms serve both the vector (float64) and character-grid (int)
// back-ends.
package raillayout

import "github.com/go-railroad/diagram/railmetric"

// Record is the transient layout state attached to every node during
// measurement: its intrinsic width, its extent above (Up) and below
// (Down) its own entry line, and the Y offsets — relative to the entry
// line — at which its incoming (EntryY) and outgoing (ExitY) connectors
// meet it. For most node kinds both are 0 (entry and exit on the same
// line); Stack-shaped nodes exit lower than they enter.
type Record[U railmetric.Number] struct {
	Width         U
	Up, Down      U
	EntryY, ExitY U
}

// Height returns the record's total vertical extent.
func (r Record[U]) Height() U {
	return r.Up + r.Down
}
