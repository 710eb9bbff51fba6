package raillayout

import (
	"github.com/go-railroad/diagram/raildiagram"
	"github.com/go-railroad/diagram/railmetric"
)

// LNode is a measured node: the output of the measurement+wrapping pass,
// carrying its Record alongside the case-specific data the placement pass
// needs. It mirrors raildiagram.Node's tagged-sum shape — one concrete
// type per kind, dispatched by Kind() — since by this point Optional and
// ZeroOrMore have been lowered away and Sequence has been resolved into
// either a single-line LSequence or a wrapped LStack.
type LNode[U railmetric.Number] interface {
	Kind() raildiagram.Kind
	Rec() Record[U]
}

type LSkip[U railmetric.Number] struct{ R Record[U] }

func (n *LSkip[U]) Kind() raildiagram.Kind { return raildiagram.KindSkip }
func (n *LSkip[U]) Rec() Record[U]         { return n.R }

// LBox is the measured form of Terminal, NonTerminal, and Comment — the
// three box-shaped leaf kinds share one layout shape, differing only in
// the per-kind constants already baked into R and the kind tag used by
// the drawer to pick a box style.
type LBox[U railmetric.Number] struct {
	R        Record[U]
	K        raildiagram.Kind
	Text     string
	Href     string
	Title    string
	CSSClass string
	Payload  any
}

func (n *LBox[U]) Kind() raildiagram.Kind { return n.K }
func (n *LBox[U]) Rec() Record[U]         { return n.R }

// LSequence is an unwrapped horizontal concatenation: either it never
// carried a breakable join, or wrapping decided every join fits on one
// line. Joins are NO_BREAK by construction at this point.
type LSequence[U railmetric.Number] struct {
	R        Record[U]
	Children []LNode[U]
}

func (n *LSequence[U]) Kind() raildiagram.Kind { return raildiagram.KindSequence }
func (n *LSequence[U]) Rec() Record[U]         { return n.R }

// LStack is a vertical concatenation of rows — either an author-supplied
// Stack, or the rewritten form of a Sequence the wrapping pass split
// across multiple lines.
type LStack[U railmetric.Number] struct {
	R    Record[U]
	Rows []LNode[U]
	// Outer reports whether this stack sits directly under the render
	// root rather than nested inside a Choice or loop, selecting the
	// "_outer" vertical separation constant during placement.
	Outer bool
}

func (n *LStack[U]) Kind() raildiagram.Kind { return raildiagram.KindStack }
func (n *LStack[U]) Rec() Record[U]         { return n.R }

// LChoice is a measured Choice: Default picks which child is the main
// line; children with index < Default bulge above it, index > Default
// bulge below.
type LChoice[U railmetric.Number] struct {
	R        Record[U]
	Children []LNode[U]
	Default  int
	Outer    bool
}

func (n *LChoice[U]) Kind() raildiagram.Kind { return raildiagram.KindChoice }
func (n *LChoice[U]) Rec() Record[U]         { return n.R }

// LOneOrMore is a measured loop: Body is the forward line, Repeat the
// separator drawn on the return line.
type LOneOrMore[U railmetric.Number] struct {
	R         Record[U]
	Body      LNode[U]
	Repeat    LNode[U]
	RepeatTop bool
}

func (n *LOneOrMore[U]) Kind() raildiagram.Kind { return raildiagram.KindOneOrMore }
func (n *LOneOrMore[U]) Rec() Record[U]         { return n.R }

// LBarrier carries its measured child's Record unchanged — measurement is
// transparent through a Barrier — but survives into the laid tree as its
// own kind so the optimization pass can still refuse to fuse across it.
type LBarrier[U railmetric.Number] struct {
	R     Record[U]
	Child LNode[U]
}

func (n *LBarrier[U]) Kind() raildiagram.Kind { return raildiagram.KindBarrier }
func (n *LBarrier[U]) Rec() Record[U]         { return n.R }

// LGroup is a measured Group: Child sits inset by the group padding,
// surrounded by a captioned rectangle.
type LGroup[U railmetric.Number] struct {
	R        Record[U]
	Child    LNode[U]
	Text     string
	Href     string
	Title    string
	CSSClass string
}

func (n *LGroup[U]) Kind() raildiagram.Kind { return raildiagram.KindGroup }
func (n *LGroup[U]) Rec() Record[U]         { return n.R }

// KindFusedBypass is the internal node kind the optimization pass
// introduces; it has no raildiagram.Kind counterpart since it never
// appears in an input tree, only in the laid tree, so it is declared
// locally rather than added to raildiagram.Kind's enumeration.
const KindFusedBypass raildiagram.Kind = -1

// LFusedBypass replaces a run of two or more adjacent same-side Optional
// bypass rails with one continuous rail. It reuses the
// already-measured Records of its Children (and their bodies) rather than
// re-measuring: fusing bypass rails only changes how the skip path is
// drawn, never any node's bounding box, so the pre-fusion measurements
// remain valid.
type LFusedBypass[U railmetric.Number] struct {
	R Record[U]
	// Bodies holds each fused optional's non-skip child, drawn in sequence
	// on the main line exactly as before fusion.
	Bodies []LNode[U]
	// SlotWidths holds, per body, the width the body's pre-fusion Choice
	// measured at, so placement keeps every main-line slot exactly where
	// the parent sequence's record already expects it.
	SlotWidths []U
	// SkipTop reports which side the single fused rail bulges to.
	SkipTop bool
}

func (n *LFusedBypass[U]) Kind() raildiagram.Kind { return KindFusedBypass }
func (n *LFusedBypass[U]) Rec() Record[U]         { return n.R }
