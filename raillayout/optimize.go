package raillayout

import (
	"github.com/go-railroad/diagram/raildiagram"
	"github.com/go-railroad/diagram/railmetric"
)

// Optimize runs the skip-rail fusion rewrite: runs of two or more
// adjacent Optional bypass rails on the same side are fused into a single
// LFusedBypass, so the placement pass draws one continuous rail instead of
// one bulge per Optional. An Optional survives measurement as a two-child
// Choice with one Skip child (lowered by raildiagram.Lower before
// Measure), so the fusable pattern is detected structurally, without
// needing to remember that a Choice originated from an Optional.
//
// A Barrier's child is still optimized internally, but a run can never
// span into or out of a Barrier: Optimize only ever sees a Barrier as one
// opaque LNode in its parent's child list, never flattens through it, so
// the fuse-detection loop simply stops at its boundary.
func Optimize[U railmetric.Number](n LNode[U], m railmetric.Metric[U]) LNode[U] {
	switch v := n.(type) {
	case *LSequence[U]:
		children := make([]LNode[U], len(v.Children))
		for i, c := range v.Children {
			children[i] = Optimize(c, m)
		}
		return &LSequence[U]{R: v.R, Children: optimizeRun(children, m)}
	case *LStack[U]:
		rows := make([]LNode[U], len(v.Rows))
		for i, r := range v.Rows {
			rows[i] = Optimize(r, m)
		}
		return &LStack[U]{R: v.R, Rows: rows, Outer: v.Outer}
	case *LChoice[U]:
		children := make([]LNode[U], len(v.Children))
		for i, c := range v.Children {
			children[i] = Optimize(c, m)
		}
		return &LChoice[U]{R: v.R, Children: children, Default: v.Default, Outer: v.Outer}
	case *LOneOrMore[U]:
		return &LOneOrMore[U]{
			R: v.R, RepeatTop: v.RepeatTop,
			Body:   Optimize(v.Body, m),
			Repeat: Optimize(v.Repeat, m),
		}
	case *LBarrier[U]:
		return &LBarrier[U]{R: v.R, Child: Optimize(v.Child, m)}
	case *LGroup[U]:
		return &LGroup[U]{R: v.R, Child: Optimize(v.Child, m), Text: v.Text, Href: v.Href, Title: v.Title, CSSClass: v.CSSClass}
	default:
		return n
	}
}

// optimizeRun scans one flat list of already-recursively-optimized
// siblings (a Sequence's children; a Stack's rows sit on separate lines
// and are never fused) for consecutive same-side bypass choices and fuses
// each maximal run of two or more.
func optimizeRun[U railmetric.Number](children []LNode[U], m railmetric.Metric[U]) []LNode[U] {
	var result []LNode[U]
	i := 0
	for i < len(children) {
		choice, skipAbove, body, ok := asSkipBypass(children[i])
		if !ok {
			result = append(result, children[i])
			i++
			continue
		}

		choices := []*LChoice[U]{choice}
		bodies := []LNode[U]{body}
		j := i + 1
		for j < len(children) {
			choice2, skipAbove2, body2, ok2 := asSkipBypass(children[j])
			if !ok2 || skipAbove2 != skipAbove || !railHeightsAgree(choice, choice2, skipAbove) {
				break
			}
			choices = append(choices, choice2)
			bodies = append(bodies, body2)
			j++
		}

		if len(bodies) >= 2 {
			result = append(result, buildFusedBypass(choices, bodies, skipAbove, m))
		} else {
			result = append(result, children[i])
		}
		i = j
	}
	return result
}

// asSkipBypass reports whether n is the measured form of an Optional whose
// body sits on the main line: a two-child Choice whose non-default child
// is a Skip. Fusing only applies to that shape — when the Skip is the
// default, the body is the bulge, and merging two body bulges into one
// run would require traversing both bodies together, changing the
// accepted language. skipAbove reports whether the Skip rail sits above
// the main line.
func asSkipBypass[U railmetric.Number](n LNode[U]) (choice *LChoice[U], skipAbove bool, body LNode[U], ok bool) {
	c, isChoice := n.(*LChoice[U])
	if !isChoice || len(c.Children) != 2 {
		return nil, false, nil, false
	}
	skipIdx := -1
	for i, child := range c.Children {
		if child.Kind() == raildiagram.KindSkip {
			skipIdx = i
			break
		}
	}
	bodyIdx := 1 - skipIdx
	if skipIdx == -1 || c.Default != bodyIdx {
		return nil, false, nil, false
	}
	return c, skipIdx < c.Default, c.Children[bodyIdx], true
}

// railHeightsAgree reports whether two bypass choices put their skip rails
// at the same distance from the main line. When they do not, one body is
// taller on the skip side than the other, and a single straight fused
// rail drawn at the shorter height would cross it, so the fusion is
// refused.
func railHeightsAgree[U railmetric.Number](a, b *LChoice[U], skipAbove bool) bool {
	if skipAbove {
		return a.Rec().Up == b.Rec().Up
	}
	return a.Rec().Down == b.Rec().Down
}

// buildFusedBypass reuses the fused choices' already-measured Records
// rather than recomputing bounding boxes: fusing bypass rails is a pure
// drawing simplification that never changes a node's measured extent, so
// each choice's slot width and the widest Up/Down among them remain valid
// bounds for the merged shape, and the parent's own record stays correct.
func buildFusedBypass[U railmetric.Number](choices []*LChoice[U], bodies []LNode[U], skipAbove bool, m railmetric.Metric[U]) *LFusedBypass[U] {
	slotWidths := make([]U, len(choices))
	var width, up, down U
	for i, ch := range choices {
		if i > 0 {
			width += m.HorizontalSeparation
		}
		slotWidths[i] = ch.Rec().Width
		width += slotWidths[i]
		up = railmetric.Max(up, ch.Rec().Up)
		down = railmetric.Max(down, ch.Rec().Down)
	}
	rec := Record[U]{Width: width, Up: up, Down: down}
	return &LFusedBypass[U]{R: rec, Bodies: bodies, SlotWidths: slotWidths, SkipTop: skipAbove}
}
