package raillayout

import (
	"github.com/go-railroad/diagram/raildiagram"
	"github.com/go-railroad/diagram/railmetric"
)

// mctx is the context threaded down a measurement recursion: whether the
// current node sits inside a Choice/OneOrMore (or, after wrapping, on an
// already-wrapped line), which resolves Sequence's DEFAULT break hint and
// selects the plain vs "_outer" separation constants for any Stack built
// below it.
type mctx struct {
	insideChoiceOrLoop bool
}

// Measure lowers root (Optional → Choice, ZeroOrMore → Optional+OneOrMore)
// and runs the fused measurement+wrapping pass: each Sequence is measured
// bottom-up and, if it carries any breakable join, rewritten into a Stack
// of lines before its own Record is computed, so later passes only ever
// see the lowered, wrap-resolved shapes.
func Measure[U railmetric.Number](root raildiagram.Node, m railmetric.Metric[U]) (LNode[U], error) {
	lowered := raildiagram.Lower(root)
	return measure(lowered, m, mctx{insideChoiceOrLoop: false})
}

func measure[U railmetric.Number](n raildiagram.Node, m railmetric.Metric[U], c mctx) (LNode[U], error) {
	switch v := n.(type) {
	case *raildiagram.Skip:
		return &LSkip[U]{}, nil

	case *raildiagram.Terminal:
		return measureBox(raildiagram.KindTerminal, v.Text, v.Href, v.Title, v.CSSClass, v.Payload, m)
	case *raildiagram.NonTerminal:
		return measureBox(raildiagram.KindNonTerminal, v.Text, v.Href, v.Title, v.CSSClass, v.Payload, m)
	case *raildiagram.Comment:
		return measureBox(raildiagram.KindComment, v.Text, v.Href, v.Title, v.CSSClass, v.Payload, m)

	case *raildiagram.Sequence:
		return measureSequence(v, m, c)

	case *raildiagram.Stack:
		return measureStackNode(v, m, c)

	case *raildiagram.Choice:
		return measureChoice(v, m, c)

	case *raildiagram.OneOrMore:
		return measureOneOrMore(v, m, c)

	case *raildiagram.Barrier:
		child, err := measure(v.Child, m, c)
		if err != nil {
			return nil, err
		}
		return &LBarrier[U]{R: child.Rec(), Child: child}, nil

	case *raildiagram.Group:
		return measureGroup(v, m, c)

	default:
		return nil, &raildiagram.LoadingError{Message: "unmeasurable node kind; Optional/ZeroOrMore must be lowered before Measure"}
	}
}

func measureBox[U railmetric.Number](kind raildiagram.Kind, text, href, title, cssClass string, payload any, m railmetric.Metric[U]) (LNode[U], error) {
	hpad, vpad, radius := m.BoxMetrics(kind)
	textWidth, err := m.TextMeasure.Measure(kind, text)
	if err != nil {
		return nil, raildiagram.NewEmbedderError("text_measure", err)
	}
	width := hpad + hpad + railmetric.FromInt[U](textWidth)
	if radius > 0 && radius >= m.GlyphHeight/2 {
		width += m.GlyphHeight
	}
	half := m.GlyphHeight / 2
	rec := Record[U]{Width: width, Up: half + vpad, Down: half + vpad}
	return &LBox[U]{R: rec, K: kind, Text: text, Href: href, Title: title, CSSClass: cssClass, Payload: payload}, nil
}

// resolveBreak turns a Sequence join's declared Break into an effective
// HARD/SOFT/NO_BREAK: DEFAULT behaves like SOFT at the
// top level and like NO_BREAK inside a Choice, OneOrMore, or
// already-wrapped line.
func resolveBreak(b raildiagram.Break, insideChoiceOrLoop bool) raildiagram.Break {
	if b != raildiagram.BreakDefault {
		return b
	}
	if insideChoiceOrLoop {
		return raildiagram.BreakNoBreak
	}
	return raildiagram.BreakSoft
}

func measureSequence[U railmetric.Number](v *raildiagram.Sequence, m railmetric.Metric[U], c mctx) (LNode[U], error) {
	if len(v.Children) == 0 {
		return &LSkip[U]{}, nil
	}

	measured := make([]LNode[U], len(v.Children))
	for i, child := range v.Children {
		lm, err := measure(child, m, c)
		if err != nil {
			return nil, err
		}
		measured[i] = lm
	}
	if len(measured) == 1 {
		return measured[0], nil
	}

	breaks := make([]raildiagram.Break, len(v.Breaks))
	for i, b := range v.Breaks {
		breaks[i] = resolveBreak(b, c.insideChoiceOrLoop)
	}

	lines := wrapIntoLines(measured, breaks, m)
	if len(lines) == 1 {
		return buildSequenceRecord(lines[0], m), nil
	}

	lineNodes := make([]LNode[U], len(lines))
	for i, line := range lines {
		lineNodes[i] = buildSequenceRecord(line, m)
	}
	stack := &LStack[U]{Rows: lineNodes, Outer: !c.insideChoiceOrLoop}
	stack.R = buildStackRecord(lineNodes, stack.Outer, m)
	return stack, nil
}

// wrapIntoLines is the greedy left-to-right wrap: start a new line when
// the running width would exceed MaxWidth and the preceding join is SOFT,
// and always on HARD regardless of width. A non-positive MaxWidth is
// treated as unbounded, so only HARD joins can still force a break.
func wrapIntoLines[U railmetric.Number](children []LNode[U], breaks []raildiagram.Break, m railmetric.Metric[U]) [][]LNode[U] {
	var lines [][]LNode[U]
	current := []LNode[U]{children[0]}
	currentWidth := children[0].Rec().Width

	for i := 1; i < len(children); i++ {
		join := breaks[i-1]
		candidateWidth := currentWidth + m.HorizontalSeparation + children[i].Rec().Width

		breakHere := join == raildiagram.BreakHard
		if !breakHere && join == raildiagram.BreakSoft && m.MaxWidth > 0 && candidateWidth > m.MaxWidth {
			breakHere = true
		}

		if breakHere {
			lines = append(lines, current)
			current = []LNode[U]{children[i]}
			currentWidth = children[i].Rec().Width
		} else {
			current = append(current, children[i])
			currentWidth = candidateWidth
		}
	}
	lines = append(lines, current)
	return lines
}

func buildSequenceRecord[U railmetric.Number](children []LNode[U], m railmetric.Metric[U]) LNode[U] {
	if len(children) == 1 {
		return children[0]
	}
	var width U
	var up, down U
	for i, child := range children {
		r := child.Rec()
		if i > 0 {
			width += m.HorizontalSeparation
		}
		width += r.Width
		up = railmetric.Max(up, r.Up)
		down = railmetric.Max(down, r.Down)
	}
	var exitY U
	for _, child := range children {
		exitY += child.Rec().ExitY
	}
	rec := Record[U]{
		Width: width,
		Up:    up,
		Down:  down,
		ExitY: exitY,
	}
	return &LSequence[U]{R: rec, Children: children}
}

func measureStackNode[U railmetric.Number](v *raildiagram.Stack, m railmetric.Metric[U], c mctx) (LNode[U], error) {
	rows := make([]LNode[U], len(v.Children))
	for i, child := range v.Children {
		lm, err := measure(child, m, mctx{insideChoiceOrLoop: false})
		if err != nil {
			return nil, err
		}
		rows[i] = lm
	}
	if len(rows) == 0 {
		return &LSkip[U]{}, nil
	}
	if len(rows) == 1 {
		return rows[0], nil
	}
	outer := !c.insideChoiceOrLoop
	rec := buildStackRecord(rows, outer, m)
	return &LStack[U]{R: rec, Rows: rows, Outer: outer}, nil
}

func buildStackRecord[U railmetric.Number](rows []LNode[U], outer bool, m railmetric.Metric[U]) Record[U] {
	sep := m.VerticalSeqSeparation
	if outer {
		sep = m.VerticalSeqSeparationOuter
	}

	var width U
	for _, r := range rows {
		width = railmetric.Max(width, r.Rec().Width)
	}
	width += m.ArcRadius + m.ArcRadius

	first := rows[0].Rec()
	total := first.Height()
	for _, r := range rows[1:] {
		total += sep + m.ArcRadius + m.ArcRadius
		total += r.Rec().Height()
	}
	last := rows[len(rows)-1].Rec()

	// EntryY and ExitY are offsets from the entry line, so the entry is
	// always 0 and the exit sits as far below it as the last row's own
	// entry line, plus that row's local exit offset.
	down := total - first.Up
	return Record[U]{
		Width: width,
		Up:    first.Up,
		Down:  down,
		ExitY: down - last.Down + last.ExitY,
	}
}

func measureChoice[U railmetric.Number](v *raildiagram.Choice, m railmetric.Metric[U], c mctx) (LNode[U], error) {
	children := make([]LNode[U], len(v.Children))
	for i, child := range v.Children {
		lm, err := measure(child, m, mctx{insideChoiceOrLoop: true})
		if err != nil {
			return nil, err
		}
		children[i] = lm
	}
	rec := buildChoiceRecord(children, v.Default, !c.insideChoiceOrLoop, m)
	return &LChoice[U]{R: rec, Children: children, Default: v.Default, Outer: !c.insideChoiceOrLoop}, nil
}

func buildChoiceRecord[U railmetric.Number](children []LNode[U], def int, outer bool, m railmetric.Metric[U]) Record[U] {
	sep := m.VerticalChoiceSeparation
	if outer {
		sep = m.VerticalChoiceSeparationOuter
	}

	var maxWidth U
	for _, c := range children {
		maxWidth = railmetric.Max(maxWidth, c.Rec().Width)
	}
	// Two arc radii per side for the branch bends, plus the arc margin.
	width := maxWidth + (m.ArcRadius+m.ArcRadius+m.ArcMargin)*2

	defaultRec := children[def].Rec()
	up := defaultRec.Up
	for i := def - 1; i >= 0; i-- {
		up += sep + children[i].Rec().Height()
	}
	down := defaultRec.Down
	for i := def + 1; i < len(children); i++ {
		down += sep + children[i].Rec().Height()
	}

	return Record[U]{Width: width, Up: up, Down: down, ExitY: defaultRec.ExitY}
}

func measureOneOrMore[U railmetric.Number](v *raildiagram.OneOrMore, m railmetric.Metric[U], c mctx) (LNode[U], error) {
	body, err := measure(v.Body, m, mctx{insideChoiceOrLoop: true})
	if err != nil {
		return nil, err
	}
	repeat, err := measure(v.Repeat, m, mctx{insideChoiceOrLoop: true})
	if err != nil {
		return nil, err
	}

	width := railmetric.Max(body.Rec().Width, repeat.Rec().Width) + m.ArcRadius + m.ArcRadius

	var up, down U
	if v.RepeatTop {
		up = body.Rec().Up + m.VerticalSeqSeparation + repeat.Rec().Height()
		down = body.Rec().Down
	} else {
		up = body.Rec().Up
		down = body.Rec().Down + m.VerticalSeqSeparation + repeat.Rec().Height()
	}

	rec := Record[U]{Width: width, Up: up, Down: down, ExitY: body.Rec().ExitY}
	return &LOneOrMore[U]{R: rec, Body: body, Repeat: repeat, RepeatTop: v.RepeatTop}, nil
}

func measureGroup[U railmetric.Number](v *raildiagram.Group, m railmetric.Metric[U], c mctx) (LNode[U], error) {
	child, err := measure(v.Child, m, mctx{insideChoiceOrLoop: false})
	if err != nil {
		return nil, err
	}
	cr := child.Rec()
	width := cr.Width + (m.GroupHPad+m.GroupHMargin)*2
	up := cr.Up + m.GroupVPad + m.GroupVMargin + m.GlyphHeight
	down := cr.Down + m.GroupVPad + m.GroupVMargin

	rec := Record[U]{Width: width, Up: up, Down: down, ExitY: cr.ExitY}
	return &LGroup[U]{
		R: rec, Child: child,
		Text: v.Text, Href: v.Href, Title: v.Title, CSSClass: v.CSSClass,
	}, nil
}
