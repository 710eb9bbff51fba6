package raillayout

import (
	"fmt"
	"math"

	"github.com/go-railroad/diagram/raildiagram"
	"github.com/go-railroad/diagram/railmetric"
)

// placer carries the state threaded through the placement+emission
// recursion: the metric profile and the document's total width (needed
// to mirror X coordinates when the profile's Reverse flag is set). The
// path strings that key debug annotations are passed down as arguments.
type placer[U railmetric.Number] struct {
	m     railmetric.Metric[U]
	total U
}

// Place runs the placement+emission pass over an optimized, measured tree,
// calling m.Drawer's primitives in document order. x0,y0 is the absolute
// position of the root's entry connector — callers typically pass the
// arc/arrow allowance as x0 and the root's Up as y0 so the whole drawing
// has non-negative coordinates.
func Place[U railmetric.Number](root LNode[U], m railmetric.Metric[U], x0, y0 U) error {
	p := &placer[U]{m: m, total: x0 + root.Rec().Width + x0}
	return p.place(root, x0, y0, "0")
}

// rx mirrors an X coordinate when the profile requests a reversed
// layout. Shapes with horizontal extent pass their width so their
// left edge lands correctly after mirroring; point coordinates pass 0.
func (p *placer[U]) rx(x, w U) U {
	if !p.m.Reverse {
		return x
	}
	return p.total - x - w
}

// hline and vline draw axis-aligned connector segments, mirroring under
// Reverse.
func (p *placer[U]) hline(x1, x2, y U) {
	p.m.Drawer.Line(p.rx(x1, 0), y, p.rx(x2, 0), y)
}

func (p *placer[U]) vline(x, y1, y2 U) {
	p.m.Drawer.Line(p.rx(x, 0), y1, p.rx(x, 0), y2)
}

// elbowDir names the two directions a quarter-circle bend joins, in
// unmirrored coordinates. elbow flips left and right under Reverse so the
// grid back-end's corner glyphs come out facing the right way.
type elbowDir int

const (
	elbowUpLeft elbowDir = iota
	elbowUpRight
	elbowDownLeft
	elbowDownRight
)

func (d elbowDir) mirrored() elbowDir {
	switch d {
	case elbowUpLeft:
		return elbowUpRight
	case elbowUpRight:
		return elbowUpLeft
	case elbowDownLeft:
		return elbowDownRight
	default:
		return elbowDownLeft
	}
}

// elbow emits one quarter-circle bend at (x, y). The Arc primitive's
// start/end/sweep arguments encode the orientation: end > start connects
// downward, sweep connects rightward. The vector back-end draws a real
// arc from them; the grid back-end folds them into its crossing-merge
// mask so a bend landing on a through-line becomes a junction glyph.
func (p *placer[U]) elbow(x, y U, dir elbowDir) {
	if p.m.Reverse {
		dir = dir.mirrored()
	}
	r := p.m.ArcRadius
	switch dir {
	case elbowUpLeft:
		p.m.Drawer.Arc(p.rx(x, 0), y, r, math.Pi/2, 0, false)
	case elbowUpRight:
		p.m.Drawer.Arc(p.rx(x, 0), y, r, math.Pi, math.Pi/2, true)
	case elbowDownLeft:
		p.m.Drawer.Arc(p.rx(x, 0), y, r, math.Pi, 3*math.Pi/2, false)
	case elbowDownRight:
		p.m.Drawer.Arc(p.rx(x, 0), y, r, 0, math.Pi/2, true)
	}
}

func (p *placer[U]) place(n LNode[U], x, y U, path string) error {
	switch v := n.(type) {
	case *LSkip[U]:
		return nil

	case *LBox[U]:
		return p.placeBox(v, x, y, path)

	case *LSequence[U]:
		return p.placeSequence(v, x, y, path)

	case *LStack[U]:
		return p.placeStack(v, x, y, path)

	case *LChoice[U]:
		return p.placeChoice(v, x, y, path)

	case *LOneOrMore[U]:
		return p.placeOneOrMore(v, x, y, path)

	case *LBarrier[U]:
		if err := p.place(v.Child, x, y, path+".0"); err != nil {
			return err
		}
		p.m.Drawer.Debug(path)
		return nil

	case *LGroup[U]:
		return p.placeGroup(v, x, y, path)

	case *LFusedBypass[U]:
		return p.placeFusedBypass(v, x, y, path)

	default:
		return fmt.Errorf("raillayout: unplaceable node kind %v", n.Kind())
	}
}

func (p *placer[U]) placeBox(v *LBox[U], x, y U, path string) error {
	r := v.Rec()
	boxX := p.rx(x, r.Width)
	boxY := y - r.Up

	href, title := v.Href, v.Title
	if href == "" && p.m.HrefResolver != nil {
		resolvedHref, resolvedTitle, err := p.m.HrefResolver.Resolve(v.K, v.Text, v.Payload)
		if err != nil {
			return raildiagram.NewEmbedderError("href_resolver", err)
		}
		href, title = resolvedHref, resolvedTitle
		if title == "" {
			title = v.Title
		}
	}

	_, _, radius := p.m.BoxMetrics(v.K)
	p.m.Drawer.Box(boxX, boxY, r.Width, r.Height(), radius, v.CSSClass, href, title)
	p.m.Drawer.Text(boxX, boxY, r.Width, r.Height(), v.Text, v.CSSClass, href, title)
	p.m.Drawer.Debug(path)
	return nil
}

// placeSequence threads the cursor left to right: each child's entry sits
// at the previous child's exit Y, so a stack-shaped child shifts the rest
// of the line down with it.
func (p *placer[U]) placeSequence(v *LSequence[U], x, y U, path string) error {
	cx, cy := x, y
	for i, child := range v.Children {
		childPath := fmt.Sprintf("%s.%d", path, i)
		if err := p.place(child, cx, cy, childPath); err != nil {
			return err
		}
		cx += child.Rec().Width
		cy += child.Rec().ExitY
		if i < len(v.Children)-1 {
			p.hline(cx, cx+p.m.HorizontalSeparation, cy)
			cx += p.m.HorizontalSeparation
		}
	}
	p.m.Drawer.Debug(path)
	return nil
}

// placeStack lays rows out top to bottom, connecting consecutive rows with
// the down/across/up return path reserved in the left and right ArcRadius
// margins buildStackRecord already budgeted.
func (p *placer[U]) placeStack(v *LStack[U], x, y U, path string) error {
	sep := p.m.VerticalSeqSeparation
	if v.Outer {
		sep = p.m.VerticalSeqSeparationOuter
	}

	contentX := x + p.m.ArcRadius
	rightX := x + v.Rec().Width - p.m.ArcRadius

	entryY := y
	var prevExitX, prevExitY U
	for i, row := range v.Rows {
		rr := row.Rec()
		if i == 0 {
			p.hline(x, contentX, y)
		} else {
			p.drawReturnPath(prevExitX, prevExitY, rightX, contentX, entryY)
		}
		childPath := fmt.Sprintf("%s.%d", path, i)
		if err := p.place(row, contentX, entryY, childPath); err != nil {
			return err
		}
		prevExitX = contentX + rr.Width
		prevExitY = entryY + rr.ExitY
		if i < len(v.Rows)-1 {
			entryY += rr.Down + sep + p.m.ArcRadius + p.m.ArcRadius + v.Rows[i+1].Rec().Up
		}
	}
	p.hline(prevExitX, x+v.Rec().Width, prevExitY)
	p.m.Drawer.Debug(path)
	return nil
}

// drawReturnPath draws the connector joining one row's exit to the next
// row's entry: out to the right margin, down, across
// right-to-left along a midline halfway between the two rows, down the
// left margin, and back in.
func (p *placer[U]) drawReturnPath(exitX, exitY, rightX, entryX, entryY U) {
	mid := (exitY + entryY) / 2
	leftX := entryX - p.m.ArcRadius

	p.hline(exitX, rightX, exitY)
	p.elbow(rightX, exitY, elbowDownLeft)
	p.vline(rightX, exitY, mid)
	p.elbow(rightX, mid, elbowUpLeft)
	p.hline(leftX, rightX, mid)
	p.elbow(leftX, mid, elbowDownRight)
	p.vline(leftX, mid, entryY)
	p.elbow(leftX, entryY, elbowUpRight)
	p.hline(leftX, entryX, entryY)
}

// placeChoice draws the default alternative straight through and stacks
// the other alternatives in bands above and below it, each reached by a
// branch bend at the shared left column and rejoined at the shared right
// column. Bands accumulate outward from the default's own extent, exactly
// mirroring buildChoiceRecord's up/down accounting.
func (p *placer[U]) placeChoice(v *LChoice[U], x, y U, path string) error {
	r := v.Rec()
	contentX := x + p.m.ArcRadius + p.m.ArcRadius + p.m.ArcMargin
	rightX := x + r.Width

	sep := p.m.VerticalChoiceSeparation
	if v.Outer {
		sep = p.m.VerticalChoiceSeparationOuter
	}

	defaultRec := v.Children[v.Default].Rec()
	exitMainY := y + defaultRec.ExitY
	p.hline(x, contentX, y)
	p.hline(contentX+defaultRec.Width, rightX, exitMainY)
	defaultPath := fmt.Sprintf("%s.%d", path, v.Default)
	if err := p.place(v.Children[v.Default], contentX, y, defaultPath); err != nil {
		return err
	}

	top := y - defaultRec.Up
	for i := v.Default - 1; i >= 0; i-- {
		cr := v.Children[i].Rec()
		branchY := top - sep - cr.Down
		top -= sep + cr.Height()
		if err := p.placeBranch(v.Children[i], x, y, exitMainY, contentX, rightX, branchY, fmt.Sprintf("%s.%d", path, i)); err != nil {
			return err
		}
	}

	bottom := y + defaultRec.Down
	for i := v.Default + 1; i < len(v.Children); i++ {
		cr := v.Children[i].Rec()
		branchY := bottom + sep + cr.Up
		bottom += sep + cr.Height()
		if err := p.placeBranch(v.Children[i], x, y, exitMainY, contentX, rightX, branchY, fmt.Sprintf("%s.%d", path, i)); err != nil {
			return err
		}
	}

	p.m.Drawer.Debug(path)
	return nil
}

// placeBranch draws one non-default Choice alternative: a bend off the
// main line at column x, the alternative on its own line at branchY, and
// the mirrored bend back onto the default's exit line at column rightX.
func (p *placer[U]) placeBranch(child LNode[U], x, mainY, exitMainY, contentX, rightX, branchY U, path string) error {
	cr := child.Rec()
	above := branchY < mainY

	p.vline(x, mainY, branchY)
	if above {
		p.elbow(x, branchY, elbowDownRight)
	} else {
		p.elbow(x, branchY, elbowUpRight)
	}
	p.hline(x, contentX, branchY)

	if err := p.place(child, contentX, branchY, path); err != nil {
		return err
	}

	exitY := branchY + cr.ExitY
	p.hline(contentX+cr.Width, rightX, exitY)
	if above {
		p.elbow(rightX, exitY, elbowDownLeft)
	} else {
		p.elbow(rightX, exitY, elbowUpLeft)
	}
	p.vline(rightX, exitY, exitMainY)
	return nil
}

// placeOneOrMore draws the body on the main line and the repeat separator
// on a parallel return line, joined by verticals in the one-ArcRadius
// margins measureOneOrMore reserved on each side. The main line continues
// straight through both margins, so the junction cells merge into tees on
// the grid back-end instead of bending.
func (p *placer[U]) placeOneOrMore(v *LOneOrMore[U], x, y U, path string) error {
	r := v.Rec()
	contentX := x + p.m.ArcRadius
	rightX := x + r.Width

	var repeatY U
	if v.RepeatTop {
		repeatY = y - v.Body.Rec().Up - p.m.VerticalSeqSeparation - v.Repeat.Rec().Down
	} else {
		repeatY = y + v.Body.Rec().Down + p.m.VerticalSeqSeparation + v.Repeat.Rec().Up
	}

	p.hline(x, contentX, y)
	if err := p.place(v.Body, contentX, y, path+".0"); err != nil {
		return err
	}
	bodyExitY := y + v.Body.Rec().ExitY
	p.hline(contentX+v.Body.Rec().Width, rightX, bodyExitY)

	if err := p.place(v.Repeat, contentX, repeatY, path+".1"); err != nil {
		return err
	}
	repeatExitY := repeatY + v.Repeat.Rec().ExitY
	p.hline(x, contentX, repeatY)
	p.hline(contentX+v.Repeat.Rec().Width, rightX, repeatExitY)

	if v.RepeatTop {
		p.elbow(x, repeatY, elbowDownRight)
		p.elbow(rightX, repeatExitY, elbowDownLeft)
	} else {
		p.elbow(x, repeatY, elbowUpRight)
		p.elbow(rightX, repeatExitY, elbowUpLeft)
	}
	p.vline(x, y, repeatY)
	p.vline(rightX, bodyExitY, repeatExitY)

	// Travel along the return line runs backward.
	p.m.Drawer.Arrow(p.rx((x+contentX)/2, 0), repeatY, !p.m.Reverse)

	p.m.Drawer.Debug(path)
	return nil
}

func (p *placer[U]) placeGroup(v *LGroup[U], x, y U, path string) error {
	insetX := x + p.m.GroupHPad + p.m.GroupHMargin

	p.hline(x, insetX, y)
	if err := p.place(v.Child, insetX, y, path+".0"); err != nil {
		return err
	}
	cr := v.Child.Rec()
	p.hline(insetX+cr.Width, x+v.Rec().Width, y+cr.ExitY)

	boxW := cr.Width + 2*p.m.GroupHPad
	boxX := p.rx(x+p.m.GroupHMargin, boxW)
	boxY := y - cr.Up - p.m.GroupVPad - p.m.GlyphHeight
	boxH := cr.Height() + 2*p.m.GroupVPad + p.m.GlyphHeight

	p.m.Drawer.Box(boxX, boxY, boxW, boxH, p.m.GroupRadius, v.CSSClass, v.Href, v.Title)
	p.m.Drawer.GroupCaption(boxX+p.m.GroupCaptionXOffset, boxY+p.m.GroupCaptionYOffset, v.Text, v.Href, v.Title)
	p.m.Drawer.Debug(path)
	return nil
}

// placeFusedBypass draws the fused optionals' bodies on the main line in
// their original slots, then one continuous skip rail spanning all of
// them, instead of one bulge per optional. Each slot keeps the width its
// pre-fusion Choice measured at, so the parent sequence's geometry is
// unchanged by the optimization.
func (p *placer[U]) placeFusedBypass(v *LFusedBypass[U], x, y U, path string) error {
	railY := y - v.R.Up
	if !v.SkipTop {
		railY = y + v.R.Down
	}
	rightX := x + v.R.Width

	cx := x
	for i, body := range v.Bodies {
		slotContentX := cx + p.m.ArcRadius + p.m.ArcRadius + p.m.ArcMargin
		p.hline(cx, slotContentX, y)
		childPath := fmt.Sprintf("%s.%d", path, i)
		if err := p.place(body, slotContentX, y, childPath); err != nil {
			return err
		}
		slotEnd := cx + v.SlotWidths[i]
		p.hline(slotContentX+body.Rec().Width, slotEnd, y+body.Rec().ExitY)
		cx = slotEnd
		if i < len(v.Bodies)-1 {
			p.hline(cx, cx+p.m.HorizontalSeparation, y)
			cx += p.m.HorizontalSeparation
		}
	}

	p.vline(x, y, railY)
	p.vline(rightX, y, railY)
	if v.SkipTop {
		p.elbow(x, railY, elbowDownRight)
		p.elbow(rightX, railY, elbowDownLeft)
	} else {
		p.elbow(x, railY, elbowUpRight)
		p.elbow(rightX, railY, elbowUpLeft)
	}
	p.hline(x, rightX, railY)
	p.m.Drawer.Debug(path)
	return nil
}
