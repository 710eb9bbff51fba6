package raildiagram

// Lower rewrites Optional and ZeroOrMore nodes into their canonical
// Choice/OneOrMore equivalents, recursively, so that later passes handle
// a smaller set of canonical shapes (Skip, the box kinds, Sequence,
// Stack, Choice, OneOrMore, Barrier, Group) instead of replicating the
// skip/skip_bottom/repeat_top truth tables in every pass. Lowering then
// rendering must be indistinguishable from rendering the original
// directly, so Lower is a pure tree rewrite and is safe to call more
// than once (lowering an already-lowered tree is a no-op on the nodes it
// produced).
func Lower(n Node) Node {
	switch v := n.(type) {
	case *Optional:
		return lowerOptional(Lower(v.Child), v.SkipDefault, v.SkipBottom)
	case *ZeroOrMore:
		body := &OneOrMore{Body: Lower(v.Body), Repeat: lowerRepeat(v.Repeat), RepeatTop: v.RepeatTop}
		return lowerOptional(body, v.SkipDefault, v.SkipBottom)
	case *Sequence:
		children := make([]Node, len(v.Children))
		for i, c := range v.Children {
			children[i] = Lower(c)
		}
		return &Sequence{Children: children, Breaks: v.Breaks}
	case *Stack:
		children := make([]Node, len(v.Children))
		for i, c := range v.Children {
			children[i] = Lower(c)
		}
		return &Stack{Children: children}
	case *Choice:
		children := make([]Node, len(v.Children))
		for i, c := range v.Children {
			children[i] = Lower(c)
		}
		return &Choice{Children: children, Default: v.Default}
	case *OneOrMore:
		return &OneOrMore{Body: Lower(v.Body), Repeat: lowerRepeat(v.Repeat), RepeatTop: v.RepeatTop}
	case *Barrier:
		return &Barrier{Child: Lower(v.Child)}
	case *Group:
		return &Group{Child: Lower(v.Child), Text: v.Text, Href: v.Href, Title: v.Title, CSSClass: v.CSSClass}
	default:
		return n // Skip, Terminal, NonTerminal, Comment carry no children
	}
}

func lowerRepeat(repeat Node) Node {
	if repeat == nil {
		return &Skip{}
	}
	return Lower(repeat)
}

// lowerOptional resolves the (SkipDefault, SkipBottom) pair into a 2-way
// Choice. SkipDefault
// names which branch (Skip or Child) is the main line; SkipBottom names
// which side (index 0, drawn above the default, or index 1, drawn below)
// the non-default branch bulges to.
func lowerOptional(child Node, skipDefault, skipBottom bool) *Choice {
	skip := Node(&Skip{})
	switch {
	case !skipDefault && !skipBottom: // child is main line, skip bulges above
		return &Choice{Children: []Node{skip, child}, Default: 1}
	case !skipDefault && skipBottom: // child is main line, skip bulges below
		return &Choice{Children: []Node{child, skip}, Default: 0}
	case skipDefault && !skipBottom: // skip is main line, child bulges above
		return &Choice{Children: []Node{child, skip}, Default: 1}
	default: // skipDefault && skipBottom: skip is main line, child bulges below
		return &Choice{Children: []Node{skip, child}, Default: 0}
	}
}
