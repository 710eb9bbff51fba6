// Package raildiagram defines the node algebra for railroad (syntax) diagrams:
// the tagged-sum tree described by a diagram author, before any layout has
// been computed. Nothing in this package measures, wraps, or draws — it only
// models the tree and its structural invariants.
package raildiagram

// Kind identifies which variant a Node is. Dispatch on Kind (or a type
// switch on the concrete struct) replaces the dynamic type tests a
// dynamically-typed implementation would use.
type Kind int

const (
	KindSkip Kind = iota
	KindTerminal
	KindNonTerminal
	KindComment
	KindSequence
	KindStack
	KindChoice
	KindOptional
	KindOneOrMore
	KindZeroOrMore
	KindBarrier
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindSkip:
		return "Skip"
	case KindTerminal:
		return "Terminal"
	case KindNonTerminal:
		return "NonTerminal"
	case KindComment:
		return "Comment"
	case KindSequence:
		return "Sequence"
	case KindStack:
		return "Stack"
	case KindChoice:
		return "Choice"
	case KindOptional:
		return "Optional"
	case KindOneOrMore:
		return "OneOrMore"
	case KindZeroOrMore:
		return "ZeroOrMore"
	case KindBarrier:
		return "Barrier"
	case KindGroup:
		return "Group"
	default:
		return "Unknown"
	}
}

// Break names an inter-child join policy inside a Sequence.
type Break int

const (
	// BreakDefault behaves like BreakSoft at the top level and like
	// BreakNoBreak inside a Choice, OneOrMore, or an already-wrapped line.
	BreakDefault Break = iota
	BreakHard
	BreakSoft
	BreakNoBreak
)

// Node is any element of the combinator tree. It carries no layout state —
// see raillayout.Record for that. Concrete types are pointers to the structs
// below; a Node's identity (pointer equality) is what layout records key on.
type Node interface {
	Kind() Kind
}

// Skip is a bare horizontal line, used as the empty branch of an Optional
// or the empty body/separator of a loop.
type Skip struct{}

func (*Skip) Kind() Kind { return KindSkip }

// Terminal is a rounded box containing literal text.
type Terminal struct {
	Text     string
	Href     string
	Title    string
	CSSClass string
	Payload  any
}

func (*Terminal) Kind() Kind { return KindTerminal }

// NonTerminal is a rectangular box containing a reference name.
type NonTerminal struct {
	Text     string
	Href     string
	Title    string
	CSSClass string
	Payload  any
}

func (*NonTerminal) Kind() Kind { return KindNonTerminal }

// Comment is a low-profile caption box.
type Comment struct {
	Text     string
	Href     string
	Title    string
	CSSClass string
	Payload  any
}

func (*Comment) Kind() Kind { return KindComment }

// Sequence is a horizontal concatenation of children with a break policy
// between each adjacent pair. Breaks is always normalized to length
// len(Children)-1 by NewSequence; a zero-length Children slice or a single
// child sequence is legal and collapses to Skip/the sole child at
// measurement time.
type Sequence struct {
	Children []Node
	Breaks   []Break
}

func (*Sequence) Kind() Kind { return KindSequence }

// NewSequence builds a Sequence, normalizing a scalar break (len(breaks)==1
// with more than one child) to apply to every join. It does not validate;
// use Validate for that.
func NewSequence(children []Node, breaks ...Break) *Sequence {
	n := len(children)
	var normalized []Break
	switch {
	case n <= 1:
		normalized = nil
	case len(breaks) == 0:
		normalized = make([]Break, n-1) // all BreakDefault
	case len(breaks) == 1:
		normalized = make([]Break, n-1)
		for i := range normalized {
			normalized[i] = breaks[0]
		}
	default:
		normalized = append([]Break(nil), breaks...)
	}
	return &Sequence{Children: children, Breaks: normalized}
}

// Stack is a vertical concatenation of rows, each a full sub-diagram,
// connected top-to-bottom by return arcs.
type Stack struct {
	Children []Node
}

func (*Stack) Kind() Kind { return KindStack }

// Choice is one of N alternatives; Default names which alternative sits on
// the main line (drawn straight through); the others bulge above
// (index < Default) or below (index > Default).
type Choice struct {
	Children []Node
	Default  int
}

func (*Choice) Kind() Kind { return KindChoice }

// Optional is sugar for Choice(Skip, x) with a placement policy. SkipDefault
// names which branch sits on the main line: when true, the Skip branch
// (not Child) is the main line and Child becomes the bulge. SkipBottom
// controls which side the non-default branch bulges to.
type Optional struct {
	Child       Node
	SkipDefault bool
	SkipBottom  bool
}

func (*Optional) Kind() Kind { return KindOptional }

// OneOrMore is a forward path through Body and a backward return path
// carrying Repeat (default Skip — no separator). RepeatTop places the
// return line above the body instead of below.
type OneOrMore struct {
	Body      Node
	Repeat    Node
	RepeatTop bool
}

func (*OneOrMore) Kind() Kind { return KindOneOrMore }

// ZeroOrMore is sugar for Optional(OneOrMore(Body, Repeat, RepeatTop),
// SkipDefault, SkipBottom).
type ZeroOrMore struct {
	Body        Node
	Repeat      Node
	RepeatTop   bool
	SkipDefault bool
	SkipBottom  bool
}

func (*ZeroOrMore) Kind() Kind { return KindZeroOrMore }

// Barrier is transparent to measurement, wrapping, and placement but opaque
// to the optimization pass: the optimizer never fuses a skip rail across a
// Barrier boundary.
type Barrier struct {
	Child Node
}

func (*Barrier) Kind() Kind { return KindBarrier }

// Group draws a captioned rectangle around Child.
type Group struct {
	Child    Node
	Text     string
	Href     string
	Title    string
	CSSClass string
}

func (*Group) Kind() Kind { return KindGroup }
