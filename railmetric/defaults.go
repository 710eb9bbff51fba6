package railmetric

// DefaultVector returns the metric profile for the SVG back-end: pixel
// constants chosen to match the classic railroad-diagram visual
// conventions for box padding, arc radius, and line spacing.
func DefaultVector() Metric[float64] {
	return Metric[float64]{
		GlyphHeight:                   13,
		HorizontalSeparation:          10,
		VerticalChoiceSeparation:      9,
		VerticalChoiceSeparationOuter: 18,
		VerticalSeqSeparation:         9,
		VerticalSeqSeparationOuter:    18,
		ArcRadius:                     10,
		ArcMargin:                     5,
		ArrowLength:                   9,
		ArrowCrossLength:              4,
		EndClass:                      EndComplex,
		MaxWidth:                      0, // 0 means unbounded

		TerminalHPad: 10, TerminalVPad: 5, TerminalRadius: 10,
		NonTerminalHPad: 10, NonTerminalVPad: 5, NonTerminalRadius: 0,
		CommentHPad: 6, CommentVPad: 3, CommentRadius: 0,

		GroupVPad: 8, GroupHPad: 8,
		GroupVMargin: 8, GroupHMargin: 8,
		GroupRadius:         4,
		GroupCaptionXOffset: 3, GroupCaptionYOffset: -8,

		ArrowStyle: ArrowTriangle,

		TextMeasure:  DefaultHeuristicTextMeasure,
		HrefResolver: NopHrefResolver{},
	}
}

// DefaultText returns the metric profile for the character-grid back-end.
// Every spacing constant collapses to whole terminal cells, since the grid
// has no sub-cell resolution; a loop's return line, for instance, needs at
// least one blank row of clearance rather than the vector profile's 9px.
func DefaultText() Metric[int] {
	return Metric[int]{
		GlyphHeight:                   1,
		HorizontalSeparation:          1,
		VerticalChoiceSeparation:      1,
		VerticalChoiceSeparationOuter: 1,
		VerticalSeqSeparation:         1,
		VerticalSeqSeparationOuter:    1,
		ArcRadius:                     1,
		ArcMargin:                     0,
		ArrowLength:                   1,
		ArrowCrossLength:              0,
		EndClass:                      EndSimple,
		MaxWidth:                      0,

		TerminalHPad: 1, TerminalVPad: 1, TerminalRadius: 1,
		NonTerminalHPad: 1, NonTerminalVPad: 1, NonTerminalRadius: 0,
		CommentHPad: 1, CommentVPad: 1, CommentRadius: 0,

		GroupVPad: 1, GroupHPad: 1,
		GroupVMargin: 1, GroupHMargin: 1,
		GroupRadius:         0,
		GroupCaptionXOffset: 1, GroupCaptionYOffset: 0,

		ArrowStyle: ArrowNone,

		TextMeasure:  GridTextMeasure{},
		HrefResolver: NopHrefResolver{},
	}
}
