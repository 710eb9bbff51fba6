// Package railroad is the public surface of the diagram renderer: the
// Settings record and the two rendering entry points, one per back-end.
// Settings follows the zero-value-means-default convention —
// every field left at its zero value is substituted with the named
// default at the top of RenderVector/RenderText, so a caller only spells
// out what it wants changed.
package railroad

import (
	"github.com/go-railroad/diagram/railmetric"
)

// EndClass re-exports the marker style enum so callers only import this
// package.
type EndClass = railmetric.EndClass

const (
	EndComplex = railmetric.EndComplex
	EndSimple  = railmetric.EndSimple
)

// ArrowStyle re-exports the arrowhead style enum.
type ArrowStyle = railmetric.ArrowStyle

const (
	ArrowNone      = railmetric.ArrowNone
	ArrowTriangle  = railmetric.ArrowTriangle
	ArrowStealth   = railmetric.ArrowStealth
	ArrowBarb      = railmetric.ArrowBarb
	ArrowHarpoon   = railmetric.ArrowHarpoon
	ArrowHarpoonUp = railmetric.ArrowHarpoonUp
)

// BoxSettings overrides one box kind's padding and corner radius, in the
// vector profile's pixels.
type BoxSettings struct {
	HorizontalPadding float64
	VerticalPadding   float64
	Radius            float64
}

// GroupSettings overrides the captioned-rectangle constants.
type GroupSettings struct {
	VerticalPadding   float64
	HorizontalPadding float64
	VerticalMargin    float64
	HorizontalMargin  float64
	Radius            float64
	CaptionXOffset    float64
	CaptionYOffset    float64
}

// TextGridSettings holds the character-grid back-end's own spacings, in
// cells. Zero values fall back to the grid profile's defaults.
type TextGridSettings struct {
	MaxWidth                 int
	HorizontalSeqSeparation  int
	VerticalSeqSeparation    int
	VerticalChoiceSeparation int
	GroupCaptionXOffset      int
	GroupCaptionYOffset      int
}

// Settings is the rendering configuration record. All fields are
// optional; shared fields drive both back-ends, the rest are
// vector-only except Text, which holds the grid back-end's own knobs.
type Settings struct {
	// Shared.
	MaxWidth                      float64
	Reverse                       bool
	EndClass                      EndClass
	VerticalChoiceSeparation      float64
	VerticalChoiceSeparationOuter float64
	VerticalSeqSeparation         float64
	VerticalSeqSeparationOuter    float64
	HorizontalSeqSeparation       float64

	// Vector-only.
	Title            string
	Description      string
	ArcRadius        float64
	ArcMargin        float64
	ArrowStyle       ArrowStyle
	ArrowLength      float64
	ArrowCrossLength float64
	Terminal         BoxSettings
	NonTerminal      BoxSettings
	Comment          BoxSettings
	Group            GroupSettings
	CSSClass         string
	CSSStyle         string
	TintByDepth      bool
	AccentColor      string
	Debug            bool

	// Injected capabilities, vector-only; the grid back-end always
	// measures one cell per rune and drops hyperlinks.
	TextMeasure  railmetric.TextMeasure
	HrefResolver railmetric.HrefResolver

	// Text-only.
	Text TextGridSettings
}

// vectorMetric resolves the settings against the default vector profile.
func (s *Settings) vectorMetric() railmetric.Metric[float64] {
	m := railmetric.DefaultVector()
	if s == nil {
		return m
	}

	setF(&m.MaxWidth, s.MaxWidth)
	m.Reverse = s.Reverse
	m.EndClass = s.EndClass
	setF(&m.VerticalChoiceSeparation, s.VerticalChoiceSeparation)
	setF(&m.VerticalChoiceSeparationOuter, s.VerticalChoiceSeparationOuter)
	setF(&m.VerticalSeqSeparation, s.VerticalSeqSeparation)
	setF(&m.VerticalSeqSeparationOuter, s.VerticalSeqSeparationOuter)
	setF(&m.HorizontalSeparation, s.HorizontalSeqSeparation)
	setF(&m.ArcRadius, s.ArcRadius)
	setF(&m.ArcMargin, s.ArcMargin)
	setF(&m.ArrowLength, s.ArrowLength)
	setF(&m.ArrowCrossLength, s.ArrowCrossLength)
	if s.ArrowStyle != ArrowNone {
		m.ArrowStyle = s.ArrowStyle
	}

	setF(&m.TerminalHPad, s.Terminal.HorizontalPadding)
	setF(&m.TerminalVPad, s.Terminal.VerticalPadding)
	setF(&m.TerminalRadius, s.Terminal.Radius)
	setF(&m.NonTerminalHPad, s.NonTerminal.HorizontalPadding)
	setF(&m.NonTerminalVPad, s.NonTerminal.VerticalPadding)
	setF(&m.NonTerminalRadius, s.NonTerminal.Radius)
	setF(&m.CommentHPad, s.Comment.HorizontalPadding)
	setF(&m.CommentVPad, s.Comment.VerticalPadding)
	setF(&m.CommentRadius, s.Comment.Radius)

	setF(&m.GroupVPad, s.Group.VerticalPadding)
	setF(&m.GroupHPad, s.Group.HorizontalPadding)
	setF(&m.GroupVMargin, s.Group.VerticalMargin)
	setF(&m.GroupHMargin, s.Group.HorizontalMargin)
	setF(&m.GroupRadius, s.Group.Radius)
	setF(&m.GroupCaptionXOffset, s.Group.CaptionXOffset)
	setF(&m.GroupCaptionYOffset, s.Group.CaptionYOffset)

	if s.TextMeasure != nil {
		m.TextMeasure = s.TextMeasure
	}
	if s.HrefResolver != nil {
		m.HrefResolver = s.HrefResolver
	}
	return m
}

// textMetric resolves the settings against the default grid profile. Only
// the shared Reverse/EndClass flags and the Text sub-record apply; pixel
// spacings do not translate to cells.
func (s *Settings) textMetric() railmetric.Metric[int] {
	m := railmetric.DefaultText()
	if s == nil {
		return m
	}

	m.Reverse = s.Reverse
	if s.EndClass != EndComplex {
		m.EndClass = s.EndClass
	}
	setI(&m.MaxWidth, s.Text.MaxWidth)
	setI(&m.HorizontalSeparation, s.Text.HorizontalSeqSeparation)
	setI(&m.VerticalSeqSeparation, s.Text.VerticalSeqSeparation)
	setI(&m.VerticalSeqSeparationOuter, s.Text.VerticalSeqSeparation)
	setI(&m.VerticalChoiceSeparation, s.Text.VerticalChoiceSeparation)
	setI(&m.VerticalChoiceSeparationOuter, s.Text.VerticalChoiceSeparation)
	setI(&m.GroupCaptionXOffset, s.Text.GroupCaptionXOffset)
	setI(&m.GroupCaptionYOffset, s.Text.GroupCaptionYOffset)
	return m
}

func setF(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}

func setI(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}
