package railmetric

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/go-railroad/diagram/raildiagram"
)

// HeuristicTextMeasure approximates glyph widths with a fixed
// average-advance-per-rune figure, scaled slightly down for Comment nodes
// (conventionally drawn in a smaller face). It needs no font data and is
// the default TextMeasure a vector profile falls back to when no font
// file is supplied.
type HeuristicTextMeasure struct {
	// AdvancePerRune is the average glyph advance at 1x scale.
	AdvancePerRune float64
}

// DefaultHeuristicTextMeasure is tuned against a typical 13px monospaced
// UI face: close enough for layout purposes, never pixel-exact.
var DefaultHeuristicTextMeasure = HeuristicTextMeasure{AdvancePerRune: 8}

func (h HeuristicTextMeasure) Measure(kind raildiagram.Kind, text string) (int, error) {
	scale := 1.0
	if kind == raildiagram.KindComment {
		scale = 0.85
	}
	width := float64(len([]rune(text))) * h.AdvancePerRune * scale
	return int(width + 0.5), nil
}

// GridTextMeasure is the TextMeasure the character-grid back-end uses: one
// cell per rune, unconditionally, since a terminal grid has no notion of
// proportional glyph width.
type GridTextMeasure struct{}

func (GridTextMeasure) Measure(_ raildiagram.Kind, text string) (int, error) {
	return len([]rune(text)), nil
}

// TrueTextMeasure measures text against an actual parsed TrueType font,
// for embedders that want pixel-accurate vector layout.
type TrueTextMeasure struct {
	face   font.Face
	ptSize float64
}

// NewTrueTextMeasure parses fontData (a raw TTF/OTF file) and returns a
// TextMeasure backed by its real glyph advances at the given point size.
func NewTrueTextMeasure(fontData []byte, ptSize float64) (*TrueTextMeasure, error) {
	f, err := truetype.Parse(fontData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font data: %w", err)
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    ptSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	return &TrueTextMeasure{face: face, ptSize: ptSize}, nil
}

func (t *TrueTextMeasure) Measure(kind raildiagram.Kind, text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	var advance fixed.Int26_6
	for _, r := range text {
		a, ok := t.face.GlyphAdvance(r)
		if !ok {
			return 0, fmt.Errorf("font has no glyph for rune %q", r)
		}
		advance += a
	}
	width := advance.Ceil()
	if kind == raildiagram.KindComment {
		width = int(float64(width)*0.85 + 0.5)
	}
	return width, nil
}
