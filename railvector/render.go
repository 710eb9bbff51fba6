package railvector

import (
	"github.com/go-railroad/diagram/raildiagram"
	"github.com/go-railroad/diagram/raillayout"
	"github.com/go-railroad/diagram/railmetric"
)

// DocOptions holds the vector-only document metadata: title, description,
// a root css_class, an optional caller-supplied stylesheet, depth
// tinting, and whether to emit debug path annotations.
type DocOptions struct {
	Title       string
	Description string
	CSSClass    string
	CSSStyle    string
	Debug       bool

	// TintByDepth fills each box with a perceptually spaced color per
	// Choice-nesting depth, off by default. AccentColor, when set,
	// anchors the palette's hue and must parse as a CSS color.
	TintByDepth bool
	AccentColor string
}

// RenderVector runs the full layout pipeline against the vector metric
// profile and assembles a complete SVG document.
func RenderVector(tree raildiagram.Node, m railmetric.Metric[float64], opts DocOptions) (string, error) {
	c := newCanvas(opts.Debug)
	if opts.TintByDepth {
		c.track = true
	}
	c.arrowStyle = m.ArrowStyle
	c.arrowLen = m.ArrowLength
	c.arrowCross = m.ArrowCrossLength
	m.Drawer = c

	result, err := raillayout.Layout(tree, m)
	if err != nil {
		return "", err
	}
	width, height, err := raillayout.Emit(result, m)
	if err != nil {
		return "", err
	}

	if opts.TintByDepth {
		palette, err := tintPalette(maxChoiceDepth(result.Root), opts.AccentColor)
		if err != nil {
			return "", err
		}
		applyTint(c, choiceDepths(result.Root), palette)
	}

	return buildDocument(c.String(), width, height, opts.Title, opts.Description, opts.CSSClass, opts.CSSStyle)
}
