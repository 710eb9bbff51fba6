package railroad

import (
	"oss.terrastruct.com/util-go/xdefer"

	"github.com/go-railroad/diagram/raildiagram"
	"github.com/go-railroad/diagram/railtext"
	"github.com/go-railroad/diagram/railvector"
)

// RenderVector renders tree as a complete SVG document. tree is either a
// typed raildiagram.Node or a data literal (nil, string, []any,
// map[string]any) per raildiagram.FromLiteral. A nil settings renders
// with every default.
func RenderVector(tree any, s *Settings) (_ string, err error) {
	defer xdefer.Errorf(&err, "failed to render vector diagram")

	node, err := coerce(tree)
	if err != nil {
		return "", err
	}
	opts := railvector.DocOptions{Debug: false}
	if s != nil {
		opts = railvector.DocOptions{
			Title:       s.Title,
			Description: s.Description,
			CSSClass:    s.CSSClass,
			CSSStyle:    s.CSSStyle,
			Debug:       s.Debug,
			TintByDepth: s.TintByDepth,
			AccentColor: s.AccentColor,
		}
	}
	return railvector.RenderVector(node, s.vectorMetric(), opts)
}

// RenderText renders tree as a character grid, returned as newline-joined
// rows. tree accepts the same shapes as RenderVector.
func RenderText(tree any, s *Settings) (_ string, err error) {
	defer xdefer.Errorf(&err, "failed to render text diagram")

	node, err := coerce(tree)
	if err != nil {
		return "", err
	}
	var opts railtext.Options
	if s != nil {
		opts.Debug = s.Debug
	}
	return railtext.RenderText(node, s.textMetric(), opts)
}

// coerce accepts either an already-typed tree or a data literal.
func coerce(tree any) (raildiagram.Node, error) {
	if n, ok := tree.(raildiagram.Node); ok {
		return n, nil
	}
	return raildiagram.FromLiteral(tree)
}
