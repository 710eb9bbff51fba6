package railtext

import (
	"github.com/go-railroad/diagram/raildiagram"
	"github.com/go-railroad/diagram/raillayout"
	"github.com/go-railroad/diagram/railmetric"
)

// Options holds the character-grid-only rendering knobs. Debug makes the
// drawer collect the placement pass's path annotations; RenderText
// returns only the grid, so the collected paths are not part of its
// output, and nothing is stamped into the grid for them.
type Options struct {
	Debug bool
}

// RenderText runs the full layout pipeline against the text metric profile
// and returns the grid as newline-joined rows.
func RenderText(tree raildiagram.Node, m railmetric.Metric[int], opts Options) (string, error) {
	result, err := raillayout.Layout(tree, m)
	if err != nil {
		return "", err
	}
	rec := result.Root.Rec()

	// One marker-span cell each side plus the end marker's own column.
	d := newGridDrawer(rec.Width+3, rec.Height(), opts.Debug)
	d.arrowStyle = m.ArrowStyle
	m.Drawer = d

	if _, _, err := raillayout.Emit(result, m); err != nil {
		return "", err
	}
	return d.grid.String(), nil
}
