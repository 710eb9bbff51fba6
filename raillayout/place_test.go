package raillayout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-railroad/diagram/raildiagram"
	"github.com/go-railroad/diagram/raillayout"
	"github.com/go-railroad/diagram/railmetric"
)

// recordingDrawer counts primitive calls and remembers box positions, for
// asserting on placement without parsing back-end output.
type recordingDrawer struct {
	lines, arcs, boxes, texts, captions, markers int
	boxYs                                        []float64
	debugPaths                                   []string
}

func (d *recordingDrawer) Line(x1, y1, x2, y2 float64) { d.lines++ }
func (d *recordingDrawer) Arc(cx, cy, r float64, start, end float64, sweep bool) {
	d.arcs++
}
func (d *recordingDrawer) Box(x, y, w, h, r float64, cssClass, href, title string) {
	d.boxes++
	d.boxYs = append(d.boxYs, y)
}
func (d *recordingDrawer) Text(x, y, w, h float64, s, cssClass, href, title string) { d.texts++ }
func (d *recordingDrawer) GroupCaption(x, y float64, s string, href, title string)  { d.captions++ }
func (d *recordingDrawer) Arrow(x, y float64, leftward bool)                        {}
func (d *recordingDrawer) EndMarker(x, y, up, down float64, class railmetric.EndClass, start bool) {
	d.markers++
}
func (d *recordingDrawer) Debug(id string) { d.debugPaths = append(d.debugPaths, id) }

func renderInto(t *testing.T, tree raildiagram.Node, m railmetric.Metric[float64]) *recordingDrawer {
	t.Helper()
	d := &recordingDrawer{}
	m.Drawer = d
	_, _, err := raillayout.Render(tree, m)
	require.NoError(t, err)
	return d
}

func TestPlaceSingleTerminalEmitsOneBoxAndTwoMarkers(t *testing.T) {
	t.Parallel()

	d := renderInto(t, &raildiagram.Terminal{Text: "INT"}, railmetric.DefaultVector())
	assert.Equal(t, 1, d.boxes)
	assert.Equal(t, 1, d.texts)
	assert.Equal(t, 2, d.markers)
	assert.Zero(t, d.arcs)
}

func TestPlaceStackEmitsFourBendsPerRowJoin(t *testing.T) {
	t.Parallel()

	stack := &raildiagram.Stack{Children: []raildiagram.Node{
		&raildiagram.Terminal{Text: "a"},
		&raildiagram.Terminal{Text: "b"},
		&raildiagram.Terminal{Text: "c"},
	}}
	d := renderInto(t, stack, railmetric.DefaultVector())
	assert.Equal(t, 8, d.arcs, "each of the two row joins bends four times")
	assert.Equal(t, 3, d.boxes)
}

func TestPlaceChoiceBranchBoxesStraddleTheDefault(t *testing.T) {
	t.Parallel()

	choice := &raildiagram.Choice{
		Children: []raildiagram.Node{
			&raildiagram.Terminal{Text: "INT"},
			&raildiagram.Terminal{Text: "STR"},
			&raildiagram.Terminal{Text: "(expr)"},
		},
		Default: 1,
	}
	d := renderInto(t, choice, railmetric.DefaultVector())
	require.Len(t, d.boxYs, 3)
	// Emission order: default first, then branches above, then below.
	defaultY, aboveY, belowY := d.boxYs[0], d.boxYs[1], d.boxYs[2]
	assert.Less(t, aboveY, defaultY)
	assert.Greater(t, belowY, defaultY)
}

func TestPlaceDebugPathsAreStable(t *testing.T) {
	t.Parallel()

	seq := raildiagram.NewSequence([]raildiagram.Node{
		&raildiagram.Terminal{Text: "a"},
		&raildiagram.Terminal{Text: "b"},
	}, raildiagram.BreakNoBreak)

	first := renderInto(t, seq, railmetric.DefaultVector())
	second := renderInto(t, seq, railmetric.DefaultVector())
	assert.Equal(t, first.debugPaths, second.debugPaths)
	assert.Contains(t, first.debugPaths, "0")
	assert.Contains(t, first.debugPaths, "0.0")
	assert.Contains(t, first.debugPaths, "0.1")
}

func TestPlaceGroupEmitsCaption(t *testing.T) {
	t.Parallel()

	group := &raildiagram.Group{
		Child: &raildiagram.Terminal{Text: "x"},
		Text:  "operand",
	}
	d := renderInto(t, group, railmetric.DefaultVector())
	assert.Equal(t, 1, d.captions)
	assert.Equal(t, 2, d.boxes, "the terminal and the group rectangle")
}
