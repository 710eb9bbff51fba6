package raillayout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-railroad/diagram/raildiagram"
	"github.com/go-railroad/diagram/raillayout"
	"github.com/go-railroad/diagram/railmetric"
)

func TestMeasureSkipIsZeroExtent(t *testing.T) {
	t.Parallel()

	m := railmetric.DefaultVector()
	laid, err := raillayout.Measure[float64](&raildiagram.Skip{}, m)
	require.NoError(t, err)
	rec := laid.Rec()
	assert.Zero(t, rec.Width)
	assert.Zero(t, rec.Up)
	assert.Zero(t, rec.Down)
}

func TestMeasureTerminalHasPositiveExtent(t *testing.T) {
	t.Parallel()

	m := railmetric.DefaultVector()
	laid, err := raillayout.Measure[float64](&raildiagram.Terminal{Text: "INT"}, m)
	require.NoError(t, err)
	rec := laid.Rec()
	assert.Greater(t, rec.Width, 0.0)
	assert.Greater(t, rec.Up+rec.Down, 0.0)
}

func TestBarrierIsTransparentToMeasurement(t *testing.T) {
	t.Parallel()

	m := railmetric.DefaultVector()
	child := &raildiagram.Terminal{Text: "expr"}
	plain, err := raillayout.Measure[float64](child, m)
	require.NoError(t, err)
	wrapped, err := raillayout.Measure[float64](&raildiagram.Barrier{Child: child}, m)
	require.NoError(t, err)

	assert.Equal(t, plain.Rec(), wrapped.Rec())
}

func TestMeasureSequenceWidthIsAdditive(t *testing.T) {
	t.Parallel()

	m := railmetric.DefaultVector()
	seq := raildiagram.NewSequence([]raildiagram.Node{
		&raildiagram.Terminal{Text: "a"},
		&raildiagram.Terminal{Text: "b"},
	}, raildiagram.BreakNoBreak)

	laid, err := raillayout.Measure[float64](seq, m)
	require.NoError(t, err)

	a, err := raillayout.Measure[float64](&raildiagram.Terminal{Text: "a"}, m)
	require.NoError(t, err)
	b, err := raillayout.Measure[float64](&raildiagram.Terminal{Text: "b"}, m)
	require.NoError(t, err)

	assert.InDelta(t, a.Rec().Width+b.Rec().Width+m.HorizontalSeparation, laid.Rec().Width, 1e-9)
}

func TestWrappingSplitsOverlongSequenceIntoAStack(t *testing.T) {
	t.Parallel()

	m := railmetric.DefaultVector()
	m.MaxWidth = 200
	m.TextMeasure = widthFixedMeasure{width: 80}

	children := make([]raildiagram.Node, 10)
	for i := range children {
		children[i] = &raildiagram.Terminal{Text: "x"}
	}
	seq := raildiagram.NewSequence(children, raildiagram.BreakSoft)

	laid, err := raillayout.Measure[float64](seq, m)
	require.NoError(t, err)
	assert.Equal(t, raildiagram.KindStack, laid.Kind())

	stack := laid.(*raillayout.LStack[float64])
	for _, row := range stack.Rows {
		assert.LessOrEqual(t, row.Rec().Width, m.MaxWidth+90)
	}
}

func TestOptionalLowersToTwoChildChoice(t *testing.T) {
	t.Parallel()

	m := railmetric.DefaultVector()
	opt := &raildiagram.Optional{Child: &raildiagram.Terminal{Text: "DISTINCT"}}
	laid, err := raillayout.Measure[float64](opt, m)
	require.NoError(t, err)
	choice, ok := laid.(*raillayout.LChoice[float64])
	require.True(t, ok)
	assert.Len(t, choice.Children, 2)
}

type widthFixedMeasure struct{ width int }

func (w widthFixedMeasure) Measure(_ raildiagram.Kind, _ string) (int, error) {
	return w.width, nil
}

func TestWrappingRowCountIsDeterministic(t *testing.T) {
	t.Parallel()

	m := railmetric.DefaultVector()
	m.MaxWidth = 200
	m.TextMeasure = widthFixedMeasure{width: 80}

	children := make([]raildiagram.Node, 10)
	for i := range children {
		children[i] = &raildiagram.Terminal{Text: "x"}
	}
	seq := raildiagram.NewSequence(children, raildiagram.BreakSoft)

	laid, err := raillayout.Measure[float64](seq, m)
	require.NoError(t, err)
	stack, ok := laid.(*raillayout.LStack[float64])
	require.True(t, ok)
	// Each terminal measures wider than half the advisory width, so no
	// two fit on one line.
	assert.Len(t, stack.Rows, 10)
}

func TestHardBreakSplitsRegardlessOfWidth(t *testing.T) {
	t.Parallel()

	m := railmetric.DefaultVector()
	m.MaxWidth = 0 // unbounded

	seq := raildiagram.NewSequence([]raildiagram.Node{
		&raildiagram.Terminal{Text: "a"},
		&raildiagram.Terminal{Text: "b"},
	}, raildiagram.BreakHard)

	laid, err := raillayout.Measure[float64](seq, m)
	require.NoError(t, err)
	stack, ok := laid.(*raillayout.LStack[float64])
	require.True(t, ok)
	assert.Len(t, stack.Rows, 2)
}

func TestDefaultBreakIsNoBreakInsideChoice(t *testing.T) {
	t.Parallel()

	m := railmetric.DefaultVector()
	m.MaxWidth = 50
	m.TextMeasure = widthFixedMeasure{width: 80}

	inner := raildiagram.NewSequence([]raildiagram.Node{
		&raildiagram.Terminal{Text: "a"},
		&raildiagram.Terminal{Text: "b"},
	}) // DEFAULT joins
	choice := &raildiagram.Choice{Children: []raildiagram.Node{inner}, Default: 0}

	laid, err := raillayout.Measure[float64](choice, m)
	require.NoError(t, err)
	lchoice := laid.(*raillayout.LChoice[float64])
	assert.Equal(t, raildiagram.KindSequence, lchoice.Children[0].Kind(),
		"DEFAULT joins inside a choice never wrap, however narrow the advisory width")
}

func TestStackExitSitsBelowEntry(t *testing.T) {
	t.Parallel()

	m := railmetric.DefaultVector()
	stack := &raildiagram.Stack{Children: []raildiagram.Node{
		&raildiagram.Terminal{Text: "a"},
		&raildiagram.Terminal{Text: "b"},
	}}
	laid, err := raillayout.Measure[float64](stack, m)
	require.NoError(t, err)
	rec := laid.Rec()
	assert.Zero(t, rec.EntryY)
	assert.Greater(t, rec.ExitY, 0.0)
	assert.LessOrEqual(t, rec.ExitY, rec.Down)
}
