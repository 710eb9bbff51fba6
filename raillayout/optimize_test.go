package raillayout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-railroad/diagram/raildiagram"
	"github.com/go-railroad/diagram/raillayout"
	"github.com/go-railroad/diagram/railmetric"
)

func skipTopOptional(text string) raildiagram.Node {
	return &raildiagram.Optional{Child: &raildiagram.Terminal{Text: text}, SkipDefault: false, SkipBottom: false}
}

func TestOptimizeFusesAdjacentSameSideBypasses(t *testing.T) {
	t.Parallel()

	m := railmetric.DefaultVector()
	seq := raildiagram.NewSequence([]raildiagram.Node{
		skipTopOptional("A"),
		skipTopOptional("B"),
	}, raildiagram.BreakNoBreak)

	measured, err := raillayout.Measure[float64](seq, m)
	require.NoError(t, err)
	optimized := raillayout.Optimize(measured, m)

	sequence, ok := optimized.(*raillayout.LSequence[float64])
	require.True(t, ok)
	require.Len(t, sequence.Children, 1)
	fused, ok := sequence.Children[0].(*raillayout.LFusedBypass[float64])
	require.True(t, ok)
	assert.Len(t, fused.Bodies, 2)
	assert.True(t, fused.SkipTop)
}

func TestBarrierBlocksFusion(t *testing.T) {
	t.Parallel()

	m := railmetric.DefaultVector()
	seq := raildiagram.NewSequence([]raildiagram.Node{
		skipTopOptional("A"),
		&raildiagram.Barrier{Child: skipTopOptional("B")},
	}, raildiagram.BreakNoBreak)

	measured, err := raillayout.Measure[float64](seq, m)
	require.NoError(t, err)
	optimized := raillayout.Optimize(measured, m)

	sequence, ok := optimized.(*raillayout.LSequence[float64])
	require.True(t, ok)
	require.Len(t, sequence.Children, 2)

	_, stillChoice := sequence.Children[0].(*raillayout.LChoice[float64])
	assert.True(t, stillChoice, "the un-fused optional should remain a plain Choice")

	barrier, ok := sequence.Children[1].(*raillayout.LBarrier[float64])
	require.True(t, ok)
	_, innerIsChoice := barrier.Child.(*raillayout.LChoice[float64])
	assert.True(t, innerIsChoice)
}
