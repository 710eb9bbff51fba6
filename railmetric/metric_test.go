package railmetric_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-railroad/diagram/raildiagram"
	"github.com/go-railroad/diagram/railmetric"
)

func TestHeuristicTextMeasureScalesComments(t *testing.T) {
	t.Parallel()

	h := railmetric.DefaultHeuristicTextMeasure
	terminalWidth, err := h.Measure(raildiagram.KindTerminal, "hello")
	assert.NoError(t, err)
	commentWidth, err := h.Measure(raildiagram.KindComment, "hello")
	assert.NoError(t, err)
	assert.Less(t, commentWidth, terminalWidth)
}

func TestGridTextMeasureIsOneCellPerRune(t *testing.T) {
	t.Parallel()

	w, err := railmetric.GridTextMeasure{}.Measure(raildiagram.KindTerminal, "abc")
	assert.NoError(t, err)
	assert.Equal(t, 3, w)
}

func TestMaxAndSum(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5, railmetric.Max(5, 3))
	assert.Equal(t, 3.5, railmetric.Max(1.0, 3.5))
	assert.Equal(t, 6, railmetric.Sum([]int{1, 2, 3}))
}

func TestBoxMetricsDispatchesByKind(t *testing.T) {
	t.Parallel()

	m := railmetric.DefaultVector()
	hpad, _, _ := m.BoxMetrics(raildiagram.KindComment)
	assert.Equal(t, m.CommentHPad, hpad)
}
