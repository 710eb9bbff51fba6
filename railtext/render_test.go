package railtext_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-railroad/diagram/raildiagram"
	"github.com/go-railroad/diagram/railmetric"
	"github.com/go-railroad/diagram/railtext"
)

func TestRenderTextSingleTerminal(t *testing.T) {
	t.Parallel()

	grid, err := railtext.RenderText(&raildiagram.Terminal{Text: "INT"}, railmetric.DefaultText(), railtext.Options{})
	require.NoError(t, err)

	assert.Contains(t, grid, "INT")
	assert.Contains(t, grid, "╭")
	assert.Contains(t, grid, "╯")
}

func TestRenderTextLoopHasTopAndBottomLines(t *testing.T) {
	t.Parallel()

	loop := &raildiagram.OneOrMore{
		Body:   &raildiagram.NonTerminal{Text: "expr"},
		Repeat: &raildiagram.Terminal{Text: ","},
	}
	grid, err := railtext.RenderText(loop, railmetric.DefaultText(), railtext.Options{})
	require.NoError(t, err)

	lines := strings.Split(grid, "\n")
	assert.Greater(t, len(lines), 1)
	assert.Contains(t, grid, "expr")
	assert.Contains(t, grid, ",")
}
