package railvector_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-railroad/diagram/raildiagram"
	"github.com/go-railroad/diagram/railmetric"
	"github.com/go-railroad/diagram/railvector"
)

func TestRenderVectorSingleTerminal(t *testing.T) {
	t.Parallel()

	svg, err := railvector.RenderVector(&raildiagram.Terminal{Text: "INT"}, railmetric.DefaultVector(), railvector.DocOptions{})
	require.NoError(t, err)

	assert.Contains(t, svg, "<svg")
	assert.Equal(t, 1, strings.Count(svg, "<text"))
	assert.Contains(t, svg, "INT")
	assert.Equal(t, 4, strings.Count(svg, `class="rr-end-complex"`)+strings.Count(svg, `class="rr-end-simple"`))
}

func TestRenderVectorEmitsTitleAndDescription(t *testing.T) {
	t.Parallel()

	svg, err := railvector.RenderVector(&raildiagram.Terminal{Text: "INT"}, railmetric.DefaultVector(), railvector.DocOptions{
		Title:       "int literal",
		Description: "An **integer** literal.",
	})
	require.NoError(t, err)

	assert.Contains(t, svg, "<title>int literal</title>")
	assert.Contains(t, svg, "<desc>An integer literal.</desc>")
}

func TestRenderVectorRejectsInvalidCSSColor(t *testing.T) {
	t.Parallel()

	_, err := railvector.RenderVector(&raildiagram.Terminal{Text: "INT"}, railmetric.DefaultVector(), railvector.DocOptions{
		CSSStyle: ".rr-box { fill: #zzzzzz; }",
	})
	assert.Error(t, err)
}
