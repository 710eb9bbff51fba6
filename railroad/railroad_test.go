package railroad_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-railroad/diagram/raildiagram"
	"github.com/go-railroad/diagram/railroad"
)

func TestRenderVectorSingleTerminal(t *testing.T) {
	t.Parallel()

	svg, err := railroad.RenderVector("INT", nil)
	require.NoError(t, err)

	assert.Contains(t, svg, "<svg")
	assert.Contains(t, svg, ">INT</text>")
	assert.Equal(t, 1, strings.Count(svg, "<rect"))
	// COMPLEX end class: two strokes per marker, two markers.
	assert.Equal(t, 4, strings.Count(svg, `class="rr-end-complex"`))
}

func TestRenderVectorOptionalHasBypassRail(t *testing.T) {
	t.Parallel()

	tree := []any{
		map[string]any{"tag": "optional", "child": "DISTINCT"},
		"x",
	}
	svg, err := railroad.RenderVector(tree, nil)
	require.NoError(t, err)

	assert.Contains(t, svg, "DISTINCT")
	assert.Contains(t, svg, ">x</text>")
	assert.GreaterOrEqual(t, strings.Count(svg, `class="rr-arc"`), 2,
		"the skip branch needs at least a departing and a rejoining bend")
}

func TestRenderVectorLoopWithSeparator(t *testing.T) {
	t.Parallel()

	tree := map[string]any{
		"tag":    "one_or_more",
		"body":   map[string]any{"tag": "non_terminal", "text": "expr"},
		"repeat": ",",
	}
	svg, err := railroad.RenderVector(tree, nil)
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(svg))
	require.NoError(t, err)

	var exprY, sepY float64
	doc.Find("text").Each(func(_ int, s *goquery.Selection) {
		y, _ := strconv.ParseFloat(s.AttrOr("y", ""), 64)
		switch s.Text() {
		case "expr":
			exprY = y
		case ",":
			sepY = y
		}
	})
	assert.Less(t, exprY, sepY, "the separator sits on the return line below the body")
	assert.GreaterOrEqual(t, strings.Count(svg, `class="rr-arc"`), 2)
}

func TestRenderVectorChoiceDefaultSitsOnMainLine(t *testing.T) {
	t.Parallel()

	tree := map[string]any{
		"tag":      "choice",
		"default":  1,
		"children": []any{"INT", "STR", "(expr)"},
	}
	svg, err := railroad.RenderVector(tree, nil)
	require.NoError(t, err)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(svg))
	require.NoError(t, err)

	ys := map[string]float64{}
	doc.Find("text").Each(func(_ int, s *goquery.Selection) {
		y, _ := strconv.ParseFloat(s.AttrOr("y", ""), 64)
		ys[s.Text()] = y
	})
	require.Contains(t, ys, "INT")
	require.Contains(t, ys, "STR")
	require.Contains(t, ys, "(expr)")
	assert.Less(t, ys["INT"], ys["STR"], "INT bulges above the default")
	assert.Greater(t, ys["(expr)"], ys["STR"], "(expr) bulges below the default")
}

func TestRenderVectorWrappingGrowsHeightNotWidth(t *testing.T) {
	t.Parallel()

	children := make([]any, 10)
	for i := range children {
		children[i] = "SOMEWHAT_LONG_TERMINAL"
	}
	tree := map[string]any{"tag": "sequence", "children": children, "breaks": "SOFT"}

	narrow, err := railroad.RenderVector(tree, &railroad.Settings{MaxWidth: 400})
	require.NoError(t, err)
	wide, err := railroad.RenderVector(tree, nil)
	require.NoError(t, err)

	nw, nh := viewBoxSize(t, narrow)
	ww, wh := viewBoxSize(t, wide)
	assert.Less(t, nw, ww, "wrapping must shrink the total width")
	assert.Greater(t, nh, wh, "wrapping must stack lines vertically")
}

func TestBarrierBlocksBypassFusion(t *testing.T) {
	t.Parallel()

	optional := func(text string) any {
		return map[string]any{"tag": "optional", "child": text}
	}
	fusable := []any{optional("A"), optional("B")}
	barred := []any{optional("A"), map[string]any{"tag": "barrier", "child": optional("B")}}

	fusedSVG, err := railroad.RenderVector(fusable, nil)
	require.NoError(t, err)
	barredSVG, err := railroad.RenderVector(barred, nil)
	require.NoError(t, err)

	assert.Greater(t,
		strings.Count(barredSVG, `class="rr-arc"`),
		strings.Count(fusedSVG, `class="rr-arc"`),
		"two distinct bypass rails need more bends than one fused rail")
}

func TestLoweringIdempotence(t *testing.T) {
	t.Parallel()

	child := func() raildiagram.Node { return &raildiagram.Terminal{Text: "x"} }
	direct := &raildiagram.Optional{Child: child()}
	lowered := &raildiagram.Choice{
		Children: []raildiagram.Node{&raildiagram.Skip{}, child()},
		Default:  1,
	}

	a, err := railroad.RenderVector(direct, nil)
	require.NoError(t, err)
	b, err := railroad.RenderVector(lowered, nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestZeroOrMoreLowersToOptionalOneOrMore(t *testing.T) {
	t.Parallel()

	direct := &raildiagram.ZeroOrMore{
		Body:   &raildiagram.Terminal{Text: "x"},
		Repeat: &raildiagram.Terminal{Text: ","},
	}
	lowered := &raildiagram.Optional{
		Child: &raildiagram.OneOrMore{
			Body:   &raildiagram.Terminal{Text: "x"},
			Repeat: &raildiagram.Terminal{Text: ","},
		},
	}

	a, err := railroad.RenderVector(direct, nil)
	require.NoError(t, err)
	b, err := railroad.RenderVector(lowered, nil)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRenderIsDeterministic(t *testing.T) {
	t.Parallel()

	tree := []any{
		"SELECT",
		map[string]any{"tag": "optional", "child": "DISTINCT"},
		map[string]any{
			"tag":    "one_or_more",
			"body":   map[string]any{"tag": "non_terminal", "text": "column"},
			"repeat": ",",
		},
	}
	first, err := railroad.RenderVector(tree, nil)
	require.NoError(t, err)
	second, err := railroad.RenderVector(tree, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	firstText, err := railroad.RenderText(tree, nil)
	require.NoError(t, err)
	secondText, err := railroad.RenderText(tree, nil)
	require.NoError(t, err)
	assert.Equal(t, firstText, secondText)
}

func TestRenderTextGridContainsAllTokens(t *testing.T) {
	t.Parallel()

	tree := []any{
		"SELECT",
		map[string]any{"tag": "non_terminal", "text": "column"},
	}
	grid, err := railroad.RenderText(tree, nil)
	require.NoError(t, err)

	assert.Contains(t, grid, "SELECT")
	assert.Contains(t, grid, "column")
	assert.Contains(t, grid, "╭", "terminal pills use rounded corners")
	assert.Contains(t, grid, "┌", "non-terminals use square corners")
}

func TestRenderVectorReverseKeepsShapeCount(t *testing.T) {
	t.Parallel()

	tree := []any{"a", map[string]any{"tag": "optional", "child": "b"}}
	forward, err := railroad.RenderVector(tree, nil)
	require.NoError(t, err)
	reversed, err := railroad.RenderVector(tree, &railroad.Settings{Reverse: true})
	require.NoError(t, err)

	assert.NotEqual(t, forward, reversed)
	assert.Equal(t, strings.Count(forward, "<rect"), strings.Count(reversed, "<rect"))
	assert.Equal(t, strings.Count(forward, "<path"), strings.Count(reversed, "<path"))
	assert.Equal(t, viewBoxWidth(t, forward), viewBoxWidth(t, reversed))
}

func TestRenderVectorRejectsMalformedLiteral(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		tree any
	}{
		{"unknown tag", map[string]any{"tag": "loop"}},
		{"default out of range", map[string]any{"tag": "choice", "default": 5, "children": []any{"a", "b"}}},
		{"breaks length mismatch", map[string]any{"tag": "sequence", "children": []any{"a", "b", "c"}, "breaks": []any{"SOFT"}}},
		{"multiline text", &raildiagram.Terminal{Text: "a\nb"}},
		{"empty terminal text", map[string]any{"tag": "terminal"}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := railroad.RenderVector(tc.tree, nil)
			assert.Error(t, err)
		})
	}
}

func TestRenderVectorTintByDepth(t *testing.T) {
	t.Parallel()

	tree := map[string]any{
		"tag":      "choice",
		"children": []any{"a", map[string]any{"tag": "choice", "children": []any{"b", "c"}}},
	}
	svg, err := railroad.RenderVector(tree, &railroad.Settings{TintByDepth: true})
	require.NoError(t, err)
	assert.Contains(t, svg, "rr-tint-")

	_, err = railroad.RenderVector(tree, &railroad.Settings{TintByDepth: true, AccentColor: "not-a-color"})
	assert.Error(t, err)
}

func viewBoxSize(t *testing.T, svg string) (w, h float64) {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(svg))
	require.NoError(t, err)
	vb := strings.Fields(doc.Find("svg").AttrOr("viewBox", ""))
	require.Len(t, vb, 4)
	w, err = strconv.ParseFloat(vb[2], 64)
	require.NoError(t, err)
	h, err = strconv.ParseFloat(vb[3], 64)
	require.NoError(t, err)
	return w, h
}

func viewBoxWidth(t *testing.T, svg string) float64 {
	t.Helper()
	w, _ := viewBoxSize(t, svg)
	return w
}
