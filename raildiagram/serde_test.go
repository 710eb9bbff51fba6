package raildiagram_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-railroad/diagram/raildiagram"
)

func TestSerialization(t *testing.T) {
	t.Parallel()

	orig := raildiagram.NewSequence([]raildiagram.Node{
		&raildiagram.Terminal{Text: "SELECT"},
		&raildiagram.Optional{Child: &raildiagram.Terminal{Text: "DISTINCT"}},
		&raildiagram.NonTerminal{Text: "expr"},
	}, raildiagram.BreakSoft)

	b, err := raildiagram.Serialize(orig)
	assert.NoError(t, err)

	var got raildiagram.Node
	err = raildiagram.Deserialize(b, &got)
	assert.NoError(t, err)

	seq, ok := got.(*raildiagram.Sequence)
	assert.True(t, ok)
	assert.Equal(t, 3, len(seq.Children))
	assert.Equal(t, []raildiagram.Break{raildiagram.BreakSoft, raildiagram.BreakSoft}, seq.Breaks)

	term, ok := seq.Children[0].(*raildiagram.Terminal)
	assert.True(t, ok)
	assert.Equal(t, "SELECT", term.Text)

	opt, ok := seq.Children[1].(*raildiagram.Optional)
	assert.True(t, ok)
	child, ok := opt.Child.(*raildiagram.Terminal)
	assert.True(t, ok)
	assert.Equal(t, "DISTINCT", child.Text)
}

func TestFromLiteralSugar(t *testing.T) {
	t.Parallel()

	n, err := raildiagram.FromLiteral([]any{"INT", nil, "STR"})
	assert.NoError(t, err)

	seq, ok := n.(*raildiagram.Sequence)
	assert.True(t, ok)
	assert.Equal(t, 3, len(seq.Children))
	_, isSkip := seq.Children[1].(*raildiagram.Skip)
	assert.True(t, isSkip)
}

func TestFromLiteralValidatesBreaksLength(t *testing.T) {
	t.Parallel()

	_, err := raildiagram.FromLiteral(map[string]any{
		"tag":      "sequence",
		"children": []any{"a", "b", "c"},
		"breaks":   []any{"SOFT"},
	})
	assert.Error(t, err)
}

func TestFromLiteralValidatesChoiceDefault(t *testing.T) {
	t.Parallel()

	_, err := raildiagram.FromLiteral(map[string]any{
		"tag":      "choice",
		"children": []any{"a", "b"},
		"default":  5,
	})
	assert.Error(t, err)
}

func TestLowerOptionalIdempotent(t *testing.T) {
	t.Parallel()

	o := &raildiagram.Optional{Child: &raildiagram.Terminal{Text: "DISTINCT"}}
	once := raildiagram.Lower(o)
	twice := raildiagram.Lower(once)

	c1, ok := once.(*raildiagram.Choice)
	assert.True(t, ok)
	c2, ok := twice.(*raildiagram.Choice)
	assert.True(t, ok)
	assert.Equal(t, c1.Default, c2.Default)
	assert.Equal(t, len(c1.Children), len(c2.Children))
}

func TestValidateRejectsEmptyText(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		node raildiagram.Node
	}{
		{"terminal", &raildiagram.Terminal{}},
		{"non-terminal", &raildiagram.NonTerminal{}},
		{"comment", &raildiagram.Comment{}},
		{"group caption", &raildiagram.Group{Child: &raildiagram.Terminal{Text: "x"}}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Error(t, raildiagram.Validate(tc.node))
		})
	}
}

func TestFromLiteralRejectsMissingText(t *testing.T) {
	t.Parallel()

	_, err := raildiagram.FromLiteral(map[string]any{"tag": "terminal"})
	assert.Error(t, err)
}
