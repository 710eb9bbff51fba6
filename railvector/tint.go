package railvector

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"

	"github.com/go-railroad/diagram/raillayout"
)

// choiceDepths walks the laid tree assigning every node the number of
// Choice ancestors above it (the node's own Choice counting for its
// alternatives), keyed by the same path identifiers the placement pass
// hands to Drawer.Debug, so the tint post-pass can look a drawn element's
// depth up by its recorded path.
func choiceDepths(root raillayout.LNode[float64]) map[string]int {
	depths := make(map[string]int)
	walkDepths(root, "0", 0, depths)
	return depths
}

func walkDepths(n raillayout.LNode[float64], path string, depth int, out map[string]int) {
	out[path] = depth
	switch v := n.(type) {
	case *raillayout.LSequence[float64]:
		for i, c := range v.Children {
			walkDepths(c, fmt.Sprintf("%s.%d", path, i), depth, out)
		}
	case *raillayout.LStack[float64]:
		for i, r := range v.Rows {
			walkDepths(r, fmt.Sprintf("%s.%d", path, i), depth, out)
		}
	case *raillayout.LChoice[float64]:
		for i, c := range v.Children {
			walkDepths(c, fmt.Sprintf("%s.%d", path, i), depth+1, out)
		}
	case *raillayout.LOneOrMore[float64]:
		walkDepths(v.Body, path+".0", depth, out)
		walkDepths(v.Repeat, path+".1", depth, out)
	case *raillayout.LBarrier[float64]:
		walkDepths(v.Child, path+".0", depth, out)
	case *raillayout.LGroup[float64]:
		walkDepths(v.Child, path+".0", depth, out)
	case *raillayout.LFusedBypass[float64]:
		for i, b := range v.Bodies {
			walkDepths(b, fmt.Sprintf("%s.%d", path, i), depth, out)
		}
	}
}

// tintPalette builds one fill color per choice-nesting depth, perceptually
// evenly spaced in HCL so deep grammars stay legible. An accent color, if
// given, anchors the palette's hue; it must parse as a CSS color.
func tintPalette(maxDepth int, accent string) ([]string, error) {
	baseHue := 250.0
	if accent != "" {
		parsed, err := csscolorparser.Parse(accent)
		if err != nil {
			return nil, fmt.Errorf("invalid accent color %q: %w", accent, err)
		}
		h, _, _ := colorful.Color{R: parsed.R, G: parsed.G, B: parsed.B}.Hcl()
		baseHue = h
	}
	palette := make([]string, maxDepth+1)
	for i := range palette {
		hue := baseHue + float64(i)*360.0/float64(maxDepth+1)
		for hue >= 360 {
			hue -= 360
		}
		palette[i] = colorful.Hcl(hue, 0.25, 0.92).Clamped().Hex()
	}
	return palette, nil
}

// applyTint rewrites every box element on the canvas with a fill drawn
// from the palette at the element's choice depth. Depth 0 boxes (outside
// any Choice) keep the stylesheet's plain fill.
func applyTint(c *canvas, depths map[string]int, palette []string) {
	for i, el := range c.elements {
		if !strings.Contains(el, `class="rr-box`) {
			continue
		}
		if i >= len(c.debugIDs) {
			continue
		}
		depth := depths[c.debugIDs[i]]
		if depth <= 0 || len(palette) == 0 {
			continue
		}
		if depth >= len(palette) {
			depth = len(palette) - 1
		}
		c.elements[i] = strings.Replace(el, `class="rr-box`,
			fmt.Sprintf(`style="fill:%s" class="rr-box rr-tint-%d`, palette[depth], depth), 1)
	}
}

// maxChoiceDepth returns the deepest Choice nesting in the laid tree, for
// sizing the palette.
func maxChoiceDepth(root raillayout.LNode[float64]) int {
	maxDepth := 0
	var walk func(n raillayout.LNode[float64], depth int)
	walk = func(n raillayout.LNode[float64], depth int) {
		if depth > maxDepth {
			maxDepth = depth
		}
		switch v := n.(type) {
		case *raillayout.LSequence[float64]:
			for _, c := range v.Children {
				walk(c, depth)
			}
		case *raillayout.LStack[float64]:
			for _, r := range v.Rows {
				walk(r, depth)
			}
		case *raillayout.LChoice[float64]:
			for _, c := range v.Children {
				walk(c, depth+1)
			}
		case *raillayout.LOneOrMore[float64]:
			walk(v.Body, depth)
			walk(v.Repeat, depth)
		case *raillayout.LBarrier[float64]:
			walk(v.Child, depth)
		case *raillayout.LGroup[float64]:
			walk(v.Child, depth)
		case *raillayout.LFusedBypass[float64]:
			for _, b := range v.Bodies {
				walk(b, depth)
			}
		}
	}
	walk(root, 0)
	return maxDepth
}
