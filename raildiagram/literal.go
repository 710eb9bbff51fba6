package raildiagram

import (
	"go.uber.org/multierr"
)

// FromLiteral turns a data-literal tree — built from nil, string, []any,
// and map[string]any per the shape below — into a typed Node tree. The
// surface syntax that produces these literals lives outside this package;
// FromLiteral is the schema boundary the core exposes to an external
// loader, and to any embedder who already has an equivalent Go value (for
// example, a value produced by unmarshaling JSON or YAML into
// map[string]any).
//
// Sugar: nil -> Skip; a string -> Terminal; a []any -> Sequence with
// BreakDefault joins. Everything else must be a map[string]any with a
// "tag" key naming one of: terminal, non_terminal, comment, sequence,
// stack, choice, optional, one_or_more, zero_or_more, barrier, group, skip.
//
// FromLiteral returns every LoadingError it finds (via go.uber.org/multierr),
// not just the first.
func FromLiteral(v any) (Node, error) {
	var errs error
	n := fromLiteral(v, nil, &errs)
	if errs != nil {
		return nil, errs
	}
	if err := Validate(n); err != nil {
		return nil, err
	}
	return n, nil
}

func fromLiteral(v any, path []any, errs *error) Node {
	switch x := v.(type) {
	case nil:
		return &Skip{}
	case string:
		return &Terminal{Text: x}
	case []any:
		children := make([]Node, len(x))
		for i, c := range x {
			children[i] = fromLiteral(c, append(path, i), errs)
		}
		return NewSequence(children)
	case map[string]any:
		return fromTaggedMap(x, path, errs)
	default:
		*errs = multierr.Append(*errs, newLoadingError(path, "unrecognized literal value of type %T", v))
		return &Skip{}
	}
}

func fromTaggedMap(m map[string]any, path []any, errs *error) Node {
	tag, _ := m["tag"].(string)
	switch tag {
	case "skip":
		return &Skip{}
	case "terminal":
		return &Terminal{Text: str(m, "text"), Href: str(m, "href"), Title: str(m, "title"), CSSClass: str(m, "css_class"), Payload: m["payload"]}
	case "non_terminal":
		return &NonTerminal{Text: str(m, "text"), Href: str(m, "href"), Title: str(m, "title"), CSSClass: str(m, "css_class"), Payload: m["payload"]}
	case "comment":
		return &Comment{Text: str(m, "text"), Href: str(m, "href"), Title: str(m, "title"), CSSClass: str(m, "css_class"), Payload: m["payload"]}
	case "sequence":
		items, _ := m["children"].([]any)
		children := make([]Node, len(items))
		for i, c := range items {
			children[i] = fromLiteral(c, append(path, "children", i), errs)
		}
		breaks := parseBreaks(m["breaks"], len(children), path, errs)
		return &Sequence{Children: children, Breaks: breaks}
	case "stack":
		items, _ := m["children"].([]any)
		children := make([]Node, len(items))
		for i, c := range items {
			children[i] = fromLiteral(c, append(path, "children", i), errs)
		}
		return &Stack{Children: children}
	case "choice":
		items, _ := m["children"].([]any)
		children := make([]Node, len(items))
		for i, c := range items {
			children[i] = fromLiteral(c, append(path, "children", i), errs)
		}
		def := intOf(m["default"])
		return &Choice{Children: children, Default: def}
	case "optional":
		return &Optional{
			Child:       fromLiteral(m["child"], append(path, "child"), errs),
			SkipDefault: boolOf(m["skip"]),
			SkipBottom:  boolOf(m["skip_bottom"]),
		}
	case "one_or_more":
		repeat := Node(&Skip{})
		if r, ok := m["repeat"]; ok {
			repeat = fromLiteral(r, append(path, "repeat"), errs)
		}
		return &OneOrMore{
			Body:      fromLiteral(m["body"], append(path, "body"), errs),
			Repeat:    repeat,
			RepeatTop: boolOf(m["repeat_top"]),
		}
	case "zero_or_more":
		repeat := Node(&Skip{})
		if r, ok := m["repeat"]; ok {
			repeat = fromLiteral(r, append(path, "repeat"), errs)
		}
		return &ZeroOrMore{
			Body:        fromLiteral(m["body"], append(path, "body"), errs),
			Repeat:      repeat,
			RepeatTop:   boolOf(m["repeat_top"]),
			SkipDefault: boolOf(m["skip"]),
			SkipBottom:  boolOf(m["skip_bottom"]),
		}
	case "barrier":
		return &Barrier{Child: fromLiteral(m["child"], append(path, "child"), errs)}
	case "group":
		return &Group{
			Child:    fromLiteral(m["child"], append(path, "child"), errs),
			Text:     str(m, "text"),
			Href:     str(m, "href"),
			Title:    str(m, "title"),
			CSSClass: str(m, "css_class"),
		}
	default:
		*errs = multierr.Append(*errs, newLoadingError(path, "unknown tag %q", tag))
		return &Skip{}
	}
}

func parseBreaks(v any, nChildren int, path []any, errs *error) []Break {
	if v == nil {
		if nChildren <= 1 {
			return nil
		}
		return make([]Break, nChildren-1)
	}
	switch b := v.(type) {
	case string:
		scalar := breakFromString(b, path, errs)
		if nChildren <= 1 {
			return nil
		}
		out := make([]Break, nChildren-1)
		for i := range out {
			out[i] = scalar
		}
		return out
	case []any:
		if nChildren > 1 && len(b) != nChildren-1 {
			*errs = multierr.Append(*errs, newLoadingError(append(path, "breaks"), "breaks length %d does not match children-1 (%d)", len(b), nChildren-1))
		}
		out := make([]Break, len(b))
		for i, e := range b {
			s, _ := e.(string)
			out[i] = breakFromString(s, append(path, "breaks", i), errs)
		}
		return out
	default:
		*errs = multierr.Append(*errs, newLoadingError(append(path, "breaks"), "breaks must be a string or a list of strings, got %T", v))
		return nil
	}
}

func breakFromString(s string, path []any, errs *error) Break {
	switch s {
	case "HARD":
		return BreakHard
	case "SOFT":
		return BreakSoft
	case "NO_BREAK":
		return BreakNoBreak
	case "DEFAULT", "":
		return BreakDefault
	default:
		*errs = multierr.Append(*errs, newLoadingError(path, "unknown break kind %q", s))
		return BreakDefault
	}
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func boolOf(v any) bool {
	b, _ := v.(bool)
	return b
}

func intOf(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
