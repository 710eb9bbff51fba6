package raildiagram

import (
	"strings"

	"go.uber.org/multierr"
)

// Validate walks the tree and reports every LoadingError it finds, not just
// the first — mirroring how the rest of the pipeline runs each pass to
// completion. A nil return means the tree is well-formed. Use
// multierr.Errors(err) to recover the individual *LoadingError values.
func Validate(n Node) error {
	var errs error
	validate(n, nil, &errs)
	return errs
}

func validate(n Node, path []any, errs *error) {
	if n == nil {
		*errs = multierr.Append(*errs, newLoadingError(path, "nil node"))
		return
	}
	switch v := n.(type) {
	case *Skip:
		// no fields to check
	case *Terminal:
		validateText(v.Text, path, errs)
	case *NonTerminal:
		validateText(v.Text, path, errs)
	case *Comment:
		validateText(v.Text, path, errs)
	case *Sequence:
		validateSequence(v, path, errs)
	case *Stack:
		if len(v.Children) == 0 {
			*errs = multierr.Append(*errs, newLoadingError(path, "stack has no rows"))
		}
		for i, c := range v.Children {
			validate(c, append(path, "children", i), errs)
		}
	case *Choice:
		if len(v.Children) == 0 {
			*errs = multierr.Append(*errs, newLoadingError(path, "choice has no alternatives"))
		} else if v.Default < 0 || v.Default >= len(v.Children) {
			*errs = multierr.Append(*errs, newLoadingError(append(path, "default"), "default index %d out of range [0,%d)", v.Default, len(v.Children)))
		}
		for i, c := range v.Children {
			validate(c, append(path, "children", i), errs)
		}
	case *Optional:
		validate(v.Child, append(path, "child"), errs)
	case *OneOrMore:
		validate(v.Body, append(path, "body"), errs)
		if v.Repeat != nil {
			validate(v.Repeat, append(path, "repeat"), errs)
		}
	case *ZeroOrMore:
		validate(v.Body, append(path, "body"), errs)
		if v.Repeat != nil {
			validate(v.Repeat, append(path, "repeat"), errs)
		}
	case *Barrier:
		validate(v.Child, append(path, "child"), errs)
	case *Group:
		validateText(v.Text, path, errs)
		validate(v.Child, append(path, "child"), errs)
	default:
		*errs = multierr.Append(*errs, newLoadingError(path, "unknown node type %T", n))
	}
}

func validateSequence(v *Sequence, path []any, errs *error) {
	n := len(v.Children)
	if n > 1 && len(v.Breaks) != n-1 {
		*errs = multierr.Append(*errs, newLoadingError(append(path, "breaks"), "breaks length %d does not match children-1 (%d)", len(v.Breaks), n-1))
	}
	for i, c := range v.Children {
		validate(c, append(path, "children", i), errs)
	}
}

func validateText(text string, path []any, errs *error) {
	if text == "" {
		*errs = multierr.Append(*errs, newLoadingError(append(path, "text"), "text must not be empty"))
		return
	}
	if strings.ContainsAny(text, "\n\r") {
		*errs = multierr.Append(*errs, newLoadingError(append(path, "text"), "text must be single-line, got %q", text))
	}
}
