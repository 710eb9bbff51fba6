package raildiagram

import (
	"fmt"
	"strings"

	"golang.org/x/xerrors"
)

// LoadingError is the only error kind the core reports for a malformed
// input tree: unknown tag, wrong field type, out-of-range default index,
// a breaks-length mismatch, or an empty required field. Path names the
// location inside the tree, outermost key/index first.
type LoadingError struct {
	Message string
	Path    []any
}

func (e *LoadingError) Error() string {
	if len(e.Path) == 0 {
		return e.Message
	}
	parts := make([]string, len(e.Path))
	for i, p := range e.Path {
		parts[i] = fmt.Sprint(p)
	}
	return fmt.Sprintf("%s (at %s)", e.Message, strings.Join(parts, "."))
}

func newLoadingError(path []any, format string, args ...any) *LoadingError {
	return &LoadingError{Message: fmt.Sprintf(format, args...), Path: append([]any(nil), path...)}
}

// EmbedderError wraps an error returned by an embedder-supplied callback
// (text measurement or href resolution). Those callbacks are not
// supposed to fail; when one returns an error, the render fails with
// this error. A panic inside a callback is not recovered and reaches the
// caller unchanged.
type EmbedderError struct {
	Callback string // "text_measure" or "href_resolver"
	Cause    error
}

func (e *EmbedderError) Error() string {
	return fmt.Sprintf("embedder callback %q failed: %v", e.Callback, e.Cause)
}

func (e *EmbedderError) Unwrap() error { return e.Cause }

// NewEmbedderError wraps cause with the failing callback's name. Cause is
// built with xerrors, so it records the originating frame and %+v on
// Cause (errors.Unwrap of the result) prints it; %+v on the result itself
// prints only its Error text.
func NewEmbedderError(callback string, cause error) error {
	return &EmbedderError{Callback: callback, Cause: xerrors.Errorf("%s: %w", callback, cause)}
}
