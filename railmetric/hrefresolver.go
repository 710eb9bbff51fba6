package railmetric

import (
	"fmt"

	"github.com/go-railroad/diagram/lib/jsrunner"
	"github.com/go-railroad/diagram/raildiagram"
)

// ScriptHrefResolver resolves hyperlinks by calling a user-supplied
// JavaScript function, for CLI callers that want to script href/title
// derivation without writing Go. It is never wired into the core library
// API — only into cmd/railroad — keeping raildiagram/raillayout free of any
// scripting dependency.
//
// The script must define a top-level function named Fn taking
// (kind, text, payload) and returning either a string (the href) or an
// object {href, title}.
type ScriptHrefResolver struct {
	runner jsrunner.JSRunner
}

// NewScriptHrefResolver compiles source and verifies it exports a
// top-level Fn before accepting it.
func NewScriptHrefResolver(source string) (*ScriptHrefResolver, error) {
	runner := jsrunner.NewJSRunner()
	if _, err := runner.RunString(source); err != nil {
		return nil, fmt.Errorf("failed to evaluate href resolver script: %w", err)
	}
	if _, err := runner.MustGet("Fn"); err != nil {
		return nil, fmt.Errorf("href resolver script must define a top-level Fn: %w", err)
	}
	return &ScriptHrefResolver{runner: runner}, nil
}

func (s *ScriptHrefResolver) Resolve(kind raildiagram.Kind, text string, payload any) (string, string, error) {
	// jsrunner.JSRunner has no bare function-call primitive, so invoke Fn
	// by generating a call expression against the already-bound global.
	result, err := s.runner.RunString(fmt.Sprintf(
		"Fn(%q, %q, %s)", kind.String(), text, payloadLiteral(payload)))
	if err != nil {
		return "", "", err
	}

	switch v := result.Export().(type) {
	case string:
		return v, "", nil
	case map[string]any:
		href, _ := v["href"].(string)
		title, _ := v["title"].(string)
		return href, title, nil
	case nil:
		return "", "", nil
	default:
		return "", "", fmt.Errorf("href script returned unexpected type %T", v)
	}
}

// payloadLiteral renders payload as a JS literal for splicing into the Fn
// call. Only the handful of JSON-literal-shaped payload types FromLiteral
// can produce are supported; anything else becomes null, since a resolver
// can always read the original payload back through a closure instead.
func payloadLiteral(payload any) string {
	switch v := payload.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", v)
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return fmt.Sprintf("%g", v)
	case int:
		return fmt.Sprintf("%d", v)
	default:
		return "null"
	}
}
