// Package jsrunner evaluates embedder-supplied JavaScript behind a small
// interface, backed by the github.com/dop251/goja pure-Go interpreter
// (js_goja.go). The interface keeps the scripting engine swappable
// without leaking goja types to callers.
package jsrunner

import "context"

// Engine names which backend produced a JSRunner.
type Engine int

const (
	Goja Engine = iota // a pure-Go ECMAScript interpreter
)

// JSValue is a value that came out of the JS engine.
type JSValue interface {
	String() string
	Export() any
}

// JSObject is a JSValue known to be an object, usable as a Set target.
type JSObject interface {
	JSValue
}

// JSRunner evaluates JavaScript and exchanges values with Go.
type JSRunner interface {
	Engine() Engine
	RunString(code string) (JSValue, error)
	MustGet(key string) (JSValue, error)
	NewObject() JSObject
	Set(name string, value any) error
	WaitPromise(ctx context.Context, val JSValue) (any, error)
}
