package jsrunner

import (
	"context"
	"fmt"

	"github.com/dop251/goja"
)

type gojaRunner struct {
	vm *goja.Runtime
}

type gojaValue struct {
	val goja.Value
}

// NewJSRunner returns a goja-backed JSRunner. Each call returns a fresh
// interpreter with its own global scope.
func NewJSRunner() JSRunner {
	return &gojaRunner{vm: goja.New()}
}

func (g *gojaRunner) Engine() Engine { return Goja }

func (g *gojaRunner) MustGet(key string) (JSValue, error) {
	v := g.vm.Get(key)
	if v == nil || goja.IsUndefined(v) {
		return nil, fmt.Errorf("key %q not found in global scope", key)
	}
	return &gojaValue{val: v}, nil
}

func (g *gojaRunner) RunString(code string) (_ JSValue, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	v, err := g.vm.RunString(code)
	if err != nil {
		return nil, err
	}
	return &gojaValue{val: v}, nil
}

func (g *gojaRunner) NewObject() JSObject {
	return &gojaValue{val: g.vm.NewObject()}
}

func (g *gojaRunner) Set(name string, value any) error {
	return g.vm.Set(name, value)
}

func (g *gojaRunner) WaitPromise(ctx context.Context, val JSValue) (any, error) {
	gv, ok := val.(*gojaValue)
	if !ok {
		return val.Export(), nil
	}
	promise, ok := gv.val.Export().(*goja.Promise)
	if !ok {
		return gv.Export(), nil
	}

	resultChan := make(chan any, 1)
	errorChan := make(chan error, 1)
	go func() {
		switch promise.State() {
		case goja.PromiseStateFulfilled:
			resultChan <- exportGoja(promise.Result())
		case goja.PromiseStateRejected:
			errorChan <- fmt.Errorf("promise rejected: %v", promise.Result())
		default:
			errorChan <- fmt.Errorf("goja engine does not drive an event loop; promise left pending")
		}
	}()

	select {
	case result := <-resultChan:
		return result, nil
	case err := <-errorChan:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (v *gojaValue) String() string {
	return v.val.String()
}

func (v *gojaValue) Export() any {
	return exportGoja(v.val)
}

func exportGoja(v goja.Value) any {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	return v.Export()
}
