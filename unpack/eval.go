package unpack

import (
	"errors"
	"fmt"
	"time"

	"github.com/dop251/goja"
)

// EvalTimeout bounds how long a packed script may run inside Eval.
var EvalTimeout = 2 * time.Second

// Eval runs the first packed block in a JavaScript runtime whose eval only records
// its argument, and returns what the packer tried to evaluate.
func Eval(script string) (string, error) {
	loc := headerPattern.FindStringIndex(script)
	if loc == nil {
		return "", ErrNotPacked
	}

	vm := goja.New()

	var (
		captured string
		called   bool
	)
	_ = vm.Set("eval", func(call goja.FunctionCall) goja.Value {
		if !called {
			captured = call.Argument(0).String()
			called = true
		}
		return goja.Undefined()
	})

	timer := time.AfterFunc(EvalTimeout, func() {
		vm.Interrupt("timeout")
	})
	defer timer.Stop()

	// Code after the packed block may reference browser globals, so a runtime
	// error is only fatal when eval was never reached.
	_, err := vm.RunString(script[loc[0]:])
	if called {
		return captured, nil
	}

	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		return "", fmt.Errorf("evaluate packed script: %w", err)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrMalformed, err)
	}
	return "", fmt.Errorf("%w: eval was never called", ErrMalformed)
}
