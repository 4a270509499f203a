// Package interpreter drives evaluation of resolved Lox syntax trees.
package interpreter

import (
	"fmt"
	"io"
	"os"
	"time"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

// Interpreter executes statements against a persistent global environment.
// Variable references resolved by the static pass are read through the
// locals side table; everything else is looked up by name in globals at
// run time, which is what lets top-level code call functions defined
// later in the same script or a later interactive entry.
type Interpreter struct {
	globals *runtime.Environment
	locals  map[ast.Expression]int
	stdout  io.Writer
}

// New returns an interpreter with the native functions installed.
func New() *Interpreter {
	i := &Interpreter{
		globals: runtime.NewEnvironment(nil),
		locals:  make(map[ast.Expression]int),
		stdout:  os.Stdout,
	}
	i.globals.Define("clock", &runtime.NativeFunctionValue{
		Name:  "clock",
		Arity: 0,
		Impl: func(args []runtime.Value) (runtime.Value, error) {
			return runtime.NumberValue{Val: float64(time.Now().UnixMilli()) / 1000.0}, nil
		},
	})
	return i
}

// SetOutput redirects print statement output, primarily for tests.
func (i *Interpreter) SetOutput(w io.Writer) {
	i.stdout = w
}

// GlobalEnvironment returns the interpreter's global environment.
func (i *Interpreter) GlobalEnvironment() *runtime.Environment {
	return i.globals
}

// Resolve records the scope distance for a variable reference. The
// resolver calls this once per reference before execution begins.
func (i *Interpreter) Resolve(expr ast.Expression, depth int) {
	i.locals[expr] = depth
}

// Interpret executes statements in order and returns the final
// statement's value, so an interactive session can echo results.
// Only expression statements carry a value; every other form, and the
// empty program, yields nil.
func (i *Interpreter) Interpret(statements []ast.Statement) (runtime.Value, error) {
	var last runtime.Value = runtime.NilValue{}
	for _, stmt := range statements {
		if exprStmt, ok := stmt.(*ast.ExpressionStmt); ok {
			value, err := i.evaluate(exprStmt.Expr, i.globals)
			if err != nil {
				return nil, err
			}
			last = value
			continue
		}
		last = runtime.NilValue{}
		ctl, err := i.execute(stmt, i.globals)
		if err != nil {
			return nil, err
		}
		if ctl.kind == controlReturn {
			return nil, fmt.Errorf("internal error: return escaped to top level")
		}
	}
	return last, nil
}

//--------------------------------------------------------------------------
// Statement outcomes

// control is the outcome of executing a statement: plain completion, or
// an unwinding return carrying the value for the enclosing call. Return
// travels through this channel rather than the error one because it is
// ordinary control flow, not a failure.
type control struct {
	kind  controlKind
	value runtime.Value
}

type controlKind int

const (
	controlNone controlKind = iota
	controlReturn
)

func returning(value runtime.Value) control {
	return control{kind: controlReturn, value: value}
}
