package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

func (i *Interpreter) evaluateCall(expr *ast.CallExpr, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluate(expr.Callee, env)
	if err != nil {
		return nil, err
	}
	arguments := make([]runtime.Value, 0, len(expr.Arguments))
	for _, arg := range expr.Arguments {
		value, err := i.evaluate(arg, env)
		if err != nil {
			return nil, err
		}
		arguments = append(arguments, value)
	}

	switch fn := callee.(type) {
	case *runtime.FunctionValue:
		if len(arguments) != fn.Arity() {
			return nil, runtime.NewError(expr.Paren, "Expected %d arguments but got %d.", fn.Arity(), len(arguments))
		}
		return i.callFunction(fn, arguments)
	case *runtime.NativeFunctionValue:
		if len(arguments) != fn.Arity {
			return nil, runtime.NewError(expr.Paren, "Expected %d arguments but got %d.", fn.Arity, len(arguments))
		}
		return fn.Impl(arguments)
	case *runtime.ClassValue:
		if len(arguments) != fn.Arity() {
			return nil, runtime.NewError(expr.Paren, "Expected %d arguments but got %d.", fn.Arity(), len(arguments))
		}
		return i.instantiate(fn, arguments)
	default:
		return nil, runtime.NewError(expr.Paren, "Can only call functions and classes.")
	}
}

// callFunction binds arguments in a fresh child of the captured closure
// and runs the body. Initializers always yield the instance, whatever
// the body's return did.
func (i *Interpreter) callFunction(fn *runtime.FunctionValue, arguments []runtime.Value) (runtime.Value, error) {
	env := runtime.NewEnvironment(fn.Closure)
	for idx, param := range fn.Declaration.Params {
		env.Define(param.Lexeme, arguments[idx])
	}

	ctl, err := i.executeBlock(fn.Declaration.Body, env)
	if err != nil {
		return nil, err
	}
	if fn.IsInitializer {
		return fn.Closure.GetAt(0, "this")
	}
	if ctl.kind == controlReturn {
		return ctl.value, nil
	}
	return runtime.NilValue{}, nil
}

// instantiate allocates the instance first, then runs init bound to it,
// so a body that stores this somewhere hands out the same object the
// caller receives.
func (i *Interpreter) instantiate(class *runtime.ClassValue, arguments []runtime.Value) (runtime.Value, error) {
	instance := runtime.NewInstance(class)
	if initializer := class.FindMethod("init"); initializer != nil {
		if _, err := i.callFunction(initializer.Bind(instance), arguments); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// evaluateSuper starts method lookup at the superclass of the class whose
// body lexically contains the expression. That class was captured in the
// hidden super frame when the declaration executed, so the search origin
// does not move when the method runs on an instance of a deeper subclass.
func (i *Interpreter) evaluateSuper(expr *ast.SuperExpr, env *runtime.Environment) (runtime.Value, error) {
	distance, ok := i.locals[expr]
	if !ok {
		return nil, fmt.Errorf("internal error: unresolved 'super' expression")
	}
	superValue, err := env.GetAt(distance, "super")
	if err != nil {
		return nil, err
	}
	superclass, ok := superValue.(*runtime.ClassValue)
	if !ok {
		return nil, fmt.Errorf("internal error: 'super' bound to %s", runtime.Stringify(superValue))
	}

	// The implicit this frame sits directly inside the super frame.
	objectValue, err := env.GetAt(distance-1, "this")
	if err != nil {
		return nil, err
	}
	instance, ok := objectValue.(*runtime.InstanceValue)
	if !ok {
		return nil, fmt.Errorf("internal error: 'this' bound to %s", runtime.Stringify(objectValue))
	}

	method := superclass.FindMethod(expr.Method.Lexeme)
	if method == nil {
		return nil, runtime.NewError(expr.Method, "Undefined property '%s'.", expr.Method.Lexeme)
	}
	return method.Bind(instance), nil
}
