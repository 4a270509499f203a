package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/token"
)

func (i *Interpreter) evaluate(expr ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return literalValue(e)
	case *ast.GroupingExpr:
		return i.evaluate(e.Expr, env)
	case *ast.UnaryExpr:
		return i.evaluateUnary(e, env)
	case *ast.BinaryExpr:
		return i.evaluateBinary(e, env)
	case *ast.LogicalExpr:
		return i.evaluateLogical(e, env)
	case *ast.VariableExpr:
		return i.lookUpVariable(e.Name, e, env)
	case *ast.AssignExpr:
		return i.evaluateAssign(e, env)
	case *ast.CallExpr:
		return i.evaluateCall(e, env)
	case *ast.GetExpr:
		return i.evaluateGet(e, env)
	case *ast.SetExpr:
		return i.evaluateSet(e, env)
	case *ast.ThisExpr:
		return i.lookUpVariable(e.Keyword, e, env)
	case *ast.SuperExpr:
		return i.evaluateSuper(e, env)
	default:
		return nil, fmt.Errorf("internal error: unknown expression type %T", expr)
	}
}

func literalValue(expr *ast.LiteralExpr) (runtime.Value, error) {
	switch v := expr.Value.(type) {
	case nil:
		return runtime.NilValue{}, nil
	case bool:
		return runtime.BoolValue{Val: v}, nil
	case float64:
		return runtime.NumberValue{Val: v}, nil
	case string:
		return runtime.StringValue{Val: v}, nil
	default:
		return nil, fmt.Errorf("internal error: unknown literal type %T", expr.Value)
	}
}

// lookUpVariable reads through the resolved distance when the static pass
// recorded one, and falls back to the global environment by name so that
// late-bound globals keep working.
func (i *Interpreter) lookUpVariable(name token.Token, expr ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	if distance, ok := i.locals[expr]; ok {
		return env.GetAt(distance, name.Lexeme)
	}
	return i.globals.Get(name)
}

func (i *Interpreter) evaluateAssign(expr *ast.AssignExpr, env *runtime.Environment) (runtime.Value, error) {
	value, err := i.evaluate(expr.Value, env)
	if err != nil {
		return nil, err
	}
	if distance, ok := i.locals[expr]; ok {
		if err := env.AssignAt(distance, expr.Name.Lexeme, value); err != nil {
			return nil, err
		}
	} else if err := i.globals.Assign(expr.Name, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (i *Interpreter) evaluateUnary(expr *ast.UnaryExpr, env *runtime.Environment) (runtime.Value, error) {
	right, err := i.evaluate(expr.Right, env)
	if err != nil {
		return nil, err
	}
	switch expr.Operator.Type {
	case token.Minus:
		n, ok := right.(runtime.NumberValue)
		if !ok {
			return nil, runtime.NewError(expr.Operator, "Operand must be a number.")
		}
		return runtime.NumberValue{Val: -n.Val}, nil
	case token.Bang:
		return runtime.BoolValue{Val: !runtime.Truthy(right)}, nil
	default:
		return nil, fmt.Errorf("internal error: unknown unary operator %s", expr.Operator.Lexeme)
	}
}

func (i *Interpreter) evaluateBinary(expr *ast.BinaryExpr, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluate(expr.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(expr.Right, env)
	if err != nil {
		return nil, err
	}

	switch expr.Operator.Type {
	case token.Plus:
		if l, ok := left.(runtime.NumberValue); ok {
			if r, ok := right.(runtime.NumberValue); ok {
				return runtime.NumberValue{Val: l.Val + r.Val}, nil
			}
		}
		if l, ok := left.(runtime.StringValue); ok {
			if r, ok := right.(runtime.StringValue); ok {
				return runtime.StringValue{Val: l.Val + r.Val}, nil
			}
		}
		return nil, runtime.NewError(expr.Operator, "Operands must be two numbers or two strings.")
	case token.Minus:
		l, r, err := numberOperands(expr.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.NumberValue{Val: l - r}, nil
	case token.Star:
		l, r, err := numberOperands(expr.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.NumberValue{Val: l * r}, nil
	case token.Slash:
		l, r, err := numberOperands(expr.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.NumberValue{Val: l / r}, nil
	case token.Greater:
		l, r, err := numberOperands(expr.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: l > r}, nil
	case token.GreaterEqual:
		l, r, err := numberOperands(expr.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: l >= r}, nil
	case token.Less:
		l, r, err := numberOperands(expr.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: l < r}, nil
	case token.LessEqual:
		l, r, err := numberOperands(expr.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return runtime.BoolValue{Val: l <= r}, nil
	case token.EqualEqual:
		return runtime.BoolValue{Val: runtime.Equals(left, right)}, nil
	case token.BangEqual:
		return runtime.BoolValue{Val: !runtime.Equals(left, right)}, nil
	default:
		return nil, fmt.Errorf("internal error: unknown binary operator %s", expr.Operator.Lexeme)
	}
}

func numberOperands(operator token.Token, left, right runtime.Value) (float64, float64, error) {
	l, lok := left.(runtime.NumberValue)
	r, rok := right.(runtime.NumberValue)
	if !lok || !rok {
		return 0, 0, runtime.NewError(operator, "Operands must be numbers.")
	}
	return l.Val, r.Val, nil
}

// evaluateLogical short-circuits and yields an operand value, not a
// coerced boolean.
func (i *Interpreter) evaluateLogical(expr *ast.LogicalExpr, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluate(expr.Left, env)
	if err != nil {
		return nil, err
	}
	if expr.Operator.Type == token.Or {
		if runtime.Truthy(left) {
			return left, nil
		}
	} else if !runtime.Truthy(left) {
		return left, nil
	}
	return i.evaluate(expr.Right, env)
}

func (i *Interpreter) evaluateGet(expr *ast.GetExpr, env *runtime.Environment) (runtime.Value, error) {
	object, err := i.evaluate(expr.Object, env)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*runtime.InstanceValue)
	if !ok {
		return nil, runtime.NewError(expr.Name, "Only instances have properties.")
	}
	return instance.Get(expr.Name)
}

func (i *Interpreter) evaluateSet(expr *ast.SetExpr, env *runtime.Environment) (runtime.Value, error) {
	object, err := i.evaluate(expr.Object, env)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*runtime.InstanceValue)
	if !ok {
		return nil, runtime.NewError(expr.Name, "Only instances have fields.")
	}
	value, err := i.evaluate(expr.Value, env)
	if err != nil {
		return nil, err
	}
	instance.Set(expr.Name, value)
	return value, nil
}
