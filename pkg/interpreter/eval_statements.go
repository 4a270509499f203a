package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

func (i *Interpreter) execute(stmt ast.Statement, env *runtime.Environment) (control, error) {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		return i.executeBlock(s.Statements, runtime.NewEnvironment(env))
	case *ast.ClassStmt:
		return control{}, i.executeClass(s, env)
	case *ast.ExpressionStmt:
		_, err := i.evaluate(s.Expr, env)
		return control{}, err
	case *ast.FunctionStmt:
		env.Define(s.Name.Lexeme, &runtime.FunctionValue{Declaration: s, Closure: env})
		return control{}, nil
	case *ast.IfStmt:
		return i.executeIf(s, env)
	case *ast.PrintStmt:
		return control{}, i.executePrint(s, env)
	case *ast.ReturnStmt:
		return i.executeReturn(s, env)
	case *ast.VarStmt:
		return control{}, i.executeVar(s, env)
	case *ast.WhileStmt:
		return i.executeWhile(s, env)
	default:
		return control{}, fmt.Errorf("internal error: unknown statement type %T", stmt)
	}
}

// executeBlock runs statements in env, stopping early when one of them
// returns. The caller chooses env, so function calls can pass the frame
// holding the bound parameters directly.
func (i *Interpreter) executeBlock(statements []ast.Statement, env *runtime.Environment) (control, error) {
	for _, stmt := range statements {
		ctl, err := i.execute(stmt, env)
		if err != nil {
			return control{}, err
		}
		if ctl.kind == controlReturn {
			return ctl, nil
		}
	}
	return control{}, nil
}

func (i *Interpreter) executeVar(stmt *ast.VarStmt, env *runtime.Environment) error {
	var value runtime.Value = runtime.NilValue{}
	if stmt.Initializer != nil {
		v, err := i.evaluate(stmt.Initializer, env)
		if err != nil {
			return err
		}
		value = v
	}
	env.Define(stmt.Name.Lexeme, value)
	return nil
}

func (i *Interpreter) executePrint(stmt *ast.PrintStmt, env *runtime.Environment) error {
	value, err := i.evaluate(stmt.Expr, env)
	if err != nil {
		return err
	}
	fmt.Fprintln(i.stdout, runtime.Stringify(value))
	return nil
}

func (i *Interpreter) executeIf(stmt *ast.IfStmt, env *runtime.Environment) (control, error) {
	condition, err := i.evaluate(stmt.Condition, env)
	if err != nil {
		return control{}, err
	}
	if runtime.Truthy(condition) {
		return i.execute(stmt.ThenBranch, env)
	}
	if stmt.ElseBranch != nil {
		return i.execute(stmt.ElseBranch, env)
	}
	return control{}, nil
}

func (i *Interpreter) executeWhile(stmt *ast.WhileStmt, env *runtime.Environment) (control, error) {
	for {
		condition, err := i.evaluate(stmt.Condition, env)
		if err != nil {
			return control{}, err
		}
		if !runtime.Truthy(condition) {
			return control{}, nil
		}
		ctl, err := i.execute(stmt.Body, env)
		if err != nil {
			return control{}, err
		}
		if ctl.kind == controlReturn {
			return ctl, nil
		}
	}
}

func (i *Interpreter) executeReturn(stmt *ast.ReturnStmt, env *runtime.Environment) (control, error) {
	var value runtime.Value = runtime.NilValue{}
	if stmt.Value != nil {
		v, err := i.evaluate(stmt.Value, env)
		if err != nil {
			return control{}, err
		}
		value = v
	}
	return returning(value), nil
}

// executeClass evaluates the superclass expression, builds the frozen
// method table, and binds the finished class under its name. The name is
// pre-bound to nil so the two-step define/assign gives methods a closure
// in which the class name is already in scope.
func (i *Interpreter) executeClass(stmt *ast.ClassStmt, env *runtime.Environment) error {
	var superclass *runtime.ClassValue
	if stmt.Superclass != nil {
		value, err := i.evaluate(stmt.Superclass, env)
		if err != nil {
			return err
		}
		sc, ok := value.(*runtime.ClassValue)
		if !ok {
			return runtime.NewError(stmt.Superclass.Name, "Superclass must be a class.")
		}
		superclass = sc
	}

	env.Define(stmt.Name.Lexeme, runtime.NilValue{})

	methodEnv := env
	if superclass != nil {
		methodEnv = runtime.NewEnvironment(env)
		methodEnv.Define("super", superclass)
	}

	methods := make(map[string]*runtime.FunctionValue, len(stmt.Methods))
	for _, method := range stmt.Methods {
		methods[method.Name.Lexeme] = &runtime.FunctionValue{
			Declaration:   method,
			Closure:       methodEnv,
			IsInitializer: method.Name.Lexeme == "init",
		}
	}

	class := &runtime.ClassValue{Name: stmt.Name.Lexeme, Superclass: superclass, Methods: methods}
	return env.Assign(stmt.Name, class)
}
