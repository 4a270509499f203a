// Package resolver implements the static name-resolution pass that runs
// between parsing and evaluation. It computes, for every local variable
// reference, the number of enclosing scopes between the reference and its
// declaration, and it rejects contextually invalid uses of return, this,
// and super before any statement executes.
package resolver

import (
	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/token"
)

// Error is a resolution diagnostic tied to a source token.
type Error struct {
	Token   token.Token
	Message string
}

func (e *Error) Error() string {
	return e.Token.Report(e.Message)
}

// Bindings receives the scope distance computed for each variable
// reference. References left unrecorded are globals, looked up by name
// at run time.
type Bindings interface {
	Resolve(expr ast.Expression, depth int)
}

type functionType int

const (
	functionNone functionType = iota
	functionFunction
	functionInitializer
	functionMethod
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// Resolver walks the AST simulating scope nesting without evaluating
// anything. Each frame on the scope stack maps a name to whether its
// initializer has finished; false means declared but not yet defined,
// which is how reads of a variable inside its own initializer are caught.
type Resolver struct {
	bindings        Bindings
	scopes          []map[string]bool
	currentFunction functionType
	currentClass    classType
	errors          []*Error
}

// New returns a resolver that reports distances to bindings.
func New(bindings Bindings) *Resolver {
	return &Resolver{bindings: bindings}
}

// Resolve walks statements and returns the resolution errors found. A
// program that produced any errors must not be executed.
func (r *Resolver) Resolve(statements []ast.Statement) []*Error {
	r.scopes = nil
	r.currentFunction = functionNone
	r.currentClass = classNone
	r.errors = nil
	for _, stmt := range statements {
		r.resolveStatement(stmt)
	}
	return r.errors
}

//--------------------------------------------------------------------------
// Statements

func (r *Resolver) resolveStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		r.beginScope()
		for _, inner := range s.Statements {
			r.resolveStatement(inner)
		}
		r.endScope()
	case *ast.ClassStmt:
		r.resolveClass(s)
	case *ast.ExpressionStmt:
		r.resolveExpression(s.Expr)
	case *ast.FunctionStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, functionFunction)
	case *ast.IfStmt:
		r.resolveExpression(s.Condition)
		r.resolveStatement(s.ThenBranch)
		if s.ElseBranch != nil {
			r.resolveStatement(s.ElseBranch)
		}
	case *ast.PrintStmt:
		r.resolveExpression(s.Expr)
	case *ast.ReturnStmt:
		if r.currentFunction == functionNone {
			r.errorAt(s.Keyword, "Cannot return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFunction == functionInitializer {
				r.errorAt(s.Keyword, "Cannot return a value from an initializer.")
			}
			r.resolveExpression(s.Value)
		}
	case *ast.VarStmt:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpression(s.Initializer)
		}
		r.define(s.Name)
	case *ast.WhileStmt:
		r.resolveExpression(s.Condition)
		r.resolveStatement(s.Body)
	}
}

func (r *Resolver) resolveClass(stmt *ast.ClassStmt) {
	enclosing := r.currentClass
	r.currentClass = classClass

	r.declare(stmt.Name)
	r.define(stmt.Name)

	if stmt.Superclass != nil {
		if stmt.Superclass.Name.Lexeme == stmt.Name.Lexeme {
			r.errorAt(stmt.Superclass.Name, "A class cannot inherit from itself.")
		}
		r.currentClass = classSubclass
		r.resolveExpression(stmt.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	for _, method := range stmt.Methods {
		declaration := functionMethod
		if method.Name.Lexeme == "init" {
			declaration = functionInitializer
		}
		r.resolveFunction(method, declaration)
	}

	r.endScope()
	if stmt.Superclass != nil {
		r.endScope()
	}

	r.currentClass = enclosing
}

func (r *Resolver) resolveFunction(function *ast.FunctionStmt, kind functionType) {
	enclosing := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, param := range function.Params {
		r.declare(param)
		r.define(param)
	}
	for _, stmt := range function.Body {
		r.resolveStatement(stmt)
	}
	r.endScope()

	r.currentFunction = enclosing
}

//--------------------------------------------------------------------------
// Expressions

func (r *Resolver) resolveExpression(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.AssignExpr:
		r.resolveExpression(e.Value)
		r.resolveLocal(e, e.Name)
	case *ast.BinaryExpr:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)
	case *ast.CallExpr:
		r.resolveExpression(e.Callee)
		for _, arg := range e.Arguments {
			r.resolveExpression(arg)
		}
	case *ast.GetExpr:
		r.resolveExpression(e.Object)
	case *ast.GroupingExpr:
		r.resolveExpression(e.Expr)
	case *ast.LiteralExpr:
		// Nothing to resolve.
	case *ast.LogicalExpr:
		r.resolveExpression(e.Left)
		r.resolveExpression(e.Right)
	case *ast.SetExpr:
		r.resolveExpression(e.Value)
		r.resolveExpression(e.Object)
	case *ast.SuperExpr:
		if r.currentClass == classNone {
			r.errorAt(e.Keyword, "Cannot use 'super' outside of a class.")
		} else if r.currentClass != classSubclass {
			r.errorAt(e.Keyword, "Cannot use 'super' in a class with no superclass")
		}
		r.resolveLocal(e, e.Keyword)
	case *ast.ThisExpr:
		if r.currentClass == classNone {
			r.errorAt(e.Keyword, "Cannot use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, e.Keyword)
	case *ast.UnaryExpr:
		r.resolveExpression(e.Right)
	case *ast.VariableExpr:
		if len(r.scopes) > 0 {
			if defined, declared := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; declared && !defined {
				r.errorAt(e.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name)
	}
}

// resolveLocal searches outward from the innermost frame and records the
// distance to the first frame containing the name. Names found in no
// frame are globals and get no entry.
func (r *Resolver) resolveLocal(expr ast.Expression, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.bindings.Resolve(expr, len(r.scopes)-1-i)
			return
		}
	}
}

//--------------------------------------------------------------------------
// Scope bookkeeping

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, exists := scope[name.Lexeme]; exists {
		r.errorAt(name, "Variable with this name already declared in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

func (r *Resolver) errorAt(tok token.Token, message string) {
	r.errors = append(r.errors, &Error{Token: tok, Message: message})
}
