package ast

import "lox/interpreter-go/pkg/token"

// BlockStmt introduces a new lexical scope around its statements.
type BlockStmt struct {
	Statements []Statement
}

func NewBlockStmt(statements []Statement) *BlockStmt {
	return &BlockStmt{Statements: statements}
}

// ClassStmt declares a class with an optional superclass. The superclass
// is kept as a variable reference so the resolver records a distance for it.
type ClassStmt struct {
	Name       token.Token
	Superclass *VariableExpr
	Methods    []*FunctionStmt
}

func NewClassStmt(name token.Token, superclass *VariableExpr, methods []*FunctionStmt) *ClassStmt {
	return &ClassStmt{Name: name, Superclass: superclass, Methods: methods}
}

// ExpressionStmt evaluates an expression and discards the result.
type ExpressionStmt struct {
	Expr Expression
}

func NewExpressionStmt(expr Expression) *ExpressionStmt {
	return &ExpressionStmt{Expr: expr}
}

// FunctionStmt declares a named function or a method body.
type FunctionStmt struct {
	Name   token.Token
	Params []token.Token
	Body   []Statement
}

func NewFunctionStmt(name token.Token, params []token.Token, body []Statement) *FunctionStmt {
	return &FunctionStmt{Name: name, Params: params, Body: body}
}

// IfStmt executes one of two branches on the condition's truthiness.
// ElseBranch may be nil.
type IfStmt struct {
	Condition  Expression
	ThenBranch Statement
	ElseBranch Statement
}

func NewIfStmt(condition Expression, thenBranch, elseBranch Statement) *IfStmt {
	return &IfStmt{Condition: condition, ThenBranch: thenBranch, ElseBranch: elseBranch}
}

// PrintStmt writes an expression's value to the output sink.
type PrintStmt struct {
	Expr Expression
}

func NewPrintStmt(expr Expression) *PrintStmt {
	return &PrintStmt{Expr: expr}
}

// ReturnStmt unwinds to the nearest call boundary. Value may be nil for a
// bare return; Keyword locates resolve-time misuse diagnostics.
type ReturnStmt struct {
	Keyword token.Token
	Value   Expression
}

func NewReturnStmt(keyword token.Token, value Expression) *ReturnStmt {
	return &ReturnStmt{Keyword: keyword, Value: value}
}

// VarStmt declares a variable with an optional initializer.
type VarStmt struct {
	Name        token.Token
	Initializer Expression
}

func NewVarStmt(name token.Token, initializer Expression) *VarStmt {
	return &VarStmt{Name: name, Initializer: initializer}
}

// WhileStmt loops while the condition is truthy. The parser also lowers
// "for" loops into this node.
type WhileStmt struct {
	Condition Expression
	Body      Statement
}

func NewWhileStmt(condition Expression, body Statement) *WhileStmt {
	return &WhileStmt{Condition: condition, Body: body}
}

func (*BlockStmt) node()      {}
func (*ClassStmt) node()      {}
func (*ExpressionStmt) node() {}
func (*FunctionStmt) node()   {}
func (*IfStmt) node()         {}
func (*PrintStmt) node()      {}
func (*ReturnStmt) node()     {}
func (*VarStmt) node()        {}
func (*WhileStmt) node()      {}

func (*BlockStmt) statementNode()      {}
func (*ClassStmt) statementNode()      {}
func (*ExpressionStmt) statementNode() {}
func (*FunctionStmt) statementNode()   {}
func (*IfStmt) statementNode()         {}
func (*PrintStmt) statementNode()      {}
func (*ReturnStmt) statementNode()     {}
func (*VarStmt) statementNode()        {}
func (*WhileStmt) statementNode()      {}
