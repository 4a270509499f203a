package ast

import "lox/interpreter-go/pkg/token"

// Node is the shared behaviour of every syntax-tree node.
type Node interface {
	node()
}

// Expression nodes produce a value when evaluated.
type Expression interface {
	Node
	expressionNode()
}

// Statement nodes are executed for their effect.
type Statement interface {
	Node
	statementNode()
}

//-----------------------------------------------------------------------------
// Expressions
//-----------------------------------------------------------------------------

// AssignExpr writes a value to an already-declared variable.
type AssignExpr struct {
	Name  token.Token
	Value Expression
}

func NewAssignExpr(name token.Token, value Expression) *AssignExpr {
	return &AssignExpr{Name: name, Value: value}
}

// BinaryExpr applies an arithmetic, comparison, or equality operator.
type BinaryExpr struct {
	Left     Expression
	Operator token.Token
	Right    Expression
}

func NewBinaryExpr(left Expression, operator token.Token, right Expression) *BinaryExpr {
	return &BinaryExpr{Left: left, Operator: operator, Right: right}
}

// CallExpr invokes a callee with zero or more arguments. Paren is the
// closing parenthesis, kept for runtime error locations.
type CallExpr struct {
	Callee    Expression
	Paren     token.Token
	Arguments []Expression
}

func NewCallExpr(callee Expression, paren token.Token, arguments []Expression) *CallExpr {
	return &CallExpr{Callee: callee, Paren: paren, Arguments: arguments}
}

// GetExpr reads a property from an object.
type GetExpr struct {
	Object Expression
	Name   token.Token
}

func NewGetExpr(object Expression, name token.Token) *GetExpr {
	return &GetExpr{Object: object, Name: name}
}

// GroupingExpr is a parenthesized expression.
type GroupingExpr struct {
	Expr Expression
}

func NewGroupingExpr(expr Expression) *GroupingExpr {
	return &GroupingExpr{Expr: expr}
}

// LiteralExpr holds a number (float64), string, bool, or nil constant.
type LiteralExpr struct {
	Value any
}

func NewLiteralExpr(value any) *LiteralExpr {
	return &LiteralExpr{Value: value}
}

// LogicalExpr is a short-circuiting "and" or "or".
type LogicalExpr struct {
	Left     Expression
	Operator token.Token
	Right    Expression
}

func NewLogicalExpr(left Expression, operator token.Token, right Expression) *LogicalExpr {
	return &LogicalExpr{Left: left, Operator: operator, Right: right}
}

// SetExpr writes a property on an object.
type SetExpr struct {
	Object Expression
	Name   token.Token
	Value  Expression
}

func NewSetExpr(object Expression, name token.Token, value Expression) *SetExpr {
	return &SetExpr{Object: object, Name: name, Value: value}
}

// SuperExpr accesses a method on the superclass of the enclosing class.
type SuperExpr struct {
	Keyword token.Token
	Method  token.Token
}

func NewSuperExpr(keyword, method token.Token) *SuperExpr {
	return &SuperExpr{Keyword: keyword, Method: method}
}

// ThisExpr refers to the receiver of the enclosing method.
type ThisExpr struct {
	Keyword token.Token
}

func NewThisExpr(keyword token.Token) *ThisExpr {
	return &ThisExpr{Keyword: keyword}
}

// UnaryExpr applies prefix "!" or "-".
type UnaryExpr struct {
	Operator token.Token
	Right    Expression
}

func NewUnaryExpr(operator token.Token, right Expression) *UnaryExpr {
	return &UnaryExpr{Operator: operator, Right: right}
}

// VariableExpr reads a variable.
type VariableExpr struct {
	Name token.Token
}

func NewVariableExpr(name token.Token) *VariableExpr {
	return &VariableExpr{Name: name}
}

func (*AssignExpr) node()   {}
func (*BinaryExpr) node()   {}
func (*CallExpr) node()     {}
func (*GetExpr) node()      {}
func (*GroupingExpr) node() {}
func (*LiteralExpr) node()  {}
func (*LogicalExpr) node()  {}
func (*SetExpr) node()      {}
func (*SuperExpr) node()    {}
func (*ThisExpr) node()     {}
func (*UnaryExpr) node()    {}
func (*VariableExpr) node() {}

func (*AssignExpr) expressionNode()   {}
func (*BinaryExpr) expressionNode()   {}
func (*CallExpr) expressionNode()     {}
func (*GetExpr) expressionNode()      {}
func (*GroupingExpr) expressionNode() {}
func (*LiteralExpr) expressionNode()  {}
func (*LogicalExpr) expressionNode()  {}
func (*SetExpr) expressionNode()      {}
func (*SuperExpr) expressionNode()    {}
func (*ThisExpr) expressionNode()     {}
func (*UnaryExpr) expressionNode()    {}
func (*VariableExpr) expressionNode() {}
