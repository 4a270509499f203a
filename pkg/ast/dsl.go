package ast

import "lox/interpreter-go/pkg/token"

// Builder helpers for constructing trees directly in tests. Tokens made
// here carry no source positions.

var opTypes = map[string]token.Type{
	"+":   token.Plus,
	"-":   token.Minus,
	"*":   token.Star,
	"/":   token.Slash,
	"!":   token.Bang,
	"==":  token.EqualEqual,
	"!=":  token.BangEqual,
	"<":   token.Less,
	"<=":  token.LessEqual,
	">":   token.Greater,
	">=":  token.GreaterEqual,
	"and": token.And,
	"or":  token.Or,
}

func opToken(op string) token.Token {
	tp, ok := opTypes[op]
	if !ok {
		panic("ast: unknown operator " + op)
	}
	return token.Token{Type: tp, Lexeme: op}
}

// Ident makes a bare identifier token.
func Ident(name string) token.Token {
	return token.Token{Type: token.Identifier, Lexeme: name}
}

// Expression helpers.

func ID(name string) *VariableExpr {
	return NewVariableExpr(Ident(name))
}

func Num(value float64) *LiteralExpr {
	return NewLiteralExpr(value)
}

func Str(value string) *LiteralExpr {
	return NewLiteralExpr(value)
}

func Bool(value bool) *LiteralExpr {
	return NewLiteralExpr(value)
}

func Nil() *LiteralExpr {
	return NewLiteralExpr(nil)
}

func Group(expr Expression) *GroupingExpr {
	return NewGroupingExpr(expr)
}

func Un(op string, right Expression) *UnaryExpr {
	return NewUnaryExpr(opToken(op), right)
}

func Bin(op string, left, right Expression) *BinaryExpr {
	return NewBinaryExpr(left, opToken(op), right)
}

func Logic(op string, left, right Expression) *LogicalExpr {
	return NewLogicalExpr(left, opToken(op), right)
}

func Assign(name string, value Expression) *AssignExpr {
	return NewAssignExpr(Ident(name), value)
}

func Call(callee Expression, args ...Expression) *CallExpr {
	paren := token.Token{Type: token.RightParen, Lexeme: ")"}
	return NewCallExpr(callee, paren, args)
}

func Get(object Expression, name string) *GetExpr {
	return NewGetExpr(object, Ident(name))
}

func Set(object Expression, name string, value Expression) *SetExpr {
	return NewSetExpr(object, Ident(name), value)
}

func This() *ThisExpr {
	return NewThisExpr(token.Token{Type: token.This, Lexeme: "this"})
}

func Super(method string) *SuperExpr {
	return NewSuperExpr(token.Token{Type: token.Super, Lexeme: "super"}, Ident(method))
}

// Statement helpers.

func Block(statements ...Statement) *BlockStmt {
	return NewBlockStmt(statements)
}

func ExprStmt(expr Expression) *ExpressionStmt {
	return NewExpressionStmt(expr)
}

func Print(expr Expression) *PrintStmt {
	return NewPrintStmt(expr)
}

// VarDecl declares name with an initializer; pass nil for a bare "var".
func VarDecl(name string, initializer Expression) *VarStmt {
	return NewVarStmt(Ident(name), initializer)
}

func If(condition Expression, thenBranch, elseBranch Statement) *IfStmt {
	return NewIfStmt(condition, thenBranch, elseBranch)
}

func While(condition Expression, body Statement) *WhileStmt {
	return NewWhileStmt(condition, body)
}

// Ret builds a return statement; pass nil for a bare "return;".
func Ret(value Expression) *ReturnStmt {
	return NewReturnStmt(token.Token{Type: token.Return, Lexeme: "return"}, value)
}

func Fun(name string, params []string, body ...Statement) *FunctionStmt {
	tokens := make([]token.Token, len(params))
	for i, p := range params {
		tokens[i] = Ident(p)
	}
	return NewFunctionStmt(Ident(name), tokens, body)
}

// ClassDecl declares a class; superclass "" means none.
func ClassDecl(name, superclass string, methods ...*FunctionStmt) *ClassStmt {
	var super *VariableExpr
	if superclass != "" {
		super = ID(superclass)
	}
	return NewClassStmt(Ident(name), super, methods)
}
