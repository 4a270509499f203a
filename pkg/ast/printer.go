package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Printer renders trees in a parenthesized prefix form, used by the CLI's
// AST dump and by parser tests to assert tree shapes.
type Printer struct{}

// Print renders a single node.
func (p Printer) Print(node Node) string {
	switch n := node.(type) {
	case Expression:
		return p.expr(n)
	case Statement:
		return p.stmt(n)
	default:
		return fmt.Sprintf("<unknown %T>", node)
	}
}

// PrintProgram renders statements one per line.
func (p Printer) PrintProgram(statements []Statement) string {
	lines := make([]string, len(statements))
	for i, stmt := range statements {
		lines[i] = p.stmt(stmt)
	}
	return strings.Join(lines, "\n")
}

func (p Printer) expr(node Expression) string {
	switch n := node.(type) {
	case *LiteralExpr:
		return p.literal(n.Value)
	case *VariableExpr:
		return n.Name.Lexeme
	case *AssignExpr:
		return p.list("=", n.Name.Lexeme, p.expr(n.Value))
	case *BinaryExpr:
		return p.list(n.Operator.Lexeme, p.expr(n.Left), p.expr(n.Right))
	case *LogicalExpr:
		return p.list(n.Operator.Lexeme, p.expr(n.Left), p.expr(n.Right))
	case *UnaryExpr:
		return p.list(n.Operator.Lexeme, p.expr(n.Right))
	case *GroupingExpr:
		return p.list("group", p.expr(n.Expr))
	case *CallExpr:
		parts := []string{p.expr(n.Callee)}
		for _, arg := range n.Arguments {
			parts = append(parts, p.expr(arg))
		}
		return p.list("call", parts...)
	case *GetExpr:
		return p.list("get", p.expr(n.Object), n.Name.Lexeme)
	case *SetExpr:
		return p.list("set", p.expr(n.Object), n.Name.Lexeme, p.expr(n.Value))
	case *ThisExpr:
		return "this"
	case *SuperExpr:
		return p.list("super", n.Method.Lexeme)
	default:
		return fmt.Sprintf("<unknown expr %T>", node)
	}
}

func (p Printer) stmt(node Statement) string {
	switch n := node.(type) {
	case *ExpressionStmt:
		return p.list("expr", p.expr(n.Expr))
	case *PrintStmt:
		return p.list("print", p.expr(n.Expr))
	case *VarStmt:
		if n.Initializer == nil {
			return p.list("var", n.Name.Lexeme)
		}
		return p.list("var", n.Name.Lexeme, p.expr(n.Initializer))
	case *BlockStmt:
		parts := make([]string, len(n.Statements))
		for i, stmt := range n.Statements {
			parts[i] = p.stmt(stmt)
		}
		return p.list("block", parts...)
	case *IfStmt:
		if n.ElseBranch == nil {
			return p.list("if", p.expr(n.Condition), p.stmt(n.ThenBranch))
		}
		return p.list("if", p.expr(n.Condition), p.stmt(n.ThenBranch), p.stmt(n.ElseBranch))
	case *WhileStmt:
		return p.list("while", p.expr(n.Condition), p.stmt(n.Body))
	case *FunctionStmt:
		return p.function("fun", n)
	case *ReturnStmt:
		if n.Value == nil {
			return "(return)"
		}
		return p.list("return", p.expr(n.Value))
	case *ClassStmt:
		parts := []string{n.Name.Lexeme}
		if n.Superclass != nil {
			parts = append(parts, "(< "+n.Superclass.Name.Lexeme+")")
		}
		for _, method := range n.Methods {
			parts = append(parts, p.function("method", method))
		}
		return p.list("class", parts...)
	default:
		return fmt.Sprintf("<unknown stmt %T>", node)
	}
}

func (p Printer) function(kind string, fn *FunctionStmt) string {
	params := make([]string, len(fn.Params))
	for i, param := range fn.Params {
		params[i] = param.Lexeme
	}
	parts := []string{fn.Name.Lexeme, "(" + strings.Join(params, " ") + ")"}
	for _, stmt := range fn.Body {
		parts = append(parts, p.stmt(stmt))
	}
	return p.list(kind, parts...)
}

func (p Printer) literal(value any) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case string:
		return strconv.Quote(v)
	default:
		return fmt.Sprintf("<unknown literal %T>", value)
	}
}

func (p Printer) list(head string, parts ...string) string {
	if len(parts) == 0 {
		return "(" + head + ")"
	}
	return "(" + head + " " + strings.Join(parts, " ") + ")"
}
