package token

import "fmt"

// Type identifies the lexical category of a token.
type Type int

const (
	// Single-character tokens.
	LeftParen Type = iota
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star

	// One- or two-character tokens.
	Bang
	BangEqual
	Equal
	EqualEqual
	Greater
	GreaterEqual
	Less
	LessEqual

	// Literals.
	Identifier
	String
	Number

	// Keywords.
	And
	Class
	Else
	False
	Fun
	For
	If
	Nil
	Or
	Print
	Return
	Super
	This
	True
	Var
	While

	EOF
)

var typeNames = [...]string{
	LeftParen:    "left_paren",
	RightParen:   "right_paren",
	LeftBrace:    "left_brace",
	RightBrace:   "right_brace",
	Comma:        "comma",
	Dot:          "dot",
	Minus:        "minus",
	Plus:         "plus",
	Semicolon:    "semicolon",
	Slash:        "slash",
	Star:         "star",
	Bang:         "bang",
	BangEqual:    "bang_equal",
	Equal:        "equal",
	EqualEqual:   "equal_equal",
	Greater:      "greater",
	GreaterEqual: "greater_equal",
	Less:         "less",
	LessEqual:    "less_equal",
	Identifier:   "identifier",
	String:       "string",
	Number:       "number",
	And:          "and",
	Class:        "class",
	Else:         "else",
	False:        "false",
	Fun:          "fun",
	For:          "for",
	If:           "if",
	Nil:          "nil",
	Or:           "or",
	Print:        "print",
	Return:       "return",
	Super:        "super",
	This:         "this",
	True:         "true",
	Var:          "var",
	While:        "while",
	EOF:          "eof",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("unknown_type_%d", int(t))
	}
	return typeNames[t]
}

// Token pairs a lexeme with its category and source position. Line and
// Column are 1-based. Literal holds the decoded value for Number (float64)
// and String (string) tokens and is nil otherwise.
type Token struct {
	Type    Type
	Lexeme  string
	Literal any
	Line    int
	Column  int
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q", t.Type, t.Lexeme)
}

// Report formats a diagnostic against this token in the conventional
// "[line N] Error at 'lexeme': message" form used for static errors.
func (t Token) Report(message string) string {
	if t.Type == EOF {
		return fmt.Sprintf("[line %d] Error at end: %s", t.Line, message)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", t.Line, t.Lexeme, message)
}

var keywords = map[string]Type{
	"and":    And,
	"class":  Class,
	"else":   Else,
	"false":  False,
	"for":    For,
	"fun":    Fun,
	"if":     If,
	"nil":    Nil,
	"or":     Or,
	"print":  Print,
	"return": Return,
	"super":  Super,
	"this":   This,
	"true":   True,
	"var":    Var,
	"while":  While,
}

// LookupIdent maps an identifier lexeme to its keyword type, or Identifier
// when the lexeme is not a reserved word.
func LookupIdent(ident string) Type {
	if t, ok := keywords[ident]; ok {
		return t
	}
	return Identifier
}
