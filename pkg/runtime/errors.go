package runtime

import (
	"fmt"

	"lox/interpreter-go/pkg/token"
)

// Error is a runtime error carrying the token that triggered it, so the
// host can report the source line.
type Error struct {
	Token   token.Token
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[line %d] %s", e.Token.Line, e.Message)
}

// NewError builds a runtime error located at a token.
func NewError(tok token.Token, format string, args ...any) *Error {
	return &Error{Token: tok, Message: fmt.Sprintf(format, args...)}
}
