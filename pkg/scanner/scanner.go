package scanner

import (
	"fmt"
	"strconv"

	"lox/interpreter-go/pkg/token"
)

// Error is a lexical error, located by 1-based line and column.
type Error struct {
	Line    int
	Column  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
}

// Scanner turns raw source text into a token stream in a single forward
// pass. Offsets are byte offsets; the lexical grammar is ASCII.
type Scanner struct {
	source    string
	tokens    []token.Token
	errors    []*Error
	start     int
	current   int
	line      int
	lineStart int
}

// New returns a scanner over the given source text.
func New(source string) *Scanner {
	return &Scanner{source: source, line: 1}
}

// ScanTokens consumes the whole source and returns the token stream,
// always terminated by an EOF token, plus any lexical errors. Scanning
// continues past an error so every problem in the source is reported.
func (s *Scanner) ScanTokens() ([]token.Token, []*Error) {
	for !s.isAtEnd() {
		s.start = s.current
		s.scanToken()
	}
	s.tokens = append(s.tokens, token.Token{
		Type:   token.EOF,
		Line:   s.line,
		Column: s.column(s.current),
	})
	return s.tokens, s.errors
}

func (s *Scanner) scanToken() {
	c := s.advance()
	switch c {
	case '(':
		s.addToken(token.LeftParen)
	case ')':
		s.addToken(token.RightParen)
	case '{':
		s.addToken(token.LeftBrace)
	case '}':
		s.addToken(token.RightBrace)
	case ',':
		s.addToken(token.Comma)
	case '.':
		s.addToken(token.Dot)
	case '-':
		s.addToken(token.Minus)
	case '+':
		s.addToken(token.Plus)
	case ';':
		s.addToken(token.Semicolon)
	case '*':
		s.addToken(token.Star)
	case '!':
		if s.match('=') {
			s.addToken(token.BangEqual)
		} else {
			s.addToken(token.Bang)
		}
	case '=':
		if s.match('=') {
			s.addToken(token.EqualEqual)
		} else {
			s.addToken(token.Equal)
		}
	case '<':
		if s.match('=') {
			s.addToken(token.LessEqual)
		} else {
			s.addToken(token.Less)
		}
	case '>':
		if s.match('=') {
			s.addToken(token.GreaterEqual)
		} else {
			s.addToken(token.Greater)
		}
	case '/':
		if s.match('/') {
			// Line comment, runs to end of line.
			for s.peek() != '\n' && !s.isAtEnd() {
				s.advance()
			}
		} else {
			s.addToken(token.Slash)
		}
	case ' ', '\t', '\r':
		// Whitespace.
	case '\n':
		s.newline()
	case '"':
		s.scanString()
	default:
		switch {
		case isDigit(c):
			s.scanNumber()
		case isAlpha(c):
			s.scanIdentifier()
		default:
			s.errorf("Unexpected character.")
		}
	}
}

// scanString consumes characters until the closing quote. Strings may
// span lines and have no escape sequences.
func (s *Scanner) scanString() {
	for s.peek() != '"' && !s.isAtEnd() {
		if s.peek() == '\n' {
			s.advance()
			s.newline()
			continue
		}
		s.advance()
	}

	if s.isAtEnd() {
		s.errorf("Unterminated string.")
		return
	}

	// The closing quote.
	s.advance()

	literal := s.source[s.start+1 : s.current-1]
	s.addLiteralToken(token.String, literal)
}

func (s *Scanner) scanNumber() {
	for isDigit(s.peek()) {
		s.advance()
	}

	// A fractional part needs a digit on both sides of the dot.
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}

	value, _ := strconv.ParseFloat(s.source[s.start:s.current], 64)
	s.addLiteralToken(token.Number, value)
}

func (s *Scanner) scanIdentifier() {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	s.addToken(token.LookupIdent(s.source[s.start:s.current]))
}

func (s *Scanner) advance() byte {
	c := s.source[s.current]
	s.current++
	return c
}

// match consumes the next character only when it equals expected.
func (s *Scanner) match(expected byte) bool {
	if s.isAtEnd() || s.source[s.current] != expected {
		return false
	}
	s.current++
	return true
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func (s *Scanner) newline() {
	s.line++
	s.lineStart = s.current
}

func (s *Scanner) column(offset int) int {
	return offset - s.lineStart + 1
}

func (s *Scanner) addToken(tp token.Type) {
	s.addLiteralToken(tp, nil)
}

func (s *Scanner) addLiteralToken(tp token.Type, literal any) {
	s.tokens = append(s.tokens, token.Token{
		Type:    tp,
		Lexeme:  s.source[s.start:s.current],
		Literal: literal,
		Line:    s.line,
		Column:  s.column(s.start),
	})
}

func (s *Scanner) errorf(format string, args ...any) {
	s.errors = append(s.errors, &Error{
		Line:    s.line,
		Column:  s.column(s.start),
		Message: fmt.Sprintf(format, args...),
	})
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
