// Package lox ties the pipeline stages together behind a small embedding
// API: scan, parse, resolve, and execute, with the static stages also
// exposed on their own for editor tooling.
package lox

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/interpreter"
	"lox/interpreter-go/pkg/parser"
	"lox/interpreter-go/pkg/resolver"
	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/scanner"
)

// Diagnostic is a static error in a shape both terminal output and
// editor integrations can consume. Positions are 1-based.
type Diagnostic struct {
	Line    int
	Column  int
	Length  int
	Message string
	// Text is the fully rendered terminal form, e.g.
	// [line 2] Error at ')': Expect expression.
	Text string
}

// StaticError aggregates every scan, parse, or resolution diagnostic
// found in one unit of source. A unit with a StaticError never executed.
type StaticError struct {
	Diagnostics []Diagnostic
}

func (e *StaticError) Error() string {
	lines := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		lines[i] = d.Text
	}
	return strings.Join(lines, "\n")
}

// Runner owns one interpreter session. Successive RunSource calls share
// the global environment, which is what a REPL needs.
type Runner struct {
	interp *interpreter.Interpreter
	stdout io.Writer
	stderr io.Writer
	logger *zap.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput redirects print statement output.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) { r.stdout = w }
}

// WithErrorOutput redirects error reporting.
func WithErrorOutput(w io.Writer) Option {
	return func(r *Runner) { r.stderr = w }
}

// WithLogger attaches a structured logger for pipeline tracing.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// NewRunner returns a session writing to stdout/stderr unless options
// say otherwise.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{stdout: os.Stdout, stderr: os.Stderr, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	r.interp = interpreter.New()
	r.interp.SetOutput(r.stdout)
	return r
}

// ErrorOutput returns the writer error reports should go to.
func (r *Runner) ErrorOutput() io.Writer {
	return r.stderr
}

// GlobalEnvironment exposes the session's global frame, for inspection
// commands in interactive hosts.
func (r *Runner) GlobalEnvironment() *runtime.Environment {
	return r.interp.GlobalEnvironment()
}

// RunSource runs one unit of source in the session. Static errors are
// returned as a *StaticError and nothing executes; runtime errors halt
// the unit and surface as *runtime.Error with the session left intact.
// On success the value of the last top-level expression statement is
// returned for interactive echo.
func (r *Runner) RunSource(source string) (runtime.Value, error) {
	statements, diags := parseSource(source)
	if len(diags) > 0 {
		r.logger.Debug("static errors", zap.Int("count", len(diags)))
		return nil, &StaticError{Diagnostics: diags}
	}

	if errs := resolver.New(r.interp).Resolve(statements); len(errs) > 0 {
		r.logger.Debug("resolution errors", zap.Int("count", len(errs)))
		return nil, &StaticError{Diagnostics: fromResolverErrors(errs)}
	}

	value, err := r.interp.Interpret(statements)
	if err != nil {
		r.logger.Debug("runtime error", zap.Error(err))
		return nil, err
	}
	return value, nil
}

// RunFile loads and runs a script file.
func (r *Runner) RunFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	r.logger.Debug("running file", zap.String("path", path), zap.Int("bytes", len(data)))
	_, err = r.RunSource(string(data))
	return err
}

//--------------------------------------------------------------------------
// Static analysis

// noBindings satisfies the resolver for analysis that never executes, so
// the computed distances can be thrown away.
type noBindings struct{}

func (noBindings) Resolve(expr ast.Expression, depth int) {}

// Check reports the static diagnostics for source without executing it.
// An empty result means the unit would be accepted for execution.
func Check(source string) []Diagnostic {
	statements, diags := parseSource(source)
	if len(diags) > 0 {
		return diags
	}
	if errs := resolver.New(noBindings{}).Resolve(statements); len(errs) > 0 {
		return fromResolverErrors(errs)
	}
	return nil
}

// Parse returns the statement list for source without resolving or
// executing anything, for tools that inspect the syntax tree.
func Parse(source string) ([]ast.Statement, error) {
	statements, diags := parseSource(source)
	if len(diags) > 0 {
		return nil, &StaticError{Diagnostics: diags}
	}
	return statements, nil
}

// IsIncomplete reports whether source looks like the prefix of a valid
// unit, so an interactive host can keep reading lines instead of
// reporting an error.
func IsIncomplete(source string) bool {
	tokens, scanErrs := scanner.New(source).ScanTokens()
	if len(scanErrs) > 0 {
		for _, e := range scanErrs {
			if e.Message == "Unterminated string." {
				return true
			}
		}
		return false
	}
	_, parseErrs := parser.New(tokens).Parse()
	return parser.IsIncomplete(parseErrs)
}

func parseSource(source string) ([]ast.Statement, []Diagnostic) {
	tokens, scanErrs := scanner.New(source).ScanTokens()
	if len(scanErrs) > 0 {
		return nil, fromScanErrors(scanErrs)
	}
	statements, parseErrs := parser.New(tokens).Parse()
	if len(parseErrs) > 0 {
		return nil, fromParseErrors(parseErrs)
	}
	return statements, nil
}

func fromScanErrors(errs []*scanner.Error) []Diagnostic {
	diags := make([]Diagnostic, len(errs))
	for i, e := range errs {
		diags[i] = Diagnostic{
			Line:    e.Line,
			Column:  e.Column,
			Length:  1,
			Message: e.Message,
			Text:    e.Error(),
		}
	}
	return diags
}

func fromParseErrors(errs []*parser.Error) []Diagnostic {
	diags := make([]Diagnostic, len(errs))
	for i, e := range errs {
		diags[i] = tokenDiagnostic(e.Token.Line, e.Token.Column, e.Token.Lexeme, e.Message, e.Error())
	}
	return diags
}

func fromResolverErrors(errs []*resolver.Error) []Diagnostic {
	diags := make([]Diagnostic, len(errs))
	for i, e := range errs {
		diags[i] = tokenDiagnostic(e.Token.Line, e.Token.Column, e.Token.Lexeme, e.Message, e.Error())
	}
	return diags
}

func tokenDiagnostic(line, column int, lexeme, message, text string) Diagnostic {
	length := len(lexeme)
	if length == 0 {
		length = 1
	}
	return Diagnostic{Line: line, Column: column, Length: length, Message: message, Text: text}
}

// ExitCode maps an error from RunSource or RunFile to the conventional
// sysexits value: 65 for static errors, 70 for runtime errors, 1 for
// anything else (such as an unreadable file).
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var staticErr *StaticError
	if errors.As(err, &staticErr) {
		return 65
	}
	var runtimeErr *runtime.Error
	if errors.As(err, &runtimeErr) {
		return 70
	}
	return 1
}
