package lox

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lox/interpreter-go/pkg/runtime"
)

func TestSessionPersistsAcrossUnits(t *testing.T) {
	var out bytes.Buffer
	r := NewRunner(WithOutput(&out))

	if _, err := r.RunSource("var a = 1;"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.RunSource("fun inc(n) { return n + 1; }"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.RunSource("print inc(a);"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "2" {
		t.Fatalf("printed %q, want 2", got)
	}
}

func TestLastExpressionValueSurfaces(t *testing.T) {
	r := NewRunner(WithOutput(&bytes.Buffer{}))
	value, err := r.RunSource("1 + 2;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, ok := value.(runtime.NumberValue)
	if !ok || n.Val != 3 {
		t.Fatalf("unexpected value %#v", value)
	}
}

func TestStaticErrorPreventsExecution(t *testing.T) {
	var out bytes.Buffer
	r := NewRunner(WithOutput(&out))

	_, err := r.RunSource("print 1; print this;")
	var staticErr *StaticError
	if !errors.As(err, &staticErr) {
		t.Fatalf("expected static error, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("statements ran despite static error: %q", out.String())
	}
	if staticErr.Diagnostics[0].Message != "Cannot use 'this' outside of a class." {
		t.Fatalf("unexpected diagnostic %+v", staticErr.Diagnostics[0])
	}
}

func TestSessionSurvivesErrors(t *testing.T) {
	var out bytes.Buffer
	r := NewRunner(WithOutput(&out))

	if _, err := r.RunSource("var a = 1;"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.RunSource("var 1 = 2;"); err == nil {
		t.Fatal("expected static error")
	}
	if _, err := r.RunSource("a + nil;"); err == nil {
		t.Fatal("expected runtime error")
	}
	if _, err := r.RunSource("print a;"); err != nil {
		t.Fatalf("session broken after errors: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "1" {
		t.Fatalf("printed %q, want 1", got)
	}
}

func TestStaticErrorRendersAllDiagnostics(t *testing.T) {
	r := NewRunner(WithOutput(&bytes.Buffer{}))
	_, err := r.RunSource("return 1; print this;")
	var staticErr *StaticError
	if !errors.As(err, &staticErr) {
		t.Fatalf("expected static error, got %v", err)
	}
	if len(staticErr.Diagnostics) != 2 {
		t.Fatalf("expected 2 diagnostics, got %+v", staticErr.Diagnostics)
	}
	rendered := staticErr.Error()
	if !strings.Contains(rendered, "Cannot return from top-level code.") ||
		!strings.Contains(rendered, "Cannot use 'this' outside of a class.") {
		t.Fatalf("unexpected rendering %q", rendered)
	}
	if len(strings.Split(rendered, "\n")) != 2 {
		t.Fatalf("expected one line per diagnostic, got %q", rendered)
	}
}

//--------------------------------------------------------------------------
// Check

func TestCheckCleanSource(t *testing.T) {
	if diags := Check("print 1 + 2;"); diags != nil {
		t.Fatalf("unexpected diagnostics %+v", diags)
	}
}

func TestCheckScanDiagnostic(t *testing.T) {
	diags := Check("var a = @;")
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %+v", diags)
	}
	d := diags[0]
	if d.Message != "Unexpected character." || d.Line != 1 {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
}

func TestCheckParseDiagnostic(t *testing.T) {
	diags := Check("print ;")
	if len(diags) != 1 || diags[0].Message != "Expect expression." {
		t.Fatalf("unexpected diagnostics %+v", diags)
	}
	if diags[0].Text != "[line 1] Error at ';': Expect expression." {
		t.Fatalf("unexpected text %q", diags[0].Text)
	}
}

func TestCheckResolveDiagnostic(t *testing.T) {
	diags := Check("fun f() { var a = a; }")
	if len(diags) != 1 || diags[0].Message != "Can't read local variable in its own initializer." {
		t.Fatalf("unexpected diagnostics %+v", diags)
	}
}

func TestCheckPositions(t *testing.T) {
	diags := Check("var a = 1;\nreturn;")
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic, got %+v", diags)
	}
	d := diags[0]
	if d.Line != 2 || d.Column != 1 || d.Length != len("return") {
		t.Fatalf("unexpected position %+v", d)
	}
}

//--------------------------------------------------------------------------
// Incomplete input

func TestIsIncomplete(t *testing.T) {
	cases := []struct {
		source string
		want   bool
	}{
		{"1 +", true},
		{"{ var a = 1;", true},
		{"fun f(", true},
		{"class A {", true},
		{"\"unterminated", true},
		{"print 1;", false},
		{"var ;", false},
		{"@", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsIncomplete(c.source); got != c.want {
			t.Errorf("IsIncomplete(%q) = %v, want %v", c.source, got, c.want)
		}
	}
}

//--------------------------------------------------------------------------
// Files and exit codes

func TestRunFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.lox")
	if err := os.WriteFile(path, []byte("print 40 + 2;\n"), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}

	var out bytes.Buffer
	r := NewRunner(WithOutput(&out))
	if err := r.RunFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "42" {
		t.Fatalf("printed %q, want 42", got)
	}
}

func TestRunFileMissing(t *testing.T) {
	r := NewRunner(WithOutput(&bytes.Buffer{}))
	err := r.RunFile(filepath.Join(t.TempDir(), "absent.lox"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if ExitCode(err) != 1 {
		t.Fatalf("exit code %d, want 1", ExitCode(err))
	}
}

func TestExitCodes(t *testing.T) {
	r := NewRunner(WithOutput(&bytes.Buffer{}))

	if got := ExitCode(nil); got != 0 {
		t.Fatalf("nil error: exit code %d, want 0", got)
	}

	_, staticErr := r.RunSource("var ;")
	if got := ExitCode(staticErr); got != 65 {
		t.Fatalf("static error: exit code %d, want 65", got)
	}

	_, runtimeErr := r.RunSource("nil();")
	if got := ExitCode(runtimeErr); got != 70 {
		t.Fatalf("runtime error: exit code %d, want 70", got)
	}
}
