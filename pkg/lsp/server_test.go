package lsp

import (
	"context"
	"testing"
	"time"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/server"

	"lox/interpreter-go/pkg/lox"
)

func TestToProtocolConvertsPositions(t *testing.T) {
	got := toProtocol([]lox.Diagnostic{{
		Line:    2,
		Column:  3,
		Length:  6,
		Message: "Cannot return from top-level code.",
	}})
	if len(got) != 1 {
		t.Fatalf("expected one diagnostic, got %+v", got)
	}
	d := got[0]
	if d.Range.Start.Line != 1 || d.Range.Start.Character != 2 {
		t.Fatalf("unexpected start %+v", d.Range.Start)
	}
	if d.Range.End.Line != 1 || d.Range.End.Character != 8 {
		t.Fatalf("unexpected end %+v", d.Range.End)
	}
	if d.Severity != SeverityError || d.Source != "lox" {
		t.Fatalf("unexpected metadata %+v", d)
	}
}

func TestDocumentDiagnosticsLifecycle(t *testing.T) {
	s := NewServer(nil)

	s.openDocument("file:///demo.lox", "print this;", 1)
	diags, version := s.documentDiagnostics("file:///demo.lox")
	if version != 1 {
		t.Fatalf("version %d, want 1", version)
	}
	if len(diags) != 1 || diags[0].Message != "Cannot use 'this' outside of a class." {
		t.Fatalf("unexpected diagnostics %+v", diags)
	}

	s.openDocument("file:///demo.lox", "print 1;", 2)
	diags, version = s.documentDiagnostics("file:///demo.lox")
	if version != 2 || len(diags) != 0 {
		t.Fatalf("expected clean document at version 2, got %+v", diags)
	}

	s.closeDocument("file:///demo.lox")
	diags, _ = s.documentDiagnostics("file:///demo.lox")
	if len(diags) != 0 {
		t.Fatalf("closed document should yield no diagnostics, got %+v", diags)
	}
}

//--------------------------------------------------------------------------
// Wire-level tests over an in-memory client/server pair

type session struct {
	loc   server.Local
	srv   *Server
	notes chan PublishDiagnosticsParams
}

func startSession(t *testing.T) *session {
	t.Helper()
	s := NewServer(nil)
	notes := make(chan PublishDiagnosticsParams, 8)
	loc := server.NewLocal(s.Methods(), &server.LocalOptions{
		Server: &jrpc2.ServerOptions{AllowPush: true},
		Client: &jrpc2.ClientOptions{
			OnNotify: func(req *jrpc2.Request) {
				if req.Method() != "textDocument/publishDiagnostics" {
					return
				}
				var params PublishDiagnosticsParams
				if err := req.UnmarshalParams(&params); err != nil {
					return
				}
				notes <- params
			},
		},
	})
	s.SetRPC(loc.Server)
	t.Cleanup(func() { loc.Close() })
	return &session{loc: loc, srv: s, notes: notes}
}

func (s *session) awaitDiagnostics(t *testing.T) PublishDiagnosticsParams {
	t.Helper()
	select {
	case params := <-s.notes:
		return params
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for published diagnostics")
		return PublishDiagnosticsParams{}
	}
}

func TestInitializeAdvertisesFullSync(t *testing.T) {
	s := startSession(t)

	var result InitializeResult
	err := s.loc.Client.CallResult(context.Background(), "initialize",
		InitializeParams{RootURI: "file:///workspace"}, &result)
	if err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	if result.Capabilities.TextDocumentSync != TDSKFull {
		t.Fatalf("expected full sync, got %v", result.Capabilities.TextDocumentSync)
	}
	if result.ServerInfo == nil || result.ServerInfo.Name == "" {
		t.Fatalf("missing server info: %+v", result.ServerInfo)
	}
}

func TestDidOpenPublishesDiagnostics(t *testing.T) {
	s := startSession(t)
	ctx := context.Background()

	err := s.loc.Client.Notify(ctx, "textDocument/didOpen", DidOpenTextDocumentParams{
		TextDocument: TextDocumentItem{
			URI:        "file:///broken.lox",
			LanguageID: "lox",
			Version:    1,
			Text:       "var a = ;",
		},
	})
	if err != nil {
		t.Fatalf("didOpen failed: %v", err)
	}

	params := s.awaitDiagnostics(t)
	if params.URI != "file:///broken.lox" || params.Version != 1 {
		t.Fatalf("unexpected params %+v", params)
	}
	if len(params.Diagnostics) != 1 || params.Diagnostics[0].Message != "Expect expression." {
		t.Fatalf("unexpected diagnostics %+v", params.Diagnostics)
	}
}

func TestDidChangeClearsDiagnosticsWhenFixed(t *testing.T) {
	s := startSession(t)
	ctx := context.Background()

	if err := s.loc.Client.Notify(ctx, "textDocument/didOpen", DidOpenTextDocumentParams{
		TextDocument: TextDocumentItem{URI: "file:///f.lox", Version: 1, Text: "return 1;"},
	}); err != nil {
		t.Fatalf("didOpen failed: %v", err)
	}
	first := s.awaitDiagnostics(t)
	if len(first.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got %+v", first.Diagnostics)
	}

	if err := s.loc.Client.Notify(ctx, "textDocument/didChange", DidChangeTextDocumentParams{
		TextDocument:   VersionedTextDocumentIdentifier{URI: "file:///f.lox", Version: 2},
		ContentChanges: []TextDocumentContentChangeEvent{{Text: "print 1;"}},
	}); err != nil {
		t.Fatalf("didChange failed: %v", err)
	}
	second := s.awaitDiagnostics(t)
	if second.Version != 2 || len(second.Diagnostics) != 0 {
		t.Fatalf("expected clean publish at version 2, got %+v", second)
	}
}

func TestDidCloseClearsDiagnostics(t *testing.T) {
	s := startSession(t)
	ctx := context.Background()

	if err := s.loc.Client.Notify(ctx, "textDocument/didOpen", DidOpenTextDocumentParams{
		TextDocument: TextDocumentItem{URI: "file:///g.lox", Version: 1, Text: "print this;"},
	}); err != nil {
		t.Fatalf("didOpen failed: %v", err)
	}
	first := s.awaitDiagnostics(t)
	if len(first.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got %+v", first.Diagnostics)
	}

	if err := s.loc.Client.Notify(ctx, "textDocument/didClose", DidCloseTextDocumentParams{
		TextDocument: TextDocumentIdentifier{URI: "file:///g.lox"},
	}); err != nil {
		t.Fatalf("didClose failed: %v", err)
	}
	cleared := s.awaitDiagnostics(t)
	if len(cleared.Diagnostics) != 0 {
		t.Fatalf("close should clear diagnostics, got %+v", cleared.Diagnostics)
	}
}

func TestRuntimeOnlyProblemsProduceNoDiagnostics(t *testing.T) {
	// Type mismatches are runtime concerns; the server must not flag them.
	s := NewServer(nil)
	s.openDocument("file:///h.lox", `1 + "a";`, 1)
	diags, _ := s.documentDiagnostics("file:///h.lox")
	if len(diags) != 0 {
		t.Fatalf("static check flagged a runtime-only problem: %+v", diags)
	}
}
