// Package lsp serves static diagnostics to editors over the Language
// Server Protocol. Documents use full-document sync: every change
// replaces the tracked text, which is re-checked and the resulting
// diagnostics pushed to the client.
package lsp

import (
	"context"
	"sync"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"
	"go.uber.org/zap"

	"lox/interpreter-go/pkg/lox"
)

// Server tracks open documents and answers LSP requests. It never
// executes document code; only the static pipeline stages run.
type Server struct {
	logger *zap.Logger

	mu    sync.Mutex
	files map[DocumentURI]*document

	rpc *jrpc2.Server
}

type document struct {
	text    string
	version int
}

// NewServer returns a server logging through logger; nil means silent.
func NewServer(logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{logger: logger, files: make(map[DocumentURI]*document)}
}

// SetRPC attaches the transport used for pushed notifications. Until it
// is set, diagnostics are computed but not delivered.
func (s *Server) SetRPC(rpc *jrpc2.Server) {
	s.rpc = rpc
}

// Methods returns the dispatch table for jrpc2.NewServer.
func (s *Server) Methods() handler.Map {
	return handler.Map{
		"initialize":             handler.New(s.handleInitialize),
		"initialized":            handler.New(s.handleInitialized),
		"shutdown":               handler.New(s.handleShutdown),
		"exit":                   handler.New(s.handleExit),
		"textDocument/didOpen":   handler.New(s.handleDidOpen),
		"textDocument/didChange": handler.New(s.handleDidChange),
		"textDocument/didSave":   handler.New(s.handleDidSave),
		"textDocument/didClose":  handler.New(s.handleDidClose),
	}
}

//--------------------------------------------------------------------------
// Lifecycle

func (s *Server) handleInitialize(ctx context.Context, req *jrpc2.Request) (any, error) {
	var params InitializeParams
	if req.HasParams() {
		if err := req.UnmarshalParams(&params); err != nil {
			return nil, err
		}
	}
	s.logger.Info("initialize",
		zap.String("rootUri", string(params.RootURI)),
		zap.Int("processId", params.ProcessID))

	return InitializeResult{
		Capabilities: ServerCapabilities{TextDocumentSync: TDSKFull},
		ServerInfo:   &ServerInfo{Name: "lox-language-server"},
	}, nil
}

func (s *Server) handleInitialized(ctx context.Context, req *jrpc2.Request) (any, error) {
	return nil, nil
}

func (s *Server) handleShutdown(ctx context.Context, req *jrpc2.Request) (any, error) {
	s.logger.Info("shutdown")
	return nil, nil
}

func (s *Server) handleExit(ctx context.Context, req *jrpc2.Request) (any, error) {
	s.logger.Info("exit")
	if s.rpc != nil {
		s.rpc.Stop()
	}
	return nil, nil
}

//--------------------------------------------------------------------------
// Document sync

func (s *Server) handleDidOpen(ctx context.Context, req *jrpc2.Request) (any, error) {
	if !req.HasParams() {
		return nil, jrpc2.Errorf(jrpc2.InvalidParams, "missing parameters")
	}
	var params DidOpenTextDocumentParams
	if err := req.UnmarshalParams(&params); err != nil {
		return nil, err
	}

	doc := params.TextDocument
	s.logger.Debug("didOpen", zap.String("uri", string(doc.URI)), zap.Int("version", doc.Version))
	s.openDocument(doc.URI, doc.Text, doc.Version)
	s.publishDiagnostics(ctx, doc.URI)
	return nil, nil
}

func (s *Server) handleDidChange(ctx context.Context, req *jrpc2.Request) (any, error) {
	if !req.HasParams() {
		return nil, jrpc2.Errorf(jrpc2.InvalidParams, "missing parameters")
	}
	var params DidChangeTextDocumentParams
	if err := req.UnmarshalParams(&params); err != nil {
		return nil, err
	}
	if len(params.ContentChanges) == 0 {
		return nil, nil
	}

	// Full sync, so the last change carries the complete new text.
	text := params.ContentChanges[len(params.ContentChanges)-1].Text
	s.logger.Debug("didChange",
		zap.String("uri", string(params.TextDocument.URI)),
		zap.Int("version", params.TextDocument.Version))
	s.openDocument(params.TextDocument.URI, text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, params.TextDocument.URI)
	return nil, nil
}

func (s *Server) handleDidSave(ctx context.Context, req *jrpc2.Request) (any, error) {
	if !req.HasParams() {
		return nil, jrpc2.Errorf(jrpc2.InvalidParams, "missing parameters")
	}
	var params DidSaveTextDocumentParams
	if err := req.UnmarshalParams(&params); err != nil {
		return nil, err
	}

	if params.Text != nil {
		s.mu.Lock()
		if doc, ok := s.files[params.TextDocument.URI]; ok {
			doc.text = *params.Text
		}
		s.mu.Unlock()
	}
	s.publishDiagnostics(ctx, params.TextDocument.URI)
	return nil, nil
}

func (s *Server) handleDidClose(ctx context.Context, req *jrpc2.Request) (any, error) {
	if !req.HasParams() {
		return nil, jrpc2.Errorf(jrpc2.InvalidParams, "missing parameters")
	}
	var params DidCloseTextDocumentParams
	if err := req.UnmarshalParams(&params); err != nil {
		return nil, err
	}

	s.closeDocument(params.TextDocument.URI)
	// An empty publish clears the client's markers for the file.
	s.publishDiagnostics(ctx, params.TextDocument.URI)
	return nil, nil
}

//--------------------------------------------------------------------------
// Document state

func (s *Server) openDocument(uri DocumentURI, text string, version int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[uri] = &document{text: text, version: version}
}

func (s *Server) closeDocument(uri DocumentURI) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, uri)
}

// documentDiagnostics checks the tracked text for uri. A document that is
// not open yields no diagnostics, which doubles as the clear-on-close
// payload.
func (s *Server) documentDiagnostics(uri DocumentURI) ([]Diagnostic, int) {
	s.mu.Lock()
	doc, ok := s.files[uri]
	var text string
	var version int
	if ok {
		text = doc.text
		version = doc.version
	}
	s.mu.Unlock()

	diagnostics := []Diagnostic{}
	if ok {
		diagnostics = toProtocol(lox.Check(text))
	}
	return diagnostics, version
}

func (s *Server) publishDiagnostics(ctx context.Context, uri DocumentURI) {
	diagnostics, version := s.documentDiagnostics(uri)
	if s.rpc == nil {
		return
	}
	err := s.rpc.Notify(ctx, "textDocument/publishDiagnostics", &PublishDiagnosticsParams{
		URI:         uri,
		Version:     version,
		Diagnostics: diagnostics,
	})
	if err != nil {
		s.logger.Error("publish diagnostics", zap.String("uri", string(uri)), zap.Error(err))
		return
	}
	s.logger.Debug("published diagnostics",
		zap.String("uri", string(uri)),
		zap.Int("count", len(diagnostics)))
}

// toProtocol converts the pipeline's 1-based positions to 0-based wire
// positions.
func toProtocol(diags []lox.Diagnostic) []Diagnostic {
	out := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		line := d.Line - 1
		if line < 0 {
			line = 0
		}
		character := d.Column - 1
		if character < 0 {
			character = 0
		}
		length := d.Length
		if length < 1 {
			length = 1
		}
		out = append(out, Diagnostic{
			Range: Range{
				Start: Position{Line: line, Character: character},
				End:   Position{Line: line, Character: character + length},
			},
			Severity: SeverityError,
			Source:   "lox",
			Message:  d.Message,
		})
	}
	return out
}
