package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/appcove/AS3/debug"
	"github.com/appcove/AS3/format"
	"github.com/appcove/AS3/ir"
	"github.com/appcove/AS3/parse"
	"github.com/appcove/AS3/schema"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/parser"
	"go.lsp.dev/protocol"
)

type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

type document struct {
	uri     string
	content string
	version int32
}

func (ds *documentStore) get(uri string) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[uri]
}

func (ds *documentStore) put(uri string, content string, version int32) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.docs[uri] = &document{
		uri:     uri,
		content: content,
		version: version,
	}
}

func (ds *documentStore) remove(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

func (s *Server) loadSchema() {
	d, err := os.ReadFile(s.schemaPath)
	if err == nil {
		s.schema, err = schema.Parse(d)
	}
	if err != nil {
		s.schema = nil
		if debug.LSP() {
			debug.Logf("as3-lsp: schema %s: %v\n", s.schemaPath, err)
		}
	}
}

func (s *Server) publishDiagnostics(ctx context.Context, uri string) {
	doc := s.docs.get(uri)
	if doc == nil {
		return
	}

	diagnostics := s.validateDocument(doc)

	if s.conn != nil {
		s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
			URI:         protocol.DocumentURI(uri),
			Diagnostics: diagnostics,
		})
	}
}

func (s *Server) validateDocument(doc *document) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	content := []byte(doc.content)

	// A YAML mapping with a top-level Root field is a schema
	// document; everything else is data.
	if isSchemaDoc(content) {
		_, err := schema.Parse(content)
		if err == nil {
			return diagnostics
		}
		diagnostic := protocol.Diagnostic{
			Severity: protocol.DiagnosticSeverityError,
			Message:  err.Error(),
			Source:   "as3",
		}
		var serr *schema.SchemaError
		if errors.As(err, &serr) {
			if rng, ok := contentRange(content, serr.Path); ok {
				diagnostic.Range = rng
			}
		}
		return append(diagnostics, diagnostic)
	}

	node, err := parse.Parse(content, s.parseOpts(doc.uri)...)
	if err != nil {
		diagnostic := protocol.Diagnostic{
			Severity: protocol.DiagnosticSeverityError,
			Message:  err.Error(),
			Source:   "as3",
		}
		if pos := extractPosition(err.Error()); pos != nil {
			diagnostic.Range = protocol.Range{
				Start: protocol.Position{
					Line:      uint32(pos.line),
					Character: uint32(pos.col),
				},
				End: protocol.Position{
					Line:      uint32(pos.line),
					Character: uint32(pos.col + 1),
				},
			}
		}
		return append(diagnostics, diagnostic)
	}

	if s.schema == nil {
		return diagnostics
	}
	res := s.schema.Validate(node)
	for _, v := range res.Violations {
		diagnostic := protocol.Diagnostic{
			Severity: protocol.DiagnosticSeverityError,
			Code:     v.Kind.String(),
			Message:  v.Message,
			Source:   "as3",
		}
		if rng, ok := contentRange(content, v.Path); ok {
			diagnostic.Range = rng
		}
		diagnostics = append(diagnostics, diagnostic)
	}
	return diagnostics
}

func (s *Server) parseOpts(uri string) []parse.ParseOption {
	return []parse.ParseOption{parse.ParseFormat(format.DetectFormat(uri))}
}

func isSchemaDoc(content []byte) bool {
	node, err := parse.Parse(content, parse.ParseYAML())
	if err != nil {
		return false
	}
	return node.Type == ir.ObjectType && ir.Get(node, "Root") != nil
}

// contentRange locates a violation path in the document source. A path
// that names something absent from the document, such as a missing
// required field, falls back to its nearest present ancestor.
func contentRange(content []byte, p ir.Path) (protocol.Range, bool) {
	file, err := parser.ParseBytes(content, 0)
	if err != nil {
		return protocol.Range{}, false
	}
	for ; len(p) > 0; p = p[:len(p)-1] {
		pb := (&yaml.PathBuilder{}).Root()
		for _, seg := range p {
			if seg.IsIndex() {
				pb = pb.Index(uint(seg.Index))
			} else {
				pb = pb.Child(seg.Field)
			}
		}
		node, err := pb.Build().FilterFile(file)
		if err != nil || node == nil {
			continue
		}
		tok := node.GetToken()
		if tok == nil || tok.Position == nil {
			continue
		}
		if tok.Position.Line < 1 || tok.Position.Column < 1 {
			continue
		}
		line := uint32(tok.Position.Line - 1)
		col := uint32(tok.Position.Column - 1)
		return protocol.Range{
			Start: protocol.Position{Line: line, Character: col},
			End:   protocol.Position{Line: line, Character: col + uint32(len(tok.Value))},
		}, true
	}
	return protocol.Range{}, false
}

type position struct {
	line int
	col  int
}

// extractPosition scans a decode error for the "[line:col]" marker the
// YAML decoder emits. Lines and columns there are 1-based.
func extractPosition(errMsg string) *position {
	var line, col int
	if _, err := fmt.Sscanf(errMsg, "%*[^[][%d:%d]", &line, &col); err != nil {
		return nil
	}
	if line < 1 || col < 1 {
		return nil
	}
	return &position{line: line - 1, col: col - 1}
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.docs.put(string(params.TextDocument.URI), params.TextDocument.Text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, string(params.TextDocument.URI))
	return nil
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil
	}

	content := doc.content
	for _, change := range params.ContentChanges {
		// A zero range means full document replacement.
		rv := change.Range
		if rv.Start.Line == 0 && rv.Start.Character == 0 && rv.End.Line == 0 && rv.End.Character == 0 {
			content = change.Text
			continue
		}
		start := offsetAt(content, int(rv.Start.Line), int(rv.Start.Character))
		end := offsetAt(content, int(rv.End.Line), int(rv.End.Character))
		if start <= end && end <= len(content) {
			content = content[:start] + change.Text + content[end:]
		}
	}

	s.docs.put(string(params.TextDocument.URI), content, params.TextDocument.Version)
	s.publishDiagnostics(ctx, string(params.TextDocument.URI))
	return nil
}

func (s *Server) DidSave(ctx context.Context, params *protocol.DidSaveTextDocumentParams) error {
	if s.schemaPath != "" && strings.HasSuffix(string(params.TextDocument.URI), filepath.Base(s.schemaPath)) {
		s.loadSchema()
	}
	s.publishDiagnostics(ctx, string(params.TextDocument.URI))
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.remove(string(params.TextDocument.URI))
	return nil
}

// offsetAt maps a line and column to a byte offset in content. Columns
// count runes within the line.
func offsetAt(content string, line, col int) int {
	curLine, curCol := 0, 0
	for i, r := range content {
		if curLine == line && curCol == col {
			return i
		}
		if r == '\n' {
			curLine++
			curCol = 0
		} else {
			curCol++
		}
	}
	return len(content)
}
