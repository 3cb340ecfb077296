// Package lsp serves the documentation generator to editors over the
// Language Server Protocol. Formatting a document adds the missing
// documentation tags; the same edit is offered as a source code action.
package lsp

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/tsdoc/edit"
	"github.com/dhamidi/tsdoc/jsdoc"
	"github.com/dhamidi/tsdoc/workspace"
)

const lsName = "tsdoc"

// GenerateTitle is the title of the code action.
const GenerateTitle = "Generate documentation tags"

var log = commonlog.GetLogger("tsdoc.lsp")

type Server struct {
	docs    *Documents
	opts    jsdoc.Options
	handler protocol.Handler
	server  *server.Server
	version string
}

func NewServer(version string) *Server {
	ls := &Server{
		docs:    NewDocuments(),
		opts:    workspace.DefaultConfig().Options(),
		version: version,
	}

	ls.handler = protocol.Handler{
		Initialize:             ls.initialize,
		Initialized:            ls.initialized,
		Shutdown:               ls.shutdown,
		SetTrace:               ls.setTrace,
		TextDocumentDidOpen:    ls.textDocumentDidOpen,
		TextDocumentDidChange:  ls.textDocumentDidChange,
		TextDocumentDidClose:   ls.textDocumentDidClose,
		TextDocumentDidSave:    ls.textDocumentDidSave,
		TextDocumentFormatting: ls.textDocumentFormatting,
		TextDocumentCodeAction: ls.textDocumentCodeAction,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	cfg, err := workspace.LoadConfig(rootDir)
	if err != nil {
		log.Warningf("%s: using defaults: %s", rootDir, err)
		cfg = workspace.DefaultConfig()
	}
	ls.opts = cfg.Options()

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	capabilities.CodeActionProvider = &protocol.CodeActionOptions{
		CodeActionKinds: []protocol.CodeActionKind{protocol.CodeActionKindSource},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.docs.Update(path, params.TextDocument.Text)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.docs.Update(path, textChange.Text)
		}
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	if path, err := uriToPath(params.TextDocument.URI); err == nil {
		ls.docs.Remove(path)
	}
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		ls.docs.Update(path, *params.Text)
	}
	return nil
}

func (ls *Server) textDocumentFormatting(ctx *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	edits, err := ls.edits(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	log.Debugf("formatting %s: %d edits", params.TextDocument.URI, len(edits))
	return edits, nil
}

func (ls *Server) textDocumentCodeAction(ctx *glsp.Context, params *protocol.CodeActionParams) (any, error) {
	if only := params.Context.Only; len(only) > 0 && !wantsSource(only) {
		return nil, nil
	}

	uri := params.TextDocument.URI
	edits, err := ls.edits(uri)
	if err != nil || len(edits) == 0 {
		return nil, err
	}
	log.Debugf("code action for %s: %d edits", uri, len(edits))

	kind := protocol.CodeActionKindSource
	return []protocol.CodeAction{{
		Title: GenerateTitle,
		Kind:  &kind,
		Edit: &protocol.WorkspaceEdit{
			Changes: map[protocol.DocumentUri][]protocol.TextEdit{uri: edits},
		},
	}}, nil
}

// edits returns the insertions for an open document as zero-width text
// edits.
func (ls *Server) edits(uri protocol.DocumentUri) ([]protocol.TextEdit, error) {
	path, err := uriToPath(uri)
	if err != nil {
		return nil, nil
	}
	text, ok := ls.docs.Get(path)
	if !ok {
		return nil, nil
	}
	return TextEdits(text, jsdoc.Insertions(text, ls.opts))
}

// TextEdits converts insertions into text edits. Insertions at the same
// offset are merged in the order they are applied, so that clients that
// do not keep the order of equal ranges produce the same text.
func TextEdits(text string, ins []edit.Insertion) ([]protocol.TextEdit, error) {
	ins = append([]edit.Insertion(nil), ins...)
	edit.Sort(ins)

	pos := newPositions(text)
	var edits []protocol.TextEdit
	for i := 0; i < len(ins); {
		off := min(max(ins[i].Offset, 0), len(text))
		var sb strings.Builder
		for ; i < len(ins) && min(max(ins[i].Offset, 0), len(text)) == off; i++ {
			sb.WriteString(ins[i].Text)
		}

		p, err := pos.At(off)
		if err != nil {
			return nil, fmt.Errorf("text edit: %w", err)
		}
		edits = append(edits, protocol.TextEdit{
			Range:   protocol.Range{Start: p, End: p},
			NewText: sb.String(),
		})
	}
	return edits, nil
}

func wantsSource(kinds []protocol.CodeActionKind) bool {
	for _, k := range kinds {
		if k == protocol.CodeActionKindSource {
			return true
		}
	}
	return false
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
