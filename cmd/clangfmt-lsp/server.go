package main

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/signadot/clangfmt/config"
	"github.com/signadot/clangfmt/ir"
	"github.com/signadot/clangfmt/pipeline"
	"github.com/signadot/clangfmt/plugin"
	"github.com/signadot/clangfmt/supervise"
)

// parentInterval is how often a watched parent process is polled.
var parentInterval = supervise.DefaultInterval

type ServerSpec struct {
	Logger *zap.Logger
	// Client receives log messages, it may be nil.
	Client protocol.Client
	Runner *pipeline.Runner
	// File is the host configuration given on the command line, it may
	// be nil.
	File *config.File
	Exit func(code int)
}

type Server struct {
	ctx    context.Context
	log    *zap.Logger
	client protocol.Client
	runner *pipeline.Runner
	docs   *documentStore
	exit   func(int)

	mu         sync.Mutex
	file       *config.File
	settings   *ir.Node
	clientFile *config.File
	lastDiags  []config.Diagnostic
	watching   bool
	shutdown   bool
}

func NewServer(ctx context.Context, spec *ServerSpec) *Server {
	s := &Server{
		ctx:    ctx,
		log:    spec.Logger,
		client: spec.Client,
		runner: spec.Runner,
		docs:   newDocumentStore(),
		exit:   spec.Exit,
		file:   spec.File,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.runner == nil {
		s.runner = pipeline.New()
	}
	return s
}

func (s *Server) Initialize(ctx context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	s.setSettings(ctx, params.InitializationOptions)
	if params.ProcessID > 0 {
		s.watchParent(int(params.ProcessID))
	}
	capabilities := protocol.ServerCapabilities{
		TextDocumentSync: &protocol.TextDocumentSyncOptions{
			Change:    protocol.TextDocumentSyncKindFull,
			OpenClose: true,
		},
		DocumentFormattingProvider:      true,
		DocumentRangeFormattingProvider: true,
	}
	return &protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.ServerInfo{
			Name:    lsName,
			Version: plugin.Version(),
		},
	}, nil
}

func (s *Server) Initialized(ctx context.Context, params *protocol.InitializedParams) error {
	s.log.Debug("initialized")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shutdown = true
	return nil
}

func (s *Server) Exit(ctx context.Context) error {
	s.mu.Lock()
	code := 1
	if s.shutdown {
		code = 0
	}
	s.mu.Unlock()
	s.log.Info("exit", zap.Int("code", code))
	if s.exit != nil {
		s.exit(code)
	}
	return nil
}

// watchParent exits the server when pid exits. Only the first call has
// an effect.
func (s *Server) watchParent(pid int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watching {
		return
	}
	s.watching = true
	s.log.Debug("watching parent", zap.Int("pid", pid))
	go supervise.Watch(s.ctx, pid, parentInterval, func() {
		s.log.Info("parent process exited", zap.Int("pid", pid))
		if s.exit != nil {
			s.exit(1)
		}
	})
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	td := &params.TextDocument
	s.docs.put(td.URI, td.Text, td.Version)
	return nil
}

// DidChange takes the last change as the whole document, sync is full.
func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	text := params.ContentChanges[len(params.ContentChanges)-1].Text
	s.docs.put(params.TextDocument.URI, text, params.TextDocument.Version)
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.remove(params.TextDocument.URI)
	return nil
}

func (s *Server) DidChangeConfiguration(ctx context.Context, params *protocol.DidChangeConfigurationParams) error {
	s.setSettings(ctx, params.Settings)
	return nil
}

// setSettings replaces the client supplied host configuration.
func (s *Server) setSettings(ctx context.Context, v any) {
	n, err := settingsNode(v)
	if err != nil {
		s.logMessage(ctx, protocol.MessageTypeWarning, fmt.Sprintf("ignoring %s settings: %v", plugin.Name, err))
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settings != nil && n != nil && ir.Compare(s.settings, n) == 0 {
		return
	}
	s.settings = n
	s.clientFile = nil
	if n != nil {
		s.clientFile = config.FromNode(n)
	}
	s.lastDiags = nil
	s.log.Debug("settings changed", zap.Bool("empty", n == nil))
}

// settingsNode converts client settings into a host configuration object.
// Settings may be namespaced under the plugin name.
func settingsNode(v any) (*ir.Node, error) {
	if v == nil {
		return nil, nil
	}
	n, err := ir.FromAny(v)
	if err != nil {
		return nil, err
	}
	if sub := ir.Get(n, plugin.Name); sub != nil {
		n = sub
	}
	switch n.Type {
	case ir.NullType:
		return nil, nil
	case ir.ObjectType:
		return n, nil
	default:
		return nil, fmt.Errorf("expected an object, got %s", n.Type)
	}
}

// configFor resolves the configuration for one formatting request. Client
// settings win over the command line file, which wins over the editor's
// formatting options. Diagnostics are logged to the client when they
// change.
func (s *Server) configFor(ctx context.Context, opts protocol.FormattingOptions) *config.Configuration {
	s.mu.Lock()
	f := s.clientFile.Merge(s.file).Merge(editorFile(opts))
	res := f.Resolve(config.GlobalConfig{})
	changed := !slices.Equal(res.Diagnostics, s.lastDiags)
	if changed {
		s.lastDiags = res.Diagnostics
	}
	s.mu.Unlock()
	if changed {
		for _, d := range res.Diagnostics {
			s.logMessage(ctx, protocol.MessageTypeWarning, fmt.Sprintf("%s configuration: %s", config.ConfigKey, d))
		}
	}
	return res.Config
}

// editorFile derives defaults from the editor's formatting options, which
// carry no meaning when the tab size is zero.
func editorFile(opts protocol.FormattingOptions) *config.File {
	f := &config.File{}
	if opts.TabSize == 0 {
		return f
	}
	if opts.TabSize <= 255 {
		w := uint8(opts.TabSize)
		f.Global.IndentWidth = &w
	}
	useTabs := !opts.InsertSpaces
	f.Global.UseTabs = &useTabs
	return f
}

func (s *Server) logMessage(ctx context.Context, typ protocol.MessageType, msg string) {
	switch typ {
	case protocol.MessageTypeError:
		s.log.Error(msg)
	case protocol.MessageTypeWarning:
		s.log.Warn(msg)
	default:
		s.log.Info(msg)
	}
	if s.client == nil {
		return
	}
	if err := s.client.LogMessage(ctx, &protocol.LogMessageParams{Type: typ, Message: msg}); err != nil {
		s.log.Debug("log message", zap.Error(err))
	}
}

func (s *Server) Formatting(ctx context.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc := s.docs.get(params.TextDocument.URI)
	if doc == nil {
		s.log.Warn("format request for unknown document", zap.String("uri", string(params.TextDocument.URI)))
		return nil, nil
	}
	return s.format(ctx, doc, nil, params.Options)
}

// RangeFormatting is accepted but never changes the document.
func (s *Server) RangeFormatting(ctx context.Context, params *protocol.DocumentRangeFormattingParams) ([]protocol.TextEdit, error) {
	doc := s.docs.get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	r := &pipeline.Range{
		Start: offset(doc.content, params.Range.Start),
		End:   offset(doc.content, params.Range.End),
	}
	return s.format(ctx, doc, r, params.Options)
}

func (s *Server) format(ctx context.Context, doc *document, r *pipeline.Range, opts protocol.FormattingOptions) ([]protocol.TextEdit, error) {
	start := time.Now()
	out := s.runner.Run(ctx, &pipeline.Request{
		Text:   doc.content,
		Range:  r,
		Config: s.configFor(ctx, opts),
		Path:   doc.path(),
	})
	s.log.Debug("format",
		zap.String("uri", string(doc.uri)),
		zap.Int32("version", doc.version),
		zap.Stringer("outcome", out.Kind),
		zap.Duration("took", time.Since(start)))
	switch out.Kind {
	case pipeline.Rewritten:
		return textEdits(doc.content, out.Text), nil
	case pipeline.Failed:
		s.logMessage(ctx, protocol.MessageTypeError, fmt.Sprintf("%s: %s", doc.uri, out.Message()))
		return nil, out.Err
	default:
		return []protocol.TextEdit{}, nil
	}
}
