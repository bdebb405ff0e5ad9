package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/signadot/clangfmt/config"
	"github.com/signadot/clangfmt/pipeline"
)

const fakeToolEnv = "CLANGFMT_LSP_FAKE_TOOL"

func TestMain(m *testing.M) {
	if mode := os.Getenv(fakeToolEnv); mode != "" {
		os.Exit(fakeTool(mode))
	}
	os.Exit(m.Run())
}

func fakeTool(mode string) int {
	d, _ := io.ReadAll(os.Stdin)
	switch mode {
	case "space":
		s := strings.ReplaceAll(string(d), "=", " = ")
		if !strings.HasSuffix(s, "\n") {
			s += "\n"
		}
		fmt.Print(s)
	case "fail":
		fmt.Fprint(os.Stderr, "YAML:1:2: error: unknown key 'Bogus'\n")
		return 1
	default:
		return 2
	}
	return 0
}

const docURI = protocol.DocumentURI("file:///src/a.cc")

func newTestServer(t *testing.T, mode string, spec *ServerSpec) (*Server, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	if spec == nil {
		spec = &ServerSpec{}
	}
	spec.Logger = zap.New(core)
	if spec.Runner == nil {
		spec.Runner = pipeline.New(
			pipeline.WithCommand(os.Args[0]),
			pipeline.WithEnv(append(os.Environ(), fakeToolEnv+"="+mode)))
	}
	return NewServer(context.Background(), spec), logs
}

func open(t *testing.T, s *Server, text string) {
	t.Helper()
	err := s.DidOpen(context.Background(), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: docURI, LanguageID: "cpp", Version: 1, Text: text},
	})
	if err != nil {
		t.Fatal(err)
	}
}

func formatDoc(s *Server, opts protocol.FormattingOptions) ([]protocol.TextEdit, error) {
	return s.Formatting(context.Background(), &protocol.DocumentFormattingParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: docURI},
		Options:      opts,
	})
}

func TestInitialize(t *testing.T) {
	s, _ := newTestServer(t, "space", nil)
	res, err := s.Initialize(context.Background(), &protocol.InitializeParams{})
	if err != nil {
		t.Fatal(err)
	}
	if res.ServerInfo.Name != lsName {
		t.Errorf("server name %q", res.ServerInfo.Name)
	}
	if res.Capabilities.DocumentFormattingProvider != true || res.Capabilities.DocumentRangeFormattingProvider != true {
		t.Errorf("formatting not advertised: %+v", res.Capabilities)
	}
}

func TestFormatting(t *testing.T) {
	s, _ := newTestServer(t, "space", nil)
	open(t, s, "int x=1;")
	edits, err := formatDoc(s, protocol.FormattingOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if got := applyEdits("int x=1;", edits); got != "int x = 1;\n" {
		t.Errorf("got %q", got)
	}
}

func TestFormattingUnchanged(t *testing.T) {
	s, _ := newTestServer(t, "space", nil)
	open(t, s, "int x;\n")
	edits, err := formatDoc(s, protocol.FormattingOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if edits == nil || len(edits) != 0 {
		t.Errorf("expected empty edits, got %v", edits)
	}
}

func TestFormattingUsesLatestText(t *testing.T) {
	s, _ := newTestServer(t, "space", nil)
	open(t, s, "int x;\n")
	err := s.DidChange(context.Background(), &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: docURI},
			Version:                2,
		},
		ContentChanges: []protocol.TextDocumentContentChangeEvent{{Text: "int y;\n"}, {Text: "int a=b;\n"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	edits, err := formatDoc(s, protocol.FormattingOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if got := applyEdits("int a=b;\n", edits); got != "int a = b;\n" {
		t.Errorf("got %q", got)
	}
}

func TestFormattingUnknownDocument(t *testing.T) {
	s, _ := newTestServer(t, "space", nil)
	open(t, s, "int x=1;")
	if err := s.DidClose(context.Background(), &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: docURI},
	}); err != nil {
		t.Fatal(err)
	}
	edits, err := formatDoc(s, protocol.FormattingOptions{})
	if err != nil || edits != nil {
		t.Errorf("unexpected %v %v", edits, err)
	}
}

func TestFormattingFailure(t *testing.T) {
	s, logs := newTestServer(t, "fail", nil)
	open(t, s, "int x;")
	_, err := formatDoc(s, protocol.FormattingOptions{})
	if err == nil || err.Error() != "YAML:1:2: error: unknown key 'Bogus'\n" {
		t.Fatalf("unexpected error %v", err)
	}
	if n := logs.FilterLevelExact(zapcore.ErrorLevel).Len(); n != 1 {
		t.Errorf("expected one error log, got %d", n)
	}
	// a failure does not stick
	s.runner = pipeline.New(
		pipeline.WithCommand(os.Args[0]),
		pipeline.WithEnv(append(os.Environ(), fakeToolEnv+"=space")))
	if _, err := formatDoc(s, protocol.FormattingOptions{}); err != nil {
		t.Errorf("unexpected error after failure: %v", err)
	}
}

func TestRangeFormatting(t *testing.T) {
	s, _ := newTestServer(t, "", &ServerSpec{Runner: pipeline.New(pipeline.WithCommand("/nonexistent/clang-format"))})
	open(t, s, "int x=1;\nint y=2;\n")
	edits, err := s.RangeFormatting(context.Background(), &protocol.DocumentRangeFormattingParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: docURI},
		Range:        protocol.Range{Start: pos(0, 0), End: pos(1, 0)},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(edits) != 0 {
		t.Errorf("expected no edits, got %v", edits)
	}
}

func resolvedJSON(t *testing.T, cfg *config.Configuration) string {
	t.Helper()
	d, err := cfg.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	return string(d)
}

func TestConfigLayers(t *testing.T) {
	file := config.FromNode(mustNode(t, map[string]any{
		"lineWidth":   float64(120),
		"newLineKind": "crlf",
	}))
	s, _ := newTestServer(t, "space", &ServerSpec{File: file})
	_, err := s.Initialize(context.Background(), &protocol.InitializeParams{
		InitializationOptions: map[string]any{
			"lineWidth": float64(100),
			"clang":     map[string]any{"BasedOnStyle": "Google"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	opts := protocol.FormattingOptions{TabSize: 4, InsertSpaces: true}
	got := resolvedJSON(t, s.configFor(context.Background(), opts))
	want := `{"newLineKind":"crlf","ColumnLimit":100,"IndentWidth":4,"BasedOnStyle":"Google"}`
	if got != want {
		t.Errorf("got %s\nwant %s", got, want)
	}

	err = s.DidChangeConfiguration(context.Background(), &protocol.DidChangeConfigurationParams{
		Settings: map[string]any{"clangfmt": map[string]any{"clang": map[string]any{"IndentWidth": float64(8)}}},
	})
	if err != nil {
		t.Fatal(err)
	}
	got = resolvedJSON(t, s.configFor(context.Background(), protocol.FormattingOptions{TabSize: 2}))
	want = `{"newLineKind":"crlf","ColumnLimit":120,"UseTab":"Always","BasedOnStyle":"InheritParentConfig","IndentWidth":8}`
	if got != want {
		t.Errorf("got %s\nwant %s", got, want)
	}
}

func TestConfigDiagnosticsLoggedOnce(t *testing.T) {
	s, logs := newTestServer(t, "space", nil)
	err := s.DidChangeConfiguration(context.Background(), &protocol.DidChangeConfigurationParams{
		Settings: map[string]any{"newLineKind": float64(5)},
	})
	if err != nil {
		t.Fatal(err)
	}
	for range 3 {
		s.configFor(context.Background(), protocol.FormattingOptions{})
	}
	warns := logs.FilterLevelExact(zapcore.WarnLevel).All()
	if len(warns) != 1 {
		t.Fatalf("expected one warning, got %d", len(warns))
	}
	if want := "clang configuration: newLineKind: expected a string, got Number"; warns[0].Message != want {
		t.Errorf("got %q want %q", warns[0].Message, want)
	}
}

func TestBadSettings(t *testing.T) {
	s, logs := newTestServer(t, "space", nil)
	if err := s.DidChangeConfiguration(context.Background(), &protocol.DidChangeConfigurationParams{
		Settings: []any{float64(1)},
	}); err != nil {
		t.Fatal(err)
	}
	if n := logs.FilterMessageSnippet("ignoring clangfmt settings").Len(); n != 1 {
		t.Errorf("expected a warning, got %d", n)
	}
	if s.settings != nil {
		t.Errorf("bad settings were kept")
	}
}

func TestExit(t *testing.T) {
	var codes []int
	s, _ := newTestServer(t, "space", &ServerSpec{Exit: func(code int) { codes = append(codes, code) }})
	s.Exit(context.Background())
	s.Shutdown(context.Background())
	s.Exit(context.Background())
	if len(codes) != 2 || codes[0] != 1 || codes[1] != 0 {
		t.Errorf("unexpected exit codes %v", codes)
	}
}

func TestDocumentPath(t *testing.T) {
	if got := (&document{uri: "untitled:Untitled-1"}).path(); got != "" {
		t.Errorf("got %q", got)
	}
	if got := (&document{uri: docURI}).path(); !strings.HasSuffix(got, "a.cc") {
		t.Errorf("got %q", got)
	}
}
