package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/gops/agent"
	"github.com/scott-cotton/cli"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/signadot/clangfmt/config"
	"github.com/signadot/clangfmt/debug"
	"github.com/signadot/clangfmt/pipeline"
)

const lsName = "clangfmt-lsp"

func main() {
	cli.MainContext(context.Background(), MainCommand())
}

type LSPConfig struct {
	ConfigFile     string `cli:"name=c aliases=config desc='host configuration file, json or yaml'"`
	ClangFormat    string `cli:"name=clang-format desc='clang-format executable' default=clang-format"`
	ParentPID      int    `cli:"name=parent-pid desc='exit when the process with this pid exits'"`
	AssumeFilename bool   `cli:"name=assume-filename desc='pass document paths to clang-format'"`
	Gops           bool   `cli:"name=gops desc='start a gops agent'"`
	Timeout        time.Duration

	LSP *cli.Command
}

func (cfg *LSPConfig) timeoutOpt(_ *cli.Context, a string) (any, error) {
	d, err := time.ParseDuration(a)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.Timeout = d
	return d, nil
}

func MainCommand() *cli.Command {
	cfg := &LSPConfig{ClangFormat: pipeline.DefaultCommand, Timeout: 30 * time.Second}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "timeout",
		Description: "time limit for formatting one document (default 30s)",
		Type:        cli.NamedFuncOpt(cfg.timeoutOpt, "(duration)"),
	})
	return cli.NewCommandAt(&cfg.LSP, lsName).
		WithSynopsis(lsName + " [opts]").
		WithDescription("clangfmt-lsp serves clang-format document formatting over the language server protocol on stdio.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return serve(cfg, cc, args)
		})
}

func serve(cfg *LSPConfig, cc *cli.Context, args []string) error {
	args, err := cfg.LSP.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: unexpected arguments %q", cli.ErrUsage, args)
	}
	if cfg.Gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			fmt.Fprintf(os.Stderr, "gops agent failed: %v\n", err)
		}
	}
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	var file *config.File
	if cfg.ConfigFile != "" {
		file, err = config.LoadFile(cfg.ConfigFile)
		if err != nil {
			return err
		}
	}
	runner := pipeline.New(
		pipeline.WithCommand(cfg.ClangFormat),
		pipeline.WithTimeout(cfg.Timeout),
		pipeline.WithAssumeFilename(cfg.AssumeFilename))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(&stdioReadWriteCloser{
		read:  os.Stdin,
		write: os.Stdout,
	}))
	server := NewServer(ctx, &ServerSpec{
		Logger: logger,
		Client: protocol.ClientDispatcher(conn, logger.Named("client")),
		Runner: runner,
		File:   file,
		Exit:   os.Exit,
	})
	if cfg.ParentPID > 0 {
		server.watchParent(cfg.ParentPID)
	}
	conn.Go(ctx, protocol.Handlers(protocol.ServerHandler(server, jsonrpc2.MethodNotFoundHandler)))
	logger.Info("serving", zap.String("clang-format", runner.Command()))
	select {
	case <-conn.Done():
	case <-ctx.Done():
	}
	if err := conn.Err(); err != nil {
		logger.Debug("connection closed", zap.Error(err))
	}
	return nil
}

// newLogger logs to stderr, stdout carries the protocol.
func newLogger() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.Encoding = "console"
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	if debug.LSP() {
		zc.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return zc.Build()
}

type stdioReadWriteCloser struct {
	read  *os.File
	write *os.File
}

func (s *stdioReadWriteCloser) Read(p []byte) (n int, err error) {
	return s.read.Read(p)
}

func (s *stdioReadWriteCloser) Write(p []byte) (n int, err error) {
	return s.write.Write(p)
}

func (s *stdioReadWriteCloser) Close() error {
	return nil
}
