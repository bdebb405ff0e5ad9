package main

import (
	"time"

	"github.com/scott-cotton/cli"

	"github.com/signadot/clangfmt/pipeline"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{ClangFormat: pipeline.DefaultCommand, Timeout: time.Minute}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "line-width",
			Description: "default line width, ColumnLimit",
			Type:        cli.NamedFuncOpt(cfg.lineWidthOpt, "(n)"),
		},
		&cli.Opt{
			Name:        "indent-width",
			Description: "default indent width, IndentWidth",
			Type:        cli.NamedFuncOpt(cfg.indentWidthOpt, "(n)"),
		},
		&cli.Opt{
			Name:        "use-tabs",
			Description: "indent with tabs by default, UseTab",
			Type:        cli.NamedFuncOpt(cfg.useTabsOpt, "(bool)"),
		},
		&cli.Opt{
			Name:        "new-line-kind",
			Description: "default line endings: auto, lf, crlf, system",
			Type:        cli.NamedFuncOpt(cfg.newLineKindOpt, "(kind)"),
		},
		&cli.Opt{
			Name:        "timeout",
			Description: "time limit for formatting one file (default 1m)",
			Type:        cli.NamedFuncOpt(cfg.timeoutOpt, "(duration)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "clangfmt").
		WithSynopsis("clangfmt [opts] command [opts]").
		WithDescription("clangfmt formats source files with clang-format under host configuration.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return clangfmtMain(cfg, cc, args)
		}).
		WithSubs(
			FormatCommand(cfg),
			ConfigCommand(cfg),
			InfoCommand(cfg),
			LicenseCommand(cfg))
}

func FormatCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FormatConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Format, "format").
		WithAliases("f", "fmt").
		WithSynopsis("format [-w | -d | -check] [-j n] [files or directories]").
		WithDescription("format files, directories of supported files, or stdin when none are given").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return format(cfg, cc, args)
		})
}

func ConfigCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ConfigConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Config, "config").
		WithAliases("cfg").
		WithSynopsis("config [-f file]").
		WithDescription("print the resolved configuration, its diagnostics and the clang-format style flag").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return showConfig(cfg, cc, args)
		})
}

func InfoCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &InfoConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Info, "info").
		WithSynopsis("info").
		WithDescription("print plugin information as json").
		WithRun(func(cc *cli.Context, args []string) error {
			return info(cfg, cc, args)
		})
}

func LicenseCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &LicenseConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.License, "license").
		WithSynopsis("license").
		WithDescription("print the license").
		WithRun(func(cc *cli.Context, args []string) error {
			return license(cfg, cc, args)
		})
}
