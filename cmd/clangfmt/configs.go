package main

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/signadot/clangfmt/config"
	"github.com/signadot/clangfmt/pipeline"
)

type MainConfig struct {
	ConfigFile  string `cli:"name=c aliases=config desc='host configuration file, json or yaml'"`
	ClangFormat string `cli:"name=clang-format desc='clang-format executable' default=clang-format"`
	Color       bool   `cli:"name=color desc='color diff output'"`
	Gops        bool   `cli:"name=gops desc='start a gops agent'"`

	// Global holds host defaults given on the command line, they override
	// the configuration file.
	Global  config.GlobalConfig
	Timeout time.Duration

	Main *cli.Command
}

func (cfg *MainConfig) lineWidthOpt(_ *cli.Context, a string) (any, error) {
	n, err := strconv.ParseUint(a, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: line width: %w", cli.ErrUsage, err)
	}
	w := uint32(n)
	cfg.Global.LineWidth = &w
	return w, nil
}

func (cfg *MainConfig) indentWidthOpt(_ *cli.Context, a string) (any, error) {
	n, err := strconv.ParseUint(a, 10, 8)
	if err != nil {
		return nil, fmt.Errorf("%w: indent width: %w", cli.ErrUsage, err)
	}
	w := uint8(n)
	cfg.Global.IndentWidth = &w
	return w, nil
}

func (cfg *MainConfig) useTabsOpt(_ *cli.Context, a string) (any, error) {
	b, err := strconv.ParseBool(a)
	if err != nil {
		return nil, fmt.Errorf("%w: use tabs: %w", cli.ErrUsage, err)
	}
	cfg.Global.UseTabs = &b
	return b, nil
}

func (cfg *MainConfig) newLineKindOpt(_ *cli.Context, a string) (any, error) {
	k, err := config.ParseNewLineKind(a)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.Global.NewLineKind = &k
	return k, nil
}

func (cfg *MainConfig) timeoutOpt(_ *cli.Context, a string) (any, error) {
	d, err := time.ParseDuration(a)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.Timeout = d
	return d, nil
}

// resolve loads the configuration file, if any, and resolves it under the
// command line defaults.
func (cfg *MainConfig) resolve() (*config.Result, error) {
	f := &config.File{}
	if cfg.ConfigFile != "" {
		var err error
		f, err = config.LoadFile(cfg.ConfigFile)
		if err != nil {
			return nil, err
		}
	}
	return f.Resolve(cfg.Global), nil
}

func (cfg *MainConfig) runner(opts ...pipeline.Option) *pipeline.Runner {
	return pipeline.New(append([]pipeline.Option{
		pipeline.WithCommand(cfg.ClangFormat),
		pipeline.WithTimeout(cfg.Timeout),
	}, opts...)...)
}

// colored reports whether diff output to w is colored: -color when given,
// otherwise whether w is a terminal.
func (cfg *MainConfig) colored(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	if cfg.Main != nil {
		for _, opt := range cfg.Main.Opts {
			if opt.Name == "color" && opt.Value != nil {
				return false
			}
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type FormatConfig struct {
	*MainConfig
	Write          bool `cli:"name=w aliases=write desc='write results to files instead of stdout'"`
	Diff           bool `cli:"name=d aliases=diff desc='print diffs instead of formatted text'"`
	Check          bool `cli:"name=check desc='list files that need formatting and exit 1 if any'"`
	Jobs           int  `cli:"name=j aliases=jobs desc='number of files formatted concurrently'"`
	AssumeFilename bool `cli:"name=assume-filename desc='pass file paths to clang-format'"`

	Format *cli.Command
}

func (cfg *FormatConfig) jobs() int {
	if cfg.Jobs > 0 {
		return cfg.Jobs
	}
	return min(8, runtime.NumCPU())
}

type ConfigConfig struct {
	*MainConfig
	File string `cli:"name=f desc='document used to resolve newLineKind auto'"`

	Config *cli.Command
}

type InfoConfig struct {
	*MainConfig
	Info *cli.Command
}

type LicenseConfig struct {
	*MainConfig
	License *cli.Command
}
