package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/scott-cotton/cli"
	"golang.org/x/sync/errgroup"

	"github.com/signadot/clangfmt/config"
	"github.com/signadot/clangfmt/libdiff"
	"github.com/signadot/clangfmt/pipeline"
	"github.com/signadot/clangfmt/plugin"
)

const stdinName = "<stdin>"

// Exit codes besides 0.
const (
	exitChanged = 1
	exitFailed  = 2
)

type job struct {
	path string
	mode fs.FileMode
	text string
	out  pipeline.Outcome
}

func (j *job) read() error {
	info, err := os.Stat(j.path)
	if err != nil {
		return err
	}
	d, err := os.ReadFile(j.path)
	if err != nil {
		return fmt.Errorf("could not read %q: %w", j.path, err)
	}
	j.mode = info.Mode().Perm()
	j.text = string(d)
	return nil
}

func (j *job) run(ctx context.Context, r *pipeline.Runner, cfg *config.Configuration) {
	req := &pipeline.Request{Text: j.text, Config: cfg}
	if j.path != stdinName {
		req.Path = j.path
	}
	j.out = r.Run(ctx, req)
}

// result is the formatted text, or the input when unchanged.
func (j *job) result() string {
	if j.out.Kind == pipeline.Rewritten {
		return j.out.Text
	}
	return j.text
}

func format(cfg *FormatConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Format.Parse(cc, args)
	if err != nil {
		return err
	}
	if count(cfg.Write, cfg.Diff, cfg.Check) > 1 {
		return fmt.Errorf("%w: must specify at most one of -w -d -check", cli.ErrUsage)
	}
	if cfg.Write && len(args) == 0 {
		return fmt.Errorf("%w: -w requires files", cli.ErrUsage)
	}
	res, err := cfg.resolve()
	if err != nil {
		return err
	}
	reportDiagnostics(os.Stderr, res.Diagnostics)
	runner := cfg.runner(pipeline.WithAssumeFilename(cfg.AssumeFilename))
	ctx := context.Background()

	if len(args) == 0 {
		d, err := io.ReadAll(cc.In)
		if err != nil {
			return fmt.Errorf("error reading: %w", err)
		}
		j := &job{path: stdinName, text: string(d)}
		j.run(ctx, runner, res.Config)
		return report(cfg, cc.Out, []*job{j})
	}

	paths, err := expand(args)
	if err != nil {
		return err
	}
	jobs := make([]*job, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.jobs())
	for i, p := range paths {
		jobs[i] = &job{path: p}
		g.Go(func() error {
			if err := jobs[i].read(); err != nil {
				return err
			}
			jobs[i].run(gctx, runner, res.Config)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return report(cfg, cc.Out, jobs)
}

func report(cfg *FormatConfig, w io.Writer, jobs []*job) error {
	var colors *diffColors
	if cfg.Diff && cfg.colored(w) {
		colors = newDiffColors()
	}
	failed, changed := 0, 0
	for _, j := range jobs {
		switch j.out.Kind {
		case pipeline.Failed:
			failed++
			fmt.Fprintf(os.Stderr, "%s: %s\n", j.path, strings.TrimRight(j.out.Message(), "\n"))
			continue
		case pipeline.Rewritten:
			changed++
		}
		var err error
		switch {
		case cfg.Check:
			if j.out.Kind == pipeline.Rewritten {
				_, err = fmt.Fprintln(w, j.path)
			}
		case cfg.Diff:
			diff := libdiff.Unified(j.path, j.path+" (formatted)", j.text, j.result(), 3)
			err = writeDiff(w, diff, colors)
		case cfg.Write:
			if j.out.Kind == pipeline.Rewritten {
				err = os.WriteFile(j.path, []byte(j.out.Text), j.mode)
			}
		default:
			_, err = io.WriteString(w, j.result())
		}
		if err != nil {
			return fmt.Errorf("error writing %s: %w", j.path, err)
		}
	}
	if failed > 0 {
		return cli.ExitCodeErr(exitFailed)
	}
	if cfg.Check && changed > 0 {
		return cli.ExitCodeErr(exitChanged)
	}
	return nil
}

// expand replaces directories by the supported files below them. Files
// named explicitly are kept whatever their extension.
func expand(args []string) ([]string, error) {
	var res []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			res = append(res, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if p != arg && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if d.Type().IsRegular() && plugin.Supports(p) {
				res = append(res, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

func reportDiagnostics(w io.Writer, diags []config.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(w, "warning: %s configuration: %s\n", config.ConfigKey, d)
	}
}

func count(vs ...bool) int {
	ttl := 0
	for _, v := range vs {
		if v {
			ttl++
		}
	}
	return ttl
}
